/*
Package expect validates dynamic values (decoded JSON, YAML or plain Go maps)
against declarative schemas.

A schema lists fields in order. Each field names the kind of value it
expects (a primitive tag, a regular-expression format, an array of
alternatives or a nested object), whether it is required, and an optional
size specification bounding a string's length, an array's length, an
object's key count or a number's value. Validation is a pure function that
returns the first violation as a schema.Result, whose Parent chain leads from
the outermost field to the root cause.

Formats can reference named patterns with "<name>" placeholders. The
built-in table lives in package pattern and can be layered with patterns
loaded from configuration.

# Usage

	v := expect.New()

	res := v.ValidateRaw(ctx, payload, `
	name:
	  type: string
	  required: true
	  size: "[1:64]"
	phone:
	  type: "<mobile_number>"
	`)
	if err := res.Err(); err != nil {
		log.Printf("rejected: %v", err)
	}

With a store, schemas are kept by name and parsed once:

	v := expect.New(expect.WithStore(file.New("./schemas")))
	res, err := v.ValidateNamed(ctx, "profile", payload)

# Architecture

  - pkg/pattern: pattern registry and placeholder expansion.
  - pkg/value: classification of dynamic values.
  - pkg/schema: schema model, matchers and the validation engine.
  - pkg/ports, pkg/adapters: schema storage (memory, file, redis) and the
    HTTP and MCP surfaces.
*/
package expect
