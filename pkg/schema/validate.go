package schema

import (
	"github.com/aretw0/expect/pkg/value"
)

// Validate checks obj against schema and returns the first violation.
//
// Fields are visited in schema order. A missing required field fails with
// Required; a missing optional field is skipped without looking at its
// type or size. Keys present on obj but not declared in schema are ignored.
// A nil schema declares nothing and always passes.
func Validate(obj any, schema Schema) Result {
	if schema == nil {
		return okResult
	}
	if value.Classify(obj) != value.Object {
		return typeError("object", obj)
	}

	for _, field := range schema {
		v, present := value.Field(obj, field.Key)
		if !present {
			if field.Required {
				return Result{Status: Required, Expect: &Expect{Key: field.Key}}
			}
			continue
		}
		if r := validateField(field, v); !r.OK() {
			return r
		}
	}
	return okResult
}

// ValidateFields validates only the named fields of obj. Keys not declared
// in schema fail with SchemaError.
func ValidateFields(obj any, schema Schema, keys ...string) Result {
	if len(keys) == 0 {
		return okResult
	}
	subset := make(Schema, 0, len(keys))
	for _, key := range keys {
		f, ok := schema.Lookup(key)
		if !ok {
			return (&DefinitionError{Key: key, Reason: "not defined in schema"}).Result()
		}
		subset = append(subset, f)
	}
	return Validate(obj, subset)
}

func validateField(field Field, v any) Result {
	var r Result
	switch {
	case field.Type != nil:
		r = wrap(field.Key, checkNode(v, field.Type))
	case len(field.Types) == 1:
		// A single alternative is the expected shape, so its cause is kept.
		r = wrap(field.Key, checkNode(v, field.Types[0]))
	case field.Types != nil:
		r = matchAny(field, v)
	default:
		return Result{Status: SchemaError, Expect: &Expect{Key: field.Key}}
	}
	if !r.OK() {
		return r
	}

	if sr := MatchSize(v, field.Size); !sr.OK() {
		sr.Actual.Key = field.Key
		return sr
	}
	return okResult
}

func matchAny(field Field, v any) Result {
	for _, n := range field.Types {
		if checkNode(v, n).OK() {
			return okResult
		}
	}
	return Result{Status: TypesError, Expect: &Expect{Key: field.Key}}
}

// checkNode is the field-level dispatch. Unlike array alternatives, a
// field with a nil node is a malformed declaration.
func checkNode(v any, n Node) Result {
	if n == nil {
		return Result{Status: SchemaError}
	}
	return matchNode(v, n)
}

// wrap attributes an inner failure to key.
func wrap(key string, inner Result) Result {
	if inner.OK() {
		return inner
	}
	return Result{
		Status: inner.Status,
		Expect: &Expect{Key: key},
		Parent: &inner,
	}
}
