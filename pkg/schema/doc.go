// Package schema validates runtime values against declarative schemas.
//
// A Schema is an ordered list of fields. Each field names an object key and
// the shape its value must have: a primitive type ("any", "number",
// "string", "boolean"), a string pattern, an array of alternative element
// shapes, or a nested object schema. Fields may be required and may carry a
// size constraint on string/array length, object key count or numeric value.
//
// Basic usage:
//
//	reg := pattern.Default()
//	s := schema.Schema{
//	    {Key: "name", Type: schema.String(), Required: true, Size: schema.SizeOf("[1:16]")},
//	    {Key: "phone", Type: schema.MustFormat(reg, "<mobile_number>")},
//	    {Key: "tags", Type: schema.Array(schema.String())},
//	    {Key: "id", Types: []schema.Node{schema.Number(), schema.String()}},
//	}
//
//	res := schema.Validate(data, s)
//	if !res.OK() {
//	    fmt.Println(res) // e.g. "name: LengthError: length 40 outside [1:16]"
//	}
//
// Validation is fail-fast: the first violation, in schema field order and
// then array element order, is returned as a Result. Failures inside nested
// nodes are linked through Result.Parent so Result.Path can name the full
// field path ("outer.middle.leaf").
//
// Schemas can also be read from YAML or JSON documents:
//
//	name:
//	  type: string
//	  required: true
//	  size: "[1:16]"
//	phone:
//	  type: "<mobile_number>"
//	tags:
//	  type: [string]
//
// Size specifications are an exact number, a range token such as "[3:7]",
// "(3:7)", "[3:)" or "(:7]" (square brackets inclusive, parentheses
// exclusive, either bound optional) or a list of such alternatives.
//
// Everything here is a pure function of its inputs; schemas and results can
// be shared between goroutines freely.
package schema
