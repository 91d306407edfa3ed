package schema

import (
	"github.com/aretw0/expect/pkg/value"
)

// MatchValue checks v against a primitive or pattern node.
// A nil node declares no constraint.
func MatchValue(v any, n Node) Result {
	switch n := n.(type) {
	case nil:
		return okResult
	case PrimitiveNode:
		if n.Tag == TagAny || value.TypeName(v) == string(n.Tag) {
			return okResult
		}
		return typeError(string(n.Tag), v)
	case PatternNode:
		if n.Regexp == nil {
			return okResult
		}
		s, ok := value.Text(v)
		if !ok {
			return typeError(string(TagString), v)
		}
		if n.Regexp.MatchString(s) {
			return okResult
		}
		return Result{
			Status: FormatError,
			Expect: &Expect{Format: n.Regexp.String()},
			Actual: &Actual{Value: s},
		}
	}
	return matchNode(v, n)
}

// MatchArray checks that v is an array whose every element satisfies at
// least one of alts. The first failing element decides the result; for an
// element that fails every alternative, the first alternative's failure is
// reported. nil alts declares no constraint.
func MatchArray(v any, alts []Node) Result {
	if alts == nil {
		return okResult
	}
	elems, ok := value.Elements(v)
	if !ok {
		return typeError("array", v)
	}
	if len(alts) == 0 {
		return okResult
	}

	for _, elem := range elems {
		if r := matchAlternatives(elem, alts); !r.OK() {
			return r
		}
	}
	return okResult
}

func matchAlternatives(v any, alts []Node) Result {
	var first Result
	for i, alt := range alts {
		r := matchNode(v, alt)
		if r.OK() {
			return r
		}
		if i == 0 {
			first = r
		}
	}
	return first
}

// matchNode dispatches on the node kind. Nested objects validate through
// Validate; a nil node matches anything.
func matchNode(v any, n Node) Result {
	switch n := n.(type) {
	case nil:
		return okResult
	case PrimitiveNode, PatternNode:
		return MatchValue(v, n)
	case ArrayNode:
		return MatchArray(v, n.Alternatives)
	case ObjectNode:
		return Validate(v, n.Schema)
	}
	return Result{Status: SchemaError, Actual: &Actual{Type: n.Name()}}
}

// MatchSize checks the magnitude of v against size. Strings and arrays are
// measured by length, objects by key count and numbers by value; other kinds
// always pass. Numbers fail with RangeError, everything else with LengthError.
func MatchSize(v any, size Size) Result {
	if size.IsZero() {
		return okResult
	}
	m, kind, ok := value.Magnitude(v)
	if !ok {
		return okResult
	}
	if size.Match(m) {
		return okResult
	}

	status := LengthError
	if kind == value.Number {
		status = RangeError
	}
	return Result{
		Status: status,
		Expect: &Expect{Size: size.Spec()},
		Actual: &Actual{Length: &m},
	}
}

func typeError(want string, v any) Result {
	return Result{
		Status: TypeError,
		Expect: &Expect{Type: want},
		Actual: &Actual{Type: value.TypeName(v)},
	}
}
