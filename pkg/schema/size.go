package schema

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"

	"github.com/aretw0/expect/pkg/value"
)

// rangeToken matches "[N:M]" style ranges (either bound optional, "[" / "]"
// inclusive, "(" / ")" exclusive) and exact values written as "N", "[N]" or "(N)".
var rangeToken = regexp.MustCompile(`^(([\(\[])(\d+)?:(\d+)?([\]\)])|[\(\[]?(\d+)[\]\)]?)$`)

// Range is one alternative of a size specification.
type Range struct {
	Min, Max                   float64
	HasMin, HasMax             bool
	MinInclusive, MaxInclusive bool

	// never is set for tokens that do not follow the range grammar.
	never bool
}

// Exact returns a range matching only n.
func Exact(n float64) Range {
	return Range{Min: n, Max: n, HasMin: true, HasMax: true, MinInclusive: true, MaxInclusive: true}
}

// ParseRange parses a single range token.
func ParseRange(token string) (Range, error) {
	m := rangeToken.FindStringSubmatch(token)
	if m == nil {
		return Range{never: true}, fmt.Errorf("invalid size token %q", token)
	}
	if m[6] != "" {
		n, err := strconv.ParseFloat(m[6], 64)
		if err != nil {
			return Range{never: true}, fmt.Errorf("invalid size token %q: %w", token, err)
		}
		return Exact(n), nil
	}

	r := Range{
		MinInclusive: m[2] == "[",
		MaxInclusive: m[5] == "]",
	}
	if m[3] != "" {
		lo, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return Range{never: true}, fmt.Errorf("invalid size token %q: %w", token, err)
		}
		r.Min, r.HasMin = lo, true
	}
	if m[4] != "" {
		hi, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return Range{never: true}, fmt.Errorf("invalid size token %q: %w", token, err)
		}
		r.Max, r.HasMax = hi, true
	}
	return r, nil
}

// Contains reports whether m lies within the range.
func (r Range) Contains(m float64) bool {
	if r.never {
		return false
	}
	if r.HasMin {
		if r.MinInclusive && m < r.Min || !r.MinInclusive && m <= r.Min {
			return false
		}
	}
	if r.HasMax {
		if r.MaxInclusive && m > r.Max || !r.MaxInclusive && m >= r.Max {
			return false
		}
	}
	return true
}

// Size is a magnitude constraint: a set of alternative ranges, any one of
// which is sufficient. The zero Size places no constraint.
type Size struct {
	spec   any
	ranges []Range
}

// SizeOf builds a size specification from a number, a range token string,
// or a list of those. Tokens that do not follow the range grammar are kept
// as alternatives that never match. Use ParseSize to reject them instead.
//
//	schema.SizeOf("[1:16]")
//	schema.SizeOf(13)
//	schema.SizeOf([]any{10, "[13:16]"})
func SizeOf(spec any) Size {
	s, _ := buildSize(spec, false)
	return s
}

// ParseSize is like SizeOf but returns an error for malformed tokens and
// unsupported specification types.
func ParseSize(spec any) (Size, error) {
	return buildSize(spec, true)
}

func buildSize(spec any, strict bool) (Size, error) {
	if spec == nil {
		return Size{}, nil
	}
	s := Size{spec: spec}

	items := []any{spec}
	if value.Classify(spec) == value.Array {
		items, _ = value.Elements(spec)
		if len(items) == 0 {
			return Size{}, nil
		}
	}

	for _, item := range items {
		r, err := sizeAlternative(item)
		if err != nil && strict {
			return Size{}, err
		}
		s.ranges = append(s.ranges, r)
	}
	return s, nil
}

func sizeAlternative(item any) (Range, error) {
	if n, ok := value.Float(item); ok {
		return Exact(n), nil
	}
	if token, ok := value.Text(item); ok {
		return ParseRange(token)
	}
	return Range{never: true}, fmt.Errorf("unsupported size alternative of type %s", describeType(item))
}

func describeType(v any) string {
	if k := value.Classify(v); k != value.Unknown {
		return k.String()
	}
	return reflect.TypeOf(v).String()
}

// IsZero reports whether s has no alternatives.
func (s Size) IsZero() bool {
	return len(s.ranges) == 0
}

// Spec returns the specification s was built from.
func (s Size) Spec() any {
	return s.spec
}

// Ranges returns the parsed alternatives.
func (s Size) Ranges() []Range {
	return s.ranges
}

// Match reports whether m satisfies at least one alternative.
// A zero Size matches everything.
func (s Size) Match(m float64) bool {
	if s.IsZero() {
		return true
	}
	for _, r := range s.ranges {
		if r.Contains(m) {
			return true
		}
	}
	return false
}
