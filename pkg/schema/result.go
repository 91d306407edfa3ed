package schema

import (
	"fmt"
	"strings"
)

// Status is the outcome tag of a validation result.
type Status string

const (
	OK          Status = "OK"
	TypeError   Status = "TypeError"
	TypesError  Status = "TypesError"
	FormatError Status = "FormatError"
	Required    Status = "Required"
	LengthError Status = "LengthError"
	RangeError  Status = "RangeError"
	SchemaError Status = "SchemaError"
)

// Expect describes what the schema demanded.
type Expect struct {
	Key    string `json:"key,omitempty" yaml:"key,omitempty"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	Size   any    `json:"size,omitempty" yaml:"size,omitempty"`
}

// Actual describes what was found.
type Actual struct {
	Key    string   `json:"key,omitempty" yaml:"key,omitempty"`
	Type   string   `json:"type,omitempty" yaml:"type,omitempty"`
	Value  any      `json:"value,omitempty" yaml:"value,omitempty"`
	Length *float64 `json:"length,omitempty" yaml:"length,omitempty"`
}

// Result is the outcome of a validation.
//
// When a failure comes from a nested node, Parent holds the inner result and
// Expect.Key names the enclosing field, so following Parent links leads from
// the top-level field down to the root cause.
type Result struct {
	Status Status  `json:"status" yaml:"status"`
	Expect *Expect `json:"expect,omitempty" yaml:"expect,omitempty"`
	Actual *Actual `json:"actual,omitempty" yaml:"actual,omitempty"`
	Parent *Result `json:"parent,omitempty" yaml:"parent,omitempty"`
}

var okResult = Result{Status: OK}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.Status == OK
}

// key returns the field key this link of the chain is attributed to.
func (r *Result) key() string {
	if r.Expect != nil && r.Expect.Key != "" {
		return r.Expect.Key
	}
	if r.Actual != nil {
		return r.Actual.Key
	}
	return ""
}

// Keys returns the field keys from the top-level field down to the root cause.
func (r Result) Keys() []string {
	var keys []string
	for cur := &r; cur != nil; cur = cur.Parent {
		if k := cur.key(); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Path joins Keys with dots, e.g. "outer.middle.leaf".
func (r Result) Path() string {
	return strings.Join(r.Keys(), ".")
}

// Cause returns the deepest result of the chain.
func (r Result) Cause() Result {
	cur := r
	for cur.Parent != nil {
		cur = *cur.Parent
	}
	return cur
}

// Reason describes the root cause in words, without the field path.
func (r Result) Reason() string {
	c := r.Cause()
	switch c.Status {
	case OK:
		return "ok"
	case TypeError:
		return fmt.Sprintf("expected %s, got %s", c.expectType(), c.actualType())
	case TypesError:
		return "value matches none of the allowed types"
	case FormatError:
		format := ""
		if c.Expect != nil {
			format = c.Expect.Format
		}
		var v any
		if c.Actual != nil {
			v = c.Actual.Value
		}
		return fmt.Sprintf("value %q does not match /%s/", fmt.Sprint(v), format)
	case Required:
		return "required field is missing"
	case LengthError, RangeError:
		what := "length"
		if c.Status == RangeError {
			what = "value"
		}
		var got any = "?"
		if c.Actual != nil && c.Actual.Length != nil {
			got = *c.Actual.Length
		}
		var want any
		if c.Expect != nil {
			want = c.Expect.Size
		}
		return fmt.Sprintf("%s %v outside %v", what, got, want)
	case SchemaError:
		if c.Actual != nil && c.Actual.Value != nil {
			return fmt.Sprintf("invalid schema: %v", c.Actual.Value)
		}
		return "invalid schema"
	}
	return string(c.Status)
}

func (r Result) expectType() string {
	if r.Expect == nil || r.Expect.Type == "" {
		return "?"
	}
	return r.Expect.Type
}

func (r Result) actualType() string {
	if r.Actual == nil || r.Actual.Type == "" {
		return "?"
	}
	return r.Actual.Type
}

func (r Result) String() string {
	if r.OK() {
		return string(OK)
	}
	if p := r.Path(); p != "" {
		return fmt.Sprintf("%s: %s: %s", p, r.Status, r.Reason())
	}
	return fmt.Sprintf("%s: %s", r.Status, r.Reason())
}

// Err converts a failed result into an error. It returns nil for OK.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	var v any
	if c := r.Cause(); c.Actual != nil {
		v = c.Actual.Value
	}
	return &ValidationError{
		Path:   r.Path(),
		Status: r.Status,
		Reason: r.Reason(),
		Value:  v,
	}
}
