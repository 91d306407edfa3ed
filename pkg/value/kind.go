// Package value classifies arbitrary runtime values into the categories the
// validation engine reasons about: null, boolean, number, string, array and
// object. Every type probe in the engine goes through Classify.
//
// Values decoded from JSON or YAML (map[string]any, []any, float64, ...) are
// the primary input, but any Go slice, array, string-keyed map, numeric kind
// or pointer to one of those is accepted as well.
package value

import (
	"encoding/json"
	"reflect"
	"slices"
)

// Kind is the category of a runtime value.
type Kind int

const (
	Null Kind = iota
	Boolean
	Number
	String
	Array
	Object
	// Unknown covers values with no JSON-like meaning (funcs, channels, ...).
	Unknown
)

var kindNames = [...]string{
	Null:    "null",
	Boolean: "boolean",
	Number:  "number",
	String:  "string",
	Array:   "array",
	Object:  "object",
	Unknown: "unknown",
}

// String returns the type name reported in validation results.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Classify reports the kind of v.
func Classify(v any) Kind {
	switch v.(type) {
	case nil:
		return Null
	case bool:
		return Boolean
	case string:
		return String
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return Number
	case []any:
		return Array
	case map[string]any:
		return Object
	}
	return classifyReflect(reflect.ValueOf(v))
}

func classifyReflect(rv reflect.Value) Kind {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Bool:
		return Boolean
	case reflect.String:
		return String
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Number
	case reflect.Slice:
		if rv.IsNil() {
			return Null
		}
		return Array
	case reflect.Array:
		return Array
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Unknown
		}
		if rv.IsNil() {
			return Null
		}
		return Object
	}
	return Unknown
}

// TypeName is shorthand for Classify(v).String().
func TypeName(v any) string {
	return Classify(v).String()
}

// Len returns the length of a string (in characters), array or object (key
// count). ok is false for other kinds.
func Len(v any) (n int, ok bool) {
	switch t := v.(type) {
	case string:
		return len([]rune(t)), true
	case []any:
		return len(t), true
	case map[string]any:
		return len(t), true
	}
	switch Classify(v) {
	case String:
		return len([]rune(deref(v).String())), true
	case Array, Object:
		return deref(v).Len(), true
	}
	return 0, false
}

// Float converts a numeric value to float64.
func Float(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	if Classify(v) != Number {
		return 0, false
	}
	rv := deref(v)
	switch {
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	case rv.CanFloat():
		return rv.Float(), true
	}
	return 0, false
}

// Magnitude returns the size used by length and range checks: the length of
// a string or array, the key count of an object, or a number itself.
// ok is false for kinds that have no magnitude.
func Magnitude(v any) (m float64, k Kind, ok bool) {
	k = Classify(v)
	switch k {
	case String, Array, Object:
		n, _ := Len(v)
		return float64(n), k, true
	case Number:
		f, ok := Float(v)
		return f, k, ok
	}
	return 0, k, false
}

// Text returns the contents of a string value.
func Text(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if Classify(v) != String {
		return "", false
	}
	return deref(v).String(), true
}

// Field returns the member key of an object value.
func Field(obj any, key string) (any, bool) {
	if m, ok := obj.(map[string]any); ok {
		v, ok := m[key]
		return v, ok
	}
	if Classify(obj) != Object {
		return nil, false
	}
	rv := deref(obj)
	mv := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !mv.IsValid() {
		return nil, false
	}
	return mv.Interface(), true
}

// Keys returns the sorted member names of an object value.
func Keys(obj any) []string {
	if m, ok := obj.(map[string]any); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return keys
	}
	if Classify(obj) != Object {
		return nil
	}
	rv := deref(obj)
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	slices.Sort(keys)
	return keys
}

// Elements returns the items of an array value.
func Elements(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	if Classify(v) != Array {
		return nil, false
	}
	rv := deref(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func deref(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	return rv
}
