package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

type label string

func TestClassify(t *testing.T) {
	var nilMap map[string]any
	var nilPtr *int
	n := 7

	tests := []struct {
		name string
		in   any
		want Kind
	}{
		{"nil", nil, Null},
		{"typed nil pointer", nilPtr, Null},
		{"nil map", nilMap, Null},
		{"bool", true, Boolean},
		{"string", "x", String},
		{"named string", label("x"), String},
		{"float64", 1.5, Number},
		{"int", 3, Number},
		{"uint8", uint8(3), Number},
		{"json.Number", json.Number("12"), Number},
		{"pointer to int", &n, Number},
		{"[]any", []any{1}, Array},
		{"[]string", []string{"a"}, Array},
		{"array", [2]int{1, 2}, Array},
		{"map[string]any", map[string]any{}, Object},
		{"map[string]int", map[string]int{"a": 1}, Object},
		{"map[int]any", map[int]any{1: 1}, Unknown},
		{"func", func() {}, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "array", Array.String())
	assert.Equal(t, "object", Object.String())
	assert.Equal(t, "null", TypeName(nil))
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestMagnitude(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   float64
		kind   Kind
		wantOK bool
	}{
		{"string counts characters", "héllo", 5, String, true},
		{"array", []any{1, 2, 3}, 3, Array, true},
		{"typed slice", []int{1, 2}, 2, Array, true},
		{"object key count", map[string]any{"a": 1, "b": 2}, 2, Object, true},
		{"number", 42.5, 42.5, Number, true},
		{"int", int64(-3), -3, Number, true},
		{"bool has no magnitude", true, 0, Boolean, false},
		{"null has no magnitude", nil, 0, Null, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, k, ok := Magnitude(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.kind, k)
			if ok {
				assert.InDelta(t, tt.want, m, 1e-9)
			}
		})
	}
}

func TestField(t *testing.T) {
	v, ok := Field(map[string]any{"a": 1}, "a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = Field(map[string]any{"a": 1}, "b")
	assert.False(t, ok)

	v, ok = Field(map[label]string{"k": "v"}, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	_, ok = Field([]any{1}, "0")
	assert.False(t, ok)
}

func TestKeysAndElements(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Keys(map[string]any{"b": 1, "a": 2}))
	assert.Equal(t, []string{"x"}, Keys(map[string]int{"x": 1}))
	assert.Nil(t, Keys("nope"))

	elems, ok := Elements([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, elems)

	_, ok = Elements("ab")
	assert.False(t, ok)
}

func TestText(t *testing.T) {
	s, ok := Text(label("abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", s)

	_, ok = Text(12)
	assert.False(t, ok)
}
