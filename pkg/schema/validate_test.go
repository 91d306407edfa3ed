package schema

import (
	"reflect"
	"testing"

	"github.com/aretw0/expect/pkg/pattern"
)

func TestValidate_Success(t *testing.T) {
	reg := pattern.Default()
	s := Schema{
		{Key: "name", Type: String(), Required: true, Size: SizeOf("[1:16]")},
		{Key: "age", Type: Number(), Size: SizeOf("[0:150]")},
		{Key: "active", Type: Boolean()},
		{Key: "phone", Type: MustFormat(reg, "<mobile_number>")},
		{Key: "tags", Type: Array(String())},
		{Key: "meta", Type: Any()},
	}

	data := map[string]any{
		"name":   "alice",
		"age":    30.0,
		"active": true,
		"phone":  "0812345678",
		"tags":   []any{"a", "b"},
		"meta":   map[string]any{"x": 1},
		"extra":  "ignored",
	}

	if res := Validate(data, s); !res.OK() {
		t.Errorf("Validate() = %v, want OK", res)
	}
}

func TestValidate_NilSchema(t *testing.T) {
	if res := Validate("not even an object", nil); !res.OK() {
		t.Errorf("Validate(nil schema) = %v, want OK", res)
	}
}

func TestValidate_NotAnObject(t *testing.T) {
	s := Schema{}

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"array", []any{1}, "array"},
		{"string", "x", "string"},
		{"null", nil, "null"},
		{"number", 1.0, "number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.in, s)
			if res.Status != TypeError {
				t.Fatalf("Status = %s, want TypeError", res.Status)
			}
			if res.Expect.Type != "object" {
				t.Errorf("Expect.Type = %q, want object", res.Expect.Type)
			}
			if res.Actual.Type != tt.want {
				t.Errorf("Actual.Type = %q, want %q", res.Actual.Type, tt.want)
			}
		})
	}
}

func TestValidate_RequiredField(t *testing.T) {
	s := Schema{
		{Key: "a", Type: Number()},
		{Key: "b", Type: String(), Required: true},
		{Key: "c", Type: String(), Required: true},
	}
	// "a" is optional and skipped; "b" and "c" are both missing but only
	// the first one is reported.
	res := Validate(map[string]any{}, s)
	if res.Status != Required {
		t.Fatalf("Status = %s, want Required", res.Status)
	}
	if res.Expect.Key != "b" {
		t.Errorf("Expect.Key = %q, want b", res.Expect.Key)
	}
}

func TestValidate_OptionalAbsenceSkipsChecks(t *testing.T) {
	s := Schema{
		{Key: "note", Type: String(), Size: SizeOf("not-a-range")},
	}

	if res := Validate(map[string]any{}, s); !res.OK() {
		t.Errorf("absent optional field: got %v, want OK", res)
	}

	res := Validate(map[string]any{"note": "hi"}, s)
	if res.Status != LengthError {
		t.Errorf("present field with unmatched size: got %s, want LengthError", res.Status)
	}
}

func TestValidate_EmptyOptionalValues(t *testing.T) {
	s := Schema{
		{Key: "note", Type: String()},
		{Key: "list", Type: Array(Number())},
	}
	res := Validate(map[string]any{"note": "", "list": []any{}}, s)
	if !res.OK() {
		t.Errorf("empty values without size: got %v, want OK", res)
	}
}

func TestValidate_SizeFailure(t *testing.T) {
	s := Schema{
		{Key: "name", Type: String(), Required: true, Size: SizeOf("[1:16]")},
	}
	res := Validate(map[string]any{"name": "hello world this is too long for sixteen"}, s)
	if res.Status != LengthError {
		t.Fatalf("Status = %s, want LengthError", res.Status)
	}
	if res.Actual.Key != "name" {
		t.Errorf("Actual.Key = %q, want name", res.Actual.Key)
	}
	if res.Actual.Length == nil || *res.Actual.Length != 40 {
		t.Errorf("Actual.Length = %v, want 40", res.Actual.Length)
	}
	if res.Expect.Size != "[1:16]" {
		t.Errorf("Expect.Size = %v, want [1:16]", res.Expect.Size)
	}
	if res.Parent != nil {
		t.Error("size failures must not carry a parent")
	}
}

func TestValidate_RangeFailure(t *testing.T) {
	s := Schema{
		{Key: "age", Type: Number(), Size: SizeOf("[18:)")},
	}
	res := Validate(map[string]any{"age": 12}, s)
	if res.Status != RangeError {
		t.Fatalf("Status = %s, want RangeError", res.Status)
	}
	if res.Path() != "age" {
		t.Errorf("Path() = %q, want age", res.Path())
	}
}

func TestValidate_MultipleTypes(t *testing.T) {
	s := Schema{
		{Key: "id", Types: []Node{Number(), String()}},
	}

	for _, v := range []any{42, "x"} {
		if res := Validate(map[string]any{"id": v}, s); !res.OK() {
			t.Errorf("id=%v: got %v, want OK", v, res)
		}
	}

	res := Validate(map[string]any{"id": true}, s)
	if res.Status != TypesError {
		t.Fatalf("Status = %s, want TypesError", res.Status)
	}
	if res.Expect.Key != "id" {
		t.Errorf("Expect.Key = %q, want id", res.Expect.Key)
	}
	if res.Parent != nil {
		t.Error("TypesError must not carry a parent")
	}
}

func TestValidate_SingleAlternativeKeepsCause(t *testing.T) {
	s := Schema{
		{Key: "tags", Types: []Node{Array(String())}},
	}
	res := Validate(map[string]any{"tags": []any{"a", 1}}, s)
	if res.Status != TypeError {
		t.Fatalf("Status = %s, want TypeError", res.Status)
	}
	if res.Expect.Key != "tags" {
		t.Errorf("Expect.Key = %q, want tags", res.Expect.Key)
	}
	if res.Parent == nil {
		t.Fatal("expected parent chain")
	}
	cause := res.Cause()
	if cause.Expect.Type != "string" || cause.Actual.Type != "number" {
		t.Errorf("cause = %+v / %+v, want string / number", cause.Expect, cause.Actual)
	}
}

func TestValidate_PatternField(t *testing.T) {
	s := Schema{
		{Key: "phone", Type: MustFormat(pattern.Default(), "<mobile_number>")},
	}

	if res := Validate(map[string]any{"phone": "0812345678"}, s); !res.OK() {
		t.Errorf("valid phone: got %v", res)
	}

	res := Validate(map[string]any{"phone": "12345"}, s)
	if res.Status != FormatError {
		t.Fatalf("Status = %s, want FormatError", res.Status)
	}
	cause := res.Cause()
	if cause.Actual.Value != "12345" {
		t.Errorf("Actual.Value = %v, want 12345", cause.Actual.Value)
	}
	src, _ := pattern.Default().Lookup("mobile_number")
	if cause.Expect.Format != src {
		t.Errorf("Expect.Format = %q, want %q", cause.Expect.Format, src)
	}

	res = Validate(map[string]any{"phone": 812345678}, s)
	if res.Status != TypeError || res.Cause().Expect.Type != "string" {
		t.Errorf("non-string phone: got %v, want TypeError expecting string", res)
	}
}

func TestValidate_NestedPath(t *testing.T) {
	s := Schema{
		{Key: "outer", Type: Object(Schema{
			{Key: "middle", Type: Object(Schema{
				{Key: "leaf", Type: Number(), Required: true},
			})},
		})},
	}
	data := map[string]any{
		"outer": map[string]any{
			"middle": map[string]any{"leaf": "nope"},
		},
	}

	res := Validate(data, s)
	if res.Status != TypeError {
		t.Fatalf("Status = %s, want TypeError", res.Status)
	}
	if got := res.Path(); got != "outer.middle.leaf" {
		t.Errorf("Path() = %q, want outer.middle.leaf", got)
	}
	want := []string{"outer", "middle", "leaf"}
	if got := res.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestValidate_EmptyArrayRequiresArray(t *testing.T) {
	s := Schema{{Key: "tags", Type: Array()}}

	res := Validate(map[string]any{"tags": "nope"}, s)
	if res.Status != TypeError || res.Path() != "tags" {
		t.Fatalf("non-array value: got %v, want TypeError at tags", res)
	}
	if got := res.Cause().Expect.Type; got != "array" {
		t.Errorf("expected type: got %q, want array", got)
	}

	if res := Validate(map[string]any{"tags": []any{1, "x"}}, s); !res.OK() {
		t.Errorf("any array: got %v, want OK", res)
	}
	if res := MatchArray("nope", nil); !res.OK() {
		t.Errorf("nil alternatives: got %v, want OK", res)
	}
}

func TestValidate_ArrayOfObjects(t *testing.T) {
	item := Object(Schema{
		{Key: "sku", Type: String(), Required: true},
	})
	s := Schema{
		{Key: "items", Type: Array(item), Size: SizeOf("[1:)")},
	}

	if res := Validate(map[string]any{"items": []any{map[string]any{"sku": "a"}}}, s); !res.OK() {
		t.Errorf("valid items: got %v", res)
	}

	res := Validate(map[string]any{"items": []any{map[string]any{"sku": "a"}, map[string]any{}}}, s)
	if res.Status != Required {
		t.Fatalf("Status = %s, want Required", res.Status)
	}
	if got := res.Path(); got != "items.sku" {
		t.Errorf("Path() = %q, want items.sku", got)
	}

	res = Validate(map[string]any{"items": []any{}}, s)
	if res.Status != LengthError {
		t.Errorf("empty items: got %s, want LengthError", res.Status)
	}
}

func TestValidate_TypedGoValues(t *testing.T) {
	s := Schema{
		{Key: "ids", Type: Array(Number()), Size: SizeOf(2)},
		{Key: "labels", Type: Object(Schema{{Key: "env", Type: String()}})},
	}
	data := map[string]any{
		"ids":    []int{1, 2},
		"labels": map[string]string{"env": "prod"},
	}
	if res := Validate(data, s); !res.OK() {
		t.Errorf("Validate() = %v, want OK", res)
	}
}

func TestValidate_MalformedField(t *testing.T) {
	s := Schema{{Key: "broken"}}
	res := Validate(map[string]any{"broken": 1}, s)
	if res.Status != SchemaError {
		t.Fatalf("Status = %s, want SchemaError", res.Status)
	}
	if res.Expect.Key != "broken" {
		t.Errorf("Expect.Key = %q, want broken", res.Expect.Key)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	s := Schema{
		{Key: "a", Type: Array(Number(), String()), Required: true},
	}
	data := map[string]any{"a": []any{1, "x", true}}

	first := Validate(data, s)
	second := Validate(data, s)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ: %v vs %v", first, second)
	}
	if first.Status != TypeError {
		t.Errorf("Status = %s, want TypeError", first.Status)
	}
}

func TestValidateFields(t *testing.T) {
	s := Schema{
		{Key: "a", Type: String(), Required: true},
		{Key: "b", Type: Number(), Required: true},
	}
	data := map[string]any{"b": 1}

	if res := ValidateFields(data, s, "b"); !res.OK() {
		t.Errorf("ValidateFields(b) = %v, want OK", res)
	}
	if res := ValidateFields(data, s, "a"); res.Status != Required {
		t.Errorf("ValidateFields(a) = %v, want Required", res)
	}
	if res := ValidateFields(data, s, "zzz"); res.Status != SchemaError {
		t.Errorf("ValidateFields(zzz) = %v, want SchemaError", res)
	}
	if res := ValidateFields(data, s); !res.OK() {
		t.Errorf("ValidateFields() = %v, want OK", res)
	}
}
