package expect_test

import (
	"context"
	"fmt"

	"github.com/aretw0/expect"
	"github.com/aretw0/expect/pkg/adapters/memory"
	"github.com/aretw0/expect/pkg/schema"
)

// ExampleValidator_Validate validates a decoded payload against a schema
// built in Go.
func ExampleValidator_Validate() {
	v := expect.New()
	profile := schema.Schema{
		{Key: "name", Type: schema.String(), Required: true, Size: schema.SizeOf("[1:16]")},
		{Key: "phone", Type: schema.MustFormat(v.Registry(), "<mobile_number>")},
	}

	res := v.Validate(context.Background(), map[string]any{"name": "Ann", "phone": "12345"}, profile)
	fmt.Println(res)
	// Output: phone: FormatError: value "12345" does not match /^0\d{9}$/
}

// ExampleValidator_ValidateRaw validates against a YAML schema document.
func ExampleValidator_ValidateRaw() {
	v := expect.New()
	doc := `
id:
  types: [number, string]
  required: true
`
	res := v.ValidateRaw(context.Background(), map[string]any{"id": true}, doc)
	fmt.Println(res.Status, res.Path())
	// Output: TypesError id
}

// ExampleValidator_ValidateNamed keeps schemas by name in a store.
func ExampleValidator_ValidateNamed() {
	ctx := context.Background()
	v := expect.New(expect.WithStore(memory.NewStore()))

	_, err := v.SaveSchema(ctx, "order", []byte(`{"total": {"type": "number", "required": true, "size": "[0:)"}}`))
	if err != nil {
		fmt.Println(err)
		return
	}

	res, err := v.ValidateNamed(ctx, "order", map[string]any{"total": -5})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res)
	// Output: total: RangeError: value -5 outside [0:)
}

// ExampleValidator_ExpandFormat shows placeholder expansion.
func ExampleValidator_ExpandFormat() {
	v := expect.New()
	fmt.Println(v.ExpandFormat(`<citizen_id>|\<literal>|<unknown>`))
	// Output: ^\d{13}$|<literal>|<unknown>
}
