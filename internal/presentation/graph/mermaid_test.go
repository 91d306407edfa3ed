package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/expect/internal/presentation/graph"
	"github.com/aretw0/expect/pkg/pattern"
	"github.com/aretw0/expect/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMermaid(t *testing.T) {
	reg := pattern.Default()
	s := schema.Schema{
		{Key: "name", Type: schema.String(), Required: true, Size: schema.SizeOf("[1:64]")},
		{Key: "phone", Type: schema.MustFormat(reg, "<mobile_number>")},
		{Key: "address", Type: schema.Object(schema.Schema{
			{Key: "zip-code", Type: schema.Number()},
		})},
		{Key: "tags", Type: schema.Array(schema.Object(schema.Schema{
			{Key: "label", Type: schema.String()},
		}))},
	}

	tests := []struct {
		name     string
		contains []string
	}{
		{
			name: "Root Shape",
			contains: []string{
				"root((\"user\"))",
			},
		},
		{
			name: "Required Field Shape",
			contains: []string{
				"f_name[[\"name: string <br/> size [1:64]\"]]",
				"root --> f_name",
			},
		},
		{
			name: "Pattern Field Shape",
			contains: []string{
				"f_phone[/\"phone: /",
			},
		},
		{
			name: "Nested Object With Sanitized IDs",
			contains: []string{
				"f_address[\"address: object\"]",
				"f_address_zip_code[\"zip-code: number\"]",
				"f_address --> f_address_zip_code",
			},
		},
		{
			name: "Objects Inside Arrays",
			contains: []string{
				"f_tags --> f_tags_label",
			},
		},
	}

	out := graph.GenerateMermaid("user", s, nil)
	require.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.NotContains(t, out, "classDef")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	s := schema.Schema{
		{Key: "address", Type: schema.Object(schema.Schema{
			{Key: "city", Type: schema.String(), Required: true},
		})},
	}

	res := schema.Validate(map[string]any{"address": map[string]any{}}, s)
	require.False(t, res.OK())

	overlay := graph.OverlayFor(res)
	require.NotNil(t, overlay)
	assert.Equal(t, []string{"address", "city"}, overlay.FailurePath)

	out := graph.GenerateMermaid("doc", s, overlay)
	assert.Contains(t, out, "class f_address visited;")
	assert.Contains(t, out, "class f_address_city failed;")

	assert.Nil(t, graph.OverlayFor(schema.Validate(map[string]any{}, s)))
}
