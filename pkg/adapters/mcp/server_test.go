package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/expect"
	"github.com/aretw0/expect/pkg/adapters/memory"
	"github.com/aretw0/expect/pkg/ports"
	"github.com/aretw0/expect/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(expect.New(expect.WithStore(memory.NewStore())))
}

func TestHandleValidate_Inline(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handleValidate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"schema": "age:\n  type: number\n  size: \"[0:150]\"\n",
		"value":  `{"age": 200}`,
	})
	require.NoError(t, err)
	assert.False(t, resp.OK)
	assert.Equal(t, schema.RangeError, resp.Result.Status)
	assert.Equal(t, "age", resp.Path)

	resp, err = s.handleValidate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"schema": `{"age": {"type": "number"}}`,
		"value":  `{"age": 20}`,
	})
	require.NoError(t, err)
	assert.True(t, resp.OK)
}

func TestHandleValidate_Named(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.validator.SaveSchema(ctx, "user", []byte("email:\n  type: \"<email>\"\n  required: true\n"))
	require.NoError(t, err)

	resp, err := s.handleValidate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"schema_name": "user",
		"value":       `{"email": "not-an-email"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, schema.FormatError, resp.Result.Status)

	_, err = s.handleValidate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"schema_name": "missing",
		"value":       `{}`,
	})
	assert.ErrorIs(t, err, ports.ErrSchemaNotFound)
}

func TestHandleValidate_BadArguments(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleValidate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"value": "{}"})
	assert.Error(t, err)

	_, err = s.handleValidate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"schema": "{}", "schema_name": "x", "value": "{}",
	})
	assert.Error(t, err)

	_, err = s.handleValidate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"schema": "{}", "value": "{oops",
	})
	assert.ErrorContains(t, err, "not valid JSON")
}

func TestHandleExpandAndLookup(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	exp, err := s.handleExpand(ctx, mcp.CallToolRequest{}, map[string]interface{}{"format": "<citizen_id>"})
	require.NoError(t, err)
	assert.Equal(t, `^\d{13}$`, exp.Expanded)
	assert.True(t, exp.Valid)

	exp, err = s.handleExpand(ctx, mcp.CallToolRequest{}, map[string]interface{}{"format": "[<citizen_id>"})
	require.NoError(t, err)
	assert.False(t, exp.Valid)

	look, err := s.handleLookup(ctx, mcp.CallToolRequest{}, map[string]interface{}{"name": "email"})
	require.NoError(t, err)
	assert.True(t, look.Found)
	assert.NotEmpty(t, look.Source)

	look, err = s.handleLookup(ctx, mcp.CallToolRequest{}, map[string]interface{}{"name": "nope"})
	require.NoError(t, err)
	assert.False(t, look.Found)
}

func TestResources(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	var table map[string]string
	require.NoError(t, json.Unmarshal([]byte(s.patternsJSON()), &table))
	assert.Equal(t, s.validator.Registry().Len(), len(table))

	_, err := s.validator.SaveSchema(ctx, "order", []byte(`{"total": {"type": "number"}}`))
	require.NoError(t, err)

	contents, err := s.readSchema(ctx, "expect://schemas/order")
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "application/json", text.MIMEType)
	assert.Contains(t, text.Text, "total")

	_, err = s.readSchema(ctx, "expect://schemas/missing")
	assert.ErrorIs(t, err, ports.ErrSchemaNotFound)
}
