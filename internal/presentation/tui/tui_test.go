package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/expect/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultMarkdown(t *testing.T) {
	s := schema.Schema{
		{Key: "user", Type: schema.Object(schema.Schema{
			{Key: "age", Type: schema.Number(), Size: schema.SizeOf("[0:150]")},
		})},
	}

	res := schema.Validate(map[string]any{"user": map[string]any{"age": 200}}, s)
	require.False(t, res.OK())

	md := ResultMarkdown("payload", res)
	assert.Contains(t, md, "# payload")
	assert.Contains(t, md, "**RangeError** at `user.age`")
	assert.Contains(t, md, "| 0 | user | RangeError |")
	assert.Contains(t, md, "| 1 | age | RangeError |")
	assert.Contains(t, md, "[0:150]")

	ok := ResultMarkdown("payload", schema.Validate(map[string]any{"user": map[string]any{"age": 20}}, s))
	assert.Contains(t, ok, "**OK**")
}

func TestResultMarkdown_RootFailure(t *testing.T) {
	md := ResultMarkdown("doc", schema.Validate("not an object", schema.Schema{}))
	assert.Contains(t, md, "`(root)`")
	assert.Contains(t, md, "TypeError")
}

func TestRenderer_NoTTY(t *testing.T) {
	render := NewRenderer(false)
	out, err := render("# Title\n\nSome **bold** text\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
}

func TestStatus_PlainWriter(t *testing.T) {
	var buf bytes.Buffer
	assert.Contains(t, Status(&buf, true, "valid"), "✔ valid")
	assert.Contains(t, Status(&buf, false, "invalid"), "✘ invalid")

	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_|")
}
