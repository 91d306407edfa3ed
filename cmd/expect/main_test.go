package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/expect/internal/testutils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with args against a file store rooted in dir.
func execute(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))

	base := []string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"--store", "file",
		"--dir", filepath.Join(dir, "schemas"),
		"--log-level", "error",
	}
	rootCmd.SetArgs(append(args, base...))
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

const userSchema = `name:
  type: string
  required: true
age:
  type: number
  size: "[0:150]"
address:
  type:
    city:
      type: string
      required: true
`

func TestVersion(t *testing.T) {
	out, err := execute(t, t.TempDir(), "", "version")
	require.NoError(t, err)
	assert.Regexp(t, `^expect version v\d+\.\d+\.\d+`, out)
}

func TestPatterns(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "", "patterns", "get", "citizen_id")
	require.NoError(t, err)
	assert.Equal(t, "^\\d{13}$\n", out)

	_, err = execute(t, dir, "", "patterns", "get", "nope")
	assert.ErrorContains(t, err, "unknown pattern")

	out, err = execute(t, dir, "", "patterns", "expand", "<citizen_id>|<unknown>")
	require.NoError(t, err)
	assert.Equal(t, "^\\d{13}$|<unknown>\n", out)

	out, err = execute(t, dir, "", "patterns", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "email")
}

func TestValidate_InlineSchema(t *testing.T) {
	dir := t.TempDir()
	schemaPath := testutils.WriteFile(t, dir, "user.yaml", userSchema)

	out, err := execute(t, dir, `{"name": "Ada", "age": 36}`, "validate", "--schema", schemaPath)
	require.NoError(t, err)
	assert.Contains(t, out, "valid")

	valuePath := testutils.WriteFile(t, dir, "bad.yaml", "name: Ada\naddress: {}\n")
	out, err = execute(t, dir, "", "validate", valuePath, "--schema", schemaPath)
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "address.city: Required")
}

func TestValidate_OutputFormats(t *testing.T) {
	dir := t.TempDir()
	schemaPath := testutils.WriteFile(t, dir, "user.yaml", userSchema)

	out, err := execute(t, dir, `{"name": "Ada", "age": 200}`, "validate", "-s", schemaPath, "-o", "json")
	assert.ErrorIs(t, err, errInvalid)
	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "RangeError", res["status"])

	out, err = execute(t, dir, `{"name": "Ada", "age": 200}`, "validate", "-s", schemaPath, "-o", "markdown")
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "RangeError")
	assert.Contains(t, out, "age")

	_, err = execute(t, dir, `{}`, "validate", "-s", schemaPath, "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestValidate_RequiresOneSchemaSource(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, dir, `{}`, "validate")
	assert.Error(t, err)

	_, err = execute(t, dir, `{}`, "validate", "--schema", "a.yaml", "--name", "b")
	assert.Error(t, err)
}

func TestSchemasLifecycle(t *testing.T) {
	dir := testutils.SetupSchemaDir(t, map[string]string{"user.yaml": userSchema})
	schemaPath := filepath.Join(dir, "user.yaml")

	out, err := execute(t, dir, "", "schemas", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No schemas found.")

	out, err = execute(t, dir, "", "schemas", "put", "user", schemaPath)
	require.NoError(t, err)
	assert.Contains(t, out, `Schema "user" saved (3 fields)`)

	_, err = execute(t, dir, "types: [42]\n", "schemas", "put", "broken")
	assert.ErrorContains(t, err, "rejected")

	out, err = execute(t, dir, "", "schemas", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "user")
	assert.NotContains(t, out, "broken")

	out, err = execute(t, dir, "", "schemas", "get", "user")
	require.NoError(t, err)
	assert.Equal(t, userSchema, out)

	out, err = execute(t, dir, `{"name": 7}`, "validate", "--name", "user")
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "name: TypeError")

	valuePath := testutils.WriteFile(t, dir, "value.json", `{"name": "Ada", "address": {}}`)
	out, err = execute(t, dir, "", "schemas", "graph", "user", "--value", valuePath)
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "class f_address_city failed;")

	out, err = execute(t, dir, "", "schemas", "delete", "user")
	require.NoError(t, err)
	assert.Contains(t, out, `Schema "user" deleted`)

	_, err = execute(t, dir, "", "schemas", "get", "user")
	assert.Error(t, err)
}

func TestDecodeValue(t *testing.T) {
	v, err := decodeValue([]byte(`{"n": 12345678901234567890}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("12345678901234567890"), v.(map[string]any)["n"])

	v, err = decodeValue([]byte("a: 1\nb: [x, y]\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": []any{"x", "y"}}, v)

	_, err = decodeValue([]byte("  \n"))
	assert.Error(t, err)
}
