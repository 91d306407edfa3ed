package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/expect/internal/presentation/tui"
	"github.com/aretw0/expect/pkg/schema"
	"github.com/spf13/cobra"
)

var (
	validateSchemaFile string
	validateSchemaName string
	validateOutput     string
)

var validateCmd = &cobra.Command{
	Use:   "validate [value-file]",
	Short: "Validate a value against a schema",
	Long: `Validates a JSON or YAML value read from a file (or stdin when the
argument is omitted or "-") against an inline schema file or a stored schema.

Output formats:
  text      one status line (default)
  markdown  a report with the full cause chain
  json      the raw result

The command exits with status 1 when the value is invalid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVarP(&validateSchemaFile, "schema", "s", "", "schema document (YAML or JSON)")
	validateCmd.Flags().StringVarP(&validateSchemaName, "name", "n", "", "name of a stored schema")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "text", "output format: text, markdown or json")
	validateCmd.MarkFlagsMutuallyExclusive("schema", "name")
	validateCmd.MarkFlagsOneRequired("schema", "name")
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	data, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read value: %w", err)
	}
	value, err := decodeValue(data)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var res schema.Result
	subject := validateSchemaName
	if validateSchemaFile != "" {
		doc, err := os.ReadFile(validateSchemaFile)
		if err != nil {
			return fmt.Errorf("failed to read schema: %w", err)
		}
		subject = validateSchemaFile
		res = a.validator.ValidateRaw(ctx, value, doc)
	} else {
		res, err = a.validator.ValidateNamed(ctx, validateSchemaName, value)
		if err != nil {
			return fmt.Errorf("schema %q: %w", validateSchemaName, err)
		}
	}

	if err := printResult(cmd, subject, res); err != nil {
		return err
	}
	if !res.OK() {
		return errInvalid
	}
	return nil
}

func printResult(cmd *cobra.Command, subject string, res schema.Result) error {
	out := cmd.OutOrStdout()
	switch validateOutput {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "markdown":
		interactive := out == os.Stdout && tui.IsTerminal(os.Stdout)
		rendered, err := tui.NewRenderer(interactive)(tui.ResultMarkdown(subject, res))
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	case "text":
		msg := "valid"
		if !res.OK() {
			msg = res.String()
		}
		fmt.Fprintln(out, tui.Status(out, res.OK(), msg))
		return nil
	}
	return fmt.Errorf("unknown output format %q", validateOutput)
}
