package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/expect/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var graphValueFile string

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "Manage stored schemas",
	Long: `Manage schemas kept in the configured store.

Examples:
  expect schemas list
  expect schemas put user user.yaml
  expect schemas get user
  expect schemas graph user --value payload.json
  expect schemas delete user`,
}

var schemasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored schemas",
	RunE:  runSchemasList,
}

var schemasGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print a stored schema document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemasGet,
}

var schemasPutCmd = &cobra.Command{
	Use:   "put <name> [file]",
	Short: "Check and store a schema document (stdin when file is omitted)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSchemasPut,
}

var schemasDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemasDelete,
}

var schemasGraphCmd = &cobra.Command{
	Use:   "graph <name>",
	Short: "Export a stored schema as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph TD) of the schema's field tree.
With --value, the path of the first failing field is highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: runSchemasGraph,
}

func init() {
	rootCmd.AddCommand(schemasCmd)
	schemasCmd.AddCommand(schemasListCmd)
	schemasCmd.AddCommand(schemasGetCmd)
	schemasCmd.AddCommand(schemasPutCmd)
	schemasCmd.AddCommand(schemasDeleteCmd)
	schemasCmd.AddCommand(schemasGraphCmd)

	schemasGraphCmd.Flags().StringVar(&graphValueFile, "value", "", "value to validate and overlay on the graph")
}

func runSchemasList(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	names, err := a.validator.ListSchemas(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No schemas found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFIELDS")
	fmt.Fprintln(w, "----\t------")
	for _, name := range names {
		s, err := a.validator.Schema(ctx, name)
		if err != nil {
			fmt.Fprintf(w, "%s\t(invalid: %v)\n", name, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\n", name, len(s))
	}
	return w.Flush()
}

func runSchemasGet(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	doc, err := a.validator.SchemaDocument(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("schema %q: %w", args[0], err)
	}
	_, err = cmd.OutOrStdout().Write(doc)
	return err
}

func runSchemasPut(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	path := ""
	if len(args) > 1 {
		path = args[1]
	}
	doc, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	s, err := a.validator.SaveSchema(cmd.Context(), args[0], doc)
	if err != nil {
		return fmt.Errorf("schema %q rejected: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schema %q saved (%d fields)\n", args[0], len(s))
	return nil
}

func runSchemasDelete(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.validator.DeleteSchema(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schema %q deleted\n", args[0])
	return nil
}

func runSchemasGraph(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	s, err := a.validator.Schema(ctx, args[0])
	if err != nil {
		return fmt.Errorf("schema %q: %w", args[0], err)
	}

	var overlay *graph.GraphOverlay
	if graphValueFile != "" {
		data, err := readInput(graphValueFile, cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read value: %w", err)
		}
		value, err := decodeValue(data)
		if err != nil {
			return err
		}
		overlay = graph.OverlayFor(a.validator.Validate(ctx, value, s))
	}

	fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(args[0], s, overlay))
	return nil
}
