package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Inspect the pattern registry",
	Long: `Inspect the named regular expressions available as <name> placeholders.

Examples:
  expect patterns list
  expect patterns get email
  expect patterns expand '<mobile_number>|<citizen_id>'`,
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all patterns",
	RunE:  runPatternsList,
}

var patternsGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print the expression registered under a name",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatternsGet,
}

var patternsExpandCmd = &cobra.Command{
	Use:   "expand <format>",
	Short: "Substitute <name> placeholders and check the result compiles",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatternsExpand,
}

func init() {
	rootCmd.AddCommand(patternsCmd)
	patternsCmd.AddCommand(patternsListCmd)
	patternsCmd.AddCommand(patternsGetCmd)
	patternsCmd.AddCommand(patternsExpandCmd)
}

func runPatternsList(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	reg := a.validator.Registry()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPATTERN")
	fmt.Fprintln(w, "----\t-------")
	for _, name := range reg.Names() {
		src, _ := reg.Lookup(name)
		fmt.Fprintf(w, "%s\t%s\n", name, src)
	}
	return w.Flush()
}

func runPatternsGet(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	src, ok := a.validator.LookupPattern(args[0])
	if !ok {
		return fmt.Errorf("unknown pattern %q", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), src)
	return nil
}

func runPatternsExpand(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Fprintln(cmd.OutOrStdout(), a.validator.ExpandFormat(args[0]))
	if _, err := a.validator.CompilePattern(args[0]); err != nil {
		return fmt.Errorf("expanded pattern does not compile: %w", err)
	}
	return nil
}
