package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/expect"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of expect",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "expect version %s\n", strings.TrimSpace(expect.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
