package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/expect/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var (
	mcpTransport string
	mcpPort      int
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes validation and the pattern registry as MCP tools, so AI agents
can check payloads against schemas.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().IntVar(&mcpPort, "port", 8080, "Port to listen on (only for SSE)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	// Logs must never reach stdout, which carries JSON-RPC in stdio mode.
	a, err := loadApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := mcp.NewServer(a.validator)

	switch mcpTransport {
	case "stdio":
		log.SetOutput(os.Stderr)
		a.logger.Info("starting expect MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a.logger.Info("starting expect MCP server (SSE)", "port", mcpPort)
		if err := srv.ServeSSE(ctx, mcpPort); err != nil {
			return err
		}
		a.logger.Info("MCP server stopped gracefully")
		return nil
	}
	return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", mcpTransport)
}
