package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/sz10101/vym"
	"github.com/sz10101/vym/internal/cli"
	"github.com/sz10101/vym/pkg/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp [map...]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes every vym and map operation as an MCP tool named <object>_<op>,
plus the operation reference and the open maps as resources.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		env, err := cli.NewSession(sessionOptions(cmd, args))
		if err != nil {
			return err
		}
		defer env.Session.Close()

		srv := mcp.NewServer(env.Session.App(), vym.Version, mcp.WithLogger(env.Logger))

		switch transport {
		case "stdio":
			// Keep stdout for JSON-RPC.
			log.SetOutput(os.Stderr)
			env.Logger.Info("starting MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			sigCtx := cli.NewSignalContext(context.Background())
			defer sigCtx.Cancel()
			env.Logger.Info("starting MCP server (SSE)", "port", port)
			if err := srv.ServeSSE(sigCtx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		default:
			return fmt.Errorf("unknown transport %q, supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
