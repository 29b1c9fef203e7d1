package main

import (
	"context"
	"errors"

	"github.com/germanamz/quill/pkg/tools/mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the rewrite tools over MCP on stdio",
		Long: `Serve runs an MCP server on stdin/stdout exposing the rewrite_text,
list_models, and select_model tools. A model chosen with select_model applies
to every later call for the life of the server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, root)
			if err != nil {
				return err
			}

			orch := a.orchestrator(a.secrets)
			srv := mcpserver.New(mcpserver.Service{
				Orchestrator: orch,
				Catalog:      a.catalog,
				Selector:     a.selector,
				Credentials:  a.secrets,
			}, version)

			a.log.Debug("mcp server starting")

			err = srv.Serve(cmd.Context(), &mcp.StdioTransport{})

			u := orch.Usage()
			a.log.Info("mcp server stopped", "rewrites", u.Count(), "tokens", u.Total().String())

			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
