package cli

import (
	"github.com/spf13/cobra"

	"obsidian-cli/internal/mcp"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `Serve exposes create_note, find_notes, get_note_content and get_vault_info
to an AI assistant over the Model Context Protocol. Requests are read from
stdin and responses written to stdout, one JSON-RPC message per line. Logs
go to stderr. The server exits when stdin is closed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := mcp.NewServer(a.vault,
				mcp.WithLogger(a.logger),
				mcp.WithVersion(version),
			)
			if err != nil {
				return err
			}
			a.logger.Info("Starting MCP server", "vault", a.vault.Path)
			return srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
