package cli

import (
	"github.com/spf13/cobra"

	"github.com/nexcai/nexcai/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve long-term memory over the Model Context Protocol",
		Long: `Run an MCP stdio server exposing the remember and recall tools, so
external AI tools can share the assistant's long-term memory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAssistant()
			if err != nil {
				return err
			}
			defer a.Close()

			return mcp.NewServer(a.store, version).Serve()
		},
	}
}
