package cmd

import (
	"github.com/huangsam/gitwrapped/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the gitwrapped MCP server",
	Long: `Launch an MCP server over stdio so AI agents can scan repositories and
read developer, team, author and repository stats through standard tools.`,
	PreRunE: noTargetSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
