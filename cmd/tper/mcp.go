package main

import (
	"github.com/aretw0/tper"
	"github.com/aretw0/tper/internal/cli"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Model Context Protocol server",
	Long:  `Exposes the run_workflow tool over MCP (stdio by default, SSE with --port).`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		return cli.RunMCP(cmd.Context(), cli.ServeOptions{
			RunOptions: runOptions(cmd),
			SSEPort:    port,
			Version:    tper.Version,
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Int("port", 0, "Serve over SSE on this port instead of stdio")
}
