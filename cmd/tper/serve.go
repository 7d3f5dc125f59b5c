package main

import (
	"github.com/aretw0/tper"
	"github.com/aretw0/tper/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves POST /run, GET /metrics and GET /healthz. Requests are handled one at a time.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		return cli.RunServe(cmd.Context(), cli.ServeOptions{
			RunOptions: runOptions(cmd),
			Addr:       addr,
			Version:    tper.Version,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Listen address")
}
