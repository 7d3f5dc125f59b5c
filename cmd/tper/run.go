package main

import (
	"github.com/spf13/cobra"
)

// runCmd is the explicit form of the default command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive TPER session",
	Long:  `Reads requests from stdin, runs each through a fresh workflow and prints the final results.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addSessionFlags(runCmd)
}
