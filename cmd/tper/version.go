package main

import (
	"fmt"

	"github.com/aretw0/tper"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tper",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tper version %s\n", tper.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
