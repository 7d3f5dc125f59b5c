package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/tper/internal/cli"
	"github.com/aretw0/tper/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tper",
	Short: "tper runs requests through a Think-Plan-Execute-Review workflow",
	Long: `tper is an interactive driver for a Think-Plan-Execute-Review (TPER) workflow.
Each request is analysed, planned, executed and reviewed by a language model,
then synthesized into one final answer. Type 'quit' to leave the session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		// The warning for a missing key has already been printed.
		if !errors.Is(err, domain.ErrMissingCredential) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default ./tper.yaml if present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logs on stderr")
	rootCmd.PersistentFlags().String("provider", "", "Model provider: openai, anthropic, groq, mistral")
	rootCmd.PersistentFlags().String("model", "", "Model name (provider default if empty)")
	rootCmd.PersistentFlags().Int("max-iterations", 0, "Think-Plan-Execute-Review rounds per request")
	rootCmd.PersistentFlags().String("redis-url", "", "Keep phase artifacts in Redis instead of memory")

	addSessionFlags(rootCmd)
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	cmd.Flags().Bool("plain", false, "Print results without markdown rendering")
	cmd.Flags().String("metrics-addr", "", "Serve /metrics and /healthz on this address")
}

// runOptions reads the persistent flags shared by every command.
func runOptions(cmd *cobra.Command) cli.RunOptions {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	debug, _ := flags.GetBool("debug")
	provider, _ := flags.GetString("provider")
	model, _ := flags.GetString("model")
	maxIterations, _ := flags.GetInt("max-iterations")
	redisURL, _ := flags.GetString("redis-url")

	return cli.RunOptions{
		ConfigPath:    configPath,
		Debug:         debug,
		Provider:      provider,
		Model:         model,
		MaxIterations: maxIterations,
		RedisURL:      redisURL,
		Stdin:         cmd.InOrStdin(),
		Stdout:        cmd.OutOrStdout(),
		Stderr:        cmd.ErrOrStderr(),
	}
}

func runSession(cmd *cobra.Command) error {
	opts := runOptions(cmd)
	opts.JSON, _ = cmd.Flags().GetBool("json")
	opts.Plain, _ = cmd.Flags().GetBool("plain")
	opts.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")

	return cli.Execute(cmd.Context(), opts)
}
