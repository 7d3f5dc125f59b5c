package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/tper/internal/config"
	"github.com/aretw0/tper/pkg/domain"
	"github.com/aretw0/tper/pkg/ports"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	ConfigPath  string
	Debug       bool
	JSON        bool
	Plain       bool
	MetricsAddr string

	// Flag overrides; zero values keep the configured setting.
	Provider      string
	Model         string
	MaxIterations int
	RedisURL      string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// Completer replaces the provider client (tests, embedding).
	Completer ports.Completer
}

func (o *RunOptions) setDefaults() {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Getenv == nil {
		o.Getenv = os.Getenv
	}
}

// LoadConfig resolves the configuration: defaults, file, environment, then flags.
func LoadConfig(opts RunOptions) (*config.Config, error) {
	opts.setDefaults()

	cfg, err := config.Load(opts.ConfigPath, opts.Getenv)
	if err != nil {
		return nil, err
	}

	if opts.Provider != "" {
		cfg.Provider = config.NormalizeProvider(opts.Provider)
	}
	if opts.Model != "" {
		cfg.Model = opts.Model
	}
	if opts.MaxIterations > 0 {
		cfg.MaxIterations = opts.MaxIterations
	}
	if opts.RedisURL != "" {
		cfg.Scratchpad.Backend = config.BackendRedis
		cfg.Scratchpad.RedisURL = opts.RedisURL
	}
	if opts.MetricsAddr != "" {
		cfg.MetricsAddr = opts.MetricsAddr
	}
	if opts.Debug {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// checkCredential fails before any prompt when the provider key is missing.
func checkCredential(cfg *config.Config, opts RunOptions) error {
	envVar := cfg.CredentialVar()
	if opts.Getenv(envVar) == "" {
		printCredentialWarning(opts.Stdout, envVar)
		return domain.ErrMissingCredential
	}
	return nil
}

// Execute handles the run command: configuration, credential check, then the session.
func Execute(ctx context.Context, opts RunOptions) error {
	opts.setDefaults()

	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	if err := checkCredential(cfg, opts); err != nil {
		return err
	}
	return RunSession(ctx, cfg, opts)
}
