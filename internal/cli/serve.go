package cli

import (
	"context"

	"github.com/aretw0/tper/internal/metrics"
	tperhttp "github.com/aretw0/tper/pkg/adapters/http"
	"github.com/aretw0/tper/pkg/adapters/mcp"
	"github.com/aretw0/tper/pkg/domain"
	"github.com/aretw0/tper/pkg/runner"
)

// ServeOptions configures the headless surfaces.
type ServeOptions struct {
	RunOptions
	Addr    string // HTTP listen address for serve
	SSEPort int    // MCP over SSE instead of stdio when > 0
	Version string
}

// headlessRunner builds a runner usable only through RunOne.
// It has no IOHandler: under mcp, stdin belongs to the protocol.
func headlessRunner(ctx context.Context, opts *ServeOptions, warnTo func(string)) (*runner.Runner, *metrics.Collector, func(), error) {
	opts.setDefaults()

	cfg, err := LoadConfig(opts.RunOptions)
	if err != nil {
		return nil, nil, nil, err
	}
	if envVar := cfg.CredentialVar(); opts.Getenv(envVar) == "" {
		warnTo(envVar)
		return nil, nil, nil, domain.ErrMissingCredential
	}

	logger := createLogger(opts.Stderr, cfg.Debug, true)
	collector := metrics.New()
	engine, err := createEngine(ctx, cfg, opts.RunOptions, logger, collector.Hooks())
	if err != nil {
		return nil, nil, nil, err
	}

	r := runner.NewRunner(engine.Factory,
		runner.WithLogger(logger),
		runner.WithObserver(collector),
		runner.WithCleanupTimeout(cfg.CleanupTimeout),
	)
	closeFn := func() {
		if err := engine.Close(); err != nil {
			logger.Warn("failed to close scratchpad", "err", err)
		}
	}
	return r, collector, closeFn, nil
}

// RunServe exposes /run, /metrics and /healthz over HTTP until ctx is cancelled.
func RunServe(ctx context.Context, opts ServeOptions) error {
	signals := runner.NewSignalManager(ctx)
	defer signals.Stop()

	r, collector, closeFn, err := headlessRunner(signals.Context(), &opts, func(envVar string) {
		printCredentialWarning(opts.Stdout, envVar)
	})
	if err != nil {
		return err
	}
	defer closeFn()

	handler := tperhttp.NewHandler(tperhttp.Options{
		Metrics:  collector.Handler(),
		Executor: r,
		Logger:   r.Logger,
	})
	return tperhttp.Serve(signals.Context(), opts.Addr, handler, r.Logger)
}

// RunMCP exposes the workflow as an MCP tool over stdio (or SSE).
// Stdout belongs to the protocol, so warnings go to Stderr.
func RunMCP(ctx context.Context, opts ServeOptions) error {
	signals := runner.NewSignalManager(ctx)
	defer signals.Stop()

	r, _, closeFn, err := headlessRunner(signals.Context(), &opts, func(envVar string) {
		printCredentialWarning(opts.Stderr, envVar)
	})
	if err != nil {
		return err
	}
	defer closeFn()

	srv := mcp.NewServer(r, opts.Version, r.Logger)
	if opts.SSEPort > 0 {
		return srv.ServeSSE(signals.Context(), opts.SSEPort)
	}
	return srv.ServeStdio()
}
