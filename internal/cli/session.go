package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/tper/internal/config"
	"github.com/aretw0/tper/internal/metrics"
	"github.com/aretw0/tper/internal/presentation/tui"
	tperhttp "github.com/aretw0/tper/pkg/adapters/http"
	"github.com/aretw0/tper/pkg/runner"
)

// RunSession runs the interactive loop until quit, end of input or interrupt.
func RunSession(ctx context.Context, cfg *config.Config, opts RunOptions) error {
	opts.setDefaults()
	logger := createLogger(opts.Stderr, cfg.Debug, opts.JSON)

	signals := runner.NewSignalManager(ctx)
	defer signals.Stop()
	sigCtx := signals.Context()

	collector := metrics.New()

	engine, err := createEngine(sigCtx, cfg, opts, logger, collector.Hooks())
	if err != nil {
		return err
	}
	defer func() {
		if err := engine.Close(); err != nil {
			logger.Warn("failed to close scratchpad", "err", err)
		}
	}()

	r := runner.NewRunner(engine.Factory,
		runner.WithLogger(logger),
		runner.WithInputHandler(createHandler(opts, logger)),
		runner.WithObserver(collector),
		runner.WithCleanupTimeout(cfg.CleanupTimeout),
		runner.WithSignalManager(signals),
	)

	if cfg.MetricsAddr != "" {
		stop := startOpsServer(sigCtx, cfg.MetricsAddr, collector, logger)
		defer stop()
	}

	if !opts.JSON {
		tui.PrintBanner(opts.Stdout)
	}
	logger.Info("session started", "provider", cfg.Provider, "model", cfg.Model, "max_iterations", cfg.MaxIterations)

	if err := r.Run(sigCtx); err != nil {
		return fmt.Errorf("session failed: %w", err)
	}
	return nil
}

func createHandler(opts RunOptions, logger *slog.Logger) runner.IOHandler {
	if opts.JSON {
		return runner.NewJSONHandler(opts.Stdin, opts.Stdout)
	}

	var handlerOpts []runner.TextHandlerOption
	if !opts.Plain && tui.IsTerminal(opts.Stdout) {
		render, err := tui.NewRenderer(tui.TerminalWidth(opts.Stdout))
		if err != nil {
			logger.Warn("markdown rendering disabled", "err", err)
		} else {
			handlerOpts = append(handlerOpts, runner.WithTextHandlerRenderer(render))
		}
	}
	return runner.NewTextHandler(opts.Stdin, opts.Stdout, handlerOpts...)
}

// startOpsServer serves /healthz and /metrics in the background.
// The returned func cancels it and waits for shutdown.
func startOpsServer(ctx context.Context, addr string, collector *metrics.Collector, logger *slog.Logger) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	handler := tperhttp.NewHandler(tperhttp.Options{
		Metrics: collector.Handler(),
		Logger:  logger,
	})
	go func() {
		defer close(done)
		if err := tperhttp.Serve(ctx, addr, handler, logger); err != nil {
			logger.Error("ops server stopped", "addr", addr, "err", err)
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
