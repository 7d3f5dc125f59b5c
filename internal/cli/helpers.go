package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/tper/internal/logging"
	"github.com/aretw0/tper/pkg/domain"
)

// createLogger configures the application logger.
// In debug mode, it writes to w (Stderr, to separate from the Stdout flow UI).
func createLogger(w io.Writer, debug, jsonMode bool) *slog.Logger {
	if !debug {
		return logging.NewNop()
	}
	return logging.NewWithWriter(w, slog.LevelDebug, jsonMode)
}

// printCredentialWarning tells the user which variable to export.
func printCredentialWarning(w io.Writer, envVar string) {
	fmt.Fprintf(w, "⚠️  Please set %s environment variable\n", envVar)
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPhaseEnter: func(_ context.Context, e *domain.PhaseEvent) {
			logger.Debug("Enter Phase", "phase", e.Phase, "iteration", e.Iteration, "step", e.Step)
		},
		OnPhaseLeave: func(_ context.Context, e *domain.PhaseEvent) {
			if e.Err != nil {
				logger.Debug("Leave Phase (Error)", "phase", e.Phase, "iteration", e.Iteration, "err", e.Err)
				return
			}
			logger.Debug("Leave Phase", "phase", e.Phase, "iteration", e.Iteration, "duration", e.Duration)
		},
		OnIteration: func(_ context.Context, e *domain.IterationEvent) {
			logger.Debug("Review Verdict",
				"iteration", e.Iteration,
				"approved", e.Verdict.Approved,
				"score", e.Verdict.Score,
			)
		},
	}
}
