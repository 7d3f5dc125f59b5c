package runner

import (
	"log/slog"
	"time"
)

// DefaultCleanupTimeout bounds how long a workflow may take to release its resources.
const DefaultCleanupTimeout = 5 * time.Second

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithObserver registers an observer notified around every workflow run.
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		r.Observer = o
	}
}

// WithCleanupTimeout overrides DefaultCleanupTimeout.
func WithCleanupTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.CleanupTimeout = d
		}
	}
}

// WithSignalManager lets the runner wait out the stdin EOF / interrupt race.
func WithSignalManager(sm *SignalManager) Option {
	return func(r *Runner) {
		r.Signals = sm
	}
}
