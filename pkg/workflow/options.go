package workflow

import (
	"log/slog"

	"github.com/aretw0/tper/pkg/domain"
	"github.com/aretw0/tper/pkg/ports"
)

// Config bounds the work a single instance may do.
type Config struct {
	MaxIterations int // Think-Plan-Execute-Review rounds before synthesizing anyway
	MaxSteps      int // plan steps executed per iteration
}

// DefaultConfig returns the default iteration budget.
func DefaultConfig() Config {
	return Config{
		MaxIterations: 3,
		MaxSteps:      5,
	}
}

// Option defines a functional option for configuring a Workflow.
type Option func(*Workflow)

// WithConfig sets the iteration budget. Non-positive fields keep their defaults.
func WithConfig(cfg Config) Option {
	return func(w *Workflow) {
		if cfg.MaxIterations > 0 {
			w.cfg.MaxIterations = cfg.MaxIterations
		}
		if cfg.MaxSteps > 0 {
			w.cfg.MaxSteps = cfg.MaxSteps
		}
	}
}

// WithScratchpad sets the store for phase artifacts.
// If not provided, each instance gets a private in-memory store.
func WithScratchpad(store ports.Scratchpad) Option {
	return func(w *Workflow) {
		w.scratch = store
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(w *Workflow) {
		w.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) {
		w.logger = logger
	}
}

// WithID overrides the generated instance ID.
func WithID(id string) Option {
	return func(w *Workflow) {
		w.id = id
	}
}
