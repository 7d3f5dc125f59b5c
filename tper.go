package tper

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/aretw0/tper/pkg/domain"
	"github.com/aretw0/tper/pkg/ports"
	"github.com/aretw0/tper/pkg/runner"
	"github.com/aretw0/tper/pkg/workflow"
)

// Version is the release of the tper module and binary.
const Version = "0.1.0"

// Engine is the high-level entry point for the library.
// It wires a workflow factory to the runner and hides both.
type Engine struct {
	llm     ports.Completer
	cfg     workflow.Config
	scratch ports.Scratchpad
	hooks   domain.LifecycleHooks
	logger  *slog.Logger

	factory ports.WorkflowFactory
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithScratchpad shares one artifact store between instances (e.g. Redis).
func WithScratchpad(store ports.Scratchpad) Option {
	return func(e *Engine) {
		e.scratch = store
	}
}

// WithMaxIterations bounds the Think-Plan-Execute-Review rounds per request.
func WithMaxIterations(n int) Option {
	return func(e *Engine) {
		e.cfg.MaxIterations = n
	}
}

// WithMaxSteps bounds the plan steps executed per round.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		e.cfg.MaxSteps = n
	}
}

// New creates an Engine backed by llm.
func New(llm ports.Completer, opts ...Option) (*Engine, error) {
	if llm == nil {
		return nil, errors.New("tper: completer is required")
	}
	e := &Engine{
		llm:    llm,
		cfg:    workflow.DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}

	wfOpts := []workflow.Option{
		workflow.WithConfig(e.cfg),
		workflow.WithLifecycleHooks(e.hooks),
		workflow.WithLogger(e.logger),
	}
	if e.scratch != nil {
		wfOpts = append(wfOpts, workflow.WithScratchpad(e.scratch))
	}
	e.factory = workflow.NewFactory(e.llm, wfOpts...)
	return e, nil
}

// Factory exposes the workflow factory for custom runners.
func (e *Engine) Factory() ports.WorkflowFactory {
	return e.factory
}

// Run handles one request with a fresh workflow instance.
func (e *Engine) Run(ctx context.Context, request string) (domain.Result, error) {
	request, err := domain.ValidateRequest(request)
	if err != nil {
		return domain.Result{}, err
	}
	return runner.NewRunner(e.factory, runner.WithLogger(e.logger)).RunOne(ctx, request)
}

// Session runs the interactive loop on in/out until quit, end of input or ctx cancellation.
func (e *Engine) Session(ctx context.Context, in io.Reader, out io.Writer) error {
	r := runner.NewRunner(e.factory,
		runner.WithLogger(e.logger),
		runner.WithInputHandler(runner.NewTextHandler(in, out)),
	)
	return r.Run(ctx)
}
