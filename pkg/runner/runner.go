package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/aretw0/tper/pkg/domain"
	"github.com/aretw0/tper/pkg/ports"
)

// Construction parameters of every workflow instance.
const (
	WorkflowName        = "TPER_Workflow"
	WorkflowDescription = "Think-Plan-Execute-Review Framework"
)

// Messages shown by the session loop.
const (
	MsgInvalidRequest = "Please enter a valid request."
	MsgGoodbye        = "👋 Goodbye!"
)

// Runner handles the session loop: one fresh workflow per request.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	// Factory builds a new workflow instance for every request.
	Factory ports.WorkflowFactory

	// Handler is the strategy for IO. Run defaults it to a TextHandler on
	// Stdin/Stdout; RunOne never touches it.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Observer is optional.
	Observer Observer

	// Signals is optional; when set, input errors wait out the signal race.
	Signals *SignalManager

	CleanupTimeout time.Duration
}

// NewRunner creates a Runner for the given factory.
func NewRunner(factory ports.WorkflowFactory, opts ...Option) *Runner {
	r := &Runner{
		Factory:        factory,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		CleanupTimeout: DefaultCleanupTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Run reads requests until an exit keyword, end of input, or ctx cancellation.
// Failed requests are reported and the loop continues; only input errors end it with an error.
func (r *Runner) Run(ctx context.Context) error {
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	for {
		input, err := r.Handler.Input(ctx)
		if err != nil {
			if r.Signals != nil {
				r.Signals.CheckRace()
			}
			if ctx.Err() != nil {
				r.Logger.Debug("session interrupted while reading", "err", ctx.Err())
				r.farewell(ctx)
				return nil
			}
			if errors.Is(err, io.EOF) {
				r.Logger.Debug("input closed")
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		if domain.IsExitCommand(input) {
			r.Logger.Debug("exit requested", "input", input)
			return nil
		}

		request, err := domain.ValidateRequest(input)
		if err != nil {
			if err := r.Handler.SystemOutput(ctx, MsgInvalidRequest); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
			continue
		}

		_, err = r.execute(ctx, request, func(result domain.Result) error {
			return r.Handler.Output(ctx, result)
		})
		if err != nil {
			var outErr *outputError
			if errors.As(err, &outErr) {
				return fmt.Errorf("output error: %w", outErr.err)
			}
			if ctx.Err() != nil {
				r.farewell(ctx)
				return nil
			}
			if err := r.Handler.Error(ctx, err); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		}
	}
}

// outputError marks a failure to present a result, which ends the session.
type outputError struct{ err error }

func (e *outputError) Error() string { return e.err.Error() }
func (e *outputError) Unwrap() error { return e.err }

func (r *Runner) farewell(ctx context.Context) {
	if err := r.Handler.SystemOutput(context.WithoutCancel(ctx), MsgGoodbye); err != nil {
		r.Logger.Debug("farewell not shown", "err", err)
	}
}

// RunOne constructs exactly one workflow instance, runs it for request and
// releases it. Cleanup runs on success, failure, panic and cancellation.
// A panic inside the workflow is returned as *domain.PanicError.
func (r *Runner) RunOne(ctx context.Context, request string) (domain.Result, error) {
	return r.execute(ctx, request, nil)
}

// execute is RunOne with an optional report step that sees the result
// while the instance is still live, so output is not delayed by cleanup.
func (r *Runner) execute(ctx context.Context, request string, report func(domain.Result) error) (result domain.Result, err error) {
	start := time.Now()
	if r.Observer != nil {
		r.Observer.WorkflowStarted()
		defer func() {
			r.Observer.WorkflowFinished(outcomeOf(ctx, err), time.Since(start))
		}()
	}

	defer func() {
		if p := recover(); p != nil {
			r.Logger.Error("workflow panicked", "panic", p, "stack", string(debug.Stack()))
			err = &domain.PanicError{Value: p}
		}
	}()

	if r.Factory == nil {
		return domain.Result{}, errors.New("no workflow factory configured")
	}
	wf, err := r.Factory(WorkflowName, WorkflowDescription)
	if err != nil {
		return domain.Result{}, fmt.Errorf("create workflow: %w", err)
	}
	if wf == nil {
		return domain.Result{}, errors.New("create workflow: factory returned nil")
	}
	defer r.cleanup(ctx, wf)

	r.Logger.Debug("workflow started", "request_len", len(request))
	result, err = wf.RunWithIterations(ctx, request)
	if err != nil {
		r.Logger.Debug("workflow failed", "err", err)
		return domain.Result{}, err
	}
	r.Logger.Debug("workflow finished", "duration", time.Since(start))
	if report != nil {
		if err := report(result); err != nil {
			return result, &outputError{err: err}
		}
	}
	return result, nil
}

// cleanup releases wf even if ctx is already cancelled.
func (r *Runner) cleanup(ctx context.Context, wf ports.Workflow) {
	timeout := r.CleanupTimeout
	if timeout <= 0 {
		timeout = DefaultCleanupTimeout
	}
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := wf.Cleanup(cctx); err != nil {
		r.Logger.Warn("workflow cleanup failed", "err", err)
	}
}

func outcomeOf(ctx context.Context, err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case ctx.Err() != nil:
		return OutcomeInterrupted
	default:
		return OutcomeError
	}
}
