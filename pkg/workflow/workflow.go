package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/tper/pkg/adapters/memory"
	"github.com/aretw0/tper/pkg/domain"
	"github.com/aretw0/tper/pkg/ports"
	"github.com/google/uuid"
)

// Workflow is a single Think-Plan-Execute-Review instance.
// It serves one request; Cleanup releases its scratchpad.
type Workflow struct {
	id          string
	name        string
	description string

	llm     ports.Completer
	scratch ports.Scratchpad
	cfg     Config
	hooks   domain.LifecycleHooks
	logger  *slog.Logger

	mu          sync.Mutex
	closed      bool
	cleanupOnce sync.Once
	cleanupErr  error
}

var _ ports.Workflow = (*Workflow)(nil)

// New creates a workflow instance backed by llm.
func New(name, description string, llm ports.Completer, opts ...Option) (*Workflow, error) {
	if llm == nil {
		return nil, errors.New("workflow: completer is required")
	}

	w := &Workflow{
		id:          uuid.NewString(),
		name:        name,
		description: description,
		llm:         llm,
		cfg:         DefaultConfig(),
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.scratch == nil {
		w.scratch = memory.NewStore()
	}
	if w.logger == nil {
		w.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	w.logger = w.logger.With("workflow_id", w.id)
	return w, nil
}

// NewFactory returns a factory producing fresh instances that share llm and opts.
func NewFactory(llm ports.Completer, opts ...Option) ports.WorkflowFactory {
	return func(name, description string) (ports.Workflow, error) {
		return New(name, description, llm, opts...)
	}
}

// ID returns the instance identifier.
func (w *Workflow) ID() string { return w.id }

// Name returns the workflow name.
func (w *Workflow) Name() string { return w.name }

// Description returns the workflow description.
func (w *Workflow) Description() string { return w.description }

// RunWithIterations runs the TPER cycle for request and synthesizes the final answer.
func (w *Workflow) RunWithIterations(ctx context.Context, request string) (domain.Result, error) {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return domain.Result{}, domain.ErrWorkflowClosed
	}

	request, err := domain.ValidateRequest(request)
	if err != nil {
		return domain.Result{}, err
	}

	var (
		execution string
		verdict   domain.Verdict
		iteration int
	)

	for iteration = 1; iteration <= w.cfg.MaxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return domain.Result{}, err
		}

		analysis, err := w.phase(ctx, domain.PhaseThink, iteration, 0, thinkSystem,
			thinkPrompt(w.description, request, execution, verdict.Feedback))
		if err != nil {
			return domain.Result{}, err
		}

		plan, err := w.phase(ctx, domain.PhasePlan, iteration, 0, planSystem,
			planPrompt(request, analysis, verdict.Feedback))
		if err != nil {
			return domain.Result{}, err
		}

		steps := parsePlan(plan, w.cfg.MaxSteps)
		if len(steps) == 0 {
			steps = []string{request}
		}

		outputs := make([]string, 0, len(steps))
		for i := range steps {
			out, err := w.phase(ctx, domain.PhaseExecute, iteration, i+1, executeSystem,
				executePrompt(request, analysis, steps, i, outputs))
			if err != nil {
				return domain.Result{}, err
			}
			outputs = append(outputs, out)
		}
		execution = formatExecution(steps, outputs)

		review, err := w.phase(ctx, domain.PhaseReview, iteration, 0, reviewSystem,
			reviewPrompt(request, execution))
		if err != nil {
			return domain.Result{}, err
		}
		verdict = parseVerdict(review)

		if w.hooks.OnIteration != nil {
			w.hooks.OnIteration(ctx, &domain.IterationEvent{
				EventBase: domain.EventBase{
					Timestamp:  time.Now(),
					Type:       domain.EventIteration,
					WorkflowID: w.id,
				},
				Iteration: iteration,
				Verdict:   verdict,
			})
		}
		w.logger.Debug("iteration reviewed",
			"iteration", iteration,
			"approved", verdict.Approved,
			"score", verdict.Score,
		)

		if verdict.Approved {
			break
		}
	}
	if iteration > w.cfg.MaxIterations {
		iteration = w.cfg.MaxIterations
	}

	final, err := w.phase(ctx, domain.PhaseSynthesize, iteration, 0, synthesizeSystem,
		synthesizePrompt(request, execution, verdict))
	if err != nil {
		return domain.Result{}, err
	}

	return domain.Result{
		WorkflowID: w.id,
		Text:       strings.TrimSpace(final),
		Iterations: iteration,
		Approved:   verdict.Approved,
	}, nil
}

// phase runs one completion, fires the phase hooks and stores the artifact.
func (w *Workflow) phase(ctx context.Context, phase domain.Phase, iteration, step int, system, prompt string) (string, error) {
	event := &domain.PhaseEvent{
		EventBase: domain.EventBase{
			Timestamp:  time.Now(),
			Type:       domain.EventPhaseEnter,
			WorkflowID: w.id,
		},
		Phase:     phase,
		Iteration: iteration,
		Step:      step,
	}
	if w.hooks.OnPhaseEnter != nil {
		w.hooks.OnPhaseEnter(ctx, event)
	}

	start := time.Now()
	out, err := w.llm.Complete(ctx, system, prompt)
	if err == nil {
		err = w.scratch.Put(ctx, w.id, artifactKey(phase, iteration, step), out)
	}

	leave := *event
	leave.Timestamp = time.Now()
	leave.Type = domain.EventPhaseLeave
	leave.Duration = time.Since(start)
	leave.Err = err
	if w.hooks.OnPhaseLeave != nil {
		w.hooks.OnPhaseLeave(ctx, &leave)
	}

	if err != nil {
		w.logger.Debug("phase failed", "phase", phase, "iteration", iteration, "step", step, "err", err)
		return "", &domain.PhaseError{Phase: phase, Iteration: iteration, Err: err}
	}
	w.logger.Debug("phase done", "phase", phase, "iteration", iteration, "step", step, "duration", leave.Duration)
	return out, nil
}

func artifactKey(phase domain.Phase, iteration, step int) string {
	if step > 0 {
		return fmt.Sprintf("%d/%s/%d", iteration, phase, step)
	}
	return fmt.Sprintf("%d/%s", iteration, phase)
}

// Artifacts returns the stored phase artifacts in write order.
func (w *Workflow) Artifacts(ctx context.Context) (map[string]string, []string, error) {
	keys, err := w.scratch.List(ctx, w.id)
	if err != nil {
		return nil, nil, err
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		v, err := w.scratch.Get(ctx, w.id, k)
		if err != nil {
			return nil, nil, err
		}
		out[k] = v
	}
	return out, keys, nil
}

// Cleanup purges the scratchpad and closes the instance. Later calls are no-ops.
func (w *Workflow) Cleanup(ctx context.Context) error {
	w.cleanupOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()

		if err := w.scratch.Purge(ctx, w.id); err != nil {
			w.cleanupErr = fmt.Errorf("purge scratchpad: %w", err)
		}
		w.logger.Debug("workflow cleaned up")
	})
	return w.cleanupErr
}
