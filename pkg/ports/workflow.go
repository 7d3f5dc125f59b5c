package ports

import (
	"context"

	"github.com/aretw0/tper/pkg/domain"
)

// Workflow is the capability the session driver requires from a workflow engine.
// An instance serves exactly one request and is discarded afterwards.
type Workflow interface {
	// RunWithIterations performs the engine's internal iterations for request
	// and returns the final artifact. No partial results are surfaced.
	RunWithIterations(ctx context.Context, request string) (domain.Result, error)

	// Cleanup releases everything the instance holds.
	// It must be called even if RunWithIterations failed, and it is safe to call twice.
	Cleanup(ctx context.Context) error
}

// WorkflowFactory constructs a fresh Workflow instance.
// The variant behind a factory is chosen once, at configuration time.
type WorkflowFactory func(name, description string) (Workflow, error)
