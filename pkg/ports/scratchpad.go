package ports

import "context"

// Scratchpad stores the intermediate artifacts of a workflow instance.
// Every key is scoped by the workflow ID; Purge releases all of them.
type Scratchpad interface {
	// Put writes (or overwrites) an artifact.
	Put(ctx context.Context, workflowID, key, value string) error

	// Get reads an artifact.
	// Returns domain.ErrArtifactNotFound if the key does not exist.
	Get(ctx context.Context, workflowID, key string) (string, error)

	// List returns the keys of a workflow in first-write order.
	List(ctx context.Context, workflowID string) ([]string, error)

	// Purge removes every artifact of a workflow. Purging an unknown ID is not an error.
	Purge(ctx context.Context, workflowID string) error
}
