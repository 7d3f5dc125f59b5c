package domain

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned at startup when the provider API key is not set.
var ErrMissingCredential = errors.New("missing credential")

// ErrEmptyRequest is returned when a request is empty or whitespace only.
var ErrEmptyRequest = errors.New("empty request")

// ErrWorkflowClosed is returned when a workflow instance is used after Cleanup.
var ErrWorkflowClosed = errors.New("workflow already cleaned up")

// ErrArtifactNotFound is returned when a scratchpad key does not exist.
var ErrArtifactNotFound = errors.New("artifact not found")

// PhaseError reports which phase of which iteration failed.
type PhaseError struct {
	Phase     Phase
	Iteration int
	Err       error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s phase (iteration %d): %v", e.Phase, e.Iteration, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// PanicError carries a panic recovered while running a workflow.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("workflow panicked: %v", e.Value)
}
