package runner

import (
	"context"
	"time"

	"github.com/aretw0/tper/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Input reads the next request.
	// It returns io.EOF when the input is exhausted and ctx.Err() when cancelled.
	Input(ctx context.Context) (string, error)

	// Output presents the final result of one request.
	Output(ctx context.Context, result domain.Result) error

	// Error reports a failed request. The session continues afterwards.
	Error(ctx context.Context, err error) error

	// SystemOutput presents a meta-message to the user (re-prompts, farewells).
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Observer is notified around every workflow run.
type Observer interface {
	WorkflowStarted()
	WorkflowFinished(outcome Outcome, elapsed time.Duration)
}

// Outcome classifies how a request ended.
type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeError       Outcome = "error"
	OutcomeInterrupted Outcome = "interrupted"
)
