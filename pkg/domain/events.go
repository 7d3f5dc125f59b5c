package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPhaseEnter EventType = "phase_enter"
	EventPhaseLeave EventType = "phase_leave"
	EventIteration  EventType = "iteration"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	WorkflowID string    `json:"workflow_id"`
}

// PhaseEvent represents entry or exit from a phase.
type PhaseEvent struct {
	EventBase
	Phase     Phase         `json:"phase"`
	Iteration int           `json:"iteration"`
	Step      int           `json:"step,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Err       error         `json:"-"`
}

// IterationEvent is emitted when a review finishes an iteration.
type IterationEvent struct {
	EventBase
	Iteration int     `json:"iteration"`
	Verdict   Verdict `json:"verdict"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnPhaseEnter func(context.Context, *PhaseEvent)
	OnPhaseLeave func(context.Context, *PhaseEvent)
	OnIteration  func(context.Context, *IterationEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnPhaseEnter: chainPhase(h.OnPhaseEnter, other.OnPhaseEnter),
		OnPhaseLeave: chainPhase(h.OnPhaseLeave, other.OnPhaseLeave),
		OnIteration: func(ctx context.Context, e *IterationEvent) {
			if h.OnIteration != nil {
				h.OnIteration(ctx, e)
			}
			if other.OnIteration != nil {
				other.OnIteration(ctx, e)
			}
		},
	}
}

func chainPhase(a, b func(context.Context, *PhaseEvent)) func(context.Context, *PhaseEvent) {
	return func(ctx context.Context, e *PhaseEvent) {
		if a != nil {
			a(ctx, e)
		}
		if b != nil {
			b(ctx, e)
		}
	}
}
