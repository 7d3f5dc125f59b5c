package domain

// Phase identifies one stage of a TPER iteration.
type Phase string

const (
	PhaseThink      Phase = "think"
	PhasePlan       Phase = "plan"
	PhaseExecute    Phase = "execute"
	PhaseReview     Phase = "review"
	PhaseSynthesize Phase = "synthesize"
)

// Phases lists the iterated phases in execution order.
// Synthesize runs once after the last iteration and is not part of the cycle.
var Phases = []Phase{PhaseThink, PhasePlan, PhaseExecute, PhaseReview}

// Verdict is the outcome of a Review phase.
type Verdict struct {
	Approved bool   `json:"approved"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}
