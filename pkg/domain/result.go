package domain

// Result is the final artifact of a workflow run.
// The session driver only prints it; the fields beyond Text are informational.
type Result struct {
	WorkflowID string `json:"workflow_id,omitempty"`
	Text       string `json:"text"`
	Iterations int    `json:"iterations,omitempty"`
	Approved   bool   `json:"approved,omitempty"`
}

// String returns the printable form of the result.
func (r Result) String() string {
	return r.Text
}
