package workflow

import (
	"fmt"
	"strings"

	"github.com/aretw0/tper/pkg/domain"
)

const (
	thinkSystem = `You are the analyst of a Think-Plan-Execute-Review team.
Restate the goal, list the constraints and unknowns, and note what a good answer must contain.
Do not solve the task yet.`

	planSystem = `You are the planner of a Think-Plan-Execute-Review team.
Produce a short numbered list of concrete steps ("1. ...", "2. ...") that together answer the request.
Output only the list.`

	executeSystem = `You are the executor of a Think-Plan-Execute-Review team.
Carry out exactly the step you are given, using the earlier step outputs as context.
Answer with the step's result only.`

	reviewSystem = `You are the reviewer of a Think-Plan-Execute-Review team.
Judge whether the execution fully and correctly answers the request.
Reply with a JSON object and nothing else:
{"approved": true|false, "score": 0-10, "feedback": "what must change"}`

	synthesizeSystem = `You are the editor of a Think-Plan-Execute-Review team.
Merge the executed steps into one clear, complete answer for the user.
Do not mention the steps, the team, or the review.`
)

func thinkPrompt(description, request, previous, feedback string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Framework: %s\n\nRequest:\n%s\n", description, request)
	if previous != "" {
		fmt.Fprintf(&b, "\nPrevious attempt:\n%s\n", previous)
	}
	if feedback != "" {
		fmt.Fprintf(&b, "\nReviewer feedback to address:\n%s\n", feedback)
	}
	return b.String()
}

func planPrompt(request, analysis, feedback string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Request:\n%s\n\nAnalysis:\n%s\n", request, analysis)
	if feedback != "" {
		fmt.Fprintf(&b, "\nThe plan must address this feedback:\n%s\n", feedback)
	}
	return b.String()
}

func executePrompt(request, analysis string, steps []string, current int, outputs []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Request:\n%s\n\nAnalysis:\n%s\n\nPlan:\n", request, analysis)
	for i, step := range steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	for i, out := range outputs {
		fmt.Fprintf(&b, "\nOutput of step %d:\n%s\n", i+1, out)
	}
	fmt.Fprintf(&b, "\nNow carry out step %d: %s\n", current+1, steps[current])
	return b.String()
}

func reviewPrompt(request, execution string) string {
	return fmt.Sprintf("Request:\n%s\n\nExecution:\n%s\n", request, execution)
}

func synthesizePrompt(request, execution string, verdict domain.Verdict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Request:\n%s\n\nExecution:\n%s\n", request, execution)
	if !verdict.Approved && verdict.Feedback != "" {
		fmt.Fprintf(&b, "\nKnown weaknesses to mitigate where possible:\n%s\n", verdict.Feedback)
	}
	return b.String()
}

func formatExecution(steps, outputs []string) string {
	var b strings.Builder
	for i := range outputs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "## Step %d: %s\n%s", i+1, steps[i], strings.TrimSpace(outputs[i]))
	}
	return b.String()
}
