/*
Package workflow implements the Think-Plan-Execute-Review (TPER) engine.

A Workflow serves exactly one request. RunWithIterations repeats four phases
until the review approves the work or the iteration budget is spent:

  - Think: analyse the request, taking the previous review's feedback into account.
  - Plan: break the work into a numbered list of steps.
  - Execute: carry out each step, one completion per step.
  - Review: critique the execution and return a JSON verdict.

A final Synthesize completion turns the last execution into the answer.
Every phase artifact is written to the instance's scratchpad; Cleanup purges it.

# Usage

	factory := workflow.NewFactory(client,
		workflow.WithScratchpad(memory.NewStore()),
		workflow.WithConfig(workflow.Config{MaxIterations: 3, MaxSteps: 5}),
	)

	wf, _ := factory("TPER_Workflow", "Think-Plan-Execute-Review Framework")
	defer wf.Cleanup(context.Background())

	result, err := wf.RunWithIterations(ctx, "summarize the release notes")
*/
package workflow
