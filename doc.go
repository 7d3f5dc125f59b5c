/*
Package tper runs free-form requests through a Think-Plan-Execute-Review (TPER) workflow.

Every request gets its own ephemeral workflow instance: the engine thinks about the
request, plans numbered steps, executes them, reviews the outcome and iterates until
the review approves (or the iteration budget runs out), then synthesizes one final
answer. The instance is released as soon as the answer is produced, even when the
run fails, panics or is cancelled.

# Concept

The package is a thin facade over three layers that can also be used directly:

  - pkg/workflow: the TPER engine (one instance per request).
  - pkg/runner: the session loop and the single-request path (RunOne).
  - pkg/llm: a completion client for OpenAI, Anthropic, Groq and Mistral.

# Usage

	client, err := llm.New(llm.Config{Provider: "openai"})
	if err != nil {
		log.Fatal(err)
	}

	eng, err := tper.New(client, tper.WithMaxIterations(2))
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.Run(context.Background(), "Compare three sorting algorithms")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res)

For an interactive loop over stdin/stdout use Engine.Session.
*/
package tper
