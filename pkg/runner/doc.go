/*
Package runner implements the interactive session loop that drives TPER workflows.

It is the bridge between a workflow engine (ports.Workflow) and the outside world.
The runner reads one request at a time through a pluggable IOHandler, builds a
fresh workflow instance for it, prints the final result and releases the instance
before reading the next request.

# Key Components

  - Runner: The session loop. RunOne is the single-request path shared with other adapters.
  - IOHandler: Decouples how requests are read and results are shown (text, JSON).
  - TextHandler: Interactive CLI prompt and FINAL RESULTS block.
  - JSONHandler: NDJSON requests in, one JSON event per line out.
  - SignalManager: Turns SIGINT/SIGTERM into context cancellation.

# Usage

	r := runner.NewRunner(factory,
		runner.WithLogger(logger),
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
