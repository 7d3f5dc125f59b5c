// Package llm provides the text-completion backend for the TPER engine.
//
// It wraps the gollm library (github.com/teilomillet/gollm) behind the
// ports.Completer interface, classifies provider failures into a small error
// taxonomy, and retries the transient ones with exponential backoff.
//
//	client, err := llm.New(llm.Config{
//	    Provider: "openai",
//	    APIKey:   os.Getenv("OPENAI_API_KEY"),
//	})
//	text, err := client.Complete(ctx, "You are a planner.", "Plan a picnic")
package llm
