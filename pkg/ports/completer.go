package ports

import "context"

// Completer produces a text completion for a system instruction and a prompt.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}
