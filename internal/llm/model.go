package llm

import "context"

// Model produces a free-text completion for a prompt.
type Model interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
