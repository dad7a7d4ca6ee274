package analysis

import "context"

// CompletionClient is the outbound chat-completions provider.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
