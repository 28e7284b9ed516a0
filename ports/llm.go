package ports

import "context"

// LLMClient interface for generative-model providers
type LLMClient interface {
	// ChatCompletion sends one system+user exchange and returns the raw
	// assistant message content. Implementations apply their own request
	// timeout; callers treat failures as retryable external errors.
	ChatCompletion(ctx context.Context, prompt string) (string, error)
}
