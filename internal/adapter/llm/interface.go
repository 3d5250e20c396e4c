// Package llm provides an abstraction for text-generation clients.
package llm

import "context"

// Client defines the interface for the external generation service.
type Client interface {
	// Generate sends a single prompt and returns a single text completion.
	Generate(ctx context.Context, prompt string) (string, error)

	// Ping checks that the generation service is reachable.
	Ping(ctx context.Context) error
}

// Ensure OllamaClient implements Client.
var _ Client = (*OllamaClient)(nil)
