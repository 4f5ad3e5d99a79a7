package llm

import "context"

// Generator sends one system/user prompt pair to a text-generation service
// and returns the raw response text. Errors are caught per chunk by the
// batch processor, never propagated to the caller.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ProgressFunc receives the completed fraction (0..1) after each chunk.
type ProgressFunc func(fraction float64)
