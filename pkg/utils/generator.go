package utils

import "context"

// GenerationRequest is built fresh for every call and never persisted.
type GenerationRequest struct {
	Prompt           string
	Count            int
	Temperature      float64
	StructuredOutput bool
	Surprise         bool
}

// GenerationResult is the raw text a provider produced. Truncated is set when the
// provider stopped because it ran out of output tokens.
type GenerationResult struct {
	Text      string
	Truncated bool
	Model     string
}

// TextGenerator is the contract every LLM provider satisfies. Retries are the
// caller's business; implementations report transport, auth and quota problems
// as ErrUpstreamFailure.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error)
}
