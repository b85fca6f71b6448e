package output

import (
	"context"
)

// ModelFaultSentinel prefixes the text an LLMPort returns instead of an
// error when the model service cannot be reached or fails mid-stream.
const ModelFaultSentinel = "Error: failed to call the language model service."

// LLMPort produces the complete text of one model turn. Implementations
// never return an error; faults come back as text starting with
// ModelFaultSentinel so callers can treat them like any other output.
type LLMPort interface {
	Generate(ctx context.Context, prompt, systemPrompt string) string
	// GenerateStream behaves like Generate and additionally hands each text
	// fragment to onChunk, in order, before returning. onChunk may be nil.
	GenerateStream(ctx context.Context, prompt, systemPrompt string, onChunk func(string)) string
}
