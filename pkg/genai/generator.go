// Package genai defines the text generation interface used for answering
// questions and summarizing documents.
package genai

import (
	"context"
	"errors"
)

// ErrGeneration is returned when a generation request fails.
var ErrGeneration = errors.New("text generation failed")

// Generator produces text completions for a prompt.
type Generator interface {
	// Generate returns the model's completion for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// Close releases resources held by the generator.
	Close() error
}
