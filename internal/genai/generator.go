// Package genai defines the narrow text-generation interface the engine
// depends on, with provider implementations in subpackages.
package genai

import "context"

// TextGenerator sends a prompt to an external text-generation service and
// returns the generated text. Implementations own their timeouts and retry
// policy; callers treat any error as "no generated text available".
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
