package content

import (
	"context"
	"errors"
)

// ErrGenerationFailed indicates the upstream text-generation call errored.
var ErrGenerationFailed = errors.New("content generation failed")

// Generator invokes a text-generation service with a fully assembled prompt
// and returns the raw model output, with no post-processing. Implementations
// must be safe for concurrent use with independent prompts.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
