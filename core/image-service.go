package core

import "context"

// ImageGenerator produces a single image for the prompt at the given
// resolution and returns a reference the chat platform can fetch.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string, size string) (string, error)
}
