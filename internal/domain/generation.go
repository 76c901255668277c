package domain

import "context"

// Generator is the free-form text generation contract.
// Implementations treat the model as a black box: prompt in, text out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
