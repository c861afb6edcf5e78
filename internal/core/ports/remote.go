package ports

import "context"

// TextGenerator is a generative-AI backend. Errors wrap domain.ErrRemoteUnavailable.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RateProvider looks up exchange rates. Errors wrap domain.ErrRemoteUnavailable.
type RateProvider interface {
	Rate(ctx context.Context, base, quote string) (float64, error)
}
