package ports

import "context"

// AssistantService fronts the generative-AI backend. None of its operations
// fail: remote errors degrade to fixed fallbacks.
type AssistantService interface {
	Chat(ctx context.Context, prompt string) string
	Translate(ctx context.Context, text, target string) string
	SuggestPrice(ctx context.Context, location string) float64
}
