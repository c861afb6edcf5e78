// Package gemini adapts the Gemini generative-language API to ports.TextGenerator.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"google.golang.org/genai"

	"github.com/cohost-ai/rental-api/internal/core/domain"
	"github.com/cohost-ai/rental-api/internal/infrastructure/remote"
)

const capability = "ai"

var (
	errNotConfigured = errors.New("gemini api key not configured")
	errEmptyReply    = errors.New("empty reply")
)

// Generator sends a single text prompt to one model. Without an API key it is
// still usable but every call fails, which makes callers take their fallback.
type Generator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker
}

// New builds a generator for model. The genai client may be shared between
// generators for different models.
func New(client *genai.Client, model string, timeout time.Duration, log zerolog.Logger) *Generator {
	return &Generator{
		client:  client,
		model:   model,
		timeout: timeout,
		cb:      remote.NewBreaker("gemini:"+model, log),
	}
}

// NewClient returns nil without error when apiKey is empty.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return client, nil
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("%s: %w: %w", capability, domain.ErrRemoteUnavailable, errNotConfigured)
	}
	return remote.Call(ctx, g.cb, capability, g.timeout, func(ctx context.Context) (string, error) {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			return "", err
		}
		text := strings.TrimSpace(resp.Text())
		if text == "" {
			return "", errEmptyReply
		}
		return text, nil
	})
}
