package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cohost-ai/rental-api/internal/core/domain"
	"github.com/cohost-ai/rental-api/internal/core/ports"
)

const (
	ChatEmptyPrompt = "Please say something!"
	ChatUnavailable = "AI is thinking... Try again."
	DefaultPrice    = 250
	defaultTarget   = "en"
	unknownLocation = "Unknown"
)

// AssistantService answers chat, translation and pricing requests. chat serves
// conversational prompts; pricing serves price suggestions.
type AssistantService struct {
	chat    ports.TextGenerator
	pricing ports.TextGenerator
	log     zerolog.Logger
}

func NewAssistantService(chat, pricing ports.TextGenerator, log zerolog.Logger) *AssistantService {
	return &AssistantService{chat: chat, pricing: pricing, log: log}
}

func (s *AssistantService) Chat(ctx context.Context, prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ChatEmptyPrompt
	}

	reply, err := s.chat.Generate(ctx, prompt)
	if err != nil {
		degrade(s.log, capabilityAI, "chat", err)
		return ChatUnavailable
	}
	return reply
}

// Translate returns text in target, or text unchanged when translation fails.
func (s *AssistantService) Translate(ctx context.Context, text, target string) string {
	if text == "" {
		return text
	}
	if strings.TrimSpace(target) == "" {
		target = defaultTarget
	}

	reply, err := s.chat.Generate(ctx, fmt.Sprintf("Translate exactly to %s: '%s'", target, text))
	if err == nil && strings.TrimSpace(reply) == "" {
		err = fmt.Errorf("%w: empty translation", domain.ErrRemoteUnavailable)
	}
	if err != nil {
		degrade(s.log, capabilityAI, "translate", err)
		return text
	}
	return strings.TrimSpace(reply)
}

// SuggestPrice asks the pricing model for a nightly rate in location.
func (s *AssistantService) SuggestPrice(ctx context.Context, location string) float64 {
	if strings.TrimSpace(location) == "" {
		location = unknownLocation
	}

	prompt := fmt.Sprintf("Suggest optimal nightly price for a luxury villa in %s. Return only a number.", location)
	reply, err := s.pricing.Generate(ctx, prompt)
	if err != nil {
		degrade(s.log, capabilityAI, "suggest_price", err)
		return DefaultPrice
	}

	price, err := parsePrice(reply)
	if err != nil {
		degrade(s.log, capabilityAI, "suggest_price", fmt.Errorf("%w: unparseable price %q", domain.ErrRemoteUnavailable, reply))
		return DefaultPrice
	}
	return math.Round(price)
}
