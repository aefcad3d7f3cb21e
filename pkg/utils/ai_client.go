package utils

import (
	"context"
	"fmt"
	"strings"
)

// GenerativeClient is the slice of a generative model this service needs.
type GenerativeClient interface {
	// GenerateWithImage sends a prompt plus inline image bytes and returns the raw model text.
	GenerateWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
	Close() error
}

// NewGenerativeClient creates either an OpenAI or a Gemini client based on config.
func NewGenerativeClient(provider, apiKey, model string) (GenerativeClient, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIClient(apiKey, model), nil
	case "gemini":
		return NewGeminiClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
