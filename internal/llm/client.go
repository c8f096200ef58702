// Package llm provides clients for the language-model providers used to
// generate spending-psychology narratives.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// Client defines the interface for LLM providers. It is an injected
// dependency: the host constructs one and hands it to whichever component
// needs it.
type Client interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// Request is a single completion request.
type Request struct {
	System string
	Prompt string
}

// Response contains the provider's completion.
type Response struct {
	Text  string
	Usage Usage
}

// Usage reports token consumption for a request.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// TotalTokens returns the combined input and output token count.
func (u Usage) TotalTokens() int64 {
	return u.InputTokens + u.OutputTokens
}

// Config holds provider settings, typically sourced from viper.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// NewClient creates an LLM client based on the provided configuration.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
