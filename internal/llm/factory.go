package llm

import (
	"fmt"
	"os"
	"strings"

	"github.com/versemeter/versemeter/internal/model"
)

// NewProvider creates a provider from configuration. An empty provider
// name means summaries are disabled and returns (nil, nil).
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}

// ConfigFromModel converts the runtime LLM configuration, filling the
// API key from the environment since it is never persisted.
func ConfigFromModel(mc model.LLMConfig) Config {
	apiKey := mc.APIKey
	if apiKey == "" {
		switch strings.ToLower(mc.Provider) {
		case "openai":
			apiKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    apiKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}
