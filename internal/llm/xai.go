package llm

import "fmt"

// xaiModels maps friendly names to xAI model IDs.
var xaiModels = map[string]string{
	"grok":      "grok-beta",
	"grok-beta": "grok-beta",
	"grok-mini": "grok-3-mini",
}

// NewXAIProvider creates a provider for xAI's Grok models. xAI exposes an
// OpenAI-compatible API, so this is the OpenAI provider pointed at the xAI
// endpoint.
func NewXAIProvider(cfg XAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("xai API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultXAIBaseURL
	}

	return NewOpenAIProvider(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   resolveModel(cfg.Model, xaiModels),
		BaseURL: baseURL,
	})
}
