package llm

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all model provider configuration.
type Config struct {
	// Provider selects which backend to use.
	// Values: "xai", "openai", "anthropic", "gemini", "mock"
	Provider string

	XAI       XAIConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout is the maximum duration for a single request including
	// retries. Default: 30s.
	Timeout time.Duration
}

// XAIConfig holds xAI-specific configuration. xAI exposes an
// OpenAI-compatible API, so this rides the OpenAI client under the hood.
type XAIConfig struct {
	APIKey  string
	Model   string // Default: "grok-beta"
	BaseURL string // Default: "https://api.x.ai/v1"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultXAIBaseURL is xAI's OpenAI-compatible endpoint.
const DefaultXAIBaseURL = "https://api.x.ai/v1"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "xai",
		XAI: XAIConfig{
			Model:   "grok-beta",
			BaseURL: DefaultXAIBaseURL,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back to
// defaults for unset values. API keys resolve through the secrets directory
// first so a key on disk wins over one exported in the shell.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	secrets := secretsDir()

	if p := os.Getenv("BTCED_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	cfg.XAI.APIKey = resolveKey(secrets, "xai_api_key", "BTCED_XAI_API_KEY")
	if m := os.Getenv("BTCED_XAI_MODEL"); m != "" {
		cfg.XAI.Model = m
	}
	if u := os.Getenv("BTCED_XAI_BASE_URL"); u != "" {
		cfg.XAI.BaseURL = u
	}

	cfg.OpenAI.APIKey = resolveKey(secrets, "openai_api_key", "BTCED_OPENAI_API_KEY")
	if m := os.Getenv("BTCED_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("BTCED_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	cfg.Anthropic.APIKey = resolveKey(secrets, "anthropic_api_key", "BTCED_ANTHROPIC_API_KEY")
	if m := os.Getenv("BTCED_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	cfg.Gemini.APIKey = resolveKey(secrets, "gemini_api_key", "BTCED_GEMINI_API_KEY")
	if m := os.Getenv("BTCED_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (xAI → OpenAI → Anthropic → Gemini) and returns a Config for the first
// provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("XAI_API_KEY"); k != "" {
		cfg.Provider = "xai"
		cfg.XAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Configured reports whether the selected provider has its API key.
func (c Config) Configured() bool {
	return c.Validate() == nil
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "xai":
		if c.XAI.APIKey == "" {
			return fmt.Errorf("BTCED_XAI_API_KEY is required for the xai provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("BTCED_OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("BTCED_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("BTCED_GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown model provider: %q", c.Provider)
	}
	return nil
}

// secretsDir returns the directory scanned for key files. Override with
// BTCED_SECRETS_DIR; default is ~/.config/btced/secrets.
func secretsDir() string {
	if d := os.Getenv("BTCED_SECRETS_DIR"); d != "" {
		return d
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "btced", "secrets")
}

// resolveKey reads a key from the secrets file, then the environment.
func resolveKey(dir, file, envVar string) string {
	if dir != "" {
		if raw, err := os.ReadFile(filepath.Join(dir, file)); err == nil {
			if key := strings.TrimSpace(string(raw)); key != "" {
				return key
			}
		}
	}
	return os.Getenv(envVar)
}
