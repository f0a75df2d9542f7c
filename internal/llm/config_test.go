package llm

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("BTCED_SECRETS_DIR", t.TempDir())

	cfg := ConfigFromEnv()
	if cfg.Provider != "xai" {
		t.Errorf("Provider = %q, want xai", cfg.Provider)
	}
	if cfg.XAI.Model != "grok-beta" {
		t.Errorf("XAI.Model = %q", cfg.XAI.Model)
	}
	if cfg.XAI.BaseURL != DefaultXAIBaseURL {
		t.Errorf("XAI.BaseURL = %q", cfg.XAI.BaseURL)
	}
}

func TestSecretsFileWinsOverEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "xai_api_key"), []byte("from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BTCED_SECRETS_DIR", dir)
	t.Setenv("BTCED_XAI_API_KEY", "from-env")

	cfg := ConfigFromEnv()
	if cfg.XAI.APIKey != "from-file" {
		t.Errorf("APIKey = %q, want from-file", cfg.XAI.APIKey)
	}
}

func TestEnvKeyUsedWhenNoSecretsFile(t *testing.T) {
	t.Setenv("BTCED_SECRETS_DIR", t.TempDir())
	t.Setenv("BTCED_XAI_API_KEY", "from-env")

	cfg := ConfigFromEnv()
	if cfg.XAI.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want from-env", cfg.XAI.APIKey)
	}
}

func TestValidateRequiresKeyForSelectedProvider(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing xai key")
	}
	cfg.XAI.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock provider should not need a key: %v", err)
	}

	cfg.Provider = "teleport"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestDiscoverConfigPriority(t *testing.T) {
	for _, v := range []string{"XAI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY"} {
		t.Setenv(v, "")
	}

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("discovered config with no keys set")
	}

	t.Setenv("GEMINI_API_KEY", "g")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "gemini" {
		t.Errorf("provider = %q, want gemini", cfg.Provider)
	}

	// xAI wins when present.
	t.Setenv("XAI_API_KEY", "x")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "xai" {
		t.Errorf("provider = %q, want xai", cfg.Provider)
	}
}
