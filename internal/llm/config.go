package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures a model provider.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "mock".
	Provider string

	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout bounds a single generation call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
	// BaseURL points at any OpenAI-compatible endpoint when set.
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// RetryConfig shapes the backoff applied to transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig favors stronger default models than a drill app would;
// authors read every word of the output.
func DefaultConfig() Config {
	return Config{
		Provider:  "anthropic",
		Anthropic: AnthropicConfig{Model: "claude-sonnet"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o"},
		Gemini:    GeminiConfig{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ConfigFromEnv reads the COURSEFORGE_* variables over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.Provider = envOr("COURSEFORGE_LLM_PROVIDER", cfg.Provider)

	cfg.Anthropic.APIKey = os.Getenv("COURSEFORGE_ANTHROPIC_API_KEY")
	cfg.Anthropic.Model = envOr("COURSEFORGE_ANTHROPIC_MODEL", cfg.Anthropic.Model)

	cfg.OpenAI.APIKey = os.Getenv("COURSEFORGE_OPENAI_API_KEY")
	cfg.OpenAI.Model = envOr("COURSEFORGE_OPENAI_MODEL", cfg.OpenAI.Model)
	cfg.OpenAI.BaseURL = os.Getenv("COURSEFORGE_OPENAI_BASE_URL")

	cfg.Gemini.APIKey = os.Getenv("COURSEFORGE_GEMINI_API_KEY")
	cfg.Gemini.Model = envOr("COURSEFORGE_GEMINI_MODEL", cfg.Gemini.Model)

	return cfg
}

// DiscoverConfig probes the providers' conventional key variables in
// priority order and returns a Config for the first one set.
func DiscoverConfig() (Config, bool) {
	probes := []struct {
		env      string
		provider string
		apply    func(*Config, string)
	}{
		{"ANTHROPIC_API_KEY", "anthropic", func(c *Config, k string) { c.Anthropic.APIKey = k }},
		{"OPENAI_API_KEY", "openai", func(c *Config, k string) { c.OpenAI.APIKey = k }},
		{"GEMINI_API_KEY", "gemini", func(c *Config, k string) { c.Gemini.APIKey = k }},
	}

	for _, p := range probes {
		if key := os.Getenv(p.env); key != "" {
			cfg := DefaultConfig()
			cfg.Provider = p.provider
			p.apply(&cfg, key)
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("COURSEFORGE_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("COURSEFORGE_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("COURSEFORGE_GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
