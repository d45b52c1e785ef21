package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures one provider.
type Config struct {
	Provider string
	Model    string
	APIKey   string

	// BaseURL overrides the endpoint of OpenAI-compatible providers.
	BaseURL string

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
	Retry   RetryConfig
}

// RetryConfig configures retries of transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetry is three attempts with exponential backoff from one second.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2,
	}
}

// ConfigFor builds a Config for provider, filling the model, API key and
// base URL from the environment and the catalog. An empty model selects the
// provider's default.
func ConfigFor(provider, model string) Config {
	info := catalog[provider]
	cfg := Config{
		Provider: provider,
		Model:    model,
		BaseURL:  info.baseURL,
		Timeout:  30 * time.Second,
		Retry:    DefaultRetry(),
	}
	if cfg.Model == "" {
		cfg.Model = info.defaultModel
	}
	for _, env := range []string{info.keyEnv, info.vendorEnv} {
		if env == "" {
			continue
		}
		if k := os.Getenv(env); k != "" {
			cfg.APIKey = k
			break
		}
	}
	if provider == ProviderOpenAI {
		if u := os.Getenv("LEVELCHECK_OPENAI_BASE_URL"); u != "" {
			cfg.BaseURL = u
		}
	}
	return cfg
}

// Discover returns a Config for the first provider whose vendor API key is
// set, probing Gemini, OpenAI, Anthropic, then OpenRouter.
func Discover() (Config, bool) {
	for _, name := range discoveryOrder {
		cfg := ConfigFor(name, "")
		if cfg.APIKey != "" {
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the provider is known and has an API key.
func (c Config) Validate() error {
	info, ok := catalog[c.Provider]
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Provider != ProviderMock && c.APIKey == "" {
		return fmt.Errorf("%s is required for the %s provider", info.keyEnv, c.Provider)
	}
	return nil
}
