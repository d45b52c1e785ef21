package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// New creates the provider named by cfg, wrapped so that each attempt is
// recorded and transient failures are retried.
func New(ctx context.Context, cfg Config, sink EventSink, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg)
	case ProviderOpenAI, ProviderOpenRouter:
		base, err = NewOpenAIProvider(cfg)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithRecording(base, cfg.Provider, sink, logger), cfg.Retry), nil
}
