package llm

import "sort"

// Provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// providerInfo describes how to configure one provider.
type providerInfo struct {
	// keyEnv is the levelcheck-specific API key variable; vendorEnv is the
	// vendor's conventional one, consulted second.
	keyEnv    string
	vendorEnv string

	defaultModel string
	baseURL      string

	// aliases maps short model names to model ids.
	aliases map[string]string
}

var catalog = map[string]providerInfo{
	ProviderAnthropic: {
		keyEnv:       "LEVELCHECK_ANTHROPIC_API_KEY",
		vendorEnv:    "ANTHROPIC_API_KEY",
		defaultModel: "claude-haiku",
		aliases: map[string]string{
			"claude-sonnet": "claude-sonnet-4-20250514",
			"claude-haiku":  "claude-haiku-4-5-20251001",
		},
	},
	ProviderOpenAI: {
		keyEnv:       "LEVELCHECK_OPENAI_API_KEY",
		vendorEnv:    "OPENAI_API_KEY",
		defaultModel: "gpt-4o-mini",
	},
	ProviderGemini: {
		keyEnv:       "LEVELCHECK_GEMINI_API_KEY",
		vendorEnv:    "GEMINI_API_KEY",
		defaultModel: "gemini-flash",
		aliases: map[string]string{
			"gemini-flash": "gemini-2.0-flash",
			"gemini-pro":   "gemini-2.5-pro",
		},
	},
	ProviderOpenRouter: {
		keyEnv:       "LEVELCHECK_OPENROUTER_API_KEY",
		vendorEnv:    "OPENROUTER_API_KEY",
		defaultModel: "google/gemini-2.0-flash-001",
		baseURL:      "https://openrouter.ai/api/v1",
	},
	ProviderMock: {},
}

// discoveryOrder is the order in which vendor keys are probed.
var discoveryOrder = []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter}

// Providers returns the known provider names, sorted.
func Providers() []string {
	out := make([]string, 0, len(catalog))
	for name := range catalog {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// resolveModel expands a model alias for provider; unknown names pass
// through unchanged.
func resolveModel(provider, model string) string {
	if id, ok := catalog[provider].aliases[model]; ok {
		return id
	}
	return model
}

// modelCost is USD per million tokens.
type modelCost struct {
	input, output float64
}

// costs covers the default models of each provider.
var costs = map[string]modelCost{
	"claude-haiku-4-5-20251001":   {1, 5},
	"claude-sonnet-4-20250514":    {3, 15},
	"gpt-4o-mini":                 {0.15, 0.6},
	"gpt-4o":                      {2.5, 10},
	"gpt-4.1-mini":                {0.4, 1.6},
	"gemini-2.0-flash":            {0.1, 0.4},
	"gemini-2.5-flash":            {0.3, 2.5},
	"gemini-2.5-pro":              {1.25, 10},
	"google/gemini-2.0-flash-001": {0.1, 0.4},
}

// EstimateCost returns the USD cost of a request, or false when the model's
// price is unknown.
func EstimateCost(model string, inputTokens, outputTokens int) (float64, bool) {
	c, ok := costs[model]
	if !ok {
		return 0, false
	}
	return (float64(inputTokens)*c.input + float64(outputTokens)*c.output) / 1_000_000, true
}
