package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/abhisek/levelcheck/internal/store"
)

func noSleep(context.Context, time.Duration) error { return nil }

func testRetry(p Provider, attempts int) *RetryProvider {
	r := WithRetry(p, RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2,
	}).(*RetryProvider)
	r.sleep = noSleep
	return r
}

func summarySchema() *Schema {
	return &Schema{
		Name: "test-summary",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary": map[string]any{"type": "string", "minLength": 1},
				"level":   map[string]any{"type": "integer", "minimum": 2},
			},
			"required":             []any{"summary"},
			"additionalProperties": false,
		},
	}
}

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	m := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"one"`), Usage: Usage{InputTokens: 3, OutputTokens: 2}},
		MockResponse{Content: json.RawMessage(`"two"`)},
	)
	r1, err := m.Generate(context.Background(), Request{Prompt: "a"})
	require.NoError(t, err)
	assert.Equal(t, `"one"`, r1.Text())
	assert.Equal(t, 5, r1.Usage.Total())
	assert.Equal(t, StopEnd, r1.StopReason)

	r2, err := m.Generate(context.Background(), Request{Prompt: "b"})
	require.NoError(t, err)
	assert.Equal(t, `"two"`, r2.Text())

	_, err = m.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)

	calls := m.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "b", calls[1].Prompt)
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"valid", `{"summary":"Doing well","level":5}`, true},
		{"optional omitted", `{"summary":"Doing well"}`, true},
		{"missing required", `{"level":5}`, false},
		{"wrong type", `{"summary":"x","level":"five"}`, false},
		{"below minimum", `{"summary":"x","level":1}`, false},
		{"extra field", `{"summary":"x","mood":"happy"}`, false},
		{"not json", `Doing well`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(summarySchema(), json.RawMessage(tt.raw))
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			assert.ErrorAs(t, err, &inv)
		})
	}
}

func TestRetry(t *testing.T) {
	down := func() MockResponse { return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}} }
	ok := MockResponse{Content: json.RawMessage(`{"summary":"ok"}`)}
	bad := MockResponse{Content: json.RawMessage(`{"nope":1}`)}

	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{ok}, false, 1},
		{"transient then success", []MockResponse{down(), ok}, false, 2},
		{"all attempts fail", []MockResponse{down(), down(), down(), ok}, true, 3},
		{"rate limit retried", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, ok}, false, 2},
		{"invalid retried once", []MockResponse{bad, ok}, false, 2},
		{"invalid twice gives up", []MockResponse{bad, bad, ok}, true, 2},
		{"max tokens not retried", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, ok}, true, 1},
		{"cancel not retried", []MockResponse{{Err: context.Canceled}, ok}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMockProvider(tt.responses...)
			p := testRetry(m, 3)
			_, err := p.Generate(context.Background(), Request{Schema: summarySchema()})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Len(t, m.Calls(), tt.wantCalls)
		})
	}
}

func TestRetry_StopsWhenContextDone(t *testing.T) {
	m := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Content: json.RawMessage(`{"summary":"ok"}`)},
	)
	p := testRetry(m, 3)
	p.sleep = sleepCtx

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, m.Calls(), 1)
}

func TestBackoff(t *testing.T) {
	r := testRetry(NewMockProvider(), 3)
	for attempt := range 3 {
		base := time.Millisecond << attempt
		got := r.backoff(attempt, errors.New("x"))
		assert.GreaterOrEqual(t, got, base*8/10, "attempt %d", attempt)
		assert.LessOrEqual(t, got, base*12/10, "attempt %d", attempt)
	}
	assert.Equal(t, 7*time.Second, r.backoff(0, &ErrRateLimit{RetryAfter: 7 * time.Second}))
	assert.LessOrEqual(t, r.backoff(20, errors.New("x")), 12*time.Millisecond)
}

type memorySink struct {
	events []store.LLMRequestEventData
	err    error
}

func (s *memorySink) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	s.events = append(s.events, data)
	return s.err
}

func TestRecordingProvider(t *testing.T) {
	sink := &memorySink{}
	m := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"hi"`), Usage: Usage{InputTokens: 12, OutputTokens: 4}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("boom")}},
	)
	p := WithRecording(m, ProviderMock, sink, zaptest.NewLogger(t))

	_, err := p.Generate(context.Background(), Request{Purpose: "narrative"})
	require.NoError(t, err)
	_, err = p.Generate(context.Background(), Request{})
	require.Error(t, err)

	require.Len(t, sink.events, 2)
	assert.Equal(t, store.LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "narrative",
		InputTokens: 12, OutputTokens: 4, LatencyMs: sink.events[0].LatencyMs, Success: true,
	}, sink.events[0])
	assert.False(t, sink.events[1].Success)
	assert.Equal(t, "unknown", sink.events[1].Purpose)
	assert.Contains(t, sink.events[1].ErrorMessage, "boom")
}

func TestRecordingProvider_SinkFailureDoesNotFailRequest(t *testing.T) {
	sink := &memorySink{err: errors.New("disk full")}
	p := WithRecording(NewMockProvider(MockResponse{Content: json.RawMessage(`"x"`)}), ProviderMock, sink, nil)
	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
}

func TestConfigFor(t *testing.T) {
	t.Setenv("LEVELCHECK_ANTHROPIC_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "vendor-key")
	cfg := ConfigFor(ProviderAnthropic, "")
	assert.Equal(t, "vendor-key", cfg.APIKey)
	assert.Equal(t, "claude-haiku", cfg.Model)
	assert.NoError(t, cfg.Validate())

	t.Setenv("LEVELCHECK_ANTHROPIC_API_KEY", "own-key")
	assert.Equal(t, "own-key", ConfigFor(ProviderAnthropic, "").APIKey)

	or := ConfigFor(ProviderOpenRouter, "meta/llama")
	assert.Equal(t, "https://openrouter.ai/api/v1", or.BaseURL)
	assert.Equal(t, "meta/llama", or.Model)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Provider: ProviderMock}.Validate())
	assert.Error(t, Config{Provider: ProviderGemini}.Validate())
	assert.Error(t, Config{Provider: "palm"}.Validate())
}

func TestDiscover(t *testing.T) {
	for _, name := range Providers() {
		info := catalog[name]
		if info.keyEnv != "" {
			t.Setenv(info.keyEnv, "")
		}
		if info.vendorEnv != "" {
			t.Setenv(info.vendorEnv, "")
		}
	}
	_, ok := Discover()
	assert.False(t, ok)

	t.Setenv("OPENAI_API_KEY", "k1")
	t.Setenv("ANTHROPIC_API_KEY", "k2")
	cfg, ok := Discover()
	require.True(t, ok)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
}

func TestResolveModelAndCost(t *testing.T) {
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel(ProviderAnthropic, "claude-haiku"))
	assert.Equal(t, "gemini-2.0-flash", resolveModel(ProviderGemini, "gemini-flash"))
	assert.Equal(t, "custom-model", resolveModel(ProviderGemini, "custom-model"))

	cost, ok := EstimateCost("gpt-4o-mini", 1_000_000, 1_000_000)
	require.True(t, ok)
	assert.InDelta(t, 0.75, cost, 1e-9)
	_, ok = EstimateCost("unknown", 1, 1)
	assert.False(t, ok)
}

func TestNew_Mock(t *testing.T) {
	p, err := New(context.Background(), Config{Provider: ProviderMock}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	_, err = New(context.Background(), Config{Provider: ProviderOpenAI}, nil, nil)
	assert.Error(t, err)
}
