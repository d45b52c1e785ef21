package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/levelcheck/internal/store"
)

// EventSink receives one event per provider call; store.EventRepo
// satisfies it.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// RecordingProvider logs every call and appends it to an EventSink.
type RecordingProvider struct {
	inner    Provider
	provider string
	sink     EventSink
	logger   *zap.Logger
}

// WithRecording wraps p. A nil sink only logs.
func WithRecording(p Provider, provider string, sink EventSink, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordingProvider{inner: p, provider: provider, sink: sink, logger: logger.Named("llm")}
}

func (r *RecordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)
	latency := time.Since(start)

	purpose := req.Purpose
	if purpose == "" {
		purpose = "unknown"
	}
	data := store.LLMRequestEventData{
		Provider:  r.provider,
		Model:     r.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	r.logger.Info("llm request",
		zap.String("provider", data.Provider),
		zap.String("model", data.Model),
		zap.String("purpose", purpose),
		zap.Int("input_tokens", data.InputTokens),
		zap.Int("output_tokens", data.OutputTokens),
		zap.Duration("latency", latency),
		zap.Error(err))

	if r.sink != nil {
		if serr := r.sink.AppendLLMRequest(ctx, data); serr != nil {
			r.logger.Warn("record llm request failed", zap.Error(serr))
		}
	}
	return resp, err
}

func (r *RecordingProvider) ModelID() string {
	return r.inner.ModelID()
}
