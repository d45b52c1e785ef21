// Package llm is a small, provider-neutral client for structured text
// generation. The narrative writer is its only consumer.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one response per request.
type Provider interface {
	// Generate sends req and returns the response. When req.Schema is set
	// the content is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider is configured to use.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	// Purpose labels the request in the event log, e.g. "narrative".
	Purpose string

	System string
	Prompt string

	// Schema, when set, asks the provider for JSON matching it.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema.
type Schema struct {
	// Name is kebab-case; it doubles as the OpenAI schema name.
	Name        string
	Description string
	Definition  map[string]any
}

// Stop reasons, normalized across providers.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is a provider's output.
type Response struct {
	// Content is the validated JSON when a schema was requested, and the
	// raw text otherwise.
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Text returns Content as a string.
func (r *Response) Text() string {
	return string(r.Content)
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}
