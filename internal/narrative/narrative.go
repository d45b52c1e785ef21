// Package narrative asks an LLM to turn a finished report into a short
// note for a parent or tutor.
package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/levelcheck/internal/llm"
	"github.com/abhisek/levelcheck/internal/report"
)

// Purpose labels narrative requests in the LLM event log.
const Purpose = "narrative"

// ErrEmptyReport is returned for a report with no answered items.
var ErrEmptyReport = errors.New("report has no answers to describe")

// Narrative is a plain-language reading of one report.
type Narrative struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	NextSteps  []string `json:"next_steps"`
}

// String renders the narrative as indented plain text.
func (n *Narrative) String() string {
	var b strings.Builder
	b.WriteString(n.Summary)
	b.WriteString("\n")
	if len(n.Highlights) > 0 {
		b.WriteString("\nWhat went well:\n")
		for _, h := range n.Highlights {
			fmt.Fprintf(&b, "  - %s\n", h)
		}
	}
	if len(n.NextSteps) > 0 {
		b.WriteString("\nTry next:\n")
		for _, s := range n.NextSteps {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}
	return b.String()
}

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used by the CLI and TUI.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   600,
		Temperature: 0.4,
	}
}

// Service generates narratives through an llm.Provider.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// NewService creates a narrative service. A nil logger disables logging.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	return &Service{provider: provider, cfg: cfg, logger: logger}
}

// Generate writes a narrative for r. The learner's name is never sent to
// the provider.
func (s *Service) Generate(ctx context.Context, r *report.Report) (*Narrative, error) {
	if r == nil || r.Answered == 0 {
		return nil, ErrEmptyReport
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		Purpose:     Purpose,
		System:      systemPrompt,
		Prompt:      buildPrompt(r),
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("narrative generation: %w", err)
	}

	var n Narrative
	if err := json.Unmarshal(resp.Content, &n); err != nil {
		return nil, fmt.Errorf("parse narrative response: %w", err)
	}
	n.Summary = strings.TrimSpace(n.Summary)
	if n.Summary == "" {
		return nil, &llm.ErrInvalidResponse{Err: errors.New("empty narrative summary")}
	}

	s.logger.Debug("narrative generated",
		zap.String("session_id", r.SessionID),
		zap.String("model", resp.Model),
		zap.Int("highlights", len(n.Highlights)),
		zap.Int("next_steps", len(n.NextSteps)))
	return &n, nil
}
