package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a queried session has no stored report.
var ErrNotFound = errors.New("not found")

// Session event actions.
const (
	ActionStart   = "start"
	ActionEnd     = "end"
	ActionAbandon = "abandon"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SessionEventData records a run starting, finishing or being abandoned.
type SessionEventData struct {
	SessionID      string
	Action         string
	Grade          int
	LearnerName    string
	Answered       int
	Target         int
	Percentage     int
	EstimatedLevel float64
	Confidence     int

	// Report is the JSON-encoded report, set on ActionEnd.
	Report []byte
}

// AnswerEventData records one answered item.
type AnswerEventData struct {
	SessionID     string
	ItemID        string
	Subject       string
	Topic         string
	Tier          string
	Chosen        string
	CorrectAnswer string
	Correct       bool
	PassageID     string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestRecord is a stored LLM request event.
type LLMRequestRecord struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM requests sharing a purpose or a model.
type LLMUsage struct {
	Key          string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// SessionRecord is a stored session event.
type SessionRecord struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// EventRepo provides append and query access to events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentSessions returns finished runs, newest first. Report is not
	// populated.
	RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error)

	// SessionReport returns the stored report JSON of a finished run. An
	// empty id selects the most recent one.
	SessionReport(ctx context.Context, sessionID string) ([]byte, error)

	// SessionAnswers returns the answers recorded for a run in order.
	SessionAnswers(ctx context.Context, sessionID string) ([]AnswerEventData, error)

	// QueryLLMRequests returns LLM request events, newest first. An empty
	// purpose matches every event.
	QueryLLMRequests(ctx context.Context, purpose string, opts QueryOpts) ([]LLMRequestRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
