package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on the SQL builder and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) insert(ctx context.Context, table string, cols []string, vals []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, cols...)...).
		Values(append([]any{seqNum, time.Now().UnixMilli()}, vals...)...).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, "session_events",
		[]string{"session_id", "action", "grade", "learner_name", "answered", "target",
			"percentage", "estimated_level", "confidence", "report"},
		[]any{data.SessionID, data.Action, data.Grade, data.LearnerName, data.Answered, data.Target,
			data.Percentage, data.EstimatedLevel, data.Confidence, string(data.Report)})
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insert(ctx, "answer_events",
		[]string{"session_id", "item_id", "subject", "topic", "tier", "chosen",
			"correct_answer", "is_correct", "passage_id"},
		[]any{data.SessionID, data.ItemID, data.Subject, data.Topic, data.Tier, data.Chosen,
			data.CorrectAnswer, data.Correct, data.PassageID})
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	err := r.insert(ctx, "llm_events",
		[]string{"provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message"},
		[]any{data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage})
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error) {
	preds := append(rangePreds(opts), entsql.EQ("action", ActionEnd))

	sel := builder().
		Select("sequence", "timestamp", "session_id", "action", "grade", "learner_name",
			"answered", "target", "percentage", "estimated_level", "confidence").
		From(entsql.Table("session_events")).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec SessionRecord
			ts  int64
		)
		err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.Action, &rec.Grade, &rec.LearnerName,
			&rec.Answered, &rec.Target, &rec.Percentage, &rec.EstimatedLevel, &rec.Confidence)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) SessionReport(ctx context.Context, sessionID string) ([]byte, error) {
	preds := []*entsql.Predicate{entsql.EQ("action", ActionEnd)}
	if sessionID != "" {
		preds = append(preds, entsql.EQ("session_id", sessionID))
	}
	query, args := builder().
		Select("report").
		From(entsql.Table("session_events")).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Query()

	var report string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&report)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %q: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query session report: %w", err)
	}
	return []byte(report), nil
}

func (r *eventRepo) SessionAnswers(ctx context.Context, sessionID string) ([]AnswerEventData, error) {
	query, args := builder().
		Select("session_id", "item_id", "subject", "topic", "tier", "chosen",
			"correct_answer", "is_correct", "passage_id").
		From(entsql.Table("answer_events")).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerEventData
	for rows.Next() {
		var a AnswerEventData
		err := rows.Scan(&a.SessionID, &a.ItemID, &a.Subject, &a.Topic, &a.Tier, &a.Chosen,
			&a.CorrectAnswer, &a.Correct, &a.PassageID)
		if err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// rangePreds translates the sequence and time bounds of opts.
func rangePreds(opts QueryOpts) []*entsql.Predicate {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	return preds
}

func (r *eventRepo) QueryLLMRequests(ctx context.Context, purpose string, opts QueryOpts) ([]LLMRequestRecord, error) {
	preds := rangePreds(opts)
	if purpose != "" {
		preds = append(preds, entsql.EQ("purpose", purpose))
	}

	sel := builder().
		Select("sequence", "timestamp", "provider", "model", "purpose", "input_tokens",
			"output_tokens", "latency_ms", "success", "error_message").
		From(entsql.Table("llm_events")).
		OrderBy(entsql.Desc("sequence"))
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestRecord
	for rows.Next() {
		var (
			rec LLMRequestRecord
			ts  int64
		)
		err := rows.Scan(&rec.Sequence, &ts, &rec.Provider, &rec.Model, &rec.Purpose, &rec.InputTokens,
			&rec.OutputTokens, &rec.LatencyMs, &rec.Success, &rec.ErrorMessage)
		if err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return r.llmUsage(ctx, "purpose")
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return r.llmUsage(ctx, "model")
}

func (r *eventRepo) llmUsage(ctx context.Context, column string) ([]LLMUsage, error) {
	query, args := builder().
		Select(
			column,
			entsql.As(entsql.Count("*"), "calls"),
			"SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END)",
			"COALESCE(SUM(input_tokens), 0)",
			"COALESCE(SUM(output_tokens), 0)",
			"CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)",
		).
		From(entsql.Table("llm_events")).
		GroupBy(column).
		OrderBy(column).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage by %s: %w", column, err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var u LLMUsage
		if err := rows.Scan(&u.Key, &u.Calls, &u.Failures, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
