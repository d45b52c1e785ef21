package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the tables in creation order. Every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS rotation_seen (
		grade INTEGER NOT NULL,
		phase TEXT NOT NULL,
		item_id TEXT NOT NULL,
		seen_at INTEGER NOT NULL,
		PRIMARY KEY (grade, phase, item_id)
	)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		action TEXT NOT NULL,
		grade INTEGER NOT NULL,
		learner_name TEXT NOT NULL DEFAULT '',
		answered INTEGER NOT NULL DEFAULT 0,
		target INTEGER NOT NULL DEFAULT 0,
		percentage INTEGER NOT NULL DEFAULT 0,
		estimated_level REAL NOT NULL DEFAULT 0,
		confidence INTEGER NOT NULL DEFAULT 0,
		report TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS session_events_session_id ON session_events (session_id)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		item_id TEXT NOT NULL,
		subject TEXT NOT NULL,
		topic TEXT NOT NULL,
		tier TEXT NOT NULL,
		chosen TEXT NOT NULL,
		correct_answer TEXT NOT NULL,
		is_correct INTEGER NOT NULL,
		passage_id TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_session_id ON answer_events (session_id)`,
	`CREATE TABLE IF NOT EXISTS llm_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT ''
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
