package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/levelcheck/internal/itembank"
	"github.com/abhisek/levelcheck/internal/rotation"
)

const rotationTable = "rotation_seen"

// RotationRepo is the durable rotation.Store. Rows are only ever inserted,
// except by an explicit Reset.
type RotationRepo struct {
	db  *sql.DB
	now func() time.Time
}

var (
	_ rotation.Store    = (*RotationRepo)(nil)
	_ rotation.Resetter = (*RotationRepo)(nil)
)

// RotationCount summarizes one grade and phase.
type RotationCount struct {
	Grade    int
	Phase    itembank.Subject
	Count    int
	LastSeen time.Time
}

func (r *RotationRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *RotationRepo) Load(ctx context.Context, grade int, phase itembank.Subject) (map[string]struct{}, error) {
	query, args := builder().
		Select("item_id").
		From(entsql.Table(rotationTable)).
		Where(entsql.And(
			entsql.EQ("grade", grade),
			entsql.EQ("phase", string(phase)),
		)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load seen items: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan seen item: %w", err)
		}
		seen[id] = struct{}{}
	}
	return seen, rows.Err()
}

func (r *RotationRepo) MarkSeen(ctx context.Context, grade int, phase itembank.Subject, id string) error {
	if id == "" {
		return fmt.Errorf("mark seen: empty id")
	}
	query, args := builder().
		Insert(rotationTable).
		Columns("grade", "phase", "item_id", "seen_at").
		Values(grade, string(phase), id, r.clock().UnixMilli()).
		OnConflict(entsql.DoNothing()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark seen %s: %w", id, err)
	}
	return nil
}

// Reset deletes the seen set for grade and phase and returns how many ids
// were removed.
func (r *RotationRepo) Reset(ctx context.Context, grade int, phase itembank.Subject) (int, error) {
	query, args := builder().
		Delete(rotationTable).
		Where(entsql.And(
			entsql.EQ("grade", grade),
			entsql.EQ("phase", string(phase)),
		)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("reset rotation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reset rotation: %w", err)
	}
	return int(n), nil
}

// Summary returns the size of every non-empty seen set, ordered by grade
// then phase.
func (r *RotationRepo) Summary(ctx context.Context) ([]RotationCount, error) {
	query, args := builder().
		Select("grade", "phase", entsql.As(entsql.Count("*"), "n"), entsql.As(entsql.Max("seen_at"), "last")).
		From(entsql.Table(rotationTable)).
		GroupBy("grade", "phase").
		OrderBy("grade", "phase").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("rotation summary: %w", err)
	}
	defer rows.Close()

	var out []RotationCount
	for rows.Next() {
		var (
			c     RotationCount
			phase string
			last  int64
		)
		if err := rows.Scan(&c.Grade, &phase, &c.Count, &last); err != nil {
			return nil, fmt.Errorf("scan rotation summary: %w", err)
		}
		c.Phase = itembank.Subject(phase)
		c.LastSeen = time.UnixMilli(last)
		out = append(out, c)
	}
	return out, rows.Err()
}
