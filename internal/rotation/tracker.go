package rotation

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/levelcheck/internal/itembank"
)

// Tracker serves one learner run. It loads the seen set once per phase and
// records newly administered items locally and, through the shared Writer,
// in the Store. The caller never waits on the Store for a mark. A Tracker
// owns no goroutine, so a run may be dropped without closing it.
type Tracker struct {
	writer *Writer
	grade  int
	logger *zap.Logger

	phase  itembank.Subject
	seen   map[string]struct{}
	closed bool
}

// NewTracker returns a tracker for grade that persists through w.
// A nil logger is replaced with a no-op logger.
func NewTracker(w *Writer, grade int, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		writer: w,
		grade:  grade,
		logger: logger.Named("rotation"),
		seen:   make(map[string]struct{}),
	}
}

// Begin loads the seen set for phase after flushing writes queued so far,
// so earlier runs on the same writer are visible. A load failure is logged
// and leaves the seen set empty so selection can proceed.
func (t *Tracker) Begin(ctx context.Context, phase itembank.Subject) {
	t.phase = phase
	t.writer.Flush()
	seen, err := t.writer.Store().Load(ctx, t.grade, phase)
	if err != nil {
		t.logger.Warn("load seen set failed, continuing without rotation",
			zap.Int("grade", t.grade),
			zap.String("phase", string(phase)),
			zap.Error(err))
		seen = make(map[string]struct{})
	}
	t.seen = seen
	t.logger.Debug("seen set loaded",
		zap.Int("grade", t.grade),
		zap.String("phase", string(phase)),
		zap.Int("count", len(seen)))
}

// Phase returns the phase passed to the last Begin.
func (t *Tracker) Phase() itembank.Subject { return t.phase }

// Seen returns the current phase's seen set. Callers must not modify it.
func (t *Tracker) Seen() map[string]struct{} { return t.seen }

// Contains reports whether id is in the seen set.
func (t *Tracker) Contains(id string) bool {
	_, ok := t.seen[id]
	return ok
}

// MarkSeen adds id to the local seen set and queues the durable write.
// After Close only the local set is updated.
func (t *Tracker) MarkSeen(id string) {
	t.seen[id] = struct{}{}
	if t.closed {
		t.logger.Debug("mark seen after close dropped", zap.String("item_id", id))
		return
	}
	t.writer.Enqueue(t.grade, t.phase, id)
}

// Close stops queuing writes for this run and waits for the ones already
// queued. It is safe to call more than once.
func (t *Tracker) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.writer.Flush()
}
