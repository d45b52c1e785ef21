package rotation

import (
	"context"
	"fmt"
	"runtime"
	"testing"

	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/abhisek/levelcheck/internal/itembank"
)

func TestWriter_NoGoroutineUntilFirstMark(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := NewWriter(context.Background(), NewMemoryStore(), zaptest.NewLogger(t))
	w.Flush()
	w.Close()
	w.Close()
	if w.Enqueue(3, itembank.SubjectMath, "m1") {
		t.Error("Enqueue after Close should drop the write")
	}
}

func TestWriter_DroppedTrackersShareOneGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	store := NewMemoryStore()
	w := NewWriter(ctx, store, zaptest.NewLogger(t))

	before := runtime.NumGoroutine()
	for i := range 50 {
		tr := NewTracker(w, 4, nil)
		tr.Begin(ctx, itembank.SubjectMath)
		tr.MarkSeen(fmt.Sprintf("m%d", i))
		// tr is dropped without Close.
	}
	if after := runtime.NumGoroutine(); after > before+1 {
		t.Errorf("goroutines before=%d after=%d, want at most one more", before, after)
	}

	w.Close()
	seen, _ := store.Load(ctx, 4, itembank.SubjectMath)
	if len(seen) != 50 {
		t.Errorf("persisted %d ids, want 50", len(seen))
	}
}

func TestWriter_BeginSeesEarlierRuns(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	w := NewWriter(ctx, store, zaptest.NewLogger(t))
	defer w.Close()

	first := NewTracker(w, 7, nil)
	first.Begin(ctx, itembank.SubjectEnglish)
	first.MarkSeen("e1")

	second := NewTracker(w, 7, nil)
	second.Begin(ctx, itembank.SubjectEnglish)
	if !second.Contains("e1") {
		t.Errorf("second run seen set = %v, want e1", second.Seen())
	}
}
