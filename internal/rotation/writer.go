package rotation

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/levelcheck/internal/itembank"
)

// queueSize bounds pending writes across every run sharing a Writer.
const queueSize = 256

// writeTimeout bounds a single durable write.
const writeTimeout = 5 * time.Second

type mark struct {
	grade int
	phase itembank.Subject
	id    string

	// ack, when set, is a flush barrier closed once every earlier mark
	// has been written.
	ack chan struct{}
}

// Writer persists seen marks to a Store on one background goroutine shared
// by every Tracker created from it. The goroutine starts on the first
// queued mark and stops on Close, so runs that are dropped without being
// finished hold nothing open.
type Writer struct {
	store  Store
	logger *zap.Logger

	// ctx carries values for background writes but not cancellation.
	ctx context.Context

	mu      sync.Mutex
	started bool
	closed  bool
	queue   chan mark
	done    chan struct{}
}

// NewWriter returns a writer for store. No goroutine runs until a mark is
// queued. A nil logger is replaced with a no-op logger.
func NewWriter(ctx context.Context, store Store, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{
		store:  store,
		logger: logger.Named("rotation"),
		ctx:    context.WithoutCancel(ctx),
		queue:  make(chan mark, queueSize),
		done:   make(chan struct{}),
	}
}

// Store returns the store the writer persists to.
func (w *Writer) Store() Store { return w.store }

// Enqueue queues a durable write without waiting for the store. It reports
// false when the write was dropped because the queue is full or the writer
// is closed.
func (w *Writer) Enqueue(grade int, phase itembank.Subject, id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		w.logger.Debug("mark seen after close dropped", zap.String("item_id", id))
		return false
	}
	w.startLocked()
	select {
	case w.queue <- mark{grade: grade, phase: phase, id: id}:
		return true
	default:
		w.logger.Warn("rotation queue full, write dropped", zap.String("item_id", id))
		return false
	}
}

// Flush waits until every mark queued before the call has been written.
func (w *Writer) Flush() {
	w.mu.Lock()
	if !w.started || w.closed {
		w.mu.Unlock()
		return
	}
	ack := make(chan struct{})
	w.queue <- mark{ack: ack}
	w.mu.Unlock()
	<-ack
}

// Close stops accepting writes and waits for queued writes to finish.
// It is safe to call more than once.
func (w *Writer) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	started := w.started
	close(w.queue)
	w.mu.Unlock()
	if started {
		<-w.done
	}
}

func (w *Writer) startLocked() {
	if w.started {
		return
	}
	w.started = true
	go w.run()
}

func (w *Writer) run() {
	defer close(w.done)
	for m := range w.queue {
		if m.ack != nil {
			close(m.ack)
			continue
		}
		ctx, cancel := context.WithTimeout(w.ctx, writeTimeout)
		if err := w.store.MarkSeen(ctx, m.grade, m.phase, m.id); err != nil {
			w.logger.Warn("persist seen item failed",
				zap.Int("grade", m.grade),
				zap.String("phase", string(m.phase)),
				zap.String("item_id", m.id),
				zap.Error(err))
		}
		cancel()
	}
}
