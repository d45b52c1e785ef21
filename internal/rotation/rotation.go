// Package rotation remembers which items a grade cohort has already been
// shown so that repeated runs prefer fresh items.
package rotation

import (
	"context"
	"fmt"
	"sync"

	"github.com/abhisek/levelcheck/internal/itembank"
)

// Store is a durable, append-only set of item ids keyed by grade and phase.
type Store interface {
	// Load returns every id marked seen for grade and phase.
	Load(ctx context.Context, grade int, phase itembank.Subject) (map[string]struct{}, error)

	// MarkSeen adds id to the set for grade and phase. Marking an id twice
	// is not an error.
	MarkSeen(ctx context.Context, grade int, phase itembank.Subject, id string) error
}

// Resetter is implemented by stores that can clear a grade/phase set.
type Resetter interface {
	Reset(ctx context.Context, grade int, phase itembank.Subject) (int, error)
}

type key struct {
	grade int
	phase itembank.Subject
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu   sync.Mutex
	sets map[key]map[string]struct{}
}

var (
	_ Store    = (*MemoryStore)(nil)
	_ Resetter = (*MemoryStore)(nil)
)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[key]map[string]struct{})}
}

func (m *MemoryStore) Load(_ context.Context, grade int, phase itembank.Subject) (map[string]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]struct{}, len(m.sets[key{grade, phase}]))
	for id := range m.sets[key{grade, phase}] {
		out[id] = struct{}{}
	}
	return out, nil
}

func (m *MemoryStore) MarkSeen(_ context.Context, grade int, phase itembank.Subject, id string) error {
	if id == "" {
		return fmt.Errorf("mark seen: empty id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key{grade, phase}
	set, ok := m.sets[k]
	if !ok {
		set = make(map[string]struct{})
		m.sets[k] = set
	}
	set[id] = struct{}{}
	return nil
}

func (m *MemoryStore) Reset(_ context.Context, grade int, phase itembank.Subject) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key{grade, phase}
	n := len(m.sets[k])
	delete(m.sets, k)
	return n, nil
}
