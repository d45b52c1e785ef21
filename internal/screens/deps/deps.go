// Package deps carries the services shared by the TUI screens.
package deps

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/levelcheck/internal/narrative"
	"github.com/abhisek/levelcheck/internal/session"
	"github.com/abhisek/levelcheck/internal/store"
)

// Deps is passed by pointer to every screen. Events and Narrator may be
// nil, which disables history and narratives respectively.
type Deps struct {
	Engine   *session.Engine
	Recorder *store.Recorder
	Events   store.EventRepo
	Narrator *narrative.Service

	// NarrativeTimeout bounds one narrative request; zero means no limit.
	NarrativeTimeout time.Duration

	// DefaultGrade preselects the grade on the welcome screen.
	DefaultGrade int

	Logger *zap.Logger
}

// Context returns the base context for screen commands.
func (d *Deps) Context() context.Context {
	return context.Background()
}

// NarrativeContext returns a context bounded by NarrativeTimeout.
func (d *Deps) NarrativeContext() (context.Context, context.CancelFunc) {
	if d.NarrativeTimeout <= 0 {
		return context.WithCancel(d.Context())
	}
	return context.WithTimeout(d.Context(), d.NarrativeTimeout)
}

// Log returns the logger, never nil.
func (d *Deps) Log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
