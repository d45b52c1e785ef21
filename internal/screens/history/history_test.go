package history

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/levelcheck/internal/itembank"
	"github.com/abhisek/levelcheck/internal/report"
	"github.com/abhisek/levelcheck/internal/router"
	"github.com/abhisek/levelcheck/internal/scoring"
	"github.com/abhisek/levelcheck/internal/screens/deps"
	"github.com/abhisek/levelcheck/internal/screens/result"
	"github.com/abhisek/levelcheck/internal/store"
)

func testDeps(t *testing.T) *deps.Deps {
	t.Helper()
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	events := s.EventRepo()
	return &deps.Deps{Events: events, Recorder: store.NewRecorder(events, nil)}
}

func finishRun(d *deps.Deps, id, learner string) {
	rep := report.Synthesize(report.Input{
		SessionID:   id,
		Grade:       6,
		LearnerName: learner,
		Tallies: scoring.Tallies{
			itembank.TopicAlgebra:  {Correct: 3, Total: 4},
			itembank.TopicLanguage: {Correct: 2, Total: 2},
		},
		Targets:     map[itembank.Subject]int{itembank.SubjectMath: 4, itembank.SubjectEnglish: 2},
		GeneratedAt: time.Now(),
	})
	ctx := context.Background()
	d.Recorder.Started(ctx, id, 6, learner, 6)
	d.Recorder.Finished(ctx, rep)
}

func load(t *testing.T, h *HistoryScreen) {
	t.Helper()
	cmd := h.Init()
	if cmd == nil {
		t.Fatal("expected load command")
	}
	h.Update(cmd())
	if !h.loaded {
		t.Fatal("history not loaded")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	h := New(testDeps(t))
	load(t, h)
	if !strings.Contains(h.View(100, 30), "No finished quizzes") {
		t.Error("expected empty message")
	}
	if _, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("enter on an empty list should do nothing")
	}
}

func TestHistoryScreen_ListAndOpen(t *testing.T) {
	d := testDeps(t)
	finishRun(d, "run-1", "Avery")
	finishRun(d, "run-2", "Blake")

	h := New(d)
	load(t, h)
	if len(h.sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(h.sessions))
	}
	view := h.View(120, 30)
	for _, name := range []string{"Avery", "Blake"} {
		if !strings.Contains(view, name) {
			t.Errorf("view missing %q", name)
		}
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if h.selected != 1 {
		t.Errorf("selected = %d, want 1", h.selected)
	}

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected open command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	rs, ok := push.Screen.(*result.ResultScreen)
	if !ok {
		t.Fatalf("pushed %T, want *result.ResultScreen", push.Screen)
	}
	if !strings.Contains(rs.View(100, 200), "Avery") {
		t.Error("opened report should be the older run")
	}
}

func TestHistoryScreen_OpenMissingReport(t *testing.T) {
	h := New(testDeps(t))
	h.Update(reportLoadedMsg{err: fmt.Errorf("load report: not found")})
	h.loaded = true
	if !strings.Contains(h.View(100, 30), "not found") {
		t.Error("expected error in view")
	}
}

func TestHistoryScreen_Esc(t *testing.T) {
	h := New(testDeps(t))
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
