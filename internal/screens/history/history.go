// Package history lists finished runs and reopens their reports.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/levelcheck/internal/router"
	"github.com/abhisek/levelcheck/internal/screen"
	"github.com/abhisek/levelcheck/internal/screens/deps"
	"github.com/abhisek/levelcheck/internal/screens/result"
	"github.com/abhisek/levelcheck/internal/store"
	"github.com/abhisek/levelcheck/internal/ui/layout"
	"github.com/abhisek/levelcheck/internal/ui/theme"
)

// Limit is how many runs are listed.
const Limit = 50

type historyLoadedMsg struct {
	sessions []store.SessionRecord
	err      error
}

type reportLoadedMsg struct {
	err error
}

// HistoryScreen displays past runs, newest first.
type HistoryScreen struct {
	deps     *deps.Deps
	sessions []store.SessionRecord
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the history screen. d.Events must be set.
func New(d *deps.Deps) *HistoryScreen {
	return &HistoryScreen{deps: d}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events := s.deps.Events
	return func() tea.Msg {
		sessions, err := events.RecentSessions(context.Background(), store.QueryOpts{Limit: Limit})
		return historyLoadedMsg{sessions: sessions, err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Past results"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open report"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.sessions = msg.sessions
		return s, nil

	case reportLoadedMsg:
		s.errMsg = msg.err.Error()
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			s.selected = max(s.selected-1, 0)
		case "down", "j":
			s.selected = min(s.selected+1, max(len(s.sessions)-1, 0))
		case "enter":
			if s.selected < len(s.sessions) {
				return s, s.open(s.sessions[s.selected].SessionID)
			}
		}
	}
	return s, nil
}

// open loads a stored report and pushes a result screen for it.
func (s *HistoryScreen) open(sessionID string) tea.Cmd {
	d := s.deps
	return func() tea.Msg {
		data, err := d.Events.SessionReport(context.Background(), sessionID)
		if err != nil {
			return reportLoadedMsg{err: fmt.Errorf("load report: %w", err)}
		}
		rep, err := store.DecodeReport(data)
		if err != nil {
			return reportLoadedMsg{err: err}
		}
		return router.PushScreenMsg{Screen: result.New(d, rep, false)}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if !s.loaded {
		return layout.Center(theme.Dim.Render("Loading history..."), width, height)
	}
	if len(s.sessions) == 0 && s.errMsg == "" {
		return layout.Center(theme.Hint.Render("No finished quizzes yet."), width, height)
	}

	var b strings.Builder
	b.WriteString(theme.Dim.Render(fmt.Sprintf("  %-16s  %-16s  %5s  %8s  %6s  %5s",
		"Date", "Learner", "Grade", "Answered", "Score", "Level")))
	b.WriteString("\n")

	first := max(0, s.selected-(height-4)+1)
	for i := first; i < len(s.sessions) && i-first < height-3; i++ {
		rec := s.sessions[i]
		name := rec.LearnerName
		if name == "" {
			name = "-"
		}
		line := fmt.Sprintf("%-16s  %-16s  %5d  %4d/%-3d  %5d%%  %5.1f",
			rec.Timestamp.Local().Format("Jan 02 15:04"), truncate(name, 16), rec.Grade,
			rec.Answered, rec.Target, rec.Percentage, rec.EstimatedLevel)
		if i == s.selected {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n" + theme.ErrorText.Render("  "+s.errMsg))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
