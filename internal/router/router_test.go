package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/levelcheck/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type pingMsg struct{}

func TestNavigation(t *testing.T) {
	welcome := &stubScreen{title: "welcome"}
	quiz := &stubScreen{title: "quiz"}
	result := &stubScreen{title: "result"}
	r := New(welcome)

	r.Update(PushScreenMsg{Screen: quiz})
	if r.Depth() != 2 || r.Active() != quiz || !quiz.initRan {
		t.Fatalf("push: depth=%d active=%q init=%v", r.Depth(), r.Active().Title(), quiz.initRan)
	}

	r.Update(ReplaceScreenMsg{Screen: result})
	if r.Depth() != 2 || r.Active() != result || !result.initRan {
		t.Fatalf("replace: depth=%d active=%q", r.Depth(), r.Active().Title())
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active() != welcome {
		t.Fatalf("pop: depth=%d active=%q", r.Depth(), r.Active().Title())
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Errorf("pop at bottom: depth=%d, want 1", r.Depth())
	}
}

func TestReset(t *testing.T) {
	r := New(&stubScreen{title: "a"})
	r.Push(&stubScreen{title: "b"})
	r.Push(&stubScreen{title: "c"})

	fresh := &stubScreen{title: "fresh"}
	r.Update(ResetMsg{Screen: fresh})
	if r.Depth() != 1 || r.Active() != fresh || !fresh.initRan {
		t.Errorf("reset: depth=%d active=%q", r.Depth(), r.Active().Title())
	}
}

func TestForwardsToActive(t *testing.T) {
	bottom := &stubScreen{title: "bottom"}
	top := &stubScreen{title: "top"}
	r := New(bottom)
	r.Push(top)

	r.Update(pingMsg{})
	if len(top.got) != 1 || len(bottom.got) != 0 {
		t.Errorf("top got %d, bottom got %d messages", len(top.got), len(bottom.got))
	}
	if r.View(80, 24) != "top" {
		t.Errorf("View = %q", r.View(80, 24))
	}
}
