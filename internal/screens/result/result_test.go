package result

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap/zaptest"

	"github.com/abhisek/levelcheck/internal/itembank"
	"github.com/abhisek/levelcheck/internal/llm"
	"github.com/abhisek/levelcheck/internal/narrative"
	"github.com/abhisek/levelcheck/internal/report"
	"github.com/abhisek/levelcheck/internal/router"
	"github.com/abhisek/levelcheck/internal/scoring"
	"github.com/abhisek/levelcheck/internal/screens/deps"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testReport() *report.Report {
	return report.Synthesize(report.Input{
		SessionID: "s-1",
		Grade:     5,
		Tallies: scoring.Tallies{
			itembank.TopicNumberOps:     {Correct: 2, Total: 2},
			itembank.TopicFractions:     {Correct: 0, Total: 2},
			itembank.TopicLiterary:      {Correct: 3, Total: 5},
			itembank.TopicInformational: {Correct: 5, Total: 5},
		},
		Targets: map[itembank.Subject]int{itembank.SubjectMath: 4, itembank.SubjectEnglish: 10},
		Answers: []report.AnswerRecord{
			{ItemID: "m1", Subject: itembank.SubjectMath, Topic: itembank.TopicFractions,
				Stem: "Which is larger, 2/3 or 3/4?", Chosen: "2/3", Correct: "3/4"},
		},
		GeneratedAt: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
	})
}

const narrativeJSON = `{"summary": "Reading is a strength.", "highlights": ["Informational texts"], "next_steps": ["Practice fractions"]}`

func narratorDeps(t *testing.T, responses ...llm.MockResponse) *deps.Deps {
	logger := zaptest.NewLogger(t)
	return &deps.Deps{
		Narrator: narrative.NewService(llm.NewMockProvider(responses...), narrative.DefaultConfig(), logger),
		Logger:   logger,
	}
}

func TestResultScreen_ViewWithoutNarrator(t *testing.T) {
	s := New(&deps.Deps{}, testReport(), true)
	if cmd := s.Init(); cmd != nil {
		t.Error("expected no narrative command without a narrator")
	}
	view := s.View(100, 200)
	for _, want := range []string{"Grade 5 report", "Subjects", "Priorities", "Action plan"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "parent summary") {
		t.Error("narrative hint shown without a narrator")
	}
	if !strings.HasPrefix(s.Status(), "Level ") {
		t.Errorf("Status = %q", s.Status())
	}
}

func TestResultScreen_AutoNarrative(t *testing.T) {
	d := narratorDeps(t, llm.MockResponse{Content: json.RawMessage(narrativeJSON)})
	s := New(d, testReport(), true)

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected narrative command")
	}
	if s.narrState != narrativeLoading {
		t.Errorf("state = %v, want loading", s.narrState)
	}

	s.Update(cmd())
	if s.narrState != narrativeReady {
		t.Fatalf("state = %v, want ready (err %q)", s.narrState, s.narrErr)
	}
	if !strings.Contains(s.View(100, 200), "Reading is a strength.") {
		t.Error("view missing narrative summary")
	}
}

func TestResultScreen_NarrativeOnDemandAndRetry(t *testing.T) {
	d := narratorDeps(t,
		llm.MockResponse{Err: errors.New("boom")},
		llm.MockResponse{Content: json.RawMessage(narrativeJSON)},
	)
	s := New(d, testReport(), false)
	if s.Init() != nil {
		t.Fatal("narrative should wait for a key press")
	}

	_, cmd := s.Update(key('g'))
	if cmd == nil {
		t.Fatal("expected narrative command on g")
	}
	s.Update(cmd())
	if s.narrState != narrativeFailed {
		t.Fatalf("state = %v, want failed", s.narrState)
	}
	if !strings.Contains(s.View(100, 200), "unavailable") {
		t.Error("failure not shown")
	}

	_, cmd = s.Update(key('g'))
	if cmd == nil {
		t.Fatal("expected retry command")
	}
	s.Update(cmd())
	if s.narrState != narrativeReady {
		t.Errorf("state = %v, want ready", s.narrState)
	}

	if _, cmd := s.Update(key('g')); cmd != nil {
		t.Error("no further request once ready")
	}
}

func TestResultScreen_IgnoresStaleNarrative(t *testing.T) {
	d := narratorDeps(t)
	s := New(d, testReport(), false)
	s.Update(narrativeMsg{sessionID: "other", n: &narrative.Narrative{Summary: "x"}})
	if s.narrState != narrativeIdle {
		t.Errorf("state = %v, want idle", s.narrState)
	}
}

func TestResultScreen_Keys(t *testing.T) {
	s := New(&deps.Deps{}, testReport(), false)

	s.Update(key('a'))
	if !s.showLog {
		t.Fatal("a should show the answer log")
	}
	if !strings.Contains(s.View(100, 200), "Answer log") {
		t.Error("answer log view missing heading")
	}
	s.Update(key('a'))
	if s.showLog {
		t.Error("a should toggle the log off")
	}

	s.View(100, 5)
	s.Update(key('j'))
	s.Update(key('j'))
	if s.offset != 2 {
		t.Errorf("offset = %d, want 2", s.offset)
	}
	s.Update(key('k'))
	if s.offset != 1 {
		t.Errorf("offset = %d, want 1", s.offset)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	if s.offset != 0 {
		t.Errorf("offset = %d after home, want 0", s.offset)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop on esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}

	if _, cmd := s.Update(key('q')); cmd == nil {
		t.Error("expected quit command on q")
	}
}
