package quiz

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/abhisek/levelcheck/internal/itembank"
	"github.com/abhisek/levelcheck/internal/router"
	"github.com/abhisek/levelcheck/internal/screens/deps"
	"github.com/abhisek/levelcheck/internal/screens/result"
	"github.com/abhisek/levelcheck/internal/session"
	"github.com/abhisek/levelcheck/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func newTestQuiz(t *testing.T) (*QuizScreen, *session.Session) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	bank := itembank.NewBuiltin(itembank.DefaultSeed)
	engine, err := session.NewEngine(bank, nil, session.DefaultConfig(),
		session.WithRand(rand.New(rand.NewPCG(7, 11))), session.WithLogger(logger))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(engine.Close)
	d := &deps.Deps{Engine: engine, Recorder: store.NewRecorder(nil, nil), Logger: logger}

	s, step, err := engine.Start(context.Background(), 4, "Sam")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if step.Kind != session.StepNextItem {
		t.Fatalf("first step = %v, want next item", step.Kind)
	}
	return New(d, s, step.Item), s
}

func TestQuizScreen_AnswersThroughToResult(t *testing.T) {
	q, s := newTestQuiz(t)

	var final tea.Msg
	sawInterlude := false
	for range 60 {
		_, cmd := q.Update(key('1'))
		if q.interlude {
			sawInterlude = true
		}
		if cmd == nil {
			continue
		}
		msg := cmd()
		if _, ok := msg.(router.ReplaceScreenMsg); ok {
			final = msg
			break
		}
	}

	if final == nil {
		t.Fatal("quiz never produced a result screen")
	}
	if _, ok := final.(router.ReplaceScreenMsg).Screen.(*result.ResultScreen); !ok {
		t.Errorf("replacement screen = %T, want *result.ResultScreen", final.(router.ReplaceScreenMsg).Screen)
	}
	if !sawInterlude {
		t.Error("expected an interlude between math and English")
	}
	if !s.Done() || s.Abandoned {
		t.Errorf("session done=%v abandoned=%v, want finished", s.Done(), s.Abandoned)
	}
	if s.Report == nil || s.Report.Answered != s.Answered() {
		t.Errorf("report missing or out of step with %d answers", s.Answered())
	}
}

func TestQuizScreen_EscConfirmAbandons(t *testing.T) {
	q, s := newTestQuiz(t)

	q.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !q.confirmQuit {
		t.Fatal("expected quit confirmation")
	}
	if !strings.Contains(q.View(100, 30), "Stop the quiz") {
		t.Error("confirmation view missing prompt")
	}

	_, cmd := q.Update(key('y'))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if !s.Abandoned {
		t.Error("session should be abandoned")
	}
}

func TestQuizScreen_EscThenResume(t *testing.T) {
	q, s := newTestQuiz(t)
	defer q.OnQuit()

	q.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	q.Update(key('n'))
	if q.confirmQuit {
		t.Error("expected confirmation dismissed")
	}
	if s.Done() {
		t.Error("session should still be running")
	}
	if s.Answered() != 0 {
		t.Errorf("answered = %d, want 0", s.Answered())
	}
}

func TestQuizScreen_StatusAndView(t *testing.T) {
	q, _ := newTestQuiz(t)
	defer q.OnQuit()

	if got := q.Status(); got != "Question 1 of 20" {
		t.Errorf("Status = %q", got)
	}
	if q.Title() != "Math" {
		t.Errorf("Title = %q, want Math", q.Title())
	}
	view := q.View(100, 30)
	if !strings.Contains(view, strings.Fields(q.item.Stem)[0]) {
		t.Error("view should contain the stem")
	}

	q.Update(key('2'))
	if got := q.Status(); got != "Question 2 of 20" {
		t.Errorf("Status after one answer = %q", got)
	}
}

func TestQuizScreen_OnQuitIsIdempotent(t *testing.T) {
	q, s := newTestQuiz(t)
	q.OnQuit()
	q.OnQuit()
	if !s.Abandoned {
		t.Error("session should be abandoned")
	}
}
