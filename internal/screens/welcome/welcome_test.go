package welcome

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap/zaptest"

	"github.com/abhisek/levelcheck/internal/itembank"
	"github.com/abhisek/levelcheck/internal/router"
	"github.com/abhisek/levelcheck/internal/screens/deps"
	"github.com/abhisek/levelcheck/internal/screens/history"
	"github.com/abhisek/levelcheck/internal/screens/quiz"
	"github.com/abhisek/levelcheck/internal/screens/result"
	"github.com/abhisek/levelcheck/internal/session"
	"github.com/abhisek/levelcheck/internal/store"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testDeps(t *testing.T, bank itembank.Bank) *deps.Deps {
	t.Helper()
	logger := zaptest.NewLogger(t)
	engine, err := session.NewEngine(bank, nil, session.DefaultConfig(),
		session.WithRand(rand.New(rand.NewPCG(1, 2))), session.WithLogger(logger))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(engine.Close)
	return &deps.Deps{
		Engine:       engine,
		Recorder:     store.NewRecorder(nil, nil),
		DefaultGrade: 4,
		Logger:       logger,
	}
}

func TestWelcomeScreen_StartPushesQuiz(t *testing.T) {
	w := New(testDeps(t, itembank.NewBuiltin(itembank.DefaultSeed)))
	w.Init()

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	q, ok := push.Screen.(*quiz.QuizScreen)
	if !ok {
		t.Fatalf("pushed %T, want *quiz.QuizScreen", push.Screen)
	}
	defer q.OnQuit()

	if got := q.Status(); got != "Question 1 of 20" {
		t.Errorf("quiz status = %q", got)
	}
}

func TestWelcomeScreen_GradeSelection(t *testing.T) {
	w := New(testDeps(t, itembank.NewBuiltin(itembank.DefaultSeed)))
	w.Init()

	w.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if w.focus != fieldGrade {
		t.Fatalf("focus = %d, want grade", w.focus)
	}
	w.Update(key('7'))
	if w.grade.Value != 7 {
		t.Errorf("grade = %d, want 7", w.grade.Value)
	}
	w.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	w.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if w.grade.Value != itembank.MaxGrade {
		t.Errorf("grade = %d, want clamp at %d", w.grade.Value, itembank.MaxGrade)
	}
	w.Update(key('1'))
	if w.grade.Value != itembank.MaxGrade {
		t.Errorf("grade 1 should be rejected, got %d", w.grade.Value)
	}
}

func TestWelcomeScreen_FocusCycles(t *testing.T) {
	w := New(testDeps(t, itembank.NewBuiltin(itembank.DefaultSeed)))
	w.Init()

	for i := range int(fieldCount) {
		if w.focus != field(i) {
			t.Fatalf("step %d: focus = %d", i, w.focus)
		}
		w.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	}
	if w.focus != fieldName {
		t.Errorf("focus = %d after full cycle, want name", w.focus)
	}
}

func TestWelcomeScreen_EmptyBankShowsResult(t *testing.T) {
	w := New(testDeps(t, itembank.NewMemoryBank(nil, nil)))
	w.Init()

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*result.ResultScreen); !ok {
		t.Errorf("pushed %T, want *result.ResultScreen", push.Screen)
	}
}

func TestWelcomeScreen_HistoryMenu(t *testing.T) {
	d := testDeps(t, itembank.NewBuiltin(itembank.DefaultSeed))
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	d.Events = s.EventRepo()

	w := New(d)
	w.Init()
	w.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	w.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	w.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("pushed %T, want *history.HistoryScreen", push.Screen)
	}
}

func TestWelcomeScreen_View(t *testing.T) {
	w := New(testDeps(t, itembank.NewBuiltin(itembank.DefaultSeed)))
	view := w.View(100, 40)
	for _, want := range []string{"Name", "Grade", "Start quiz"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if len(w.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}
