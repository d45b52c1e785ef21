// Package welcome collects the learner's name and grade and starts a run.
package welcome

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/levelcheck/internal/itembank"
	"github.com/abhisek/levelcheck/internal/router"
	"github.com/abhisek/levelcheck/internal/screen"
	"github.com/abhisek/levelcheck/internal/screens/deps"
	"github.com/abhisek/levelcheck/internal/screens/history"
	"github.com/abhisek/levelcheck/internal/screens/quiz"
	"github.com/abhisek/levelcheck/internal/screens/result"
	"github.com/abhisek/levelcheck/internal/session"
	"github.com/abhisek/levelcheck/internal/ui/components"
	"github.com/abhisek/levelcheck/internal/ui/layout"
	"github.com/abhisek/levelcheck/internal/ui/theme"
)

// MaxNameLength bounds the learner name field.
const MaxNameLength = 40

type field int

const (
	fieldName field = iota
	fieldGrade
	fieldMenu
	fieldCount
)

// WelcomeScreen is the start form.
type WelcomeScreen struct {
	deps   *deps.Deps
	name   components.TextInput
	grade  components.GradePicker
	menu   components.Menu
	focus  field
	errMsg string
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates the welcome form.
func New(d *deps.Deps) *WelcomeScreen {
	w := &WelcomeScreen{
		deps:  d,
		name:  components.NewTextInput("Learner name (optional)", MaxNameLength),
		grade: components.NewGradePicker(itembank.MinGrade, itembank.MaxGrade, d.DefaultGrade),
	}
	w.menu = components.NewMenu([]components.MenuItem{
		{Label: "Start quiz", Action: w.start},
		{Label: "Past results", Action: w.openHistory, Disabled: d.Events == nil},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return w
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.name.Focus()
}

func (w *WelcomeScreen) Title() string {
	return "Welcome"
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next field"}}
	if w.focus == fieldGrade {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Grade"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Start"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		w.name, cmd = w.name.Update(msg)
		return w, cmd
	}

	switch kmsg.String() {
	case "tab", "down":
		if w.focus != fieldMenu || kmsg.String() == "tab" {
			return w, w.setFocus((w.focus + 1) % fieldCount)
		}
	case "shift+tab", "up":
		if w.focus != fieldMenu || kmsg.String() == "shift+tab" || w.menu.Selected == 0 {
			return w, w.setFocus((w.focus + fieldCount - 1) % fieldCount)
		}
	case "enter":
		if w.focus != fieldMenu {
			return w, w.start()
		}
	}

	var cmd tea.Cmd
	switch w.focus {
	case fieldName:
		w.name, cmd = w.name.Update(kmsg)
	case fieldGrade:
		w.grade, cmd = w.grade.Update(kmsg)
	case fieldMenu:
		w.menu, cmd = w.menu.Update(kmsg)
	}
	return w, cmd
}

func (w *WelcomeScreen) setFocus(f field) tea.Cmd {
	w.focus = f
	w.grade.Focused = f == fieldGrade
	if f == fieldName {
		return w.name.Focus()
	}
	w.name.Blur()
	return nil
}

// start begins a run for the chosen grade.
func (w *WelcomeScreen) start() tea.Cmd {
	d := w.deps
	ctx := d.Context()
	sess, step, err := d.Engine.Start(ctx, w.grade.Value, w.name.Value())
	if err != nil {
		d.Log().Error("start session", zap.Error(err))
		w.errMsg = err.Error()
		return nil
	}
	w.errMsg = ""
	d.Recorder.Started(ctx, sess.ID, sess.Grade, sess.LearnerName, sess.Target())

	if step.Kind == session.StepRunFinished {
		d.Recorder.Finished(ctx, step.Report)
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: result.New(d, step.Report, false)}
		}
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: quiz.New(d, sess, step.Item)}
	}
}

func (w *WelcomeScreen) openHistory() tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: history.New(w.deps)}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	label := func(f field, s string) string {
		if w.focus == f {
			return theme.Selected.Render("▸ " + s)
		}
		return theme.Dim.Render("  " + s)
	}

	var sections []string
	sections = append(sections,
		RenderBanner(width),
		"",
		theme.Hint.Render("A short placement check: math first, then English."),
		"",
		label(fieldName, "Name"),
		"  "+w.name.View(),
		"",
		label(fieldGrade, "Grade"),
		"  "+w.grade.View(),
		"",
		label(fieldMenu, "Menu"),
		w.menu.View(),
	)
	if w.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(w.errMsg))
	}

	form := lipgloss.NewStyle().Align(lipgloss.Left).Render(strings.Join(sections, "\n"))
	return layout.Center(form, width, height)
}
