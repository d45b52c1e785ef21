// Package quiz administers a run: one item at a time, math then English.
package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/levelcheck/internal/itembank"
	"github.com/abhisek/levelcheck/internal/report"
	"github.com/abhisek/levelcheck/internal/router"
	"github.com/abhisek/levelcheck/internal/screen"
	"github.com/abhisek/levelcheck/internal/screens/deps"
	"github.com/abhisek/levelcheck/internal/screens/result"
	"github.com/abhisek/levelcheck/internal/session"
	"github.com/abhisek/levelcheck/internal/ui/components"
	"github.com/abhisek/levelcheck/internal/ui/layout"
	"github.com/abhisek/levelcheck/internal/ui/theme"
)

// recordedMsg is returned by persistence commands.
type recordedMsg struct{}

// QuizScreen presents items and forwards answers to the engine.
type QuizScreen struct {
	deps    *deps.Deps
	session *session.Session

	item    *itembank.Item
	choices components.MultiChoice

	// interlude is set between phases until a key is pressed.
	interlude   bool
	completed   itembank.Subject
	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.Quitter = (*QuizScreen)(nil)

// New creates the screen for a started session whose first item is first.
func New(d *deps.Deps, s *session.Session, first *itembank.Item) *QuizScreen {
	q := &QuizScreen{deps: d, session: s}
	q.present(first)
	return q
}

func (q *QuizScreen) Init() tea.Cmd {
	return nil
}

func (q *QuizScreen) Title() string {
	if q.interlude {
		return q.completed.DisplayName() + " complete"
	}
	return q.session.Phase().DisplayName()
}

func (q *QuizScreen) Status() string {
	n, total := q.session.Progress()
	return fmt.Sprintf("Question %d of %d", min(n, total), total)
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case q.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Stop quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case q.interlude:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "1-4", Description: "Answer"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Stop"},
	}
}

// Session returns the run being administered.
func (q *QuizScreen) Session() *session.Session {
	return q.session
}

// OnQuit abandons the run when the program exits mid-quiz.
func (q *QuizScreen) OnQuit() {
	q.abandon()
}

func (q *QuizScreen) present(it *itembank.Item) {
	q.item = it
	if it != nil {
		q.choices = components.NewMultiChoice(it.Choices)
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return q, nil
	}

	if q.confirmQuit {
		switch kmsg.String() {
		case "y", "Y":
			q.abandon()
			return q, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			q.confirmQuit = false
		}
		return q, nil
	}

	if kmsg.String() == "esc" {
		q.confirmQuit = true
		return q, nil
	}

	if q.interlude {
		q.interlude = false
		return q, nil
	}

	var cmd tea.Cmd
	q.choices, cmd = q.choices.Update(kmsg)
	if !q.choices.Submitted() {
		return q, cmd
	}
	return q, q.submit(q.choices.Value())
}

func (q *QuizScreen) submit(choice string) tea.Cmd {
	d := q.deps
	step, err := d.Engine.SubmitAnswer(d.Context(), q.session, choice)
	if err != nil {
		d.Log().Error("submit answer", zap.String("session_id", q.session.ID), zap.Error(err))
		q.errMsg = err.Error()
		q.present(q.item)
		return nil
	}
	q.errMsg = ""

	switch step.Kind {
	case session.StepPhaseComplete:
		q.interlude = true
		q.completed = step.Completed
		q.present(step.Item)
	case session.StepRunFinished:
		q.item = nil
		return q.finish(*step.Feedback, step.Report)
	default:
		q.present(step.Item)
	}
	return q.recordAnswer(*step.Feedback)
}

func (q *QuizScreen) recordAnswer(a report.AnswerRecord) tea.Cmd {
	d, id := q.deps, q.session.ID
	return func() tea.Msg {
		d.Recorder.Answered(d.Context(), id, a)
		return recordedMsg{}
	}
}

// finish records the last answer and the report, then shows the result.
func (q *QuizScreen) finish(last report.AnswerRecord, rep *report.Report) tea.Cmd {
	d, id := q.deps, q.session.ID
	return func() tea.Msg {
		d.Recorder.Answered(d.Context(), id, last)
		d.Recorder.Finished(d.Context(), rep)
		return router.ReplaceScreenMsg{Screen: result.New(d, rep, true)}
	}
}

func (q *QuizScreen) abandon() {
	if q.session.Done() {
		return
	}
	d := q.deps
	d.Engine.Abandon(q.session)
	d.Recorder.Abandoned(d.Context(), q.session.ID, q.session.Grade, q.session.Answered(), q.session.Target())
}

func (q *QuizScreen) View(width, height int) string {
	if q.confirmQuit {
		return layout.Center(theme.Warn.Render("Stop the quiz now? Answers so far will not produce a report.")+
			"\n\n"+theme.Hint.Render("Y to stop, N to keep going"), width, height)
	}
	if q.interlude {
		next := q.session.Phase().DisplayName()
		msg := theme.Title.Render(q.completed.DisplayName()+" section complete") + "\n\n" +
			theme.Body.Render("Next up: "+next) + "\n\n" +
			theme.Hint.Render("press any key to continue")
		return layout.Center(msg, width, height)
	}
	if q.item == nil {
		return layout.Center(theme.Dim.Render("Preparing results..."), width, height)
	}

	inner := min(width-6, 90)
	var b strings.Builder

	n, total := q.session.Progress()
	phaseDone := q.session.AnsweredInPhase
	bar := components.NewProgressBar(q.session.Phase().DisplayName(), phaseDone, q.session.PhaseTarget, min(inner, 50))
	b.WriteString(bar.View())
	b.WriteString(theme.Dim.Render(fmt.Sprintf("   overall %d/%d", min(n, total), total)))
	b.WriteString("\n\n")

	if q.item.PassageText != "" {
		b.WriteString(theme.Passage.Width(inner).Render(q.item.PassageText))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Body.Bold(true).Width(inner).Render(q.item.Stem))
	b.WriteString("\n\n")
	b.WriteString(q.choices.View())

	if q.errMsg != "" {
		b.WriteString("\n\n" + theme.ErrorText.Render(q.errMsg))
	}

	return lipgloss.NewStyle().Padding(1, 3).Render(b.String())
}
