// Package result shows a finished run's report and, when an LLM is
// configured, a narrative for parents.
package result

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/levelcheck/internal/narrative"
	"github.com/abhisek/levelcheck/internal/report"
	"github.com/abhisek/levelcheck/internal/router"
	"github.com/abhisek/levelcheck/internal/scoring"
	"github.com/abhisek/levelcheck/internal/screen"
	"github.com/abhisek/levelcheck/internal/screens/deps"
	"github.com/abhisek/levelcheck/internal/ui/layout"
	"github.com/abhisek/levelcheck/internal/ui/theme"
)

type narrativeState int

const (
	narrativeOff narrativeState = iota
	narrativeIdle
	narrativeLoading
	narrativeReady
	narrativeFailed
)

type narrativeMsg struct {
	sessionID string
	n         *narrative.Narrative
	err       error
}

// ResultScreen renders a report with scrolling.
type ResultScreen struct {
	deps   *deps.Deps
	report *report.Report

	showLog bool
	offset  int
	height  int

	narrState narrativeState
	narr      *narrative.Narrative
	narrErr   string
	auto      bool
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)
var _ screen.StatusProvider = (*ResultScreen)(nil)

// New creates a result screen. With autoNarrate set and a narrator
// configured, narrative generation starts immediately.
func New(d *deps.Deps, r *report.Report, autoNarrate bool) *ResultScreen {
	s := &ResultScreen{deps: d, report: r, auto: autoNarrate}
	if d.Narrator != nil {
		s.narrState = narrativeIdle
	}
	return s
}

func (s *ResultScreen) Init() tea.Cmd {
	if s.auto && s.narrState == narrativeIdle {
		return s.requestNarrative()
	}
	return nil
}

func (s *ResultScreen) Title() string {
	return "Results"
}

func (s *ResultScreen) Status() string {
	return fmt.Sprintf("Level %.1f", s.report.EstimatedLevel)
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "A", Description: "Answers"},
	}
	if s.narrState == narrativeIdle || s.narrState == narrativeFailed {
		hints = append(hints, layout.KeyHint{Key: "G", Description: "Parent summary"})
	}
	return append(hints,
		layout.KeyHint{Key: "Esc", Description: "Back"},
		layout.KeyHint{Key: "Q", Description: "Quit"},
	)
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case narrativeMsg:
		if msg.sessionID != s.report.SessionID {
			return s, nil
		}
		if msg.err != nil {
			s.narrState = narrativeFailed
			s.narrErr = msg.err.Error()
			return s, nil
		}
		s.narrState = narrativeReady
		s.narr = msg.n
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			s.offset = max(s.offset-1, 0)
		case "down", "j":
			s.offset++
		case "pgup":
			s.offset = max(s.offset-s.page(), 0)
		case "pgdown", "space":
			s.offset += s.page()
		case "home":
			s.offset = 0
		case "g":
			if s.narrState == narrativeIdle || s.narrState == narrativeFailed {
				return s, s.requestNarrative()
			}
		case "a":
			s.showLog = !s.showLog
			s.offset = 0
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *ResultScreen) page() int {
	return max(s.height-2, 1)
}

func (s *ResultScreen) requestNarrative() tea.Cmd {
	s.narrState = narrativeLoading
	s.narrErr = ""
	d, rep := s.deps, s.report
	return func() tea.Msg {
		ctx, cancel := d.NarrativeContext()
		defer cancel()
		n, err := d.Narrator.Generate(ctx, rep)
		if err != nil {
			d.Log().Warn("narrative failed", zap.String("session_id", rep.SessionID), zap.Error(err))
			if errors.Is(err, narrative.ErrEmptyReport) {
				err = errors.New("nothing to summarize yet")
			}
		}
		return narrativeMsg{sessionID: rep.SessionID, n: n, err: err}
	}
}

func (s *ResultScreen) View(width, height int) string {
	s.height = height
	lines := strings.Split(s.render(min(width-4, 96)), "\n")

	maxOffset := max(len(lines)-height, 0)
	s.offset = min(s.offset, maxOffset)
	end := min(s.offset+height, len(lines))
	visible := strings.Join(lines[s.offset:end], "\n")

	return lipgloss.NewStyle().PaddingLeft(2).Render(visible)
}

func (s *ResultScreen) render(width int) string {
	if s.showLog {
		return theme.Heading.Render("Answer log") + "\n\n" + s.report.AnswerLog()
	}

	r := s.report
	var b strings.Builder

	title := fmt.Sprintf("Grade %d report", r.Grade)
	if r.LearnerName != "" {
		title = fmt.Sprintf("%s, grade %d", r.LearnerName, r.Grade)
	}
	b.WriteString(theme.Title.Render(title) + "\n\n")
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		theme.Dim.Render("Answered"), theme.Body.Render(fmt.Sprintf("%d/%d", r.Answered, r.Target)),
		theme.Dim.Render("Overall"), theme.Body.Render(fmt.Sprintf("%d%%", r.Percentage)),
		theme.Dim.Render("Confidence"), theme.Body.Render(fmt.Sprintf("%d%%", r.Confidence)))

	b.WriteString("\n" + theme.Heading.Render("Subjects") + "\n")
	for _, sub := range r.PerSubject {
		if sub.Total == 0 {
			fmt.Fprintf(&b, "  %-8s %s\n", sub.Subject.DisplayName(), theme.Dim.Render("not assessed"))
			continue
		}
		fmt.Fprintf(&b, "  %-8s %2d/%-2d %4d%%  level %.1f  %s\n",
			sub.Subject.DisplayName(), sub.Correct, sub.Total, sub.Percentage, sub.Level, gapStyle(sub.Gap).Render(sub.Gap.String()))
	}

	b.WriteString("\n" + theme.Heading.Render("Topics") + "\n")
	for _, t := range r.PerTopic {
		if t.Total == 0 {
			continue
		}
		style := theme.Body
		switch {
		case t.Percentage >= report.MasteryLine:
			style = theme.Good
		case t.Percentage < 50:
			style = theme.Bad
		}
		fmt.Fprintf(&b, "  %-28s %s  %s\n", t.Label,
			style.Render(fmt.Sprintf("%d/%d", t.Correct, t.Total)), theme.Dim.Render(t.Standard))
	}

	writeTopics(&b, "Strengths", r.Strengths)
	writeTopics(&b, "Priorities", r.Priorities)

	if len(r.ActionPlan) > 0 {
		b.WriteString("\n" + theme.Heading.Render("Action plan") + "\n")
		wrap := lipgloss.NewStyle().Width(max(width-6, 20))
		for _, a := range r.ActionPlan {
			b.WriteString("  " + theme.Warn.Render(a.Label) + "\n")
			b.WriteString(indent(wrap.Render(a.Tip), "    ") + "\n")
		}
	}

	s.renderNarrative(&b, width)
	return b.String()
}

func (s *ResultScreen) renderNarrative(b *strings.Builder, width int) {
	switch s.narrState {
	case narrativeOff:
		return
	case narrativeIdle:
		b.WriteString("\n" + theme.Hint.Render("Press G for a parent summary.") + "\n")
	case narrativeLoading:
		b.WriteString("\n" + theme.Hint.Render("Writing a parent summary...") + "\n")
	case narrativeFailed:
		b.WriteString("\n" + theme.ErrorText.Render("Parent summary unavailable: "+s.narrErr) + "\n")
	case narrativeReady:
		b.WriteString("\n" + theme.Heading.Render("For parents") + "\n")
		wrap := lipgloss.NewStyle().Width(max(width-4, 20))
		b.WriteString(indent(wrap.Render(s.narr.String()), "  ") + "\n")
	}
}

func writeTopics(b *strings.Builder, heading string, topics []report.TopicScore) {
	b.WriteString("\n" + theme.Heading.Render(heading) + "\n")
	if len(topics) == 0 {
		b.WriteString("  " + theme.Dim.Render("none") + "\n")
		return
	}
	for _, t := range topics {
		fmt.Fprintf(b, "  %-8s %s (%d%%)\n", t.Subject.DisplayName(), t.Label, t.Percentage)
	}
}

func gapStyle(g scoring.Gap) lipgloss.Style {
	switch g.Status {
	case scoring.GapAhead:
		return theme.Good
	case scoring.GapBelow:
		return theme.Bad
	default:
		return theme.Body
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
