package report

import (
	"fmt"
	"strings"

	"github.com/abhisek/levelcheck/internal/itembank"
)

// Text renders the report as plain text for terminals and logs.
func (r *Report) Text() string {
	var b strings.Builder

	title := fmt.Sprintf("Diagnostic report: grade %d", r.Grade)
	if r.LearnerName != "" {
		title = fmt.Sprintf("Diagnostic report for %s (grade %d)", r.LearnerName, r.Grade)
	}
	fmt.Fprintln(&b, title)
	fmt.Fprintln(&b, strings.Repeat("─", len(title)))
	fmt.Fprintf(&b, "Answered:        %d of %d\n", r.Answered, r.Target)
	fmt.Fprintf(&b, "Overall:         %d%%\n", r.Percentage)
	fmt.Fprintf(&b, "Estimated level: %.1f\n", r.EstimatedLevel)
	fmt.Fprintf(&b, "Confidence:      %d%%\n", r.Confidence)

	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "%-10s  %7s  %5s  %5s  %8s  %s\n", "Subject", "Score", "Pct", "Level", "Expected", "Gap")
	for _, s := range r.PerSubject {
		fmt.Fprintf(&b, "%-10s  %3d/%-3d  %4d%%  %5.1f  %8.1f  %s\n",
			s.Subject.DisplayName(), s.Correct, s.Total, s.Percentage, s.Level, s.Gap.Expected, s.Gap)
	}

	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "%-28s  %7s  %5s  %s\n", "Topic", "Score", "Pct", "Standards")
	for _, ts := range r.PerTopic {
		if ts.Total == 0 {
			fmt.Fprintf(&b, "%-28s  %7s  %5s  %s\n", ts.Label, "-", "-", ts.Standard)
			continue
		}
		fmt.Fprintf(&b, "%-28s  %3d/%-3d  %4d%%  %s\n", ts.Label, ts.Correct, ts.Total, ts.Percentage, ts.Standard)
	}

	writeList(&b, "Strengths", r.Strengths)
	writeList(&b, "Priorities", r.Priorities)

	if len(r.ActionPlan) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "Action plan")
		for _, a := range r.ActionPlan {
			fmt.Fprintf(&b, "  [%s] %s (%d%%): %s\n", a.Subject.DisplayName(), a.Label, a.Percentage, a.Tip)
		}
	}
	return b.String()
}

// AnswerLog renders the answer log, one line per item.
func (r *Report) AnswerLog() string {
	var b strings.Builder
	for i, a := range r.Answers {
		mark := "x"
		if a.IsCorrect {
			mark = "✓"
		}
		fmt.Fprintf(&b, "%2d. %s [%s/%s] %s\n", i+1, mark, a.Topic.Label(), a.Tier, a.Stem)
		if !a.IsCorrect {
			fmt.Fprintf(&b, "      chose %q, answer %q\n", a.Chosen, a.Correct)
		}
	}
	return b.String()
}

func writeList(b *strings.Builder, heading string, scores []TopicScore) {
	fmt.Fprintln(b)
	fmt.Fprintln(b, heading)
	if len(scores) == 0 {
		fmt.Fprintln(b, "  -")
		return
	}
	for _, ts := range scores {
		fmt.Fprintf(b, "  %s %s (%d%%)\n", subjectTag(ts.Subject), ts.Label, ts.Percentage)
	}
}

func subjectTag(s itembank.Subject) string {
	if s == itembank.SubjectEnglish {
		return "ELA "
	}
	return "Math"
}
