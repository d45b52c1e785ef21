package narrative

import (
	"fmt"
	"strings"

	"github.com/abhisek/levelcheck/internal/itembank"
	"github.com/abhisek/levelcheck/internal/report"
)

const systemPrompt = `You are an experienced elementary and middle school teacher writing a short, warm and honest note to a parent about their child's placement quiz. Avoid jargon. Never invent results that are not in the data.`

func buildPrompt(r *report.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Enrolled grade: %d\n", r.Grade)
	fmt.Fprintf(&b, "Answered: %d of %d planned questions\n", r.Answered, r.Target)
	fmt.Fprintf(&b, "Overall: %d%% correct, estimated level %.1f (confidence %d%%)\n",
		r.Percentage, r.EstimatedLevel, r.Confidence)

	b.WriteString("\nBy subject:\n")
	for _, s := range r.PerSubject {
		if s.Total == 0 {
			fmt.Fprintf(&b, "- %s: not assessed\n", s.Subject)
			continue
		}
		fmt.Fprintf(&b, "- %s: %d/%d (%d%%), level %.1f vs expected %.1f (%s)\n",
			s.Subject, s.Correct, s.Total, s.Percentage, s.Level, s.Gap.Expected, s.Gap.Status)
	}

	b.WriteString("\nBy topic:\n")
	for _, t := range r.PerTopic {
		if t.Total == 0 {
			continue
		}
		fmt.Fprintf(&b, "- %s (%s): %d/%d\n", t.Label, t.Subject, t.Correct, t.Total)
	}

	if len(r.Priorities) > 0 {
		b.WriteString("\nPriority topics:\n")
		for _, t := range r.Priorities {
			fmt.Fprintf(&b, "- %s (%d%%)\n", t.Label, t.Percentage)
		}
	}

	if missed := missedStems(r, 5); len(missed) > 0 {
		b.WriteString("\nExamples of missed questions:\n")
		for _, m := range missed {
			fmt.Fprintf(&b, "- %s\n", m)
		}
	}

	b.WriteString(`
Instructions:
1. Summarize in 3-5 sentences where the child stands in math and in English relative to the enrolled grade.
2. List what went well, naming topics from the data.
3. Suggest 2-4 short activities a parent can do at home, focused on the priority topics.
4. Refer to the learner as "your child". Use plain text only.`)

	return b.String()
}

// missedStems returns up to n stems of incorrectly answered items, one per
// topic. Reading passages are not sent.
func missedStems(r *report.Report, n int) []string {
	var out []string
	seen := make(map[itembank.Topic]bool)
	for _, a := range r.Answers {
		if a.IsCorrect || seen[a.Topic] || a.Stem == "" {
			continue
		}
		seen[a.Topic] = true
		out = append(out, fmt.Sprintf("[%s] %s (answered %q, correct %q)", a.Topic.Label(), a.Stem, a.Chosen, a.Correct))
		if len(out) == n {
			break
		}
	}
	return out
}
