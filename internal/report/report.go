// Package report turns a finished run's tallies and answers into the
// leveled report shown to learners and parents.
package report

import (
	"sort"
	"time"

	"github.com/abhisek/levelcheck/internal/itembank"
	"github.com/abhisek/levelcheck/internal/scoring"
)

const (
	// DefaultStrengths is how many topics are listed as strengths.
	DefaultStrengths = 4

	// PrioritiesPerSubject is how many weakest topics are flagged per subject.
	PrioritiesPerSubject = 2

	// MasteryLine is the percentage below which a second action-plan entry
	// is added for a subject.
	MasteryLine = 80
)

// AnswerRecord is one administered item and the learner's response.
type AnswerRecord struct {
	ItemID     string           `json:"item_id"`
	Subject    itembank.Subject `json:"subject"`
	Topic      itembank.Topic   `json:"topic"`
	Tier       itembank.Tier    `json:"tier"`
	Stem       string           `json:"stem"`
	Chosen     string           `json:"chosen"`
	Correct    string           `json:"correct"`
	IsCorrect  bool             `json:"is_correct"`
	PassageID  string           `json:"passage_id,omitempty"`
	AnsweredAt time.Time        `json:"answered_at"`
}

// TopicScore is one topic's result.
type TopicScore struct {
	Topic      itembank.Topic   `json:"topic"`
	Subject    itembank.Subject `json:"subject"`
	Label      string           `json:"label"`
	Standard   string           `json:"standard"`
	Correct    int              `json:"correct"`
	Total      int              `json:"total"`
	Percentage int              `json:"percentage"`
}

// SubjectScore is one subject's result and level.
type SubjectScore struct {
	Subject    itembank.Subject `json:"subject"`
	Correct    int              `json:"correct"`
	Total      int              `json:"total"`
	Target     int              `json:"target"`
	Percentage int              `json:"percentage"`
	Level      float64          `json:"level"`
	Gap        scoring.Gap      `json:"gap"`
}

// ActionItem pairs a weak topic with a remediation tip.
type ActionItem struct {
	Subject    itembank.Subject `json:"subject"`
	Topic      itembank.Topic   `json:"topic"`
	Label      string           `json:"label"`
	Percentage int              `json:"percentage"`
	Tip        string           `json:"tip"`
}

// Report is the final output of a run.
type Report struct {
	SessionID      string         `json:"session_id"`
	Grade          int            `json:"grade"`
	LearnerName    string         `json:"learner_name,omitempty"`
	PerTopic       []TopicScore   `json:"per_topic"`
	PerSubject     []SubjectScore `json:"per_subject"`
	Percentage     int            `json:"percentage"`
	EstimatedLevel float64        `json:"estimated_level"`
	Confidence     int            `json:"confidence"`
	Strengths      []TopicScore   `json:"strengths"`
	Priorities     []TopicScore   `json:"priorities"`
	ActionPlan     []ActionItem   `json:"action_plan"`
	Answers        []AnswerRecord `json:"answers"`
	Answered       int            `json:"answered"`
	Target         int            `json:"target"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// Input is everything Synthesize needs from a finished run.
type Input struct {
	SessionID   string
	Grade       int
	LearnerName string
	Tallies     scoring.Tallies

	// Targets holds the nominal phase length per subject.
	Targets   map[itembank.Subject]int
	TierTrail []itembank.Tier
	Answers   []AnswerRecord

	// Strengths overrides DefaultStrengths when positive.
	Strengths   int
	GeneratedAt time.Time
}

// Synthesize builds the report. Percentages use the number of items
// actually answered, never the nominal target.
func Synthesize(in Input) *Report {
	r := &Report{
		SessionID:   in.SessionID,
		Grade:       in.Grade,
		LearnerName: in.LearnerName,
		Answers:     in.Answers,
		GeneratedAt: in.GeneratedAt,
	}

	var overall scoring.Tally
	pcts := make(map[itembank.Subject]int)
	for _, s := range itembank.Subjects() {
		for _, topic := range itembank.TopicsFor(s) {
			r.PerTopic = append(r.PerTopic, topicScore(topic, in.Tallies[topic]))
		}

		t := in.Tallies.Subject(s)
		overall.Correct += t.Correct
		overall.Total += t.Total
		pct := t.Percentage()
		pcts[s] = pct
		level := scoring.EstimatedLevel(in.Grade, pct)
		r.PerSubject = append(r.PerSubject, SubjectScore{
			Subject:    s,
			Correct:    t.Correct,
			Total:      t.Total,
			Target:     in.Targets[s],
			Percentage: pct,
			Level:      level,
			Gap:        scoring.CompareLevel(level, scoring.ExpectedLevel(in.Grade)),
		})
		r.Target += in.Targets[s]
	}

	r.Answered = overall.Total
	r.Percentage = overall.Percentage()
	r.EstimatedLevel = scoring.EstimatedLevel(in.Grade, r.Percentage)
	r.Confidence = scoring.Confidence(r.Answered, r.Target, in.TierTrail,
		pcts[itembank.SubjectMath], pcts[itembank.SubjectEnglish])

	n := in.Strengths
	if n <= 0 {
		n = DefaultStrengths
	}
	r.Strengths = strengths(r.PerTopic, n)
	r.Priorities = priorities(r.PerTopic)
	r.ActionPlan = actionPlan(r.PerTopic)
	return r
}

// Subject returns the score for s.
func (r *Report) Subject(s itembank.Subject) SubjectScore {
	for _, ss := range r.PerSubject {
		if ss.Subject == s {
			return ss
		}
	}
	return SubjectScore{Subject: s}
}

func topicScore(topic itembank.Topic, t scoring.Tally) TopicScore {
	return TopicScore{
		Topic:      topic,
		Subject:    topic.Subject(),
		Label:      topic.Label(),
		Standard:   topic.Standard(),
		Correct:    t.Correct,
		Total:      t.Total,
		Percentage: t.Percentage(),
	}
}

// answered filters to topics with at least one answer, optionally limited
// to one subject, keeping display order.
func answered(scores []TopicScore, s itembank.Subject) []TopicScore {
	var out []TopicScore
	for _, ts := range scores {
		if ts.Total > 0 && (s == "" || ts.Subject == s) {
			out = append(out, ts)
		}
	}
	return out
}

func strengths(scores []TopicScore, n int) []TopicScore {
	out := answered(scores, "")
	sort.SliceStable(out, func(i, j int) bool { return out[i].Percentage > out[j].Percentage })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func weakest(scores []TopicScore, s itembank.Subject) []TopicScore {
	out := answered(scores, s)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Percentage < out[j].Percentage })
	return out
}

func priorities(scores []TopicScore) []TopicScore {
	var out []TopicScore
	for _, s := range itembank.Subjects() {
		w := weakest(scores, s)
		if len(w) > PrioritiesPerSubject {
			w = w[:PrioritiesPerSubject]
		}
		out = append(out, w...)
	}
	return out
}

func actionPlan(scores []TopicScore) []ActionItem {
	var out []ActionItem
	for _, s := range itembank.Subjects() {
		w := weakest(scores, s)
		for i, ts := range w {
			if i >= 2 || (i == 1 && ts.Percentage >= MasteryLine) {
				break
			}
			out = append(out, ActionItem{
				Subject:    s,
				Topic:      ts.Topic,
				Label:      ts.Label,
				Percentage: ts.Percentage,
				Tip:        Tip(ts.Topic),
			})
		}
	}
	return out
}
