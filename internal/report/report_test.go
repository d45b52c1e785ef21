package report

import (
	"strings"
	"testing"
	"time"

	"github.com/abhisek/levelcheck/internal/itembank"
	"github.com/abhisek/levelcheck/internal/scoring"
)

func tallies(entries map[itembank.Topic][2]int) scoring.Tallies {
	ts := make(scoring.Tallies)
	for topic, ct := range entries {
		ts[topic] = scoring.Tally{Correct: ct[0], Total: ct[1]}
	}
	return ts
}

func fullTargets() map[itembank.Subject]int {
	return map[itembank.Subject]int{itembank.SubjectMath: 10, itembank.SubjectEnglish: 10}
}

func sampleInput() Input {
	return Input{
		SessionID:   "s-1",
		Grade:       5,
		LearnerName: "Avery",
		Tallies: tallies(map[itembank.Topic][2]int{
			itembank.TopicNumberOps:     {2, 2},
			itembank.TopicFractions:     {0, 2},
			itembank.TopicAlgebra:       {1, 2},
			itembank.TopicGeometry:      {2, 2},
			itembank.TopicMeasurement:   {1, 2},
			itembank.TopicLiterary:      {3, 4},
			itembank.TopicInformational: {4, 4},
			itembank.TopicLanguage:      {1, 2},
		}),
		Targets:     fullTargets(),
		TierTrail:   []itembank.Tier{itembank.TierOn, itembank.TierOn},
		GeneratedAt: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSynthesize_Scores(t *testing.T) {
	r := Synthesize(sampleInput())

	if r.Answered != 20 || r.Target != 20 {
		t.Errorf("answered/target = %d/%d, want 20/20", r.Answered, r.Target)
	}
	if r.Percentage != 70 {
		t.Errorf("overall pct = %d, want 70", r.Percentage)
	}
	if r.EstimatedLevel != 5.2 {
		t.Errorf("estimated level = %v, want 5.2", r.EstimatedLevel)
	}

	m := r.Subject(itembank.SubjectMath)
	if m.Correct != 6 || m.Total != 10 || m.Percentage != 60 {
		t.Errorf("math = %+v", m)
	}
	if m.Level != 5.1 {
		t.Errorf("math level = %v, want 5.1", m.Level)
	}
	if m.Gap.Status != scoring.GapOnTrack {
		t.Errorf("math gap = %s, want on-track", m.Gap.Status)
	}

	e := r.Subject(itembank.SubjectEnglish)
	if e.Percentage != 80 || e.Level != 5.3 || e.Gap.Status != scoring.GapAhead {
		t.Errorf("english = %+v", e)
	}
	if len(r.PerTopic) != 8 {
		t.Errorf("per-topic = %d, want 8", len(r.PerTopic))
	}
}

func TestSynthesize_Strengths(t *testing.T) {
	r := Synthesize(sampleInput())
	if len(r.Strengths) != DefaultStrengths {
		t.Fatalf("strengths = %d, want %d", len(r.Strengths), DefaultStrengths)
	}
	for i := 1; i < len(r.Strengths); i++ {
		if r.Strengths[i].Percentage > r.Strengths[i-1].Percentage {
			t.Errorf("strengths not descending: %+v", r.Strengths)
		}
	}
	// Three topics are at 100%; ties keep display order.
	want := []itembank.Topic{itembank.TopicNumberOps, itembank.TopicGeometry, itembank.TopicInformational, itembank.TopicLiterary}
	for i, w := range want {
		if r.Strengths[i].Topic != w {
			t.Errorf("strength %d = %s, want %s", i, r.Strengths[i].Topic, w)
		}
	}

	in := sampleInput()
	in.Strengths = 2
	if got := len(Synthesize(in).Strengths); got != 2 {
		t.Errorf("configured strengths = %d, want 2", got)
	}
}

func TestSynthesize_Priorities(t *testing.T) {
	r := Synthesize(sampleInput())
	if len(r.Priorities) != 4 {
		t.Fatalf("priorities = %d, want 4", len(r.Priorities))
	}
	if r.Priorities[0].Topic != itembank.TopicFractions {
		t.Errorf("math weakest = %s, want fractions", r.Priorities[0].Topic)
	}
	if r.Priorities[1].Topic != itembank.TopicAlgebra {
		t.Errorf("math second = %s, want algebra", r.Priorities[1].Topic)
	}
	if r.Priorities[2].Topic != itembank.TopicLanguage {
		t.Errorf("english weakest = %s, want language", r.Priorities[2].Topic)
	}
	if r.Priorities[3].Topic != itembank.TopicLiterary {
		t.Errorf("english second = %s, want literary", r.Priorities[3].Topic)
	}
}

func TestSynthesize_SkipsUnansweredTopics(t *testing.T) {
	in := sampleInput()
	in.Tallies = tallies(map[itembank.Topic][2]int{
		itembank.TopicFractions: {1, 1},
		itembank.TopicLanguage:  {0, 1},
	})
	r := Synthesize(in)

	if len(r.Strengths) != 2 {
		t.Errorf("strengths = %+v, want 2 answered topics", r.Strengths)
	}
	if len(r.Priorities) != 2 {
		t.Errorf("priorities = %+v, want one per subject", r.Priorities)
	}
	if r.Answered != 2 || r.Percentage != 50 {
		t.Errorf("answered %d pct %d, want 2 / 50", r.Answered, r.Percentage)
	}
}

func TestSynthesize_ActionPlan(t *testing.T) {
	r := Synthesize(sampleInput())

	var math, eng []ActionItem
	for _, a := range r.ActionPlan {
		if a.Tip == "" {
			t.Errorf("action %s has no tip", a.Topic)
		}
		if a.Subject == itembank.SubjectMath {
			math = append(math, a)
		} else {
			eng = append(eng, a)
		}
	}
	// Math: fractions 0%, then algebra 50% < 80% so both.
	if len(math) != 2 || math[0].Topic != itembank.TopicFractions || math[1].Topic != itembank.TopicAlgebra {
		t.Errorf("math actions = %+v", math)
	}
	// English: language 50%, then literary 75% < 80% so both.
	if len(eng) != 2 || eng[0].Topic != itembank.TopicLanguage {
		t.Errorf("english actions = %+v", eng)
	}

	in := sampleInput()
	in.Tallies[itembank.TopicLiterary] = scoring.Tally{Correct: 4, Total: 4}
	r = Synthesize(in)
	eng = nil
	for _, a := range r.ActionPlan {
		if a.Subject == itembank.SubjectEnglish {
			eng = append(eng, a)
		}
	}
	if len(eng) != 1 {
		t.Errorf("english actions = %+v, want only the lowest when the next is mastered", eng)
	}
}

func TestSynthesize_EmptyRun(t *testing.T) {
	in := sampleInput()
	in.Tallies = make(scoring.Tallies)
	r := Synthesize(in)
	if r.Answered != 0 || r.Percentage != 0 {
		t.Errorf("empty run: %d answered, %d%%", r.Answered, r.Percentage)
	}
	if len(r.Strengths) != 0 || len(r.Priorities) != 0 || len(r.ActionPlan) != 0 {
		t.Error("empty run should have no strengths, priorities or actions")
	}
	if r.Confidence < scoring.MinConfidence || r.Confidence > scoring.MaxConfidence {
		t.Errorf("confidence %d out of range", r.Confidence)
	}
}

func TestReport_Text(t *testing.T) {
	in := sampleInput()
	in.Answers = []AnswerRecord{
		{ItemID: "a", Topic: itembank.TopicFractions, Tier: itembank.TierOn, Stem: "1/2 + 1/2?", Chosen: "2/4", Correct: "1", IsCorrect: false},
		{ItemID: "b", Topic: itembank.TopicAlgebra, Tier: itembank.TierCore, Stem: "x + 1 = 2", Chosen: "1", Correct: "1", IsCorrect: true},
	}
	r := Synthesize(in)
	text := r.Text()
	for _, want := range []string{"Avery", "grade 5", "Estimated level: 5.2", "Fractions & Decimals", "Action plan", "Ahead (+0.3)"} {
		if !strings.Contains(text, want) {
			t.Errorf("Text() missing %q", want)
		}
	}
	log := r.AnswerLog()
	if !strings.Contains(log, `chose "2/4"`) {
		t.Errorf("AnswerLog() missing wrong answer detail:\n%s", log)
	}
	if strings.Count(log, "\n") != 3 {
		t.Errorf("AnswerLog() lines = %d, want 3", strings.Count(log, "\n"))
	}
}
