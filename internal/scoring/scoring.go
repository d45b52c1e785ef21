// Package scoring tallies answers per topic and derives percentages,
// estimated grade levels and the confidence figure shown in the report.
package scoring

import (
	"fmt"
	"math"

	"github.com/abhisek/levelcheck/internal/itembank"
)

// Level bounds.
const (
	MinLevel = float64(itembank.MinGrade)
	MaxLevel = float64(itembank.MaxGrade)
)

// Confidence bounds and the trend window.
const (
	MinConfidence = 40
	MaxConfidence = 95
	TrendWindow   = 6
)

// GapMargin is how far a level must sit from the expectation to count as
// ahead or below.
const GapMargin = 0.3

// Tally counts answers for one topic.
type Tally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Percentage returns the tally's rounded percentage correct.
func (t Tally) Percentage() int {
	return Percentage(t.Correct, t.Total)
}

// Tallies maps topics to their answer counts.
type Tallies map[itembank.Topic]Tally

// Record counts one answer for topic.
func (ts Tallies) Record(topic itembank.Topic, correct bool) {
	t := ts[topic]
	t.Total++
	if correct {
		t.Correct++
	}
	ts[topic] = t
}

// Subject sums the tallies of a subject's topics.
func (ts Tallies) Subject(s itembank.Subject) Tally {
	var sum Tally
	for _, topic := range itembank.TopicsFor(s) {
		t := ts[topic]
		sum.Correct += t.Correct
		sum.Total += t.Total
	}
	return sum
}

// Answered returns the total number of recorded answers.
func (ts Tallies) Answered() int {
	n := 0
	for _, t := range ts {
		n += t.Total
	}
	return n
}

// Percentage returns round(100*correct/total), or 0 when total is 0.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// EstimatedLevel maps a percentage onto a grade level around gradeRef:
// gradeRef - 0.5 + pct/100, clamped to [2, 8] and rounded to one decimal.
func EstimatedLevel(gradeRef, pct int) float64 {
	lvl := float64(gradeRef) - 0.5 + float64(pct)/100
	return round1(clamp(lvl, MinLevel, MaxLevel))
}

// Confidence combines completeness, recent tier trend and the separation of
// the subject percentages from 50%:
//
//	clamp(round(40 + 60*(0.35*completeness + 0.35*trend + 0.30*separation)), 40, 95)
//
// trend is the mean score of the last TrendWindow tiers divided by 3.
func Confidence(answered, target int, trail []itembank.Tier, mathPct, engPct int) int {
	completeness := 0.0
	if target > 0 {
		completeness = math.Min(1, float64(answered)/float64(target))
	}

	trend := 0.0
	if n := len(trail); n > 0 {
		recent := trail[max(0, n-TrendWindow):]
		sum := 0
		for _, t := range recent {
			sum += t.Score()
		}
		trend = float64(sum) / float64(len(recent)) / 3
	}

	separation := (math.Abs(float64(mathPct-50)) + math.Abs(float64(engPct-50))) / 100

	c := math.Round(40 + 60*(0.35*completeness+0.35*trend+0.30*separation))
	return int(clamp(c, MinConfidence, MaxConfidence))
}

// GapStatus classifies a level against the grade expectation.
type GapStatus string

const (
	GapAhead   GapStatus = "ahead"
	GapOnTrack GapStatus = "on-track"
	GapBelow   GapStatus = "below"
)

// Gap compares an estimated level with the expected level for the grade.
type Gap struct {
	Level    float64   `json:"level"`
	Expected float64   `json:"expected"`
	Delta    float64   `json:"delta"`
	Status   GapStatus `json:"status"`
}

// CompareLevel classifies level against expected with GapMargin.
func CompareLevel(level, expected float64) Gap {
	d := round1(level - expected)
	g := Gap{Level: level, Expected: expected, Delta: d, Status: GapOnTrack}
	switch {
	case d >= GapMargin:
		g.Status = GapAhead
	case d <= -GapMargin:
		g.Status = GapBelow
	}
	return g
}

// ExpectedLevel is the level a learner in grade is expected to be at.
func ExpectedLevel(grade int) float64 {
	return clamp(float64(grade), MinLevel, MaxLevel)
}

func (g Gap) String() string {
	switch g.Status {
	case GapAhead:
		return fmt.Sprintf("Ahead (+%.1f)", g.Delta)
	case GapBelow:
		return fmt.Sprintf("Below (%.1f)", g.Delta)
	default:
		return "On track"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
