package itembank

import (
	"fmt"
	"strings"
)

// Grade bounds served by the diagnostic.
const (
	MinGrade = 2
	MaxGrade = 8
)

// Tier is an ordered difficulty level relative to the learner's grade.
type Tier int

const (
	TierCore    Tier = iota + 1 // Below grade level, foundational
	TierOn                      // At grade level
	TierStretch                 // Above grade level
)

// Tiers returns all tiers in ascending order.
func Tiers() []Tier {
	return []Tier{TierCore, TierOn, TierStretch}
}

// Valid reports whether t is one of the three tiers.
func (t Tier) Valid() bool {
	return t >= TierCore && t <= TierStretch
}

// Score is the tier's contribution to the confidence trend (1..3).
func (t Tier) Score() int {
	return int(t)
}

func (t Tier) String() string {
	switch t {
	case TierCore:
		return "core"
	case TierOn:
		return "on"
	case TierStretch:
		return "stretch"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// ParseTier parses "core", "on" or "stretch".
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "core":
		return TierCore, nil
	case "on":
		return TierOn, nil
	case "stretch":
		return TierStretch, nil
	}
	return 0, fmt.Errorf("invalid tier %q: must be core, on, or stretch", s)
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tier name.
func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Item is an immutable multiple-choice question.
type Item struct {
	ID       string   `json:"id"`
	GradeMin int      `json:"grade_min"`
	GradeMax int      `json:"grade_max"`
	Topic    Topic    `json:"topic"`
	Tier     Tier     `json:"tier"`
	Skill    string   `json:"skill,omitempty"`
	Stem     string   `json:"stem"`
	Choices  []string `json:"choices"`
	Correct  string   `json:"correct"`

	// PassageID and PassageText are set on flattened reading questions.
	PassageID   string `json:"passage_id,omitempty"`
	PassageText string `json:"-"`
}

// Subject returns the subject of the item's topic.
func (it Item) Subject() Subject {
	return it.Topic.Subject()
}

// EligibleFor reports whether the item may be served to a learner in grade.
func (it Item) EligibleFor(grade int) bool {
	return it.GradeMin <= grade && grade <= it.GradeMax
}

// IsCorrect reports whether choice is the correct answer.
func (it Item) IsCorrect(choice string) bool {
	return strings.TrimSpace(choice) == strings.TrimSpace(it.Correct)
}

// CorrectIndex returns the index of the correct choice, or -1.
func (it Item) CorrectIndex() int {
	for i, c := range it.Choices {
		if it.IsCorrect(c) {
			return i
		}
	}
	return -1
}

// HasChoice reports whether choice is one of the item's options.
func (it Item) HasChoice(choice string) bool {
	for _, c := range it.Choices {
		if strings.TrimSpace(c) == strings.TrimSpace(choice) {
			return true
		}
	}
	return false
}

// Passage is a reading passage with ordered sub-questions. The Pool Builder
// flattens it into standalone items.
type Passage struct {
	ID        string            `json:"id"`
	GradeMin  int               `json:"grade_min"`
	GradeMax  int               `json:"grade_max"`
	Topic     Topic             `json:"topic"`
	Title     string            `json:"title"`
	Text      string            `json:"text"`
	Questions []PassageQuestion `json:"questions"`
}

// PassageQuestion is one question about a passage. Its tier is derived from
// its position within the passage.
type PassageQuestion struct {
	Stem    string   `json:"stem"`
	Choices []string `json:"choices"`
	Correct string   `json:"correct"`
	Skill   string   `json:"skill,omitempty"`
}

// EligibleFor reports whether the passage may be served to a learner in grade.
func (p Passage) EligibleFor(grade int) bool {
	return p.GradeMin <= grade && grade <= p.GradeMax
}

// QuestionID returns the stable id of the i-th (0-based) sub-question.
func (p Passage) QuestionID(i int) string {
	return fmt.Sprintf("%s-q%d", p.ID, i+1)
}
