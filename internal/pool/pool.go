// Package pool builds the per-session item pools a learner's run draws from.
package pool

import (
	"github.com/abhisek/levelcheck/internal/itembank"
)

// Pool indexes a subject's eligible items by topic and tier.
type Pool map[itembank.Topic]map[itembank.Tier][]itembank.Item

// Pools holds one pool per subject.
type Pools struct {
	Math    Pool
	English Pool
}

// For returns the pool for a subject.
func (p Pools) For(s itembank.Subject) Pool {
	if s == itembank.SubjectEnglish {
		return p.English
	}
	return p.Math
}

// Items returns the items at a topic and tier, or nil.
func (p Pool) Items(topic itembank.Topic, tier itembank.Tier) []itembank.Item {
	byTier, ok := p[topic]
	if !ok {
		return nil
	}
	return byTier[tier]
}

// Count returns the number of items at a topic and tier.
func (p Pool) Count(topic itembank.Topic, tier itembank.Tier) int {
	return len(p.Items(topic, tier))
}

// Size returns the total number of items in the pool.
func (p Pool) Size() int {
	n := 0
	for _, byTier := range p {
		for _, items := range byTier {
			n += len(items)
		}
	}
	return n
}

func (p Pool) add(it itembank.Item) {
	byTier, ok := p[it.Topic]
	if !ok {
		byTier = make(map[itembank.Tier][]itembank.Item)
		p[it.Topic] = byTier
	}
	byTier[it.Tier] = append(byTier[it.Tier], it)
}

// PassageTier maps a passage question's 0-based position to its tier:
// the first two are core, the next two on-level, the rest stretch.
func PassageTier(index int) itembank.Tier {
	switch {
	case index < 2:
		return itembank.TierCore
	case index < 4:
		return itembank.TierOn
	default:
		return itembank.TierStretch
	}
}

// Flatten turns each passage question into a standalone item carrying the
// passage id and text.
func Flatten(p itembank.Passage) []itembank.Item {
	out := make([]itembank.Item, 0, len(p.Questions))
	for i, q := range p.Questions {
		out = append(out, itembank.Item{
			ID:          p.QuestionID(i),
			GradeMin:    p.GradeMin,
			GradeMax:    p.GradeMax,
			Topic:       p.Topic,
			Tier:        PassageTier(i),
			Skill:       q.Skill,
			Stem:        q.Stem,
			Choices:     q.Choices,
			Correct:     q.Correct,
			PassageID:   p.ID,
			PassageText: p.Text,
		})
	}
	return out
}

// Build collects every item eligible for grade into per-subject pools.
// Standalone items keep their declared tier; reading passages are flattened
// with positional tiers. Items whose topic has no subject are skipped.
func Build(bank itembank.Bank, grade int) Pools {
	pools := Pools{Math: make(Pool), English: make(Pool)}

	for _, tier := range itembank.Tiers() {
		for _, it := range bank.Items(grade, tier) {
			if !it.EligibleFor(grade) {
				continue
			}
			switch it.Subject() {
			case itembank.SubjectMath:
				pools.Math.add(it)
			case itembank.SubjectEnglish:
				pools.English.add(it)
			}
		}
	}

	for _, p := range bank.Passages(grade) {
		if !p.EligibleFor(grade) {
			continue
		}
		for _, it := range Flatten(p) {
			pools.English.add(it)
		}
	}
	return pools
}
