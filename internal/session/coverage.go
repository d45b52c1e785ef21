package session

import (
	"math/rand/v2"
	"sort"

	"github.com/abhisek/levelcheck/internal/itembank"
)

// DefaultPhaseTarget is the number of items administered per subject.
const DefaultPhaseTarget = 10

// Plan is the ordered list of target topics for one phase. One slot is
// consumed per answered item.
type Plan []itembank.Topic

// topicWeight is a topic's share of a phase.
type topicWeight struct {
	topic  itembank.Topic
	weight int
}

// coverageWeights returns the share of each topic in a subject's phase.
// Math strands are equal; English is 4:4:2 literary, informational, language.
func coverageWeights(s itembank.Subject) []topicWeight {
	switch s {
	case itembank.SubjectEnglish:
		return []topicWeight{
			{itembank.TopicLiterary, 4},
			{itembank.TopicInformational, 4},
			{itembank.TopicLanguage, 2},
		}
	default:
		var out []topicWeight
		for _, t := range itembank.MathStrands() {
			out = append(out, topicWeight{t, 1})
		}
		return out
	}
}

// Allocation returns how many slots each topic receives for target slots,
// using largest-remainder apportionment of the subject's weights. Ties go to
// the topic listed first.
func Allocation(s itembank.Subject, target int) map[itembank.Topic]int {
	weights := coverageWeights(s)
	total := 0
	for _, w := range weights {
		total += w.weight
	}

	out := make(map[itembank.Topic]int, len(weights))
	if target <= 0 || total == 0 {
		return out
	}

	type rem struct {
		idx  int
		frac int
	}
	assigned := 0
	rems := make([]rem, len(weights))
	for i, w := range weights {
		n := target * w.weight
		out[w.topic] = n / total
		assigned += n / total
		rems[i] = rem{idx: i, frac: n % total}
	}
	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for i := 0; assigned < target; i++ {
		out[weights[rems[i%len(rems)].idx].topic]++
		assigned++
	}
	return out
}

// BuildPlan builds a phase plan: the allocation multiset, uniformly
// shuffled with rng, then a left-to-right repair pass that swaps any slot
// equal to its predecessor with the nearest right (else left) slot that
// clears the clash. If clashes remain the plan is rebuilt greedily, which
// succeeds whenever the multiset admits a clash-free order.
func BuildPlan(s itembank.Subject, target int, rng *rand.Rand) Plan {
	alloc := Allocation(s, target)

	var p Plan
	for _, w := range coverageWeights(s) {
		for range alloc[w.topic] {
			p = append(p, w.topic)
		}
	}
	rng.Shuffle(len(p), func(i, j int) { p[i], p[j] = p[j], p[i] })

	p.repair()
	if p.HasAdjacentRepeat() {
		p = greedyPlan(s, alloc, rng)
	}
	return p
}

// HasAdjacentRepeat reports whether two consecutive slots share a topic.
func (p Plan) HasAdjacentRepeat() bool {
	for i := 1; i < len(p); i++ {
		if p[i] == p[i-1] {
			return true
		}
	}
	return false
}

// Counts returns the number of slots per topic.
func (p Plan) Counts() map[itembank.Topic]int {
	out := make(map[itembank.Topic]int)
	for _, t := range p {
		out[t]++
	}
	return out
}

func (p Plan) repair() {
	for i := 1; i < len(p); i++ {
		if p[i] != p[i-1] {
			continue
		}
		if p.trySwaps(i, i+1, len(p), 1) {
			continue
		}
		p.trySwaps(i, i-2, -1, -1)
	}
}

// trySwaps swaps p[i] with p[j] for j from start towards end (exclusive)
// by step, keeping the first swap that leaves no clash around either slot.
func (p Plan) trySwaps(i, start, end, step int) bool {
	for j := start; j != end; j += step {
		if p[j] == p[i] {
			continue
		}
		p[i], p[j] = p[j], p[i]
		if !p.clashNear(i) && !p.clashNear(j) {
			return true
		}
		p[i], p[j] = p[j], p[i]
	}
	return false
}

func (p Plan) clashNear(i int) bool {
	return (i > 0 && p[i] == p[i-1]) || (i+1 < len(p) && p[i] == p[i+1])
}

// greedyPlan places, at each slot, the topic with the most remaining slots
// that differs from the previous one. Ties are broken with rng.
func greedyPlan(s itembank.Subject, alloc map[itembank.Topic]int, rng *rand.Rand) Plan {
	left := make(map[itembank.Topic]int, len(alloc))
	n := 0
	for t, c := range alloc {
		left[t] = c
		n += c
	}

	order := coverageWeights(s)
	p := make(Plan, 0, n)
	var prev itembank.Topic
	for len(p) < n {
		best := -1
		var choices []itembank.Topic
		for _, w := range order {
			c := left[w.topic]
			if c == 0 || w.topic == prev {
				continue
			}
			switch {
			case c > best:
				best = c
				choices = []itembank.Topic{w.topic}
			case c == best:
				choices = append(choices, w.topic)
			}
		}
		if len(choices) == 0 {
			// Only prev remains; the multiset has no clash-free order.
			choices = []itembank.Topic{prev}
		}
		t := choices[rng.IntN(len(choices))]
		p = append(p, t)
		left[t]--
		prev = t
	}
	return p
}
