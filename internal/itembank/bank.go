package itembank

// Bank supplies grade-eligible items. It is the only source of content the
// diagnostic engine reads.
type Bank interface {
	// Items returns the standalone items at tier whose grade range
	// contains grade.
	Items(grade int, tier Tier) []Item

	// Passages returns the reading passages whose grade range contains
	// grade. Sub-question tiers are assigned by the Pool Builder.
	Passages(grade int) []Passage
}

// MemoryBank is a Bank over fixed slices of items and passages.
type MemoryBank struct {
	items    []Item
	passages []Passage
}

var _ Bank = (*MemoryBank)(nil)

// NewMemoryBank creates a bank from the given content. The slices are not
// copied; callers must not mutate them afterwards.
func NewMemoryBank(items []Item, passages []Passage) *MemoryBank {
	return &MemoryBank{items: items, passages: passages}
}

func (b *MemoryBank) Items(grade int, tier Tier) []Item {
	var out []Item
	for _, it := range b.items {
		if it.Tier == tier && it.EligibleFor(grade) {
			out = append(out, it)
		}
	}
	return out
}

func (b *MemoryBank) Passages(grade int) []Passage {
	var out []Passage
	for _, p := range b.passages {
		if p.EligibleFor(grade) {
			out = append(out, p)
		}
	}
	return out
}

// All returns every standalone item regardless of grade.
func (b *MemoryBank) All() []Item {
	return b.items
}

// AllPassages returns every passage regardless of grade.
func (b *MemoryBank) AllPassages() []Passage {
	return b.passages
}
