package itembank

import "testing"

func validItem() *Item {
	return &Item{
		ID:       "m-test-1",
		GradeMin: 3,
		GradeMax: 5,
		Topic:    TopicAlgebra,
		Tier:     TierOn,
		Stem:     "Solve for x: 2x = 8",
		Choices:  []string{"2", "4", "6", "8"},
		Correct:  "4",
	}
}

func TestValidate_ValidItem(t *testing.T) {
	if err := Validate(validItem()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestStructural_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Item)
	}{
		{"empty id", func(it *Item) { it.ID = "" }},
		{"blank stem", func(it *Item) { it.Stem = "   " }},
		{"grade below range", func(it *Item) { it.GradeMin = 1 }},
		{"grade above range", func(it *Item) { it.GradeMax = 9 }},
		{"inverted grades", func(it *Item) { it.GradeMin, it.GradeMax = 6, 4 }},
		{"unknown topic", func(it *Item) { it.Topic = "chemistry" }},
		{"zero tier", func(it *Item) { it.Tier = 0 }},
	}
	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := validItem()
			tt.mutate(it)
			err := v.Validate(it)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Validator != "structural" {
				t.Errorf("validator = %q, want structural", err.Validator)
			}
		})
	}
}

func TestChoice_Failures(t *testing.T) {
	tests := []struct {
		name    string
		choices []string
		correct string
	}{
		{"three choices", []string{"2", "4", "6"}, "4"},
		{"five choices", []string{"2", "4", "6", "8", "10"}, "4"},
		{"empty choice", []string{"2", "4", "", "8"}, "4"},
		{"duplicate", []string{"2", "4", "4", "8"}, "4"},
		{"duplicate after trim", []string{"2", "4", " 4 ", "8"}, "4"},
		{"correct missing", []string{"2", "3", "6", "8"}, "4"},
	}
	v := &ChoiceValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := validItem()
			it.Choices = tt.choices
			it.Correct = tt.correct
			if err := v.Validate(it); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestItem_IsCorrectTrims(t *testing.T) {
	it := validItem()
	if !it.IsCorrect(" 4 ") {
		t.Error("expected trimmed match")
	}
	if it.IsCorrect("6") {
		t.Error("6 is not correct")
	}
	if it.CorrectIndex() != 1 {
		t.Errorf("CorrectIndex = %d, want 1", it.CorrectIndex())
	}
	if !it.HasChoice("8") || it.HasChoice("9") {
		t.Error("HasChoice mismatch")
	}
}

func TestParseTier(t *testing.T) {
	for _, tier := range Tiers() {
		got, err := ParseTier(tier.String())
		if err != nil || got != tier {
			t.Errorf("ParseTier(%q) = %v, %v", tier.String(), got, err)
		}
	}
	if _, err := ParseTier("hard"); err == nil {
		t.Error("expected error for unknown tier")
	}
}

func TestTopicSubjects(t *testing.T) {
	for _, s := range Subjects() {
		for _, topic := range TopicsFor(s) {
			if topic.Subject() != s {
				t.Errorf("%s.Subject() = %q, want %q", topic, topic.Subject(), s)
			}
			if topic.Label() == string(topic) {
				t.Errorf("%s has no label", topic)
			}
		}
	}
	if Topic("chemistry").Valid() {
		t.Error("unknown topic reported valid")
	}
}
