package itembank

import (
	"fmt"
	"strings"
)

// ChoiceCount is the number of options every item must offer.
const ChoiceCount = 4

// Validator checks an item for well-formedness.
// Implementations are stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages and logs.
	Name() string

	// Validate returns nil if the item passes the check.
	Validate(it *Item) *ValidationError
}

// ValidationError describes why an item failed validation.
type ValidationError struct {
	Validator string
	ItemID    string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: item %s: %s", e.Validator, e.ItemID, e.Message)
}

// DefaultValidators is the validator chain applied at selection time.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&ChoiceValidator{},
	}
}

// Validate runs the default chain and returns the first failure.
func Validate(it *Item) *ValidationError {
	for _, v := range DefaultValidators() {
		if err := v.Validate(it); err != nil {
			return err
		}
	}
	return nil
}

// StructuralValidator checks ids, stems, grade ranges, topics and tiers.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(it *Item) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), ItemID: it.ID, Message: fmt.Sprintf(format, args...)}
	}
	switch {
	case it.ID == "":
		return fail("id is empty")
	case strings.TrimSpace(it.Stem) == "":
		return fail("stem is empty")
	case it.GradeMin < MinGrade || it.GradeMax > MaxGrade:
		return fail("grade range %d-%d outside %d-%d", it.GradeMin, it.GradeMax, MinGrade, MaxGrade)
	case it.GradeMin > it.GradeMax:
		return fail("grade_min %d exceeds grade_max %d", it.GradeMin, it.GradeMax)
	case !it.Topic.Valid():
		return fail("unknown topic %q", it.Topic)
	case !it.Tier.Valid():
		return fail("invalid tier %d", int(it.Tier))
	}
	return nil
}

// ChoiceValidator checks that an item has exactly four distinct, non-empty
// choices and exactly one of them equals the correct choice.
type ChoiceValidator struct{}

func (v *ChoiceValidator) Name() string { return "choices" }

func (v *ChoiceValidator) Validate(it *Item) *ValidationError {
	if len(it.Choices) != ChoiceCount {
		return &ValidationError{
			Validator: v.Name(),
			ItemID:    it.ID,
			Message:   fmt.Sprintf("must have exactly %d choices, got %d", ChoiceCount, len(it.Choices)),
		}
	}

	seen := make(map[string]bool, ChoiceCount)
	matches := 0
	for i, c := range it.Choices {
		c = strings.TrimSpace(c)
		if c == "" {
			return &ValidationError{Validator: v.Name(), ItemID: it.ID, Message: fmt.Sprintf("choice %d is empty", i+1)}
		}
		if seen[c] {
			return &ValidationError{Validator: v.Name(), ItemID: it.ID, Message: fmt.Sprintf("duplicate choice %q", c)}
		}
		seen[c] = true
		if it.IsCorrect(c) {
			matches++
		}
	}

	if matches != 1 {
		return &ValidationError{
			Validator: v.Name(),
			ItemID:    it.ID,
			Message:   fmt.Sprintf("correct choice %q matches %d options, want 1", it.Correct, matches),
		}
	}
	return nil
}
