// Package difficulty decides the tier of the next item from the learner's
// answer history within a phase.
package difficulty

import (
	"fmt"

	"github.com/abhisek/levelcheck/internal/itembank"
)

// Threshold is the net streak that moves the tier one step.
const Threshold = 3

// Policy names accepted by New.
const (
	PolicyHysteresis = "hysteresis"
	PolicyImmediate  = "immediate"
)

// Transition records the tier before and after one answer.
type Transition struct {
	From itembank.Tier
	To   itembank.Tier
}

// Changed reports whether the answer moved the tier.
func (t Transition) Changed() bool { return t.From != t.To }

// Policy adjusts the working tier after each answer.
type Policy interface {
	// Tier returns the tier the next item should be drawn from.
	Tier() itembank.Tier

	// Update applies one answer and reports the resulting transition.
	Update(correct bool) Transition
}

// New returns a policy by name, starting at the on-level tier.
// An empty name selects hysteresis.
func New(name string) (Policy, error) {
	switch name {
	case "", PolicyHysteresis:
		return NewController(), nil
	case PolicyImmediate:
		return &Immediate{Current: itembank.TierOn}, nil
	}
	return nil, fmt.Errorf("unknown difficulty policy %q", name)
}

// Controller is a hysteresis filter over the tier. Each correct answer adds
// one to Buffer and each wrong answer subtracts one, clamped to
// [-Threshold, Threshold]. Reaching +Threshold promotes one tier, reaching
// -Threshold demotes one tier, and either resets Buffer to zero. At the top
// or bottom tier the tier stays put but the buffer still resets.
type Controller struct {
	Current itembank.Tier
	Buffer  int
}

var _ Policy = (*Controller)(nil)

// NewController returns a controller at the on-level tier with an empty buffer.
func NewController() *Controller {
	return &Controller{Current: itembank.TierOn}
}

// Tier returns the tier the next item is drawn from.
func (c *Controller) Tier() itembank.Tier { return c.Current }

// Update moves the buffer toward the answer and shifts one tier when it
// reaches ±Threshold, resetting the buffer.
func (c *Controller) Update(correct bool) Transition {
	from := c.Current
	if correct {
		c.Buffer = min(c.Buffer+1, Threshold)
	} else {
		c.Buffer = max(c.Buffer-1, -Threshold)
	}

	switch {
	case c.Buffer == Threshold:
		if c.Current < itembank.TierStretch {
			c.Current++
		}
		c.Buffer = 0
	case c.Buffer == -Threshold:
		if c.Current > itembank.TierCore {
			c.Current--
		}
		c.Buffer = 0
	}
	return Transition{From: from, To: c.Current}
}

// Immediate moves the tier on every answer: up after a correct answer, down
// after a wrong one. It oscillates on mixed answers and exists for comparison
// with Controller.
type Immediate struct {
	Current itembank.Tier
}

var _ Policy = (*Immediate)(nil)

// Tier returns the current tier.
func (p *Immediate) Tier() itembank.Tier { return p.Current }

// Update shifts one tier toward the answer, clamped to core and stretch.
func (p *Immediate) Update(correct bool) Transition {
	from := p.Current
	if correct && p.Current < itembank.TierStretch {
		p.Current++
	} else if !correct && p.Current > itembank.TierCore {
		p.Current--
	}
	return Transition{From: from, To: p.Current}
}
