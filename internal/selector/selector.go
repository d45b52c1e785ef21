// Package selector picks the next item for a coverage slot under the
// difficulty, coverage and rotation constraints.
package selector

import (
	"errors"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/abhisek/levelcheck/internal/itembank"
	"github.com/abhisek/levelcheck/internal/pool"
)

// ErrExhausted is returned when no valid, unused item exists for the
// requested topic at any tier in the search order.
var ErrExhausted = errors.New("selection exhausted")

// Rotation is the cross-session seen set consulted and updated by the
// selector. *rotation.Tracker implements it.
type Rotation interface {
	Contains(id string) bool
	MarkSeen(id string)
}

// Request describes one selection.
type Request struct {
	Pool  pool.Pool
	Topic itembank.Topic
	Tier  itembank.Tier

	// Used holds ids administered this session. The selected id is added.
	Used map[string]struct{}

	// Rejected holds ids that failed validation this session. They are never
	// selected again; newly rejected ids are added.
	Rejected map[string]struct{}

	// Rotation may be nil, in which case no item counts as seen.
	Rotation Rotation
}

// Selection is a successful pick.
type Selection struct {
	Item itembank.Item

	// Tier is the tier the item was drawn from, which may differ from the
	// requested tier.
	Tier itembank.Tier

	// Fresh is false when the item came from the fallback pass that permits
	// previously seen items.
	Fresh bool
}

// SearchOrder returns the tiers tried for a desired tier, most preferred first.
func SearchOrder(desired itembank.Tier) []itembank.Tier {
	switch desired {
	case itembank.TierCore:
		return []itembank.Tier{itembank.TierCore, itembank.TierOn}
	case itembank.TierStretch:
		return []itembank.Tier{itembank.TierStretch, itembank.TierOn}
	default:
		return []itembank.Tier{itembank.TierOn, itembank.TierCore, itembank.TierStretch}
	}
}

// Selector picks items. It is not safe for concurrent use because it owns
// its random source.
type Selector struct {
	rng        *rand.Rand
	validators []itembank.Validator
	logger     *zap.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithValidators replaces the default validator chain.
func WithValidators(v ...itembank.Validator) Option {
	return func(s *Selector) { s.validators = v }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Selector) { s.logger = l }
}

// New creates a Selector drawing randomness from rng.
func New(rng *rand.Rand, opts ...Option) *Selector {
	s := &Selector{
		rng:        rng,
		validators: itembank.DefaultValidators(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next selects an item for req. The first pass skips used and seen items;
// the second permits seen items. An item that fails validation is recorded
// in req.Rejected and selection is retried once with the seen filter off.
// On success the id is added to req.Used and marked seen.
func (s *Selector) Next(req Request) (Selection, error) {
	if req.Rejected == nil {
		req.Rejected = make(map[string]struct{})
	}

	sel, ok := s.search(req, true)
	if !ok {
		return Selection{}, ErrExhausted
	}

	if verr := s.validate(&sel.Item); verr != nil {
		s.reject(req, sel.Item, verr)

		sel, ok = s.search(req, false)
		if !ok {
			return Selection{}, ErrExhausted
		}
		if verr := s.validate(&sel.Item); verr != nil {
			s.reject(req, sel.Item, verr)
			return Selection{}, ErrExhausted
		}
	}

	if req.Used != nil {
		req.Used[sel.Item.ID] = struct{}{}
	}
	if req.Rotation != nil {
		req.Rotation.MarkSeen(sel.Item.ID)
	}

	s.logger.Debug("item selected",
		zap.String("item_id", sel.Item.ID),
		zap.String("topic", string(req.Topic)),
		zap.Stringer("want_tier", req.Tier),
		zap.Stringer("tier", sel.Tier),
		zap.Bool("fresh", sel.Fresh))
	return sel, nil
}

// search runs the preferred pass (when preferFresh) and then the fallback
// pass over the tier search order.
func (s *Selector) search(req Request, preferFresh bool) (Selection, bool) {
	if preferFresh {
		if sel, ok := s.pass(req, true); ok {
			return sel, true
		}
	}
	return s.pass(req, false)
}

func (s *Selector) pass(req Request, excludeSeen bool) (Selection, bool) {
	for _, tier := range SearchOrder(req.Tier) {
		var candidates []itembank.Item
		for _, it := range req.Pool.Items(req.Topic, tier) {
			if contains(req.Used, it.ID) || contains(req.Rejected, it.ID) {
				continue
			}
			if excludeSeen && req.Rotation != nil && req.Rotation.Contains(it.ID) {
				continue
			}
			candidates = append(candidates, it)
		}
		if len(candidates) > 0 {
			it := candidates[s.rng.IntN(len(candidates))]
			return Selection{Item: it, Tier: tier, Fresh: excludeSeen}, true
		}
	}
	return Selection{}, false
}

func (s *Selector) validate(it *itembank.Item) *itembank.ValidationError {
	for _, v := range s.validators {
		if err := v.Validate(it); err != nil {
			return err
		}
	}
	return nil
}

func (s *Selector) reject(req Request, it itembank.Item, verr *itembank.ValidationError) {
	req.Rejected[it.ID] = struct{}{}
	s.logger.Warn("malformed item rejected",
		zap.String("item_id", it.ID),
		zap.String("validator", verr.Validator),
		zap.String("reason", verr.Message))
}

func contains(set map[string]struct{}, id string) bool {
	_, ok := set[id]
	return ok
}
