package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/levelcheck/internal/difficulty"
	"github.com/abhisek/levelcheck/internal/itembank"
	"github.com/abhisek/levelcheck/internal/pool"
	"github.com/abhisek/levelcheck/internal/report"
	"github.com/abhisek/levelcheck/internal/rotation"
	"github.com/abhisek/levelcheck/internal/scoring"
	"github.com/abhisek/levelcheck/internal/selector"
)

var (
	// ErrRunFinished is returned when answering a finished or abandoned run.
	ErrRunFinished = errors.New("run already finished")

	// ErrUnknownChoice is returned when a choice is not one of the current
	// item's options.
	ErrUnknownChoice = errors.New("choice is not an option of the current item")

	// ErrNoCurrentItem is returned when there is no item awaiting an answer.
	ErrNoCurrentItem = errors.New("no item awaiting an answer")
)

// StepKind tells the caller what to do after Start or SubmitAnswer.
type StepKind int

const (
	// StepNextItem: present Step.Item, same phase.
	StepNextItem StepKind = iota
	// StepPhaseComplete: the previous phase ended; Step.Item opens the next.
	StepPhaseComplete
	// StepRunFinished: no more items; Step.Report is ready.
	StepRunFinished
)

func (k StepKind) String() string {
	switch k {
	case StepNextItem:
		return "next-item"
	case StepPhaseComplete:
		return "phase-complete"
	case StepRunFinished:
		return "run-finished"
	default:
		return "unknown"
	}
}

// Step is the outcome of one engine call.
type Step struct {
	Kind StepKind

	// Item is the next item to present (nil when the run finished).
	Item *itembank.Item

	// Phase is the subject of Item, or of the last phase when finished.
	Phase itembank.Subject

	// Completed is the phase that just ended, for StepPhaseComplete and
	// StepRunFinished.
	Completed itembank.Subject

	// Feedback describes the answer just submitted (nil from Start).
	Feedback *report.AnswerRecord

	// Transition is the difficulty change caused by the answer.
	Transition difficulty.Transition

	Report *report.Report
}

// Config holds the run parameters.
type Config struct {
	MathTarget    int
	EnglishTarget int

	// Policy names the difficulty policy; see difficulty.New.
	Policy string

	// Strengths is the number of strengths listed in the report.
	Strengths int
}

// DefaultConfig returns ten items per subject under the hysteresis policy.
func DefaultConfig() Config {
	return Config{
		MathTarget:    DefaultPhaseTarget,
		EnglishTarget: DefaultPhaseTarget,
		Policy:        difficulty.PolicyHysteresis,
		Strengths:     report.DefaultStrengths,
	}
}

// Engine runs diagnostic sessions against a bank and a rotation store.
// One Engine may serve many sequential sessions; it is not safe for
// concurrent use because it owns the random source. Sessions may be
// dropped at any question boundary; Close flushes their rotation writes.
type Engine struct {
	bank     itembank.Bank
	store    rotation.Store
	writer   *rotation.Writer
	cfg      Config
	rng      *rand.Rand
	selector *selector.Selector
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for plans and selection.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDFunc overrides session id generation.
func WithIDFunc(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// NewEngine creates an engine. A nil store disables cross-session rotation.
func NewEngine(bank itembank.Bank, store rotation.Store, cfg Config, opts ...Option) (*Engine, error) {
	if bank == nil {
		return nil, fmt.Errorf("new engine: bank is required")
	}
	if cfg.MathTarget < 0 || cfg.EnglishTarget < 0 {
		return nil, fmt.Errorf("new engine: phase targets must not be negative")
	}
	if _, err := difficulty.New(cfg.Policy); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	if store == nil {
		store = rotation.NewMemoryStore()
	}

	e := &Engine{
		bank:   bank,
		store:  store,
		cfg:    cfg,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e.logger = e.logger.Named("engine")
	e.writer = rotation.NewWriter(context.Background(), e.store, e.logger)
	e.selector = selector.New(e.rng, selector.WithLogger(e.logger))
	return e, nil
}

// Start begins a run for grade: it builds the pools, opens the math phase
// and returns the first item. If no item can be served at all the run
// finishes immediately and the step carries the report.
func (e *Engine) Start(ctx context.Context, grade int, learner string) (*Session, Step, error) {
	if grade < itembank.MinGrade || grade > itembank.MaxGrade {
		return nil, Step{}, fmt.Errorf("grade %d outside supported range %d-%d", grade, itembank.MinGrade, itembank.MaxGrade)
	}

	s := &Session{
		ID:          e.newID(),
		Grade:       grade,
		LearnerName: strings.TrimSpace(learner),
		State:       StateInit,
		Targets: map[itembank.Subject]int{
			itembank.SubjectMath:    e.cfg.MathTarget,
			itembank.SubjectEnglish: e.cfg.EnglishTarget,
		},
		Policies:   make(map[itembank.Subject]difficulty.Policy),
		Used:       make(map[string]struct{}),
		Rejected:   make(map[string]struct{}),
		Tallies:    make(scoring.Tallies),
		EndedEarly: make(map[itembank.Subject]bool),
		Pools:      pool.Build(e.bank, grade),
		StartedAt:  e.now(),
	}
	s.tracker = rotation.NewTracker(e.writer, grade, e.logger)

	e.logger.Info("session started",
		zap.String("session_id", s.ID),
		zap.Int("grade", grade),
		zap.Int("math_pool", s.Pools.Math.Size()),
		zap.Int("english_pool", s.Pools.English.Size()))

	if e.openPhase(ctx, s, itembank.SubjectMath) {
		return s, Step{Kind: StepNextItem, Item: s.Current, Phase: s.Phase()}, nil
	}
	e.finish(s)
	return s, Step{Kind: StepRunFinished, Phase: itembank.SubjectEnglish, Completed: itembank.SubjectEnglish, Report: s.Report}, nil
}

// SubmitAnswer scores choice against the current item, updates difficulty
// and tallies, and advances the run.
func (e *Engine) SubmitAnswer(ctx context.Context, s *Session, choice string) (Step, error) {
	if s.Done() {
		return Step{}, ErrRunFinished
	}
	it := s.Current
	if it == nil {
		return Step{}, ErrNoCurrentItem
	}
	if !it.HasChoice(choice) {
		return Step{}, fmt.Errorf("%w: %q", ErrUnknownChoice, choice)
	}

	phase := s.Phase()
	correct := it.IsCorrect(choice)
	s.Tallies.Record(it.Topic, correct)
	s.TierTrail = append(s.TierTrail, s.CurrentTier)
	tr := s.Policy().Update(correct)

	rec := report.AnswerRecord{
		ItemID:     it.ID,
		Subject:    phase,
		Topic:      it.Topic,
		Tier:       s.CurrentTier,
		Stem:       it.Stem,
		Chosen:     strings.TrimSpace(choice),
		Correct:    it.Correct,
		IsCorrect:  correct,
		PassageID:  it.PassageID,
		AnsweredAt: e.now(),
	}
	s.Answers = append(s.Answers, rec)
	s.AnsweredInPhase++
	s.PlanIndex++
	s.Current = nil

	e.logger.Debug("answer recorded",
		zap.String("session_id", s.ID),
		zap.String("item_id", it.ID),
		zap.Bool("correct", correct),
		zap.Stringer("tier_from", tr.From),
		zap.Stringer("tier_to", tr.To))

	step := Step{Feedback: &rec, Transition: tr}

	if e.selectNext(s) {
		step.Kind = StepNextItem
		step.Item = s.Current
		step.Phase = phase
		return step, nil
	}

	e.closePhase(s, phase)
	step.Completed = phase
	if phase == itembank.SubjectMath && e.openPhase(ctx, s, itembank.SubjectEnglish) {
		step.Kind = StepPhaseComplete
		step.Item = s.Current
		step.Phase = s.Phase()
		return step, nil
	}

	e.finish(s)
	step.Kind = StepRunFinished
	step.Phase = phase
	step.Report = s.Report
	return step, nil
}

// Close waits for pending rotation writes and stops the background writer.
// Runs started after Close still work but no longer persist rotation.
func (e *Engine) Close() {
	e.writer.Close()
}

// Abandon ends a run without a report and flushes pending rotation writes.
func (e *Engine) Abandon(s *Session) {
	if s.Done() {
		return
	}
	s.Abandoned = true
	s.Current = nil
	s.tracker.Close()
	e.logger.Info("session abandoned",
		zap.String("session_id", s.ID),
		zap.Int("answered", s.Answered()))
}

// openPhase enters the phase for subject and, if that phase can serve
// nothing, each later phase in turn. It reports whether an item is ready.
func (e *Engine) openPhase(ctx context.Context, s *Session, subject itembank.Subject) bool {
	for _, sub := range subjectsFrom(subject) {
		policy, _ := difficulty.New(e.cfg.Policy)
		s.State = stateFor(sub)
		s.PhaseTarget = s.Targets[sub]
		s.AnsweredInPhase = 0
		s.Plan = BuildPlan(sub, s.PhaseTarget, e.rng)
		s.PlanIndex = 0
		s.Policies[sub] = policy
		s.tracker.Begin(ctx, sub)

		e.logger.Info("phase started",
			zap.String("session_id", s.ID),
			zap.Stringer("state", s.State),
			zap.Int("target", s.PhaseTarget))

		if e.selectNext(s) {
			return true
		}
		e.closePhase(s, sub)
	}
	return false
}

// subjectsFrom returns subject and every subject administered after it.
func subjectsFrom(subject itembank.Subject) []itembank.Subject {
	all := itembank.Subjects()
	for i, s := range all {
		if s == subject {
			return all[i:]
		}
	}
	return nil
}

// selectNext fills s.Current for the next plan slot. It reports false when
// the phase is complete or selection is exhausted.
func (e *Engine) selectNext(s *Session) bool {
	if s.AnsweredInPhase >= s.PhaseTarget || s.PlanIndex >= len(s.Plan) {
		return false
	}

	topic := s.Plan[s.PlanIndex]
	sel, err := e.selector.Next(selector.Request{
		Pool:     s.Pools.For(s.Phase()),
		Topic:    topic,
		Tier:     s.Policy().Tier(),
		Used:     s.Used,
		Rejected: s.Rejected,
		Rotation: s.tracker,
	})
	if err != nil {
		s.EndedEarly[s.Phase()] = true
		e.logger.Warn("phase ended early",
			zap.String("session_id", s.ID),
			zap.Stringer("state", s.State),
			zap.String("topic", string(topic)),
			zap.Int("answered", s.AnsweredInPhase),
			zap.Int("target", s.PhaseTarget),
			zap.Error(err))
		return false
	}

	item := sel.Item
	s.Current = &item
	s.CurrentTier = sel.Tier
	return true
}

func (e *Engine) closePhase(s *Session, subject itembank.Subject) {
	e.logger.Info("phase complete",
		zap.String("session_id", s.ID),
		zap.String("phase", string(subject)),
		zap.Int("answered", s.AnsweredInPhase),
		zap.Int("target", s.PhaseTarget))
}

func (e *Engine) finish(s *Session) {
	s.State = StateFinished
	s.Current = nil
	s.FinishedAt = e.now()
	s.tracker.Close()

	s.Report = report.Synthesize(report.Input{
		SessionID:   s.ID,
		Grade:       s.Grade,
		LearnerName: s.LearnerName,
		Tallies:     s.Tallies,
		Targets:     s.Targets,
		TierTrail:   s.TierTrail,
		Answers:     s.Answers,
		Strengths:   e.cfg.Strengths,
		GeneratedAt: s.FinishedAt,
	})

	e.logger.Info("session finished",
		zap.String("session_id", s.ID),
		zap.Int("answered", s.Report.Answered),
		zap.Int("target", s.Report.Target),
		zap.Float64("estimated_level", s.Report.EstimatedLevel),
		zap.Int("confidence", s.Report.Confidence))
}
