package session

import (
	"time"

	"github.com/abhisek/levelcheck/internal/difficulty"
	"github.com/abhisek/levelcheck/internal/itembank"
	"github.com/abhisek/levelcheck/internal/pool"
	"github.com/abhisek/levelcheck/internal/report"
	"github.com/abhisek/levelcheck/internal/rotation"
	"github.com/abhisek/levelcheck/internal/scoring"
)

// State is the run's position in the INIT -> MATH -> ENGLISH -> FINISHED
// sequence. Transitions only move forward.
type State int

const (
	StateInit State = iota
	StateMathPhase
	StateEnglishPhase
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateMathPhase:
		return "MATH_PHASE"
	case StateEnglishPhase:
		return "ENGLISH_PHASE"
	case StateFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

func stateFor(s itembank.Subject) State {
	if s == itembank.SubjectEnglish {
		return StateEnglishPhase
	}
	return StateMathPhase
}

// Session is one learner's run. It is owned by a single caller and is not
// safe for concurrent use.
type Session struct {
	ID          string
	Grade       int
	LearnerName string
	State       State

	// Targets is the nominal number of items per subject.
	Targets map[itembank.Subject]int

	// PhaseTarget and AnsweredInPhase describe the current phase.
	PhaseTarget     int
	AnsweredInPhase int

	// Policies holds each phase's difficulty state.
	Policies map[itembank.Subject]difficulty.Policy

	// Used holds ids administered this run; Rejected holds ids that failed
	// validation at selection time.
	Used     map[string]struct{}
	Rejected map[string]struct{}

	Tallies   scoring.Tallies
	Plan      Plan
	PlanIndex int

	// TierTrail is the tier of every answered item, in order.
	TierTrail []itembank.Tier
	Answers   []report.AnswerRecord

	// Current is the item awaiting an answer, served from CurrentTier.
	Current     *itembank.Item
	CurrentTier itembank.Tier

	// EndedEarly marks phases that stopped on selection exhaustion.
	EndedEarly map[itembank.Subject]bool

	Pools      pool.Pools
	StartedAt  time.Time
	FinishedAt time.Time
	Report     *report.Report
	Abandoned  bool

	tracker *rotation.Tracker
}

// Phase returns the subject being administered, or "" outside a phase.
func (s *Session) Phase() itembank.Subject {
	switch s.State {
	case StateMathPhase:
		return itembank.SubjectMath
	case StateEnglishPhase:
		return itembank.SubjectEnglish
	}
	return ""
}

// Policy returns the difficulty policy of the current phase.
func (s *Session) Policy() difficulty.Policy {
	return s.Policies[s.Phase()]
}

// Answered returns the total number of answered items.
func (s *Session) Answered() int {
	return len(s.Answers)
}

// Target returns the nominal total number of items.
func (s *Session) Target() int {
	n := 0
	for _, t := range s.Targets {
		n += t
	}
	return n
}

// Done reports whether the run can accept no more answers.
func (s *Session) Done() bool {
	return s.State == StateFinished || s.Abandoned
}

// Progress returns the position of the current item within the run as
// (index, total), both 1-based for display.
func (s *Session) Progress() (int, int) {
	return s.Answered() + 1, s.Target()
}
