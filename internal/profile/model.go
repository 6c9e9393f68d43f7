package profile

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-brain/internal/holdem"
)

// ObservedAction is a single opponent action as seen at the table.
type ObservedAction struct {
	Action      holdem.ActionKind
	NormBet     float64 // bet size as a fraction of the pot, 0 for checks/folds
	FacingRaise bool    // the action was taken while facing a raise
}

// HandOutcome closes out one observed hand.
type HandOutcome struct {
	Showdown       bool
	ShowedWeakHand bool // showdown revealed one pair or worse
	WonPot         bool
}

// counters holds the per-opponent sufficient statistics plus the flags of
// the hand currently in progress. Raw history is never retained here.
type counters struct {
	hands     int
	vpipHands int

	raises  int
	calls   int
	folds   int
	checks  int
	actions int

	facingRaise int
	foldToRaise int

	showdowns       int
	raisedShowdowns int
	weakShowdowns   int // raised, then shown weak

	betSizeSum float64
	betSizeN   int

	// in-progress hand flags, folded into aggregates by FinishHand
	inHand         bool
	vpipThisHand   bool
	raisedThisHand bool
}

// Model accumulates observations per opponent for the length of a session.
// Updates are serialized by a single mutex: one hand's outcome update
// completes before the next decision reads the profile.
type Model struct {
	mu     sync.Mutex
	stats  map[string]*counters
	logger *log.Logger
}

// NewModel creates an empty opponent model.
func NewModel(logger *log.Logger) *Model {
	return &Model{
		stats:  make(map[string]*counters),
		logger: logger.WithPrefix("profile"),
	}
}

func (m *Model) get(opponent string) *counters {
	c, ok := m.stats[opponent]
	if !ok {
		c = &counters{}
		m.stats[opponent] = c
	}
	return c
}

// RecordAction appends one observed action to the opponent's running
// counters. Street is recorded for bookkeeping symmetry with the history
// store; the aggregates themselves are street-agnostic.
func (m *Model) RecordAction(opponent string, street holdem.Street, oa ObservedAction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.get(opponent)
	c.inHand = true
	c.actions++

	switch oa.Action {
	case holdem.Raise:
		c.raises++
		c.raisedThisHand = true
		c.vpipThisHand = true
	case holdem.Call:
		c.calls++
		c.vpipThisHand = true
	case holdem.Fold:
		c.folds++
	case holdem.Check:
		c.checks++
	}

	if oa.FacingRaise {
		c.facingRaise++
		if oa.Action == holdem.Fold {
			c.foldToRaise++
		}
	}

	if oa.NormBet > 0 {
		c.betSizeSum += oa.NormBet
		c.betSizeN++
	}
}

// FinishHand folds the in-progress flags into the aggregates. Abandoned
// hands (no showdown) update frequency counters but never the bluff rate,
// since the true hand strength stays unknown.
func (m *Model) FinishHand(opponent string, outcome HandOutcome) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.get(opponent)
	if !c.inHand {
		return
	}

	c.hands++
	if c.vpipThisHand {
		c.vpipHands++
	}

	if outcome.Showdown {
		c.showdowns++
		if c.raisedThisHand {
			c.raisedShowdowns++
			if outcome.ShowedWeakHand {
				c.weakShowdowns++
			}
		}
	}

	c.inHand = false
	c.vpipThisHand = false
	c.raisedThisHand = false
}

// Profile returns the current aggregate profile for an opponent. With zero
// completed hands it returns a neutral default and logs the cold start.
func (m *Model) Profile(opponent string) Profile {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.stats[opponent]
	if !ok || c.hands == 0 {
		m.logger.Debug("cold-start profile", "opponent", opponent)
		return neutralProfile(opponent)
	}

	p := Profile{
		Opponent: opponent,
		Hands:    c.hands,
		VPIP:     float64(c.vpipHands) / float64(c.hands),
	}
	if c.actions > 0 {
		p.RaiseFreq = float64(c.raises) / float64(c.actions)
		p.CallFreq = float64(c.calls) / float64(c.actions)
		p.FoldFreq = float64(c.folds) / float64(c.actions)
	}
	if c.facingRaise > 0 {
		p.FoldToRaise = float64(c.foldToRaise) / float64(c.facingRaise)
	} else {
		p.FoldToRaise = 0.5
	}
	if c.raisedShowdowns > 0 {
		p.BluffRate = float64(c.weakShowdowns) / float64(c.raisedShowdowns)
	}
	if c.betSizeN > 0 {
		p.AvgBetSize = c.betSizeSum / float64(c.betSizeN)
	} else {
		p.AvgBetSize = 0.5
	}
	return p
}

// HandsObserved returns the number of completed hands recorded for an
// opponent.
func (m *Model) HandsObserved(opponent string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.stats[opponent]; ok {
		return c.hands
	}
	return 0
}
