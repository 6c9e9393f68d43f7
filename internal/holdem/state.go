package holdem

import (
	"fmt"

	"github.com/lox/holdem-brain/internal/deck"
)

// Seat identifies one of the two players in a heads-up hand.
type Seat int

const (
	SeatHero Seat = iota
	SeatVillain
)

// String returns the string representation of a seat
func (s Seat) String() string {
	if s == SeatHero {
		return "hero"
	}
	return "villain"
}

// ActionRecord is one entry in the betting history of the current hand.
type ActionRecord struct {
	Seat   Seat
	Street Street
	Action ActionKind
	Amount int
}

// HandState is the full decision-point snapshot supplied by the game-flow
// driver. It is read-only to the decision core; the driver owns mutation
// and is assumed to supply pot and to-call amounts consistent with the
// rules.
type HandState struct {
	Hole   []deck.Card // exactly 2, hero's
	Board  []deck.Card // 0-5, shared
	Street Street

	Pot      int
	ToCall   int
	MinRaise int

	HeroStack    int
	VillainStack int

	Opponent string // opponent identifier for profiling
	History  []ActionRecord
}

// InvalidHandStateError reports a caller contract violation. It is surfaced
// immediately rather than silently corrected.
type InvalidHandStateError struct {
	Reason string
}

func (e *InvalidHandStateError) Error() string {
	return fmt.Sprintf("invalid hand state: %s", e.Reason)
}

func invalidf(format string, args ...any) error {
	return &InvalidHandStateError{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the structural invariants of the hand state.
func (hs *HandState) Validate() error {
	if len(hs.Hole) != 2 {
		return invalidf("expected 2 hole cards, got %d", len(hs.Hole))
	}
	if len(hs.Board) > 5 {
		return invalidf("board has %d cards", len(hs.Board))
	}
	if got, want := len(hs.Board), hs.Street.BoardSize(); got != want {
		return invalidf("%s board should have %d cards, got %d", hs.Street, want, got)
	}
	if hs.Pot < 0 {
		return invalidf("negative pot %d", hs.Pot)
	}
	if hs.ToCall < 0 {
		return invalidf("negative to-call amount %d", hs.ToCall)
	}
	if hs.HeroStack < 0 || hs.VillainStack < 0 {
		return invalidf("negative stack")
	}

	seen := deck.CardSet(0)
	for _, c := range append(append([]deck.Card{}, hs.Hole...), hs.Board...) {
		if seen.Contains(c) {
			return invalidf("duplicate card %s", c)
		}
		seen.Add(c)
	}
	return nil
}

// PotOdds returns the break-even win probability for calling:
// toCall / (pot + toCall). Zero when there is nothing to call.
func (hs *HandState) PotOdds() float64 {
	if hs.ToCall <= 0 {
		return 0
	}
	return float64(hs.ToCall) / float64(hs.Pot+hs.ToCall)
}

// EffectiveStack returns the smaller of the two stacks, the most the hero
// can actually win or lose from here.
func (hs *HandState) EffectiveStack() int {
	if hs.HeroStack < hs.VillainStack {
		return hs.HeroStack
	}
	return hs.VillainStack
}
