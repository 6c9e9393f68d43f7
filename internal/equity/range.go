package equity

import (
	rand "math/rand/v2"

	"github.com/lox/holdem-brain/internal/deck"
	"github.com/lox/holdem-brain/internal/profile"
)

// Range restricts which opponent hole-card combinations are considered.
// SampleHand draws one combination for Monte Carlo sampling; Allows
// filters combinations during exact enumeration. A nil Range means
// uniform over all remaining combinations.
type Range interface {
	SampleHand(available []deck.Card, rng *rand.Rand) ([2]deck.Card, bool)
	Allows(c1, c2 deck.Card) bool
}

// RandomRange samples any two remaining cards uniformly.
type RandomRange struct{}

func (RandomRange) SampleHand(available []deck.Card, rng *rand.Rand) ([2]deck.Card, bool) {
	if len(available) < 2 {
		return [2]deck.Card{}, false
	}

	// Pick 2 distinct indices without building a permutation.
	idx1 := rng.IntN(len(available))
	idx2 := rng.IntN(len(available) - 1)
	if idx2 >= idx1 {
		idx2++
	}
	return [2]deck.Card{available[idx1], available[idx2]}, true
}

func (RandomRange) Allows(c1, c2 deck.Card) bool { return true }

// TightRange models an opponent playing only premium holdings: big pairs,
// big suited connectors, strong aces.
type TightRange struct{}

func (TightRange) SampleHand(available []deck.Card, rng *rand.Rand) ([2]deck.Card, bool) {
	if len(available) < 2 {
		return [2]deck.Card{}, false
	}

	for attempts := 0; attempts < 200; attempts++ {
		hand, ok := RandomRange{}.SampleHand(available, rng)
		if !ok {
			return hand, false
		}
		if isTightHand(hand[0], hand[1]) {
			return hand, true
		}
	}

	// The board may consume too many premium cards; widen rather than spin.
	return MediumRange{}.SampleHand(available, rng)
}

func (TightRange) Allows(c1, c2 deck.Card) bool {
	return isTightHand(c1, c2)
}

// MediumRange sits between tight and random: premium hands always, decent
// hands with reduced weight.
type MediumRange struct{}

func (MediumRange) SampleHand(available []deck.Card, rng *rand.Rand) ([2]deck.Card, bool) {
	for attempts := 0; attempts < 50; attempts++ {
		hand, ok := RandomRange{}.SampleHand(available, rng)
		if !ok {
			return hand, false
		}
		if isTightHand(hand[0], hand[1]) {
			return hand, true
		}
		if isMediumHand(hand[0], hand[1]) && rng.Float64() < 0.6 {
			return hand, true
		}
	}
	return RandomRange{}.SampleHand(available, rng)
}

func (MediumRange) Allows(c1, c2 deck.Card) bool {
	return isTightHand(c1, c2) || isMediumHand(c1, c2)
}

// LooseRange models an opponent who plays almost anything.
type LooseRange struct{}

func (LooseRange) SampleHand(available []deck.Card, rng *rand.Rand) ([2]deck.Card, bool) {
	return RandomRange{}.SampleHand(available, rng)
}

func (LooseRange) Allows(c1, c2 deck.Card) bool { return true }

// ForProfile maps an opponent profile to the range their playstyle makes
// plausible: tight players show up with narrow holdings, loose players
// with anything.
func ForProfile(p profile.Profile) Range {
	switch p.Playstyle() {
	case profile.Tight:
		return TightRange{}
	case profile.Aggressive:
		// Frequent raising widens the range beyond premium but not to any-two.
		return MediumRange{}
	case profile.Loose, profile.Passive:
		return LooseRange{}
	default:
		return RandomRange{}
	}
}

// Percentile cutoffs against the starting-hand rankings table. Tight
// covers roughly the top 15% of holdings, medium the top 40%.
const (
	tightPercentile  = 0.85
	mediumPercentile = 0.60
)

func isTightHand(c1, c2 deck.Card) bool {
	return deck.HandPercentile([]deck.Card{c1, c2}) >= tightPercentile
}

func isMediumHand(c1, c2 deck.Card) bool {
	p := deck.HandPercentile([]deck.Card{c1, c2})
	return p >= mediumPercentile && p < tightPercentile
}
