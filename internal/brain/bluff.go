package brain

import (
	"github.com/lox/holdem-brain/internal/holdem"
	"github.com/lox/holdem-brain/internal/profile"
)

// maybeBluff turns a baseline fold into a semi-bluff raise when the drawn
// value falls under the bluff probability. Raises and calls pass through
// untouched; there is no bluffing out of made hands.
func (e *Engine) maybeBluff(baseline holdem.Decision, state *holdem.HandState, prof profile.Profile, draw float64) holdem.Decision {
	if baseline.Action != holdem.Fold {
		return baseline
	}

	p := e.bluffProbability(state, prof)
	if draw >= p {
		return baseline
	}

	// Size the bluff exactly like a value raise with a thin margin, so
	// the bet itself carries no tell.
	raise := e.raise(state, e.cfg.Strategy.ValueRaiseMargin)
	if !raise.Action.Aggressive() {
		// Too shallow to put in a credible raise; the bluff is off.
		return baseline
	}
	raise.Bluff = true
	return raise
}

// bluffProbability combines street, pot size, stack depth, and the
// opponent's fold-to-raise rate into a bounded bluff chance. The bounds
// keep the line stochastic: never a guaranteed fold, never a guaranteed
// bluff.
func (e *Engine) bluffProbability(state *holdem.HandState, prof profile.Profile) float64 {
	cfg := e.cfg.Bluff

	potFactor := float64(state.Pot) / cfg.PotScale
	if potFactor > 1 {
		potFactor = 1
	}

	p := cfg.BaseRate * styleFactor(prof.Playstyle()) * (e.streetWeight(state.Street) + potFactor)

	// Opponents who fold to raises get bluffed more, stations less.
	p *= 1 + cfg.FoldToRaiseWeight*(prof.FoldToRaise-0.5)

	// A bluff needs chips behind it to threaten anything.
	if state.Pot > 0 {
		depth := float64(state.EffectiveStack()) / float64(state.Pot*2)
		if depth < 1 {
			p *= depth
		}
	}

	if p < cfg.MinProbability {
		p = cfg.MinProbability
	}
	if p > cfg.MaxProbability {
		p = cfg.MaxProbability
	}
	return p
}

// streetWeight rises with later streets: a bluff on the river tells a
// complete story, a preflop one risks every street that follows.
func (e *Engine) streetWeight(street holdem.Street) float64 {
	switch street {
	case holdem.Flop:
		return e.cfg.Bluff.FlopWeight
	case holdem.Turn:
		return e.cfg.Bluff.TurnWeight
	case holdem.River:
		return e.cfg.Bluff.RiverWeight
	default:
		return e.cfg.Bluff.PreflopWeight
	}
}

// styleFactor adapts bluffing to who is across the table: tight opponents
// release hands, loose and passive ones call anything down.
func styleFactor(style profile.Playstyle) float64 {
	switch style {
	case profile.Tight:
		return 1.3
	case profile.Loose, profile.Passive:
		return 0.6
	default:
		return 1.0
	}
}
