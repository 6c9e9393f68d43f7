// Package profile derives behavioral profiles of opponents from their
// observed actions. Only sufficient statistics are retained in memory;
// raw records live in the external history store.
package profile

import "fmt"

// Playstyle is a coarse behavioral classification.
type Playstyle int

const (
	Balanced Playstyle = iota
	Aggressive
	Passive
	Tight
	Loose
)

// String returns the string representation of a playstyle
func (p Playstyle) String() string {
	switch p {
	case Aggressive:
		return "aggressive"
	case Passive:
		return "passive"
	case Tight:
		return "tight"
	case Loose:
		return "loose"
	default:
		return "balanced"
	}
}

// Profile is a read-only snapshot of an opponent's aggregate statistics.
// A zero-observation profile carries neutral defaults so consumers never
// need nil handling.
type Profile struct {
	Opponent string
	Hands    int

	VPIP        float64 // voluntarily-put-money-in-pot rate
	RaiseFreq   float64
	CallFreq    float64
	FoldFreq    float64
	FoldToRaise float64
	BluffRate   float64 // raises later shown weak at showdown
	AvgBetSize  float64 // pot-normalized
}

// Neutral reports whether the profile is a cold-start default.
func (p Profile) Neutral() bool {
	return p.Hands == 0
}

// Playstyle classifies the opponent using the same frequency thresholds
// as the aggregate heuristics this model grew out of.
func (p Profile) Playstyle() Playstyle {
	if p.Neutral() {
		return Balanced
	}

	switch {
	case p.RaiseFreq > 0.3 || (p.BluffRate > 0.5 && p.RaiseFreq > 0.15):
		return Aggressive
	case p.FoldFreq > 0.6:
		return Tight
	case p.CallFreq > 0.5:
		return Passive
	case p.VPIP > 0.7:
		return Loose
	default:
		return Balanced
	}
}

// neutralProfile is returned for unseen opponents: balanced, moderate
// aggression, average fold tendencies.
func neutralProfile(opponent string) Profile {
	return Profile{
		Opponent:    opponent,
		VPIP:        0.5,
		RaiseFreq:   0.2,
		CallFreq:    0.35,
		FoldFreq:    0.3,
		FoldToRaise: 0.5,
		BluffRate:   0.1,
		AvgBetSize:  0.5,
	}
}

// StaleProfileWarning signals that a decision proceeded on a neutral
// default profile. It is informational, never fatal.
type StaleProfileWarning struct {
	Opponent string
}

func (w *StaleProfileWarning) Error() string {
	return fmt.Sprintf("no observations for opponent %q, using neutral profile", w.Opponent)
}
