// Package holdem defines the domain types shared between the decision core
// and its collaborators: hand state, decisions, streets, and actions.
package holdem

// Street represents a betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

// String returns the string representation of a street
func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unknown"
	}
}

// ParseStreet parses a street name as produced by String.
func ParseStreet(s string) (Street, bool) {
	switch s {
	case "preflop":
		return Preflop, true
	case "flop":
		return Flop, true
	case "turn":
		return Turn, true
	case "river":
		return River, true
	default:
		return Preflop, false
	}
}

// BoardSize returns the number of board cards dealt by this street.
func (s Street) BoardSize() int {
	switch s {
	case Flop:
		return 3
	case Turn:
		return 4
	case River:
		return 5
	default:
		return 0
	}
}
