package holdem

// ActionKind enumerates betting actions.
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Raise
)

// String returns the string representation of an action
func (a ActionKind) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// ParseActionKind parses an action name as produced by String.
func ParseActionKind(s string) (ActionKind, bool) {
	switch s {
	case "fold":
		return Fold, true
	case "check":
		return Check, true
	case "call":
		return Call, true
	case "raise", "bet":
		return Raise, true
	default:
		return Fold, false
	}
}

// Aggressive reports whether the action puts pressure on the opponent.
func (a ActionKind) Aggressive() bool {
	return a == Raise
}

// Decision is the single action the decision core returns for one betting
// round. Amount is meaningful only for raises and is the total raise-to
// size, already clamped to the acting seat's stack.
//
// Bluff marks a bluff-driven action for profile bookkeeping. It must never
// be serialized into any opponent-facing representation.
type Decision struct {
	Action   ActionKind
	Amount   int
	Bluff    bool
	Degraded bool
}
