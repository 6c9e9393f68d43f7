// Package evaluator abstracts the hand-strength collaborator behind a
// narrow cards-in, rank-out interface so the decision logic never depends
// on a particular evaluation library.
package evaluator

import (
	"fmt"

	poker "github.com/paulhankin/poker"

	"github.com/lox/holdem-brain/internal/deck"
)

// HandRank is a totally ordered hand strength. Higher is stronger.
type HandRank int16

// Compare returns 1 if hr beats other, -1 if it loses, 0 on a tie.
func (hr HandRank) Compare(other HandRank) int {
	switch {
	case hr > other:
		return 1
	case hr < other:
		return -1
	default:
		return 0
	}
}

// Evaluator maps a set of 5-7 cards to a comparable rank.
type Evaluator interface {
	Evaluate(cards []deck.Card) (HandRank, error)
}

// New returns the default evaluator backed by github.com/paulhankin/poker.
func New() Evaluator {
	return pokerEval{}
}

type pokerEval struct{}

func (pokerEval) Evaluate(cards []deck.Card) (HandRank, error) {
	switch len(cards) {
	case 5:
		var hand [5]poker.Card
		if err := convertInto(cards, hand[:]); err != nil {
			return 0, err
		}
		return HandRank(poker.Eval5(&hand)), nil
	case 6:
		// The library has no 6-card entry point; take the best of the
		// six 5-card subsets.
		var hand [5]poker.Card
		best := HandRank(0)
		for skip := 0; skip < 6; skip++ {
			subset := make([]deck.Card, 0, 5)
			for i, c := range cards {
				if i != skip {
					subset = append(subset, c)
				}
			}
			if err := convertInto(subset, hand[:]); err != nil {
				return 0, err
			}
			if rank := HandRank(poker.Eval5(&hand)); skip == 0 || rank > best {
				best = rank
			}
		}
		return best, nil
	case 7:
		var hand [7]poker.Card
		if err := convertInto(cards, hand[:]); err != nil {
			return 0, err
		}
		return HandRank(poker.Eval7(&hand)), nil
	default:
		return 0, fmt.Errorf("evaluator: expected 5-7 cards, got %d", len(cards))
	}
}

// convertInto translates our cards into the library representation.
// The library counts aces as rank 1.
func convertInto(cards []deck.Card, out []poker.Card) error {
	for i, c := range cards {
		var suit poker.Suit
		switch c.Suit {
		case deck.Clubs:
			suit = poker.Club
		case deck.Diamonds:
			suit = poker.Diamond
		case deck.Hearts:
			suit = poker.Heart
		default:
			suit = poker.Spade
		}

		rank := poker.Rank(c.Rank)
		if c.Rank == deck.Ace {
			rank = poker.Rank(1)
		}

		pc, err := poker.MakeCard(suit, rank)
		if err != nil {
			return fmt.Errorf("evaluator: %w", err)
		}
		out[i] = pc
	}
	return nil
}
