package deck

import "math/bits"

// CardSet represents a set of cards using a bitset for fast membership tests.
// Each card maps to a bit: index = (rank-2)*4 + suit.
type CardSet uint64

func cardIndex(card Card) int {
	return int(card.Rank-Two)*4 + int(card.Suit)
}

// Add adds a card to the set
func (cs *CardSet) Add(card Card) {
	*cs |= 1 << cardIndex(card)
}

// Contains checks if a card is in the set
func (cs CardSet) Contains(card Card) bool {
	return cs&(1<<cardIndex(card)) != 0
}

// Count returns the number of cards in the set
func (cs CardSet) Count() int {
	return bits.OnesCount64(uint64(cs))
}

// NewCardSet creates a CardSet from a slice of cards
func NewCardSet(cards []Card) CardSet {
	var cs CardSet
	for _, card := range cards {
		cs.Add(card)
	}
	return cs
}

// All returns the full 52-card deck in a fixed order.
func All() []Card {
	cards := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, Card{Suit: suit, Rank: rank})
		}
	}
	return cards
}

// Remaining returns every card not in the exclusion set, in a fixed order.
func Remaining(exclude CardSet) []Card {
	cards := make([]Card, 0, 52-exclude.Count())
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			card := Card{Suit: suit, Rank: rank}
			if !exclude.Contains(card) {
				cards = append(cards, card)
			}
		}
	}
	return cards
}
