package evaluator

import (
	"testing"

	"github.com/lox/holdem-brain/internal/deck"
)

func mustCards(t *testing.T, s string) []deck.Card {
	t.Helper()
	cards, err := deck.ParseCards(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return cards
}

func TestEvaluateOrdering(t *testing.T) {
	t.Parallel()
	eval := New()

	// Each hand strictly beats the next.
	hands := []string{
		"AsKsQsJsTs",  // royal flush
		"9c9d9h9sKc",  // quads
		"8c8d8hKsKc",  // full house
		"As2s5s9sJs",  // flush
		"9c8dTh7s6c",  // straight
		"QcQdQh7s2c",  // trips
		"JcJd4h4s9c",  // two pair
		"TcTd7h4s2c",  // pair
		"AcJd7h4s2c",  // high card
	}

	var prev HandRank
	for i, s := range hands {
		rank, err := eval.Evaluate(mustCards(t, s))
		if err != nil {
			t.Fatalf("evaluate %q: %v", s, err)
		}
		if i > 0 && rank.Compare(prev) >= 0 {
			t.Errorf("expected %q to rank below %q (%d vs %d)", s, hands[i-1], rank, prev)
		}
		prev = rank
	}
}

func TestEvaluateTies(t *testing.T) {
	t.Parallel()
	eval := New()

	a, err := eval.Evaluate(mustCards(t, "AsKdQh7c2s"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := eval.Evaluate(mustCards(t, "AdKhQc7s2d"))
	if err != nil {
		t.Fatal(err)
	}
	if a.Compare(b) != 0 {
		t.Errorf("identical hand shapes should tie, got %d vs %d", a, b)
	}
}

func TestEvaluateSevenUsesBestFive(t *testing.T) {
	t.Parallel()
	eval := New()

	// Board pairs the hole cards into a set even with junk kickers.
	withSet, err := eval.Evaluate(mustCards(t, "9c9d9h4s2cKdQh"))
	if err != nil {
		t.Fatal(err)
	}
	pairOnly, err := eval.Evaluate(mustCards(t, "9c9d8h4s2cKdQh"))
	if err != nil {
		t.Fatal(err)
	}
	if withSet.Compare(pairOnly) != 1 {
		t.Errorf("set should beat pair: %d vs %d", withSet, pairOnly)
	}
}

func TestEvaluateSixCards(t *testing.T) {
	t.Parallel()
	eval := New()

	// Six cards containing a flush must rank at least as high as the
	// best five of them.
	six, err := eval.Evaluate(mustCards(t, "As2s5s9sJs8d"))
	if err != nil {
		t.Fatal(err)
	}
	five, err := eval.Evaluate(mustCards(t, "As2s5s9sJs"))
	if err != nil {
		t.Fatal(err)
	}
	if six.Compare(five) != 0 {
		t.Errorf("flush should be chosen from six cards: %d vs %d", six, five)
	}
}

func TestEvaluateRejectsBadCounts(t *testing.T) {
	t.Parallel()
	eval := New()

	if _, err := eval.Evaluate(mustCards(t, "AsKd")); err == nil {
		t.Error("expected error for 2 cards")
	}
	if _, err := eval.Evaluate(mustCards(t, "AsKdQh7c2s9d8c4h")); err == nil {
		t.Error("expected error for 8 cards")
	}
}
