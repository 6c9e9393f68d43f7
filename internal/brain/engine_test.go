package brain

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-brain/internal/deck"
	"github.com/lox/holdem-brain/internal/equity"
	"github.com/lox/holdem-brain/internal/evaluator"
	"github.com/lox/holdem-brain/internal/holdem"
	"github.com/lox/holdem-brain/internal/profile"
	"github.com/lox/holdem-brain/internal/randutil"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestEngine(estimator Estimator) *Engine {
	return NewEngine(DefaultConfig(), estimator, profile.NewModel(testLogger()), testLogger()).
		WithRand(randutil.New(1))
}

func realEngine() *Engine {
	return newTestEngine(equity.NewEstimator(evaluator.New(), testLogger()))
}

// stubEstimator returns a fixed estimate, letting tests pin the equity the
// engine sees.
type stubEstimator struct {
	est equity.Estimate
	err error
}

func (s stubEstimator) Estimate(context.Context, []deck.Card, []deck.Card, equity.Range, equity.Options) (equity.Estimate, error) {
	return s.est, s.err
}

func mustCards(t *testing.T, s string) []deck.Card {
	t.Helper()
	cards, err := deck.ParseCards(s)
	if err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return cards
}

func TestDecideRejectsMalformedState(t *testing.T) {
	engine := newTestEngine(stubEstimator{})

	state := &holdem.HandState{
		Hole:     mustCards(t, "As Kd 2c"),
		Street:   holdem.Preflop,
		Pot:      10,
		Opponent: "villain",
	}

	_, err := engine.Decide(context.Background(), state)
	var invalid *holdem.InvalidHandStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidHandStateError", err)
	}
}

func TestDecideChecksWeakHandWhenFree(t *testing.T) {
	engine := realEngine()

	state := &holdem.HandState{
		Hole:         mustCards(t, "7d 2c"),
		Board:        mustCards(t, "Ah Kh Qs"),
		Street:       holdem.Flop,
		Pot:          100,
		ToCall:       0,
		MinRaise:     20,
		HeroStack:    1000,
		VillainStack: 1000,
		Opponent:     "villain",
	}

	decision, err := engine.Decide(context.Background(), state)
	if err != nil {
		t.Fatalf("decide failed: %v", err)
	}
	if decision.Action != holdem.Check {
		t.Errorf("got %s, want check with nothing to call and no equity", decision.Action)
	}
	if decision.Amount != 0 {
		t.Errorf("check carried amount %d", decision.Amount)
	}
}

func TestDecideRiverNutsRaisesForValue(t *testing.T) {
	engine := realEngine()

	state := &holdem.HandState{
		Hole:         mustCards(t, "As Ks"),
		Board:        mustCards(t, "Qs Js Ts 2d 3c"),
		Street:       holdem.River,
		Pot:          200,
		ToCall:       50,
		MinRaise:     100,
		HeroStack:    2000,
		VillainStack: 2000,
		Opponent:     "villain",
	}

	decision, err := engine.Decide(context.Background(), state)
	if err != nil {
		t.Fatalf("decide failed: %v", err)
	}
	if decision.Action != holdem.Raise {
		t.Fatalf("got %s with the nuts, want raise", decision.Action)
	}
	if decision.Amount < state.MinRaise || decision.Amount > state.HeroStack {
		t.Errorf("raise %d outside [%d, %d]", decision.Amount, state.MinRaise, state.HeroStack)
	}
	if decision.Bluff {
		t.Error("value raise tagged as bluff")
	}
}

func TestDecideRaiseClampedToStack(t *testing.T) {
	engine := realEngine()

	state := &holdem.HandState{
		Hole:         mustCards(t, "As Ks"),
		Board:        mustCards(t, "Qs Js Ts 2d 3c"),
		Street:       holdem.River,
		Pot:          1000,
		ToCall:       20,
		MinRaise:     40,
		HeroStack:    30,
		VillainStack: 2000,
		Opponent:     "villain",
	}

	decision, err := engine.Decide(context.Background(), state)
	if err != nil {
		t.Fatalf("decide failed: %v", err)
	}
	if decision.Action != holdem.Raise {
		t.Fatalf("got %s, want all-in raise", decision.Action)
	}
	if decision.Amount != state.HeroStack {
		t.Errorf("got raise %d, want all-in for %d", decision.Amount, state.HeroStack)
	}
}

func TestDecideWeakHandFacingBigBet(t *testing.T) {
	engine := realEngine()

	state := &holdem.HandState{
		Hole:         mustCards(t, "7d 2c"),
		Board:        mustCards(t, "Ah Kh Qs Js 4d"),
		Street:       holdem.River,
		Pot:          500,
		ToCall:       400,
		MinRaise:     800,
		HeroStack:    2000,
		VillainStack: 2000,
		Opponent:     "villain",
	}

	decision, err := engine.Decide(context.Background(), state)
	if err != nil {
		t.Fatalf("decide failed: %v", err)
	}
	// The baseline is a fold; the bluff module may turn it into a raise.
	if decision.Action == holdem.Raise && !decision.Bluff {
		t.Error("raise with no equity was not bluff-tagged")
	}
	if decision.Action == holdem.Call {
		t.Error("called a big bet with no equity")
	}
}

func TestDecideDegradesOnDeckExhaustion(t *testing.T) {
	engine := newTestEngine(stubEstimator{err: &equity.InsufficientDeckError{Need: 2, Have: 1}})

	facing := &holdem.HandState{
		Hole:         mustCards(t, "As Kd"),
		Board:        mustCards(t, "7h 8h 9c"),
		Street:       holdem.Flop,
		Pot:          100,
		ToCall:       50,
		HeroStack:    1000,
		VillainStack: 1000,
		Opponent:     "villain",
	}
	decision, err := engine.Decide(context.Background(), facing)
	if err != nil {
		t.Fatalf("degraded path surfaced error: %v", err)
	}
	if decision.Action != holdem.Fold || !decision.Degraded {
		t.Errorf("got %s degraded=%v, want degraded fold", decision.Action, decision.Degraded)
	}

	free := *facing
	free.ToCall = 0
	decision, err = engine.Decide(context.Background(), &free)
	if err != nil {
		t.Fatalf("degraded path surfaced error: %v", err)
	}
	if decision.Action != holdem.Check || !decision.Degraded {
		t.Errorf("got %s degraded=%v, want degraded check", decision.Action, decision.Degraded)
	}
}

func TestDecideSurfacesEstimatorFailure(t *testing.T) {
	engine := newTestEngine(stubEstimator{err: context.Canceled})

	state := &holdem.HandState{
		Hole:         mustCards(t, "As Kd"),
		Board:        mustCards(t, "7h 8h 9c"),
		Street:       holdem.Flop,
		Pot:          100,
		ToCall:       50,
		HeroStack:    1000,
		VillainStack: 1000,
		Opponent:     "villain",
	}
	_, err := engine.Decide(context.Background(), state)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestDecideNeverCallsWhenNothingToCall(t *testing.T) {
	// Middling equity would be a call facing a bet; with nothing to call
	// it must come out as a check.
	engine := newTestEngine(stubEstimator{est: equity.Estimate{Win: 0.5, Loss: 0.5, Samples: 1000}})

	state := &holdem.HandState{
		Hole:         mustCards(t, "As Kd"),
		Board:        mustCards(t, "7h 8h 9c"),
		Street:       holdem.Flop,
		Pot:          100,
		ToCall:       0,
		MinRaise:     20,
		HeroStack:    1000,
		VillainStack: 1000,
		Opponent:     "villain",
	}
	decision, err := engine.Decide(context.Background(), state)
	if err != nil {
		t.Fatalf("decide failed: %v", err)
	}
	if decision.Action != holdem.Check {
		t.Errorf("got %s, want check", decision.Action)
	}
}
