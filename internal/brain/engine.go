// Package brain is the decision core: it turns a hand state and an
// opponent profile into a single fold/check/call/raise decision. Each call
// is a pure request/response; the opponent model is the only state shared
// across hands.
package brain

import (
	"context"
	"errors"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-brain/internal/deck"
	"github.com/lox/holdem-brain/internal/equity"
	"github.com/lox/holdem-brain/internal/holdem"
	"github.com/lox/holdem-brain/internal/profile"
	"github.com/lox/holdem-brain/internal/randutil"
)

// Estimator is the slice of the equity estimator the engine needs.
type Estimator interface {
	Estimate(ctx context.Context, hole, board []deck.Card, hint equity.Range, opts equity.Options) (equity.Estimate, error)
}

// Engine drives the baseline strategy and delegates fold overrides to the
// bluff module.
type Engine struct {
	cfg       *Config
	estimator Estimator
	model     *profile.Model
	logger    *log.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine creates a decision engine seeded from the system entropy pool.
func NewEngine(cfg *Config, estimator Estimator, model *profile.Model, logger *log.Logger) *Engine {
	return &Engine{
		cfg:       cfg,
		estimator: estimator,
		model:     model,
		logger:    logger.WithPrefix("brain"),
		rng:       randutil.New(rand.Int64()),
	}
}

// WithRand substitutes the engine's random source, for reproducible runs.
func (e *Engine) WithRand(rng *rand.Rand) *Engine {
	e.rng = rng
	return e
}

// Decide computes the action for one betting round. Malformed states are
// rejected with InvalidHandStateError; deck exhaustion in the estimator
// degrades to a conservative check/fold rather than surfacing.
func (e *Engine) Decide(ctx context.Context, state *holdem.HandState) (holdem.Decision, error) {
	if err := state.Validate(); err != nil {
		return holdem.Decision{}, err
	}

	prof := e.model.Profile(state.Opponent)
	if prof.Neutral() {
		warn := &profile.StaleProfileWarning{Opponent: state.Opponent}
		e.logger.Warn("deciding on neutral profile", "err", warn)
	}

	e.mu.Lock()
	seed := e.rng.Int64()
	draw := e.rng.Float64()
	e.mu.Unlock()

	est, err := e.estimator.Estimate(ctx, state.Hole, state.Board,
		equity.ForProfile(prof), equity.Options{
			Samples:    e.cfg.Equity.Samples,
			Seed:       seed,
			TimeBudget: e.cfg.Equity.TimeBudget(),
		})
	if err != nil {
		var deckErr *equity.InsufficientDeckError
		if errors.As(err, &deckErr) {
			e.logger.Warn("estimator degraded, playing conservatively", "err", err)
			return e.conservative(state), nil
		}
		return holdem.Decision{}, err
	}

	decision := e.baseline(state, prof, est)
	decision = e.maybeBluff(decision, state, prof, draw)

	e.logger.Debug("decision",
		"street", state.Street,
		"equity", est.Equity(),
		"pot_odds", state.PotOdds(),
		"action", decision.Action,
		"amount", decision.Amount)
	return decision, nil
}

// conservative is the degraded fallback when no estimate is available:
// check when free, fold when facing a bet.
func (e *Engine) conservative(state *holdem.HandState) holdem.Decision {
	action := holdem.Fold
	if state.ToCall == 0 {
		action = holdem.Check
	}
	return holdem.Decision{Action: action, Degraded: true}
}

// baseline is the rational line before any bluffing: compare equity
// against pot odds shifted by the opponent's playstyle, then fold, call,
// or raise for value.
func (e *Engine) baseline(state *holdem.HandState, prof profile.Profile, est equity.Estimate) holdem.Decision {
	win := est.Equity()
	required := e.requiredEquity(state, prof)

	if state.ToCall == 0 {
		// Check/bet node. Bet only clearly ahead of a random holding.
		if win > 0.5+e.cfg.Strategy.ValueRaiseMargin {
			return e.raise(state, win-0.5)
		}
		return holdem.Decision{Action: holdem.Check}
	}

	switch {
	case win >= required+e.cfg.Strategy.ValueRaiseMargin:
		return e.raise(state, win-required)
	case win >= required-e.cfg.Strategy.FoldMargin:
		return holdem.Decision{Action: holdem.Call, Amount: state.ToCall}
	default:
		return holdem.Decision{Action: holdem.Fold}
	}
}

// requiredEquity is the pot-odds threshold shifted by the opponent's
// playstyle: a tight opponent's bet means strength, a loose or aggressive
// one bets wide enough to continue lighter against.
func (e *Engine) requiredEquity(state *holdem.HandState, prof profile.Profile) float64 {
	required := state.PotOdds()
	switch prof.Playstyle() {
	case profile.Tight:
		required += e.cfg.Strategy.StyleAdjust
	case profile.Aggressive, profile.Loose:
		required -= e.cfg.Strategy.StyleAdjust
	case profile.Passive:
		required -= e.cfg.Strategy.StyleAdjust / 2
	}
	if required < 0 {
		required = 0
	}
	return required
}

// raise sizes a value raise proportionally to the pot and to the margin by
// which equity clears the threshold, clamped into [min-raise, stack]. A
// raise the stack cannot cover becomes an all-in; one the minimum cannot
// meet becomes a call.
func (e *Engine) raise(state *holdem.HandState, margin float64) holdem.Decision {
	size := float64(state.Pot+state.ToCall) *
		e.cfg.Strategy.RaisePotFraction *
		e.cfg.Strategy.AggressionMultiplier *
		(1 + margin)

	amount := state.ToCall + int(size)
	if amount < state.MinRaise {
		amount = state.MinRaise
	}
	if amount > state.HeroStack {
		amount = state.HeroStack
	}

	if amount <= state.ToCall {
		// Stack too short to raise. Calling is all we can do.
		if state.ToCall == 0 {
			return holdem.Decision{Action: holdem.Check}
		}
		call := state.ToCall
		if call > state.HeroStack {
			call = state.HeroStack
		}
		return holdem.Decision{Action: holdem.Call, Amount: call}
	}
	return holdem.Decision{Action: holdem.Raise, Amount: amount}
}
