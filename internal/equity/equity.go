// Package equity estimates win/tie/loss probabilities for a hold'em hand
// by randomly completing the deck, with exact enumeration on the river.
// Sampling is embarrassingly parallel; partial results combine by simple
// summation so any worker split produces the same aggregate.
package equity

import (
	"context"
	rand "math/rand/v2"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-brain/internal/deck"
	"github.com/lox/holdem-brain/internal/evaluator"
	"github.com/lox/holdem-brain/internal/randutil"
)

const (
	defaultSamples = 1000
	// parallelThreshold is the sample count below which goroutine
	// startup costs more than it saves.
	parallelThreshold = 500
	// budgetCheckInterval bounds clock reads inside the sample loop.
	budgetCheckInterval = 64
)

// Options control one estimation request.
type Options struct {
	// Samples is the requested number of Monte Carlo samples. Defaults
	// to 1000. Ignored for exact river enumeration.
	Samples int
	// Seed drives all randomness; a fixed seed reproduces the estimate.
	Seed int64
	// TimeBudget caps wall-clock time. When exceeded the best-effort
	// estimate gathered so far is returned. Zero means no cap.
	TimeBudget time.Duration
	// Dead lists known exposed cards excluded from sampling, beyond the
	// hole and board.
	Dead []deck.Card
}

// Estimator runs equity estimations against a hand evaluator.
type Estimator struct {
	eval    evaluator.Evaluator
	clock   quartz.Clock
	workers int
	logger  *log.Logger
}

// NewEstimator creates an estimator with the default worker count.
func NewEstimator(eval evaluator.Evaluator, logger *log.Logger) *Estimator {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	return &Estimator{
		eval:    eval,
		clock:   quartz.NewReal(),
		workers: workers,
		logger:  logger.WithPrefix("equity"),
	}
}

// WithClock substitutes the wall clock, for deterministic budget tests.
func (e *Estimator) WithClock(clock quartz.Clock) *Estimator {
	e.clock = clock
	return e
}

// Estimate computes win/tie/loss probabilities for hole against an
// opponent holding a hand from hint (nil means any two cards). On the
// river the result is exact; otherwise it is sampled. The deck must hold
// enough unseen cards for an opponent hand plus the board runout,
// otherwise InsufficientDeckError is returned.
func (e *Estimator) Estimate(ctx context.Context, hole, board []deck.Card, hint Range, opts Options) (Estimate, error) {
	if len(hole) != 2 {
		return Estimate{}, &InsufficientDeckError{Need: 2, Have: len(hole)}
	}
	if len(board) > 5 {
		board = board[:5]
	}
	if hint == nil {
		hint = RandomRange{}
	}
	if opts.Samples <= 0 {
		opts.Samples = defaultSamples
	}

	used := deck.NewCardSet(hole)
	for _, c := range board {
		used.Add(c)
	}
	if used.Count() != len(hole)+len(board) {
		// Duplicates between hole and board shrink the set.
		return Estimate{}, &InsufficientDeckError{Need: len(hole) + len(board), Have: used.Count()}
	}
	for _, c := range opts.Dead {
		used.Add(c)
	}
	available := deck.Remaining(used)
	need := 2 + (5 - len(board))
	if len(available) < need {
		return Estimate{}, &InsufficientDeckError{Need: need, Have: len(available)}
	}

	if len(board) == 5 {
		return e.enumerateRiver(hole, board, available, hint)
	}
	return e.sample(ctx, hole, board, available, hint, opts)
}

// enumerateRiver computes the exact result over every opponent combination
// the hint admits. With a full board no randomness is involved.
func (e *Estimator) enumerateRiver(hole, board, available []deck.Card, hint Range) (Estimate, error) {
	hero := make([]deck.Card, 0, 7)
	hero = append(hero, hole...)
	hero = append(hero, board...)
	heroRank, err := e.eval.Evaluate(hero)
	if err != nil {
		return Estimate{}, err
	}

	opp := make([]deck.Card, 7)
	copy(opp[2:], board)

	count := func(filter bool) tally {
		var t tally
		for i := 0; i < len(available); i++ {
			for j := i + 1; j < len(available); j++ {
				if filter && !hint.Allows(available[i], available[j]) {
					continue
				}
				opp[0], opp[1] = available[i], available[j]
				oppRank, evalErr := e.eval.Evaluate(opp)
				if evalErr != nil {
					continue
				}
				switch heroRank.Compare(oppRank) {
				case 1:
					t.wins++
				case 0:
					t.ties++
				default:
					t.losses++
				}
				t.samples++
			}
		}
		return t
	}

	t := count(true)
	if t.samples == 0 {
		// The board consumed every combination in the hinted range;
		// fall back to the full enumeration.
		t = count(false)
	}

	est := t.estimate()
	est.Exact = true
	return est, nil
}

// sample runs parallel Monte Carlo sampling with a per-worker RNG derived
// from the request seed. Worker tallies sum associatively, so the result
// is deterministic for a fixed seed and sample count.
func (e *Estimator) sample(ctx context.Context, hole, board, available []deck.Card, hint Range, opts Options) (Estimate, error) {
	workers := e.workers
	if opts.Samples < parallelThreshold || workers < 1 {
		workers = 1
	}

	var deadline time.Time
	if opts.TimeBudget > 0 {
		deadline = e.clock.Now().Add(opts.TimeBudget)
	}

	perWorker := opts.Samples / workers
	remainder := opts.Samples % workers

	g, ctx := errgroup.WithContext(ctx)
	results := make(chan tally, workers)

	for w := 0; w < workers; w++ {
		samples := perWorker
		if w < remainder {
			samples++
		}
		seed := randutil.Derive(opts.Seed, w)

		g.Go(func() error {
			rng := randutil.New(seed)
			results <- e.runWorker(ctx, hole, board, available, hint, samples, deadline, rng)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Estimate{}, err
	}
	close(results)

	var total tally
	for t := range results {
		total = total.add(t)
	}

	if total.samples == 0 {
		if err := ctx.Err(); err != nil {
			return Estimate{}, err
		}
		return Estimate{}, &InsufficientDeckError{Need: 2, Have: len(available)}
	}

	est := total.estimate()
	est.Budgeted = total.samples < opts.Samples
	if est.Budgeted {
		e.logger.Debug("estimate truncated by time budget",
			"requested", opts.Samples, "completed", total.samples)
	}
	return est, nil
}

func (e *Estimator) runWorker(ctx context.Context, hole, board, available []deck.Card, hint Range, samples int, deadline time.Time, rng *rand.Rand) tally {
	var t tally

	boardNeeded := 5 - len(board)
	hero := make([]deck.Card, 7)
	opp := make([]deck.Card, 7)
	copy(hero[:2], hole)
	copy(hero[2:2+len(board)], board)
	copy(opp[2:2+len(board)], board)
	candidates := make([]deck.Card, 0, len(available))

	for i := 0; i < samples; i++ {
		if i%budgetCheckInterval == 0 {
			if ctx.Err() != nil {
				return t
			}
			if !deadline.IsZero() && e.clock.Now().After(deadline) {
				return t
			}
		}

		oppHole, ok := hint.SampleHand(available, rng)
		if !ok {
			return t
		}
		opp[0], opp[1] = oppHole[0], oppHole[1]

		// Complete the board from the cards the opponent isn't holding.
		candidates = candidates[:0]
		for _, c := range available {
			if c != oppHole[0] && c != oppHole[1] {
				candidates = append(candidates, c)
			}
		}
		for k := 0; k < boardNeeded; k++ {
			idx := k + rng.IntN(len(candidates)-k)
			candidates[k], candidates[idx] = candidates[idx], candidates[k]
			hero[2+len(board)+k] = candidates[k]
			opp[2+len(board)+k] = candidates[k]
		}

		heroRank, err := e.eval.Evaluate(hero)
		if err != nil {
			continue
		}
		oppRank, err := e.eval.Evaluate(opp)
		if err != nil {
			continue
		}

		switch heroRank.Compare(oppRank) {
		case 1:
			t.wins++
		case 0:
			t.ties++
		default:
			t.losses++
		}
		t.samples++
	}
	return t
}
