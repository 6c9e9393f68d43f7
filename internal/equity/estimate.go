package equity

import (
	"fmt"
	"math"
)

// Estimate carries the win/tie/loss probabilities for the hero's hand
// against the assumed opponent range. The three probabilities sum to 1
// within floating-point error. Confidence improves with sample count.
type Estimate struct {
	Win  float64
	Tie  float64
	Loss float64

	Samples int
	// Exact is set when the estimate came from full enumeration rather
	// than sampling (possible on the river).
	Exact bool
	// Budgeted is set when sampling stopped at the time budget before
	// reaching the requested sample count.
	Budgeted bool
}

// Equity returns the overall equity: wins count 1.0, ties 0.5.
func (e Estimate) Equity() float64 {
	return e.Win + e.Tie/2
}

// StdErr returns the standard error of the equity estimate. Zero for
// exact enumerations.
func (e Estimate) StdErr() float64 {
	if e.Exact || e.Samples == 0 {
		return 0
	}
	eq := e.Equity()
	return math.Sqrt(eq * (1 - eq) / float64(e.Samples))
}

// ConfidenceInterval returns the 95% confidence interval for the equity.
func (e Estimate) ConfidenceInterval() (lower, upper float64) {
	eq := e.Equity()
	margin := 1.96 * e.StdErr()
	return math.Max(0, eq-margin), math.Min(1, eq+margin)
}

func (e Estimate) String() string {
	kind := "sampled"
	if e.Exact {
		kind = "exact"
	}
	return fmt.Sprintf("win=%.4f tie=%.4f loss=%.4f (%s, n=%d)", e.Win, e.Tie, e.Loss, kind, e.Samples)
}

// tally is the associative partial result produced by each worker.
// Summation order never matters.
type tally struct {
	wins    int
	ties    int
	losses  int
	samples int
}

func (t tally) add(other tally) tally {
	return tally{
		wins:    t.wins + other.wins,
		ties:    t.ties + other.ties,
		losses:  t.losses + other.losses,
		samples: t.samples + other.samples,
	}
}

func (t tally) estimate() Estimate {
	if t.samples == 0 {
		return Estimate{}
	}
	n := float64(t.samples)
	return Estimate{
		Win:     float64(t.wins) / n,
		Tie:     float64(t.ties) / n,
		Loss:    float64(t.losses) / n,
		Samples: t.samples,
	}
}

// InsufficientDeckError reports that too few unseen cards remain to
// complete a sample (opponent hole cards plus board runout).
type InsufficientDeckError struct {
	Need int
	Have int
}

func (e *InsufficientDeckError) Error() string {
	return fmt.Sprintf("insufficient deck: need %d unseen cards, have %d", e.Need, e.Have)
}
