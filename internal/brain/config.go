package brain

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config holds every tunable of the decision core. Thresholds and sizing
// are configuration, not constants, so strategies can be tuned without a
// rebuild.
type Config struct {
	Equity   EquitySettings   `hcl:"equity,block"`
	Strategy StrategySettings `hcl:"strategy,block"`
	Bluff    BluffSettings    `hcl:"bluff,block"`
}

// EquitySettings bound the work done per estimate.
type EquitySettings struct {
	Samples      int `hcl:"samples,optional"`
	TimeBudgetMS int `hcl:"time_budget_ms,optional"`
}

// TimeBudget returns the per-estimate wall-clock cap.
func (s EquitySettings) TimeBudget() time.Duration {
	return time.Duration(s.TimeBudgetMS) * time.Millisecond
}

// StrategySettings shape the baseline fold/call/raise line.
type StrategySettings struct {
	// FoldMargin is how far equity may sit below pot odds before a
	// marginal call becomes a fold.
	FoldMargin float64 `hcl:"fold_margin,optional"`
	// ValueRaiseMargin is how far equity must clear pot odds before a
	// call becomes a value raise.
	ValueRaiseMargin float64 `hcl:"value_raise_margin,optional"`
	// AggressionMultiplier scales raise sizing overall.
	AggressionMultiplier float64 `hcl:"aggression_multiplier,optional"`
	// RaisePotFraction is the base raise size as a fraction of the pot.
	RaisePotFraction float64 `hcl:"raise_pot_fraction,optional"`
	// StyleAdjust is the equity-threshold shift applied per opponent
	// playstyle (tighter opponents demand more equity to continue).
	StyleAdjust float64 `hcl:"style_adjust,optional"`
}

// BluffSettings govern when a baseline fold turns into a semi-bluff raise.
type BluffSettings struct {
	BaseRate float64 `hcl:"base_rate,optional"`
	// MinProbability and MaxProbability bound the bluff chance away from
	// the deterministic extremes.
	MinProbability float64 `hcl:"min_probability,optional"`
	MaxProbability float64 `hcl:"max_probability,optional"`

	PreflopWeight float64 `hcl:"preflop_weight,optional"`
	FlopWeight    float64 `hcl:"flop_weight,optional"`
	TurnWeight    float64 `hcl:"turn_weight,optional"`
	RiverWeight   float64 `hcl:"river_weight,optional"`

	// FoldToRaiseWeight scales how strongly the opponent's observed
	// fold-to-raise rate moves the bluff chance.
	FoldToRaiseWeight float64 `hcl:"fold_to_raise_weight,optional"`
	// PotScale normalizes the pot size into the bluff-chance pot factor.
	PotScale float64 `hcl:"pot_scale,optional"`
}

// DefaultConfig returns the shipped tuning.
func DefaultConfig() *Config {
	return &Config{
		Equity: EquitySettings{
			Samples:      2000,
			TimeBudgetMS: 150,
		},
		Strategy: StrategySettings{
			FoldMargin:           0.05,
			ValueRaiseMargin:     0.10,
			AggressionMultiplier: 1.0,
			RaisePotFraction:     0.66,
			StyleAdjust:          0.04,
		},
		Bluff: BluffSettings{
			BaseRate:          0.25,
			MinProbability:    0.02,
			MaxProbability:    0.40,
			PreflopWeight:     0.2,
			FlopWeight:        0.3,
			TurnWeight:        0.4,
			RiverWeight:       0.5,
			FoldToRaiseWeight: 1.0,
			PotScale:          100,
		},
	}
}

// LoadConfig loads the decision configuration from an HCL file. A missing
// file yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	applyDefaults(&config)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyDefaults(config *Config) {
	def := DefaultConfig()

	if config.Equity.Samples == 0 {
		config.Equity.Samples = def.Equity.Samples
	}
	if config.Equity.TimeBudgetMS == 0 {
		config.Equity.TimeBudgetMS = def.Equity.TimeBudgetMS
	}

	if config.Strategy.FoldMargin == 0 {
		config.Strategy.FoldMargin = def.Strategy.FoldMargin
	}
	if config.Strategy.ValueRaiseMargin == 0 {
		config.Strategy.ValueRaiseMargin = def.Strategy.ValueRaiseMargin
	}
	if config.Strategy.AggressionMultiplier == 0 {
		config.Strategy.AggressionMultiplier = def.Strategy.AggressionMultiplier
	}
	if config.Strategy.RaisePotFraction == 0 {
		config.Strategy.RaisePotFraction = def.Strategy.RaisePotFraction
	}
	if config.Strategy.StyleAdjust == 0 {
		config.Strategy.StyleAdjust = def.Strategy.StyleAdjust
	}

	if config.Bluff.BaseRate == 0 {
		config.Bluff.BaseRate = def.Bluff.BaseRate
	}
	if config.Bluff.MinProbability == 0 {
		config.Bluff.MinProbability = def.Bluff.MinProbability
	}
	if config.Bluff.MaxProbability == 0 {
		config.Bluff.MaxProbability = def.Bluff.MaxProbability
	}
	if config.Bluff.PreflopWeight == 0 {
		config.Bluff.PreflopWeight = def.Bluff.PreflopWeight
	}
	if config.Bluff.FlopWeight == 0 {
		config.Bluff.FlopWeight = def.Bluff.FlopWeight
	}
	if config.Bluff.TurnWeight == 0 {
		config.Bluff.TurnWeight = def.Bluff.TurnWeight
	}
	if config.Bluff.RiverWeight == 0 {
		config.Bluff.RiverWeight = def.Bluff.RiverWeight
	}
	if config.Bluff.FoldToRaiseWeight == 0 {
		config.Bluff.FoldToRaiseWeight = def.Bluff.FoldToRaiseWeight
	}
	if config.Bluff.PotScale == 0 {
		config.Bluff.PotScale = def.Bluff.PotScale
	}
}

// Validate checks the configuration for values that would break the
// decision invariants.
func (c *Config) Validate() error {
	if c.Equity.Samples < 1 {
		return fmt.Errorf("equity samples must be positive, got %d", c.Equity.Samples)
	}
	if c.Equity.TimeBudgetMS < 0 {
		return fmt.Errorf("equity time budget must not be negative, got %d", c.Equity.TimeBudgetMS)
	}
	if c.Strategy.RaisePotFraction <= 0 {
		return fmt.Errorf("raise pot fraction must be positive, got %v", c.Strategy.RaisePotFraction)
	}
	if c.Strategy.AggressionMultiplier <= 0 {
		return fmt.Errorf("aggression multiplier must be positive, got %v", c.Strategy.AggressionMultiplier)
	}
	if c.Bluff.MinProbability <= 0 || c.Bluff.MaxProbability >= 1 {
		return fmt.Errorf("bluff probability bounds must sit strictly inside (0,1), got [%v,%v]",
			c.Bluff.MinProbability, c.Bluff.MaxProbability)
	}
	if c.Bluff.MinProbability >= c.Bluff.MaxProbability {
		return fmt.Errorf("bluff minimum %v must be below maximum %v",
			c.Bluff.MinProbability, c.Bluff.MaxProbability)
	}
	return nil
}
