package brain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brain.hcl")
	content := `
equity {
  samples = 500
}

strategy {
  fold_margin        = 0.02
  raise_pot_fraction = 0.5
}

bluff {
  base_rate    = 0.1
  river_weight = 0.6
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Equity.Samples)
	assert.Equal(t, 150, cfg.Equity.TimeBudgetMS, "unset field keeps default")
	assert.Equal(t, 0.02, cfg.Strategy.FoldMargin)
	assert.Equal(t, 0.5, cfg.Strategy.RaisePotFraction)
	assert.Equal(t, 0.1, cfg.Bluff.BaseRate)
	assert.Equal(t, 0.6, cfg.Bluff.RiverWeight)
	assert.Equal(t, 0.02, cfg.Bluff.MinProbability, "unset field keeps default")
}

func TestLoadConfigRejectsBadHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brain.hcl")
	require.NoError(t, os.WriteFile(path, []byte("equity {"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestValidateRejectsInvertedBluffBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bluff.MinProbability = 0.5
	cfg.Bluff.MaxProbability = 0.1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Bluff.MaxProbability = 1.0
	assert.Error(t, cfg.Validate(), "a certain bluff is deterministic")

	cfg = DefaultConfig()
	cfg.Equity.Samples = -1
	assert.Error(t, cfg.Validate())
}
