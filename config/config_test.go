package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/helengibson/graphTPP-sub002/internal/encode"
	"github.com/helengibson/graphTPP-sub002/internal/rank"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	c, err := FromViper(v)
	require.NoError(t, err)

	gap, err := c.GapStrategy()
	require.NoError(t, err)
	assert.Equal(t, encode.NeighbourMean, gap)

	p, err := c.Property()
	require.NoError(t, err)
	assert.Equal(t, "hydropathy", p.Name())

	want := rank.DefaultOptions()
	got := c.RankOptions()
	assert.Equal(t, want.NumOutputDimensions, got.NumOutputDimensions)
	assert.Equal(t, want.ConvergenceLimit, got.ConvergenceLimit)
	assert.Equal(t, want.EpochLimit, got.EpochLimit)
	assert.Equal(t, want.Objective, got.Objective)
	assert.Equal(t, want.Seed, got.Seed)
	assert.Zero(t, got.PreSelectCount)
	assert.Zero(t, got.NumToSelect)
	assert.Empty(t, c.BuildOptions().ClassDelimiter)
}

func TestInit_SettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	settings := []byte(`
encode:
  property: identity
  gap: global
  class-delimiter: "|"
  class-piece: 1
rank:
  preselect: 50
  epochs: 20
optimizer:
  seed: 42
`)
	require.NoError(t, os.WriteFile(path, settings, 0644))

	v := viper.New()
	require.NoError(t, Init(v, path))

	c, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "identity", c.Encode.Property)
	assert.Equal(t, "|", c.BuildOptions().ClassDelimiter)
	assert.Equal(t, 1, c.BuildOptions().ClassPiece)
	assert.Equal(t, 50, c.RankOptions().PreSelectCount)
	assert.Equal(t, 20, c.RankOptions().EpochLimit)
	assert.Equal(t, 2, c.RankOptions().NumOutputDimensions, "default kept")
	assert.Equal(t, int64(42), c.RankOptions().Seed)

	gap, err := c.GapStrategy()
	require.NoError(t, err)
	assert.Equal(t, encode.GlobalMean, gap)
}

func TestInit_MissingExplicitFile(t *testing.T) {
	v := viper.New()
	err := Init(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestInit_Environment(t *testing.T) {
	t.Setenv("GRAPHTPP_RANK_DIMS", "3")
	t.Setenv("HOME", t.TempDir())

	v := viper.New()
	require.NoError(t, Init(v, ""))

	c, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Rank.Dims)
}
