package main

import (
	"context"
	"testing"

	"github.com/metaleague/evolution/evolution"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsOnEmptyPath(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, evolution.DefaultConfig(), cfg)
}

func TestLoadConfigOverlaysYAML(t *testing.T) {
	cfg, err := loadConfig("testdata/reference.yaml")
	require.NoError(t, err)
	require.Equal(t, 10, cfg.PopulationSize)
	require.Equal(t, 4, cfg.Generations)
	require.Equal(t, uint64(42), cfg.Seed)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig("testdata/does-not-exist.yaml")
	require.Error(t, err)
}

func TestRunEvolutionProducesSnapshots(t *testing.T) {
	cfg, err := loadConfig("testdata/reference.yaml")
	require.NoError(t, err)

	result, err := runEvolution(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.Len(t, result.Snapshots, cfg.Generations)
}

func TestBestOfFrontEmpty(t *testing.T) {
	require.Nil(t, bestOfFront(nil))
}
