package evolution

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsShapeErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PopulationSize = 1
	_, err := New(cfg)
	require.ErrorIs(t, err, ErrPopulationTooSmall)

	cfg = DefaultConfig()
	cfg.Generations = 0
	_, err = New(cfg)
	require.ErrorIs(t, err, ErrNoGenerations)

	cfg = DefaultConfig()
	cfg.Objectives = nil
	_, err = New(cfg)
	require.ErrorIs(t, err, ErrNoAxes)
}

func TestEndToEndShortRunS7(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PopulationSize = 5
	cfg.Generations = 3
	cfg.Seed = 42
	cfg.ProofGate.RequireStability = false

	d, err := New(cfg)
	require.NoError(t, err)

	result, err := d.Run(context.Background(), ReferenceEvaluator)
	require.NoError(t, err)

	require.Len(t, result.Snapshots, 3)
	for i, snap := range result.Snapshots {
		require.Equal(t, i, snap.Generation)
	}

	require.NotEmpty(t, result.FinalPopulation)
	for _, ind := range result.FinalPopulation {
		require.NotNil(t, ind.Verification)
		require.True(t, ind.Verification.Verified)
	}

	require.GreaterOrEqual(t, len(result.FinalParetoFront), 1)
	require.LessOrEqual(t, len(result.FinalParetoFront), len(result.FinalPopulation))
}

func TestGracefulHaltOnEmptyPassedSet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PopulationSize = 4
	cfg.Generations = 5
	cfg.Seed = 7
	cfg.ProofGate.MaxCost = -1 // impossible to satisfy: forces every individual to fail the gate

	d, err := New(cfg)
	require.NoError(t, err)

	result, err := d.Run(context.Background(), ReferenceEvaluator)
	require.NoError(t, err)
	require.Len(t, result.Snapshots, 1, "must halt at the first generation")
	require.Empty(t, result.FinalPopulation)
}

func TestCancelStopsBetweenGenerations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PopulationSize = 5
	cfg.Generations = 10
	cfg.Seed = 3

	calls := 0
	d, err := New(cfg, WithCancel(func() bool {
		calls++
		return calls > 1
	}))
	require.NoError(t, err)

	result, err := d.Run(context.Background(), ReferenceEvaluator)
	require.NoError(t, err)
	require.Len(t, result.Snapshots, 1)
}

func TestSnapshotGenerationIndicesStrictlyIncreasing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PopulationSize = 6
	cfg.Generations = 4
	cfg.Seed = 99

	d, err := New(cfg)
	require.NoError(t, err)
	result, err := d.Run(context.Background(), ReferenceEvaluator)
	require.NoError(t, err)

	for i := 1; i < len(result.Snapshots); i++ {
		require.Greater(t, result.Snapshots[i].Generation, result.Snapshots[i-1].Generation)
	}
}
