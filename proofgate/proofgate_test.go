package proofgate

import (
	"testing"

	"github.com/metaleague/evolution/agent"
	"github.com/metaleague/evolution/hilbert"
	"github.com/metaleague/evolution/internal/rng"
	"github.com/metaleague/evolution/objectives"
	"github.com/stretchr/testify/require"
)

func individualWithObjectives(values []float64) *agent.Individual {
	ind := agent.New("", agent.KindGeneralist, 1, len(values))
	ind.Perception.State = hilbert.State{{Re: 1}}
	copy(ind.Objectives.Values, values)
	return ind
}

func TestGatePassS6(t *testing.T) {
	cfg := DefaultConfig()
	ind := individualWithObjectives([]float64{0.5, 50, 0.8, 0.9, 0.5, 5.0})
	record, checks := cfg.Verify(ind, rng.New(1))

	require.True(t, record.Verified)
	require.NotEmpty(t, checks)
}

func TestGateFailOnCostS6(t *testing.T) {
	cfg := DefaultConfig()
	ind := individualWithObjectives([]float64{0.5, 50, 0.8, 0.9, 0.5, 15.0})
	record, checks := cfg.Verify(ind, rng.New(1))

	require.False(t, record.Verified)

	var costCheck *CheckResult
	for i := range checks {
		if checks[i].Name == "cost" {
			costCheck = &checks[i]
		}
	}
	require.NotNil(t, costCheck)
	require.False(t, costCheck.Passed)
	require.Equal(t, 15.0, costCheck.Value)
	require.Equal(t, 10.0, *costCheck.Threshold)
}

func TestCheckOrderLawsThenPrivacyThenCostThenOptionalStabilityThenToolBudget(t *testing.T) {
	threshold := 0.5
	cfg := DefaultConfig()
	cfg.RequireStability = true
	cfg.Laws = []objectives.Law{
		{Name: "gain-floor", Sense: objectives.Max, Threshold: &threshold, Evaluate: func(v []float64) float64 { return v[0] }},
	}
	ind := individualWithObjectives([]float64{0.6, 50, 0.8, 0.9, 0.5, 5.0})

	_, checks := cfg.Verify(ind, rng.New(1))

	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.Name
	}
	require.Equal(t, []string{"gain-floor", "privacy-loss", "cost", "stability", "tool-budget"}, names)
}

func TestApplyPartitionsPopulationAndAttachesRecords(t *testing.T) {
	cfg := DefaultConfig()
	good := individualWithObjectives([]float64{0.5, 50, 0.8, 0.9, 0.5, 5.0})
	bad := individualWithObjectives([]float64{0.5, 50, 0.8, 0.9, 0.5, 99.0})

	passed, failed, records := Apply([]*agent.Individual{good, bad}, cfg, rng.New(1))

	require.Len(t, passed, 1)
	require.Len(t, failed, 1)
	require.True(t, records[good.ID].Verified)
	require.False(t, records[bad.ID].Verified)
	require.NotNil(t, good.Verification)
	require.True(t, good.Verification.Verified)
	require.Nil(t, bad.Verification, "gate must not mutate failing individuals")
}

func TestToolBudgetIsHalfMaxCost(t *testing.T) {
	cfg := DefaultConfig()
	ind := individualWithObjectives([]float64{0.5, 50, 0.8, 0.9, 0.5, 1.0})
	ind.AddTool(agent.Tool{Name: "expensive", Cost: cfg.MaxCost/2 + 1})

	record, _ := cfg.Verify(ind, rng.New(1))
	require.False(t, record.Verified)
}
