package objectives

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoWorseReflexive(t *testing.T) {
	for _, sense := range []Sense{Max, Min} {
		require.True(t, NoWorse(5, 5, sense), "sense=%s", sense)
		require.False(t, StrictlyBetter(5, 5, sense), "sense=%s", sense)
	}
}

func TestStrictlyBetterAsymmetricAndImpliesNoWorse(t *testing.T) {
	cases := []struct {
		a, b  float64
		sense Sense
	}{
		{10, 5, Max},
		{5, 10, Min},
	}
	for _, c := range cases {
		require.True(t, StrictlyBetter(c.a, c.b, c.sense))
		require.False(t, StrictlyBetter(c.b, c.a, c.sense), "asymmetry violated")
		require.True(t, NoWorse(c.a, c.b, c.sense), "strictlyBetter must imply noWorse")
	}
}

func TestSenseDuality(t *testing.T) {
	a, b := 3.0, 7.0
	require.Equal(t, NoWorse(a, b, Max), NoWorse(-a, -b, Min))
}

func TestSatisfiesLawThresholdMax(t *testing.T) {
	threshold := 0.5
	law := Law{Name: "gain", Sense: Max, Threshold: &threshold}
	require.True(t, SatisfiesLaw(law, 0.6))
	require.True(t, SatisfiesLaw(law, 0.5))
	require.False(t, SatisfiesLaw(law, 0.4))
}

func TestSatisfiesLawThresholdMin(t *testing.T) {
	threshold := 1.0
	law := Law{Name: "latency", Sense: Min, Threshold: &threshold}
	require.True(t, SatisfiesLaw(law, 0.8))
	require.True(t, SatisfiesLaw(law, 1.0))
	require.False(t, SatisfiesLaw(law, 1.2))
}

func TestSatisfiesLawNoThreshold(t *testing.T) {
	law := Law{Name: "unconditional", Sense: Max}
	require.True(t, SatisfiesLaw(law, -1e9))
}
