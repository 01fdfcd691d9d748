package certificate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/metaleague/evolution/agent"
	"github.com/stretchr/testify/require"
)

func verifiedIndividual() *agent.Individual {
	ind := agent.New("agent-7", agent.KindGuardian, 2, 6)
	ind.AppendLineage("crossover:gen1")
	ind.Verification = &agent.VerificationRecord{
		SpecSummary: "5/5 checks passed",
		ProofBlob:   "privacy-loss: 0.1000 vs ceiling 1.0000 (passed); cost: 2.0000 vs ceiling 10.0000 (passed)",
		Verified:    true,
		Timestamp:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	return ind
}

func TestRenderUnverifiedIsUnavailable(t *testing.T) {
	ind := agent.New("agent-1", agent.KindTrader, 2, 6)
	require.Equal(t, unavailable, Render(ind))

	ind.Verification = &agent.VerificationRecord{Verified: false}
	require.Equal(t, unavailable, Render(ind))

	require.Equal(t, unavailable, Render(nil))
}

func TestRenderVerifiedContainsAllFields(t *testing.T) {
	ind := verifiedIndividual()
	out := Render(ind)

	require.Contains(t, out, "agent-7")
	require.Contains(t, out, "guardian")
	require.Contains(t, out, "2026-01-02T03:04:05Z")
	require.Contains(t, out, "5/5 checks passed")
	require.Contains(t, out, "privacy-loss: 0.1000 vs ceiling 1.0000 (passed)")
	require.Contains(t, out, "crossover:gen1")
}

func TestRenderJSONUnverifiedIsUnavailable(t *testing.T) {
	ind := agent.New("agent-1", agent.KindTrader, 2, 6)
	raw, err := RenderJSON(ind)
	require.NoError(t, err)
	require.JSONEq(t, `{"available":false}`, string(raw))
}

func TestRenderJSONVerifiedRoundTrips(t *testing.T) {
	ind := verifiedIndividual()
	raw, err := RenderJSON(ind)
	require.NoError(t, err)

	var doc document
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Equal(t, "agent-7", doc.ID)
	require.Equal(t, "guardian", doc.Kind)
	require.True(t, doc.Verified)
	require.Len(t, doc.Checks, 2)
	require.Contains(t, doc.Lineage, "crossover:gen1")
}
