package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewIndividualLifecycleDefaults(t *testing.T) {
	ind := New("", KindGeneralist, 3, 6)
	require.NotEmpty(t, ind.ID)
	require.Equal(t, 0, ind.Generation)
	require.Len(t, ind.Perception.State, 3)
	require.Len(t, ind.Objectives.Values, 6)
	require.Equal(t, []string{"genesis"}, ind.Lineage)
	require.Empty(t, ind.Reasoning.Knowledge)
	require.Empty(t, ind.Coordination.Tools)
}

func TestCloneDoesNotAliasSlices(t *testing.T) {
	ind := New("parent", KindTrader, 2, 2)
	ind.AddKnowledge(KnowledgeItem{Kind: ItemFact, Fact: "f1"})
	ind.AddTool(Tool{Name: "scan", Cost: 1})

	clone := ind.Clone()
	clone.AddKnowledge(KnowledgeItem{Kind: ItemFact, Fact: "f2"})
	clone.AddTool(Tool{Name: "probe", Cost: 2})

	require.Len(t, ind.Reasoning.Knowledge, 1, "parent must be unaffected by clone mutation")
	require.Len(t, clone.Reasoning.Knowledge, 2)
	require.Len(t, ind.Coordination.Tools, 1)
	require.Len(t, clone.Coordination.Tools, 2)
}

func TestLineageAndProvenanceAreAppendOnly(t *testing.T) {
	ind := New("", KindGuardian, 1, 1)
	before := len(ind.Lineage)
	ind.AppendLineage("mutation:gen1")
	require.Equal(t, before+1, len(ind.Lineage))
	require.Equal(t, "mutation:gen1", ind.Lineage[len(ind.Lineage)-1])

	ind.AppendProvenance("perturbed")
	require.Equal(t, []string{"perturbed"}, ind.Perception.Provenance)
}

func TestToolCostNeverNegative(t *testing.T) {
	ind := New("", KindGeneralist, 1, 1)
	ind.AddTool(Tool{Name: "bad", Cost: -5})
	require.Equal(t, 0.0, ind.Coordination.Tools[0].Cost)
}

func TestTotalToolCostSumsAllTools(t *testing.T) {
	ind := New("", KindGeneralist, 1, 1)
	ind.AddTool(Tool{Name: "a", Cost: 1.5})
	ind.AddTool(Tool{Name: "b", Cost: 2.5})
	require.Equal(t, 4.0, ind.TotalToolCost())
}

func TestRecordDecisionAppendsHistory(t *testing.T) {
	ind := New("", KindGeneralist, 1, 1)
	now := time.Now()
	ind.RecordDecision("buy", now)
	ind.RecordDecision("sell", now.Add(time.Minute))
	require.Len(t, ind.Coordination.Decisions, 2)
	require.Equal(t, "buy", ind.Coordination.Decisions[0].Summary)
}
