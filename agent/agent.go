// Package agent defines the Individual data model the evolution
// engine evolves: a perception/reasoning/coordination agent whose
// perception sub-state is a hilbert.State. It mirrors a generic
// Agent[T] in shape (identity, typed sub-state, append-only audit
// trails) but drops the generics and the network consensus fields
// that have no analogue here — this engine does not coordinate nodes
// over a wire, it evolves a population in memory.
package agent

import (
	"time"

	"github.com/google/uuid"
	"github.com/metaleague/evolution/hilbert"
	"github.com/metaleague/evolution/objectives"
)

// Kind is drawn from a small closed set of agent archetypes.
type Kind string

const (
	KindTrader     Kind = "trader"
	KindResearcher Kind = "researcher"
	KindGuardian   Kind = "guardian"
	KindGeneralist Kind = "generalist"
)

// ItemKind discriminates the symbolic reasoning items an individual
// carries.
type ItemKind string

const (
	ItemFact ItemKind = "fact"
	ItemRule ItemKind = "rule"
	ItemPlan ItemKind = "plan"
)

// KnowledgeItem is a tagged-variant symbolic item: exactly one of
// Fact, Condition/Action (for a rule), or Steps/Goal (for a plan) is
// meaningful, selected by Kind.
type KnowledgeItem struct {
	Kind ItemKind

	Fact string // meaningful when Kind == ItemFact

	Condition string // meaningful when Kind == ItemRule
	Action    string

	Steps []string // meaningful when Kind == ItemPlan
	Goal  string
}

// Tool is a coordination capability with a non-negative cost.
type Tool struct {
	Name string
	Cost float64
	Pre  string // optional precondition, empty if none
	Post string // optional postcondition, empty if none
}

// MemoryEntry is a timestamped key/value fact with an optional TTL.
type MemoryEntry struct {
	Key       string
	Value     any
	Timestamp time.Time
	TTL       *time.Duration
}

// Decision is one entry in an individual's decision history.
type Decision struct {
	Summary   string
	Timestamp time.Time
}

// VerificationRecord is the proof-gate's attached artifact. See
// package proofgate for how it is produced.
type VerificationRecord struct {
	SpecSummary string
	ProofBlob   string
	Verified    bool
	Timestamp   time.Time
}

// Perception is an individual's state-vector sub-state.
type Perception struct {
	State       hilbert.State
	Uncertainty float64 // in [0,1]
	Provenance  []string
	MutatedAt   time.Time
}

// Reasoning is an individual's symbolic sub-state.
type Reasoning struct {
	Knowledge []KnowledgeItem
	Goals     []string
}

// Coordination is an individual's social/capability sub-state.
type Coordination struct {
	Tools     []Tool
	Memory    []MemoryEntry
	Decisions []Decision
	Partners  []string
}

// Individual is the unit of evolution.
type Individual struct {
	ID         string
	Kind       Kind
	Generation int

	Perception   Perception
	Reasoning    Reasoning
	Coordination Coordination

	Objectives   objectives.Vector
	Verification *VerificationRecord

	Lineage []string
}

// New creates an individual with a zero state of the given dimension,
// empty knowledge/tools/memory/decisions/partners, zero-valued
// objectives of numAxes length, lineage ["genesis"], and the current
// timestamp. If id is empty, a uuid is generated.
func New(id string, kind Kind, stateDimension, numAxes int) *Individual {
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now()
	return &Individual{
		ID:         id,
		Kind:       kind,
		Generation: 0,
		Perception: Perception{
			State:      hilbert.Zero(stateDimension),
			Provenance: nil,
			MutatedAt:  now,
		},
		Reasoning: Reasoning{},
		Coordination: Coordination{},
		Objectives: objectives.Vector{
			Values:    make([]float64, numAxes),
			Timestamp: now,
		},
		Lineage: []string{"genesis"},
	}
}

// Clone returns a copy of ind whose top-level slices and verification
// record are its own, so appending to a child never touches its
// parent. Nested data (plan Steps, memory Values and TTLs) is shared.
// Used by crossover and by the driver when it clones a parent.
func (ind *Individual) Clone() *Individual {
	c := *ind

	c.Perception.State = append(hilbert.State{}, ind.Perception.State...)
	c.Perception.Provenance = append([]string{}, ind.Perception.Provenance...)

	c.Reasoning.Knowledge = append([]KnowledgeItem{}, ind.Reasoning.Knowledge...)
	c.Reasoning.Goals = append([]string{}, ind.Reasoning.Goals...)

	c.Coordination.Tools = append([]Tool{}, ind.Coordination.Tools...)
	c.Coordination.Memory = append([]MemoryEntry{}, ind.Coordination.Memory...)
	c.Coordination.Decisions = append([]Decision{}, ind.Coordination.Decisions...)
	c.Coordination.Partners = append([]string{}, ind.Coordination.Partners...)

	c.Objectives.Values = append([]float64{}, ind.Objectives.Values...)

	if ind.Verification != nil {
		v := *ind.Verification
		c.Verification = &v
	}

	c.Lineage = append([]string{}, ind.Lineage...)
	return &c
}

// AppendLineage appends an event tag to the individual's append-only
// lineage trail.
func (ind *Individual) AppendLineage(tag string) {
	ind.Lineage = append(ind.Lineage, tag)
}

// AppendProvenance appends a tag to the append-only provenance trail
// and stamps the perception mutation time.
func (ind *Individual) AppendProvenance(tag string) {
	ind.Perception.Provenance = append(ind.Perception.Provenance, tag)
	ind.Perception.MutatedAt = time.Now()
}

// AddKnowledge appends a symbolic item to the individual's knowledge.
func (ind *Individual) AddKnowledge(item KnowledgeItem) {
	ind.Reasoning.Knowledge = append(ind.Reasoning.Knowledge, item)
}

// AddTool appends a tool; cost must be non-negative.
func (ind *Individual) AddTool(tool Tool) {
	if tool.Cost < 0 {
		tool.Cost = 0
	}
	ind.Coordination.Tools = append(ind.Coordination.Tools, tool)
}

// RecordDecision appends a decision to the append-only decision
// history.
func (ind *Individual) RecordDecision(summary string, at time.Time) {
	ind.Coordination.Decisions = append(ind.Coordination.Decisions, Decision{Summary: summary, Timestamp: at})
}

// TotalToolCost returns the sum of every tool's cost.
func (ind *Individual) TotalToolCost() float64 {
	var sum float64
	for _, t := range ind.Coordination.Tools {
		sum += t.Cost
	}
	return sum
}
