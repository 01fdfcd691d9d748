package evolution

import (
	"fmt"

	"github.com/metaleague/evolution/agent"
	"github.com/metaleague/evolution/hilbert"
	"github.com/metaleague/evolution/internal/rng"
)

// maxKnowledgeItemsPerParent is the number of leading knowledge items
// each parent contributes to a crossover child. Deliberate throttling
// larger parents silently lose knowledge beyond this.
const maxKnowledgeItemsPerParent = 2

// crossover clones p1 structurally, gives the clone id and a
// generation one past the higher of the parents' generations, blends the parents' states
// via hilbert.SpectralSync (consensus averaging), and concatenates a
// bounded prefix of each parent's knowledge and first tool.
func crossover(p1, p2 *agent.Individual, id string) (*agent.Individual, error) {
	child := p1.Clone()
	child.ID = id
	if p2.Generation > child.Generation {
		child.Generation = p2.Generation
	}
	child.Generation++

	blended, err := hilbert.SpectralSync([]hilbert.State{p1.Perception.State, p2.Perception.State})
	if err != nil {
		return nil, fmt.Errorf("crossover: %w", err)
	}
	child.Perception.State = blended
	child.AppendProvenance("crossover")

	child.Reasoning.Knowledge = append(
		firstN(p1.Reasoning.Knowledge, maxKnowledgeItemsPerParent),
		firstN(p2.Reasoning.Knowledge, maxKnowledgeItemsPerParent)...,
	)

	child.Coordination.Tools = nil
	if len(p1.Coordination.Tools) > 0 {
		child.Coordination.Tools = append(child.Coordination.Tools, p1.Coordination.Tools[0])
	}
	if len(p2.Coordination.Tools) > 0 {
		child.Coordination.Tools = append(child.Coordination.Tools, p2.Coordination.Tools[0])
	}

	child.AppendLineage(fmt.Sprintf("crossover:gen%d", child.Generation))
	return child, nil
}

func firstN(items []agent.KnowledgeItem, n int) []agent.KnowledgeItem {
	if len(items) < n {
		n = len(items)
	}
	return append([]agent.KnowledgeItem{}, items[:n]...)
}

// mutationPerturbRange is the half-width of the per-component uniform
// perturbation mutate applies to a child's state.
const mutationPerturbRange = 0.1

// mutate applies mutation to ind in place with probability rate: a
// component-wise perturbation of the state (renormalised afterwards),
// plus independent 0.3-probability knowledge drop/add. Does nothing
// with probability 1-rate.
func mutate(ind *agent.Individual, rate float64, src *rng.Source) {
	if src.Float64() >= rate {
		return
	}

	perturbed := make(hilbert.State, len(ind.Perception.State))
	for i, c := range ind.Perception.State {
		perturbed[i] = hilbert.Complex{
			Re: c.Re + src.Uniform(-mutationPerturbRange, mutationPerturbRange),
			Im: c.Im + src.Uniform(-mutationPerturbRange, mutationPerturbRange),
		}
	}
	ind.Perception.State = hilbert.Normalise(perturbed)
	ind.AppendProvenance("mutation")

	if src.Float64() < 0.3 && len(ind.Reasoning.Knowledge) > 0 {
		ind.Reasoning.Knowledge = ind.Reasoning.Knowledge[:len(ind.Reasoning.Knowledge)-1]
	}
	if src.Float64() < 0.3 {
		// The synthetic fact is a placeholder keyed to the current
		// generation, not content.
		ind.AddKnowledge(agent.KnowledgeItem{
			Kind: agent.ItemFact,
			Fact: fmt.Sprintf("gen-%d-mutation", ind.Generation),
		})
	}

	ind.AppendLineage(fmt.Sprintf("mutation:gen%d", ind.Generation))
}
