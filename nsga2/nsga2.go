// Package nsga2 implements Pareto dominance, fast non-dominated
// sorting, crowding distance and binary tournament selection — the
// multi-objective selector the evolution driver uses to rank and
// prune a generation. It is grounded directly on a NSGA-II reference
// implementation (sigs.k8s.io/descheduler's multiobjective/algorithms
// package): same non-dominated-sort/crowding-distance/tournament
// shape, generalized from that package's integer-solution scheduling
// problem to this engine's genomes.
package nsga2

import (
	"errors"
	"math"
	"sort"

	"github.com/metaleague/evolution/internal/rng"
	"github.com/metaleague/evolution/internal/xmath"
	"github.com/metaleague/evolution/objectives"
)

// ErrObjectiveLengthMismatch is returned when two genomes carry
// objective vectors of different lengths.
var ErrObjectiveLengthMismatch = errors.New("nsga2: objective vector length mismatch")

// Genome is the opaque record the selector ranks. It carries the
// minimum the selector needs — an id, the objective values, and
// writable Rank/Crowding slots — and never inspects any other payload
// an individual carries.
type Genome struct {
	ID         string
	Objectives []float64
	Rank       int
	Crowding   float64
}

// Dominates reports whether a dominates b under axes: a is NoWorse on
// every axis and StrictlyBetter on at least one. Returns
// ErrObjectiveLengthMismatch if the objective vectors' lengths don't
// match len(axes).
func Dominates(a, b *Genome, axes []objectives.Axis) (bool, error) {
	if len(a.Objectives) != len(axes) || len(b.Objectives) != len(axes) {
		return false, ErrObjectiveLengthMismatch
	}
	betterOnSome := false
	for i, axis := range axes {
		if !objectives.NoWorse(a.Objectives[i], b.Objectives[i], axis.Sense) {
			return false, nil
		}
		if objectives.StrictlyBetter(a.Objectives[i], b.Objectives[i], axis.Sense) {
			betterOnSome = true
		}
	}
	return betterOnSome, nil
}

// FastNonDominatedSort partitions population into ranked fronts. Every
// genome appears in exactly one front, front 0 holds the genomes no
// other genome dominates, and each genome's Rank is set to its front
// index. Empty fronts are never produced; an empty population yields
// an empty result.
func FastNonDominatedSort(population []*Genome, axes []objectives.Axis) ([][]*Genome, error) {
	n := len(population)
	dominated := make([][]int, n)
	dominatedByCount := make([]int, n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			iDominatesJ, err := Dominates(population[i], population[j], axes)
			if err != nil {
				return nil, err
			}
			if iDominatesJ {
				dominated[i] = append(dominated[i], j)
			} else {
				jDominatesI, err := Dominates(population[j], population[i], axes)
				if err != nil {
					return nil, err
				}
				if jDominatesI {
					dominatedByCount[i]++
				}
			}
		}
	}

	var fronts [][]*Genome
	currentIdx := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if dominatedByCount[i] == 0 {
			population[i].Rank = 0
			currentIdx = append(currentIdx, i)
		}
	}
	if len(currentIdx) > 0 {
		front := make([]*Genome, len(currentIdx))
		for k, idx := range currentIdx {
			front[k] = population[idx]
		}
		fronts = append(fronts, front)
	}

	rank := 0
	for len(currentIdx) > 0 {
		var nextIdx []int
		for _, i := range currentIdx {
			for _, j := range dominated[i] {
				dominatedByCount[j]--
				if dominatedByCount[j] == 0 {
					population[j].Rank = rank + 1
					nextIdx = append(nextIdx, j)
				}
			}
		}
		rank++
		if len(nextIdx) > 0 {
			front := make([]*Genome, len(nextIdx))
			for k, idx := range nextIdx {
				front[k] = population[idx]
			}
			fronts = append(fronts, front)
		}
		currentIdx = nextIdx
	}

	return fronts, nil
}

// crowdingRangeEpsilon below this, an axis contributes nothing to
// crowding distance (its values are treated as constant across the
// front).
const crowdingRangeEpsilon = 1e-10

// CrowdingDistance computes and writes the crowding distance of every
// member of front onto its Crowding field. Fronts of size <= 2 get
// +Inf for every member.
func CrowdingDistance(front []*Genome, axes []objectives.Axis) {
	if len(front) <= 2 {
		for _, g := range front {
			g.Crowding = math.Inf(1)
		}
		return
	}

	for _, g := range front {
		g.Crowding = 0
	}

	for m, axis := range axes {
		sort.Slice(front, func(i, j int) bool {
			if axis.Sense == objectives.Max {
				return front[i].Objectives[m] > front[j].Objectives[m]
			}
			return front[i].Objectives[m] < front[j].Objectives[m]
		})

		front[0].Crowding = math.Inf(1)
		front[len(front)-1].Crowding = math.Inf(1)

		best := front[0].Objectives[m]
		worst := front[len(front)-1].Objectives[m]
		objRange := math.Abs(worst - best)
		if objRange < crowdingRangeEpsilon {
			continue
		}

		for i := 1; i < len(front)-1; i++ {
			delta := math.Abs(front[i+1].Objectives[m] - front[i-1].Objectives[m])
			front[i].Crowding += delta / objRange
		}
	}
}

// Tournament draws two genomes from population uniformly at random
// with replacement and returns the winner: lower Rank wins, ties
// broken by higher Crowding, ties broken by the first genome drawn.
// Because the draw is with replacement, the same genome may be drawn
// twice and trivially wins its own tournament.
func Tournament(population []*Genome, src *rng.Source) *Genome {
	a := population[src.Intn(len(population))]
	b := population[src.Intn(len(population))]

	if a.Rank != b.Rank {
		if a.Rank < b.Rank {
			return a
		}
		return b
	}
	if a.Crowding != b.Crowding {
		if a.Crowding > b.Crowding {
			return a
		}
		return b
	}
	return a
}

// SelectNextGeneration fills a target population of size target from
// population: it sorts into fronts, computes crowding distance within
// each, then takes whole fronts in rank order until the next whole
// front would overflow target, at which point it fills the remainder
// from the partial front by descending crowding distance. If
// len(population) <= target, every front fits, so the whole population
// is returned in rank order.
func SelectNextGeneration(population []*Genome, axes []objectives.Axis, target int) ([]*Genome, error) {
	if len(population) == 0 {
		return nil, nil
	}

	fronts, err := FastNonDominatedSort(population, axes)
	if err != nil {
		return nil, err
	}
	for _, f := range fronts {
		CrowdingDistance(f, axes)
	}

	selected := make([]*Genome, 0, target)
	for _, front := range fronts {
		if len(selected)+len(front) <= target {
			selected = append(selected, front...)
			continue
		}
		remaining := target - len(selected)
		if remaining <= 0 {
			break
		}
		sort.Slice(front, func(i, j int) bool {
			return front[i].Crowding > front[j].Crowding
		})
		selected = append(selected, front[:xmath.Min(remaining, len(front))]...)
		break
	}
	return selected, nil
}
