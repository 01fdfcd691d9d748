// Package router is a placeholder for a bandit router left out of the
// evolution core itself: given a set of named arms, it picks one and
// learns from observed rewards. The evolution core never imports
// this package.
package router

import (
	"math"
	"sync"

	"github.com/metaleague/evolution/internal/rng"
)

type armStats struct {
	pulls  int
	reward float64
}

// EpsilonGreedy selects among a fixed set of named arms, exploring a
// uniformly random arm with probability epsilon and exploiting the
// best-known arm otherwise.
type EpsilonGreedy struct {
	mu      sync.Mutex
	epsilon float64
	arms    []string
	stats   map[string]*armStats
	src     *rng.Source
}

// NewEpsilonGreedy returns a router over arms with the given
// exploration rate. Panics if arms is empty.
func NewEpsilonGreedy(arms []string, epsilon float64, seed uint64) *EpsilonGreedy {
	if len(arms) == 0 {
		panic("router: arms must not be empty")
	}
	stats := make(map[string]*armStats, len(arms))
	for _, a := range arms {
		stats[a] = &armStats{}
	}
	return &EpsilonGreedy{
		epsilon: epsilon,
		arms:    append([]string{}, arms...),
		stats:   stats,
		src:     rng.New(seed),
	}
}

// Select returns an arm name: a random arm with probability epsilon,
// otherwise the arm with the highest observed average reward (ties
// broken by arm order).
func (r *EpsilonGreedy) Select() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.src.Float64() < r.epsilon {
		return r.arms[r.src.Intn(len(r.arms))]
	}

	best := r.arms[0]
	bestAvg := math.Inf(-1)
	for _, a := range r.arms {
		s := r.stats[a]
		avg := 0.0
		if s.pulls > 0 {
			avg = s.reward / float64(s.pulls)
		}
		if avg > bestAvg {
			bestAvg = avg
			best = a
		}
	}
	return best
}

// Reward records an observed reward for arm.
func (r *EpsilonGreedy) Reward(arm string, value float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stats[arm]
	if !ok {
		return
	}
	s.pulls++
	s.reward += value
}
