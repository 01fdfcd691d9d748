package evolution

import (
	"errors"

	"github.com/metaleague/evolution/objectives"
	"github.com/metaleague/evolution/proofgate"
)

// Shape errors. These are configuration-time contract violations; they
// bubble straight out of New and are never wrapped into a Result.
var (
	ErrPopulationTooSmall = errors.New("evolution: populationSize must be >= 3")
	ErrNoGenerations      = errors.New("evolution: generations must be >= 1")
	ErrNoAxes             = errors.New("evolution: objectives axis list must not be empty")
	ErrBadStateDimension  = errors.New("evolution: stateDimension must be >= 1")
	ErrBadRate            = errors.New("evolution: crossoverRate and mutationRate must be in [0,1]")
)

// Config configures one evolutionary run. Mirrors
// github.com/luxfi/consensus's config.Parameters +
// DefaultParams()/Validate() idiom.
type Config struct {
	PopulationSize int
	Generations    int
	StateDimension int
	Objectives     []objectives.Axis
	ProofGate      proofgate.Config
	CrossoverRate  float64
	MutationRate   float64
	// Seed seeds the engine's single RNG source. Zero means "seed from
	// the wall clock"; such a run is not reproducible.
	Seed uint64
}

// DefaultConfig returns a small, permissive six-axis configuration
// matching the reference evaluator's objective layout (gain, latency,
// engagement, fairness, privacy loss, cost).
func DefaultConfig() Config {
	return Config{
		PopulationSize: 20,
		Generations:    10,
		StateDimension: 4,
		Objectives: []objectives.Axis{
			{Name: "gain", Sense: objectives.Max},
			{Name: "latency", Sense: objectives.Min},
			{Name: "engagement", Sense: objectives.Max},
			{Name: "fairness", Sense: objectives.Max},
			{Name: "privacy-loss", Sense: objectives.Min},
			{Name: "cost", Sense: objectives.Min},
		},
		ProofGate:     proofgate.DefaultConfig(),
		CrossoverRate: 0.7,
		MutationRate:  0.2,
	}
}

// Validate checks the configuration-time contract: a
// populationSize below 3, generations below 1, or an empty axis list
// are shape errors and must be rejected before a run starts.
func (c Config) Validate() error {
	if c.PopulationSize < 3 {
		return ErrPopulationTooSmall
	}
	if c.Generations < 1 {
		return ErrNoGenerations
	}
	if len(c.Objectives) == 0 {
		return ErrNoAxes
	}
	if c.StateDimension < 1 {
		return ErrBadStateDimension
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 || c.MutationRate < 0 || c.MutationRate > 1 {
		return ErrBadRate
	}
	return nil
}
