package main

import (
	"context"
	"fmt"
	"os"

	luxlog "github.com/luxfi/log"
	"github.com/metaleague/evolution/agent"
	"github.com/metaleague/evolution/evolution"
	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape accepted by --config. Zero-valued
// fields fall back to evolution.DefaultConfig()'s values.
type fileConfig struct {
	PopulationSize int     `yaml:"populationSize"`
	Generations    int     `yaml:"generations"`
	StateDimension int     `yaml:"stateDimension"`
	CrossoverRate  float64 `yaml:"crossoverRate"`
	MutationRate   float64 `yaml:"mutationRate"`
	Seed           uint64  `yaml:"seed"`
	ProofGate      struct {
		MaxPrivacyLoss   float64 `yaml:"maxPrivacyLoss"`
		MaxCost          float64 `yaml:"maxCost"`
		RequireStability bool    `yaml:"requireStability"`
		StabilityEpsilon float64 `yaml:"stabilityEpsilon"`
	} `yaml:"proofGate"`
}

// loadConfig reads path as YAML and overlays it onto
// evolution.DefaultConfig(). An empty path returns the default
// configuration unmodified.
func loadConfig(path string) (evolution.Config, error) {
	cfg := evolution.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return evolution.Config{}, fmt.Errorf("evolve: reading config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return evolution.Config{}, fmt.Errorf("evolve: parsing config: %w", err)
	}

	if fc.PopulationSize > 0 {
		cfg.PopulationSize = fc.PopulationSize
	}
	if fc.Generations > 0 {
		cfg.Generations = fc.Generations
	}
	if fc.StateDimension > 0 {
		cfg.StateDimension = fc.StateDimension
	}
	if fc.CrossoverRate > 0 {
		cfg.CrossoverRate = fc.CrossoverRate
	}
	if fc.MutationRate > 0 {
		cfg.MutationRate = fc.MutationRate
	}
	cfg.Seed = fc.Seed

	if fc.ProofGate.MaxPrivacyLoss > 0 {
		cfg.ProofGate.MaxPrivacyLoss = fc.ProofGate.MaxPrivacyLoss
	}
	if fc.ProofGate.MaxCost > 0 {
		cfg.ProofGate.MaxCost = fc.ProofGate.MaxCost
	}
	cfg.ProofGate.RequireStability = fc.ProofGate.RequireStability
	if fc.ProofGate.StabilityEpsilon > 0 {
		cfg.ProofGate.StabilityEpsilon = fc.ProofGate.StabilityEpsilon
	}

	return cfg, nil
}

// runEvolution constructs a Driver from cfg and runs it to completion
// with evolution.ReferenceEvaluator. A nil logger leaves the driver's
// default no-op logger in place.
func runEvolution(ctx context.Context, cfg evolution.Config, logger luxlog.Logger) (evolution.Result, error) {
	var opts []evolution.Option
	if logger != nil {
		opts = append(opts, evolution.WithLogger(logger))
	}
	d, err := evolution.New(cfg, opts...)
	if err != nil {
		return evolution.Result{}, err
	}
	return d.Run(ctx, evolution.ReferenceEvaluator)
}

// bestOfFront returns the first individual of front, or nil if front
// is empty. The front is already rank-0 by construction; "first" is a
// stable, deterministic pick rather than a second scalarisation pass.
func bestOfFront(front []*agent.Individual) *agent.Individual {
	if len(front) == 0 {
		return nil
	}
	return front[0]
}
