// Package evolution sequences evaluation, gating, ranking, selection
// and reproduction into the generational loop described by the
// engine's specification: the Meta-League Evolution Engine's driver.
package evolution

import (
	"context"
	"fmt"
	"sync"
	"time"

	luxlog "github.com/luxfi/log"
	"github.com/metaleague/evolution/agent"
	"github.com/metaleague/evolution/internal/rng"
	"github.com/metaleague/evolution/internal/telemetry"
	"github.com/metaleague/evolution/internal/xmath"
	"github.com/metaleague/evolution/nsga2"
	"github.com/metaleague/evolution/objectives"
	"github.com/metaleague/evolution/proofgate"
)

// CancelFunc is a caller-supplied, poll-only cancellation signal.
// Checked between generations; the driver never calls it concurrently
// with itself.
type CancelFunc func() bool

// Snapshot captures one generation's statistics.
type Snapshot struct {
	Generation      int
	PopulationSize  int
	ParetoFrontSize int
	PassedProofGate int
	FailedProofGate int
	AvgObjectives   []float64
	BestObjectives  []float64
	Timestamp       time.Time
}

// Result is the outcome of a full run.
type Result struct {
	FinalPopulation  []*agent.Individual
	FinalParetoFront []*agent.Individual
	Snapshots        []Snapshot
	ElapsedMillis    int64
}

// Driver runs the generational loop: evaluate,
// gate, rank, select survivors, reproduce.
type Driver struct {
	cfg     Config
	log     luxlog.Logger
	metrics *telemetry.Metrics
	cancel  CancelFunc
	rng     *rng.Source
}

// Option configures a Driver at construction.
type Option func(*Driver)

// WithLogger overrides the driver's logger (default: a no-op logger).
func WithLogger(l luxlog.Logger) Option {
	return func(d *Driver) { d.log = l }
}

// WithMetrics attaches a telemetry sink (default: nil, meaning no
// metrics are recorded).
func WithMetrics(m *telemetry.Metrics) Option {
	return func(d *Driver) { d.metrics = m }
}

// WithCancel installs a cooperative cancellation signal, polled once
// per generation boundary.
func WithCancel(c CancelFunc) Option {
	return func(d *Driver) { d.cancel = c }
}

// New validates cfg and constructs a Driver. Returns a shape error
// (see Config.Validate) if cfg is malformed.
func New(cfg Config, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Driver{
		cfg:    cfg,
		log:    luxlog.NewNoOpLogger(),
		cancel: func() bool { return false },
		rng:    rng.New(cfg.Seed),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func initialPopulation(cfg Config) []*agent.Individual {
	population := make([]*agent.Individual, cfg.PopulationSize)
	for i := range population {
		id := fmt.Sprintf("agent-gen0-%d", i)
		population[i] = agent.New(id, agent.KindGeneralist, cfg.StateDimension, len(cfg.Objectives))
	}
	return population
}

// evaluateAll invokes eval on every individual in population
// concurrently and joins before returning. This is the evaluation
// barrier. The first evaluator error aborts the run.
func evaluateAll(ctx context.Context, population []*agent.Individual, eval Evaluator) error {
	errs := make([]error, len(population))
	var wg sync.WaitGroup
	for i, ind := range population {
		wg.Add(1)
		go func(i int, ind *agent.Individual) {
			defer wg.Done()
			errs[i] = eval(ind)
		}(i, ind)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("evolution: evaluator failed: %w", err)
		}
	}
	return nil
}

func toGenomes(population []*agent.Individual) ([]*nsga2.Genome, map[string]*agent.Individual) {
	genomes := make([]*nsga2.Genome, len(population))
	byID := make(map[string]*agent.Individual, len(population))
	for i, ind := range population {
		genomes[i] = &nsga2.Genome{
			ID:         ind.ID,
			Objectives: append([]float64{}, ind.Objectives.Values...),
		}
		byID[ind.ID] = ind
	}
	return genomes, byID
}

func averageObjectives(population []*agent.Individual, axisCount int) []float64 {
	if len(population) == 0 {
		return make([]float64, axisCount)
	}
	avg := make([]float64, axisCount)
	for _, ind := range population {
		for i, v := range ind.Objectives.Values {
			avg[i] += v
		}
	}
	for i := range avg {
		avg[i] /= float64(len(population))
	}
	return avg
}

// Run executes the full generational loop and returns the final
// passed population, the final Pareto front, per-generation
// snapshots, and total elapsed time. A fatal shape error from the
// kernel or an evaluator error aborts the run and is returned
// alongside a zero Result; shape errors are returned as is, evaluator
// errors wrapped with %w. Zero individuals passing the gate at any
// generation halts the loop gracefully: snapshots recorded so far are
// returned, and the final population and Pareto front are empty.
func (d *Driver) Run(ctx context.Context, eval Evaluator) (Result, error) {
	start := time.Now()
	population := initialPopulation(d.cfg)

	var snapshots []Snapshot
	var lastPassed []*agent.Individual
	var lastFront []*agent.Individual

	for gen := 0; gen < d.cfg.Generations; gen++ {
		if d.cancel() {
			d.log.Info("evolution run cancelled", "generation", gen)
			break
		}
		genStart := time.Now()

		if err := evaluateAll(ctx, population, eval); err != nil {
			return Result{}, err
		}

		passed, failed, _ := proofgate.Apply(population, d.cfg.ProofGate, d.rng)

		if len(passed) == 0 {
			d.log.Info("proof gate rejected entire population; halting", "generation", gen)
			snapshots = append(snapshots, Snapshot{
				Generation:      gen,
				PopulationSize:  len(population),
				ParetoFrontSize: 0,
				PassedProofGate: 0,
				FailedProofGate: len(failed),
				AvgObjectives:   make([]float64, len(d.cfg.Objectives)),
				BestObjectives:  make([]float64, len(d.cfg.Objectives)),
				Timestamp:       time.Now(),
			})
			lastPassed, lastFront = nil, nil
			break
		}

		genomes, byID := toGenomes(passed)
		fronts, err := nsga2.FastNonDominatedSort(genomes, d.cfg.Objectives)
		if err != nil {
			return Result{}, err
		}

		front0 := fronts[0]
		frontIndividuals := make([]*agent.Individual, len(front0))
		for i, g := range front0 {
			frontIndividuals[i] = byID[g.ID]
		}

		best := frontIndividuals[0].Objectives.Values
		avg := averageObjectives(passed, len(d.cfg.Objectives))

		elapsed := time.Since(genStart)
		snapshots = append(snapshots, Snapshot{
			Generation:      gen,
			PopulationSize:  len(population),
			ParetoFrontSize: len(front0),
			PassedProofGate: len(passed),
			FailedProofGate: len(failed),
			AvgObjectives:   avg,
			BestObjectives:  append([]float64{}, best...),
			Timestamp:       time.Now(),
		})
		if d.metrics != nil {
			d.metrics.ObserveGeneration(len(passed), len(failed), len(front0), float64(elapsed.Milliseconds()))
		}
		d.log.Info("generation complete", "generation", gen, "passed", len(passed), "failed", len(failed), "paretoFront", len(front0))

		lastPassed, lastFront = passed, frontIndividuals

		if gen == d.cfg.Generations-1 {
			break
		}

		population = d.reproduce(passed, genomes, fronts, gen)
	}

	return Result{
		FinalPopulation:  lastPassed,
		FinalParetoFront: lastFront,
		Snapshots:        snapshots,
		ElapsedMillis:    time.Since(start).Milliseconds(),
	}, nil
}

// reproduce builds the next generation from the gated population:
// elitism retains the top half by NSGA-II selection, then the
// remainder is filled by tournament-selected crossover/mutation.
func (d *Driver) reproduce(passed []*agent.Individual, genomes []*nsga2.Genome, fronts [][]*nsga2.Genome, gen int) []*agent.Individual {
	for _, f := range fronts {
		nsga2.CrowdingDistance(f, d.cfg.Objectives)
	}

	byID := make(map[string]*agent.Individual, len(passed))
	for _, ind := range passed {
		byID[ind.ID] = ind
	}

	eliteCount := xmath.FloorHalf(d.cfg.PopulationSize)
	eliteGenomes, _ := nsga2.SelectNextGeneration(genomes, d.cfg.Objectives, eliteCount)

	next := make([]*agent.Individual, 0, d.cfg.PopulationSize)
	for _, g := range eliteGenomes {
		next = append(next, byID[g.ID])
	}

	n := 0
	for len(next) < d.cfg.PopulationSize {
		p1 := byID[nsga2.Tournament(genomes, d.rng).ID]
		p2 := byID[nsga2.Tournament(genomes, d.rng).ID]

		var child *agent.Individual
		childID := fmt.Sprintf("agent-gen%d-%d", gen+1, n)
		n++

		if d.rng.Float64() < d.cfg.CrossoverRate {
			c, err := crossover(p1, p2, childID)
			if err != nil {
				d.log.Warn("crossover failed, cloning parent instead", "error", err)
				c = p1.Clone()
				c.ID = childID
				c.Generation++
			}
			child = c
		} else {
			child = p1.Clone()
			child.ID = childID
			child.Generation++
		}

		mutate(child, d.cfg.MutationRate, d.rng)
		next = append(next, child)
	}

	return next
}
