// Package proofgate implements the verification gate: "no mutation
// without proof". Every individual that survives a generation is run
// through a configurable set of checks and, if it passes all of them,
// gets a verification record (check summary plus serialised check
// list) attached to its record slot. The record is not
// cryptographically signed.
package proofgate

import (
	"fmt"
	"time"

	"github.com/metaleague/evolution/agent"
	"github.com/metaleague/evolution/hilbert"
	"github.com/metaleague/evolution/internal/rng"
	"github.com/metaleague/evolution/objectives"
)

// Objective axis indices the reference evaluator and the gate agree
// on. See evolution.ReferenceEvaluator.
const (
	PrivacyLossAxis = 4
	CostAxis        = 5
)

// CheckResult is one line of a verification record: a named check,
// whether it passed, the observed value, the threshold it was judged
// against (nil if the check has none), and a human-readable message.
type CheckResult struct {
	Name      string
	Passed    bool
	Value     float64
	Threshold *float64
	Message   string
}

// Config configures one proof gate.
type Config struct {
	Laws             []objectives.Law
	MaxPrivacyLoss   float64
	MaxCost          float64
	RequireStability bool
	StabilityEpsilon float64
}

// DefaultConfig returns a permissive gate: no laws, generous
// privacy/cost ceilings, stability disabled.
func DefaultConfig() Config {
	return Config{
		MaxPrivacyLoss:   1.0,
		MaxCost:          10.0,
		RequireStability: false,
		StabilityEpsilon: 0.01,
	}
}

// Verify runs every check against ind's objectives (and, if
// RequireStability is set, its state) and returns the resulting
// record. Verify never mutates ind; the caller attaches the record to
// passing individuals itself (see Apply).
func (c Config) Verify(ind *agent.Individual, src *rng.Source) (agent.VerificationRecord, []CheckResult) {
	var checks []CheckResult
	overallPassed := true

	for _, law := range c.Laws {
		v := law.Evaluate(ind.Objectives.Values)
		passed := objectives.SatisfiesLaw(law, v)
		overallPassed = overallPassed && passed
		checks = append(checks, CheckResult{
			Name:      law.Name,
			Passed:    passed,
			Value:     v,
			Threshold: law.Threshold,
			Message:   lawMessage(law, v, passed),
		})
	}

	privacyLoss := axisValue(ind, PrivacyLossAxis)
	privacyPassed := privacyLoss <= c.MaxPrivacyLoss
	overallPassed = overallPassed && privacyPassed
	checks = append(checks, CheckResult{
		Name:      "privacy-loss",
		Passed:    privacyPassed,
		Value:     privacyLoss,
		Threshold: &c.MaxPrivacyLoss,
		Message:   fmt.Sprintf("privacy loss %.4f vs ceiling %.4f", privacyLoss, c.MaxPrivacyLoss),
	})

	cost := axisValue(ind, CostAxis)
	costPassed := cost <= c.MaxCost
	overallPassed = overallPassed && costPassed
	checks = append(checks, CheckResult{
		Name:      "cost",
		Passed:    costPassed,
		Value:     cost,
		Threshold: &c.MaxCost,
		Message:   fmt.Sprintf("cost %.4f vs ceiling %.4f", cost, c.MaxCost),
	})

	if c.RequireStability {
		stable := hilbert.IsStable(ind.Perception.State, c.StabilityEpsilon, src)
		stableValue := 0.0
		if stable {
			stableValue = 1.0
		}
		threshold := 1.0
		checks = append(checks, CheckResult{
			Name:      "stability",
			Passed:    stable,
			Value:     stableValue,
			Threshold: &threshold,
			Message:   fmt.Sprintf("stability probe returned %v", stable),
		})
		overallPassed = overallPassed && stable
	}

	toolBudget := c.MaxCost / 2
	toolCost := ind.TotalToolCost()
	toolPassed := toolCost <= toolBudget
	overallPassed = overallPassed && toolPassed
	checks = append(checks, CheckResult{
		Name:      "tool-budget",
		Passed:    toolPassed,
		Value:     toolCost,
		Threshold: &toolBudget,
		Message:   fmt.Sprintf("total tool cost %.4f vs budget %.4f", toolCost, toolBudget),
	})

	record := agent.VerificationRecord{
		SpecSummary: summarize(checks),
		ProofBlob:   serializeChecks(checks),
		Verified:    overallPassed,
		Timestamp:   time.Now(),
	}
	return record, checks
}

// Apply runs Verify over every individual in population. Individuals
// that pass get record.Verified = true attached to their Verification
// slot; individuals that fail are left unmutated. Returns the passed
// and failed slices (in input order) and a map from individual id to
// its verification record.
func Apply(population []*agent.Individual, cfg Config, src *rng.Source) (passed, failed []*agent.Individual, records map[string]agent.VerificationRecord) {
	records = make(map[string]agent.VerificationRecord, len(population))
	for _, ind := range population {
		record, _ := cfg.Verify(ind, src)
		records[ind.ID] = record
		if record.Verified {
			ind.Verification = &record
			passed = append(passed, ind)
		} else {
			failed = append(failed, ind)
		}
	}
	return passed, failed, records
}

func axisValue(ind *agent.Individual, axis int) float64 {
	if axis < 0 || axis >= len(ind.Objectives.Values) {
		return 0
	}
	return ind.Objectives.Values[axis]
}

func lawMessage(law objectives.Law, v float64, passed bool) string {
	if law.Threshold == nil {
		return fmt.Sprintf("%s: %.4f (unconditional)", law.Name, v)
	}
	verdict := "failed"
	if passed {
		verdict = "passed"
	}
	return fmt.Sprintf("%s: %.4f vs threshold %.4f (%s)", law.Name, v, *law.Threshold, verdict)
}

func summarize(checks []CheckResult) string {
	total, passed := len(checks), 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}
	return fmt.Sprintf("%d/%d checks passed", passed, total)
}

func serializeChecks(checks []CheckResult) string {
	out := ""
	for i, c := range checks {
		if i > 0 {
			out += "; "
		}
		out += c.Message
	}
	return out
}
