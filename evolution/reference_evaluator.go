package evolution

import (
	"math"
	"time"

	"github.com/metaleague/evolution/agent"
	"github.com/metaleague/evolution/hilbert"
)

// Evaluator scores one individual in place: it must set
// ind.Objectives.Values to a slice of the configured axis length and
// stamp ind.Objectives.Timestamp. It may be invoked concurrently with
// other individuals' evaluators but must touch only ind's own fields.
type Evaluator func(ind *agent.Individual) error

// Reference evaluator objective indices: gain(max),
// latency(min), engagement(max), fairness(max), privacy-loss(min),
// cost(min).
const (
	axisGain        = 0
	axisLatency     = 1
	axisEngagement  = 2
	axisFairness    = 3
	axisPrivacyLoss = 4
	axisCost        = 5
	referenceAxisCount = 6
)

// ReferenceEvaluator derives an individual's objective vector from its
// own state and bookkeeping, with no external dependency. It is the
// engine's default Evaluator; callers may supply their own.
//
// Objective 0 (gain) deliberately uses |1-s| additively inside a "max"
// objective, so a state further from unit norm paradoxically raises
// the gain score. This mirrors a known quirk of the system this
// engine evolved from and is preserved rather than "corrected" — see
// DESIGN.md.
func ReferenceEvaluator(ind *agent.Individual) error {
	s := hilbert.Norm(ind.Perception.State)
	c := ind.TotalToolCost()
	k := float64(len(ind.Reasoning.Knowledge))
	decisions := float64(len(ind.Coordination.Decisions))

	values := make([]float64, referenceAxisCount)
	values[axisGain] = math.Min(1, 0.2+0.1*k+0.2*math.Abs(1-s))
	values[axisLatency] = 50 + 10*k + 5*c
	values[axisEngagement] = math.Min(1, 0.1*decisions)
	if c > 0 {
		values[axisFairness] = math.Min(1, 1/(1+math.Abs(c-1)))
	} else {
		values[axisFairness] = 0.5
	}
	values[axisPrivacyLoss] = ind.Perception.Uncertainty
	values[axisCost] = c + 0.1*k

	ind.Objectives.Values = values
	ind.Objectives.Timestamp = time.Now()
	return nil
}
