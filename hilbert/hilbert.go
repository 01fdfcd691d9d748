// Package hilbert implements the inner-product-space algebra the
// evolution engine evolves its individuals over: finite sequences of
// complex scalars, their norms, distances, consensus averaging, and a
// randomized stability probe. No operation here knows about
// individuals, objectives, or generations — it is pure linear algebra
// plus one piece of injected randomness (internal/rng).
package hilbert

import (
	"errors"
	"math"

	"github.com/metaleague/evolution/internal/rng"
)

// Complex is a double-precision complex scalar. NaN and Inf are not
// screened: they propagate through every operation below exactly as
// IEEE 754 dictates, and it is the caller's responsibility to keep
// them out of a run that needs well-defined numerics.
type Complex struct {
	Re, Im float64
}

// State is a finite ordered sequence of complex scalars. Its length
// is the state dimension; every operation below that returns a State
// preserves the dimension of its input(s).
type State []Complex

// ErrDimensionMismatch is returned whenever two states of unequal
// length are combined in an operation that requires equal dimension.
var ErrDimensionMismatch = errors.New("hilbert: dimension mismatch")

// Zero returns a State of n complex zeros.
func Zero(n int) State {
	return make(State, n)
}

// minNorm is the threshold below which a state is treated as the zero
// vector by Normalise and SpectralSync.
const minNorm = 1e-12

// Norm2 returns norm²(x) = Σ (re² + im²). Always finite for finite
// input and never negative.
func Norm2(x State) float64 {
	var sum float64
	for _, c := range x {
		sum += c.Re*c.Re + c.Im*c.Im
	}
	return sum
}

// Norm returns √norm²(x).
func Norm(x State) float64 {
	return math.Sqrt(Norm2(x))
}

// Normalise returns x scaled to unit norm. If norm(x) < 1e-12, it
// returns the zero state of the same dimension instead of dividing by
// a near-zero norm.
func Normalise(x State) State {
	n := Norm(x)
	if n < minNorm {
		return Zero(len(x))
	}
	out := make(State, len(x))
	for i, c := range x {
		out[i] = Complex{Re: c.Re / n, Im: c.Im / n}
	}
	return out
}

// InnerProduct returns Σ conj(aᵢ)·bᵢ. Conjugate-symmetric:
// InnerProduct(a,b) = conj(InnerProduct(b,a)). Returns
// ErrDimensionMismatch if a and b differ in length.
func InnerProduct(a, b State) (Complex, error) {
	if len(a) != len(b) {
		return Complex{}, ErrDimensionMismatch
	}
	var re, im float64
	for i := range a {
		re += a[i].Re*b[i].Re + a[i].Im*b[i].Im
		im += a[i].Re*b[i].Im - a[i].Im*b[i].Re
	}
	return Complex{Re: re, Im: im}, nil
}

// Sub returns a-b componentwise. Returns ErrDimensionMismatch if a and
// b differ in length.
func Sub(a, b State) (State, error) {
	if len(a) != len(b) {
		return nil, ErrDimensionMismatch
	}
	out := make(State, len(a))
	for i := range a {
		out[i] = Complex{Re: a[i].Re - b[i].Re, Im: a[i].Im - b[i].Im}
	}
	return out, nil
}

// Distance returns norm(a-b): non-negative, symmetric, zero iff a=b
// componentwise, and triangle-inequality-satisfying to floating point
// tolerance. Returns ErrDimensionMismatch if a and b differ in length.
func Distance(a, b State) (float64, error) {
	d, err := Sub(a, b)
	if err != nil {
		return 0, err
	}
	return Norm(d), nil
}

// PrivacyProjection returns x perturbed by independent uniform noise
// in [-sigma, +sigma] per real/imaginary component, drawn from src.
// If target < len(x) the result keeps only the first target
// components (the rest are discarded); otherwise every component is
// kept and perturbed.
func PrivacyProjection(x State, target int, sigma float64, src *rng.Source) State {
	n := len(x)
	if target < n {
		n = target
	}
	out := make(State, n)
	for i := 0; i < n; i++ {
		out[i] = Complex{
			Re: x[i].Re + src.Uniform(-sigma, sigma),
			Im: x[i].Im + src.Uniform(-sigma, sigma),
		}
	}
	return out
}

// SpectralSync computes the componentwise arithmetic mean of states
// (the consensus average, a.k.a. crossover operator), then
// Normalise()s the result. All inputs must share the same dimension.
// An empty input returns an empty state; a single input returns
// Normalise(states[0]).
func SpectralSync(states []State) (State, error) {
	if len(states) == 0 {
		return State{}, nil
	}
	dim := len(states[0])
	for _, s := range states {
		if len(s) != dim {
			return nil, ErrDimensionMismatch
		}
	}
	mean := make(State, dim)
	for _, s := range states {
		for i, c := range s {
			mean[i].Re += c.Re
			mean[i].Im += c.Im
		}
	}
	n := float64(len(states))
	for i := range mean {
		mean[i].Re /= n
		mean[i].Im /= n
	}
	return Normalise(mean), nil
}

// LearningEnergy is a cheap regularity proxy: |‖x‖-1| + 0.1·variance
// of component magnitudes. Non-negative; zero when every component's
// magnitude equals 1/√n. Lower is better.
func LearningEnergy(x State) float64 {
	if len(x) == 0 {
		return 0
	}
	n := Norm(x)
	magnitudes := make([]float64, len(x))
	var sum float64
	for i, c := range x {
		m := math.Hypot(c.Re, c.Im)
		magnitudes[i] = m
		sum += m
	}
	mean := sum / float64(len(magnitudes))
	var variance float64
	for _, m := range magnitudes {
		d := m - mean
		variance += d * d
	}
	variance /= float64(len(magnitudes))
	return math.Abs(n-1) + 0.1*variance
}

// stabilityProbes is the number of perturbations IsStable draws per
// call.
const stabilityProbes = 10

// IsStable draws stabilityProbes perturbations of x, each component
// shifted by an independent uniform in [-eps/2, +eps/2] per
// real/imaginary part, and reports whether every perturbation's
// learning energy is no lower than the base energy. The probe is
// randomized and may yield false negatives; callers treat a false
// result as a hint, not a proof.
func IsStable(x State, eps float64, src *rng.Source) bool {
	base := LearningEnergy(x)
	for p := 0; p < stabilityProbes; p++ {
		perturbed := make(State, len(x))
		for i, c := range x {
			perturbed[i] = Complex{
				Re: c.Re + src.Uniform(-eps/2, eps/2),
				Im: c.Im + src.Uniform(-eps/2, eps/2),
			}
		}
		if LearningEnergy(perturbed) < base {
			return false
		}
	}
	return true
}
