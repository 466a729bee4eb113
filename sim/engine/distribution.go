package engine

import (
	"fmt"
	"math"

	"github.com/queuesim/desim/sim/rng"
)

// DistKind names a service/interarrival distribution family (§4 Distribution
// records, synonym-tolerant at the model-compilation layer — this type holds
// the already-normalized kind).
type DistKind string

const (
	DistConstant    DistKind = "constant"
	DistExponential DistKind = "exponential"
	DistUniform     DistKind = "uniform"
	DistTriangular  DistKind = "triangular"
	DistNormal      DistKind = "normal"
	DistEmpirical   DistKind = "empirical"
)

// Distribution is a sampleable distribution record attached to a process
// stage or an arrival source. Exactly the fields relevant to Kind are
// populated; the rest are zero.
type Distribution struct {
	Kind DistKind

	Mean float64 // constant value, or exponential/normal mean

	Min  float64 // uniform/triangular lower bound
	Mode float64 // triangular mode
	Max  float64 // uniform/triangular upper bound

	StdDev float64 // normal standard deviation

	EmpiricalValues []float64
	EmpiricalProbs  []float64
}

// Sample draws one value from the distribution using the supplied stream.
// Normal draws are floored at zero — a negative service or interarrival
// time has no physical meaning, matching the clamp every Gaussian sampler
// in the corpus applies.
func (d *Distribution) Sample(g *rng.MT19937) (float64, error) {
	if d == nil {
		return 0, fmt.Errorf("distribution: nil distribution has no sample")
	}
	switch d.Kind {
	case DistConstant:
		return d.Mean, nil
	case DistExponential:
		return rng.Exponential(g, d.Mean), nil
	case DistUniform:
		return rng.Uniform(g, d.Min, d.Max), nil
	case DistTriangular:
		return rng.Triangular(g, d.Min, d.Mode, d.Max), nil
	case DistNormal:
		return math.Max(0, rng.Normal(g, d.Mean, d.StdDev)), nil
	case DistEmpirical:
		return rng.Empirical(g, d.EmpiricalValues, d.EmpiricalProbs)
	default:
		return 0, fmt.Errorf("distribution: unknown kind %q", d.Kind)
	}
}
