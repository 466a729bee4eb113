package rng

import (
	"fmt"
	"math"
	"sort"
)

// Exponential draws from an exponential distribution with the given mean,
// via inverse CDF: -ln(1-u) * mean.
func Exponential(g *MT19937, mean float64) float64 {
	u := g.Float64()
	return -math.Log(1-u) * mean
}

// Uniform draws uniformly from [lo, hi).
func Uniform(g *MT19937, lo, hi float64) float64 {
	return lo + g.Float64()*(hi-lo)
}

// Triangular draws from a triangular distribution via the standard
// piecewise inverse CDF.
func Triangular(g *MT19937, lo, mode, hi float64) float64 {
	u := g.Float64()
	fc := (mode - lo) / (hi - lo)
	if u < fc {
		return lo + math.Sqrt(u*(hi-lo)*(mode-lo))
	}
	return hi - math.Sqrt((1-u)*(hi-lo)*(hi-mode))
}

// Normal draws from a normal distribution via Box-Muller.
func Normal(g *MT19937, mean, stdDev float64) float64 {
	u1 := g.Float64Open()
	u2 := g.Float64()
	z0 := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + stdDev*z0
}

// Empirical samples from a discrete empirical distribution given parallel
// values/probabilities slices via cumulative probability lookup. Returns
// an error if the slice lengths differ or probabilities don't sum to 1
// within tolerance 1e-4.
func Empirical(g *MT19937, values []float64, probabilities []float64) (float64, error) {
	if len(values) != len(probabilities) {
		return 0, fmt.Errorf("empirical distribution: %d values but %d probabilities", len(values), len(probabilities))
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("empirical distribution: no values supplied")
	}
	sum := 0.0
	for _, p := range probabilities {
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-4 {
		return 0, fmt.Errorf("empirical distribution: probabilities sum to %v, want 1.0 (tolerance 1e-4)", sum)
	}

	u := g.Float64()
	cumulative := 0.0
	for i, p := range probabilities {
		cumulative += p
		if u <= cumulative {
			return values[i], nil
		}
	}
	// Floating error guard: fall back to the last value.
	return values[len(values)-1], nil
}

// Antithetic returns the antithetic pair (u, 1-u) for variance reduction
// across paired replications.
func Antithetic(u float64) (float64, float64) {
	return u, 1 - u
}

// SortedEmpiricalCDF precomputes a cumulative distribution for repeated
// sampling, avoiding the O(n) summation cost of Empirical on every draw.
// values and probabilities must already be validated (see Empirical).
type SortedEmpiricalCDF struct {
	values []float64
	cdf    []float64
}

// NewSortedEmpiricalCDF builds a reusable CDF table. Probabilities must
// sum to 1 within tolerance 1e-4.
func NewSortedEmpiricalCDF(values, probabilities []float64) (*SortedEmpiricalCDF, error) {
	if len(values) != len(probabilities) {
		return nil, fmt.Errorf("empirical distribution: %d values but %d probabilities", len(values), len(probabilities))
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("empirical distribution: no values supplied")
	}
	sum := 0.0
	for _, p := range probabilities {
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-4 {
		return nil, fmt.Errorf("empirical distribution: probabilities sum to %v, want 1.0 (tolerance 1e-4)", sum)
	}
	cdf := make([]float64, len(probabilities))
	cumulative := 0.0
	for i, p := range probabilities {
		cumulative += p
		cdf[i] = cumulative
	}
	cdf[len(cdf)-1] = 1.0
	vals := append([]float64(nil), values...)
	return &SortedEmpiricalCDF{values: vals, cdf: cdf}, nil
}

// Sample draws one value from the table.
func (e *SortedEmpiricalCDF) Sample(g *MT19937) float64 {
	u := g.Float64()
	idx := sort.SearchFloat64s(e.cdf, u)
	if idx >= len(e.values) {
		idx = len(e.values) - 1
	}
	return e.values[idx]
}
