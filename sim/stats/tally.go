// Package stats implements the statistics subsystem: tally (observation-
// indexed) statistics via Welford's algorithm, time-persistent (time-
// weighted) statistics, percentiles, t/z-based confidence intervals,
// batch means, and Welch warm-up detection.
package stats

import (
	"math"
	"sort"

	gonumstat "gonum.org/v1/gonum/stat"
)

// Tally accumulates observation-indexed statistics: count, running mean,
// and the sum of squared deviations (m2), updated online via Welford's
// algorithm, plus min/max and the raw observation sequence for percentile
// recovery.
type Tally struct {
	count int64
	mean  float64
	m2    float64
	min   float64
	max   float64
	obs   []float64
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{}
}

// Record adds an observation via Welford's online update.
func (t *Tally) Record(x float64) {
	t.count++
	delta := x - t.mean
	t.mean += delta / float64(t.count)
	delta2 := x - t.mean
	t.m2 += delta * delta2

	if t.count == 1 || x < t.min {
		t.min = x
	}
	if t.count == 1 || x > t.max {
		t.max = x
	}
	t.obs = append(t.obs, x)
}

// Count returns the number of recorded observations.
func (t *Tally) Count() int64 { return t.count }

// Mean returns the running mean, or 0 if no observations (StatisticsEmpty, §7).
func (t *Tally) Mean() float64 {
	if t.count == 0 {
		return 0
	}
	return t.mean
}

// Variance returns the sample variance (m2/(count-1)) for count>=2, else 0.
func (t *Tally) Variance() float64 {
	if t.count < 2 {
		return 0
	}
	return t.m2 / float64(t.count-1)
}

// StdDev returns the sample standard deviation.
func (t *Tally) StdDev() float64 {
	return math.Sqrt(t.Variance())
}

// StdError returns the standard error of the mean.
func (t *Tally) StdError() float64 {
	if t.count == 0 {
		return 0
	}
	return t.StdDev() / math.Sqrt(float64(t.count))
}

// Min returns the minimum recorded observation, or 0 if empty.
func (t *Tally) Min() float64 {
	if t.count == 0 {
		return 0
	}
	return t.min
}

// Max returns the maximum recorded observation, or 0 if empty.
func (t *Tally) Max() float64 {
	if t.count == 0 {
		return 0
	}
	return t.max
}

// Percentile returns the p-th percentile (0-100) of the observations by
// linear interpolation on sorted data. Returns 0 if empty (StatisticsEmpty).
func (t *Tally) Percentile(p float64) float64 {
	if t.count == 0 {
		return 0
	}
	if t.count == 1 {
		return t.obs[0]
	}
	sorted := make([]float64, len(t.obs))
	copy(sorted, t.obs)
	sort.Float64s(sorted)
	return gonumstat.Quantile(p/100.0, gonumstat.LinInterp, sorted, nil)
}

// ConfidenceInterval reports the half-width, lower, and upper bounds of a
// (1-alpha) confidence interval around the mean, using CriticalValue
// (exact t-table for df<=30, z-approximation above). Returns zeros if
// count<2 (StatisticsEmpty).
func (t *Tally) ConfidenceInterval(alpha float64) (lower, upper, halfWidth float64) {
	if t.count < 2 {
		return 0, 0, 0
	}
	df := int(t.count) - 1
	crit := CriticalValue(alpha, df)
	halfWidth = crit * t.StdError()
	return t.mean - halfWidth, t.mean + halfWidth, halfWidth
}

// TallySummary is a snapshot of all derived tally fields, matching the
// per-statistic record shape in the statistics summary (§6).
type TallySummary struct {
	Count          int64
	Mean           float64
	StdDev         float64
	Variance       float64
	StdError       float64
	Min            float64
	Max            float64
	CI95Lower      float64
	CI95Upper      float64
	CI95HalfWidth  float64
	P10, P25, P50  float64
	P75, P90, P95  float64
	P99            float64
}

// Snapshot computes the full summary record in one pass.
func (t *Tally) Snapshot() TallySummary {
	lower, upper, hw := t.ConfidenceInterval(0.05)
	return TallySummary{
		Count:         t.Count(),
		Mean:          t.Mean(),
		StdDev:        t.StdDev(),
		Variance:      t.Variance(),
		StdError:      t.StdError(),
		Min:           t.Min(),
		Max:           t.Max(),
		CI95Lower:     lower,
		CI95Upper:     upper,
		CI95HalfWidth: hw,
		P10:           t.Percentile(10),
		P25:           t.Percentile(25),
		P50:           t.Percentile(50),
		P75:           t.Percentile(75),
		P90:           t.Percentile(90),
		P95:           t.Percentile(95),
		P99:           t.Percentile(99),
	}
}

// Observations returns a copy of the raw observation sequence.
func (t *Tally) Observations() []float64 {
	out := make([]float64, len(t.obs))
	copy(out, t.obs)
	return out
}
