package stats

import "math"

// WelchWarmup implements Welch's graphical procedure for estimating the
// warm-up length of a simulation, given multiple replications of equal
// length.
//
// For each replication, a window-averaged moving average is computed over
// [i-movingAvgWindow, i+movingAvgWindow], clipped to the series bounds, so
// windows near either end average over fewer (and asymmetric) points; no
// index is dropped from the output. The per-replication moving averages
// are then averaged pointwise
// across replications to produce one combined series. Finally, a short
// sliding window of size slidingVarWindow is walked over the combined
// series, and the index at which that window's variance is minimal is
// reported as the warm-up cutoff.
//
// Panics if replications is empty, contains series of unequal length, or
// either window size is < 1 — these are caller/model configuration
// errors, not runtime conditions.
func WelchWarmup(replications [][]float64, movingAvgWindow, slidingVarWindow int) (cutoffIndex int, averagedSeries []float64) {
	if len(replications) == 0 {
		panic("WelchWarmup: no replications supplied")
	}
	if movingAvgWindow < 1 || slidingVarWindow < 1 {
		panic("WelchWarmup: window sizes must be >= 1")
	}
	length := len(replications[0])
	for _, r := range replications {
		if len(r) != length {
			panic("WelchWarmup: replications must have equal length")
		}
	}
	if length == 0 {
		return 0, nil
	}

	movingAverages := make([][]float64, len(replications))
	for i, r := range replications {
		movingAverages[i] = movingAverage(r, movingAvgWindow)
	}

	averagedSeries = make([]float64, length)
	for t := 0; t < length; t++ {
		sum := 0.0
		for _, ma := range movingAverages {
			sum += ma[t]
		}
		averagedSeries[t] = sum / float64(len(movingAverages))
	}

	cutoffIndex = minVarianceWindowStart(averagedSeries, slidingVarWindow)
	return cutoffIndex, averagedSeries
}

// movingAverage computes a clipped-window moving average: at index i,
// average over [i-w, i+w] clipped to the series bounds.
func movingAverage(series []float64, w int) []float64 {
	n := len(series)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		lo := i - w
		if lo < 0 {
			lo = 0
		}
		hi := i + w
		if hi > n-1 {
			hi = n - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += series[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// minVarianceWindowStart slides a window of size w over series and
// returns the start index of the window with the smallest sample
// variance. Ties favor the earliest (smallest) index.
func minVarianceWindowStart(series []float64, w int) int {
	n := len(series)
	if w >= n {
		return 0
	}
	bestIdx := 0
	bestVar := math.Inf(1)
	for start := 0; start+w <= n; start++ {
		window := series[start : start+w]
		v := sampleVariance(window)
		if v < bestVar {
			bestVar = v
			bestIdx = start
		}
	}
	return bestIdx
}

func sampleVariance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	sumSq := 0.0
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return sumSq / float64(len(xs)-1)
}
