package stats

// BatchMeans implements the batch-means variance-reduction technique:
// observations are grouped into fixed-size batches; whenever the
// in-progress batch reaches k observations, its arithmetic mean is flushed
// onto the batch list. Confidence intervals over the batch list reuse the
// same t/z machinery as Tally, treating each batch mean as one observation
// (batches are assumed large enough to be approximately independent).
type BatchMeans struct {
	batchSize int
	current   []float64
	batches   *Tally
}

// NewBatchMeans creates a batch-means accumulator with the given batch
// size k (must be >= 1).
func NewBatchMeans(k int) *BatchMeans {
	if k < 1 {
		k = 1
	}
	return &BatchMeans{
		batchSize: k,
		batches:   NewTally(),
	}
}

// Record adds an observation to the in-progress batch, flushing the
// batch's mean onto the batch list once it reaches the configured size.
func (b *BatchMeans) Record(x float64) {
	b.current = append(b.current, x)
	if len(b.current) >= b.batchSize {
		sum := 0.0
		for _, v := range b.current {
			sum += v
		}
		b.batches.Record(sum / float64(len(b.current)))
		b.current = b.current[:0]
	}
}

// BatchCount returns the number of completed (flushed) batches.
func (b *BatchMeans) BatchCount() int64 {
	return b.batches.Count()
}

// Mean returns the grand mean across completed batches.
func (b *BatchMeans) Mean() float64 {
	return b.batches.Mean()
}

// ConfidenceInterval reports a (1-alpha) confidence interval over the
// batch means, using the same t/z critical-value machinery as Tally.
func (b *BatchMeans) ConfidenceInterval(alpha float64) (lower, upper, halfWidth float64) {
	return b.batches.ConfidenceInterval(alpha)
}

// PendingCount returns the number of observations accumulated in the
// current, not-yet-flushed batch.
func (b *BatchMeans) PendingCount() int {
	return len(b.current)
}
