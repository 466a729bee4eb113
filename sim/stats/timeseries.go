package stats

// Observation is one {t, v} sample recorded by a TimePersistent statistic.
type Observation struct {
	T float64
	V float64
}

// TimePersistent accumulates a time-weighted average of a piecewise-
// constant signal: on each Update(t, v), the value held since the last
// update is weighted by the elapsed time before the new value replaces it.
type TimePersistent struct {
	hasValue bool
	lastValue float64
	lastTime  float64
	timeSum   float64
	totalTime float64
	min, max  float64
	series    []Observation
}

// NewTimePersistent creates an empty time-persistent statistic.
func NewTimePersistent() *TimePersistent {
	return &TimePersistent{}
}

// Update records that the signal took value v at time t. The value held
// since the previous update is weighted into the running time-average by
// the elapsed duration (t - last_time).
func (ts *TimePersistent) Update(t, v float64) {
	if ts.hasValue {
		elapsed := t - ts.lastTime
		ts.timeSum += ts.lastValue * elapsed
		ts.totalTime += elapsed
	}
	if !ts.hasValue || v < ts.min {
		ts.min = v
	}
	if !ts.hasValue || v > ts.max {
		ts.max = v
	}
	ts.lastValue = v
	ts.lastTime = t
	ts.hasValue = true
	ts.series = append(ts.series, Observation{T: t, V: v})
}

// TimeAverage returns time_sum / total_time, or 0 if no elapsed time has
// been observed (StatisticsEmpty, §7).
func (ts *TimePersistent) TimeAverage() float64 {
	if ts.totalTime == 0 {
		return 0
	}
	return ts.timeSum / ts.totalTime
}

// CurrentValue returns the last recorded value, or 0 if none.
func (ts *TimePersistent) CurrentValue() float64 {
	if !ts.hasValue {
		return 0
	}
	return ts.lastValue
}

// Min returns the minimum recorded value, or 0 if empty.
func (ts *TimePersistent) Min() float64 {
	if !ts.hasValue {
		return 0
	}
	return ts.min
}

// Max returns the maximum recorded value, or 0 if empty.
func (ts *TimePersistent) Max() float64 {
	if !ts.hasValue {
		return 0
	}
	return ts.max
}

// ObservationCount returns the number of {t,v} samples recorded.
func (ts *TimePersistent) ObservationCount() int {
	return len(ts.series)
}

// Observations returns a copy of the recorded {t,v} series.
func (ts *TimePersistent) Observations() []Observation {
	out := make([]Observation, len(ts.series))
	copy(out, ts.series)
	return out
}

// TimePersistentSummary mirrors the time_persistent section of the
// statistics summary record (§6).
type TimePersistentSummary struct {
	TimeAverage      float64
	CurrentValue     float64
	Min              float64
	Max              float64
	ObservationCount int
}

// Snapshot computes the full summary record.
func (ts *TimePersistent) Snapshot() TimePersistentSummary {
	return TimePersistentSummary{
		TimeAverage:      ts.TimeAverage(),
		CurrentValue:     ts.CurrentValue(),
		Min:              ts.Min(),
		Max:              ts.Max(),
		ObservationCount: ts.ObservationCount(),
	}
}
