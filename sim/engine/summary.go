package engine

import "github.com/queuesim/desim/sim/stats"

// finalize publishes per-resource utilization. It is pure recomputation
// from busy_time/(now*capacity) at the current clock — calling it any
// number of times (once at end_time, or once per Step call as the run
// loop's terminal condition keeps re-triggering) always yields the value
// for the current total elapsed simulated time, so splitting a run across
// multiple Step calls produces the same final statistics as one Run call
// (§4.4, §8 round-trip property).
func (k *Kernel) finalize() {
	for _, r := range k.resources {
		if k.now <= 0 || r.Capacity <= 0 {
			r.UtilizationPercent = 0
			continue
		}
		r.UtilizationPercent = 100 * r.BusyTime / (k.now * float64(r.Capacity))
	}
}

// ResourceSummary mirrors one resource's section of the statistics summary
// record (§6).
type ResourceSummary struct {
	ID                 string
	Name               string
	Capacity           int
	CurrentLoad        int
	UtilizationPercent float64
	TotalBusyTime      float64
	QueueLength        stats.TimePersistentSummary
}

// StatisticsSummary is the full snapshot returned by GetStatistics: wall-
// clock state, every tally and time-persistent statistic registered so
// far, and a per-resource breakdown (§6).
type StatisticsSummary struct {
	Now              float64
	EventCount       int64
	EntitiesCreated  int64
	EntitiesDeparted int64
	// EntitiesDepartedPostWarmup counts only departures at or after the
	// warm-up cutoff, over the same window as the warm-up-gated tallies.
	EntitiesDepartedPostWarmup int64
	EntitiesActive             int64

	Tallies    map[string]stats.TallySummary
	TimeSeries map[string]stats.TimePersistentSummary
	Resources  map[string]ResourceSummary
}

// GetStatistics snapshots the kernel's full statistics registry.
func (k *Kernel) GetStatistics() StatisticsSummary {
	summary := StatisticsSummary{
		Now:                        k.now,
		EventCount:                 k.eventCount,
		EntitiesCreated:            k.entitiesCreated,
		EntitiesDeparted:           k.entitiesDeparted,
		EntitiesDepartedPostWarmup: k.entitiesDepartedPostWarmup,
		EntitiesActive:             int64(len(k.entities)),
		Tallies:                    make(map[string]stats.TallySummary, len(k.tallies)),
		TimeSeries:                 make(map[string]stats.TimePersistentSummary, len(k.timeseries)),
		Resources:                  make(map[string]ResourceSummary, len(k.resources)),
	}
	for name, t := range k.tallies {
		summary.Tallies[name] = t.Snapshot()
	}
	for name, ts := range k.timeseries {
		summary.TimeSeries[name] = ts.Snapshot()
	}
	for _, r := range k.resources {
		summary.Resources[r.ID] = ResourceSummary{
			ID:                 r.ID,
			Name:               r.Name,
			Capacity:           r.Capacity,
			CurrentLoad:        r.CurrentLoad,
			UtilizationPercent: r.UtilizationPercent,
			TotalBusyTime:      r.BusyTime,
			QueueLength:        r.QueueLength.Snapshot(),
		}
	}
	return summary
}
