package engine

import "github.com/queuesim/desim/sim/rng"

// ArrivalSource generates Arrival events for one entity class. Sources are
// self-rescheduling: each produced arrival's OnProcessed hook schedules the
// next one, so the full arrival stream never needs to be materialized up
// front (§4.6).
type ArrivalSource interface {
	// ScheduleInitial enqueues whatever events are needed to start the
	// arrival stream, given the simulation's end time.
	ScheduleInitial(k *Kernel, endTime float64)
}

// HomogeneousPoissonSource generates a stationary Poisson arrival stream at
// a fixed rate (entities per minute).
type HomogeneousPoissonSource struct {
	ClassName       string
	RatePerMinute   float64
	StreamName      string
	FirstStageID    string
	FirstResourceID string
	ServiceDist     *Distribution
	MaxArrivals     int64 // 0 = unlimited

	endTime   float64
	scheduled int64
}

func (s *HomogeneousPoissonSource) ScheduleInitial(k *Kernel, endTime float64) {
	s.endTime = endTime
	s.scheduleNext(k, 0)
}

func (s *HomogeneousPoissonSource) scheduleNext(k *Kernel, after float64) {
	if s.MaxArrivals > 0 && s.scheduled >= s.MaxArrivals {
		return
	}
	if s.RatePerMinute <= 0 {
		k.diagnose("ArrivalUnsupported", "", "", "class "+s.ClassName+" has non-positive rate; no arrivals generated")
		return
	}
	g := k.Streams().Stream(s.StreamName)
	iat := rng.Exponential(g, 1.0/s.RatePerMinute)
	t := after + iat
	if t > s.endTime {
		return
	}
	s.scheduled++
	k.mustSchedule(NewEvent(EventArrival, t, "", "", &ArrivalPayload{
		ClassName:       s.ClassName,
		FirstStageID:    s.FirstStageID,
		FirstResourceID: s.FirstResourceID,
		ServiceDist:     s.ServiceDist,
		OnProcessed: func(k *Kernel, arrivalTime float64) {
			s.scheduleNext(k, arrivalTime)
		},
	}))
}

// RateWindow is one interval of a piecewise-constant non-homogeneous
// Poisson rate function; RatePerHour applies over [StartMin, EndMin).
type RateWindow struct {
	StartMin, EndMin float64
	RatePerHour      float64
}

// NonHomogeneousPoissonSource generates arrivals under a piecewise-constant
// rate function, thinning by window boundaries rather than acceptance-
// rejection (§4.6).
type NonHomogeneousPoissonSource struct {
	ClassName       string
	Windows         []RateWindow // must be sorted by StartMin, non-overlapping
	StreamName      string
	FirstStageID    string
	FirstResourceID string
	ServiceDist     *Distribution

	endTime float64
}

func (s *NonHomogeneousPoissonSource) ScheduleInitial(k *Kernel, endTime float64) {
	s.endTime = endTime
	s.advance(k, 0)
}

func (s *NonHomogeneousPoissonSource) windowAt(t float64) (RateWindow, bool) {
	for _, w := range s.Windows {
		if t >= w.StartMin && t < w.EndMin {
			return w, true
		}
	}
	return RateWindow{}, false
}

func (s *NonHomogeneousPoissonSource) nextWindowStart(after float64) (float64, bool) {
	best := 0.0
	found := false
	for _, w := range s.Windows {
		if w.StartMin > after && (!found || w.StartMin < best) {
			best = w.StartMin
			found = true
		}
	}
	return best, found
}

func (s *NonHomogeneousPoissonSource) advance(k *Kernel, cursor float64) {
	if cursor > s.endTime {
		return
	}
	w, ok := s.windowAt(cursor)
	if !ok {
		next, found := s.nextWindowStart(cursor)
		if !found || next > s.endTime {
			return
		}
		s.advance(k, next)
		return
	}
	if w.RatePerHour <= 0 {
		s.advance(k, w.EndMin)
		return
	}
	g := k.Streams().Stream(s.StreamName)
	ratePerMinute := w.RatePerHour / 60.0
	iat := rng.Exponential(g, 1.0/ratePerMinute)
	t := cursor + iat
	if t >= w.EndMin {
		s.advance(k, w.EndMin)
		return
	}
	if t > s.endTime {
		return
	}
	k.mustSchedule(NewEvent(EventArrival, t, "", "", &ArrivalPayload{
		ClassName:       s.ClassName,
		FirstStageID:    s.FirstStageID,
		FirstResourceID: s.FirstResourceID,
		ServiceDist:     s.ServiceDist,
		OnProcessed: func(k *Kernel, arrivalTime float64) {
			s.advance(k, arrivalTime)
		},
	}))
}

// ScheduledSource generates arrivals at a fixed list of absolute times,
// for deterministic/scripted workloads (§4.6).
type ScheduledSource struct {
	ClassName       string
	Times           []float64
	FirstStageID    string
	FirstResourceID string
	ServiceDist     *Distribution
}

func (s *ScheduledSource) ScheduleInitial(k *Kernel, endTime float64) {
	for _, t := range s.Times {
		if t > endTime {
			continue
		}
		k.mustSchedule(NewEvent(EventArrival, t, "", "", &ArrivalPayload{
			ClassName:       s.ClassName,
			FirstStageID:    s.FirstStageID,
			FirstResourceID: s.FirstResourceID,
			ServiceDist:     s.ServiceDist,
		}))
	}
}

// AddArrivalSource registers and immediately primes an arrival source,
// given the simulation's planned end time.
func (k *Kernel) AddArrivalSource(source ArrivalSource, endTime float64) {
	source.ScheduleInitial(k, endTime)
}
