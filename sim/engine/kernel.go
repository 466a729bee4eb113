package engine

import (
	"fmt"

	"github.com/queuesim/desim/sim/calendar"
	"github.com/queuesim/desim/sim/rng"
	"github.com/queuesim/desim/sim/stats"
)

// maxDiagnostics bounds the in-memory diagnostics ring (§4.3 expansion):
// diagnostics are always collected, regardless of whether tracing is on.
const maxDiagnostics = 1000

// Kernel is the simulation clock and three-phase dispatch loop: it owns the
// event calendar, the live entity/resource population, the RNG stream
// manager, and the statistics registry. A Kernel is single-threaded; replicate
// it across goroutines for parallel replications rather than sharing one.
type Kernel struct {
	cal *calendar.Calendar
	now float64

	warmup    float64
	seq       uint64
	eventCount int64

	entities      map[string]*Entity
	classCounters map[string]int64

	entitiesCreated  int64
	entitiesDeparted int64
	// entitiesDepartedPostWarmup mirrors entitiesDeparted but only counts
	// departures at or after the warm-up cutoff (recordIfWarm's gate),
	// giving the validator a departure count over the same window as the
	// warm-up-gated tallies, for throughput comparisons against theory.
	entitiesDepartedPostWarmup int64

	resources []*Resource // insertion order, for deterministic iteration and the visual grid layout
	resIndex  map[string]*Resource

	flows map[string]ProcessFlow // class name -> compiled stage table

	streams *rng.StreamManager

	tallies    map[string]*stats.Tally
	timeseries map[string]*stats.TimePersistent

	onServiceComplete func(k *Kernel, entityID, resourceID string)

	tracing    bool
	traceLog   []TraceEntry
	diagnostics []Diagnostic
}

// NewKernel creates a kernel rooted at baseSeed, with an empty calendar and
// population. AddResource and AddProcessFlow configure the static network
// topology before the first Schedule/Run call.
func NewKernel(baseSeed int64) *Kernel {
	return &Kernel{
		cal:           calendar.New(),
		entities:      make(map[string]*Entity),
		classCounters: make(map[string]int64),
		resIndex:      make(map[string]*Resource),
		flows:         make(map[string]ProcessFlow),
		streams:       rng.NewStreamManager(baseSeed),
		tallies:       make(map[string]*stats.Tally),
		timeseries:    make(map[string]*stats.TimePersistent),
	}
}

// Now returns the kernel's current clock value.
func (k *Kernel) Now() float64 { return k.now }

// Streams exposes the kernel's stream manager, so arrival sources and
// external callers can draw from named streams consistently with the
// kernel's own sampling.
func (k *Kernel) Streams() *rng.StreamManager { return k.streams }

// EventCount returns the number of events dispatched so far.
func (k *Kernel) EventCount() int64 { return k.eventCount }

// AddResource registers a resource station. Capacity must be >= 1; the
// model compiler is responsible for rejecting zero/negative capacity as a
// ModelError before constructing the kernel.
func (k *Kernel) AddResource(id, name string, capacity int) *Resource {
	r := newResource(id, name, capacity)
	k.resources = append(k.resources, r)
	k.resIndex[id] = r
	k.timeseries[resourceQueueKey(id)] = r.QueueLength
	return r
}

// GetResource looks up a resource by id.
func (k *Kernel) GetResource(id string) (*Resource, bool) {
	r, ok := k.resIndex[id]
	return r, ok
}

// AddProcessFlow registers the compiled stage table for an entity class.
func (k *Kernel) AddProcessFlow(className string, flow ProcessFlow) {
	k.flows[className] = flow
}

// GetEntity looks up a live (not yet departed) entity by id.
func (k *Kernel) GetEntity(id string) (*Entity, bool) {
	e, ok := k.entities[id]
	return e, ok
}

// ActiveEntities returns all entities currently in the system.
func (k *Kernel) ActiveEntities() []*Entity {
	out := make([]*Entity, 0, len(k.entities))
	for _, e := range k.entities {
		out = append(out, e)
	}
	return out
}

// SetOnServiceComplete installs the routing hook invoked whenever a
// resource finishes serving an entity. If none is set, entities depart
// immediately after their first service completes.
func (k *Kernel) SetOnServiceComplete(fn func(k *Kernel, entityID, resourceID string)) {
	k.onServiceComplete = fn
}

// SetTracing toggles in-memory event tracing.
func (k *Kernel) SetTracing(on bool) { k.tracing = on }

// TraceLog returns the recorded trace entries (empty unless tracing is on).
func (k *Kernel) TraceLog() []TraceEntry { return k.traceLog }

// Diagnostics returns the bounded ring of recovered runtime conditions.
func (k *Kernel) Diagnostics() []Diagnostic { return k.diagnostics }

func (k *Kernel) diagnose(kind, entityID, resourceID, message string) {
	d := Diagnostic{Time: k.now, Kind: kind, EntityID: entityID, ResourceID: resourceID, Message: message}
	k.diagnostics = append(k.diagnostics, d)
	if len(k.diagnostics) > maxDiagnostics {
		k.diagnostics = k.diagnostics[len(k.diagnostics)-maxDiagnostics:]
	}
	k.trace(kind, message)
}

// Tally returns (creating if absent) the named observation-indexed
// statistic.
func (k *Kernel) Tally(name string) *stats.Tally {
	t, ok := k.tallies[name]
	if !ok {
		t = stats.NewTally()
		k.tallies[name] = t
	}
	return t
}

// TimePersistent returns (creating if absent) the named time-weighted
// statistic.
func (k *Kernel) TimePersistent(name string) *stats.TimePersistent {
	ts, ok := k.timeseries[name]
	if !ok {
		ts = stats.NewTimePersistent()
		k.timeseries[name] = ts
	}
	return ts
}

func (k *Kernel) recordIfWarm(name string, x float64) {
	if k.now >= k.warmup {
		k.Tally(name).Record(x)
	}
}

// Schedule inserts an event into the calendar, assigning it the next
// sequence number. Returns a *ScheduleError if the event's time precedes
// the current clock (§4.3, §7) — scheduling in the past is a caller bug,
// never silently clamped.
func (k *Kernel) Schedule(e *Event) error {
	if e.time < k.now {
		return &ScheduleError{RequestedTime: e.time, Now: k.now}
	}
	k.seq++
	e.sequence = k.seq
	k.cal.Insert(e)
	return nil
}

// mustSchedule is used internally where the event time is always derived as
// now or now+duration (duration >= 0), so ScheduleError can only indicate a
// programmer error in this package.
func (k *Kernel) mustSchedule(e *Event) {
	if err := k.Schedule(e); err != nil {
		panic(err)
	}
}

// IsComplete reports whether the calendar holds no further events.
func (k *Kernel) IsComplete() bool { return k.cal.IsEmpty() }

// Run advances the clock, dispatching every event with time <= endTime. It
// then finalizes statistics only if the calendar is empty or the clock has
// reached endTime; when the next pending event lies beyond endTime and the
// clock is still short of it, finalize is not called and that event stays
// on the calendar. warmup sets (or re-sets) the warm-up cutoff before
// which Tally recordings are suppressed; it does not affect invariant
// bookkeeping, which always runs.
//
// Run may be called repeatedly with increasing endTime values (see Step) —
// dispatch order depends only on the calendar contents, not on how the
// caller chooses to batch extraction, so run(T, w) and two calls run(T/2,
// w) then run(T, w) produce identical statistics.
func (k *Kernel) Run(endTime, warmup float64) error {
	k.warmup = warmup
	for {
		next := k.cal.Peek()
		if next == nil || next.Time() > endTime {
			break
		}
		ev := k.cal.ExtractMin().(*Event)
		k.now = ev.Time()
		k.eventCount++
		k.dispatch(ev)
		if err := k.checkInvariants(ev); err != nil {
			return err
		}
	}
	if k.cal.IsEmpty() || k.now >= endTime {
		k.finalize()
	}
	return nil
}

// Step advances the simulation by delta time units from the current clock,
// reusing the warm-up cutoff from the most recent Run/Step call. If the
// calendar is already empty, Step returns immediately without advancing the
// clock (§8 boundary: empty calendar).
func (k *Kernel) Step(delta float64) error {
	if k.cal.IsEmpty() {
		return nil
	}
	return k.Run(k.now+delta, k.warmup)
}

// Reset clears all runtime state (calendar, population, diagnostics, trace,
// statistics, RNG streams) while preserving static topology: registered
// resources (capacity reset to idle) and process flows. Reset followed by
// the same sequence of Schedule calls reproduces the same dispatch trace
// (§8 idempotence).
func (k *Kernel) Reset() {
	baseSeed := k.streams.BaseSeed()
	k.cal = calendar.New()
	k.now = 0
	k.warmup = 0
	k.seq = 0
	k.eventCount = 0
	k.entities = make(map[string]*Entity)
	k.classCounters = make(map[string]int64)
	k.entitiesCreated = 0
	k.entitiesDeparted = 0
	k.entitiesDepartedPostWarmup = 0
	k.streams = rng.NewStreamManager(baseSeed)
	k.tallies = make(map[string]*stats.Tally)
	k.timeseries = make(map[string]*stats.TimePersistent)
	k.traceLog = nil
	k.diagnostics = nil
	for _, r := range k.resources {
		r.reset()
		k.timeseries[resourceQueueKey(r.ID)] = r.QueueLength
	}
}

// ValidateConservation reports whether created == departed + currently in
// system (§8 conservation invariant).
func (k *Kernel) ValidateConservation() bool {
	return k.entitiesCreated == k.entitiesDeparted+int64(len(k.entities))
}

func (k *Kernel) nextEntityID(class string) string {
	k.classCounters[class]++
	return fmt.Sprintf("entity_%s_%d", class, k.classCounters[class])
}

func (k *Kernel) trace(kind, details string) {
	if !k.tracing {
		return
	}
	k.traceLog = append(k.traceLog, TraceEntry{Time: k.now, Kind: kind, Details: details})
}

func resourceQueueKey(resourceID string) string {
	return "resource_" + resourceID + "_queue_length"
}
