// Package engine implements the event kernel: the simulation clock,
// event calendar integration, three-phase dispatch loop, entity/resource
// state model, routing engine, and arrival generation described in
// sections 3, 4.3-4.6 of the specification.
package engine

// EventKind is the closed, tagged variant of event types the kernel
// dispatches. There is no open class hierarchy — Kernel.dispatch is a
// single function switching on Kind.
type EventKind int

const (
	EventArrival EventKind = iota
	EventStartService
	EventEndService
	EventDeparture
	EventResourceAvailable
	EventStateChange
)

func (k EventKind) String() string {
	switch k {
	case EventArrival:
		return "Arrival"
	case EventStartService:
		return "StartService"
	case EventEndService:
		return "EndService"
	case EventDeparture:
		return "Departure"
	case EventResourceAvailable:
		return "ResourceAvailable"
	case EventStateChange:
		return "StateChange"
	default:
		return "Unknown"
	}
}

// Event is an immutable record describing one scheduled occurrence.
// Events are owned by the calendar; dispatch consumes them. The total
// order over events (time ascending, then sequence ascending) is defined
// by Time()/Sequence(), which satisfy calendar.Event.
type Event struct {
	time       float64
	sequence   uint64
	kind       EventKind
	entityID   string // optional; "" if not applicable
	resourceID string // optional; "" if not applicable
	payload    any
}

// NewEvent constructs an event. sequence is left zero; Kernel.Schedule
// assigns it before insertion (§4.3).
func NewEvent(kind EventKind, time float64, entityID, resourceID string, payload any) *Event {
	return &Event{
		kind:       kind,
		time:       time,
		entityID:   entityID,
		resourceID: resourceID,
		payload:    payload,
	}
}

func (e *Event) Time() float64       { return e.time }
func (e *Event) Sequence() uint64    { return e.sequence }
func (e *Event) Kind() EventKind     { return e.kind }
func (e *Event) EntityID() string    { return e.entityID }
func (e *Event) ResourceID() string  { return e.resourceID }
func (e *Event) Payload() any        { return e.payload }

// Diagnostic is a structured record of a recovered runtime condition
// (RoutingWarning, ArrivalUnsupported, §7) that does not abort the run.
type Diagnostic struct {
	Time       float64
	Kind       string
	EntityID   string
	ResourceID string
	Message    string
}

// TraceEntry is one line of the optional in-memory trace log (§4.3).
type TraceEntry struct {
	Time    float64
	Kind    string
	Details string
}
