package engine

import "fmt"

// ScheduleError is returned when an attempt is made to schedule an event in
// the past relative to the kernel's current clock (§7).
type ScheduleError struct {
	RequestedTime float64
	Now           float64
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("schedule: event time %v precedes current time %v", e.RequestedTime, e.Now)
}

// InvariantError reports a broken kernel invariant (conservation, resource
// load bounds, entity timing) detected after a dispatch. The run must abort
// on this error — invariant violations are never silently repaired (§7).
type InvariantError struct {
	Message          string
	Time             float64
	EntitySnapshot   *Entity
	ResourceSnapshot *Resource
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated at t=%v: %s", e.Time, e.Message)
}

// RoutingError is a non-fatal structured note for a routing condition that
// was locally recovered by forcing the entity to Departure (RoutingWarning,
// §7). Never returned from Kernel.Run; retrievable via Kernel.Diagnostics.
type RoutingError struct {
	EntityID string
	StageID  string
	Reason   string
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("routing warning: entity %s at stage %q: %s", e.EntityID, e.StageID, e.Reason)
}
