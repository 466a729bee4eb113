// Package calendar implements the event calendar (future-event list): a
// binary min-heap over a dynamic array, ordered by (time, sequence), with
// O(log n) insert/extract-min and O(1) peek.
package calendar

import "container/heap"

// Event is anything the calendar can order and hold. Implementations carry
// their own time and sequence number; sequence numbers are assigned by the
// kernel before insertion (§4.3) and serve as the deterministic FIFO
// tie-breaker for equal-time events.
type Event interface {
	Time() float64
	Sequence() uint64
}

// Calendar is a priority queue of pending events ordered by the event
// total order from §3: primary by time ascending, secondary by sequence
// ascending. Two events are never considered equal.
type Calendar struct {
	events []Event
}

// New creates an empty calendar.
func New() *Calendar {
	c := &Calendar{events: make([]Event, 0)}
	heap.Init(c)
	return c
}

// Len implements heap.Interface.
func (c *Calendar) Len() int { return len(c.events) }

// Less implements heap.Interface with the calendar's total order.
func (c *Calendar) Less(i, j int) bool {
	ei, ej := c.events[i], c.events[j]
	if ei.Time() != ej.Time() {
		return ei.Time() < ej.Time()
	}
	return ei.Sequence() < ej.Sequence()
}

// Swap implements heap.Interface.
func (c *Calendar) Swap(i, j int) { c.events[i], c.events[j] = c.events[j], c.events[i] }

// Push implements heap.Interface. Use Insert, not Push, from outside the
// package — Push exists only to satisfy container/heap.
func (c *Calendar) Push(x any) { c.events = append(c.events, x.(Event)) }

// Pop implements heap.Interface. Use ExtractMin, not Pop, from outside the
// package.
func (c *Calendar) Pop() any {
	old := c.events
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	c.events = old[:n-1]
	return item
}

// Insert adds an event to the calendar in O(log n).
func (c *Calendar) Insert(e Event) {
	heap.Push(c, e)
}

// Peek returns the earliest pending event without removing it, or nil if
// the calendar is empty. O(1).
func (c *Calendar) Peek() Event {
	if len(c.events) == 0 {
		return nil
	}
	return c.events[0]
}

// ExtractMin removes and returns the earliest pending event, or nil if the
// calendar is empty. O(log n).
func (c *Calendar) ExtractMin() Event {
	if len(c.events) == 0 {
		return nil
	}
	return heap.Pop(c).(Event)
}

// Clear empties the calendar.
func (c *Calendar) Clear() {
	c.events = c.events[:0]
}

// IsEmpty reports whether the calendar holds no events.
func (c *Calendar) IsEmpty() bool {
	return len(c.events) == 0
}

// Validate is a debug helper: it returns whether the heap property holds
// over the current storage, walking parent/child relationships directly
// rather than trusting the heap package's own invariants.
func (c *Calendar) Validate() bool {
	n := len(c.events)
	for i := 0; i < n; i++ {
		left, right := 2*i+1, 2*i+2
		if left < n && c.Less(left, i) {
			return false
		}
		if right < n && c.Less(right, i) {
			return false
		}
	}
	return true
}
