package calendar

import "testing"

type testEvent struct {
	time float64
	seq  uint64
	name string
}

func (e *testEvent) Time() float64    { return e.time }
func (e *testEvent) Sequence() uint64 { return e.seq }

func TestCalendar_EmptyPeekAndExtract(t *testing.T) {
	c := New()
	if !c.IsEmpty() {
		t.Fatal("new calendar should be empty")
	}
	if c.Peek() != nil {
		t.Fatal("Peek() on empty calendar should be nil")
	}
	if c.ExtractMin() != nil {
		t.Fatal("ExtractMin() on empty calendar should be nil")
	}
}

func TestCalendar_OrdersByTime(t *testing.T) {
	c := New()
	c.Insert(&testEvent{time: 3, seq: 1})
	c.Insert(&testEvent{time: 1, seq: 2})
	c.Insert(&testEvent{time: 2, seq: 3})

	var order []float64
	for !c.IsEmpty() {
		order = append(order, c.ExtractMin().Time())
	}
	want := []float64{1, 2, 3}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestCalendar_TieBreaksBySequence(t *testing.T) {
	c := New()
	// Insert out of sequence order but at the same timestamp: extraction
	// must follow sequence order regardless of insertion order.
	c.Insert(&testEvent{time: 5, seq: 3, name: "c"})
	c.Insert(&testEvent{time: 5, seq: 1, name: "a"})
	c.Insert(&testEvent{time: 5, seq: 2, name: "b"})

	var names []string
	for !c.IsEmpty() {
		names = append(names, c.ExtractMin().(*testEvent).name)
	}
	if names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Fatalf("tie-break order = %v, want [a b c]", names)
	}
}

func TestCalendar_PeekDoesNotRemove(t *testing.T) {
	c := New()
	c.Insert(&testEvent{time: 1, seq: 1})
	if c.Peek() == nil {
		t.Fatal("Peek should see the event")
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d after Peek, want 1", c.Len())
	}
}

func TestCalendar_ClearEmptiesQueue(t *testing.T) {
	c := New()
	c.Insert(&testEvent{time: 1, seq: 1})
	c.Insert(&testEvent{time: 2, seq: 2})
	c.Clear()
	if !c.IsEmpty() {
		t.Fatal("Clear() should empty the calendar")
	}
}

func TestCalendar_ValidateHeapProperty(t *testing.T) {
	c := New()
	for i := 0; i < 100; i++ {
		c.Insert(&testEvent{time: float64((i * 37) % 50), seq: uint64(i)})
	}
	if !c.Validate() {
		t.Fatal("heap property should hold after many inserts")
	}
	c.ExtractMin()
	if !c.Validate() {
		t.Fatal("heap property should hold after ExtractMin")
	}
}

func TestCalendar_NeverReordersEqualTimeRelativeInsertionOrder(t *testing.T) {
	c := New()
	const total = 500
	for i := 0; i < total; i++ {
		c.Insert(&testEvent{time: 10, seq: uint64(i)})
	}
	for i := 0; i < total; i++ {
		e := c.ExtractMin().(*testEvent)
		if e.seq != uint64(i) {
			t.Fatalf("extraction %d: got seq %d, want %d", i, e.seq, i)
		}
	}
}
