package engine

import "github.com/queuesim/desim/sim/stats"

// Resource is a capacity-limited server station with a FIFO wait queue.
// Queue discipline is FIFO for the core model (§4.4); the model layer may
// reorder the queue slice directly for priority disciplines (§9 redesign
// flags reserve that extension point here).
type Resource struct {
	ID       string
	Name     string
	Capacity int

	CurrentLoad int
	Queue       []string        // entity IDs waiting, FIFO order
	InService   map[string]bool // entity IDs currently being served

	BusyTime           float64
	UtilizationPercent float64 // published by Kernel.finalize, recomputed on each call

	QueueLength *stats.TimePersistent
}

func newResource(id, name string, capacity int) *Resource {
	return &Resource{
		ID:          id,
		Name:        name,
		Capacity:    capacity,
		InService:   make(map[string]bool),
		QueueLength: stats.NewTimePersistent(),
	}
}

// reset restores runtime state to an empty resource, keeping its static
// identity and capacity (Kernel.Reset, §9 idempotence).
func (r *Resource) reset() {
	r.CurrentLoad = 0
	r.Queue = nil
	r.InService = make(map[string]bool)
	r.BusyTime = 0
	r.UtilizationPercent = 0
	r.QueueLength = stats.NewTimePersistent()
}
