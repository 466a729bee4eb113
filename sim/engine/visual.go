package engine

import "math"

// VisualPosition is a grid cell {Row, Col} assigned to a resource or the
// "yard" (entities not currently assigned to any resource) for the visual
// stream's default layout (§6 expansion).
type VisualPosition struct {
	Row, Col int
}

// VisualResource is one row of Kernel.VisualResources().
type VisualResource struct {
	ID                 string
	Name               string
	Position           VisualPosition
	Capacity           int
	Load               int
	Queued             int
	UtilizationPercent float64
}

// VisualEntity is one row of Kernel.VisualEntities().
type VisualEntity struct {
	ID              string
	Class           string
	State           string
	Position        VisualPosition
	CurrentResource string // "" if not currently assigned to a resource
	CreationTime    float64
}

// VisualResources returns the current resource layout and occupancy,
// positioned on a grid sized to roughly sqrt(n) columns in registration
// order — a host UI is free to override positions; this is only the
// default.
func (k *Kernel) VisualResources() []VisualResource {
	cols := gridCols(len(k.resources))
	out := make([]VisualResource, 0, len(k.resources))
	for i, r := range k.resources {
		out = append(out, VisualResource{
			ID:                 r.ID,
			Name:               r.Name,
			Position:           VisualPosition{Row: i / cols, Col: i % cols},
			Capacity:           r.Capacity,
			Load:               r.CurrentLoad,
			Queued:             len(r.Queue),
			UtilizationPercent: r.UtilizationPercent,
		})
	}
	return out
}

// VisualEntities returns every active entity's class, state, and position —
// the position of its current resource, or the {-1,-1} "yard" if it holds
// none.
func (k *Kernel) VisualEntities() []VisualEntity {
	cols := gridCols(len(k.resources))
	posFor := make(map[string]VisualPosition, len(k.resources))
	for i, r := range k.resources {
		posFor[r.ID] = VisualPosition{Row: i / cols, Col: i % cols}
	}
	out := make([]VisualEntity, 0, len(k.entities))
	for _, e := range k.entities {
		pos, ok := posFor[e.CurrentResource]
		if !ok {
			pos = VisualPosition{Row: -1, Col: -1}
		}
		out = append(out, VisualEntity{
			ID:              e.ID,
			Class:           e.Class,
			State:           e.State.String(),
			Position:        pos,
			CurrentResource: e.CurrentResource,
			CreationTime:    e.CreatedAt,
		})
	}
	return out
}

func gridCols(n int) int {
	if n <= 0 {
		return 1
	}
	c := int(math.Ceil(math.Sqrt(float64(n))))
	if c < 1 {
		return 1
	}
	return c
}
