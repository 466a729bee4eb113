package engine

// ExitStage is the reserved routing target meaning "leave the network and
// depart" (§4.5).
const ExitStage = "EXIT"

// RoutingRule is one outgoing edge from a Stage. Probability is nil for an
// unconditional (single-rule or first-matching-rule) edge.
type RoutingRule struct {
	Next        string // stage id, or ExitStage
	Probability *float64
}

// Stage is one compiled seize-delay-release step of a process flow. Stage
// IDs are unique within a class's flow; ResourceID names the resource the
// entity seizes for this stage, ServiceDist is the distribution sampled at
// start-of-service.
type Stage struct {
	ID          string
	ResourceID  string
	ServiceDist *Distribution
	Rules       []RoutingRule
}

// ProcessFlow maps class name to its compiled, ordered stage table, indexed
// by stage ID for routing lookups.
type ProcessFlow map[string]*Stage
