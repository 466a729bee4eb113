// Package model parses a model description (YAML, §6) into the engine's
// compiled form: resources, per-class process flows, and arrival sources.
package model

// Description is the top-level model description record. Unknown YAML
// fields are ignored by gopkg.in/yaml.v3's default decode behaviour.
type Description struct {
	SystemName  string `yaml:"system_name"`
	SystemType  string `yaml:"system_type"`
	Description string `yaml:"description"`

	Entities  []EntityClass `yaml:"entities"`
	Resources []Resource    `yaml:"resources"`
	Processes []Process     `yaml:"processes"`

	SimulationDurationHours float64 `yaml:"simulation_duration"`
	WarmupPeriodHours       float64 `yaml:"warmup_period"`
	Replications            int     `yaml:"replications"`
	RandomSeed              int64   `yaml:"random_seed"`
}

// EntityClass describes one arriving entity class.
type EntityClass struct {
	Name          string         `yaml:"name"`
	Class         string         `yaml:"class"`
	ArrivalPattern ArrivalPattern `yaml:"arrival_pattern"`
	Attributes    []string       `yaml:"attributes"`
	Priority      *int           `yaml:"priority"`
	BatchSize     *int           `yaml:"batch_size"`
}

// ArrivalPattern is a tagged record; Kind selects which of the remaining
// fields apply.
type ArrivalPattern struct {
	Kind     string       `yaml:"kind"`
	Rate     float64      `yaml:"rate"`
	RateUnit string       `yaml:"rate_unit"`
	Windows  []RateWindow `yaml:"windows"`
	Times    []float64    `yaml:"times"`
}

// RateWindow is one interval of a non-homogeneous Poisson rate schedule, in
// model-description units (minutes, rate per hour).
type RateWindow struct {
	StartMin    float64 `yaml:"start_min"`
	EndMin      float64 `yaml:"end_min"`
	RatePerHour float64 `yaml:"rate_per_hour"`
}

// Resource describes one server station.
type Resource struct {
	Name           string     `yaml:"name"`
	Type           string     `yaml:"type"`
	Capacity       int        `yaml:"capacity"`
	ProcessingTime Dist       `yaml:"processing_time"`
	QueueDiscipline string    `yaml:"queue_discipline"`
	Schedule       []string   `yaml:"schedule"`  // reserved extension point, not implemented by the core
	Failures       *Failures  `yaml:"failures"`  // reserved extension point, not implemented by the core
}

// Failures is a reserved MTBF/MTTR extension point (§3); the core parses
// but does not act on it.
type Failures struct {
	MTBF float64 `yaml:"mtbf"`
	MTTR float64 `yaml:"mttr"`
}

// Process describes one entity class's multi-stage flow.
type Process struct {
	Name         string `yaml:"name"`
	EntityType   string `yaml:"entity_type"`
	RoutingLogic string `yaml:"routing_logic"`
	Sequence     []Step `yaml:"sequence"`
}

// Step is one seize/delay/release/decision step in a process's raw
// sequence, before compilation into stages (§4.5).
type Step struct {
	ID           string      `yaml:"id"`
	Type         string      `yaml:"type"`
	ResourceName string      `yaml:"resource_name"`
	Duration     Dist        `yaml:"duration"`
	Conditions   []Condition `yaml:"conditions"`
}

// Condition is one branch of a decision/branch step.
type Condition struct {
	NextStepID  string   `yaml:"next_step_id"`
	Probability *float64 `yaml:"probability"`
}

// Dist is a distribution record as it appears in YAML: {type, parameters,
// unit}. Parameters accept the common aliases enumerated in distribution.go.
type Dist struct {
	Type       string             `yaml:"type"`
	Parameters map[string]float64 `yaml:"parameters"`
	Unit       string             `yaml:"unit"`
	Values     []float64          `yaml:"values"` // empirical: outcome values
	Probs      []float64          `yaml:"probabilities"`
}
