package model

import (
	"github.com/queuesim/desim/sim/engine"
	"github.com/queuesim/desim/sim/rng"
)

// CompileResult bundles the constructed kernel with the run parameters
// derived from the model description, so a caller doesn't need to re-derive
// hours-to-minutes conversions itself.
type CompileResult struct {
	Kernel           *engine.Kernel
	EndTimeMinutes   float64
	WarmupMinutes    float64
	Replications     int
	Seed             int64
}

// Compile validates and compiles a Description into a ready-to-run kernel.
// Every validation finding is collected before returning; a non-empty
// *ValidationError means the run must not be started (§7 ModelError).
func Compile(desc Description) (*CompileResult, error) {
	verr := &ValidationError{}

	if len(desc.Resources) == 0 {
		verr.add("resources", "model declares no resources")
	}
	if len(desc.Entities) == 0 {
		verr.add("entities", "model declares no entity classes")
	}

	k := engine.NewKernel(desc.RandomSeed)

	for _, r := range desc.Resources {
		if r.Capacity < 1 {
			verr.add("resources["+r.Name+"].capacity", "capacity must be >= 1")
			continue
		}
		if disc := normalize(r.QueueDiscipline); disc != "" && disc != "fifo" && disc != "firstinfirstout" {
			verr.add("resources["+r.Name+"].queue_discipline", "unsupported queue discipline "+r.QueueDiscipline+"; only fifo is implemented")
			continue
		}
		k.AddResource(r.Name, r.Name, r.Capacity)
	}

	flowsByClass := make(map[string]engine.ProcessFlow, len(desc.Processes))
	firstStageByClass := make(map[string]*engine.Stage, len(desc.Processes))
	for _, p := range desc.Processes {
		flow, first := compileProcess(p, verr)
		flowsByClass[p.EntityType] = flow
		firstStageByClass[p.EntityType] = first
		k.AddProcessFlow(p.EntityType, flow)
	}

	router := engine.NewRouter(flowsByClass)
	k.SetOnServiceComplete(router.Complete)

	endTimeMinutes := desc.SimulationDurationHours * 60
	warmupMinutes := desc.WarmupPeriodHours * 60

	for i, ec := range desc.Entities {
		source, ok := compileArrivalSource(i, ec, firstStageByClass[ec.Class], verr)
		if !ok {
			continue
		}
		k.AddArrivalSource(source, endTimeMinutes)
	}

	if verr.HasErrors() {
		return nil, verr
	}

	replications := desc.Replications
	if replications < 1 {
		replications = 1
	}

	return &CompileResult{
		Kernel:         k,
		EndTimeMinutes: endTimeMinutes,
		WarmupMinutes:  warmupMinutes,
		Replications:   replications,
		Seed:           desc.RandomSeed,
	}, nil
}

func compileArrivalSource(classIndex int, ec EntityClass, first *engine.Stage, verr *ValidationError) (engine.ArrivalSource, bool) {
	streamName := rng.StreamArrivals(classIndex)
	firstStageID, firstResourceID := "", ""
	var serviceDist *engine.Distribution
	if first != nil {
		firstStageID = first.ID
		firstResourceID = first.ResourceID
		serviceDist = first.ServiceDist
	}

	switch normalize(ec.ArrivalPattern.Kind) {
	case "poisson", "":
		rate := ratePerMinute(ec.ArrivalPattern.Rate, ec.ArrivalPattern.RateUnit)
		return &engine.HomogeneousPoissonSource{
			ClassName:       ec.Class,
			RatePerMinute:   rate,
			StreamName:      streamName,
			FirstStageID:    firstStageID,
			FirstResourceID: firstResourceID,
			ServiceDist:     serviceDist,
		}, true
	case "nonhomogeneouspoisson", "nonhomogenous":
		windows := make([]engine.RateWindow, len(ec.ArrivalPattern.Windows))
		for i, w := range ec.ArrivalPattern.Windows {
			windows[i] = engine.RateWindow{StartMin: w.StartMin, EndMin: w.EndMin, RatePerHour: w.RatePerHour}
		}
		return &engine.NonHomogeneousPoissonSource{
			ClassName:       ec.Class,
			Windows:         windows,
			StreamName:      streamName,
			FirstStageID:    firstStageID,
			FirstResourceID: firstResourceID,
			ServiceDist:     serviceDist,
		}, true
	case "scheduled":
		return &engine.ScheduledSource{
			ClassName:       ec.Class,
			Times:           ec.ArrivalPattern.Times,
			FirstStageID:    firstStageID,
			FirstResourceID: firstResourceID,
			ServiceDist:     serviceDist,
		}, true
	default:
		verr.add("entities["+ec.Name+"].arrival_pattern.kind", "unknown arrival pattern kind "+ec.ArrivalPattern.Kind)
		return nil, false
	}
}

// stepCategory normalizes a step's declared type into one of the five
// families the compiler recognizes (§4.5).
func stepCategory(t string) string {
	switch normalize(t) {
	case "seize", "acquire", "grab":
		return "seize"
	case "delay", "wait", "process", "travel":
		return "delay"
	case "release", "free":
		return "release"
	case "decision", "branch", "choose", "decide":
		return "decision"
	case "exit", "leave", "depart", "dispose":
		return "exit"
	default:
		return normalize(t)
	}
}

// compileProcess turns a raw step sequence into a stage table keyed by
// stage id (the id of each seize step), returning the first stage for
// arrival wiring.
func compileProcess(p Process, verr *ValidationError) (engine.ProcessFlow, *engine.Stage) {
	byID := make(map[string]Step, len(p.Sequence))
	for _, s := range p.Sequence {
		byID[s.ID] = s
	}

	flow := engine.ProcessFlow{}
	var first *engine.Stage

	for i, step := range p.Sequence {
		if stepCategory(step.Type) != "seize" {
			continue
		}
		stage := &engine.Stage{ID: step.ID, ResourceID: step.ResourceName}

		// Forward scan for the paired delay (service time) and release.
		releaseIdx := -1
		for j := i + 1; j < len(p.Sequence); j++ {
			cat := stepCategory(p.Sequence[j].Type)
			if cat == "delay" && stage.ServiceDist == nil {
				stage.ServiceDist = compileDistribution("processes["+p.Name+"]."+step.ID+".duration", p.Sequence[j].Duration, verr)
			}
			if cat == "release" {
				releaseIdx = j
				break
			}
		}

		stage.Rules = routingRulesAfter(p.Sequence, releaseIdx, byID, verr, p.Name)
		flow[stage.ID] = stage
		if first == nil {
			first = stage
		}
	}
	return flow, first
}

// routingRulesAfter decides the routing rule(s) for the step immediately
// following the stage's release step (§4.5).
func routingRulesAfter(seq []Step, releaseIdx int, byID map[string]Step, verr *ValidationError, processName string) []engine.RoutingRule {
	exitRule := []engine.RoutingRule{{Next: engine.ExitStage}}
	if releaseIdx < 0 || releaseIdx+1 >= len(seq) {
		return exitRule
	}
	next := seq[releaseIdx+1]
	switch stepCategory(next.Type) {
	case "seize":
		return []engine.RoutingRule{{Next: next.ID}}
	case "delay":
		for j := releaseIdx + 2; j < len(seq); j++ {
			if stepCategory(seq[j].Type) == "seize" {
				return []engine.RoutingRule{{Next: seq[j].ID}}
			}
		}
		return exitRule
	case "decision":
		return compileDecisionRules(next, byID, verr, processName)
	case "exit":
		return exitRule
	default:
		return exitRule
	}
}

func compileDecisionRules(decision Step, byID map[string]Step, verr *ValidationError, processName string) []engine.RoutingRule {
	if len(decision.Conditions) == 0 {
		verr.add("processes["+processName+"]."+decision.ID, "decision step has no conditions")
		return []engine.RoutingRule{{Next: engine.ExitStage}}
	}
	rules := make([]engine.RoutingRule, 0, len(decision.Conditions))
	sum := 0.0
	anyProb := false
	for _, c := range decision.Conditions {
		next := c.NextStepID
		if next == "" {
			next = engine.ExitStage
		} else if target, ok := byID[next]; ok && stepCategory(target.Type) == "exit" {
			next = engine.ExitStage
		}
		rule := engine.RoutingRule{Next: next}
		if c.Probability != nil {
			anyProb = true
			p := *c.Probability
			rule.Probability = &p
			sum += p
		}
		rules = append(rules, rule)
	}
	if anyProb {
		const tolerance = 1e-4
		diff := sum - 1.0
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			verr.add("processes["+processName+"]."+decision.ID+".conditions", "probabilities must sum to 1 within 1e-4")
		}
	}
	return rules
}
