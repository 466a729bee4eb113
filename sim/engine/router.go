package engine

import "github.com/queuesim/desim/sim/rng"

// Router implements the default on-service-complete hook: it looks up the
// entity's current stage in its class's compiled process flow and decides
// the next hop (§4.5).
//
// Selection among a stage's outgoing rules:
//   - exactly one rule: always taken
//   - any rule carries a probability: draw u from the "main" stream and
//     walk the cumulative distribution, falling back to the last rule on
//     floating-point rounding at the boundary
//   - otherwise (multiple unconditional rules): the first rule wins
type Router struct {
	flows map[string]ProcessFlow
}

// NewRouter builds a router over the given class -> compiled flow map.
func NewRouter(flows map[string]ProcessFlow) *Router {
	return &Router{flows: flows}
}

// Complete is installed via Kernel.SetOnServiceComplete.
func (rt *Router) Complete(k *Kernel, entityID, resourceID string) {
	entity, ok := k.GetEntity(entityID)
	if !ok {
		return
	}
	stageID := entity.CurrentStage
	if stageID == "" {
		k.ScheduleEntityDeparture(entityID)
		return
	}
	flow, ok := rt.flows[entity.Class]
	if !ok {
		k.diagnose("RoutingWarning", entityID, resourceID, (&RoutingError{EntityID: entityID, StageID: stageID, Reason: "no process flow registered for class"}).Error())
		entity.CurrentStage = ""
		k.ScheduleEntityDeparture(entityID)
		return
	}
	stage, ok := flow[stageID]
	if !ok {
		k.diagnose("RoutingWarning", entityID, resourceID, (&RoutingError{EntityID: entityID, StageID: stageID, Reason: "unresolved stage"}).Error())
		entity.CurrentStage = ""
		k.ScheduleEntityDeparture(entityID)
		return
	}

	rule := rt.chooseRule(k, stage)
	if rule == nil || rule.Next == ExitStage {
		entity.CurrentStage = ""
		k.ScheduleEntityDeparture(entityID)
		return
	}

	next, ok := flow[rule.Next]
	if !ok {
		k.diagnose("RoutingWarning", entityID, resourceID, (&RoutingError{EntityID: entityID, StageID: stage.ID, Reason: "unresolved next stage " + rule.Next}).Error())
		entity.CurrentStage = ""
		k.ScheduleEntityDeparture(entityID)
		return
	}

	entity.CurrentStage = next.ID
	if next.ServiceDist != nil {
		entity.Attributes[AttrServiceDistribution] = next.ServiceDist
	}
	k.RouteEntityToResource(entityID, next.ResourceID)
}

func (rt *Router) chooseRule(k *Kernel, stage *Stage) *RoutingRule {
	if len(stage.Rules) == 0 {
		return nil
	}
	if len(stage.Rules) == 1 {
		return &stage.Rules[0]
	}
	probabilistic := false
	for i := range stage.Rules {
		if stage.Rules[i].Probability != nil {
			probabilistic = true
			break
		}
	}
	if !probabilistic {
		return &stage.Rules[0]
	}
	u := k.Streams().Stream(rng.StreamMain).Float64()
	cumulative := 0.0
	for i := range stage.Rules {
		p := 0.0
		if stage.Rules[i].Probability != nil {
			p = *stage.Rules[i].Probability
		}
		cumulative += p
		if u <= cumulative {
			return &stage.Rules[i]
		}
	}
	return &stage.Rules[len(stage.Rules)-1]
}
