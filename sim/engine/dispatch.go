package engine

import "github.com/queuesim/desim/sim/rng"

// ArrivalPayload carries everything needed to create and route a new
// entity at an Arrival event (§4.6).
type ArrivalPayload struct {
	ClassName       string
	FirstStageID    string // "" if the class has no process flow (departs immediately)
	FirstResourceID string // "" if FirstStageID is ""
	ServiceDist     *Distribution

	// OnProcessed, if set, is invoked after the arriving entity has been
	// created and routed, with the arrival time — arrival sources use this
	// to schedule their own continuation (§4.6 design note: self-
	// rescheduling event chain rather than a pre-materialized horizon).
	OnProcessed func(k *Kernel, arrivalTime float64)
}

// dispatch is the single function the kernel uses to interpret every event
// kind — a closed tagged variant with no open class hierarchy (§9).
func (k *Kernel) dispatch(e *Event) {
	switch e.Kind() {
	case EventArrival:
		k.handleArrival(e)
	case EventStartService:
		k.handleStartService(e)
	case EventEndService:
		k.handleEndService(e)
	case EventDeparture:
		k.handleDeparture(e)
	case EventResourceAvailable:
		k.handleResourceAvailable(e)
	case EventStateChange:
		k.handleStateChange(e)
	}
}

func (k *Kernel) handleArrival(e *Event) {
	payload, _ := e.Payload().(*ArrivalPayload)
	if payload == nil {
		return
	}
	entity := newEntity(k.nextEntityID(payload.ClassName), payload.ClassName, k.now)
	k.entities[entity.ID] = entity
	k.entitiesCreated++
	k.TimePersistent("entities_in_system").Update(k.now, float64(len(k.entities)))
	k.trace("Arrival", entity.ID)

	if payload.FirstStageID != "" {
		entity.CurrentStage = payload.FirstStageID
		if payload.ServiceDist != nil {
			entity.Attributes[AttrServiceDistribution] = payload.ServiceDist
		}
		k.RouteEntityToResource(entity.ID, payload.FirstResourceID)
	} else {
		k.ScheduleEntityDeparture(entity.ID)
	}

	if payload.OnProcessed != nil {
		payload.OnProcessed(k, k.now)
	}
}

// RouteEntityToResource transitions entity into the wait queue of resource
// and attempts to start service immediately if capacity allows (§4.4, §4.5).
func (k *Kernel) RouteEntityToResource(entityID, resourceID string) error {
	entity, ok := k.entities[entityID]
	if !ok {
		return nil
	}
	r, ok := k.resIndex[resourceID]
	if !ok {
		k.diagnose("RoutingWarning", entityID, resourceID, (&RoutingError{EntityID: entityID, StageID: entity.CurrentStage, Reason: "unresolved resource " + resourceID}).Error())
		k.ScheduleEntityDeparture(entityID)
		return nil
	}
	entity.State = EntityWaiting
	entity.CurrentResource = resourceID
	entity.recordVisit(resourceID)
	r.Queue = append(r.Queue, entityID)
	r.QueueLength.Update(k.now, float64(len(r.Queue)))
	return k.TryStartServiceAtResource(resourceID)
}

// TryStartServiceAtResource pulls waiting entities off the queue while the
// resource has spare capacity, scheduling a StartService event for each.
func (k *Kernel) TryStartServiceAtResource(resourceID string) error {
	r, ok := k.resIndex[resourceID]
	if !ok {
		return nil
	}
	for r.CurrentLoad < r.Capacity && len(r.Queue) > 0 {
		entityID := r.Queue[0]
		r.Queue = r.Queue[1:]
		r.QueueLength.Update(k.now, float64(len(r.Queue)))
		r.CurrentLoad++
		r.InService[entityID] = true
		k.mustSchedule(NewEvent(EventStartService, k.now, entityID, resourceID, nil))
	}
	return nil
}

func (k *Kernel) handleStartService(e *Event) {
	entity, ok := k.entities[e.EntityID()]
	if !ok {
		return
	}
	wait := k.now - entity.CreatedAt - entity.TotalProcessing - entity.TotalTravel
	entity.TotalWait += wait
	entity.State = EntityProcessing
	k.recordIfWarm("entity_wait_time", wait)
	k.trace("StartService", entity.ID+"@"+e.ResourceID())

	dist, _ := entity.Attributes[AttrServiceDistribution].(*Distribution)
	duration, err := dist.Sample(k.streams.Stream(rng.StreamMain))
	if err != nil {
		duration = 0
	}
	k.mustSchedule(NewEvent(EventEndService, k.now+duration, e.EntityID(), e.ResourceID(), duration))
}

func (k *Kernel) handleEndService(e *Event) {
	entity, ok := k.entities[e.EntityID()]
	if !ok {
		return
	}
	duration, _ := e.Payload().(float64)
	entity.TotalProcessing += duration
	k.recordIfWarm("entity_service_time", duration)

	r := k.resIndex[e.ResourceID()]
	if r != nil {
		r.CurrentLoad--
		delete(r.InService, e.EntityID())
		r.BusyTime += duration
	}
	k.trace("EndService", entity.ID+"@"+e.ResourceID())

	if k.onServiceComplete != nil {
		k.onServiceComplete(k, e.EntityID(), e.ResourceID())
	} else {
		k.ScheduleEntityDeparture(e.EntityID())
	}

	if r != nil {
		k.TryStartServiceAtResource(r.ID)
	}
}

// ScheduleEntityDeparture schedules an immediate Departure event for
// entityID.
func (k *Kernel) ScheduleEntityDeparture(entityID string) error {
	return k.Schedule(NewEvent(EventDeparture, k.now, entityID, "", nil))
}

func (k *Kernel) handleDeparture(e *Event) {
	entity, ok := k.entities[e.EntityID()]
	if !ok {
		return
	}
	cycle := k.now - entity.CreatedAt
	k.recordIfWarm("entity_cycle_time", cycle)
	entity.State = EntityDeparted
	delete(k.entities, e.EntityID())
	k.entitiesDeparted++
	if k.now >= k.warmup {
		k.entitiesDepartedPostWarmup++
	}
	k.TimePersistent("entities_in_system").Update(k.now, float64(len(k.entities)))
	k.trace("Departure", entity.ID)
}

func (k *Kernel) handleResourceAvailable(e *Event) {
	k.TryStartServiceAtResource(e.ResourceID())
}

func (k *Kernel) handleStateChange(e *Event) {
	if fn, ok := e.Payload().(func(*Kernel)); ok {
		fn(k)
	}
}

func (k *Kernel) checkInvariants(e *Event) error {
	if !k.ValidateConservation() {
		return &InvariantError{
			Message: "entities_created != entities_departed + len(active)",
			Time:    k.now,
		}
	}
	if e.ResourceID() != "" {
		if r, ok := k.resIndex[e.ResourceID()]; ok {
			if r.CurrentLoad < 0 || r.CurrentLoad > r.Capacity {
				return &InvariantError{Message: "resource load out of bounds", Time: k.now, ResourceSnapshot: r}
			}
			if r.CurrentLoad != len(r.InService) {
				return &InvariantError{Message: "resource load does not match in-service set size", Time: k.now, ResourceSnapshot: r}
			}
		}
	}
	if e.EntityID() != "" {
		if entity, ok := k.entities[e.EntityID()]; ok {
			elapsed := k.now - entity.CreatedAt
			if entity.TotalWait+entity.TotalProcessing+entity.TotalTravel > elapsed+1e-3 {
				return &InvariantError{Message: "entity time components exceed elapsed time", Time: k.now, EntitySnapshot: entity}
			}
		}
	}
	return nil
}
