package impulse2d

import (
	"unsafe"

	"github.com/akmonengine/impulse2d/body"
	"github.com/akmonengine/impulse2d/resolve"
)

// uintptrOf returns b's pointer value as an integer, used only to give
// makePairKey a total order over bodies so (a, b) and (b, a) normalize
// to the same key; mirrors the teacher's own makePairKey in trigger.go.
func uintptrOf(b *body.Body) uintptr {
	return uintptr(unsafe.Pointer(b))
}

// EventType distinguishes the event variants Events can emit.
type EventType uint8

const (
	CollisionEnter EventType = iota
	CollisionStay
	CollisionExit
	OnSleep
	OnWake
)

// Event is implemented by every concrete event type Events emits.
type Event interface {
	Type() EventType
}

type CollisionEnterEvent struct{ BodyA, BodyB *body.Body }

func (e CollisionEnterEvent) Type() EventType { return CollisionEnter }

type CollisionStayEvent struct{ BodyA, BodyB *body.Body }

func (e CollisionStayEvent) Type() EventType { return CollisionStay }

type CollisionExitEvent struct{ BodyA, BodyB *body.Body }

func (e CollisionExitEvent) Type() EventType { return CollisionExit }

type SleepEvent struct{ Body *body.Body }

func (e SleepEvent) Type() EventType { return OnSleep }

type WakeEvent struct{ Body *body.Body }

func (e WakeEvent) Type() EventType { return OnWake }

// EventListener is a callback registered against one EventType.
type EventListener func(Event)

type pairKey struct {
	bodyA, bodyB *body.Body
}

// makePairKey normalizes a pair so (a, b) and (b, a) hash identically,
// ordering by pointer value rather than by whichever body a detector
// happened to list first.
func makePairKey(a, b *body.Body) pairKey {
	if uintptrOf(b) < uintptrOf(a) {
		a, b = b, a
	}
	return pairKey{bodyA: a, bodyB: b}
}

// Events tracks collision enter/stay/exit transitions across steps and
// broadcasts sleep/wake transitions, the way the teacher's trigger.go
// does for its (here dropped) trigger-volume events.
type Events struct {
	listeners map[EventType][]EventListener
	buffer    []Event

	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool

	sleepStates map[*body.Body]bool
}

// NewEvents returns an Events ready to use.
func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 64),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
		sleepStates:         make(map[*body.Body]bool),
	}
}

// Subscribe registers listener to fire whenever an event of eventType is
// emitted.
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordActivePairs marks every contact's body pair as active for this
// substep; called once per substep, before resolve.Handle.
func (e *Events) recordActivePairs(contacts []*resolve.Contact) {
	for _, c := range contacts {
		e.currentActivePairs[makePairKey(c.PrimaryBody, c.NormalBody)] = true
	}
}

// forget drops every pair-tracking and sleep-tracking entry referencing
// body, called when a body leaves the world.
func (e *Events) forget(b *body.Body) {
	delete(e.sleepStates, b)
	for pair := range e.previousActivePairs {
		if pair.bodyA == b || pair.bodyB == b {
			delete(e.previousActivePairs, pair)
		}
	}
	for pair := range e.currentActivePairs {
		if pair.bodyA == b || pair.bodyB == b {
			delete(e.currentActivePairs, pair)
		}
	}
}

// flush compares this step's active pairs against the previous step's to
// emit Enter/Stay/Exit events, reconciles sleep state, and dispatches
// every buffered event to its listeners. Called once per Step, after all
// substeps.
func (e *Events) flush(bodies []*body.Body) {
	e.processCollisionEvents()
	e.processSleepEvents(bodies)

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}

func (e *Events) processCollisionEvents() {
	for pair := range e.currentActivePairs {
		if pair.bodyA.IsSleeping && pair.bodyB.IsSleeping {
			continue
		}
		if e.previousActivePairs[pair] {
			e.buffer = append(e.buffer, CollisionStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		} else {
			e.buffer = append(e.buffer, CollisionEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}
	for pair := range e.previousActivePairs {
		if !e.currentActivePairs[pair] {
			e.buffer = append(e.buffer, CollisionExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

func (e *Events) processSleepEvents(bodies []*body.Body) {
	for _, b := range bodies {
		wasAsleep, tracked := e.sleepStates[b]
		if !tracked {
			e.sleepStates[b] = b.IsSleeping
			continue
		}
		if !wasAsleep && b.IsSleeping {
			e.buffer = append(e.buffer, SleepEvent{Body: b})
			e.sleepStates[b] = true
		} else if wasAsleep && !b.IsSleeping {
			e.buffer = append(e.buffer, WakeEvent{Body: b})
			e.sleepStates[b] = false
		}
	}
}
