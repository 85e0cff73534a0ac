// Package impulse2d is the thin ambient simulation loop around the
// resolution core: it owns a body list, steps gravity integration, calls
// package detect to produce contacts, hands them to package resolve, and
// does sleep/event bookkeeping the core itself never touches.
package impulse2d

import (
	"github.com/akmonengine/impulse2d/body"
	"github.com/akmonengine/impulse2d/detect"
	"github.com/akmonengine/impulse2d/resolve"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultWorkers is the worker count World falls back to when Workers is
// left at its zero value.
const DefaultWorkers = 1

// World owns every body in a simulation and steps them forward in time.
type World struct {
	Bodies []*body.Body

	// Gravity is a constant linear acceleration applied to every movable,
	// awake body each substep (m/s^2); sleeping bodies are not integrated.
	Gravity mgl64.Vec2

	// Substeps divides each Step call into this many equal sub-intervals,
	// matching the teacher's fixed-substep integration loop.
	Substeps int
	Workers  int

	Params resolve.Params
	Totals resolve.Totals

	Grid *detect.SpatialGrid

	Events Events
}

// NewWorld returns a World ready to step, with DefaultParams, a single
// substep, and a spatial grid sized for cellSize/numCells.
func NewWorld(cellSize float64, numCells int) *World {
	return &World{
		Substeps: 1,
		Params:   resolve.DefaultParams(),
		Grid:     detect.NewSpatialGrid(cellSize, numCells),
		Events:   NewEvents(),
	}
}

// AddBody adds a body to the world.
func (w *World) AddBody(b *body.Body) {
	w.Bodies = append(w.Bodies, b)
}

// RemoveBody removes a body from the world and clears any event-tracking
// state referencing it.
func (w *World) RemoveBody(b *body.Body) {
	for i, existing := range w.Bodies {
		if existing == b {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			break
		}
	}
	w.Events.forget(b)
}

// Step advances the simulation by dt seconds, split into w.Substeps equal
// sub-intervals: integrate gravity, detect contacts, resolve them,
// reconcile sleep state, then flush this step's events.
func (w *World) Step(dt float64) error {
	workers := max(DefaultWorkers, w.Workers)
	h := dt / float64(w.Substeps)

	for i := 0; i < w.Substeps; i++ {
		w.integrate(h, workers)

		contacts := detect.FindContacts(w.Bodies, w.Grid, workers)
		w.Events.recordActivePairs(contacts)

		if _, err := resolve.Handle(contacts, &w.Totals, w.Params); err != nil {
			return err
		}

		w.trySleep(h)
	}

	w.Events.flush(w.Bodies)
	return nil
}

func (w *World) integrate(h float64, workers int) {
	task(workers, w.Bodies, func(b *body.Body) {
		if !b.Movable() || b.IsSleeping {
			return
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Mul(h))
		b.Transform.Position = b.Transform.Position.Add(b.Velocity.Mul(h))
		b.Transform.Angle += b.AngularVelocity * h
	})
}

// trySleep is intentionally sequential (per-body state mutation this
// light is not worth a worker-pool's synchronization overhead, same
// rationale as the teacher's own trySleep).
func (w *World) trySleep(h float64) {
	for _, b := range w.Bodies {
		b.TrySleep(h, 0.5, 0.05)
	}
}
