package resolve

import (
	"fmt"

	"github.com/akmonengine/impulse2d/body"
	"github.com/akmonengine/impulse2d/lcp"
)

// Handling is the closed set of collision-handling strategies (spec §6,
// design note "enum dispatch"): a tagged variant dispatched directly by
// Handle, never by string comparison.
type Handling int

const (
	Simultaneous Handling = iota
	Hybrid
	SerialSeparate
	SerialGrouped
	SerialSeparateLastPass
	SerialGroupedLastPass
)

func (h Handling) String() string {
	switch h {
	case Simultaneous:
		return "simultaneous"
	case Hybrid:
		return "hybrid"
	case SerialSeparate:
		return "serial-separate"
	case SerialGrouped:
		return "serial-grouped"
	case SerialSeparateLastPass:
		return "serial-separate-lastpass"
	case SerialGroupedLastPass:
		return "serial-grouped-lastpass"
	default:
		return "unknown"
	}
}

func (h Handling) valid() bool {
	return h >= Simultaneous && h <= SerialGroupedLastPass
}

func (h Handling) serial() bool { return h != Simultaneous }
func (h Handling) hybrid() bool { return h == Hybrid }
func (h Handling) grouped() bool {
	return h == Hybrid || h == SerialGrouped || h == SerialGroupedLastPass
}
func (h Handling) lastPass() bool {
	return h == SerialSeparateLastPass || h == SerialGroupedLastPass
}

// Default tunable values, spec §6.
const (
	DefaultVelocityTol       = 0.5
	DefaultDistanceTol       = 0.01
	DefaultCollisionAccuracy = 0.6
	DefaultSmallVelocity     = 1e-5
	// MaxIterations is the absolute cap on serial-strategy iterations
	// before diagnostic escalation (spec §6).
	MaxIterations = 100000
)

// Totals accumulates caller-visible counters across resolution calls; the
// zero value is ready to use.
type Totals struct {
	Impulses int
}

// Params holds the runtime-settable, validated tuning parameters spec §6
// names. The zero value is not valid; use DefaultParams.
type Params struct {
	CollisionHandling Handling
	DistanceTol       float64
	VelocityTol       float64
	CollisionAccuracy float64
	RandomSeed        int64

	// PanicEnabled turns on the serial strategy's panic-relaxation
	// schedule (spec §4.6 step 5).
	PanicEnabled bool
	// EscalateIterationCeiling, if true, turns an iteration-ceiling
	// breach into a fatal IterationCeilingExceeded error instead of a
	// Diagnostic (spec §7: "implementations may escalate to fatal").
	EscalateIterationCeiling bool

	// Diagnostics, if non-nil, receives every non-fatal Diagnostic
	// (spec §7's "logged warning" / "diagnostic log" conditions).
	Diagnostics func(Diagnostic)

	// Solver is the LCP solver this package's strategies call into.
	Solver lcp.Solver
}

// DefaultParams returns Params with the spec's documented default
// tunables, SERIAL_GROUPED handling, and a ProjectedGaussSeidel solver.
func DefaultParams() Params {
	return Params{
		CollisionHandling: SerialGrouped,
		DistanceTol:       DefaultDistanceTol,
		VelocityTol:       DefaultVelocityTol,
		CollisionAccuracy: DefaultCollisionAccuracy,
		RandomSeed:        1,
		PanicEnabled:      true,
		Solver:            lcp.NewProjectedGaussSeidel(),
	}
}

// Validate checks every field spec §6 documents as validated, returning
// an InvalidConfiguration error describing the first violation found.
func (p Params) Validate() error {
	if !p.CollisionHandling.valid() {
		return &ResolutionError{Kind: InvalidConfiguration, Row: -1, Detail: fmt.Sprintf("collisionHandling %d out of range", p.CollisionHandling)}
	}
	if p.DistanceTol <= 0 {
		return &ResolutionError{Kind: InvalidConfiguration, Row: -1, Detail: "distanceTol must be > 0"}
	}
	if p.VelocityTol <= 0 {
		return &ResolutionError{Kind: InvalidConfiguration, Row: -1, Detail: "velocityTol must be > 0"}
	}
	if p.CollisionAccuracy <= 0 || p.CollisionAccuracy > 1 {
		return &ResolutionError{Kind: InvalidConfiguration, Row: -1, Detail: "collisionAccuracy must be in (0, 1]"}
	}
	if p.Solver == nil {
		return &ResolutionError{Kind: InvalidConfiguration, Row: -1, Detail: "solver must not be nil"}
	}
	return nil
}

// SetElasticity broadcasts a coefficient of restitution to every body in
// bodies (spec §6). It fails if bodies is empty or x is out of [0, 1].
func SetElasticity(bodies []*body.Body, x float64) error {
	if len(bodies) == 0 {
		return &ResolutionError{Kind: InvalidConfiguration, Row: -1, Detail: "setElasticity called with no bodies"}
	}
	if x < 0 || x > 1 {
		return &ResolutionError{Kind: InvalidConfiguration, Row: -1, Detail: "elasticity must be in [0, 1]"}
	}
	for _, b := range bodies {
		b.Elasticity = x
	}
	return nil
}
