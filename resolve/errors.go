package resolve

import "fmt"

// ErrorKind classifies a ResolutionError per spec §7's error taxonomy.
type ErrorKind int

const (
	// InvalidConfiguration: a tuning parameter or call was out of its
	// documented domain (e.g. collisionAccuracy out of (0,1], setElasticity
	// on an empty body list). Raised with no state change.
	InvalidConfiguration ErrorKind = iota
	// InvariantViolation: an infinite-mass body had non-zero velocity, or
	// a unilateral contact's impulse was negative by more than
	// TinyImpulse. Indicates a bug upstream of this package.
	InvariantViolation
	// SolverResidual: the LCP solver's residual was outside tolerance on
	// a row that must hold exactly (a joint row, or a non-joint row with
	// a strictly positive impulse).
	SolverResidual
	// IterationCeilingExceeded: the serial strategy's iteration counter
	// exceeded its absolute ceiling without the system going quiet.
	IterationCeilingExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidConfiguration:
		return "invalid configuration"
	case InvariantViolation:
		return "invariant violation"
	case SolverResidual:
		return "solver residual outside tolerance"
	case IterationCeilingExceeded:
		return "iteration ceiling exceeded"
	default:
		return "unknown"
	}
}

// ResolutionError is the fatal-error type this package returns for every
// §7 "raised to caller" / "fatal" condition. Nothing in this package
// panics for a caller-triggerable condition; panics, if any, indicate a
// programming error inside this package itself.
type ResolutionError struct {
	Kind ErrorKind
	// Row is the offending contact index, or -1 when not applicable.
	Row int
	// Residual is the LCP residual magnitude that triggered a
	// SolverResidual error, or 0 otherwise.
	Residual float64
	// TimeHint is the time-hint value passed to the solver, carried for
	// post-mortem diagnostics on SolverResidual errors.
	TimeHint float64
	Detail   string
}

func (e *ResolutionError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("resolve: %s (row %d, residual %g, t=%g): %s", e.Kind, e.Row, e.Residual, e.TimeHint, e.Detail)
	}
	return fmt.Sprintf("resolve: %s: %s", e.Kind, e.Detail)
}

// DiagnosticKind classifies a non-fatal Diagnostic.
type DiagnosticKind int

const (
	// SolverReportedFailure: the solver's residual was within tolerance
	// but it still reported a failing row (spec §7: "logged warning,
	// execution continues").
	SolverReportedFailure DiagnosticKind = iota
	// PanicRelaxation: the serial strategy doubled velocityTol to force
	// progress on an ill-conditioned configuration (spec §7: "not an
	// error; a deliberate accuracy trade-off").
	PanicRelaxation
	// IterationCeilingReached: the serial strategy hit its iteration
	// ceiling; the caller's Params decide whether this also returns an
	// IterationCeilingExceeded error.
	IterationCeilingReached
)

// Diagnostic is a non-fatal condition reported through the Diagnostics
// callback a caller may register on Params, mirroring the teacher's
// EventListener callback-registration idiom (trigger.go) rather than a
// hard dependency on a logging library the retrieval pack never uses.
type Diagnostic struct {
	Kind     DiagnosticKind
	Row      int
	Residual float64
	Detail   string
}
