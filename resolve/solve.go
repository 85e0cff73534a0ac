package resolve

import "math"

// ResidualTolerance is the fixed tolerance spec §4.3 checks post-solve
// residuals against: joint rows must have |a[i]| within this, as must
// non-joint rows whose solved impulse is strictly positive.
const ResidualTolerance = 1e-4

// solve calls p.Solver, then independently verifies its residual per
// spec §4.3 and §7: a residual outside ResidualTolerance on a row that
// must hold exactly is fatal regardless of what the solver itself
// reported; a solver-reported failure that is nonetheless within
// tolerance is downgraded to a Diagnostic.
func solve(p Params, a [][]float64, j, b []float64, joint []bool, timeHint float64) error {
	status := p.Solver.Solve(a, j, b, joint, timeHint)

	n := len(b)
	worstRow := -1
	worstResidual := 0.0
	for i := 0; i < n; i++ {
		if !joint[i] && j[i] <= 0 {
			continue
		}
		residual := b[i]
		for k := 0; k < n; k++ {
			residual += a[i][k] * j[k]
		}
		if mag := math.Abs(residual); mag > worstResidual {
			worstResidual = mag
			worstRow = i
		}
	}

	if worstRow >= 0 && worstResidual > ResidualTolerance {
		return &ResolutionError{
			Kind:     SolverResidual,
			Row:      worstRow,
			Residual: worstResidual,
			TimeHint: timeHint,
			Detail:   "LCP solver residual outside tolerance",
		}
	}

	if status != -1 {
		report(p, Diagnostic{
			Kind:     SolverReportedFailure,
			Row:      status,
			Residual: worstResidual,
			Detail:   "solver reported failure but residual is within tolerance",
		})
	}
	return nil
}

// report delivers a Diagnostic to p.Diagnostics if the caller registered
// one; diagnostics are advisory and never alter control flow.
func report(p Params, d Diagnostic) {
	if p.Diagnostics != nil {
		p.Diagnostics(d)
	}
}
