package lcp

import "math"

// ProjectedGaussSeidel solves the LCP by sweeping rows, projecting each
// unconstrained update onto j[i] >= 0 for non-joint rows and solving joint
// rows exactly (a[i] == 0). This generalizes the single-contact projection
// idiom used throughout this codebase's ancestry ("if lambda < 0, clamp to
// zero") from one row to a coupled n x n system, sweeping until the
// largest per-sweep change in j drops below Tolerance or MaxIterations is
// reached.
type ProjectedGaussSeidel struct {
	// MaxIterations bounds the number of full sweeps over all rows.
	MaxIterations int
	// Tolerance is both the sweep-convergence threshold (on the largest
	// per-sweep change in j) and the residual tolerance used to decide
	// whether Solve succeeded.
	Tolerance float64
}

// NewProjectedGaussSeidel returns a solver with reasonable defaults.
func NewProjectedGaussSeidel() *ProjectedGaussSeidel {
	return &ProjectedGaussSeidel{MaxIterations: 200, Tolerance: 1e-6}
}

func (s *ProjectedGaussSeidel) Solve(a [][]float64, j, b []float64, joint []bool, timeHint float64) int {
	n := len(b)
	if n == 0 {
		return NoFailure
	}
	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = 200
	}
	tol := s.Tolerance
	if tol <= 0 {
		tol = 1e-6
	}

	for i := range j {
		j[i] = 0
	}

	for iter := 0; iter < maxIter; iter++ {
		maxDelta := 0.0
		for i := 0; i < n; i++ {
			if a[i][i] == 0 {
				continue
			}
			sum := b[i]
			for k := 0; k < n; k++ {
				if k == i {
					continue
				}
				sum += a[i][k] * j[k]
			}
			next := -sum / a[i][i]
			if !joint[i] && next < 0 {
				next = 0
			}
			delta := math.Abs(next - j[i])
			if delta > maxDelta {
				maxDelta = delta
			}
			j[i] = next
		}
		if maxDelta < tol {
			break
		}
	}

	return worstRow(a, j, b, joint, tol)
}

// worstRow computes the post-solve residual a*j+b and returns the index of
// the row whose complementarity/equality condition is violated by the
// largest margin, or NoFailure if every row is within tol.
func worstRow(a [][]float64, j, b []float64, joint []bool, tol float64) int {
	n := len(b)
	worst := NoFailure
	worstMag := tol
	for i := 0; i < n; i++ {
		residual := b[i]
		for k := 0; k < n; k++ {
			residual += a[i][k] * j[k]
		}

		var violation float64
		if joint[i] {
			violation = math.Abs(residual)
		} else if j[i] > 0 {
			violation = math.Abs(residual)
		} else if residual < 0 {
			violation = -residual
		}

		if violation > worstMag {
			worstMag = violation
			worst = i
		}
	}
	return worst
}
