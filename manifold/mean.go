package manifold

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
)

const (
	meanMaxIterations = 100
	meanTolerance     = 1e-12
)

// Mean computes the Riemannian center of mass of pts, the point minimizing
// the sum of squared geodesic distances. It runs the standard fixed-point
// gradient iteration x <- Exp_x(mean of Log_x(p_i)), starting at ref so that
// when several minimizers tie the result deterministically leans toward the
// supplied reference point. An empty point set returns a copy of ref.
func Mean(m Manifold, pts [][]float64, ref []float64) []float64 {
	x := clone(ref)
	if len(pts) == 0 {
		return x
	}
	for iter := 0; iter < meanMaxIterations; iter++ {
		g := m.Zero(x)
		for _, p := range pts {
			floats.Add(g, m.Log(x, p))
		}
		floats.Scale(1/float64(len(pts)), g)
		next := m.Exp(x, g)
		if m.Distance(x, next) < meanTolerance {
			return next
		}
		x = next
	}
	slog.Debug("Riemannian mean did not reach tolerance",
		"iterations", meanMaxIterations,
		"points", len(pts),
	)
	return x
}
