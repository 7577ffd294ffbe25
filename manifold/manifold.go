// Package manifold defines the geometry contract the solvers build on and
// provides a few reference geometries. Points and tangent vectors are flat
// float64 slices whose length is fixed per manifold; structured spaces
// (products) encode their coordinates at fixed offsets within one slice.
package manifold

import (
	"math"
	"math/rand"
)

// Manifold supplies the geometric operations used by the solvers.
// Implementations must treat point and vector arguments as read-only and
// return freshly allocated slices.
type Manifold interface {
	// Dim returns the length of the coordinate representation of points
	// and tangent vectors.
	Dim() int

	// Exp evaluates the exponential map at p in direction X.
	Exp(p, X []float64) []float64

	// Log evaluates the logarithmic map, i.e. the tangent vector at p
	// pointing toward q with length Distance(p, q).
	Log(p, q []float64) []float64

	// Geodesic evaluates the shortest geodesic from p to q at parameter t,
	// with t=0 yielding p and t=1 yielding q.
	Geodesic(p, q []float64, t float64) []float64

	// Distance returns the geodesic distance between p and q.
	Distance(p, q []float64) float64

	// Inner returns the Riemannian inner product of tangent vectors X and Y
	// at p.
	Inner(p, X, Y []float64) float64

	// Project maps an ambient coordinate vector onto the manifold.
	Project(q []float64) []float64

	// Random draws a point from the given source.
	Random(rng *rand.Rand) []float64

	// Zero returns the zero tangent vector at p.
	Zero(p []float64) []float64
}

// Norm returns the Riemannian norm of the tangent vector X at p.
func Norm(m Manifold, p, X []float64) float64 {
	return math.Sqrt(m.Inner(p, X, X))
}

// Reflect reflects x at the pivot point: it travels the geodesic from x
// through the pivot for the same distance again, Exp_pivot(-Log_pivot(x)).
func Reflect(m Manifold, pivot, x []float64) []float64 {
	X := m.Log(pivot, x)
	for i := range X {
		X[i] = -X[i]
	}
	return m.Exp(pivot, X)
}

func clone(p []float64) []float64 {
	return append([]float64(nil), p...)
}
