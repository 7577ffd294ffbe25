package manifold

import (
	"math"
	"math/rand"
)

// Power is the product of count copies of an inner manifold. A point is one
// flat slice holding the coordinates of every copy at fixed offsets, so the
// i-th coordinate occupies p[i*d : (i+1)*d] for d = inner.Dim(). All
// operations apply coordinate-wise; the distance is the 2-norm of the
// per-coordinate distances and the inner product is the sum.
type Power struct {
	inner Manifold
	count int
}

// NewPower creates the product of count copies of m.
func NewPower(m Manifold, count int) Power {
	return Power{inner: m, count: count}
}

// Manifold returns the manifold each coordinate lives on.
func (pm Power) Manifold() Manifold { return pm.inner }

// Count returns the number of coordinates.
func (pm Power) Count() int { return pm.count }

// At returns the i-th coordinate of p as a subslice view.
func (pm Power) At(p []float64, i int) []float64 {
	d := pm.inner.Dim()
	return p[i*d : (i+1)*d]
}

// Coordinates splits p into its per-coordinate views.
func (pm Power) Coordinates(p []float64) [][]float64 {
	pts := make([][]float64, pm.count)
	for i := range pts {
		pts[i] = pm.At(p, i)
	}
	return pts
}

func (pm Power) Dim() int { return pm.count * pm.inner.Dim() }

func (pm Power) Exp(p, X []float64) []float64 {
	return pm.each2(p, X, pm.inner.Exp)
}

func (pm Power) Log(p, q []float64) []float64 {
	return pm.each2(p, q, pm.inner.Log)
}

func (pm Power) Geodesic(p, q []float64, t float64) []float64 {
	return pm.each2(p, q, func(a, b []float64) []float64 {
		return pm.inner.Geodesic(a, b, t)
	})
}

func (pm Power) Distance(p, q []float64) float64 {
	var sum float64
	for i := 0; i < pm.count; i++ {
		d := pm.inner.Distance(pm.At(p, i), pm.At(q, i))
		sum += d * d
	}
	return math.Sqrt(sum)
}

func (pm Power) Inner(p, X, Y []float64) float64 {
	var sum float64
	for i := 0; i < pm.count; i++ {
		sum += pm.inner.Inner(pm.At(p, i), pm.At(X, i), pm.At(Y, i))
	}
	return sum
}

func (pm Power) Project(q []float64) []float64 {
	out := make([]float64, pm.Dim())
	for i := 0; i < pm.count; i++ {
		copy(pm.At(out, i), pm.inner.Project(pm.At(q, i)))
	}
	return out
}

func (pm Power) Random(rng *rand.Rand) []float64 {
	out := make([]float64, pm.Dim())
	for i := 0; i < pm.count; i++ {
		copy(pm.At(out, i), pm.inner.Random(rng))
	}
	return out
}

func (pm Power) Zero(_ []float64) []float64 {
	return make([]float64, pm.Dim())
}

func (pm Power) each2(p, q []float64, op func(a, b []float64) []float64) []float64 {
	out := make([]float64, pm.Dim())
	for i := 0; i < pm.count; i++ {
		copy(pm.At(out, i), op(pm.At(p, i), pm.At(q, i)))
	}
	return out
}
