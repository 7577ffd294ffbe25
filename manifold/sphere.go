package manifold

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Sphere is the unit sphere S^n embedded in R^{n+1}. Points are unit vectors,
// tangent vectors at p are orthogonal to p, and geodesics are great circles.
type Sphere struct {
	n int
}

// NewSphere creates S^n, represented by n+1 ambient coordinates.
func NewSphere(n int) Sphere {
	return Sphere{n: n}
}

func (s Sphere) Dim() int { return s.n + 1 }

func (s Sphere) Exp(p, X []float64) []float64 {
	theta := floats.Norm(X, 2)
	if theta < 1e-15 {
		return clone(p)
	}
	q := clone(p)
	floats.Scale(math.Cos(theta), q)
	floats.AddScaled(q, math.Sin(theta)/theta, X)
	return s.Project(q)
}

// Log returns the tangent vector at p toward q. For antipodal q the shortest
// geodesic is not unique and the zero vector is returned.
func (s Sphere) Log(p, q []float64) []float64 {
	c := clampUnit(floats.Dot(p, q))
	theta := math.Acos(c)
	v := clone(q)
	floats.AddScaled(v, -c, p)
	nv := floats.Norm(v, 2)
	if nv < 1e-15 {
		return make([]float64, len(p))
	}
	floats.Scale(theta/nv, v)
	return v
}

func (s Sphere) Geodesic(p, q []float64, t float64) []float64 {
	X := s.Log(p, q)
	floats.Scale(t, X)
	return s.Exp(p, X)
}

func (s Sphere) Distance(p, q []float64) float64 {
	return math.Acos(clampUnit(floats.Dot(p, q)))
}

func (s Sphere) Inner(_, X, Y []float64) float64 {
	return floats.Dot(X, Y)
}

func (s Sphere) Project(q []float64) []float64 {
	p := clone(q)
	n := floats.Norm(p, 2)
	if n > 0 {
		floats.Scale(1/n, p)
	}
	return p
}

func (s Sphere) Random(rng *rand.Rand) []float64 {
	p := make([]float64, s.n+1)
	for i := range p {
		p[i] = rng.NormFloat64()
	}
	return s.Project(p)
}

func (s Sphere) Zero(_ []float64) []float64 {
	return make([]float64, s.n+1)
}

func clampUnit(c float64) float64 {
	return math.Max(-1, math.Min(1, c))
}
