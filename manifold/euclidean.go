package manifold

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Euclidean is flat R^n with the usual inner product. Geodesics are straight
// lines, so the exponential and logarithmic maps reduce to vector arithmetic.
type Euclidean struct {
	n int
}

// NewEuclidean creates R^n.
func NewEuclidean(n int) Euclidean {
	return Euclidean{n: n}
}

func (e Euclidean) Dim() int { return e.n }

func (e Euclidean) Exp(p, X []float64) []float64 {
	q := clone(p)
	floats.Add(q, X)
	return q
}

func (e Euclidean) Log(p, q []float64) []float64 {
	X := clone(q)
	floats.Sub(X, p)
	return X
}

func (e Euclidean) Geodesic(p, q []float64, t float64) []float64 {
	x := clone(p)
	floats.AddScaled(x, t, e.Log(p, q))
	return x
}

func (e Euclidean) Distance(p, q []float64) float64 {
	return floats.Distance(p, q, 2)
}

func (e Euclidean) Inner(_, X, Y []float64) float64 {
	return floats.Dot(X, Y)
}

func (e Euclidean) Project(q []float64) []float64 {
	return clone(q)
}

func (e Euclidean) Random(rng *rand.Rand) []float64 {
	p := make([]float64, e.n)
	for i := range p {
		p[i] = rng.NormFloat64()
	}
	return p
}

func (e Euclidean) Zero(_ []float64) []float64 {
	return make([]float64, e.n)
}
