package manifold

import (
	"math"
	"math/rand"
	"testing"
)

func TestSphereExpLogRoundtrip(t *testing.T) {
	s := NewSphere(2)
	p := []float64{1, 0, 0}
	q := s.Project([]float64{1, 1, 0.5})

	X := s.Log(p, q)
	got := s.Exp(p, X)
	for i := range q {
		if math.Abs(got[i]-q[i]) > 1e-10 {
			t.Errorf("Exp(p, Log(p, q))[%d] = %f, want %f", i, got[i], q[i])
		}
	}
}

func TestSphereDistance(t *testing.T) {
	s := NewSphere(2)
	tests := []struct {
		name string
		p, q []float64
		want float64
	}{
		{"same point", []float64{1, 0, 0}, []float64{1, 0, 0}, 0},
		{"quarter arc", []float64{1, 0, 0}, []float64{0, 1, 0}, math.Pi / 2},
		{"antipodal", []float64{1, 0, 0}, []float64{-1, 0, 0}, math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if d := s.Distance(tt.p, tt.q); math.Abs(d-tt.want) > 1e-12 {
				t.Errorf("Distance = %f, want %f", d, tt.want)
			}
		})
	}
}

func TestSphereGeodesicStaysOnSphere(t *testing.T) {
	s := NewSphere(2)
	rng := rand.New(rand.NewSource(7))
	p := s.Random(rng)
	q := s.Random(rng)

	for _, tt := range []float64{0, 0.25, 0.5, 0.75, 1} {
		x := s.Geodesic(p, q, tt)
		var n float64
		for _, v := range x {
			n += v * v
		}
		if math.Abs(n-1) > 1e-10 {
			t.Errorf("Geodesic(%f) has squared norm %f, want 1", tt, n)
		}
	}

	// Midpoint is equidistant.
	mid := s.Geodesic(p, q, 0.5)
	if math.Abs(s.Distance(p, mid)-s.Distance(mid, q)) > 1e-10 {
		t.Errorf("midpoint not equidistant: %f vs %f", s.Distance(p, mid), s.Distance(mid, q))
	}
}

func TestSphereLogAntipodalIsZero(t *testing.T) {
	s := NewSphere(1)
	X := s.Log([]float64{1, 0}, []float64{-1, 0})
	for i, v := range X {
		if v != 0 {
			t.Errorf("Log to antipode [%d] = %f, want 0", i, v)
		}
	}
}
