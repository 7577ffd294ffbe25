package solver

import (
	"math"
	"testing"

	"github.com/cwbudde/manifoldopt/manifold"
)

// softThreshold is the exact proximal map of |x| on the real line.
func softThreshold(lambda float64, x []float64) []float64 {
	v := x[0]
	shrunk := math.Max(math.Abs(v)-lambda, 0)
	return []float64{math.Copysign(shrunk, v)}
}

func TestCyclicProximalPointAbsoluteValue(t *testing.T) {
	e := manifold.NewEuclidean(1)
	p := NewProblem(e, func(x []float64) float64 { return math.Abs(x[0]) }, softThreshold)

	o := NewCyclicProximalPointOptions([]float64{3}, StopAfterIterations(10000))
	got, err := Solve(p, CyclicProximalPoint{}, o)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if math.Abs(got[0]) > 1e-8 {
		t.Errorf("minimizer = %g, want 0", got[0])
	}
}

func TestCyclicProximalPointSquaredDistanceTarget(t *testing.T) {
	e := manifold.NewEuclidean(2)
	target := []float64{2, -1}
	cost := func(x []float64) float64 {
		d := e.Distance(x, target)
		return d * d
	}
	// Exact proximal map of the squared distance: a geodesic step toward
	// the target with parameter 2λ/(1+2λ).
	prox := func(lambda float64, x []float64) []float64 {
		return e.Geodesic(x, target, 2*lambda/(1+2*lambda))
	}
	p := NewProblem(e, cost, prox)

	o := NewCyclicProximalPointOptions([]float64{-3, 4}, StopAfterIterations(1000))
	got, err := Solve(p, CyclicProximalPoint{}, o)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if d := e.Distance(got, target); d > 1e-3 {
		t.Errorf("distance to target = %g, want < 1e-3", d)
	}
}

func TestFixedRandomOrderIsCached(t *testing.T) {
	o := NewCyclicProximalPointOptions([]float64{0}, nil)
	o.Order = FixedRandomOrder
	o.Seed(42)

	first := o.order(5)
	second := o.order(5)
	if len(first) != 5 {
		t.Fatalf("order length = %d, want 5", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("order changed between iterations: %v vs %v", first, second)
		}
	}

	// A new solve call draws independently.
	if err := (CyclicProximalPoint{}).Initialize(nil, o); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if o.cachedOrder != nil {
		t.Error("cached order not cleared by Initialize")
	}
}

func TestRandomOrderVaries(t *testing.T) {
	o := NewCyclicProximalPointOptions([]float64{0}, nil)
	o.Order = RandomOrder
	o.Seed(42)

	first := o.order(6)
	varied := false
	for draw := 0; draw < 10 && !varied; draw++ {
		next := o.order(6)
		for i := range first {
			if next[i] != first[i] {
				varied = true
				break
			}
		}
	}
	if !varied {
		t.Error("ten random draws all produced the same order")
	}
}

func TestCyclicProximalPointRejectsForeignOptions(t *testing.T) {
	o := NewDouglasRachfordOptions([]float64{0}, nil)
	if err := (CyclicProximalPoint{}).Initialize(nil, o); err == nil {
		t.Error("Initialize accepted DouglasRachfordOptions")
	}
}

func TestCyclicProximalPointLinearOrder(t *testing.T) {
	o := NewCyclicProximalPointOptions([]float64{0}, nil)
	got := o.order(4)
	for i, j := range got {
		if i != j {
			t.Fatalf("linear order = %v, want identity", got)
		}
	}
}
