package solver

import (
	"math"
	"testing"

	"github.com/cwbudde/manifoldopt/manifold"
)

func TestDouglasRachfordIdentityProxesFixedPoint(t *testing.T) {
	e := manifold.NewEuclidean(2)
	p := NewProblem(e, func(x []float64) float64 { return 0 }, identityProx, identityProx)

	tests := []struct {
		name   string
		alpha  float64
		lambda float64
	}{
		{"defaults", 0.9, 1.0},
		{"no relaxation", 0, 2.5},
		{"full step", 1, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := []float64{1.5, -2}
			o := NewDouglasRachfordOptions(start, StopAfterIterations(1))
			o.Alpha = func(int) float64 { return tt.alpha }
			o.Lambda = func(int) float64 { return tt.lambda }

			got, err := Solve(p, DouglasRachford{}, o)
			if err != nil {
				t.Fatalf("Solve failed: %v", err)
			}
			for i := range start {
				if math.Abs(got[i]-start[i]) > 1e-12 {
					t.Errorf("x[%d] = %f, want %f", i, got[i], start[i])
				}
				if math.Abs(o.Driver()[i]-start[i]) > 1e-12 {
					t.Errorf("t[%d] = %f, want %f", i, o.Driver()[i], start[i])
				}
			}
		})
	}
}

// squaredDistProx is the exact proximal map of d(x, target)^2 / 2.
func squaredDistProx(m manifold.Manifold, target []float64) ProximalMap {
	return func(lambda float64, x []float64) []float64 {
		return m.Geodesic(x, target, lambda/(1+lambda))
	}
}

func TestDouglasRachfordTwoWells(t *testing.T) {
	e := manifold.NewEuclidean(1)
	a := []float64{-2}
	b := []float64{4}
	cost := func(x []float64) float64 {
		da := e.Distance(x, a)
		db := e.Distance(x, b)
		return (da*da + db*db) / 2
	}
	p := NewProblem(e, cost, squaredDistProx(e, a), squaredDistProx(e, b))

	o := NewDouglasRachfordOptions([]float64{10}, nil)
	got, err := Solve(p, DouglasRachford{}, o)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	// The sum is minimized at the midpoint 1.
	if math.Abs(got[0]-1) > 1e-4 {
		t.Errorf("minimizer = %f, want 1", got[0])
	}
}

func TestDouglasRachfordRequiresTwoProxes(t *testing.T) {
	e := manifold.NewEuclidean(1)
	p := NewProblem(e, func(x []float64) float64 { return 0 }, identityProx)
	o := NewDouglasRachfordOptions([]float64{0}, nil)
	if err := (DouglasRachford{}).Initialize(p, o); err == nil {
		t.Error("Initialize accepted a single proximal map")
	}
}

func TestDouglasRachfordCustomReflect(t *testing.T) {
	e := manifold.NewEuclidean(1)
	p := NewProblem(e, func(x []float64) float64 { return 0 }, identityProx, identityProx)

	calls := 0
	o := NewDouglasRachfordOptions([]float64{1}, StopAfterIterations(3))
	o.Reflect = func(m manifold.Manifold, pivot, x []float64) []float64 {
		calls++
		return manifold.Reflect(m, pivot, x)
	}
	if _, err := Solve(p, DouglasRachford{}, o); err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	// Two reflections per step, three steps.
	if calls != 6 {
		t.Errorf("reflect calls = %d, want 6", calls)
	}
}

func TestParallelDouglasRachfordConsensus(t *testing.T) {
	inner := manifold.NewEuclidean(1)
	pm := manifold.NewPower(inner, 3)
	targets := []float64{0, 3, 6} // one per coordinate

	// First prox pulls each coordinate toward its own target, second
	// projects onto the diagonal (all coordinates equal to their mean).
	proxTargets := func(lambda float64, x []float64) []float64 {
		out := make([]float64, len(x))
		for i := range x {
			out[i] = (x[i] + lambda*targets[i]) / (1 + lambda)
		}
		return out
	}
	proxDiagonal := func(_ float64, x []float64) []float64 {
		mean := (x[0] + x[1] + x[2]) / 3
		return []float64{mean, mean, mean}
	}
	cost := func(x []float64) float64 {
		var sum float64
		for i := range x {
			d := x[i] - targets[i]
			sum += d * d / 2
		}
		return sum
	}
	p := NewProblem(pm, cost, proxTargets, proxDiagonal)

	o := NewParallelDouglasRachfordOptions(pm, []float64{10, 10, 10}, StopAfterIterations(300))
	got, err := Solve(p, DouglasRachford{}, o)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("reported iterate has %d coordinates, want 1 (component manifold)", len(got))
	}
	// Consensus minimizer is the mean of the targets.
	if math.Abs(got[0]-3) > 1e-3 {
		t.Errorf("consensus = %f, want 3", got[0])
	}
}

func TestParallelDouglasRachfordRequiresPowerManifold(t *testing.T) {
	e := manifold.NewEuclidean(2)
	p := NewProblem(e, func(x []float64) float64 { return 0 }, identityProx, identityProx)
	o := NewDouglasRachfordOptions([]float64{0, 0}, nil)
	o.Parallel = true
	if err := (DouglasRachford{}).Initialize(p, o); err == nil {
		t.Error("Initialize accepted a non-product manifold in parallel mode")
	}
}
