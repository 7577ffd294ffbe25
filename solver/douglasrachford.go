package solver

import (
	"fmt"

	"github.com/cwbudde/manifoldopt/manifold"
)

// ReflectFunc reflects x at a pivot point. Any function satisfying the
// reflection contract may replace the default exp/log form.
type ReflectFunc func(m manifold.Manifold, pivot, x []float64) []float64

// DouglasRachfordOptions is the state of a Douglas-Rachford run. The
// recursion is driven by t; x is the reported result. In parallel mode the
// problem lives on a manifold.Power product, t is the full product state,
// and x is the Riemannian mean of the product coordinates on the component
// manifold.
type DouglasRachfordOptions struct {
	// Lambda is the proximal parameter schedule. Defaults to 1.0.
	Lambda func(iteration int) float64

	// Alpha is the relaxation schedule: the step moves t to the point at
	// parameter Alpha(i) along the geodesic toward the reflected iterate.
	// Defaults to 0.9.
	Alpha func(iteration int) float64

	// Reflect is the reflection operator. Defaults to manifold.Reflect.
	Reflect ReflectFunc

	// Parallel switches to the product-manifold variant.
	Parallel bool

	x         []float64
	t         []float64
	criterion StoppingCriterion
}

// NewDouglasRachfordOptions creates the state for a run starting at t0. A
// nil criterion defaults to a 300-iteration cap.
func NewDouglasRachfordOptions(t0 []float64, sc StoppingCriterion) *DouglasRachfordOptions {
	if sc == nil {
		sc = StopAfterIterations(300)
	}
	return &DouglasRachfordOptions{
		Lambda:    func(int) float64 { return 1.0 },
		Alpha:     func(int) float64 { return 0.9 },
		Reflect:   manifold.Reflect,
		x:         clonePoint(t0),
		t:         clonePoint(t0),
		criterion: sc,
	}
}

// NewParallelDouglasRachfordOptions creates the state for the parallel
// variant. t0 is a point on the product manifold the problem is posed on;
// the reported iterate starts at its first coordinate.
func NewParallelDouglasRachfordOptions(pm manifold.Power, t0 []float64, sc StoppingCriterion) *DouglasRachfordOptions {
	o := NewDouglasRachfordOptions(t0, sc)
	o.Parallel = true
	o.x = clonePoint(pm.At(t0, 0))
	return o
}

func (o *DouglasRachfordOptions) Iterate() []float64           { return o.x }
func (o *DouglasRachfordOptions) SetIterate(x []float64)       { o.x = clonePoint(x) }
func (o *DouglasRachfordOptions) Criterion() StoppingCriterion { return o.criterion }

// Driver returns the recursion driver t.
func (o *DouglasRachfordOptions) Driver() []float64 { return o.t }

// DouglasRachford minimizes the sum of two functions with known proximal
// maps by reflected alternating proximal steps with geodesic relaxation.
type DouglasRachford struct{}

func (DouglasRachford) Initialize(p *Problem, o Options) error {
	s, err := rachfordOptions(o)
	if err != nil {
		return err
	}
	if p.NumProxes() != 2 {
		return fmt.Errorf("douglas-rachford requires exactly 2 proximal maps, got %d", p.NumProxes())
	}
	if s.Parallel {
		if _, ok := p.Manifold().(manifold.Power); !ok {
			return fmt.Errorf("parallel douglas-rachford requires a power manifold, got %T", p.Manifold())
		}
	}
	return nil
}

// Step runs one reflect-prox-reflect update and relaxes t along the
// geodesic toward the doubly reflected point. In parallel mode the reported
// iterate is consolidated to the Riemannian mean of the product
// coordinates, tie-broken toward the previous reported iterate.
func (DouglasRachford) Step(p *Problem, o Options, iteration int) error {
	s, err := rachfordOptions(o)
	if err != nil {
		return err
	}
	m := p.Manifold()
	lambda := s.Lambda(iteration)

	pt, err := p.ProximalMap(lambda, s.t, 0)
	if err != nil {
		return err
	}
	r := s.Reflect(m, pt, s.t)
	q, err := p.ProximalMap(lambda, r, 1)
	if err != nil {
		return err
	}
	r2 := s.Reflect(m, q, r)
	s.t = m.Geodesic(s.t, r2, s.Alpha(iteration))

	if s.Parallel {
		pm := m.(manifold.Power)
		s.x = manifold.Mean(pm.Manifold(), pm.Coordinates(q), s.x)
	} else {
		s.x = clonePoint(q)
	}
	return nil
}

func (DouglasRachford) Result(o Options) []float64 {
	return baseOptions(o).Iterate()
}

func rachfordOptions(o Options) (*DouglasRachfordOptions, error) {
	s, ok := baseOptions(o).(*DouglasRachfordOptions)
	if !ok {
		return nil, fmt.Errorf("douglas-rachford requires DouglasRachfordOptions, got %T", baseOptions(o))
	}
	return s, nil
}
