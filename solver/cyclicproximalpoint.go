package solver

import (
	"fmt"
	"math/rand"
)

// EvalOrder selects the per-iteration visiting order of the proximal maps.
type EvalOrder int

const (
	// LinearOrder visits the maps in their declared order every iteration.
	LinearOrder EvalOrder = iota
	// RandomOrder draws a fresh permutation every iteration.
	RandomOrder
	// FixedRandomOrder draws one permutation on first use per solve call
	// and reuses it afterwards.
	FixedRandomOrder
)

// CyclicProximalPointOptions is the state of a Cyclic Proximal Point run.
type CyclicProximalPointOptions struct {
	// Lambda is the step-size schedule; it must be strictly decreasing for
	// convergence. Defaults to 1/i.
	Lambda func(iteration int) float64

	// Order selects the visiting order strategy.
	Order EvalOrder

	x           []float64
	criterion   StoppingCriterion
	rng         *rand.Rand
	cachedOrder []int
}

// NewCyclicProximalPointOptions creates the state for a run starting at x0.
// A nil criterion defaults to a 5000-iteration cap. The permutation source
// is deterministically seeded; use Seed for independent draws.
func NewCyclicProximalPointOptions(x0 []float64, sc StoppingCriterion) *CyclicProximalPointOptions {
	if sc == nil {
		sc = StopAfterIterations(5000)
	}
	return &CyclicProximalPointOptions{
		Lambda:    func(i int) float64 { return 1 / float64(i) },
		Order:     LinearOrder,
		x:         clonePoint(x0),
		criterion: sc,
		rng:       rand.New(rand.NewSource(1)),
	}
}

// Seed replaces the permutation source for the Random and FixedRandom
// orders.
func (o *CyclicProximalPointOptions) Seed(seed int64) {
	o.rng = rand.New(rand.NewSource(seed))
}

func (o *CyclicProximalPointOptions) Iterate() []float64           { return o.x }
func (o *CyclicProximalPointOptions) SetIterate(x []float64)       { o.x = clonePoint(x) }
func (o *CyclicProximalPointOptions) Criterion() StoppingCriterion { return o.criterion }

// order yields the visiting order for one outer iteration. The FixedRandom
// permutation is drawn lazily and cached until the next Initialize.
func (o *CyclicProximalPointOptions) order(m int) []int {
	switch o.Order {
	case RandomOrder:
		return o.rng.Perm(m)
	case FixedRandomOrder:
		if o.cachedOrder == nil {
			o.cachedOrder = o.rng.Perm(m)
		}
		return o.cachedOrder
	default:
		idx := make([]int, m)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
}

// CyclicProximalPoint minimizes a sum of objectives with known proximal
// maps by applying them cyclically with a shrinking step size.
type CyclicProximalPoint struct{}

func (CyclicProximalPoint) Initialize(_ *Problem, o Options) error {
	s, err := cyclicOptions(o)
	if err != nil {
		return err
	}
	// Separate solve calls draw the frozen order independently.
	s.cachedOrder = nil
	return nil
}

// Step applies every proximal map once, in this iteration's visiting order.
// Each application consumes the iterate produced by the previous one.
func (CyclicProximalPoint) Step(p *Problem, o Options, iteration int) error {
	s, err := cyclicOptions(o)
	if err != nil {
		return err
	}
	lambda := s.Lambda(iteration)
	x := s.x
	for _, j := range s.order(p.NumProxes()) {
		x, err = p.ProximalMap(lambda, x, j)
		if err != nil {
			return err
		}
	}
	s.x = x
	return nil
}

func (CyclicProximalPoint) Result(o Options) []float64 {
	return baseOptions(o).Iterate()
}

func cyclicOptions(o Options) (*CyclicProximalPointOptions, error) {
	s, ok := baseOptions(o).(*CyclicProximalPointOptions)
	if !ok {
		return nil, fmt.Errorf("cyclic proximal point requires CyclicProximalPointOptions, got %T", baseOptions(o))
	}
	return s, nil
}
