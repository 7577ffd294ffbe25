// Package solver implements iterative optimization over manifold-valued
// problems: a Problem/Options abstraction, composable stopping criteria,
// Debug/Record instrumentation decorators, a generic solve loop, and the
// Cyclic Proximal Point and Douglas-Rachford algorithms.
package solver

import (
	"errors"
	"fmt"

	"github.com/cwbudde/manifoldopt/manifold"
)

var (
	// ErrOutputCounts is returned when the declared output counts do not
	// line up with the proximal maps at Problem construction.
	ErrOutputCounts = errors.New("output counts length does not match proximal maps")

	// ErrProxIndex is returned when a proximal map index exceeds the
	// declared count.
	ErrProxIndex = errors.New("proximal map index out of range")
)

// CostFunc evaluates the objective at a point.
type CostFunc func(x []float64) float64

// ProximalMap evaluates prox_{lambda*phi}(x), the minimizer of
// phi(y) + d(x,y)^2/(2*lambda) over the manifold.
type ProximalMap func(lambda float64, x []float64) []float64

// Problem bundles a manifold, a cost function, and an ordered sequence of
// proximal maps. It is built once and immutable afterwards.
type Problem struct {
	m            manifold.Manifold
	cost         CostFunc
	proxes       []ProximalMap
	outputCounts []int
}

// NewProblem creates a Problem whose proximal maps each declare a single
// output.
func NewProblem(m manifold.Manifold, cost CostFunc, proxes ...ProximalMap) *Problem {
	counts := make([]int, len(proxes))
	for i := range counts {
		counts[i] = 1
	}
	p, _ := NewProblemWithCounts(m, cost, proxes, counts)
	return p
}

// NewProblemWithCounts creates a Problem with explicit per-map output counts.
// The counts must match the proximal maps one to one; a mismatch is a fatal
// configuration error.
func NewProblemWithCounts(m manifold.Manifold, cost CostFunc, proxes []ProximalMap, counts []int) (*Problem, error) {
	if len(counts) != len(proxes) {
		return nil, fmt.Errorf("%w: %d counts for %d maps", ErrOutputCounts, len(counts), len(proxes))
	}
	return &Problem{
		m:            m,
		cost:         cost,
		proxes:       append([]ProximalMap(nil), proxes...),
		outputCounts: append([]int(nil), counts...),
	}, nil
}

// Manifold returns the geometry the problem lives on.
func (p *Problem) Manifold() manifold.Manifold { return p.m }

// Cost evaluates the objective at x.
func (p *Problem) Cost(x []float64) float64 { return p.cost(x) }

// NumProxes returns the number of declared proximal maps.
func (p *Problem) NumProxes() int { return len(p.proxes) }

// ProximalMap evaluates the i-th proximal map at x with parameter lambda.
func (p *Problem) ProximalMap(lambda float64, x []float64, i int) ([]float64, error) {
	if i < 0 || i >= len(p.proxes) {
		return nil, fmt.Errorf("%w: index %d, declared %d", ErrProxIndex, i, len(p.proxes))
	}
	return p.proxes[i](lambda, x), nil
}

// OutputCounts returns the declared per-map output counts. The stepping
// logic does not consume them; they are preserved for callers.
func (p *Problem) OutputCounts() []int {
	return append([]int(nil), p.outputCounts...)
}
