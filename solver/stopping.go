package solver

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/cwbudde/manifoldopt/manifold"
)

// StoppingCriterion decides when a solve call terminates. Done is evaluated
// once per completed iteration; calling it with iteration 0 is the reset
// signal and must clear all internal bookkeeping so an instance can be
// reused across solve calls. Reason reports why the criterion fired, or the
// empty string while it has not.
type StoppingCriterion interface {
	Done(p *Problem, o Options, iteration int) bool
	Reason() string
}

// afterIterations fires once a fixed iteration cap is reached.
type afterIterations struct {
	max    int
	reason string
}

// StopAfterIterations creates a criterion firing at iteration max and later.
func StopAfterIterations(max int) StoppingCriterion {
	return &afterIterations{max: max}
}

func (c *afterIterations) Done(_ *Problem, _ Options, iteration int) bool {
	if iteration == 0 {
		c.reason = ""
		return false
	}
	if iteration >= c.max {
		c.reason = fmt.Sprintf("reached the maximum of %d iterations", c.max)
		return true
	}
	return false
}

func (c *afterIterations) Reason() string { return c.reason }

// changeLess fires when the manifold distance between successive iterates
// drops below a tolerance.
type changeLess struct {
	tol    float64
	prev   []float64
	reason string
}

// StopWhenChangeLess creates a criterion firing when the distance between
// the current and previous iterate falls below tol.
func StopWhenChangeLess(tol float64) StoppingCriterion {
	return &changeLess{tol: tol}
}

func (c *changeLess) Done(p *Problem, o Options, iteration int) bool {
	if iteration == 0 {
		c.prev = nil
		c.reason = ""
		return false
	}
	x := o.Iterate()
	defer func() { c.prev = clonePoint(x) }()
	if c.prev == nil {
		return false
	}
	d := p.Manifold().Distance(c.prev, x)
	if d < c.tol {
		c.reason = fmt.Sprintf("iterate change %g fell below %g at iteration %d", d, c.tol, iteration)
		return true
	}
	return false
}

func (c *changeLess) Reason() string { return c.reason }

// gradientNormLess fires when the state exposes a gradient whose norm drops
// below a tolerance. States without the gradient capability never fire it.
type gradientNormLess struct {
	tol    float64
	reason string
}

// StopWhenGradientNormLess creates a criterion firing when the Riemannian
// norm of the state's (sub)gradient falls below tol. It requires the
// options to implement GradientOptions.
func StopWhenGradientNormLess(tol float64) StoppingCriterion {
	return &gradientNormLess{tol: tol}
}

func (c *gradientNormLess) Done(p *Problem, o Options, iteration int) bool {
	if iteration == 0 {
		c.reason = ""
		return false
	}
	g, ok := baseOptions(o).(GradientOptions)
	if !ok {
		return false
	}
	n := manifold.Norm(p.Manifold(), g.Iterate(), g.Gradient())
	if n < c.tol {
		c.reason = fmt.Sprintf("gradient norm %g fell below %g at iteration %d", n, c.tol, iteration)
		return true
	}
	return false
}

func (c *gradientNormLess) Reason() string { return c.reason }

// costStale fires after a number of consecutive iterations whose relative
// cost improvement stays below a threshold.
type costStale struct {
	patience        int
	threshold       float64
	bestCost        float64
	lastSignificant float64
	staleCount      int
	seen            int
	reason          string
}

// StopWhenCostStale creates a criterion firing once patience consecutive
// iterations each improve the cost by less than the given relative
// threshold (e.g. 0.001 for 0.1%).
func StopWhenCostStale(patience int, threshold float64) StoppingCriterion {
	c := &costStale{patience: patience, threshold: threshold}
	c.reset()
	return c
}

func (c *costStale) reset() {
	c.bestCost = math.Inf(1)
	c.lastSignificant = math.Inf(1)
	c.staleCount = 0
	c.seen = 0
	c.reason = ""
}

func (c *costStale) Done(p *Problem, o Options, iteration int) bool {
	if iteration == 0 {
		c.reset()
		return false
	}
	cost := p.Cost(o.Iterate())
	c.seen++
	if cost < c.bestCost {
		c.bestCost = cost
	}
	if c.seen == 1 {
		c.lastSignificant = cost
		return false
	}
	improvement := (c.lastSignificant - cost) / c.lastSignificant
	if improvement >= c.threshold {
		c.lastSignificant = cost
		c.staleCount = 0
		slog.Debug("cost improvement detected",
			"cost", cost,
			"relative_improvement", improvement,
		)
		return false
	}
	c.staleCount++
	if c.staleCount >= c.patience {
		c.reason = fmt.Sprintf("cost stale for %d iterations at iteration %d (best %g)",
			c.staleCount, iteration, c.bestCost)
		return true
	}
	return false
}

func (c *costStale) Reason() string { return c.reason }

// allOf fires only once every sub-criterion has fired at some iteration.
type allOf struct {
	subs  []StoppingCriterion
	fired []bool
}

// StopWhenAll combines criteria; the combination fires only after each
// sub-criterion has independently fired.
func StopWhenAll(subs ...StoppingCriterion) StoppingCriterion {
	return &allOf{subs: subs, fired: make([]bool, len(subs))}
}

func (c *allOf) Done(p *Problem, o Options, iteration int) bool {
	if iteration == 0 {
		for i, s := range c.subs {
			s.Done(p, o, 0)
			c.fired[i] = false
		}
		return false
	}
	done := true
	for i, s := range c.subs {
		if s.Done(p, o, iteration) {
			c.fired[i] = true
		}
		done = done && c.fired[i]
	}
	return done
}

func (c *allOf) Reason() string { return joinReasons(c.subs) }

// anyOf fires as soon as one sub-criterion fires.
type anyOf struct {
	subs []StoppingCriterion
}

// StopWhenAny combines criteria; the combination fires as soon as one
// sub-criterion fires.
func StopWhenAny(subs ...StoppingCriterion) StoppingCriterion {
	return &anyOf{subs: subs}
}

func (c *anyOf) Done(p *Problem, o Options, iteration int) bool {
	done := false
	for _, s := range c.subs {
		if s.Done(p, o, iteration) {
			done = true
		}
	}
	return done && iteration != 0
}

func (c *anyOf) Reason() string { return joinReasons(c.subs) }

func joinReasons(subs []StoppingCriterion) string {
	parts := make([]string, 0, len(subs))
	for _, s := range subs {
		if r := s.Reason(); r != "" {
			parts = append(parts, r)
		}
	}
	return strings.Join(parts, "; ")
}
