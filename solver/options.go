package solver

// Options is the mutable state owned by one solve call. Concrete variants
// add algorithm-specific fields; decorators wrap an inner Options and
// forward these accessors unchanged.
type Options interface {
	// Iterate returns the current iterate.
	Iterate() []float64

	// SetIterate replaces the current iterate.
	SetIterate(x []float64)

	// Criterion returns the stopping criterion governing the run.
	Criterion() StoppingCriterion
}

// GradientOptions is implemented by solver states that track a gradient or
// subgradient at the current iterate.
type GradientOptions interface {
	Options
	Gradient() []float64
}

// decorated is implemented by Options wrappers that delegate to an inner
// state.
type decorated interface {
	Inner() Options
}

// baseOptions strips all decorators and returns the innermost Options.
func baseOptions(o Options) Options {
	for {
		d, ok := o.(decorated)
		if !ok {
			return o
		}
		o = d.Inner()
	}
}

func clonePoint(x []float64) []float64 {
	return append([]float64(nil), x...)
}
