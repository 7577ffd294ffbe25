package solver

import "log/slog"

// Solver implements one iterative algorithm through three hooks. Initialize
// prepares the state, Step advances it by one iteration, Result extracts the
// final point. Step never runs before Initialize, and the stopping criterion
// is only consulted after a completed step.
type Solver interface {
	Initialize(p *Problem, o Options) error
	Step(p *Problem, o Options, iteration int) error
	Result(o Options) []float64
}

// observer is implemented by decorators that watch the solve loop.
type observer interface {
	Observe(p *Problem, iteration int)
}

// notify walks the decorator chain outside-in, dispatching the checkpoint to
// every observing wrapper.
func notify(p *Problem, o Options, iteration int) {
	for {
		if ob, ok := o.(observer); ok {
			ob.Observe(p, iteration)
		}
		d, ok := o.(decorated)
		if !ok {
			return
		}
		o = d.Inner()
	}
}

// Solve runs the generic solve loop: initialize, repeat step and observe
// until the stopping criterion fires, then tear down the decorators and
// return the result point. Termination by any criterion is a normal outcome;
// the reason is afterwards available from o.Criterion().Reason().
func Solve(p *Problem, s Solver, o Options) ([]float64, error) {
	if err := s.Initialize(p, o); err != nil {
		return nil, err
	}
	sc := o.Criterion()
	sc.Done(p, o, 0)
	notify(p, o, 0)

	slog.Debug("solver started", "proxes", p.NumProxes())

	i := 0
	for {
		i++
		if err := s.Step(p, o, i); err != nil {
			return nil, err
		}
		notify(p, o, i)
		if sc.Done(p, o, i) {
			break
		}
	}
	notify(p, o, -1)

	slog.Info("solver finished", "iterations", i, "reason", sc.Reason())
	return s.Result(o), nil
}
