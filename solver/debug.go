package solver

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// DebugAction prints one aspect of the solver state. Actions are invoked in
// order at every iteration i > 0 and write only to the decorator's writer.
type DebugAction interface {
	Act(w io.Writer, p *Problem, o Options, iteration int)
}

// DebugOptions decorates an inner Options with print instrumentation. It
// forwards all state accessors unchanged; the wrapped algorithm never sees
// the decoration. Observation checkpoints: iteration 0 prints the header,
// positive iterations run the action list, a negative iteration prints the
// footer with the termination reason.
type DebugOptions struct {
	Options

	actions []DebugAction
	w       io.Writer
	runID   string
}

// NewDebugOptions wraps o with the given actions writing to w.
func NewDebugOptions(o Options, w io.Writer, actions ...DebugAction) *DebugOptions {
	return &DebugOptions{
		Options: o,
		actions: actions,
		w:       w,
		runID:   uuid.New().String(),
	}
}

// Inner returns the decorated state.
func (d *DebugOptions) Inner() Options { return d.Options }

// RunID returns the identifier printed with this run's output.
func (d *DebugOptions) RunID() string { return d.runID }

// resettable is implemented by debug actions carrying cross-iteration
// state that must clear between solve calls.
type resettable interface {
	Reset()
}

// Observe dispatches one decoration checkpoint.
func (d *DebugOptions) Observe(p *Problem, iteration int) {
	switch {
	case iteration == 0:
		for _, a := range d.actions {
			if r, ok := a.(resettable); ok {
				r.Reset()
			}
		}
		fmt.Fprintf(d.w, "solve %s\n", d.runID)
	case iteration > 0:
		for _, a := range d.actions {
			a.Act(d.w, p, d.Options, iteration)
		}
		fmt.Fprintln(d.w)
	default:
		fmt.Fprintf(d.w, "solve %s finished: %s\n", d.runID, d.Criterion().Reason())
	}
}

// DecorateDebug builds a DebugOptions from a mixed configuration list of
// string presets and explicit DebugAction values. Recognized presets:
// "Iteration", "Cost", "Change", "Iterate".
func DecorateDebug(o Options, w io.Writer, config ...any) (*DebugOptions, error) {
	actions := make([]DebugAction, 0, len(config))
	for _, c := range config {
		switch v := c.(type) {
		case DebugAction:
			actions = append(actions, v)
		case string:
			a, err := debugPreset(v)
			if err != nil {
				return nil, err
			}
			actions = append(actions, a)
		default:
			return nil, fmt.Errorf("debug config entry %v is neither a preset name nor a DebugAction", c)
		}
	}
	return NewDebugOptions(o, w, actions...), nil
}

func debugPreset(name string) (DebugAction, error) {
	switch name {
	case "Iteration":
		return DebugIteration{}, nil
	case "Cost":
		return DebugCost{}, nil
	case "Change":
		return &DebugChange{}, nil
	case "Iterate":
		return DebugIterate{}, nil
	}
	return nil, fmt.Errorf("unknown debug preset %q", name)
}

// DebugIteration prints the iteration number.
type DebugIteration struct{}

func (DebugIteration) Act(w io.Writer, _ *Problem, _ Options, iteration int) {
	fmt.Fprintf(w, "# %d ", iteration)
}

// DebugCost prints the cost at the current iterate.
type DebugCost struct{}

func (DebugCost) Act(w io.Writer, p *Problem, o Options, _ int) {
	fmt.Fprintf(w, "F(x): %g ", p.Cost(o.Iterate()))
}

// DebugIterate prints the current iterate.
type DebugIterate struct{}

func (DebugIterate) Act(w io.Writer, _ *Problem, o Options, _ int) {
	fmt.Fprintf(w, "x: %v ", o.Iterate())
}

// DebugChange prints the distance to the iterate of the previous call. The
// previous iterate is private to the action.
type DebugChange struct {
	prev []float64
}

func (d *DebugChange) Act(w io.Writer, p *Problem, o Options, _ int) {
	x := o.Iterate()
	if d.prev != nil {
		fmt.Fprintf(w, "change: %g ", p.Manifold().Distance(d.prev, x))
	}
	d.prev = clonePoint(x)
}

// Reset clears the remembered iterate so a reused decorator does not
// measure the first change against the previous run.
func (d *DebugChange) Reset() { d.prev = nil }

// DebugEvery runs an inner action only every k-th iteration.
type DebugEvery struct {
	Action DebugAction
	K      int
}

func (d DebugEvery) Act(w io.Writer, p *Problem, o Options, iteration int) {
	if d.K > 0 && iteration%d.K == 0 {
		d.Action.Act(w, p, o, iteration)
	}
}

// Reset forwards to the wrapped action.
func (d DebugEvery) Reset() {
	if r, ok := d.Action.(resettable); ok {
		r.Reset()
	}
}
