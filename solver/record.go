package solver

import "fmt"

// RecordAction appends one value per iteration to a private ordered log.
// Reset clears the log; it runs at the setup checkpoint so a decorator can
// be reused across solve calls.
type RecordAction interface {
	Name() string
	Record(p *Problem, o Options, iteration int)
	Reset()
}

// RecordOptions decorates an inner Options with value recording. All state
// accessors are forwarded unchanged. Iteration 0 resets every action,
// positive iterations append, negative iterations are a no-op.
type RecordOptions struct {
	Options

	actions []RecordAction
}

// NewRecordOptions wraps o with the given record actions.
func NewRecordOptions(o Options, actions ...RecordAction) *RecordOptions {
	return &RecordOptions{Options: o, actions: actions}
}

// Inner returns the decorated state.
func (r *RecordOptions) Inner() Options { return r.Options }

// Observe dispatches one decoration checkpoint.
func (r *RecordOptions) Observe(p *Problem, iteration int) {
	switch {
	case iteration == 0:
		for _, a := range r.actions {
			a.Reset()
		}
	case iteration > 0:
		for _, a := range r.actions {
			a.Record(p, r.Options, iteration)
		}
	}
}

// Action returns the named record action, or nil when absent.
func (r *RecordOptions) Action(name string) RecordAction {
	for _, a := range r.actions {
		if a.Name() == name {
			return a
		}
	}
	return nil
}

// Recorded returns the name-to-action mapping of every composed record.
func (r *RecordOptions) Recorded() map[string]RecordAction {
	out := make(map[string]RecordAction, len(r.actions))
	for _, a := range r.actions {
		out[a.Name()] = a
	}
	return out
}

// DecorateRecord builds a RecordOptions from a mixed configuration list of
// string presets and explicit RecordAction values. Recognized presets:
// "Iteration", "Cost", "Iterate".
func DecorateRecord(o Options, config ...any) (*RecordOptions, error) {
	actions := make([]RecordAction, 0, len(config))
	for _, c := range config {
		switch v := c.(type) {
		case RecordAction:
			actions = append(actions, v)
		case string:
			a, err := recordPreset(v)
			if err != nil {
				return nil, err
			}
			actions = append(actions, a)
		default:
			return nil, fmt.Errorf("record config entry %v is neither a preset name nor a RecordAction", c)
		}
	}
	return NewRecordOptions(o, actions...), nil
}

func recordPreset(name string) (RecordAction, error) {
	switch name {
	case "Iteration":
		return &RecordIteration{}, nil
	case "Cost":
		return &RecordCost{}, nil
	case "Iterate":
		return &RecordIterate{}, nil
	}
	return nil, fmt.Errorf("unknown record preset %q", name)
}

// RecordCost logs the cost at each iteration.
type RecordCost struct {
	values []float64
}

func (r *RecordCost) Name() string { return "Cost" }

func (r *RecordCost) Record(p *Problem, o Options, _ int) {
	r.values = append(r.values, p.Cost(o.Iterate()))
}

func (r *RecordCost) Reset() { r.values = nil }

// Values returns a copy of the recorded costs in iteration order.
func (r *RecordCost) Values() []float64 {
	return append([]float64(nil), r.values...)
}

// RecordIteration logs the iteration numbers.
type RecordIteration struct {
	values []int
}

func (r *RecordIteration) Name() string { return "Iteration" }

func (r *RecordIteration) Record(_ *Problem, _ Options, iteration int) {
	r.values = append(r.values, iteration)
}

func (r *RecordIteration) Reset() { r.values = nil }

// Values returns a copy of the recorded iteration numbers.
func (r *RecordIteration) Values() []int {
	return append([]int(nil), r.values...)
}

// RecordIterate logs a copy of the iterate at each iteration.
type RecordIterate struct {
	values [][]float64
}

func (r *RecordIterate) Name() string { return "Iterate" }

func (r *RecordIterate) Record(_ *Problem, o Options, _ int) {
	r.values = append(r.values, clonePoint(o.Iterate()))
}

func (r *RecordIterate) Reset() { r.values = nil }

// Values returns the recorded iterates in iteration order.
func (r *RecordIterate) Values() [][]float64 {
	return append([][]float64(nil), r.values...)
}
