package weather

import "math"

// Options tune the convergence of the engine. Both values are empirical
// defaults, not correctness constants.
type Options struct {
	TransitionSpeed float64 `yaml:"speed"`
	SnapTolerance   float64 `yaml:"snap_tolerance"`
}

func DefaultOptions() Options {
	return Options{
		TransitionSpeed: 2.0,
		SnapTolerance:   0.01,
	}
}

// Engine owns the live environment and pulls it toward the target bundle a
// fraction of the remaining distance each tick.
type Engine struct {
	table   *Table
	opts    Options
	current EnvironmentState
	target  string
	goal    EnvironmentState
}

func NewEngine(table *Table, opts Options) *Engine {
	def := DefaultOptions()
	if opts.TransitionSpeed <= 0 {
		opts.TransitionSpeed = def.TransitionSpeed
	}
	if opts.SnapTolerance <= 0 {
		opts.SnapTolerance = def.SnapTolerance
	}
	start, name, _ := table.Resolve(table.Default())
	return &Engine{
		table:   table,
		opts:    opts,
		current: start,
		target:  name,
		goal:    start,
	}
}

// SetTarget redirects convergence without touching the current state. An
// unknown name targets the table default and the lookup error is returned.
func (e *Engine) SetTarget(name string) error {
	st, resolved, err := e.table.Resolve(name)
	e.target = resolved
	e.goal = st
	return err
}

func (e *Engine) Target() string { return e.target }

func (e *Engine) Current() EnvironmentState { return e.current }

func (e *Engine) Converged() bool { return e.current == e.goal }

// Advance blends current toward the target by clamp(dt*speed, 0, 1) and snaps
// to the target once both light intensities are within tolerance. It reports
// whether the snap happened on this call.
func (e *Engine) Advance(dt float64) bool {
	if e.current == e.goal {
		return false
	}
	factor := clamp01(dt * e.opts.TransitionSpeed)
	next := e.current.Blend(e.goal, factor)

	if math.Abs(next.Ambient-e.goal.Ambient) < e.opts.SnapTolerance &&
		math.Abs(next.PointLight-e.goal.PointLight) < e.opts.SnapTolerance {
		e.current = e.goal
		return true
	}
	e.current = next
	return false
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
