package animation

import "github.com/go-drift/engine/pkg/graphics"

// SpringConfig configures a spring-based animation.
type SpringConfig struct {
	Force    SpringForce
	Position float64
	Velocity float64
	Target   float64
	Applier  func(layer *graphics.Layer, position float64)
}

type springAnimation struct {
	sim     *SpringSimulation
	applier func(layer *graphics.Layer, position float64)

	// pendingPosition mirrors the C++ _pendingPosition sentinel (DBL_MAX
	// meaning "no pending retarget"): nil means no retarget is queued. A
	// non-nil value is folded in on the next Run so a retarget issued
	// mid-frame takes effect atomically with that frame's step, the way
	// SpringAnimation.cpp defers _pendingPosition application to run().
	pendingPosition *float64

	started     bool
	finished    bool
	completions []func(didComplete bool)
}

// NewSpringAnimation builds a graphics.Animation driven by a critically (or
// under/over) damped spring, ported from SpringAnimation.cpp's run/cancel/
// complete contract: the first Run call applies the initial position
// without consuming delta and returns false; subsequent calls step the
// simulation by delta.Seconds() and apply the resulting position, returning
// true once the spring settles at equilibrium.
func NewSpringAnimation(cfg SpringConfig) graphics.Animation {
	return &springAnimation{
		sim:     NewSpringSimulation(cfg.Force, cfg.Position, cfg.Velocity, cfg.Target),
		applier: cfg.Applier,
	}
}

// Retarget changes the spring's destination without resetting position or
// velocity, preserving momentum. It takes effect on the next Run call; see
// pendingPosition.
func (a *springAnimation) Retarget(target float64) {
	t := target
	a.pendingPosition = &t
}

func (a *springAnimation) Run(layer *graphics.Layer, delta graphics.Duration) bool {
	if a.finished {
		return true
	}
	if !a.started {
		a.started = true
		a.apply(layer, a.sim.Position())
		return false
	}

	if a.pendingPosition != nil {
		// Half-step at the old target, retarget, half-step at the new
		// target: this is SpringAnimation.cpp's momentum-preserving
		// retarget, applied over the same delta as a normal step so a
		// retarget mid-flight doesn't visibly double-step.
		half := delta / 2
		a.sim.Step(half.Seconds())
		a.sim.SetTarget(*a.pendingPosition)
		a.pendingPosition = nil
		done := a.sim.Step(half.Seconds())
		a.apply(layer, a.sim.Position())
		if done {
			a.finish(layer, true)
			return true
		}
		return false
	}

	done := a.sim.Step(delta.Seconds())
	a.apply(layer, a.sim.Position())
	if done {
		a.finish(layer, true)
		return true
	}
	return false
}

func (a *springAnimation) Cancel(layer *graphics.Layer) {
	a.finish(layer, false)
}

func (a *springAnimation) Complete(layer *graphics.Layer) {
	a.finish(layer, true)
}

func (a *springAnimation) AddCompletion(cb func(didComplete bool)) {
	if a.finished {
		return
	}
	a.completions = append(a.completions, cb)
}

func (a *springAnimation) apply(layer *graphics.Layer, position float64) {
	if a.applier != nil {
		a.applier(layer, position)
	}
}

func (a *springAnimation) finish(layer *graphics.Layer, didComplete bool) {
	if a.finished {
		return
	}
	a.finished = true
	a.applier = nil
	completions := a.completions
	a.completions = nil
	for _, cb := range completions {
		cb(didComplete)
	}
}
