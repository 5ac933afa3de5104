package animation

import "github.com/go-drift/engine/pkg/graphics"

// TimingConfig configures a time-based animation: a fixed duration, an
// interpolation curve, and the applier invoked with the curved ratio.
type TimingConfig struct {
	Duration      graphics.Duration
	Curve         func(float64) float64
	Applier       func(layer *graphics.Layer, ratio float64)
	OnCompletion  func(didComplete bool)
}

type timeAnimation struct {
	duration    graphics.Duration
	elapsed     graphics.Duration
	curve       func(float64) float64
	applier     func(layer *graphics.Layer, ratio float64)
	completions []func(didComplete bool)
	started     bool
	finished    bool
}

// NewTimeAnimation builds a graphics.Animation that runs applier over
// duration, shaping progress with curve (LinearCurve if nil). Ported from
// Animation.cpp: the first Run call applies ratio 0 without consuming delta
// and returns false; every following call advances elapsed by delta, clamps
// to [0, duration], and applies curve(elapsed/duration); once elapsed
// reaches duration the applier is invoked one final time with ratio 1 and
// Run returns true.
func NewTimeAnimation(cfg TimingConfig) graphics.Animation {
	curve := cfg.Curve
	if curve == nil {
		curve = LinearCurve
	}
	a := &timeAnimation{duration: cfg.Duration, curve: curve, applier: cfg.Applier}
	if cfg.OnCompletion != nil {
		a.completions = append(a.completions, cfg.OnCompletion)
	}
	return a
}

func (a *timeAnimation) Run(layer *graphics.Layer, delta graphics.Duration) bool {
	if a.finished {
		return true
	}
	if !a.started {
		a.started = true
		a.apply(layer, 0)
		return false
	}

	a.elapsed += delta
	if a.elapsed < 0 {
		a.elapsed = 0
	}
	if a.elapsed >= a.duration {
		a.finish(layer, true)
		return true
	}

	ratio := 0.0
	if a.duration > 0 {
		ratio = float64(a.elapsed) / float64(a.duration)
	}
	a.apply(layer, a.curve(ratio))
	return false
}

func (a *timeAnimation) Cancel(layer *graphics.Layer) {
	a.finish(layer, false)
}

func (a *timeAnimation) Complete(layer *graphics.Layer) {
	a.finish(layer, true)
}

func (a *timeAnimation) AddCompletion(cb func(didComplete bool)) {
	if a.finished {
		return
	}
	a.completions = append(a.completions, cb)
}

func (a *timeAnimation) apply(layer *graphics.Layer, ratio float64) {
	if a.applier != nil {
		a.applier(layer, ratio)
	}
}

func (a *timeAnimation) finish(layer *graphics.Layer, didComplete bool) {
	if a.finished {
		return
	}
	if didComplete {
		a.apply(layer, 1)
	}
	a.finished = true
	a.applier = nil
	completions := a.completions
	a.completions = nil
	for _, cb := range completions {
		cb(didComplete)
	}
}
