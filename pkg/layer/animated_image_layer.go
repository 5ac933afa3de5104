package layer

import "github.com/go-drift/engine/pkg/graphics"

// animatedImageAnimationKey is the reserved AnimationMap key an
// AnimatedImageLayer registers its per-frame driver under.
const animatedImageAnimationKey = "__animatedImage"

// AnimatedImageApplier receives (currentTime, totalDuration) on every frame
// change, in place of the original's dynamic-downcast listener dispatch
// (Open Question iii): a typed callback avoids any runtime type-assertion
// on the listener, since Go has no safe dynamic-cast equivalent worth
// reaching for here.
type AnimatedImageApplier func(currentTime, totalDuration graphics.Duration)

// imageAnimation is the graphics.Animation that advances an
// AnimatedImageLayer's current-time every frame, per spec §4.8.
type imageAnimation struct {
	owner *AnimatedImageLayer
}

func (a *imageAnimation) Run(l *graphics.Layer, delta graphics.Duration) bool {
	a.owner.advance(delta)
	return false // an image animation never "completes" on its own; Cancel stops it.
}
func (a *imageAnimation) Cancel(l *graphics.Layer)  {}
func (a *imageAnimation) Complete(l *graphics.Layer) {}
func (a *imageAnimation) AddCompletion(cb func(didComplete bool)) {}

// AnimatedImageLayer plays an animated image's frames forward over a
// clamped play window [Start, End], looping or not, at AdvanceRate x
// real time.
type AnimatedImageLayer struct {
	*ViewNode

	TotalDuration graphics.Duration
	Start, End    graphics.Duration
	Loop          bool
	AdvanceRate   float64

	current  graphics.Duration
	listener AnimatedImageApplier
}

// NewAnimatedImageLayer constructs a layer playing [0, totalDuration] at a
// 1x advance rate.
func NewAnimatedImageLayer(totalDuration graphics.Duration) *AnimatedImageLayer {
	return &AnimatedImageLayer{
		ViewNode:      NewViewNode("AnimatedImageLayer"),
		TotalDuration: totalDuration,
		Start:         0,
		End:           totalDuration,
		AdvanceRate:   1,
	}
}

// SetListener installs the frame-change callback.
func (a *AnimatedImageLayer) SetListener(fn AnimatedImageApplier) { a.listener = fn }

// CurrentTime returns the current playback position.
func (a *AnimatedImageLayer) CurrentTime() graphics.Duration { return a.current }

// SetPlayWindow clamps playback to [start, end], clamped in turn to
// [0, TotalDuration].
func (a *AnimatedImageLayer) SetPlayWindow(start, end graphics.Duration) {
	if start < 0 {
		start = 0
	}
	if end > a.TotalDuration {
		end = a.TotalDuration
	}
	if end < start {
		end = start
	}
	a.Start, a.End = start, end
	if a.current < start || a.current > end {
		a.current = start
		a.notify()
	}
}

// Attach registers the per-frame animation driver under the reserved
// animation key, but only if the layer is attached to a live root and its
// advance rate is non-zero, per spec §4.8.
func (a *AnimatedImageLayer) Attach() {
	if !a.IsAttached() || a.AdvanceRate == 0 {
		return
	}
	a.Animations[animatedImageAnimationKey] = &imageAnimation{owner: a}
}

// Detach removes the per-frame animation driver.
func (a *AnimatedImageLayer) Detach() {
	delete(a.Animations, animatedImageAnimationKey)
}

func (a *AnimatedImageLayer) advance(delta graphics.Duration) {
	if a.AdvanceRate == 0 {
		return
	}
	step := graphics.Duration(float64(delta) * a.AdvanceRate)
	window := a.End - a.Start
	if window <= 0 {
		a.current = a.Start
		a.notify()
		return
	}

	next := a.current + step
	if a.Loop {
		offset := (next - a.Start) % window
		if offset < 0 {
			offset += window
		}
		a.current = a.Start + offset
	} else {
		if next < a.Start {
			next = a.Start
		}
		if next > a.End {
			next = a.End
		}
		a.current = next
	}
	a.notify()
}

func (a *AnimatedImageLayer) notify() {
	if a.listener != nil {
		a.listener(a.current, a.TotalDuration)
	}
}
