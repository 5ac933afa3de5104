// Package scroller implements the five-state scroll interaction state
// machine (spec §4.6): idle, dragging, fling-decelerating, bouncing, and
// animating-to, built on top of package scrollphysics's platform decay/
// bounce curves.
package scroller

import (
	"math"

	"github.com/go-drift/engine/pkg/graphics"
	"github.com/go-drift/engine/pkg/scrollphysics"
)

// State is one of the scroller's five interaction states.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateFlingDecelerating
	StateBouncing
	StateAnimatingTo
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateFlingDecelerating:
		return "fling-decelerating"
	case StateBouncing:
		return "bouncing"
	case StateAnimatingTo:
		return "animating-to"
	default:
		return "unknown"
	}
}

// Platform selects which native fling-decay model a Scroller uses.
type Platform int

const (
	// PlatformAndroid uses the spline deceleration curve.
	PlatformAndroid Platform = iota
	// PlatformIOS uses the exponential-decay curve and carries momentum
	// across reversed-direction drags.
	PlatformIOS
)

// minFlingVelocity is the |v| (px/s) threshold below which a
// fling-decelerating scroller is considered at rest.
const minFlingVelocity = 15.0

// Bounds describes the scrollable extent on one axis: the content extent,
// the viewport extent, and whether bouncing past either edge is permitted.
type Bounds struct {
	ContentExtent float64
	ViewportExtent float64
	Bounces        bool
}

func (b Bounds) maxOffset() float64 {
	m := b.ContentExtent - b.ViewportExtent
	if m < 0 {
		return 0
	}
	return m
}

// clampedOffset clamps offset into [0, maxOffset], regardless of bouncing.
func (b Bounds) clampedOffset(offset float64) float64 {
	max := b.maxOffset()
	if offset < 0 {
		return 0
	}
	if offset > max {
		return max
	}
	return offset
}

// RubberBand applies the rubber-band resistance function used while
// dragging past a clamped extent: rubber(x, c, d) = c + sign(x-c)*(1 -
// 1/(|x-c|*0.55/d + 1))*d, so the result stays on the overscrolled side of
// c and never lies more than d past it.
func RubberBand(value, clamped, dim float64) float64 {
	if dim <= 0 {
		return clamped
	}
	diff := value - clamped
	if diff == 0 {
		return value
	}
	sign := 1.0
	if diff < 0 {
		sign = -1.0
	}
	resisted := (1 - 1/(math.Abs(diff)*0.55/dim+1)) * dim
	return clamped + sign*resisted
}

// PagingTarget computes the page-snap target offset: the hypothetical
// decelerated end-offset rounded to the nearest page, then clamped to
// "the current or a neighbor page" (spec §4.6) -- i.e. the page nearest
// currentOffset, one page before it, or one page after it. A rounded
// hypothetical offset further out than that is pulled back to the nearest
// of those three candidates.
func PagingTarget(currentOffset, flingEndOffset, page float64) float64 {
	if page <= 0 {
		return currentOffset
	}
	rounded := math.Round(flingEndOffset/page) * page
	currentPage := math.Round(currentOffset / page)
	lower := (currentPage - 1) * page
	upper := (currentPage + 1) * page
	if rounded < lower {
		return lower
	}
	if rounded > upper {
		return upper
	}
	return rounded
}

// Axis is a single scrollable axis's live simulation state.
type Axis struct {
	Bounds Bounds

	state  State
	offset float64

	carriedVelocity float64

	spline      *scrollphysics.SplineScrollPhysics
	bounce      *scrollphysics.SpringBouncePhysics
	bounceStart float64 // elapsed seconds at which bouncing began, for re-entrant starts

	flingVelocity float64
	flingElapsed  float64

	animateFrom, animateTo float64
	animateElapsed         float64
	animateDuration        float64
	animateCurve           func(float64) float64

	platform Platform
}

// NewAxis constructs an Axis for the given bounds and fling platform.
func NewAxis(bounds Bounds, platform Platform) *Axis {
	return &Axis{
		Bounds:   bounds,
		platform: platform,
		spline:   scrollphysics.NewSplineScrollPhysics(scrollphysics.DefaultSplineConfiguration),
	}
}

// State returns the axis's current state.
func (a *Axis) State() State { return a.state }

// Offset returns the current content offset.
func (a *Axis) Offset() float64 { return a.offset }

// BeginDrag transitions to dragging; the current offset is left unchanged.
func (a *Axis) BeginDrag() {
	a.state = StateDragging
}

// DragTo applies a drag-move: target is the raw (un-rubber-banded) offset
// the gesture's translation implies. Offsets past the clamped extent are
// rubber-banded when bouncing is enabled; otherwise hard-clamped.
func (a *Axis) DragTo(target float64) {
	clamped := a.Bounds.clampedOffset(target)
	if clamped == target || !a.Bounds.Bounces {
		a.offset = clamped
		return
	}
	a.offset = RubberBand(target, clamped, a.Bounds.ViewportExtent*0.8)
}

// pagingAnimationDuration is the time a paging snap takes to animate to its
// target offset once a release velocity has picked the destination page.
const pagingAnimationDuration = 0.3

// hypotheticalFlingDistance estimates how far an unconstrained fling at
// velocity would travel, using the axis's platform decay model. Paging uses
// this (not the actual fling simulation) purely to pick a destination page,
// per spec §4.6: "compute a hypothetical deceleration end-offset, round it
// to the nearest page."
func (a *Axis) hypotheticalFlingDistance(velocity float64) float64 {
	if a.platform == PlatformIOS {
		return scrollphysics.ExponentialScrollPhysics{}.FinalOffset(0, velocity, scrollphysics.DecelerationNormal)
	}
	return a.spline.FlingDistance(velocity, 1.0)
}

// EndDrag ends a drag with the gesture's release velocity (px/s). When
// pagingEnabled, every release (regardless of velocity) snaps to the
// nearest neighbor page rather than flinging freely, per spec §4.6's
// paging-snap note: the snap target is constrained to the current page's
// immediate neighbors even when the hypothetical fling would travel much
// further. Otherwise: velocities below minFlingVelocity settle in bounds;
// larger velocities transition into fling-decelerating.
func (a *Axis) EndDrag(velocity float64, pagingEnabled bool, page float64) {
	if pagingEnabled && page > 0 {
		if math.Abs(velocity) < minFlingVelocity {
			a.AnimateTo(PagingTarget(a.offset, a.offset, page), nil, 0)
			return
		}
		hypothetical := a.offset + a.hypotheticalFlingDistance(velocity)
		a.AnimateTo(PagingTarget(a.offset, hypothetical, page), nil, pagingAnimationDuration)
		return
	}
	if math.Abs(velocity) < minFlingVelocity {
		a.settleInBounds()
		return
	}
	a.startFling(velocity)
}

func (a *Axis) settleInBounds() {
	clamped := a.Bounds.clampedOffset(a.offset)
	if clamped != a.offset {
		a.startBounce(0, a.offset-clamped)
		return
	}
	a.state = StateIdle
}

func (a *Axis) startFling(velocity float64) {
	if a.platform == PlatformIOS {
		velocity += a.carriedVelocity
		a.carriedVelocity = scrollphysics.CarriedVelocity(velocity)
	}
	a.flingVelocity = velocity
	a.flingElapsed = 0
	a.state = StateFlingDecelerating
}

func (a *Axis) startBounce(startElapsed, displacement float64) {
	cfg := scrollphysics.NewSpringBouncePhysicsConfiguration(0.5, 95, 0.95)
	a.bounce = scrollphysics.NewSpringBouncePhysics(cfg, a.flingVelocity, displacement)
	a.bounceStart = startElapsed
	a.state = StateBouncing
}

// AnimateTo starts a programmatic scroll to target over duration seconds,
// shaped by curve (linear if nil).
// Cancels any in-flight scroll animation first.
func (a *Axis) AnimateTo(target float64, curve func(float64) float64, duration float64) {
	a.animateFrom = a.offset
	a.animateTo = target
	a.animateElapsed = 0
	a.animateDuration = duration
	a.animateCurve = curve
	a.state = StateAnimatingTo
}

// Tick advances the axis's simulation by delta seconds, mutating Offset and
// returning the new state. Only meaningful when not in StateDragging
// (dragging is driven by DragTo) or StateIdle (nothing to simulate).
func (a *Axis) Tick(delta float64) State {
	switch a.state {
	case StateFlingDecelerating:
		a.tickFling(delta)
	case StateBouncing:
		a.tickBounce(delta)
	case StateAnimatingTo:
		a.tickAnimateTo(delta)
	}
	return a.state
}

func (a *Axis) tickFling(delta float64) {
	a.flingElapsed += delta
	if a.platform == PlatformIOS {
		a.tickExponentialFling()
		return
	}
	a.tickSplineFling()
}

// tickSplineFling drives the Android spline decay curve, looking up the
// decelerated position/velocity at the current elapsed/duration ratio.
func (a *Axis) tickSplineFling() {
	friction := 1.0 // caller-tunable in a fuller build; spec default
	distance := a.spline.FlingDistance(a.flingVelocity, friction)
	duration := a.spline.FlingDuration(a.flingVelocity, friction)

	ratio := 1.0
	if duration > 0 {
		ratio = a.flingElapsed / duration
	}
	if ratio >= 1 {
		a.settleInBounds()
		return
	}

	newOffset := a.offset + distance*a.spline.Position(ratio)
	velocity := distance * a.spline.Velocity(ratio) / math.Max(duration, 1e-9)
	a.resolveFlingStep(newOffset, velocity)
}

// tickExponentialFling drives the iOS exponential-decay closed form:
// elapsedMs counts milliseconds into the fling, matching
// ExponentialScrollPhysics.Offset/Velocity's own convention.
func (a *Axis) tickExponentialFling() {
	physics := scrollphysics.ExponentialScrollPhysics{}
	elapsedMs := a.flingElapsed * 1000
	duration := physics.Duration(a.flingVelocity, scrollphysics.DecelerationNormal)
	if duration > 0 && elapsedMs >= duration {
		a.settleInBounds()
		return
	}

	newOffset := physics.Offset(a.offset, a.flingVelocity, elapsedMs, scrollphysics.DecelerationNormal)
	velocity := physics.Velocity(a.flingVelocity, elapsedMs, scrollphysics.DecelerationNormal)
	a.resolveFlingStep(newOffset, velocity)
}

// resolveFlingStep applies a decelerating fling's newly computed offset and
// instantaneous velocity: bounce off a clamped extent, settle idle once
// velocity decays below minFlingVelocity, or continue otherwise. Shared by
// both platforms' tickFling paths.
func (a *Axis) resolveFlingStep(newOffset, velocity float64) {
	clamped := a.Bounds.clampedOffset(newOffset)
	if clamped != newOffset {
		a.flingVelocity = velocity
		a.startBounce(a.flingElapsed, newOffset-clamped)
		a.offset = clamped
		return
	}
	if math.Abs(velocity) < minFlingVelocity {
		a.offset = newOffset
		a.state = StateIdle
		return
	}
	a.offset = newOffset
}

func (a *Axis) tickBounce(delta float64) {
	if a.bounce == nil {
		a.state = StateIdle
		return
	}
	a.bounceStart += delta
	result := a.bounce.Compute(a.bounceStart)
	clamped := a.Bounds.clampedOffset(a.offset)
	a.offset = clamped + result.Distance
	if result.Finished {
		a.offset = clamped
		a.carriedVelocity = 0
		a.bounce = nil
		a.state = StateIdle
	}
}

func (a *Axis) tickAnimateTo(delta float64) {
	a.animateElapsed += delta
	if a.animateDuration <= 0 || a.animateElapsed >= a.animateDuration {
		a.offset = a.animateTo
		a.state = StateIdle
		return
	}
	ratio := a.animateElapsed / a.animateDuration
	if a.animateCurve != nil {
		ratio = a.animateCurve(ratio)
	}
	a.offset = a.animateFrom + (a.animateTo-a.animateFrom)*ratio
}

// Scroller drives a pair of Axis simulations (x, y), wiring drag/fling/
// bounce/animate transitions across both independently. ScrollLayer owns a
// Scroller for its content offset.
type Scroller struct {
	X, Y *Axis
}

// NewScroller constructs a Scroller for the given per-axis bounds.
func NewScroller(xBounds, yBounds Bounds, platform Platform) *Scroller {
	return &Scroller{X: NewAxis(xBounds, platform), Y: NewAxis(yBounds, platform)}
}

// Offset returns the current (x, y) content offset.
func (s *Scroller) Offset() graphics.Point {
	return graphics.Point{X: s.X.Offset(), Y: s.Y.Offset()}
}

// Tick advances both axes by delta (seconds). Returns true if either axis
// is still animating (i.e. not idle/dragging).
func (s *Scroller) Tick(delta float64) bool {
	sx := s.X.Tick(delta)
	sy := s.Y.Tick(delta)
	return sx != StateIdle || sy != StateIdle
}
