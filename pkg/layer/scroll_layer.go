package layer

import (
	"github.com/go-drift/engine/pkg/gestures"
	"github.com/go-drift/engine/pkg/graphics"
	"github.com/go-drift/engine/pkg/scroller"
)

// ScrollListener lets a host observe and override scroll updates, per spec
// §4.7: the listener may override the new offset (OnScroll), and is
// notified when a drag begins, ends, and when a fling/bounce settles.
type ScrollListener interface {
	// OnScroll is called with the proposed new content offset; returning
	// ok=false applies point unmodified, ok=true substitutes override.
	OnScroll(point graphics.Point, velocity graphics.Vector) (override graphics.Point, ok bool)
	OnScrollEnd(point graphics.Point)
	OnDragStart(point graphics.Point, velocity graphics.Vector)
	OnDragEnding(point graphics.Point, velocity graphics.Vector) (override graphics.Point, ok bool)
}

// FadingEdge describes the two gradient bands (leading, trailing) a
// ScrollLayer fades its content edges with, per spec §4.7: each band's
// extent is clamp(offset, 0, fadeLength) or clamp(remaining, 0, fadeLength).
type FadingEdge struct {
	Length   float64
	Leading  float64
	Trailing float64
}

// update recomputes Leading/Trailing for an axis with the given offset,
// content extent, and viewport extent.
func (f *FadingEdge) update(offset, contentExtent, viewportExtent float64) {
	if f.Length <= 0 {
		f.Leading, f.Trailing = 0, 0
		return
	}
	f.Leading = clamp(offset, 0, f.Length)
	remaining := contentExtent - viewportExtent - offset
	f.Trailing = clamp(remaining, 0, f.Length)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ScrollPerfListener receives Resume/Pause notifications bracketing active
// scroll interaction, per spec §8 end-to-end scenario 6 ("scroll perf
// logger"): Resume fires on every drag-begin, Pause on every drag-end.
type ScrollPerfListener interface {
	Resume()
	Pause()
}

// ScrollLayer is a ViewNode that clips and scrolls a content layer, driven
// by a scroller.Scroller. Ported in shape from ScrollLayer.hpp: it owns a
// content-size, a content-offset, a scroll-gesture origin, per-axis
// bounce/paging flags, fading edges, and a scroller + listener pair.
type ScrollLayer struct {
	*ViewNode

	Content *graphics.Layer

	ContentSize  graphics.Size
	Horizontal   bool
	Bounces      bool
	PagingEnabled bool
	DismissKeyboardOnDrag bool

	FadingEdgeLength float64
	LeadingEdge      FadingEdge
	TrailingEdge     FadingEdge

	Listener     ScrollListener
	PerfListener ScrollPerfListener

	// RequestFocusHandler is invoked once per drag-begin when
	// DismissKeyboardOnDrag is set, letting the host drop keyboard focus,
	// per spec §8 end-to-end scenario 5.
	RequestFocusHandler func()

	scroller *scroller.Scroller
	gestureOrigin graphics.Point
}

// NewScrollLayer constructs a ScrollLayer with an empty content layer and
// an idle scroller for the given platform.
func NewScrollLayer(platform scroller.Platform) *ScrollLayer {
	node := NewViewNode("ScrollLayer")
	node.ClipToBounds = true
	content := graphics.NewLayer()
	node.AddChild(content)

	sl := &ScrollLayer{
		ViewNode: node,
		Content:  content,
		Bounces:  true,
	}
	sl.rebuildScroller(platform)
	return sl
}

func (s *ScrollLayer) rebuildScroller(platform scroller.Platform) {
	xBounds := scroller.Bounds{ContentExtent: s.ContentSize.Width, ViewportExtent: s.Frame.Width, Bounces: s.Bounces}
	yBounds := scroller.Bounds{ContentExtent: s.ContentSize.Height, ViewportExtent: s.Frame.Height, Bounces: s.Bounces}
	s.scroller = scroller.NewScroller(xBounds, yBounds, platform)
}

// ContentOffset returns the current scroll offset.
func (s *ScrollLayer) ContentOffset() graphics.Point {
	return s.scroller.Offset()
}

// SetContentSize updates the scrollable content extent and re-clamps the
// current offset against the new bounds.
func (s *ScrollLayer) SetContentSize(size graphics.Size) {
	s.ContentSize = size
	s.scroller.X.Bounds.ContentExtent = size.Width
	s.scroller.Y.Bounds.ContentExtent = size.Height
	s.applyContentOffset(s.scroller.Offset())
}

// SetFrame updates the viewport frame, re-clamping the offset and
// recomputing fading edges.
func (s *ScrollLayer) SetFrame(frame graphics.Frame) {
	s.Frame = frame
	s.scroller.X.Bounds.ViewportExtent = frame.Width
	s.scroller.Y.Bounds.ViewportExtent = frame.Height
	s.applyContentOffset(s.scroller.Offset())
}

// OnDrag handles a drag gesture frame, updating the content offset with
// rubber-banding during the drag and kicking off fling/paging/bounce
// transitions on release (spec §4.6 state table).
func (s *ScrollLayer) OnDrag(state gestures.RecognizerState, event gestures.DragEvent) {
	switch state {
	case gestures.StateBegan:
		s.gestureOrigin = s.scroller.Offset()
		s.scroller.X.BeginDrag()
		s.scroller.Y.BeginDrag()
		if s.DismissKeyboardOnDrag && s.RequestFocusHandler != nil {
			s.RequestFocusHandler()
		}
		if s.PerfListener != nil {
			s.PerfListener.Resume()
		}
		if s.Listener != nil {
			s.Listener.OnDragStart(s.scroller.Offset(), event.Velocity)
		}
	case gestures.StateChanged:
		target := graphics.Point{
			X: s.gestureOrigin.X - event.Translation.X,
			Y: s.gestureOrigin.Y - event.Translation.Y,
		}
		s.scroller.X.DragTo(target.X)
		s.scroller.Y.DragTo(target.Y)
		s.applyContentOffset(s.scroller.Offset())
	case gestures.StateEnded, gestures.StateCancelled:
		if s.PerfListener != nil {
			s.PerfListener.Pause()
		}
		velocity := event.Velocity
		if s.Listener != nil {
			if override, ok := s.Listener.OnDragEnding(s.scroller.Offset(), velocity); ok {
				s.scroller.X.AnimateTo(override.X, nil, 0)
				s.scroller.Y.AnimateTo(override.Y, nil, 0)
				return
			}
		}
		page := s.pagingExtent()
		s.scroller.X.EndDrag(velocity.X, s.PagingEnabled, page.Width)
		s.scroller.Y.EndDrag(velocity.Y, s.PagingEnabled, page.Height)
		if s.Listener != nil {
			s.Listener.OnScrollEnd(s.scroller.Offset())
		}
	}
}

func (s *ScrollLayer) pagingExtent() graphics.Size {
	return graphics.Size{Width: s.Frame.Width, Height: s.Frame.Height}
}

// OnWheel applies a wheel/trackpad scroll tick directly to the content
// offset (rubber-banded past the clamped extent, same as a drag), settling
// back into bounds once the gesture ends. Wheel input has no release
// velocity of its own, so it never starts a fling or paging snap.
func (s *ScrollLayer) OnWheel(state gestures.RecognizerState, event gestures.WheelEvent) {
	switch state {
	case gestures.StateBegan, gestures.StateChanged:
		s.scroller.X.DragTo(s.scroller.X.Offset() + event.Delta.X)
		s.scroller.Y.DragTo(s.scroller.Y.Offset() + event.Delta.Y)
		s.applyContentOffset(s.scroller.Offset())
	case gestures.StateEnded, gestures.StateCancelled:
		s.scroller.X.EndDrag(0, false, 0)
		s.scroller.Y.EndDrag(0, false, 0)
	}
}

// Tick advances the scroller's simulation by delta seconds, applying the
// resulting offset. Returns true while the scroller still has in-flight
// motion (fling, bounce, or programmatic animation).
func (s *ScrollLayer) Tick(delta float64) bool {
	active := s.scroller.Tick(delta)
	s.applyContentOffset(s.scroller.Offset())
	return active
}

// AnimateTo starts a programmatic scroll to target, per spec's
// "animating-to" state: cancels any in-flight scroll motion first.
func (s *ScrollLayer) AnimateTo(target graphics.Point, curve func(float64) float64, duration float64) {
	s.scroller.X.AnimateTo(target.X, curve, duration)
	s.scroller.Y.AnimateTo(target.Y, curve, duration)
}

func (s *ScrollLayer) applyContentOffset(point graphics.Point) {
	if s.Listener != nil {
		if override, ok := s.Listener.OnScroll(point, graphics.Vector{}); ok {
			point = override
		}
	}
	s.Content.BoundsOrigin = graphics.Point{X: -point.X, Y: -point.Y}
	s.updateEdgeGradient(point)
}

func (s *ScrollLayer) updateEdgeGradient(offset graphics.Point) {
	if s.FadingEdgeLength <= 0 {
		return
	}
	s.LeadingEdge.Length = s.FadingEdgeLength
	s.TrailingEdge.Length = s.FadingEdgeLength
	if s.Horizontal {
		s.LeadingEdge.update(offset.X, s.ContentSize.Width, s.Frame.Width)
		s.TrailingEdge.update(offset.X, s.ContentSize.Width, s.Frame.Width)
	} else {
		s.LeadingEdge.update(offset.Y, s.ContentSize.Height, s.Frame.Height)
		s.TrailingEdge.update(offset.Y, s.ContentSize.Height, s.Frame.Height)
	}
}
