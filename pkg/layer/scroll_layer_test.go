package layer_test

import (
	"math"
	"testing"

	"github.com/go-drift/engine/pkg/gestures"
	"github.com/go-drift/engine/pkg/graphics"
	"github.com/go-drift/engine/pkg/layer"
	"github.com/go-drift/engine/pkg/scroller"
)

// runUntilIdle ticks a ScrollLayer's scroller to completion (fling, bounce,
// and/or programmatic animation settling), bailing out after a generous
// number of frames so a regression never hangs the test suite.
func runUntilIdle(t *testing.T, s *layer.ScrollLayer) {
	t.Helper()
	const dt = 1.0 / 60.0
	for i := 0; i < 600; i++ {
		if !s.Tick(dt) {
			return
		}
	}
	t.Fatalf("scroller never settled after 10 simulated seconds")
}

// TestScrollClampsAtExtent reproduces spec §8 end-to-end scenario 3: a
// vertical iOS-flavored scroll view, content 400x1600 over an 400x800
// viewport, dragged past its bottom edge with a fast release velocity,
// settles exactly at the clamped extent once every pending frame flushes.
func TestScrollClampsAtExtent(t *testing.T) {
	sl := layer.NewScrollLayer(scroller.PlatformIOS)
	sl.SetFrame(graphics.Frame{Width: 400, Height: 800})
	sl.SetContentSize(graphics.Size{Width: 400, Height: 1600})

	sl.OnDrag(gestures.StateBegan, gestures.DragEvent{})
	sl.OnDrag(gestures.StateChanged, gestures.DragEvent{
		Translation: graphics.Vector{X: 0, Y: -200},
		Velocity:    graphics.Vector{X: 0, Y: 1000},
	})
	sl.OnDrag(gestures.StateEnded, gestures.DragEvent{
		Translation: graphics.Vector{X: 0, Y: -400},
		Velocity:    graphics.Vector{X: 0, Y: 1000},
	})

	runUntilIdle(t, sl)

	offset := sl.ContentOffset()
	if math.Abs(offset.Y-800) > 0.5 {
		t.Fatalf("contentOffset.Y = %v; want 800 (clamped extent)", offset.Y)
	}
}

// TestPagingSnapToNeighborOnLargeVelocity reproduces spec §8 end-to-end
// scenario 4: paging is constrained to the current page's immediate
// neighbors even when the fling velocity implies an end-offset far beyond
// them.
func TestPagingSnapToNeighborOnLargeVelocity(t *testing.T) {
	sl := layer.NewScrollLayer(scroller.PlatformAndroid)
	sl.Horizontal = true
	sl.PagingEnabled = true
	sl.SetFrame(graphics.Frame{Width: 400, Height: 800})
	sl.SetContentSize(graphics.Size{Width: 2000, Height: 800})

	sl.OnDrag(gestures.StateBegan, gestures.DragEvent{})
	sl.OnDrag(gestures.StateChanged, gestures.DragEvent{
		Translation: graphics.Vector{X: -400, Y: 0},
		Velocity:    graphics.Vector{X: 8000, Y: 0},
	})
	sl.OnDrag(gestures.StateEnded, gestures.DragEvent{
		Translation: graphics.Vector{X: -400, Y: 0},
		Velocity:    graphics.Vector{X: 8000, Y: 0},
	})

	runUntilIdle(t, sl)

	offset := sl.ContentOffset()
	if math.Abs(offset.X-800) > 0.5 {
		t.Fatalf("contentOffset.X = %v; want 800 (snap constrained to the neighbor page, not further)", offset.X)
	}
}

// TestDragDismissKeyboardCountsOncePerDragBegin reproduces spec §8
// end-to-end scenario 5: each drag-begin requests focus exactly once when
// dismissKeyboardOnDrag is enabled, and never when it's disabled.
func TestDragDismissKeyboardCountsOncePerDragBegin(t *testing.T) {
	sl := layer.NewScrollLayer(scroller.PlatformIOS)
	sl.SetFrame(graphics.Frame{Width: 400, Height: 800})
	sl.SetContentSize(graphics.Size{Width: 400, Height: 1600})
	sl.DismissKeyboardOnDrag = true

	requestFocusCount := 0
	sl.RequestFocusHandler = func() { requestFocusCount++ }

	sl.OnDrag(gestures.StateBegan, gestures.DragEvent{})
	if requestFocusCount != 1 {
		t.Fatalf("requestFocusCount after first drag-begin = %d; want 1", requestFocusCount)
	}
	sl.OnDrag(gestures.StateEnded, gestures.DragEvent{})
	sl.OnDrag(gestures.StateBegan, gestures.DragEvent{})
	if requestFocusCount != 2 {
		t.Fatalf("requestFocusCount after second drag-begin = %d; want 2", requestFocusCount)
	}
}

func TestDragWithoutDismissKeyboardNeverRequestsFocus(t *testing.T) {
	sl := layer.NewScrollLayer(scroller.PlatformIOS)
	sl.SetFrame(graphics.Frame{Width: 400, Height: 800})
	sl.SetContentSize(graphics.Size{Width: 400, Height: 1600})
	sl.DismissKeyboardOnDrag = false

	requestFocusCount := 0
	sl.RequestFocusHandler = func() { requestFocusCount++ }

	sl.OnDrag(gestures.StateBegan, gestures.DragEvent{})
	sl.OnDrag(gestures.StateEnded, gestures.DragEvent{})
	sl.OnDrag(gestures.StateBegan, gestures.DragEvent{})
	if requestFocusCount != 0 {
		t.Fatalf("requestFocusCount = %d; want 0 with dismissKeyboardOnDrag disabled", requestFocusCount)
	}
}

// perfCounter implements layer.ScrollPerfListener, counting Resume/Pause
// calls for spec §8 end-to-end scenario 6 ("scroll perf logger").
type perfCounter struct {
	resumes, pauses int
}

func (p *perfCounter) Resume() { p.resumes++ }
func (p *perfCounter) Pause()  { p.pauses++ }

func TestScrollPerfLoggerResumePauseSequence(t *testing.T) {
	sl := layer.NewScrollLayer(scroller.PlatformIOS)
	sl.SetFrame(graphics.Frame{Width: 400, Height: 800})
	sl.SetContentSize(graphics.Size{Width: 400, Height: 1600})
	perf := &perfCounter{}
	sl.PerfListener = perf

	sl.OnDrag(gestures.StateBegan, gestures.DragEvent{})
	if perf.resumes != 1 || perf.pauses != 0 {
		t.Fatalf("after drag-begin: resumes=%d pauses=%d; want 1, 0", perf.resumes, perf.pauses)
	}
	sl.OnDrag(gestures.StateEnded, gestures.DragEvent{})
	if perf.resumes != 1 || perf.pauses != 1 {
		t.Fatalf("after drag-end: resumes=%d pauses=%d; want 1, 1", perf.resumes, perf.pauses)
	}
	sl.OnDrag(gestures.StateBegan, gestures.DragEvent{})
	if perf.resumes != 2 || perf.pauses != 1 {
		t.Fatalf("after second drag-begin: resumes=%d pauses=%d; want 2, 1", perf.resumes, perf.pauses)
	}
	sl.OnDrag(gestures.StateEnded, gestures.DragEvent{})
	if perf.resumes != 2 || perf.pauses != 2 {
		t.Fatalf("after second drag-end: resumes=%d pauses=%d; want 2, 2", perf.resumes, perf.pauses)
	}
}

func TestRubberBandIdentityAtClamp(t *testing.T) {
	for _, dim := range []float64{1, 10, 100, 640} {
		if v := scroller.RubberBand(50, 50, dim); v != 50 {
			t.Fatalf("RubberBand(clamp, clamp, %v) = %v; want clamp unchanged", dim, v)
		}
	}
}
