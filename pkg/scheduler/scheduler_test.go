package scheduler_test

import (
	"testing"

	"github.com/go-drift/engine/pkg/gestures"
	"github.com/go-drift/engine/pkg/graphics"
	"github.com/go-drift/engine/pkg/layer"
	"github.com/go-drift/engine/pkg/scheduler"
	"github.com/go-drift/engine/pkg/transaction"
)

type recordingDragTarget struct {
	events []gestures.RecognizerState
}

func (d *recordingDragTarget) OnDrag(state gestures.RecognizerState, event gestures.DragEvent) {
	d.events = append(d.events, state)
}

type recordingWheelTarget struct {
	events []gestures.RecognizerState
	deltas []graphics.Vector
}

func (w *recordingWheelTarget) OnWheel(state gestures.RecognizerState, event gestures.WheelEvent) {
	w.events = append(w.events, state)
	w.deltas = append(w.deltas, event.Delta)
}

// TestEnqueuedWheelEventsAreDispatchedOnTick guards against wheel events
// being silently dropped: a prior regression cleared the queued-wheel slice
// in drainGestures without ever invoking the target.
func TestEnqueuedWheelEventsAreDispatchedOnTick(t *testing.T) {
	root := layer.NewViewNode("Root")
	tx := &transaction.NullTransaction{}
	s := scheduler.NewFrameScheduler(root, tx)

	target := &recordingWheelTarget{}
	s.EnqueueWheel(target, gestures.StateBegan, gestures.WheelEvent{Delta: graphics.Vector{X: 0, Y: 10}})
	s.EnqueueWheel(target, gestures.StateEnded, gestures.WheelEvent{})

	s.Tick(graphics.FromMilliseconds(0))

	if len(target.events) != 2 {
		t.Fatalf("wheel target received %d events; want 2", len(target.events))
	}
	if target.events[0] != gestures.StateBegan || target.events[1] != gestures.StateEnded {
		t.Fatalf("wheel events out of order: %v", target.events)
	}
	if target.deltas[0].Y != 10 {
		t.Fatalf("first wheel event delta.Y = %v; want 10", target.deltas[0].Y)
	}
}

// TestEnqueuedDragEventsAreDispatchedInOrder exercises spec §4.10 step 1:
// queued gesture input is drained, in order, before anything else in the
// tick runs.
func TestEnqueuedDragEventsAreDispatchedInOrder(t *testing.T) {
	root := layer.NewViewNode("Root")
	tx := &transaction.NullTransaction{}
	s := scheduler.NewFrameScheduler(root, tx)

	target := &recordingDragTarget{}
	s.EnqueueDrag(target, gestures.StateBegan, gestures.DragEvent{})
	s.EnqueueDrag(target, gestures.StateChanged, gestures.DragEvent{})
	s.EnqueueDrag(target, gestures.StateEnded, gestures.DragEvent{})

	s.Tick(graphics.FromMilliseconds(0))

	want := []gestures.RecognizerState{gestures.StateBegan, gestures.StateChanged, gestures.StateEnded}
	if len(target.events) != len(want) {
		t.Fatalf("drag target received %d events; want %d", len(target.events), len(want))
	}
	for i, state := range want {
		if target.events[i] != state {
			t.Fatalf("event %d = %v; want %v", i, target.events[i], state)
		}
	}
}

// TestQueuedGesturesAreClearedAfterOneTick confirms a drained drag/wheel is
// not redelivered on the following tick.
func TestQueuedGesturesAreClearedAfterOneTick(t *testing.T) {
	root := layer.NewViewNode("Root")
	tx := &transaction.NullTransaction{}
	s := scheduler.NewFrameScheduler(root, tx)

	drag := &recordingDragTarget{}
	wheel := &recordingWheelTarget{}
	s.EnqueueDrag(drag, gestures.StateBegan, gestures.DragEvent{})
	s.EnqueueWheel(wheel, gestures.StateBegan, gestures.WheelEvent{})

	s.Tick(graphics.FromMilliseconds(0))
	s.Tick(graphics.FromMilliseconds(16))

	if len(drag.events) != 1 {
		t.Fatalf("drag target received %d events across two ticks; want 1 (not redelivered)", len(drag.events))
	}
	if len(wheel.events) != 1 {
		t.Fatalf("wheel target received %d events across two ticks; want 1 (not redelivered)", len(wheel.events))
	}
}

// TestReconcileAppliesQueuedTreeOps reproduces spec §4.10 step 4: queued
// insertions/removals are applied to the real layer tree on the next tick.
func TestReconcileAppliesQueuedTreeOps(t *testing.T) {
	root := layer.NewViewNode("Root")
	child := layer.NewViewNode("Child")

	tx := &transaction.NullTransaction{}
	s := scheduler.NewFrameScheduler(root, tx)
	s.EnqueueInsert(root, child, 0)

	s.Tick(graphics.FromMilliseconds(0))

	children := root.Children()
	if len(children) != 1 || children[0] != child.Layer {
		t.Fatalf("child was not reconciled into the tree")
	}

	s.EnqueueRemove(root, child)
	s.Tick(graphics.FromMilliseconds(16))

	if len(root.Children()) != 0 {
		t.Fatalf("child was not removed on reconcile")
	}
}

// TestVisibilityFiresOnVisibleOnceOnTransition reproduces spec §4.10 step 5:
// a node transitioning from not-visible to visible fires the on-visible
// callback exactly once, not on every subsequent tick it stays visible.
func TestVisibilityFiresOnVisibleOnceOnTransition(t *testing.T) {
	root := layer.NewViewNode("Root")
	root.Frame = graphics.Frame{X: 0, Y: 0, Width: 400, Height: 800}
	child := layer.NewViewNode("Child")
	child.Frame = graphics.Frame{X: 0, Y: 0, Width: 100, Height: 100}
	root.AddChild(child.Layer)

	tx := &transaction.NullTransaction{}
	s := scheduler.NewFrameScheduler(root, tx)
	s.Viewport = graphics.Frame{X: 0, Y: 0, Width: 400, Height: 800}

	visibleCount := 0
	s.SetOnVisible(func(n *layer.ViewNode) {
		if n == child {
			visibleCount++
		}
	})

	s.Tick(graphics.FromMilliseconds(0))
	s.Tick(graphics.FromMilliseconds(16))
	s.Tick(graphics.FromMilliseconds(32))

	if visibleCount != 1 {
		t.Fatalf("onVisible fired %d times across 3 ticks of sustained visibility; want 1", visibleCount)
	}
}

// TestVisibilityRefiresAfterLeavingAndReturning confirms the on-visible
// callback fires again once a node leaves the viewport and comes back.
func TestVisibilityRefiresAfterLeavingAndReturning(t *testing.T) {
	root := layer.NewViewNode("Root")
	root.Frame = graphics.Frame{X: 0, Y: 0, Width: 400, Height: 800}
	child := layer.NewViewNode("Child")
	child.Frame = graphics.Frame{X: 0, Y: 0, Width: 100, Height: 100}
	root.AddChild(child.Layer)

	tx := &transaction.NullTransaction{}
	s := scheduler.NewFrameScheduler(root, tx)
	s.Viewport = graphics.Frame{X: 0, Y: 0, Width: 400, Height: 800}

	visibleCount := 0
	s.SetOnVisible(func(n *layer.ViewNode) {
		if n == child {
			visibleCount++
		}
	})

	s.Tick(graphics.FromMilliseconds(0))
	child.Frame = graphics.Frame{X: 10000, Y: 10000, Width: 100, Height: 100}
	s.Tick(graphics.FromMilliseconds(16))
	child.Frame = graphics.Frame{X: 0, Y: 0, Width: 100, Height: 100}
	s.Tick(graphics.FromMilliseconds(32))

	if visibleCount != 2 {
		t.Fatalf("onVisible fired %d times across a leave/return cycle; want 2", visibleCount)
	}
}

// TestNeedsProcessFrameReflectsPendingWork reproduces spec §4.10's
// needsProcessFrame() gate: false with nothing queued, true once something
// is, false again after the tick that drains it (absent active animations
// or tickers).
func TestNeedsProcessFrameReflectsPendingWork(t *testing.T) {
	root := layer.NewViewNode("Root")
	tx := &transaction.NullTransaction{}
	s := scheduler.NewFrameScheduler(root, tx)

	if s.NeedsProcessFrame() {
		t.Fatalf("NeedsProcessFrame() = true with nothing queued")
	}

	s.MarkLayoutDirty()
	if !s.NeedsProcessFrame() {
		t.Fatalf("NeedsProcessFrame() = false after MarkLayoutDirty")
	}

	s.Tick(graphics.FromMilliseconds(0))
	if s.NeedsProcessFrame() {
		t.Fatalf("NeedsProcessFrame() = true after a tick drained the only pending work")
	}
}

// TestLayoutRunsBeforeTransactionFlush reproduces spec §4.10's fixed order:
// a layout solver's resulting frame changes are pushed to the transaction
// before the final flush, never after.
func TestLayoutRunsBeforeTransactionFlush(t *testing.T) {
	root := layer.NewViewNode("Root")
	tx := &transaction.NullTransaction{}
	s := scheduler.NewFrameScheduler(root, tx)
	s.Solver = func(r *layer.ViewNode) []scheduler.FrameChange {
		return []scheduler.FrameChange{{Node: r, Frame: graphics.Frame{Width: 100, Height: 100}}}
	}
	s.MarkLayoutDirty()

	s.Tick(graphics.FromMilliseconds(0))

	setFrameIdx, flushIdx := -1, -1
	for i, call := range tx.Log {
		if call == "setViewFrame" && setFrameIdx == -1 {
			setFrameIdx = i
		}
		if call == "flush" {
			flushIdx = i
		}
	}
	if setFrameIdx == -1 {
		t.Fatalf("setViewFrame was never called despite a dirty layout pass")
	}
	if flushIdx == -1 || flushIdx < setFrameIdx {
		t.Fatalf("flush (idx %d) did not happen after setViewFrame (idx %d)", flushIdx, setFrameIdx)
	}
}
