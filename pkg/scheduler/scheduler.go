// Package scheduler drives the single-threaded cooperative frame tick: drain
// gesture input, advance animations, run layout, reconcile the view tree,
// compute visibility, and flush the view transaction, in that fixed order
// (spec §4.10). Grounded on the teacher's engine.Paint() frame pipeline
// (drain dispatch queue → tick → flush build → flush layout → flush
// semantics → flush paint) and layout.PipelineOwner's dirty-tracking,
// generalized from a widget-tree paint pipeline to the layer/attribute/
// scroll core.
package scheduler

import (
	"github.com/go-drift/engine/pkg/attributes"
	"github.com/go-drift/engine/pkg/gestures"
	"github.com/go-drift/engine/pkg/graphics"
	"github.com/go-drift/engine/pkg/layer"
	"github.com/go-drift/engine/pkg/transaction"
)

// FrameChange is one view-node's resolved frame after a layout pass, the
// scheduler's input to the setViewFrame transaction call.
type FrameChange struct {
	Node  *layer.ViewNode
	Frame graphics.Frame
}

// LayoutSolver runs a layout pass over root and reports every view-node
// whose frame changed as a result. Supplied by the host embedding the
// scheduler, since the concrete flexbox algorithm is layout-engine-specific
// and out of this package's scope; a nil solver simply means "no layout
// work is ever dirty," which is valid for a scheduler driving only
// scroll/animation layers with host-assigned frames.
type LayoutSolver func(root *layer.ViewNode) []FrameChange

// TreeOp is a queued view-tree mutation awaiting reconciliation.
type TreeOp struct {
	Parent *layer.ViewNode
	Child  *layer.ViewNode
	Index  int
	Insert bool // false = remove
}

// DragTarget receives gesture-recognized drag events, implemented by
// layer.ScrollLayer.
type DragTarget interface {
	OnDrag(state gestures.RecognizerState, event gestures.DragEvent)
}

// WheelTarget receives gesture-recognized wheel/trackpad events, implemented
// by layer.ScrollLayer.
type WheelTarget interface {
	OnWheel(state gestures.RecognizerState, event gestures.WheelEvent)
}

// Ticker advances a per-frame simulation (scroll physics, in practice) by
// deltaSeconds and reports whether it still has in-flight motion.
// layer.ScrollLayer implements this directly, since its fling/bounce/paging
// state machine runs outside the graphics.Animation/AnimationMap contract
// that drives per-layer property animations.
type Ticker interface {
	Tick(deltaSeconds float64) bool
}

type queuedDrag struct {
	target DragTarget
	state  gestures.RecognizerState
	event  gestures.DragEvent
}

type queuedWheel struct {
	target WheelTarget
	state  gestures.RecognizerState
	event  gestures.WheelEvent
}

// FrameScheduler is the single-threaded cooperative tick driver. Callers
// enqueue gesture input and tree mutations between ticks; Tick runs the
// six-step frame order.
type FrameScheduler struct {
	Root        *layer.ViewNode
	Viewport    graphics.Frame
	Transaction transaction.Transaction
	Solver      LayoutSolver

	lastTickTime graphics.Duration
	haveTicked   bool

	drags      []queuedDrag
	wheels     []queuedWheel
	treeOps    []TreeOp
	layoutDirty bool

	visible map[*layer.ViewNode]bool
	onVisible func(*layer.ViewNode)

	tickers       []Ticker
	tickersActive bool

	scope *attributes.ViewTransactionScope
}

// NewFrameScheduler constructs a scheduler rooted at root, flushing into tx.
func NewFrameScheduler(root *layer.ViewNode, tx transaction.Transaction) *FrameScheduler {
	return &FrameScheduler{
		Root:        root,
		Transaction: tx,
		visible:     make(map[*layer.ViewNode]bool),
		scope:       attributes.NewViewTransactionScope(),
	}
}

// SetOnVisible installs a callback fired the first time a node transitions
// to visible-in-viewport (spec §4.10 step 5: "transitioning to visible
// schedules an on-visible callback").
func (f *FrameScheduler) SetOnVisible(cb func(*layer.ViewNode)) { f.onVisible = cb }

// EnqueueDrag queues a drag gesture event targeting target, drained on the
// next Tick.
func (f *FrameScheduler) EnqueueDrag(target DragTarget, state gestures.RecognizerState, event gestures.DragEvent) {
	f.drags = append(f.drags, queuedDrag{target: target, state: state, event: event})
}

// EnqueueWheel queues a wheel gesture event targeting target, drained on the
// next Tick alongside queued drags (spec §6's onWheel(state, event) shape).
func (f *FrameScheduler) EnqueueWheel(target WheelTarget, state gestures.RecognizerState, event gestures.WheelEvent) {
	f.wheels = append(f.wheels, queuedWheel{target: target, state: state, event: event})
}

// RegisterTicker adds t to the set of per-frame simulations advanced
// during step 2 of every Tick, alongside layer property animations.
func (f *FrameScheduler) RegisterTicker(t Ticker) { f.tickers = append(f.tickers, t) }

// MarkLayoutDirty flags that a layout pass is needed on the next Tick.
func (f *FrameScheduler) MarkLayoutDirty() { f.layoutDirty = true }

// EnqueueInsert queues a child insertion for the next Tick's reconciliation
// step.
func (f *FrameScheduler) EnqueueInsert(parent, child *layer.ViewNode, index int) {
	f.treeOps = append(f.treeOps, TreeOp{Parent: parent, Child: child, Index: index, Insert: true})
}

// EnqueueRemove queues a child removal for the next Tick's reconciliation
// step.
func (f *FrameScheduler) EnqueueRemove(parent, child *layer.ViewNode) {
	f.treeOps = append(f.treeOps, TreeOp{Parent: parent, Child: child, Insert: false})
}

// NeedsProcessFrame reports whether any step of the next Tick has pending
// work, gating the host's render loop (spec §4.10: "needsProcessFrame() is
// true iff any of the above has work").
func (f *FrameScheduler) NeedsProcessFrame() bool {
	if len(f.drags) > 0 || len(f.wheels) > 0 || len(f.treeOps) > 0 || f.layoutDirty || f.tickersActive {
		return true
	}
	return f.hasActiveAnimations(f.Root)
}

func (f *FrameScheduler) hasActiveAnimations(node *layer.ViewNode) bool {
	if node == nil {
		return false
	}
	if node.HasActiveAnimations() {
		return true
	}
	for _, child := range node.Children() {
		if vn, ok := childViewNode(child); ok && f.hasActiveAnimations(vn) {
			return true
		}
	}
	return false
}

// childViewNode recovers the *layer.ViewNode wrapping a *graphics.Layer
// child, when the child was in fact constructed as part of a ViewNode
// (rather than a bare presentation-only Layer with no node identity).
// Layer children are stored as *graphics.Layer since Layer doesn't know
// about ViewNode (package layer depends on graphics, not the reverse); a
// host walking the tree typically tracks this association itself. This
// scheduler only needs it for the Root subtree, where every layer of
// interest is in fact backed by a ViewNode supplied through EnqueueInsert.
func childViewNode(l *graphics.Layer) (*layer.ViewNode, bool) {
	vn, ok := l.UserData.(*layer.ViewNode)
	return vn, ok
}

// Tick runs one frame at currentTime, in the fixed six-step order (spec
// §4.10). delta is computed from the previous Tick's currentTime; the
// first Tick call always uses delta 0.
func (f *FrameScheduler) Tick(currentTime graphics.Duration) {
	var delta graphics.Duration
	if f.haveTicked {
		delta = currentTime - f.lastTickTime
	}
	f.lastTickTime = currentTime
	f.haveTicked = true

	f.drainGestures()
	f.tickAnimations(f.Root, delta)
	deltaSeconds := delta.Seconds()
	active := false
	for _, t := range f.tickers {
		if t.Tick(deltaSeconds) {
			active = true
		}
	}
	f.tickersActive = active
	if f.layoutDirty {
		if f.Solver != nil {
			changes := f.Solver(f.Root)
			for _, c := range changes {
				node, frame := c.Node, c.Frame
				f.scope.Flush(false)
				f.Transaction.SetViewFrame(node, frame, node.Direction == graphics.RTL, nil)
			}
		}
		f.layoutDirty = false
	}
	f.reconcile()
	f.computeVisibility(f.Root, true)
	f.scope.Flush(true)
	f.Transaction.Flush(true)
}

func (f *FrameScheduler) drainGestures() {
	for _, d := range f.drags {
		if d.target != nil {
			d.target.OnDrag(d.state, d.event)
		}
	}
	f.drags = nil
	for _, w := range f.wheels {
		if w.target != nil {
			w.target.OnWheel(w.state, w.event)
		}
	}
	f.wheels = nil
}

func (f *FrameScheduler) tickAnimations(node *layer.ViewNode, delta graphics.Duration) {
	if node == nil {
		return
	}
	for key, anim := range node.Animations {
		if anim.Run(node.Layer, delta) {
			delete(node.Animations, key)
		}
	}
	for _, child := range node.Children() {
		if vn, ok := childViewNode(child); ok {
			f.tickAnimations(vn, delta)
		}
	}
}

func (f *FrameScheduler) reconcile() {
	for _, op := range f.treeOps {
		if op.Insert {
			op.Parent.InsertChild(op.Child.Layer, op.Index)
		} else {
			op.Parent.RemoveChild(op.Child.Layer)
		}
	}
	f.treeOps = nil
}

// computeVisibility marks a node visible iff its parent is visible and its
// frame intersects the clipped viewport (spec §4.10 step 5).
func (f *FrameScheduler) computeVisibility(node *layer.ViewNode, parentVisible bool) {
	if node == nil {
		return
	}
	nodeVisible := parentVisible && intersects(node.Frame, f.Viewport)
	wasVisible := f.visible[node]
	if nodeVisible && !wasVisible && f.onVisible != nil {
		f.onVisible(node)
	}
	f.visible[node] = nodeVisible

	for _, child := range node.Children() {
		if vn, ok := childViewNode(child); ok {
			f.computeVisibility(vn, nodeVisible)
		}
	}
}

func intersects(a, b graphics.Frame) bool {
	if a.Width <= 0 || a.Height <= 0 || b.Width <= 0 || b.Height <= 0 {
		return false
	}
	return a.X < b.X+b.Width && a.X+a.Width > b.X && a.Y < b.Y+b.Height && a.Y+a.Height > b.Y
}
