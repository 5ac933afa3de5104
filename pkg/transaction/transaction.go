// Package transaction declares the external host contract the core engine
// requires (spec §6): the operations a concrete platform bridge must
// implement so the frame scheduler can materialize layer-tree changes into
// real backing views.
package transaction

import "github.com/go-drift/engine/pkg/graphics"

// Asset is an opaque decoded image/resource handle a host hands back from
// its own asset pipeline; the core never inspects it.
type Asset any

// SnapshotResult is delivered to a snapshotView callback: either the PNG
// bytes of the view as rendered by the host, or an error.
type SnapshotResult struct {
	PNG []byte
	Err error
}

// Transaction is the contract a platform host implements so the core can
// flush layer-tree mutations into real backing views, ported from
// ViewNodeAttributesApplier.hpp's host-facing methods (spec §6).
type Transaction interface {
	// MoveViewToTree associates a backing view with a logical node.
	MoveViewToTree(view, tree, node any)

	// InsertChildView inserts child into parent's backing view at index,
	// animated by animator if non-nil.
	InsertChildView(parent, child any, index int, animator any)

	// RemoveViewFromParent detaches view from its parent, animated by
	// animator if non-nil. If clearNode is true the logical node
	// association is cleared too.
	RemoveViewFromParent(view any, animator any, clearNode bool)

	// SetViewFrame is idempotent: setting the same frame twice is a no-op
	// at the host's discretion. animator may interpolate the transition.
	SetViewFrame(view any, frame graphics.Frame, isRTL bool, animator any)

	// SetViewScrollSpecs pushes a scroll layer's content offset/size.
	SetViewScrollSpecs(view any, contentOffset graphics.Point, contentSize graphics.Size, animated bool)

	// SetViewLoadedAsset installs a decoded asset on view.
	SetViewLoadedAsset(view any, asset Asset, drawFlipped bool)

	// InvalidateViewLayout marks view's backing layout as needing
	// recomputation.
	InvalidateViewLayout(view any)

	// LayoutView forces an immediate layout pass on view.
	LayoutView(view any)

	// CancelAllViewAnimations stops every in-flight host-side animation
	// on view.
	CancelAllViewAnimations(view any)

	// WillEnqueueViewToPool offers view back to the host for reuse;
	// onEnqueue is invoked once the host has reclaimed it.
	WillEnqueueViewToPool(view any, onEnqueue func())

	// SnapshotView asynchronously renders view to PNG, delivering the
	// result to callback.
	SnapshotView(view any, callback func(SnapshotResult))

	// FlushAnimator commits a pending animator, invoking completionCallback
	// once the host-side animation finishes.
	FlushAnimator(animator any, completionCallback func(didComplete bool))

	// CancelAnimator stops a pending animator without completing it.
	CancelAnimator(animator any)

	// ExecuteInTransactionThread lets the host choose which thread a
	// non-main-thread-safe call executes on.
	ExecuteInTransactionThread(fn func())

	// Flush commits every batched operation since the last flush. When
	// sync is true the call blocks until the host's transaction thread
	// has applied them.
	Flush(sync bool)
}

// NullTransaction is a no-op Transaction that only records calls, useful
// for scheduler tests that don't need a real host.
type NullTransaction struct {
	Log []string
}

func (t *NullTransaction) record(call string) { t.Log = append(t.Log, call) }

func (t *NullTransaction) MoveViewToTree(view, tree, node any) { t.record("moveViewToTree") }

func (t *NullTransaction) InsertChildView(parent, child any, index int, animator any) {
	t.record("insertChildView")
}

func (t *NullTransaction) RemoveViewFromParent(view any, animator any, clearNode bool) {
	t.record("removeViewFromParent")
}

func (t *NullTransaction) SetViewFrame(view any, frame graphics.Frame, isRTL bool, animator any) {
	t.record("setViewFrame")
}

func (t *NullTransaction) SetViewScrollSpecs(view any, contentOffset graphics.Point, contentSize graphics.Size, animated bool) {
	t.record("setViewScrollSpecs")
}

func (t *NullTransaction) SetViewLoadedAsset(view any, asset Asset, drawFlipped bool) {
	t.record("setViewLoadedAsset")
}

func (t *NullTransaction) InvalidateViewLayout(view any) { t.record("invalidateViewLayout") }

func (t *NullTransaction) LayoutView(view any) { t.record("layoutView") }

func (t *NullTransaction) CancelAllViewAnimations(view any) { t.record("cancelAllViewAnimations") }

func (t *NullTransaction) WillEnqueueViewToPool(view any, onEnqueue func()) {
	t.record("willEnqueueViewToPool")
	if onEnqueue != nil {
		onEnqueue()
	}
}

func (t *NullTransaction) SnapshotView(view any, callback func(SnapshotResult)) {
	t.record("snapshotView")
	if callback != nil {
		callback(SnapshotResult{})
	}
}

func (t *NullTransaction) FlushAnimator(animator any, completionCallback func(didComplete bool)) {
	t.record("flushAnimator")
	if completionCallback != nil {
		completionCallback(true)
	}
}

func (t *NullTransaction) CancelAnimator(animator any) { t.record("cancelAnimator") }

func (t *NullTransaction) ExecuteInTransactionThread(fn func()) {
	t.record("executeInTransactionThread")
	if fn != nil {
		fn()
	}
}

func (t *NullTransaction) Flush(sync bool) { t.record("flush") }
