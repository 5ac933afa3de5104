package graphics

import "sort"

// Direction is the text/layout direction a Layer paints and resolves
// direction-agnostic attributes against.
type Direction int

const (
	// LTR is left-to-right layout direction.
	LTR Direction = iota
	// RTL is right-to-left layout direction.
	RTL
)

// Animation is the per-layer animation contract the frame scheduler drives.
// It is declared in package graphics (rather than package animation, which
// implements it) so that Layer -- which owns an AnimationMap -- never needs
// to import its own animation implementations; see animation.NewTimeAnimation
// and animation.NewSpringAnimation for the concrete variants.
//
// Run(layer, delta) advances the animation by delta and reports whether it
// has completed. The first call to Run after an animation is installed must
// apply progress 0 without consuming delta and return false (not done).
// Returning true implies the applier was invoked one final time with the
// terminal ratio (1 for time animations, the equilibrium value for springs).
type Animation interface {
	// Run advances the animation by delta milliseconds, applies the
	// resulting state to layer, and reports whether it has completed.
	Run(layer *Layer, delta Duration) (done bool)

	// Cancel stops the animation, invoking the final applier (if one
	// remains) and firing completions with didComplete=false. It is invalid
	// to call Run after Cancel.
	Cancel(layer *Layer)

	// Complete immediately finishes the animation as if it had run to
	// completion, invoking the final applier and firing completions with
	// didComplete=true. It is invalid to call Run after Complete.
	Complete(layer *Layer)

	// AddCompletion enqueues a completion callback, invoked exactly once,
	// in insertion order, only from inside Cancel or Complete.
	AddCompletion(cb func(didComplete bool))
}

// AnimationMap is a layer's active-animation bookkeeping: a string key
// (e.g. "opacity", "frame", "contentOffset") to the Animation currently
// driving that property. A completed or cancelled animation is removed.
type AnimationMap map[string]Animation

// Transform holds the 2D affine components a Layer applies on top of its
// frame: translation, scale, and rotation (radians), composed in that order.
type Transform struct {
	TranslateX float64
	TranslateY float64
	ScaleX     float64
	ScaleY     float64
	Rotation   float64
}

// IdentityTransform is the no-op transform (scale 1, no translation/rotation).
var IdentityTransform = Transform{ScaleX: 1, ScaleY: 1}

// IsIdentity reports whether the transform has no visual effect.
func (t Transform) IsIdentity() bool {
	return t.TranslateX == 0 && t.TranslateY == 0 &&
		t.ScaleX == 1 && t.ScaleY == 1 && t.Rotation == 0
}

// Layer is a presentation node: the compositing primitive the layer tree is
// built from. It owns a frame, bounds origin, transform, opacity,
// clip-to-bounds flag, border radius, z-index, an ordered child list (paint
// order, reorderable by z-index), an active AnimationMap, and a direction.
// Every ViewNode (package layer) owns exactly one Layer.
type Layer struct {
	Frame        Frame
	BoundsOrigin Point
	Transform    Transform
	Opacity      float64
	ClipToBounds bool
	BorderRadius BorderRadius
	ZIndex       int
	Direction    Direction

	children   []*Layer
	Animations AnimationMap

	parent *Layer // weak: not owned, never retained for GC purposes beyond this field
	root   *Layer // weak: the live root this layer is attached under, if any

	display *DisplayList // cached paint output for this repaint boundary, if any

	// UserData is an opaque slot for the higher-level node that owns this
	// Layer (e.g. layer.ViewNode). Layer itself never reads or writes it;
	// it exists so code walking a bare *Layer tree (the frame scheduler)
	// can recover the owning node without package graphics needing to
	// import package layer.
	UserData any
}

// NewLayer constructs a Layer with sane defaults: full opacity, identity
// transform, no clipping.
func NewLayer() *Layer {
	return &Layer{
		Opacity:    1,
		Transform:  IdentityTransform,
		Animations: make(AnimationMap),
	}
}

// Parent returns the layer's parent, or nil if it is a root or detached.
func (l *Layer) Parent() *Layer { return l.parent }

// Root returns the live root this layer is attached under, or nil if detached.
func (l *Layer) Root() *Layer { return l.root }

// Children returns the layer's children in current paint order.
func (l *Layer) Children() []*Layer { return l.children }

// AddChild appends a child in insertion order and re-sorts by z-index,
// matching spec semantics: "insertion order is paint order unless z-index
// reorders". Stable sort preserves insertion order among equal z-indices.
func (l *Layer) AddChild(child *Layer) {
	if child == nil || child.parent == l {
		return
	}
	child.removeFromParent()
	child.parent = l
	child.setRoot(l.root)
	l.children = append(l.children, child)
	l.resortChildren()
}

// InsertChild inserts a child at a specific index, then re-sorts by z-index.
func (l *Layer) InsertChild(child *Layer, index int) {
	if child == nil {
		return
	}
	child.removeFromParent()
	child.parent = l
	child.setRoot(l.root)
	if index < 0 {
		index = 0
	}
	if index > len(l.children) {
		index = len(l.children)
	}
	l.children = append(l.children, nil)
	copy(l.children[index+1:], l.children[index:])
	l.children[index] = child
	l.resortChildren()
}

// RemoveChild detaches child from l, if it is in fact a child of l.
func (l *Layer) RemoveChild(child *Layer) {
	if child == nil || child.parent != l {
		return
	}
	child.removeFromParent()
}

func (l *Layer) removeFromParent() {
	if l.parent == nil {
		return
	}
	siblings := l.parent.children
	for i, c := range siblings {
		if c == l {
			l.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	l.parent = nil
	l.setRoot(nil)
}

// resortChildren performs a stable sort by ZIndex so that insertion order is
// preserved as the tiebreaker, per spec: "insertion order is paint order
// unless z-index reorders".
func (l *Layer) resortChildren() {
	sort.SliceStable(l.children, func(i, j int) bool {
		return l.children[i].ZIndex < l.children[j].ZIndex
	})
}

// setRoot propagates a new live root down the subtree.
func (l *Layer) setRoot(root *Layer) {
	if l.root == root {
		return
	}
	l.root = root
	for _, c := range l.children {
		c.setRoot(root)
	}
}

// IsAttached reports whether this layer is attached to a live root.
func (l *Layer) IsAttached() bool {
	return l.root != nil
}

// SetDisplayList installs the cached paint output for this repaint boundary.
func (l *Layer) SetDisplayList(list *DisplayList) {
	if l.display != nil {
		l.display.Dispose()
	}
	l.display = list
}

// DisplayListOf returns the layer's cached paint output, if any.
func (l *Layer) DisplayListOf() *DisplayList {
	return l.display
}

// Composite paints this layer (its cached display list, then its children in
// paint order) onto canvas under the layer's own transform, opacity clip,
// and border-radius clip, matching the contract opDrawChildLayer relies on.
func (l *Layer) Composite(canvas Canvas) {
	if l == nil || canvas == nil {
		return
	}
	canvas.Save()
	defer canvas.Restore()

	canvas.Translate(l.Frame.X-l.BoundsOrigin.X, l.Frame.Y-l.BoundsOrigin.Y)
	if !l.Transform.IsIdentity() {
		canvas.Translate(l.Transform.TranslateX, l.Transform.TranslateY)
		canvas.Scale(l.Transform.ScaleX, l.Transform.ScaleY)
		canvas.Rotate(l.Transform.Rotation)
	}
	if l.ClipToBounds {
		bounds := Frame{Width: l.Frame.Width, Height: l.Frame.Height}
		if l.BorderRadius != (BorderRadius{}) {
			canvas.ClipRRect(l.BorderRadius.ResolveRRect(bounds))
		} else {
			canvas.ClipRect(bounds.ToRect())
		}
	}

	opaque := l.Opacity >= 0.999
	if !opaque {
		bounds := Frame{Width: l.Frame.Width, Height: l.Frame.Height}.ToRect()
		canvas.SaveLayerAlpha(bounds, clamp01(l.Opacity))
	}

	if l.display != nil {
		l.display.Paint(canvas)
	}
	for _, child := range l.children {
		canvas.DrawChildLayer(child)
	}

	if !opaque {
		canvas.Restore()
	}
}

// HasActiveAnimations reports whether this layer has any in-flight animations.
func (l *Layer) HasActiveAnimations() bool {
	return len(l.Animations) > 0
}
