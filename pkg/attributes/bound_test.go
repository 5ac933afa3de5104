package attributes_test

import (
	"errors"
	"testing"

	"github.com/go-drift/engine/pkg/attributes"
	"github.com/go-drift/engine/pkg/graphics"
	"github.com/go-drift/engine/pkg/layer"
)

// recordingDelegate captures every OnApply/OnReset call it receives, in
// order, so tests can assert on exactly what a Flush dispatched.
type recordingDelegate struct {
	applied []attributes.Value
	resets  int
	failNext bool
}

func (d *recordingDelegate) OnApply(node *layer.ViewNode, value attributes.Value, animator *attributes.Animator) error {
	if d.failNext {
		d.failNext = false
		return errors.New("boom")
	}
	d.applied = append(d.applied, value)
	return nil
}

func (d *recordingDelegate) OnReset(node *layer.ViewNode, animator *attributes.Animator) error {
	d.resets++
	return nil
}

func TestBoundAttributesOwnerPriorityResolution(t *testing.T) {
	r := attributes.NewRegistry()
	delegate := &recordingDelegate{}
	h := r.BindStringAttribute("title", false, delegate)

	node := layer.NewViewNode("Text")
	b := attributes.NewBoundAttributes(node, r)

	// Lowest-priority owner (inline) should win regardless of set order.
	b.Set(h.ID, attributes.OwnerClass, "from-class")
	b.Set(h.ID, attributes.OwnerStyle, "from-style")
	b.Set(h.ID, attributes.OwnerInline, "from-inline")

	v, ok := b.Get(h.ID)
	if !ok || v != "from-inline" {
		t.Fatalf("Get = %v, %v; want from-inline, true", v, ok)
	}

	// Removing the winning owner falls back to the next-lowest-priority
	// owner still set (spec §8 "Round-trip and idempotence laws").
	b.Unset(h.ID, attributes.OwnerInline)
	v, ok = b.Get(h.ID)
	if !ok || v != "from-style" {
		t.Fatalf("after unset inline, Get = %v, %v; want from-style, true", v, ok)
	}

	b.Unset(h.ID, attributes.OwnerStyle)
	v, ok = b.Get(h.ID)
	if !ok || v != "from-class" {
		t.Fatalf("after unset style, Get = %v, %v; want from-class, true", v, ok)
	}

	b.Unset(h.ID, attributes.OwnerClass)
	if _, ok := b.Get(h.ID); ok {
		t.Fatalf("after unsetting every owner, Get should report absent")
	}
}

func TestBoundAttributesSetThenResetIsIdempotent(t *testing.T) {
	r := attributes.NewRegistry()
	h := r.BindStringAttribute("title", false, &recordingDelegate{})
	node := layer.NewViewNode("Text")
	b := attributes.NewBoundAttributes(node, r)

	b.Set(h.ID, attributes.OwnerInline, "a")
	b.Set(h.ID, attributes.OwnerStyle, "fallback")
	b.Unset(h.ID, attributes.OwnerInline)

	v, ok := b.Get(h.ID)
	if !ok || v != "fallback" {
		t.Fatalf("Get after set-then-reset = %v, %v; want fallback, true", v, ok)
	}
}

func TestBoundAttributesFlushAppliesDirtyAttributesOnce(t *testing.T) {
	r := attributes.NewRegistry()
	delegate := &recordingDelegate{}
	h := r.BindStringAttribute("title", false, delegate)
	node := layer.NewViewNode("Text")
	b := attributes.NewBoundAttributes(node, r)

	b.Set(h.ID, attributes.OwnerInline, "hello")
	scope := attributes.NewViewTransactionScope()
	if err := b.Flush(scope, nil); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := scope.Flush(true); err != nil {
		t.Fatalf("scope.Flush: %v", err)
	}
	if len(delegate.applied) != 1 || delegate.applied[0] != "hello" {
		t.Fatalf("applied = %v; want [hello]", delegate.applied)
	}

	// A second Flush with nothing newly dirty applies nothing more.
	scope2 := attributes.NewViewTransactionScope()
	if err := b.Flush(scope2, nil); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := scope2.Flush(true); err != nil {
		t.Fatalf("scope.Flush: %v", err)
	}
	if len(delegate.applied) != 1 {
		t.Fatalf("applied after second flush = %v; want still [hello]", delegate.applied)
	}
}

func TestBoundAttributesFlushResetsWhenNoOwnerRemains(t *testing.T) {
	r := attributes.NewRegistry()
	delegate := &recordingDelegate{}
	h := r.BindStringAttribute("title", false, delegate)
	node := layer.NewViewNode("Text")
	b := attributes.NewBoundAttributes(node, r)

	b.Set(h.ID, attributes.OwnerInline, "hello")
	scope := attributes.NewViewTransactionScope()
	b.Flush(scope, nil)
	scope.Flush(true)

	b.Unset(h.ID, attributes.OwnerInline)
	scope2 := attributes.NewViewTransactionScope()
	if err := b.Flush(scope2, nil); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	scope2.Flush(true)

	if delegate.resets != 1 {
		t.Fatalf("resets = %d; want 1", delegate.resets)
	}
}

func TestCompositeAttributeAssemblesAllRequiredParts(t *testing.T) {
	r := attributes.NewRegistry()
	delegate := &recordingDelegate{}
	composite := r.BindCompositeAttribute("border", []string{"width", "color"}, []bool{true, true}, delegate)
	node := layer.NewViewNode("View")
	b := attributes.NewBoundAttributes(node, r)

	widthID := composite.Parts[0].ID
	colorID := composite.Parts[1].ID

	// Setting only one required part keeps the composite not-ready: a
	// Flush resets it rather than applying a partial value (spec §4.9.3
	// step 4 / §7 "Missing required composite part").
	b.Set(widthID, attributes.OwnerInline, 2.0)
	scope := attributes.NewViewTransactionScope()
	if err := b.Flush(scope, nil); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	scope.Flush(true)
	if delegate.resets != 1 || len(delegate.applied) != 0 {
		t.Fatalf("after one required part set: resets=%d applied=%v; want resets=1, applied=[]", delegate.resets, delegate.applied)
	}

	// Setting the second required part completes the composite: it
	// applies the assembled [width, color] array.
	b.Set(colorID, attributes.OwnerInline, "red")
	scope2 := attributes.NewViewTransactionScope()
	if err := b.Flush(scope2, nil); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	scope2.Flush(true)
	if len(delegate.applied) != 1 {
		t.Fatalf("applied = %v; want one assembled value", delegate.applied)
	}
	assembled, ok := delegate.applied[0].([]attributes.Value)
	if !ok || len(assembled) != 2 || assembled[0] != 2.0 || assembled[1] != "red" {
		t.Fatalf("assembled = %#v; want [2.0, red]", delegate.applied[0])
	}
}

func TestCompositeAttributeOptionalPartMissingStillApplies(t *testing.T) {
	r := attributes.NewRegistry()
	delegate := &recordingDelegate{}
	composite := r.BindCompositeAttribute("border", []string{"width", "color"}, []bool{true, false}, delegate)
	node := layer.NewViewNode("View")
	b := attributes.NewBoundAttributes(node, r)

	widthID := composite.Parts[0].ID
	b.Set(widthID, attributes.OwnerInline, 3.0)

	scope := attributes.NewViewTransactionScope()
	if err := b.Flush(scope, nil); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	scope.Flush(true)

	if delegate.resets != 0 {
		t.Fatalf("resets = %d; want 0 (only the optional part is missing)", delegate.resets)
	}
	if len(delegate.applied) != 1 {
		t.Fatalf("applied = %v; want one assembled value", delegate.applied)
	}
	assembled := delegate.applied[0].([]attributes.Value)
	if assembled[0] != 3.0 || assembled[1] != nil {
		t.Fatalf("assembled = %#v; want [3.0, nil]", assembled)
	}
}

func TestSetRawPreprocessesThroughHandler(t *testing.T) {
	r := attributes.NewRegistry()
	delegate := &recordingDelegate{}
	h := r.BindColorAttribute("backgroundColor", false, delegate)
	node := layer.NewViewNode("View")
	b := attributes.NewBoundAttributes(node, r)

	if err := b.SetRaw(h.ID, attributes.OwnerInline, "#ff0000"); err != nil {
		t.Fatalf("SetRaw: %v", err)
	}
	v, ok := b.Get(h.ID)
	if !ok {
		t.Fatalf("expected a resolved color")
	}
	col, isColor := v.(graphics.Color)
	if !isColor || col != graphics.RGB(0xff, 0, 0) {
		t.Fatalf("Get = %#v; want opaque red", v)
	}
}

func TestSetRawRejectsUnparsableValue(t *testing.T) {
	r := attributes.NewRegistry()
	h := r.BindColorAttribute("backgroundColor", false, &recordingDelegate{})
	node := layer.NewViewNode("View")
	b := attributes.NewBoundAttributes(node, r)

	err := b.SetRaw(h.ID, attributes.OwnerInline, 42)
	if err == nil {
		t.Fatalf("expected a parse error for a non-string/number color value")
	}
}

func TestSetRawOnUnknownAttributeIsDropped(t *testing.T) {
	r := attributes.NewRegistry()
	node := layer.NewViewNode("View")
	b := attributes.NewBoundAttributes(node, r)

	unknownID := attributes.IDForName("totally-unbound-attribute")
	if err := b.SetRaw(unknownID, attributes.OwnerInline, "x"); err != nil {
		t.Fatalf("SetRaw on an unbound id should be a no-op, got err: %v", err)
	}
	if _, ok := b.Get(unknownID); ok {
		t.Fatalf("unbound attribute should never resolve to a value")
	}
}
