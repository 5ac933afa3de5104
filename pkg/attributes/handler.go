package attributes

import (
	"fmt"

	"github.com/go-drift/engine/pkg/errors"
	"github.com/go-drift/engine/pkg/layer"
)

// Value is the dynamic, preprocessed/postprocessed attribute payload an
// applier receives. Built-in preprocessors produce specific shapes
// (graphics.BorderRadius for borderRadius, a Color, etc); custom attributes may use any
// type and are expected to know their own shape.
type Value = any

// Preprocessor transforms a raw attribute value (typically a string) into
// a preprocessed Value. A preprocessor is pure: same input always yields
// the same output, enabling the preprocessor cache.
type Preprocessor func(raw Value) (Value, error)

// Postprocessor adjusts a preprocessed value for the node it's being
// applied to (direction, palette, ...). Impure with respect to node.
type Postprocessor func(node *layer.ViewNode, value Value) Value

// Delegate is the per-attribute apply/reset contract a view class
// registers, ported from AttributeHandlerDelegate.hpp.
type Delegate interface {
	OnApply(node *layer.ViewNode, value Value, animator *Animator) error
	OnReset(node *layer.ViewNode, animator *Animator) error
}

// Animator is the handle an applyAttribute/resetAttribute call uses to
// animate the transition, if any transaction-level animation is active.
// A nil *Animator means "apply immediately, no animation."
type Animator struct {
	Config Value // animation.TimingConfig or animation.SpringConfig, handler-specific
}

// Handler carries everything needed to apply one attribute on one view
// class: its id, delegate, and processing pipeline, per spec §4.9.2.
type Handler struct {
	ID                      ID
	Name                    string
	Delegate                Delegate
	CompositePart           *CompositeAttributePart // non-nil if this id is one part of a composite
	RequiresView            bool
	InvalidateLayoutOnChange bool

	Preprocessors  []Preprocessor
	Postprocessors []Postprocessor

	// trivialPreprocessors marks every registered preprocessor as
	// side-effect-free of the raw value's identity; when true (the
	// default with no preprocessors, or when every registered one opts
	// in) results are not cached, matching spec §4.9.2's "if all
	// preprocessors are declared trivial, results are not cached."
	trivialPreprocessors bool
	cache                *preprocessorCache
}

// NewHandler constructs a Handler for id/name with no preprocessors or
// postprocessors registered yet.
func NewHandler(id ID, name string, delegate Delegate) *Handler {
	return &Handler{ID: id, Name: name, Delegate: delegate, trivialPreprocessors: true, cache: newPreprocessorCache()}
}

// AddPreprocessor appends a preprocessor to the chain. trivial marks
// this particular preprocessor as cheap enough not to need caching;
// results are cached only once at least one registered preprocessor is
// non-trivial.
func (h *Handler) AddPreprocessor(p Preprocessor, trivial bool) {
	h.Preprocessors = append(h.Preprocessors, p)
	if !trivial {
		h.trivialPreprocessors = false
	}
}

// AddPostprocessor appends a postprocessor to the chain.
func (h *Handler) AddPostprocessor(p Postprocessor) {
	h.Postprocessors = append(h.Postprocessors, p)
}

// Preprocess runs the preprocessor chain over raw, consulting (and
// populating) the cache unless every preprocessor is trivial.
func (h *Handler) Preprocess(raw Value) (Value, error) {
	if len(h.Preprocessors) == 0 {
		return raw, nil
	}
	if !h.trivialPreprocessors {
		if cached, ok := h.cache.get(raw); ok {
			return cached, nil
		}
	}

	value := raw
	for _, p := range h.Preprocessors {
		var err error
		value, err = p(value)
		if err != nil {
			return nil, &errors.DriftError{Op: fmt.Sprintf("attribute %q", h.Name), Kind: errors.KindAttributeParse, Err: err}
		}
	}

	if !h.trivialPreprocessors {
		h.cache.put(raw, value)
	}
	return value, nil
}

// Postprocess runs the postprocessor chain over a preprocessed value for
// node.
func (h *Handler) Postprocess(node *layer.ViewNode, value Value) Value {
	for _, p := range h.Postprocessors {
		value = p(node, value)
	}
	return value
}

// ApplyAttribute postprocesses value for node and invokes the delegate,
// inside scope (so the delegate's mutations batch with the rest of the
// transaction). A delegate failure surfaces from the scope's Flush as an
// *errors.DriftError of kind KindAttributeType.
func (h *Handler) ApplyAttribute(scope *ViewTransactionScope, node *layer.ViewNode, value Value, animator *Animator) error {
	processed := h.Postprocess(node, value)
	scope.enqueue(func() error {
		if err := h.Delegate.OnApply(node, processed, animator); err != nil {
			return &errors.DriftError{Op: fmt.Sprintf("attribute %q", h.Name), Kind: errors.KindAttributeType, Err: err}
		}
		return nil
	})
	return nil
}

// ResetAttribute forwards to the delegate's OnReset, inside scope.
func (h *Handler) ResetAttribute(scope *ViewTransactionScope, node *layer.ViewNode, animator *Animator) {
	scope.enqueue(func() error {
		return h.Delegate.OnReset(node, animator)
	})
}
