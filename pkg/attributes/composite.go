package attributes

import "github.com/go-drift/engine/pkg/layer"

// CompositeAttributePart is one named slot of a CompositeAttribute (e.g.
// "color" and "locations" are both parts of the "background" composite).
type CompositeAttributePart struct {
	Owner *CompositeAttribute
	Index int
	Name  string
	ID    ID // the attribute id this part is bound under, set by Registry.BindCompositeAttribute
}

// CompositeAttribute assembles several independently-set parts into one
// applied value, per spec §4.9.3: "the composite assembles an array of its
// parts' resolved processed values; if any required part is missing, the
// composite is reset instead of applied."
type CompositeAttribute struct {
	Handler *Handler
	Parts   []*CompositeAttributePart
	Required []bool

	values []Value
	dirty  bool
}

// NewCompositeAttribute constructs a composite with the given part names,
// wired to handler for the assembled apply/reset.
func NewCompositeAttribute(handler *Handler, partNames []string, required []bool) *CompositeAttribute {
	c := &CompositeAttribute{Handler: handler, Required: required}
	c.values = make([]Value, len(partNames))
	for i, name := range partNames {
		part := &CompositeAttributePart{Owner: c, Index: i, Name: name}
		c.Parts = append(c.Parts, part)
	}
	return c
}

// SetPart records a resolved value for one part and marks the composite
// dirty, per spec §4.9.3 step 3 ("if the attribute is a composite part,
// mark the composite dirty instead").
func (c *CompositeAttribute) SetPart(index int, value Value) {
	c.values[index] = value
	c.dirty = true
}

// ClearPart removes a previously set part's value.
func (c *CompositeAttribute) ClearPart(index int) {
	c.values[index] = nil
	c.dirty = true
}

// Dirty reports whether any part has changed since the last Flush.
func (c *CompositeAttribute) Dirty() bool { return c.dirty }

// ready reports whether every required part has a value.
func (c *CompositeAttribute) ready() bool {
	for i, req := range c.Required {
		if req && c.values[i] == nil {
			return false
		}
	}
	return true
}

// Flush assembles the composite's part values and applies or resets it
// through its handler, per spec §4.9.3 step 4: "the composite assembles an
// array of its parts' resolved processed values; if any required part is
// missing, the composite is reset instead of applied." Clears the dirty
// flag unconditionally, matching non-composite attributes' flush-once-then-
// clean semantics.
func (c *CompositeAttribute) Flush(scope *ViewTransactionScope, node *layer.ViewNode, animator *Animator) error {
	c.dirty = false
	if !c.ready() {
		c.Handler.ResetAttribute(scope, node, animator)
		return nil
	}
	assembled := make([]Value, len(c.values))
	copy(assembled, c.values)
	return c.Handler.ApplyAttribute(scope, node, assembled, animator)
}
