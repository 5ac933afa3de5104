package attributes

import "github.com/go-drift/engine/pkg/layer"

// Owner priority: lower numbers win when multiple owners set the same
// attribute id on the same node (spec §4.9.3: "recompute the resolved
// index by scanning entries for the lowest owner-priority").
type Owner int

const (
	// OwnerInline is an attribute set directly on the node (highest
	// priority: always wins over style/class-derived values).
	OwnerInline Owner = 0
	// OwnerStyle is an attribute set via an inline style string.
	OwnerStyle Owner = 1
	// OwnerClass is an attribute set via a CSS class rule.
	OwnerClass Owner = 2
)

type valueEntry struct {
	owner Owner
	value Value
}

// attributeState is the per-(node, attribute-id) bookkeeping: every
// registered (owner, value) entry plus which one is currently resolved.
type attributeState struct {
	entries  []valueEntry
	resolved int // index into entries, or -1 if none
}

func (s *attributeState) resolvedValue() (Value, bool) {
	if s.resolved < 0 || s.resolved >= len(s.entries) {
		return nil, false
	}
	return s.entries[s.resolved].value, true
}

// recompute finds the lowest-priority (lowest Owner value) entry and
// reports whether the resolved entry changed.
func (s *attributeState) recompute() bool {
	best := -1
	for i, e := range s.entries {
		if best == -1 || e.owner < s.entries[best].owner {
			best = i
		}
	}
	changed := best != s.resolved
	s.resolved = best
	return changed
}

// BoundAttributes is the per-ViewNode registry of every attribute
// currently bound on it, across all owners, keyed by attribute id, per
// spec §4.9.3. It is constructed against a Registry so it can route
// composite-part changes to their owning CompositeAttribute and, on Flush,
// dispatch resolved values through each attribute's Handler.
type BoundAttributes struct {
	node     *layer.ViewNode
	registry *Registry

	states     map[ID]*attributeState
	partOf     map[ID]*CompositeAttributePart // attribute id -> the composite part it fills, if any
	composites []*CompositeAttribute
	dirty      map[ID]bool
}

// NewBoundAttributes constructs an empty attribute registry for node,
// wiring every composite attribute bound against registry so that setting
// one of its parts marks the composite (not a standalone attribute) dirty.
func NewBoundAttributes(node *layer.ViewNode, registry *Registry) *BoundAttributes {
	b := &BoundAttributes{
		node:       node,
		registry:   registry,
		states:     make(map[ID]*attributeState),
		partOf:     make(map[ID]*CompositeAttributePart),
		composites: registry.Composites(),
		dirty:      make(map[ID]bool),
	}
	for _, c := range b.composites {
		for _, p := range c.Parts {
			b.partOf[p.ID] = p
		}
	}
	return b
}

// Set records value under owner for attribute id, recomputing the resolved
// value and marking it (or its owning composite) dirty if it changed,
// per spec §4.9.3 steps 1-3.
func (b *BoundAttributes) Set(id ID, owner Owner, value Value) {
	s, ok := b.states[id]
	if !ok {
		s = &attributeState{resolved: -1}
		b.states[id] = s
	}

	found := false
	for i := range s.entries {
		if s.entries[i].owner == owner {
			s.entries[i].value = value
			found = true
			break
		}
	}
	if !found {
		s.entries = append(s.entries, valueEntry{owner: owner, value: value})
	}

	if s.recompute() {
		b.markDirty(id)
	}
}

// SetRaw preprocesses raw through id's bound Handler and records the result
// under owner. Attribute ids with no bound handler are silently dropped,
// per spec §7 "Unknown attribute: during handler lookup, log and drop the
// mutation." (logging is left to the caller, which knows the node/class
// context this registry doesn't).
func (b *BoundAttributes) SetRaw(id ID, owner Owner, raw Value) error {
	h, ok := b.registry.Handler(id)
	if !ok {
		return nil
	}
	v, err := h.Preprocess(raw)
	if err != nil {
		return err
	}
	b.Set(id, owner, v)
	return nil
}

// Unset removes owner's entry for attribute id.
func (b *BoundAttributes) Unset(id ID, owner Owner) {
	s, ok := b.states[id]
	if !ok {
		return
	}
	for i := range s.entries {
		if s.entries[i].owner == owner {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	if s.recompute() {
		b.markDirty(id)
	}
}

func (b *BoundAttributes) markDirty(id ID) {
	if part, ok := b.partOf[id]; ok {
		composite := part.Owner
		if v, ok := b.states[id].resolvedValue(); ok {
			composite.SetPart(part.Index, v)
		} else {
			composite.ClearPart(part.Index)
		}
		return
	}
	b.dirty[id] = true
}

// Dirty returns and clears the set of non-composite attribute ids that
// changed since the last call.
func (b *BoundAttributes) Dirty() []ID {
	ids := make([]ID, 0, len(b.dirty))
	for id := range b.dirty {
		ids = append(ids, id)
	}
	b.dirty = make(map[ID]bool)
	return ids
}

// DirtyComposites returns every composite that has a pending part change.
func (b *BoundAttributes) DirtyComposites() []*CompositeAttribute {
	var out []*CompositeAttribute
	for _, c := range b.composites {
		if c.Dirty() {
			out = append(out, c)
		}
	}
	return out
}

// Get returns the currently resolved value for attribute id.
func (b *BoundAttributes) Get(id ID) (Value, bool) {
	s, ok := b.states[id]
	if !ok {
		return nil, false
	}
	return s.resolvedValue()
}

// Flush applies every pending change through its Handler: non-composite
// dirty attributes apply directly (or reset, if no owner has a value left);
// dirty composites assemble their parts and apply, or reset if a required
// part is missing, per spec §4.9.3 steps 4-5.
func (b *BoundAttributes) Flush(scope *ViewTransactionScope, animator *Animator) error {
	for _, id := range b.Dirty() {
		h, ok := b.registry.Handler(id)
		if !ok {
			continue
		}
		if v, ok := b.Get(id); ok {
			if err := h.ApplyAttribute(scope, b.node, v, animator); err != nil {
				return err
			}
		} else {
			h.ResetAttribute(scope, b.node, animator)
		}
	}
	for _, c := range b.DirtyComposites() {
		if err := c.Flush(scope, b.node, animator); err != nil {
			return err
		}
	}
	return nil
}
