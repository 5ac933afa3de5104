package attributes

import (
	"fmt"
	"strconv"
	"strings"
)

// MeasureDelegate is invoked when an attribute with InvalidateLayoutOnChange
// changes, letting a view class re-measure itself outside the normal
// flexbox pass (e.g. text content changing its intrinsic size).
type MeasureDelegate interface {
	Measure(node any) error
}

// Registry is the per-view-class attribute binding surface: the set of
// bindXxxAttribute/bindCompositeAttribute/bindScrollAttributes/
// bindAssetAttributes/registerPreprocessor/setMeasureDelegate calls a view
// class makes at registration time, per spec §6 "Attribute binding".
type Registry struct {
	Ids *Ids

	handlers   map[ID]*Handler
	preprocs   map[string]Preprocessor
	measure    MeasureDelegate
	composites []*CompositeAttribute
}

// NewRegistry constructs a Registry using the process-wide default
// interner.
func NewRegistry() *Registry {
	return &Registry{
		Ids:      &defaultIds,
		handlers: make(map[ID]*Handler),
		preprocs: make(map[string]Preprocessor),
	}
}

// Handler returns the registered handler for id, if any.
func (r *Registry) Handler(id ID) (*Handler, bool) {
	h, ok := r.handlers[id]
	return h, ok
}

func (r *Registry) bind(name string, invalidateLayout bool, delegate Delegate, pre Preprocessor, trivial bool) *Handler {
	id := r.Ids.IDForName(name)
	h := NewHandler(id, name, delegate)
	h.InvalidateLayoutOnChange = invalidateLayout
	h.RequiresView = true
	if pre != nil {
		h.AddPreprocessor(pre, trivial)
	}
	r.handlers[id] = h
	return h
}

// BindBoolAttribute registers a boolean-typed attribute: "true"/"1"/"yes"
// parse true, anything else false.
func (r *Registry) BindBoolAttribute(name string, invalidateLayout bool, delegate Delegate) *Handler {
	return r.bind(name, invalidateLayout, delegate, func(raw Value) (Value, error) {
		s, ok := raw.(string)
		if !ok {
			if b, ok := raw.(bool); ok {
				return b, nil
			}
			return nil, fmt.Errorf("attributes: %q expects bool/string, got %T", name, raw)
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "yes":
			return true, nil
		default:
			return false, nil
		}
	}, true)
}

// BindIntAttribute registers an integer-typed attribute.
func (r *Registry) BindIntAttribute(name string, invalidateLayout bool, delegate Delegate) *Handler {
	return r.bind(name, invalidateLayout, delegate, func(raw Value) (Value, error) {
		switch v := raw.(type) {
		case int:
			return v, nil
		case float64:
			return int(v), nil
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("attributes: %q: %w", name, err)
			}
			return n, nil
		default:
			return nil, fmt.Errorf("attributes: %q expects a number, got %T", name, raw)
		}
	}, true)
}

// BindDoubleAttribute registers a float64-typed attribute.
func (r *Registry) BindDoubleAttribute(name string, invalidateLayout bool, delegate Delegate) *Handler {
	return r.bind(name, invalidateLayout, delegate, func(raw Value) (Value, error) {
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("attributes: %q: %w", name, err)
			}
			return f, nil
		default:
			return nil, fmt.Errorf("attributes: %q expects a number, got %T", name, raw)
		}
	}, true)
}

// BindStringAttribute registers a plain-string attribute with no parsing.
func (r *Registry) BindStringAttribute(name string, invalidateLayout bool, delegate Delegate) *Handler {
	return r.bind(name, invalidateLayout, delegate, nil, true)
}

// BindColorAttribute registers a color/backgroundColor-style attribute.
func (r *Registry) BindColorAttribute(name string, invalidateLayout bool, delegate Delegate) *Handler {
	return r.bind(name, invalidateLayout, delegate, ColorPreprocessor, true)
}

// BindPercentAttribute registers a percentage-or-scalar attribute (e.g.
// "50%" -> 0.5, "3" -> 3).
func (r *Registry) BindPercentAttribute(name string, invalidateLayout bool, delegate Delegate) *Handler {
	return r.bind(name, invalidateLayout, delegate, func(raw Value) (Value, error) {
		s, ok := raw.(string)
		if !ok {
			if f, ok := raw.(float64); ok {
				return f, nil
			}
			return nil, fmt.Errorf("attributes: %q expects a number or percent, got %T", name, raw)
		}
		if strings.HasSuffix(s, "%") {
			v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
			if err != nil {
				return nil, fmt.Errorf("attributes: %q: %w", name, err)
			}
			return v / 100, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("attributes: %q: %w", name, err)
		}
		return v, nil
	}, true)
}

// BindBorderAttribute registers the border attribute.
func (r *Registry) BindBorderAttribute(name string, invalidateLayout bool, delegate Delegate) *Handler {
	return r.bind(name, invalidateLayout, delegate, BorderPreprocessor, true)
}

// BindTextAttribute registers a text-content attribute; identical to
// BindStringAttribute except it always invalidates layout, since text
// content changes intrinsic size.
func (r *Registry) BindTextAttribute(name string, delegate Delegate) *Handler {
	return r.bind(name, true, delegate, nil, true)
}

// BindUntypedAttribute registers an attribute whose raw value passes
// through unexamined; the delegate is expected to know its own shape.
func (r *Registry) BindUntypedAttribute(name string, invalidateLayout bool, delegate Delegate) *Handler {
	return r.bind(name, invalidateLayout, delegate, nil, true)
}

// BindCompositeAttribute registers a composite attribute assembled from
// several part names (e.g. "border" from "borderWidth"/"borderColor"),
// per spec §4.9.3.
func (r *Registry) BindCompositeAttribute(name string, parts []string, required []bool, delegate Delegate) *CompositeAttribute {
	handler := NewHandler(r.Ids.IDForName(name), name, delegate)
	composite := NewCompositeAttribute(handler, parts, required)

	partIDs := make([]ID, len(parts))
	for i, p := range parts {
		partIDs[i] = r.Ids.IDForName(name + "." + p)
		composite.Parts[i].ID = partIDs[i]
		r.handlers[partIDs[i]] = NewHandler(partIDs[i], name+"."+p, delegate)
		r.handlers[partIDs[i]].CompositePart = composite.Parts[i]
	}
	r.handlers[handler.ID] = handler
	r.composites = append(r.composites, composite)
	return composite
}

// Composites returns every composite attribute bound on this registry, in
// registration order. BoundAttributes uses this to wire each node's part-
// to-composite dirty routing at construction time.
func (r *Registry) Composites() []*CompositeAttribute {
	return r.composites
}

// BindScrollAttributes registers the reserved contentOffsetX/contentOffsetY
// attributes against delegate, per spec §6 "bindScrollAttributes()".
func (r *Registry) BindScrollAttributes(delegate Delegate) {
	r.bind("contentOffsetX", false, delegate, nil, true)
	r.bind("contentOffsetY", false, delegate, nil, true)
}

// BindAssetAttributes registers the reserved src/placeholder attributes.
// outputType documents the decoded asset shape the delegate expects (e.g.
// "image"); this core doesn't interpret it, only forwards the raw
// reference string to the delegate/host asset pipeline.
func (r *Registry) BindAssetAttributes(outputType string, delegate Delegate) {
	_ = outputType
	r.bind("src", true, delegate, nil, true)
	r.bind("placeholder", false, delegate, nil, true)
}

// RegisterPreprocessor installs a named, reusable preprocessor (for
// composite parts or custom attributes to reference by name). enableCache
// mirrors the handler-level trivial/non-trivial cache opt-in.
func (r *Registry) RegisterPreprocessor(name string, enableCache bool, fn Preprocessor) {
	r.preprocs[name] = fn
	if h, ok := r.handlers[r.Ids.IDForName(name)]; ok {
		h.AddPreprocessor(fn, !enableCache)
	}
}

// SetMeasureDelegate installs the view class's measure delegate, consulted
// whenever an InvalidateLayoutOnChange attribute changes.
func (r *Registry) SetMeasureDelegate(delegate MeasureDelegate) {
	r.measure = delegate
}

// MeasureDelegate returns the registered measure delegate, if any.
func (r *Registry) MeasureDelegate() MeasureDelegate { return r.measure }
