// Package layer builds the view-node tree on top of graphics.Layer:
// ViewNode wraps a Layer with accessibility metadata and a stable class
// name, and ScrollLayer/AnimatedImageLayer specialize it for scroll
// physics and animated-image playback (spec §4.7, §4.8).
package layer

import (
	"github.com/go-drift/engine/pkg/animation"
	"github.com/go-drift/engine/pkg/graphics"
)

// AccessibilityCategory classifies a ViewNode's role for accessibility
// announcement, ported from ViewNodeAccessibility.hpp.
type AccessibilityCategory int

const (
	AccessibilityCategoryAuto AccessibilityCategory = iota
	AccessibilityCategoryView
	AccessibilityCategoryText
	AccessibilityCategoryButton
	AccessibilityCategoryImage
	AccessibilityCategoryImageButton
	AccessibilityCategoryInput
	AccessibilityCategoryHeader
	AccessibilityCategoryLink
	AccessibilityCategoryCheckBox
	AccessibilityCategoryRadio
	AccessibilityCategoryKeyboardKey
)

// AccessibilityNavigation controls how accessibility tooling walks the
// ViewNode tree, ported from ViewNodeAccessibility.hpp.
type AccessibilityNavigation int

const (
	AccessibilityNavigationAuto AccessibilityNavigation = iota
	AccessibilityNavigationPassthrough
	AccessibilityNavigationLeaf
	AccessibilityNavigationCover
	AccessibilityNavigationGroup
	AccessibilityNavigationIgnored
)

// AccessibilityState holds the accessibility metadata attached to a
// ViewNode, ported from ViewNodeAccessibilityState.hpp.
type AccessibilityState struct {
	Category     AccessibilityCategory
	Navigation   AccessibilityNavigation
	Priority     float64
	Label        string
	Hint         string
	Value        string
	ID           string
	Disabled     bool
	Selected     bool
	LiveRegion   bool
}

// HasContent reports whether the state carries any announceable content.
func (s AccessibilityState) HasContent() bool {
	return s.Label != "" || s.Hint != "" || s.Value != ""
}

// ViewNode is the addressable node a materialized view sits behind: a
// graphics.Layer plus the bookkeeping the attribute pipeline and
// accessibility tree need (a stable id, a class name used for attribute
// handler lookup, and accessibility metadata).
type ViewNode struct {
	*graphics.Layer

	ID            int64
	ClassName     string
	Accessibility AccessibilityState

	lazyLayout bool
}

var nextViewNodeID int64

// nextID returns a process-wide monotonically increasing id. Exposed as a
// function (not a package-level counter the caller increments) so tests
// can construct nodes without id collisions across packages.
func nextID() int64 {
	nextViewNodeID++
	return nextViewNodeID
}

// NewViewNode constructs a ViewNode of the given class, wrapping a fresh
// Layer.
func NewViewNode(className string) *ViewNode {
	n := &ViewNode{
		Layer:     graphics.NewLayer(),
		ID:        nextID(),
		ClassName: className,
	}
	n.Layer.UserData = n
	return n
}

// SetLazyLayout marks whether this node's layout is computed on-demand
// (e.g. only when scrolled into view) rather than eagerly.
func (n *ViewNode) SetLazyLayout(lazy bool) { n.lazyLayout = lazy }

// LazyLayout reports whether this node's layout is lazy.
func (n *ViewNode) LazyLayout() bool { return n.lazyLayout }

// borderRadiusAnimationKey is the reserved AnimationMap key a border-radius
// transition registers itself under.
const borderRadiusAnimationKey = "borderRadius"

// AnimateBorderRadius installs a time animation blending the node's current
// border radius to target over cfg.Duration, resolving percent corners
// against the node's own frame at each step. cfg.Applier is overwritten.
func (n *ViewNode) AnimateBorderRadius(target graphics.BorderRadius, cfg animation.TimingConfig) {
	cfg.Applier = animation.BorderRadiusApplier(n.BorderRadius, target)
	n.Animations[borderRadiusAnimationKey] = animation.NewTimeAnimation(cfg)
}
