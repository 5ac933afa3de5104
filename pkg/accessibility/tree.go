// Package accessibility derives a flattened accessibility tree from a
// layer.ViewNode tree, ported from ViewNodeAccessibility.hpp's category/
// navigation model and adapted from the teacher's pkg/semantics merge
// rules (a node that is Ignored contributes nothing; a node that is
// Passthrough contributes nothing itself but its children attach to its
// nearest reachable ancestor, mirroring SemanticsConfiguration's
// boundary-vs-merge distinction without that package's generic-merge
// machinery, since the accessibility tree here has a fixed property set
// rather than arbitrary accumulated actions).
package accessibility

import (
	"github.com/go-drift/engine/pkg/graphics"
	"github.com/go-drift/engine/pkg/layer"
)

// Node is one entry in the derived accessibility tree.
type Node struct {
	Source   *layer.ViewNode
	Category layer.AccessibilityCategory
	State    layer.AccessibilityState
	Children []*Node
}

// DeriveTree walks root depth-first in paint order and returns the
// flattened accessibility tree. A node whose navigation is Ignored is
// dropped along with its entire subtree; Passthrough nodes are dropped
// but their children are spliced into the parent in their place; every
// other node becomes a Node carrying its own state and its (recursively
// derived) children.
// DeriveTree assumes root itself contributes exactly one accessibility
// node (the ordinary case for a tree's outermost container); a root with
// Passthrough navigation that fans out to multiple children returns only
// the first one, since the return type has no synthetic-root slot to
// gather siblings under.
func DeriveTree(root *layer.ViewNode) *Node {
	nodes := deriveChildren(root)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// deriveChildren returns the accessibility nodes that node itself
// contributes at this level of the tree: zero (Ignored or no content and
// Auto with nothing to say), one (the normal case), or more (Passthrough
// splices in all of its children's contributed nodes).
func deriveChildren(node *layer.ViewNode) []*Node {
	if node == nil {
		return nil
	}

	var childNodes []*Node
	for _, child := range node.Children() {
		if vn, ok := childViewNode(child); ok {
			childNodes = append(childNodes, deriveChildren(vn)...)
		}
	}

	switch node.Accessibility.Navigation {
	case layer.AccessibilityNavigationIgnored:
		return nil
	case layer.AccessibilityNavigationPassthrough:
		return childNodes
	case layer.AccessibilityNavigationLeaf:
		return []*Node{{Source: node, Category: node.Accessibility.Category, State: node.Accessibility}}
	default:
		if !shouldContribute(node) {
			return childNodes
		}
		return []*Node{{
			Source:   node,
			Category: node.Accessibility.Category,
			State:    node.Accessibility,
			Children: childNodes,
		}}
	}
}

// shouldContribute reports whether an Auto/Cover/Group navigation node
// contributes its own accessibility node, as opposed to being transparent
// like Passthrough. Cover and Group always contribute (they define an
// explicit grouping boundary); Auto contributes only if it actually
// carries announceable content, mirroring SemanticsConfiguration's
// IsEmpty() check for whether a render object is a semantics boundary.
func shouldContribute(node *layer.ViewNode) bool {
	switch node.Accessibility.Navigation {
	case layer.AccessibilityNavigationCover, layer.AccessibilityNavigationGroup:
		return true
	default:
		return node.Accessibility.HasContent() || node.Accessibility.Category != layer.AccessibilityCategoryAuto
	}
}

// childViewNode recovers the *layer.ViewNode wrapping a *graphics.Layer
// child, set by layer.NewViewNode onto its Layer.UserData.
func childViewNode(l *graphics.Layer) (*layer.ViewNode, bool) {
	vn, ok := l.UserData.(*layer.ViewNode)
	return vn, ok
}
