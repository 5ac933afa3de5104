package accessibility_test

import (
	"testing"

	"github.com/go-drift/engine/pkg/accessibility"
	"github.com/go-drift/engine/pkg/layer"
)

func TestDeriveTreeOrdinaryNodeKeepsItsChildren(t *testing.T) {
	root := layer.NewViewNode("Root")
	root.Accessibility.Label = "root"
	child := layer.NewViewNode("Child")
	child.Accessibility.Label = "child"
	root.AddChild(child.Layer)

	tree := accessibility.DeriveTree(root)
	if tree == nil {
		t.Fatalf("DeriveTree returned nil for a node with content")
	}
	if tree.Source != root {
		t.Fatalf("tree.Source = %v; want root", tree.Source)
	}
	if len(tree.Children) != 1 || tree.Children[0].Source != child {
		t.Fatalf("expected root to keep its one child, got %+v", tree.Children)
	}
}

func TestDeriveTreeIgnoredNodeDropsItsWholeSubtree(t *testing.T) {
	root := layer.NewViewNode("Root")
	root.Accessibility.Label = "root"
	ignored := layer.NewViewNode("Ignored")
	ignored.Accessibility.Navigation = layer.AccessibilityNavigationIgnored
	grandchild := layer.NewViewNode("Grandchild")
	grandchild.Accessibility.Label = "should never appear"
	ignored.AddChild(grandchild.Layer)
	root.AddChild(ignored.Layer)

	tree := accessibility.DeriveTree(root)
	if tree == nil {
		t.Fatalf("DeriveTree returned nil unexpectedly")
	}
	if len(tree.Children) != 0 {
		t.Fatalf("expected the ignored subtree to be dropped entirely, got %+v", tree.Children)
	}
}

func TestDeriveTreePassthroughSplicesChildrenIntoParent(t *testing.T) {
	root := layer.NewViewNode("Root")
	root.Accessibility.Label = "root"
	pass := layer.NewViewNode("Passthrough")
	pass.Accessibility.Navigation = layer.AccessibilityNavigationPassthrough
	leaf1 := layer.NewViewNode("Leaf1")
	leaf1.Accessibility.Label = "one"
	leaf2 := layer.NewViewNode("Leaf2")
	leaf2.Accessibility.Label = "two"
	pass.AddChild(leaf1.Layer)
	pass.AddChild(leaf2.Layer)
	root.AddChild(pass.Layer)

	tree := accessibility.DeriveTree(root)
	if tree == nil || len(tree.Children) != 2 {
		t.Fatalf("expected the passthrough node's two children spliced directly under root, got %+v", tree)
	}
	if tree.Children[0].Source != leaf1 || tree.Children[1].Source != leaf2 {
		t.Fatalf("passthrough children out of order or identity mismatch: %+v", tree.Children)
	}
}

func TestDeriveTreeLeafNodeDropsItsChildren(t *testing.T) {
	root := layer.NewViewNode("Root")
	root.Accessibility.Label = "root"
	leaf := layer.NewViewNode("Leaf")
	leaf.Accessibility.Navigation = layer.AccessibilityNavigationLeaf
	leaf.Accessibility.Label = "leaf"
	hidden := layer.NewViewNode("Hidden")
	hidden.Accessibility.Label = "should not surface through a leaf"
	leaf.AddChild(hidden.Layer)
	root.AddChild(leaf.Layer)

	tree := accessibility.DeriveTree(root)
	if len(tree.Children) != 1 {
		t.Fatalf("expected exactly one child (the leaf), got %+v", tree.Children)
	}
	leafNode := tree.Children[0]
	if len(leafNode.Children) != 0 {
		t.Fatalf("a Leaf navigation node should never expose its own children, got %+v", leafNode.Children)
	}
}

func TestDeriveTreeAutoNodeWithNoContentIsTransparent(t *testing.T) {
	root := layer.NewViewNode("Root")
	root.Accessibility.Label = "root"
	empty := layer.NewViewNode("Empty")
	leaf := layer.NewViewNode("Leaf")
	leaf.Accessibility.Label = "reachable"
	empty.AddChild(leaf.Layer)
	root.AddChild(empty.Layer)

	tree := accessibility.DeriveTree(root)
	if len(tree.Children) != 1 || tree.Children[0].Source != leaf {
		t.Fatalf("an Auto node with no announceable content should be transparent, got %+v", tree.Children)
	}
}

func TestDeriveTreeGroupNodeAlwaysContributesEvenWithoutContent(t *testing.T) {
	root := layer.NewViewNode("Root")
	root.Accessibility.Label = "root"
	group := layer.NewViewNode("Group")
	group.Accessibility.Navigation = layer.AccessibilityNavigationGroup
	root.AddChild(group.Layer)

	tree := accessibility.DeriveTree(root)
	if len(tree.Children) != 1 || tree.Children[0].Source != group {
		t.Fatalf("a Group navigation node must contribute its own node even with no content, got %+v", tree.Children)
	}
}

func TestDeriveTreeOnNilRootReturnsNil(t *testing.T) {
	if tree := accessibility.DeriveTree(nil); tree != nil {
		t.Fatalf("DeriveTree(nil) = %+v; want nil", tree)
	}
}
