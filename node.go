package nodetree

import (
	"fmt"
	"iter"

	"github.com/npillmayer/nodetree/structure"
)

// Node is a handle for a tree node carrying a payload of type T.
//
// Nodes are created by Forest.CreateNode or CreateNode, never by a composite
// literal. A node's structural links live in the index of its forest; the node
// itself holds the payload, its record reference and an optional extension.
type Node[T any] struct {
	value  T
	ref    structure.Ref
	forest *Forest[T]
	ext    any
}

// isNode is the marker checked by IsNode.
func (n *Node[T]) isNode() bool {
	return n != nil && n.forest != nil && n.forest.ix.Valid(n.ref)
}

// noder is implemented by *Node[T] for every T, and by nothing outside this package.
type noder interface {
	isNode() bool
}

// IsNode reports whether v is a live node handle produced by this package.
// Values which merely look like a node do not qualify.
func IsNode(v any) bool {
	n, ok := v.(noder)
	return ok && n.isNode()
}

// Value returns the payload of n.
func (n *Node[T]) Value() T {
	return n.value
}

// SetValue replaces the payload of n. It has no structural side effect.
func (n *Node[T]) SetValue(value T) {
	n.value = value
}

// Forest returns the forest n belongs to.
func (n *Node[T]) Forest() *Forest[T] {
	return n.forest
}

// Ref returns the structural record reference of n.
func (n *Node[T]) Ref() structure.Ref {
	return n.ref
}

// Extension returns the value an extension hook attached to n, if any.
func (n *Node[T]) Extension() any {
	return n.ext
}

// handle maps a record reference to its node, or to nil for NoRef.
func (n *Node[T]) handle(r structure.Ref) *Node[T] {
	if r == structure.NoRef {
		return nil
	}
	h, ok := n.forest.ix.Payload(r)
	assert(ok, "record without handle")
	return h
}

// ParentNode returns the parent of n, or nil for roots and detached nodes.
func (n *Node[T]) ParentNode() *Node[T] {
	return n.handle(n.forest.ix.Parent(n.ref))
}

// FirstChild returns the first child of n, or nil.
func (n *Node[T]) FirstChild() *Node[T] {
	return n.handle(n.forest.ix.FirstChild(n.ref))
}

// LastChild returns the last child of n, or nil.
func (n *Node[T]) LastChild() *Node[T] {
	return n.handle(n.forest.ix.LastChild(n.ref))
}

// PreviousSibling returns the sibling preceding n, or nil.
func (n *Node[T]) PreviousSibling() *Node[T] {
	return n.handle(n.forest.ix.PreviousSibling(n.ref))
}

// NextSibling returns the sibling following n, or nil.
func (n *Node[T]) NextSibling() *Node[T] {
	return n.handle(n.forest.ix.NextSibling(n.ref))
}

// HasChildNodes reports whether n has children.
func (n *Node[T]) HasChildNodes() bool {
	return n.forest.ix.HasChildren(n.ref)
}

// ChildNodes returns the children of n in order. The slice is a snapshot and is
// not affected by subsequent mutations.
func (n *Node[T]) ChildNodes() []*Node[T] {
	return n.handles(n.forest.ix.ChildrenToArray(n.ref))
}

// AncestorNodes returns n, its parent, its grandparent, and so on up to the root.
// The first element is always n itself. The slice is a snapshot.
func (n *Node[T]) AncestorNodes() []*Node[T] {
	return n.handles(n.forest.ix.AncestorsToArray(n.ref))
}

func (n *Node[T]) handles(refs []structure.Ref) []*Node[T] {
	nodes := make([]*Node[T], len(refs))
	for i, r := range refs {
		nodes[i] = n.handle(r)
	}
	return nodes
}

// Children iterates over the children of n without allocating a snapshot.
// The children of n must not be re-linked during iteration.
func (n *Node[T]) Children() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		for r := range n.forest.ix.Children(n.ref) {
			if !yield(n.handle(r)) {
				return
			}
		}
	}
}

// Ancestors iterates over n and its ancestors, starting with n.
func (n *Node[T]) Ancestors() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		for r := range n.forest.ix.Ancestors(n.ref) {
			if !yield(n.handle(r)) {
				return
			}
		}
	}
}

// Index returns the position of n among its siblings. Roots and detached nodes
// have index 0.
func (n *Node[T]) Index() int {
	return n.forest.ix.Index(n.ref)
}

// Depth returns the number of ancestors of n, not counting n itself.
func (n *Node[T]) Depth() int {
	return n.forest.ix.Depth(n.ref)
}

// IsRoot reports whether n has no parent.
func (n *Node[T]) IsRoot() bool {
	return n.forest.ix.Parent(n.ref) == structure.NoRef
}

// Root returns the topmost ancestor of n, which is n itself for roots.
func (n *Node[T]) Root() *Node[T] {
	root := n
	for a := range n.Ancestors() {
		root = a
	}
	return root
}

func (n *Node[T]) String() string {
	if n == nil {
		return "<nil node>"
	}
	return fmt.Sprintf("node%s(%v)", n.ref, n.value)
}

func assert(condition bool, msg string) {
	if !condition {
		panic("nodetree: " + msg)
	}
}
