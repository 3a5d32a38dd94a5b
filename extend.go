package nodetree

import "github.com/npillmayer/nodetree/structure"

// Options are per-node construction options.
type Options[T any] struct {
	// Extend, if set, overrides the forest's default extension hook.
	Extend ExtendFunc[T]
}

// Hook is handed to an extension hook during node construction. Node and Ref are
// already linked to each other when the hook runs; the node is still detached.
type Hook[T any] struct {
	Node   *Node[T]                   // the new node
	Ref    structure.Ref              // the node's structural record
	Index  *structure.Index[*Node[T]] // the index of the node's forest
	Forest *Forest[T]                 // the forest the node belongs to
}

// ExtendFunc is an extension hook. It is called once per node at construction
// time and may return a value to attach to the node (nil for none). The core
// neither inspects the value nor keeps it consistent when the node moves.
// A non-nil error fails the construction of the node.
type ExtendFunc[T any] func(h Hook[T]) (any, error)

// ExtensionOf returns the extension value of n, if it is of type X.
//
//	counter, ok := nodetree.ExtensionOf[*Counter](n)
func ExtensionOf[X, T any](n *Node[T]) (X, bool) {
	var zero X
	if n == nil || n.ext == nil {
		return zero, false
	}
	x, ok := n.ext.(X)
	return x, ok
}
