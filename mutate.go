package nodetree

import "fmt"

// Remove detaches n from its parent and returns n. Removing a root or a detached
// node is a no-op. The subtree below n stays intact.
func (n *Node[T]) Remove() *Node[T] {
	n.forest.ix.Remove(n.ref)
	return n
}

// RemoveChild detaches child from n and returns it. It fails with ErrNotAChild
// if child is not a direct child of n.
func (n *Node[T]) RemoveChild(child *Node[T]) (*Node[T], error) {
	if err := n.operands(child); err != nil {
		return nil, err
	}
	if err := n.ensureParent(child); err != nil {
		return nil, err
	}
	n.forest.ix.Remove(child.ref)
	return child, nil
}

// InsertBefore links newNode into the children of n, immediately before
// referenceNode, and returns newNode. referenceNode has to be a direct child of n,
// otherwise ErrNotAChild is returned. newNode is detached from its current
// position first.
func (n *Node[T]) InsertBefore(newNode, referenceNode *Node[T]) (*Node[T], error) {
	if err := n.operands(newNode, referenceNode); err != nil {
		return nil, err
	}
	if err := n.ensureParent(referenceNode); err != nil {
		return nil, err
	}
	if _, err := n.forest.ix.InsertBefore(referenceNode.ref, newNode.ref); err != nil {
		return nil, n.failed("insert before", err)
	}
	return newNode, nil
}

// InsertAfter links newNode into the children of n, immediately after
// referenceNode, and returns newNode. referenceNode has to be a direct child of n,
// otherwise ErrNotAChild is returned. newNode is detached from its current
// position first.
func (n *Node[T]) InsertAfter(newNode, referenceNode *Node[T]) (*Node[T], error) {
	if err := n.operands(newNode, referenceNode); err != nil {
		return nil, err
	}
	if err := n.ensureParent(referenceNode); err != nil {
		return nil, err
	}
	if _, err := n.forest.ix.InsertAfter(referenceNode.ref, newNode.ref); err != nil {
		return nil, n.failed("insert after", err)
	}
	return newNode, nil
}

// PrependChild links child as the first child of n and returns child.
// child is detached from its current position first.
func (n *Node[T]) PrependChild(child *Node[T]) (*Node[T], error) {
	if err := n.operands(child); err != nil {
		return nil, err
	}
	if _, err := n.forest.ix.PrependChild(n.ref, child.ref); err != nil {
		return nil, n.failed("prepend child", err)
	}
	return child, nil
}

// AppendChild links child as the last child of n and returns child.
// child is detached from its current position first.
func (n *Node[T]) AppendChild(child *Node[T]) (*Node[T], error) {
	if err := n.operands(child); err != nil {
		return nil, err
	}
	if _, err := n.forest.ix.AppendChild(n.ref, child.ref); err != nil {
		return nil, n.failed("append child", err)
	}
	return child, nil
}

// ensureParent checks that child is a direct child of n.
func (n *Node[T]) ensureParent(child *Node[T]) error {
	if n.forest.ix.Parent(child.ref) != n.ref {
		tracer().Errorf("nodetree: %s is not a child of %s", child, n)
		return fmt.Errorf("%w: %s", ErrNotAChild, child)
	}
	return nil
}

// operands checks that n and all others are live nodes of the same forest.
func (n *Node[T]) operands(others ...*Node[T]) error {
	if n == nil {
		return ErrNilNode
	}
	if !n.forest.ix.Valid(n.ref) {
		return fmt.Errorf("%w: %s", ErrReleased, n)
	}
	for _, o := range others {
		if o == nil {
			return ErrNilNode
		}
		if o.forest != n.forest {
			return fmt.Errorf("%w: %s", ErrForeignNode, o)
		}
		if !n.forest.ix.Valid(o.ref) {
			return fmt.Errorf("%w: %s", ErrReleased, o)
		}
	}
	return nil
}

func (n *Node[T]) failed(op string, err error) error {
	tracer().Errorf("nodetree: %s on %s: %v", op, n, err)
	return fmt.Errorf("nodetree: %s: %w", op, err)
}
