package nodetree

import "github.com/npillmayer/nodetree/structure"

// NodeError is an error type for the nodetree module.
type NodeError string

func (e NodeError) Error() string {
	return string(e)
}

// ErrNotAChild is flagged by RemoveChild, InsertBefore and InsertAfter whenever
// the node named as child or reference node is not a direct child of the receiver.
const ErrNotAChild = NodeError("not a child of this node")

// ErrForeignNode is flagged whenever nodes of different forests are to be linked.
const ErrForeignNode = NodeError("node belongs to a different forest")

// ErrReleased is flagged whenever a node is used after it has been released.
const ErrReleased = NodeError("node has been released")

// ErrNilNode is flagged whenever a nil node is passed as an operand.
const ErrNilNode = NodeError("node is nil")

// ErrExtension wraps errors returned by an extension hook.
const ErrExtension = NodeError("node extension failed")

var (
	// ErrNoParent is flagged if a reference node for an insertion has no parent.
	ErrNoParent = structure.ErrNoParent
	// ErrCycle is flagged if a node would become its own ancestor.
	ErrCycle = structure.ErrCycle
	// ErrAttached is flagged if a node to be released is still part of a tree.
	ErrAttached = structure.ErrAttached
)
