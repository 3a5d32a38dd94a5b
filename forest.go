package nodetree

import (
	"errors"
	"fmt"
	"sync"

	"github.com/npillmayer/nodetree/structure"
)

// Config configures a forest.
type Config[T any] struct {
	// InitialCapacity is the number of node records to pre-allocate.
	InitialCapacity int
	// Extend is the default extension hook for nodes of the forest.
	// It may be overridden per CreateNode call.
	Extend ExtendFunc[T]
}

// Forest is a family of trees sharing one structural index. Nodes of a forest may
// be linked with each other, but not with nodes of another forest.
type Forest[T any] struct {
	ix     *structure.Index[*Node[T]]
	extend ExtendFunc[T]
}

// NewForest creates an empty forest. At most one configuration is honoured.
func NewForest[T any](cfg ...Config[T]) (*Forest[T], error) {
	var c Config[T]
	if len(cfg) > 0 {
		c = cfg[0]
	}
	ix, err := structure.New[*Node[T]](structure.Config{InitialCapacity: c.InitialCapacity})
	if err != nil {
		return nil, err
	}
	return &Forest[T]{ix: ix, extend: c.Extend}, nil
}

// CreateNode creates a new detached node in forest f carrying value.
//
// If an extension hook is configured, either in opts or as the forest's default,
// it is called exactly once after the node has been linked to its record and
// before the node is returned. A failing hook fails the construction: the node
// is released and the hook's error is returned, wrapped into ErrExtension.
// A panicking hook releases the node as well before the panic continues.
func (f *Forest[T]) CreateNode(value T, opts ...Options[T]) (*Node[T], error) {
	node := &Node[T]{value: value, forest: f}
	node.ref = f.ix.Initialize(node)
	extend := f.extend
	for _, o := range opts {
		if o.Extend != nil {
			extend = o.Extend
		}
	}
	if extend == nil {
		return node, nil
	}
	ext, err := f.callExtend(extend, node)
	if err != nil {
		f.discard(node)
		tracer().Errorf("nodetree: extension hook failed for %v: %v", value, err)
		return nil, fmt.Errorf("%w: %w", ErrExtension, err)
	}
	node.ext = ext
	return node, nil
}

// callExtend runs the hook. A panicking hook leaves no record behind.
func (f *Forest[T]) callExtend(extend ExtendFunc[T], node *Node[T]) (any, error) {
	defer func() {
		if r := recover(); r != nil {
			f.discard(node)
			panic(r)
		}
	}()
	return extend(Hook[T]{Node: node, Ref: node.ref, Index: f.ix, Forest: f})
}

// discard undoes whatever a failed extension hook linked, then frees the record.
func (f *Forest[T]) discard(node *Node[T]) {
	if !f.ix.Valid(node.ref) {
		return
	}
	f.ix.Remove(node.ref)
	for c := f.ix.FirstChild(node.ref); c != structure.NoRef; c = f.ix.FirstChild(node.ref) {
		f.ix.Remove(c)
	}
	err := f.ix.Free(node.ref)
	assert(err == nil, "cannot free node of failed construction")
}

// Release frees the record of a detached node without children. The node must
// not be used afterwards; operations on it fail with ErrReleased and queries on it
// report absence.
func (f *Forest[T]) Release(node *Node[T]) error {
	if node == nil {
		return ErrNilNode
	}
	if node.forest != f {
		return fmt.Errorf("%w: %s", ErrForeignNode, node)
	}
	if err := f.ix.Free(node.ref); err != nil {
		if errors.Is(err, structure.ErrInvalidRef) {
			return fmt.Errorf("%w: %s", ErrReleased, node)
		}
		return fmt.Errorf("nodetree: release %s: %w", node, err)
	}
	node.ext = nil
	return nil
}

// Len returns the number of live nodes of f.
func (f *Forest[T]) Len() int {
	return f.ix.Len()
}

// Check validates the structural invariants of all trees of f.
func (f *Forest[T]) Check() error {
	return f.ix.Check()
}

// OnChange registers a listener for structural changes of f.
// The returned function unregisters it.
func (f *Forest[T]) OnChange(fn structure.Listener) (cancel func()) {
	return f.ix.OnChange(fn)
}

// Node maps a record reference of f back to its node, or nil if r is not a
// live record of f.
func (f *Forest[T]) Node(r structure.Ref) *Node[T] {
	n, _ := f.ix.Payload(r)
	return n
}

// --- Default forests -------------------------------------------------------

var defaults = struct {
	sync.Mutex
	forests map[any]any // keyed by a typed nil *T
}{forests: make(map[any]any)}

// DefaultForest returns the process-wide forest for payload type T, creating it
// on first use. Only the lookup is synchronized, not the forest itself.
func DefaultForest[T any]() *Forest[T] {
	var key *T
	defaults.Lock()
	defer defaults.Unlock()
	if f, ok := defaults.forests[key]; ok {
		return f.(*Forest[T])
	}
	f, err := NewForest[T]()
	assert(err == nil, "cannot create default forest")
	defaults.forests[key] = f
	return f
}

// CreateNode creates a new detached node carrying value in the default forest
// for T. See Forest.CreateNode.
func CreateNode[T any](value T, opts ...Options[T]) (*Node[T], error) {
	return DefaultForest[T]().CreateNode(value, opts...)
}

// MustCreateNode is like CreateNode, but panics if an extension hook fails.
func MustCreateNode[T any](value T, opts ...Options[T]) *Node[T] {
	n, err := CreateNode(value, opts...)
	if err != nil {
		panic(err)
	}
	return n
}
