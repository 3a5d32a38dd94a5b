/*
Package decor decorates tree nodes with typed capabilities.

A Factory creates nodes of a forest and attaches a capability of type X to each
of them through the node extension hook. Nodes reached by navigating the tree
are plain core nodes; Of recovers the decorated view for them.

	type Outline struct{ n *nodetree.Node[string] }

	func (o Outline) SecondChild() *nodetree.Node[string] { ... }

	fac, _ := decor.New(nil, func(n *nodetree.Node[string]) Outline { return Outline{n} })
	chapter, _ := fac.Create("chapter")
	chapter.Ext.SecondChild()

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package decor

import (
	"errors"

	"github.com/npillmayer/nodetree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// ErrNoBuilder is returned by New if no capability builder is given.
var ErrNoBuilder = errors.New("decor: capability builder must not be nil")

// Node is a core node together with its capability.
type Node[T, X any] struct {
	*nodetree.Node[T]
	Ext X
}

// Factory creates decorated nodes.
type Factory[T, X any] struct {
	forest *nodetree.Forest[T]
	build  func(*nodetree.Node[T]) X
}

// New creates a factory for nodes of forest, decorated by build. A nil forest
// selects the default forest for T.
func New[T, X any](forest *nodetree.Forest[T], build func(*nodetree.Node[T]) X) (*Factory[T, X], error) {
	if build == nil {
		return nil, ErrNoBuilder
	}
	if forest == nil {
		forest = nodetree.DefaultForest[T]()
	}
	return &Factory[T, X]{forest: forest, build: build}, nil
}

// Forest returns the forest the factory creates nodes in.
func (fac *Factory[T, X]) Forest() *nodetree.Forest[T] {
	return fac.forest
}

// Create creates a detached node carrying value and decorates it.
func (fac *Factory[T, X]) Create(value T) (Node[T, X], error) {
	n, err := fac.forest.CreateNode(value, nodetree.Options[T]{
		Extend: fac.extend,
	})
	if err != nil {
		return Node[T, X]{}, err
	}
	x, _ := nodetree.ExtensionOf[X](n)
	tracer().Debugf("decor: created %s", n)
	return Node[T, X]{Node: n, Ext: x}, nil
}

func (fac *Factory[T, X]) extend(h nodetree.Hook[T]) (any, error) {
	return fac.build(h.Node), nil
}

// Of returns the decorated view of n. It reports false if n has not been
// created by a factory for capability X.
func Of[X, T any](n *nodetree.Node[T]) (Node[T, X], bool) {
	x, ok := nodetree.ExtensionOf[X](n)
	if !ok {
		return Node[T, X]{}, false
	}
	return Node[T, X]{Node: n, Ext: x}, true
}
