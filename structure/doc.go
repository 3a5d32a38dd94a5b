/*
Package structure implements the structural index of node trees: an arena of
records, one per tree node, holding nothing but a payload and the links to
parent, first and last child, and previous and next sibling.

The index is the single source of truth for tree shape. Clients address records
by Ref, an opaque token packing a slot number and a generation count. Released
slots are recycled with a bumped generation, so a Ref outliving its record is
detected instead of silently aliasing a newer one.

All insertion primitives detach the record to be inserted first. A record can
therefore never be linked under two parents or appear twice in one sibling list,
and moving a record to the place it already occupies leaves the links unchanged.
Every primitive validates its arguments before touching a link; a failing call
leaves the index as it was.

Complexity:

	Parent, FirstChild, LastChild,
	PreviousSibling, NextSibling, HasChildren   O(1)
	ChildrenToArray, Index                      O(children)
	AncestorsToArray                            O(depth)
	Remove                                      O(1)
	InsertBefore, InsertAfter,
	PrependChild, AppendChild                   O(depth)   (cycle check)

An index is not safe for concurrent use. Clients mutating a forest from more than
one goroutine have to serialize all calls.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package structure

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

func init() {
	if gtrace.CoreTracer == nil {
		gtrace.CoreTracer = gologadapter.New()
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	}
}

// tracer traces to the global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

func assert(condition bool, msg string) {
	if !condition {
		panic("structure: " + msg)
	}
}
