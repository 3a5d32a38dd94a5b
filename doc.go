/*
Package nodetree offers generic, ordered, in-memory trees of arbitrary payload values.

Nodes

Each node carries a payload value of type T and links to a parent, an ordered
list of children and its adjacent siblings. The payload type does not need to
know anything about tree structure:

	root := nodetree.MustCreateNode("root")
	a := nodetree.MustCreateNode("a")
	root.AppendChild(a)

Nodes are handles. A handle is created together with a structural record in an
index (see package structure) and keeps its identity for the lifetime of the
record, regardless of how often the node is moved. Two handles are the same node
iff they are pointer-equal.

Every insertion first detaches the node to insert from wherever it currently
sits. A node can therefore never be linked into two places, and moving a node to
the position it already occupies is a no-op.

Forests

All nodes created through one Forest share one structural index and may be
linked with each other. Nodes of different forests cannot be mixed. Package-level
CreateNode uses a default forest per payload type.

Extensions

A forest or a single CreateNode call may be configured with an extension hook,
called once per node at construction time. The hook may attach an arbitrary
value to the node, which clients retrieve with ExtensionOf. Package decor builds
typed decorated nodes on top of this mechanism.

Nodes and forests are not safe for concurrent use.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–26, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package nodetree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// tracer is T for code with a type parameter named T.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}
