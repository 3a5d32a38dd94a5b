/*
Package dot outputs trees of nodes in Graphviz DOT format, mainly for debugging.

Children are connected to their parent by solid edges, siblings to their next
sibling by dashed edges:

	dot.Fprint(os.Stdout, root, nil)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package dot

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/nodetree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

type nodeids[T any] struct {
	idTable map[*nodetree.Node[T]]int
	max     int
}

func newtable[T any]() nodeids[T] {
	return nodeids[T]{
		idTable: make(map[*nodetree.Node[T]]int),
		max:     1,
	}
}

func (ids nodeids[T]) find(node *nodetree.Node[T]) int {
	return ids.idTable[node]
}

func (ids *nodeids[T]) alloc(node *nodetree.Node[T]) int {
	if id := ids.find(node); id > 0 {
		return id
	}
	ids.idTable[node] = ids.max
	ids.max++
	return ids.max - 1
}

// Fprint outputs the subtree under root in Graphviz DOT format to w.
// label produces node labels; if nil, node values are printed.
func Fprint[T any](w io.Writer, root *nodetree.Node[T], label func(*nodetree.Node[T]) string) error {
	if root == nil {
		return errors.New("dot: root is nil")
	}
	if label == nil {
		label = func(n *nodetree.Node[T]) string { return fmt.Sprint(n.Value()) }
	}
	ids := newtable[T]()
	var nodelist, edgelist strings.Builder
	var walk func(*nodetree.Node[T], int)
	walk = func(node *nodetree.Node[T], depth int) {
		ID := ids.alloc(node)
		styles := nodeDotStyles(node.HasChildNodes(), depth)
		fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\"%s];\n", ID, escape(label(node)), styles)
		for child := range node.Children() {
			fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", ID, ids.alloc(child))
			if next := child.NextSibling(); next != nil {
				fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\" [style=dashed,constraint=false];\n",
					ids.alloc(child), ids.alloc(next))
			}
			walk(child, depth+1)
		}
	}
	walk(root, 0)
	tracer().Debugf("dot: %d nodes", ids.max-1)
	var err error
	write := func(s string) {
		if err == nil {
			_, err = io.WriteString(w, s)
		}
	}
	write("strict digraph {\n")
	write("\tnode [fontname=Arial,fontsize=12];\n")
	write(nodelist.String())
	write(edgelist.String())
	write("}\n")
	return err
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(s)
}

func nodeDotStyles(inner bool, depth int) string {
	s := ",style=filled"
	if inner {
		s += ",color=black,shape=circle"
	} else {
		s += ",shape=box"
	}
	return s + fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[depth%len(hexcolors)])
}

var hexcolors = [...]string{"white", "#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}
