/*
Package htmltree builds node trees from HTML documents.

The structure of the HTML DOM is mirrored one-to-one: every html.Node becomes a
tree node carrying an Element. Whitespace text nodes are kept.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package htmltree

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/nodetree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// ErrIllegalArguments is returned for nil input nodes.
var ErrIllegalArguments = errors.New("htmltree: illegal arguments")

// Element is the payload of a tree node built from HTML.
type Element struct {
	Type html.NodeType
	Tag  string           // element or doctype name
	Attr []html.Attribute // attributes of element nodes
	Text string           // content of text and comment nodes
}

func (e Element) String() string {
	switch e.Type {
	case html.TextNode:
		return fmt.Sprintf("%q", e.Text)
	case html.CommentNode:
		return "<!--" + e.Text + "-->"
	case html.DocumentNode:
		return "#document"
	case html.DoctypeNode:
		return "<!DOCTYPE " + e.Tag + ">"
	}
	return "<" + e.Tag + ">"
}

// Attribute returns the value of attribute key of an element.
func (e Element) Attribute(key string) (string, bool) {
	for _, a := range e.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func element(n *html.Node) Element {
	e := Element{Type: n.Type}
	switch n.Type {
	case html.TextNode, html.CommentNode:
		e.Text = n.Data
	case html.ElementNode, html.DoctypeNode:
		e.Tag = n.Data
		e.Attr = append([]html.Attribute(nil), n.Attr...)
	}
	return e
}

// FromHTML creates a tree in forest mirroring the HTML DOM under n and returns
// its root. A nil forest selects the default forest for Element. If the tree
// cannot be completed, the nodes created so far are released again.
func FromHTML(forest *nodetree.Forest[Element], n *html.Node) (*nodetree.Node[Element], error) {
	if n == nil {
		return nil, ErrIllegalArguments
	}
	if forest == nil {
		forest = nodetree.DefaultForest[Element]()
	}
	return fromHTML(forest, n)
}

func fromHTML(forest *nodetree.Forest[Element], n *html.Node) (*nodetree.Node[Element], error) {
	node, err := forest.CreateNode(element(n))
	if err != nil {
		return nil, err
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		child, err := fromHTML(forest, c)
		if err == nil {
			_, err = node.AppendChild(child)
		}
		if err != nil {
			release(forest, node)
			return nil, err
		}
	}
	return node, nil
}

// release detaches and releases the subtree under n.
func release(forest *nodetree.Forest[Element], n *nodetree.Node[Element]) {
	for _, c := range n.ChildNodes() {
		release(forest, c)
	}
	n.Remove()
	if err := forest.Release(n); err != nil {
		T().Errorf("htmltree: cannot release %s: %v", n, err)
	}
}

// Parse parses an HTML document and returns the tree for its document node.
func Parse(forest *nodetree.Forest[Element], input io.Reader) (*nodetree.Node[Element], error) {
	doc, err := html.Parse(input)
	if err != nil {
		return nil, err
	}
	return FromHTML(forest, doc)
}

// ParseFragment parses an HTML fragment in the context of a <body> element and
// returns a tree for every top-level node of the fragment.
func ParseFragment(forest *nodetree.Forest[Element], input io.Reader) ([]*nodetree.Node[Element], error) {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		return nil, err
	}
	T().Debugf("htmltree: fragment has %d top-level nodes", len(nodes))
	if forest == nil {
		forest = nodetree.DefaultForest[Element]()
	}
	roots := make([]*nodetree.Node[Element], 0, len(nodes))
	for _, n := range nodes {
		root, err := FromHTML(forest, n)
		if err != nil {
			for _, r := range roots {
				release(forest, r)
			}
			return nil, err
		}
		roots = append(roots, root)
	}
	return roots, nil
}

// InnerText collects the textual content of a node and all its descendents.
// It resembles the text produced by
//
//	document.getElementById("myNode").innerText
//
// in JavaScript (except that InnerText cannot respect CSS styling suppressing
// the visibility of the node's descendents).
func InnerText(n *nodetree.Node[Element]) (string, error) {
	if n == nil {
		return "", ErrIllegalArguments
	}
	var b strings.Builder
	collectText(n, &b)
	return b.String(), nil
}

func collectText(n *nodetree.Node[Element], b *strings.Builder) {
	if n.Value().Type == html.TextNode {
		b.WriteString(n.Value().Text)
	}
	for c := range n.Children() {
		collectText(c, b)
	}
}

// ElementsByTag returns all element nodes below and including n with the given
// tag name, in document order.
func ElementsByTag(n *nodetree.Node[Element], tag string) []*nodetree.Node[Element] {
	var found []*nodetree.Node[Element]
	var walk func(*nodetree.Node[Element])
	walk = func(n *nodetree.Node[Element]) {
		if e := n.Value(); e.Type == html.ElementNode && e.Tag == tag {
			found = append(found, n)
		}
		for c := range n.Children() {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return found
}
