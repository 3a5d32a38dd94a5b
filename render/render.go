package render

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/npillmayer/nodetree"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

const (
	branch   = "├── "
	corner   = "└── "
	pipe     = "│   "
	blank    = "    "
	ellipsis = "…"
)

// Labeler produces the text printed for a node.
type Labeler[T any] func(*nodetree.Node[T]) string

// DefaultLabel prints the node's value.
func DefaultLabel[T any](n *nodetree.Node[T]) string {
	return fmt.Sprint(n.Value())
}

var setupGraphemes sync.Once

// Width returns the display width of s in terminal cells.
func Width(s string, ctx *uax11.Context) int {
	if s == "" {
		return 0
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	return uax11.StringWidth(grapheme.StringFromString(s), ctx)
}

// Truncate shortens s to at most limit cells, marking the cut with an ellipsis.
// The cut is found by bisecting over rune prefixes, as prefix widths never shrink.
func Truncate(s string, limit int, ctx *uax11.Context) string {
	if limit <= 0 || Width(s, ctx) <= limit {
		return s
	}
	runes := []rune(s)
	lo, hi := 0, len(runes)-1 // runes[:lo]+ellipsis fits or lo is 0
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if Width(string(runes[:mid])+ellipsis, ctx) <= limit {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return string(runes[:lo]) + ellipsis
}

// Print outputs the subtree under root to stdout. If config is nil, it is
// created from the current terminal's properties.
func Print[T any](root *nodetree.Node[T], label Labeler[T], config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
	}
	return Fprint(os.Stdout, root, label, config)
}

// Fprint outputs the subtree under root to w as an outline. A nil label prints
// node values.
func Fprint[T any](w io.Writer, root *nodetree.Node[T], label Labeler[T], config *Config) error {
	if root == nil || config == nil {
		return fmt.Errorf("%w: nil argument", ErrInvalidConfig)
	}
	if err := config.validate(); err != nil {
		return err
	}
	if label == nil {
		label = DefaultLabel[T]
	}
	p := &printer[T]{w: w, label: label, config: config.normalized()}
	if p.config.Color {
		for _, c := range p.config.Palette {
			c.EnableColor()
		}
	}
	p.print(root, "", "", 0)
	return p.err
}

type printer[T any] struct {
	w      io.Writer
	label  Labeler[T]
	config Config
	err    error // first write error
}

func (p *printer[T]) print(n *nodetree.Node[T], indent, connector string, depth int) {
	if p.err != nil {
		return
	}
	text := p.label(n)
	if p.config.Width > 0 {
		room := p.config.Width - Width(indent+connector, p.config.Context)
		text = Truncate(text, max(room, 1), p.config.Context)
	}
	if _, p.err = io.WriteString(p.w, indent+connector); p.err != nil {
		return
	}
	if p.config.Color {
		_, p.err = p.color(depth).Fprintln(p.w, text)
	} else {
		_, p.err = fmt.Fprintln(p.w, text)
	}
	if depth > 0 {
		if connector == corner {
			indent += blank
		} else {
			indent += pipe
		}
	}
	for c := range n.Children() {
		if c.NextSibling() == nil {
			p.print(c, indent, corner, depth+1)
		} else {
			p.print(c, indent, branch, depth+1)
		}
	}
}

func (p *printer[T]) color(depth int) *color.Color {
	return p.config.Palette[depth%len(p.config.Palette)]
}
