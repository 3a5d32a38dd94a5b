package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/nodetree"
	"github.com/npillmayer/nodetree/dot"
	"github.com/npillmayer/nodetree/htmltree"
	"github.com/npillmayer/nodetree/render"
)

// REPL holds the state of the interactive session.
type REPL struct {
	forest *nodetree.Forest[string]
	nodes  map[string]*nodetree.Node[string]
	out    io.Writer
	config *render.Config
}

// NewREPL creates a session with an empty forest, writing to out.
func NewREPL(out io.Writer, config *render.Config) (*REPL, error) {
	forest, err := nodetree.NewForest[string]()
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = &render.Config{}
	}
	return &REPL{
		forest: forest,
		nodes:  make(map[string]*nodetree.Node[string]),
		out:    out,
		config: config,
	}, nil
}

// Run reads commands from in until EOF or quit.
func (r *REPL) Run(in io.Reader, prompt bool) {
	reader := bufio.NewReader(in)
	for {
		if prompt {
			fmt.Fprint(r.out, "nodetree> ")
		}
		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input != "" && !r.handleCommand(input) {
			return
		}
		if err != nil {
			if prompt {
				fmt.Fprintln(r.out, "\nGoodbye!")
			}
			return
		}
	}
}

func (r *REPL) handleCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help":
		r.printHelp()

	case "quit", "exit":
		fmt.Fprintln(r.out, "Goodbye!")
		return false

	case "new":
		err = r.cmdNew(args)

	case "append", "prepend", "before", "after":
		err = r.cmdLink(cmd, args)

	case "remove":
		err = r.cmdRemove(args)

	case "release":
		err = r.cmdRelease(args)

	case "children", "ancestors":
		err = r.cmdList(cmd, args)

	case "index":
		err = r.cmdIndex(args)

	case "print":
		err = r.cmdPrint(args)

	case "dot":
		err = r.cmdDot(args)

	case "html":
		err = r.cmdHTML(args)

	case "check":
		err = r.cmdCheck()

	default:
		fmt.Fprintf(r.out, "Unknown command: %s. Type 'help' for available commands.\n", cmd)
	}
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
	}
	return true
}

func (r *REPL) printHelp() {
	help := `
Available Commands:
-------------------

NODES:
  new <name>...           Create detached nodes with the given names
  release <name>          Release a detached node without children

STRUCTURE:
  append <parent> <child>   Make child the last child of parent
  prepend <parent> <child>  Make child the first child of parent
  before <ref> <new>        Insert new as the sibling before ref
  after <ref> <new>         Insert new as the sibling after ref
  remove <name>             Detach a node from its parent

INSPECTION:
  children <name>         List the children of a node
  ancestors <name>        List a node and its ancestors
  index <name>            Show the position of a node among its siblings
  print <name>            Show the subtree under a node
  dot <name>              Output the subtree under a node in Graphviz DOT format
  html <file>             Parse an HTML file and show its element tree
  check                   Validate the structure of all trees

OTHER:
  help                    Show this help message
  quit, exit              Exit the REPL
`
	fmt.Fprintln(r.out, help)
}

func (r *REPL) lookup(name string) (*nodetree.Node[string], error) {
	n, ok := r.nodes[name]
	if !ok {
		return nil, fmt.Errorf("no node named %q", name)
	}
	return n, nil
}

func (r *REPL) lookupAll(args []string, count int) ([]*nodetree.Node[string], error) {
	if len(args) != count {
		return nil, fmt.Errorf("expected %d node name(s), got %d", count, len(args))
	}
	nodes := make([]*nodetree.Node[string], count)
	for i, name := range args {
		n, err := r.lookup(name)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

func (r *REPL) cmdNew(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: new <name>...")
	}
	for _, name := range args {
		if _, exists := r.nodes[name]; exists {
			return fmt.Errorf("node %q already exists", name)
		}
		n, err := r.forest.CreateNode(name)
		if err != nil {
			return err
		}
		r.nodes[name] = n
		fmt.Fprintf(r.out, "Created %s\n", n)
	}
	return nil
}

func (r *REPL) cmdLink(cmd string, args []string) error {
	nodes, err := r.lookupAll(args, 2)
	if err != nil {
		return err
	}
	first, second := nodes[0], nodes[1]
	switch cmd {
	case "append":
		_, err = first.AppendChild(second)
	case "prepend":
		_, err = first.PrependChild(second)
	case "before", "after":
		parent := first.ParentNode()
		if parent == nil {
			return fmt.Errorf("%w: %s", nodetree.ErrNoParent, first)
		}
		if cmd == "before" {
			_, err = parent.InsertBefore(second, first)
		} else {
			_, err = parent.InsertAfter(second, first)
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, "OK")
	return nil
}

func (r *REPL) cmdRemove(args []string) error {
	nodes, err := r.lookupAll(args, 1)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Removed %s\n", nodes[0].Remove())
	return nil
}

func (r *REPL) cmdRelease(args []string) error {
	nodes, err := r.lookupAll(args, 1)
	if err != nil {
		return err
	}
	if err := r.forest.Release(nodes[0]); err != nil {
		return err
	}
	delete(r.nodes, args[0])
	fmt.Fprintf(r.out, "Released %s\n", args[0])
	return nil
}

func (r *REPL) cmdList(cmd string, args []string) error {
	nodes, err := r.lookupAll(args, 1)
	if err != nil {
		return err
	}
	var list []*nodetree.Node[string]
	if cmd == "children" {
		list = nodes[0].ChildNodes()
	} else {
		list = nodes[0].AncestorNodes()
	}
	names := make([]string, len(list))
	for i, n := range list {
		names[i] = n.Value()
	}
	fmt.Fprintf(r.out, "[%s]\n", strings.Join(names, " "))
	return nil
}

func (r *REPL) cmdIndex(args []string) error {
	nodes, err := r.lookupAll(args, 1)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%d\n", nodes[0].Index())
	return nil
}

func (r *REPL) cmdPrint(args []string) error {
	nodes, err := r.lookupAll(args, 1)
	if err != nil {
		return err
	}
	return render.Fprint(r.out, nodes[0], nil, r.config)
}

func (r *REPL) cmdDot(args []string) error {
	nodes, err := r.lookupAll(args, 1)
	if err != nil {
		return err
	}
	return dot.Fprint(r.out, nodes[0], nil)
}

func (r *REPL) cmdHTML(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: html <file>")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	forest, err := nodetree.NewForest[htmltree.Element]()
	if err != nil {
		return err
	}
	doc, err := htmltree.Parse(forest, f)
	if err != nil {
		return err
	}
	return render.Fprint(r.out, doc, func(n *nodetree.Node[htmltree.Element]) string {
		return n.Value().String()
	}, r.config)
}

func (r *REPL) cmdCheck() error {
	if err := r.forest.Check(); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "OK, %d nodes\n", r.forest.Len())
	return nil
}
