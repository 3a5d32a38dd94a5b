package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func session(t *testing.T, commands ...string) string {
	t.Helper()
	var out bytes.Buffer
	repl, err := NewREPL(&out, nil)
	assert.NoError(t, err)
	repl.Run(strings.NewReader(strings.Join(commands, "\n")), false)
	return out.String()
}

func TestBuildTree(t *testing.T) {
	out := session(t,
		"new root a b c",
		"append root a",
		"append a b",
		"append root c",
		"children root",
		"ancestors b",
		"index c",
		"print root",
		"check",
	)
	assert.Contains(t, out, "[a c]\n")
	assert.Contains(t, out, "[b a root]\n")
	assert.Contains(t, out, "\n1\n")
	assert.Contains(t, out, "root\n├── a\n│   └── b\n└── c\n")
	assert.Contains(t, out, "OK, 4 nodes\n")
	assert.NotContains(t, out, "Error")
}

func TestSiblingInsertion(t *testing.T) {
	out := session(t,
		"new p a b c",
		"append p b",
		"before b a",
		"after b c",
		"children p",
		"before p a",
	)
	assert.Contains(t, out, "[a b c]\n")
	assert.Contains(t, out, "Error: ")
	assert.Contains(t, out, "has no parent")
}

func TestErrorsDoNotEndSession(t *testing.T) {
	out := session(t,
		"new a b",
		"append a a",
		"append a missing",
		"frobnicate",
		"new a",
		"append a b",
		"release b",
		"remove b",
		"release b",
		"children a",
		"quit",
		"children a",
	)
	assert.Contains(t, out, "no node named \"missing\"")
	assert.Contains(t, out, "Unknown command: frobnicate")
	assert.Contains(t, out, "node \"a\" already exists")
	assert.Contains(t, out, "Released b\n")
	assert.Equal(t, 1, strings.Count(out, "[]\n"))
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
}

func TestDotAndHTML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "page.html")
	assert.NoError(t, os.WriteFile(file, []byte("<p>Hi</p>"), 0o644))
	out := session(t,
		"new x y",
		"append x y",
		"dot x",
		"html "+file,
	)
	assert.Contains(t, out, "strict digraph {")
	assert.Contains(t, out, `"1" -> "2";`)
	assert.Contains(t, out, "#document\n")
	assert.Contains(t, out, "<p>")
	assert.Contains(t, out, `"Hi"`)
}
