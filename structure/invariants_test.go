package structure

import (
	"strings"
	"testing"
)

func linkedTriple(t *testing.T) (*Index[string], []Ref) {
	t.Helper()
	ix := makeIndex(t)
	rs := refs(ix, "p", "a", "b")
	_, _ = ix.AppendChild(rs[0], rs[1])
	_, _ = ix.AppendChild(rs[0], rs[2])
	mustCheck(t, ix)
	return ix, rs
}

func expectInconsistency(t *testing.T, ix *Index[string], fragment string) {
	t.Helper()
	err := ix.Check()
	if err == nil {
		t.Fatalf("expected invariant error containing %q", fragment)
	}
	if !strings.Contains(err.Error(), fragment) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckDetectsLastChildDrift(t *testing.T) {
	ix, rs := linkedTriple(t)
	ix.records[rs[0].slot()].lastChild = rs[1] // corrupt on purpose
	expectInconsistency(t, ix, "last child link")
}

func TestCheckDetectsAsymmetricSiblings(t *testing.T) {
	ix, rs := linkedTriple(t)
	ix.records[rs[2].slot()].prev = NoRef
	expectInconsistency(t, ix, "asymmetric sibling links")
}

func TestCheckDetectsWrongParent(t *testing.T) {
	ix, rs := linkedTriple(t)
	ix.records[rs[2].slot()].parent = rs[1]
	expectInconsistency(t, ix, "points to parent")
}

func TestCheckDetectsDetachedWithSiblings(t *testing.T) {
	ix, rs := linkedTriple(t)
	x := ix.Initialize("x")
	ix.records[x.slot()].next = rs[1]
	expectInconsistency(t, ix, "has siblings")
}

func TestCheckDetectsUnreachableChild(t *testing.T) {
	ix, rs := linkedTriple(t)
	x := ix.Initialize("x")
	ix.records[x.slot()].parent = rs[0] // claims a parent which does not list it
	expectInconsistency(t, ix, "reachable from child chains")
}

func TestCheckDetectsCycle(t *testing.T) {
	ix, rs := linkedTriple(t)
	ix.records[rs[0].slot()].parent = rs[1] // p below its own child
	expectInconsistency(t, ix, "")
}
