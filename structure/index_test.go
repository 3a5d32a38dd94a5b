package structure

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// redirectTracing sends core traces to the test log for the duration of a test.
func redirectTracing(t *testing.T) (teardown func()) {
	saved := gtrace.CoreTracer
	gtrace.CoreTracer = gotestingadapter.New(t)
	redirected := gotestingadapter.RedirectTracing(t)
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	return func() {
		redirected()
		gtrace.CoreTracer = saved
	}
}

func makeIndex(t *testing.T) *Index[string] {
	t.Helper()
	ix, err := New[string](Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return ix
}

func refs(ix *Index[string], names ...string) []Ref {
	out := make([]Ref, len(names))
	for i, name := range names {
		out[i] = ix.Initialize(name)
	}
	return out
}

func payloads(ix *Index[string], rs []Ref) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i], _ = ix.Payload(r)
	}
	return out
}

func sameRefs(a, b []Ref) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mustCheck(t *testing.T, ix *Index[string]) {
	t.Helper()
	if err := ix.Check(); err != nil {
		t.Fatalf("invariant check failed: %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New[string](Config{InitialCapacity: -1})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestZeroIndexIsUsable(t *testing.T) {
	ix := &Index[int]{}
	a := ix.Initialize(1)
	b := ix.Initialize(2)
	if _, err := ix.AppendChild(a, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ix.Parent(b) != a || ix.Len() != 2 {
		t.Fatalf("unexpected zero index state: parent=%s len=%d", ix.Parent(b), ix.Len())
	}
}

func TestInitializeCreatesDetachedRecord(t *testing.T) {
	ix := makeIndex(t)
	r := ix.Initialize("foo")
	if r == NoRef || !ix.Valid(r) {
		t.Fatalf("expected valid reference, got %s", r)
	}
	if p, ok := ix.Payload(r); !ok || p != "foo" {
		t.Fatalf("unexpected payload %q (ok=%v)", p, ok)
	}
	for name, rel := range map[string]Ref{
		"parent":          ix.Parent(r),
		"firstChild":      ix.FirstChild(r),
		"lastChild":       ix.LastChild(r),
		"previousSibling": ix.PreviousSibling(r),
		"nextSibling":     ix.NextSibling(r),
	} {
		if rel != NoRef {
			t.Errorf("expected %s of fresh record to be absent, is %s", name, rel)
		}
	}
	if ix.HasChildren(r) || ix.Index(r) != 0 {
		t.Errorf("fresh record should have no children and index 0")
	}
	mustCheck(t, ix)
}

func TestAppendAndPrependChildren(t *testing.T) {
	defer redirectTracing(t)()
	//
	ix := makeIndex(t)
	rs := refs(ix, "parent", "a", "b", "c")
	p, a, b, c := rs[0], rs[1], rs[2], rs[3]
	if _, err := ix.AppendChild(p, b); err != nil {
		t.Fatal(err)
	}
	if _, err := ix.AppendChild(p, c); err != nil {
		t.Fatal(err)
	}
	if _, err := ix.PrependChild(p, a); err != nil {
		t.Fatal(err)
	}
	got := payloads(ix, ix.ChildrenToArray(p))
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected children %v", got)
	}
	if ix.FirstChild(p) != a || ix.LastChild(p) != c {
		t.Errorf("end links do not match child list")
	}
	if ix.NextSibling(a) != b || ix.PreviousSibling(c) != b {
		t.Errorf("sibling links broken")
	}
	for i, r := range []Ref{a, b, c} {
		if ix.Index(r) != i {
			t.Errorf("expected index %d for %s, got %d", i, r, ix.Index(r))
		}
	}
	mustCheck(t, ix)
}

func TestAppendMovesRecord(t *testing.T) {
	ix := makeIndex(t)
	rs := refs(ix, "grandparent", "parent 1", "parent 2")
	g, p1, p2 := rs[0], rs[1], rs[2]
	_, _ = ix.AppendChild(g, p1)
	_, _ = ix.AppendChild(p1, p2)
	if _, err := ix.AppendChild(g, p2); err != nil {
		t.Fatal(err)
	}
	if !sameRefs(ix.ChildrenToArray(g), []Ref{p1, p2}) {
		t.Fatalf("unexpected children of grandparent")
	}
	if ix.HasChildren(p1) {
		t.Errorf("parent 1 should have lost its child")
	}
	if ix.Parent(p2) != g {
		t.Errorf("moved record should point to new parent")
	}
	mustCheck(t, ix)
}

func TestAppendLastChildAgainIsNoOp(t *testing.T) {
	ix := makeIndex(t)
	rs := refs(ix, "p", "a", "b")
	_, _ = ix.AppendChild(rs[0], rs[1])
	_, _ = ix.AppendChild(rs[0], rs[2])
	before := ix.ChildrenToArray(rs[0])
	if _, err := ix.AppendChild(rs[0], rs[2]); err != nil {
		t.Fatal(err)
	}
	if _, err := ix.PrependChild(rs[0], rs[1]); err != nil {
		t.Fatal(err)
	}
	if !sameRefs(before, ix.ChildrenToArray(rs[0])) {
		t.Fatalf("re-linking in place changed the child list")
	}
	mustCheck(t, ix)
}

func TestInsertBeforeAndAfter(t *testing.T) {
	ix := makeIndex(t)
	rs := refs(ix, "p", "a", "b", "c", "d")
	p, a, b, c, d := rs[0], rs[1], rs[2], rs[3], rs[4]
	_, _ = ix.AppendChild(p, c)
	if _, err := ix.InsertBefore(c, a); err != nil {
		t.Fatal(err)
	}
	if _, err := ix.InsertAfter(a, b); err != nil {
		t.Fatal(err)
	}
	if _, err := ix.InsertAfter(c, d); err != nil {
		t.Fatal(err)
	}
	if got := payloads(ix, ix.ChildrenToArray(p)); len(got) != 4 ||
		got[0] != "a" || got[1] != "b" || got[2] != "c" || got[3] != "d" {
		t.Fatalf("unexpected children %v", got)
	}
	if ix.LastChild(p) != d || ix.FirstChild(p) != a {
		t.Errorf("end links not updated")
	}
	// move d to the front, then a (its successor) before b, where it already is
	if _, err := ix.InsertBefore(a, d); err != nil {
		t.Fatal(err)
	}
	if _, err := ix.InsertBefore(b, a); err != nil {
		t.Fatal(err)
	}
	if !sameRefs(ix.ChildrenToArray(p), []Ref{d, a, b, c}) {
		t.Fatalf("unexpected order %v", payloads(ix, ix.ChildrenToArray(p)))
	}
	mustCheck(t, ix)
}

func TestInsertNextToItselfIsNoOp(t *testing.T) {
	ix := makeIndex(t)
	rs := refs(ix, "p", "a", "b")
	_, _ = ix.AppendChild(rs[0], rs[1])
	_, _ = ix.AppendChild(rs[0], rs[2])
	if r, err := ix.InsertBefore(rs[1], rs[1]); err != nil || r != rs[1] {
		t.Fatalf("expected no-op, got %s, %v", r, err)
	}
	if r, err := ix.InsertAfter(rs[2], rs[2]); err != nil || r != rs[2] {
		t.Fatalf("expected no-op, got %s, %v", r, err)
	}
	if !sameRefs(ix.ChildrenToArray(rs[0]), rs[1:]) {
		t.Fatalf("self-insert changed child list")
	}
	mustCheck(t, ix)
}

func TestInsertNextToRootFails(t *testing.T) {
	ix := makeIndex(t)
	rs := refs(ix, "root", "child", "new")
	_, _ = ix.AppendChild(rs[0], rs[1])
	_, _ = ix.AppendChild(rs[1], rs[2])
	if _, err := ix.InsertBefore(rs[0], rs[2]); !errors.Is(err, ErrNoParent) {
		t.Fatalf("expected ErrNoParent, got %v", err)
	}
	if _, err := ix.InsertAfter(rs[0], rs[2]); !errors.Is(err, ErrNoParent) {
		t.Fatalf("expected ErrNoParent, got %v", err)
	}
	if ix.Parent(rs[2]) != rs[1] {
		t.Fatalf("failed insert must not detach the new record")
	}
	mustCheck(t, ix)
}

func TestLinkRejectsCycles(t *testing.T) {
	ix := makeIndex(t)
	rs := refs(ix, "a", "b", "c", "x")
	a, b, c, x := rs[0], rs[1], rs[2], rs[3]
	_, _ = ix.AppendChild(a, b)
	_, _ = ix.AppendChild(b, c)
	_, _ = ix.AppendChild(c, x)
	cases := []struct {
		name string
		op   func() (Ref, error)
	}{
		{"append to self", func() (Ref, error) { return ix.AppendChild(a, a) }},
		{"append ancestor", func() (Ref, error) { return ix.AppendChild(c, a) }},
		{"prepend ancestor", func() (Ref, error) { return ix.PrependChild(x, b) }},
		{"insert ancestor before descendant", func() (Ref, error) { return ix.InsertBefore(x, b) }},
		{"insert parent after child", func() (Ref, error) { return ix.InsertAfter(x, c) }},
	}
	for _, tc := range cases {
		if _, err := tc.op(); !errors.Is(err, ErrCycle) {
			t.Errorf("%s: expected ErrCycle, got %v", tc.name, err)
		}
	}
	if !sameRefs(ix.AncestorsToArray(x), []Ref{x, c, b, a}) {
		t.Fatalf("rejected operations changed the tree")
	}
	mustCheck(t, ix)
}

func TestAncestorsIncludeSelf(t *testing.T) {
	ix := makeIndex(t)
	rs := refs(ix, "grandparent", "parent", "child")
	_, _ = ix.AppendChild(rs[0], rs[1])
	_, _ = ix.AppendChild(rs[1], rs[2])
	if !sameRefs(ix.AncestorsToArray(rs[2]), []Ref{rs[2], rs[1], rs[0]}) {
		t.Fatalf("unexpected ancestors %v", payloads(ix, ix.AncestorsToArray(rs[2])))
	}
	if !sameRefs(ix.AncestorsToArray(rs[0]), []Ref{rs[0]}) {
		t.Fatalf("root should be its only ancestor")
	}
	if ix.Depth(rs[2]) != 2 || ix.Depth(rs[0]) != 0 {
		t.Errorf("unexpected depths %d, %d", ix.Depth(rs[2]), ix.Depth(rs[0]))
	}
}

func TestRemoveRepairsLinks(t *testing.T) {
	ix := makeIndex(t)
	rs := refs(ix, "p", "a", "b", "c")
	p, a, b, c := rs[0], rs[1], rs[2], rs[3]
	for _, r := range rs[1:] {
		_, _ = ix.AppendChild(p, r)
	}
	if ix.Remove(b) != b {
		t.Fatalf("Remove should return its argument")
	}
	if ix.NextSibling(a) != c || ix.PreviousSibling(c) != a {
		t.Errorf("neighbours not re-linked")
	}
	ix.Remove(a)
	ix.Remove(c)
	if ix.HasChildren(p) || ix.FirstChild(p) != NoRef || ix.LastChild(p) != NoRef {
		t.Errorf("parent should be empty")
	}
	// idempotent on detached records
	if ix.Remove(c) != c || ix.Parent(c) != NoRef {
		t.Errorf("removing a detached record should be a no-op")
	}
	mustCheck(t, ix)
}

func TestFreeRecyclesSlotsAndInvalidatesRefs(t *testing.T) {
	ix := makeIndex(t)
	rs := refs(ix, "p", "a")
	_, _ = ix.AppendChild(rs[0], rs[1])
	if err := ix.Free(rs[1]); !errors.Is(err, ErrAttached) {
		t.Fatalf("expected ErrAttached for attached record, got %v", err)
	}
	if err := ix.Free(rs[0]); !errors.Is(err, ErrAttached) {
		t.Fatalf("expected ErrAttached for record with children, got %v", err)
	}
	ix.Remove(rs[1])
	if err := ix.Free(rs[1]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ix.Valid(rs[1]) || ix.Len() != 1 {
		t.Fatalf("released record still valid (len=%d)", ix.Len())
	}
	reused := ix.Initialize("b")
	if reused.slot() != rs[1].slot() || reused == rs[1] {
		t.Fatalf("expected slot reuse with new generation, got %s for %s", reused, rs[1])
	}
	if _, err := ix.AppendChild(rs[0], rs[1]); !errors.Is(err, ErrInvalidRef) {
		t.Fatalf("expected ErrInvalidRef for stale reference, got %v", err)
	}
	if ix.Parent(rs[1]) != NoRef || ix.AncestorsToArray(rs[1]) != nil {
		t.Errorf("queries on stale reference should yield absence")
	}
	if err := ix.Free(rs[1]); !errors.Is(err, ErrInvalidRef) {
		t.Errorf("double free should fail, got %v", err)
	}
	mustCheck(t, ix)
}

func TestIterators(t *testing.T) {
	ix := makeIndex(t)
	rs := refs(ix, "p", "a", "b", "c")
	for _, r := range rs[1:] {
		_, _ = ix.AppendChild(rs[0], r)
	}
	var got []Ref
	for c := range ix.Children(rs[0]) {
		got = append(got, c)
		if len(got) == 2 {
			break
		}
	}
	if !sameRefs(got, rs[1:3]) {
		t.Fatalf("unexpected early-stopped iteration %v", got)
	}
	got = got[:0]
	for a := range ix.Ancestors(rs[3]) {
		got = append(got, a)
	}
	if !sameRefs(got, []Ref{rs[3], rs[0]}) {
		t.Fatalf("unexpected ancestors %v", got)
	}
}

func TestChangeListener(t *testing.T) {
	ix := makeIndex(t)
	var changes []Change
	cancel := ix.OnChange(func(c Change) { changes = append(changes, c) })
	rs := refs(ix, "p", "q", "a")
	_, _ = ix.AppendChild(rs[0], rs[2])
	_, _ = ix.PrependChild(rs[1], rs[2])
	ix.Remove(rs[2])
	ix.Remove(rs[2]) // no-op, no change
	_, _ = ix.AppendChild(rs[2], rs[2])
	cancel()
	cancel()
	_, _ = ix.AppendChild(rs[0], rs[2])
	want := []Change{
		{Op: OpInitialize, Ref: rs[0]},
		{Op: OpInitialize, Ref: rs[1]},
		{Op: OpInitialize, Ref: rs[2]},
		{Op: OpAppendChild, Ref: rs[2], Parent: rs[0]},
		{Op: OpPrependChild, Ref: rs[2], Parent: rs[1], From: rs[0]},
		{Op: OpRemove, Ref: rs[2], From: rs[1]},
	}
	if len(changes) != len(want) {
		t.Fatalf("expected %d changes, got %d: %v", len(want), len(changes), changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d: got %+v want %+v", i, changes[i], want[i])
		}
	}
}
