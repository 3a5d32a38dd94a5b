package structure

// record is the per-node storage of an index: payload plus structural links.
type record[P any] struct {
	payload    P
	parent     Ref
	firstChild Ref
	lastChild  Ref
	prev       Ref
	next       Ref
	gen        uint32 // generation of the slot, bumped on release
	live       bool
}

// Index is an arena of structural records for one family of trees.
//
// P is the payload type carried by each record. Records are created detached
// and are linked and re-linked by the mutation primitives. An Index created by
//
//	&Index[P]{}
//
// is valid and empty.
type Index[P any] struct {
	records     []record[P]
	free        []int // released slots, reused LIFO
	count       int   // number of live records
	listeners   []listenerEntry
	listenerSeq int
}

// New creates an empty index with validated configuration.
func New[P any](cfg Config) (*Index[P], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	return &Index[P]{
		records: make([]record[P], 0, cfg.InitialCapacity),
	}, nil
}

// Initialize allocates a new detached record carrying payload.
func (ix *Index[P]) Initialize(payload P) Ref {
	var slot int
	if n := len(ix.free); n > 0 {
		slot = ix.free[n-1]
		ix.free = ix.free[:n-1]
	} else {
		ix.records = append(ix.records, record[P]{})
		slot = len(ix.records) - 1
	}
	rec := &ix.records[slot]
	gen := rec.gen
	*rec = record[P]{payload: payload, gen: gen, live: true}
	ix.count++
	r := makeRef(slot, gen)
	ix.emit(Change{Op: OpInitialize, Ref: r})
	return r
}

// lookup returns the live record for r, or nil if r is void, stale or out of range.
func (ix *Index[P]) lookup(r Ref) *record[P] {
	if ix == nil || r == NoRef {
		return nil
	}
	slot := r.slot()
	if slot < 0 || slot >= len(ix.records) {
		return nil
	}
	rec := &ix.records[slot]
	if !rec.live || rec.gen != r.generation() {
		return nil
	}
	return rec
}

// at is lookup for references taken from links of live records, which have to be valid.
func (ix *Index[P]) at(r Ref) *record[P] {
	rec := ix.lookup(r)
	assert(rec != nil, "dangling link to record "+r.String())
	return rec
}

// Valid reports whether r denotes a live record of this index.
func (ix *Index[P]) Valid(r Ref) bool {
	return ix.lookup(r) != nil
}

// Len returns the number of live records.
func (ix *Index[P]) Len() int {
	if ix == nil {
		return 0
	}
	return ix.count
}

// Payload returns the payload of record r. ok is false for an invalid reference.
func (ix *Index[P]) Payload(r Ref) (payload P, ok bool) {
	if rec := ix.lookup(r); rec != nil {
		return rec.payload, true
	}
	return payload, false
}

// SetPayload replaces the payload of record r. Setting a payload has no
// structural side effect.
func (ix *Index[P]) SetPayload(r Ref, payload P) error {
	rec := ix.lookup(r)
	if rec == nil {
		return ErrInvalidRef
	}
	rec.payload = payload
	return nil
}

// Parent returns the parent of r, or NoRef for roots and detached records.
func (ix *Index[P]) Parent(r Ref) Ref {
	if rec := ix.lookup(r); rec != nil {
		return rec.parent
	}
	return NoRef
}

// FirstChild returns the first child of r, or NoRef.
func (ix *Index[P]) FirstChild(r Ref) Ref {
	if rec := ix.lookup(r); rec != nil {
		return rec.firstChild
	}
	return NoRef
}

// LastChild returns the last child of r, or NoRef.
func (ix *Index[P]) LastChild(r Ref) Ref {
	if rec := ix.lookup(r); rec != nil {
		return rec.lastChild
	}
	return NoRef
}

// PreviousSibling returns the sibling preceding r, or NoRef.
func (ix *Index[P]) PreviousSibling(r Ref) Ref {
	if rec := ix.lookup(r); rec != nil {
		return rec.prev
	}
	return NoRef
}

// NextSibling returns the sibling following r, or NoRef.
func (ix *Index[P]) NextSibling(r Ref) Ref {
	if rec := ix.lookup(r); rec != nil {
		return rec.next
	}
	return NoRef
}

// HasChildren reports whether r has at least one child.
func (ix *Index[P]) HasChildren(r Ref) bool {
	if rec := ix.lookup(r); rec != nil {
		return rec.firstChild != NoRef
	}
	return false
}

// ChildrenToArray returns the children of r in positional order.
// The result is a new slice which is not affected by later mutations.
func (ix *Index[P]) ChildrenToArray(r Ref) []Ref {
	rec := ix.lookup(r)
	if rec == nil {
		return nil
	}
	children := make([]Ref, 0, 4)
	for c := rec.firstChild; c != NoRef; c = ix.at(c).next {
		children = append(children, c)
	}
	return children
}

// AncestorsToArray returns r followed by its parent, grandparent, and so on up
// to the root. The first element is always r itself; for an invalid reference
// the result is empty.
func (ix *Index[P]) AncestorsToArray(r Ref) []Ref {
	if ix.lookup(r) == nil {
		return nil
	}
	ancestors := make([]Ref, 0, 8)
	for a := r; a != NoRef; a = ix.at(a).parent {
		ancestors = append(ancestors, a)
	}
	return ancestors
}

// Index returns the position of r within its sibling list, i.e. the number of
// preceding siblings. Roots and detached records have index 0.
func (ix *Index[P]) Index(r Ref) int {
	rec := ix.lookup(r)
	if rec == nil {
		return 0
	}
	i := 0
	for p := rec.prev; p != NoRef; p = ix.at(p).prev {
		i++
	}
	return i
}

// Depth returns the number of ancestors of r, excluding r itself.
func (ix *Index[P]) Depth(r Ref) int {
	rec := ix.lookup(r)
	if rec == nil {
		return 0
	}
	d := 0
	for p := rec.parent; p != NoRef; p = ix.at(p).parent {
		d++
	}
	return d
}

// Free releases the slot of record r. The record has to be detached and must
// not have children. References to a released record become invalid.
func (ix *Index[P]) Free(r Ref) error {
	rec := ix.lookup(r)
	if rec == nil {
		return ErrInvalidRef
	}
	if rec.parent != NoRef || rec.firstChild != NoRef {
		return ErrAttached
	}
	gen := rec.gen + 1
	*rec = record[P]{gen: gen}
	ix.free = append(ix.free, r.slot())
	ix.count--
	tracer().Debugf("structure: released record %s", r)
	ix.emit(Change{Op: OpFree, Ref: r})
	return nil
}
