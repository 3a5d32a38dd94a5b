package structure

import "iter"

// Children iterates over the children of r in positional order.
//
// The sibling links are followed lazily; clients must not re-link the children
// of r while iterating. Use ChildrenToArray for a stable snapshot.
func (ix *Index[P]) Children(r Ref) iter.Seq[Ref] {
	return func(yield func(Ref) bool) {
		rec := ix.lookup(r)
		if rec == nil {
			return
		}
		for c := rec.firstChild; c != NoRef; {
			next := ix.at(c).next
			if !yield(c) {
				return
			}
			c = next
		}
	}
}

// Ancestors iterates over r, its parent, its grandparent, and so on up to the root.
func (ix *Index[P]) Ancestors(r Ref) iter.Seq[Ref] {
	return func(yield func(Ref) bool) {
		if ix.lookup(r) == nil {
			return
		}
		for a := r; a != NoRef; a = ix.at(a).parent {
			if !yield(a) {
				return
			}
		}
	}
}
