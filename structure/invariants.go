package structure

import "fmt"

// Check validates the structural invariants of all live records:
//
//   - a record without parent has no siblings,
//   - sibling links are symmetric and every child in a parent's chain points
//     back to that parent,
//   - a parent's first and last child links match the ends of its chain,
//   - every record with a parent is reachable from that parent's chain,
//   - no record is its own ancestor.
//
// The checker is strict and walks every chain; it is meant for tests.
func (ix *Index[P]) Check() error {
	if ix == nil {
		return fmt.Errorf("%w: nil index", ErrInconsistent)
	}
	live, attached, linked := 0, 0, 0
	for slot := range ix.records {
		rec := &ix.records[slot]
		if !rec.live {
			continue
		}
		live++
		r := makeRef(slot, rec.gen)
		if rec.parent == NoRef {
			if rec.prev != NoRef || rec.next != NoRef {
				return fmt.Errorf("%w: detached record %s has siblings", ErrInconsistent, r)
			}
		} else {
			attached++
			if ix.lookup(rec.parent) == nil {
				return fmt.Errorf("%w: record %s has dangling parent %s", ErrInconsistent, r, rec.parent)
			}
		}
		n, err := ix.checkChildChain(r, rec)
		if err != nil {
			return err
		}
		linked += n
		if err := ix.checkAcyclic(r); err != nil {
			return err
		}
	}
	if live != ix.count {
		return fmt.Errorf("%w: live record count mismatch (%d != %d)", ErrInconsistent, live, ix.count)
	}
	if linked != attached {
		return fmt.Errorf("%w: %d attached records, but %d reachable from child chains",
			ErrInconsistent, attached, linked)
	}
	return nil
}

// checkChildChain walks the children of record r and returns their count.
func (ix *Index[P]) checkChildChain(r Ref, rec *record[P]) (int, error) {
	if (rec.firstChild == NoRef) != (rec.lastChild == NoRef) {
		return 0, fmt.Errorf("%w: record %s has only one child end link", ErrInconsistent, r)
	}
	count := 0
	prev := NoRef
	for c := rec.firstChild; c != NoRef; {
		child := ix.lookup(c)
		if child == nil {
			return 0, fmt.Errorf("%w: record %s links dangling child %s", ErrInconsistent, r, c)
		}
		if child.parent != r {
			return 0, fmt.Errorf("%w: child %s of %s points to parent %s", ErrInconsistent, c, r, child.parent)
		}
		if child.prev != prev {
			return 0, fmt.Errorf("%w: child %s of %s has asymmetric sibling links", ErrInconsistent, c, r)
		}
		count++
		if count > ix.count {
			return 0, fmt.Errorf("%w: child chain of %s does not terminate", ErrInconsistent, r)
		}
		prev = c
		c = child.next
	}
	if prev != rec.lastChild {
		return 0, fmt.Errorf("%w: last child link of %s is %s, chain ends at %s",
			ErrInconsistent, r, rec.lastChild, prev)
	}
	return count, nil
}

func (ix *Index[P]) checkAcyclic(r Ref) error {
	steps := 0
	for a := ix.records[r.slot()].parent; a != NoRef; {
		if a == r || steps > ix.count {
			return fmt.Errorf("%w: record %s is its own ancestor", ErrInconsistent, r)
		}
		steps++
		rec := ix.lookup(a)
		if rec == nil {
			return fmt.Errorf("%w: dangling ancestor %s of %s", ErrInconsistent, a, r)
		}
		a = rec.parent
	}
	return nil
}
