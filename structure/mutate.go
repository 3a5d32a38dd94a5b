package structure

import "fmt"

// Remove detaches r from its parent and siblings and returns r.
//
// The parent's first/last child links and the neighbouring siblings are repaired.
// Removing a detached record is a no-op. An invalid reference yields NoRef.
func (ix *Index[P]) Remove(r Ref) Ref {
	rec := ix.lookup(r)
	if rec == nil {
		return NoRef
	}
	from := rec.parent
	if from == NoRef {
		return r
	}
	ix.unlink(rec)
	tracer().Debugf("structure: removed %s from %s", r, from)
	ix.emit(Change{Op: OpRemove, Ref: r, From: from})
	return r
}

// unlink detaches an attached record.
func (ix *Index[P]) unlink(rec *record[P]) {
	parent := ix.at(rec.parent)
	if rec.prev != NoRef {
		ix.at(rec.prev).next = rec.next
	} else {
		parent.firstChild = rec.next
	}
	if rec.next != NoRef {
		ix.at(rec.next).prev = rec.prev
	} else {
		parent.lastChild = rec.prev
	}
	rec.parent, rec.prev, rec.next = NoRef, NoRef, NoRef
}

// InsertBefore links newRef into the sibling list of ref, immediately before ref.
//
// ref has to have a parent, otherwise ErrNoParent is returned. newRef is removed
// from its current position first and ends up as a child of ref's parent.
func (ix *Index[P]) InsertBefore(ref, newRef Ref) (Ref, error) {
	refRec, newRec, err := ix.spliceOperands(ref, newRef)
	if err != nil || ref == newRef {
		return newRef, err
	}
	from := ix.detach(newRec)
	parent := refRec.parent
	prev := refRec.prev
	newRec.parent, newRec.prev, newRec.next = parent, prev, ref
	refRec.prev = newRef
	if prev != NoRef {
		ix.at(prev).next = newRef
	} else {
		ix.at(parent).firstChild = newRef
	}
	tracer().Debugf("structure: inserted %s before %s", newRef, ref)
	ix.emit(Change{Op: OpInsertBefore, Ref: newRef, Parent: parent, From: from})
	return newRef, nil
}

// InsertAfter links newRef into the sibling list of ref, immediately after ref.
//
// ref has to have a parent, otherwise ErrNoParent is returned. newRef is removed
// from its current position first and ends up as a child of ref's parent.
func (ix *Index[P]) InsertAfter(ref, newRef Ref) (Ref, error) {
	refRec, newRec, err := ix.spliceOperands(ref, newRef)
	if err != nil || ref == newRef {
		return newRef, err
	}
	from := ix.detach(newRec)
	parent := refRec.parent
	next := refRec.next
	newRec.parent, newRec.prev, newRec.next = parent, ref, next
	refRec.next = newRef
	if next != NoRef {
		ix.at(next).prev = newRef
	} else {
		ix.at(parent).lastChild = newRef
	}
	tracer().Debugf("structure: inserted %s after %s", newRef, ref)
	ix.emit(Change{Op: OpInsertAfter, Ref: newRef, Parent: parent, From: from})
	return newRef, nil
}

// PrependChild links newRef as the first child of parent, removing it from its
// current position first.
func (ix *Index[P]) PrependChild(parent, newRef Ref) (Ref, error) {
	parentRec, newRec, err := ix.childOperands(parent, newRef)
	if err != nil {
		return newRef, err
	}
	from := ix.detach(newRec)
	first := parentRec.firstChild
	newRec.parent, newRec.prev, newRec.next = parent, NoRef, first
	if first != NoRef {
		ix.at(first).prev = newRef
	} else {
		parentRec.lastChild = newRef
	}
	parentRec.firstChild = newRef
	tracer().Debugf("structure: prepended %s to %s", newRef, parent)
	ix.emit(Change{Op: OpPrependChild, Ref: newRef, Parent: parent, From: from})
	return newRef, nil
}

// AppendChild links newRef as the last child of parent, removing it from its
// current position first.
func (ix *Index[P]) AppendChild(parent, newRef Ref) (Ref, error) {
	parentRec, newRec, err := ix.childOperands(parent, newRef)
	if err != nil {
		return newRef, err
	}
	from := ix.detach(newRec)
	last := parentRec.lastChild
	newRec.parent, newRec.prev, newRec.next = parent, last, NoRef
	if last != NoRef {
		ix.at(last).next = newRef
	} else {
		parentRec.firstChild = newRef
	}
	parentRec.lastChild = newRef
	tracer().Debugf("structure: appended %s to %s", newRef, parent)
	ix.emit(Change{Op: OpAppendChild, Ref: newRef, Parent: parent, From: from})
	return newRef, nil
}

// detach unlinks rec if it is attached and returns its former parent.
func (ix *Index[P]) detach(rec *record[P]) Ref {
	from := rec.parent
	if from != NoRef {
		ix.unlink(rec)
	}
	return from
}

// spliceOperands validates the operands of InsertBefore and InsertAfter.
func (ix *Index[P]) spliceOperands(ref, newRef Ref) (*record[P], *record[P], error) {
	refRec, newRec := ix.lookup(ref), ix.lookup(newRef)
	if refRec == nil {
		return nil, nil, fmt.Errorf("%w: reference %s", ErrInvalidRef, ref)
	}
	if newRec == nil {
		return nil, nil, fmt.Errorf("%w: new record %s", ErrInvalidRef, newRef)
	}
	if refRec.parent == NoRef {
		tracer().Errorf("structure: cannot insert next to %s: no parent", ref)
		return nil, nil, fmt.Errorf("%w: %s", ErrNoParent, ref)
	}
	if ref != newRef && ix.isAncestorOrSelf(newRef, refRec.parent) {
		return nil, nil, fmt.Errorf("%w: %s next to %s", ErrCycle, newRef, ref)
	}
	return refRec, newRec, nil
}

// childOperands validates the operands of PrependChild and AppendChild.
func (ix *Index[P]) childOperands(parent, newRef Ref) (*record[P], *record[P], error) {
	parentRec, newRec := ix.lookup(parent), ix.lookup(newRef)
	if parentRec == nil {
		return nil, nil, fmt.Errorf("%w: parent %s", ErrInvalidRef, parent)
	}
	if newRec == nil {
		return nil, nil, fmt.Errorf("%w: new record %s", ErrInvalidRef, newRef)
	}
	if ix.isAncestorOrSelf(newRef, parent) {
		tracer().Errorf("structure: cannot link %s below %s: cycle", newRef, parent)
		return nil, nil, fmt.Errorf("%w: %s below %s", ErrCycle, newRef, parent)
	}
	return parentRec, newRec, nil
}

// isAncestorOrSelf reports whether a is r or one of r's ancestors.
func (ix *Index[P]) isAncestorOrSelf(a, r Ref) bool {
	for ; r != NoRef; r = ix.at(r).parent {
		if r == a {
			return true
		}
	}
	return false
}
