package structure

// Op enumerates the kinds of structural changes an index reports to listeners.
type Op int8

const (
	OpInitialize Op = iota // a new detached record
	OpRemove               // a record has been detached from its parent
	OpInsertBefore         // a record has been spliced before a sibling
	OpInsertAfter          // a record has been spliced after a sibling
	OpPrependChild         // a record has become the first child of a parent
	OpAppendChild          // a record has become the last child of a parent
	OpFree                 // a record slot has been released
)

func (op Op) String() string {
	switch op {
	case OpInitialize:
		return "initialize"
	case OpRemove:
		return "remove"
	case OpInsertBefore:
		return "insert-before"
	case OpInsertAfter:
		return "insert-after"
	case OpPrependChild:
		return "prepend-child"
	case OpAppendChild:
		return "append-child"
	case OpFree:
		return "free"
	}
	return "unknown"
}

// Change describes a completed structural mutation.
//
// Ref is the record which has been moved, created or released. Parent is its
// parent after the change, From its parent before the change (NoRef for records
// which have been detached before).
type Change struct {
	Op     Op
	Ref    Ref
	Parent Ref
	From   Ref
}

// Listener is called synchronously after every successful structural mutation.
// Listeners must not mutate the index they are listening to.
type Listener func(Change)

type listenerEntry struct {
	id int
	fn Listener
}

// OnChange registers a listener for structural changes. The returned function
// unregisters the listener again; calling it more than once is harmless.
func (ix *Index[P]) OnChange(fn Listener) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	ix.listenerSeq++
	id := ix.listenerSeq
	ix.listeners = append(ix.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		for i, l := range ix.listeners {
			if l.id == id {
				ix.listeners = append(ix.listeners[:i:i], ix.listeners[i+1:]...)
				return
			}
		}
	}
}

func (ix *Index[P]) emit(c Change) {
	for _, l := range ix.listeners {
		l.fn(c)
	}
}
