package structure

import "errors"

var (
	// ErrInvalidConfig signals an invalid index configuration.
	ErrInvalidConfig = errors.New("structure: invalid configuration")
	// ErrInvalidRef signals a reference which is void, released or issued by another index.
	ErrInvalidRef = errors.New("structure: invalid record reference")
	// ErrNoParent signals a reference record without a sibling list to splice into.
	ErrNoParent = errors.New("structure: reference record has no parent")
	// ErrCycle signals a link operation which would make a record its own ancestor.
	ErrCycle = errors.New("structure: record would become its own ancestor")
	// ErrAttached signals that a record to be released is still linked into a tree.
	ErrAttached = errors.New("structure: record is still attached")
	// ErrInconsistent is reported by Check for broken link invariants.
	ErrInconsistent = errors.New("structure: inconsistent links")
)
