package structure

import "fmt"

// Ref is an opaque reference to a record of an index.
//
// The lower 32 bits hold the slot number plus one, the upper 32 bits hold the
// generation of the slot at the time the record was initialized. The zero value
// NoRef denotes the absence of a record.
type Ref uint64

// NoRef is the void reference. Queries for relations which do not exist return NoRef.
const NoRef Ref = 0

func makeRef(slot int, gen uint32) Ref {
	return Ref(uint64(gen)<<32 | uint64(slot+1))
}

// slot returns the arena slot of r, or -1 for NoRef.
func (r Ref) slot() int {
	return int(uint32(r)) - 1
}

func (r Ref) generation() uint32 {
	return uint32(r >> 32)
}

// IsVoid reports whether r is NoRef.
func (r Ref) IsVoid() bool {
	return r == NoRef
}

func (r Ref) String() string {
	if r == NoRef {
		return "#none"
	}
	return fmt.Sprintf("#%d.%d", r.slot(), r.generation())
}
