package engine

// Element is the set of element kinds the comparison kernels accept.
type Element interface {
	~int32 | ~float32
}

// Integer is the set of element kinds RadixSort accepts. int64 is included
// so that the key-width guard is reachable.
type Integer interface {
	~int32 | ~int64
}

// DefaultInsertionThreshold is used when Options leave it unset.
const DefaultInsertionThreshold = 16
