package pool

// Handle names a currently allocated block by its tree node index. The type
// parameter brands the handle with the element type it addresses, so handles
// cannot cross between pools of different element types at compile time.
//
// The zero Handle is invalid and rejected by every operation. A Handle owns
// nothing: it must not be used after Free, nor against a Pool other than the
// one that issued it.
type Handle[T any] struct {
	node int
}

// IsZero reports whether h is the invalid zero handle.
func (h Handle[T]) IsZero() bool { return h.node == 0 }
