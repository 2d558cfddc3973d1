// Package pool places fixed-stride records into a single contiguous storage
// region using power-of-two buddy allocation.
//
// # Overview
//
// A Pool owns one storage region and one order tree that tracks, per tree
// node, the largest free block inside that node's subtree. Allocation rounds
// the request up to a power of two, descends the tree toward the
// lowest-indexed suitable block, and returns an opaque Handle naming the
// claimed node. Freeing restores the node's order and re-derives ancestor
// values bottom-up, so any fully matched alloc/free sequence leaves the tree
// byte-identical to a freshly constructed one.
//
// # Handles
//
// A Handle is a capability, not an owner: it is valid only between the
// issuing Alloc (or Load) and the matching Free on the same Pool. The element
// type parameter brands handles at compile time so a Handle from a
// Pool[Quad] cannot be redeemed against a Pool[Vertex]. Stale and foreign
// handles whose node is not currently allocated are rejected with
// ErrBadHandle; handles that happen to collide with a live node of another
// pool are not detectable and remain a caller contract violation.
//
// # Storage
//
// The pool writes through the minimal Storage interface and never reads it
// back. Freed bytes are left untouched; stale content may persist until the
// slot is reused and rewritten. See the storage subpackage for an in-memory
// region and an mmap-backed file region.
//
// # Usage
//
//	st := storage.NewMem(8 * poolCap)
//	p, err := pool.New[uint64](st, poolCap, 0)
//	if err != nil {
//		return err
//	}
//
//	h, err := p.Load(records)
//	if errors.Is(err, pool.ErrNoSpace) {
//		// evict something and retry
//	}
//
//	off, _ := p.Offset(h) // byte offset for the downstream consumer
//	...
//	err = p.Free(h)
//
// # Concurrency
//
// A Pool is fully synchronous and performs no internal locking. It assumes
// one exclusive caller at a time; wrap it in a mutex or confine it to one
// goroutine for concurrent use.
package pool
