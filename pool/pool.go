package pool

import (
	"fmt"
	"math/bits"
	"unsafe"

	"github.com/jmi2k/vertexpool/internal/buf"
	"github.com/jmi2k/vertexpool/internal/ordertree"
)

// Pool is a buddy allocator over one contiguous storage region holding
// elements of type T. T must be a plain fixed-size value type (no pointers,
// maps, slices or strings); its in-memory bytes are copied verbatim into
// storage.
type Pool[T any] struct {
	storage Storage
	tree    *ordertree.Tree
	stride  int
}

// Stats is a point-in-time summary of a pool's occupancy.
type Stats struct {
	Capacity    int // region size in elements
	Stride      int // element size in bytes
	MaxOrder    uint8
	MinOrder    uint8
	LiveBlocks  int // currently allocated blocks
	LiveElems   int // elements spanned by allocated blocks
	LargestFree int // advertised largest free order (an upper bound under fragmentation), -1 when exhausted
}

// New builds a pool over st for capacity elements, rounded up to the next
// power of two, with 2^minOrder elements as the smallest allocatable block.
// The caller must size st for at least Capacity() * stride bytes.
func New[T any](st Storage, capacity int, minOrder uint8) (*Pool[T], error) {
	tree, err := ordertree.New(capacity, minOrder)
	if err != nil {
		return nil, fmt.Errorf("pool: %w", err)
	}
	var zero T
	return &Pool[T]{
		storage: st,
		tree:    tree,
		stride:  int(unsafe.Sizeof(zero)),
	}, nil
}

// Capacity returns the region size in elements.
func (p *Pool[T]) Capacity() int { return p.tree.Capacity() }

// Stride returns the element size in bytes.
func (p *Pool[T]) Stride() int { return p.stride }

// MaxOrder returns the order of the whole region.
func (p *Pool[T]) MaxOrder() uint8 { return p.tree.MaxOrder() }

// MinOrder returns the smallest allocatable order.
func (p *Pool[T]) MinOrder() uint8 { return p.tree.MinOrder() }

// Alloc claims a block holding at least n elements and returns its handle.
// The block's size is exactly 2^max(ceil(log2 n), minOrder) elements. Returns
// ErrNoSpace, with no state change, when no suitable block exists.
func (p *Pool[T]) Alloc(n int) (Handle[T], error) {
	if n < 0 {
		return Handle[T]{}, fmt.Errorf("%w, got %d", ErrBadSize, n)
	}
	node, ok := p.tree.Alloc(ceilLog2(n))
	if !ok {
		return Handle[T]{}, fmt.Errorf("%w (need %d elements)", ErrNoSpace, n)
	}
	return Handle[T]{node: node}, nil
}

// Free releases the block named by h. The block's bytes in storage are left
// untouched; stale content may remain until the slot is reused.
func (p *Pool[T]) Free(h Handle[T]) error {
	if err := p.check(h); err != nil {
		return err
	}
	p.tree.Free(h.node)
	return nil
}

// Write copies data into storage at the block's byte offset. The data must
// fit in the block; partial writes at an element granularity are allowed and
// leave the block's tail untouched.
func (p *Pool[T]) Write(h Handle[T], data []T) error {
	if err := p.check(h); err != nil {
		return err
	}
	if n := p.blockLen(h.node); len(data) > n {
		return fmt.Errorf("%w (%d elements into a %d-element block)", ErrTooLarge, len(data), n)
	}
	if len(data) == 0 {
		return nil
	}
	off, err := p.offset(h.node)
	if err != nil {
		return err
	}
	p.storage.Write(off, unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*p.stride))
	return nil
}

// Load is Alloc followed by Write. On allocation failure nothing is touched,
// so Load is observably all-or-nothing.
func (p *Pool[T]) Load(data []T) (Handle[T], error) {
	h, err := p.Alloc(len(data))
	if err != nil {
		return Handle[T]{}, err
	}
	if err := p.Write(h, data); err != nil {
		p.tree.Free(h.node)
		return Handle[T]{}, err
	}
	return h, nil
}

// Offset returns the byte offset of the block named by h within the storage
// region, for downstream consumers that read the region directly.
func (p *Pool[T]) Offset(h Handle[T]) (int64, error) {
	if err := p.check(h); err != nil {
		return 0, err
	}
	return p.offset(h.node)
}

// BlockLen returns the capacity in elements of the block named by h.
func (p *Pool[T]) BlockLen(h Handle[T]) (int, error) {
	if err := p.check(h); err != nil {
		return 0, err
	}
	return p.blockLen(h.node), nil
}

// SameShape reports whether both pools' order trees are element-wise equal.
// Storage content is ignored. A pool that went through a fully matched
// alloc/free cycle is SameShape with a freshly constructed twin.
func (p *Pool[T]) SameShape(o *Pool[T]) bool {
	return p.tree.Equal(o.tree)
}

// Stats returns a point-in-time occupancy summary.
func (p *Pool[T]) Stats() Stats {
	s := Stats{
		Capacity:    p.tree.Capacity(),
		Stride:      p.stride,
		MaxOrder:    p.tree.MaxOrder(),
		MinOrder:    p.tree.MinOrder(),
		LargestFree: -1,
	}
	s.LiveBlocks, s.LiveElems = p.tree.Live()
	if order, ok := p.tree.LargestFree(); ok {
		s.LargestFree = int(order)
	}
	return s
}

func (p *Pool[T]) check(h Handle[T]) error {
	if h.node == 0 || !p.tree.IsUsed(h.node) {
		return fmt.Errorf("%w (node %d)", ErrBadHandle, h.node)
	}
	return nil
}

func (p *Pool[T]) blockLen(node int) int {
	return 1 << p.tree.Order(node)
}

// offset translates a tree node into a byte offset: the node's position among
// same-depth blocks, times the block size in elements, times the stride.
func (p *Pool[T]) offset(node int) (int64, error) {
	depth := bits.Len(uint(node)) - 1
	index := node - 1<<depth
	elems := index << p.tree.Order(node)
	off, ok := buf.MulOverflowSafe(elems, p.stride)
	if !ok {
		return 0, fmt.Errorf("pool: offset overflows for node %d", node)
	}
	return int64(off), nil
}

// ceilLog2 returns the smallest order whose block holds n elements. Requests
// of 0 round up to a single element, matching the power-of-two round-up.
func ceilLog2(n int) uint8 {
	if n <= 1 {
		return 0
	}
	return uint8(bits.Len(uint(n - 1)))
}
