// Package ordertree tracks free and used blocks of a buddy-managed region
// through a flat array-backed complete binary tree.
//
// Each node covers a power-of-two range of elements and stores the order of
// the largest free block fully inside its subtree, or Used when the node
// itself is an allocated block. Node i's children live at 2i and 2i+1; index 0
// is reserved so that every live node has a non-zero index.
package ordertree

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// Used marks a node whose exact range is currently allocated. It is int8's
// minimum, far below any reachable order (maxOrder <= 62 on 64-bit ints), so
// the two value domains cannot collide.
const Used int8 = math.MinInt8

// ErrDegenerate indicates minOrder exceeded the region's maximum order at
// construction time.
var ErrDegenerate = errors.New("ordertree: min order exceeds max order")

// Tree records per-node largest-free-order values for a region of
// 2^maxOrder elements whose smallest allocatable block is 2^minOrder elements.
//
// Invariant, for every internal node with children a and b:
//
//	value = max(a, b) + (1 if a == b else 0)
//
// The +1 on equal siblings lets the descent treat two equal-order free buddies
// as jointly satisfying a request one order larger, without physically merging
// anything. The bonus also fires on equal siblings that are merely partially
// free, so ancestor values are an upper bound on what is allocatable; Alloc
// verifies the block it reaches is genuinely free before claiming it.
type Tree struct {
	nodes    []int8
	maxOrder uint8
	minOrder uint8
}

// New builds a pristine tree for a region of capacity elements, rounded up to
// the next power of two. Every node starts tagged as if its whole subtree were
// one free block, so the region is a single free block of order maxOrder.
func New(capacity int, minOrder uint8) (*Tree, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("ordertree: capacity must be positive, got %d", capacity)
	}
	capacity = nextPow2(capacity)
	maxOrder := uint8(bits.Len(uint(capacity)) - 1)
	if minOrder > maxOrder {
		return nil, fmt.Errorf("%w (min %d, max %d)", ErrDegenerate, minOrder, maxOrder)
	}

	nodes := make([]int8, (2*capacity)>>minOrder)
	nodes[0] = Used // reserved slot, never read
	for level := uint8(0); level <= maxOrder-minOrder; level++ {
		order := int8(maxOrder - level)
		row := nodes[1<<level : 2<<level]
		for i := range row {
			row[i] = order
		}
	}

	return &Tree{nodes: nodes, maxOrder: maxOrder, minOrder: minOrder}, nil
}

// Capacity returns the region size in elements.
func (t *Tree) Capacity() int {
	return (len(t.nodes) / 2) << t.minOrder
}

// MaxOrder returns the order of the whole region.
func (t *Tree) MaxOrder() uint8 { return t.maxOrder }

// MinOrder returns the smallest allocatable order.
func (t *Tree) MinOrder() uint8 { return t.minOrder }

// Len returns the node count, including the reserved index 0.
func (t *Tree) Len() int { return len(t.nodes) }

// Contains reports whether node is a live tree index.
func (t *Tree) Contains(node int) bool {
	return node >= 1 && node < len(t.nodes)
}

// IsUsed reports whether node is currently an allocated block.
func (t *Tree) IsUsed(node int) bool {
	return t.Contains(node) && t.nodes[node] == Used
}

// Order returns the block order a node addresses, derived from its depth.
func (t *Tree) Order(node int) uint8 {
	return t.maxOrder - uint8(bits.Len(uint(node))-1)
}

// Alloc claims the lowest-indexed block of exactly order target, clamped up to
// minOrder. It returns the claimed node, or ok = false when no genuinely free
// block of that order is reachable; in that case no state changes.
func (t *Tree) Alloc(target uint8) (node int, ok bool) {
	if target < t.minOrder {
		target = t.minOrder
	}
	if target > t.maxOrder || t.nodes[1] < int8(target) {
		return 0, false
	}

	// Walk down the tree looking for a suitable block. When both children
	// qualify, take the lower-indexed one to mitigate fragmentation.
	node = 1
	for i := uint8(0); i < t.maxOrder-target; i++ {
		node <<= 1
		if t.nodes[node] < int8(target) {
			node |= 1
		}
	}

	// The equal-sibling bonus can advertise an order backed only by two
	// partially free subtrees. A genuinely free block stores exactly its
	// structural order; anything less means the descent dead-ended on a
	// phantom block, and claiming it would overlap a live allocation.
	if t.nodes[node] != int8(target) {
		return 0, false
	}

	t.nodes[node] = Used
	t.updateParents(node)
	return node, true
}

// Free releases a previously claimed node, restoring the order implied by its
// depth. The caller must ensure node is currently used; Tree performs no
// double-free detection itself.
func (t *Tree) Free(node int) {
	t.nodes[node] = int8(t.Order(node))
	t.updateParents(node)
}

// updateParents re-derives ancestor values after nodes[node] changed, stopping
// as soon as a recomputed value matches what was already stored.
func (t *Tree) updateParents(node int) {
	for node > 1 {
		a := t.nodes[node&^1]
		b := t.nodes[node|1]
		node >>= 1

		v := max(a, b)
		if a == b {
			v++
		}
		if t.nodes[node] == v {
			return
		}
		t.nodes[node] = v
	}
}

// Equal reports element-wise equality of the two trees' node arrays. A fully
// matched alloc/free cycle must leave a tree Equal to a freshly built one.
func (t *Tree) Equal(o *Tree) bool {
	if len(t.nodes) != len(o.nodes) || t.minOrder != o.minOrder {
		return false
	}
	for i := range t.nodes {
		if t.nodes[i] != o.nodes[i] {
			return false
		}
	}
	return true
}

// Live counts currently allocated blocks and the elements they span.
func (t *Tree) Live() (blocks, elems int) {
	for node := 1; node < len(t.nodes); node++ {
		if t.nodes[node] == Used {
			blocks++
			elems += 1 << t.Order(node)
		}
	}
	return blocks, elems
}

// LargestFree returns the root's advertised largest free order, or ok = false
// when the region is completely exhausted at minOrder granularity. The value
// is an upper bound: fragmented free space can advertise an order no single
// aligned block backs.
func (t *Tree) LargestFree() (order uint8, ok bool) {
	if t.nodes[1] < int8(t.minOrder) {
		return 0, false
	}
	return uint8(t.nodes[1]), true
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
