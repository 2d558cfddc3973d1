package pool

import (
	"errors"

	"github.com/jmi2k/vertexpool/internal/ordertree"
)

var (
	// ErrNoSpace indicates no free block of at least the requested order exists.
	// Recoverable; the pool state is unchanged and the caller may retry after
	// freeing other blocks.
	ErrNoSpace = errors.New("pool: no free block large enough")

	// ErrBadHandle indicates a zero handle, a handle already freed, or a handle
	// whose node is not currently an allocated block.
	ErrBadHandle = errors.New("pool: handle does not name a live block")

	// ErrTooLarge indicates a write of more elements than the handle's block holds.
	ErrTooLarge = errors.New("pool: data exceeds block capacity")

	// ErrBadSize indicates a negative allocation size.
	ErrBadSize = errors.New("pool: allocation size must be non-negative")

	// ErrDegenerate indicates minOrder exceeded the region's maximum order at
	// construction time. No pool is produced.
	ErrDegenerate = ordertree.ErrDegenerate
)
