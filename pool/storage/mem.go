// Package storage provides byte regions a pool can place blocks into: an
// in-memory slice and an mmap-backed file. Both satisfy the pool's Storage
// contract, which performs no bounds checking of its own.
package storage

// Mem is an in-memory byte region. It doubles as a readable test double for
// verifying exactly where the pool placed each block.
type Mem struct {
	data []byte
}

// NewMem allocates a zero-filled region of size bytes.
func NewMem(size int64) *Mem {
	return &Mem{data: make([]byte, size)}
}

// Write copies p into the region starting at off. Per the storage contract no
// bounds checking is performed; an offset past the region panics.
func (m *Mem) Write(off int64, p []byte) {
	copy(m.data[off:], p)
}

// Bytes exposes the backing region for consumers reading it directly.
func (m *Mem) Bytes() []byte { return m.data }

// Size returns the region size in bytes.
func (m *Mem) Size() int64 { return int64(len(m.data)) }
