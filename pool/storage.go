package pool

// Storage is the byte region a Pool places blocks into. It is supplied by the
// encompassing application; the pool only ever writes through it.
//
// This interface is intentionally minimal so that a GPU upload queue, a
// memory-mapped file, or a plain byte slice can all serve as the region.
type Storage interface {
	// Write copies p into the region starting at byte offset off.
	// Implementations perform no bounds checking; the pool's offset and
	// length arithmetic is the only safety net.
	Write(off int64, p []byte)
}
