//go:build unix

package storage

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// File is a byte region backed by a memory-mapped file. Writes land in the
// mapping immediately; Flush forces them to disk with msync.
type File struct {
	f    *os.File
	data []byte
}

// Create creates (or truncates) the file at path, sizes it to size bytes and
// maps it read-write.
func Create(path string, size int64) (*File, error) {
	if size <= 0 {
		return nil, fmt.Errorf("storage: region size must be positive, got %d", size)
	}
	if size > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("storage: region too large to map (%d bytes)", size)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		return nil, err
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("storage: mmap: %w", err)
	}
	return &File{f: f, data: data}, nil
}

// Write copies p into the mapping starting at off. Per the storage contract
// no bounds checking is performed.
func (s *File) Write(off int64, p []byte) {
	copy(s.data[off:], p)
}

// Bytes exposes the mapping for consumers reading it directly. The slice is
// invalid after Close.
func (s *File) Bytes() []byte { return s.data }

// Size returns the region size in bytes.
func (s *File) Size() int64 { return int64(len(s.data)) }

// Flush synchronously writes the whole mapping back to the file.
func (s *File) Flush() error {
	return unix.Msync(s.data, unix.MS_SYNC)
}

// Close unmaps the region and closes the file. The mapping keeps dirty pages
// alive until the kernel writes them back; call Flush first when durability
// matters.
func (s *File) Close() error {
	if s.data != nil {
		if err := unix.Munmap(s.data); err != nil {
			return err
		}
		s.data = nil
	}
	return s.f.Close()
}
