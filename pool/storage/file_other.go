//go:build !unix

package storage

import (
	"fmt"
	"os"
)

// File is a byte region backed by a plain file when mmap is not available.
// Writes go straight through WriteAt; Bytes reads the file back.
type File struct {
	f    *os.File
	size int64
}

// Create creates (or truncates) the file at path and sizes it to size bytes.
func Create(path string, size int64) (*File, error) {
	if size <= 0 {
		return nil, fmt.Errorf("storage: region size must be positive, got %d", size)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		return nil, err
	}
	return &File{f: f, size: size}, nil
}

// Write copies p into the file starting at off. Per the storage contract no
// bounds checking is performed beyond what the filesystem enforces.
func (s *File) Write(off int64, p []byte) {
	_, _ = s.f.WriteAt(p, off)
}

// Bytes reads the whole region back. Returns nil when the read fails.
func (s *File) Bytes() []byte {
	data := make([]byte, s.size)
	if _, err := s.f.ReadAt(data, 0); err != nil {
		return nil
	}
	return data
}

// Size returns the region size in bytes.
func (s *File) Size() int64 { return s.size }

// Flush forces written data to disk.
func (s *File) Flush() error {
	return s.f.Sync()
}

// Close closes the backing file.
func (s *File) Close() error {
	return s.f.Close()
}
