package mesh

import (
	"fmt"

	"github.com/jmi2k/vertexpool/internal/buf"
)

// Quad streams travel between the mesher and other tools as little-endian
// files: a 4-byte quad count followed by one 8-byte word per quad.

const streamHeaderSize = 4

// EncodeStream serializes quads into the little-endian stream format.
func EncodeStream(quads []QuadRef) []byte {
	out := make([]byte, streamHeaderSize+8*len(quads))
	buf.PutU32LE(out, uint32(len(quads)))
	for i, q := range quads {
		buf.PutU64LE(out[streamHeaderSize+8*i:], uint64(q))
	}
	return out
}

// DecodeStream parses a stream produced by EncodeStream, validating that the
// declared count matches the bytes present.
func DecodeStream(b []byte) ([]QuadRef, error) {
	if !buf.Has(b, 0, streamHeaderSize) {
		return nil, fmt.Errorf("mesh: stream truncated (%d bytes)", len(b))
	}
	count := int(buf.U32LE(b))
	size, ok := buf.MulOverflowSafe(count, 8)
	if !ok {
		return nil, fmt.Errorf("mesh: stream declares %d quads, size overflows", count)
	}
	body, ok := buf.Slice(b, streamHeaderSize, size)
	if !ok {
		return nil, fmt.Errorf("mesh: stream declares %d quads but holds %d payload bytes",
			count, len(b)-streamHeaderSize)
	}

	quads := make([]QuadRef, count)
	for i := range quads {
		quads[i] = QuadRef(buf.U64LE(body[8*i:]))
	}
	return quads, nil
}
