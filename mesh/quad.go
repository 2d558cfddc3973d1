// Package mesh builds packed quad streams for a voxel renderer: 64-bit quad
// references plus a greedy pass that merges vertically adjacent rows.
package mesh

// QuadRef packs one axis-aligned quad into 64 bits:
//
//	Bits    Field
//	0..31   texture/material offset
//	32..36  x within the chunk (5 bits)
//	37..41  y within the chunk
//	42..46  z within the chunk
//	47..50  sky exposure (4 bits)
//	51..55  width minus one, in cells
//	56..60  height minus one, in cells
//
// Width and height of 0 mean a single cell, so a quad always covers
// (W+1) x (H+1) cells starting at (X, Y).
type QuadRef uint64

const (
	xShift   = 32
	yShift   = 37
	zShift   = 42
	skyShift = 47
	wShift   = 51
	hShift   = 56

	coordMask = 0x1f
	skyMask   = 0xf
)

// Pack builds a QuadRef. Coordinates are wrapped into 0..31 and sky exposure
// into 0..15; width and height count additional cells beyond the first.
func Pack(offset uint32, x, y, z int, sky, w, h uint8) QuadRef {
	return QuadRef(offset) |
		QuadRef(uint64(x)&coordMask)<<xShift |
		QuadRef(uint64(y)&coordMask)<<yShift |
		QuadRef(uint64(z)&coordMask)<<zShift |
		QuadRef(sky&skyMask)<<skyShift |
		QuadRef(w&coordMask)<<wShift |
		QuadRef(h&coordMask)<<hShift
}

// Offset returns the texture/material offset.
func (q QuadRef) Offset() uint32 { return uint32(q) }

// X returns the quad's first cell column.
func (q QuadRef) X() int { return int(q>>xShift) & coordMask }

// Y returns the quad's first cell row.
func (q QuadRef) Y() int { return int(q>>yShift) & coordMask }

// Z returns the quad's layer.
func (q QuadRef) Z() int { return int(q>>zShift) & coordMask }

// Sky returns the sky exposure level.
func (q QuadRef) Sky() uint8 { return uint8(q>>skyShift) & skyMask }

// W returns the width in cells beyond the first.
func (q QuadRef) W() int { return int(q>>wShift) & coordMask }

// H returns the height in cells beyond the first.
func (q QuadRef) H() int { return int(q>>hShift) & coordMask }

// ExtendW returns q widened by one cell.
func (q QuadRef) ExtendW() QuadRef { return q + 1<<wShift }

// ExtendH returns q grown one cell taller.
func (q QuadRef) ExtendH() QuadRef { return q + 1<<hShift }
