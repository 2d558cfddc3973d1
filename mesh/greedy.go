package mesh

// mergeKeyMask selects the fields two quads must share to stack vertically:
// texture offset, x origin and width. Sky exposure and z are deliberately
// ignored, matching the renderer's tolerance for per-row lighting variation.
const mergeKeyMask = QuadRef(0x00f8_001f_ffff_ffff)

// Greedy2D merges vertically adjacent quads in place and returns the
// shortened stream. Input must be in row-major order (ascending y, then
// ascending x), as produced by the per-row sweep; each input quad is already
// merged horizontally.
//
// Two quads stack when the upper one starts exactly one row below the lower
// one's last row and both agree on origin column, width and texture.
func Greedy2D(quads []QuadRef) []QuadRef {
	dest, back, lead := 0, 0, 0

	for back < len(quads) {
		if lead == len(quads) {
			quads[dest] = quads[back]
			dest++
			back++
			continue
		}

		b, l := quads[back], quads[lead]
		dy := l.Y() - b.Y() - b.H()

		switch {
		case dy == 0:
			// Lead still on the back quad's bottom row.
			lead++
		case dy != 1:
			// A gap (or out-of-reach row): the back quad can never grow.
			quads[dest] = b
			dest++
			back++
		case b.X() > l.X():
			lead++
		case b&mergeKeyMask == l&mergeKeyMask:
			// Stack: the merged quad takes the lead slot so it can keep
			// growing through later rows.
			quads[lead] = b.ExtendH()
			back++
			lead++
		default:
			quads[dest] = b
			dest++
			back++
		}
	}

	return quads[:dest]
}
