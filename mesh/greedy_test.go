package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rasterize paints quads onto an 8x8 cell grid, recording the texture offset
// per cell. Serves as the coverage oracle: merging must never change what any
// cell displays.
func rasterize(t *testing.T, quads []QuadRef) [8][8]uint32 {
	t.Helper()
	var screen [8][8]uint32
	for _, q := range quads {
		for y := q.Y(); y <= q.Y()+q.H(); y++ {
			for x := q.X(); x <= q.X()+q.W(); x++ {
				require.Less(t, y, 8)
				require.Less(t, x, 8)
				screen[y][x] = q.Offset()
			}
		}
	}
	return screen
}

func TestGreedy2DStacksEqualRows(t *testing.T) {
	quads := []QuadRef{
		Pack(1, 0, 0, 0, 0, 2, 0),
		Pack(1, 0, 1, 0, 0, 2, 0),
	}
	out := Greedy2D(quads)
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].W())
	assert.Equal(t, 1, out[0].H())
	assert.Equal(t, 0, out[0].Y())
}

func TestGreedy2DStacksThreeRows(t *testing.T) {
	quads := []QuadRef{
		Pack(7, 2, 0, 0, 0, 1, 0),
		Pack(7, 2, 1, 0, 0, 1, 0),
		Pack(7, 2, 2, 0, 0, 1, 0),
	}
	out := Greedy2D(quads)
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].H())
}

func TestGreedy2DKeepsMismatchedRows(t *testing.T) {
	cases := map[string][]QuadRef{
		"different width": {
			Pack(1, 0, 0, 0, 0, 2, 0),
			Pack(1, 0, 1, 0, 0, 3, 0),
		},
		"different column": {
			Pack(1, 0, 0, 0, 0, 2, 0),
			Pack(1, 1, 1, 0, 0, 2, 0),
		},
		"different texture": {
			Pack(1, 0, 0, 0, 0, 2, 0),
			Pack(2, 0, 1, 0, 0, 2, 0),
		},
		"row gap": {
			Pack(1, 0, 0, 0, 0, 2, 0),
			Pack(1, 0, 2, 0, 0, 2, 0),
		},
	}
	for name, quads := range cases {
		out := Greedy2D(append([]QuadRef(nil), quads...))
		assert.Len(t, out, 2, name)
	}
}

func TestGreedy2DIgnoresSkyExposure(t *testing.T) {
	// Per-row lighting variation must not block stacking.
	quads := []QuadRef{
		Pack(1, 0, 0, 0, 3, 2, 0),
		Pack(1, 0, 1, 0, 9, 2, 0),
	}
	out := Greedy2D(quads)
	require.Len(t, out, 1)
}

func TestGreedy2DEmptyAndSingle(t *testing.T) {
	assert.Empty(t, Greedy2D(nil))

	single := []QuadRef{Pack(1, 4, 4, 0, 0, 1, 1)}
	out := Greedy2D(single)
	require.Len(t, out, 1)
	assert.Equal(t, single[0], out[0])
}

// sampleScene is the 8x8 demo terrain: a column of texture 3 down the left
// edge, runs of textures 1, 2 and 4 behind it, emitted row-major with
// horizontal runs already merged.
func sampleScene() []QuadRef {
	return []QuadRef{
		Pack(3, 0, 0, 0, 0, 0, 0), Pack(1, 1, 0, 0, 0, 4, 0), Pack(4, 6, 0, 0, 0, 1, 0),
		Pack(3, 0, 1, 0, 0, 0, 0), Pack(1, 1, 1, 0, 0, 4, 0), Pack(4, 6, 1, 0, 0, 1, 0),
		Pack(3, 0, 2, 0, 0, 0, 0), Pack(1, 1, 2, 0, 0, 0, 0), Pack(1, 4, 2, 0, 0, 1, 0), Pack(4, 6, 2, 0, 0, 1, 0),
		Pack(3, 0, 3, 0, 0, 0, 0), Pack(1, 1, 3, 0, 0, 1, 0), Pack(2, 5, 3, 0, 0, 2, 0),
		Pack(3, 0, 4, 0, 0, 0, 0), Pack(1, 1, 4, 0, 0, 2, 0), Pack(2, 4, 4, 0, 0, 3, 0),
		Pack(3, 0, 5, 0, 0, 0, 0), Pack(1, 1, 5, 0, 0, 1, 0), Pack(1, 5, 5, 0, 0, 2, 0),
		Pack(3, 0, 6, 0, 0, 0, 0), Pack(1, 1, 6, 0, 0, 2, 0), Pack(2, 4, 6, 0, 0, 3, 0),
		Pack(3, 0, 7, 0, 0, 0, 0), Pack(1, 1, 7, 0, 0, 2, 0), Pack(2, 4, 7, 0, 0, 3, 0),
	}
}

func TestGreedy2DSceneCoverageUnchanged(t *testing.T) {
	scene := sampleScene()
	before := rasterize(t, scene)

	out := Greedy2D(scene)
	after := rasterize(t, out)

	assert.Equal(t, before, after, "merging must not change cell coverage")
	assert.Len(t, out, 13, "25 row runs collapse to 13 rectangles")
}

func BenchmarkGreedy2D(b *testing.B) {
	base := sampleScene()
	work := make([]QuadRef, len(base))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		copy(work, base)
		Greedy2D(work)
	}
}
