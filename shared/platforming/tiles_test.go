package platforming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlopeFloorRelativeHeight(t *testing.T) {
	tests := []struct {
		name string
		tile SlopedFloorTile
		x    float64
		want float64
	}{
		{"rise start", NewSlopedFloorTile(0, 0, 0, 1), 0, 0},
		{"rise middle", NewSlopedFloorTile(0, 0, 0, 1), 0.25, 0.25},
		{"rise end", NewSlopedFloorTile(0, 0, 0, 1), 1, 1},
		{"fall middle", NewSlopedFloorTile(0, 0, 1, 0), 0.25, 0.75},
		{"ramp high", NewSlopedFloorTile(0, 0, 0.5, 1), 0.5, 0.75},
		{"clamped left", NewSlopedFloorTile(0, 0, 0, 1), -3, 0},
		{"clamped right", NewSlopedFloorTile(0, 0, 0.5, 0), 7, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.tile.FloorRelativeHeight(tt.x), 1e-12)
		})
	}
}

func TestTileClassification(t *testing.T) {
	wall := NewWallTile(1, 2, true)
	oneWay := NewWallTile(1, 2, false)
	slope := NewSlopedFloorTile(1, 2, 0, 1)
	empty := NewEmptyTile(1, 2)

	assert.True(t, wall.IsWall())
	assert.True(t, wall.IsWallUp())
	assert.True(t, oneWay.IsWall())
	assert.False(t, oneWay.IsWallUp())
	assert.True(t, slope.IsFloorSlope())
	assert.False(t, slope.IsWall())
	assert.False(t, empty.IsWall())
	assert.False(t, empty.IsFloorSlope())

	x, y := slope.Position()
	assert.Equal(t, 1, x)
	assert.Equal(t, 2, y)
}

func TestSlopeSurfaceUnder(t *testing.T) {
	s := NewSlopedFloorTile(3, 1, 0, 1)

	// A span covering the high end takes the high point.
	assert.InDelta(t, 1.0, s.surfaceUnder(3.5, 4.5), 1e-12)
	assert.InDelta(t, 1.5, s.surfaceUnder(3.0, 3.5), 1e-12)
	assert.InDelta(t, 2.0, s.entrySurface(1), 1e-12)
	assert.InDelta(t, 1.0, s.entrySurface(-1), 1e-12)
}

func TestTileFromCode(t *testing.T) {
	assert.IsType(t, WallTile{}, TileFromCode('x', 0, 0))
	assert.IsType(t, EmptyTile{}, TileFromCode('?', 0, 0))
	assert.IsType(t, EmptyTile{}, TileFromCode(' ', 0, 0))

	r := TileFromCode('R', 2, 3).(SlopedFloorTile)
	assert.Equal(t, 0.5, r.FloorLeft)
	assert.Equal(t, 1.0, r.FloorRight)
	x, y := r.Position()
	assert.Equal(t, 2, x)
	assert.Equal(t, 3, y)

	for _, code := range []byte("x^/.rRlL ") {
		assert.Equal(t, code, Code(TileFromCode(code, 0, 0)), "code %q", code)
	}
}

func TestCodeOfUnlistedSlopeIsEmpty(t *testing.T) {
	for iter := 0; iter < 20; iter++ {
		assert.Equal(t, byte(CodeEmpty), Code(NewSlopedFloorTile(0, 0, 0.3, 0.7)))
	}
	assert.Equal(t, byte(CodeRampLow), Code(NewSlopedFloorTile(0, 0, 0, 0.5)))
}

func TestParseTilesPadsShortRows(t *testing.T) {
	m := ParseTiles([]string{"x", "xxx"}, false)

	require.Equal(t, 3, m.Width)
	require.Equal(t, 2, m.Height)
	assert.IsType(t, EmptyTile{}, m.Tiles[0][2])
	assert.Equal(t, []string{"x  ", "xxx"}, Rows(m))
}

func TestParseTilesFlippedRoundTrip(t *testing.T) {
	rows := []string{
		"  /x.  ",
		" rR^Ll ",
		"xxxxxxx",
	}
	mirrored := make([]string, len(rows))
	for i, row := range rows {
		b := []byte(row)
		out := make([]byte, len(b))
		for x := range b {
			out[len(b)-1-x] = MirrorCode(b[x])
		}
		mirrored[i] = string(out)
	}

	flipped := ParseTiles(rows, true)
	plain := ParseTiles(mirrored, false)
	original := ParseTiles(rows, false)

	require.Equal(t, plain.Width, flipped.Width)
	for y := 0; y < flipped.Height; y++ {
		for x := 0; x < flipped.Width; x++ {
			a, b := flipped.Tiles[y][x], plain.Tiles[y][x]
			assert.Equal(t, Code(a), Code(b), "cell (%d, %d)", x, y)
			assert.Equal(t, a.IsWall(), b.IsWall())
			assert.Equal(t, a.IsWallUp(), b.IsWallUp())
			assert.Equal(t, a.IsFloorSlope(), b.IsFloorSlope())

			tx, ty := a.Position()
			assert.Equal(t, x, tx)
			assert.Equal(t, y, ty)

			// The height profile is mirrored too.
			src := original.Tiles[y][flipped.Width-1-x]
			assert.InDelta(t, src.FloorRelativeHeight(0.2), a.FloorRelativeHeight(0.8), 1e-12)
		}
	}
}
