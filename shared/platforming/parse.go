package platforming

import "github.com/automoto/platforming/shared/tilemap"

// Tile codes understood by ParseTiles.
const (
	CodeEmpty     = ' '
	CodeWall      = 'x'
	CodeOneWay    = '^'
	CodeSlopeUp   = '/' // rises to the right, 45 degrees
	CodeSlopeDown = '.' // falls to the right, 45 degrees
	CodeRampLow   = 'r' // lower half of a shallow rise to the right
	CodeRampHigh  = 'R' // upper half of a shallow rise to the right
	CodeFallLow   = 'l' // lower half of a shallow fall to the right
	CodeFallHigh  = 'L' // upper half of a shallow fall to the right
)

var slopeHeights = map[byte][2]float64{
	CodeSlopeUp:   {0, 1},
	CodeSlopeDown: {1, 0},
	CodeRampLow:   {0, 0.5},
	CodeRampHigh:  {0.5, 1},
	CodeFallLow:   {0.5, 0},
	CodeFallHigh:  {1, 0.5},
}

var mirroredCodes = map[byte]byte{
	CodeSlopeUp:   CodeSlopeDown,
	CodeSlopeDown: CodeSlopeUp,
	CodeRampLow:   CodeFallLow,
	CodeFallLow:   CodeRampLow,
	CodeRampHigh:  CodeFallHigh,
	CodeFallHigh:  CodeRampHigh,
}

// MirrorCode returns the code describing the same tile flipped horizontally.
func MirrorCode(code byte) byte {
	if m, ok := mirroredCodes[code]; ok {
		return m
	}
	return code
}

// TileFromCode builds the tile for a single code at (x, y). Unknown codes
// become empty tiles.
func TileFromCode(code byte, x, y int) Tile {
	switch code {
	case CodeWall:
		return NewWallTile(x, y, true)
	case CodeOneWay:
		return NewWallTile(x, y, false)
	}
	if h, ok := slopeHeights[code]; ok {
		return NewSlopedFloorTile(x, y, h[0], h[1])
	}
	return NewEmptyTile(x, y)
}

var slopeCodes = []byte{CodeSlopeUp, CodeSlopeDown, CodeRampLow, CodeRampHigh, CodeFallLow, CodeFallHigh}

// Code is the inverse of TileFromCode, used by renderers and level writers.
// Slopes whose heights match no code map to CodeEmpty.
func Code(t Tile) byte {
	switch t := t.(type) {
	case WallTile:
		if t.WallUp {
			return CodeWall
		}
		return CodeOneWay
	case SlopedFloorTile:
		for _, code := range slopeCodes {
			if h := slopeHeights[code]; h[0] == t.FloorLeft && h[1] == t.FloorRight {
				return code
			}
		}
		return CodeEmpty
	default:
		return CodeEmpty
	}
}

// ParseTiles builds a grid from rows of single-character codes. Short rows
// are padded with empty tiles. With flippedX the rows are read right to left
// and every slope code is mirrored, so the level is the horizontal mirror
// image of its text.
func ParseTiles(rows []string, flippedX bool) *tilemap.TileMap[Tile] {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	return tilemap.New(width, len(rows), func(x, y int) Tile {
		srcX := x
		if flippedX {
			srcX = width - 1 - x
		}
		code := byte(CodeEmpty)
		if y < len(rows) && srcX < len(rows[y]) {
			code = rows[y][srcX]
		}
		if flippedX {
			code = MirrorCode(code)
		}
		return TileFromCode(code, x, y)
	})
}

// Rows renders a grid back into tile codes.
func Rows(m *tilemap.TileMap[Tile]) []string {
	rows := make([]string, m.Height)
	for y := 0; y < m.Height; y++ {
		row := make([]byte, m.Width)
		for x := 0; x < m.Width; x++ {
			row[x] = Code(m.Tiles[y][x])
		}
		rows[y] = string(row)
	}
	return rows
}
