package platforming

import "math"

// Tile is the closed set of tile variants a platforming grid holds:
// EmptyTile, WallTile and SlopedFloorTile.
type Tile interface {
	// IsWall reports whether the tile stops downward movement.
	IsWall() bool
	// IsWallUp reports whether the tile also stops upward and horizontal
	// movement. One-way platforms are walls that are not walls up.
	IsWallUp() bool
	IsFloorSlope() bool
	// FloorRelativeHeight is the floor height in [0,1] measured up from the
	// tile's bottom edge at xInTile in [0,1]. It is monotonic in xInTile.
	FloorRelativeHeight(xInTile float64) float64
	// Position is the tile's cell in its grid.
	Position() (x, y int)

	isTile()
}

type tilePos struct {
	TileX, TileY int
}

func (p tilePos) Position() (int, int) { return p.TileX, p.TileY }
func (tilePos) isTile()                {}

// EmptyTile blocks nothing.
type EmptyTile struct {
	tilePos
}

func NewEmptyTile(x, y int) EmptyTile {
	return EmptyTile{tilePos{x, y}}
}

func (EmptyTile) IsWall() bool                        { return false }
func (EmptyTile) IsWallUp() bool                      { return false }
func (EmptyTile) IsFloorSlope() bool                  { return false }
func (EmptyTile) FloorRelativeHeight(float64) float64 { return 0 }

// WallTile is a solid block. With WallUp unset it is a one-way platform that
// can be jumped through from below and walked through sideways.
type WallTile struct {
	tilePos
	WallUp bool
}

func NewWallTile(x, y int, wallUp bool) WallTile {
	return WallTile{tilePos: tilePos{x, y}, WallUp: wallUp}
}

func (WallTile) IsWall() bool                        { return true }
func (t WallTile) IsWallUp() bool                    { return t.WallUp }
func (WallTile) IsFloorSlope() bool                  { return false }
func (WallTile) FloorRelativeHeight(float64) float64 { return 1 }

// SlopedFloorTile is a walkable ramp whose floor runs linearly from
// FloorLeft at the tile's left edge to FloorRight at its right edge.
type SlopedFloorTile struct {
	tilePos
	FloorLeft  float64
	FloorRight float64
}

func NewSlopedFloorTile(x, y int, floorLeft, floorRight float64) SlopedFloorTile {
	if Debug {
		assertf(floorLeft >= 0 && floorLeft <= 1 && floorRight >= 0 && floorRight <= 1,
			"slope heights (%v, %v) outside [0,1] at (%d, %d)", floorLeft, floorRight, x, y)
	}
	return SlopedFloorTile{tilePos: tilePos{x, y}, FloorLeft: floorLeft, FloorRight: floorRight}
}

func (SlopedFloorTile) IsWall() bool       { return false }
func (SlopedFloorTile) IsWallUp() bool     { return false }
func (SlopedFloorTile) IsFloorSlope() bool { return true }

func (t SlopedFloorTile) FloorRelativeHeight(xInTile float64) float64 {
	x := clamp01(xInTile)
	h := t.FloorLeft + (t.FloorRight-t.FloorLeft)*x
	return math.Max(math.Min(h, math.Max(t.FloorLeft, t.FloorRight)), math.Min(t.FloorLeft, t.FloorRight))
}

// surfaceUnder returns the grid-space y of the highest floor point under the
// horizontal span [left, right]. The height function is monotonic so the
// highest point is at one end of the span's overlap with the tile.
func (t SlopedFloorTile) surfaceUnder(left, right float64) float64 {
	tx := float64(t.TileX)
	h := math.Max(t.FloorRelativeHeight(left-tx), t.FloorRelativeHeight(right-tx))
	return float64(t.TileY) + 1 - h
}

// entrySurface is the floor y at the edge an object crosses when it enters
// the tile moving in direction dir.
func (t SlopedFloorTile) entrySurface(dir float64) float64 {
	edge := 0.0
	if dir < 0 {
		edge = 1
	}
	return float64(t.TileY) + 1 - t.FloorRelativeHeight(edge)
}

func isWall(t Tile) bool          { return t.IsWall() }
func isWallUp(t Tile) bool        { return t.IsWallUp() }
func isFloorSlope(t Tile) bool    { return t.IsFloorSlope() }
func isFloorOrWallUp(t Tile) bool { return t.IsFloorSlope() || t.IsWallUp() }

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
