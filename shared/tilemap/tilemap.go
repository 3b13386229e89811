// Package tilemap provides a fixed-size grid of tiles with the directional
// nearest-tile searches used by the platforming sweep. One tile is one world
// unit; callers translate into grid space before querying.
package tilemap

import (
	"math"

	"github.com/automoto/platforming/shared/geom"
)

// Epsilon separates object boundaries from tile boundaries. Sampled points are
// moved this far inward from rect edges so an object resting exactly against
// a tile edge is never classified as overlapping it.
const Epsilon = 1e-5

// TileMap is a row-major grid. Tiles[y][x] is always populated.
type TileMap[T any] struct {
	Width  int
	Height int
	Tiles  [][]T
}

// Hit is a matching tile and its grid position.
type Hit[T any] struct {
	X, Y int
	Tile T
}

// New creates a width x height map, filling every cell with init(x, y).
// Sizes below one are raised to one.
func New[T any](width, height int, init func(x, y int) T) *TileMap[T] {
	width = max(width, 1)
	height = max(height, 1)

	tiles := make([][]T, height)
	for y := range tiles {
		row := make([]T, width)
		for x := range row {
			row[x] = init(x, y)
		}
		tiles[y] = row
	}

	return &TileMap[T]{Width: width, Height: height, Tiles: tiles}
}

func (m *TileMap[T]) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Get returns the tile at (x, y). ok is false outside the grid.
func (m *TileMap[T]) Get(x, y int) (tile T, ok bool) {
	if !m.InBounds(x, y) {
		return tile, false
	}
	return m.Tiles[y][x], true
}

// Set replaces the tile at (x, y). Writes outside the grid are ignored.
func (m *TileMap[T]) Set(x, y int, tile T) bool {
	if !m.InBounds(x, y) {
		return false
	}
	m.Tiles[y][x] = tile
	return true
}

// Bounds is the grid's extent in its own space.
func (m *TileMap[T]) Bounds() geom.Rect {
	return geom.Rect{Right: float64(m.Width), Bottom: float64(m.Height)}
}

// TileAt maps a point to the cell containing it.
func (m *TileMap[T]) TileAt(x, y float64) (int, int) {
	return int(math.Floor(x)), int(math.Floor(y))
}

// RectTileRange returns the inclusive cell range covered by r, with edges
// pulled inward by Epsilon.
func (m *TileMap[T]) RectTileRange(r geom.Rect) (minX, minY, maxX, maxY int) {
	minX, minY = m.TileAt(r.Left+Epsilon, r.Top+Epsilon)
	maxX, maxY = m.TileAt(r.Right-Epsilon, r.Bottom-Epsilon)
	return minX, minY, maxX, maxY
}

// IsTileInArea reports whether any cell in the inclusive range matches.
// Cells outside the grid never match.
func (m *TileMap[T]) IsTileInArea(minX, minY, maxX, maxY int, match func(T) bool) bool {
	minX, minY, maxX, maxY = m.clampRange(minX, minY, maxX, maxY)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if match(m.Tiles[y][x]) {
				return true
			}
		}
	}
	return false
}

// TilesInArea returns every matching cell in the inclusive range, row by row.
func (m *TileMap[T]) TilesInArea(minX, minY, maxX, maxY int, match func(T) bool) []Hit[T] {
	var hits []Hit[T]
	minX, minY, maxX, maxY = m.clampRange(minX, minY, maxX, maxY)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if t := m.Tiles[y][x]; match(t) {
				hits = append(hits, Hit[T]{X: x, Y: y, Tile: t})
			}
		}
	}
	return hits
}

func (m *TileMap[T]) clampRange(minX, minY, maxX, maxY int) (int, int, int, int) {
	return max(minX, 0), max(minY, 0), min(maxX, m.Width-1), min(maxY, m.Height-1)
}

// NearestTileRightFromRect scans the columns to the right of r, starting
// with the first column at or beyond its right edge, for at most maxDistance.
// It returns the left edge of the first column holding a match inside r's
// vertical span.
func (m *TileMap[T]) NearestTileRightFromRect(r geom.Rect, match func(T) bool, maxDistance float64) (float64, bool) {
	x, _, ok := m.nearestRight(r, match, maxDistance, false)
	return x, ok
}

// NearestTilesRightFromRect is NearestTileRightFromRect returning every match
// in the first matching column.
func (m *TileMap[T]) NearestTilesRightFromRect(r geom.Rect, match func(T) bool, maxDistance float64) (float64, []Hit[T], bool) {
	return m.nearestRight(r, match, maxDistance, true)
}

// NearestTileLeftFromRect returns the right edge of the nearest matching
// column to the left of r.
func (m *TileMap[T]) NearestTileLeftFromRect(r geom.Rect, match func(T) bool, maxDistance float64) (float64, bool) {
	x, _, ok := m.nearestLeft(r, match, maxDistance, false)
	return x, ok
}

func (m *TileMap[T]) NearestTilesLeftFromRect(r geom.Rect, match func(T) bool, maxDistance float64) (float64, []Hit[T], bool) {
	return m.nearestLeft(r, match, maxDistance, true)
}

// NearestTileDownFromRect returns the top edge of the nearest matching row
// below r.
func (m *TileMap[T]) NearestTileDownFromRect(r geom.Rect, match func(T) bool, maxDistance float64) (float64, bool) {
	y, _, ok := m.nearestDown(r, match, maxDistance, false)
	return y, ok
}

func (m *TileMap[T]) NearestTilesDownFromRect(r geom.Rect, match func(T) bool, maxDistance float64) (float64, []Hit[T], bool) {
	return m.nearestDown(r, match, maxDistance, true)
}

// NearestTileUpFromRect returns the bottom edge of the nearest matching row
// above r.
func (m *TileMap[T]) NearestTileUpFromRect(r geom.Rect, match func(T) bool, maxDistance float64) (float64, bool) {
	y, _, ok := m.nearestUp(r, match, maxDistance, false)
	return y, ok
}

func (m *TileMap[T]) NearestTilesUpFromRect(r geom.Rect, match func(T) bool, maxDistance float64) (float64, []Hit[T], bool) {
	return m.nearestUp(r, match, maxDistance, true)
}

func (m *TileMap[T]) nearestRight(r geom.Rect, match func(T) bool, maxDistance float64, all bool) (float64, []Hit[T], bool) {
	first := int(math.Floor(r.Right-Epsilon)) + 1
	last := int(math.Floor(r.Right + maxDistance))
	_, minY, _, maxY := m.RectTileRange(r)
	for x := max(first, 0); x <= min(last, m.Width-1); x++ {
		if hits, ok := m.scanColumn(x, minY, maxY, match, all); ok {
			return float64(x), hits, true
		}
	}
	return 0, nil, false
}

func (m *TileMap[T]) nearestLeft(r geom.Rect, match func(T) bool, maxDistance float64, all bool) (float64, []Hit[T], bool) {
	first := int(math.Floor(r.Left+Epsilon)) - 1
	last := int(math.Ceil(r.Left-maxDistance)) - 1
	_, minY, _, maxY := m.RectTileRange(r)
	for x := min(first, m.Width-1); x >= max(last, 0); x-- {
		if hits, ok := m.scanColumn(x, minY, maxY, match, all); ok {
			return float64(x + 1), hits, true
		}
	}
	return 0, nil, false
}

func (m *TileMap[T]) nearestDown(r geom.Rect, match func(T) bool, maxDistance float64, all bool) (float64, []Hit[T], bool) {
	first := int(math.Floor(r.Bottom-Epsilon)) + 1
	last := int(math.Floor(r.Bottom + maxDistance))
	minX, _, maxX, _ := m.RectTileRange(r)
	for y := max(first, 0); y <= min(last, m.Height-1); y++ {
		if hits, ok := m.scanRow(y, minX, maxX, match, all); ok {
			return float64(y), hits, true
		}
	}
	return 0, nil, false
}

func (m *TileMap[T]) nearestUp(r geom.Rect, match func(T) bool, maxDistance float64, all bool) (float64, []Hit[T], bool) {
	first := int(math.Floor(r.Top+Epsilon)) - 1
	last := int(math.Ceil(r.Top-maxDistance)) - 1
	minX, _, maxX, _ := m.RectTileRange(r)
	for y := min(first, m.Height-1); y >= max(last, 0); y-- {
		if hits, ok := m.scanRow(y, minX, maxX, match, all); ok {
			return float64(y + 1), hits, true
		}
	}
	return 0, nil, false
}

func (m *TileMap[T]) scanColumn(x, minY, maxY int, match func(T) bool, all bool) ([]Hit[T], bool) {
	var hits []Hit[T]
	for y := max(minY, 0); y <= min(maxY, m.Height-1); y++ {
		if t := m.Tiles[y][x]; match(t) {
			if !all {
				return nil, true
			}
			hits = append(hits, Hit[T]{X: x, Y: y, Tile: t})
		}
	}
	return hits, len(hits) > 0
}

func (m *TileMap[T]) scanRow(y, minX, maxX int, match func(T) bool, all bool) ([]Hit[T], bool) {
	var hits []Hit[T]
	for x := max(minX, 0); x <= min(maxX, m.Width-1); x++ {
		if t := m.Tiles[y][x]; match(t) {
			if !all {
				return nil, true
			}
			hits = append(hits, Hit[T]{X: x, Y: y, Tile: t})
		}
	}
	return hits, len(hits) > 0
}
