package platforming

import (
	"math"

	"github.com/automoto/platforming/shared/geom"
	"github.com/automoto/platforming/shared/tilemap"
)

// Axis selects which coordinate MoveAndCollide resolves.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// contactSlop absorbs rounding when comparing a resting edge against the
// boundary it rests on.
const contactSlop = tilemap.Epsilon

type contact struct {
	collider Collider
	obj      *Object
	grid     *tilemap.TileMap[Tile]
}

// MoveAndCollide advances mover along one axis by its velocity times dt and
// clips the move at the first obstruction among colliders.
//
// Tile grids are swept column by column so a single call can walk across
// several slope tiles; slope faces taller than MaxStepUp stop the mover like
// walls. Other bodies act as plain walls on the side they were on at the
// start of the frame. Every grid is swept in its own frame of reference, so
// grids that already moved this frame carry or push the mover.
//
// On the y axis the mover's ground contact is recomputed from scratch and
// TouchGround/TouchCeiling fire on contact.
func MoveAndCollide[C Collider](mover Body, dt float64, axis Axis, colliders []C) {
	o := mover.PhysicsObject()
	if Debug {
		r := CollisionRect(mover)
		assertf(!r.IsEmpty(), "degenerate collision rect %+v", r)
	}

	contacts := gatherContacts(mover, colliders)
	if axis == AxisX {
		moveX(mover, o, dt, contacts)
		return
	}
	moveY(mover, o, dt, contacts)
}

func gatherContacts[C Collider](mover Body, colliders []C) []contact {
	o := mover.PhysicsObject()
	_, moverIsGrid := mover.(TileCollider)

	contacts := make([]contact, 0, len(colliders))
	for _, c := range colliders {
		collider := Collider(c)
		co := collider.PhysicsObject()
		if co == o {
			continue
		}
		tc, isGrid := collider.(TileCollider)
		if moverIsGrid && (!isGrid || !tc.AffectsMovingTileMaps()) {
			continue
		}
		ct := contact{collider: collider, obj: co}
		if isGrid {
			ct.grid = tc.TileGrid()
		}
		contacts = append(contacts, ct)
	}
	return contacts
}

func moveX(mover Body, o *Object, dt float64, contacts []contact) {
	startX := o.X
	carry := groundCarryX(o)
	delta := o.Dx*dt + carry

	rect := mover.PositionedCollisionRect(o.X, o.Y)
	last := mover.PositionedCollisionRect(o.LastX, o.LastY)
	slack := math.Abs(delta) + MaxStepUp

	upper, lower := math.Inf(1), math.Inf(-1)
	var grids []contact

	for _, c := range contacts {
		co := c.obj
		if c.grid != nil {
			bounds := c.collider.PositionedCollisionRect(co.X, co.LastY)
			if bounds.Top >= rect.Bottom || bounds.Bottom <= rect.Top-slack {
				continue
			}
			grids = append(grids, c)

			gd := co.X - co.LastX
			rel := delta - gd
			if rel == 0 {
				continue
			}
			moved, blocked := sweepGridX(c.grid, rect.Translate(-co.LastX, -co.LastY), rel)
			if !blocked {
				continue
			}
			if rel > 0 {
				upper = math.Min(upper, moved+gd)
			} else {
				lower = math.Max(lower, moved+gd)
			}
			continue
		}

		cr := c.collider.PositionedCollisionRect(co.X, co.LastY)
		if !cr.OverlapsY(rect) {
			continue
		}
		cl := c.collider.PositionedCollisionRect(co.LastX, co.LastY)
		switch {
		case last.Right <= cl.Left+contactSlop:
			upper = math.Min(upper, cr.Left-tilemap.Epsilon-rect.Right)
		case last.Left >= cl.Right-contactSlop:
			lower = math.Max(lower, cr.Right+tilemap.Epsilon-rect.Left)
		}
	}

	advance := math.Max(math.Min(delta, upper), lower)
	o.X += advance
	clipped := advance != delta

	if _, moverIsGrid := mover.(TileCollider); !moverIsGrid {
		liftOntoFloors(mover, o, grids, delta)
	}

	if dt <= 0 {
		return
	}
	switch {
	case o.PreserveInertiaFromCollisions:
		if clipped || carry != 0 {
			o.Dx = (o.X - startX) / dt
		}
	case clipped && (o.Dx > 0 && advance < delta || o.Dx < 0 && advance > delta):
		o.Dx = 0
	}
}

// sweepGridX moves r horizontally by delta inside grid space and returns the
// distance actually covered. blocked is true when a wall or an effective
// wall stopped the move.
func sweepGridX(m *tilemap.TileMap[Tile], r geom.Rect, delta float64) (float64, bool) {
	dir := math.Copysign(1, delta)
	remaining := math.Abs(delta)

	if !slopesAlongSweep(m, r, dir, remaining) {
		if dir > 0 {
			if edge, ok := m.NearestTileRightFromRect(r, isWallUp, remaining); ok {
				if allowed := edge - tilemap.Epsilon - r.Right; allowed < remaining {
					return allowed, true
				}
			}
		} else if edge, ok := m.NearestTileLeftFromRect(r, isWallUp, remaining); ok {
			if allowed := r.Left - edge - tilemap.Epsilon; allowed < remaining {
				return -allowed, true
			}
		}
		return delta, false
	}

	// Walk one column boundary at a time so every slope entry is judged at
	// the height the previous column leaves the mover at.
	moved := 0.0
	for i, n := 0, int(remaining)+4; remaining > 0 && i < n; i++ {
		col, dist := nextColumn(r, dir)
		switch {
		case dir > 0 && col >= m.Width, dir < 0 && col < 0:
			return delta, false
		case dir > 0 && col < 0, dir < 0 && col >= m.Width:
			// Still outside the grid: jump to its edge.
			step := math.Min(dist+float64(gridEdgeColumns(m, col, dir)), remaining)
			r = r.Translate(dir*step, 0)
			moved += dir * step
			remaining -= step
			continue
		}

		probe, lift := climb(m, r.Translate(dir*dist, 0), math.Abs(dist)+MaxStepUp+tilemap.Epsilon, MaxStepUp+tilemap.Epsilon)
		if columnBlocks(m, col, probe, dir) && dist-tilemap.Epsilon <= remaining {
			return moved + dir*(dist-tilemap.Epsilon), true
		}

		step := math.Min(dist+1, remaining)
		r, _ = climb(m, r.Translate(dir*step, -lift), step+MaxStepUp+tilemap.Epsilon, MaxStepUp+tilemap.Epsilon)
		moved += dir * step
		remaining -= step
	}
	if remaining > 0 {
		return moved, true
	}
	return delta, false
}

// slopesAlongSweep reports whether any slope tile lies in the band the
// sweep can reach, including rows a climb could lift the mover into.
func slopesAlongSweep(m *tilemap.TileMap[Tile], r geom.Rect, dir, distance float64) bool {
	minX, _, maxX, maxY := m.RectTileRange(r)
	minY := int(math.Floor(r.Top + tilemap.Epsilon - distance - MaxStepUp))
	if dir > 0 {
		maxX = int(math.Floor(r.Right + distance))
	} else {
		minX = int(math.Floor(r.Left - distance))
	}
	return m.IsTileInArea(minX, minY, maxX, maxY, isFloorSlope)
}

// nextColumn returns the next column r enters moving in direction dir and
// the distance to its near edge.
func nextColumn(r geom.Rect, dir float64) (int, float64) {
	if dir > 0 {
		col := int(math.Floor(r.Right-tilemap.Epsilon)) + 1
		return col, float64(col) - r.Right
	}
	col := int(math.Floor(r.Left+tilemap.Epsilon)) - 1
	return col, r.Left - float64(col+1)
}

// gridEdgeColumns is the number of empty columns between col and the grid
// when col lies outside it on the near side.
func gridEdgeColumns(m *tilemap.TileMap[Tile], col int, dir float64) int {
	if dir > 0 {
		return -col
	}
	return col - m.Width + 1
}

// columnBlocks reports whether column col stops r: a full wall anywhere in
// r's rows, or a slope whose entry edge rises more than MaxStepUp above r's
// bottom.
func columnBlocks(m *tilemap.TileMap[Tile], col int, r geom.Rect, dir float64) bool {
	_, minY, _, maxY := m.RectTileRange(r)
	for y := max(minY, 0); y <= min(maxY, m.Height-1); y++ {
		t := m.Tiles[y][col]
		if t.IsWallUp() {
			return true
		}
		if s, ok := t.(SlopedFloorTile); ok && r.Bottom-s.entrySurface(dir) > MaxStepUp {
			return true
		}
	}
	return false
}

// floorSurfaceAbove finds the highest floor cutting into r's bottom: a slope
// surface by no more than allowance, or the top of a full wall by no more
// than wallAllowance. One-way platforms are never climbed sideways.
func floorSurfaceAbove(m *tilemap.TileMap[Tile], r geom.Rect, allowance, wallAllowance float64) (float64, bool) {
	minX, minY, maxX, maxY := m.RectTileRange(r)
	best, found := math.Inf(1), false
	consider := func(y, limit float64) {
		if y < r.Bottom && r.Bottom-y <= limit && y < best {
			best, found = y, true
		}
	}
	for _, h := range m.TilesInArea(minX, minY, maxX, maxY, isFloorOrWallUp) {
		if s, ok := h.Tile.(SlopedFloorTile); ok {
			consider(s.surfaceUnder(r.Left, r.Right), allowance)
			continue
		}
		consider(float64(h.Y), wallAllowance)
	}
	return best, found
}

// climb raises r onto the floors it cuts into, one surface at a time so a
// lift into a new row is judged against that row's tiles too. It returns the
// raised rect and the total lift.
func climb(m *tilemap.TileMap[Tile], r geom.Rect, allowance, wallAllowance float64) (geom.Rect, float64) {
	lifted := 0.0
	for i := 0; i <= m.Height; i++ {
		surface, ok := floorSurfaceAbove(m, r, allowance-lifted, wallAllowance-lifted)
		if !ok {
			break
		}
		lift := r.Bottom - (surface - tilemap.Epsilon)
		r = r.Translate(0, -lift)
		lifted += lift
	}
	return r, lifted
}

// liftOntoFloors raises the mover onto any slope or wall top its horizontal
// move pushed it into. Walls only end up inside the mover when a slope sweep
// carried it over their top edge.
func liftOntoFloors(mover Body, o *Object, grids []contact, delta float64) {
	rect := mover.PositionedCollisionRect(o.X, o.Y)
	best := 0.0
	for _, c := range grids {
		co := c.obj
		allowance := math.Abs(delta-(co.X-co.LastX)) + MaxStepUp + tilemap.Epsilon
		if _, lift := climb(c.grid, rect.Translate(-co.X, -co.Y), allowance, allowance); lift > best {
			best = lift
		}
	}
	o.Y -= best
}

func moveY(mover Body, o *Object, dt float64, contacts []contact) {
	startY := o.Y
	delta := o.Dy * dt
	rect := mover.PositionedCollisionRect(o.X, o.Y)
	last := mover.PositionedCollisionRect(o.LastX, o.LastY)

	o.OnGround, o.GroundPlatform = false, nil

	var ground *Object
	stick := 0.0
	if o.LastOnGround && o.LastGroundPlatform != nil && delta >= 0 {
		ground = o.LastGroundPlatform.PhysicsObject()
		stick = stickDistance(o, ground)
	}

	floorAdvance, ceilAdvance := math.Inf(1), math.Inf(-1)
	var floor, ceiling Collider

	for _, c := range contacts {
		co := c.obj
		platformStick := 0.0
		if co == ground {
			platformStick = stick
		}

		if c.grid != nil {
			if !c.collider.PositionedCollisionRect(co.X, co.Y).OverlapsX(rect) {
				continue
			}
			rel := delta - (co.Y - co.LastY)
			local := rect.Translate(-co.X, -co.LastY)
			if rel >= 0 || platformStick > 0 {
				reach := math.Max(rel, 0) + platformStick + 2*tilemap.Epsilon
				if fy, ok := floorBelow(c.grid, local, reach); ok {
					adv := fy + co.Y - tilemap.Epsilon - rect.Bottom
					if adv <= delta+platformStick+contactSlop && adv < floorAdvance {
						floorAdvance, floor = adv, c.collider
					}
				}
			}
			if rel < 0 {
				if cy, ok := c.grid.NearestTileUpFromRect(local, isWallUp, -rel+tilemap.Epsilon); ok {
					adv := cy + co.Y + tilemap.Epsilon - rect.Top
					if adv >= delta-contactSlop && adv > ceilAdvance {
						ceilAdvance, ceiling = adv, c.collider
					}
				}
			}
			continue
		}

		cr := c.collider.PositionedCollisionRect(co.X, co.Y)
		if !cr.OverlapsX(rect) {
			continue
		}
		cl := c.collider.PositionedCollisionRect(co.LastX, co.LastY)
		switch {
		case last.Bottom <= cl.Top+contactSlop:
			adv := cr.Top - tilemap.Epsilon - rect.Bottom
			if adv <= delta+platformStick+contactSlop && adv < floorAdvance {
				floorAdvance, floor = adv, c.collider
			}
		case last.Top >= cl.Bottom-contactSlop && !restsOn(co, o):
			adv := cr.Bottom + tilemap.Epsilon - rect.Top
			if adv >= delta-contactSlop && adv > ceilAdvance {
				ceilAdvance, ceiling = adv, c.collider
			}
		}
	}

	switch {
	case floor != nil:
		o.Y += floorAdvance
		o.OnGround, o.GroundPlatform = true, floor
		if !mover.TouchGround(floor) {
			settleDy(o, startY, dt)
		}
	case ceiling != nil:
		o.Y += ceilAdvance
		if !mover.TouchCeiling(ceiling) {
			settleDy(o, startY, dt)
		}
	default:
		o.Y += delta
	}
}

// floorBelow returns the grid-space y of the nearest wall top or slope
// surface under r within reach.
func floorBelow(m *tilemap.TileMap[Tile], r geom.Rect, reach float64) (float64, bool) {
	best, found := math.Inf(1), false
	if y, ok := m.NearestTileDownFromRect(r, isWall, reach); ok {
		best, found = y, true
	}
	if y, ok := slopeFloorBelow(m, r, reach); ok && y < best {
		best, found = y, true
	}
	return best, found
}

// slopeFloorBelow looks for slope surfaces at or below r's bottom, first in
// the row the bottom edge is in and then in the nearest row below holding
// slopes.
func slopeFloorBelow(m *tilemap.TileMap[Tile], r geom.Rect, reach float64) (float64, bool) {
	best, found := math.Inf(1), false
	consider := func(hits []tilemap.Hit[Tile]) {
		for _, h := range hits {
			s, ok := h.Tile.(SlopedFloorTile)
			if !ok {
				continue
			}
			y := s.surfaceUnder(r.Left, r.Right)
			if y >= r.Bottom-tilemap.Epsilon && y <= r.Bottom+reach && y < best {
				best, found = y, true
			}
		}
	}

	minX, _, maxX, _ := m.RectTileRange(r)
	row := int(math.Floor(r.Bottom - tilemap.Epsilon))
	consider(m.TilesInArea(minX, row, maxX, row, isFloorSlope))
	if !found {
		if _, hits, ok := m.NearestTilesDownFromRect(r, isFloorSlope, reach); ok {
			consider(hits)
		}
	}
	return best, found
}

// stickDistance is how far an object grounded on ground last frame may be
// pulled down to stay on it: its own tolerance, plus its horizontal travel
// relative to the platform (descending slopes up to 45 degrees), plus the
// platform's own drop this frame.
func stickDistance(o, ground *Object) float64 {
	relX := math.Abs((o.X - o.LastX) - (ground.X - ground.LastX))
	return o.MaxStickToGroundDistance + relX + math.Max(0, ground.Y-ground.LastY)
}

// groundCarryX is the horizontal displacement inherited from last frame's
// ground. World-space objects already move with the platform's previous
// velocity and only take up its change; platform-relative objects take the
// whole displacement.
func groundCarryX(o *Object) float64 {
	if !o.LastOnGround || o.LastGroundPlatform == nil {
		return 0
	}
	p := o.LastGroundPlatform.PhysicsObject()
	moved := p.X - p.LastX
	if o.PreserveInertiaFromCollisions {
		return moved - p.FrameDeltaX
	}
	return moved
}

// restsOn reports whether a stood on b at the end of last frame.
func restsOn(a, b *Object) bool {
	return a.LastOnGround && a.LastGroundPlatform != nil && a.LastGroundPlatform.PhysicsObject() == b
}

func settleDy(o *Object, startY, dt float64) {
	switch {
	case dt <= 0:
	case o.PreserveInertiaFromCollisions:
		o.Dy = (o.Y - startY) / dt
	default:
		o.Dy = 0
	}
}
