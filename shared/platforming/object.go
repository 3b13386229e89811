package platforming

import (
	"fmt"

	"github.com/automoto/platforming/shared/geom"
	"github.com/automoto/platforming/shared/tilemap"
)

// MaxStepUp is the largest floor discontinuity an object walks up without
// jumping. Slope faces taller than this act as walls.
const MaxStepUp = 0.1

// DefaultMaxStickToGroundDistance is the downward step an object follows
// while walking without leaving the ground.
const DefaultMaxStickToGroundDistance = MaxStepUp

// Debug enables precondition checks (degenerate rects, slope heights) that
// panic when violated.
var Debug = false

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("platforming: "+format, args...))
	}
}

// Collider is the surface the resolver queries on anything that can be
// collided with.
type Collider interface {
	PhysicsObject() *Object
	// PositionedCollisionRect returns the collision rect the collider would
	// have with its anchor at (x, y). It must be a pure function of (x, y).
	PositionedCollisionRect(x, y float64) geom.Rect
}

// Body is a collider the level moves every frame.
type Body interface {
	Collider
	// DecideDx sets the horizontal velocity for this frame.
	DecideDx(dt float64)
	// DecideDy sets the vertical velocity for this frame.
	DecideDy(dt float64)
	// TouchGround is called when the body lands on ground. Returning true
	// keeps the velocity the callback set instead of the resolver's.
	TouchGround(ground Collider) bool
	// TouchCeiling is TouchGround for ceilings.
	TouchCeiling(ceiling Collider) bool
}

// TileCollider is a collider made of tiles.
type TileCollider interface {
	Collider
	TileGrid() *tilemap.TileMap[Tile]
	AffectsMovingTileMaps() bool
}

// Object is the kinematic state shared by every body. Embed it (or
// *TileMapObject) and override the Body methods to customise behaviour.
type Object struct {
	// X, Y is the anchor point, which need not be the rect's corner.
	X, Y         float64
	LastX, LastY float64
	// Dx, Dy are velocities in units per second.
	Dx, Dy float64

	OnGround bool
	// GroundPlatform is the collider touched as ground this frame. It is a
	// lookup-only reference; the level clears it when that collider is removed.
	GroundPlatform     Collider
	LastOnGround       bool
	LastGroundPlatform Collider
	// AirTime is the time in seconds since the last ground contact.
	AirTime float64

	// FrameDeltaX/Y is this frame's actual displacement and
	// FrameDeltaDeltaX/Y its change from the previous frame.
	FrameDeltaX, FrameDeltaY           float64
	FrameDeltaDeltaX, FrameDeltaDeltaY float64

	CollisionGroup string
	// ResolvePriority orders resolution; higher values resolve first.
	ResolvePriority          int
	MaxStickToGroundDistance float64
	// PreserveInertiaFromCollisions makes velocities world-space: contact and
	// platform carry overwrite Dx/Dy with the displacement they caused.
	PreserveInertiaFromCollisions bool

	// Box is the collision rect relative to the anchor.
	Box geom.Rect
}

// NewObject returns an object anchored at (x, y) with the collision rect
// box relative to the anchor.
func NewObject(x, y float64, box geom.Rect) *Object {
	o := &Object{}
	o.init(x, y, box)
	return o
}

func (o *Object) init(x, y float64, box geom.Rect) {
	o.X, o.Y = x, y
	o.LastX, o.LastY = x, y
	o.Box = box
	o.CollisionGroup = GroupAll
	o.MaxStickToGroundDistance = DefaultMaxStickToGroundDistance
	o.PreserveInertiaFromCollisions = true
}

func (o *Object) PhysicsObject() *Object { return o }

func (o *Object) PositionedCollisionRect(x, y float64) geom.Rect {
	return o.Box.Translate(x, y)
}

func (o *Object) DecideDx(float64) {}
func (o *Object) DecideDy(float64) {}

func (o *Object) TouchGround(Collider) bool  { return false }
func (o *Object) TouchCeiling(Collider) bool { return false }

// SetPosition teleports the object, resetting last-frame state so nothing
// infers motion from the jump.
func (o *Object) SetPosition(x, y float64) {
	o.X, o.Y = x, y
	o.LastX, o.LastY = x, y
	o.FrameDeltaX, o.FrameDeltaY = 0, 0
	o.FrameDeltaDeltaX, o.FrameDeltaDeltaY = 0, 0
	o.OnGround, o.GroundPlatform = false, nil
	o.LastOnGround, o.LastGroundPlatform = false, nil
}

// CollisionRect is the collider's rect at its current position.
func CollisionRect(c Collider) geom.Rect {
	o := c.PhysicsObject()
	return c.PositionedCollisionRect(o.X, o.Y)
}

// LastCollisionRect is the collider's rect at the start of the frame.
func LastCollisionRect(c Collider) geom.Rect {
	o := c.PhysicsObject()
	return c.PositionedCollisionRect(o.LastX, o.LastY)
}

// TileMapObject is a tile grid placed in the world with its top-left corner
// at (X, Y). It is itself a body, so grids can move as platforms.
type TileMapObject struct {
	Object
	Map *tilemap.TileMap[Tile]
	// TilesAffectMovingTileMaps makes this grid a collider for other moving
	// grids. Grids without it are moved without collision resolution.
	TilesAffectMovingTileMaps bool
}

// TileMapPriority is the default resolve priority of tile grids, so moving
// platforms settle before their passengers.
const TileMapPriority = 1

func NewTileMapObject(x, y float64, m *tilemap.TileMap[Tile]) *TileMapObject {
	t := &TileMapObject{Map: m}
	t.init(x, y, m.Bounds())
	t.ResolvePriority = TileMapPriority
	t.MaxStickToGroundDistance = 0
	return t
}

func (t *TileMapObject) PositionedCollisionRect(x, y float64) geom.Rect {
	return t.Map.Bounds().Translate(x, y)
}

func (t *TileMapObject) TileGrid() *tilemap.TileMap[Tile] { return t.Map }
func (t *TileMapObject) AffectsMovingTileMaps() bool      { return t.TilesAffectMovingTileMaps }

// TileAtWorld returns the tile under a world-space point.
func (t *TileMapObject) TileAtWorld(x, y float64) (Tile, bool) {
	return t.Map.Get(t.Map.TileAt(x-t.X, y-t.Y))
}
