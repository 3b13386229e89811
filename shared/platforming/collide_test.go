package platforming

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/platforming/shared/geom"
	"github.com/automoto/platforming/shared/tilemap"
)

const (
	frame   = 1.0 / 60
	eps     = tilemap.Epsilon
	gravity = 20.0
)

// box is a test body anchored at its top-left corner that walks at a fixed
// speed and falls under gravity.
type box struct {
	Object
	gravity  float64
	walk     float64
	landings int
	ceilings int
	onLand   func(ground Collider) bool
}

func newBox(x, y, w, h float64) *box {
	b := &box{gravity: gravity}
	b.init(x, y, geom.Rect{Right: w, Bottom: h})
	return b
}

func (b *box) DecideDx(float64) {
	if b.walk != 0 {
		b.Dx = b.walk
	}
}

func (b *box) DecideDy(dt float64) {
	b.Dy += b.gravity * dt
}

func (b *box) TouchGround(ground Collider) bool {
	b.landings++
	if b.onLand != nil {
		return b.onLand(ground)
	}
	return false
}

func (b *box) TouchCeiling(Collider) bool {
	b.ceilings++
	return false
}

func createTestLevel(rows []string, bodies ...Body) (*Level, *TileMapObject) {
	terrain := NewTileMapObject(0, 0, ParseTiles(rows, false))
	l := NewLevel()
	l.PushObject(terrain)
	for _, b := range bodies {
		l.PushObject(b)
	}
	return l, terrain
}

func step(l *Level, frames int) {
	for iter := 0; iter < frames; iter++ {
		l.Update(frame)
	}
}

func bottom(c Collider) float64 { return CollisionRect(c).Bottom }

func TestRestOnFlatGround(t *testing.T) {
	b := newBox(1, 0.5, 1, 1)
	l, terrain := createTestLevel([]string{
		"    ",
		"    ",
		"xxxx",
	}, b)

	step(l, 60)
	require.True(t, b.OnGround)
	assert.InDelta(t, 2-eps, bottom(b), 1e-9)
	assert.Same(t, terrain, b.GroundPlatform.(*TileMapObject))

	restY := b.Y
	for iter := 0; iter < 120; iter++ {
		l.Update(frame)
		require.True(t, b.OnGround)
		require.InDelta(t, restY, b.Y, 1e-9, "object jittered while resting")
	}
	assert.Zero(t, b.AirTime)
}

func TestObjectLandsOnWallRow(t *testing.T) {
	b := newBox(0, 0, 1, 1)
	l, _ := createTestLevel([]string{
		"  ",
		"xx",
	}, b)

	l.Update(frame)

	assert.True(t, b.OnGround)
	assert.InDelta(t, 1-eps, bottom(b), 1e-9)
	assert.Equal(t, 1, b.landings)
}

func TestWallStopsHorizontalMove(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
	}{
		{"slow", 60},
		{"one frame reaches the wall", 300},
		{"far past the wall", 6000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBox(0, 0, 1, 1)
			b.gravity = 0
			b.walk = tt.speed
			l, _ := createTestLevel([]string{"     x     "}, b)

			step(l, 10)
			assert.InDelta(t, 5-eps, CollisionRect(b).Right, 1e-9)
		})
	}
}

func TestWallStopsLeftwardMove(t *testing.T) {
	b := newBox(4, 0, 1, 1)
	b.gravity = 0
	b.walk = -6000
	l, _ := createTestLevel([]string{"x     "}, b)

	l.Update(frame)
	assert.InDelta(t, 1+eps, CollisionRect(b).Left, 1e-9)
}

func TestClippedVelocity(t *testing.T) {
	b := newBox(0, 0, 1, 1)
	b.gravity = 0
	b.Dx = 600
	l, _ := createTestLevel([]string{"   x"}, b)

	l.Update(frame)
	assert.InDelta(t, (2-eps)/frame, b.Dx, 1e-6)

	c := newBox(0, 0, 1, 1)
	c.gravity = 0
	c.Dx = 600
	c.PreserveInertiaFromCollisions = false
	l, _ = createTestLevel([]string{"   x"}, c)

	l.Update(frame)
	assert.Zero(t, c.Dx)
	assert.InDelta(t, 3-eps, CollisionRect(c).Right, 1e-9)
}

func TestRampTracksFloorHeight(t *testing.T) {
	b := newBox(1, 1-eps, 0.5, 1)
	b.walk = 3
	l, terrain := createTestLevel([]string{
		"        ",
		"   /xxxx",
		"xxxxxxxx",
	}, b)
	slope := terrain.Map.Tiles[1][3]

	for iter := 0; iter < 70; iter++ {
		lastBottom := bottom(b)
		l.Update(frame)
		r := CollisionRect(b)

		require.True(t, b.OnGround, "left the ramp at x=%v", b.X)
		require.LessOrEqual(t, math.Abs(r.Bottom-lastBottom), MaxStepUp+1e-9)
		if r.Right > 3.05 && r.Right < 3.95 {
			want := 2 - slope.FloorRelativeHeight(r.Right-3) - eps
			require.InDelta(t, want, r.Bottom, 1e-6, "off the ramp surface at x=%v", b.X)
		}
	}
	assert.Greater(t, b.X, 4.0)
	assert.InDelta(t, 1-eps, bottom(b), 1e-9)
}

func TestDescendingSlopeKeepsGround(t *testing.T) {
	b := newBox(2, 0.5-eps, 0.5, 0.5)
	b.walk = 3
	l, terrain := createTestLevel([]string{
		"        ",
		"xxxx.   ",
		"xxxxxxxx",
	}, b)
	slope := terrain.Map.Tiles[1][4]

	l.Update(frame)
	for iter := 0; iter < 60; iter++ {
		l.Update(frame)
		r := CollisionRect(b)
		require.True(t, b.OnGround, "lost the ground at x=%v", b.X)
		if r.Left > 4.05 && r.Left < 4.95 {
			want := 2 - slope.FloorRelativeHeight(r.Left-4) - eps
			require.InDelta(t, want, r.Bottom, 1e-6)
		}
	}
	assert.InDelta(t, 2-eps, bottom(b), 1e-9)
}

func TestSteepSlopeEdgeIsWall(t *testing.T) {
	b := newBox(0, 0-eps, 1, 1)
	b.walk = 3
	l, _ := createTestLevel([]string{
		"  R ",
		"xxxx",
	}, b)

	step(l, 40)
	assert.InDelta(t, 2-eps, CollisionRect(b).Right, 1e-9)
	assert.True(t, b.OnGround)
}

func TestShallowSlopeEdgeIsWalkable(t *testing.T) {
	b := newBox(0, 0-eps, 1, 1)
	b.walk = 3
	l, _ := createTestLevel([]string{
		"  rR ",
		"xxxxx",
	}, b)

	step(l, 60)
	assert.Greater(t, CollisionRect(b).Left, 2.5)
	assert.Less(t, bottom(b), 1-0.4)
}

func TestOneWayPlatform(t *testing.T) {
	rows := []string{
		"    ",
		"^^^^",
		"    ",
		"xxxx",
	}

	t.Run("falling object lands", func(t *testing.T) {
		b := newBox(1, -0.5, 1, 1)
		l, _ := createTestLevel(rows, b)

		step(l, 30)
		assert.True(t, b.OnGround)
		assert.InDelta(t, 1-eps, bottom(b), 1e-9)
	})

	t.Run("rising object passes", func(t *testing.T) {
		b := newBox(1, 2-eps, 1, 1)
		b.gravity = 0
		b.Dy = -30
		l, _ := createTestLevel(rows, b)

		step(l, 4)
		assert.InDelta(t, -eps, b.Y, 1e-9)
		assert.Zero(t, b.ceilings)
	})

	t.Run("sideways move passes", func(t *testing.T) {
		b := newBox(0, 0, 1, 1)
		b.gravity = 0
		b.walk = 60
		l, _ := createTestLevel([]string{"  ^^  "}, b)

		step(l, 3)
		assert.InDelta(t, 3.0, b.X, 1e-9)
	})
}

func TestCeilingStopsJump(t *testing.T) {
	b := newBox(0, 2-eps, 1, 1)
	b.gravity = 0
	b.Dy = -60
	l, _ := createTestLevel([]string{
		"xx",
		"  ",
		"  ",
		"xx",
	}, b)

	l.Update(frame)
	assert.InDelta(t, 1+eps, b.Y, 1e-9)
	assert.Equal(t, 1, b.ceilings)
	assert.False(t, b.OnGround)

	step(l, 3)
	assert.InDelta(t, 1+eps, b.Y, 1e-9)
}

func TestTouchGroundOverride(t *testing.T) {
	b := newBox(0, 0.5, 1, 0.5)
	b.onLand = func(Collider) bool {
		b.Dy = -5
		return true
	}
	l, _ := createTestLevel([]string{
		"  ",
		"xx",
	}, b)

	l.Update(frame)
	require.Equal(t, 1, b.landings)
	assert.Equal(t, -5.0, b.Dy)
}

func TestBodiesDoNotInterpenetrate(t *testing.T) {
	rows := []string{
		"        ",
		"xxxxxxxx",
	}

	t.Run("later object walks into earlier", func(t *testing.T) {
		a := newBox(1, -eps, 1, 1)
		b := newBox(5, -eps, 1, 1)
		b.walk = -60
		l, _ := createTestLevel(rows, a, b)

		step(l, 10)
		assert.Zero(t, CollisionRect(a).IntersectionArea(CollisionRect(b)))
		assert.InDelta(t, 2+eps, CollisionRect(b).Left, 1e-9)
		assert.InDelta(t, 1.0, a.X, 1e-9)
	})

	t.Run("earlier object walks into later", func(t *testing.T) {
		a := newBox(1, -eps, 1, 1)
		b := newBox(5, -eps, 1, 1)
		a.walk = 60
		l, _ := createTestLevel(rows, a, b)

		step(l, 10)
		assert.Zero(t, CollisionRect(a).IntersectionArea(CollisionRect(b)))
		assert.InDelta(t, 5-eps, CollisionRect(a).Right, 1e-9)
	})

	t.Run("object lands on another", func(t *testing.T) {
		a := newBox(1, -eps, 1, 1)
		b := newBox(1.25, -3, 1, 1)
		l, _ := createTestLevel(rows, a, b)

		step(l, 60)
		assert.Zero(t, CollisionRect(a).IntersectionArea(CollisionRect(b)))
		require.True(t, b.OnGround)
		assert.Same(t, a, b.GroundPlatform.(*box))
		assert.InDelta(t, CollisionRect(a).Top-eps, bottom(b), 1e-9)
	})
}

func TestMoveAndCollideDirect(t *testing.T) {
	terrain := NewTileMapObject(0, 0, ParseTiles([]string{"   x"}, false))
	b := newBox(0, 0, 1, 1)
	b.Dx = 120

	MoveAndCollide(b, 1, AxisX, []*TileMapObject{terrain})
	assert.InDelta(t, 3-eps, CollisionRect(b).Right, 1e-9)

	// The mover itself in the collider list is skipped.
	other := newBox(0, 0, 1, 1)
	other.Dx = 1
	MoveAndCollide(other, 1, AxisX, []Body{other})
	assert.InDelta(t, 1.0, other.X, 1e-12)
}

func TestMovingGridsCollideOnlyWhenFlagged(t *testing.T) {
	wall := NewTileMapObject(3, 0, ParseTiles([]string{"x"}, false))
	wall.TilesAffectMovingTileMaps = true

	mover := NewTileMapObject(0, 0, ParseTiles([]string{"x"}, false))
	mover.TilesAffectMovingTileMaps = true
	mover.Dx = 300

	l := NewLevel()
	l.PushObject(wall)
	l.PushObject(mover)
	l.Update(frame)
	assert.InDelta(t, 2-eps, mover.X, 1e-9)

	ghost := NewTileMapObject(0, 0, ParseTiles([]string{"x"}, false))
	ghost.Dx = 300
	l.PushObject(ghost)
	l.Update(frame)
	assert.InDelta(t, 5.0, ghost.X, 1e-9)
}

func TestMovingPlatformTransfersInertia(t *testing.T) {
	platform := NewTileMapObject(0, 2, ParseTiles([]string{"xxxx"}, false))
	rider := newBox(1, 1-eps, 1, 1)
	l := NewLevel()
	l.PushObject(rider)
	l.PushObject(platform)

	l.Update(frame)
	require.True(t, rider.OnGround)
	require.Same(t, platform, rider.GroundPlatform.(*TileMapObject))

	platform.Dx = 60
	l.Update(frame)
	assert.InDelta(t, 60.0, rider.Dx, 1e-6)
	assert.InDelta(t, 2.0, rider.X, 1e-9)
	assert.True(t, rider.OnGround)

	l.Update(frame)
	assert.InDelta(t, 3.0, rider.X, 1e-9)
	assert.InDelta(t, 1.0, rider.FrameDeltaX, 1e-9)
	assert.InDelta(t, 0.0, rider.FrameDeltaDeltaX, 1e-9)
}

func TestMovingPlatformCarriesRelativeVelocity(t *testing.T) {
	platform := NewTileMapObject(0, 2, ParseTiles([]string{"xxxx"}, false))
	rider := newBox(1, 1-eps, 1, 1)
	rider.PreserveInertiaFromCollisions = false
	l := NewLevel()
	l.PushObject(platform)
	l.PushObject(rider)

	l.Update(frame)
	platform.Dx = 60
	step(l, 2)

	assert.InDelta(t, 3.0, rider.X, 1e-9)
	assert.Zero(t, rider.Dx)
	assert.True(t, rider.OnGround)
}

func TestElevatorKeepsRider(t *testing.T) {
	for _, speed := range []float64{-30, 30} {
		platform := NewTileMapObject(0, 4, ParseTiles([]string{"xxxx"}, false))
		rider := newBox(1, 3-eps, 1, 1)
		l := NewLevel()
		l.PushObject(platform)
		l.PushObject(rider)

		l.Update(frame)
		platform.Dy = speed
		for iter := 0; iter < 5; iter++ {
			l.Update(frame)
			require.True(t, rider.OnGround, "speed %v", speed)
			require.InDelta(t, platform.Y-eps, bottom(rider), 1e-9, "speed %v", speed)
		}
	}
}

func TestCollisionGroups(t *testing.T) {
	rows := []string{
		"    ",
		"xxxx",
	}

	ghost := newBox(1, -0.5, 1, 1)
	ghost.CollisionGroup = GroupNone
	l, _ := createTestLevel(rows, ghost)
	step(l, 30)
	assert.False(t, ghost.OnGround)
	assert.Greater(t, bottom(ghost), 2.0)

	terrain := NewTileMapObject(0, 0, ParseTiles(rows, false))
	member := newBox(1, -0.5, 1, 1)
	member.CollisionGroup = "solid"
	outsider := newBox(1, -3, 1, 1)
	outsider.CollisionGroup = "solid"
	l = NewLevel()
	l.PushObject(terrain, "solid")
	l.PushObject(member, "solid")
	l.PushObject(outsider)
	step(l, 60)

	assert.True(t, member.OnGround)
	assert.True(t, outsider.OnGround)
	// outsider is not in the group, so member ignores it, but outsider sees
	// member because it collides with the group it names.
	assert.Same(t, member, outsider.GroundPlatform.(*box))
}

// A descending 45 degree slope ending on a wall corner, followed by a
// shallow falling ramp one row lower. The drop off the corner must be a fall,
// never a jump down further than the frame's velocity and stick distance.
func TestSlopeToWallJunctionRegression(t *testing.T) {
	b := newBox(1, 0.5-eps, 0.5, 0.5)
	b.walk = 3
	l, terrain := createTestLevel([]string{
		"      ",
		"xx.   ",
		"xxxl  ",
		"xxxxxx",
	}, b)

	for iter := 0; iter < 75; iter++ {
		dyBefore := b.Dy
		l.Update(frame)

		drop := b.Y - b.LastY
		bound := math.Max(0, (dyBefore+b.gravity*frame)*frame) +
			b.MaxStickToGroundDistance + math.Abs(b.X-b.LastX) + 1e-9
		require.LessOrEqual(t, drop, bound, "teleported down at x=%v", b.X)

		minX, minY, maxX, maxY := terrain.Map.RectTileRange(CollisionRect(b))
		require.False(t, terrain.Map.IsTileInArea(minX, minY, maxX, maxY, isWall),
			"inside a wall at (%v, %v)", b.X, b.Y)
	}
	assert.Greater(t, b.X, 4.0)
	assert.True(t, b.OnGround)
	assert.InDelta(t, 3-eps, bottom(b), 1e-9)
}

// A three step ramp whose crest meets a flat wall top, crossed at speeds up
// to two tiles per frame. The walker must ride onto the crest without ever
// overlapping a wall and come to rest against the far wall.
func TestFastClimbOntoCrest(t *testing.T) {
	rows := []string{
		"          xx",
		"        /xxx",
		"       /xxxx",
		"      /xxxxx",
		"xxxxxxxxxxxx",
	}
	for _, speed := range []float64{6, 30, 45, 60, 120} {
		t.Run(fmt.Sprintf("%v per second", speed), func(t *testing.T) {
			b := newBox(1, 3-eps, 0.5, 1)
			b.walk = speed
			l, terrain := createTestLevel(rows, b)

			for iter := 0; iter < 240; iter++ {
				l.Update(frame)
				minX, minY, maxX, maxY := terrain.Map.RectTileRange(CollisionRect(b))
				require.False(t, terrain.Map.IsTileInArea(minX, minY, maxX, maxY, isWallUp),
					"inside a wall at (%v, %v)", b.X, b.Y)
			}
			assert.True(t, b.OnGround)
			assert.InDelta(t, 1-eps, bottom(b), 1e-9)
			assert.InDelta(t, 10-eps, CollisionRect(b).Right, 1e-9)
		})
	}
}
