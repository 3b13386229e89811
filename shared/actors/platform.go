package actors

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/platforming/shared/platforming"
	"github.com/automoto/platforming/shared/tilemap"
)

// Path modes for PathPlatform.
const (
	PathPingPong = "pingpong"
	PathLoop     = "loop"
)

type leg struct {
	from, to dmath.Vec2
	tween    *gween.Tween
}

// PathPlatform is a tile grid that travels along waypoints. Each leg is a
// tween from 0 to 1 eased at both ends; the platform sets its velocity so the
// level moves it onto the tweened position.
type PathPlatform struct {
	platforming.TileMapObject

	legs    []leg
	current int
}

// NewPathPlatform builds a platform whose top-left corner starts at
// points[0]. Speed is in units per second. A single point makes a static
// platform.
func NewPathPlatform(m *tilemap.TileMap[platforming.Tile], points []dmath.Vec2, speed float64, mode string) *PathPlatform {
	start := dmath.Vec2{}
	if len(points) > 0 {
		start = points[0]
	}
	p := &PathPlatform{TileMapObject: *platforming.NewTileMapObject(start.X, start.Y, m)}

	route := points
	switch {
	case len(points) < 2:
		route = nil
	case mode == PathLoop:
		route = append(append([]dmath.Vec2{}, points...), points[0])
	default:
		route = append([]dmath.Vec2{}, points...)
		for i := len(points) - 2; i >= 0; i-- {
			route = append(route, points[i])
		}
	}

	for i := 0; i+1 < len(route); i++ {
		from, to := route[i], route[i+1]
		dist := math.Hypot(to.X-from.X, to.Y-from.Y)
		if dist == 0 || speed <= 0 {
			continue
		}
		p.legs = append(p.legs, leg{
			from:  from,
			to:    to,
			tween: gween.New(0, 1, float32(dist/speed), ease.InOutSine),
		})
	}
	return p
}

// Leg is the index of the leg being travelled.
func (p *PathPlatform) Leg() int { return p.current }

func (l *leg) at(f float32) (float64, float64) {
	t := float64(f)
	return l.from.X + (l.to.X-l.from.X)*t, l.from.Y + (l.to.Y-l.from.Y)*t
}

// advance runs the tweens by dt and returns the target position. Time left
// over when a leg finishes carries into the following legs.
func (p *PathPlatform) advance(dt float64) (float64, float64) {
	if len(p.legs) == 0 {
		return p.X, p.Y
	}
	remaining := float32(dt)
	for iter := 0; iter < len(p.legs)+1; iter++ {
		l := &p.legs[p.current]
		f, done := l.tween.Update(remaining)
		if !done {
			return l.at(f)
		}
		remaining = l.tween.Overflow
		l.tween.Reset()
		p.current = (p.current + 1) % len(p.legs)
	}
	return p.legs[p.current].at(0)
}

func (p *PathPlatform) DecideDx(dt float64) {
	if dt <= 0 {
		return
	}
	x, y := p.advance(dt)
	p.Dx = (x - p.X) / dt
	p.Dy = (y - p.Y) / dt
}

// DecideDy keeps the velocity DecideDx computed.
func (p *PathPlatform) DecideDy(float64) {}
