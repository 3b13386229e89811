package actors

import (
	"math"

	"github.com/automoto/platforming/config"
	"github.com/automoto/platforming/shared/gamemath"
	"github.com/automoto/platforming/shared/geom"
	"github.com/automoto/platforming/shared/platforming"
)

// Crate is a passive box: it falls, rides platforms and slides to rest
// relative to what it stands on. Other bodies treat it as a wall.
type Crate struct {
	platforming.Object

	Physics  config.PhysicsConfig
	Friction float64
}

// NewCrate places a size x size crate with its top-left corner at (x, y).
func NewCrate(x, y, size float64, phys config.PhysicsConfig, friction float64) *Crate {
	c := &Crate{
		Object:   *platforming.NewObject(x, y, geom.NewRect(0, 0, size, size)),
		Physics:  phys,
		Friction: friction,
	}
	c.MaxStickToGroundDistance = phys.MaxStickToGround
	c.PreserveInertiaFromCollisions = phys.PreserveInertia
	return c
}

func (c *Crate) DecideDx(dt float64) {
	if !c.LastOnGround {
		return
	}
	base := 0.0
	if c.PreserveInertiaFromCollisions && c.LastGroundPlatform != nil && dt > 0 {
		base = c.LastGroundPlatform.PhysicsObject().FrameDeltaX / dt
	}
	c.Dx = gamemath.Approach(c.Dx, base, c.Friction*dt)
}

func (c *Crate) DecideDy(dt float64) {
	c.Dy = math.Min(c.Dy+c.Physics.Gravity*dt, c.Physics.MaxFallSpeed)
}
