// Package actors holds the bodies a stage is made of: the player character,
// crates and moving platforms. Each one embeds a platforming object and
// overrides the decide and touch hooks.
package actors

import (
	"math"

	"github.com/automoto/platforming/config"
	"github.com/automoto/platforming/shared/gamemath"
	"github.com/automoto/platforming/shared/geom"
	"github.com/automoto/platforming/shared/platforming"
)

// Intent is what the controller wants this frame.
type Intent struct {
	// Move is the walk direction in [-1, 1].
	Move float64
	// Jump is held. A jump starts on the frame it goes down.
	Jump bool
}

// Character is a walking, jumping body anchored at the middle of its feet.
type Character struct {
	platforming.Object

	Intent  Intent
	Tuning  config.CharacterConfig
	Physics config.PhysicsConfig

	Facing   float64
	Landings int
	Jumps    int
	// OnLand is called for every landing after a fall or jump.
	OnLand func(ground platforming.Collider)

	jumpWasHeld bool
	jumped      bool
	jumpCut     bool
}

// NewCharacter places a character with its feet at (x, y).
func NewCharacter(x, y float64, tuning config.CharacterConfig, phys config.PhysicsConfig) *Character {
	w, h := tuning.Width, tuning.Height
	c := &Character{
		Object:  *platforming.NewObject(x, y, geom.Rect{Left: -w / 2, Right: w / 2, Top: -h, Bottom: 0}),
		Tuning:  tuning,
		Physics: phys,
		Facing:  config.DirectionRight,
	}
	c.MaxStickToGroundDistance = phys.MaxStickToGround
	c.PreserveInertiaFromCollisions = phys.PreserveInertia
	return c
}

// groundVelocity is the velocity of whatever the character stood on last
// frame, so walking speed is measured relative to a moving platform.
func (c *Character) groundVelocity(dt float64) (float64, float64) {
	if !c.LastOnGround || c.LastGroundPlatform == nil || dt <= 0 {
		return 0, 0
	}
	p := c.LastGroundPlatform.PhysicsObject()
	return p.FrameDeltaX / dt, p.FrameDeltaY / dt
}

func (c *Character) DecideDx(dt float64) {
	move := gamemath.ClampSpeed(c.Intent.Move, 1)
	if move != 0 {
		c.Facing = gamemath.Sign(move)
	}

	base := 0.0
	if c.PreserveInertiaFromCollisions {
		base, _ = c.groundVelocity(dt)
	}
	target := base + move*c.Tuning.WalkSpeed

	switch {
	case c.LastOnGround && move == 0:
		c.Dx = gamemath.Approach(c.Dx, target, c.Tuning.Friction*dt)
	case c.LastOnGround:
		c.Dx = gamemath.Approach(c.Dx, target, c.Tuning.Acceleration*dt)
	case move != 0:
		c.Dx = gamemath.Approach(c.Dx, target, c.Tuning.Acceleration*c.Tuning.AirControl*dt)
	}
}

func (c *Character) DecideDy(dt float64) {
	pressed := c.Intent.Jump && !c.jumpWasHeld
	c.jumpWasHeld = c.Intent.Jump

	grounded := c.LastOnGround || c.AirTime <= c.Tuning.CoyoteTime
	if pressed && grounded && !c.jumped {
		_, platformDy := c.groundVelocity(dt)
		if !c.PreserveInertiaFromCollisions {
			platformDy = 0
		}
		c.Dy = -c.Tuning.JumpSpeed + math.Min(platformDy, 0)
		c.jumped = true
		c.jumpCut = false
		c.Jumps++
		return
	}

	if c.jumped && !c.Intent.Jump && !c.jumpCut && c.Dy < 0 {
		c.Dy *= c.Tuning.JumpCut
		c.jumpCut = true
	}

	c.Dy = math.Min(c.Dy+c.Physics.Gravity*dt, c.Physics.MaxFallSpeed)
}

func (c *Character) TouchGround(ground platforming.Collider) bool {
	c.jumped = false
	if !c.LastOnGround {
		c.Landings++
		if c.OnLand != nil {
			c.OnLand(ground)
		}
	}
	return false
}

// Respawn teleports the character to (x, y) at rest.
func (c *Character) Respawn(x, y float64) {
	c.SetPosition(x, y)
	c.Dx, c.Dy = 0, 0
	c.AirTime = 0
	c.jumped = false
}
