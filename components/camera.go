package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// CameraData is the view centre in pixels.
type CameraData struct {
	Position   math.Vec2
	LookAheadX float64 // smoothed X offset toward the direction of travel
	// Shake is added when drawing only, so following is not disturbed.
	Shake math.Vec2
}

// View is the centre to draw around.
func (c *CameraData) View() math.Vec2 {
	return math.Vec2{X: c.Position.X + c.Shake.X, Y: c.Position.Y + c.Shake.Y}
}

var Camera = donburi.NewComponentType[CameraData]()
