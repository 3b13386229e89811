package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"

	"github.com/automoto/platforming/archetypes"
	"github.com/automoto/platforming/components"
	"github.com/automoto/platforming/config"
)

// CreateCamera spawns the camera looking at the middle of the window until
// the first SnapCamera.
func CreateCamera(ecs *ecs.ECS) *donburi.Entry {
	camera := archetypes.Camera.Spawn(ecs)
	components.Camera.SetValue(camera, components.CameraData{
		Position: math.Vec2{X: float64(config.C.Width) / 2, Y: float64(config.C.Height) / 2},
	})
	return camera
}
