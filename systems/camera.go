package systems

import (
	"math"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/platforming/components"
	"github.com/automoto/platforming/config"
)

// lookAheadSpeedThreshold is the per-frame displacement, in tiles, below
// which the look-ahead offset is frozen.
const lookAheadSpeedThreshold = 0.01

// UpdateCamera follows the player in pixel space. Look-ahead is driven by
// the player's actual displacement this frame, so riding a platform or being
// stopped by a wall moves the camera the way the body really moved.
func UpdateCamera(e *ecs.ECS) {
	followPlayer(e, config.Camera.FollowSmoothing)
}

func followPlayer(e *ecs.ECS, smoothing float64) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	stageEntry, ok := components.Stage.First(e.World)
	if !ok {
		return
	}
	s := components.Stage.Get(stageEntry).Stage
	player := s.Player
	tile := config.Camera.TileSize

	if math.Abs(player.FrameDeltaX) > lookAheadSpeedThreshold {
		targetLookAhead := math.Copysign(config.Camera.LookAheadDistanceX*tile, player.FrameDeltaX)
		camera.LookAheadX += (targetLookAhead - camera.LookAheadX) * config.Camera.LookAheadSmoothing
	}

	targetX := player.X*tile + camera.LookAheadX
	targetY := (player.Y-config.Character.Height/2)*tile

	screenWidth := float64(config.C.Width)
	screenHeight := float64(config.C.Height)
	levelWidth := float64(s.Terrain.Map.Width) * tile
	levelHeight := float64(s.Terrain.Map.Height) * tile

	targetX = clampCamera(targetX, screenWidth, levelWidth)
	targetY = clampCamera(targetY, screenHeight, levelHeight)

	camera.Position.X += (targetX - camera.Position.X) * smoothing
	camera.Position.Y += (targetY - camera.Position.Y) * smoothing

	updateScreenShake(cameraEntry, camera)
}

// clampCamera keeps the view inside the level, centring levels smaller than
// the screen.
func clampCamera(target, screen, level float64) float64 {
	if level <= screen {
		return level / 2
	}
	return math.Max(screen/2, math.Min(level-screen/2, target))
}

// SnapCamera centres the camera on the player without smoothing.
func SnapCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	components.Camera.Get(cameraEntry).LookAheadX = 0
	followPlayer(e, 1)
}

// updateScreenShake sets the camera's shake offset and decrements duration
func updateScreenShake(cameraEntry *donburi.Entry, camera *components.CameraData) {
	if !cameraEntry.HasComponent(components.ScreenShake) {
		camera.Shake = dmath.Vec2{}
		return
	}

	shake := components.ScreenShake.Get(cameraEntry)
	shake.Elapsed++

	// Calculate decaying intensity
	progress := float64(shake.Duration-shake.Elapsed) / float64(shake.Duration)
	if progress < 0 {
		progress = 0
	}
	currentIntensity := shake.Intensity * progress

	camera.Shake = dmath.Vec2{
		X: math.Sin(float64(shake.Elapsed)*1.1) * currentIntensity,
		Y: math.Cos(float64(shake.Elapsed)*1.3) * currentIntensity,
	}

	if shake.Elapsed >= shake.Duration {
		cameraEntry.RemoveComponent(components.ScreenShake)
	}
}

// TriggerScreenShake starts a screen shake effect
func TriggerScreenShake(ecs *ecs.ECS, intensity float64, duration int) {
	cameraEntry, ok := components.Camera.First(ecs.World)
	if !ok {
		return
	}

	if cameraEntry.HasComponent(components.ScreenShake) {
		shake := components.ScreenShake.Get(cameraEntry)
		// Only override if new shake is stronger
		if intensity > shake.Intensity {
			shake.Intensity = intensity
			shake.Duration = duration
			shake.Elapsed = 0
		}
		return
	}
	cameraEntry.AddComponent(components.ScreenShake)
	components.ScreenShake.Set(cameraEntry, &components.ScreenShakeData{
		Intensity: intensity,
		Duration:  duration,
	})
}
