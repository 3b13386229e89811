package systems

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/platforming/components"
	"github.com/automoto/platforming/shared/leveldata"
	"github.com/automoto/platforming/shared/platforming"
	"github.com/automoto/platforming/tags"
)

var zoneColors = map[string]color.Color{
	leveldata.ZoneDeath:      color.RGBA{255, 0, 0, 255},
	leveldata.ZoneCheckpoint: color.RGBA{0, 255, 0, 255},
	leveldata.ZoneFinish:     color.RGBA{255, 255, 0, 255},
}

// DrawDebug outlines every collider and trigger zone and prints the player's
// physics state.
func DrawDebug(ecs *ecs.ECS, screen *ebiten.Image) {
	settings := GetOrCreateSettings(ecs)
	if !settings.Debug {
		return
	}
	v, ok := newView(ecs, screen)
	if !ok {
		return
	}

	components.Body.Each(ecs.World, func(entry *donburi.Entry) {
		body := components.Body.Get(entry).Body
		r := platforming.CollisionRect(body)
		if !v.visible(r) {
			return
		}
		c := color.RGBA{0, 255, 255, 255} // Cyan default
		switch {
		case entry.HasComponent(tags.Terrain):
			c = color.RGBA{100, 100, 100, 255}
		case entry.HasComponent(tags.Player):
			c = color.RGBA{0, 0, 255, 255}
		}
		v.strokeRect(screen, r, c)
	})

	stageEntry, ok := components.Stage.First(ecs.World)
	if !ok {
		return
	}
	s := components.Stage.Get(stageEntry).Stage
	for _, z := range s.Zones.Zones() {
		if v.visible(z.Rect) {
			v.strokeRect(screen, z.Rect, zoneColors[z.Kind])
		}
	}

	o := s.Player.PhysicsObject()
	ground := "none"
	if o.GroundPlatform != nil {
		ground = fmt.Sprintf("%T", o.GroundPlatform)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"frame %d  fps %.0f\npos %.3f, %.3f\nvel %.2f, %.2f\nframe delta %.4f, %.4f\nground %v (%s) air %.2fs",
		s.Frame, ebiten.ActualFPS(),
		o.X, o.Y, o.Dx, o.Dy,
		o.FrameDeltaX, o.FrameDeltaY,
		o.OnGround, ground, o.AirTime,
	), 4, 20)
}
