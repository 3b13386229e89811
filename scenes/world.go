package scenes

import (
	"image/color"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/platforming/archetypes"
	cfg "github.com/automoto/platforming/config"
	"github.com/automoto/platforming/systems"
	"github.com/automoto/platforming/systems/factory"
)

// PlatformerScene runs the bundled levels in a window.
type PlatformerScene struct {
	ecs  *ecs.ECS
	once sync.Once
}

func NewPlatformerScene() *PlatformerScene {
	return &PlatformerScene{}
}

func (ps *PlatformerScene) Update() {
	ps.once.Do(ps.configure)
	ps.ecs.Update()
}

func (ps *PlatformerScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.RGBA{24, 26, 34, 255})

	if ps.ecs == nil {
		return
	}
	ps.ecs.Draw(screen)
}

func (ps *PlatformerScene) configure() {
	ecs := ecs.NewECS(donburi.NewWorld())

	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdateSettings)
	ecs.AddSystem(systems.UpdateStage)
	ecs.AddSystem(systems.UpdateSquashStretch)
	ecs.AddSystem(systems.UpdateCamera)
	ecs.AddSystem(systems.UpdateAudio)

	ecs.AddRenderer(archetypes.LayerDefault, systems.DrawLevel)
	ecs.AddRenderer(archetypes.LayerDefault, systems.DrawBodies)
	ecs.AddRenderer(archetypes.LayerDefault, systems.DrawDebug)
	ecs.AddRenderer(archetypes.LayerDefault, systems.DrawHUD)

	ps.ecs = ecs

	factory.CreateCamera(ps.ecs)

	if _, err := factory.CreateStage(ps.ecs, factory.IndexOfLevel(startLevel(ps.ecs))); err != nil {
		log.Fatalf("Failed to create stage: %v", err)
	}
	systems.SnapCamera(ps.ecs)
}

// startLevel is the level played last, or the configured one.
func startLevel(e *ecs.ECS) string {
	if last := systems.GetOrCreateSettings(e).LastLevel; last != "" {
		return last
	}
	base := filepath.Base(cfg.Sim.Level)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
