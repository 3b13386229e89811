package factory

import (
	"fmt"
	"log"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/platforming/archetypes"
	"github.com/automoto/platforming/assets"
	"github.com/automoto/platforming/components"
	"github.com/automoto/platforming/shared/platforming"
	"github.com/automoto/platforming/shared/stage"
)

var levelLoader = assets.NewLevelLoader()

// CreateStage builds the bundled level at levelIndex (wrapping around) and
// spawns an entity for every body in it.
func CreateStage(ecs *ecs.ECS, levelIndex int) (*donburi.Entry, error) {
	names, err := levelLoader.Names()
	if err != nil {
		return nil, err
	}
	levelIndex = ((levelIndex % len(names)) + len(names)) % len(names)

	file, err := levelLoader.Level(names[levelIndex])
	if err != nil {
		return nil, err
	}
	s, err := stage.Build(file)
	if err != nil {
		return nil, fmt.Errorf("build level %s: %w", names[levelIndex], err)
	}

	entry, ok := components.Stage.First(ecs.World)
	if !ok {
		entry = archetypes.Stage.Spawn(ecs)
	}
	components.Stage.SetValue(entry, components.StageData{
		Stage:      s,
		LevelIndex: levelIndex,
		Levels:     names,
	})

	destroyBodies(ecs)
	spawnBody(ecs, archetypes.Terrain, s.Terrain)
	for _, p := range s.Platforms {
		spawnBody(ecs, archetypes.Platform, p)
	}
	for _, c := range s.Crates {
		spawnBody(ecs, archetypes.Crate, c)
	}
	player := spawnBody(ecs, archetypes.Player, s.Player)
	components.SquashStretch.SetValue(player, components.SquashStretchData{
		ScaleX:    1,
		ScaleY:    1,
		LerpSpeed: 0.2,
	})

	log.Printf("[factory] stage %q ready (%d/%d)", s.Name, levelIndex+1, len(names))
	return entry, nil
}

// IndexOfLevel returns the bundled level index for a name, or 0.
func IndexOfLevel(name string) int {
	names, err := levelLoader.Names()
	if err != nil {
		return 0
	}
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return 0
}

func spawnBody(ecs *ecs.ECS, a interface {
	Spawn(*ecs.ECS, ...donburi.IComponentType) *donburi.Entry
}, body platforming.Body) *donburi.Entry {
	e := a.Spawn(ecs)
	components.Body.SetValue(e, components.BodyData{Body: body})
	return e
}

func destroyBodies(ecs *ecs.ECS) {
	var stale []*donburi.Entry
	components.Body.Each(ecs.World, func(e *donburi.Entry) {
		stale = append(stale, e)
	})
	for _, e := range stale {
		ecs.World.Remove(e.Entity())
	}
}
