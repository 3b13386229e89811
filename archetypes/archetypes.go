package archetypes

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/platforming/components"
	"github.com/automoto/platforming/tags"
)

// LayerDefault is the only render layer.
const LayerDefault ecs.LayerID = 0

var (
	Player = newArchetype(
		tags.Player,
		components.Body,
		components.SquashStretch,
	)
	Terrain = newArchetype(
		tags.Terrain,
		components.Body,
	)
	Platform = newArchetype(
		tags.Platform,
		components.Body,
	)
	Crate = newArchetype(
		tags.Crate,
		components.Body,
	)
	Stage = newArchetype(
		components.Stage,
	)
	Camera = newArchetype(
		components.Camera,
	)
	Input = newArchetype(
		components.Input,
	)
	Audio = newArchetype(
		components.Audio,
	)
	Settings = newArchetype(
		components.Settings,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		LayerDefault,
		append(a.components, cs...)...,
	))
	return e
}
