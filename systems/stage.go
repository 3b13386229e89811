package systems

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/platforming/components"
	"github.com/automoto/platforming/shared/leveldata"
	"github.com/automoto/platforming/shared/stage"
	"github.com/automoto/platforming/systems/factory"
	"github.com/automoto/platforming/tags"
)

// UpdateStage feeds input to the player and steps the physics level once per
// tick.
func UpdateStage(ecs *ecs.ECS) {
	entry, ok := components.Stage.First(ecs.World)
	if !ok {
		return
	}
	data := components.Stage.Get(entry)
	input := getOrCreateInput(ecs)

	switch {
	case input.JustPressed(components.ActionNextLevel):
		switchLevel(ecs, data.LevelIndex+1)
		return
	case input.JustPressed(components.ActionPrevLevel):
		switchLevel(ecs, data.LevelIndex-1)
		return
	case input.JustPressed(components.ActionPause):
		data.Paused = !data.Paused
	}

	s := data.Stage
	if input.JustPressed(components.ActionRespawn) {
		s.Player.Respawn(s.Spawn.X, s.Spawn.Y)
	}

	if data.Paused && !input.JustPressed(components.ActionStep) {
		return
	}

	player := s.Player
	player.Intent.Move = 0
	if input.Pressed(components.ActionMoveLeft) {
		player.Intent.Move--
	}
	if input.Pressed(components.ActionMoveRight) {
		player.Intent.Move++
	}
	player.Intent.Jump = input.Pressed(components.ActionJump)

	jumps, landings := player.Jumps, player.Landings
	events := s.Step(1 / float64(ebiten.TPS()))

	if player.Jumps > jumps {
		QueueSFX(ecs, components.SoundJump)
		squash(ecs, 0.8, 1.25)
	}
	if player.Landings > landings {
		QueueSFX(ecs, components.SoundLand)
		squash(ecs, 1.25, 0.8)
	}
	handleEvents(ecs, data, events)
}

func handleEvents(ecs *ecs.ECS, data *components.StageData, events []stage.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case leveldata.ZoneDeath:
			QueueSFX(ecs, components.SoundDeath)
			TriggerScreenShake(ecs, 6, 20)
		case leveldata.ZoneCheckpoint:
			QueueSFX(ecs, components.SoundCheckpoint)
		case leveldata.ZoneFinish:
			QueueSFX(ecs, components.SoundFinish)
			log.Printf("[stage] %s complete in %d frames", data.Stage.Name, ev.Frame)
		}
	}
}

func switchLevel(ecs *ecs.ECS, index int) {
	entry, err := factory.CreateStage(ecs, index)
	if err != nil {
		log.Printf("Warning: could not switch level: %v", err)
		return
	}
	data := components.Stage.Get(entry)
	settings := GetOrCreateSettings(ecs)
	settings.LastLevel = data.Levels[data.LevelIndex]
	SaveCurrentSettings(settings)
}

// squash starts a squash-and-stretch on the player sprite.
func squash(ecs *ecs.ECS, sx, sy float64) {
	entry, ok := tags.Player.First(ecs.World)
	if !ok {
		return
	}
	s := components.SquashStretch.Get(entry)
	s.ScaleX, s.ScaleY = sx, sy
}

// UpdateSquashStretch eases sprite scales back to normal.
func UpdateSquashStretch(ecs *ecs.ECS) {
	components.SquashStretch.Each(ecs.World, func(e *donburi.Entry) {
		s := components.SquashStretch.Get(e)
		s.ScaleX += (1 - s.ScaleX) * s.LerpSpeed
		s.ScaleY += (1 - s.ScaleY) * s.LerpSpeed
	})
}
