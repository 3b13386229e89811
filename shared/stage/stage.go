// Package stage turns a level file into a running platforming level: terrain,
// moving platforms, crates and the player, plus the trigger zones checked
// after every physics step.
package stage

import (
	"fmt"
	"log"

	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/platforming/config"
	"github.com/automoto/platforming/shared/actors"
	"github.com/automoto/platforming/shared/geom"
	"github.com/automoto/platforming/shared/leveldata"
	"github.com/automoto/platforming/shared/platforming"
	"github.com/automoto/platforming/shared/zones"
)

// Collision groups bodies are registered in. Every body still collides with
// the whole level.
const (
	GroupTerrain   = "terrain"
	GroupPlatforms = "platforms"
	GroupPlayers   = "players"
	GroupCrates    = "crates"
)

// fallMargin is how far below the terrain a body may drop before it counts as
// lost.
const fallMargin = 8.0

// Event is something that happened to the player during a step.
type Event struct {
	Frame int
	Kind  string
	ID    int
}

func (e Event) String() string {
	return fmt.Sprintf("frame %d: %s %d", e.Frame, e.Kind, e.ID)
}

// Stage is a built level.
type Stage struct {
	Name      string
	Level     *platforming.Level
	Terrain   *platforming.TileMapObject
	Player    *actors.Character
	Crates    []*actors.Crate
	Platforms []*actors.PathPlatform
	Zones     *zones.Space

	// Spawn is where the player respawns, feet position.
	Spawn      dmath.Vec2
	Checkpoint int
	Deaths     int
	Finished   bool
	Frame      int

	events []Event
}

// Build creates a stage from a level file using the global tuning in config.
func Build(file *leveldata.LevelFile) (*Stage, error) {
	return BuildWith(file, config.Character, config.Physics)
}

// BuildWith is Build with explicit tuning.
func BuildWith(file *leveldata.LevelFile, tuning config.CharacterConfig, phys config.PhysicsConfig) (*Stage, error) {
	if file == nil || len(file.Tiles) == 0 {
		return nil, fmt.Errorf("build stage: %w", leveldata.ErrNoTiles)
	}

	width := float64(file.Width())
	mirrorX := func(x, w float64) float64 {
		if !file.FlippedX {
			return x
		}
		return width - x - w
	}

	terrain := platforming.NewTileMapObject(0, 0, platforming.ParseTiles(file.Tiles, file.FlippedX))

	s := &Stage{
		Name:       file.Name,
		Level:      platforming.NewLevel(),
		Terrain:    terrain,
		Spawn:      dmath.Vec2{X: mirrorX(file.Spawn.X, 0), Y: file.Spawn.Y},
		Checkpoint: -1,
	}
	s.Level.PushObject(terrain, GroupTerrain)

	for i, def := range file.Platforms {
		if len(def.Tiles) == 0 || len(def.Path) == 0 {
			log.Printf("Warning: [stage] %s: platform %d has no tiles or path, skipping", file.Name, i)
			continue
		}
		m := platforming.ParseTiles(def.Tiles, file.FlippedX)
		points := make([]dmath.Vec2, len(def.Path))
		for j, p := range def.Path {
			points[j] = dmath.Vec2{X: mirrorX(p.X, float64(m.Width)), Y: p.Y}
		}
		platform := actors.NewPathPlatform(m, points, def.Speed, def.Mode)
		platform.TilesAffectMovingTileMaps = def.Solid
		s.Platforms = append(s.Platforms, platform)
		s.Level.PushObject(platform, GroupPlatforms)
	}

	for _, p := range file.Crates {
		crate := actors.NewCrate(mirrorX(p.X, tuning.CrateSize), p.Y, tuning.CrateSize, phys, tuning.Friction)
		s.Crates = append(s.Crates, crate)
		s.Level.PushObject(crate, GroupCrates)
	}

	s.Player = actors.NewCharacter(s.Spawn.X, s.Spawn.Y, tuning, phys)
	s.Level.PushObject(s.Player, GroupPlayers)

	s.Zones = zones.New(terrain.Map.Width, terrain.Map.Height)
	for _, z := range file.Zones {
		s.Zones.Add(z.Kind, geom.NewRect(mirrorX(z.X, z.W), z.Y, z.W, z.H), z.ID)
	}

	log.Printf("[stage] built %q: %dx%d tiles, %d platforms, %d crates, %d zones",
		s.Name, terrain.Map.Width, terrain.Map.Height, len(s.Platforms), len(s.Crates), len(file.Zones))
	return s, nil
}

// Step advances the level by dt and then applies zone triggers. It returns
// the events of this step; the slice is reused by the next call.
func (s *Stage) Step(dt float64) []Event {
	s.events = s.events[:0]
	s.Level.Update(dt)
	s.Frame++

	limit := s.Terrain.Y + float64(s.Terrain.Map.Height) + fallMargin
	for _, crate := range s.Crates {
		if crate.Y > limit && s.Level.Contains(crate) {
			log.Printf("[stage] crate fell out of %q at x=%.2f", s.Name, crate.X)
			s.Level.RemoveObject(crate)
		}
	}

	if s.Player.Y > limit {
		s.die(-1)
		return s.events
	}

	for _, z := range s.Zones.Query(platforming.CollisionRect(s.Player)) {
		switch z.Kind {
		case leveldata.ZoneDeath:
			s.die(z.ID)
			return s.events
		case leveldata.ZoneCheckpoint:
			if z.ID == s.Checkpoint {
				continue
			}
			s.Checkpoint = z.ID
			s.Spawn = dmath.Vec2{X: z.Rect.Center().X, Y: z.Rect.Bottom}
			s.emit(leveldata.ZoneCheckpoint, z.ID)
		case leveldata.ZoneFinish:
			if !s.Finished {
				s.Finished = true
				log.Printf("[stage] %q finished at frame %d with %d deaths", s.Name, s.Frame, s.Deaths)
				s.emit(leveldata.ZoneFinish, z.ID)
			}
		}
	}
	return s.events
}

func (s *Stage) die(id int) {
	s.Deaths++
	s.Player.Respawn(s.Spawn.X, s.Spawn.Y)
	s.emit(leveldata.ZoneDeath, id)
}

func (s *Stage) emit(kind string, id int) {
	s.events = append(s.events, Event{Frame: s.Frame, Kind: kind, ID: id})
}

// Bodies returns the level's bodies in resolve order.
func (s *Stage) Bodies() []platforming.Body {
	return s.Level.Objects()
}

// Snapshot is a copy of the state frontends display.
type Snapshot struct {
	Frame      int
	X, Y       float64
	Dx, Dy     float64
	OnGround   bool
	Deaths     int
	Checkpoint int
	Finished   bool
}

func (s *Stage) Snapshot() Snapshot {
	p := s.Player
	return Snapshot{
		Frame:      s.Frame,
		X:          p.X,
		Y:          p.Y,
		Dx:         p.Dx,
		Dy:         p.Dy,
		OnGround:   p.OnGround,
		Deaths:     s.Deaths,
		Checkpoint: s.Checkpoint,
		Finished:   s.Finished,
	}
}

func (sn Snapshot) String() string {
	ground := "air"
	if sn.OnGround {
		ground = "ground"
	}
	return fmt.Sprintf("%5d x=%7.3f y=%7.3f dx=%7.3f dy=%7.3f %-6s deaths=%d cp=%d",
		sn.Frame, sn.X, sn.Y, sn.Dx, sn.Dy, ground, sn.Deaths, sn.Checkpoint)
}
