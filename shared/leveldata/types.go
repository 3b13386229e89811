// Package leveldata reads level files into plain data: tile rows, spawns,
// moving platforms and trigger zones. It has no dependencies on ebitengine
// or donburi, so the headless tools can use it.
//
// Coordinates are in tiles with y growing downwards.
package leveldata

import "errors"

var (
	// ErrUnknownFormat is returned for files whose extension has no decoder.
	ErrUnknownFormat = errors.New("unknown level format")
	// ErrNoTiles is returned for levels without terrain rows.
	ErrNoTiles = errors.New("level has no tiles")
)

// Zone kinds understood by the stage.
const (
	ZoneDeath      = "death"
	ZoneCheckpoint = "checkpoint"
	ZoneFinish     = "finish"
)

// Platform path modes.
const (
	ModePingPong = "pingpong"
	ModeLoop     = "loop"
)

// Point is a position in tiles.
type Point struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// LevelFile is everything a stage needs to build a level.
type LevelFile struct {
	Name string `yaml:"name" toml:"name"`
	// Tiles are rows of tile codes, top row first.
	Tiles    []string `yaml:"tiles" toml:"tiles"`
	FlippedX bool     `yaml:"flipped_x" toml:"flipped_x"`

	Spawn     Point         `yaml:"spawn" toml:"spawn"`
	Crates    []Point       `yaml:"crates" toml:"crates"`
	Platforms []PlatformDef `yaml:"platforms" toml:"platforms"`
	Zones     []ZoneDef     `yaml:"zones" toml:"zones"`
}

// Width is the length of the longest tile row.
func (f *LevelFile) Width() int {
	w := 0
	for _, row := range f.Tiles {
		w = max(w, len(row))
	}
	return w
}

// PlatformDef is a small tile grid moving along a path. The first path point
// is where its top-left corner starts.
type PlatformDef struct {
	Tiles []string `yaml:"tiles" toml:"tiles"`
	Path  []Point  `yaml:"path" toml:"path"`
	// Speed is in tiles per second.
	Speed float64 `yaml:"speed" toml:"speed"`
	Mode  string  `yaml:"mode" toml:"mode"`
	// Solid makes the platform collide with other moving platforms.
	Solid bool `yaml:"solid" toml:"solid"`
}

// ZoneDef is a trigger rectangle.
type ZoneDef struct {
	Kind string  `yaml:"kind" toml:"kind"`
	X    float64 `yaml:"x" toml:"x"`
	Y    float64 `yaml:"y" toml:"y"`
	W    float64 `yaml:"w" toml:"w"`
	H    float64 `yaml:"h" toml:"h"`
	ID   int     `yaml:"id" toml:"id"`
}
