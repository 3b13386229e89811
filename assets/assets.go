// Package assets embeds the bundled level files. It has no graphics
// dependencies so the headless tools can load levels too.
package assets

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/automoto/platforming/shared/leveldata"
)

// LevelsDir is the directory of level files inside FS.
const LevelsDir = "levels"

var (
	//go:embed all:levels
	assetFS embed.FS
)

// FS returns the embedded asset tree.
func FS() fs.FS {
	return assetFS
}

// LevelLoader loads bundled levels and caches them by name.
type LevelLoader struct {
	levels map[string]*leveldata.LevelFile
	names  []string
}

func NewLevelLoader() *LevelLoader {
	return &LevelLoader{}
}

func (l *LevelLoader) load() error {
	if l.levels != nil {
		return nil
	}
	levels, names, err := leveldata.LoadAllLevels(assetFS, LevelsDir)
	if err != nil {
		return fmt.Errorf("load bundled levels: %w", err)
	}
	l.levels, l.names = levels, names
	return nil
}

// Names returns the bundled level names in sorted order.
func (l *LevelLoader) Names() ([]string, error) {
	if err := l.load(); err != nil {
		return nil, err
	}
	return l.names, nil
}

// Level returns a bundled level by name.
func (l *LevelLoader) Level(name string) (*leveldata.LevelFile, error) {
	if err := l.load(); err != nil {
		return nil, err
	}
	level, ok := l.levels[name]
	if !ok {
		return nil, fmt.Errorf("no bundled level %q", name)
	}
	return level, nil
}

// MustLoadLevels returns every bundled level in name order.
func (l *LevelLoader) MustLoadLevels() []*leveldata.LevelFile {
	if err := l.load(); err != nil {
		panic(err)
	}
	levels := make([]*leveldata.LevelFile, 0, len(l.names))
	for _, name := range l.names {
		levels = append(levels, l.levels[name])
	}
	return levels
}
