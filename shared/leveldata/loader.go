package leveldata

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lafriks/go-tiled"
	"gopkg.in/yaml.v3"

	"github.com/automoto/platforming/shared/platforming"
)

// Extensions Load understands.
var Extensions = []string{".yaml", ".yml", ".toml", ".tmx"}

// Load reads a level from fsys, choosing the decoder by file extension. It
// takes an fs.FS so callers can pass embed.FS or os.DirFS.
func Load(fsys fs.FS, levelPath string) (*LevelFile, error) {
	var (
		level *LevelFile
		err   error
	)
	switch strings.ToLower(path.Ext(levelPath)) {
	case ".yaml", ".yml":
		level, err = loadYAML(fsys, levelPath)
	case ".toml":
		level, err = loadTOML(fsys, levelPath)
	case ".tmx":
		level, err = LoadTMX(fsys, levelPath)
	default:
		return nil, fmt.Errorf("load %s: %w", levelPath, ErrUnknownFormat)
	}
	if err != nil {
		return nil, err
	}

	if level.Name == "" {
		level.Name = stem(levelPath)
	}
	if len(level.Tiles) == 0 {
		return nil, fmt.Errorf("load %s: %w", levelPath, ErrNoTiles)
	}
	for i := range level.Platforms {
		if level.Platforms[i].Mode == "" {
			level.Platforms[i].Mode = ModePingPong
		}
	}
	return level, nil
}

func loadYAML(fsys fs.FS, levelPath string) (*LevelFile, error) {
	data, err := fs.ReadFile(fsys, levelPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", levelPath, err)
	}
	level := &LevelFile{}
	if err := yaml.Unmarshal(data, level); err != nil {
		return nil, fmt.Errorf("parse yaml %s: %w", levelPath, err)
	}
	return level, nil
}

func loadTOML(fsys fs.FS, levelPath string) (*LevelFile, error) {
	data, err := fs.ReadFile(fsys, levelPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", levelPath, err)
	}
	level := &LevelFile{}
	if _, err := toml.Decode(string(data), level); err != nil {
		return nil, fmt.Errorf("parse toml %s: %w", levelPath, err)
	}
	return level, nil
}

// LoadTMX parses a Tiled map. The "tiles" layer (or the first tile layer)
// becomes the terrain: each tileset tile names its code with a "code"
// property, and tiles without one are walls. Object groups named Spawn,
// Crates, Platforms, DeadZones, Checkpoint and FinishLine supply the rest.
// Pixel positions are converted to tiles.
func LoadTMX(fsys fs.FS, tmxPath string) (*LevelFile, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	toTiles := func(x, y float64) Point {
		return Point{X: x / tileW, Y: y / tileH}
	}

	level := &LevelFile{
		Name:     levelMap.Properties.GetString("name"),
		FlippedX: levelMap.Properties.GetBool("flippedX"),
	}

	for _, layer := range levelMap.Layers {
		if layer.Name != "tiles" && level.Tiles != nil {
			continue
		}
		rows := make([]string, levelMap.Height)
		for y := 0; y < levelMap.Height; y++ {
			row := make([]byte, levelMap.Width)
			for x := 0; x < levelMap.Width; x++ {
				row[x] = tileCode(layer.Tiles[y*levelMap.Width+x])
			}
			rows[y] = string(row)
		}
		level.Tiles = rows
		if layer.Name == "tiles" {
			break
		}
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case "Spawn", "PlayerSpawn":
			for _, o := range og.Objects {
				level.Spawn = toTiles(o.X, o.Y)
			}
		case "Crates":
			for _, o := range og.Objects {
				level.Crates = append(level.Crates, toTiles(o.X, o.Y))
			}
		case "Platforms":
			for _, o := range og.Objects {
				def := PlatformDef{
					Tiles: strings.Split(o.Properties.GetString("tiles"), "|"),
					Speed: o.Properties.GetFloat("speed"),
					Mode:  o.Properties.GetString("mode"),
					Solid: o.Properties.GetBool("solid"),
				}
				if len(o.PolyLines) > 0 && o.PolyLines[0].Points != nil {
					for _, p := range *o.PolyLines[0].Points {
						def.Path = append(def.Path, toTiles(o.X+p.X, o.Y+p.Y))
					}
				} else {
					def.Path = []Point{toTiles(o.X, o.Y)}
				}
				level.Platforms = append(level.Platforms, def)
			}
		case "DeadZones", "Checkpoint", "FinishLine":
			kind := map[string]string{
				"DeadZones":  ZoneDeath,
				"Checkpoint": ZoneCheckpoint,
				"FinishLine": ZoneFinish,
			}[og.Name]
			for _, o := range og.Objects {
				at := toTiles(o.X, o.Y)
				level.Zones = append(level.Zones, ZoneDef{
					Kind: kind,
					X:    at.X,
					Y:    at.Y,
					W:    o.Width / tileW,
					H:    o.Height / tileH,
					ID:   o.Properties.GetInt("checkpointID"),
				})
			}
		}
	}

	return level, nil
}

// tileCode maps a Tiled layer tile to a tile code. Horizontally flipped
// tiles use the mirrored code.
func tileCode(tile *tiled.LayerTile) byte {
	if tile == nil || tile.IsNil() {
		return platforming.CodeEmpty
	}
	code := byte(platforming.CodeWall)
	if tt, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
		if c := tt.Properties.GetString("code"); c != "" {
			code = c[0]
		} else {
			switch tt.Properties.GetString("slope") {
			case "45_up_right":
				code = platforming.CodeSlopeUp
			case "45_up_left":
				code = platforming.CodeSlopeDown
			}
		}
	}
	if tile.HorizontalFlip {
		code = platforming.MirrorCode(code)
	}
	return code
}

// LoadAllLevels discovers every level file in levelsDir within fsys, loads
// each, and returns them keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*LevelFile, []string, error) {
	var matches []string
	for _, ext := range Extensions {
		pattern := levelsDir + "/*" + ext
		m, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		matches = append(matches, m...)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no level files found in %s", levelsDir)
	}

	levels := make(map[string]*LevelFile, len(matches))
	names := make([]string, 0, len(matches))
	for _, p := range matches {
		level, err := Load(fsys, p)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", p, err)
		}
		name := stem(p)
		if _, dup := levels[name]; dup {
			return nil, nil, fmt.Errorf("duplicate level name %q in %s", name, levelsDir)
		}
		levels[name] = level
		names = append(names, name)
	}

	sort.Strings(names)
	return levels, names, nil
}

func stem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
