package leveldata

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlLevel = `
tiles:
  - "x      x"
  - "x  ^^  x"
  - "xx/xx.xx"
spawn: {x: 1.5, y: 1}
crates:
  - {x: 6, y: 0}
platforms:
  - tiles: ["xx"]
    path: [{x: 1, y: 0}, {x: 4, y: 0}]
    speed: 2
zones:
  - {kind: checkpoint, x: 3, y: 0, w: 1, h: 2, id: 1}
`

const tomlLevel = `
name = "mirror"
flipped_x = true
tiles = ["x   x", "xxrRx"]

[spawn]
x = 1
y = 0

[[platforms]]
tiles = ["^^"]
path = [{x = 0, y = 0}, {x = 0, y = 3}]
speed = 1.5
mode = "loop"
solid = true

[[zones]]
kind = "death"
x = 0
y = 5
w = 5
h = 1
`

const tmxLevel = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="4" height="3" tilewidth="16" tileheight="16" infinite="0">
 <properties>
  <property name="name" value="tiled"/>
 </properties>
 <tileset firstgid="1" name="codes" tilewidth="16" tileheight="16" tilecount="4" columns="4">
  <tile id="0">
   <properties><property name="code" value="x"/></properties>
  </tile>
  <tile id="1">
   <properties><property name="code" value="/"/></properties>
  </tile>
  <tile id="2">
   <properties><property name="slope" value="45_up_left"/></properties>
  </tile>
 </tileset>
 <layer id="1" name="tiles" width="4" height="3">
  <data encoding="csv">
0,0,0,0,
0,2,3,4,
1,1,1,1
</data>
 </layer>
 <objectgroup id="2" name="Spawn">
  <object id="1" x="8" y="0"/>
 </objectgroup>
 <objectgroup id="3" name="DeadZones">
  <object id="2" x="0" y="48" width="64" height="16"/>
 </objectgroup>
 <objectgroup id="4" name="Platforms">
  <object id="3" x="16" y="16">
   <properties>
    <property name="tiles" value="xx|^^"/>
    <property name="speed" type="float" value="2"/>
   </properties>
   <polyline points="0,0 32,0"/>
  </object>
 </objectgroup>
</map>
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"levels/ramps.yaml":  {Data: []byte(yamlLevel)},
		"levels/mirror.toml": {Data: []byte(tomlLevel)},
		"levels/tiled.tmx":   {Data: []byte(tmxLevel)},
		"levels/notes.txt":   {Data: []byte("ignored")},
		"bad/empty.yaml":     {Data: []byte("spawn: {x: 1, y: 1}\n")},
		"bad/broken.toml":    {Data: []byte("tiles = [")},
		"bad/level.json":     {Data: []byte("{}")},
	}
}

func TestLoadYAML(t *testing.T) {
	level, err := Load(testFS(), "levels/ramps.yaml")
	require.NoError(t, err)

	assert.Equal(t, "ramps", level.Name)
	assert.Equal(t, 8, level.Width())
	assert.Equal(t, Point{X: 1.5, Y: 1}, level.Spawn)
	assert.Equal(t, []Point{{X: 6, Y: 0}}, level.Crates)

	require.Len(t, level.Platforms, 1)
	p := level.Platforms[0]
	assert.Equal(t, []string{"xx"}, p.Tiles)
	assert.Equal(t, ModePingPong, p.Mode)
	assert.Equal(t, 2.0, p.Speed)
	assert.Len(t, p.Path, 2)

	require.Len(t, level.Zones, 1)
	assert.Equal(t, ZoneDef{Kind: ZoneCheckpoint, X: 3, Y: 0, W: 1, H: 2, ID: 1}, level.Zones[0])
}

func TestLoadTOML(t *testing.T) {
	level, err := Load(testFS(), "levels/mirror.toml")
	require.NoError(t, err)

	assert.Equal(t, "mirror", level.Name)
	assert.True(t, level.FlippedX)
	assert.Equal(t, []string{"x   x", "xxrRx"}, level.Tiles)
	require.Len(t, level.Platforms, 1)
	assert.Equal(t, ModeLoop, level.Platforms[0].Mode)
	assert.True(t, level.Platforms[0].Solid)
	assert.Equal(t, ZoneDeath, level.Zones[0].Kind)
}

func TestLoadTMX(t *testing.T) {
	level, err := Load(testFS(), "levels/tiled.tmx")
	require.NoError(t, err)

	assert.Equal(t, "tiled", level.Name)
	assert.Equal(t, []string{
		"    ",
		" /.x",
		"xxxx",
	}, level.Tiles)
	assert.Equal(t, Point{X: 0.5, Y: 0}, level.Spawn)

	require.Len(t, level.Zones, 1)
	z := level.Zones[0]
	assert.Equal(t, ZoneDeath, z.Kind)
	assert.InDelta(t, 3.0, z.Y, 1e-9)
	assert.InDelta(t, 4.0, z.W, 1e-9)

	require.Len(t, level.Platforms, 1)
	p := level.Platforms[0]
	assert.Equal(t, []string{"xx", "^^"}, p.Tiles)
	assert.Equal(t, []Point{{X: 1, Y: 1}, {X: 3, Y: 1}}, p.Path)
	assert.Equal(t, ModePingPong, p.Mode)
}

func TestLoadErrors(t *testing.T) {
	fsys := testFS()

	_, err := Load(fsys, "bad/empty.yaml")
	assert.ErrorIs(t, err, ErrNoTiles)

	_, err = Load(fsys, "bad/level.json")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(fsys, "bad/broken.toml")
	assert.Error(t, err)

	_, err = Load(fsys, "levels/missing.yaml")
	assert.Error(t, err)
}

func TestLoadAllLevels(t *testing.T) {
	levels, names, err := LoadAllLevels(testFS(), "levels")
	require.NoError(t, err)

	assert.Equal(t, []string{"mirror", "ramps", "tiled"}, names)
	assert.Len(t, levels, 3)

	_, _, err = LoadAllLevels(testFS(), "nothing")
	assert.Error(t, err)
}
