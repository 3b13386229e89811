package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/platforming/config"
	"github.com/automoto/platforming/shared/leveldata"
	"github.com/automoto/platforming/shared/platforming"
)

const frame = 1.0 / 60

func createTestFile() *leveldata.LevelFile {
	return &leveldata.LevelFile{
		Name: "test",
		Tiles: []string{
			"            ",
			"            ",
			"            ",
			"xxxx    xxxx",
		},
		Spawn:  leveldata.Point{X: 1, Y: 3},
		Crates: []leveldata.Point{{X: 10, Y: 1}},
		Platforms: []leveldata.PlatformDef{
			{Tiles: []string{"xx"}, Path: []leveldata.Point{{X: 5, Y: 6}}, Mode: leveldata.ModePingPong},
		},
		Zones: []leveldata.ZoneDef{
			{Kind: leveldata.ZoneDeath, X: 4, Y: 4, W: 4, H: 1},
			{Kind: leveldata.ZoneCheckpoint, X: 2, Y: 1, W: 1, H: 2, ID: 3},
			{Kind: leveldata.ZoneFinish, X: 10, Y: 0, W: 2, H: 3},
		},
	}
}

func stepN(s *Stage, n int) []Event {
	var all []Event
	for iter := 0; iter < n; iter++ {
		all = append(all, s.Step(frame)...)
	}
	return all
}

func TestBuild(t *testing.T) {
	s, err := Build(createTestFile())
	require.NoError(t, err)

	assert.Equal(t, "test", s.Name)
	assert.Len(t, s.Crates, 1)
	assert.Len(t, s.Platforms, 1)
	assert.Len(t, s.Zones.Zones(), 3)
	assert.Len(t, s.Bodies(), 4)
	assert.Equal(t, -1, s.Checkpoint)

	assert.Len(t, s.Level.Group(GroupPlayers), 1)
	assert.Len(t, s.Level.Group(GroupTerrain), 1)
	assert.Len(t, s.Level.Group(GroupCrates), 1)
	assert.Len(t, s.Level.Group(GroupPlatforms), 1)

	// Tile grids resolve before bodies.
	first := s.Bodies()[0]
	_, isGrid := first.(platforming.TileCollider)
	assert.True(t, isGrid)

	_, err = Build(&leveldata.LevelFile{Name: "empty"})
	assert.ErrorIs(t, err, leveldata.ErrNoTiles)
}

func TestPlayerSettlesAtSpawn(t *testing.T) {
	s, err := Build(createTestFile())
	require.NoError(t, err)

	stepN(s, 10)
	snap := s.Snapshot()
	assert.True(t, snap.OnGround)
	assert.InDelta(t, 1.0, snap.X, 1e-9)
	assert.InDelta(t, 3.0, snap.Y, 1e-4)
	assert.Equal(t, 10, snap.Frame)
	assert.Contains(t, snap.String(), "ground")
}

func TestCheckpointAndDeath(t *testing.T) {
	s, err := Build(createTestFile())
	require.NoError(t, err)
	stepN(s, 5)

	// Walk right through the checkpoint and into the pit.
	s.Player.Intent.Move = 1
	var events []Event
	for iter := 0; iter < 240; iter++ {
		events = append(events, s.Step(frame)...)
		if s.Deaths > 0 {
			break
		}
	}
	require.Equal(t, 1, s.Deaths)
	require.Len(t, events, 2)
	assert.Equal(t, leveldata.ZoneCheckpoint, events[0].Kind)
	assert.Equal(t, 3, events[0].ID)
	assert.Equal(t, leveldata.ZoneDeath, events[1].Kind)

	assert.Equal(t, 3, s.Checkpoint)
	assert.InDelta(t, 2.5, s.Player.X, 1e-9)
	assert.InDelta(t, 3.0, s.Player.Y, 1e-9)
	assert.Equal(t, 0.0, s.Player.Dx)
}

func TestFallingOutRespawns(t *testing.T) {
	file := createTestFile()
	file.Zones = nil
	file.Platforms = nil
	s, err := Build(file)
	require.NoError(t, err)

	s.Player.Respawn(6, 0)
	events := stepN(s, 180)
	require.NotEmpty(t, events)
	assert.Equal(t, Event{Frame: events[0].Frame, Kind: leveldata.ZoneDeath, ID: -1}, events[0])
	assert.GreaterOrEqual(t, s.Deaths, 1)
}

func TestFinish(t *testing.T) {
	s, err := Build(createTestFile())
	require.NoError(t, err)

	s.Player.Respawn(11.5, 3)
	events := stepN(s, 3)
	assert.True(t, s.Finished)
	require.Len(t, events, 1)
	assert.Equal(t, leveldata.ZoneFinish, events[0].Kind)
	assert.Equal(t, "frame 1: finish 0", events[0].String())

	assert.Empty(t, stepN(s, 3))
}

func TestFlippedLevelMirrorsPlacement(t *testing.T) {
	file := createTestFile()
	file.FlippedX = true
	s, err := BuildWith(file, config.Character, config.Physics)
	require.NoError(t, err)

	assert.InDelta(t, 11.0, s.Spawn.X, 1e-9)
	assert.InDelta(t, 12-10-config.Character.CrateSize, s.Crates[0].X, 1e-9)
	assert.InDelta(t, 5.0, s.Platforms[0].X, 1e-9)

	cp := s.Zones.Zones()[1]
	assert.InDelta(t, 9.0, cp.Rect.Left, 1e-9)
	assert.InDelta(t, 10.0, cp.Rect.Right, 1e-9)
}
