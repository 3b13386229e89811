package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restore puts the package defaults back after a test overlays a file.
func restore(t *testing.T) {
	t.Helper()
	c, p, ch, cam, sim, au, dbg := *C, Physics, Character, Camera, Sim, Audio, Debug
	t.Cleanup(func() {
		C = &c
		Physics, Character, Camera, Sim, Audio, Debug = p, ch, cam, sim, au, dbg
	})
}

func TestApplyYAMLKeepsMissingKeys(t *testing.T) {
	restore(t)
	walk := Character.WalkSpeed

	err := Apply([]byte(`
physics:
  gravity: 12.5
character:
  jump_speed: 9
window:
  width: 800
`), ".yaml")
	require.NoError(t, err)

	assert.Equal(t, 12.5, Physics.Gravity)
	assert.Equal(t, 9.0, Character.JumpSpeed)
	assert.Equal(t, walk, Character.WalkSpeed)
	assert.Equal(t, 800, C.Width)
	assert.Equal(t, 360, C.Height)
}

func TestApplyTOML(t *testing.T) {
	restore(t)

	err := Apply([]byte(`
[sim]
tick_rate = 30
level = "levels/flip.toml"

[debug]
draw_colliders = true
`), ".TOML")
	require.NoError(t, err)

	assert.Equal(t, 30, Sim.TickRate)
	assert.Equal(t, "levels/flip.toml", Sim.Level)
	assert.True(t, Debug.DrawColliders)
	assert.True(t, Physics.PreserveInertia)
}

func TestApplyErrors(t *testing.T) {
	restore(t)

	err := Apply([]byte("{}"), ".json")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	err = Apply([]byte("physics: [1, 2"), ".yml")
	assert.Error(t, err)

	err = Apply([]byte("[physics\ngravity = 1"), ".toml")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	restore(t)
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("camera:\n  tile_size: 24\n"), 0o644))

	require.NoError(t, Load(path))
	assert.Equal(t, 24.0, Camera.TileSize)

	err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
