package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/platforming/shared/leveldata"
	"github.com/automoto/platforming/shared/platforming"
	"github.com/automoto/platforming/shared/stage"
)

func TestGlyph(t *testing.T) {
	tests := map[byte]rune{
		'x': '█',
		'^': '▔',
		'/': '◢',
		'.': '◣',
		' ': 0,
	}
	for code, want := range tests {
		assert.Equal(t, want, glyph(platforming.TileFromCode(code, 0, 0)), "code %q", code)
	}
	// Half ramps use block heights.
	assert.Equal(t, '▂', glyph(platforming.TileFromCode('r', 0, 0)))
	assert.Equal(t, '▆', glyph(platforming.TileFromCode('R', 0, 0)))
}

func newTestScreen(t *testing.T, w, h int) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func TestDrawCentresPlayer(t *testing.T) {
	s, err := stage.Build(&leveldata.LevelFile{
		Name: "test",
		Tiles: []string{
			"          ",
			"          ",
			"xxxxxxxxxx",
		},
		Spawn: leveldata.Point{X: 5, Y: 2},
	})
	require.NoError(t, err)

	screen := newTestScreen(t, 21, 8)
	draw(screen, s)

	// Seven world rows are visible, starting one row above the level.
	r, _, _, _ := screen.GetContent(10, 2)
	assert.Equal(t, '@', r)
	r, _, _, _ = screen.GetContent(10, 3)
	assert.Equal(t, '█', r)

	var hud strings.Builder
	for x := 0; x < 21; x++ {
		r, _, _, _ := screen.GetContent(x, 7)
		hud.WriteRune(r)
	}
	assert.Contains(t, hud.String(), "x=")
}

func TestHeldWindow(t *testing.T) {
	v := &viewer{}
	v.lastPress[actionLeft] = 0
	v.frame = holdFrames - 1
	assert.True(t, v.held(actionLeft))
	v.frame = holdFrames
	assert.False(t, v.held(actionLeft))
}
