package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/platforming/shared/actors"
)

func TestParseScript(t *testing.T) {
	sc, err := parseScript("30:right, 10:right+jump,5:idle,2:left+right")
	require.NoError(t, err)
	assert.Equal(t, 47, sc.Len())

	in, ok := sc.At(0)
	assert.True(t, ok)
	assert.Equal(t, actors.Intent{Move: 1}, in)

	in, _ = sc.At(35)
	assert.Equal(t, actors.Intent{Move: 1, Jump: true}, in)

	in, _ = sc.At(42)
	assert.Equal(t, actors.Intent{}, in)

	in, _ = sc.At(46)
	assert.Equal(t, actors.Intent{}, in)

	_, ok = sc.At(47)
	assert.False(t, ok)
}

func TestParseScriptEmpty(t *testing.T) {
	sc, err := parseScript("  ")
	require.NoError(t, err)
	assert.Zero(t, sc.Len())
	_, ok := sc.At(0)
	assert.False(t, ok)
}

func TestParseScriptErrors(t *testing.T) {
	for _, s := range []string{"right", "0:right", "x:jump", "3:fly"} {
		_, err := parseScript(s)
		assert.ErrorIs(t, err, errBadScript, s)
	}
}

func TestGameLoopRunsUntilTickStops(t *testing.T) {
	n := 0
	NewGameLoop(func() bool {
		n++
		return n < 5
	}, 0).Run()
	assert.Equal(t, 5, n)
}

func TestGameLoopStop(t *testing.T) {
	var loop *GameLoop
	n := 0
	loop = NewGameLoop(func() bool {
		n++
		if n == 3 {
			loop.Stop()
		}
		return true
	}, 0)
	loop.Run()
	assert.Equal(t, 3, n)
}
