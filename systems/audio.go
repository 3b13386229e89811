package systems

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/platforming/components"
	cfg "github.com/automoto/platforming/config"
)

// tone describes a short synthesized effect: a sine sweep with a linear
// fade out.
type tone struct {
	from, to float64 // Hz
	seconds  float64
	gain     float64
}

var tones = map[components.SoundID]tone{
	components.SoundJump:       {from: 440, to: 880, seconds: 0.08, gain: 0.6},
	components.SoundLand:       {from: 160, to: 90, seconds: 0.05, gain: 0.8},
	components.SoundCheckpoint: {from: 660, to: 990, seconds: 0.2, gain: 0.7},
	components.SoundDeath:      {from: 300, to: 60, seconds: 0.35, gain: 0.9},
	components.SoundFinish:     {from: 520, to: 1560, seconds: 0.5, gain: 0.7},
}

// Global audio state - created once and shared across all scenes
var (
	globalAudioContext *audio.Context
	globalSFX          map[components.SoundID][]byte
	audioInitOnce      sync.Once
)

func initGlobalAudio() {
	audioInitOnce.Do(func() {
		globalAudioContext = audio.NewContext(cfg.Audio.SampleRate)
		globalSFX = make(map[components.SoundID][]byte, len(tones))
		for id, t := range tones {
			globalSFX[id] = synthesize(t, cfg.Audio.SampleRate)
		}
	})
}

// synthesize renders t as 16-bit little-endian stereo PCM.
func synthesize(t tone, sampleRate int) []byte {
	n := int(t.seconds * float64(sampleRate))
	buf := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		freq := t.from + (t.to-t.from)*p
		phase += 2 * math.Pi * freq / float64(sampleRate)
		v := int16(math.Sin(phase) * t.gain * (1 - p) * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}

// QueueSFX schedules a sound for the next UpdateAudio.
func QueueSFX(e *ecs.ECS, id components.SoundID) {
	entry, ok := components.Audio.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Audio))
	}
	data := components.Audio.Get(entry)
	data.PendingSFX = append(data.PendingSFX, id)
}

// UpdateAudio plays the queued sound effects.
func UpdateAudio(e *ecs.ECS) {
	initGlobalAudio()

	entry, ok := components.Audio.First(e.World)
	if !ok {
		return
	}
	audioData := components.Audio.Get(entry)
	settings := GetOrCreateSettings(e)
	for _, id := range audioData.PendingSFX {
		if !settings.Muted {
			playSFX(id, settings.SFXVolume)
		}
	}
	audioData.PendingSFX = audioData.PendingSFX[:0]
}

func playSFX(id components.SoundID, volume float64) {
	if volume <= 0 {
		return
	}
	pcm, ok := globalSFX[id]
	if !ok {
		return
	}
	player := globalAudioContext.NewPlayerFromBytes(pcm)
	player.SetVolume(volume)
	player.Play()
}
