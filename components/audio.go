package components

import "github.com/yohamta/donburi"

// SoundID names a synthesized sound effect.
type SoundID int

const (
	SoundLand SoundID = iota
	SoundJump
	SoundCheckpoint
	SoundDeath
	SoundFinish
)

// AudioData queues sound effects for the audio system (singleton component)
type AudioData struct {
	PendingSFX []SoundID
}

var Audio = donburi.NewComponentType[AudioData]()
