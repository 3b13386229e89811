package components

import "github.com/yohamta/donburi"

// SettingsData is the player-facing settings, persisted between runs.
type SettingsData struct {
	Debug      bool
	Muted      bool
	SFXVolume  float64
	Fullscreen bool
	LastLevel  string
}

var Settings = donburi.NewComponentType[SettingsData]()
