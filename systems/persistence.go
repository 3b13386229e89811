package systems

import (
	"encoding/json"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/platforming/components"
	cfg "github.com/automoto/platforming/config"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	SFXVolume  float64 `json:"sfxVolume"`
	Muted      bool    `json:"muted"`
	Fullscreen bool    `json:"fullscreen"`
	Debug      bool    `json:"debug"`
	LastLevel  string  `json:"lastLevel"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// loadedSettings is what InitPersistence found on disk, applied when the
// first scene creates its settings entity.
var loadedSettings *SavedSettings

// InitPersistence initializes the gdata manager for settings storage and
// reads any saved settings.
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "platforming",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true

	loadedSettings, _ = LoadSettings()
	if loadedSettings != nil {
		ebiten.SetFullscreen(loadedSettings.Fullscreen)
	}
	return nil
}

// LoadSettings loads settings from disk. It returns nil with no error when
// nothing has been saved yet.
func LoadSettings() (*SavedSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("settings")
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if data == nil {
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}
	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem("settings", data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}

// SaveCurrentSettings saves the settings component.
func SaveCurrentSettings(s *components.SettingsData) {
	_ = SaveSettings(&SavedSettings{
		SFXVolume:  s.SFXVolume,
		Muted:      s.Muted,
		Fullscreen: s.Fullscreen,
		Debug:      s.Debug,
		LastLevel:  s.LastLevel,
	})
}

// GetOrCreateSettings returns the settings singleton, seeding it from disk
// or the config defaults.
func GetOrCreateSettings(e *ecs.ECS) *components.SettingsData {
	entry, ok := components.Settings.First(e.World)
	if ok {
		return components.Settings.Get(entry)
	}

	entry = e.World.Entry(e.World.Create(components.Settings))
	settings := components.Settings.Get(entry)
	settings.SFXVolume = cfg.Audio.SFXVolume
	settings.Debug = cfg.Debug.DrawColliders
	if saved := loadedSettings; saved != nil {
		settings.SFXVolume = saved.SFXVolume
		settings.Muted = saved.Muted
		settings.Fullscreen = saved.Fullscreen
		settings.Debug = saved.Debug || settings.Debug
		settings.LastLevel = saved.LastLevel
	}
	return settings
}

// UpdateSettings handles the debug, mute and fullscreen toggles.
func UpdateSettings(e *ecs.ECS) {
	input := getOrCreateInput(e)
	settings := GetOrCreateSettings(e)

	changed := false
	if input.JustPressed(components.ActionToggleDebug) {
		settings.Debug = !settings.Debug
		changed = true
	}
	if input.JustPressed(components.ActionToggleMute) {
		settings.Muted = !settings.Muted
		changed = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		settings.Fullscreen = !settings.Fullscreen
		ebiten.SetFullscreen(settings.Fullscreen)
		changed = true
	}
	if changed {
		SaveCurrentSettings(settings)
	}
}
