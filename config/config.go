// Package config holds the tuning values shared by every frontend. It must
// stay free of ebiten and other graphics imports so the headless runner can
// use it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// PhysicsConfig contains world physics values. Distances are in tiles and
// times in seconds.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity" toml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed" toml:"max_fall_speed"`

	// MaxStickToGround is the step down a walking character follows without
	// leaving the ground.
	MaxStickToGround float64 `yaml:"max_stick_to_ground" toml:"max_stick_to_ground"`
	// PreserveInertia makes bodies keep the velocity of platforms they
	// leave.
	PreserveInertia bool `yaml:"preserve_inertia" toml:"preserve_inertia"`
}

// CharacterConfig contains player movement values.
type CharacterConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`

	WalkSpeed    float64 `yaml:"walk_speed" toml:"walk_speed"`
	Acceleration float64 `yaml:"acceleration" toml:"acceleration"`
	Friction     float64 `yaml:"friction" toml:"friction"`
	AirControl   float64 `yaml:"air_control" toml:"air_control"` // fraction of ground acceleration

	JumpSpeed float64 `yaml:"jump_speed" toml:"jump_speed"`
	// JumpCut scales the upward speed when jump is released early.
	JumpCut    float64 `yaml:"jump_cut" toml:"jump_cut"`
	CoyoteTime float64 `yaml:"coyote_time" toml:"coyote_time"`

	CrateSize float64 `yaml:"crate_size" toml:"crate_size"`
}

// CameraConfig contains camera behavior configuration
type CameraConfig struct {
	TileSize           float64 `yaml:"tile_size" toml:"tile_size"`               // pixels per tile
	FollowSmoothing    float64 `yaml:"follow_smoothing" toml:"follow_smoothing"` // 0.0-1.0
	LookAheadDistanceX float64 `yaml:"look_ahead" toml:"look_ahead"`             // tiles
	LookAheadSmoothing float64 `yaml:"look_ahead_smoothing" toml:"look_ahead_smoothing"`
}

// SimConfig contains fixed-step simulation settings.
type SimConfig struct {
	TickRate int    `yaml:"tick_rate" toml:"tick_rate"`
	Level    string `yaml:"level" toml:"level"`
}

// AudioConfig contains sound effect settings for the windowed frontend.
type AudioConfig struct {
	SampleRate int     `yaml:"sample_rate" toml:"sample_rate"`
	SFXVolume  float64 `yaml:"sfx_volume" toml:"sfx_volume"` // 0.0-1.0
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	DrawColliders bool `yaml:"draw_colliders" toml:"draw_colliders"`
	Asserts       bool `yaml:"asserts" toml:"asserts"`
}

// Config holds general window configuration
type Config struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

// ErrUnknownFormat is returned for tuning files that are neither YAML nor
// TOML.
var ErrUnknownFormat = errors.New("unknown config format")

// Global configuration instances
var C *Config
var Physics PhysicsConfig
var Character CharacterConfig
var Camera CameraConfig
var Sim SimConfig
var Audio AudioConfig
var Debug DebugConfig

// Direction constants for facing
const (
	DirectionLeft  = -1.0
	DirectionRight = 1.0
)

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
	}

	Physics = PhysicsConfig{
		Gravity:          40.0,
		MaxFallSpeed:     20.0,
		MaxStickToGround: 0.1,
		PreserveInertia:  true,
	}

	Character = CharacterConfig{
		Width:        0.6,
		Height:       0.9,
		WalkSpeed:    6.0,
		Acceleration: 40.0,
		Friction:     30.0,
		AirControl:   0.6,
		JumpSpeed:    15.0, // ~2.8 tiles high at default gravity
		JumpCut:      0.5,
		CoyoteTime:   0.1,
		CrateSize:    0.8,
	}

	Camera = CameraConfig{
		TileSize:           16,
		FollowSmoothing:    0.1,
		LookAheadDistanceX: 2.0,
		LookAheadSmoothing: 0.05,
	}

	Sim = SimConfig{
		TickRate: 60,
		Level:    "levels/ramps.yaml",
	}

	Audio = AudioConfig{
		SampleRate: 44100,
		SFXVolume:  0.5,
	}

	Debug = DebugConfig{}
}

// overlay is the layout of a tuning file. Sections left out keep their
// current values.
type overlay struct {
	Window    *Config          `yaml:"window" toml:"window"`
	Physics   *PhysicsConfig   `yaml:"physics" toml:"physics"`
	Character *CharacterConfig `yaml:"character" toml:"character"`
	Camera    *CameraConfig    `yaml:"camera" toml:"camera"`
	Sim       *SimConfig       `yaml:"sim" toml:"sim"`
	Audio     *AudioConfig     `yaml:"audio" toml:"audio"`
	Debug     *DebugConfig     `yaml:"debug" toml:"debug"`
}

// Load overlays a YAML (.yaml, .yml) or TOML (.toml) tuning file onto the
// current configuration. Keys missing from the file keep their values.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return Apply(data, filepath.Ext(path))
}

// Apply is Load for in-memory data; ext selects the format.
func Apply(data []byte, ext string) error {
	window := *C
	o := overlay{
		Window:    &window,
		Physics:   &Physics,
		Character: &Character,
		Camera:    &Camera,
		Sim:       &Sim,
		Audio:     &Audio,
		Debug:     &Debug,
	}

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &o); err != nil {
			return fmt.Errorf("parse yaml config: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &o); err != nil {
			return fmt.Errorf("parse toml config: %w", err)
		}
	default:
		return fmt.Errorf("config format %q: %w", ext, ErrUnknownFormat)
	}

	C = &window
	return nil
}
