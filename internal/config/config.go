// Package config loads the scene configuration from YAML.
// Defaults are embedded in the binary; a config file only needs the keys it
// overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/runebound/internal/core/geom"
	"chosenoffset.com/runebound/internal/simulation"
	"chosenoffset.com/runebound/internal/stats"
)

//go:embed default.yaml
var defaultYAML []byte

// MaxSlots is the largest inventory that digit keys can address.
const MaxSlots = 9

// Config holds everything needed to build a scene
type Config struct {
	Scene     SceneConfig     `yaml:"scene"`
	Player    PlayerConfig    `yaml:"player"`
	Inventory InventoryConfig `yaml:"inventory"`
	Loop      LoopConfig      `yaml:"loop"`
	Layout    LayoutConfig    `yaml:"layout"`
	Stats     stats.Stats     `yaml:"stats"`
	Audio     AudioConfig     `yaml:"audio"`
}

// SceneConfig is the playfield. Its size is fixed for the run.
type SceneConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// PlayerConfig describes the player square
type PlayerConfig struct {
	Size    int    `yaml:"size"`
	Speed   int    `yaml:"speed"`   // Pixels per tick
	Color   string `yaml:"color"`   // Fill, "#RRGGBB"
	Outline string `yaml:"outline"` // Border, "#RRGGBB"
}

// InventoryConfig sizes the inventory sidebar
type InventoryConfig struct {
	Slots    int `yaml:"slots"`
	SlotSize int `yaml:"slot_size"`
	SlotPad  int `yaml:"slot_pad"`
}

// LoopConfig controls tick scheduling
type LoopConfig struct {
	Tick        time.Duration `yaml:"tick"`
	HoldDelay   time.Duration `yaml:"hold_delay"`   // Until the first key repeat
	HoldTimeout time.Duration `yaml:"hold_timeout"` // Between key repeats
}

// LayoutConfig positions the panels around the canvas
type LayoutConfig struct {
	SidebarWidth     int `yaml:"sidebar_width"`
	SidebarPad       int `yaml:"sidebar_pad"`
	ControlBoxHeight int `yaml:"control_box_height"`
	Outline          int `yaml:"outline"`
	Margin           int `yaml:"margin"`
}

// AudioConfig controls the slot-change click
type AudioConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Frequency float64       `yaml:"frequency"`
	Duration  time.Duration `yaml:"duration"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Parse(nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Parse decodes data over the embedded defaults. Nil or empty data yields
// the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultYAML, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse default config: %w", err)
	}
	// A stats mapping in data replaces the default stats wholesale.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the config at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Scene.Width <= 0 || c.Scene.Height <= 0 {
		errs = append(errs, fmt.Errorf("scene size must be positive, got %dx%d", c.Scene.Width, c.Scene.Height))
	}
	if err := c.Rules().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Inventory.Slots < 1 || c.Inventory.Slots > MaxSlots {
		errs = append(errs, fmt.Errorf("inventory slots must be in [1, %d], got %d", MaxSlots, c.Inventory.Slots))
	}
	if c.Inventory.SlotSize <= 0 || c.Inventory.SlotPad < 0 {
		errs = append(errs, fmt.Errorf("invalid slot geometry size=%d pad=%d", c.Inventory.SlotSize, c.Inventory.SlotPad))
	}
	if c.Loop.Tick <= 0 {
		errs = append(errs, fmt.Errorf("tick interval must be positive, got %s", c.Loop.Tick))
	}
	if c.Loop.HoldDelay < 0 {
		errs = append(errs, fmt.Errorf("hold delay must not be negative, got %s", c.Loop.HoldDelay))
	}
	if c.Loop.HoldTimeout < 0 {
		errs = append(errs, fmt.Errorf("hold timeout must not be negative, got %s", c.Loop.HoldTimeout))
	}
	if c.Layout.SidebarWidth <= 0 || c.Layout.Outline < 0 || c.Layout.Margin < 0 {
		errs = append(errs, fmt.Errorf("invalid layout %+v", c.Layout))
	}
	if c.Audio.Enabled && (c.Audio.Frequency <= 0 || c.Audio.Duration <= 0) {
		errs = append(errs, fmt.Errorf("audio frequency and duration must be positive when enabled"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Rules returns the movement constants for the simulation.
func (c *Config) Rules() simulation.Rules {
	return simulation.Rules{
		Speed:      c.Player.Speed,
		Bounds:     geom.Size{W: c.Scene.Width, H: c.Scene.Height},
		PlayerSize: c.Player.Size,
	}
}
