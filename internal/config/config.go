package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/welcome/internal/scene"
	"github.com/san-kum/welcome/internal/wave"
)

const (
	DefaultMessage = "macalester"
	DefaultFPS     = 60
	DefaultTicks   = 1000
)

type Config struct {
	Message     string       `yaml:"message"`
	Width       float64      `yaml:"width"`
	Height      float64      `yaml:"height"`
	Margin      float64      `yaml:"margin"`
	PhaseSpread float64      `yaml:"phase_spread"`
	StartTime   float64      `yaml:"start_time"`
	Clock       string       `yaml:"clock"`
	Hue         string       `yaml:"hue"`
	ColorSpeed  float64      `yaml:"color_speed"`
	Seed        int64        `yaml:"seed"`
	FPS         int          `yaml:"fps"`
	Ticks       int          `yaml:"ticks"`
	Pacing      scene.Pacing `yaml:"pacing"`
}

func DefaultConfig() *Config {
	sc := scene.DefaultConfig()
	return &Config{
		Message:     DefaultMessage,
		Width:       sc.Width,
		Height:      sc.Height,
		Margin:      sc.Margin,
		PhaseSpread: sc.PhaseSpread,
		StartTime:   sc.StartTime,
		Clock:       string(sc.Clock),
		Hue:         sc.Hue,
		ColorSpeed:  sc.ColorSpeed,
		FPS:         DefaultFPS,
		Ticks:       DefaultTicks,
		Pacing:      sc.Pacing,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto decodes path over cfg. Keys the file does not set keep their
// current value, so a file can be layered on top of a preset.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SceneConfig converts to a validated scene configuration.
func (c *Config) SceneConfig() (scene.Config, error) {
	sc := scene.Config{
		Width:       c.Width,
		Height:      c.Height,
		Margin:      c.Margin,
		PhaseSpread: c.PhaseSpread,
		StartTime:   c.StartTime,
		Clock:       wave.Kind(c.Clock),
		Hue:         c.Hue,
		ColorSpeed:  c.ColorSpeed,
		Pacing:      c.Pacing,
	}
	if err := sc.Validate(); err != nil {
		return scene.Config{}, err
	}
	return sc, nil
}

// Apply copies every non-zero field of other onto c.
func (c *Config) Apply(other *Config) {
	if other == nil {
		return
	}
	if other.Message != "" {
		c.Message = other.Message
	}
	if other.Width != 0 {
		c.Width = other.Width
	}
	if other.Height != 0 {
		c.Height = other.Height
	}
	if other.Margin != 0 {
		c.Margin = other.Margin
	}
	if other.PhaseSpread != 0 {
		c.PhaseSpread = other.PhaseSpread
	}
	if other.StartTime != 0 {
		c.StartTime = other.StartTime
	}
	if other.Clock != "" {
		c.Clock = other.Clock
	}
	if other.Hue != "" {
		c.Hue = other.Hue
	}
	if other.ColorSpeed != 0 {
		c.ColorSpeed = other.ColorSpeed
	}
	if other.Seed != 0 {
		c.Seed = other.Seed
	}
	if other.FPS != 0 {
		c.FPS = other.FPS
	}
	if other.Ticks != 0 {
		c.Ticks = other.Ticks
	}
	if other.Pacing.Tightness != 0 {
		c.Pacing.Tightness = other.Pacing.Tightness
	}
	if other.Pacing.Curve != 0 {
		c.Pacing.Curve = other.Pacing.Curve
	}
	if other.Pacing.RegularSpeed != 0 {
		c.Pacing.RegularSpeed = other.Pacing.RegularSpeed
	}
	if other.Pacing.SlowMoSpeed != 0 {
		c.Pacing.SlowMoSpeed = other.Pacing.SlowMoSpeed
	}
}
