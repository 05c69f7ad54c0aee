package config

import (
	"sort"

	"github.com/san-kum/welcome/internal/scene"
)

var Presets = map[string]*Config{
	// delta-time clocks with sparkling color
	"sparkle": {Clock: "local", Hue: "sparkle"},
	// one absolute clock, color drifting with time
	"classic": {Clock: "absolute", Hue: "drift"},
	"calm": {
		Clock: "local", Hue: "sparkle", ColorSpeed: 0.000005, PhaseSpread: 0.2,
		Pacing: scene.Pacing{Tightness: 2, Curve: 3, RegularSpeed: 0.012, SlowMoSpeed: 0.003},
	},
	"frantic": {
		Clock: "local", Hue: "sparkle", ColorSpeed: 0.00006, PhaseSpread: 1.5,
		Pacing: scene.Pacing{Tightness: 4, Curve: 6, RegularSpeed: 0.06, SlowMoSpeed: 0.008},
	},
}

// GetPreset returns the named preset applied on top of the defaults, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Apply(p)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
