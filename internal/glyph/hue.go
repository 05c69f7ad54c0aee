package glyph

import (
	"fmt"
	"math"

	"github.com/san-kum/welcome/internal/wave"
)

const (
	// DefaultDriftPeriod is the clock time for one full hue revolution under Drift.
	DefaultDriftPeriod = 20.0
	// DefaultColorSpeed scales the Sparkle hue increment.
	DefaultColorSpeed = 0.00002
	// DefaultSparkleExponent is applied to dt; negative so slow motion sparkles faster.
	DefaultSparkleExponent = -1.6
)

// HueRule computes the next hue of a glyph.
type HueRule interface {
	Name() string
	Next(hue, offset float64, tick wave.Tick) float64
}

// Drift ties the hue to the absolute clock: hue = (offset + t/Period) mod 1.
type Drift struct {
	Period float64
}

func (Drift) Name() string { return "drift" }

func (d Drift) Next(_, offset float64, tick wave.Tick) float64 {
	p := d.Period
	if p == 0 {
		p = DefaultDriftPeriod
	}
	return Wrap(offset + tick.Time/p)
}

// Sparkle advances the hue by dt^Exponent * Speed, so color changes quickly
// while the scene is in slow motion. A non-positive dt leaves the hue as is.
type Sparkle struct {
	Speed    float64
	Exponent float64
}

func (Sparkle) Name() string { return "sparkle" }

func (s Sparkle) Next(hue, _ float64, tick wave.Tick) float64 {
	if !(tick.Delta > 0) {
		return Wrap(hue)
	}
	return Wrap(hue + math.Pow(tick.Delta, s.Exponent)*s.Speed)
}

// NewHueRule returns the named rule with default constants. colorSpeed
// overrides the Sparkle speed when positive.
func NewHueRule(name string, colorSpeed float64) (HueRule, error) {
	switch name {
	case "sparkle", "":
		if colorSpeed <= 0 {
			colorSpeed = DefaultColorSpeed
		}
		return Sparkle{Speed: colorSpeed, Exponent: DefaultSparkleExponent}, nil
	case "drift":
		return Drift{Period: DefaultDriftPeriod}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHueRule, name)
	}
}

// HueRules lists the known rule names.
func HueRules() []string {
	return []string{"sparkle", "drift"}
}

// Wrap maps h into [0, 1).
func Wrap(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	if h >= 1 {
		h = 0
	}
	return h
}
