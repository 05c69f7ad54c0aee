// Package palette converts the unit hue/saturation/brightness triples that
// glyphs emit into display colors.
package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSB returns the color for hue in [0, 1) and saturation, brightness in [0, 1].
func HSB(hue, saturation, brightness float64) colorful.Color {
	h := math.Mod(hue, 1)
	if h < 0 {
		h++
	}
	return colorful.Hsv(h*360, clamp01(saturation), clamp01(brightness)).Clamped()
}

// Hex is HSB formatted as "#rrggbb".
func Hex(hue, saturation, brightness float64) string {
	return HSB(hue, saturation, brightness).Hex()
}

// Dim blends the color toward black by amount in [0, 1].
func Dim(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return c.BlendRgb(colorful.Color{}, clamp01(amount)).Clamped().Hex()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
