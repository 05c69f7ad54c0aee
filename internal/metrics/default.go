package metrics

import (
	"github.com/san-kum/welcome/internal/scene"
	"github.com/san-kum/welcome/internal/sim"
)

// Default returns a fresh set of the standard run metrics.
func Default(p scene.Pacing) []sim.Metric {
	return []sim.Metric{
		NewMeanSpread(),
		NewSlowMotion(p, DefaultSlowMotionTolerance),
		NewBounds(),
	}
}
