package metrics

import "github.com/san-kum/welcome/internal/scene"

// DefaultSlowMotionTolerance is the band above the floor, as a fraction of
// the regular speed, that still counts as slow motion.
const DefaultSlowMotionTolerance = 0.1

// SlowMotion is the fraction of ticks whose dt stays within tolerance of the
// pacing floor.
type SlowMotion struct {
	name      string
	pacing    scene.Pacing
	tolerance float64
	slow      int
	samples   int
}

// NewSlowMotion counts ticks with dt <= floor + tolerance*regular speed.
func NewSlowMotion(p scene.Pacing, tolerance float64) *SlowMotion {
	return &SlowMotion{
		name:      "slow_motion",
		pacing:    p,
		tolerance: tolerance,
	}
}

func (s *SlowMotion) Name() string { return s.name }

func (s *SlowMotion) Observe(sc *scene.Scene, f scene.Frame) {
	s.samples++
	if f.Dt <= s.pacing.Floor()+s.tolerance*s.pacing.RegularSpeed {
		s.slow++
	}
}

func (s *SlowMotion) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.slow) / float64(s.samples)
}

func (s *SlowMotion) Reset() {
	s.slow = 0
	s.samples = 0
}
