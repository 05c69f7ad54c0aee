package scene

import (
	"fmt"
	"math"
)

const (
	DefaultTightness    = 3.0
	DefaultCurve        = 5.0
	DefaultRegularSpeed = 0.025
	DefaultSlowMoSpeed  = 0.005
)

// Pacing maps vertical spread to a time increment:
//
//	dt = (1 - 1/((Tightness*spread)^Curve + 1)) * RegularSpeed + SlowMoSpeed
//
// dt equals SlowMoSpeed at zero spread and approaches
// SlowMoSpeed+RegularSpeed as the spread grows.
type Pacing struct {
	Tightness    float64 `yaml:"tightness" json:"tightness"`
	Curve        float64 `yaml:"curve" json:"curve"`
	RegularSpeed float64 `yaml:"regular_speed" json:"regular_speed"`
	SlowMoSpeed  float64 `yaml:"slow_mo_speed" json:"slow_mo_speed"`
}

func DefaultPacing() Pacing {
	return Pacing{
		Tightness:    DefaultTightness,
		Curve:        DefaultCurve,
		RegularSpeed: DefaultRegularSpeed,
		SlowMoSpeed:  DefaultSlowMoSpeed,
	}
}

// Step returns the time increment for the given spread ratio.
func (p Pacing) Step(spread float64) float64 {
	if !(spread > 0) {
		return p.SlowMoSpeed
	}
	ease := 1 - 1/(math.Pow(p.Tightness*spread, p.Curve)+1)
	return ease*p.RegularSpeed + p.SlowMoSpeed
}

// Floor is the slowest possible increment.
func (p Pacing) Floor() float64 { return p.SlowMoSpeed }

// Ceiling is the supremum of Step.
func (p Pacing) Ceiling() float64 { return p.SlowMoSpeed + p.RegularSpeed }

func (p Pacing) Validate() error {
	switch {
	case !(p.Tightness > 0):
		return fmt.Errorf("%w: tightness must be positive, got %v", ErrConfig, p.Tightness)
	case !(p.Curve > 0):
		return fmt.Errorf("%w: curve must be positive, got %v", ErrConfig, p.Curve)
	case p.RegularSpeed < 0 || math.IsInf(p.RegularSpeed, 0) || math.IsNaN(p.RegularSpeed):
		return fmt.Errorf("%w: regular speed must be finite and non-negative, got %v", ErrConfig, p.RegularSpeed)
	case !(p.SlowMoSpeed > 0) || math.IsInf(p.SlowMoSpeed, 0):
		return fmt.Errorf("%w: slow-motion speed must be positive, got %v", ErrConfig, p.SlowMoSpeed)
	}
	return nil
}
