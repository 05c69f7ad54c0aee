package wave

import (
	"fmt"
	"math"
)

// Kind selects an oscillator variant.
type Kind string

const (
	// KindLocal accumulates per-oscillator time from tick deltas.
	KindLocal Kind = "local"
	// KindAbsolute samples at the absolute time carried by each tick.
	KindAbsolute Kind = "absolute"
)

// Tick carries both views of one animation step. Absolute oscillators read
// Time, local ones read Delta.
type Tick struct {
	Time  float64
	Delta float64
}

// Oscillator is a one-dimensional bounded sine generator.
type Oscillator interface {
	SetCycle(wavelength, offset float64) error
	SetRange(min, max float64) error
	Reset(t0 float64)
	Sample(tick Tick) float64
}

// New returns an oscillator of the given kind with wavelength 1 and range [0, 1].
func New(kind Kind) (Oscillator, error) {
	switch kind {
	case KindLocal, "":
		return NewLocal(), nil
	case KindAbsolute:
		return NewSine(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Kinds lists the known oscillator kinds.
func Kinds() []Kind {
	return []Kind{KindLocal, KindAbsolute}
}

// SineWave is a scaled sine wave with configurable frequency, phase and range.
// It holds no time of its own.
type SineWave struct {
	wavelength, offset float64
	min, max           float64
}

func NewSine() *SineWave {
	return &SineWave{wavelength: 1, min: 0, max: 1}
}

// SetCycle sets the angular frequency and phase offset (radians).
func (w *SineWave) SetCycle(wavelength, offset float64) error {
	if !(wavelength > 0) || math.IsInf(wavelength, 0) {
		return fmt.Errorf("%w: got %v", ErrWavelength, wavelength)
	}
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		return fmt.Errorf("wave: phase offset must be finite, got %v", offset)
	}
	w.wavelength = wavelength
	w.offset = offset
	return nil
}

// SetRange sets the output bounds.
func (w *SineWave) SetRange(min, max float64) error {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) || min > max {
		return fmt.Errorf("%w: [%v, %v]", ErrRange, min, max)
	}
	w.min = min
	w.max = max
	return nil
}

func (w *SineWave) Cycle() (wavelength, offset float64) { return w.wavelength, w.offset }
func (w *SineWave) Range() (min, max float64)           { return w.min, w.max }

// Period is the time after which the wave repeats.
func (w *SineWave) Period() float64 {
	return 2 * math.Pi / w.wavelength
}

// ValueAt evaluates the wave at absolute time t. The result is always in [min, max].
func (w *SineWave) ValueAt(t float64) float64 {
	v := w.min + (w.max-w.min)*(math.Sin(t*w.wavelength+w.offset)+1)/2
	return math.Max(w.min, math.Min(w.max, v))
}

// Reset is a no-op; a SineWave has no clock.
func (w *SineWave) Reset(float64) {}

func (w *SineWave) Sample(tick Tick) float64 {
	return w.ValueAt(tick.Time)
}

// LocalWave is a SineWave that advances its own clock. The clock is kept in
// [0, Period) so repeated advances never lose precision.
type LocalWave struct {
	SineWave
	localTime float64
	// seed is the unwrapped time of the last Reset, kept until the first
	// Advance so a later SetCycle can rewrap it exactly.
	seed     float64
	advanced bool
}

func NewLocal() *LocalWave {
	return &LocalWave{SineWave: *NewSine()}
}

// SetCycle changes the cycle and rewraps the local clock to the new period.
// Before the first Advance the clock is rewrapped from the Reset time, so
// SetCycle and Reset may come in either order. Once the wave has advanced,
// only the wrapped time is known and a non-integer period ratio shifts the
// phase.
func (w *LocalWave) SetCycle(wavelength, offset float64) error {
	if err := w.SineWave.SetCycle(wavelength, offset); err != nil {
		return err
	}
	if w.advanced {
		w.localTime = w.wrap(w.localTime)
	} else {
		w.localTime = w.wrap(w.seed)
	}
	return nil
}

// Reset seeds the local clock at t0.
func (w *LocalWave) Reset(t0 float64) {
	w.seed = t0
	w.advanced = false
	w.localTime = w.wrap(t0)
}

// Time returns the wrapped local clock.
func (w *LocalWave) Time() float64 { return w.localTime }

// Advance moves the local clock by dt and returns the value at the new time.
func (w *LocalWave) Advance(dt float64) float64 {
	w.advanced = true
	w.localTime = w.wrap(w.localTime + dt)
	return w.ValueAt(w.localTime)
}

func (w *LocalWave) Sample(tick Tick) float64 {
	return w.Advance(tick.Delta)
}

func (w *LocalWave) wrap(t float64) float64 {
	p := w.Period()
	t = math.Mod(t, p)
	if t < 0 {
		t += p
	}
	// t+p can round up to exactly p for tiny negative t
	if t >= p {
		t = 0
	}
	return t
}
