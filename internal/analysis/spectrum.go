package analysis

import (
	"math"

	"github.com/san-kum/welcome/internal/sim"
)

// Spectrum is a resampled power spectrum. Bin k sits at k/Span cycles per
// unit of scene time.
type Spectrum struct {
	Power []float64
	Span  float64
}

// NewSpectrum resamples a trace, removes its mean and transforms it.
func NewSpectrum(times, values []float64) (*Spectrum, error) {
	n := NextPow2(len(times))
	if n < 4 {
		return nil, ErrTooShort
	}
	uniform, err := Resample(times, values, n)
	if err != nil {
		return nil, err
	}

	mean := 0.0
	for _, v := range uniform {
		mean += v
	}
	mean /= float64(n)
	for i := range uniform {
		uniform[i] -= mean
	}

	return &Spectrum{Power: PowerSpectrum(uniform), Span: times[len(times)-1] - times[0]}, nil
}

// Peak returns the frequency of the strongest non-constant bin.
func (s *Spectrum) Peak() float64 {
	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(s.Power); i++ {
		if s.Power[i] > maxPower {
			maxPower = s.Power[i]
			maxIdx = i
		}
	}
	return float64(maxIdx) / s.Span
}

// Resolution is the spacing between bins.
func (s *Spectrum) Resolution() float64 { return 1 / s.Span }

// DominantFrequency returns the strongest oscillation of an unevenly
// sampled signal, in cycles per unit of time.
func DominantFrequency(times, values []float64) (float64, error) {
	s, err := NewSpectrum(times, values)
	if err != nil {
		return 0, err
	}
	return s.Peak(), nil
}

// ExpectedFrequency converts the angular rate of a cycle to cycles per
// unit of scene time.
func ExpectedFrequency(rate float64) float64 {
	return rate / (2 * math.Pi)
}

// Trace extracts the scene times and positions of glyph i.
func Trace(records []sim.Record, i int) (times, xs, ys []float64, err error) {
	if len(records) < 2 {
		return nil, nil, nil, ErrTooShort
	}
	times = make([]float64, len(records))
	xs = make([]float64, len(records))
	ys = make([]float64, len(records))
	for k, rec := range records {
		if i < 0 || i >= len(rec.Glyphs) {
			return nil, nil, nil, ErrGlyph
		}
		times[k] = rec.Time
		xs[k] = rec.Glyphs[i].X
		ys[k] = rec.Glyphs[i].Y
	}
	return times, xs, ys, nil
}

// Frequencies returns the horizontal and vertical frequency of glyph i.
func Frequencies(records []sim.Record, i int) (fx, fy float64, err error) {
	times, xs, ys, err := Trace(records, i)
	if err != nil {
		return 0, 0, err
	}
	if fx, err = DominantFrequency(times, xs); err != nil {
		return 0, 0, err
	}
	if fy, err = DominantFrequency(times, ys); err != nil {
		return 0, 0, err
	}
	return fx, fy, nil
}
