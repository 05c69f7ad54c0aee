package analysis

import (
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
)

// FFT transforms a real signal of any length.
func FFT(data []float64) []complex128 {
	return fft.FFTReal(data)
}

// PowerSpectrum returns the magnitude of the first half of the transform.
func PowerSpectrum(data []float64) []float64 {
	f := FFT(data)
	ps := make([]float64, len(f)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(f[i])
	}
	return ps
}

// NextPow2 returns the smallest power of two >= n.
func NextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// Resample linearly interpolates (times, values) onto n evenly spaced
// points starting at times[0] with spacing (last-first)/n. times must be
// non-decreasing.
func Resample(times, values []float64, n int) ([]float64, error) {
	if len(times) < 2 || len(times) != len(values) || n < 1 {
		return nil, ErrTooShort
	}
	t0, t1 := times[0], times[len(times)-1]
	if !(t1 > t0) {
		return nil, ErrTooShort
	}

	step := (t1 - t0) / float64(n)
	out := make([]float64, n)
	for j := range out {
		t := t0 + float64(j)*step
		i := sort.SearchFloat64s(times, t)
		switch {
		case i == 0:
			out[j] = values[0]
		case i >= len(times):
			out[j] = values[len(values)-1]
		default:
			a, b := times[i-1], times[i]
			if b == a {
				out[j] = values[i]
				continue
			}
			frac := (t - a) / (b - a)
			out[j] = values[i-1] + frac*(values[i]-values[i-1])
		}
	}
	return out, nil
}
