// Package wave provides the scaled sine generators that drive letter motion.
//
// An [Oscillator] maps time to a value inside a configured range:
//
//	v = min + (max-min) * (sin(t*wavelength + offset) + 1) / 2
//
// Two variants share the interface:
//
//   - [SineWave]: stateless, sampled at an absolute time carried by [Tick].
//   - [LocalWave]: stateful, accumulates [Tick.Delta] into a local clock
//     that is wrapped to one period so it never grows without bound.
//
// # Example
//
//	w := wave.NewLocal()
//	_ = w.SetCycle(1, 0)
//	_ = w.SetRange(32, 568)
//	w.Reset(-10)
//	x := w.Sample(wave.Tick{Delta: 0.01})
//
// Oscillators are NOT thread-safe.
package wave
