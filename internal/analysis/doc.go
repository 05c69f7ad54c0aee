// Package analysis inspects recorded letter trajectories.
//
// Recorded frames are spaced unevenly in scene time because the time step
// follows the vertical spread. The spectral tools resample a trace onto a
// uniform grid before transforming it:
//
//   - [DominantFrequency]: strongest oscillation in a sampled signal
//   - [Frequencies]: horizontal and vertical frequency of one letter
//   - [NewPortrait]: the x/y Lissajous figure traced by one letter
//
// A letter driven by a cycle of angular rate w oscillates at w/(2*pi)
// cycles per unit of scene time:
//
//	fx, fy, err := analysis.Frequencies(records, 2)
//	want := analysis.ExpectedFrequency(2*phasing + 1)
package analysis
