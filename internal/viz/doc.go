// Package viz renders a flying-letters scene in the terminal.
//
// The package implements a full-screen TUI using the Bubble Tea framework:
//
//   - [Model]: steps a [scene.Scene] on every tick message
//   - [Canvas]: Braille trail layer with colored letters on top
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume animation
//	N     - Single step while paused
//	R     - Restart from the same seed
//	T     - Cycle color themes
//	S     - Save an SVG snapshot
//	?     - Show help overlay
package viz
