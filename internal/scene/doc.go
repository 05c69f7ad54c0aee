// Package scene drives a message of flying letters.
//
// A [Scene] owns one [glyph.Glyph] per rune of its message. Every call to
// [Scene.Step] measures the vertical spread of the letters, converts it to
// a time increment with [Pacing.Step] and advances every glyph by it:
// letters bunched at the same height slow to a crawl, letters spread over
// the canvas move at full speed.
//
// # Clocks and color
//
// The default configuration gives every oscillator its own clock
// ([wave.KindLocal]) advanced by each tick's dt, and colors letters with
// [glyph.Sparkle], whose hue moves fastest during slow motion. Setting
// Clock to [wave.KindAbsolute] and Hue to "drift" samples all letters at
// the scene's clock instead and drifts the hue with that clock. Positions
// are identical under both clocks; only the color rule differs.
//
// # Example
//
//	sc, _ := scene.New("macalester", scene.DefaultConfig(), rand.New(rand.NewSource(1)), nil)
//	for {
//		frame := sc.Step()
//		draw(sc.Glyphs(), frame)
//	}
//
// # Thread Safety
//
// A Scene is NOT thread-safe. Run separate scenes in separate goroutines.
package scene
