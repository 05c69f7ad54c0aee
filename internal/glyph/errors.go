package glyph

import "errors"

// ErrUnknownHueRule indicates a hue rule name that NewHueRule does not know.
var ErrUnknownHueRule = errors.New("glyph: unknown hue rule")
