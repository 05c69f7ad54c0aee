package analysis

import "errors"

var (
	ErrTooShort = errors.New("analysis: trace too short")
	ErrGlyph    = errors.New("analysis: glyph index out of range")
)
