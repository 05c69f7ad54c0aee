package wave

import "errors"

// Configuration errors.
var (
	// ErrWavelength indicates a zero, negative or non-finite wavelength.
	ErrWavelength = errors.New("wave: wavelength must be positive and finite")

	// ErrRange indicates min > max or a non-finite bound.
	ErrRange = errors.New("wave: range must satisfy min <= max with finite bounds")

	// ErrUnknownKind indicates an oscillator kind that New does not know.
	ErrUnknownKind = errors.New("wave: unknown oscillator kind")
)
