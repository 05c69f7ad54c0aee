package scene

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/welcome/internal/glyph"
	"github.com/san-kum/welcome/internal/wave"
)

const (
	DefaultWidth       = 600.0
	DefaultHeight      = 400.0
	DefaultMargin      = 32.0
	DefaultPhaseSpread = 0.5
	// DefaultStartTime starts the letters converging instead of mid-cycle.
	DefaultStartTime = -10.0
)

// Config holds everything a Scene needs besides the message and the random source.
type Config struct {
	Width       float64
	Height      float64
	Margin      float64
	PhaseSpread float64
	StartTime   float64
	Clock       wave.Kind
	Hue         string
	ColorSpeed  float64
	Pacing      Pacing
}

func DefaultConfig() Config {
	return Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Margin:      DefaultMargin,
		PhaseSpread: DefaultPhaseSpread,
		StartTime:   DefaultStartTime,
		Clock:       wave.KindLocal,
		Hue:         "sparkle",
		ColorSpeed:  glyph.DefaultColorSpeed,
		Pacing:      DefaultPacing(),
	}
}

func (c Config) Validate() error {
	if !(c.Width > 0) || !(c.Height > 0) || math.IsInf(c.Width, 0) || math.IsInf(c.Height, 0) {
		return fmt.Errorf("%w: canvas must be positive, got %vx%v", ErrConfig, c.Width, c.Height)
	}
	if c.Margin < 0 || math.IsNaN(c.Margin) {
		return fmt.Errorf("%w: margin must be non-negative, got %v", ErrConfig, c.Margin)
	}
	if 2*c.Margin > c.Width || 2*c.Margin > c.Height {
		return fmt.Errorf("%w: margin %v leaves no room in %vx%v", ErrConfig, c.Margin, c.Width, c.Height)
	}
	if c.PhaseSpread < 0 || math.IsNaN(c.PhaseSpread) || math.IsInf(c.PhaseSpread, 0) {
		return fmt.Errorf("%w: phase spread must be non-negative, got %v", ErrConfig, c.PhaseSpread)
	}
	if math.IsNaN(c.StartTime) || math.IsInf(c.StartTime, 0) {
		return fmt.Errorf("%w: start time must be finite", ErrConfig)
	}
	return c.Pacing.Validate()
}

// Frame describes one completed tick.
type Frame struct {
	Index  int
	Time   float64
	Dt     float64
	Spread float64
}

// Scene animates the letters of one message.
type Scene struct {
	cfg     Config
	message string
	glyphs  []*glyph.Glyph
	phasing float64
	clock   float64
	frames  int
}

// New builds a scene with one glyph per rune of message. rng supplies the
// vertical phasing and the hue offsets; factory creates each renderable.
func New(message string, cfg Config, rng *rand.Rand, factory glyph.Factory) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if factory == nil {
		factory = glyph.NewSprite
	}
	rule, err := glyph.NewHueRule(cfg.Hue, cfg.ColorSpeed)
	if err != nil {
		return nil, err
	}

	runes := []rune(message)
	n := len(runes)
	s := &Scene{
		cfg:     cfg,
		message: message,
		glyphs:  make([]*glyph.Glyph, 0, n),
		phasing: rng.Float64() * cfg.PhaseSpread,
		clock:   cfg.StartTime,
	}

	for i, r := range runes {
		x, err := wave.New(cfg.Clock)
		if err != nil {
			return nil, err
		}
		y, err := wave.New(cfg.Clock)
		if err != nil {
			return nil, err
		}

		if err := x.SetCycle(1, HorizontalPhase(i, n)); err != nil {
			return nil, fmt.Errorf("glyph %d horizontal cycle: %w", i, err)
		}
		if err := y.SetCycle(float64(i)*s.phasing+1, 0); err != nil {
			return nil, fmt.Errorf("glyph %d vertical cycle: %w", i, err)
		}
		if err := x.SetRange(cfg.Margin, cfg.Width-cfg.Margin); err != nil {
			return nil, fmt.Errorf("glyph %d horizontal range: %w", i, err)
		}
		if err := y.SetRange(cfg.Margin, cfg.Height-cfg.Margin); err != nil {
			return nil, fmt.Errorf("glyph %d vertical range: %w", i, err)
		}
		x.Reset(cfg.StartTime)
		y.Reset(cfg.StartTime)

		s.glyphs = append(s.glyphs, glyph.New(r, x, y, rng.Float64(), rule, factory(r)))
	}

	// Place every renderable before the first spread reading.
	prime := wave.Tick{Time: s.clock}
	for _, g := range s.glyphs {
		g.Update(prime)
	}

	return s, nil
}

// HorizontalPhase is the phase offset that puts glyph i of n at the i-th of
// n evenly spaced points across the horizontal range at time zero.
func HorizontalPhase(i, n int) float64 {
	return math.Asin(float64(i+1)/float64(n+1)*2 - 1)
}

// Spread is the vertical extent of all letters as a fraction of canvas height.
func (s *Scene) Spread() float64 {
	if len(s.glyphs) == 0 {
		return 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, g := range s.glyphs {
		y := g.Target().CenterY()
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
	}
	return (hi - lo) / s.cfg.Height
}

// Step advances the animation by one frame.
func (s *Scene) Step() Frame {
	spread := s.Spread()
	dt := s.cfg.Pacing.Step(spread)
	s.clock += dt

	tick := wave.Tick{Time: s.clock, Delta: dt}
	for _, g := range s.glyphs {
		g.Update(tick)
	}
	s.frames++

	return Frame{Index: s.frames, Time: s.clock, Dt: dt, Spread: spread}
}

func (s *Scene) Len() int         { return len(s.glyphs) }
func (s *Scene) Message() string  { return s.message }
func (s *Scene) Time() float64    { return s.clock }
func (s *Scene) Frames() int      { return s.frames }
func (s *Scene) Config() Config   { return s.cfg }
func (s *Scene) Phasing() float64 { return s.phasing }

// Glyphs returns the letters in message order. The returned slice is a copy.
func (s *Scene) Glyphs() []*glyph.Glyph {
	out := make([]*glyph.Glyph, len(s.glyphs))
	copy(out, s.glyphs)
	return out
}

// Bounds returns the rectangle every letter center stays inside.
func (s *Scene) Bounds() (minX, maxX, minY, maxY float64) {
	return s.cfg.Margin, s.cfg.Width - s.cfg.Margin, s.cfg.Margin, s.cfg.Height - s.cfg.Margin
}
