// Package glyph animates a single letter along a Lissajous curve.
package glyph

import "github.com/san-kum/welcome/internal/wave"

// Renderable is the drawable a glyph moves and recolors. The glyph does not
// own it; a renderer reads it back every frame.
type Renderable interface {
	SetCenter(x, y float64)
	SetFillColor(hue, saturation, brightness float64)
	CenterY() float64
}

// Factory creates the renderable for one letter.
type Factory func(r rune) Renderable

// Sprite is an in-memory Renderable.
type Sprite struct {
	Rune       rune
	X, Y       float64
	Hue        float64
	Saturation float64
	Brightness float64
}

// NewSprite is the default Factory.
func NewSprite(r rune) Renderable {
	return &Sprite{Rune: r}
}

func (s *Sprite) SetCenter(x, y float64) {
	s.X, s.Y = x, y
}

func (s *Sprite) SetFillColor(hue, saturation, brightness float64) {
	s.Hue, s.Saturation, s.Brightness = hue, saturation, brightness
}

func (s *Sprite) CenterY() float64 { return s.Y }

// Glyph is one animated letter. X and Y follow two independent oscillators.
type Glyph struct {
	r         rune
	x, y      wave.Oscillator
	hue       float64
	hueOffset float64
	rule      HueRule
	target    Renderable
	px, py    float64
}

// New creates a glyph. hueOffset seeds the starting hue.
func New(r rune, x, y wave.Oscillator, hueOffset float64, rule HueRule, target Renderable) *Glyph {
	if rule == nil {
		rule = Sparkle{Speed: DefaultColorSpeed, Exponent: DefaultSparkleExponent}
	}
	if target == nil {
		target = NewSprite(r)
	}
	off := Wrap(hueOffset)
	return &Glyph{
		r:         r,
		x:         x,
		y:         y,
		hue:       off,
		hueOffset: off,
		rule:      rule,
		target:    target,
	}
}

// Update samples both oscillators and the hue rule, then writes the result
// to the renderable.
func (g *Glyph) Update(tick wave.Tick) {
	g.px = g.x.Sample(tick)
	g.py = g.y.Sample(tick)
	g.target.SetCenter(g.px, g.py)

	g.hue = g.rule.Next(g.hue, g.hueOffset, tick)
	g.target.SetFillColor(g.hue, 1, 1)
}

func (g *Glyph) Rune() rune                  { return g.r }
func (g *Glyph) Hue() float64                { return g.hue }
func (g *Glyph) HueOffset() float64          { return g.hueOffset }
func (g *Glyph) Position() (x, y float64)    { return g.px, g.py }
func (g *Glyph) Horizontal() wave.Oscillator { return g.x }
func (g *Glyph) Vertical() wave.Oscillator   { return g.y }
func (g *Glyph) Target() Renderable          { return g.target }
func (g *Glyph) Rule() HueRule               { return g.rule }
