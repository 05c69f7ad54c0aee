package analysis

import (
	"strings"

	"github.com/san-kum/welcome/internal/sim"
)

type Point struct{ X, Y float64 }

// Portrait is the Lissajous figure one letter traced during a run.
// Times holds the scene time of each point.
type Portrait struct {
	Rune   rune
	Times  []float64
	Points []Point
}

func NewPortrait(records []sim.Record, i int) (*Portrait, error) {
	times, xs, ys, err := Trace(records, i)
	if err != nil {
		return nil, err
	}
	p := &Portrait{
		Rune:   records[0].Glyphs[i].Rune,
		Times:  times,
		Points: make([]Point, len(xs)),
	}
	for k := range xs {
		p.Points[k] = Point{xs[k], ys[k]}
	}
	return p, nil
}

// VerticalSpectrum is the power spectrum of the letter's height over time.
func (p *Portrait) VerticalSpectrum() (*Spectrum, error) {
	ys := make([]float64, len(p.Points))
	for k, pt := range p.Points {
		ys[k] = pt.Y
	}
	return NewSpectrum(p.Times, ys)
}

// Bounds returns the bounding box of the figure.
func (p *Portrait) Bounds() (minX, minY, maxX, maxY float64) {
	if len(p.Points) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = p.Points[0].X, p.Points[0].X
	minY, maxY = p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.X > maxX {
			maxX = pt.X
		}
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}
	return minX, minY, maxX, maxY
}

// ASCII draws the figure into a width x height grid with y growing
// downward, as on screen. The letter marks the last position.
func (p *Portrait) ASCII(width, height int) string {
	if len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, minY, maxX, maxY := p.Bounds()
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	cell := func(pt Point) (int, int) {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := int((pt.Y - minY) / rangeY * float64(height-1))
		return col, row
	}
	for _, pt := range p.Points {
		col, row := cell(pt)
		canvas[row][col] = '•'
	}
	if p.Rune != 0 {
		col, row := cell(p.Points[len(p.Points)-1])
		canvas[row][col] = p.Rune
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
