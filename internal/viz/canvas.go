package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const emptyBraille = 0x2800

// Canvas is a terminal grid with two layers: braille dots for trails and
// whole-cell letters drawn on top.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]string
	Letters       [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:   w,
		Height:  h,
		Grid:    make([][]rune, h),
		Colors:  make([][]string, h),
		Letters: make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]string, w)
		c.Letters[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set sets a dot at (x, y) in sub-pixel coordinates with the given color.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int, color string) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
	if color != "" {
		c.Colors[row][col] = color
	}
}

// SetLetter places r in cell (col, row), hiding any dots underneath.
func (c *Canvas) SetLetter(col, row int, r rune, color string) {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return
	}
	c.Letters[row][col] = r
	c.Colors[row][col] = color
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = emptyBraille
			c.Colors[i][j] = ""
			c.Letters[i][j] = 0
		}
	}
}

// Cell returns what would be printed at (col, row).
func (c *Canvas) Cell(col, row int) rune {
	if r := c.Letters[row][col]; r != 0 {
		return r
	}
	if g := c.Grid[row][col]; g != emptyBraille {
		return g
	}
	return ' '
}

// String renders without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			b.WriteRune(c.Cell(col, row))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render draws the canvas with each cell in its color. Letters are bold.
func (c *Canvas) Render() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.Width; col++ {
			ch := c.Cell(col, row)
			color := c.Colors[row][col]
			if ch == ' ' || color == "" {
				b.WriteRune(ch)
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			if c.Letters[row][col] != 0 {
				style = style.Bold(true)
			}
			b.WriteString(style.Render(string(ch)))
		}
	}
	return b.String()
}
