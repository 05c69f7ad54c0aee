package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/welcome/internal/glyph"
	"github.com/san-kum/welcome/internal/palette"
	"github.com/san-kum/welcome/internal/sim"
)

const background = "#0a0a0a"

// SceneToSVG draws every glyph as a letter at its current center, in its
// current color.
func SceneToSVG(gs []*glyph.Glyph, width, height float64, fontSize float64) string {
	var sb strings.Builder
	writeHeader(&sb, width, height)

	sb.WriteString(fmt.Sprintf(`<g font-family="Verdana, sans-serif" font-weight="bold" font-size="%.0f" text-anchor="middle" dominant-baseline="central">
`, fontSize))
	for _, g := range gs {
		x, y := g.Position()
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s">%s</text>
`, x, y, palette.Hex(g.Hue(), 1, 1), html.EscapeString(string(g.Rune()))))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoriesToSVG draws the path of every letter across the recorded
// frames, colored by the letter's final hue, with the letter at its final
// position.
func TrajectoriesToSVG(records []sim.Record, width, height float64) string {
	if len(records) < 2 {
		return ""
	}

	var sb strings.Builder
	writeHeader(&sb, width, height)

	last := records[len(records)-1]
	for i, g := range last.Glyphs {
		color := palette.Hex(g.Hue, 1, 1)
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="0.6" stroke-width="1.5" d="M`, color))
		for j, rec := range records {
			if i >= len(rec.Glyphs) {
				continue
			}
			p := rec.Glyphs[i]
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
			}
		}
		sb.WriteString(`"/>
`)
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="Verdana, sans-serif" font-weight="bold" font-size="32" text-anchor="middle" dominant-baseline="central">%s</text>
`, g.X, g.Y, color, html.EscapeString(string(g.Rune))))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeHeader(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}
