// Package export writes still snapshots of a particle field.
package export

import (
	"fmt"
	"strings"

	"github.com/stoneinhat/dotfield/internal/field"
)

// Style picks the snapshot colours. Empty fields fall back to the
// portfolio palette.
type Style struct {
	Background string
	Dots       [4]string
	// Outline strokes the tracked host rectangle when set.
	Outline string
}

// DefaultStyle is the portfolio palette without an outline.
func DefaultStyle() Style {
	return Style{Background: field.Background, Dots: field.Palette}
}

// FieldToSVG draws every particle of f as a circle at its current
// position, in viewport units.
func FieldToSVG(f *field.Field, st Style) string {
	if f == nil {
		return ""
	}
	if st.Background == "" {
		st.Background = field.Background
	}
	for i, c := range st.Dots {
		if c == "" {
			st.Dots[i] = field.Palette[i]
		}
	}

	w, h := f.Size()
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, st.Background))

	if r, ok := f.Tracked(); ok && st.Outline != "" {
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s"/>
`, r.Left, r.Top, r.Width, r.Height, st.Outline))
	}

	// One group per colour keeps the fill attribute out of every circle.
	groups := make([][]field.Particle, len(st.Dots))
	for _, p := range f.Particles() {
		i := int(p.Color) % len(groups)
		groups[i] = append(groups[i], p)
	}
	for i, ps := range groups {
		if len(ps) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", st.Dots[i]))
		for _, p := range ps {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, p.X, p.Y, p.Radius))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// EnergyToSVG plots an energy history as a polyline, the way the stats
// chart shows it.
func EnergyToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	span *= 1.2

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, field.Background, strokeColor))

	step := float64(width) / float64(len(values)-1)
	for i, v := range values {
		x := float64(i) * step
		y := float64(height) - (v-lo)/span*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
