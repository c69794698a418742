// Package sbpl emits SBPL command streams: a fixed-field positional
// language bracketed by STX <ESC>A ... <ESC>Z ETX control markers. Every
// coordinate is a 4-digit zero-padded record at a fixed 203 dpi. Only text
// and barcode elements produce output; all other element types are no-ops
// by design of the target language.
package sbpl

import (
	"fmt"
	"strings"

	"github.com/printable/stencil/barcode"
	"github.com/printable/stencil/label"
)

const (
	stx = "\x02"
	etx = "\x03"
	esc = "\x1b"

	// SBPL devices in this class run at 203 dpi; the protocol takes no
	// resolution option.
	dpi = 203
)

// Emit renders the elements into one complete SBPL job. Emission never
// fails; unsupported element types and unknown symbols emit nothing.
func Emit(elements []label.Element, canvas label.Canvas) string {
	var b strings.Builder
	b.WriteString(stx)
	b.WriteString(esc + "A")
	fmt.Fprintf(&b, "%sA1%04d%04d", esc, dots(canvas.Height), dots(canvas.Width))

	for _, el := range label.SortByZIndex(elements) {
		writeElement(&b, el)
	}

	b.WriteString(esc + "Q1")
	b.WriteString(esc + "Z")
	b.WriteString(etx)
	return b.String()
}

func writeElement(b *strings.Builder, el label.Element) {
	switch p := el.Props.(type) {
	case label.TextProps:
		writePosition(b, el)
		fmt.Fprintf(b, "%sL0101", esc)
		fmt.Fprintf(b, "%s%s%s", esc, fontSelector(p.FontSize), sanitize(p.Text))

	case label.BarcodeProps:
		spec, ok := barcode.Lookup(barcode.Symbol(p.Symbol))
		if !ok {
			return
		}
		writePosition(b, el)
		if spec.TwoD {
			fmt.Fprintf(b, "%s%s,L,05,0,0", esc, spec.SBPL)
			fmt.Fprintf(b, "%sDN%04d,%s", esc, len(p.Data), sanitize(p.Data))
			return
		}
		height := label.RoundDots(label.ToDots(el.Height, label.UnitPx, dpi))
		if height < 1 {
			height = 1
		}
		if height > 999 {
			height = 999 // 3-digit record field
		}
		fmt.Fprintf(b, "%s%s02%03d%s", esc, spec.SBPL, height, sanitize(p.Data))
	}
}

// writePosition emits the H/V coordinate records and the rotation record.
func writePosition(b *strings.Builder, el label.Element) {
	fmt.Fprintf(b, "%sH%04d", esc, dots(el.X))
	fmt.Fprintf(b, "%sV%04d", esc, dots(el.Y))
	fmt.Fprintf(b, "%s%%%d", esc, int(el.Rotation.Normalize())/90)
}

// fontSelector buckets a font size in canvas units onto the built-in X
// series fonts.
func fontSelector(size float64) string {
	switch {
	case size <= 8:
		return "XU"
	case size <= 12:
		return "XS"
	case size <= 16:
		return "XM"
	case size <= 24:
		return "XB"
	default:
		return "XL"
	}
}

// sanitize removes the control bytes that delimit SBPL records.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, esc, "")
	s = strings.ReplaceAll(s, stx, "")
	s = strings.ReplaceAll(s, etx, "")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}

// dots clamps to the 0-9999 range a 4-digit record can hold; anything
// outside would widen the field and corrupt the positional framing.
func dots(v float64) int {
	d := label.RoundDots(label.ToDots(v, label.UnitPx, dpi))
	if d < 0 {
		return 0
	}
	if d > 9999 {
		return 9999
	}
	return d
}
