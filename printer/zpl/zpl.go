// Package zpl emits ZPL II command streams: a bracketed ^XA ... ^XZ format
// with one field block per element. All geometry is converted from canvas
// units to device dots at the configured resolution and rounded half away
// from zero, so identical inputs always produce byte-identical output.
package zpl

import (
	"fmt"
	"strings"

	"github.com/printable/stencil/barcode"
	"github.com/printable/stencil/label"
)

// Options carries the per-job directives placed in the format header.
type Options struct {
	DPI        float64 // device resolution, defaults to 203
	PrintSpeed int     // inches per second (^PR), defaults to 4
	Density    int     // media darkness 0-30 (^MD)
	TearOff    int     // tear-off adjustment in dots (~TA)
}

const (
	defaultDPI   = 203
	defaultSpeed = 4
)

// Emit renders the elements into one complete ZPL format. Unknown element
// types and unknown barcode symbols are skipped; emission never fails.
func Emit(elements []label.Element, canvas label.Canvas, opts Options) string {
	dpi := opts.DPI
	if dpi <= 0 {
		dpi = defaultDPI
	}
	speed := opts.PrintSpeed
	if speed <= 0 {
		speed = defaultSpeed
	}

	var b strings.Builder
	b.WriteString("^XA\n")
	fmt.Fprintf(&b, "^PW%d\n", dots(canvas.Width, dpi))
	fmt.Fprintf(&b, "^LL%d\n", dots(canvas.Height, dpi))
	fmt.Fprintf(&b, "^PR%d\n", speed)
	fmt.Fprintf(&b, "^MD%d\n", opts.Density)
	fmt.Fprintf(&b, "~TA%03d\n", opts.TearOff)

	for _, el := range label.SortByZIndex(elements) {
		writeElement(&b, el, dpi)
	}

	b.WriteString("^XZ")
	return b.String()
}

func writeElement(b *strings.Builder, el label.Element, dpi float64) {
	x := dots(el.X, dpi)
	y := dots(el.Y, dpi)
	w := dots(el.Width, dpi)
	h := dots(el.Height, dpi)

	switch p := el.Props.(type) {
	case label.TextProps:
		size := dots(p.FontSize, dpi)
		if size < 1 {
			size = 1
		}
		fmt.Fprintf(b, "^FO%d,%d^A%s%s,%d,%d", x, y, fontBucket(p.FontSize), orientation(el.Rotation), size, size)
		switch strings.ToLower(p.Align) {
		case "center":
			fmt.Fprintf(b, "^FB%d,1,0,C,0", fieldBlockWidth(w))
		case "right", "end":
			fmt.Fprintf(b, "^FB%d,1,0,R,0", fieldBlockWidth(w))
		}
		fmt.Fprintf(b, "^FD%s^FS\n", sanitize(p.Text))

	case label.LineProps:
		t := thickness(p.Thickness, dpi)
		fmt.Fprintf(b, "^FO%d,%d^GB%d,%d,%d,%s,0^FS\n", x, y, maxInt(w, t), maxInt(h, t), t, inkColor(p.Color))

	case label.BoxProps:
		t := thickness(p.BorderWidth, dpi)
		ink := inkColor(p.BorderColor)
		if p.FillColor != nil && !p.FillColor.IsWhite() {
			// A filled ^GB is a box whose border swallows the interior.
			t = maxInt(minInt(w, h), 1)
			ink = "B"
		}
		fmt.Fprintf(b, "^FO%d,%d^GB%d,%d,%d,%s,0^FS\n", x, y, maxInt(w, t), maxInt(h, t), t, ink)
		if p.CornerRadius > 0 {
			// No true rounding in ^GB; a thin inset bar hints at the radius.
			r := dots(p.CornerRadius, dpi)
			fmt.Fprintf(b, "^FO%d,%d^GB%d,1,1,%s,0^FS\n", x+r, y, maxInt(w-2*r, 1), ink)
		}

	case label.CircleProps:
		radius := dots(minFloat(el.Width, el.Height)/2, dpi)
		t := thickness(p.BorderWidth, dpi)
		ink := inkColor(p.BorderColor)
		if p.FillColor != nil && !p.FillColor.IsWhite() {
			t = maxInt(radius, 1)
			ink = "B"
		}
		fmt.Fprintf(b, "^FO%d,%d^GC%d,%d,%s^FS\n", x, y, maxInt(2*radius, 1), t, ink)

	case label.ImageProps:
		// Raster conversion is an integration concern; an empty graphic
		// field keeps the element's position in the stream.
		fmt.Fprintf(b, "^FO%d,%d^GFA,0,0,0,^FS\n", x, y)

	case label.BarcodeProps:
		spec, ok := barcode.Lookup(barcode.Symbol(p.Symbol))
		if !ok {
			return
		}
		fmt.Fprintf(b, "^FO%d,%d^BY2", x, y)
		if spec.TwoD {
			writeTwoDSelector(b, spec, orientation(el.Rotation))
		} else {
			hr := "N"
			if p.ShowText {
				hr = "Y"
			}
			fmt.Fprintf(b, "%s%s,%d,%s", spec.ZPL, orientation(el.Rotation), maxInt(h, 1), hr)
		}
		fmt.Fprintf(b, "^FD%s^FS\n", sanitize(p.Data))
	}
}

// writeTwoDSelector emits the model/quality tuple 2D symbols take instead
// of the 1D human-readable flag.
func writeTwoDSelector(b *strings.Builder, spec barcode.Spec, orient string) {
	switch spec.ZPL {
	case "^BQ":
		fmt.Fprintf(b, "^BQ%s,2,4", orient) // model 2, magnification 4
	case "^BX":
		fmt.Fprintf(b, "^BX%s,4,200", orient) // module height 4, quality 200
	default:
		fmt.Fprintf(b, "%s%s,4,0", spec.ZPL, orient)
	}
}

// fontBucket maps a font size in canvas units onto the built-in bitmap
// fonts by threshold.
func fontBucket(size float64) string {
	switch {
	case size <= 8:
		return "0"
	case size <= 12:
		return "A"
	case size <= 16:
		return "B"
	case size <= 24:
		return "D"
	default:
		return "E"
	}
}

// orientation maps a quarter-turn rotation onto the ZPL orientation flag.
func orientation(r label.Rotation) string {
	switch r.Normalize() {
	case label.Rotate90:
		return "R"
	case label.Rotate180:
		return "I"
	case label.Rotate270:
		return "B"
	default:
		return "N"
	}
}

// inkColor maps a model color onto the two inks the ^GB/^GC color flag
// knows: white stays white, everything else prints black.
func inkColor(c label.Color) string {
	if c.IsWhite() {
		return "W"
	}
	return "B"
}

// sanitize strips the ZPL control prefixes from field data so user content
// cannot break out of the ^FD field.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "^", " ")
	s = strings.ReplaceAll(s, "~", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}

func dots(v float64, dpi float64) int {
	return label.RoundDots(label.ToDots(v, label.UnitPx, dpi))
}

func thickness(v float64, dpi float64) int {
	t := dots(v, dpi)
	if t < 1 {
		t = 1
	}
	return t
}

// fieldBlockWidth keeps ^FB usable when the element has degenerate width.
func fieldBlockWidth(w int) int { return maxInt(w, 1) }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
