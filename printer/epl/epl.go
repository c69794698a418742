// Package epl emits EPL2 command streams: a line-oriented legacy language
// with a buffer-clear prologue and a quantity trigger at the end. Geometry
// is converted to device dots and rounded half away from zero.
package epl

import (
	"fmt"
	"strings"

	"github.com/printable/stencil/barcode"
	"github.com/printable/stencil/label"
)

// Options carries the per-job directives emitted after the buffer clear.
type Options struct {
	Speed   int     // print speed setting (S)
	Density int     // heat density (D)
	Copies  int     // quantity printed by the P trigger, defaults to 1
	DPI     float64 // device resolution, defaults to 203
}

const (
	defaultDPI = 203
	defaultGap = 24 // label gap in dots, 3 mm at 203 dpi

	// Fixed narrow/wide bar widths for 1D barcodes.
	narrowBar = 2
	wideBar   = 6
)

// Emit renders the elements into one complete EPL2 job. Element types the
// language has no command for (circles, images) are no-ops; unknown barcode
// symbols are skipped. Emission never fails.
func Emit(elements []label.Element, canvas label.Canvas, opts Options) string {
	dpi := opts.DPI
	if dpi <= 0 {
		dpi = defaultDPI
	}
	copies := opts.Copies
	if copies < 1 {
		copies = 1
	}

	var b strings.Builder
	b.WriteString("N\n")
	fmt.Fprintf(&b, "S%d\n", opts.Speed)
	fmt.Fprintf(&b, "D%d\n", opts.Density)
	b.WriteString("ZT\n")
	fmt.Fprintf(&b, "q%d\n", dots(canvas.Width, dpi))
	fmt.Fprintf(&b, "Q%d,%d\n", dots(canvas.Height, dpi), defaultGap)

	for _, el := range label.SortByZIndex(elements) {
		writeElement(&b, el, dpi)
	}

	fmt.Fprintf(&b, "P%d\n", copies)
	return b.String()
}

func writeElement(b *strings.Builder, el label.Element, dpi float64) {
	x := dots(el.X, dpi)
	y := dots(el.Y, dpi)
	w := dots(el.Width, dpi)
	h := dots(el.Height, dpi)
	rot := rotationCode(el.Rotation)

	switch p := el.Props.(type) {
	case label.TextProps:
		fmt.Fprintf(b, "A%d,%d,%d,%d,1,1,N,\"%s\"\n", x, y, rot, fontBucket(p.FontSize), escape(p.Text))

	case label.LineProps:
		t := dots(p.Thickness, dpi)
		if t < 1 {
			t = 1
		}
		if w >= h {
			fmt.Fprintf(b, "LO%d,%d,%d,%d\n", x, y, maxInt(w, 1), t)
		} else {
			fmt.Fprintf(b, "LO%d,%d,%d,%d\n", x, y, t, maxInt(h, 1))
		}

	case label.BoxProps:
		t := dots(p.BorderWidth, dpi)
		if t < 1 {
			t = 1
		}
		fmt.Fprintf(b, "X%d,%d,%d,%d,%d\n", x, y, t, x+maxInt(w, 1), y+maxInt(h, 1))

	case label.BarcodeProps:
		spec, ok := barcode.Lookup(barcode.Symbol(p.Symbol))
		if !ok {
			return
		}
		if spec.TwoD {
			fmt.Fprintf(b, "b%d,%d,%s,\"%s\"\n", x, y, spec.EPL, escape(p.Data))
			return
		}
		hr := "N"
		if p.ShowText {
			hr = "B"
		}
		fmt.Fprintf(b, "B%d,%d,%d,%s,%d,%d,%d,%s,\"%s\"\n",
			x, y, rot, spec.EPL, narrowBar, wideBar, maxInt(h, 1), hr, escape(p.Data))
	}
}

// rotationCode maps quarter turns onto the 0-3 codes the A and B commands
// expect.
func rotationCode(r label.Rotation) int {
	return int(r.Normalize()) / 90 % 4
}

// fontBucket maps a font size in canvas units onto the built-in fonts 1-5
// by ascending thresholds.
func fontBucket(size float64) int {
	switch {
	case size >= 20:
		return 5
	case size >= 16:
		return 4
	case size >= 12:
		return 3
	case size >= 10:
		return 2
	default:
		return 1
	}
}

// escape protects the quoted data fields: backslashes and double quotes are
// escaped, line breaks collapse to spaces.
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}

func dots(v float64, dpi float64) int {
	return label.RoundDots(label.ToDots(v, label.UnitPx, dpi))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
