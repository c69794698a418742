package preview

import (
	"math"
	"strings"
	"testing"

	"github.com/printable/stencil/label"
)

func TestRenderRejectsEmptyDocuments(t *testing.T) {
	r := NewRenderer("")
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("nil document must be rejected")
	}
	if _, err := r.Render(&label.Document{}); err == nil {
		t.Fatalf("zero-area canvas must be rejected")
	}
	if _, err := r.Render(&label.Document{Canvas: label.Canvas{Width: 100, Height: -1}}); err == nil {
		t.Fatalf("negative canvas must be rejected")
	}
}

func TestRenderShapesToPDF(t *testing.T) {
	// Shape-only documents need no font and render on any machine.
	fill := label.Color{R: 200, G: 200, B: 200}
	doc := &label.Document{
		Canvas: label.Canvas{Width: 400, Height: 300},
		Elements: []label.Element{
			{Type: label.TypeBox, X: 10, Y: 10, Width: 100, Height: 50,
				Props: label.BoxProps{BorderWidth: 1, FillColor: &fill}},
			{Type: label.TypeLine, X: 10, Y: 80, Width: 100, Height: 0, ZIndex: 1,
				Props: label.LineProps{Thickness: 2}},
			{Type: label.TypeCircle, X: 150, Y: 10, Width: 60, Height: 60, ZIndex: 2,
				Props: label.CircleProps{BorderWidth: 1}},
		},
	}
	out, err := NewRenderer("").Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF") {
		t.Fatalf("output is not a PDF: %q", out[:8])
	}
}

func TestRenderRelativeImageRequiresBaseDir(t *testing.T) {
	doc := &label.Document{
		Canvas: label.Canvas{Width: 100, Height: 100},
		Elements: []label.Element{
			{Type: label.TypeImage, Width: 50, Height: 50, Props: label.ImageProps{Src: "logo.png"}},
		},
	}
	if _, err := NewRenderer("").Render(doc); err == nil {
		t.Fatalf("relative image path without base dir must fail")
	}
}

func TestPxToMM(t *testing.T) {
	if got := pxToMM(96); math.Abs(got-25.4) > 1e-9 {
		t.Fatalf("pxToMM(96) = %v, want 25.4", got)
	}
	if got := pxToMM(0); got != 0 {
		t.Fatalf("pxToMM(0) = %v", got)
	}
}
