package epl

import (
	"strings"
	"testing"

	"github.com/printable/stencil/label"
)

func TestEmitHeaderAndTrigger(t *testing.T) {
	out := Emit(nil, label.Canvas{Width: 400, Height: 300}, Options{Speed: 3, Density: 10, Copies: 2})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := []string{"N", "S3", "D10", "ZT", "q846", "Q634,24", "P2"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), out)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("line %d: got %q, want %q", i, lines[i], w)
		}
	}
}

func TestEmitDefaultsToOneCopy(t *testing.T) {
	out := Emit(nil, label.Canvas{Width: 96, Height: 96}, Options{})
	if !strings.HasSuffix(out, "P1\n") {
		t.Fatalf("quantity trigger must default to one copy:\n%s", out)
	}
}

func TestEmitText(t *testing.T) {
	elements := []label.Element{
		{Type: label.TypeText, Rotation: label.Rotate90,
			Props: label.TextProps{Text: `He said "hi"`, FontSize: 12}},
	}
	out := Emit(elements, label.Canvas{Width: 400, Height: 300}, Options{})
	if !strings.Contains(out, `A0,0,1,3,1,1,N,"He said \"hi\""`+"\n") {
		t.Fatalf("text command wrong:\n%s", out)
	}
}

func TestEmitLineOrientation(t *testing.T) {
	horizontal := []label.Element{
		{Type: label.TypeLine, Width: 100, Height: 2, Props: label.LineProps{Thickness: 2}},
	}
	out := Emit(horizontal, label.Canvas{Width: 400, Height: 300}, Options{})
	if !strings.Contains(out, "LO0,0,211,4\n") {
		t.Fatalf("horizontal line wrong:\n%s", out)
	}

	vertical := []label.Element{
		{Type: label.TypeLine, Width: 2, Height: 100, Props: label.LineProps{Thickness: 2}},
	}
	out = Emit(vertical, label.Canvas{Width: 400, Height: 300}, Options{})
	if !strings.Contains(out, "LO0,0,4,211\n") {
		t.Fatalf("vertical line wrong:\n%s", out)
	}
}

func TestEmitBox(t *testing.T) {
	elements := []label.Element{
		{Type: label.TypeBox, Width: 100, Height: 50, Props: label.BoxProps{BorderWidth: 1}},
	}
	out := Emit(elements, label.Canvas{Width: 400, Height: 300}, Options{})
	if !strings.Contains(out, "X0,0,2,211,106\n") {
		t.Fatalf("box command wrong:\n%s", out)
	}
}

func TestEmitBarcodes(t *testing.T) {
	elements := []label.Element{
		{Type: label.TypeBarcode, Height: 40,
			Props: label.BarcodeProps{Data: "ABC", Symbol: "CODE128", ShowText: true}},
		{Type: label.TypeBarcode, ZIndex: 1,
			Props: label.BarcodeProps{Data: "Q1", Symbol: "QRCODE"}},
		{Type: label.TypeBarcode, ZIndex: 2,
			Props: label.BarcodeProps{Data: "X", Symbol: "NOPE"}},
	}
	out := Emit(elements, label.Canvas{Width: 400, Height: 300}, Options{})
	if !strings.Contains(out, `B0,0,0,1,2,6,85,B,"ABC"`+"\n") {
		t.Fatalf("1D barcode command wrong:\n%s", out)
	}
	if !strings.Contains(out, `b0,0,Q,"Q1"`+"\n") {
		t.Fatalf("2D barcode command wrong:\n%s", out)
	}
	if strings.Contains(out, `"X"`) {
		t.Fatalf("unknown symbol must emit nothing:\n%s", out)
	}
}

func TestEmitIgnoresUnsupportedElements(t *testing.T) {
	elements := []label.Element{
		{Type: label.TypeCircle, Width: 50, Height: 50, Props: label.CircleProps{BorderWidth: 1}},
		{Type: label.TypeImage, Props: label.ImageProps{Src: "logo.png"}},
	}
	out := Emit(elements, label.Canvas{Width: 400, Height: 300}, Options{})
	if got := strings.Count(out, "\n"); got != 7 {
		t.Fatalf("circles and images must be no-ops, got %d lines:\n%s", got, out)
	}
}

func TestRotationCode(t *testing.T) {
	cases := []struct {
		r    label.Rotation
		want int
	}{
		{label.Rotate0, 0}, {label.Rotate90, 1}, {label.Rotate180, 2}, {label.Rotate270, 3}, {45, 0},
	}
	for _, tc := range cases {
		if got := rotationCode(tc.r); got != tc.want {
			t.Fatalf("rotationCode(%d) = %d, want %d", tc.r, got, tc.want)
		}
	}
}

func TestFontBucket(t *testing.T) {
	cases := []struct {
		size float64
		want int
	}{
		{6, 1}, {9, 1}, {10, 2}, {11, 2}, {12, 3}, {15, 3}, {16, 4}, {19, 4}, {20, 5}, {40, 5},
	}
	for _, tc := range cases {
		if got := fontBucket(tc.size); got != tc.want {
			t.Fatalf("fontBucket(%v) = %d, want %d", tc.size, got, tc.want)
		}
	}
}

func TestEmitDeterministic(t *testing.T) {
	elements := []label.Element{
		{Type: label.TypeText, X: 10, Y: 10, Props: label.TextProps{Text: "x", FontSize: 12}},
		{Type: label.TypeBox, X: 5, Y: 5, Width: 90, Height: 90, Props: label.BoxProps{BorderWidth: 1}},
	}
	canvas := label.Canvas{Width: 400, Height: 300}
	first := Emit(elements, canvas, Options{Copies: 3})
	if second := Emit(elements, canvas, Options{Copies: 3}); second != first {
		t.Fatalf("emission is not deterministic")
	}
}
