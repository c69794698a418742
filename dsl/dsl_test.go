package dsl

import (
	"strings"
	"testing"

	"github.com/printable/stencil/label"
)

const sampleSource = `
label "shipping" 400 300 {
    // recipient block
    text greeting 10 10 200 24 {
        content: "Hi {{name}}"
        size: 12
        align: center
        color: #1a2b3c
    }
    line 10 38 200 2 { thickness: 2 }
    box frame 5 5 390 290 {
        border-width: 1
        corner-radius: 4
    }
    barcode sku 10 60 200 80 {
        data: "{{sku}}"
        symbol: code128
        show-text: true
        z: 3
        rotation: 90
    }
}
`

func mustBuild(t *testing.T, src string) *label.Document {
	t.Helper()
	ast, err := ParseString(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc, err := Build(ast)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return doc
}

func TestParseAndBuild(t *testing.T) {
	doc := mustBuild(t, sampleSource)

	if doc.Name != "shipping" {
		t.Fatalf("name: got %q, want %q", doc.Name, "shipping")
	}
	if doc.Canvas.Width != 400 || doc.Canvas.Height != 300 {
		t.Fatalf("canvas: got %+v", doc.Canvas)
	}
	if len(doc.Elements) != 4 {
		t.Fatalf("got %d elements, want 4", len(doc.Elements))
	}

	text := doc.Elements[0]
	if text.ID != "greeting" || text.Type != label.TypeText {
		t.Fatalf("first element: %+v", text)
	}
	if text.X != 10 || text.Y != 10 || text.Width != 200 || text.Height != 24 {
		t.Fatalf("text geometry wrong: %+v", text)
	}
	tp, ok := text.Props.(label.TextProps)
	if !ok {
		t.Fatalf("text props: %T", text.Props)
	}
	if tp.Text != "Hi {{name}}" || tp.FontSize != 12 || tp.Align != "center" {
		t.Fatalf("text props wrong: %+v", tp)
	}
	if tp.Color != (label.Color{R: 26, G: 43, B: 60}) {
		t.Fatalf("text color wrong: %+v", tp.Color)
	}

	bc := doc.Elements[3]
	bp, ok := bc.Props.(label.BarcodeProps)
	if !ok {
		t.Fatalf("barcode props: %T", bc.Props)
	}
	if bp.Data != "{{sku}}" || bp.Symbol != "CODE128" || !bp.ShowText {
		t.Fatalf("barcode props wrong: %+v", bp)
	}
	if bc.ZIndex != 3 || bc.Rotation != label.Rotate90 {
		t.Fatalf("barcode placement attrs wrong: %+v", bc)
	}
}

func TestBuildGeneratesIDsForUnnamedElements(t *testing.T) {
	doc := mustBuild(t, sampleSource)
	line := doc.Elements[1]
	if line.ID == "" {
		t.Fatalf("unnamed element must get a generated ID")
	}
	if line.ID == doc.Elements[0].ID {
		t.Fatalf("generated ID must not collide")
	}
}

func TestBuildDefaults(t *testing.T) {
	doc := mustBuild(t, `label 100 100 {
    text 0 0 50 20 { content: "x" }
    barcode 0 30 50 40 { data: "123" }
}`)
	tp := doc.Elements[0].Props.(label.TextProps)
	if tp.FontSize != 12 || tp.FontFamily != "sans-serif" || tp.Align != "left" {
		t.Fatalf("text defaults wrong: %+v", tp)
	}
	bp := doc.Elements[1].Props.(label.BarcodeProps)
	if bp.Symbol != "CODE128" || bp.TextPosition != "below" || bp.ShowText {
		t.Fatalf("barcode defaults wrong: %+v", bp)
	}
}

func TestBuildLastAssignmentWins(t *testing.T) {
	doc := mustBuild(t, `label 100 100 {
    text 0 0 50 20 { size: 8; size: 20 }
}`)
	if tp := doc.Elements[0].Props.(label.TextProps); tp.FontSize != 20 {
		t.Fatalf("got size %v, want 20", tp.FontSize)
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		`text 0 0 10 10 {}`,          // missing label header
		`label 100 {}`,               // missing height
		`label 100 100 { widget 0 0 1 1 }`, // unknown element keyword
		`label 100 100 { text 0 0 1 }`,     // incomplete geometry header
	}
	for _, src := range bad {
		if _, err := ParseString(src); err == nil {
			t.Fatalf("expected parse error for %q", src)
		}
	}
}

func TestBuildRejectsNegativeGeometry(t *testing.T) {
	if _, err := Build(mustParse(t, `label -10 100 {}`)); err == nil {
		t.Fatalf("negative canvas width must be rejected")
	}
	if _, err := Build(mustParse(t, `label 100 100 { text 0 0 -5 10 }`)); err == nil {
		t.Fatalf("negative element width must be rejected")
	}
}

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	ast, err := ParseString(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return ast
}

func TestParseReader(t *testing.T) {
	ast, err := Parse(strings.NewReader(`label 10 10 {}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ast.Width != "10" || ast.Height != "10" {
		t.Fatalf("header wrong: %+v", ast)
	}
}

func TestBuildNilDocument(t *testing.T) {
	if _, err := Build(nil); err == nil {
		t.Fatalf("nil document must be rejected")
	}
}
