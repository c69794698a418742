// Package label defines the document model shared by the substitution pass,
// the printer emitters and the preview renderer: an ordered list of
// positioned elements on a fixed-size canvas. The model is pure data; every
// transformation over it returns a new derived value.
package label

import (
	"sort"
	"strconv"
	"strings"
)

// Type identifies the kind of an element.
type Type string

const (
	TypeText    Type = "text"
	TypeLine    Type = "line"
	TypeBox     Type = "box"
	TypeCircle  Type = "circle"
	TypeImage   Type = "image"
	TypeBarcode Type = "barcode"
)

// Rotation is restricted to quarter turns. Normalize maps anything else to 0.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// Normalize returns r if it is a quarter turn and 0 otherwise.
func (r Rotation) Normalize() Rotation {
	switch r {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return r
	default:
		return Rotate0
	}
}

// Canvas is the label surface in canvas units (96 per inch).
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Element is one positioned item on the canvas. X/Y/Width/Height are in
// canvas units. ZIndex orders emission; ties keep insertion order.
type Element struct {
	ID       string   `json:"id"`
	Type     Type     `json:"type"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Rotation Rotation `json:"rotation"`
	ZIndex   int      `json:"zIndex"`
	Props    Props    `json:"properties"`
}

// Props is the per-type property variant. Exactly one concrete type exists
// per element type, so emitters dispatch with a type switch.
type Props interface {
	kind() Type
}

// TextProps holds the properties of a text element.
type TextProps struct {
	Text       string  `json:"text"`
	FontSize   float64 `json:"fontSize"`
	FontWeight string  `json:"fontWeight"`
	FontFamily string  `json:"fontFamily"`
	Color      Color   `json:"color"`
	Align      string  `json:"alignment"` // left (default), center, right
}

// LineProps holds the properties of a line element.
type LineProps struct {
	Thickness float64 `json:"thickness"`
	Color     Color   `json:"color"`
	Style     string  `json:"style"` // solid, dashed
}

// BoxProps holds the properties of a rectangle element.
type BoxProps struct {
	BorderWidth  float64 `json:"borderWidth"`
	BorderColor  Color   `json:"borderColor"`
	FillColor    *Color  `json:"fillColor,omitempty"` // nil means no fill
	CornerRadius float64 `json:"cornerRadius"`
}

// CircleProps holds the properties of a circle element.
type CircleProps struct {
	BorderWidth float64 `json:"borderWidth"`
	BorderColor Color   `json:"borderColor"`
	FillColor   *Color  `json:"fillColor,omitempty"`
}

// ImageProps holds the properties of an image element. Src may contain
// placeholders and is resolved by the substitution pass.
type ImageProps struct {
	Src     string  `json:"src"`
	Alt     string  `json:"alt"`
	Fit     string  `json:"fit"` // contain, cover, fill
	Opacity float64 `json:"opacity"`
}

// BarcodeProps holds the properties of a barcode element. Symbol is a key
// into the barcode symbol table.
type BarcodeProps struct {
	Data         string `json:"data"`
	Symbol       string `json:"type"`
	ShowText     bool   `json:"showText"`
	TextPosition string `json:"textPosition"` // below (default), above, none
}

func (TextProps) kind() Type    { return TypeText }
func (LineProps) kind() Type    { return TypeLine }
func (BoxProps) kind() Type     { return TypeBox }
func (CircleProps) kind() Type  { return TypeCircle }
func (ImageProps) kind() Type   { return TypeImage }
func (BarcodeProps) kind() Type { return TypeBarcode }

// Document bundles a canvas with its elements.
type Document struct {
	Name     string    `json:"name"`
	Canvas   Canvas    `json:"canvas"`
	Elements []Element `json:"elements"`
}

// SortByZIndex returns a new slice ordered by ascending ZIndex. The sort is
// stable: elements with equal ZIndex keep their insertion order.
func SortByZIndex(elements []Element) []Element {
	out := make([]Element, len(elements))
	copy(out, elements)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// Color uses 0-255 RGB channels.
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// IsWhite reports whether the color is pure white. Monochrome printer
// protocols map every non-white color to black.
func (c Color) IsWhite() bool { return c.R == 255 && c.G == 255 && c.B == 255 }

// ParseHexColor parses #rgb and #rrggbb notation. Anything unparseable
// yields black, matching the degrade-gracefully policy of the core.
func ParseHexColor(s string) Color {
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(v) {
	case 3:
		r, err1 := strconv.ParseUint(strings.Repeat(string(v[0]), 2), 16, 8)
		g, err2 := strconv.ParseUint(strings.Repeat(string(v[1]), 2), 16, 8)
		b, err3 := strconv.ParseUint(strings.Repeat(string(v[2]), 2), 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return Black
		}
		return Color{int(r), int(g), int(b)}
	case 6:
		r, err1 := strconv.ParseUint(v[0:2], 16, 8)
		g, err2 := strconv.ParseUint(v[2:4], 16, 8)
		b, err3 := strconv.ParseUint(v[4:6], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return Black
		}
		return Color{int(r), int(g), int(b)}
	default:
		return Black
	}
}
