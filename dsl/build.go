package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/printable/stencil/label"
)

// Build lowers a parsed document into the label document model. Unnamed
// elements get generated IDs. Property keys the element type does not
// understand are ignored, matching the degrade-gracefully policy of the
// rest of the pipeline.
func Build(doc *Document) (*label.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("dsl: document is nil")
	}
	w, err := strconv.ParseFloat(doc.Width, 64)
	if err != nil {
		return nil, fmt.Errorf("dsl: canvas width %q: %w", doc.Width, err)
	}
	h, err := strconv.ParseFloat(doc.Height, 64)
	if err != nil {
		return nil, fmt.Errorf("dsl: canvas height %q: %w", doc.Height, err)
	}
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("dsl: canvas size must not be negative (%g x %g)", w, h)
	}

	out := &label.Document{
		Canvas: label.Canvas{Width: w, Height: h},
	}
	if doc.Name != nil {
		out.Name = string(*doc.Name)
	}

	for _, decl := range doc.Elements {
		el, err := buildElement(decl)
		if err != nil {
			return nil, err
		}
		out.Elements = append(out.Elements, el)
	}
	return out, nil
}

func buildElement(decl *ElementDecl) (label.Element, error) {
	el := label.Element{
		ID:   decl.Name,
		Type: label.Type(decl.Kind),
	}
	if el.ID == "" {
		el.ID = uuid.NewString()
	}

	var err error
	if el.X, err = headerNumber(decl, "x", decl.X); err != nil {
		return el, err
	}
	if el.Y, err = headerNumber(decl, "y", decl.Y); err != nil {
		return el, err
	}
	if el.Width, err = headerNumber(decl, "width", decl.W); err != nil {
		return el, err
	}
	if el.Height, err = headerNumber(decl, "height", decl.H); err != nil {
		return el, err
	}
	if el.Width < 0 || el.Height < 0 {
		return el, fmt.Errorf("dsl: %s at %s: width/height must not be negative", decl.Kind, decl.Pos)
	}

	attrs := entries(decl.Block)
	if z, ok := attrs["z"]; ok {
		if f, ok := z.Float(); ok {
			el.ZIndex = int(f)
		}
	}
	if r, ok := attrs["rotation"]; ok {
		if f, ok := r.Float(); ok {
			el.Rotation = label.Rotation(int(f)).Normalize()
		}
	}

	switch decl.Kind {
	case "text":
		p := label.TextProps{FontSize: 12, FontFamily: "sans-serif", FontWeight: "normal", Align: "left"}
		if v, ok := attrs["content"]; ok {
			p.Text = v.Text()
		}
		if v, ok := attrs["size"]; ok {
			if f, ok := v.Float(); ok {
				p.FontSize = f
			}
		}
		if v, ok := attrs["font"]; ok {
			p.FontFamily = v.Text()
		}
		if v, ok := attrs["weight"]; ok {
			p.FontWeight = v.Text()
		}
		if v, ok := attrs["align"]; ok {
			p.Align = strings.ToLower(v.Text())
		}
		if v, ok := attrs["color"]; ok {
			p.Color = label.ParseHexColor(v.Text())
		}
		el.Props = p

	case "line":
		p := label.LineProps{Thickness: 1, Style: "solid"}
		if v, ok := attrs["thickness"]; ok {
			if f, ok := v.Float(); ok {
				p.Thickness = f
			}
		}
		if v, ok := attrs["style"]; ok {
			p.Style = strings.ToLower(v.Text())
		}
		if v, ok := attrs["color"]; ok {
			p.Color = label.ParseHexColor(v.Text())
		}
		el.Props = p

	case "box":
		p := label.BoxProps{BorderWidth: 1}
		if v, ok := attrs["border-width"]; ok {
			if f, ok := v.Float(); ok {
				p.BorderWidth = f
			}
		}
		if v, ok := attrs["border-color"]; ok {
			p.BorderColor = label.ParseHexColor(v.Text())
		}
		if v, ok := attrs["fill"]; ok {
			c := label.ParseHexColor(v.Text())
			p.FillColor = &c
		}
		if v, ok := attrs["corner-radius"]; ok {
			if f, ok := v.Float(); ok && f >= 0 {
				p.CornerRadius = f
			}
		}
		el.Props = p

	case "circle":
		p := label.CircleProps{BorderWidth: 1}
		if v, ok := attrs["border-width"]; ok {
			if f, ok := v.Float(); ok {
				p.BorderWidth = f
			}
		}
		if v, ok := attrs["border-color"]; ok {
			p.BorderColor = label.ParseHexColor(v.Text())
		}
		if v, ok := attrs["fill"]; ok {
			c := label.ParseHexColor(v.Text())
			p.FillColor = &c
		}
		el.Props = p

	case "image":
		p := label.ImageProps{Fit: "contain", Opacity: 1}
		if v, ok := attrs["src"]; ok {
			p.Src = v.Text()
		}
		if v, ok := attrs["alt"]; ok {
			p.Alt = v.Text()
		}
		if v, ok := attrs["fit"]; ok {
			p.Fit = strings.ToLower(v.Text())
		}
		if v, ok := attrs["opacity"]; ok {
			if f, ok := v.Float(); ok {
				p.Opacity = f
			}
		}
		el.Props = p

	case "barcode":
		p := label.BarcodeProps{Symbol: "CODE128", TextPosition: "below"}
		if v, ok := attrs["data"]; ok {
			p.Data = v.Text()
		}
		if v, ok := attrs["symbol"]; ok {
			p.Symbol = strings.ToUpper(v.Text())
		}
		if v, ok := attrs["show-text"]; ok {
			p.ShowText = strings.EqualFold(v.Text(), "true")
		}
		if v, ok := attrs["text-position"]; ok {
			p.TextPosition = strings.ToLower(v.Text())
		}
		el.Props = p

	default:
		return el, fmt.Errorf("dsl: unknown element kind %q at %s", decl.Kind, decl.Pos)
	}
	return el, nil
}

// entries flattens a block into a key->value map; the last assignment wins
// when a key repeats.
func entries(block *Block) map[string]*ValueNode {
	attrs := map[string]*ValueNode{}
	if block == nil {
		return attrs
	}
	for _, e := range block.Entries {
		if e == nil || e.Key == "" {
			continue
		}
		attrs[strings.ToLower(e.Key)] = e.Value
	}
	return attrs
}

func headerNumber(decl *ElementDecl, field, raw string) (float64, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("dsl: %s at %s: %s %q: %w", decl.Kind, decl.Pos, field, raw, err)
	}
	return f, nil
}
