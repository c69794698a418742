// Package preview renders a resolved label document to a PDF proof via
// github.com/tdewolff/canvas. It is a visual aid for checking placement and
// substitution before a printer run; it does not perform the raster
// conversion printer graphic fields would need. Barcode elements draw as
// placeholder swatches with their data as caption.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/printable/stencil/label"
)

// Renderer draws label documents via github.com/tdewolff/canvas.
type Renderer struct {
	baseDir  string
	fontPath string
	fontName string

	fontMu sync.Mutex
	family *canvas.FontFamily
}

// Options configures the preview renderer.
type Options struct {
	BaseDir  string // directory image paths are resolved against
	FontPath string // explicit font file; falls back to a system font
	FontName string // system font family name, defaults to DejaVu Sans
}

// NewRenderer creates a renderer rooted at baseDir for resolving image
// assets, using a system font for text.
func NewRenderer(baseDir string) *Renderer {
	return NewRendererWithOptions(Options{BaseDir: baseDir})
}

// NewRendererWithOptions creates a renderer with explicit font settings.
func NewRendererWithOptions(opts Options) *Renderer {
	name := opts.FontName
	if name == "" {
		name = "DejaVu Sans"
	}
	return &Renderer{
		baseDir:  opts.BaseDir,
		fontPath: opts.FontPath,
		fontName: name,
	}
}

// Render renders the document into a single-page PDF proof.
func (r *Renderer) Render(doc *label.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("preview: document is nil")
	}
	wMM := pxToMM(doc.Canvas.Width)
	hMM := pxToMM(doc.Canvas.Height)
	if wMM <= 0 || hMM <= 0 {
		return nil, fmt.Errorf("preview: canvas has no area (%g x %g)", doc.Canvas.Width, doc.Canvas.Height)
	}

	c := canvas.New(wMM, hMM)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // top-left origin like the canvas model

	for _, el := range label.SortByZIndex(doc.Elements) {
		if err := r.drawElement(ctx, el); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, wMM, hMM, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("preview: write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawElement(ctx *canvas.Context, el label.Element) error {
	x := pxToMM(el.X)
	y := pxToMM(el.Y)
	w := pxToMM(el.Width)
	h := pxToMM(el.Height)

	switch p := el.Props.(type) {
	case label.TextProps:
		return r.drawText(ctx, p, x, y, w)

	case label.LineProps:
		t := pxToMM(p.Thickness)
		if t <= 0 {
			t = 0.2
		}
		ctx.SetStrokeColor(rgb(p.Color))
		ctx.SetStrokeWidth(t)
		path := &canvas.Path{}
		path.MoveTo(0, 0)
		path.LineTo(w, h)
		ctx.DrawPath(x, y, path)
		return nil

	case label.BoxProps:
		t := pxToMM(p.BorderWidth)
		if t <= 0 {
			t = 0.2
		}
		setFill(ctx, p.FillColor)
		ctx.SetStrokeColor(rgb(p.BorderColor))
		ctx.SetStrokeWidth(t)
		if p.CornerRadius > 0 {
			ctx.DrawPath(x, y, canvas.RoundedRectangle(w, h, pxToMM(p.CornerRadius)))
		} else {
			ctx.DrawPath(x, y, canvas.Rectangle(w, h))
		}
		return nil

	case label.CircleProps:
		t := pxToMM(p.BorderWidth)
		if t <= 0 {
			t = 0.2
		}
		radius := minFloat(w, h) / 2
		setFill(ctx, p.FillColor)
		ctx.SetStrokeColor(rgb(p.BorderColor))
		ctx.SetStrokeWidth(t)
		ctx.DrawPath(x, y, canvas.Circle(radius))
		return nil

	case label.ImageProps:
		return r.drawImage(ctx, p, x, y, w)

	case label.BarcodeProps:
		// Placeholder swatch: outline plus the data as caption.
		ctx.SetFillColor(canvas.Hex("#f0f0f0"))
		ctx.SetStrokeColor(canvas.Black)
		ctx.SetStrokeWidth(0.2)
		ctx.DrawPath(x, y, canvas.Rectangle(w, h))
		caption := label.TextProps{Text: p.Data, FontSize: 8, Color: label.Black}
		return r.drawText(ctx, caption, x, y+h, w)

	default:
		return nil
	}
}

func (r *Renderer) drawText(ctx *canvas.Context, p label.TextProps, x, y, w float64) error {
	if p.Text == "" {
		return nil
	}
	face, err := r.fontFace(p)
	if err != nil {
		return err
	}

	var align canvas.TextAlign
	anchorX := x
	switch strings.ToLower(p.Align) {
	case "center":
		align = canvas.Center
		anchorX = x + w/2
	case "right", "end":
		align = canvas.Right
		anchorX = x + w
	default:
		align = canvas.Left
	}

	line := canvas.NewTextLine(face, p.Text, align)
	baseline := y + face.Metrics().Ascent
	ctx.DrawText(anchorX, baseline, line)
	return nil
}

func (r *Renderer) drawImage(ctx *canvas.Context, p label.ImageProps, x, y, w float64) error {
	if p.Src == "" {
		return nil
	}
	path := p.Src
	if !filepath.IsAbs(path) {
		if r.baseDir == "" {
			return fmt.Errorf("preview: relative image path %q requires a base dir", p.Src)
		}
		path = filepath.Join(r.baseDir, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("preview: open image %s: %w", p.Src, err)
	}
	img, _, err := image.Decode(file)
	file.Close()
	if err != nil {
		return fmt.Errorf("preview: decode image %s: %w", p.Src, err)
	}

	width := w
	if width <= 0 {
		width = pxToMM(float64(img.Bounds().Dx()))
	}
	dpmm := float64(img.Bounds().Dx()) / width
	if dpmm <= 0 {
		dpmm = 1
	}
	ctx.DrawImage(x, y, img, canvas.DPMM(dpmm))
	return nil
}

func (r *Renderer) fontFace(p label.TextProps) (*canvas.FontFace, error) {
	family, err := r.ensureFamily()
	if err != nil {
		return nil, err
	}
	style := canvas.FontRegular
	if strings.Contains(strings.ToLower(p.FontWeight), "bold") {
		style = canvas.FontBold
	}
	sizePt := p.FontSize / label.PxPerInch * label.PtPerInch
	return family.Face(sizePt, rgb(p.Color), style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFamily() (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family != nil {
		return r.family, nil
	}
	family := canvas.NewFontFamily("preview")
	if r.fontPath != "" {
		data, err := os.ReadFile(r.fontPath)
		if err != nil {
			return nil, fmt.Errorf("preview: read font %s: %w", r.fontPath, err)
		}
		if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
			return nil, fmt.Errorf("preview: load font %s: %w", r.fontPath, err)
		}
	} else if err := family.LoadSystemFont(r.fontName, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("preview: load system font %q: %w", r.fontName, err)
	}
	r.family = family
	return family, nil
}

func setFill(ctx *canvas.Context, fill *label.Color) {
	if fill != nil {
		ctx.SetFillColor(rgb(*fill))
	} else {
		ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	}
}

func rgb(c label.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// pxToMM converts canvas units (96 per inch) to millimeters.
func pxToMM(v float64) float64 { return v / label.PxPerInch * label.MmPerInch }

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
