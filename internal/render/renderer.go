package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/ytget/icon-generator/internal/glyph"
	"github.com/ytget/icon-generator/internal/model"
)

// ErrInvalidSize is returned for canvas sizes below one pixel
var ErrInvalidSize = errors.New("invalid icon size")

// MaxSize bounds the canvas side accepted by Render
const MaxSize = 4096

// Renderer composites icon layers. It is safe for concurrent use.
type Renderer struct {
	glyphs *glyph.Resolver
}

// NewRenderer creates a renderer that resolves glyphs through glyphs.
// A nil resolver gets a fresh one.
func NewRenderer(glyphs *glyph.Resolver) *Renderer {
	if glyphs == nil {
		glyphs = glyph.NewResolver()
	}
	return &Renderer{glyphs: glyphs}
}

// Render draws cfg on a size×size canvas: background shape, then the glyph
// shadow, then the transformed glyph
func (r *Renderer) Render(cfg model.IconConfig, size int) (*image.NRGBA, error) {
	if size < 1 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := Resolve(cfg, size)

	canvas := drawBackground(cfg, p)

	fg, err := r.foreground(cfg, p)
	if err != nil {
		return nil, err
	}

	origin := glyphOrigin(p, fg.Bounds())

	if p.ShadowEnabled {
		canvas = drawShadow(canvas, fg, origin, cfg.Shadow.Color, p, cfg.Transform.Opacity)
	}

	return imaging.Overlay(canvas, fg, origin, cfg.Transform.Opacity), nil
}

// RenderPNG renders cfg at size and returns PNG bytes
func (r *Renderer) RenderPNG(cfg model.IconConfig, size int) ([]byte, error) {
	img, err := r.Render(cfg, size)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodePNG writes img as PNG
func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// drawBackground fills and strokes the background shape
func drawBackground(cfg model.IconConfig, p Params) *image.NRGBA {
	dc := gg.NewContext(p.Size, p.Size)

	x, y, w := p.Inset, p.Inset, p.Box
	if cfg.Background.Fill.Kind != model.FillSolid || cfg.Background.Fill.From.A > 0 {
		shapePath(dc, cfg.Background.Shape, x, y, w, w, p.CornerRadius)
		setFill(dc, cfg.Background.Fill, x, y, w, w)
		dc.Fill()
	}

	if p.BorderWidth > 0 {
		// Stroke centered half a width inside the edge so it never leaves the shape
		half := p.BorderWidth / 2
		shapePath(dc, cfg.Background.Shape, x+half, y+half, w-p.BorderWidth, w-p.BorderWidth, math.Max(0, p.CornerRadius-half))
		dc.SetLineWidth(p.BorderWidth)
		dc.SetColor(cfg.Border.Color.NRGBA())
		dc.Stroke()
	}

	return imaging.Clone(dc.Image())
}

// foreground resolves the glyph and applies flips and rotation
func (r *Renderer) foreground(cfg model.IconConfig, p Params) (*image.NRGBA, error) {
	fg, err := r.glyphs.Glyph(cfg.Source, p.GlyphSide, p.FontSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render glyph: %w", err)
	}

	if cfg.Transform.FlipH {
		fg = imaging.FlipH(fg)
	}
	if cfg.Transform.FlipV {
		fg = imaging.FlipV(fg)
	}
	if cfg.Transform.Rotation != 0 {
		// imaging rotates counter-clockwise
		fg = imaging.Rotate(fg, -cfg.Transform.Rotation, color.Transparent)
	}
	return fg, nil
}

// glyphOrigin returns the top-left point that centers a glyph of bounds b
// on the canvas center plus the glyph offset
func glyphOrigin(p Params, b image.Rectangle) image.Point {
	cx := float64(p.Size)/2 + p.GlyphDX
	cy := float64(p.Size)/2 + p.GlyphDY
	return image.Pt(
		int(math.Round(cx-float64(b.Dx())/2)),
		int(math.Round(cy-float64(b.Dy())/2)),
	)
}

// drawShadow composites the blurred glyph silhouette at the shadow offset
func drawShadow(canvas, fg *image.NRGBA, origin image.Point, c model.Color, p Params, opacity float64) *image.NRGBA {
	silhouette := glyph.Tint(fg, c.NRGBA())

	pad := 0
	if p.ShadowBlur > 0 {
		// Gaussian tails are negligible past three sigma
		pad = int(math.Ceil(p.ShadowBlur * 3))
		b := silhouette.Bounds()
		padded := imaging.New(b.Dx()+2*pad, b.Dy()+2*pad, color.Transparent)
		padded = imaging.Paste(padded, silhouette, image.Pt(pad, pad))
		silhouette = imaging.Blur(padded, p.ShadowBlur)
	}

	at := image.Pt(
		origin.X-pad+int(math.Round(p.ShadowDX)),
		origin.Y-pad+int(math.Round(p.ShadowDY)),
	)
	return imaging.Overlay(canvas, silhouette, at, opacity)
}
