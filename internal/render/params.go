package render

import (
	"math"

	"github.com/ytget/icon-generator/internal/model"
)

const (
	// ReferenceSize is the canvas side design units are expressed against
	ReferenceSize = 1024
	// MinShadowSize is the smallest icon side that still gets a shadow
	MinShadowSize = 32
	// MinBlurSigma is the smallest blur that is worth a blur pass
	MinBlurSigma = 0.5
	// MinBorderWidth keeps enabled borders visible at small sizes
	MinBorderWidth = 1.0
)

// Params are the pixel-space values for rendering one config at one size
type Params struct {
	Size   int
	Factor float64 // size / ReferenceSize

	Inset        float64 // distance of the background shape from the canvas edge
	Box          float64 // side of the background shape
	CornerRadius float64

	BorderWidth float64 // 0 when there is no border

	ShadowEnabled bool
	ShadowDX      float64
	ShadowDY      float64
	ShadowBlur    float64 // gaussian sigma, 0 for a hard shadow

	GlyphSide int
	GlyphDX   float64
	GlyphDY   float64

	FontSize float64 // 0 fits text to the glyph square
}

// Resolve converts the design-unit config into pixel parameters for a canvas of side size
func Resolve(cfg model.IconConfig, size int) Params {
	s := float64(size)
	p := Params{
		Size:   size,
		Factor: s / ReferenceSize,
	}

	p.Inset = math.Round(cfg.Background.Padding * s)
	p.Box = math.Max(1, s-2*p.Inset)

	if cfg.Background.Shape == model.ShapeRounded {
		p.CornerRadius = cfg.Background.CornerRadius * p.Box
	}

	if cfg.Border.Enabled && cfg.Border.Width > 0 && cfg.Border.Color.A > 0 {
		p.BorderWidth = math.Min(math.Max(cfg.Border.Width*p.Factor, MinBorderWidth), p.Box/4)
	}

	if cfg.Shadow.Enabled && cfg.Shadow.Color.A > 0 && size >= MinShadowSize {
		p.ShadowEnabled = true
		p.ShadowDX = cfg.Shadow.OffsetX * p.Factor
		p.ShadowDY = cfg.Shadow.OffsetY * p.Factor
		if sigma := cfg.Shadow.Blur * p.Factor; sigma >= MinBlurSigma {
			p.ShadowBlur = sigma
		}
	}

	p.GlyphSide = max(1, int(math.Round(cfg.Transform.Scale*p.Box)))
	p.GlyphDX = cfg.Transform.OffsetX * s
	p.GlyphDY = cfg.Transform.OffsetY * s

	if cfg.Source.Font.Size > 0 {
		p.FontSize = cfg.Source.Font.Size * p.Factor
	}

	return p
}
