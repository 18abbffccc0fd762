package glyph

import (
	"fmt"
	"image"

	"github.com/ytget/icon-generator/internal/model"
)

// Resolver produces glyph rasters for icon sources. It is safe for concurrent use.
type Resolver struct {
	images *imageCache
}

// NewResolver creates a resolver with an empty image cache
func NewResolver() *Resolver {
	return &Resolver{images: newImageCache()}
}

// Glyph rasterizes src into a side×side transparent square. fontSize applies
// to text sources only and is in pixels; 0 fits the text to the square.
func (r *Resolver) Glyph(src model.Source, side int, fontSize float64) (*image.NRGBA, error) {
	if side < 1 {
		return nil, fmt.Errorf("invalid glyph side: %d", side)
	}

	switch src.Kind {
	case model.SourcePreset:
		data, err := PresetSVG(src.Preset)
		if err != nil {
			return nil, err
		}
		img, err := rasterizeSVG(data, side)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", src.Preset, err)
		}
		return Tint(img, src.Tint.NRGBA()), nil

	case model.SourceImage:
		if src.ImagePath == "" {
			return nil, model.ErrNoImagePath
		}
		img, err := r.images.load(src.ImagePath)
		if err != nil {
			return nil, err
		}
		fitted := fitSquare(img, side)
		if src.TintImage {
			return Tint(fitted, src.Tint.NRGBA()), nil
		}
		return fitted, nil

	case model.SourceText:
		return renderText(src, side, fontSize)

	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownSource, src.Kind)
	}
}
