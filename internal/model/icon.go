package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Validation errors
var (
	ErrEmptyText      = errors.New("text source requires non-empty text")
	ErrNoImagePath    = errors.New("image source requires an image path")
	ErrNoPreset       = errors.New("preset source requires a preset name")
	ErrUnknownSource  = errors.New("unknown source kind")
	ErrUnknownShape   = errors.New("unknown background shape")
	ErrUnknownFill    = errors.New("unknown fill kind")
	ErrUnknownLayout  = errors.New("unknown text template")
	ErrUnknownFamily  = errors.New("unknown font family")
	ErrInvalidPadding = errors.New("invalid padding")
)

// SourceKind selects where the foreground glyph comes from
type SourceKind string

const (
	SourcePreset SourceKind = "preset"
	SourceImage  SourceKind = "image"
	SourceText   SourceKind = "text"
)

// TextTemplate controls how source text is laid out
type TextTemplate string

const (
	// TemplatePlain draws the trimmed text on a single line
	TemplatePlain TextTemplate = "plain"
	// TemplateMonogram draws the initials of the first two words
	TemplateMonogram TextTemplate = "monogram"
	// TemplateStacked splits words over at most two lines
	TemplateStacked TextTemplate = "stacked"
)

// FontFamily names a bundled font
type FontFamily string

const (
	FontRegular FontFamily = "regular"
	FontBold    FontFamily = "bold"
	FontMono    FontFamily = "mono"
)

// Shape is the outline of the background layer
type Shape string

const (
	ShapeSquare   Shape = "square"
	ShapeRounded  Shape = "rounded"
	ShapeCircle   Shape = "circle"
	ShapeSquircle Shape = "squircle"
)

// FillKind selects a solid color or a gradient
type FillKind string

const (
	FillSolid  FillKind = "solid"
	FillLinear FillKind = "linear"
	FillRadial FillKind = "radial"
)

// Limits for normalized fields
const (
	MaxCornerRadius = 0.5
	MaxPadding      = 0.4
	MinGlyphScale   = 0.05
	MaxGlyphScale   = 1.5
	MaxOffset       = 0.5
	MaxBorderWidth  = 256
	MaxShadowBlur   = 256
	MaxShadowOffset = 512
	MaxFontSize     = 2048
)

// Font describes the typeface for text glyphs
type Font struct {
	Family FontFamily `json:"family"`
	// Size in design units; 0 means fit the glyph box
	Size float64 `json:"size"`
}

// Source describes the foreground glyph
type Source struct {
	Kind      SourceKind   `json:"kind"`
	Preset    string       `json:"preset"`
	ImagePath string       `json:"image_path"`
	Text      string       `json:"text"`
	Template  TextTemplate `json:"template"`
	Font      Font         `json:"font"`
	Tint      Color        `json:"tint"`
	TintImage bool         `json:"tint_image"`
}

// Fill is a solid color or a two-stop gradient
type Fill struct {
	Kind FillKind `json:"kind"`
	From Color    `json:"from"`
	To   Color    `json:"to"`
	// Angle of a linear gradient in degrees, 0 = left to right, 90 = top to bottom
	Angle float64 `json:"angle"`
}

// Background is the bottom layer of the icon
type Background struct {
	Shape Shape `json:"shape"`
	Fill  Fill  `json:"fill"`
	// CornerRadius as a fraction of the shape side, rounded shapes only
	CornerRadius float64 `json:"corner_radius"`
	// Padding as a fraction of the canvas side
	Padding float64 `json:"padding"`
}

// Border is stroked along the inside of the background shape
type Border struct {
	Enabled bool    `json:"enabled"`
	Color   Color   `json:"color"`
	Width   float64 `json:"width"` // design units
}

// Shadow is cast by the foreground glyph onto the background
type Shadow struct {
	Enabled bool    `json:"enabled"`
	Color   Color   `json:"color"`
	OffsetX float64 `json:"offset_x"` // design units
	OffsetY float64 `json:"offset_y"` // design units
	Blur    float64 `json:"blur"`     // design units
}

// Transform positions the foreground glyph inside the background box
type Transform struct {
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"` // degrees, clockwise
	OffsetX  float64 `json:"offset_x"` // fraction of canvas side
	OffsetY  float64 `json:"offset_y"` // fraction of canvas side
	FlipH    bool    `json:"flip_h,omitempty"`
	FlipV    bool    `json:"flip_v,omitempty"`
	Opacity  float64 `json:"opacity"`
}

// IconConfig is everything needed to render an icon at any size
type IconConfig struct {
	Name       string     `json:"name"`
	Source     Source     `json:"source"`
	Background Background `json:"background"`
	Border     Border     `json:"border"`
	Shadow     Shadow     `json:"shadow"`
	Transform  Transform  `json:"transform"`
}

// DefaultIconConfig returns the configuration shown on first launch
func DefaultIconConfig() IconConfig {
	return IconConfig{
		Name: "AppIcon",
		Source: Source{
			Kind:     SourcePreset,
			Preset:   "star",
			Template: TemplateMonogram,
			Font:     Font{Family: FontBold},
			Tint:     ColorWhite,
		},
		Background: Background{
			Shape: ShapeRounded,
			Fill: Fill{
				Kind:  FillLinear,
				From:  MustParseColor("#5ac8fa"),
				To:    MustParseColor("#007aff"),
				Angle: 90,
			},
			CornerRadius: 0.225,
		},
		Border: Border{
			Color: ColorWhite,
			Width: 16,
		},
		Shadow: Shadow{
			Enabled: true,
			Color:   ColorBlack.WithAlpha(96),
			OffsetY: 12,
			Blur:    18,
		},
		Transform: Transform{
			Scale:   0.6,
			Opacity: 1,
		},
	}
}

// Normalize clamps numeric fields into range and fills empty enums with defaults
func (c *IconConfig) Normalize() {
	def := DefaultIconConfig()

	if strings.TrimSpace(c.Name) == "" {
		c.Name = def.Name
	}

	if c.Source.Kind == "" {
		c.Source.Kind = def.Source.Kind
	}
	if c.Source.Template == "" {
		c.Source.Template = TemplatePlain
	}
	if c.Source.Font.Family == "" {
		c.Source.Font.Family = FontRegular
	}
	c.Source.Font.Size = clamp(c.Source.Font.Size, 0, MaxFontSize)

	if c.Background.Shape == "" {
		c.Background.Shape = def.Background.Shape
	}
	if c.Background.Fill.Kind == "" {
		c.Background.Fill.Kind = FillSolid
	}
	c.Background.Fill.Angle = math.Mod(c.Background.Fill.Angle, 360)
	c.Background.CornerRadius = clamp(c.Background.CornerRadius, 0, MaxCornerRadius)
	c.Background.Padding = clamp(c.Background.Padding, 0, MaxPadding)

	c.Border.Width = clamp(c.Border.Width, 0, MaxBorderWidth)

	c.Shadow.Blur = clamp(c.Shadow.Blur, 0, MaxShadowBlur)
	c.Shadow.OffsetX = clamp(c.Shadow.OffsetX, -MaxShadowOffset, MaxShadowOffset)
	c.Shadow.OffsetY = clamp(c.Shadow.OffsetY, -MaxShadowOffset, MaxShadowOffset)

	if c.Transform.Scale == 0 {
		c.Transform.Scale = def.Transform.Scale
	}
	c.Transform.Scale = clamp(c.Transform.Scale, MinGlyphScale, MaxGlyphScale)
	c.Transform.Rotation = math.Mod(c.Transform.Rotation, 360)
	c.Transform.OffsetX = clamp(c.Transform.OffsetX, -MaxOffset, MaxOffset)
	c.Transform.OffsetY = clamp(c.Transform.OffsetY, -MaxOffset, MaxOffset)
	c.Transform.Opacity = clamp(c.Transform.Opacity, 0, 1)
}

// Validate reports configurations that cannot be rendered
func (c IconConfig) Validate() error {
	switch c.Source.Kind {
	case SourcePreset:
		if strings.TrimSpace(c.Source.Preset) == "" {
			return ErrNoPreset
		}
	case SourceImage:
		if strings.TrimSpace(c.Source.ImagePath) == "" {
			return ErrNoImagePath
		}
	case SourceText:
		if strings.TrimSpace(c.Source.Text) == "" {
			return ErrEmptyText
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, c.Source.Kind)
	}

	switch c.Source.Template {
	case "", TemplatePlain, TemplateMonogram, TemplateStacked:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLayout, c.Source.Template)
	}

	switch c.Source.Font.Family {
	case "", FontRegular, FontBold, FontMono:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFamily, c.Source.Font.Family)
	}

	switch c.Background.Shape {
	case "", ShapeSquare, ShapeRounded, ShapeCircle, ShapeSquircle:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownShape, c.Background.Shape)
	}

	switch c.Background.Fill.Kind {
	case "", FillSolid, FillLinear, FillRadial:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFill, c.Background.Fill.Kind)
	}

	if math.IsNaN(c.Background.Padding) || c.Background.Padding < 0 || c.Background.Padding > MaxPadding {
		return fmt.Errorf("%w: %v", ErrInvalidPadding, c.Background.Padding)
	}

	return nil
}

// Shapes returns the selectable background shapes
func Shapes() []Shape {
	return []Shape{ShapeSquare, ShapeRounded, ShapeCircle, ShapeSquircle}
}

// FillKinds returns the selectable fill kinds
func FillKinds() []FillKind {
	return []FillKind{FillSolid, FillLinear, FillRadial}
}

// TextTemplates returns the selectable text templates
func TextTemplates() []TextTemplate {
	return []TextTemplate{TemplatePlain, TemplateMonogram, TemplateStacked}
}

// FontFamilies returns the bundled font families
func FontFamilies() []FontFamily {
	return []FontFamily{FontRegular, FontBold, FontMono}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
