package render

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/ytget/icon-generator/internal/model"
)

var (
	red  = model.Color{R: 255, A: 255}
	blue = model.Color{B: 255, A: 255}
)

// baseConfig is a flat red square with a white square glyph at half scale
func baseConfig() model.IconConfig {
	return model.IconConfig{
		Name: "Test",
		Source: model.Source{
			Kind:   model.SourcePreset,
			Preset: "square",
			Tint:   model.ColorWhite,
		},
		Background: model.Background{
			Shape: model.ShapeSquare,
			Fill:  model.Fill{Kind: model.FillSolid, From: red},
		},
		Transform: model.Transform{Scale: 0.5, Opacity: 1},
	}
}

func TestResolve(t *testing.T) {
	cfg := baseConfig()
	cfg.Background.Shape = model.ShapeRounded
	cfg.Background.CornerRadius = 0.25
	cfg.Background.Padding = 0.1
	cfg.Border = model.Border{Enabled: true, Color: blue, Width: 32}
	cfg.Shadow = model.Shadow{Enabled: true, Color: model.ColorBlack, OffsetY: 20, Blur: 10}
	cfg.Source.Font.Size = 512

	p := Resolve(cfg, 512)
	if p.Factor != 0.5 {
		t.Errorf("Factor = %v, expected 0.5", p.Factor)
	}
	if p.Inset != 51 {
		t.Errorf("Inset = %v, expected 51", p.Inset)
	}
	if p.Box != 410 {
		t.Errorf("Box = %v, expected 410", p.Box)
	}
	if p.CornerRadius != 102.5 {
		t.Errorf("CornerRadius = %v, expected 102.5", p.CornerRadius)
	}
	if p.BorderWidth != 16 {
		t.Errorf("BorderWidth = %v, expected 16", p.BorderWidth)
	}
	if !p.ShadowEnabled || p.ShadowDY != 10 || p.ShadowBlur != 5 {
		t.Errorf("Unexpected shadow params: %+v", p)
	}
	if p.GlyphSide != 205 {
		t.Errorf("GlyphSide = %v, expected 205", p.GlyphSide)
	}
	if p.FontSize != 256 {
		t.Errorf("FontSize = %v, expected 256", p.FontSize)
	}
}

func TestResolve_SmallSizes(t *testing.T) {
	cfg := baseConfig()
	cfg.Border = model.Border{Enabled: true, Color: blue, Width: 8}
	cfg.Shadow = model.Shadow{Enabled: true, Color: model.ColorBlack, OffsetY: 20, Blur: 10}

	p := Resolve(cfg, 16)
	if p.BorderWidth != MinBorderWidth {
		t.Errorf("BorderWidth = %v, expected minimum %v", p.BorderWidth, MinBorderWidth)
	}
	if p.ShadowEnabled {
		t.Error("Shadow should be suppressed below MinShadowSize")
	}

	p = Resolve(cfg, 40)
	if !p.ShadowEnabled {
		t.Fatal("Shadow should be enabled at 40px")
	}
	if p.ShadowBlur != 0 {
		t.Errorf("Blur below MinBlurSigma should render a hard shadow, got %v", p.ShadowBlur)
	}

	cfg.Border.Width = 256
	cfg.Background.Padding = 0.4
	p = Resolve(cfg, 100)
	if p.BorderWidth != 5 {
		t.Errorf("BorderWidth should be capped at Box/4, got %v", p.BorderWidth)
	}

	if Resolve(baseConfig(), 1).GlyphSide != 1 {
		t.Error("GlyphSide should never drop below 1")
	}
}

func TestResolve_CornerRadiusOnlyForRounded(t *testing.T) {
	cfg := baseConfig()
	cfg.Background.CornerRadius = 0.3
	if p := Resolve(cfg, 100); p.CornerRadius != 0 {
		t.Errorf("Square shape should have no corner radius, got %v", p.CornerRadius)
	}
}

func TestRender_InvalidSize(t *testing.T) {
	r := NewRenderer(nil)
	for _, size := range []int{0, -5, MaxSize + 1} {
		if _, err := r.Render(baseConfig(), size); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Render(size=%d) expected ErrInvalidSize, got %v", size, err)
		}
	}
}

func TestRender_InvalidConfig(t *testing.T) {
	r := NewRenderer(nil)
	cfg := baseConfig()
	cfg.Source = model.Source{Kind: model.SourceText}
	if _, err := r.Render(cfg, 64); !errors.Is(err, model.ErrEmptyText) {
		t.Errorf("Expected ErrEmptyText, got %v", err)
	}
}

func TestRender_LayerOrder(t *testing.T) {
	r := NewRenderer(nil)
	img, err := r.Render(baseConfig(), 64)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if img.Bounds() != image.Rect(0, 0, 64, 64) {
		t.Fatalf("Unexpected bounds %v", img.Bounds())
	}
	if c := img.NRGBAAt(0, 0); c != red.NRGBA() {
		t.Errorf("Corner should show the background, got %v", c)
	}
	if c := img.NRGBAAt(32, 32); c != model.ColorWhite.NRGBA() {
		t.Errorf("Center should show the glyph, got %v", c)
	}
}

func TestRender_CircleShape(t *testing.T) {
	r := NewRenderer(nil)
	cfg := baseConfig()
	cfg.Background.Shape = model.ShapeCircle

	img, err := r.Render(cfg, 64)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if c := img.NRGBAAt(0, 0); c.A != 0 {
		t.Errorf("Corner outside the circle should be transparent, got %v", c)
	}
	if c := img.NRGBAAt(32, 4); c != red.NRGBA() {
		t.Errorf("Inside the circle should be red, got %v", c)
	}
}

func TestRender_SquircleShape(t *testing.T) {
	r := NewRenderer(nil)
	cfg := baseConfig()
	cfg.Background.Shape = model.ShapeSquircle

	img, err := r.Render(cfg, 128)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if c := img.NRGBAAt(0, 0); c.A != 0 {
		t.Errorf("Squircle corner should be transparent, got %v", c)
	}
	// A squircle reaches much further into the corner than a circle does
	if c := img.NRGBAAt(16, 16); c != red.NRGBA() {
		t.Errorf("Squircle should cover (16,16), got %v", c)
	}
}

func TestRender_Border(t *testing.T) {
	r := NewRenderer(nil)
	cfg := baseConfig()
	cfg.Border = model.Border{Enabled: true, Color: blue, Width: 64}

	img, err := r.Render(cfg, 256)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if c := img.NRGBAAt(2, 128); c != blue.NRGBA() {
		t.Errorf("Edge should show the border, got %v", c)
	}
	if c := img.NRGBAAt(40, 128); c != red.NRGBA() {
		t.Errorf("Inside the border should show the fill, got %v", c)
	}
}

func TestRender_Padding(t *testing.T) {
	r := NewRenderer(nil)
	cfg := baseConfig()
	cfg.Background.Padding = 0.25

	img, err := r.Render(cfg, 64)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if c := img.NRGBAAt(8, 8); c.A != 0 {
		t.Errorf("Padding area should be transparent, got %v", c)
	}
	if c := img.NRGBAAt(18, 18); c != red.NRGBA() {
		t.Errorf("Inset shape should be red, got %v", c)
	}
}

func TestRender_Shadow(t *testing.T) {
	r := NewRenderer(nil)
	cfg := baseConfig()
	cfg.Shadow = model.Shadow{Enabled: true, Color: model.ColorBlack, OffsetY: 64}

	img, err := r.Render(cfg, 256)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Glyph covers roughly y 80..176, the shadow is 16px lower
	if c := img.NRGBAAt(128, 185); c.R > 50 {
		t.Errorf("Expected shadow below the glyph, got %v", c)
	}
	if c := img.NRGBAAt(128, 128); c != model.ColorWhite.NRGBA() {
		t.Errorf("Glyph should be drawn over its shadow, got %v", c)
	}
	if c := img.NRGBAAt(128, 230); c != red.NRGBA() {
		t.Errorf("Below the shadow should be background, got %v", c)
	}
}

func TestRender_BlurredShadowSpreads(t *testing.T) {
	r := NewRenderer(nil)
	cfg := baseConfig()
	cfg.Shadow = model.Shadow{Enabled: true, Color: model.ColorBlack, Blur: 40}

	img, err := r.Render(cfg, 256)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Just outside the glyph edge the blurred shadow darkens the background
	if c := img.NRGBAAt(128, 182); c.R >= 255 {
		t.Errorf("Expected blurred shadow outside the glyph, got %v", c)
	}
}

func TestRender_OpacityZeroHidesGlyph(t *testing.T) {
	r := NewRenderer(nil)
	cfg := baseConfig()
	cfg.Transform.Opacity = 0

	img, err := r.Render(cfg, 64)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if c := img.NRGBAAt(32, 32); c != red.NRGBA() {
		t.Errorf("Transparent glyph should leave background visible, got %v", c)
	}
}

func TestRender_GlyphOffset(t *testing.T) {
	r := NewRenderer(nil)
	cfg := baseConfig()
	cfg.Transform.Scale = 0.25
	cfg.Transform.OffsetX = 0.25

	img, err := r.Render(cfg, 128)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if c := img.NRGBAAt(64, 64); c != red.NRGBA() {
		t.Errorf("Center should be empty after the offset, got %v", c)
	}
	if c := img.NRGBAAt(96, 64); c != model.ColorWhite.NRGBA() {
		t.Errorf("Glyph should be shifted right, got %v", c)
	}
}

func TestRender_LinearGradient(t *testing.T) {
	r := NewRenderer(nil)
	cfg := baseConfig()
	cfg.Background.Fill = model.Fill{Kind: model.FillLinear, From: model.ColorBlack, To: model.ColorWhite, Angle: 0}
	cfg.Transform.Opacity = 0

	img, err := r.Render(cfg, 64)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if c := img.NRGBAAt(1, 32); c.R > 30 {
		t.Errorf("Left edge should be near the start color, got %v", c)
	}
	if c := img.NRGBAAt(62, 32); c.R < 225 {
		t.Errorf("Right edge should be near the end color, got %v", c)
	}
}

func TestRender_TextSource(t *testing.T) {
	r := NewRenderer(nil)
	cfg := baseConfig()
	cfg.Source = model.Source{
		Kind:     model.SourceText,
		Text:     "Icon Generator",
		Template: model.TemplateMonogram,
		Font:     model.Font{Family: model.FontBold},
		Tint:     model.ColorWhite,
	}
	cfg.Transform.Scale = 0.8

	img, err := r.Render(cfg, 128)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var white int
	for y := 0; y < 128; y++ {
		for x := 0; x < 128; x++ {
			if c := img.NRGBAAt(x, y); c.G > 200 {
				white++
			}
		}
	}
	if white == 0 {
		t.Error("Expected monogram pixels on the canvas")
	}
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer(nil)
	cfg := model.DefaultIconConfig()

	first, err := r.RenderPNG(cfg, 96)
	if err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}
	second, err := r.RenderPNG(cfg, 96)
	if err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Rendering the same config twice should produce identical bytes")
	}

	decoded, err := png.Decode(bytes.NewReader(first))
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 96 || decoded.Bounds().Dy() != 96 {
		t.Errorf("Decoded size = %v, expected 96x96", decoded.Bounds())
	}
}

// centroid returns the alpha-weighted center of mass of img
func centroid(img *image.NRGBA) (float64, float64) {
	var sx, sy, total float64
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := float64(img.NRGBAAt(x, y).A)
			sx += a * float64(x)
			sy += a * float64(y)
			total += a
		}
	}
	if total == 0 {
		return 0, 0
	}
	return sx / total, sy / total
}

func TestForeground_Transforms(t *testing.T) {
	r := NewRenderer(nil)
	cfg := baseConfig()
	cfg.Source.Preset = "play"
	cfg.Transform.Scale = 1
	p := Resolve(cfg, 240)
	mid := float64(p.GlyphSide) / 2

	plain, err := r.foreground(cfg, p)
	if err != nil {
		t.Fatalf("foreground failed: %v", err)
	}
	px, _ := centroid(plain)
	if px >= mid {
		t.Fatalf("Play glyph mass should sit left of center, got %v", px)
	}

	flipped := cfg
	flipped.Transform.FlipH = true
	img, err := r.foreground(flipped, p)
	if err != nil {
		t.Fatalf("foreground failed: %v", err)
	}
	if x, _ := centroid(img); x <= mid {
		t.Errorf("FlipH should move the mass right of center, got %v", x)
	}

	rotated := cfg
	rotated.Transform.Rotation = 90
	img, err = r.foreground(rotated, p)
	if err != nil {
		t.Fatalf("foreground failed: %v", err)
	}
	if _, y := centroid(img); y >= float64(img.Bounds().Dy())/2 {
		t.Errorf("Clockwise rotation should point the glyph down with its mass above center, got %v", y)
	}
}
