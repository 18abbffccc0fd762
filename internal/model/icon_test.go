package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected Color
		wantErr  bool
	}{
		{"#fff", Color{255, 255, 255, 255}, false},
		{"#000000", Color{0, 0, 0, 255}, false},
		{"#11223344", Color{0x11, 0x22, 0x33, 0x44}, false},
		{" #ABCDEF ", Color{0xab, 0xcd, 0xef, 255}, false},
		{"white", ColorWhite, false},
		{"Transparent", ColorTransparent, false},
		{"#12345", Color{}, true},
		{"#gggggg", Color{}, true},
		{"rgb(1,2,3)", Color{}, true},
	}

	for _, test := range tests {
		result, err := ParseColor(test.input)
		if test.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q) expected error, got %v", test.input, result)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q) unexpected error: %v", test.input, err)
			continue
		}
		if result != test.expected {
			t.Errorf("ParseColor(%q) = %v, expected %v", test.input, result, test.expected)
		}
	}
}

func TestColorHex(t *testing.T) {
	if got := (Color{1, 2, 3, 255}).Hex(); got != "#010203" {
		t.Errorf("Hex() = %s, expected #010203", got)
	}
	if got := (Color{1, 2, 3, 4}).Hex(); got != "#01020304" {
		t.Errorf("Hex() = %s, expected #01020304", got)
	}
}

func TestColorJSON(t *testing.T) {
	data, err := json.Marshal(Border{Enabled: true, Color: Color{255, 0, 0, 128}, Width: 4})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var border Border
	if err := json.Unmarshal(data, &border); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if border.Color != (Color{255, 0, 0, 128}) {
		t.Errorf("Color round trip mismatch: %v", border.Color)
	}

	if err := json.Unmarshal([]byte(`{"color": 12}`), &border); err == nil {
		t.Error("Expected error for numeric color")
	}
}

func TestNormalizeClampsValues(t *testing.T) {
	cfg := IconConfig{
		Background: Background{CornerRadius: 2, Padding: -1},
		Border:     Border{Width: 5000},
		Shadow:     Shadow{Blur: -3, OffsetX: 9999},
		Transform:  Transform{Scale: 10, Rotation: 450, Opacity: 3},
	}
	cfg.Normalize()

	if cfg.Name != "AppIcon" {
		t.Errorf("Expected default name, got %q", cfg.Name)
	}
	if cfg.Source.Kind != SourcePreset {
		t.Errorf("Expected default source kind, got %q", cfg.Source.Kind)
	}
	if cfg.Background.CornerRadius != MaxCornerRadius {
		t.Errorf("CornerRadius = %v, expected %v", cfg.Background.CornerRadius, MaxCornerRadius)
	}
	if cfg.Background.Padding != 0 {
		t.Errorf("Padding = %v, expected 0", cfg.Background.Padding)
	}
	if cfg.Border.Width != MaxBorderWidth {
		t.Errorf("Border width = %v, expected %v", cfg.Border.Width, MaxBorderWidth)
	}
	if cfg.Shadow.Blur != 0 || cfg.Shadow.OffsetX != MaxShadowOffset {
		t.Errorf("Shadow not clamped: %+v", cfg.Shadow)
	}
	if cfg.Transform.Scale != MaxGlyphScale {
		t.Errorf("Scale = %v, expected %v", cfg.Transform.Scale, MaxGlyphScale)
	}
	if cfg.Transform.Rotation != 90 {
		t.Errorf("Rotation = %v, expected 90", cfg.Transform.Rotation)
	}
	if cfg.Transform.Opacity != 1 {
		t.Errorf("Opacity = %v, expected 1", cfg.Transform.Opacity)
	}
	if cfg.Background.Fill.Kind != FillSolid {
		t.Errorf("Fill kind = %q, expected solid", cfg.Background.Fill.Kind)
	}
}

func TestValidate(t *testing.T) {
	valid := DefaultIconConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("Default config should be valid, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*IconConfig)
		err    error
	}{
		{"empty text", func(c *IconConfig) { c.Source = Source{Kind: SourceText, Text: "  "} }, ErrEmptyText},
		{"no image", func(c *IconConfig) { c.Source = Source{Kind: SourceImage} }, ErrNoImagePath},
		{"no preset", func(c *IconConfig) { c.Source.Preset = "" }, ErrNoPreset},
		{"bad source", func(c *IconConfig) { c.Source.Kind = "emoji" }, ErrUnknownSource},
		{"bad shape", func(c *IconConfig) { c.Background.Shape = "hexagon" }, ErrUnknownShape},
		{"bad fill", func(c *IconConfig) { c.Background.Fill.Kind = "conic" }, ErrUnknownFill},
		{"bad template", func(c *IconConfig) { c.Source.Template = "vertical" }, ErrUnknownLayout},
		{"bad family", func(c *IconConfig) { c.Source.Font.Family = "serif" }, ErrUnknownFamily},
		{"bad padding", func(c *IconConfig) { c.Background.Padding = 0.9 }, ErrInvalidPadding},
	}

	for _, test := range tests {
		cfg := DefaultIconConfig()
		test.mutate(&cfg)
		err := cfg.Validate()
		if !errors.Is(err, test.err) {
			t.Errorf("%s: expected %v, got %v", test.name, test.err, err)
		}
	}
}
