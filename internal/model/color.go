package model

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an 8-bit RGBA color. It is stored as a hex string in JSON.
type Color struct {
	R, G, B, A uint8
}

// Common colors
var (
	ColorTransparent = Color{}
	ColorBlack       = Color{0, 0, 0, 255}
	ColorWhite       = Color{255, 255, 255, 255}
)

// namedColors lists the color names accepted by ParseColor
var namedColors = map[string]Color{
	"transparent": ColorTransparent,
	"black":       ColorBlack,
	"white":       ColorWhite,
	"red":         {255, 59, 48, 255},
	"orange":      {255, 149, 0, 255},
	"yellow":      {255, 204, 0, 255},
	"green":       {52, 199, 89, 255},
	"teal":        {48, 176, 199, 255},
	"blue":        {0, 122, 255, 255},
	"indigo":      {88, 86, 214, 255},
	"purple":      {175, 82, 222, 255},
	"pink":        {255, 45, 85, 255},
	"gray":        {142, 142, 147, 255},
	"grey":        {142, 142, 147, 255},
}

// NRGBA converts the color to a non-premultiplied color.NRGBA
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// WithAlpha returns the color with its alpha channel replaced
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Hex formats the color as #RRGGBB, or #RRGGBBAA when not fully opaque
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// String implements fmt.Stringer
func (c Color) String() string {
	return c.Hex()
}

// MarshalJSON encodes the color as a hex string
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}

// UnmarshalJSON decodes a hex string or color name
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("color must be a string: %w", err)
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor parses #RGB, #RRGGBB, #RRGGBBAA or a named color
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("unsupported color format: %q", s)
	}
	hex := strings.TrimPrefix(s, "#")

	switch len(hex) {
	case 3:
		// #RGB expands each digit: #abc == #aabbcc
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		fallthrough
	case 6:
		hex += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("invalid hex color length: %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// MustParseColor is like ParseColor but panics on error. Used for defaults.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
