package glyph

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"path"
	"sort"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed presets/*.svg
var presetFS embed.FS

const presetDir = "presets"

// ErrUnknownPreset is returned for preset names that are not embedded
var ErrUnknownPreset = errors.New("unknown preset glyph")

// Presets returns the names of the embedded preset glyphs, sorted
func Presets() []string {
	entries, err := presetFS.ReadDir(presetDir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".svg" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".svg"))
	}
	sort.Strings(names)
	return names
}

// PresetSVG returns the raw SVG document of a preset glyph
func PresetSVG(name string) ([]byte, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	data, err := presetFS.ReadFile(path.Join(presetDir, name+".svg"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return data, nil
}

// rasterizeSVG renders an SVG document into a side×side square, centered
// and scaled to fit while preserving aspect ratio
func rasterizeSVG(svgData []byte, side int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	// Get the SVG's native size
	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		w, h = float64(side), float64(side)
	}

	scale := float64(side) / max(w, h)
	outW := w * scale
	outH := h * scale
	offsetX := (float64(side) - outW) / 2
	offsetY := (float64(side) - outH) / 2
	icon.SetTarget(offsetX, offsetY, outW, outH)

	img := image.NewRGBA(image.Rect(0, 0, side, side))
	scanner := rasterx.NewScannerGV(side, side, img, img.Bounds())
	raster := rasterx.NewDasher(side, side, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}
