package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytget/icon-generator/internal/archive"
	"github.com/ytget/icon-generator/internal/config"
	"github.com/ytget/icon-generator/internal/glyph"
	"github.com/ytget/icon-generator/internal/iconset"
	"github.com/ytget/icon-generator/internal/model"
	"github.com/ytget/icon-generator/internal/platform"
	"github.com/ytget/icon-generator/internal/render"
)

// overrides holds the command line values that replace configuration fields
type overrides struct {
	preset     string
	text       string
	template   string
	background string
}

func main() {
	var (
		configFile  = flag.String("config", "", "JSON icon configuration (default configuration when empty)")
		outputFile  = flag.String("out", "", "output file, .png for one image or .zip for an icon set")
		size        = flag.Int("size", config.DefaultExportSize, "PNG side in pixels")
		platforms   = flag.String("platforms", "", "comma separated platforms for icon sets (all when empty)")
		password    = flag.String("password", "", "encrypt the icon set archive with this password")
		preset      = flag.String("preset", "", "use a preset glyph")
		text        = flag.String("text", "", "use a text glyph")
		template    = flag.String("template", "", "text layout: plain, monogram or stacked")
		background  = flag.String("bg", "", "solid background color (#RRGGBB or name)")
		listPresets = flag.Bool("list-presets", false, "print the preset glyph names")
		listArchive = flag.String("list", "", "print the entries of an icon set archive")
		help        = flag.Bool("help", false, "show help")
	)

	flag.Parse()

	if *help {
		printUsage()
		return
	}

	if *listPresets {
		for _, name := range glyph.Presets() {
			fmt.Println(name)
		}
		return
	}

	if *listArchive != "" {
		names, err := archive.ReadNames(*listArchive)
		if err != nil {
			log.Fatalf("Failed to list archive: %v", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	if *outputFile == "" {
		log.Fatal("Output file (-out) is required")
	}

	cfg := model.DefaultIconConfig()
	if *configFile != "" {
		loaded, err := config.LoadIconConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		cfg = loaded
	}

	cfg, err := applyOverrides(cfg, overrides{
		preset:     *preset,
		text:       *text,
		template:   *template,
		background: *background,
	})
	if err != nil {
		log.Fatalf("Invalid option: %v", err)
	}

	renderer := render.NewRenderer(nil)

	if isArchive(*outputFile) {
		list, err := iconset.ParsePlatforms(*platforms)
		if err != nil {
			log.Fatalf("Invalid platforms: %v", err)
		}
		entries, err := iconset.Generate(context.Background(), renderer, cfg, list, nil)
		if err != nil {
			log.Fatalf("Failed to generate icon set: %v", err)
		}
		if err := archive.WriteFile(*outputFile, entries, archive.Options{Password: *password}); err != nil {
			log.Fatalf("Failed to write archive: %v", err)
		}
		fmt.Printf("Icon set written: %s (%d files)\n", *outputFile, len(entries))
		return
	}

	if *size < config.MinExportSize || *size > config.MaxExportSize {
		log.Fatalf("Size must be between %d and %d, got %d", config.MinExportSize, config.MaxExportSize, *size)
	}
	data, err := renderer.RenderPNG(cfg, *size)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := os.WriteFile(*outputFile, data, platform.DefaultFilePermissions); err != nil {
		log.Fatalf("Failed to write output file: %v", err)
	}
	fmt.Printf("Icon written: %s (%dx%d)\n", *outputFile, *size, *size)
}

// applyOverrides replaces the configuration fields set on the command line.
// A preset and a text glyph are mutually exclusive.
func applyOverrides(cfg model.IconConfig, o overrides) (model.IconConfig, error) {
	if o.preset != "" && o.text != "" {
		return cfg, fmt.Errorf("-preset and -text cannot be combined")
	}

	if o.preset != "" {
		if _, err := glyph.PresetSVG(o.preset); err != nil {
			return cfg, err
		}
		cfg.Source.Kind = model.SourcePreset
		cfg.Source.Preset = o.preset
	}
	if o.text != "" {
		cfg.Source.Kind = model.SourceText
		cfg.Source.Text = o.text
	}
	if o.template != "" {
		cfg.Source.Template = model.TextTemplate(strings.ToLower(o.template))
	}
	if o.background != "" {
		c, err := model.ParseColor(o.background)
		if err != nil {
			return cfg, err
		}
		cfg.Background.Fill = model.Fill{Kind: model.FillSolid, From: c, To: c}
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// isArchive reports whether path names an icon set archive
func isArchive(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}

// printUsage prints the command help
func printUsage() {
	fmt.Print(`icongen - app icon generator

Usage:
  icongen -out <file> [options]

Options:
  -config string
        JSON icon configuration (default configuration when empty)
  -out string
        output file, .png for one image or .zip for an icon set
  -size int
        PNG side in pixels (default: 1024)
  -platforms string
        comma separated platforms for icon sets: ios, android, macos, windows, web
  -password string
        encrypt the icon set archive
  -preset string
        use a preset glyph (see -list-presets)
  -text string
        use a text glyph
  -template string
        text layout: plain, monogram, stacked
  -bg string
        solid background color, for example #1e88e5 or white
  -list-presets
        print the preset glyph names
  -list string
        print the entries of an icon set archive
  -help
        show this help

Examples:
  icongen -config icon.json -out icon.png -size 1024
  icongen -config icon.json -out icons.zip -platforms ios,android
  icongen -text "Go" -template monogram -bg "#00add8" -out go.png
`)
}
