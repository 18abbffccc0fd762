package iconset

import (
	"encoding/json"
	"fmt"
	"path"

	"github.com/ytget/icon-generator/internal/model"
)

type contentsImage struct {
	Idiom    string `json:"idiom"`
	Size     string `json:"size"`
	Scale    string `json:"scale"`
	Filename string `json:"filename"`
}

type contentsInfo struct {
	Version int    `json:"version"`
	Author  string `json:"author"`
}

// Contents is the Xcode asset catalog descriptor of an app icon set
type Contents struct {
	Images []contentsImage `json:"images"`
	Info   contentsInfo    `json:"info"`
}

// IOSContents builds Contents.json for the iOS app icon set
func IOSContents() ([]byte, error) {
	contents := Contents{
		Info: contentsInfo{Version: 1, Author: "xcode"},
	}
	for _, slot := range iosImages {
		pt := formatPoints(slot.Points)
		contents.Images = append(contents.Images, contentsImage{
			Idiom:    slot.Idiom,
			Size:     pt + "x" + pt,
			Scale:    fmt.Sprintf("%dx", slot.Scale),
			Filename: slot.filename(),
		})
	}

	data, err := json.MarshalIndent(contents, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode Contents.json: %w", err)
	}
	return data, nil
}

type manifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

// Manifest is the web app manifest shipped with the web icon set
type Manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Icons           []manifestIcon `json:"icons"`
	ThemeColor      string         `json:"theme_color"`
	BackgroundColor string         `json:"background_color"`
	Display         string         `json:"display"`
}

// WebManifestFor builds site.webmanifest for cfg
func WebManifestFor(cfg model.IconConfig) ([]byte, error) {
	manifest := Manifest{
		Name:            cfg.Name,
		ShortName:       cfg.Name,
		ThemeColor:      cfg.Background.Fill.From.WithAlpha(255).Hex(),
		BackgroundColor: cfg.Background.Fill.From.WithAlpha(255).Hex(),
		Display:         "standalone",
	}
	if cfg.Background.Fill.Kind != model.FillSolid {
		manifest.BackgroundColor = cfg.Background.Fill.To.WithAlpha(255).Hex()
	}
	for _, icon := range webIcons {
		if icon.Size < 192 {
			continue
		}
		manifest.Icons = append(manifest.Icons, manifestIcon{
			Src:   "/" + path.Base(icon.Name),
			Sizes: fmt.Sprintf("%dx%d", icon.Size, icon.Size),
			Type:  "image/png",
		})
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode web manifest: %w", err)
	}
	return data, nil
}

// metadata returns the non-raster files of a platform icon set
func metadata(p Platform, cfg model.IconConfig) (map[string][]byte, error) {
	switch p {
	case PlatformIOS:
		data, err := IOSContents()
		if err != nil {
			return nil, err
		}
		return map[string][]byte{IOSDir + "/" + ContentsJSON: data}, nil
	case PlatformWeb:
		data, err := WebManifestFor(cfg)
		if err != nil {
			return nil, err
		}
		return map[string][]byte{WebDir + "/" + WebManifest: data}, nil
	}
	return nil, nil
}
