package ui

import (
	"bytes"
	"fmt"

	"fyne.io/fyne/v2"

	"github.com/ytget/icon-generator/internal/model"
	"github.com/ytget/icon-generator/internal/preview"
	"github.com/ytget/icon-generator/internal/render"
)

const (
	AppIcon     = "icon-generator.png"
	AppIconSize = 256
)

// LoadLogoResource renders the default icon configuration as the application icon
func LoadLogoResource(r preview.Renderer) (fyne.Resource, error) {
	img, err := r.Render(model.DefaultIconConfig(), AppIconSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render app icon: %w", err)
	}

	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode app icon: %w", err)
	}
	return fyne.NewStaticResource(AppIcon, buf.Bytes()), nil
}
