package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ColorNamePreviewBackdrop is the neutral backdrop painted behind the icon preview,
// so transparent corners and shadows stay visible
const ColorNamePreviewBackdrop fyne.ThemeColorName = "previewBackdrop"

// CompactTheme keeps the control panels dense so the preview gets most of the window
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark

	switch name {
	case ColorNamePreviewBackdrop:
		if dark {
			return color.NRGBA{R: 58, G: 58, B: 60, A: 255}
		}
		return color.NRGBA{R: 209, G: 209, B: 214, A: 255}
	case theme.ColorNameSuccess:
		return color.NRGBA{R: 52, G: 199, B: 89, A: 255} // completed exports
	case theme.ColorNameError:
		return color.NRGBA{R: 255, G: 59, B: 48, A: 255}
	case theme.ColorNameWarning:
		return color.NRGBA{R: 255, G: 149, B: 0, A: 255} // stopped exports
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0, G: 122, B: 255, A: 255}
	case theme.ColorNameBackground:
		if dark {
			return color.NRGBA{R: 28, G: 28, B: 30, A: 255}
		}
		return color.NRGBA{R: 242, G: 242, B: 247, A: 255}
	case theme.ColorNameForeground:
		if dark {
			return color.White
		}
		return color.NRGBA{R: 28, G: 28, B: 30, A: 255}
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// compactSizes overrides the default metrics, everything else falls through
var compactSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:         3,
	theme.SizeNameInnerPadding:    6,
	theme.SizeNameLineSpacing:     2,
	theme.SizeNameScrollBar:       10,
	theme.SizeNameText:            13,
	theme.SizeNameHeadingText:     16,
	theme.SizeNameSubHeadingText:  14,
	theme.SizeNameCaptionText:     10,
	theme.SizeNameInputRadius:     6,
	theme.SizeNameSelectionRadius: 4,
}

func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	if size, ok := compactSizes[name]; ok {
		return size
	}
	return theme.DefaultTheme().Size(name)
}
