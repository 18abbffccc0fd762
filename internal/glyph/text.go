package glyph

import (
	"fmt"
	"image"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ytget/icon-generator/internal/model"
)

// Text layout constants
const (
	// TextFillRatio is the share of the glyph square text may occupy when auto-fit
	TextFillRatio = 0.9
	// LineSpacing multiplies the font height between stacked lines
	LineSpacing = 1.1
	// measureSize is the point size used to measure text before fitting
	measureSize = 100.0
)

var (
	fontsOnce sync.Once
	fonts     map[model.FontFamily]*truetype.Font
	fontsErr  error
)

// loadFonts parses the bundled Go fonts once
func loadFonts() (map[model.FontFamily]*truetype.Font, error) {
	fontsOnce.Do(func() {
		sources := map[model.FontFamily][]byte{
			model.FontRegular: goregular.TTF,
			model.FontBold:    gobold.TTF,
			model.FontMono:    gomono.TTF,
		}
		fonts = make(map[model.FontFamily]*truetype.Font, len(sources))
		for family, ttf := range sources {
			f, err := truetype.Parse(ttf)
			if err != nil {
				fontsErr = fmt.Errorf("parsing %s font: %w", family, err)
				return
			}
			fonts[family] = f
		}
	})
	return fonts, fontsErr
}

// fontFor returns the parsed font for a family, falling back to regular
func fontFor(family model.FontFamily) (*truetype.Font, error) {
	all, err := loadFonts()
	if err != nil {
		return nil, err
	}
	if f, ok := all[family]; ok {
		return f, nil
	}
	return all[model.FontRegular], nil
}

// newFace creates a face of the given point size at 72 DPI, so points equal pixels
func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// LayoutText turns source text into the lines drawn for a template
func LayoutText(text string, template model.TextTemplate) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	switch template {
	case model.TemplateMonogram:
		words := strings.FieldsFunc(text, func(r rune) bool {
			return unicode.IsSpace(r) || r == '-' || r == '_'
		})
		var b strings.Builder
		for i, word := range words {
			if i == 2 {
				break
			}
			r, _ := utf8.DecodeRuneInString(word)
			b.WriteRune(unicode.ToUpper(r))
		}
		if b.Len() == 0 {
			return nil
		}
		return []string{b.String()}

	case model.TemplateStacked:
		words := strings.Fields(text)
		if len(words) < 2 {
			return words
		}
		return balanceLines(words)

	default:
		return []string{strings.Join(strings.Fields(text), " ")}
	}
}

// balanceLines splits words into two lines whose rune lengths differ the least
func balanceLines(words []string) []string {
	best := 1
	bestDiff := -1
	for split := 1; split < len(words); split++ {
		top := utf8.RuneCountInString(strings.Join(words[:split], " "))
		bottom := utf8.RuneCountInString(strings.Join(words[split:], " "))
		diff := top - bottom
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best, bestDiff = split, diff
		}
	}
	return []string{
		strings.Join(words[:best], " "),
		strings.Join(words[best:], " "),
	}
}

// FitFontSize returns the largest size at which lines fit inside a box of
// maxW×maxH pixels
func FitFontSize(f *truetype.Font, lines []string, maxW, maxH float64) float64 {
	if len(lines) == 0 || maxW <= 0 || maxH <= 0 {
		return 0
	}

	dc := gg.NewContext(1, 1)
	dc.SetFontFace(newFace(f, measureSize))

	var widest float64
	for _, line := range lines {
		w, _ := dc.MeasureString(line)
		widest = max(widest, w)
	}
	totalH := dc.FontHeight() * (1 + LineSpacing*float64(len(lines)-1))
	if widest <= 0 || totalH <= 0 {
		return 0
	}

	// Glyph metrics scale linearly with the point size
	return measureSize * min(maxW/widest, maxH/totalH)
}

// renderText draws the text glyph into a side×side transparent square.
// fontSize is in pixels; 0 fits the text into the square.
func renderText(src model.Source, side int, fontSize float64) (*image.NRGBA, error) {
	lines := LayoutText(src.Text, src.Template)
	if len(lines) == 0 {
		return nil, model.ErrEmptyText
	}

	f, err := fontFor(src.Font.Family)
	if err != nil {
		return nil, err
	}

	box := float64(side) * TextFillRatio
	if fontSize <= 0 {
		fontSize = FitFontSize(f, lines, box, box)
	}
	if fontSize <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, side, side)), nil
	}

	dc := gg.NewContext(side, side)
	dc.SetFontFace(newFace(f, fontSize))
	dc.SetColor(src.Tint.NRGBA())

	lineHeight := dc.FontHeight() * LineSpacing
	total := dc.FontHeight() + lineHeight*float64(len(lines)-1)
	cx := float64(side) / 2
	y := float64(side)/2 - total/2 + dc.FontHeight()/2
	for _, line := range lines {
		dc.DrawStringAnchored(line, cx, y, 0.5, 0.5)
		y += lineHeight
	}

	return imaging.Clone(dc.Image()), nil
}
