package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/icon-generator/internal/glyph"
	"github.com/ytget/icon-generator/internal/model"
)

// Editor holds the style controls and the configuration they edit.
// Every control change updates the configuration and reports it through onChanged.
type Editor struct {
	window       fyne.Window
	localization *Localization
	onChanged    func(model.IconConfig)

	cfg model.IconConfig
	// loading suppresses change callbacks while widgets are set from a config
	loading bool

	// Source
	nameEntry      *widget.Entry
	kindSelect     *widget.Select
	presetSelect   *widget.Select
	imageLabel     *widget.Label
	textEntry      *widget.Entry
	templateSelect *widget.Select
	fontSelect     *widget.Select
	tintButton     *colorButton
	tintImageCheck *widget.Check

	// Background
	shapeSelect   *widget.Select
	fillSelect    *widget.Select
	fromButton    *colorButton
	toButton      *colorButton
	angleSlider   *widget.Slider
	cornerSlider  *widget.Slider
	paddingSlider *widget.Slider

	// Border and shadow
	borderCheck  *widget.Check
	borderColor  *colorButton
	borderWidth  *widget.Slider
	shadowCheck  *widget.Check
	shadowColor  *colorButton
	shadowX      *widget.Slider
	shadowY      *widget.Slider
	shadowBlur   *widget.Slider
	borderRows   []fyne.CanvasObject
	shadowRows   []fyne.CanvasObject
	presetRow    fyne.CanvasObject
	imageRows    []fyne.CanvasObject
	textRows     []fyne.CanvasObject
	gradientRows []fyne.CanvasObject
	angleRow     fyne.CanvasObject
	cornerRow    fyne.CanvasObject

	// Transform
	scaleSlider    *widget.Slider
	rotationSlider *widget.Slider
	offsetXSlider  *widget.Slider
	offsetYSlider  *widget.Slider
	opacitySlider  *widget.Slider
	flipHCheck     *widget.Check
	flipVCheck     *widget.Check

	// kind label -> kind
	kindByLabel map[string]model.SourceKind

	content fyne.CanvasObject
}

// NewEditor creates the style controls for cfg
func NewEditor(window fyne.Window, localization *Localization, cfg model.IconConfig, onChanged func(model.IconConfig)) *Editor {
	e := &Editor{
		window:       window,
		localization: localization,
		onChanged:    onChanged,
	}
	e.createUI()
	e.Load(cfg)
	return e
}

// Content returns the editor's canvas object
func (e *Editor) Content() fyne.CanvasObject {
	return e.content
}

// Config returns the configuration currently shown by the controls
func (e *Editor) Config() model.IconConfig {
	return e.cfg
}

// Load sets every control from cfg without reporting changes
func (e *Editor) Load(cfg model.IconConfig) {
	cfg.Normalize()

	e.loading = true
	defer func() { e.loading = false }()

	e.cfg = cfg

	e.nameEntry.SetText(cfg.Name)
	e.kindSelect.SetSelected(e.kindLabel(cfg.Source.Kind))
	e.presetSelect.SetSelected(cfg.Source.Preset)
	e.setImagePath(cfg.Source.ImagePath)
	e.textEntry.SetText(cfg.Source.Text)
	e.templateSelect.SetSelected(string(cfg.Source.Template))
	e.fontSelect.SetSelected(string(cfg.Source.Font.Family))
	e.tintButton.SetColor(cfg.Source.Tint)
	e.tintImageCheck.SetChecked(cfg.Source.TintImage)

	e.shapeSelect.SetSelected(string(cfg.Background.Shape))
	e.fillSelect.SetSelected(string(cfg.Background.Fill.Kind))
	e.fromButton.SetColor(cfg.Background.Fill.From)
	e.toButton.SetColor(cfg.Background.Fill.To)
	e.angleSlider.SetValue(cfg.Background.Fill.Angle)
	e.cornerSlider.SetValue(cfg.Background.CornerRadius)
	e.paddingSlider.SetValue(cfg.Background.Padding)

	e.borderCheck.SetChecked(cfg.Border.Enabled)
	e.borderColor.SetColor(cfg.Border.Color)
	e.borderWidth.SetValue(cfg.Border.Width)

	e.shadowCheck.SetChecked(cfg.Shadow.Enabled)
	e.shadowColor.SetColor(cfg.Shadow.Color)
	e.shadowX.SetValue(cfg.Shadow.OffsetX)
	e.shadowY.SetValue(cfg.Shadow.OffsetY)
	e.shadowBlur.SetValue(cfg.Shadow.Blur)

	e.scaleSlider.SetValue(cfg.Transform.Scale)
	e.rotationSlider.SetValue(cfg.Transform.Rotation)
	e.offsetXSlider.SetValue(cfg.Transform.OffsetX)
	e.offsetYSlider.SetValue(cfg.Transform.OffsetY)
	e.opacitySlider.SetValue(cfg.Transform.Opacity)
	e.flipHCheck.SetChecked(cfg.Transform.FlipH)
	e.flipVCheck.SetChecked(cfg.Transform.FlipV)

	e.updateVisibility()
}

// edit applies fn to the configuration and reports the result
func (e *Editor) edit(fn func(cfg *model.IconConfig)) {
	if e.loading {
		return
	}
	fn(&e.cfg)
	e.updateVisibility()
	if e.onChanged != nil {
		e.onChanged(e.cfg)
	}
}

// createUI creates the tabs with all controls
func (e *Editor) createUI() {
	text := e.localization.GetText

	// Source tab
	e.nameEntry = widget.NewEntry()
	e.nameEntry.OnChanged = func(s string) {
		e.edit(func(cfg *model.IconConfig) { cfg.Name = s })
	}

	e.kindByLabel = map[string]model.SourceKind{
		text(KeyPreset): model.SourcePreset,
		text(KeyImage):  model.SourceImage,
		text(KeyText):   model.SourceText,
	}
	e.kindSelect = widget.NewSelect([]string{text(KeyPreset), text(KeyImage), text(KeyText)}, func(label string) {
		e.edit(func(cfg *model.IconConfig) { cfg.Source.Kind = e.kindByLabel[label] })
	})

	e.presetSelect = widget.NewSelect(glyph.Presets(), func(name string) {
		e.edit(func(cfg *model.IconConfig) { cfg.Source.Preset = name })
	})

	e.imageLabel = widget.NewLabel("")
	e.imageLabel.Truncation = fyne.TextTruncateEllipsis
	chooseImage := widget.NewButton(text(KeyChooseImage), e.onChooseImage)

	e.textEntry = widget.NewEntry()
	e.textEntry.OnChanged = func(s string) {
		e.edit(func(cfg *model.IconConfig) { cfg.Source.Text = s })
	}
	e.templateSelect = widget.NewSelect(enumOptions(model.TextTemplates()), func(s string) {
		e.edit(func(cfg *model.IconConfig) { cfg.Source.Template = model.TextTemplate(s) })
	})
	e.fontSelect = widget.NewSelect(enumOptions(model.FontFamilies()), func(s string) {
		e.edit(func(cfg *model.IconConfig) { cfg.Source.Font.Family = model.FontFamily(s) })
	})
	e.tintButton = newColorButton(e.window, text(KeyTint), func(c model.Color) {
		e.edit(func(cfg *model.IconConfig) { cfg.Source.Tint = c })
	})
	e.tintImageCheck = widget.NewCheck(text(KeyTintImage), func(b bool) {
		e.edit(func(cfg *model.IconConfig) { cfg.Source.TintImage = b })
	})

	e.presetRow = formRow(text(KeyPreset), e.presetSelect)
	e.imageRows = []fyne.CanvasObject{
		formRow(text(KeyImage), container.NewBorder(nil, nil, nil, chooseImage, e.imageLabel)),
		e.tintImageCheck,
	}
	e.textRows = []fyne.CanvasObject{
		formRow(text(KeyText), e.textEntry),
		formRow(text(KeyTemplate), e.templateSelect),
		formRow(text(KeyFont), e.fontSelect),
	}

	sourceTab := container.NewVBox(
		formRow(text(KeyName), e.nameEntry),
		formRow(text(KeySource), e.kindSelect),
		e.presetRow,
	)
	sourceTab.Objects = append(sourceTab.Objects, e.imageRows...)
	sourceTab.Objects = append(sourceTab.Objects, e.textRows...)
	sourceTab.Objects = append(sourceTab.Objects, formRow(text(KeyTint), e.tintButton.Content()))

	// Background tab
	e.shapeSelect = widget.NewSelect(enumOptions(model.Shapes()), func(s string) {
		e.edit(func(cfg *model.IconConfig) { cfg.Background.Shape = model.Shape(s) })
	})
	e.fillSelect = widget.NewSelect(enumOptions(model.FillKinds()), func(s string) {
		e.edit(func(cfg *model.IconConfig) { cfg.Background.Fill.Kind = model.FillKind(s) })
	})
	e.fromButton = newColorButton(e.window, text(KeyColorFrom), func(c model.Color) {
		e.edit(func(cfg *model.IconConfig) { cfg.Background.Fill.From = c })
	})
	e.toButton = newColorButton(e.window, text(KeyColorTo), func(c model.Color) {
		e.edit(func(cfg *model.IconConfig) { cfg.Background.Fill.To = c })
	})
	e.angleSlider = e.newSlider(0, SliderAngleMax, SliderCoarseStep, func(cfg *model.IconConfig, v float64) {
		cfg.Background.Fill.Angle = v
	})
	e.cornerSlider = e.newSlider(0, model.MaxCornerRadius, SliderFineStep, func(cfg *model.IconConfig, v float64) {
		cfg.Background.CornerRadius = v
	})
	e.paddingSlider = e.newSlider(0, model.MaxPadding, SliderFineStep, func(cfg *model.IconConfig, v float64) {
		cfg.Background.Padding = v
	})

	e.angleRow = formRow(text(KeyAngle), e.angleSlider)
	e.cornerRow = formRow(text(KeyCornerRadius), e.cornerSlider)
	e.gradientRows = []fyne.CanvasObject{formRow(text(KeyColorTo), e.toButton.Content()), e.angleRow}

	backgroundTab := container.NewVBox(
		formRow(text(KeyShape), e.shapeSelect),
		e.cornerRow,
		formRow(text(KeyPadding), e.paddingSlider),
		formRow(text(KeyFill), e.fillSelect),
		formRow(text(KeyColorFrom), e.fromButton.Content()),
	)
	backgroundTab.Objects = append(backgroundTab.Objects, e.gradientRows...)

	// Border and shadow tab
	e.borderCheck = widget.NewCheck(text(KeyEnabled), func(b bool) {
		e.edit(func(cfg *model.IconConfig) { cfg.Border.Enabled = b })
	})
	e.borderColor = newColorButton(e.window, text(KeyBorder), func(c model.Color) {
		e.edit(func(cfg *model.IconConfig) { cfg.Border.Color = c })
	})
	e.borderWidth = e.newSlider(0, SliderBorderMax, SliderCoarseStep, func(cfg *model.IconConfig, v float64) {
		cfg.Border.Width = v
	})
	e.borderRows = []fyne.CanvasObject{
		formRow(text(KeyColor), e.borderColor.Content()),
		formRow(text(KeyWidth), e.borderWidth),
	}

	e.shadowCheck = widget.NewCheck(text(KeyEnabled), func(b bool) {
		e.edit(func(cfg *model.IconConfig) { cfg.Shadow.Enabled = b })
	})
	e.shadowColor = newColorButton(e.window, text(KeyShadow), func(c model.Color) {
		e.edit(func(cfg *model.IconConfig) { cfg.Shadow.Color = c })
	})
	e.shadowX = e.newSlider(-SliderShadowMax, SliderShadowMax, SliderCoarseStep, func(cfg *model.IconConfig, v float64) {
		cfg.Shadow.OffsetX = v
	})
	e.shadowY = e.newSlider(-SliderShadowMax, SliderShadowMax, SliderCoarseStep, func(cfg *model.IconConfig, v float64) {
		cfg.Shadow.OffsetY = v
	})
	e.shadowBlur = e.newSlider(0, SliderShadowMax, SliderCoarseStep, func(cfg *model.IconConfig, v float64) {
		cfg.Shadow.Blur = v
	})
	e.shadowRows = []fyne.CanvasObject{
		formRow(text(KeyColor), e.shadowColor.Content()),
		formRow(text(KeyOffsetX), e.shadowX),
		formRow(text(KeyOffsetY), e.shadowY),
		formRow(text(KeyBlur), e.shadowBlur),
	}

	effectsTab := container.NewVBox(widget.NewLabelWithStyle(text(KeyBorder), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), e.borderCheck)
	effectsTab.Objects = append(effectsTab.Objects, e.borderRows...)
	effectsTab.Objects = append(effectsTab.Objects,
		widget.NewSeparator(),
		widget.NewLabelWithStyle(text(KeyShadow), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		e.shadowCheck,
	)
	effectsTab.Objects = append(effectsTab.Objects, e.shadowRows...)

	// Transform tab
	e.scaleSlider = e.newSlider(model.MinGlyphScale, model.MaxGlyphScale, SliderFineStep, func(cfg *model.IconConfig, v float64) {
		cfg.Transform.Scale = v
	})
	e.rotationSlider = e.newSlider(-SliderRotationMax, SliderRotationMax, SliderCoarseStep, func(cfg *model.IconConfig, v float64) {
		cfg.Transform.Rotation = v
	})
	e.offsetXSlider = e.newSlider(-model.MaxOffset, model.MaxOffset, SliderFineStep, func(cfg *model.IconConfig, v float64) {
		cfg.Transform.OffsetX = v
	})
	e.offsetYSlider = e.newSlider(-model.MaxOffset, model.MaxOffset, SliderFineStep, func(cfg *model.IconConfig, v float64) {
		cfg.Transform.OffsetY = v
	})
	e.opacitySlider = e.newSlider(0, 1, SliderFineStep, func(cfg *model.IconConfig, v float64) {
		cfg.Transform.Opacity = v
	})
	e.flipHCheck = widget.NewCheck(text(KeyFlipH), func(b bool) {
		e.edit(func(cfg *model.IconConfig) { cfg.Transform.FlipH = b })
	})
	e.flipVCheck = widget.NewCheck(text(KeyFlipV), func(b bool) {
		e.edit(func(cfg *model.IconConfig) { cfg.Transform.FlipV = b })
	})

	transformTab := container.NewVBox(
		formRow(text(KeyScale), e.scaleSlider),
		formRow(text(KeyRotation), e.rotationSlider),
		formRow(text(KeyOffsetX), e.offsetXSlider),
		formRow(text(KeyOffsetY), e.offsetYSlider),
		formRow(text(KeyOpacity), e.opacitySlider),
		e.flipHCheck,
		e.flipVCheck,
	)

	tabs := container.NewAppTabs(
		container.NewTabItem(text(KeySource), container.NewVScroll(sourceTab)),
		container.NewTabItem(text(KeyBackground), container.NewVScroll(backgroundTab)),
		container.NewTabItem(text(KeyBorder)+" / "+text(KeyShadow), container.NewVScroll(effectsTab)),
		container.NewTabItem(text(KeyTransform), container.NewVScroll(transformTab)),
	)
	e.content = tabs
}

// newSlider creates a slider that writes its value into the configuration through set
func (e *Editor) newSlider(min, max, step float64, set func(cfg *model.IconConfig, v float64)) *widget.Slider {
	slider := widget.NewSlider(min, max)
	slider.Step = step
	slider.OnChanged = func(v float64) {
		e.edit(func(cfg *model.IconConfig) { set(cfg, v) })
	}
	return slider
}

// updateVisibility shows only the controls that apply to the current configuration
func (e *Editor) updateVisibility() {
	setVisible(e.cfg.Source.Kind == model.SourcePreset, e.presetRow)
	setVisible(e.cfg.Source.Kind == model.SourceImage, e.imageRows...)
	setVisible(e.cfg.Source.Kind == model.SourceText, e.textRows...)

	setVisible(e.cfg.Background.Shape == model.ShapeRounded, e.cornerRow)
	setVisible(e.cfg.Background.Fill.Kind != model.FillSolid, e.gradientRows...)
	setVisible(e.cfg.Background.Fill.Kind == model.FillLinear, e.angleRow)

	setVisible(e.cfg.Border.Enabled, e.borderRows...)
	setVisible(e.cfg.Shadow.Enabled, e.shadowRows...)
}

// onChooseImage picks a custom glyph image
func (e *Editor) onChooseImage() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		e.setImagePath(path)
		e.edit(func(cfg *model.IconConfig) {
			cfg.Source.Kind = model.SourceImage
			cfg.Source.ImagePath = path
		})
		e.loading = true
		e.kindSelect.SetSelected(e.kindLabel(model.SourceImage))
		e.loading = false
	}, e.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(ImageExtensions))
	fileDialog.Show()
}

func (e *Editor) setImagePath(path string) {
	if path == "" {
		e.imageLabel.SetText(e.localization.GetText(KeyNoImage))
		return
	}
	e.imageLabel.SetText(path)
}

func (e *Editor) kindLabel(kind model.SourceKind) string {
	for label, k := range e.kindByLabel {
		if k == kind {
			return label
		}
	}
	return ""
}

// formRow pairs a label with a control so both can be hidden together
func formRow(label string, obj fyne.CanvasObject) fyne.CanvasObject {
	return container.New(layout.NewFormLayout(), widget.NewLabel(label), obj)
}

func setVisible(visible bool, objects ...fyne.CanvasObject) {
	for _, obj := range objects {
		if visible {
			obj.Show()
		} else {
			obj.Hide()
		}
	}
}

// enumOptions converts string enums into select options
func enumOptions[T ~string](values []T) []string {
	options := make([]string, len(values))
	for i, v := range values {
		options[i] = string(v)
	}
	return options
}

// colorButton shows a color swatch and opens a color picker when tapped
type colorButton struct {
	window    fyne.Window
	title     string
	color     model.Color
	swatch    *canvas.Rectangle
	button    *widget.Button
	onChanged func(model.Color)
}

func newColorButton(window fyne.Window, title string, onChanged func(model.Color)) *colorButton {
	cb := &colorButton{
		window:    window,
		title:     title,
		onChanged: onChanged,
	}
	cb.swatch = canvas.NewRectangle(color.Transparent)
	cb.swatch.SetMinSize(fyne.NewSize(ColorSwatchSide, ColorSwatchSide))
	cb.swatch.StrokeColor = color.Gray{Y: 128}
	cb.swatch.StrokeWidth = 1
	cb.button = widget.NewButton("", cb.showPicker)
	return cb
}

// Content returns the swatch and button row
func (cb *colorButton) Content() fyne.CanvasObject {
	return container.NewBorder(nil, nil, cb.swatch, nil, cb.button)
}

// SetColor updates the swatch without calling onChanged
func (cb *colorButton) SetColor(c model.Color) {
	cb.color = c
	cb.swatch.FillColor = c.NRGBA()
	cb.swatch.Refresh()
	cb.button.SetText(c.Hex())
}

func (cb *colorButton) showPicker() {
	picker := dialog.NewColorPicker(cb.title, "", func(c color.Color) {
		picked := toModelColor(c)
		cb.SetColor(picked)
		if cb.onChanged != nil {
			cb.onChanged(picked)
		}
	}, cb.window)
	picker.Advanced = true
	picker.SetColor(cb.color.NRGBA())
	picker.Show()
}

// toModelColor converts any color.Color to a non-premultiplied model color
func toModelColor(c color.Color) model.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return model.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

