package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MobileUI picks layouts and sizes for touch devices
type MobileUI struct {
	app fyne.App
}

// NewMobileUI creates a new mobile UI helper
func NewMobileUI(app fyne.App) *MobileUI {
	return &MobileUI{app: app}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return fyne.CurrentDevice().IsMobile()
}

// IsLandscape returns true if device is in landscape orientation
func (m *MobileUI) IsLandscape() bool {
	orientation := fyne.CurrentDevice().Orientation()
	return orientation == fyne.OrientationHorizontalLeft || orientation == fyne.OrientationHorizontalRight
}

// CreateMobileButton creates a button with a touch-sized minimum height on mobile
func (m *MobileUI) CreateMobileButton(text string, onTapped func()) fyne.CanvasObject {
	btn := widget.NewButton(text, onTapped)
	if !m.IsMobileDevice() {
		return btn
	}

	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(MinTouchTargetSize, MobileButtonHeight))
	return container.NewStack(spacer, btn)
}

// ArrangeEditor lays out the preview next to the controls on desktop and in
// landscape, and stacks them in portrait on phones
func (m *MobileUI) ArrangeEditor(preview, controls fyne.CanvasObject) fyne.CanvasObject {
	if m.IsMobileDevice() && !m.IsLandscape() {
		split := container.NewVSplit(preview, controls)
		split.Offset = SplitOffset
		return split
	}

	split := container.NewHSplit(preview, controls)
	split.Offset = SplitOffset
	return split
}
