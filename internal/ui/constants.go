package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconStop     = "■"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconCopy     = "📋"
	IconClose    = "×"
	IconError    = "❌"
	IconDone     = "✔"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	PreviewMinSide    float32 = 256
	ControlsMinWidth  float32 = 320
	ColorSwatchSide   float32 = 20
	StatusLabelWidth  float32 = 84
	PercentLabelWidth float32 = 48
	TaskListMinHeight float32 = 120

	RowMinWidth  float32 = 300
	RowMinHeight float32 = 48

	// Touch target minimum size (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
	MobileButtonHeight float32 = 48
)

// Split offset between the preview and the controls
const SplitOffset = 0.45

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
	ConfigSaveDelay  = 500 * time.Millisecond
)

// Slider ranges for the style controls
const (
	SliderAngleMax    = 360.0
	SliderRotationMax = 180.0
	SliderBorderMax   = 128.0
	SliderShadowMax   = 64.0
	SliderFineStep    = 0.01
	SliderCoarseStep  = 1.0
)

// Image file extensions accepted as custom glyph sources
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff"}

// ConfigExtensions are accepted when importing an icon configuration
var ConfigExtensions = []string{".json"}
