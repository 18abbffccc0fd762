package ui

import (
	"sort"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/icon-generator/internal/config"
	"github.com/ytget/icon-generator/internal/iconset"
)

// Settings dialog sizing
const (
	SettingsDialogWidth  = 520
	SettingsDialogHeight = 520
)

// Size choices offered in the settings dialog; the export size also accepts typed values
var (
	previewSizeOptions = []string{"128", "256", "512", "1024"}
	exportSizeOptions  = []string{"512", "1024", "2048", "4096"}
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	exportDirEntry    *widget.Entry
	passwordEntry     *widget.Entry
	platformsGroup    *widget.CheckGroup
	exportSizeEntry   *widget.SelectEntry
	saveToPhotosCheck *widget.Check
	previewSizeSelect *widget.Select
	languageSelect    *widget.Select

	// language display name -> code
	languageCodes map[string]string
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window, localization *Localization, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog creates and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	NewSettingsDialog(settings, window, localization, onSaved).Show()
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.exportDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(text(KeyBrowse), sd.onBrowseDirectory)
	exportDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.exportDirEntry)

	sd.passwordEntry = widget.NewPasswordEntry()

	platformOptions := make([]string, 0, len(iconset.Platforms()))
	for _, p := range iconset.Platforms() {
		platformOptions = append(platformOptions, string(p))
	}
	sd.platformsGroup = widget.NewCheckGroup(platformOptions, nil)
	sd.platformsGroup.Horizontal = true

	sd.exportSizeEntry = widget.NewSelectEntry(exportSizeOptions)
	sd.exportSizeEntry.Validator = validateExportSize

	sd.saveToPhotosCheck = widget.NewCheck(text(KeySaveToPhotos), nil)

	sd.previewSizeSelect = widget.NewSelect(previewSizeOptions, nil)

	sd.languageCodes = make(map[string]string)
	var languageNames []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageNames = append(languageNames, name)
	}
	sort.Strings(languageNames)
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	form := container.NewVBox(
		widget.NewLabel(text(KeyExportSettings)),
		widget.NewSeparator(),

		widget.NewLabel(text(KeyExportDirectory)+":"),
		exportDirRow,

		widget.NewLabel(text(KeyPlatforms)+":"),
		sd.platformsGroup,

		widget.NewLabel(text(KeyArchivePassword)+":"),
		sd.passwordEntry,

		widget.NewLabel(text(KeyExportSize)+":"),
		sd.exportSizeEntry,

		sd.saveToPhotosCheck,

		widget.NewSeparator(),
		widget.NewLabel(text(KeyInterfaceSettings)),
		widget.NewSeparator(),

		widget.NewLabel(text(KeyPreviewSize)+":"),
		sd.previewSizeSelect,

		widget.NewLabel(text(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.exportDirEntry.SetText(sd.settings.GetExportDirectory())
	sd.passwordEntry.SetText(sd.settings.GetArchivePassword())

	var selected []string
	for _, p := range sd.settings.GetDefaultPlatforms() {
		selected = append(selected, string(p))
	}
	sd.platformsGroup.SetSelected(selected)

	sd.exportSizeEntry.SetText(strconv.Itoa(sd.settings.GetExportSize()))
	sd.saveToPhotosCheck.SetChecked(sd.settings.GetSaveToPhotos())
	sd.previewSizeSelect.SetSelected(strconv.Itoa(sd.settings.GetPreviewSize()))

	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
		}
	}
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.exportDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := strings.TrimSpace(sd.exportDirEntry.Text); dir != "" {
		sd.settings.SetExportDirectory(dir)
	}

	sd.settings.SetArchivePassword(sd.passwordEntry.Text)

	// An empty selection is stored as every platform
	platforms, err := iconset.ParsePlatforms(strings.Join(sd.platformsGroup.Selected, ","))
	if err == nil {
		sd.settings.SetDefaultPlatforms(platforms)
	}

	if size, err := strconv.Atoi(strings.TrimSpace(sd.exportSizeEntry.Text)); err == nil {
		sd.settings.SetExportSize(size)
	}

	sd.settings.SetSaveToPhotos(sd.saveToPhotosCheck.Checked)

	if size, err := strconv.Atoi(sd.previewSizeSelect.Selected); err == nil {
		sd.settings.SetPreviewSize(size)
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// validateExportSize accepts whole numbers within the export size bounds
func validateExportSize(value string) error {
	size, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return err
	}
	if size < config.MinExportSize || size > config.MaxExportSize {
		return strconv.ErrRange
	}
	return nil
}
