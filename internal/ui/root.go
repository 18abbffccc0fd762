package ui

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/icon-generator/internal/config"
	"github.com/ytget/icon-generator/internal/export"
	"github.com/ytget/icon-generator/internal/iconset"
	"github.com/ytget/icon-generator/internal/model"
	"github.com/ytget/icon-generator/internal/platform"
	"github.com/ytget/icon-generator/internal/preview"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	exporter     export.Exporter
	previewer    *preview.Previewer
	localization *Localization
	mobile       *MobileUI

	editor        *Editor
	previewImage  *canvas.Image
	previewStatus *widget.Label
	styleSelect   *widget.Select
	taskList      *widget.List

	// Newest first, refreshed from the exporter on every update
	tasks       []*model.ExportTask
	tasksMutex  sync.RWMutex
	lastStatus  map[string]model.TaskStatus
	statusMutex sync.Mutex

	// Delayed persistence of the edited configuration
	saveTimer *time.Timer
	saveMutex sync.Mutex

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, exporter export.Exporter, renderer preview.Renderer) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		exporter:     exporter,
		localization: localization,
		mobile:       NewMobileUI(app),
		lastStatus:   make(map[string]model.TaskStatus),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.exporter.SetUpdateCallback(ui.onTaskUpdate)
	ui.previewer = preview.NewPreviewer(renderer, settings.GetPreviewSize(), ui.onPreviewResult)

	ui.setupUI(settings.GetIconConfig())
	window.SetOnClosed(ui.Close)

	ui.previewer.Update(ui.editor.Config())
	return ui
}

// Close stores the pending configuration and stops the preview worker
func (ui *RootUI) Close() {
	ui.saveMutex.Lock()
	if ui.saveTimer != nil {
		ui.saveTimer.Stop()
		ui.saveTimer = nil
	}
	ui.saveMutex.Unlock()

	ui.settings.SetIconConfig(ui.editor.Config())
	ui.previewer.Close()
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI(cfg model.IconConfig) {
	text := ui.localization.GetText

	ui.createMenu()

	ui.editor = NewEditor(ui.window, ui.localization, cfg, ui.onConfigChanged)

	// Preview panel
	ui.previewImage = canvas.NewImageFromImage(image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	ui.previewImage.FillMode = canvas.ImageFillContain
	ui.previewImage.ScaleMode = canvas.ImageScaleSmooth
	ui.previewImage.SetMinSize(fyne.NewSize(PreviewMinSide, PreviewMinSide))
	ui.previewStatus = widget.NewLabel("")
	ui.previewStatus.Alignment = fyne.TextAlignCenter
	ui.previewStatus.TextStyle = fyne.TextStyle{Monospace: true}

	exportPNGBtn := widget.NewButton(text(KeyExportPNG), ui.onExportPNG)
	exportPNGBtn.Importance = widget.HighImportance
	exportSetBtn := widget.NewButton(text(KeyExportIconSet), ui.onExportIconSet)
	exportSetBtn.Importance = widget.HighImportance
	exportRow := container.NewGridWithColumns(2, exportPNGBtn, exportSetBtn)

	backdrop := canvas.NewRectangle(theme.Color(ColorNamePreviewBackdrop))
	backdrop.CornerRadius = theme.InputRadiusSize()
	previewArea := container.NewStack(backdrop, container.NewPadded(ui.previewImage))

	previewPanel := container.NewBorder(nil, container.NewVBox(ui.previewStatus, exportRow), nil, nil, previewArea)

	// Saved styles row
	ui.styleSelect = widget.NewSelect(nil, ui.onStyleSelected)
	ui.styleSelect.PlaceHolder = text(KeyStyles)
	ui.refreshStyles()
	saveStyleBtn := widget.NewButton(text(KeySaveStyle), ui.onSaveStyle)
	deleteStyleBtn := widget.NewButton(text(KeyDeleteStyle), ui.onDeleteStyle)
	resetBtn := widget.NewButton(text(KeyReset), func() {
		ui.loadConfig(model.DefaultIconConfig())
	})
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	styleRow := container.NewBorder(nil, nil, settingsBtn, container.NewHBox(saveStyleBtn, deleteStyleBtn, resetBtn), ui.styleSelect)

	controls := container.NewBorder(styleRow, nil, nil, nil, ui.editor.Content())

	// Export tasks
	ui.taskList = widget.NewList(
		func() int {
			ui.tasksMutex.RLock()
			defer ui.tasksMutex.RUnlock()
			return len(ui.tasks)
		},
		func() fyne.CanvasObject { return ui.createTaskItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateTaskItem(id, obj) },
	)
	listHeight := canvas.NewRectangle(color.Transparent)
	listHeight.SetMinSize(fyne.NewSize(0, TaskListMinHeight))
	tasksPanel := container.NewStack(listHeight, ui.taskList)

	content := container.NewBorder(
		nil,        // top
		tasksPanel, // bottom
		nil,        // left
		nil,        // right
		ui.mobile.ArrangeEditor(previewPanel, controls),
	)
	ui.window.SetContent(content)

	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	text := ui.localization.GetText

	fileMenu := fyne.NewMenu(text(KeyFile),
		fyne.NewMenuItem(text(KeyImportConfig), ui.onImportConfig),
		fyne.NewMenuItem(text(KeyExportConfig), ui.onExportConfig),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(text(KeyExportPNG), ui.onExportPNG),
		fyne.NewMenuItem(text(KeyExportIconSet), ui.onExportIconSet),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(text(KeySettings), ui.onShowSettings),
	)

	languageMenu := fyne.NewMenu(text(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu, languageMenu))
}

// onLanguageChange switches the language and rebuilds the window content
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.rebuild()
}

// rebuild recreates every widget with the current texts, keeping the edited configuration
func (ui *RootUI) rebuild() {
	cfg := ui.editor.Config()
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.setupUI(cfg)
	ui.previewer.Update(cfg)
}

// onConfigChanged is called by the editor on every control change
func (ui *RootUI) onConfigChanged(cfg model.IconConfig) {
	ui.previewer.Update(cfg)
	ui.scheduleSave(cfg)
}

// loadConfig replaces the edited configuration
func (ui *RootUI) loadConfig(cfg model.IconConfig) {
	ui.editor.Load(cfg)
	ui.onConfigChanged(ui.editor.Config())
}

// scheduleSave stores cfg once the controls have been idle for ConfigSaveDelay
func (ui *RootUI) scheduleSave(cfg model.IconConfig) {
	ui.saveMutex.Lock()
	defer ui.saveMutex.Unlock()

	if ui.saveTimer != nil {
		ui.saveTimer.Stop()
	}
	ui.saveTimer = time.AfterFunc(ConfigSaveDelay, func() {
		ui.settings.SetIconConfig(cfg)
	})
}

// onPreviewResult shows a finished preview; called on the preview worker goroutine
func (ui *RootUI) onPreviewResult(res preview.Result) {
	fyne.Do(func() {
		if res.Err != nil {
			ui.previewStatus.Importance = widget.DangerImportance
			ui.previewStatus.SetText(ui.localization.GetText(KeyPreviewFailed) + ": " + res.Err.Error())
			return
		}

		ui.previewImage.Image = res.Image
		ui.previewImage.Refresh()

		ui.previewStatus.Importance = widget.MediumImportance
		ui.previewStatus.SetText(fmt.Sprintf("%dpx%s%s", ui.previewer.Size(), MiddleDotSeparator, res.Elapsed.Round(time.Millisecond)))
	})
}

// onExportPNG exports the current configuration as a single PNG
func (ui *RootUI) onExportPNG() {
	cfg := ui.editor.Config()
	size := ui.settings.GetExportSize()
	outputPath := platform.UniquePath(export.OutputPathFor(ui.settings.GetExportDirectory(), cfg, model.ExportPNG, size))

	ui.exporter.SetOptions(ui.settings.ExportOptions())
	task, err := ui.exporter.ExportPNG(cfg, size, outputPath)
	if err != nil {
		log.Printf("PNG export rejected: %v", err)
		ui.showToast(ui.localization.GetText(KeyExportFailed), err.Error(), "")
		return
	}
	ui.onTaskAdded(task)
}

// onExportIconSet asks for the platforms and exports the current configuration as an icon set
func (ui *RootUI) onExportIconSet() {
	text := ui.localization.GetText

	var options, selected []string
	for _, p := range iconset.Platforms() {
		options = append(options, string(p))
	}
	for _, p := range ui.settings.GetDefaultPlatforms() {
		selected = append(selected, string(p))
	}
	group := widget.NewCheckGroup(options, nil)
	group.SetSelected(selected)

	dialog.ShowCustomConfirm(text(KeyExportIconSet), text(KeyExportIconSet), text(KeyCancel), group, func(confirmed bool) {
		if !confirmed {
			return
		}
		if len(group.Selected) == 0 {
			ui.showToast(text(KeyExportFailed), text(KeySelectPlatform), "")
			return
		}

		platforms, err := iconset.ParsePlatforms(strings.Join(group.Selected, ","))
		if err != nil {
			ui.showToast(text(KeyExportFailed), err.Error(), "")
			return
		}
		ui.settings.SetDefaultPlatforms(platforms)
		ui.startIconSetExport(platforms)
	}, ui.window)
}

func (ui *RootUI) startIconSetExport(platforms []iconset.Platform) {
	cfg := ui.editor.Config()
	outputPath := platform.UniquePath(export.OutputPathFor(ui.settings.GetExportDirectory(), cfg, model.ExportIconSet, 0))

	ui.exporter.SetOptions(ui.settings.ExportOptions())
	task, err := ui.exporter.ExportIconSet(cfg, platforms, outputPath)
	if err != nil {
		log.Printf("Icon set export rejected: %v", err)
		ui.showToast(ui.localization.GetText(KeyExportFailed), err.Error(), "")
		return
	}
	ui.onTaskAdded(task)
}

// onTaskAdded shows a newly started export in the task list
func (ui *RootUI) onTaskAdded(task *model.ExportTask) {
	log.Printf("Export task added: ID=%s, Kind=%s, OutputPath=%s", task.ID, task.Kind, task.OutputPath)
	ui.refreshTasks()
	ui.taskList.Refresh()
}

// refreshTasks reloads the task list from the exporter, newest first
func (ui *RootUI) refreshTasks() {
	all := ui.exporter.GetAllTasks()
	tasks := make([]*model.ExportTask, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		tasks = append(tasks, all[i])
	}

	ui.tasksMutex.Lock()
	ui.tasks = tasks
	ui.tasksMutex.Unlock()
}

// createTaskItem creates a new task item widget
func (ui *RootUI) createTaskItem() fyne.CanvasObject {
	taskRow := NewTaskRow(nil, ui.localization)
	taskRow.SetCallbacks(ui.onStopTask, ui.onRevealFile, ui.onOpenFile, ui.onCopyPath)
	return taskRow
}

// updateTaskItem updates a task item with current data
func (ui *RootUI) updateTaskItem(id widget.ListItemID, item fyne.CanvasObject) {
	ui.tasksMutex.RLock()
	if id >= len(ui.tasks) {
		ui.tasksMutex.RUnlock()
		return
	}
	task := ui.tasks[id]
	ui.tasksMutex.RUnlock()

	if taskRow, ok := item.(*TaskRow); ok {
		taskRow.UpdateTask(task)
	}
}

// shouldRefresh limits list refreshes caused by progress updates
func (ui *RootUI) shouldRefresh(status model.TaskStatus) bool {
	ui.uiUpdateMutex.Lock()
	defer ui.uiUpdateMutex.Unlock()

	now := time.Now()
	if status == model.TaskStatusRendering && now.Sub(ui.lastUIUpdate) < UIUpdateDebounce {
		return false
	}
	ui.lastUIUpdate = now
	return true
}

// onTaskUpdate handles task updates from the export service
func (ui *RootUI) onTaskUpdate(task *model.ExportTask) {
	status := task.Status

	ui.statusMutex.Lock()
	previous := ui.lastStatus[task.ID]
	ui.lastStatus[task.ID] = status
	ui.statusMutex.Unlock()

	justFinished := status.IsFinished() && !previous.IsFinished()
	if justFinished {
		log.Printf("Export task %s finished: status=%s output=%s", task.ID, status, task.OutputPath)
	}

	if !justFinished && !ui.shouldRefresh(status) {
		return
	}

	ui.refreshTasks()
	fyne.Do(func() {
		ui.taskList.Refresh()
		if justFinished {
			ui.notifyFinished(task, status)
		}
	})
}

// notifyFinished reports a finished export through a toast and, on success, a system notification
func (ui *RootUI) notifyFinished(task *model.ExportTask, status model.TaskStatus) {
	text := ui.localization.GetText
	title := task.GetDisplayTitle()

	switch status {
	case model.TaskStatusCompleted:
		ui.app.SendNotification(&fyne.Notification{
			Title:   text(KeyExportCompleted),
			Content: title,
		})
		ui.showToast(text(KeyExportCompleted), title, task.OutputPath)
	case model.TaskStatusError:
		ui.showToast(text(KeyExportFailed), title+": "+task.LastError, "")
	case model.TaskStatusStopped:
		ui.showToast(text(KeyExportStopped), title, "")
	}
}

// showToast shows an in-app toast notification; with a path it offers reveal and open actions
func (ui *RootUI) showToast(title, message, path string) {
	titleLabel := widget.NewLabel(title)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	messageLabel := widget.NewLabel(message)
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	var toastPopup *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		if toastPopup != nil {
			toastPopup.Hide()
		}
	})
	closeBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, titleLabel, closeBtn)
	content := container.NewVBox(header, messageLabel)

	if path != "" {
		revealBtn := widget.NewButton(ui.localization.GetText(KeyReveal), func() { ui.onRevealFile(path) })
		revealBtn.Importance = widget.HighImportance
		openBtn := widget.NewButton(ui.localization.GetText(KeyOpen), func() { ui.onOpenFile(path) })
		content.Add(container.NewHBox(revealBtn, openBtn))
	}

	toastPopup = widget.NewPopUp(content, ui.window.Canvas())

	// Position in top-right corner
	canvasSize := ui.window.Canvas().Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	toastPopup.Resize(toastSize)
	toastPopup.Move(fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin))
	toastPopup.Show()

	time.AfterFunc(ToastAutoHide, func() {
		fyne.Do(toastPopup.Hide)
	})
}

// onStopTask stops a running export
func (ui *RootUI) onStopTask(taskID string) {
	if err := ui.exporter.StopExport(taskID); err != nil {
		log.Printf("Error stopping task %s: %v", taskID, err)
		ui.showToast(ui.localization.GetText(KeyErrorStoppingTask), err.Error(), "")
	}
}

// onRevealFile reveals a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		ui.showToast(ui.localization.GetText(KeyErrorOpeningFile), err.Error(), "")
	}
}

// onOpenFile opens an exported file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Error opening file %s: %v", filePath, err)
		ui.showToast(ui.localization.GetText(KeyErrorOpeningFile), err.Error(), "")
	}
}

// onCopyPath copies a file path to the clipboard
func (ui *RootUI) onCopyPath(filePath string) {
	ui.app.Clipboard().SetContent(filePath)
	ui.showToast(ui.localization.GetText(KeyPathCopied), filePath, "")
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	previousLanguage := ui.settings.GetLanguage()

	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.previewer.SetSize(ui.settings.GetPreviewSize())

		if language := ui.settings.GetLanguage(); language != previousLanguage {
			ui.localization.SetLanguage(language)
			ui.rebuild()
		}
		ui.showToast(ui.localization.GetText(KeySettings), ui.localization.GetText(KeySettingsSaved), "")
	})
}

// refreshStyles reloads the saved style names into the style select
func (ui *RootUI) refreshStyles() {
	ui.styleSelect.Options = ui.settings.GetSavedStyleNames()
	ui.styleSelect.Refresh()
}

// onStyleSelected loads a saved style
func (ui *RootUI) onStyleSelected(name string) {
	cfg, ok := ui.settings.GetSavedStyles()[name]
	if !ok {
		return
	}
	ui.loadConfig(cfg)
}

// onSaveStyle asks for a name and stores the current configuration under it
func (ui *RootUI) onSaveStyle() {
	text := ui.localization.GetText

	nameEntry := widget.NewEntry()
	nameEntry.SetText(ui.styleSelect.Selected)
	items := []*widget.FormItem{widget.NewFormItem(text(KeyStyleName), nameEntry)}

	dialog.ShowForm(text(KeySaveStyle), text(KeySave), text(KeyCancel), items, func(confirmed bool) {
		if !confirmed {
			return
		}
		if err := ui.settings.SaveStyle(nameEntry.Text, ui.editor.Config()); err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		ui.refreshStyles()
		ui.styleSelect.SetSelected(strings.TrimSpace(nameEntry.Text))
	}, ui.window)
}

// onDeleteStyle removes the selected saved style
func (ui *RootUI) onDeleteStyle() {
	name := ui.styleSelect.Selected
	if name == "" {
		return
	}
	if err := ui.settings.DeleteStyle(name); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}
	ui.styleSelect.ClearSelected()
	ui.refreshStyles()
}

// onImportConfig loads an icon configuration from a JSON file
func (ui *RootUI) onImportConfig() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		cfg, err := config.LoadIconConfig(path)
		if err != nil {
			log.Printf("Failed to import configuration %s: %v", path, err)
			ui.showToast(ui.localization.GetText(KeyConfigLoadFailed), err.Error(), "")
			return
		}
		ui.loadConfig(cfg)
	}, ui.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(ConfigExtensions))
	fileDialog.Show()
}

// onExportConfig writes the current configuration to a JSON file
func (ui *RootUI) onExportConfig() {
	cfg := ui.editor.Config()

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := config.SaveIconConfig(path, cfg); err != nil {
			log.Printf("Failed to export configuration %s: %v", path, err)
			dialog.ShowError(err, ui.window)
			return
		}
		ui.showToast(ui.localization.GetText(KeyConfigSaved), path, path)
	}, ui.window)
	fileDialog.SetFileName(platform.SanitizeFileName(cfg.Name) + ConfigExtensions[0])
	fileDialog.Show()
}
