package ui

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/icon-generator/internal/model"
)

// Progress calculation constants
const (
	MaxProgressPercent = 100
	MinProgressPercent = 0
)

// TaskRow represents a compact export task row widget
type TaskRow struct {
	widget.BaseWidget

	task         *model.ExportTask
	localization *Localization

	// UI components
	titleLabel    *widget.Label
	statusLabel   *widget.Label
	detailLabel   *widget.Label
	progressLabel *widget.Label
	progressBar   *widget.ProgressBar

	// Action buttons
	stopBtn   *widget.Button
	revealBtn *widget.Button // reveal in file manager
	openBtn   *widget.Button // open with the default viewer
	copyBtn   *widget.Button

	// Callbacks
	onStop     func(taskID string)
	onReveal   func(filePath string)
	onOpen     func(filePath string)
	onCopyPath func(filePath string)
}

// NewTaskRow creates a new task row widget
func NewTaskRow(task *model.ExportTask, localization *Localization) *TaskRow {
	if task == nil {
		task = &model.ExportTask{Status: model.TaskStatusPending}
	}

	tr := &TaskRow{
		task:         task,
		localization: localization,
	}
	tr.ExtendBaseWidget(tr)
	tr.createUI()
	tr.updateFromTask()
	return tr
}

// SetCallbacks sets the action callbacks
func (tr *TaskRow) SetCallbacks(
	onStop func(taskID string),
	onReveal func(filePath string),
	onOpen func(filePath string),
	onCopyPath func(filePath string),
) {
	tr.onStop = onStop
	tr.onReveal = onReveal
	tr.onOpen = onOpen
	tr.onCopyPath = onCopyPath
}

// UpdateTask updates the row with new task data
func (tr *TaskRow) UpdateTask(task *model.ExportTask) {
	if task == nil {
		return
	}
	tr.task = task
	tr.updateFromTask()
	tr.Refresh()
}

// createUI creates the UI components
func (tr *TaskRow) createUI() {
	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignTrailing
	tr.progressLabel = widget.NewLabel("")
	tr.progressLabel.Alignment = fyne.TextAlignTrailing
	tr.detailLabel = widget.NewLabel("")
	tr.detailLabel.Truncation = fyne.TextTruncateEllipsis
	tr.detailLabel.TextStyle = fyne.TextStyle{Monospace: true}

	tr.progressBar = widget.NewProgressBar()
	tr.progressBar.TextFormatter = func() string { return "" }

	// Buttons read tr.task when tapped, not when created
	tr.stopBtn = widget.NewButton(IconStop, func() {
		if tr.onStop != nil {
			tr.onStop(tr.task.ID)
		}
	})
	tr.stopBtn.Importance = widget.DangerImportance

	tr.revealBtn = widget.NewButton(IconFolder, func() {
		if tr.onReveal != nil && tr.hasOutput() {
			tr.onReveal(tr.task.OutputPath)
		}
	})
	tr.openBtn = widget.NewButton(IconFile, func() {
		if tr.onOpen != nil && tr.hasOutput() {
			tr.onOpen(tr.task.OutputPath)
		}
	})
	tr.copyBtn = widget.NewButton(IconCopy, func() {
		if tr.onCopyPath != nil && tr.hasOutput() {
			tr.onCopyPath(tr.task.OutputPath)
		}
	})
	for _, btn := range []*widget.Button{tr.revealBtn, tr.openBtn, tr.copyBtn} {
		btn.Importance = widget.LowImportance
	}
}

// hasOutput reports whether the output file exists from the task's point of view
func (tr *TaskRow) hasOutput() bool {
	return tr.task.Status == model.TaskStatusCompleted && tr.task.OutputPath != ""
}

// effectivePercent clamps the task percent for display
func effectivePercent(task *model.ExportTask) int {
	if task.Status == model.TaskStatusCompleted {
		return MaxProgressPercent
	}
	percent := task.Percent
	if percent <= 0 && task.Progress > 0 {
		percent = int(task.Progress * MaxProgressPercent)
	}
	if percent < MinProgressPercent {
		return MinProgressPercent
	}
	if percent > MaxProgressPercent {
		return MaxProgressPercent
	}
	return percent
}

// taskDetail describes what the task produces, or why it failed
func taskDetail(task *model.ExportTask) string {
	if task.Status == model.TaskStatusError && task.LastError != "" {
		return IconError + " " + task.LastError
	}

	var parts []string
	switch task.Kind {
	case model.ExportPNG:
		parts = append(parts, fmt.Sprintf("PNG %dpx", task.Size))
	case model.ExportIconSet:
		parts = append(parts, strings.Join(task.Platforms, ", "))
	}
	if task.FileCount > 0 {
		parts = append(parts, fmt.Sprintf("%d files", task.FileCount))
	}
	if d := task.Duration(); d > 0 {
		parts = append(parts, d.Round(10 * time.Millisecond).String())
	}
	if len(parts) == 0 {
		return DashPlaceholder
	}
	return strings.Join(parts, MiddleDotSeparator)
}

// updateFromTask updates UI components based on task state
func (tr *TaskRow) updateFromTask() {
	tr.titleLabel.SetText(tr.task.GetDisplayTitle())

	status := tr.localization.StatusText(tr.task.Status)
	switch tr.task.Status {
	case model.TaskStatusError:
		tr.statusLabel.Importance = widget.DangerImportance
	case model.TaskStatusCompleted:
		tr.statusLabel.Importance = widget.SuccessImportance
		status = IconDone + " " + status
	case model.TaskStatusStopped:
		tr.statusLabel.Importance = widget.WarningImportance
	default:
		if tr.task.Status.IsWorking() {
			tr.statusLabel.Importance = widget.HighImportance
		} else {
			tr.statusLabel.Importance = widget.MediumImportance
		}
	}
	tr.statusLabel.SetText(status)

	percent := effectivePercent(tr.task)
	tr.progressBar.SetValue(float64(percent) / MaxProgressPercent)
	if tr.task.Status.IsFinished() {
		tr.progressLabel.SetText("")
	} else {
		tr.progressLabel.SetText(fmt.Sprintf(ProgressLabelFormat, percent))
	}

	tr.detailLabel.SetText(taskDetail(tr.task))
	tr.updateButtons()
}

// updateButtons updates button states based on task status
func (tr *TaskRow) updateButtons() {
	if tr.task.Status.CanStop() {
		tr.stopBtn.Show()
	} else {
		tr.stopBtn.Hide()
	}

	for _, btn := range []*widget.Button{tr.revealBtn, tr.openBtn, tr.copyBtn} {
		if tr.hasOutput() {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}
}

// CreateRenderer creates the widget renderer
func (tr *TaskRow) CreateRenderer() fyne.WidgetRenderer {
	return &taskRowRenderer{taskRow: tr}
}

// taskRowRenderer renders the task row widget
type taskRowRenderer struct {
	taskRow *TaskRow
	layout  *fyne.Container
}

// Layout arranges the components
func (r *taskRowRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	if size.Width < RowMinWidth {
		size.Width = RowMinWidth
	}
	if size.Height < RowMinHeight {
		size.Height = RowMinHeight
	}
	r.layout.Resize(size)
}

// MinSize returns the minimum size
func (r *taskRowRenderer) MinSize() fyne.Size {
	if r.layout != nil {
		return r.layout.MinSize().Max(fyne.NewSize(RowMinWidth, RowMinHeight))
	}
	return fyne.NewSize(RowMinWidth, RowMinHeight)
}

// Refresh refreshes the renderer
func (r *taskRowRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Refresh()
}

// Objects returns the container objects
func (r *taskRowRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *taskRowRenderer) Destroy() {}

// createLayout creates the main layout
func (r *taskRowRenderer) createLayout() {
	tr := r.taskRow

	// Fix label widths with a transparent rectangle underneath
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	info := container.NewHBox(
		fixedWidth(StatusLabelWidth, tr.statusLabel),
		fixedWidth(PercentLabelWidth, tr.progressLabel),
	)
	actionRow := container.NewHBox(tr.stopBtn, tr.revealBtn, tr.openBtn, tr.copyBtn)
	rightCluster := container.NewBorder(nil, nil, nil, actionRow, info)

	header := container.NewBorder(nil, nil, nil, rightCluster, tr.titleLabel)

	r.layout = container.NewVBox(
		header,
		tr.progressBar,
		tr.detailLabel,
		widget.NewSeparator(),
	)
}
