package model

import (
	"path/filepath"
	"strings"
	"time"
)

// ExportKind selects what an export task produces
type ExportKind string

const (
	// ExportPNG renders a single raster image
	ExportPNG ExportKind = "png"
	// ExportIconSet renders a platform icon set packaged as a ZIP archive
	ExportIconSet ExportKind = "iconset"
)

// ExportTask represents a single export task
type ExportTask struct {
	ID         string
	Kind       ExportKind
	Config     IconConfig // snapshot taken when the export was requested
	Platforms  []string   // icon set exports only
	Size       int        // single PNG exports only
	OutputPath string
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	FileCount  int     // files written into the output
	LastError  string  // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// Clone returns a copy that shares no mutable state with et
func (et *ExportTask) Clone() *ExportTask {
	clone := *et
	clone.Platforms = append([]string(nil), et.Platforms...)
	return &clone
}

// SetProgress updates Progress and Percent from a done/total pair
func (et *ExportTask) SetProgress(done, total int) {
	if total <= 0 {
		return
	}
	progress := float64(done) / float64(total)
	if progress > 1 {
		progress = 1
	}
	et.Progress = progress
	et.Percent = int(progress * 100)
}

// GetDisplayTitle returns the output file name, or the icon name if no path is set
func (et *ExportTask) GetDisplayTitle() string {
	if et.OutputPath != "" {
		// Support both / and \ separators
		parts := strings.FieldsFunc(et.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}
	return et.Config.Name
}

// Duration returns how long the task ran, or zero if it has not finished
func (et *ExportTask) Duration() time.Duration {
	if et.FinishedAt.IsZero() || et.StartedAt.IsZero() {
		return 0
	}
	return et.FinishedAt.Sub(et.StartedAt)
}

// OutputExt returns the lowercase extension of the output path
func (et *ExportTask) OutputExt() string {
	return strings.ToLower(filepath.Ext(et.OutputPath))
}
