package export

import (
	"github.com/ytget/icon-generator/internal/iconset"
	"github.com/ytget/icon-generator/internal/model"
)

// Exporter defines the interface for the export service.
// Tasks handed out by an Exporter, including those passed to the update
// callback, are snapshots and never change after they are returned.
type Exporter interface {
	SetUpdateCallback(func(*model.ExportTask))
	SetOptions(opts Options)
	ExportPNG(cfg model.IconConfig, size int, outputPath string) (*model.ExportTask, error)
	ExportIconSet(cfg model.IconConfig, platforms []iconset.Platform, outputPath string) (*model.ExportTask, error)
	StopExport(taskID string) error
	GetTask(taskID string) (*model.ExportTask, bool)
	GetAllTasks() []*model.ExportTask
}
