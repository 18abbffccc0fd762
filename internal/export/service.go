package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/icon-generator/internal/archive"
	"github.com/ytget/icon-generator/internal/iconset"
	"github.com/ytget/icon-generator/internal/model"
	"github.com/ytget/icon-generator/internal/platform"
	"github.com/ytget/icon-generator/internal/render"
)

const (
	TaskIDPrefix     = "export-"
	IconSetSuffix    = "-icons"
	OutputExtPNG     = ".png"
	OutputExtArchive = ".zip"

	// StopPollInterval is how often a running export checks for a stop request
	StopPollInterval = 50 * time.Millisecond
)

// ErrNoOutputPath is returned when an export has nowhere to write
var ErrNoOutputPath = errors.New("output path is required")

// Options are the user preferences that shape an export
type Options struct {
	// ArchivePassword encrypts icon set archives when non-empty
	ArchivePassword string
	// SaveToPhotos copies finished PNG exports into the photo library
	SaveToPhotos bool
}

// Service handles exports in the background
type Service struct {
	renderer   iconset.Renderer
	tasks      map[string]*model.ExportTask
	tasksMutex sync.RWMutex
	opts       Options
	onUpdate   func(*model.ExportTask) // callback for UI updates

	saveToPhotos func(string) (string, error)
}

var _ Exporter = (*Service)(nil)

// NewService creates a new export service rendering through renderer
func NewService(renderer iconset.Renderer) *Service {
	if renderer == nil {
		renderer = render.NewRenderer(nil)
	}
	return &Service{
		renderer:     renderer,
		tasks:        make(map[string]*model.ExportTask),
		saveToPhotos: platform.SaveToPhotoLibrary,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ExportTask)) {
	s.onUpdate = callback
}

// SetOptions replaces the export options used by exports started afterwards
func (s *Service) SetOptions(opts Options) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.opts = opts
}

// ExportPNG renders cfg at size into a PNG file
func (s *Service) ExportPNG(cfg model.IconConfig, size int, outputPath string) (*model.ExportTask, error) {
	if size < 1 || size > render.MaxSize {
		return nil, fmt.Errorf("%w: %d", render.ErrInvalidSize, size)
	}

	task := &model.ExportTask{
		Kind:       model.ExportPNG,
		Size:       size,
		OutputPath: outputPath,
	}
	return s.start(cfg, task)
}

// ExportIconSet renders the icon sets of platforms into a ZIP archive
func (s *Service) ExportIconSet(cfg model.IconConfig, platforms []iconset.Platform, outputPath string) (*model.ExportTask, error) {
	if len(platforms) == 0 {
		platforms = iconset.Platforms()
	}
	names := make([]string, 0, len(platforms))
	for _, p := range platforms {
		if _, err := iconset.Images(p); err != nil {
			return nil, err
		}
		names = append(names, string(p))
	}

	task := &model.ExportTask{
		Kind:       model.ExportIconSet,
		Platforms:  names,
		OutputPath: outputPath,
	}
	return s.start(cfg, task)
}

// start validates the request, registers the task and runs it in the background
func (s *Service) start(cfg model.IconConfig, task *model.ExportTask) (*model.ExportTask, error) {
	if task.OutputPath == "" {
		return nil, ErrNoOutputPath
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid icon configuration: %w", err)
	}

	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	// Check if an export is already writing to this path
	outputPath := filepath.Clean(task.OutputPath)
	for _, existing := range s.tasks {
		if filepath.Clean(existing.OutputPath) == outputPath && !existing.Status.IsFinished() {
			return nil, fmt.Errorf("export already in progress for file: %s", task.OutputPath)
		}
	}

	task.ID = generateTaskID()
	task.Config = cfg
	task.Status = model.TaskStatusPending
	task.StartedAt = time.Now()
	s.tasks[task.ID] = task

	log.Printf("Export %s queued: %s -> %s", task.ID, task.Kind, task.OutputPath)

	snapshot := task.Clone()
	go s.run(task, s.opts)

	return snapshot, nil
}

// StopExport stops a running export task
func (s *Service) StopExport(taskID string) error {
	s.tasksMutex.Lock()
	task, exists := s.tasks[taskID]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("export task not found: %s", taskID)
	}

	if !task.Status.CanStop() {
		status := task.Status
		s.tasksMutex.Unlock()
		return fmt.Errorf("export task is not active: %s", status)
	}

	// Set stopping status, the task goroutine picks it up
	task.Status = model.TaskStatusStopping
	snapshot := task.Clone()
	s.tasksMutex.Unlock()

	s.notifyUpdate(snapshot)
	return nil
}

// GetTask returns an export task by ID
func (s *Service) GetTask(taskID string) (*model.ExportTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	if !exists {
		return nil, false
	}
	return task.Clone(), true
}

// GetAllTasks returns all tasks, oldest first
func (s *Service) GetAllTasks() []*model.ExportTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.ExportTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task.Clone())
	}
	// UUIDv7 IDs sort chronologically
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

// run performs the export
func (s *Service) run(task *model.ExportTask, opts Options) {
	if !s.setStatus(task, model.TaskStatusStarting) {
		s.finish(task, context.Canceled)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Monitor for stop requests
	go func() {
		ticker := time.NewTicker(StopPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			s.tasksMutex.RLock()
			status := task.Status
			s.tasksMutex.RUnlock()

			if status == model.TaskStatusStopping {
				cancel()
				return
			}
			if status.IsFinished() {
				return
			}
		}
	}()

	if !s.setStatus(task, model.TaskStatusRendering) {
		s.finish(task, context.Canceled)
		return
	}

	var err error
	switch task.Kind {
	case model.ExportPNG:
		err = s.exportPNG(ctx, task)
	case model.ExportIconSet:
		err = s.exportIconSet(ctx, task, opts)
	default:
		err = fmt.Errorf("unknown export kind: %s", task.Kind)
	}

	if err == nil && task.Kind == model.ExportPNG && opts.SaveToPhotos {
		if saved, serr := s.saveToPhotos(task.OutputPath); serr != nil {
			log.Printf("Failed to save %s to photo library: %v", task.OutputPath, serr)
		} else {
			log.Printf("Saved %s to photo library as %s", task.OutputPath, saved)
		}
	}

	s.finish(task, err)
}

// exportPNG renders a single PNG and writes it next to its final path before renaming
func (s *Service) exportPNG(ctx context.Context, task *model.ExportTask) error {
	img, err := s.renderer.Render(task.Config, task.Size)
	if err != nil {
		return fmt.Errorf("failed to render icon: %w", err)
	}
	s.updateProgress(task, 1, 2)

	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := iconset.Encode(img, iconset.FormatPNG)
	if err != nil {
		return err
	}

	err = platform.WriteFileAtomic(task.OutputPath, func(w io.Writer) error {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write %s: %w", task.OutputPath, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.tasksMutex.Lock()
	task.FileCount = 1
	s.tasksMutex.Unlock()
	s.updateProgress(task, 2, 2)
	return nil
}

// exportIconSet renders every platform file and packs them into an archive
func (s *Service) exportIconSet(ctx context.Context, task *model.ExportTask, opts Options) error {
	platforms := make([]iconset.Platform, len(task.Platforms))
	for i, name := range task.Platforms {
		platforms[i] = iconset.Platform(name)
	}

	// One extra step for writing the archive
	entries, err := iconset.Generate(ctx, s.renderer, task.Config, platforms, func(done, total int) {
		s.updateProgress(task, done, total+1)
	})
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := archive.WriteFile(task.OutputPath, entries, archive.Options{Password: opts.ArchivePassword}); err != nil {
		return err
	}

	s.tasksMutex.Lock()
	task.FileCount = len(entries)
	s.tasksMutex.Unlock()
	s.updateProgress(task, 1, 1)
	return nil
}

// setStatus moves the task to status unless a stop was requested
func (s *Service) setStatus(task *model.ExportTask, status model.TaskStatus) bool {
	s.tasksMutex.Lock()
	if task.Status == model.TaskStatusStopping {
		s.tasksMutex.Unlock()
		return false
	}
	task.Status = status
	snapshot := task.Clone()
	s.tasksMutex.Unlock()

	s.notifyUpdate(snapshot)
	return true
}

// updateProgress records done out of total
func (s *Service) updateProgress(task *model.ExportTask, done, total int) {
	s.tasksMutex.Lock()
	task.SetProgress(done, total)
	snapshot := task.Clone()
	s.tasksMutex.Unlock()

	s.notifyUpdate(snapshot)
}

// finish records the outcome of a task
func (s *Service) finish(task *model.ExportTask, err error) {
	s.tasksMutex.Lock()
	switch {
	case errors.Is(err, context.Canceled):
		task.Status = model.TaskStatusStopped
		log.Printf("Export %s stopped", task.ID)
	case err != nil:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
		log.Printf("Export %s failed: %v", task.ID, err)
	default:
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
		log.Printf("Export %s completed: %d file(s) in %s", task.ID, task.FileCount, task.OutputPath)
	}
	task.FinishedAt = time.Now()
	snapshot := task.Clone()
	s.tasksMutex.Unlock()

	s.notifyUpdate(snapshot)
}

// notifyUpdate passes a snapshot taken under tasksMutex to the update callback.
// It must be called without holding tasksMutex.
func (s *Service) notifyUpdate(snapshot *model.ExportTask) {
	if s.onUpdate != nil {
		s.onUpdate(snapshot)
	}
}

// OutputPathFor returns the default output path for an export of cfg into dir
func OutputPathFor(dir string, cfg model.IconConfig, kind model.ExportKind, size int) string {
	name := platform.SanitizeFileName(cfg.Name)
	if kind == model.ExportIconSet {
		return filepath.Join(dir, name+IconSetSuffix+OutputExtArchive)
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%d%s", name, size, OutputExtPNG))
}

// generateTaskID generates a unique task ID using UUID v7 for better uniqueness and time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
