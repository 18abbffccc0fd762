package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/ytget/icon-generator/internal/model"
)

func TestEffectivePercent(t *testing.T) {
	tests := []struct {
		name     string
		task     model.ExportTask
		expected int
	}{
		{"percent", model.ExportTask{Status: model.TaskStatusRendering, Percent: 42}, 42},
		{"progress only", model.ExportTask{Status: model.TaskStatusRendering, Progress: 0.25}, 25},
		{"completed", model.ExportTask{Status: model.TaskStatusCompleted, Percent: 80}, 100},
		{"over", model.ExportTask{Status: model.TaskStatusRendering, Percent: 150}, 100},
		{"negative", model.ExportTask{Status: model.TaskStatusPending, Percent: -3}, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if result := effectivePercent(&test.task); result != test.expected {
				t.Errorf("effectivePercent = %d, expected %d", result, test.expected)
			}
		})
	}
}

func TestTaskDetail(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	png := &model.ExportTask{Kind: model.ExportPNG, Size: 512, FileCount: 1, StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond)}
	if detail := taskDetail(png); detail != "PNG 512px · 1 files · 1.5s" {
		t.Errorf("Unexpected PNG detail %q", detail)
	}

	set := &model.ExportTask{Kind: model.ExportIconSet, Platforms: []string{"ios", "web"}}
	if detail := taskDetail(set); detail != "ios, web" {
		t.Errorf("Unexpected icon set detail %q", detail)
	}

	failed := &model.ExportTask{Kind: model.ExportPNG, Status: model.TaskStatusError, LastError: "disk full"}
	if detail := taskDetail(failed); !strings.HasSuffix(detail, "disk full") {
		t.Errorf("Error detail should show the error, got %q", detail)
	}

	if detail := taskDetail(&model.ExportTask{}); detail != DashPlaceholder {
		t.Errorf("Empty task detail should be a placeholder, got %q", detail)
	}
}
