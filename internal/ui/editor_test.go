package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/icon-generator/internal/model"
)

func newTestEditor(t *testing.T) (*Editor, *[]model.IconConfig) {
	t.Helper()
	test.NewApp()
	window := test.NewWindow(nil)
	t.Cleanup(window.Close)

	changes := &[]model.IconConfig{}
	e := NewEditor(window, NewLocalization(), model.DefaultIconConfig(), func(cfg model.IconConfig) {
		*changes = append(*changes, cfg)
	})
	return e, changes
}

func TestEditor_LoadDoesNotReportChanges(t *testing.T) {
	e, changes := newTestEditor(t)

	if len(*changes) != 0 {
		t.Fatalf("Creating the editor reported %d changes", len(*changes))
	}

	cfg := model.DefaultIconConfig()
	cfg.Name = "Loaded"
	cfg.Background.Shape = model.ShapeCircle
	e.Load(cfg)

	if len(*changes) != 0 {
		t.Errorf("Load reported %d changes", len(*changes))
	}
	if e.Config().Name != "Loaded" || e.shapeSelect.Selected != string(model.ShapeCircle) {
		t.Errorf("Controls not loaded: %+v", e.Config())
	}
}

func TestEditor_ControlsEditConfig(t *testing.T) {
	e, changes := newTestEditor(t)

	e.opacitySlider.SetValue(0.5)
	e.shapeSelect.SetSelected(string(model.ShapeSquircle))
	e.shadowCheck.SetChecked(false)

	if len(*changes) != 3 {
		t.Fatalf("Expected 3 changes, got %d", len(*changes))
	}
	last := (*changes)[2]
	if last.Transform.Opacity != 0.5 || last.Background.Shape != model.ShapeSquircle || last.Shadow.Enabled {
		t.Errorf("Edits not applied: %+v", last)
	}
	if e.Config() != last {
		t.Error("Config should match the last reported change")
	}
}

func TestEditor_Visibility(t *testing.T) {
	e, _ := newTestEditor(t)

	// Default is a preset on a rounded gradient
	if !e.presetRow.Visible() || e.textRows[0].Visible() || e.imageRows[0].Visible() {
		t.Error("Only the preset control should be visible for preset sources")
	}
	if !e.cornerRow.Visible() || !e.angleRow.Visible() {
		t.Error("Corner radius and angle should be visible for a rounded linear gradient")
	}

	e.kindSelect.SetSelected(e.localization.GetText(KeyText))
	if e.Config().Source.Kind != model.SourceText {
		t.Fatalf("Kind = %s, expected text", e.Config().Source.Kind)
	}
	if e.presetRow.Visible() || !e.textRows[0].Visible() {
		t.Error("Text controls should replace the preset control")
	}

	e.fillSelect.SetSelected(string(model.FillSolid))
	e.shapeSelect.SetSelected(string(model.ShapeCircle))
	if e.gradientRows[0].Visible() || e.cornerRow.Visible() {
		t.Error("Gradient and corner controls should hide for a solid circle")
	}
}

func TestToModelColor(t *testing.T) {
	c := model.MustParseColor("#11223380")
	if result := toModelColor(c.NRGBA()); result != c {
		t.Errorf("toModelColor = %v, expected %v", result, c)
	}
}
