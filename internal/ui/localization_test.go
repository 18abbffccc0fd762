package ui

import (
	"testing"

	"github.com/ytget/icon-generator/internal/model"
)

func TestLocalization_SetLanguage(t *testing.T) {
	l := NewLocalization()

	if l.GetCurrentLanguage() != LanguageEnglish {
		t.Errorf("Expected default language %s, got %s", LanguageEnglish, l.GetCurrentLanguage())
	}

	l.SetLanguage(LanguageRussian)
	if l.GetText(KeyExportPNG) != "Экспорт PNG" {
		t.Errorf("Unexpected Russian text %q", l.GetText(KeyExportPNG))
	}

	// Unknown languages are ignored
	l.SetLanguage("pt")
	if l.GetCurrentLanguage() != LanguageRussian {
		t.Errorf("Unknown language should keep %s, got %s", LanguageRussian, l.GetCurrentLanguage())
	}

	l.SetLanguage(LanguageSystem)
	if lang := l.GetCurrentLanguage(); lang != LanguageEnglish && lang != LanguageRussian {
		t.Errorf("System language resolved to unsupported %q", lang)
	}
}

func TestLocalization_Fallbacks(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage(LanguageRussian)
	delete(l.texts[LanguageRussian], KeyReset)

	if text := l.GetText(KeyReset); text != "Reset" {
		t.Errorf("Expected English fallback, got %q", text)
	}
	if text := l.GetText("missing_key"); text != "missing_key" {
		t.Errorf("Expected key fallback, got %q", text)
	}
}

func TestLocalization_LanguagesHaveSameKeys(t *testing.T) {
	l := NewLocalization()
	english := l.texts[LanguageEnglish]

	for code := range l.GetAvailableLanguages() {
		texts, ok := l.texts[code]
		if !ok {
			t.Errorf("No texts for available language %s", code)
			continue
		}
		if len(texts) != len(english) {
			t.Errorf("Language %s has %d texts, English has %d", code, len(texts), len(english))
		}
		for key := range english {
			if _, ok := texts[key]; !ok {
				t.Errorf("Language %s is missing %s", code, key)
			}
		}
	}
}

func TestLocalization_StatusText(t *testing.T) {
	l := NewLocalization()

	tests := []struct {
		status   model.TaskStatus
		expected string
	}{
		{model.TaskStatusRendering, "Rendering"},
		{model.TaskStatusCompleted, "Completed"},
		{model.TaskStatus("Custom"), "Custom"},
	}

	for _, test := range tests {
		if result := l.StatusText(test.status); result != test.expected {
			t.Errorf("StatusText(%s) = %q, expected %q", test.status, result, test.expected)
		}
	}
}
