package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fyne.io/fyne/v2"

	"github.com/ytget/icon-generator/internal/export"
	"github.com/ytget/icon-generator/internal/iconset"
	"github.com/ytget/icon-generator/internal/model"
	"github.com/ytget/icon-generator/internal/platform"
	"github.com/ytget/icon-generator/internal/preview"
)

// Settings keys for Fyne preferences
const (
	KeyExportDir        = "export_directory"
	KeyLanguage         = "app_language"
	KeyDefaultPlatforms = "default_platforms"
	KeyArchivePassword  = "archive_password"
	KeyPreviewSize      = "preview_size"
	KeyExportSize       = "export_size"
	KeySaveToPhotos     = "save_to_photos"
	KeyIconConfig       = "icon_config"
	KeySavedStyles      = "saved_styles"
)

// Default values
const (
	DefaultExportDirName = "IconGenerator"
	DefaultLanguage      = "system"
	DefaultPreviewSize   = preview.DefaultSize
	DefaultExportSize    = 1024
	DefaultSaveToPhotos  = false
)

// Export size bounds
const (
	MinExportSize = 16
	MaxExportSize = 4096
)

// ErrEmptyStyleName is returned when saving a style without a name
var ErrEmptyStyleName = errors.New("style name is empty")

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetExportDirectory returns the configured export directory
func (s *Settings) GetExportDirectory() string {
	dir := s.app.Preferences().String(KeyExportDir)
	if dir == "" {
		pictures, err := platform.GetPicturesDir()
		if err != nil {
			pictures = os.TempDir()
		}
		defaultDir := filepath.Join(pictures, DefaultExportDirName)
		s.SetExportDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetExportDirectory sets the export directory
func (s *Settings) SetExportDirectory(dir string) {
	s.app.Preferences().SetString(KeyExportDir, dir)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}

// GetDefaultPlatforms returns the platforms preselected for icon set exports
func (s *Settings) GetDefaultPlatforms() []iconset.Platform {
	value := s.app.Preferences().String(KeyDefaultPlatforms)
	platforms, err := iconset.ParsePlatforms(value)
	if err != nil {
		log.Printf("Invalid stored platforms %q, using all: %v", value, err)
		platforms = iconset.Platforms()
	}
	if value == "" || err != nil {
		s.SetDefaultPlatforms(platforms)
	}
	return platforms
}

// SetDefaultPlatforms sets the platforms preselected for icon set exports
func (s *Settings) SetDefaultPlatforms(platforms []iconset.Platform) {
	if len(platforms) == 0 {
		platforms = iconset.Platforms()
	}
	s.app.Preferences().SetString(KeyDefaultPlatforms, iconset.FormatPlatforms(platforms))
}

// GetArchivePassword returns the password for icon set archives, empty for none
func (s *Settings) GetArchivePassword() string {
	return s.app.Preferences().String(KeyArchivePassword)
}

// SetArchivePassword sets the password for icon set archives
func (s *Settings) SetArchivePassword(password string) {
	s.app.Preferences().SetString(KeyArchivePassword, password)
}

// GetPreviewSize returns the preview render size
func (s *Settings) GetPreviewSize() int {
	value := s.app.Preferences().Int(KeyPreviewSize)
	if value <= 0 {
		s.SetPreviewSize(DefaultPreviewSize)
		return DefaultPreviewSize
	}
	return preview.ClampSize(value)
}

// SetPreviewSize sets the preview render size
func (s *Settings) SetPreviewSize(size int) {
	s.app.Preferences().SetInt(KeyPreviewSize, preview.ClampSize(size))
}

// GetExportSize returns the side of single PNG exports
func (s *Settings) GetExportSize() int {
	value := s.app.Preferences().Int(KeyExportSize)
	if value <= 0 {
		s.SetExportSize(DefaultExportSize)
		return DefaultExportSize
	}
	return value
}

// SetExportSize sets the side of single PNG exports
func (s *Settings) SetExportSize(size int) {
	if size < MinExportSize {
		size = MinExportSize
	}
	if size > MaxExportSize {
		size = MaxExportSize
	}
	s.app.Preferences().SetInt(KeyExportSize, size)
}

// GetSaveToPhotos returns whether PNG exports are copied to the photo library
func (s *Settings) GetSaveToPhotos() bool {
	return s.app.Preferences().BoolWithFallback(KeySaveToPhotos, DefaultSaveToPhotos)
}

// SetSaveToPhotos sets whether PNG exports are copied to the photo library
func (s *Settings) SetSaveToPhotos(save bool) {
	s.app.Preferences().SetBool(KeySaveToPhotos, save)
}

// ExportOptions collects the export related settings
func (s *Settings) ExportOptions() export.Options {
	return export.Options{
		ArchivePassword: s.GetArchivePassword(),
		SaveToPhotos:    s.GetSaveToPhotos(),
	}
}

// GetIconConfig returns the stored icon configuration, or the default one if
// nothing valid is stored
func (s *Settings) GetIconConfig() model.IconConfig {
	blob := s.app.Preferences().String(KeyIconConfig)
	if blob == "" {
		cfg := model.DefaultIconConfig()
		s.SetIconConfig(cfg)
		return cfg
	}

	cfg, err := DecodeIconConfig([]byte(blob))
	if err != nil {
		log.Printf("Stored icon configuration is invalid, using default: %v", err)
		return model.DefaultIconConfig()
	}
	return cfg
}

// SetIconConfig stores the icon configuration
func (s *Settings) SetIconConfig(cfg model.IconConfig) {
	data, err := json.Marshal(cfg)
	if err != nil {
		log.Printf("Failed to encode icon configuration: %v", err)
		return
	}
	s.app.Preferences().SetString(KeyIconConfig, string(data))
}

// GetSavedStyles returns the named configurations saved by the user
func (s *Settings) GetSavedStyles() map[string]model.IconConfig {
	styles := make(map[string]model.IconConfig)
	blob := s.app.Preferences().String(KeySavedStyles)
	if blob == "" {
		return styles
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		log.Printf("Stored styles are invalid, ignoring them: %v", err)
		return styles
	}
	for name, data := range raw {
		cfg, err := DecodeIconConfig(data)
		if err != nil {
			log.Printf("Skipping invalid style %q: %v", name, err)
			continue
		}
		styles[name] = cfg
	}
	return styles
}

// GetSavedStyleNames returns the saved style names in alphabetical order
func (s *Settings) GetSavedStyleNames() []string {
	styles := s.GetSavedStyles()
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SaveStyle stores cfg under name, replacing an existing style of that name
func (s *Settings) SaveStyle(name string, cfg model.IconConfig) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyStyleName
	}
	styles := s.GetSavedStyles()
	styles[name] = cfg
	return s.storeStyles(styles)
}

// DeleteStyle removes a saved style, missing names are ignored
func (s *Settings) DeleteStyle(name string) error {
	styles := s.GetSavedStyles()
	if _, ok := styles[name]; !ok {
		return nil
	}
	delete(styles, name)
	return s.storeStyles(styles)
}

func (s *Settings) storeStyles(styles map[string]model.IconConfig) error {
	data, err := json.Marshal(styles)
	if err != nil {
		return fmt.Errorf("failed to encode styles: %w", err)
	}
	s.app.Preferences().SetString(KeySavedStyles, string(data))
	return nil
}

// DecodeIconConfig parses a JSON icon configuration on top of the defaults,
// so fields missing from data keep their default values
func DecodeIconConfig(data []byte) (model.IconConfig, error) {
	cfg := model.DefaultIconConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return model.IconConfig{}, fmt.Errorf("failed to decode icon configuration: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return model.IconConfig{}, err
	}
	return cfg, nil
}

// LoadIconConfig reads a JSON icon configuration file
func LoadIconConfig(path string) (model.IconConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.IconConfig{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return DecodeIconConfig(data)
}

// SaveIconConfig writes cfg to path as indented JSON
func SaveIconConfig(path string, cfg model.IconConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode icon configuration: %w", err)
	}
	if err := os.WriteFile(path, data, platform.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
