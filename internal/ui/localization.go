package ui

import (
	"strings"

	"fyne.io/fyne/v2/lang"

	"github.com/ytget/icon-generator/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Supported languages
const (
	LanguageSystem  = "system"
	LanguageEnglish = "en"
	LanguageRussian = "ru"
)

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyOpen              = "open"
	KeyReveal            = "reveal"
	KeyStop              = "stop"
	KeyName              = "name"
	KeySource            = "source"
	KeyPreset            = "preset"
	KeyImage             = "image"
	KeyText              = "text"
	KeyTemplate          = "template"
	KeyFont              = "font"
	KeyTint              = "tint"
	KeyTintImage         = "tint_image"
	KeyChooseImage       = "choose_image"
	KeyNoImage           = "no_image"
	KeyBackground        = "background"
	KeyShape             = "shape"
	KeyFill              = "fill"
	KeyColorFrom         = "color_from"
	KeyColorTo           = "color_to"
	KeyAngle             = "angle"
	KeyCornerRadius      = "corner_radius"
	KeyPadding           = "padding"
	KeyBorder            = "border"
	KeyShadow            = "shadow"
	KeyEnabled           = "enabled"
	KeyColor             = "color"
	KeyWidth             = "width"
	KeyOffsetX           = "offset_x"
	KeyOffsetY           = "offset_y"
	KeyBlur              = "blur"
	KeyTransform         = "transform"
	KeyScale             = "scale"
	KeyRotation          = "rotation"
	KeyOpacity           = "opacity"
	KeyFlipH             = "flip_h"
	KeyFlipV             = "flip_v"
	KeyStyles            = "styles"
	KeySaveStyle         = "save_style"
	KeyDeleteStyle       = "delete_style"
	KeyStyleName         = "style_name"
	KeyReset             = "reset"
	KeyImportConfig      = "import_config"
	KeyExportConfig      = "export_config"
	KeyExportPNG         = "export_png"
	KeyExportIconSet     = "export_icon_set"
	KeyPlatforms         = "platforms"
	KeySelectPlatform    = "select_platform"
	KeyExportStarted     = "export_started"
	KeyExportCompleted   = "export_completed"
	KeyExportFailed      = "export_failed"
	KeyExportStopped     = "export_stopped"
	KeyExportDirectory   = "export_directory"
	KeyArchivePassword   = "archive_password"
	KeyPreviewSize       = "preview_size"
	KeyExportSize        = "export_size"
	KeySaveToPhotos      = "save_to_photos"
	KeyExportSettings    = "export_settings"
	KeyInterfaceSettings = "interface_settings"
	KeySettingsSaved     = "settings_saved"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyErrorStoppingTask = "error_stopping_task"
	KeyPathCopied        = "path_copied"
	KeyPreviewFailed     = "preview_failed"
	KeyConfigLoadFailed  = "config_load_failed"
	KeyConfigSaved       = "config_saved"
	KeyStatusPending     = "status_pending"
	KeyStatusStarting    = "status_starting"
	KeyStatusRendering   = "status_rendering"
	KeyStatusStopping    = "status_stopping"
	KeyStatusStopped     = "status_stopped"
	KeyStatusCompleted   = "status_completed"
	KeyStatusError       = "status_error"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LanguageEnglish,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language, "system" follows the OS locale
func (l *Localization) SetLanguage(language string) {
	if language == LanguageSystem {
		language = systemLanguage()
	}

	if _, exists := l.texts[language]; exists {
		l.currentLanguage = language
	}
}

// systemLanguage maps the OS locale to a supported language, English otherwise
func systemLanguage() string {
	locale := strings.ToLower(string(lang.SystemLocale()))
	if strings.HasPrefix(locale, LanguageRussian) {
		return LanguageRussian
	}
	return LanguageEnglish
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts[LanguageEnglish]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// StatusText returns the localized name of a task status
func (l *Localization) StatusText(status model.TaskStatus) string {
	switch status {
	case model.TaskStatusPending:
		return l.GetText(KeyStatusPending)
	case model.TaskStatusStarting:
		return l.GetText(KeyStatusStarting)
	case model.TaskStatusRendering:
		return l.GetText(KeyStatusRendering)
	case model.TaskStatusStopping:
		return l.GetText(KeyStatusStopping)
	case model.TaskStatusStopped:
		return l.GetText(KeyStatusStopped)
	case model.TaskStatusCompleted:
		return l.GetText(KeyStatusCompleted)
	case model.TaskStatusError:
		return l.GetText(KeyStatusError)
	default:
		return status.String()
	}
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LanguageEnglish: "English",
		LanguageRussian: "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts[LanguageEnglish] = map[string]string{
		KeyAppTitle:          "Icon Generator",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyOpen:              "Open",
		KeyReveal:            "Reveal",
		KeyStop:              "Stop",
		KeyName:              "Name",
		KeySource:            "Source",
		KeyPreset:            "Preset",
		KeyImage:             "Image",
		KeyText:              "Text",
		KeyTemplate:          "Template",
		KeyFont:              "Font",
		KeyTint:              "Tint",
		KeyTintImage:         "Tint image",
		KeyChooseImage:       "Choose image...",
		KeyNoImage:           "No image selected",
		KeyBackground:        "Background",
		KeyShape:             "Shape",
		KeyFill:              "Fill",
		KeyColorFrom:         "Color",
		KeyColorTo:           "Second color",
		KeyAngle:             "Angle",
		KeyCornerRadius:      "Corner radius",
		KeyPadding:           "Padding",
		KeyBorder:            "Border",
		KeyShadow:            "Shadow",
		KeyEnabled:           "Enabled",
		KeyColor:             "Color",
		KeyWidth:             "Width",
		KeyOffsetX:           "Offset X",
		KeyOffsetY:           "Offset Y",
		KeyBlur:              "Blur",
		KeyTransform:         "Transform",
		KeyScale:             "Scale",
		KeyRotation:          "Rotation",
		KeyOpacity:           "Opacity",
		KeyFlipH:             "Flip horizontally",
		KeyFlipV:             "Flip vertically",
		KeyStyles:            "Styles",
		KeySaveStyle:         "Save style",
		KeyDeleteStyle:       "Delete style",
		KeyStyleName:         "Style name",
		KeyReset:             "Reset",
		KeyImportConfig:      "Import configuration...",
		KeyExportConfig:      "Export configuration...",
		KeyExportPNG:         "Export PNG",
		KeyExportIconSet:     "Export icon set",
		KeyPlatforms:         "Platforms",
		KeySelectPlatform:    "Select at least one platform",
		KeyExportStarted:     "Export started",
		KeyExportCompleted:   "Export completed",
		KeyExportFailed:      "Export failed",
		KeyExportStopped:     "Export stopped",
		KeyExportDirectory:   "Export Directory",
		KeyArchivePassword:   "Archive Password",
		KeyPreviewSize:       "Preview Size",
		KeyExportSize:        "PNG Export Size",
		KeySaveToPhotos:      "Save PNG exports to Photos",
		KeyExportSettings:    "Export Settings",
		KeyInterfaceSettings: "Interface Settings",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyErrorOpeningFile:  "Error opening file",
		KeyErrorStoppingTask: "Error stopping task",
		KeyPathCopied:        "Path copied to clipboard",
		KeyPreviewFailed:     "Preview failed",
		KeyConfigLoadFailed:  "Could not load configuration",
		KeyConfigSaved:       "Configuration saved",
		KeyStatusPending:     "Pending",
		KeyStatusStarting:    "Starting",
		KeyStatusRendering:   "Rendering",
		KeyStatusStopping:    "Stopping",
		KeyStatusStopped:     "Stopped",
		KeyStatusCompleted:   "Completed",
		KeyStatusError:       "Error",
	}

	// Russian texts
	l.texts[LanguageRussian] = map[string]string{
		KeyAppTitle:          "Генератор иконок",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeyOpen:              "Открыть",
		KeyReveal:            "Показать",
		KeyStop:              "Стоп",
		KeyName:              "Название",
		KeySource:            "Источник",
		KeyPreset:            "Шаблон",
		KeyImage:             "Изображение",
		KeyText:              "Текст",
		KeyTemplate:          "Раскладка",
		KeyFont:              "Шрифт",
		KeyTint:              "Оттенок",
		KeyTintImage:         "Окрасить изображение",
		KeyChooseImage:       "Выбрать изображение...",
		KeyNoImage:           "Изображение не выбрано",
		KeyBackground:        "Фон",
		KeyShape:             "Форма",
		KeyFill:              "Заливка",
		KeyColorFrom:         "Цвет",
		KeyColorTo:           "Второй цвет",
		KeyAngle:             "Угол",
		KeyCornerRadius:      "Скругление",
		KeyPadding:           "Отступ",
		KeyBorder:            "Рамка",
		KeyShadow:            "Тень",
		KeyEnabled:           "Включено",
		KeyColor:             "Цвет",
		KeyWidth:             "Толщина",
		KeyOffsetX:           "Смещение X",
		KeyOffsetY:           "Смещение Y",
		KeyBlur:              "Размытие",
		KeyTransform:         "Трансформация",
		KeyScale:             "Масштаб",
		KeyRotation:          "Поворот",
		KeyOpacity:           "Непрозрачность",
		KeyFlipH:             "Отразить по горизонтали",
		KeyFlipV:             "Отразить по вертикали",
		KeyStyles:            "Стили",
		KeySaveStyle:         "Сохранить стиль",
		KeyDeleteStyle:       "Удалить стиль",
		KeyStyleName:         "Название стиля",
		KeyReset:             "Сбросить",
		KeyImportConfig:      "Импорт конфигурации...",
		KeyExportConfig:      "Экспорт конфигурации...",
		KeyExportPNG:         "Экспорт PNG",
		KeyExportIconSet:     "Экспорт набора иконок",
		KeyPlatforms:         "Платформы",
		KeySelectPlatform:    "Выберите хотя бы одну платформу",
		KeyExportStarted:     "Экспорт начат",
		KeyExportCompleted:   "Экспорт завершён",
		KeyExportFailed:      "Ошибка экспорта",
		KeyExportStopped:     "Экспорт остановлен",
		KeyExportDirectory:   "Папка экспорта",
		KeyArchivePassword:   "Пароль архива",
		KeyPreviewSize:       "Размер превью",
		KeyExportSize:        "Размер PNG",
		KeySaveToPhotos:      "Сохранять PNG в Фото",
		KeyExportSettings:    "Настройки экспорта",
		KeyInterfaceSettings: "Настройки интерфейса",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyErrorStoppingTask: "Ошибка остановки задачи",
		KeyPathCopied:        "Путь скопирован",
		KeyPreviewFailed:     "Ошибка превью",
		KeyConfigLoadFailed:  "Не удалось загрузить конфигурацию",
		KeyConfigSaved:       "Конфигурация сохранена",
		KeyStatusPending:     "В очереди",
		KeyStatusStarting:    "Запуск",
		KeyStatusRendering:   "Рендеринг",
		KeyStatusStopping:    "Остановка",
		KeyStatusStopped:     "Остановлено",
		KeyStatusCompleted:   "Готово",
		KeyStatusError:       "Ошибка",
	}
}
