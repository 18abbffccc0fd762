package ui

// Package ui contains the Fyne-based user interface for the icon generator.
// It wires the editing controls to the live preview, starts exports through the
// export service, and shows export tasks, toasts, and settings. All UI strings
// are localized via Localization.
