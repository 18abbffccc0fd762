package model

// Package model defines domain data structures used across the app: icon
// configurations (source, background, border, shadow, transform), export
// tasks, and status enums. Structures are plain values so they can be
// serialized into the settings store and bound directly in the UI.
