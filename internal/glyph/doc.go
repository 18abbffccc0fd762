package glyph

// Package glyph rasterizes the foreground of an icon from one of three
// sources: embedded preset SVG glyphs, user-supplied images, or text laid out
// by a template. Every glyph is returned as a transparent square so the
// compositor can place, transform and shadow it uniformly.
