package iconset

// Package iconset knows which files each platform expects in an app icon set
// and renders them from one icon configuration.
