package preview

// Package preview keeps a live rendering of the icon being edited.
