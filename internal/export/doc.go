package export

// Package export runs icon exports in the background: a single PNG at one
// size or a full platform icon set packed into a ZIP archive. Tasks report
// progress through an update callback and can be stopped while running.
