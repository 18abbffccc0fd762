package archive

// Package archive packs rendered icon files into ZIP archives.
//
// Entries are written with a standard local header / central directory layout.
// Already compressed payloads (PNG, ICNS, ICO) are stored, text metadata is
// deflated, and a non-empty password switches every entry to AES-256.
