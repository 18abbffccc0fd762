package platform

// Package platform contains OS integration glue: output and pictures
// directories, saving exports to the photo library, file name sanitizing
// and OS open/reveal.
