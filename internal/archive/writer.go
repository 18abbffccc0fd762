package archive

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/alexmullins/zip"

	"github.com/ytget/icon-generator/internal/platform"
)

var (
	// ErrDuplicateEntry is returned when two entries share a name
	ErrDuplicateEntry = errors.New("duplicate archive entry")
	// ErrInvalidName is returned for empty, absolute or escaping entry names
	ErrInvalidName = errors.New("invalid archive entry name")
)

// Extensions whose payload is already compressed and is stored as is
var storedExtensions = map[string]bool{
	".png":  true,
	".icns": true,
	".ico":  true,
}

// Entry is a single file inside an archive
type Entry struct {
	Name     string
	Data     []byte
	Modified time.Time
}

// Options control how an archive is written
type Options struct {
	// Password enables AES-256 encryption of every entry when non-empty
	Password string
}

// Writer appends entries to a ZIP stream
type Writer struct {
	zw       *zip.Writer
	opts     Options
	names    map[string]bool
	modified time.Time
}

// NewWriter creates a writer on top of w
func NewWriter(w io.Writer, opts Options) *Writer {
	return &Writer{
		zw:       zip.NewWriter(w),
		opts:     opts,
		names:    make(map[string]bool),
		modified: time.Now(),
	}
}

// CleanName normalizes an entry name and rejects names that would escape the archive root
func CleanName(name string) (string, error) {
	if name == "" || strings.Contains(name, "\\") || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	cleaned := path.Clean(name)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return cleaned, nil
}

// Add writes one entry
func (w *Writer) Add(entry Entry) error {
	name, err := CleanName(entry.Name)
	if err != nil {
		return err
	}
	if w.names[name] {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, name)
	}
	w.names[name] = true

	fh := &zip.FileHeader{
		Name:   name,
		Method: methodFor(name),
	}
	modified := entry.Modified
	if modified.IsZero() {
		modified = w.modified
	}
	fh.SetModTime(modified)
	if w.opts.Password != "" {
		fh.SetPassword(w.opts.Password)
	}

	dst, err := w.zw.CreateHeader(fh)
	if err != nil {
		return fmt.Errorf("failed to create entry %s: %w", name, err)
	}

	if _, err := dst.Write(entry.Data); err != nil {
		return fmt.Errorf("failed to write entry %s: %w", name, err)
	}
	return nil
}

// Close writes the central directory
func (w *Writer) Close() error {
	if err := w.zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

// WriteFile writes entries into a new archive at filePath.
// A failed write never leaves a partial archive behind.
func WriteFile(filePath string, entries []Entry, opts Options) error {
	return platform.WriteFileAtomic(filePath, func(dst io.Writer) error {
		w := NewWriter(dst, opts)
		for _, entry := range entries {
			if err := w.Add(entry); err != nil {
				return err
			}
		}
		return w.Close()
	})
}

// ReadNames lists the entry names of the archive at filePath in stored order
func ReadNames(filePath string) ([]string, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", filePath, err)
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names, nil
}

// ReadEntries reads every entry of the archive at filePath, decrypting with password when set
func ReadEntries(filePath, password string) ([]Entry, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", filePath, err)
	}
	defer r.Close()

	entries := make([]Entry, 0, len(r.File))
	for _, f := range r.File {
		if f.IsEncrypted() {
			f.SetPassword(password)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open entry %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read entry %s: %w", f.Name, err)
		}
		entries = append(entries, Entry{Name: f.Name, Data: data, Modified: f.ModTime()})
	}
	return entries, nil
}

// methodFor picks Store for already compressed formats and Deflate for everything else
func methodFor(name string) uint16 {
	if storedExtensions[strings.ToLower(path.Ext(name))] {
		return zip.Store
	}
	return zip.Deflate
}
