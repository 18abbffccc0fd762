package platform

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetPicturesDir(t *testing.T) {
	picturesDir, err := GetPicturesDir()
	if err != nil {
		t.Fatalf("Failed to get pictures directory: %v", err)
	}

	if picturesDir == "" {
		t.Fatal("Pictures directory is empty")
	}

	if filepath.Base(picturesDir) != PicturesDirName {
		t.Errorf("Expected directory to end with '%s', got: %s", PicturesDirName, picturesDir)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	nonExistentFile := filepath.Join(t.TempDir(), "nonexistent.png")

	err := OpenFileInManager(nonExistentFile)
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}

	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
}

func TestOpenFileWithDefaultApp_EmptyPath(t *testing.T) {
	if err := OpenFileWithDefaultApp(""); err == nil {
		t.Error("Expected error for empty path, got nil")
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"AppIcon", "AppIcon"},
		{"  My App  ", "My-App"},
		{"a/b\\c:d", "a-b-c-d"},
		{"Погода!", "Погода"},
		{"***", FallbackFileName},
		{"", FallbackFileName},
		{"..hidden..", "hidden"},
		{"icon_v2.final", "icon_v2.final"},
		{strings.Repeat("x", 100), strings.Repeat("x", MaxFileNameLength)},
	}

	for _, test := range tests {
		result := SanitizeFileName(test.input)
		if result != test.expected {
			t.Errorf("SanitizeFileName(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out", "icon.png")

	err := WriteFileAtomic(path, func(w io.Writer) error {
		_, err := w.Write([]byte("payload"))
		return err
	})
	if err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("File content = %q, expected %q", data, "payload")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != DefaultFilePermissions {
		t.Errorf("File mode = %v, expected %v", info.Mode().Perm(), os.FileMode(DefaultFilePermissions))
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the target file, found %d entries", len(entries))
	}
}

func TestWriteFileAtomic_FailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.png")
	writeErr := errors.New("encode failed")

	err := WriteFileAtomic(path, func(w io.Writer) error {
		if _, err := w.Write([]byte("partial")); err != nil {
			return err
		}
		return writeErr
	})
	if !errors.Is(err, writeErr) {
		t.Fatalf("Expected write error, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no files after a failed write, found %d", len(entries))
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.png")

	if got := UniquePath(path); got != path {
		t.Errorf("UniquePath on free path = %s, expected %s", got, path)
	}

	if err := os.WriteFile(path, []byte("x"), DefaultFilePermissions); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	expected := filepath.Join(dir, "icon (1).png")
	if got := UniquePath(path); got != expected {
		t.Errorf("UniquePath on taken path = %s, expected %s", got, expected)
	}
}

func TestSaveToAlbum(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "AppIcon-1024.png")
	if err := os.WriteFile(src, []byte("png data"), DefaultFilePermissions); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}

	album := filepath.Join(t.TempDir(), "album")
	first, err := saveToAlbum(src, album)
	if err != nil {
		t.Fatalf("saveToAlbum failed: %v", err)
	}
	if filepath.Dir(first) != album {
		t.Errorf("Copy saved to %s, expected inside %s", first, album)
	}

	data, err := os.ReadFile(first)
	if err != nil || string(data) != "png data" {
		t.Errorf("Copy content mismatch: %q, %v", data, err)
	}

	// Saving again keeps the first copy
	second, err := saveToAlbum(src, album)
	if err != nil {
		t.Fatalf("saveToAlbum failed: %v", err)
	}
	if second == first {
		t.Error("Second save should not overwrite the first copy")
	}
}

func TestSaveToAlbum_MissingSource(t *testing.T) {
	album := filepath.Join(t.TempDir(), "album")
	if _, err := saveToAlbum(filepath.Join(album, "missing.png"), album); err == nil {
		t.Error("Expected error for missing source")
	}

	entries, _ := os.ReadDir(album)
	if len(entries) != 0 {
		t.Errorf("Expected no partial files, found %d", len(entries))
	}
}

func TestMimeType(t *testing.T) {
	tests := map[string]string{
		"a.png":  "image/png",
		"a.ZIP":  "application/zip",
		"a.ico":  "image/x-icon",
		"a.icns": "image/icns",
		"a.bin":  "*/*",
	}
	for input, expected := range tests {
		if got := MimeType(input); got != expected {
			t.Errorf("MimeType(%s) = %s, expected %s", input, got, expected)
		}
	}
}
