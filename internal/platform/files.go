package platform

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
	AMCommand       = "am"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// Directory names
const (
	PicturesDirName      = "Pictures"
	AndroidPicturesDir   = "/sdcard/Pictures"
	PhotoLibraryAlbumDir = "IconGenerator"
)

// File name limits
const (
	MaxFileNameLength = 80
	FallbackFileName  = "icon"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// IsAndroid reports whether the process runs on Android
func IsAndroid() bool {
	return runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		os.Getenv("ANDROID_STORAGE") != "" ||
		filepath.Base(os.Args[0]) == "libdist.so" // Fyne Android apps run as libdist.so
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	absPath, err := existingAbsPath(filePath)
	if err != nil {
		return err
	}

	switch {
	case IsAndroid():
		return openFileInManagerAndroid(absPath)
	case runtime.GOOS == OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case runtime.GOOS == OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case runtime.GOOS == OSLinux:
		return openFileInManagerLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFileInManagerLinux opens directory containing file on Linux
// Note: File selection is not standardized on Linux, so we open the parent directory
func openFileInManagerLinux(filePath string) error {
	dir := filepath.Dir(filePath)

	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

// openFileInManagerAndroid opens the containing directory, falling back to the storage settings
func openFileInManagerAndroid(filePath string) error {
	dir := filepath.Dir(filePath)
	attempts := [][]string{
		{"start", "-a", "android.intent.action.VIEW", "-d", "file://" + dir},
		{"start", "-n", "com.google.android.documentsui/.DocumentsActivity", "-d", "file://" + dir},
		{"start", "-a", "android.settings.INTERNAL_STORAGE_SETTINGS"},
	}
	for _, args := range attempts {
		if err := exec.Command(AMCommand, args...).Run(); err == nil {
			return nil
		}
	}
	return fmt.Errorf("failed to open file in manager: no suitable file manager found")
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(filePath string) error {
	absPath, err := existingAbsPath(filePath)
	if err != nil {
		return err
	}

	switch {
	case IsAndroid():
		return openFileWithDefaultAppAndroid(absPath)
	case runtime.GOOS == OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case runtime.GOOS == OSWindows:
		return exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", absPath).Run()
	case runtime.GOOS == OSLinux:
		return exec.Command(XDGOpenCommand, absPath).Run()
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFileWithDefaultAppAndroid opens the file through a VIEW intent with its mime type
func openFileWithDefaultAppAndroid(filePath string) error {
	uri := "file://" + filePath
	attempts := [][]string{
		{"start", "-a", "android.intent.action.VIEW", "-d", uri, "-t", MimeType(filePath)},
		{"start", "-a", "android.intent.action.VIEW", "-d", uri},
	}
	for _, args := range attempts {
		if err := exec.Command(AMCommand, args...).Run(); err == nil {
			return nil
		}
	}
	return fmt.Errorf("failed to open file with any method: no suitable app found")
}

// MimeType returns the mime type used when handing an exported file to other apps
func MimeType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".zip":
		return "application/zip"
	case ".ico":
		return "image/x-icon"
	case ".icns":
		return "image/icns"
	default:
		return "*/*"
	}
}

func existingAbsPath(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is empty")
	}
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("file does not exist: %w", err)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return absPath, nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetPicturesDir returns the standard Pictures directory for the user
func GetPicturesDir() (string, error) {
	if IsAndroid() {
		// External storage so exported icons show up in the Gallery
		return AndroidPicturesDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, PicturesDirName), nil
}

// SaveToPhotoLibrary copies an exported image into the photo library album and
// returns the path of the copy
func SaveToPhotoLibrary(srcPath string) (string, error) {
	pictures, err := GetPicturesDir()
	if err != nil {
		return "", err
	}
	return saveToAlbum(srcPath, filepath.Join(pictures, PhotoLibraryAlbumDir))
}

// saveToAlbum copies srcPath into albumDir without overwriting existing files
func saveToAlbum(srcPath, albumDir string) (string, error) {
	if err := CreateDirectoryIfNotExists(albumDir); err != nil {
		return "", fmt.Errorf("failed to create album directory: %w", err)
	}

	dstPath := UniquePath(filepath.Join(albumDir, filepath.Base(srcPath)))
	if filepath.Clean(dstPath) == filepath.Clean(srcPath) {
		return srcPath, nil
	}

	if err := copyFile(srcPath, dstPath); err != nil {
		return "", err
	}

	if err := NotifyMediaScanner(dstPath); err != nil {
		log.Printf("Failed to notify media scanner about %s: %v", dstPath, err)
	}
	return dstPath, nil
}

func copyFile(srcPath, dstPath string) (err error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", srcPath, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(dstPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dstPath, err)
	}
	defer func() {
		if cerr := dst.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", dstPath, cerr)
		}
		if err != nil {
			os.Remove(dstPath)
		}
	}()

	if _, err = io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy %s: %w", srcPath, err)
	}
	return nil
}

// WriteFileAtomic creates filePath from what write produces. The content goes
// to a temporary file in the same directory that is renamed into place only
// when write succeeds; on failure nothing is left behind.
func WriteFileAtomic(filePath string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(filePath)
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", filePath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filePath, err)
	}
	if err = os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", filePath, err)
	}
	return nil
}

// UniquePath returns path, or path with a numeric suffix if a file already exists there
func UniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// SanitizeFileName turns an icon name into a safe file name stem
func SanitizeFileName(name string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.':
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteRune('-')
			lastDash = true
		}
	}

	result := strings.Trim(b.String(), "-.")
	if runes := []rune(result); len(runes) > MaxFileNameLength {
		result = strings.Trim(string(runes[:MaxFileNameLength]), "-.")
	}
	if result == "" {
		return FallbackFileName
	}
	return result
}

// NotifyMediaScanner notifies Android media scanner about new image files
// This makes exported icons appear in the Gallery app
func NotifyMediaScanner(filePath string) error {
	if !IsAndroid() {
		return nil
	}

	cmd := exec.Command(AMCommand, "broadcast", "-a", "android.intent.action.MEDIA_SCANNER_SCAN_FILE", "-d", "file://"+filePath)

	// Run in background so the export never blocks on the scanner
	go func() {
		if err := cmd.Run(); err != nil {
			log.Printf("Failed to notify media scanner about %s: %v", filePath, err)
		}
	}()

	return nil
}
