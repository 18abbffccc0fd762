package iconset

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackmordaunt/icns/v3"
)

// ErrUnknownPlatform is returned for platform names outside the catalog
var ErrUnknownPlatform = errors.New("unknown platform")

// Platform identifies a target icon set
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformMacOS   Platform = "macos"
	PlatformWindows Platform = "windows"
	PlatformWeb     Platform = "web"
)

// Format is the encoding of one catalog file
type Format string

const (
	FormatPNG  Format = "png"
	FormatICNS Format = "icns"
	FormatICO  Format = "ico"
)

// Directory roots inside the archive
const (
	IOSDir       = "ios/AppIcon.appiconset"
	AndroidDir   = "android"
	MacOSDir     = "macOS"
	MacOSSetDir  = MacOSDir + "/AppIcon.iconset"
	WindowsDir   = "windows"
	WebDir       = "web"
	ContentsJSON = "Contents.json"
	WebManifest  = "site.webmanifest"
)

// Image is one raster file of a platform icon set
type Image struct {
	Name   string // path inside the archive
	Size   int    // pixel side
	Format Format
}

// RenderSizes returns the pixel sizes that have to be rendered for the file
func (i Image) RenderSizes() []int {
	if i.Format != FormatICNS {
		return []int{i.Size}
	}
	sizes := make([]int, 0, len(icnsSlots))
	seen := make(map[int]bool)
	for _, slot := range icnsSlots {
		if size := int(slot.Size); !seen[size] {
			seen[size] = true
			sizes = append(sizes, size)
		}
	}
	return sizes
}

// iosImage is one slot of an Xcode app icon set
type iosImage struct {
	Idiom  string
	Points float64
	Scale  int
}

func (i iosImage) pixels() int {
	return int(i.Points * float64(i.Scale))
}

func (i iosImage) filename() string {
	return fmt.Sprintf("icon-%s@%dx.png", formatPoints(i.Points), i.Scale)
}

func formatPoints(pt float64) string {
	return strconv.FormatFloat(pt, 'f', -1, 64)
}

var iosImages = []iosImage{
	{"iphone", 20, 2}, {"iphone", 20, 3},
	{"iphone", 29, 2}, {"iphone", 29, 3},
	{"iphone", 40, 2}, {"iphone", 40, 3},
	{"iphone", 60, 2}, {"iphone", 60, 3},
	{"ipad", 20, 1}, {"ipad", 20, 2},
	{"ipad", 29, 1}, {"ipad", 29, 2},
	{"ipad", 40, 1}, {"ipad", 40, 2},
	{"ipad", 76, 1}, {"ipad", 76, 2},
	{"ipad", 83.5, 2},
	{"ios-marketing", 1024, 1},
}

var androidDensities = []struct {
	Bucket string
	Size   int
}{
	{"mdpi", 48},
	{"hdpi", 72},
	{"xhdpi", 96},
	{"xxhdpi", 144},
	{"xxxhdpi", 192},
}

// PlayStoreSize is the side of the store listing icon
const PlayStoreSize = 512

var macOSPoints = []int{16, 32, 128, 256, 512}

// ICNSSize is the largest slot of AppIcon.icns
const ICNSSize = 1024

// icnsSlots are the PNG slots of AppIcon.icns, each filled with a native render
var icnsSlots = []icns.OsType{
	{ID: "ic10", Size: 1024},
	{ID: "ic14", Size: 512},
	{ID: "ic09", Size: 512},
	{ID: "ic13", Size: 256},
	{ID: "ic08", Size: 256},
	{ID: "ic07", Size: 128},
	{ID: "ic12", Size: 64},
	{ID: "ic11", Size: 32},
}

var windowsSizes = []int{16, 24, 32, 48, 64, 128, 256}

// WindowsICOSize is the single image embedded in app.ico
const WindowsICOSize = 256

// FaviconICOSize is the single image embedded in favicon.ico
const FaviconICOSize = 32

// webIcons lists the web PNGs, the android-chrome ones are also referenced by the manifest
var webIcons = []Image{
	{Name: WebDir + "/favicon-16x16.png", Size: 16, Format: FormatPNG},
	{Name: WebDir + "/favicon-32x32.png", Size: 32, Format: FormatPNG},
	{Name: WebDir + "/apple-touch-icon.png", Size: 180, Format: FormatPNG},
	{Name: WebDir + "/android-chrome-192x192.png", Size: 192, Format: FormatPNG},
	{Name: WebDir + "/android-chrome-512x512.png", Size: 512, Format: FormatPNG},
}

// Platforms returns every supported platform in archive order
func Platforms() []Platform {
	return []Platform{PlatformIOS, PlatformAndroid, PlatformMacOS, PlatformWindows, PlatformWeb}
}

// ParsePlatforms parses a comma separated platform list.
// An empty list selects every platform; duplicates are dropped and the
// result follows Platforms() order.
func ParsePlatforms(list string) ([]Platform, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return Platforms(), nil
	}

	selected := make(map[Platform]bool)
	for _, part := range strings.Split(list, ",") {
		name := Platform(strings.ToLower(strings.TrimSpace(part)))
		if name == "" {
			continue
		}
		if !isKnown(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, part)
		}
		selected[name] = true
	}

	var result []Platform
	for _, p := range Platforms() {
		if selected[p] {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return Platforms(), nil
	}
	return result, nil
}

// FormatPlatforms joins platforms back into a comma list
func FormatPlatforms(platforms []Platform) string {
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}
	return strings.Join(names, ",")
}

func isKnown(p Platform) bool {
	for _, known := range Platforms() {
		if p == known {
			return true
		}
	}
	return false
}

// Images returns the raster files of a platform icon set
func Images(p Platform) ([]Image, error) {
	switch p {
	case PlatformIOS:
		seen := make(map[string]bool)
		var images []Image
		for _, slot := range iosImages {
			name := IOSDir + "/" + slot.filename()
			if seen[name] {
				continue
			}
			seen[name] = true
			images = append(images, Image{Name: name, Size: slot.pixels(), Format: FormatPNG})
		}
		return images, nil

	case PlatformAndroid:
		images := make([]Image, 0, len(androidDensities)+1)
		for _, d := range androidDensities {
			images = append(images, Image{
				Name:   fmt.Sprintf("%s/mipmap-%s/ic_launcher.png", AndroidDir, d.Bucket),
				Size:   d.Size,
				Format: FormatPNG,
			})
		}
		return append(images, Image{Name: AndroidDir + "/playstore-icon.png", Size: PlayStoreSize, Format: FormatPNG}), nil

	case PlatformMacOS:
		images := make([]Image, 0, 2*len(macOSPoints)+1)
		for _, pt := range macOSPoints {
			images = append(images,
				Image{Name: fmt.Sprintf("%s/icon_%dx%d.png", MacOSSetDir, pt, pt), Size: pt, Format: FormatPNG},
				Image{Name: fmt.Sprintf("%s/icon_%dx%d@2x.png", MacOSSetDir, pt, pt), Size: pt * 2, Format: FormatPNG},
			)
		}
		return append(images, Image{Name: MacOSDir + "/AppIcon.icns", Size: ICNSSize, Format: FormatICNS}), nil

	case PlatformWindows:
		images := make([]Image, 0, len(windowsSizes)+1)
		for _, size := range windowsSizes {
			images = append(images, Image{Name: fmt.Sprintf("%s/icon-%d.png", WindowsDir, size), Size: size, Format: FormatPNG})
		}
		return append(images, Image{Name: WindowsDir + "/app.ico", Size: WindowsICOSize, Format: FormatICO}), nil

	case PlatformWeb:
		images := append([]Image(nil), webIcons...)
		return append(images, Image{Name: WebDir + "/favicon.ico", Size: FaviconICOSize, Format: FormatICO}), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, p)
}

// Sizes returns the distinct pixel sizes needed by platforms, ascending
func Sizes(platforms []Platform) ([]int, error) {
	seen := make(map[int]bool)
	var sizes []int
	for _, p := range platforms {
		images, err := Images(p)
		if err != nil {
			return nil, err
		}
		for _, img := range images {
			for _, size := range img.RenderSizes() {
				if !seen[size] {
					seen[size] = true
					sizes = append(sizes, size)
				}
			}
		}
	}
	sort.Ints(sizes)
	return sizes, nil
}
