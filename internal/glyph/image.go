package glyph

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

// MaxCachedImages bounds the decoded custom image cache
const MaxCachedImages = 8

type cachedImage struct {
	modTime time.Time
	size    int64
	img     image.Image
}

// imageCache keeps decoded custom images keyed by path, invalidated by mtime/size
type imageCache struct {
	mu      sync.Mutex
	entries map[string]cachedImage
	order   []string
}

func newImageCache() *imageCache {
	return &imageCache{entries: make(map[string]cachedImage)}
}

// load decodes the image at path, reusing the cached copy when the file is unchanged
func (c *imageCache) load(path string) (image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat image %s: %w", path, err)
	}

	c.mu.Lock()
	if entry, ok := c.entries[path]; ok && entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
		c.mu.Unlock()
		return entry.img, nil
	}
	c.mu.Unlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[path]; !exists {
		c.order = append(c.order, path)
	}
	c.entries[path] = cachedImage{modTime: info.ModTime(), size: info.Size(), img: img}
	for len(c.order) > MaxCachedImages {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	return img, nil
}

// fitSquare scales img up or down to fit a side×side square and centers it on transparency
func fitSquare(img image.Image, side int) *image.NRGBA {
	canvas := imaging.New(side, side, color.Transparent)
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return canvas
	}

	scale := float64(side) / float64(max(b.Dx(), b.Dy()))
	w := max(1, int(float64(b.Dx())*scale+0.5))
	h := max(1, int(float64(b.Dy())*scale+0.5))
	fitted := imaging.Resize(img, w, h, imaging.Lanczos)
	return imaging.PasteCenter(canvas, fitted)
}

// Tint recolors every pixel to c, keeping the source alpha as coverage
func Tint(src image.Image, c color.NRGBA) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := src.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			i := out.PixOffset(x-b.Min.X, y-b.Min.Y)
			out.Pix[i+0] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = uint8((a >> 8) * uint32(c.A) / 255)
		}
	}
	return out
}
