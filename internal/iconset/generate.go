package iconset

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"sort"
	"time"

	"github.com/jackmordaunt/icns/v3"
	ico "github.com/sergeymakinen/go-ico"

	"github.com/ytget/icon-generator/internal/archive"
	"github.com/ytget/icon-generator/internal/model"
	"github.com/ytget/icon-generator/internal/render"
)

// Renderer renders a configuration at a pixel size
type Renderer interface {
	Render(cfg model.IconConfig, size int) (*image.NRGBA, error)
}

// ProgressFunc receives the number of finished entries out of total
type ProgressFunc func(done, total int)

// Generate renders the icon sets of platforms into archive entries.
// Every distinct size is rendered once at its native resolution and shared
// between the files that need it. ctx is checked before every entry.
func Generate(ctx context.Context, r Renderer, cfg model.IconConfig, platforms []Platform, progress ProgressFunc) ([]archive.Entry, error) {
	if len(platforms) == 0 {
		platforms = Platforms()
	}

	type job struct {
		image Image
		meta  []byte
		name  string
	}

	var jobs []job
	seen := make(map[Platform]bool)
	for _, p := range platforms {
		if seen[p] {
			continue
		}
		seen[p] = true

		images, err := Images(p)
		if err != nil {
			return nil, err
		}
		for _, img := range images {
			jobs = append(jobs, job{image: img, name: img.Name})
		}

		files, err := metadata(p, cfg)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(files))
		for name := range files {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			jobs = append(jobs, job{meta: files[name], name: name})
		}
	}

	modified := time.Now()
	rendered := make(map[int]*image.NRGBA)
	renderSize := func(size int) (*image.NRGBA, error) {
		if img, ok := rendered[size]; ok {
			return img, nil
		}
		img, err := r.Render(cfg, size)
		if err != nil {
			return nil, fmt.Errorf("failed to render %dpx: %w", size, err)
		}
		rendered[size] = img
		return img, nil
	}

	entries := make([]archive.Entry, 0, len(jobs))

	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data := j.meta
		if data == nil {
			images := make(map[int]image.Image)
			for _, size := range j.image.RenderSizes() {
				img, err := renderSize(size)
				if err != nil {
					return nil, err
				}
				images[size] = img
			}

			var err error
			if j.image.Format == FormatICNS {
				data, err = EncodeICNS(images)
			} else {
				data, err = Encode(images[j.image.Size], j.image.Format)
			}
			if err != nil {
				return nil, fmt.Errorf("failed to encode %s: %w", j.name, err)
			}
		}

		entries = append(entries, archive.Entry{Name: j.name, Data: data, Modified: modified})

		if progress != nil {
			progress(i+1, len(jobs))
		}
	}

	return entries, nil
}

// Encode encodes img as a PNG or ICO file
func Encode(img image.Image, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		if err := render.EncodePNG(&buf, img); err != nil {
			return nil, err
		}
	case FormatICO:
		if err := ico.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode ico: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return buf.Bytes(), nil
}

// EncodeICNS builds an icns file with one native image per slot, keyed by pixel side
func EncodeICNS(images map[int]image.Image) ([]byte, error) {
	set := &icns.IconSet{}
	for _, slot := range icnsSlots {
		img, ok := images[int(slot.Size)]
		if !ok {
			return nil, fmt.Errorf("missing %dpx image for icns slot %s", slot.Size, slot.ID)
		}
		set.Icons = append(set.Icons, &icns.Icon{Type: slot, Image: img})
	}

	var buf bytes.Buffer
	if _, err := set.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode icns: %w", err)
	}
	return buf.Bytes(), nil
}

// Count returns the number of files Generate produces for platforms
func Count(platforms []Platform) (int, error) {
	total := 0
	seen := make(map[Platform]bool)
	for _, p := range platforms {
		if seen[p] {
			continue
		}
		seen[p] = true
		images, err := Images(p)
		if err != nil {
			return 0, err
		}
		total += len(images)
		if p == PlatformIOS || p == PlatformWeb {
			total++
		}
	}
	return total, nil
}
