package preview

import (
	"image"
	"log"
	"sync"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/ytget/icon-generator/internal/model"
)

// Preview sizes
const (
	MinSize     = 64
	MaxSize     = 1024
	DefaultSize = 256
)

// Renderer renders a configuration at a pixel size
type Renderer interface {
	Render(cfg model.IconConfig, size int) (*image.NRGBA, error)
}

// Result is one finished preview
type Result struct {
	Image      *image.NRGBA // nil when Err is set
	Config     model.IconConfig
	Generation uint64
	Elapsed    time.Duration
	Err        error
}

// Previewer renders the latest configuration on a background goroutine.
// Update never blocks; configs that arrive while a render is running replace
// each other and only the newest one is rendered next. A result is delivered
// only if no newer config arrived while it was rendering.
type Previewer struct {
	renderer Renderer
	onResult func(Result)

	mu          sync.Mutex
	size        int
	displaySize int
	pending     *model.IconConfig
	last        *model.IconConfig
	generation  uint64

	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewPreviewer starts a previewer rendering at size and delivering results to onResult
func NewPreviewer(renderer Renderer, size int, onResult func(Result)) *Previewer {
	size = ClampSize(size)
	p := &Previewer{
		renderer:    renderer,
		onResult:    onResult,
		size:        size,
		displaySize: size,
		wake:        make(chan struct{}, 1),
		done:        make(chan struct{}),
	}

	p.wg.Add(1)
	go p.loop()

	return p
}

// ClampSize keeps a preview size within MinSize..MaxSize, 0 selects DefaultSize
func ClampSize(size int) int {
	switch {
	case size == 0:
		return DefaultSize
	case size < MinSize:
		return MinSize
	case size > MaxSize:
		return MaxSize
	}
	return size
}

// Update schedules cfg for rendering and returns its generation
func (p *Previewer) Update(cfg model.IconConfig) uint64 {
	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.pending = &cfg
	p.last = &cfg
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
	return gen
}

// SetSize changes the render size and re-renders the last config
func (p *Previewer) SetSize(size int) {
	p.mu.Lock()
	p.size = ClampSize(size)
	last := p.last
	p.mu.Unlock()

	if last != nil {
		p.Update(*last)
	}
}

// Size returns the current render size
func (p *Previewer) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

// SetDisplaySize sets the side the rendered preview is scaled to before delivery
func (p *Previewer) SetDisplaySize(size int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if size > 0 {
		p.displaySize = size
	}
}

// Close stops the worker and waits for it to exit. Results are not delivered after Close returns.
func (p *Previewer) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}

func (p *Previewer) loop() {
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			return
		case <-p.wake:
		}

		p.mu.Lock()
		cfg := p.pending
		gen := p.generation
		size, displaySize := p.size, p.displaySize
		p.pending = nil
		p.mu.Unlock()

		if cfg == nil {
			continue
		}

		start := time.Now()
		img, err := p.renderer.Render(*cfg, size)
		result := Result{Config: *cfg, Generation: gen, Elapsed: time.Since(start), Err: err}
		if err == nil {
			result.Image = Scale(img, displaySize)
		} else {
			log.Printf("Preview render failed: %v", err)
		}

		// Drop the result if a newer config is waiting
		p.mu.Lock()
		stale := gen != p.generation
		p.mu.Unlock()
		if stale {
			continue
		}

		select {
		case <-p.done:
			return
		default:
		}

		if p.onResult != nil {
			p.onResult(result)
		}
	}
}

// Scale resizes img to a side×side square with Catmull-Rom, returning img unchanged when it already fits
func Scale(img *image.NRGBA, side int) *image.NRGBA {
	b := img.Bounds()
	if side <= 0 || (b.Dx() == side && b.Dy() == side) {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, side, side))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
