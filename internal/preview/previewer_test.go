package preview

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/ytget/icon-generator/internal/model"
)

// gatedRenderer records rendered config names and blocks each render until a gate token arrives
type gatedRenderer struct {
	mu      sync.Mutex
	names   []string
	sizes   []int
	started chan string
	gate    chan struct{}
	err     error
}

func newGatedRenderer() *gatedRenderer {
	return &gatedRenderer{
		started: make(chan string, 16),
		gate:    make(chan struct{}, 16),
	}
}

func (r *gatedRenderer) Render(cfg model.IconConfig, size int) (*image.NRGBA, error) {
	r.mu.Lock()
	r.names = append(r.names, cfg.Name)
	r.sizes = append(r.sizes, size)
	r.mu.Unlock()

	r.started <- cfg.Name
	<-r.gate

	if r.err != nil {
		return nil, r.err
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img, nil
}

func (r *gatedRenderer) rendered() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

func named(name string) model.IconConfig {
	cfg := model.DefaultIconConfig()
	cfg.Name = name
	return cfg
}

func waitStarted(t *testing.T, r *gatedRenderer, expected string) {
	t.Helper()
	select {
	case name := <-r.started:
		if name != expected {
			t.Fatalf("Started rendering %q, expected %q", name, expected)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Render of %q never started", expected)
	}
}

func waitResult(t *testing.T, results chan Result) Result {
	t.Helper()
	select {
	case res := <-results:
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("No preview result delivered")
	}
	return Result{}
}

func TestClampSize(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, DefaultSize},
		{10, MinSize},
		{300, 300},
		{5000, MaxSize},
	}

	for _, test := range tests {
		if result := ClampSize(test.input); result != test.expected {
			t.Errorf("ClampSize(%d) = %d, expected %d", test.input, result, test.expected)
		}
	}
}

func TestPreviewer_DeliversResult(t *testing.T) {
	r := newGatedRenderer()
	results := make(chan Result, 4)
	p := NewPreviewer(r, 128, func(res Result) { results <- res })
	defer p.Close()

	gen := p.Update(named("first"))
	waitStarted(t, r, "first")
	r.gate <- struct{}{}

	res := waitResult(t, results)
	if res.Err != nil {
		t.Fatalf("Unexpected error: %v", res.Err)
	}
	if res.Generation != gen || res.Config.Name != "first" {
		t.Errorf("Unexpected result: generation %d name %q", res.Generation, res.Config.Name)
	}
	if res.Image.Bounds().Dx() != 128 {
		t.Errorf("Preview is %dpx, expected 128", res.Image.Bounds().Dx())
	}
}

func TestPreviewer_LastWriteWins(t *testing.T) {
	r := newGatedRenderer()
	results := make(chan Result, 4)
	p := NewPreviewer(r, 64, func(res Result) { results <- res })
	defer p.Close()

	p.Update(named("a"))
	waitStarted(t, r, "a")

	// These arrive while "a" is rendering
	p.Update(named("b"))
	last := p.Update(named("c"))

	// "a" finishes but is stale, so the worker moves straight to "c"
	r.gate <- struct{}{}
	waitStarted(t, r, "c")
	r.gate <- struct{}{}

	res := waitResult(t, results)
	if res.Config.Name != "c" || res.Generation != last {
		t.Errorf("Expected only the newest config to be delivered, got %q (gen %d)", res.Config.Name, res.Generation)
	}

	select {
	case extra := <-results:
		t.Errorf("Unexpected extra result %q", extra.Config.Name)
	case <-time.After(100 * time.Millisecond):
	}

	rendered := r.rendered()
	if len(rendered) != 2 || rendered[0] != "a" || rendered[1] != "c" {
		t.Errorf("Rendered %v, expected [a c]", rendered)
	}
}

func TestPreviewer_UpdateNeverBlocks(t *testing.T) {
	r := newGatedRenderer()
	p := NewPreviewer(r, 64, nil)
	defer func() {
		// One token for "busy", one for the coalesced burst
		r.gate <- struct{}{}
		r.gate <- struct{}{}
		p.Close()
	}()

	p.Update(named("busy"))
	waitStarted(t, r, "busy")

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			p.Update(named("burst"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Update blocked while a render was running")
	}
}

func TestPreviewer_Error(t *testing.T) {
	r := newGatedRenderer()
	r.err = errors.New("bad config")
	results := make(chan Result, 1)
	p := NewPreviewer(r, 64, func(res Result) { results <- res })
	defer p.Close()

	p.Update(named("broken"))
	waitStarted(t, r, "broken")
	r.gate <- struct{}{}

	res := waitResult(t, results)
	if res.Err == nil || res.Image != nil {
		t.Errorf("Expected an error result, got %+v", res)
	}
}

func TestPreviewer_SetSizeRerenders(t *testing.T) {
	r := newGatedRenderer()
	results := make(chan Result, 4)
	p := NewPreviewer(r, 64, func(res Result) { results <- res })
	defer p.Close()

	p.SetDisplaySize(32)
	p.Update(named("icon"))
	waitStarted(t, r, "icon")
	r.gate <- struct{}{}
	if res := waitResult(t, results); res.Image.Bounds().Dx() != 32 {
		t.Errorf("Preview is %dpx, expected display size 32", res.Image.Bounds().Dx())
	}

	p.SetSize(512)
	waitStarted(t, r, "icon")
	r.gate <- struct{}{}
	waitResult(t, results)

	if p.Size() != 512 {
		t.Errorf("Size = %d, expected 512", p.Size())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sizes[len(r.sizes)-1] != 512 {
		t.Errorf("Last render at %dpx, expected 512", r.sizes[len(r.sizes)-1])
	}
}

func TestPreviewer_CloseStopsDelivery(t *testing.T) {
	r := newGatedRenderer()
	results := make(chan Result, 1)
	p := NewPreviewer(r, 64, func(res Result) { results <- res })

	p.Update(named("late"))
	waitStarted(t, r, "late")

	closed := make(chan struct{})
	go func() {
		p.Close()
		close(closed)
	}()
	// Let Close signal the worker before the render returns
	time.Sleep(50 * time.Millisecond)
	r.gate <- struct{}{}

	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}

	select {
	case res := <-results:
		t.Errorf("Result %q delivered after Close", res.Config.Name)
	default:
	}

	// Close is idempotent
	p.Close()
}

func TestScale(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 200, A: 255})
		}
	}

	if Scale(src, 100) != src {
		t.Error("Scale should return the source when sizes match")
	}

	dst := Scale(src, 25)
	if dst.Bounds().Dx() != 25 || dst.Bounds().Dy() != 25 {
		t.Fatalf("Scaled to %v, expected 25x25", dst.Bounds())
	}
	if c := dst.NRGBAAt(12, 12); c.R < 190 || c.A != 255 {
		t.Errorf("Scaled pixel = %v, expected opaque red", c)
	}
}
