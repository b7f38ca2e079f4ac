// Package display provides concrete pixel sinks for the render core: an
// in-memory RGB565 framebuffer and a terminal renderer that shows it as
// ANSI half-blocks.
package display

import (
	"sync"

	"picocalc-gfx/internal/gfx"
)

// Framebuffer is an in-memory RGB565 pixel sink. It is safe for one writer
// (the render goroutine) and any number of snapshot readers.
type Framebuffer struct {
	mu  sync.Mutex
	w   int
	h   int
	pix []gfx.Pixel
}

// NewFramebuffer creates a zeroed (black) framebuffer.
func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{
		w:   w,
		h:   h,
		pix: make([]gfx.Pixel, w*h),
	}
}

// Size returns the framebuffer dimensions in pixels.
func (f *Framebuffer) Size() (w, h int) { return f.w, f.h }

// Blit copies a w x h rectangle of pixels to (x, y), clipped to the buffer.
func (f *Framebuffer) Blit(pixels []gfx.Pixel, x, y, w, h int) {
	if w <= 0 || h <= 0 || len(pixels) < w*h {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for row := 0; row < h; row++ {
		dy := y + row
		if dy < 0 || dy >= f.h {
			continue
		}
		src := pixels[row*w : row*w+w]
		for col := 0; col < w; col++ {
			dx := x + col
			if dx < 0 || dx >= f.w {
				continue
			}
			f.pix[dy*f.w+dx] = src[col]
		}
	}
}

// SolidRect fills a w x h rectangle with one colour, clipped to the buffer.
func (f *Framebuffer) SolidRect(color gfx.Pixel, x, y, w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for row := 0; row < h; row++ {
		dy := y + row
		if dy < 0 || dy >= f.h {
			continue
		}
		for col := 0; col < w; col++ {
			dx := x + col
			if dx < 0 || dx >= f.w {
				continue
			}
			f.pix[dy*f.w+dx] = color
		}
	}
}

// At returns the pixel at (x, y), or black when out of bounds.
func (f *Framebuffer) At(x, y int) gfx.Pixel {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pix[y*f.w+x]
}

// Snapshot copies the current contents into dst, growing it if needed, and
// returns it. The copy is consistent: no writer runs mid-snapshot.
func (f *Framebuffer) Snapshot(dst []gfx.Pixel) []gfx.Pixel {
	if cap(dst) < len(f.pix) {
		dst = make([]gfx.Pixel, len(f.pix))
	}
	dst = dst[:len(f.pix)]
	f.mu.Lock()
	copy(dst, f.pix)
	f.mu.Unlock()
	return dst
}
