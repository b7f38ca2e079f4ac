package display

import (
	"strings"

	"picocalc-gfx/internal/gfx"
)

// TermRenderer turns framebuffer snapshots into ANSI output for a terminal.
// Each character cell shows a 1x2 pixel pair via the upper-half-block glyph,
// and frames are diffed against the previously emitted one so only changed
// cells are sent — the same double-buffer diffing the sink-side LCD driver
// would do in hardware.
type TermRenderer struct {
	fbW, fbH int

	scale      int // framebuffer pixels per terminal column
	outW, outH int // emitted size in terminal cells

	current    []gfx.Pixel // sampled pixels of the last emitted frame
	next       []gfx.Pixel
	snap       []gfx.Pixel // raw framebuffer snapshot, reused
	firstFrame bool
}

// NewTermRenderer creates a renderer for a framebuffer of fbW x fbH pixels,
// fitted to a terminal of termW x termH cells.
func NewTermRenderer(fbW, fbH, termW, termH int) *TermRenderer {
	r := &TermRenderer{fbW: fbW, fbH: fbH}
	r.Fit(termW, termH)
	return r
}

// Fit recomputes the sampling scale for a terminal size and forces the next
// frame to be emitted in full.
func (r *TermRenderer) Fit(termW, termH int) {
	scale := 1
	for termW > 0 && termH > 0 && (r.fbW/scale > termW || r.fbH/(2*scale) > termH) {
		scale++
	}
	r.scale = scale
	r.outW = r.fbW / scale
	r.outH = r.fbH / (2 * scale)
	// Two sampled pixels per cell, top and bottom.
	r.current = make([]gfx.Pixel, r.outW*r.outH*2)
	r.next = make([]gfx.Pixel, r.outW*r.outH*2)
	r.firstFrame = true
}

// CellSize returns the emitted frame size in terminal cells.
func (r *TermRenderer) CellSize() (w, h int) { return r.outW, r.outH }

// Frame samples the framebuffer and returns the ANSI bytes that bring the
// terminal up to date. Returns an empty string when nothing changed.
func (r *TermRenderer) Frame(fb *Framebuffer) string {
	r.snap = fb.Snapshot(r.snap)

	// Sample the snapshot down to one top/bottom pixel pair per cell.
	for cy := 0; cy < r.outH; cy++ {
		for cx := 0; cx < r.outW; cx++ {
			px := cx * r.scale
			py := cy * 2 * r.scale
			i := (cy*r.outW + cx) * 2
			r.next[i] = r.snap[py*r.fbW+px]
			r.next[i+1] = r.snap[(py+r.scale)*r.fbW+px]
		}
	}

	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for cy := 0; cy < r.outH; cy++ {
		for cx := 0; cx < r.outW; cx++ {
			i := (cy*r.outW + cx) * 2
			if !r.firstFrame && r.next[i] == r.current[i] && r.next[i+1] == r.current[i+1] {
				continue
			}
			// Only emit a cursor move when cells are not consecutive.
			if cy != lastRow || cx != lastCol {
				sb.WriteString(MoveTo(cy+1, cx+1))
			}
			tr, tg, tb := r.next[i].RGBA8()
			br, bg, bb := r.next[i+1].RGBA8()
			writeHalfBlockSGR(&sb, tr, tg, tb, br, bg, bb)
			lastRow = cy
			lastCol = cx + 1
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	r.current, r.next = r.next, r.current
	r.firstFrame = false

	return sb.String()
}
