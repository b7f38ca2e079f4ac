package gfx

import "sort"

// Surface owns the background tilemap and the sprite table, and turns edits
// into pixel writes on its Sink during Present.
//
// Two tilemap generations are kept: committed (what the sink was last told to
// draw) and pending (what edits accumulate into). The screen only changes
// during Present, so edits can batch arbitrarily between frames without
// visible tearing.
//
// A Surface is not safe for concurrent use; gfxcore confines one to its
// render goroutine.
type Surface struct {
	sink Sink

	width, height  int // pixels
	tilesX, tilesY int

	tilesheet []Pixel // contiguous TileW x TileH images, read-only, caller-owned
	tileCount int

	committed []uint16
	pending   []uint16

	fullRedraw bool

	sprites [MaxSprites]sprite

	order   []int   // scratch for the z-sort, reused across frames
	scratch []Pixel // composite buffer, reused across frames
}

// NewSurface creates a surface covering width x height pixels, drawing into
// sink. Dimensions are truncated down to whole tiles.
func NewSurface(sink Sink, width, height int) *Surface {
	tx, ty := width/TileW, height/TileH
	s := &Surface{
		sink:      sink,
		width:     tx * TileW,
		height:    ty * TileH,
		tilesX:    tx,
		tilesY:    ty,
		committed: make([]uint16, tx*ty),
		pending:   make([]uint16, tx*ty),
		order:     make([]int, 0, MaxSprites),
		scratch:   make([]Pixel, MaxSpriteDim*MaxSpriteDim),
	}
	s.reset()
	return s
}

// reset puts both tilemaps back to all-blank and clears every sprite slot.
func (s *Surface) reset() {
	for i := range s.pending {
		s.pending[i] = BlankTile
		s.committed[i] = BlankTile
	}
	for i := range s.sprites {
		s.sprites[i] = sprite{}
	}
	s.fullRedraw = true
}

// Init replaces the tile image table and resets all render state.
// tilesheet may be nil; every tile then draws as background. No pixels are
// written until the next Present.
func (s *Surface) Init(tilesheet []Pixel, tileCount int) {
	s.setTilesheet(tilesheet, tileCount)
	s.reset()
}

// SetTilesheet swaps the tile image table without touching the tilemaps.
// The slice is borrowed, never copied; it must stay valid until replaced.
func (s *Surface) SetTilesheet(tilesheet []Pixel, tileCount int) {
	s.setTilesheet(tilesheet, tileCount)
	s.fullRedraw = true
}

func (s *Surface) setTilesheet(tilesheet []Pixel, tileCount int) {
	if max := len(tilesheet) / TilePixels; tileCount > max {
		tileCount = max
	}
	s.tilesheet = tilesheet
	s.tileCount = tileCount
}

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() (w, h int) { return s.width, s.height }

// Tiles returns the tilemap dimensions in cells.
func (s *Surface) Tiles() (x, y int) { return s.tilesX, s.tilesY }

// SetTile writes a tile index into the pending map. Out-of-range coordinates
// are a no-op, not an error. Nothing is drawn until Present.
func (s *Surface) SetTile(tx, ty int, index uint16) {
	if tx < 0 || ty < 0 || tx >= s.tilesX || ty >= s.tilesY {
		return
	}
	s.pending[ty*s.tilesX+tx] = index
}

// GetTile reads the pending map. Out-of-range coordinates return BlankTile.
func (s *Surface) GetTile(tx, ty int) uint16 {
	if tx < 0 || ty < 0 || tx >= s.tilesX || ty >= s.tilesY {
		return BlankTile
	}
	return s.pending[ty*s.tilesX+tx]
}

// Clear fills the entire pending map with index and forces a full redraw on
// the next Present.
func (s *Surface) Clear(index uint16) {
	for i := range s.pending {
		s.pending[i] = index
	}
	s.fullRedraw = true
}

// FillTilesRect fills a rectangle of the pending map, in tile units, clipped
// to the grid.
func (s *Surface) FillTilesRect(tx, ty, tw, th int, index uint16) {
	for y := ty; y < ty+th && y < s.tilesY; y++ {
		for x := tx; x < tx+tw && x < s.tilesX; x++ {
			s.SetTile(x, y, index)
		}
	}
}

// ForceFullRedraw makes the next Present redraw every cell unconditionally.
func (s *Surface) ForceFullRedraw() {
	s.fullRedraw = true
}

// ForceDrawTile draws a single cell to the sink immediately, bypassing the
// committed/pending compare. Out-of-range coordinates are a no-op.
func (s *Surface) ForceDrawTile(tx, ty int) {
	if tx < 0 || ty < 0 || tx >= s.tilesX || ty >= s.tilesY {
		return
	}
	s.drawTile(tx, ty)
}

// drawTile draws one cell from the pending map and syncs the committed map.
func (s *Surface) drawTile(tx, ty int) {
	cell := ty*s.tilesX + tx
	index := s.pending[cell]
	sx, sy := tx*TileW, ty*TileH
	if index == BlankTile || s.tilesheet == nil || int(index) >= s.tileCount {
		s.sink.SolidRect(Background, sx, sy, TileW, TileH)
	} else {
		off := int(index) * TilePixels
		s.sink.Blit(s.tilesheet[off:off+TilePixels], sx, sy, TileW, TileH)
	}
	s.committed[cell] = index
}

// eraseRect redraws every tile overlapping the pixel rectangle, restoring
// the background under a stale sprite footprint.
func (s *Surface) eraseRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	tx0, ty0 := x/TileW, y/TileH
	tx1, ty1 := (x+w-1)/TileW, (y+h-1)/TileH
	if tx0 < 0 {
		tx0 = 0
	}
	if ty0 < 0 {
		ty0 = 0
	}
	if tx1 >= s.tilesX {
		tx1 = s.tilesX - 1
	}
	if ty1 >= s.tilesY {
		ty1 = s.tilesY - 1
	}
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			s.drawTile(tx, ty)
		}
	}
}

// Present renders one frame: erase stale sprite footprints, redraw changed
// tiles, then composite and blit sprites in z-order.
func (s *Surface) Present() {
	// --- Pass 1: erase previous sprite footprints ---
	for i := range s.sprites {
		sp := &s.sprites[i]
		if sp.active && sp.hasPrev {
			s.eraseRect(sp.prevX, sp.prevY, sp.w, sp.h)
		}
	}

	// --- Pass 2: tiles ---
	if s.fullRedraw {
		for ty := 0; ty < s.tilesY; ty++ {
			for tx := 0; tx < s.tilesX; tx++ {
				s.drawTile(tx, ty)
			}
		}
		s.fullRedraw = false
	} else {
		for cell, want := range s.pending {
			if s.committed[cell] != want {
				s.drawTile(cell%s.tilesX, cell/s.tilesX)
			}
		}
	}

	// --- Pass 3: sprites, back to front ---
	s.order = s.order[:0]
	for i := range s.sprites {
		sp := &s.sprites[i]
		if sp.active && sp.image != nil && sp.w > 0 && sp.h > 0 {
			s.order = append(s.order, i)
		}
	}
	// Stable sort: equal z keeps slot order, so overlap order is deterministic.
	sort.SliceStable(s.order, func(a, b int) bool {
		return s.sprites[s.order[a]].z < s.sprites[s.order[b]].z
	})

	for _, id := range s.order {
		sp := &s.sprites[id]
		if sp.x+sp.w <= 0 || sp.y+sp.h <= 0 || sp.x >= s.width || sp.y >= s.height {
			continue // entirely off-surface
		}
		if !s.compositeSprite(sp) {
			continue // no scratch space; sprite absent this frame only
		}
		sp.prevX, sp.prevY = sp.x, sp.y
		sp.hasPrev = true
	}
}

// compositeSprite builds the visible part of a sprite over its backdrop and
// blits it as a single rectangle. Transparent pixels sample the tile that
// covers them, from the pending map, so the backdrop is reconstructed from
// the authoritative tilemap rather than from screen memory.
func (s *Surface) compositeSprite(sp *sprite) bool {
	x0, y0 := sp.x, sp.y
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	x1, y1 := sp.x+sp.w, sp.y+sp.h
	if x1 > s.width {
		x1 = s.width
	}
	if y1 > s.height {
		y1 = s.height
	}
	cw, ch := x1-x0, y1-y0
	if cw*ch > len(s.scratch) {
		return false
	}

	buf := s.scratch[:cw*ch]
	for yy := 0; yy < ch; yy++ {
		scrY := y0 + yy
		srcRow := (scrY - sp.y) * sp.w
		for xx := 0; xx < cw; xx++ {
			scrX := x0 + xx
			px := sp.image[srcRow+scrX-sp.x]
			if px == Transparent {
				px = s.sampleBackdrop(scrX, scrY)
			}
			buf[yy*cw+xx] = px
		}
	}
	s.sink.Blit(buf, x0, y0, cw, ch)
	return true
}

// sampleBackdrop returns the tile pixel covering screen position (x, y),
// falling back to the background colour for blank or unresolvable tiles.
func (s *Surface) sampleBackdrop(x, y int) Pixel {
	index := s.pending[(y/TileH)*s.tilesX+x/TileW]
	if index == BlankTile || s.tilesheet == nil || int(index) >= s.tileCount {
		return Background
	}
	return s.tilesheet[int(index)*TilePixels+(y%TileH)*TileW+x%TileW]
}
