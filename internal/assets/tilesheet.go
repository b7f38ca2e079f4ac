// Package assets loads tilesheets, sprite images, and tilemaps for the
// render core: PNG grids, raw RGB565 files, Aseprite sprites, and a set of
// procedural built-ins so the demos run without files on disk.
package assets

import (
	"fmt"
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"picocalc-gfx/internal/gfx"
)

// LoadTilesheetPNG reads a PNG laid out as a row-major grid of cellW x cellH
// cells and returns the tiles converted to contiguous 16x16 RGB565 images.
// Cells that are not 16x16 are rescaled with nearest-neighbour so pixel-art
// sheets (e.g. 12x12 curses tilesets) stay crisp.
func LoadTilesheetPNG(path string, cellW, cellH int) ([]gfx.Pixel, int, error) {
	if cellW <= 0 || cellH <= 0 {
		return nil, 0, fmt.Errorf("tilesheet %s: bad cell size %dx%d", path, cellW, cellH)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}

	bounds := img.Bounds()
	cols := bounds.Dx() / cellW
	rows := bounds.Dy() / cellH
	if cols == 0 || rows == 0 {
		return nil, 0, fmt.Errorf("%s: %dx%d image holds no %dx%d cells",
			path, bounds.Dx(), bounds.Dy(), cellW, cellH)
	}

	count := cols * rows
	tiles := make([]gfx.Pixel, count*gfx.TilePixels)
	cell := image.NewRGBA(image.Rect(0, 0, gfx.TileW, gfx.TileH))

	for ty := 0; ty < rows; ty++ {
		for tx := 0; tx < cols; tx++ {
			src := image.Rect(
				bounds.Min.X+tx*cellW,
				bounds.Min.Y+ty*cellH,
				bounds.Min.X+(tx+1)*cellW,
				bounds.Min.Y+(ty+1)*cellH,
			)
			xdraw.NearestNeighbor.Scale(cell, cell.Bounds(), img, src, xdraw.Src, nil)

			base := (ty*cols + tx) * gfx.TilePixels
			for y := 0; y < gfx.TileH; y++ {
				for x := 0; x < gfx.TileW; x++ {
					r, g, b, _ := cell.At(x, y).RGBA()
					tiles[base+y*gfx.TileW+x] = gfx.RGB565(uint8(r>>8), uint8(g>>8), uint8(b>>8))
				}
			}
		}
	}

	return tiles, count, nil
}

// LoadSpritePNG reads a PNG and returns it as a sprite image. Pixels with
// alpha below 50% or pure magenta (#FF00FF) become the transparency
// sentinel.
func LoadSpritePNG(path string) ([]gfx.Pixel, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode %s: %w", path, err)
	}

	pix, w, h := spriteFromImage(img)
	if w > gfx.MaxSpriteDim || h > gfx.MaxSpriteDim {
		return nil, 0, 0, fmt.Errorf("%s: %dx%d exceeds max sprite size %d", path, w, h, gfx.MaxSpriteDim)
	}
	return pix, w, h, nil
}

// spriteFromImage converts any image to RGB565 with transparency mapping.
func spriteFromImage(img image.Image) ([]gfx.Pixel, int, int) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]gfx.Pixel, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
			if a < 0x8000 || (r8 == 0xFF && g8 == 0x00 && b8 == 0xFF) {
				pix[y*w+x] = gfx.Transparent
				continue
			}
			p := gfx.RGB565(r8, g8, b8)
			if p == gfx.Transparent {
				// Opaque near-white would collide with the sentinel;
				// nudge it off by one blue step.
				p--
			}
			pix[y*w+x] = p
		}
	}
	return pix, w, h
}
