package assets

import "picocalc-gfx/internal/gfx"

// Built-in tile indices in the sheet returned by BuiltinTilesheet.
const (
	TileGrass = iota
	TileGrassTuft
	TileWater
	TileSand
	TileBrick
	TileStone
	TileChecker
	builtinTileCount
)

// BuiltinTilesheet returns a small procedural tilesheet so the demos run
// without any asset files.
func BuiltinTilesheet() ([]gfx.Pixel, int) {
	tiles := make([]gfx.Pixel, builtinTileCount*gfx.TilePixels)

	put := func(index int, fn func(x, y int) gfx.Pixel) {
		base := index * gfx.TilePixels
		for y := 0; y < gfx.TileH; y++ {
			for x := 0; x < gfx.TileW; x++ {
				tiles[base+y*gfx.TileW+x] = fn(x, y)
			}
		}
	}

	grass := gfx.RGB565(58, 122, 54)
	grassDark := gfx.RGB565(46, 102, 44)
	put(TileGrass, func(x, y int) gfx.Pixel {
		if (x*7+y*13)%11 == 0 {
			return grassDark
		}
		return grass
	})
	put(TileGrassTuft, func(x, y int) gfx.Pixel {
		if (x*5+y*3)%7 < 2 {
			return gfx.RGB565(80, 150, 60)
		}
		return grass
	})
	put(TileWater, func(x, y int) gfx.Pixel {
		if (x+y)%8 < 2 {
			return gfx.RGB565(70, 120, 220)
		}
		return gfx.RGB565(40, 80, 190)
	})
	put(TileSand, func(x, y int) gfx.Pixel {
		if (x*3+y*11)%13 == 0 {
			return gfx.RGB565(200, 180, 110)
		}
		return gfx.RGB565(220, 200, 140)
	})
	put(TileBrick, func(x, y int) gfx.Pixel {
		row := y / 4
		off := (row % 2) * 8
		if y%4 == 0 || (x+off)%16 == 0 {
			return gfx.RGB565(120, 110, 100)
		}
		return gfx.RGB565(170, 70, 50)
	})
	put(TileStone, func(x, y int) gfx.Pixel {
		if (x*x+y*y)%9 < 2 {
			return gfx.RGB565(110, 110, 120)
		}
		return gfx.RGB565(130, 130, 140)
	})
	put(TileChecker, func(x, y int) gfx.Pixel {
		if (x/4+y/4)%2 == 0 {
			return gfx.RGB565(230, 230, 230)
		}
		return gfx.RGB565(40, 40, 40)
	})

	return tiles, builtinTileCount
}

// BallSprite returns a d x d sprite of a shaded ball with transparent
// corners.
func BallSprite(d int, r, g, b uint8) []gfx.Pixel {
	if d <= 0 {
		d = 16
	}
	pix := make([]gfx.Pixel, d*d)
	body := opaque(gfx.RGB565(r, g, b))
	// Lighter core so the ball reads as shaded.
	core := opaque(gfx.RGB565(lighten(r), lighten(g), lighten(b)))
	c := d - 1
	rad2 := c * c // diameter squared over 4, in half-pixel units
	for y := 0; y < d; y++ {
		for x := 0; x < d; x++ {
			dx, dy := 2*x-c, 2*y-c
			d2 := dx*dx + dy*dy
			switch {
			case d2 > rad2:
				pix[y*d+x] = gfx.Transparent
			case d2 < rad2/4:
				pix[y*d+x] = core
			default:
				pix[y*d+x] = body
			}
		}
	}
	return pix
}

// opaque nudges near-white off the transparency sentinel, as the PNG sprite
// loader does.
func opaque(p gfx.Pixel) gfx.Pixel {
	if p == gfx.Transparent {
		p--
	}
	return p
}

func lighten(c uint8) uint8 {
	return c + (255-c)/2
}
