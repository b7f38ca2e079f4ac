package gfx

// Pixel is a single RGB565 pixel (5 bits red, 6 bits green, 5 bits blue).
type Pixel uint16

const (
	// TileW is the width of a tile in pixels.
	TileW = 16

	// TileH is the height of a tile in pixels.
	TileH = 16

	// TilePixels is the number of pixels in one tile image.
	TilePixels = TileW * TileH
)

const (
	// Transparent is the sentinel colour in sprite images meaning
	// "show the tile underneath".
	Transparent Pixel = 0xFFFF

	// Background is the colour drawn for blank or unresolvable tiles.
	Background Pixel = 0x0000
)

// BlankTile is the reserved tile index meaning "background colour, no image".
const BlankTile uint16 = 0xFFFF

// RGB565 packs 8-bit colour channels into an RGB565 pixel.
func RGB565(r, g, b uint8) Pixel {
	return Pixel(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// RGBA8 expands a pixel back to 8-bit channels, replicating the high bits
// into the low bits so pure white round-trips to 255.
func (p Pixel) RGBA8() (r, g, b uint8) {
	r = uint8(p>>11) & 0x1F
	g = uint8(p>>5) & 0x3F
	b = uint8(p) & 0x1F
	return r<<3 | r>>2, g<<2 | g>>4, b<<3 | b>>2
}
