package assets

import (
	"encoding/binary"
	"fmt"
	"os"

	"picocalc-gfx/internal/gfx"
)

// Raw RGB565 files hold little-endian uint16 pixels and nothing else. A raw
// tilesheet is a whole number of 16x16 tiles back to back; cmd/tilesheet
// produces them from PNGs.

// LoadRawTilesheet reads a raw RGB565 tilesheet and returns the pixels and
// the number of whole tiles they hold.
func LoadRawTilesheet(path string) ([]gfx.Pixel, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data)%2 != 0 {
		return nil, 0, fmt.Errorf("%s: odd byte count %d", path, len(data))
	}
	pix := make([]gfx.Pixel, len(data)/2)
	for i := range pix {
		pix[i] = gfx.Pixel(binary.LittleEndian.Uint16(data[i*2:]))
	}
	count := len(pix) / gfx.TilePixels
	if count == 0 {
		return nil, 0, fmt.Errorf("%s: smaller than one tile", path)
	}
	return pix[:count*gfx.TilePixels], count, nil
}

// SaveRaw writes pixels as a little-endian RGB565 file.
func SaveRaw(path string, pix []gfx.Pixel) error {
	data := make([]byte, len(pix)*2)
	for i, p := range pix {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(p))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
