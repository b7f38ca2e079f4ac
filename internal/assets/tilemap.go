package assets

import (
	"encoding/json"
	"fmt"
	"os"

	"picocalc-gfx/internal/gfx"
)

// TileMap is a named grid of tile indices loaded from JSON, used to paint a
// scene through the command channel.
type TileMap struct {
	Name   string
	Width  int
	Height int
	Cells  []uint16 // row-major, Width*Height entries
}

// jsonTileMap is the on-disk JSON format. Cells hold tile indices; -1 means
// the blank tile.
type jsonTileMap struct {
	Name  string  `json:"name"`
	Cells [][]int `json:"cells"`
}

// LoadTileMap reads a JSON tilemap from disk.
func LoadTileMap(path string) (*TileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var jm jsonTileMap
	if err := json.Unmarshal(data, &jm); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return tileMapFromJSON(&jm, path)
}

func tileMapFromJSON(jm *jsonTileMap, path string) (*TileMap, error) {
	if len(jm.Cells) == 0 || len(jm.Cells[0]) == 0 {
		return nil, fmt.Errorf("%s: empty cell grid", path)
	}
	height := len(jm.Cells)
	width := len(jm.Cells[0])

	m := &TileMap{
		Name:   jm.Name,
		Width:  width,
		Height: height,
		Cells:  make([]uint16, width*height),
	}
	for y, row := range jm.Cells {
		if len(row) != width {
			return nil, fmt.Errorf("%s: row %d has %d cells, want %d", path, y, len(row), width)
		}
		for x, v := range row {
			switch {
			case v == -1:
				m.Cells[y*width+x] = gfx.BlankTile
			case v < 0 || v > int(gfx.BlankTile):
				return nil, fmt.Errorf("%s: cell (%d,%d) index %d out of range", path, x, y, v)
			default:
				m.Cells[y*width+x] = uint16(v)
			}
		}
	}
	return m, nil
}

// At returns the tile index at (x, y), blank when out of range.
func (m *TileMap) At(x, y int) uint16 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return gfx.BlankTile
	}
	return m.Cells[y*m.Width+x]
}

// Apply paints the map through set, typically Core.SetTile. Cells outside
// the surface are dropped by the receiver.
func (m *TileMap) Apply(set func(tx, ty int, index uint16) bool) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			set(x, y, m.Cells[y*m.Width+x])
		}
	}
}
