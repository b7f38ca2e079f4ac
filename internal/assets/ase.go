package assets

import (
	"embed"
	"fmt"

	"github.com/retroblast-engine/asevre"

	"picocalc-gfx/internal/gfx"
)

// LoadAseSprite reads an Aseprite .ase file and returns the first frame of
// its first state as a sprite image, with the usual alpha/magenta
// transparency mapping.
func LoadAseSprite(path string) ([]gfx.Pixel, int, int, error) {
	// asevre's only entry point reads from an embed.FS; there is no
	// os-path variant, so a zero FS is all we can pass for a disk path.
	ase, err := asevre.ParseAseprite(embed.FS{}, path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(ase.State) == 0 || len(ase.State[0].Frames) == 0 {
		return nil, 0, 0, fmt.Errorf("%s: no frames", path)
	}

	pix, w, h := spriteFromImage(ase.State[0].Frames[0])
	if w > gfx.MaxSpriteDim || h > gfx.MaxSpriteDim {
		return nil, 0, 0, fmt.Errorf("%s: %dx%d exceeds max sprite size %d", path, w, h, gfx.MaxSpriteDim)
	}
	return pix, w, h, nil
}
