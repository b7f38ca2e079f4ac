package assets

import (
	"testing"

	"picocalc-gfx/internal/gfx"
)

func TestBuiltinTilesheet(t *testing.T) {
	tiles, count := BuiltinTilesheet()
	if count != builtinTileCount {
		t.Fatalf("count = %d, want %d", count, builtinTileCount)
	}
	if len(tiles) != count*gfx.TilePixels {
		t.Fatalf("len = %d, want %d", len(tiles), count*gfx.TilePixels)
	}
	// No tile pixel may land on the transparency sentinel: tiles are opaque.
	for i, p := range tiles {
		if p == gfx.Transparent {
			t.Fatalf("pixel %d is the transparency sentinel", i)
		}
	}
}

func TestBallSprite(t *testing.T) {
	const d = 16
	pix := BallSprite(d, 200, 40, 40)
	if len(pix) != d*d {
		t.Fatalf("len = %d, want %d", len(pix), d*d)
	}

	corners := [][2]int{{0, 0}, {d - 1, 0}, {0, d - 1}, {d - 1, d - 1}}
	for _, c := range corners {
		if got := pix[c[1]*d+c[0]]; got != gfx.Transparent {
			t.Errorf("corner (%d,%d) = %#04x, want transparent", c[0], c[1], got)
		}
	}
	if got := pix[(d/2)*d+d/2]; got == gfx.Transparent {
		t.Error("centre pixel is transparent, want opaque")
	}
}

func TestBallSpriteWhiteStaysOpaque(t *testing.T) {
	// A white ball packs to the transparency sentinel without the nudge;
	// its visible pixels must match the shape of any other ball.
	const d = 16
	white := BallSprite(d, 255, 255, 255)
	dark := BallSprite(d, 10, 10, 10)
	for i := range white {
		if (white[i] == gfx.Transparent) != (dark[i] == gfx.Transparent) {
			t.Fatalf("pixel %d: white ball transparency differs from dark ball", i)
		}
	}
}

func TestBallSpriteDefaultsSize(t *testing.T) {
	if got := len(BallSprite(0, 10, 10, 10)); got != 16*16 {
		t.Errorf("len = %d, want %d", got, 16*16)
	}
}
