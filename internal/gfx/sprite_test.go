package gfx

import (
	"errors"
	"testing"
)

func TestCreateSpriteCapacity(t *testing.T) {
	s, _ := newTestSurface(t, 320, 320)
	s.Init(nil, 0)
	img := opaqueImage(8, 8, 0x1111)

	for i := 0; i < MaxSprites; i++ {
		id, err := s.CreateSprite(img, 8, 8, i*10, 0, 0)
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if id != i {
			t.Fatalf("create %d returned id %d, want first-free-slot order", i, id)
		}
	}

	if id, err := s.CreateSprite(img, 8, 8, 0, 0, 0); !errors.Is(err, ErrNoFreeSlot) || id != InvalidSprite {
		t.Fatalf("create past capacity: id=%d err=%v, want InvalidSprite/ErrNoFreeSlot", id, err)
	}

	// The existing sprites are unaffected: moving each still works.
	for i := 0; i < MaxSprites; i++ {
		if err := s.MoveSprite(i, 0, i*5); err != nil {
			t.Fatalf("move %d after failed create: %v", i, err)
		}
	}

	// Freeing one slot allows exactly one more creation, in that slot.
	if err := s.DestroySprite(7); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	id, err := s.CreateSprite(img, 8, 8, 0, 0, 0)
	if err != nil || id != 7 {
		t.Fatalf("create after destroy: id=%d err=%v, want id 7", id, err)
	}
	if _, err := s.CreateSprite(img, 8, 8, 0, 0, 0); !errors.Is(err, ErrNoFreeSlot) {
		t.Fatalf("table should be full again, got %v", err)
	}
}

func TestCreateSpriteValidation(t *testing.T) {
	s, _ := newTestSurface(t, 320, 320)
	s.Init(nil, 0)
	img := opaqueImage(8, 8, 0x1111)

	tests := []struct {
		name  string
		image []Pixel
		w, h  int
	}{
		{"zero width", img, 0, 8},
		{"zero height", img, 8, 0},
		{"negative width", img, -4, 8},
		{"width past max", opaqueImage(MaxSpriteDim+1, 1, 0), MaxSpriteDim + 1, 1},
		{"image too short", img, 16, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := s.CreateSprite(tt.image, tt.w, tt.h, 0, 0, 0)
			if !errors.Is(err, ErrBadDimensions) || id != InvalidSprite {
				t.Errorf("got id=%d err=%v, want InvalidSprite/ErrBadDimensions", id, err)
			}
		})
	}
}

func TestSpriteOpsOnInvalidID(t *testing.T) {
	s, _ := newTestSurface(t, 320, 320)
	s.Init(nil, 0)
	img := opaqueImage(8, 8, 0x1111)

	active, err := s.CreateSprite(img, 8, 8, 0, 0, 0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	destroyed, err := s.CreateSprite(img, 8, 8, 0, 0, 0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.DestroySprite(destroyed); err != nil {
		t.Fatalf("destroy: %v", err)
	}

	ids := []struct {
		name string
		id   int
	}{
		{"negative", -1},
		{"past table", MaxSprites},
		{"inactive slot", destroyed},
	}
	for _, tt := range ids {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.MoveSprite(tt.id, 1, 1); !errors.Is(err, ErrInvalidSprite) {
				t.Errorf("MoveSprite: %v, want ErrInvalidSprite", err)
			}
			if err := s.SetSpriteZ(tt.id, 1); !errors.Is(err, ErrInvalidSprite) {
				t.Errorf("SetSpriteZ: %v, want ErrInvalidSprite", err)
			}
			if err := s.SetSpriteImage(tt.id, img, 8, 8); !errors.Is(err, ErrInvalidSprite) {
				t.Errorf("SetSpriteImage: %v, want ErrInvalidSprite", err)
			}
			if err := s.DestroySprite(tt.id); !errors.Is(err, ErrInvalidSprite) {
				t.Errorf("DestroySprite: %v, want ErrInvalidSprite", err)
			}
		})
	}

	_ = active
}

func TestSetSpriteImageSwapsLive(t *testing.T) {
	s, sink := newTestSurface(t, 320, 320)
	s.Init(nil, 0)
	s.Present()

	id, err := s.CreateSprite(opaqueImage(8, 8, 0xAAAA), 8, 8, 50, 50, 3)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	s.Present()

	if err := s.SetSpriteImage(id, opaqueImage(12, 12, 0xBBBB), 12, 12); err != nil {
		t.Fatalf("SetSpriteImage: %v", err)
	}
	if err := s.SetSpriteImage(id, opaqueImage(4, 4, 0), 12, 12); !errors.Is(err, ErrBadDimensions) {
		t.Fatalf("short image accepted: %v", err)
	}

	sink.reset()
	s.Present()

	// Old 8x8 footprint erased, new 12x12 image drawn at the same position.
	op := lastOp(t, sink)
	if !op.blit || op.x != 50 || op.y != 50 || op.w != 12 || op.h != 12 {
		t.Errorf("after swap drew (%d,%d,%d,%d), want 12x12 at (50,50)", op.x, op.y, op.w, op.h)
	}
	if op.pixels[0] != 0xBBBB {
		t.Errorf("after swap drew colour %#04x, want new image", op.pixels[0])
	}
}
