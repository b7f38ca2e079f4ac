package gfx

import "errors"

const (
	// MaxSprites is the sprite table capacity.
	MaxSprites = 16

	// MaxSpriteDim is the largest sprite width or height accepted.
	MaxSpriteDim = 64
)

// InvalidSprite is the sentinel id returned when a sprite could not be
// created or observed.
const InvalidSprite = -1

var (
	// ErrNoFreeSlot means the sprite table is at capacity.
	ErrNoFreeSlot = errors.New("gfx: no free sprite slot")

	// ErrInvalidSprite means the id does not name an active sprite.
	ErrInvalidSprite = errors.New("gfx: invalid sprite id")

	// ErrBadDimensions means sprite width/height or image length is unusable.
	ErrBadDimensions = errors.New("gfx: bad sprite dimensions")
)

// sprite is one slot in the sprite table.
type sprite struct {
	active bool
	image  []Pixel // borrowed; w*h pixels, Transparent shows the tile underneath
	w, h   int
	x, y   int // screen pixels, may be negative or past the surface
	z      int // draw order, higher drawn later; ties break by slot index

	// Last rendered footprint, erased on the next frame.
	prevX, prevY int
	hasPrev      bool
}

// CreateSprite claims the first inactive slot and returns its id. The image
// slice is borrowed, not copied: it must stay valid and unmodified until
// DestroySprite has been observed.
func (s *Surface) CreateSprite(image []Pixel, w, h, x, y, z int) (int, error) {
	if w <= 0 || h <= 0 || w > MaxSpriteDim || h > MaxSpriteDim || len(image) < w*h {
		return InvalidSprite, ErrBadDimensions
	}
	for i := range s.sprites {
		if !s.sprites[i].active {
			s.sprites[i] = sprite{
				active: true,
				image:  image,
				w:      w,
				h:      h,
				x:      x,
				y:      y,
				z:      z,
			}
			return i, nil
		}
	}
	return InvalidSprite, ErrNoFreeSlot
}

// MoveSprite updates a sprite's position. The move becomes visible on the
// next Present.
func (s *Surface) MoveSprite(id, x, y int) error {
	sp, err := s.spriteByID(id)
	if err != nil {
		return err
	}
	sp.x, sp.y = x, y
	return nil
}

// SetSpriteZ changes a sprite's draw-order key.
func (s *Surface) SetSpriteZ(id, z int) error {
	sp, err := s.spriteByID(id)
	if err != nil {
		return err
	}
	sp.z = z
	return nil
}

// SetSpriteImage swaps a sprite's image and dimensions live, keeping its
// position and z. Same borrowing rules as CreateSprite.
func (s *Surface) SetSpriteImage(id int, image []Pixel, w, h int) error {
	sp, err := s.spriteByID(id)
	if err != nil {
		return err
	}
	if w <= 0 || h <= 0 || w > MaxSpriteDim || h > MaxSpriteDim || len(image) < w*h {
		return ErrBadDimensions
	}
	sp.image = image
	sp.w, sp.h = w, h
	return nil
}

// DestroySprite erases the sprite's last rendered footprint and frees its
// slot. The erase happens before the slot is cleared, so consecutive
// Presents never show a destroyed sprite or a stale hole.
func (s *Surface) DestroySprite(id int) error {
	sp, err := s.spriteByID(id)
	if err != nil {
		return err
	}
	if sp.hasPrev {
		s.eraseRect(sp.prevX, sp.prevY, sp.w, sp.h)
	}
	*sp = sprite{}
	return nil
}

func (s *Surface) spriteByID(id int) (*sprite, error) {
	if id < 0 || id >= MaxSprites || !s.sprites[id].active {
		return nil, ErrInvalidSprite
	}
	return &s.sprites[id], nil
}
