package gfxcore

import "picocalc-gfx/internal/gfx"

// cmdKind tags the command union.
type cmdKind int

const (
	cmdInit cmdKind = iota
	cmdPresent
	cmdStartRendering
	cmdStopRendering
	cmdSetTile
	cmdFillTilesRect
	cmdClear
	cmdCreateSprite
	cmdMoveSprite
	cmdSetSpriteImage
	cmdSetSpriteZ
	cmdDestroySprite
	cmdShutdown
)

// command is a transient value object handed to the render goroutine. Only
// the fields its kind needs are set. Commands travel by value through the
// queue, so a sender's local copy going out of scope is harmless.
type command struct {
	kind cmdKind

	tilesheet []gfx.Pixel
	tileCount int

	x, y   int
	tw, th int
	tile   uint16

	image   []gfx.Pixel
	w, h, z int
	sprite  int

	ack    chan struct{} // init only: signalled after execution
	result chan int      // create-sprite only: receives the new id
}
