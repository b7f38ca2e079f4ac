// Package gfxcore runs a gfx.Surface on a dedicated render goroutine and
// feeds it through a bounded command queue.
//
// Exactly two long-lived contexts exist: the control context (whoever holds
// the Core) issues commands, and the render goroutine drains them and runs
// the pipeline at a fixed frame cadence. The Surface and everything in it is
// owned and mutated only by the render goroutine; the control side never
// holds a reference to it.
package gfxcore

import (
	"sync/atomic"
	"time"

	"picocalc-gfx/internal/gfx"
)

const (
	// FramePeriod is the default frame cadence, ~60 Hz.
	FramePeriod = 16667 * time.Microsecond

	// queueDepth bounds the command queue. A full queue briefly blocks the
	// sender instead of overwriting unread commands.
	queueDepth = 8

	// stopTimeout bounds the wait for StopRendering to be observed.
	stopTimeout = 100 * time.Millisecond

	// idleSleep is how long the render goroutine naps between queue checks
	// while continuous rendering is disabled.
	idleSleep = time.Millisecond
)

// Core drives a render goroutine. Zero or more control goroutines may send
// commands concurrently; they are executed in send order.
type Core struct {
	surface *gfx.Surface
	cmds    chan command
	done    chan struct{}

	started   atomic.Bool
	running   atomic.Bool
	rendering atomic.Bool

	period time.Duration
}

// New creates a core rendering into sink at the given pixel dimensions.
// Call Start to launch the render goroutine.
func New(sink gfx.Sink, width, height int) *Core {
	return &Core{
		surface: gfx.NewSurface(sink, width, height),
		cmds:    make(chan command, queueDepth),
		done:    make(chan struct{}),
		period:  FramePeriod,
	}
}

// SetFramePeriod overrides the frame cadence. Only valid before Start.
func (c *Core) SetFramePeriod(d time.Duration) {
	if d > 0 {
		c.period = d
	}
}

// Start launches the render goroutine. Starting twice, or starting again
// after Shutdown, is a no-op.
func (c *Core) Start() {
	if !c.started.CompareAndSwap(false, true) {
		return
	}
	c.running.Store(true)
	go c.run()
}

// Running reports whether the render goroutine accepts commands.
func (c *Core) Running() bool { return c.running.Load() }

// Rendering reports whether continuous rendering is enabled.
func (c *Core) Rendering() bool { return c.rendering.Load() }

// Done returns a channel closed when the render goroutine has exited.
func (c *Core) Done() <-chan struct{} { return c.done }

// run is the render goroutine: drain all queued commands, then either wait
// out the frame deadline and present, or nap and loop to keep draining.
func (c *Core) run() {
	defer close(c.done)
	next := time.Now().Add(c.period)

	for {
	drain:
		for {
			select {
			case cmd := <-c.cmds:
				if !c.execute(cmd) {
					return
				}
			default:
				break drain
			}
		}

		if c.rendering.Load() {
			// Sleep to the frame deadline, but wake for arriving commands
			// so senders waiting on a result aren't locked to the frame
			// cadence.
			timer := time.NewTimer(time.Until(next))
		wait:
			for {
				select {
				case cmd := <-c.cmds:
					if !c.execute(cmd) {
						timer.Stop()
						return
					}
				case <-timer.C:
					break wait
				}
			}
			// The next deadline is previous + period, not now + period:
			// after a stall the loop bursts to restore the long-run frame
			// rate instead of skipping the missed frames.
			next = next.Add(c.period)
			c.surface.Present()
		} else {
			time.Sleep(idleSleep)
			next = time.Now().Add(c.period)
		}
	}
}

// execute dispatches one command on the render goroutine. Returns false on
// shutdown.
func (c *Core) execute(cmd command) bool {
	switch cmd.kind {
	case cmdInit:
		c.surface.Init(cmd.tilesheet, cmd.tileCount)
		// Rendering stays off until requested; the scene gets set up first.
		cmd.ack <- struct{}{}

	case cmdPresent:
		c.surface.Present()

	case cmdStartRendering:
		c.rendering.Store(true)

	case cmdStopRendering:
		c.rendering.Store(false)

	case cmdSetTile:
		c.surface.SetTile(cmd.x, cmd.y, cmd.tile)

	case cmdFillTilesRect:
		c.surface.FillTilesRect(cmd.x, cmd.y, cmd.tw, cmd.th, cmd.tile)

	case cmdClear:
		c.surface.Clear(cmd.tile)

	case cmdCreateSprite:
		id, err := c.surface.CreateSprite(cmd.image, cmd.w, cmd.h, cmd.x, cmd.y, cmd.z)
		if err != nil {
			id = gfx.InvalidSprite
		}
		cmd.result <- id

	case cmdMoveSprite:
		c.surface.MoveSprite(cmd.sprite, cmd.x, cmd.y)

	case cmdSetSpriteImage:
		c.surface.SetSpriteImage(cmd.sprite, cmd.image, cmd.w, cmd.h)

	case cmdSetSpriteZ:
		c.surface.SetSpriteZ(cmd.sprite, cmd.z)

	case cmdDestroySprite:
		c.surface.DestroySprite(cmd.sprite)

	case cmdShutdown:
		c.rendering.Store(false)
		c.running.Store(false)
		return false
	}
	return true
}

// send queues a command for the render goroutine. Returns false if the core
// is not running. Blocks briefly when the queue is full (backpressure).
func (c *Core) send(cmd command) bool {
	if !c.running.Load() {
		return false
	}
	select {
	case c.cmds <- cmd:
		return true
	case <-c.done:
		return false
	}
}

//
// High-level API. Each call is synchronous from the caller's perspective but
// lands as a queued command; visual effect appears on the next frame at the
// earliest.
//

// Init hands the tilesheet to the render goroutine and resets all render
// state. Blocks until the render goroutine has executed it, so callers know
// the surface is ready before setting up a scene. Returns false if the core
// is not running.
func (c *Core) Init(tilesheet []gfx.Pixel, tileCount int) bool {
	ack := make(chan struct{}, 1)
	if !c.send(command{kind: cmdInit, tilesheet: tilesheet, tileCount: tileCount, ack: ack}) {
		return false
	}
	select {
	case <-ack:
		return true
	case <-c.done:
		return false
	}
}

// Present renders one frame. Useful while continuous rendering is disabled;
// with it enabled this just adds an extra frame.
func (c *Core) Present() bool {
	return c.send(command{kind: cmdPresent})
}

// StartRendering enables continuous rendering at the frame cadence.
func (c *Core) StartRendering() bool {
	return c.send(command{kind: cmdStartRendering})
}

// StopRendering disables continuous rendering and waits (bounded) until the
// render goroutine has observed it, so callers can reclaim sprite images or
// tear down the scene cleanly afterwards.
func (c *Core) StopRendering() bool {
	if !c.send(command{kind: cmdStopRendering}) {
		return false
	}
	deadline := time.Now().Add(stopTimeout)
	for c.rendering.Load() && time.Now().Before(deadline) {
		time.Sleep(100 * time.Microsecond)
	}
	return !c.rendering.Load()
}

// SetTile writes a tile index into the pending map.
func (c *Core) SetTile(tx, ty int, index uint16) bool {
	return c.send(command{kind: cmdSetTile, x: tx, y: ty, tile: index})
}

// FillTilesRect fills a rectangle of the pending map, in tile units.
func (c *Core) FillTilesRect(tx, ty, tw, th int, index uint16) bool {
	return c.send(command{kind: cmdFillTilesRect, x: tx, y: ty, tw: tw, th: th, tile: index})
}

// Clear fills the entire pending map with index.
func (c *Core) Clear(index uint16) bool {
	return c.send(command{kind: cmdClear, tile: index})
}

// CreateSprite creates a sprite and waits (bounded) for its id. Returns
// gfx.InvalidSprite if the table is full, the image is unusable, the core is
// not running, or the id was not observed in time.
func (c *Core) CreateSprite(image []gfx.Pixel, w, h, x, y, z int) int {
	result := make(chan int, 1)
	cmd := command{kind: cmdCreateSprite, image: image, w: w, h: h, x: x, y: y, z: z, result: result}
	if !c.send(cmd) {
		return gfx.InvalidSprite
	}
	// Two frame periods: the render goroutine drains the queue at least
	// once per frame even when a frame is mid-flight.
	select {
	case id := <-result:
		return id
	case <-time.After(2 * c.period):
		return gfx.InvalidSprite
	case <-c.done:
		return gfx.InvalidSprite
	}
}

// MoveSprite updates a sprite's position.
func (c *Core) MoveSprite(id, x, y int) bool {
	return c.send(command{kind: cmdMoveSprite, sprite: id, x: x, y: y})
}

// SetSpriteImage swaps a sprite's image and dimensions.
func (c *Core) SetSpriteImage(id int, image []gfx.Pixel, w, h int) bool {
	return c.send(command{kind: cmdSetSpriteImage, sprite: id, image: image, w: w, h: h})
}

// SetSpriteZ changes a sprite's draw-order key.
func (c *Core) SetSpriteZ(id, z int) bool {
	return c.send(command{kind: cmdSetSpriteZ, sprite: id, z: z})
}

// DestroySprite erases the sprite's footprint and frees its slot. The
// sprite's image memory may be reclaimed once a later StopRendering or
// Shutdown has returned.
func (c *Core) DestroySprite(id int) bool {
	return c.send(command{kind: cmdDestroySprite, sprite: id})
}

// Shutdown stops the render goroutine and waits for it to exit. Terminal:
// the core cannot be restarted. Safe to call more than once; every call
// returns only after the render goroutine has exited.
func (c *Core) Shutdown() {
	c.send(command{kind: cmdShutdown})
	if c.started.Load() {
		<-c.done
	}
}
