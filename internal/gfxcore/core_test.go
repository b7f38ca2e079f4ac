package gfxcore

import (
	"testing"
	"time"

	"picocalc-gfx/internal/display"
	"picocalc-gfx/internal/gfx"
)

const testW, testH = 64, 64

// solidTilesheet builds count tiles where tile i is filled with colour i+1.
func solidTilesheet(count int) []gfx.Pixel {
	tiles := make([]gfx.Pixel, count*gfx.TilePixels)
	for i := range tiles {
		tiles[i] = gfx.Pixel(i/gfx.TilePixels + 1)
	}
	return tiles
}

func newTestCore(t *testing.T) (*Core, *display.Framebuffer) {
	t.Helper()
	fb := display.NewFramebuffer(testW, testH)
	c := New(fb, testW, testH)
	c.SetFramePeriod(2 * time.Millisecond)
	c.Start()
	t.Cleanup(c.Shutdown)
	return c, fb
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestInitBlocksUntilExecuted(t *testing.T) {
	c, _ := newTestCore(t)
	if !c.Init(solidTilesheet(8), 8) {
		t.Fatal("Init returned false on a running core")
	}
	// The ack means the surface is ready: a present right after must show
	// the blank background, not stale state.
	if !c.Present() {
		t.Fatal("Present returned false")
	}
}

func TestCommandOrdering(t *testing.T) {
	c, fb := newTestCore(t)
	if !c.Init(solidTilesheet(8), 8) {
		t.Fatal("Init failed")
	}

	// Last write wins: the frame must show tile 7, never tile 5.
	c.SetTile(1, 1, 5)
	c.SetTile(1, 1, 7)
	c.Present()

	waitFor(t, "tile (1,1) to show index 7", func() bool {
		return fb.At(1*gfx.TileW, 1*gfx.TileH) == gfx.Pixel(8) // tile 7's colour
	})
	if got := fb.At(1*gfx.TileW, 1*gfx.TileH); got == gfx.Pixel(6) {
		t.Fatal("tile (1,1) shows the overwritten index 5")
	}
}

func TestCreateSpriteReturnsID(t *testing.T) {
	c, _ := newTestCore(t)
	if !c.Init(nil, 0) {
		t.Fatal("Init failed")
	}

	img := make([]gfx.Pixel, 16*16)
	for i := 0; i < gfx.MaxSprites; i++ {
		if id := c.CreateSprite(img, 16, 16, 0, 0, 0); id != i {
			t.Fatalf("create %d returned id %d", i, id)
		}
	}
	if id := c.CreateSprite(img, 16, 16, 0, 0, 0); id != gfx.InvalidSprite {
		t.Fatalf("create past capacity returned %d, want InvalidSprite", id)
	}

	c.DestroySprite(3)
	waitFor(t, "slot 3 to free up", func() bool {
		return c.CreateSprite(img, 16, 16, 0, 0, 0) == 3
	})
}

func TestCreateSpriteWhileRendering(t *testing.T) {
	// Default frame period: a create must not race the frame cadence. Every
	// slot has to come back with a usable id, or the slot leaks with a ghost
	// sprite nobody can destroy.
	fb := display.NewFramebuffer(testW, testH)
	c := New(fb, testW, testH)
	c.Start()
	t.Cleanup(c.Shutdown)
	if !c.Init(nil, 0) {
		t.Fatal("Init failed")
	}
	if !c.StartRendering() {
		t.Fatal("StartRendering failed")
	}
	waitFor(t, "rendering to start", c.Rendering)

	img := make([]gfx.Pixel, 16*16)
	for i := 0; i < gfx.MaxSprites; i++ {
		if id := c.CreateSprite(img, 16, 16, 0, 0, 0); id != i {
			t.Fatalf("create %d while rendering returned id %d", i, id)
		}
	}

	// Destroying each id must free its slot: no leaked ghosts.
	for i := 0; i < gfx.MaxSprites; i++ {
		c.DestroySprite(i)
	}
	waitFor(t, "all slots to free up", func() bool {
		return c.CreateSprite(img, 16, 16, 0, 0, 0) != gfx.InvalidSprite
	})
}

func TestSpriteVisibleAfterPresent(t *testing.T) {
	c, fb := newTestCore(t)
	if !c.Init(nil, 0) {
		t.Fatal("Init failed")
	}

	img := make([]gfx.Pixel, 8*8)
	for i := range img {
		img[i] = 0xF800
	}
	id := c.CreateSprite(img, 8, 8, 20, 20, 0)
	if id == gfx.InvalidSprite {
		t.Fatal("CreateSprite failed")
	}
	c.Present()
	waitFor(t, "sprite pixels in the framebuffer", func() bool {
		return fb.At(20, 20) == 0xF800
	})

	// Destroy must leave the background behind, not sprite residue.
	c.DestroySprite(id)
	c.Present()
	waitFor(t, "sprite erased", func() bool {
		return fb.At(20, 20) == gfx.Pixel(gfx.Background)
	})
}

func TestContinuousRendering(t *testing.T) {
	c, fb := newTestCore(t)
	if !c.Init(solidTilesheet(4), 4) {
		t.Fatal("Init failed")
	}

	if !c.StartRendering() {
		t.Fatal("StartRendering failed")
	}
	waitFor(t, "rendering to start", c.Rendering)

	c.Clear(2)
	waitFor(t, "frame with tile 2 everywhere", func() bool {
		return fb.At(0, 0) == gfx.Pixel(3) && fb.At(testW-1, testH-1) == gfx.Pixel(3)
	})

	if !c.StopRendering() {
		t.Fatal("StopRendering did not observe the stop in time")
	}
	if c.Rendering() {
		t.Fatal("Rendering() still true after StopRendering returned")
	}
}

func TestSendToStoppedCore(t *testing.T) {
	fb := display.NewFramebuffer(testW, testH)
	c := New(fb, testW, testH)

	// Never started.
	if c.Init(nil, 0) {
		t.Error("Init succeeded on a core that was never started")
	}
	if c.SetTile(0, 0, 1) {
		t.Error("SetTile succeeded on a core that was never started")
	}
	if id := c.CreateSprite(make([]gfx.Pixel, 4), 2, 2, 0, 0, 0); id != gfx.InvalidSprite {
		t.Errorf("CreateSprite returned %d on a stopped core", id)
	}
}

func TestShutdownIsTerminal(t *testing.T) {
	fb := display.NewFramebuffer(testW, testH)
	c := New(fb, testW, testH)
	c.Start()
	if !c.Running() {
		t.Fatal("core not running after Start")
	}

	c.Shutdown()
	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("render goroutine did not exit")
	}
	if c.Running() {
		t.Error("Running() true after Shutdown")
	}
	if c.SetTile(0, 0, 1) {
		t.Error("SetTile succeeded after Shutdown")
	}
	if c.Rendering() {
		t.Error("Rendering() true after Shutdown")
	}

	c.Start() // must not relaunch the render goroutine
	if c.Running() {
		t.Error("Start restarted a shut-down core")
	}
}

func TestShutdownTwice(t *testing.T) {
	fb := display.NewFramebuffer(testW, testH)
	c := New(fb, testW, testH)
	c.Start()
	c.Shutdown()
	c.Shutdown() // second call must not hang or panic
}

func TestShutdownWaitsForExit(t *testing.T) {
	fb := display.NewFramebuffer(testW, testH)
	c := New(fb, testW, testH)
	c.Start()

	// Two concurrent shutdowns: both must return, and neither before the
	// render goroutine has exited.
	second := make(chan struct{})
	go func() {
		c.Shutdown()
		close(second)
	}()
	c.Shutdown()
	select {
	case <-c.Done():
	default:
		t.Error("Shutdown returned before the render goroutine exited")
	}

	select {
	case <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("concurrent Shutdown did not return")
	}
}
