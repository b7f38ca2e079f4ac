// Windowed demo: the render core draws into the shared framebuffer at its
// own cadence while this front-end issues commands from Update and uploads
// the framebuffer in Draw. Arrow keys / WASD steer one sprite; a second one
// bounces around on its own.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"picocalc-gfx/internal/assets"
	"picocalc-gfx/internal/display"
	"picocalc-gfx/internal/gfx"
	"picocalc-gfx/internal/gfxcore"
)

const (
	screenW = 320
	screenH = 320

	spriteSize = 16
	moveSpeed  = 2
)

type game struct {
	core *gfxcore.Core
	fb   *display.Framebuffer

	player int
	px, py int

	ball   int
	bx, by int
	vx, vy int

	snap []gfx.Pixel
	rgba []byte
}

func (g *game) Update() error {
	moved := false
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		g.py -= moveSpeed
		moved = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		g.py += moveSpeed
		moved = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		g.px -= moveSpeed
		moved = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		g.px += moveSpeed
		moved = true
	}
	if moved {
		g.px = clamp(g.px, 0, screenW-spriteSize)
		g.py = clamp(g.py, 0, screenH-spriteSize)
		g.core.MoveSprite(g.player, g.px, g.py)
	}

	g.bx += g.vx
	g.by += g.vy
	if g.bx <= 0 || g.bx >= screenW-spriteSize {
		g.vx = -g.vx
	}
	if g.by <= 0 || g.by >= screenH-spriteSize {
		g.vy = -g.vy
	}
	g.core.MoveSprite(g.ball, g.bx, g.by)

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.snap = g.fb.Snapshot(g.snap)
	if g.rgba == nil {
		g.rgba = make([]byte, len(g.snap)*4)
	}
	for i, p := range g.snap {
		r, gr, b := p.RGBA8()
		g.rgba[i*4] = r
		g.rgba[i*4+1] = gr
		g.rgba[i*4+2] = b
		g.rgba[i*4+3] = 0xFF
	}
	screen.WritePixels(g.rgba)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	asePath := flag.String("sprite", "", "Aseprite .ase file for the player sprite")
	flag.Parse()

	fb := display.NewFramebuffer(screenW, screenH)
	core := gfxcore.New(fb, screenW, screenH)
	core.Start()
	defer core.Shutdown()

	tiles, count := assets.BuiltinTilesheet()
	if !core.Init(tiles, count) {
		log.Fatal("Render core failed to initialize")
	}

	// Background: grass field with a checker plaza and a water border.
	tilesX, tilesY := screenW/gfx.TileW, screenH/gfx.TileH
	core.Clear(assets.TileGrass)
	core.FillTilesRect(0, 0, tilesX, 1, assets.TileWater)
	core.FillTilesRect(0, tilesY-1, tilesX, 1, assets.TileWater)
	core.FillTilesRect(0, 0, 1, tilesY, assets.TileWater)
	core.FillTilesRect(tilesX-1, 0, 1, tilesY, assets.TileWater)
	core.FillTilesRect(7, 7, 6, 6, assets.TileChecker)

	playerImg := assets.BallSprite(spriteSize, 80, 110, 230)
	playerW, playerH := spriteSize, spriteSize
	if *asePath != "" {
		img, w, h, err := assets.LoadAseSprite(*asePath)
		if err != nil {
			log.Printf("Could not load %s: %v — using built-in sprite", *asePath, err)
		} else {
			playerImg, playerW, playerH = img, w, h
		}
	}

	g := &game{core: core, fb: fb, px: 60, py: 60, bx: 200, by: 120, vx: 2, vy: 1}
	g.player = core.CreateSprite(playerImg, playerW, playerH, g.px, g.py, 10)
	g.ball = core.CreateSprite(assets.BallSprite(spriteSize, 220, 60, 60), spriteSize, spriteSize, g.bx, g.by, 5)
	if g.player == gfx.InvalidSprite || g.ball == gfx.InvalidSprite {
		log.Fatal("Sprite creation failed")
	}

	core.StartRendering()

	ebiten.SetWindowSize(screenW*2, screenH*2)
	ebiten.SetWindowTitle("picocalc-gfx demo")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
