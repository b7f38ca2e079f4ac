package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"log"
	"os"
	"strconv"
	"strings"

	"picocalc-gfx/internal/assets"
	"picocalc-gfx/internal/display"
	"picocalc-gfx/internal/gfx"
	"picocalc-gfx/internal/gfxcore"
	"picocalc-gfx/internal/server"
)

const (
	defaultAddr = ":2222"
	hostKeyPath = "host_key"

	screenW = 320
	screenH = 320
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	if err := ensureHostKey(hostKeyPath); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	// Tilesheet: PNG or raw RGB565 file if given, procedural otherwise.
	tiles, count := loadTilesheet()
	log.Printf("Tilesheet loaded: %d tiles", count)

	fb := display.NewFramebuffer(screenW, screenH)
	core := gfxcore.New(fb, screenW, screenH)
	core.Start()
	defer core.Shutdown()

	if !core.Init(tiles, count) {
		log.Fatal("Render core failed to initialize")
	}
	setupScene(core)
	core.StartRendering()

	listenAddr := defaultAddr
	if port := os.Getenv("PORT"); port != "" {
		listenAddr = ":" + port
	}
	sshServer := server.NewSSHServer(listenAddr, hostKeyPath, core, fb)
	log.Printf("Starting picocalc-gfx viewer — connect with: ssh -p %s YourName@localhost", listenAddr[1:])
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

// loadTilesheet picks the tilesheet source from the TILESHEET env var:
// a .png (optionally with TILESHEET_CELL for non-16px grids), a .raw
// RGB565 file, or nothing for the built-in procedural sheet.
func loadTilesheet() ([]gfx.Pixel, int) {
	path := os.Getenv("TILESHEET")
	if path == "" {
		return assets.BuiltinTilesheet()
	}

	if strings.HasSuffix(path, ".raw") {
		tiles, count, err := assets.LoadRawTilesheet(path)
		if err != nil {
			log.Printf("Could not load %s: %v — using built-in tiles", path, err)
			return assets.BuiltinTilesheet()
		}
		return tiles, count
	}

	cell := gfx.TileW
	if c := os.Getenv("TILESHEET_CELL"); c != "" {
		v, err := strconv.Atoi(c)
		if err != nil || v <= 0 {
			log.Printf("Bad TILESHEET_CELL %q, using %d", c, cell)
		} else {
			cell = v
		}
	}
	tiles, count, err := assets.LoadTilesheetPNG(path, cell, cell)
	if err != nil {
		log.Printf("Could not load %s: %v — using built-in tiles", path, err)
		return assets.BuiltinTilesheet()
	}
	return tiles, count
}

// setupScene paints the background: a JSON tilemap if TILEMAP is set, a
// small procedural island otherwise.
func setupScene(core *gfxcore.Core) {
	if path := os.Getenv("TILEMAP"); path != "" {
		m, err := assets.LoadTileMap(path)
		if err != nil {
			log.Printf("Could not load %s: %v — using built-in scene", path, err)
		} else {
			log.Printf("Tilemap loaded: %s (%dx%d)", m.Name, m.Width, m.Height)
			m.Apply(core.SetTile)
			return
		}
	}

	tilesX, tilesY := screenW/gfx.TileW, screenH/gfx.TileH
	core.Clear(assets.TileWater)
	core.FillTilesRect(2, 2, tilesX-4, tilesY-4, assets.TileGrass)
	core.FillTilesRect(2, 2, tilesX-4, 1, assets.TileSand)
	core.FillTilesRect(2, tilesY-3, tilesX-4, 1, assets.TileSand)
	for i := 0; i < 6; i++ {
		core.SetTile(4+i*2, 5+(i%3)*3, assets.TileGrassTuft)
	}
	core.FillTilesRect(8, 8, 4, 4, assets.TileBrick)
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}
