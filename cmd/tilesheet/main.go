// Command tilesheet converts a PNG tile grid into the raw little-endian
// RGB565 format the render core loads directly.
package main

import (
	"flag"
	"log"

	"picocalc-gfx/internal/assets"
	"picocalc-gfx/internal/gfx"
)

func main() {
	log.SetFlags(0)

	in := flag.String("in", "", "input PNG tilesheet")
	out := flag.String("out", "", "output .raw RGB565 file")
	cell := flag.Int("cell", gfx.TileW, "source cell size in pixels (rescaled to 16)")
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		log.Fatal("both -in and -out are required")
	}

	tiles, count, err := assets.LoadTilesheetPNG(*in, *cell, *cell)
	if err != nil {
		log.Fatalf("load: %v", err)
	}
	if err := assets.SaveRaw(*out, tiles); err != nil {
		log.Fatalf("save: %v", err)
	}
	log.Printf("%s: %d tiles -> %s (%d bytes)", *in, count, *out, len(tiles)*2)
}
