package gfx

// Sink receives the pixels a Surface produces. Implementations write to a
// display, a framebuffer, or a recorder in tests. The Surface never reads
// anything back from its sink.
type Sink interface {
	// Blit writes a w x h rectangle of pixels at device coordinates.
	// The pixels slice is only valid for the duration of the call;
	// the sink must copy it if it keeps the data.
	Blit(pixels []Pixel, x, y, w, h int)

	// SolidRect fills a w x h rectangle with a single colour.
	SolidRect(color Pixel, x, y, w, h int)
}
