package gfx

import "testing"

func TestRGB565RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    Pixel
	}{
		{"black", 0, 0, 0, 0x0000},
		{"white", 255, 255, 255, 0xFFFF},
		{"pure red", 255, 0, 0, 0xF800},
		{"pure green", 0, 255, 0, 0x07E0},
		{"pure blue", 0, 0, 255, 0x001F},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := RGB565(tt.r, tt.g, tt.b)
			if p != tt.want {
				t.Fatalf("RGB565(%d,%d,%d) = %#04x, want %#04x", tt.r, tt.g, tt.b, p, tt.want)
			}
			r, g, b := p.RGBA8()
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("RGBA8() = (%d,%d,%d), want (%d,%d,%d)", r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestWhiteIsTransparentSentinel(t *testing.T) {
	if RGB565(255, 255, 255) != Transparent {
		t.Error("pure white must pack to the transparency sentinel, as on the device")
	}
}
