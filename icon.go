package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// Tray icons are generated at startup instead of being shipped as
// assets; a flat 16x16 square is enough to tell idle from busy.
var (
	iconIdle = makeIcon(color.NRGBA{R: 0x2b, G: 0x6c, B: 0xb0, A: 0xff})
	iconBusy = makeIcon(color.NRGBA{R: 0xd0, G: 0x3b, B: 0x2f, A: 0xff})
)

func makeIcon(c color.NRGBA) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
