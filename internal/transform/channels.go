package transform

import "github.com/dunamismax/bmpflow/internal/bmp"

// Channels zeroes every disabled channel and passes enabled channels
// through unchanged. Enabling all three is the identity transform.
func Channels(src bmp.PixelBuffer, red, green, blue bool) bmp.PixelBuffer {
	out := src.Clone()
	if red && green && blue {
		return out
	}

	for y := range out {
		for x := range out[y] {
			if !red {
				out[y][x][bmp.R] = 0
			}
			if !green {
				out[y][x][bmp.G] = 0
			}
			if !blue {
				out[y][x][bmp.B] = 0
			}
		}
	}
	return out
}
