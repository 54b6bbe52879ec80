package transform

import "github.com/dunamismax/bmpflow/internal/bmp"

// Brightness multiplies every channel by factor, clamps to [0,255] and
// truncates toward zero. A factor of 1.0 returns an identical copy.
// Negative factors are a caller contract violation.
func Brightness(src bmp.PixelBuffer, factor float64) (bmp.PixelBuffer, error) {
	if factor < 0 {
		return nil, ErrNegativeFactor
	}

	out := bmp.NewPixelBuffer(src.Width(), src.Height())
	for y, row := range src {
		for x, px := range row {
			for c := 0; c < 3; c++ {
				v := float64(px[c]) * factor
				if v > 255 {
					v = 255
				}
				out[y][x][c] = uint8(v)
			}
		}
	}
	return out, nil
}
