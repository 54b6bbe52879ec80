package transform

import "github.com/dunamismax/bmpflow/internal/bmp"

// Scale resizes src by factor using nearest-neighbour sampling. Output
// dimensions are max(1, floor(dim*factor)); each destination pixel
// samples floor(dst/factor) in the source, clamped in-bounds. Factors
// at or below zero are a caller contract violation.
func Scale(src bmp.PixelBuffer, factor float64) (bmp.PixelBuffer, error) {
	if factor <= 0 {
		return nil, ErrNonPositiveScale
	}

	srcW := src.Width()
	srcH := src.Height()
	if srcW == 0 || srcH == 0 {
		return src.Clone(), nil
	}
	dstW := scaledDim(srcW, factor)
	dstH := scaledDim(srcH, factor)

	out := bmp.NewPixelBuffer(dstW, dstH)
	for y := 0; y < dstH; y++ {
		sy := int(float64(y) / factor)
		if sy >= srcH {
			sy = srcH - 1
		}
		for x := 0; x < dstW; x++ {
			sx := int(float64(x) / factor)
			if sx >= srcW {
				sx = srcW - 1
			}
			out[y][x] = src[sy][sx]
		}
	}
	return out, nil
}

// scaledDim floors dim*factor but never returns less than 1, so a
// degenerate factor still yields a non-empty image.
func scaledDim(dim int, factor float64) int {
	scaled := int(float64(dim) * factor)
	if scaled < 1 {
		return 1
	}
	return scaled
}
