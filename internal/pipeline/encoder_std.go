package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/dunamismax/bmpflow/internal/bmp"
)

type stdEncoder struct{}

func (stdEncoder) Encode(pixels bmp.PixelBuffer, format string) ([]byte, error) {
	switch normalizeOutputFormat(format) {
	case "bmp":
		var buf bytes.Buffer
		if err := bmp.Encode(&buf, pixels); err != nil {
			return nil, fmt.Errorf("encode bmp: %w", err)
		}
		return buf.Bytes(), nil
	case "png":
		var buf bytes.Buffer
		encoder := png.Encoder{CompressionLevel: png.DefaultCompression}
		if err := encoder.Encode(&buf, toRGBA(pixels)); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), nil
	case "webp":
		return nil, errors.New("webp export requires govips build tag")
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func toRGBA(pixels bmp.PixelBuffer) *image.RGBA {
	width := pixels.Width()
	height := pixels.Height()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := pixels[y]
		for x := 0; x < width; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = row[x][bmp.R]
			img.Pix[i+1] = row[x][bmp.G]
			img.Pix[i+2] = row[x][bmp.B]
			img.Pix[i+3] = 0xff
		}
	}
	return img
}
