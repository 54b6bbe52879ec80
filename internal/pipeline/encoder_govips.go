//go:build govips && cgo

package pipeline

import (
	"bytes"
	"fmt"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/dunamismax/bmpflow/internal/bmp"
)

// govipsEncoder routes png and webp exports through libvips. Bitmaps are
// still written by the native encoder since vips has no bmp saver.
type govipsEncoder struct {
	fallback stdEncoder
}

func (e govipsEncoder) Encode(pixels bmp.PixelBuffer, format string) ([]byte, error) {
	format = normalizeOutputFormat(format)
	if format == "bmp" {
		return e.fallback.Encode(pixels, format)
	}

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, pixels); err != nil {
		return nil, fmt.Errorf("encode intermediate bmp: %w", err)
	}

	img, err := vips.NewImageFromBuffer(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("load rendered pixels: %w", err)
	}
	defer img.Close()

	switch format {
	case "png":
		data, _, err := img.ExportPng(vips.NewPngExportParams())
		if err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
		return data, nil
	case "webp":
		data, _, err := img.ExportWebp(vips.NewWebpExportParams())
		if err != nil {
			return nil, fmt.Errorf("encode webp: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
