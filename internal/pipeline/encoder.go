package pipeline

import (
	"strings"

	"github.com/dunamismax/bmpflow/internal/bmp"
)

type Encoder interface {
	Encode(pixels bmp.PixelBuffer, format string) ([]byte, error)
}

func normalizeOutputFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "png":
		return "png"
	case "webp":
		return "webp"
	default:
		return "bmp"
	}
}

func contentTypeForFormat(format string) string {
	switch normalizeOutputFormat(format) {
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	default:
		return "image/bmp"
	}
}
