package bmp

import "fmt"

// CompressionName returns a readable name for a BITMAPINFOHEADER
// compression value.
func CompressionName(compression uint32) string {
	switch compression {
	case CompressionRGB:
		return "BI_RGB (no compression)"
	case CompressionRLE8:
		return "BI_RLE8 (8-bit RLE)"
	case CompressionRLE4:
		return "BI_RLE4 (4-bit RLE)"
	case CompressionBitFields:
		return "BI_BITFIELDS"
	case CompressionJPEG:
		return "BI_JPEG"
	case CompressionPNG:
		return "BI_PNG"
	default:
		return fmt.Sprintf("unknown (%d)", compression)
	}
}

// ColorDepthName returns a readable description for a bit depth.
func ColorDepthName(bitCount uint16) string {
	switch bitCount {
	case 1:
		return "1-bit (monochrome)"
	case 4:
		return "4-bit (16 colors)"
	case 8:
		return "8-bit (256 colors)"
	case 16:
		return "16-bit (high color)"
	case 24:
		return "24-bit (true color)"
	case 32:
		return "32-bit (true color + alpha)"
	default:
		return fmt.Sprintf("%d-bit", bitCount)
	}
}

// FormatFileSize renders a byte count with a KB/MB hint for larger
// values.
func FormatFileSize(size uint32) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d bytes", size)
	case size < 1024*1024:
		return fmt.Sprintf("%d bytes (%.1f KB)", size, float64(size)/1024)
	default:
		return fmt.Sprintf("%d bytes (%.1f MB)", size, float64(size)/1024/1024)
	}
}

// AbsHeight returns the image height as a positive row count.
func (ih InfoHeader) AbsHeight() int {
	if ih.Height < 0 {
		return int(-ih.Height)
	}
	return int(ih.Height)
}

// TopDown reports whether pixel rows are stored top-down on disk.
func (ih InfoHeader) TopDown() bool { return ih.Height < 0 }

// Stride returns the padded on-disk row length in bytes for 24-bit
// pixel data of this width.
func (ih InfoHeader) Stride() int { return rowStride(int(ih.Width)) }
