package bmp

import (
	"bufio"
	"errors"
	"io"
)

// Encode writes pixels to w as an uncompressed 24-bit BMP with a
// 40-byte info header. Rows are written bottom-up with 4-byte padding,
// which is the common on-disk layout.
func Encode(w io.Writer, pixels PixelBuffer) error {
	width := pixels.Width()
	height := pixels.Height()
	if width == 0 || height == 0 {
		return errors.New("bmp: cannot encode an empty pixel buffer")
	}

	stride := rowStride(width)
	sizeImage := uint32(stride * height)
	pixelOffset := uint32(fileHeaderLen + infoHeaderLen)

	var header [fileHeaderLen + infoHeaderLen]byte
	header[0] = 'B'
	header[1] = 'M'
	putUint32(header[2:], pixelOffset+sizeImage)
	putUint32(header[10:], pixelOffset)
	putUint32(header[14:], infoHeaderLen)
	putUint32(header[18:], uint32(int32(width)))
	putUint32(header[22:], uint32(int32(height)))
	putUint16(header[26:], 1) // planes
	putUint16(header[28:], 24)
	putUint32(header[30:], CompressionRGB)
	putUint32(header[34:], sizeImage)

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}

	row := make([]byte, stride)
	for i := 0; i < height; i++ {
		// Last image row first.
		src := pixels[height-i-1]
		for x, px := range src {
			row[x*3] = px[B]
			row[x*3+1] = px[G]
			row[x*3+2] = px[R]
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}

	return bw.Flush()
}
