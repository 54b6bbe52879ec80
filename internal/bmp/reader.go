package bmp

import (
	"io"
)

// Image is the result of a full decode: both headers plus the
// normalized pixel buffer.
type Image struct {
	FileHeader FileHeader
	InfoHeader InfoHeader
	Pixels     PixelBuffer
}

// DecodeHeaders reads and validates the file header and info header
// from r without touching pixel data.
func DecodeHeaders(r io.Reader) (FileHeader, InfoHeader, error) {
	var fh FileHeader
	var ih InfoHeader

	var buf [fileHeaderLen]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return fh, ih, FormatError("short file header")
	}
	if buf[0] != 'B' || buf[1] != 'M' {
		return fh, ih, FormatError("not a BMP file")
	}

	fh.Signature = [2]byte{buf[0], buf[1]}
	fh.FileSize = readUint32(buf[2:])
	fh.Reserved1 = readUint16(buf[6:])
	fh.Reserved2 = readUint16(buf[8:])
	fh.PixelOffset = readUint32(buf[10:])

	var sizeBuf [4]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		return fh, ih, FormatError("short info header")
	}
	ih.HeaderSize = readUint32(sizeBuf[:])
	if ih.HeaderSize < infoHeaderLen {
		return fh, ih, UnsupportedError("info header smaller than 40 bytes")
	}

	rest := make([]byte, ih.HeaderSize-4)
	if _, err := io.ReadFull(r, rest); err != nil {
		return fh, ih, FormatError("short info header")
	}

	// Offsets below are relative to the start of the info header,
	// minus the 4 size bytes already consumed.
	ih.Width = int32(readUint32(rest[0:]))
	ih.Height = int32(readUint32(rest[4:]))
	ih.Planes = readUint16(rest[8:])
	ih.BitCount = readUint16(rest[10:])
	ih.Compression = readUint32(rest[12:])
	ih.SizeImage = readUint32(rest[16:])
	ih.XPelsPerMeter = int32(readUint32(rest[20:]))
	ih.YPelsPerMeter = int32(readUint32(rest[24:]))
	ih.ColorsUsed = readUint32(rest[28:])
	ih.ColorsImportant = readUint32(rest[32:])

	return fh, ih, nil
}

// Decode reads a complete BMP image from r: headers first, then the
// pixel array found at the file header's pixel offset. Only 24-bit
// uncompressed images are supported.
func Decode(r io.ReadSeeker) (*Image, error) {
	fh, ih, err := DecodeHeaders(r)
	if err != nil {
		return nil, err
	}

	pixels, err := decodePixels(r, fh, ih)
	if err != nil {
		return nil, err
	}

	return &Image{FileHeader: fh, InfoHeader: ih, Pixels: pixels}, nil
}

func decodePixels(r io.ReadSeeker, fh FileHeader, ih InfoHeader) (PixelBuffer, error) {
	if ih.BitCount != 24 {
		return nil, UnsupportedError("bit depth other than 24")
	}
	if ih.Compression != CompressionRGB {
		return nil, UnsupportedError("compressed pixel data")
	}
	if ih.Planes != 1 {
		return nil, UnsupportedError("more than one color plane")
	}

	width := int(ih.Width)
	height := int(ih.Height)
	topDown := false
	if height < 0 {
		topDown = true
		height = -height
	}
	if width <= 0 || height == 0 {
		return nil, FormatError("non-positive dimension")
	}

	if _, err := r.Seek(int64(fh.PixelOffset), io.SeekStart); err != nil {
		return nil, FormatError("pixel offset out of range")
	}

	stride := rowStride(width)
	rowBuf := make([]byte, stride)
	pixels := NewPixelBuffer(width, height)

	for i := 0; i < height; i++ {
		if _, err := io.ReadFull(r, rowBuf); err != nil {
			return nil, FormatError("truncated pixel data")
		}

		// Positive heights store rows bottom-up on disk.
		y := height - i - 1
		if topDown {
			y = i
		}

		for x := 0; x < width; x++ {
			// On-disk order is BGR.
			pixels[y][x] = Pixel{rowBuf[x*3+2], rowBuf[x*3+1], rowBuf[x*3]}
		}
	}

	return pixels, nil
}
