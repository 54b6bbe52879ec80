/*
Package bmp implements a decoder and encoder for uncompressed 24-bit
Windows BMP images (BITMAPFILEHEADER followed by BITMAPINFOHEADER).

The decoder normalizes pixel data to a top-down RGB buffer regardless of
the on-disk row order, and rejects anything it does not fully understand:
bad signatures and truncated files fail with FormatError, valid but
unimplemented features (palettes, RLE compression, other bit depths) fail
with UnsupportedError.
*/
package bmp

import "errors"

const (
	fileHeaderLen = 14
	infoHeaderLen = 40
	bytesPerPixel = 3
)

// Compression values from the BITMAPINFOHEADER specification.
const (
	CompressionRGB       = 0
	CompressionRLE8      = 1
	CompressionRLE4      = 2
	CompressionBitFields = 3
	CompressionJPEG      = 4
	CompressionPNG       = 5
)

// FormatError reports that the input is not a valid BMP file.
type FormatError string

func (e FormatError) Error() string { return "bmp: invalid format: " + string(e) }

// UnsupportedError reports that the input uses a valid but unimplemented
// BMP feature.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "bmp: unsupported feature: " + string(e) }

// ErrNotParsed is returned by Parser accessors invoked before a
// successful Parse.
var ErrNotParsed = errors.New("bmp: file not parsed")

// FileHeader is the 14-byte BITMAPFILEHEADER.
type FileHeader struct {
	Signature   [2]byte // must be "BM"
	FileSize    uint32
	Reserved1   uint16
	Reserved2   uint16
	PixelOffset uint32 // offset from the start of the file to the pixel array
}

// InfoHeader is the BITMAPINFOHEADER. Headers larger than 40 bytes
// (V4/V5) are accepted; only the first 40 bytes are parsed.
type InfoHeader struct {
	HeaderSize      uint32
	Width           int32
	Height          int32 // negative height means rows are stored top-down
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	SizeImage       uint32
	XPelsPerMeter   int32
	YPelsPerMeter   int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

func readUint16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

func readUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putUint16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// rowStride returns the on-disk length of one pixel row, padded to a
// 4-byte boundary per the BMP row-alignment rule.
func rowStride(width int) int {
	return ((width*bytesPerPixel + 3) / 4) * 4
}
