package bmp

import (
	"bytes"
	"errors"
	"testing"
)

// buildBMP assembles a 24-bit uncompressed BMP byte-for-byte so reader
// tests do not depend on the encoder.
func buildBMP(width, height int, topDown bool, at func(x, y int) Pixel) []byte {
	stride := rowStride(width)
	sizeImage := stride * height
	offset := fileHeaderLen + infoHeaderLen

	buf := make([]byte, offset+sizeImage)
	buf[0] = 'B'
	buf[1] = 'M'
	putUint32(buf[2:], uint32(offset+sizeImage))
	putUint32(buf[10:], uint32(offset))
	putUint32(buf[14:], infoHeaderLen)
	putUint32(buf[18:], uint32(int32(width)))
	storedHeight := int32(height)
	if topDown {
		storedHeight = -storedHeight
	}
	putUint32(buf[22:], uint32(storedHeight))
	putUint16(buf[26:], 1)
	putUint16(buf[28:], 24)
	putUint32(buf[30:], CompressionRGB)
	putUint32(buf[34:], uint32(sizeImage))

	for i := 0; i < height; i++ {
		y := height - i - 1
		if topDown {
			y = i
		}
		row := buf[offset+i*stride:]
		for x := 0; x < width; x++ {
			px := at(x, y)
			row[x*3] = px[B]
			row[x*3+1] = px[G]
			row[x*3+2] = px[R]
		}
	}
	return buf
}

func white(x, y int) Pixel { return Pixel{255, 255, 255} }

// coords encodes the pixel position into its channels so row/column
// ordering mistakes show up as value mismatches.
func coords(x, y int) Pixel { return Pixel{uint8(x), uint8(y), uint8(x + y)} }

func TestDecodeWhiteImage(t *testing.T) {
	img, err := Decode(bytes.NewReader(buildBMP(2, 2, false, white)))
	if err != nil {
		t.Fatalf("decode returned error: %v", err)
	}

	if img.Pixels.Width() != 2 || img.Pixels.Height() != 2 {
		t.Fatalf("expected 2x2 buffer, got %dx%d", img.Pixels.Width(), img.Pixels.Height())
	}
	for y, row := range img.Pixels {
		for x, px := range row {
			if px != (Pixel{255, 255, 255}) {
				t.Fatalf("pixel (%d,%d) = %v, expected white", x, y, px)
			}
		}
	}
}

func TestDecodeNormalizesBottomUpRows(t *testing.T) {
	img, err := Decode(bytes.NewReader(buildBMP(3, 4, false, coords)))
	if err != nil {
		t.Fatalf("decode returned error: %v", err)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			if img.Pixels[y][x] != coords(x, y) {
				t.Fatalf("pixel (%d,%d) = %v, expected %v", x, y, img.Pixels[y][x], coords(x, y))
			}
		}
	}
}

func TestDecodeTopDownRows(t *testing.T) {
	img, err := Decode(bytes.NewReader(buildBMP(3, 4, true, coords)))
	if err != nil {
		t.Fatalf("decode returned error: %v", err)
	}

	if img.InfoHeader.Height >= 0 {
		t.Fatalf("expected negative stored height, got %d", img.InfoHeader.Height)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			if img.Pixels[y][x] != coords(x, y) {
				t.Fatalf("pixel (%d,%d) = %v, expected %v", x, y, img.Pixels[y][x], coords(x, y))
			}
		}
	}
}

func TestDecodeRejectsBadSignature(t *testing.T) {
	data := buildBMP(2, 2, false, white)
	data[0] = 'X'

	_, err := Decode(bytes.NewReader(data))
	var ferr FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestDecodeRejectsShortFileHeader(t *testing.T) {
	data := buildBMP(2, 2, false, white)

	_, err := Decode(bytes.NewReader(data[:10]))
	var ferr FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FormatError for short file header, got %v", err)
	}
}

func TestDecodeRejectsShortInfoHeader(t *testing.T) {
	data := buildBMP(2, 2, false, white)

	_, err := Decode(bytes.NewReader(data[:fileHeaderLen+6]))
	var ferr FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FormatError for short info header, got %v", err)
	}
}

func TestDecodeRejectsTruncatedPixelData(t *testing.T) {
	data := buildBMP(4, 4, false, white)

	_, err := Decode(bytes.NewReader(data[:len(data)-5]))
	var ferr FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FormatError for truncated pixels, got %v", err)
	}
}

func TestDecodeRejectsUnsupportedBitDepth(t *testing.T) {
	data := buildBMP(2, 2, false, white)
	putUint16(data[28:], 8)

	_, err := Decode(bytes.NewReader(data))
	var uerr UnsupportedError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnsupportedError, got %v", err)
	}
}

func TestDecodeRejectsCompressedPixelData(t *testing.T) {
	data := buildBMP(2, 2, false, white)
	putUint32(data[30:], CompressionRLE8)

	_, err := Decode(bytes.NewReader(data))
	var uerr UnsupportedError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnsupportedError, got %v", err)
	}
}

func TestDecodeHeadersParsesFixedOffsets(t *testing.T) {
	data := buildBMP(7, 5, false, white)

	fh, ih, err := DecodeHeaders(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode headers returned error: %v", err)
	}

	if fh.PixelOffset != fileHeaderLen+infoHeaderLen {
		t.Fatalf("expected pixel offset 54, got %d", fh.PixelOffset)
	}
	if fh.FileSize != uint32(len(data)) {
		t.Fatalf("expected file size %d, got %d", len(data), fh.FileSize)
	}
	if ih.Width != 7 || ih.Height != 5 {
		t.Fatalf("expected 7x5, got %dx%d", ih.Width, ih.Height)
	}
	if ih.BitCount != 24 || ih.Compression != CompressionRGB {
		t.Fatalf("unexpected depth/compression: %d/%d", ih.BitCount, ih.Compression)
	}
}
