package bmp

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	// Odd width so the row padding path is exercised.
	src := NewPixelBuffer(3, 2)
	for y := range src {
		for x := range src[y] {
			src[y][x] = coords(x, y)
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, src); err != nil {
		t.Fatalf("encode returned error: %v", err)
	}

	img, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("decode returned error: %v", err)
	}
	if !img.Pixels.Equal(src) {
		t.Fatal("decoded pixels differ from encoded source")
	}
	if img.FileHeader.FileSize != uint32(buf.Len()) {
		t.Fatalf("header file size %d, actual %d", img.FileHeader.FileSize, buf.Len())
	}
}

func TestEncodeRejectsEmptyBuffer(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, PixelBuffer{}); err == nil {
		t.Fatal("expected error for empty buffer")
	}
}
