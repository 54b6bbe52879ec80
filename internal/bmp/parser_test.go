package bmp

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempBMP(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "image.bmp")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp bmp: %v", err)
	}
	return path
}

func TestParserLifecycle(t *testing.T) {
	p := NewParser(writeTempBMP(t, buildBMP(3, 2, false, coords)))

	if p.Parsed() {
		t.Fatal("parser should start unparsed")
	}
	if _, err := p.FileHeader(); !errors.Is(err, ErrNotParsed) {
		t.Fatalf("expected ErrNotParsed before parse, got %v", err)
	}
	if _, err := p.DecodePixels(); !errors.Is(err, ErrNotParsed) {
		t.Fatalf("expected ErrNotParsed before parse, got %v", err)
	}

	if err := p.Parse(); err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if !p.Parsed() {
		t.Fatal("parser should be parsed after Parse")
	}

	ih, err := p.InfoHeader()
	if err != nil {
		t.Fatalf("info header returned error: %v", err)
	}
	if ih.Width != 3 || ih.Height != 2 {
		t.Fatalf("expected 3x2, got %dx%d", ih.Width, ih.Height)
	}

	pixels, err := p.DecodePixels()
	if err != nil {
		t.Fatalf("decode pixels returned error: %v", err)
	}
	if pixels.Width() != 3 || pixels.Height() != 2 {
		t.Fatalf("expected 3x2 buffer, got %dx%d", pixels.Width(), pixels.Height())
	}
	if pixels[1][2] != coords(2, 1) {
		t.Fatalf("pixel (2,1) = %v, expected %v", pixels[1][2], coords(2, 1))
	}
}

func TestParseSignatureMismatchLeavesNoState(t *testing.T) {
	data := buildBMP(2, 2, false, white)
	data[1] = 'X'
	p := NewParser(writeTempBMP(t, data))

	err := p.Parse()
	var ferr FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if p.Parsed() {
		t.Fatal("failed parse must not mark parser as parsed")
	}
	if _, err := p.InfoHeader(); !errors.Is(err, ErrNotParsed) {
		t.Fatalf("expected ErrNotParsed after failed parse, got %v", err)
	}
}

func TestParseTruncatedFileHeader(t *testing.T) {
	p := NewParser(writeTempBMP(t, buildBMP(2, 2, false, white)[:9]))

	var ferr FormatError
	if err := p.Parse(); !errors.As(err, &ferr) {
		t.Fatalf("expected FormatError for truncated file header, got %v", err)
	}
}

func TestParseTruncatedInfoHeader(t *testing.T) {
	p := NewParser(writeTempBMP(t, buildBMP(2, 2, false, white)[:fileHeaderLen+12]))

	var ferr FormatError
	if err := p.Parse(); !errors.As(err, &ferr) {
		t.Fatalf("expected FormatError for truncated info header, got %v", err)
	}
}

func TestParseMissingFile(t *testing.T) {
	p := NewParser(filepath.Join(t.TempDir(), "missing.bmp"))
	if err := p.Parse(); err == nil {
		t.Fatal("expected error for missing file")
	}
}
