package bmp

import (
	"fmt"
	"os"
)

// Parser reads BMP header metadata from a file on disk. It has a
// two-state lifecycle: accessors return ErrNotParsed until Parse has
// succeeded. The file handle is opened and closed within each call;
// nothing stays open between calls.
type Parser struct {
	path       string
	fileHeader FileHeader
	infoHeader InfoHeader
	parsed     bool
}

// NewParser returns an unparsed Parser for path.
func NewParser(path string) *Parser {
	return &Parser{path: path}
}

// Path returns the file path the parser was created with.
func (p *Parser) Path() string { return p.path }

// Parsed reports whether Parse has completed successfully.
func (p *Parser) Parsed() bool { return p.parsed }

// Parse opens the file, reads and validates both headers, and closes
// the file again. A failed parse leaves the parser in the unparsed
// state.
func (p *Parser) Parse() error {
	f, err := os.Open(p.path)
	if err != nil {
		return fmt.Errorf("open bmp file: %w", err)
	}
	defer f.Close()

	fh, ih, err := DecodeHeaders(f)
	if err != nil {
		return err
	}

	p.fileHeader = fh
	p.infoHeader = ih
	p.parsed = true
	return nil
}

// FileHeader returns the parsed file header.
func (p *Parser) FileHeader() (FileHeader, error) {
	if !p.parsed {
		return FileHeader{}, ErrNotParsed
	}
	return p.fileHeader, nil
}

// InfoHeader returns the parsed info header.
func (p *Parser) InfoHeader() (InfoHeader, error) {
	if !p.parsed {
		return InfoHeader{}, ErrNotParsed
	}
	return p.infoHeader, nil
}

// DecodePixels reopens the file and decodes the pixel array into a
// top-down RGB buffer. Parse must have succeeded first.
func (p *Parser) DecodePixels() (PixelBuffer, error) {
	if !p.parsed {
		return nil, ErrNotParsed
	}

	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open bmp file: %w", err)
	}
	defer f.Close()

	return decodePixels(f, p.fileHeader, p.infoHeader)
}
