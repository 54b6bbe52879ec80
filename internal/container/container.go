/*
Package container reads and writes CMPT files, a small compressed
container for raw pixel data.

Layout: the 4-byte magic "CMPT", a version byte, an algorithm id
(1 = LZW, 2 = LZ77), the LZW code width (unused for LZ77), the original
bits-per-pixel, then little-endian uint32 width, height and payload
length, followed by the compressed pixel bytes.
*/
package container

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/dunamismax/bmpflow/internal/bmp"
)

const (
	magic        = "CMPT"
	version      = 1
	pixelDepth   = 24
	headerLen    = 20
	maxDimension = 1 << 16
)

// Algorithm selects the payload codec.
type Algorithm uint8

const (
	AlgorithmLZW  Algorithm = 1
	AlgorithmLZ77 Algorithm = 2
)

var (
	ErrBadMagic  = errors.New("container: not a CMPT file")
	ErrCorrupted = errors.New("container: corrupted payload")
)

// Stats reports the effect of compression for one Save call.
type Stats struct {
	RawBytes        int
	CompressedBytes int // header included
}

// Ratio returns raw/compressed, or 0 when nothing was written.
func (s Stats) Ratio() float64 {
	if s.CompressedBytes == 0 {
		return 0
	}
	return float64(s.RawBytes) / float64(s.CompressedBytes)
}

// Save compresses pixels with the chosen algorithm and writes a CMPT
// stream to w.
func Save(w io.Writer, pixels bmp.PixelBuffer, alg Algorithm) (Stats, error) {
	width := pixels.Width()
	height := pixels.Height()
	if width == 0 || height == 0 {
		return Stats{}, errors.New("container: cannot save an empty pixel buffer")
	}

	raw := make([]byte, 0, width*height*3)
	for _, row := range pixels {
		for _, px := range row {
			raw = append(raw, px[bmp.R], px[bmp.G], px[bmp.B])
		}
	}

	var (
		payload   []byte
		codeWidth uint8
	)
	switch alg {
	case AlgorithmLZW:
		var err error
		payload, codeWidth, err = lzwCompress(raw)
		if err != nil {
			return Stats{}, err
		}
	case AlgorithmLZ77:
		payload = lz77Compress(raw)
	default:
		return Stats{}, fmt.Errorf("container: unsupported algorithm %d", alg)
	}

	var header [headerLen]byte
	copy(header[:4], magic)
	header[4] = version
	header[5] = byte(alg)
	header[6] = codeWidth
	header[7] = pixelDepth
	binary.LittleEndian.PutUint32(header[8:], uint32(width))
	binary.LittleEndian.PutUint32(header[12:], uint32(height))
	binary.LittleEndian.PutUint32(header[16:], uint32(len(payload)))

	if _, err := w.Write(header[:]); err != nil {
		return Stats{}, err
	}
	if _, err := w.Write(payload); err != nil {
		return Stats{}, err
	}

	return Stats{RawBytes: len(raw), CompressedBytes: headerLen + len(payload)}, nil
}

// Load reads a CMPT stream and returns the decoded pixel buffer.
func Load(r io.Reader) (bmp.PixelBuffer, error) {
	var header [headerLen]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, ErrBadMagic
	}
	if string(header[:4]) != magic {
		return nil, ErrBadMagic
	}
	if header[4] != version {
		return nil, fmt.Errorf("container: unsupported version %d", header[4])
	}
	alg := Algorithm(header[5])
	codeWidth := header[6]
	if header[7] != pixelDepth {
		return nil, fmt.Errorf("container: unsupported pixel depth %d", header[7])
	}

	width := binary.LittleEndian.Uint32(header[8:])
	height := binary.LittleEndian.Uint32(header[12:])
	payloadLen := binary.LittleEndian.Uint32(header[16:])
	if width == 0 || height == 0 || width > maxDimension || height > maxDimension {
		return nil, fmt.Errorf("container: invalid dimensions %dx%d", width, height)
	}

	// Cap the allocation before trusting the declared payload length.
	// LZ77 at worst doubles every byte and LZW emits at most one 4-byte
	// code per input byte, so anything past 4x the raw pixel size
	// cannot be a stream either codec produced.
	rawLen := int(width) * int(height) * 3
	if int64(payloadLen) > int64(4*rawLen) {
		return nil, fmt.Errorf("%w: payload length %d implausible for %dx%d", ErrCorrupted, payloadLen, width, height)
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: truncated payload", ErrCorrupted)
	}

	var (
		raw []byte
		err error
	)
	switch alg {
	case AlgorithmLZW:
		raw, err = lzwDecompress(payload, codeWidth)
	case AlgorithmLZ77:
		raw, err = lz77Decompress(payload)
	default:
		return nil, fmt.Errorf("container: unsupported algorithm %d", alg)
	}
	if err != nil {
		return nil, err
	}

	if len(raw) != int(width)*int(height)*3 {
		return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupted)
	}

	pixels := bmp.NewPixelBuffer(int(width), int(height))
	i := 0
	for y := range pixels {
		for x := range pixels[y] {
			pixels[y][x] = bmp.Pixel{raw[i], raw[i+1], raw[i+2]}
			i += 3
		}
	}
	return pixels, nil
}
