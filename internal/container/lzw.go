package container

import (
	"encoding/binary"
	"fmt"
)

// lzwCompress encodes data with a growing-dictionary LZW and packs the
// codes big-endian at a fixed width of 2, 3 or 4 bytes, chosen by the
// largest code emitted. The width is stored in the container header so
// decompression can unpack the stream.
func lzwCompress(data []byte) ([]byte, uint8, error) {
	dictionary := make(map[string]int, 512)
	for i := 0; i < 256; i++ {
		// string([]byte{...}), not string(i): converting the integer
		// would UTF-8 encode code points >= 0x80 into two bytes.
		dictionary[string([]byte{byte(i)})] = i
	}
	nextCode := 256

	var (
		codes   []int
		maxCode = 255
		w       []byte
	)
	for _, b := range data {
		wk := append(append([]byte{}, w...), b)
		if _, ok := dictionary[string(wk)]; ok {
			w = wk
			continue
		}
		code := dictionary[string(w)]
		codes = append(codes, code)
		if code > maxCode {
			maxCode = code
		}
		dictionary[string(wk)] = nextCode
		if nextCode > maxCode {
			maxCode = nextCode
		}
		nextCode++
		w = []byte{b}
	}
	if len(w) > 0 {
		code := dictionary[string(w)]
		codes = append(codes, code)
		if code > maxCode {
			maxCode = code
		}
	}

	var width uint8
	switch {
	case maxCode <= 0xFFFF:
		width = 2
	case maxCode <= 0xFFFFFF:
		width = 3
	default:
		width = 4
	}

	out := make([]byte, 0, len(codes)*int(width))
	var scratch [4]byte
	for _, code := range codes {
		binary.BigEndian.PutUint32(scratch[:], uint32(code))
		out = append(out, scratch[4-width:]...)
	}
	return out, width, nil
}

// lzwDecompress reverses lzwCompress given the stored code width.
func lzwDecompress(data []byte, width uint8) ([]byte, error) {
	if width < 2 || width > 4 {
		return nil, fmt.Errorf("%w: invalid LZW code width %d", ErrCorrupted, width)
	}
	if len(data)%int(width) != 0 {
		return nil, fmt.Errorf("%w: LZW stream length not a code multiple", ErrCorrupted)
	}
	if len(data) == 0 {
		return nil, nil
	}

	codes := make([]int, 0, len(data)/int(width))
	var scratch [4]byte
	for i := 0; i < len(data); i += int(width) {
		copy(scratch[4-width:], data[i:i+int(width)])
		codes = append(codes, int(binary.BigEndian.Uint32(scratch[:])))
		scratch = [4]byte{}
	}

	dictionary := make(map[int][]byte, 512)
	for i := 0; i < 256; i++ {
		dictionary[i] = []byte{byte(i)}
	}
	nextCode := 256

	if codes[0] > 255 {
		return nil, fmt.Errorf("%w: bad initial LZW code", ErrCorrupted)
	}
	w := dictionary[codes[0]]
	out := append([]byte{}, w...)

	for _, code := range codes[1:] {
		var entry []byte
		if cached, ok := dictionary[code]; ok {
			entry = cached
		} else if code == nextCode {
			entry = append(append([]byte{}, w...), w[0])
		} else {
			return nil, fmt.Errorf("%w: bad LZW code %d", ErrCorrupted, code)
		}
		out = append(out, entry...)
		dictionary[nextCode] = append(append([]byte{}, w...), entry[0])
		nextCode++
		w = entry
	}
	return out, nil
}
