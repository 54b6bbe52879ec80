package container

import (
	"encoding/binary"
	"fmt"
)

const (
	lz77Window   = 4096
	lz77MinMatch = 3
	lz77MaxMatch = 255
)

// lz77Compress emits a flag-byte stream: 0 followed by a literal, or
// 1 followed by a big-endian 2-byte distance and a 1-byte match length.
func lz77Compress(data []byte) []byte {
	out := make([]byte, 0, len(data)/2+16)
	i := 0
	for i < len(data) {
		windowStart := i - lz77Window
		if windowStart < 0 {
			windowStart = 0
		}

		matchLen, matchDist := 0, 0
		for dist := 1; dist <= i-windowStart; dist++ {
			j := 0
			for j < lz77MaxMatch && i+j < len(data) && data[i-dist+j] == data[i+j] {
				j++
			}
			if j > matchLen {
				matchLen, matchDist = j, dist
			}
		}

		if matchLen >= lz77MinMatch {
			var dist [2]byte
			binary.BigEndian.PutUint16(dist[:], uint16(matchDist))
			out = append(out, 1, dist[0], dist[1], byte(matchLen))
			i += matchLen
		} else {
			out = append(out, 0, data[i])
			i++
		}
	}
	return out
}

// lz77Decompress reverses lz77Compress, validating every token against
// the output produced so far.
func lz77Decompress(data []byte) ([]byte, error) {
	var out []byte
	i := 0
	for i < len(data) {
		flag := data[i]
		i++
		switch flag {
		case 0:
			if i >= len(data) {
				return nil, fmt.Errorf("%w: dangling literal flag", ErrCorrupted)
			}
			out = append(out, data[i])
			i++
		case 1:
			if i+2 >= len(data) {
				return nil, fmt.Errorf("%w: dangling match token", ErrCorrupted)
			}
			dist := int(binary.BigEndian.Uint16(data[i : i+2]))
			length := int(data[i+2])
			i += 3
			if dist == 0 || length == 0 || dist > len(out) {
				return nil, fmt.Errorf("%w: match outside window", ErrCorrupted)
			}
			start := len(out) - dist
			for j := 0; j < length; j++ {
				out = append(out, out[start+j])
			}
		default:
			return nil, fmt.Errorf("%w: invalid flag byte %d", ErrCorrupted, flag)
		}
	}
	return out, nil
}
