package bmp

// Channel indices within a Pixel.
const (
	R = 0
	G = 1
	B = 2
)

// Pixel holds one RGB sample triple.
type Pixel [3]uint8

// PixelBuffer is a decoded image indexed [row][col][channel], rows
// top-down. Transforms never mutate a buffer in place; they allocate
// and return a new one.
type PixelBuffer [][]Pixel

// NewPixelBuffer allocates a zeroed width×height buffer.
func NewPixelBuffer(width, height int) PixelBuffer {
	rows := make(PixelBuffer, height)
	for y := range rows {
		rows[y] = make([]Pixel, width)
	}
	return rows
}

// Height returns the number of rows.
func (p PixelBuffer) Height() int { return len(p) }

// Width returns the number of columns.
func (p PixelBuffer) Width() int {
	if len(p) == 0 {
		return 0
	}
	return len(p[0])
}

// Clone returns a deep copy of the buffer.
func (p PixelBuffer) Clone() PixelBuffer {
	out := make(PixelBuffer, len(p))
	for y, row := range p {
		out[y] = make([]Pixel, len(row))
		copy(out[y], row)
	}
	return out
}

// Equal reports whether two buffers have identical dimensions and
// pixel values.
func (p PixelBuffer) Equal(other PixelBuffer) bool {
	if len(p) != len(other) {
		return false
	}
	for y, row := range p {
		if len(row) != len(other[y]) {
			return false
		}
		for x, px := range row {
			if px != other[y][x] {
				return false
			}
		}
	}
	return true
}
