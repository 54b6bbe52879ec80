package transform

import (
	"errors"
	"testing"

	"github.com/dunamismax/bmpflow/internal/bmp"
)

func gradientBuffer(w, h int) bmp.PixelBuffer {
	buf := bmp.NewPixelBuffer(w, h)
	for y := range buf {
		for x := range buf[y] {
			buf[y][x] = bmp.Pixel{uint8(40*x + 10*y), uint8(200 - 30*x), uint8(15 * y)}
		}
	}
	return buf
}

func TestBrightnessIdentity(t *testing.T) {
	src := gradientBuffer(4, 3)

	out, err := Brightness(src, 1.0)
	if err != nil {
		t.Fatalf("brightness returned error: %v", err)
	}
	if !out.Equal(src) {
		t.Fatal("factor 1.0 must be the identity transform")
	}
}

func TestBrightnessDoesNotMutateInput(t *testing.T) {
	src := gradientBuffer(2, 2)
	snapshot := src.Clone()

	if _, err := Brightness(src, 0.25); err != nil {
		t.Fatalf("brightness returned error: %v", err)
	}
	if !src.Equal(snapshot) {
		t.Fatal("brightness mutated its input buffer")
	}
}

func TestBrightnessClampsAndTruncates(t *testing.T) {
	src := bmp.PixelBuffer{{bmp.Pixel{200, 255, 3}}}

	out, err := Brightness(src, 2.0)
	if err != nil {
		t.Fatalf("brightness returned error: %v", err)
	}
	if out[0][0] != (bmp.Pixel{255, 255, 6}) {
		t.Fatalf("expected {255 255 6}, got %v", out[0][0])
	}

	// 255*0.5 = 127.5 truncates toward zero.
	half, err := Brightness(bmp.PixelBuffer{{bmp.Pixel{255, 255, 255}}}, 0.5)
	if err != nil {
		t.Fatalf("brightness returned error: %v", err)
	}
	if half[0][0] != (bmp.Pixel{127, 127, 127}) {
		t.Fatalf("expected {127 127 127}, got %v", half[0][0])
	}
}

func TestBrightnessOutputStaysInRange(t *testing.T) {
	src := gradientBuffer(5, 5)
	for _, factor := range []float64{0, 0.3, 1, 1.9, 50} {
		out, err := Brightness(src, factor)
		if err != nil {
			t.Fatalf("brightness(%v) returned error: %v", factor, err)
		}
		// uint8 storage already bounds the values; verify scaling
		// direction instead of re-checking the type system.
		if factor == 0 {
			for y := range out {
				for x := range out[y] {
					if out[y][x] != (bmp.Pixel{}) {
						t.Fatalf("factor 0 must produce black, got %v", out[y][x])
					}
				}
			}
		}
	}
}

func TestBrightnessRejectsNegativeFactor(t *testing.T) {
	if _, err := Brightness(gradientBuffer(1, 1), -0.1); !errors.Is(err, ErrNegativeFactor) {
		t.Fatalf("expected ErrNegativeFactor, got %v", err)
	}
}

func TestChannelsIdentity(t *testing.T) {
	src := gradientBuffer(4, 2)

	out := Channels(src, true, true, true)
	if !out.Equal(src) {
		t.Fatal("all-enabled mask must be the identity transform")
	}
}

func TestChannelsZeroesDisabledChannel(t *testing.T) {
	src := gradientBuffer(3, 3)
	snapshot := src.Clone()

	out := Channels(src, true, false, true)
	for y := range out {
		for x := range out[y] {
			if out[y][x][bmp.G] != 0 {
				t.Fatalf("green at (%d,%d) not zeroed: %v", x, y, out[y][x])
			}
			if out[y][x][bmp.R] != src[y][x][bmp.R] || out[y][x][bmp.B] != src[y][x][bmp.B] {
				t.Fatalf("enabled channels changed at (%d,%d): %v vs %v", x, y, out[y][x], src[y][x])
			}
		}
	}
	if !src.Equal(snapshot) {
		t.Fatal("channel filter mutated its input buffer")
	}
}

func TestScaleIdentity(t *testing.T) {
	src := gradientBuffer(6, 4)

	out, err := Scale(src, 1.0)
	if err != nil {
		t.Fatalf("scale returned error: %v", err)
	}
	if !out.Equal(src) {
		t.Fatal("factor 1.0 must preserve dimensions and values")
	}
}

func TestScaleDownsamples(t *testing.T) {
	src := gradientBuffer(4, 4)

	out, err := Scale(src, 0.5)
	if err != nil {
		t.Fatalf("scale returned error: %v", err)
	}
	if out.Width() != 2 || out.Height() != 2 {
		t.Fatalf("expected 2x2, got %dx%d", out.Width(), out.Height())
	}
	// Destination (1,1) samples source floor(1/0.5) = (2,2).
	if out[1][1] != src[2][2] {
		t.Fatalf("expected sample %v, got %v", src[2][2], out[1][1])
	}
}

func TestScaleUpsamplesInBounds(t *testing.T) {
	src := gradientBuffer(2, 2)

	out, err := Scale(src, 3.0)
	if err != nil {
		t.Fatalf("scale returned error: %v", err)
	}
	if out.Width() != 6 || out.Height() != 6 {
		t.Fatalf("expected 6x6, got %dx%d", out.Width(), out.Height())
	}
	if out[5][5] != src[1][1] {
		t.Fatalf("expected corner sample %v, got %v", src[1][1], out[5][5])
	}
}

func TestScaleFloorsDimensionsToOne(t *testing.T) {
	src := gradientBuffer(3, 3)

	out, err := Scale(src, 0.1)
	if err != nil {
		t.Fatalf("scale returned error: %v", err)
	}
	if out.Width() != 1 || out.Height() != 1 {
		t.Fatalf("expected 1x1, got %dx%d", out.Width(), out.Height())
	}
}

func TestScaleRejectsNonPositiveFactor(t *testing.T) {
	for _, factor := range []float64{0, -1} {
		if _, err := Scale(gradientBuffer(2, 2), factor); !errors.Is(err, ErrNonPositiveScale) {
			t.Fatalf("expected ErrNonPositiveScale for %v, got %v", factor, err)
		}
	}
}
