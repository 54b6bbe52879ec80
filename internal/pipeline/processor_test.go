package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/dunamismax/bmpflow/internal/bmp"
	"github.com/dunamismax/bmpflow/internal/domain"
)

func writeSourceBitmap(t *testing.T, dir string, pixels bmp.PixelBuffer) string {
	t.Helper()

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, pixels); err != nil {
		t.Fatalf("encode source bitmap: %v", err)
	}

	path := filepath.Join(dir, "source.bmp")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write source bitmap: %v", err)
	}
	return path
}

func gradientPixels(width, height int) bmp.PixelBuffer {
	pixels := bmp.NewPixelBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixels[y][x] = bmp.Pixel{uint8(40 * x), uint8(40 * y), 200}
		}
	}
	return pixels
}

func TestProcessRendersEachStepFromOriginal(t *testing.T) {
	dir := t.TempDir()
	src := gradientPixels(4, 4)
	sourcePath := writeSourceBitmap(t, dir, src)

	processor, err := NewLocalProcessor(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("NewLocalProcessor returned error: %v", err)
	}

	brightness := 200
	scale := 50
	req := Request{
		JobID:      "job-1",
		SourceType: SourceTypeLocalFile,
		ObjectKey:  sourcePath,
		Steps: []domain.RenderStep{
			{ID: "doubled", BrightnessPct: &brightness, Format: "bmp"},
			{ID: "half_size", ScalePct: &scale, Format: "bmp"},
		},
	}

	result, err := processor.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if result.SourceWidth != 4 || result.SourceHeight != 4 {
		t.Fatalf("unexpected source dimensions %dx%d", result.SourceWidth, result.SourceHeight)
	}
	if len(result.Outputs) != 2 {
		t.Fatalf("expected 2 outputs, got %d", len(result.Outputs))
	}

	// First step doubles brightness and must not be affected by the
	// second step's scaling.
	doubled := result.Outputs[0]
	if doubled.Width != 4 || doubled.Height != 4 {
		t.Fatalf("brightness output resized to %dx%d", doubled.Width, doubled.Height)
	}
	data, err := os.ReadFile(doubled.Path)
	if err != nil {
		t.Fatalf("read brightness output: %v", err)
	}
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode brightness output: %v", err)
	}
	if got := img.Pixels[0][1]; got != (bmp.Pixel{80, 0, 255}) {
		t.Fatalf("unexpected doubled pixel: %v", got)
	}

	half := result.Outputs[1]
	if half.Width != 2 || half.Height != 2 {
		t.Fatalf("scale output has dimensions %dx%d, want 2x2", half.Width, half.Height)
	}
}

func TestProcessDecodesPNGOutput(t *testing.T) {
	dir := t.TempDir()
	sourcePath := writeSourceBitmap(t, dir, gradientPixels(3, 2))

	processor, err := NewLocalProcessor(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("NewLocalProcessor returned error: %v", err)
	}

	req := Request{
		JobID:      "job-png",
		SourceType: SourceTypeLocalFile,
		ObjectKey:  sourcePath,
		Steps:      []domain.RenderStep{{ID: "copy", Format: "png"}},
	}

	result, err := processor.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	data, err := os.ReadFile(result.Outputs[0].Path)
	if err != nil {
		t.Fatalf("read png output: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png output: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("png output has bounds %v", img.Bounds())
	}

	r, g, b, _ := img.At(1, 0).RGBA()
	if uint8(r>>8) != 40 || uint8(g>>8) != 0 || uint8(b>>8) != 200 {
		t.Fatalf("unexpected png pixel: %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestProcessRejectsNonBitmapSource(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "not-a-bitmap.bmp")
	if err := os.WriteFile(sourcePath, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	processor, err := NewLocalProcessor(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("NewLocalProcessor returned error: %v", err)
	}

	_, err = processor.Process(context.Background(), Request{
		JobID:      "job-bad",
		SourceType: SourceTypeLocalFile,
		ObjectKey:  sourcePath,
		Steps:      []domain.RenderStep{{ID: "copy"}},
	})
	if err == nil {
		t.Fatal("expected decode error for non-bitmap source")
	}
}

func TestProcessRequiresSteps(t *testing.T) {
	processor, err := NewLocalProcessor(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalProcessor returned error: %v", err)
	}

	_, err = processor.Process(context.Background(), Request{
		JobID:      "job-empty",
		SourceType: SourceTypeLocalFile,
		ObjectKey:  "ignored.bmp",
	})
	if err == nil {
		t.Fatal("expected error for request with no steps")
	}
}

func TestSanitizePathToken(t *testing.T) {
	if got := sanitizePathToken("../etc/passwd"); got != "___etc_passwd" {
		t.Fatalf("unexpected sanitized token %q", got)
	}
	if got := sanitizePathToken("  "); got != "unknown" {
		t.Fatalf("unexpected sanitized token %q", got)
	}
}
