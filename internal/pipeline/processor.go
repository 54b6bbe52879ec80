// Package pipeline runs render jobs: fetch the source bitmap, decode it
// once, apply each render step to the original pixels, and emit one output
// per step.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dunamismax/bmpflow/internal/bmp"
	"github.com/dunamismax/bmpflow/internal/domain"
)

const SourceTypeLocalFile = domain.SourceTypeLocalFile

var ErrUnsupportedSourceType = errors.New("unsupported source_type")

type Request struct {
	JobID      string
	SourceType string
	ObjectKey  string
	Steps      []domain.RenderStep
}

type Output struct {
	StepID  string
	Format  string
	Path    string
	Bytes   int
	Width   int
	Height  int
	Success bool
}

type Result struct {
	SourceWidth  int
	SourceHeight int
	SourceBytes  int
	Outputs      []Output
}

type Fetcher interface {
	Fetch(ctx context.Context, req Request) ([]byte, error)
}

type Emitter interface {
	Emit(ctx context.Context, req Request, step domain.RenderStep, data []byte, format string, width, height int) (Output, error)
}

type Processor struct {
	fetcher Fetcher
	encoder Encoder
	emitter Emitter
}

func NewProcessor(fetcher Fetcher, emitter Emitter) (*Processor, error) {
	if fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	if emitter == nil {
		return nil, errors.New("emitter is required")
	}

	encoder, err := newEncoder()
	if err != nil {
		return nil, fmt.Errorf("build encoder: %w", err)
	}

	return &Processor{fetcher: fetcher, encoder: encoder, emitter: emitter}, nil
}

func NewLocalProcessor(outputDir string) (*Processor, error) {
	return NewProcessor(LocalFileFetcher{}, LocalFileEmitter{OutputDir: outputDir})
}

// Process renders every step of the request. Steps are independent: each
// one starts from the decoded original, never from another step's output.
func (p *Processor) Process(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.JobID) == "" {
		return Result{}, errors.New("job_id is required")
	}
	if len(req.Steps) == 0 {
		return Result{}, errors.New("job must contain at least one render step")
	}

	sourceBytes, err := p.fetcher.Fetch(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("fetch stage: %w", err)
	}

	img, err := bmp.Decode(bytes.NewReader(sourceBytes))
	if err != nil {
		return Result{}, fmt.Errorf("decode source bitmap: %w", err)
	}

	result := Result{
		SourceWidth:  img.Pixels.Width(),
		SourceHeight: img.Pixels.Height(),
		SourceBytes:  len(sourceBytes),
		Outputs:      make([]Output, 0, len(req.Steps)),
	}
	for _, step := range req.Steps {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		rendered, err := renderStep(img.Pixels, step)
		if err != nil {
			return Result{}, fmt.Errorf("render stage step=%s: %w", step.ID, err)
		}

		format := normalizeOutputFormat(step.Format)
		data, err := p.encoder.Encode(rendered, format)
		if err != nil {
			return Result{}, fmt.Errorf("encode stage step=%s format=%s: %w", step.ID, format, err)
		}

		written, err := p.emitter.Emit(ctx, req, step, data, format, rendered.Width(), rendered.Height())
		if err != nil {
			return Result{}, fmt.Errorf("emit stage step=%s: %w", step.ID, err)
		}
		result.Outputs = append(result.Outputs, written)
	}

	return result, nil
}

type LocalFileFetcher struct{}

func (LocalFileFetcher) Fetch(ctx context.Context, req Request) ([]byte, error) {
	if !strings.EqualFold(req.SourceType, SourceTypeLocalFile) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSourceType, req.SourceType)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(req.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("read input file %s: %w", req.ObjectKey, err)
	}
	return data, nil
}

type LocalFileEmitter struct {
	OutputDir string
}

func (e LocalFileEmitter) Emit(_ context.Context, req Request, step domain.RenderStep, data []byte, format string, width, height int) (Output, error) {
	if strings.TrimSpace(e.OutputDir) == "" {
		return Output{}, errors.New("output directory is required")
	}
	if strings.TrimSpace(step.ID) == "" {
		return Output{}, errors.New("render step id is required")
	}

	jobDir := filepath.Join(e.OutputDir, sanitizePathToken(req.JobID))
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return Output{}, fmt.Errorf("create output dir: %w", err)
	}

	filename := fmt.Sprintf("%s.%s", sanitizePathToken(step.ID), format)
	fullPath := filepath.Join(jobDir, filename)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return Output{}, fmt.Errorf("write output file: %w", err)
	}

	return Output{
		StepID:  step.ID,
		Format:  format,
		Path:    fullPath,
		Bytes:   len(data),
		Width:   width,
		Height:  height,
		Success: true,
	}, nil
}

func sanitizePathToken(in string) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return "unknown"
	}

	var b strings.Builder
	b.Grow(len(in))
	for _, r := range in {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
