package pipeline

import (
	"github.com/dunamismax/bmpflow/internal/bmp"
	"github.com/dunamismax/bmpflow/internal/domain"
	"github.com/dunamismax/bmpflow/internal/transform"
)

// renderStep applies the step's adjustments in a fixed order: brightness,
// then channel masking, then scaling. Unset adjustments are skipped.
func renderStep(src bmp.PixelBuffer, step domain.RenderStep) (bmp.PixelBuffer, error) {
	out := src

	if step.BrightnessPct != nil {
		factor := float64(*step.BrightnessPct) / 100
		adjusted, err := transform.Brightness(out, factor)
		if err != nil {
			return nil, err
		}
		out = adjusted
	}

	if step.Channels != nil {
		out = transform.Channels(out, step.Channels.Red, step.Channels.Green, step.Channels.Blue)
	}

	if step.ScalePct != nil {
		factor := float64(*step.ScalePct) / 100
		scaled, err := transform.Scale(out, factor)
		if err != nil {
			return nil, err
		}
		out = scaled
	}

	// A step with no adjustments still emits a copy of the original.
	if step.BrightnessPct == nil && step.Channels == nil && step.ScalePct == nil {
		out = src.Clone()
	}

	return out, nil
}
