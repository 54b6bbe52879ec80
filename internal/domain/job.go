package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	JobStatusCreated    = "created"
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusSucceeded  = "succeeded"
	JobStatusFailed     = "failed"

	SourceTypeLocalFile   = "local_file"
	SourceTypeS3Presigned = "s3_presigned"
)

// Render parameter bounds. Percentages mirror the slider ranges of the
// desktop inspector this service grew out of.
const (
	MinBrightnessPct = 0
	MaxBrightnessPct = 200
	MinScalePct      = 1
	MaxScalePct      = 400
)

type CreateJobRequest struct {
	SourceType string       `json:"source_type"`
	UserID     string       `json:"user_id,omitempty"`
	WebhookURL string       `json:"webhook_url,omitempty"`
	ObjectKey  string       `json:"object_key,omitempty"`
	Steps      []RenderStep `json:"steps"`
}

// RenderStep describes one output variant. Each step is rendered from
// the decoded original, never from another step's output, in the order
// brightness, channel mask, scale. Nil parameters mean "leave as is".
type RenderStep struct {
	ID            string       `json:"id"`
	BrightnessPct *int         `json:"brightness_pct,omitempty"`
	Channels      *ChannelMask `json:"channels,omitempty"`
	ScalePct      *int         `json:"scale_pct,omitempty"`
	Format        string       `json:"format,omitempty"` // bmp (default), png, webp
}

// ChannelMask toggles the visibility of each color channel.
type ChannelMask struct {
	Red   bool `json:"red"`
	Green bool `json:"green"`
	Blue  bool `json:"blue"`
}

type Job struct {
	ID         string
	UserID     string
	Status     string
	SourceType string
	WebhookURL string
	Steps      []RenderStep
	ObjectKey  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r CreateJobRequest) Validate() error {
	sourceType := strings.ToLower(strings.TrimSpace(r.SourceType))
	if sourceType == "" {
		return errors.New("source_type is required")
	}
	if sourceType != SourceTypeLocalFile && sourceType != SourceTypeS3Presigned {
		return fmt.Errorf("unsupported source_type: %s", r.SourceType)
	}
	if sourceType == SourceTypeLocalFile && strings.TrimSpace(r.ObjectKey) == "" {
		return errors.New("object_key is required for source_type=local_file")
	}
	if len(r.Steps) == 0 {
		return errors.New("steps must contain at least one render step")
	}
	for i, step := range r.Steps {
		if err := step.Validate(); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}

func (s RenderStep) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("id is required")
	}
	if s.BrightnessPct != nil {
		if *s.BrightnessPct < MinBrightnessPct || *s.BrightnessPct > MaxBrightnessPct {
			return fmt.Errorf("brightness_pct must be between %d and %d", MinBrightnessPct, MaxBrightnessPct)
		}
	}
	if s.ScalePct != nil {
		if *s.ScalePct < MinScalePct || *s.ScalePct > MaxScalePct {
			return fmt.Errorf("scale_pct must be between %d and %d", MinScalePct, MaxScalePct)
		}
	}
	switch strings.ToLower(strings.TrimSpace(s.Format)) {
	case "", "bmp", "png", "webp":
	default:
		return fmt.Errorf("unsupported format: %s", s.Format)
	}
	return nil
}
