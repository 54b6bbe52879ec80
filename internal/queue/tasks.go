package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dunamismax/bmpflow/internal/domain"
	"github.com/hibiken/asynq"
)

const TypeRenderBitmap = "bitmap:render"

type RenderBitmapPayload struct {
	JobID       string              `json:"job_id"`
	SourceType  string              `json:"source_type"`
	WebhookURL  string              `json:"webhook_url,omitempty"`
	ObjectKey   string              `json:"object_key"`
	Steps       []domain.RenderStep `json:"steps"`
	RequestedAt time.Time           `json:"requested_at"`
}

func NewRenderBitmapTask(payload RenderBitmapPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal render payload: %w", err)
	}
	return asynq.NewTask(TypeRenderBitmap, body), nil
}

func ParseRenderBitmapPayload(task *asynq.Task) (RenderBitmapPayload, error) {
	var payload RenderBitmapPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return RenderBitmapPayload{}, fmt.Errorf("unmarshal render payload: %w", err)
	}
	return payload, nil
}
