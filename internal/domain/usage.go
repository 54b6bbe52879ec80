package domain

import "time"

// UsageLog is one per-job accounting record, written after a successful
// render. PixelsProcessed sums width*height over every emitted output;
// BytesSaved is the source bitmap size minus total output size, floored
// at zero.
type UsageLog struct {
	UserID          string
	JobID           string
	PixelsProcessed int64
	BytesSaved      int64
	ComputeTimeMS   int64
	CreatedAt       time.Time
}
