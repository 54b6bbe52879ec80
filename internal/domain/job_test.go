package domain

import (
	"strings"
	"testing"
)

func intp(v int) *int { return &v }

func TestCreateJobRequestValidate(t *testing.T) {
	valid := CreateJobRequest{
		SourceType: SourceTypeS3Presigned,
		Steps: []RenderStep{
			{ID: "half_bright", BrightnessPct: intp(50)},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid request, got error: %v", err)
	}

	if err := (CreateJobRequest{}).Validate(); err == nil {
		t.Fatal("expected validation error for empty request")
	}

	missingObjectKey := CreateJobRequest{
		SourceType: SourceTypeLocalFile,
		Steps:      []RenderStep{{ID: "thumb"}},
	}
	if err := missingObjectKey.Validate(); err == nil {
		t.Fatal("expected validation error for local_file without object_key")
	}

	unsupportedSource := CreateJobRequest{
		SourceType: "ftp",
		Steps:      []RenderStep{{ID: "thumb"}},
	}
	if err := unsupportedSource.Validate(); err == nil {
		t.Fatal("expected validation error for unsupported source_type")
	}
}

func TestRenderStepValidate(t *testing.T) {
	if err := (RenderStep{ID: "ok", ScalePct: intp(50), Format: "png"}).Validate(); err != nil {
		t.Fatalf("expected valid step, got error: %v", err)
	}

	if err := (RenderStep{}).Validate(); err == nil {
		t.Fatal("expected error for missing id")
	}

	tooBright := RenderStep{ID: "x", BrightnessPct: intp(250)}
	if err := tooBright.Validate(); err == nil || !strings.Contains(err.Error(), "brightness_pct") {
		t.Fatalf("expected brightness range error, got %v", err)
	}

	zeroScale := RenderStep{ID: "x", ScalePct: intp(0)}
	if err := zeroScale.Validate(); err == nil || !strings.Contains(err.Error(), "scale_pct") {
		t.Fatalf("expected scale range error, got %v", err)
	}

	badFormat := RenderStep{ID: "x", Format: "gif"}
	if err := badFormat.Validate(); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
