package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/dunamismax/bmpflow/internal/bmp"
)

// handleInspect parses the headers of a bitmap posted as the raw request
// body and returns a structured summary. Pixel data past the headers is
// never read, so inspecting a large file costs 54 bytes of decoding.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	limited := http.MaxBytesReader(w, r.Body, s.maxInspectBytes)
	defer r.Body.Close()

	fileHeader, infoHeader, err := bmp.DecodeHeaders(limited)
	if err != nil {
		status := http.StatusUnprocessableEntity
		result := "invalid"
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
			result = "too_large"
		}
		s.metrics.inspectTotal.WithLabelValues(result).Inc()
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	s.metrics.inspectTotal.WithLabelValues("ok").Inc()

	// Drain the rest so keep-alive connections stay reusable.
	_, _ = io.Copy(io.Discard, limited)

	renderable := infoHeader.BitCount == 24 && infoHeader.Compression == bmp.CompressionRGB

	writeJSON(w, http.StatusOK, map[string]any{
		"file_header": map[string]any{
			"signature":     string(fileHeader.Signature[:]),
			"file_size":     fileHeader.FileSize,
			"file_size_str": bmp.FormatFileSize(fileHeader.FileSize),
			"pixel_offset":  fileHeader.PixelOffset,
		},
		"info_header": map[string]any{
			"header_size":      infoHeader.HeaderSize,
			"width":            infoHeader.Width,
			"height":           infoHeader.Height,
			"abs_height":       infoHeader.AbsHeight(),
			"top_down":         infoHeader.TopDown(),
			"planes":           infoHeader.Planes,
			"bit_count":        infoHeader.BitCount,
			"color_depth":      bmp.ColorDepthName(infoHeader.BitCount),
			"compression":      infoHeader.Compression,
			"compression_name": bmp.CompressionName(infoHeader.Compression),
			"size_image":       infoHeader.SizeImage,
			"row_stride":       infoHeader.Stride(),
			"colors_used":      infoHeader.ColorsUsed,
			"colors_important": infoHeader.ColorsImportant,
		},
		"renderable": renderable,
	})
}
