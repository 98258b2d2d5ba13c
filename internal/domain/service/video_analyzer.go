package service

import (
	"context"
	"io"

	"emotionai/internal/domain/entity"
)

// VideoAnalyzer proxies a recorded session video to the external
// emotion-analysis model and returns its structured result.
type VideoAnalyzer interface {
	// AnalyzeVideo uploads the video as multipart form data to the model
	// endpoint. Timeouts and connection failures map to the distinct upstream
	// error values; the call respects ctx cancellation.
	AnalyzeVideo(ctx context.Context, filename string, video io.Reader) (*entity.VideoAnalysis, error)
}
