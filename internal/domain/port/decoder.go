package port

import (
	"context"

	"github.com/erik893/video-frame-extractor/internal/domain/entity"
)

// DurationProber reports the playable duration of a local media file.
type DurationProber interface {
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

// FrameRenderer materializes one still per instant. Rendering is
// best-effort: an instant whose render fails is omitted, so the result
// may be shorter than timestamps.
type FrameRenderer interface {
	RenderFrames(ctx context.Context, videoPath string, timestamps []float64, maxWidth int, outputDir string) []entity.FrameArtifact
}
