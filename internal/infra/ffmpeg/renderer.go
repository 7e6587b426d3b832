package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/erik893/video-frame-extractor/internal/domain/entity"
	"github.com/erik893/video-frame-extractor/internal/infra/metrics"
	"go.uber.org/zap"
)

// Renderer extracts one scaled still per instant. A failed instant is
// skipped, not propagated: partial frame coverage beats aborting the
// whole video.
type Renderer struct {
	format  string
	timeout time.Duration
	logger  *zap.Logger
}

func NewRenderer(format string, timeout time.Duration, logger *zap.Logger) *Renderer {
	return &Renderer{format: format, timeout: timeout, logger: logger}
}

func (r *Renderer) RenderFrames(ctx context.Context, videoPath string, timestamps []float64, maxWidth int, outputDir string) []entity.FrameArtifact {
	artifacts := make([]entity.FrameArtifact, 0, len(timestamps))

	for i, ts := range timestamps {
		outPath := filepath.Join(outputDir, fmt.Sprintf("frame_%04d.%s", i, r.format))
		if err := r.renderOne(ctx, videoPath, ts, maxWidth, outPath); err != nil {
			r.logger.Warn("frame render skipped",
				zap.Float64("timestamp", ts),
				zap.Error(err),
			)
			metrics.FramesSkippedTotal.Inc()
			continue
		}
		artifacts = append(artifacts, entity.FrameArtifact{
			Index:     len(artifacts),
			Timestamp: ts,
			LocalPath: outPath,
		})
	}

	metrics.FramesRenderedTotal.Add(float64(len(artifacts)))
	return artifacts
}

func (r *Renderer) renderOne(ctx context.Context, videoPath string, timestamp float64, maxWidth int, outPath string) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", renderArgs(videoPath, timestamp, maxWidth, outPath)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg error: %w, output: %s", err, string(output))
	}

	// ffmpeg can exit zero without writing a frame, e.g. seeking past
	// the last keyframe.
	info, err := os.Stat(outPath)
	if err != nil {
		return fmt.Errorf("no output frame at %.3fs: %w", timestamp, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("empty output frame at %.3fs", timestamp)
	}
	return nil
}

// renderArgs builds the ffmpeg invocation for a single still. Width is
// capped at maxWidth, height follows the aspect ratio rounded to an
// even value as most encoders require.
func renderArgs(videoPath string, timestamp float64, maxWidth int, outPath string) []string {
	return []string{
		"-ss", strconv.FormatFloat(timestamp, 'f', 3, 64),
		"-i", videoPath,
		"-frames:v", "1",
		"-vf", fmt.Sprintf("scale='min(%d,iw)':-2", maxWidth),
		"-y",
		outPath,
	}
}
