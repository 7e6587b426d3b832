package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/erik893/video-frame-extractor/internal/domain/entity"
	"github.com/erik893/video-frame-extractor/internal/domain/port"
	"github.com/erik893/video-frame-extractor/internal/domain/sampling"
	"github.com/erik893/video-frame-extractor/internal/infra/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ExtractOptions are the per-request knobs of a pipeline run.
type ExtractOptions struct {
	Sample entity.SampleConfig
	// ParentFolderID overrides the configured destination base for
	// resolver policies that honor it.
	ParentFolderID string
}

type ExtractFramesConfig struct {
	TempDir string
	// NotifyAddress receives an email on hard pipeline failure when
	// set and a notifier is wired.
	NotifyAddress   string
	DownloadTimeout time.Duration
	UploadTimeout   time.Duration
}

// ExtractFramesUseCase runs the single-video pipeline: download,
// probe, sample, render, resolve destination, upload, cleanup. It
// fails as a unit; only per-frame render losses are absorbed.
type ExtractFramesUseCase struct {
	storage   port.MediaStorage
	prober    port.DurationProber
	renderer  port.FrameRenderer
	resolver  port.DestinationResolver
	repo      port.RunRepository
	publisher port.EventPublisher
	notifier  port.FailureNotifier
	logger    *zap.Logger
	cfg       ExtractFramesConfig
}

// NewExtractFramesUseCase wires the pipeline. repo, publisher and
// notifier may be nil; persistence and event emission are advisory and
// never fail a run.
func NewExtractFramesUseCase(
	storage port.MediaStorage,
	prober port.DurationProber,
	renderer port.FrameRenderer,
	resolver port.DestinationResolver,
	repo port.RunRepository,
	publisher port.EventPublisher,
	notifier port.FailureNotifier,
	logger *zap.Logger,
	cfg ExtractFramesConfig,
) *ExtractFramesUseCase {
	return &ExtractFramesUseCase{
		storage:   storage,
		prober:    prober,
		renderer:  renderer,
		resolver:  resolver,
		repo:      repo,
		publisher: publisher,
		notifier:  notifier,
		logger:    logger,
		cfg:       cfg,
	}
}

func (uc *ExtractFramesUseCase) Execute(ctx context.Context, fileID string, opts ExtractOptions) (*entity.PipelineResult, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, fmt.Errorf("empty file id")
	}
	opts.Sample = opts.Sample.Normalized()

	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "ExtractFramesUseCase.Execute")
	defer span.End()
	span.SetAttributes(
		attribute.String("file_id", fileID),
		attribute.Int("requested_frames", opts.Sample.FrameCount),
	)

	totalTimer := time.Now()
	metrics.ActivePipelines.Inc()
	defer metrics.ActivePipelines.Dec()

	run := entity.NewSamplingRun(fileID, opts.Sample.FrameCount)
	log := uc.logger.With(
		zap.String("run_id", run.ID.String()),
		zap.String("file_id", fileID),
	)

	uc.recordCreate(ctx, run, log)
	run.MarkProcessing()
	uc.recordUpdate(ctx, run, log)

	result, err := uc.runPipeline(ctx, run, fileID, opts, log)
	if err != nil {
		return nil, uc.fail(ctx, run, err, log)
	}

	run.MarkCompleted(result.DestinationFolder, len(result.StoredFrameIDs), result.DurationSeconds)
	uc.recordUpdate(ctx, run, log)
	uc.publishEvent(ctx, run, log)

	metrics.PipelinesTotal.WithLabelValues("completed").Inc()
	metrics.PipelineStageDuration.WithLabelValues("total").Observe(time.Since(totalTimer).Seconds())

	log.Info("run completed",
		zap.Int("stored_frames", len(result.StoredFrameIDs)),
		zap.Int("requested_frames", result.RequestedFrames),
		zap.Float64("duration_secs", result.DurationSeconds),
		zap.String("destination", result.DestinationFolder),
	)

	return result, nil
}

func (uc *ExtractFramesUseCase) runPipeline(
	ctx context.Context,
	run *entity.SamplingRun,
	fileID string,
	opts ExtractOptions,
	log *zap.Logger,
) (*entity.PipelineResult, error) {
	tracer := otel.Tracer("usecase")

	// Scoped working area, exclusively owned by this run.
	workDir := filepath.Join(uc.cfg.TempDir, run.ID.String())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("create workdir: %w", err)
	}
	defer os.RemoveAll(workDir)

	// Download.
	dlStart := time.Now()
	dlCtx, spanDl := tracer.Start(ctx, "download_video")
	dlCtx, cancelDl := withTimeout(dlCtx, uc.cfg.DownloadTimeout)
	videoPath := filepath.Join(workDir, "source"+path.Ext(fileID))
	err := uc.storage.Download(dlCtx, fileID, videoPath)
	cancelDl()
	spanDl.End()
	if err != nil {
		return nil, fmt.Errorf("download video: %w", err)
	}
	metrics.PipelineStageDuration.WithLabelValues("download").Observe(time.Since(dlStart).Seconds())

	// Probe. Duration is advisory: a probe failure degrades to 0 and
	// the sampler falls back to the start of the video.
	prCtx, spanPr := tracer.Start(ctx, "probe_duration")
	duration, err := uc.prober.ProbeDuration(prCtx, videoPath)
	spanPr.End()
	if err != nil {
		log.Warn("duration probe failed, sampling from start only", zap.Error(err))
		duration = 0
	}

	timestamps := sampling.Timestamps(duration, opts.Sample.FrameCount, opts.Sample.MinGapSec)

	// Render, best-effort per instant.
	renStart := time.Now()
	renCtx, spanRen := tracer.Start(ctx, "render_frames")
	framesDir := filepath.Join(workDir, "frames")
	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		spanRen.End()
		return nil, fmt.Errorf("create frames dir: %w", err)
	}
	artifacts := uc.renderer.RenderFrames(renCtx, videoPath, timestamps, opts.Sample.MaxWidth, framesDir)
	spanRen.End()
	metrics.PipelineStageDuration.WithLabelValues("render").Observe(time.Since(renStart).Seconds())
	if len(artifacts) < len(timestamps) {
		log.Warn("partial render coverage",
			zap.Int("requested", len(timestamps)),
			zap.Int("rendered", len(artifacts)),
		)
	}

	// Destination.
	destFolder, err := uc.resolver.Resolve(ctx, fileID, opts.ParentFolderID)
	if err != nil {
		return nil, fmt.Errorf("resolve destination: %w", err)
	}

	// Upload in sequence order. Unlike renders, uploads are not
	// best-effort: a missing stored frame would be a misleading result.
	upStart := time.Now()
	upCtx, spanUp := tracer.Start(ctx, "upload_frames")
	storedIDs, err := uc.uploadFrames(upCtx, fileID, destFolder, artifacts)
	spanUp.End()
	if err != nil {
		return nil, err
	}
	metrics.PipelineStageDuration.WithLabelValues("upload").Observe(time.Since(upStart).Seconds())

	return &entity.PipelineResult{
		FileID:            fileID,
		DurationSeconds:   duration,
		RequestedFrames:   opts.Sample.FrameCount,
		StoredFrameIDs:    storedIDs,
		DestinationFolder: destFolder,
	}, nil
}

func (uc *ExtractFramesUseCase) uploadFrames(ctx context.Context, fileID, destFolder string, artifacts []entity.FrameArtifact) ([]string, error) {
	stem := strings.TrimSuffix(path.Base(fileID), path.Ext(fileID))
	storedIDs := make([]string, 0, len(artifacts))

	for _, artifact := range artifacts {
		f, err := os.Open(artifact.LocalPath)
		if err != nil {
			return nil, fmt.Errorf("open frame %d: %w", artifact.Index, err)
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("stat frame %d: %w", artifact.Index, err)
		}

		ext := filepath.Ext(artifact.LocalPath)
		name := fmt.Sprintf("%s_frame_%04d%s", stem, artifact.Index, ext)

		upCtx, cancel := withTimeout(ctx, uc.cfg.UploadTimeout)
		id, err := uc.storage.Upload(upCtx, destFolder, name, f, info.Size(), frameContentType(ext))
		cancel()
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("upload frame %d: %w", artifact.Index, err)
		}
		storedIDs = append(storedIDs, id)
	}
	return storedIDs, nil
}

func (uc *ExtractFramesUseCase) fail(ctx context.Context, run *entity.SamplingRun, err error, log *zap.Logger) error {
	run.MarkFailed(err.Error())
	uc.recordUpdate(ctx, run, log)
	uc.publishEvent(ctx, run, log)
	metrics.PipelinesTotal.WithLabelValues("failed").Inc()

	log.Error("run failed", zap.Error(err))

	if uc.notifier != nil && uc.cfg.NotifyAddress != "" {
		if nerr := uc.notifier.NotifyFailure(ctx, uc.cfg.NotifyAddress, run.ID.String(), run.FileID, err.Error()); nerr != nil {
			log.Warn("failure notification not sent", zap.Error(nerr))
		}
	}

	return err
}

func (uc *ExtractFramesUseCase) recordCreate(ctx context.Context, run *entity.SamplingRun, log *zap.Logger) {
	if uc.repo == nil {
		return
	}
	if err := uc.repo.Create(ctx, run); err != nil {
		log.Warn("failed to record run", zap.Error(err))
	}
}

func (uc *ExtractFramesUseCase) recordUpdate(ctx context.Context, run *entity.SamplingRun, log *zap.Logger) {
	if uc.repo == nil {
		return
	}
	if err := uc.repo.Update(ctx, run); err != nil {
		log.Warn("failed to update run record", zap.Error(err))
	}
}

func (uc *ExtractFramesUseCase) publishEvent(ctx context.Context, run *entity.SamplingRun, log *zap.Logger) {
	if uc.publisher == nil {
		return
	}
	event := entity.SamplingEvent{
		RunID:             run.ID,
		FileID:            run.FileID,
		Status:            run.Status,
		RequestedFrames:   run.RequestedFrames,
		StoredFrames:      run.StoredFrames,
		DurationSeconds:   run.DurationSeconds,
		DestinationFolder: run.DestinationFolder,
		ErrorMessage:      run.ErrorMessage,
	}
	data, _ := json.Marshal(event)

	var err error
	if run.Status == entity.RunStatusFailed {
		err = uc.publisher.PublishFailed(ctx, data)
	} else {
		err = uc.publisher.PublishCompleted(ctx, data)
	}
	if err != nil {
		log.Warn("failed to publish run event", zap.Error(err))
	}
}

func frameContentType(ext string) string {
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
