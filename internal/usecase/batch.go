package usecase

import (
	"context"
	"sync"

	"github.com/erik893/video-frame-extractor/internal/domain/entity"
	"github.com/erik893/video-frame-extractor/internal/infra/metrics"
	"go.uber.org/zap"
)

// Caps enforced before dispatch. Oversized batches are truncated, not
// rejected; requestedCount in the outcome lets callers detect it.
const (
	MaxBatchSize = 50
	MinWorkers   = 1
	MaxWorkers   = 10
)

// PipelineFunc runs one single-video pipeline.
type PipelineFunc func(ctx context.Context, fileID string, opts ExtractOptions) (*entity.PipelineResult, error)

// BatchExtractUseCase fans a list of videos out over a fixed worker
// pool. Each item succeeds or fails on its own; an error never
// propagates to, cancels, or delays sibling items.
type BatchExtractUseCase struct {
	run    PipelineFunc
	logger *zap.Logger
}

func NewBatchExtractUseCase(run PipelineFunc, logger *zap.Logger) *BatchExtractUseCase {
	return &BatchExtractUseCase{run: run, logger: logger}
}

func (b *BatchExtractUseCase) Execute(ctx context.Context, fileIDs []string, workerCap int, opts ExtractOptions) *entity.BatchOutcome {
	requested := len(fileIDs)
	if len(fileIDs) > MaxBatchSize {
		fileIDs = fileIDs[:MaxBatchSize]
		metrics.BatchTruncatedTotal.Inc()
		b.logger.Warn("batch truncated",
			zap.Int("requested", requested),
			zap.Int("processed", MaxBatchSize),
		)
	}
	workers := clampWorkers(workerCap)
	if workers > len(fileIDs) && len(fileIDs) > 0 {
		workers = len(fileIDs)
	}

	b.logger.Info("starting batch",
		zap.Int("items", len(fileIDs)),
		zap.Int("workers", workers),
	)

	var (
		mu        sync.Mutex
		successes = make([]entity.PipelineResult, 0, len(fileIDs))
		failures  = make([]entity.BatchFailure, 0)
	)

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			log := b.logger.With(zap.Int("worker_id", workerID))
			for fileID := range jobs {
				result, err := b.run(ctx, fileID, opts)

				mu.Lock()
				if err != nil {
					failures = append(failures, entity.BatchFailure{
						FileID: fileID,
						Error:  err.Error(),
					})
					metrics.BatchItemsTotal.WithLabelValues("failure").Inc()
					log.Warn("batch item failed",
						zap.String("file_id", fileID),
						zap.Error(err),
					)
				} else {
					successes = append(successes, *result)
					metrics.BatchItemsTotal.WithLabelValues("success").Inc()
				}
				mu.Unlock()
			}
		}(i)
	}

	for _, fileID := range fileIDs {
		jobs <- fileID
	}
	close(jobs)
	wg.Wait()

	return &entity.BatchOutcome{
		RequestedCount: requested,
		ProcessedCount: len(fileIDs),
		WorkerCount:    workers,
		Successes:      successes,
		Failures:       failures,
	}
}

func clampWorkers(n int) int {
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
