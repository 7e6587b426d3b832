package postgres

import (
	"context"
	"fmt"

	"github.com/erik893/video-frame-extractor/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RunRepository struct {
	pool *pgxpool.Pool
}

func NewRunRepository(pool *pgxpool.Pool) *RunRepository {
	return &RunRepository{pool: pool}
}

func (r *RunRepository) Create(ctx context.Context, run *entity.SamplingRun) error {
	query := `
		INSERT INTO sampling_runs (
			id, file_id, status, requested_frames, stored_frames,
			duration_seconds, destination_folder, error_message,
			created_at, updated_at, completed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

	_, err := r.pool.Exec(ctx, query,
		run.ID, run.FileID, string(run.Status),
		run.RequestedFrames, run.StoredFrames,
		run.DurationSeconds, run.DestinationFolder, run.ErrorMessage,
		run.CreatedAt, run.UpdatedAt, run.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (r *RunRepository) Update(ctx context.Context, run *entity.SamplingRun) error {
	query := `
		UPDATE sampling_runs SET
			status=$2, stored_frames=$3, duration_seconds=$4,
			destination_folder=$5, error_message=$6,
			updated_at=$7, completed_at=$8
		WHERE id=$1`

	_, err := r.pool.Exec(ctx, query,
		run.ID, string(run.Status), run.StoredFrames,
		run.DurationSeconds, run.DestinationFolder, run.ErrorMessage,
		run.UpdatedAt, run.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

func (r *RunRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SamplingRun, error) {
	query := `
		SELECT id, file_id, status, requested_frames, stored_frames,
			duration_seconds, destination_folder, error_message,
			created_at, updated_at, completed_at
		FROM sampling_runs WHERE id=$1`

	run := &entity.SamplingRun{}
	var status string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&run.ID, &run.FileID, &status,
		&run.RequestedFrames, &run.StoredFrames,
		&run.DurationSeconds, &run.DestinationFolder, &run.ErrorMessage,
		&run.CreatedAt, &run.UpdatedAt, &run.CompletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("find run by id: %w", err)
	}
	run.Status = entity.RunStatus(status)
	return run, nil
}
