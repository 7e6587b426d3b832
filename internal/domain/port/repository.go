package port

import (
	"context"

	"github.com/erik893/video-frame-extractor/internal/domain/entity"
	"github.com/google/uuid"
)

type RunRepository interface {
	Create(ctx context.Context, run *entity.SamplingRun) error
	Update(ctx context.Context, run *entity.SamplingRun) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SamplingRun, error)
}
