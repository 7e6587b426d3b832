package entity

import (
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	RunStatusPending    RunStatus = "PENDING"
	RunStatusProcessing RunStatus = "PROCESSING"
	RunStatusCompleted  RunStatus = "COMPLETED"
	RunStatusFailed     RunStatus = "FAILED"
)

// SamplingRun is the audit record of one single-video pipeline run.
type SamplingRun struct {
	ID                uuid.UUID
	FileID            string
	Status            RunStatus
	RequestedFrames   int
	StoredFrames      int
	DurationSeconds   float64
	DestinationFolder string
	ErrorMessage      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       *time.Time
}

func NewSamplingRun(fileID string, requestedFrames int) *SamplingRun {
	now := time.Now().UTC()
	return &SamplingRun{
		ID:              uuid.New(),
		FileID:          fileID,
		Status:          RunStatusPending,
		RequestedFrames: requestedFrames,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (r *SamplingRun) MarkProcessing() {
	r.Status = RunStatusProcessing
	r.UpdatedAt = time.Now().UTC()
}

func (r *SamplingRun) MarkCompleted(destinationFolder string, storedFrames int, duration float64) {
	now := time.Now().UTC()
	r.Status = RunStatusCompleted
	r.DestinationFolder = destinationFolder
	r.StoredFrames = storedFrames
	r.DurationSeconds = duration
	r.UpdatedAt = now
	r.CompletedAt = &now
}

func (r *SamplingRun) MarkFailed(errMsg string) {
	r.Status = RunStatusFailed
	r.ErrorMessage = errMsg
	r.UpdatedAt = time.Now().UTC()
}
