package entity

import "github.com/google/uuid"

// SamplingEvent is published after a pipeline run finishes, on the
// completed or failed routing key depending on Status.
type SamplingEvent struct {
	RunID             uuid.UUID `json:"run_id"`
	FileID            string    `json:"file_id"`
	Status            RunStatus `json:"status"`
	RequestedFrames   int       `json:"requested_frames"`
	StoredFrames      int       `json:"stored_frames,omitempty"`
	DurationSeconds   float64   `json:"duration_seconds,omitempty"`
	DestinationFolder string    `json:"destination_folder,omitempty"`
	ErrorMessage      string    `json:"error_message,omitempty"`
}
