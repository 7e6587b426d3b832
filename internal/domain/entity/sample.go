package entity

// Defaults applied when a request omits sampling parameters.
const (
	DefaultFrameCount = 20
	DefaultMinGapSec  = 2.0
	DefaultMaxWidth   = 640
)

// SampleConfig controls how many stills are taken from a video and how
// they are scaled. One immutable value per pipeline run.
type SampleConfig struct {
	FrameCount int     `json:"frames"`
	MinGapSec  float64 `json:"min_gap_sec"`
	MaxWidth   int     `json:"max_width"`
}

func DefaultSampleConfig() SampleConfig {
	return SampleConfig{
		FrameCount: DefaultFrameCount,
		MinGapSec:  DefaultMinGapSec,
		MaxWidth:   DefaultMaxWidth,
	}
}

// Normalized replaces out-of-range values with defaults.
func (c SampleConfig) Normalized() SampleConfig {
	if c.FrameCount <= 0 {
		c.FrameCount = DefaultFrameCount
	}
	if c.MinGapSec < 0 {
		c.MinGapSec = DefaultMinGapSec
	}
	if c.MaxWidth <= 0 {
		c.MaxWidth = DefaultMaxWidth
	}
	return c
}

// FrameArtifact is one rendered still on local disk. It lives only for
// the duration of a single pipeline run and is removed with the run's
// working directory.
type FrameArtifact struct {
	Index     int
	Timestamp float64
	LocalPath string
}

// PipelineResult is the outcome of one successful single-video run.
type PipelineResult struct {
	FileID            string   `json:"fileId"`
	DurationSeconds   float64  `json:"durationSeconds"`
	RequestedFrames   int      `json:"requestedFrames"`
	StoredFrameIDs    []string `json:"storedFrameIds"`
	DestinationFolder string   `json:"destinationFolder"`
}

// BatchFailure records one failed item of a batch with the originating
// handle attached.
type BatchFailure struct {
	FileID string `json:"fileId"`
	Error  string `json:"error"`
}

// BatchOutcome aggregates per-item results of a batch run. Successes
// and failures are in completion order, which is nondeterministic.
type BatchOutcome struct {
	RequestedCount int              `json:"requestedCount"`
	ProcessedCount int              `json:"processedCount"`
	WorkerCount    int              `json:"workerCount"`
	Successes      []PipelineResult `json:"successes"`
	Failures       []BatchFailure   `json:"failures"`
}
