package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelinesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frame_extractor_pipelines_total",
		Help: "Total number of single-video pipeline runs, by status",
	}, []string{"status"})

	PipelineStageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "frame_extractor_pipeline_stage_duration_seconds",
		Help:    "Duration of pipeline stages",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
	}, []string{"stage"})

	FramesRenderedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frame_extractor_frames_rendered_total",
		Help: "Total number of stills rendered across all runs",
	})

	FramesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frame_extractor_frames_skipped_total",
		Help: "Total number of sampling instants skipped after a render failure",
	})

	ActivePipelines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "frame_extractor_active_pipelines",
		Help: "Number of single-video pipelines currently running",
	})

	BatchItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frame_extractor_batch_items_total",
		Help: "Total number of batch items processed, by result",
	}, []string{"result"})

	BatchTruncatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frame_extractor_batch_truncated_total",
		Help: "Total number of batch requests truncated to the batch size cap",
	})
)
