package httpapi

import (
	"errors"
	"net/http"

	"github.com/erik893/video-frame-extractor/internal/domain/entity"
	"github.com/erik893/video-frame-extractor/internal/usecase"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type extractRequest struct {
	FileID         string   `json:"fileId" binding:"required"`
	Frames         int      `json:"frames"`
	MinGapSec      *float64 `json:"min_gap_sec"`
	MaxWidth       int      `json:"max_width"`
	ParentFolderID string   `json:"parentFolderId"`
}

type batchRequest struct {
	FileIDs     []string `json:"fileIds" binding:"required"`
	Concurrency int      `json:"concurrency"`
	Frames      int      `json:"frames"`
	MinGapSec   *float64 `json:"min_gap_sec"`
	MaxWidth    int      `json:"max_width"`
}

type countRequest struct {
	FolderID string `json:"folderId" binding:"required"`
}

const defaultBatchConcurrency = 5

func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "video-frame-extractor is running"})
}

func (h *Handlers) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) CountMedia(c *gin.Context) {
	var req countRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "folderId is required"})
		return
	}

	count, err := h.count.Execute(c.Request.Context(), req.FolderID)
	if err != nil {
		h.logger.Error("count-media failed", zap.String("folder_id", req.FolderID), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, count)
}

func (h *Handlers) ExtractAndSave(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fileId is required"})
		return
	}

	result, err := h.extract.Execute(c.Request.Context(), req.FileID, usecase.ExtractOptions{
		Sample:         sampleConfig(req.Frames, req.MinGapSec, req.MaxWidth),
		ParentFolderID: req.ParentFolderID,
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExtractBatch always answers 200: individual item errors are part of
// the outcome, never a batch-level failure.
func (h *Handlers) ExtractBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fileIds is required"})
		return
	}
	if len(req.FileIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fileIds must not be empty"})
		return
	}

	concurrency := req.Concurrency
	if concurrency == 0 {
		concurrency = defaultBatchConcurrency
	}

	outcome := h.batch.Execute(c.Request.Context(), req.FileIDs, concurrency, usecase.ExtractOptions{
		Sample: sampleConfig(req.Frames, req.MinGapSec, req.MaxWidth),
	})
	c.JSON(http.StatusOK, outcome)
}

// sampleConfig fills request knobs onto the defaults. min_gap_sec is a
// pointer so an explicit 0 survives instead of being replaced by the
// 2s default.
func sampleConfig(frames int, minGap *float64, maxWidth int) entity.SampleConfig {
	cfg := entity.DefaultSampleConfig()
	if frames > 0 {
		cfg.FrameCount = frames
	}
	if minGap != nil && *minGap >= 0 {
		cfg.MinGapSec = *minGap
	}
	if maxWidth > 0 {
		cfg.MaxWidth = maxWidth
	}
	return cfg
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, entity.ErrSourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrDestinationUnresolvable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
