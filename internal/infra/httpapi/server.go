// Package httpapi is the thin HTTP surface over the extraction
// pipeline: routing, request validation, and the optional shared-secret
// check.
package httpapi

import (
	"context"

	"github.com/erik893/video-frame-extractor/internal/domain/entity"
	"github.com/erik893/video-frame-extractor/internal/usecase"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FrameExtractor interface {
	Execute(ctx context.Context, fileID string, opts usecase.ExtractOptions) (*entity.PipelineResult, error)
}

type BatchExtractor interface {
	Execute(ctx context.Context, fileIDs []string, workerCap int, opts usecase.ExtractOptions) *entity.BatchOutcome
}

type MediaCounter interface {
	Execute(ctx context.Context, folderID string) (*usecase.MediaCount, error)
}

type Handlers struct {
	extract FrameExtractor
	batch   BatchExtractor
	count   MediaCounter
	logger  *zap.Logger
}

func NewHandlers(extract FrameExtractor, batch BatchExtractor, count MediaCounter, logger *zap.Logger) *Handlers {
	return &Handlers{extract: extract, batch: batch, count: count, logger: logger}
}

// NewRouter builds the gin engine. apiKey guards the POST endpoints
// when non-empty.
func NewRouter(h *Handlers, apiKey string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", h.Root)
	router.GET("/ping", h.Ping)

	guarded := router.Group("/")
	guarded.Use(APIKeyAuth(apiKey))
	{
		guarded.POST("/count-media", h.CountMedia)
		guarded.POST("/extract-and-save", h.ExtractAndSave)
		guarded.POST("/extract-batch", h.ExtractBatch)
	}

	return router
}
