package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/erik893/video-frame-extractor/internal/domain/port"
	"go.uber.org/zap"
)

type MediaCount struct {
	FolderID string `json:"folderId"`
	Videos   int    `json:"videos"`
	Images   int    `json:"images"`
	Other    int    `json:"other"`
	Total    int    `json:"total"`
}

// CountMediaUseCase takes a census of a storage folder by MIME class.
type CountMediaUseCase struct {
	storage port.MediaStorage
	logger  *zap.Logger
}

func NewCountMediaUseCase(storage port.MediaStorage, logger *zap.Logger) *CountMediaUseCase {
	return &CountMediaUseCase{storage: storage, logger: logger}
}

func (uc *CountMediaUseCase) Execute(ctx context.Context, folderID string) (*MediaCount, error) {
	children, err := uc.storage.ListChildren(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("list folder %s: %w", folderID, err)
	}

	count := &MediaCount{FolderID: folderID, Total: len(children)}
	for _, child := range children {
		switch {
		case strings.HasPrefix(child.MimeType, "video/"):
			count.Videos++
		case strings.HasPrefix(child.MimeType, "image/"):
			count.Images++
		default:
			count.Other++
		}
	}

	uc.logger.Debug("media census",
		zap.String("folder_id", folderID),
		zap.Int("videos", count.Videos),
		zap.Int("images", count.Images),
		zap.Int("other", count.Other),
	)
	return count, nil
}
