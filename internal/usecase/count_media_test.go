package usecase

import (
	"context"
	"testing"

	"github.com/erik893/video-frame-extractor/internal/domain/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCountMedia(t *testing.T) {
	storage := newFakeStorage()
	storage.children["library"] = []port.Object{
		{ID: "library/a.mp4", Name: "a.mp4", MimeType: "video/mp4"},
		{ID: "library/b.mov", Name: "b.mov", MimeType: "video/quicktime"},
		{ID: "library/c.jpg", Name: "c.jpg", MimeType: "image/jpeg"},
		{ID: "library/notes.txt", Name: "notes.txt", MimeType: "text/plain"},
		{ID: "library/sub", Name: "sub", MimeType: "inode/directory"},
	}

	uc := NewCountMediaUseCase(storage, zap.NewNop())
	count, err := uc.Execute(context.Background(), "library")
	require.NoError(t, err)

	assert.Equal(t, "library", count.FolderID)
	assert.Equal(t, 2, count.Videos)
	assert.Equal(t, 1, count.Images)
	assert.Equal(t, 2, count.Other)
	assert.Equal(t, 5, count.Total)
}

func TestCountMediaEmptyFolder(t *testing.T) {
	uc := NewCountMediaUseCase(newFakeStorage(), zap.NewNop())

	count, err := uc.Execute(context.Background(), "empty")
	require.NoError(t, err)
	assert.Equal(t, 0, count.Total)
}
