package port

import (
	"context"
	"io"
)

// Object is one child of a storage folder.
type Object struct {
	ID       string
	Name     string
	MimeType string
}

// MediaStorage is the remote object store holding source videos and
// extracted frames. Folders are opaque identifiers; implementations
// must be safe for concurrent use.
type MediaStorage interface {
	Download(ctx context.Context, fileID string, destPath string) error
	Upload(ctx context.Context, folderID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	CreateFolder(ctx context.Context, parentID, name string) (string, error)
	ParentFolder(ctx context.Context, fileID string) (string, error)
	ListChildren(ctx context.Context, folderID string) ([]Object, error)
}
