// Package minio adapts a MinIO/S3 bucket to the MediaStorage port.
// Folder identifiers are key prefixes within a single bucket; a folder
// "exists" once its marker object does.
package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/erik893/video-frame-extractor/internal/domain/entity"
	"github.com/erik893/video-frame-extractor/internal/domain/port"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const folderMarker = ".keep"

type Storage struct {
	client *miniogo.Client
	bucket string
}

type StorageConfig struct {
	Endpoint string
	UseSSL   bool
	Bucket   string
}

// NewStorage builds the adapter. Credentials come from the injected
// provider chain; minio-go consults it on every request, so rotation
// happens without touching the adapter.
func NewStorage(cfg StorageConfig, creds *credentials.Credentials) (*Storage, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &Storage{client: client, bucket: cfg.Bucket}, nil
}

func (s *Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, miniogo.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

func (s *Storage) Download(ctx context.Context, fileID string, destPath string) error {
	err := s.client.FGetObject(ctx, s.bucket, fileID, destPath, miniogo.GetObjectOptions{})
	if err != nil {
		return s.wrapErr("download", fileID, err)
	}
	return nil
}

func (s *Storage) Upload(ctx context.Context, folderID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	key := path.Join(folderID, filename)
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, miniogo.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", s.wrapErr("upload", key, err)
	}
	return key, nil
}

func (s *Storage) CreateFolder(ctx context.Context, parentID, name string) (string, error) {
	folder := path.Join(parentID, name)
	marker := folder + "/" + folderMarker
	_, err := s.client.PutObject(ctx, s.bucket, marker, bytes.NewReader(nil), 0, miniogo.PutObjectOptions{})
	if err != nil {
		return "", s.wrapErr("create folder", folder, err)
	}
	return folder, nil
}

func (s *Storage) ParentFolder(_ context.Context, fileID string) (string, error) {
	parent := path.Dir(strings.Trim(fileID, "/"))
	if parent == "." || parent == "/" || parent == "" {
		return "", fmt.Errorf("object %s has no parent folder: %w", fileID, entity.ErrDestinationUnresolvable)
	}
	return parent, nil
}

func (s *Storage) ListChildren(ctx context.Context, folderID string) ([]port.Object, error) {
	prefix := strings.Trim(folderID, "/")
	if prefix != "" {
		prefix += "/"
	}

	var children []port.Object
	for info := range s.client.ListObjects(ctx, s.bucket, miniogo.ListObjectsOptions{
		Prefix: prefix,
	}) {
		if info.Err != nil {
			return nil, s.wrapErr("list children", folderID, info.Err)
		}

		name := path.Base(info.Key)
		if strings.HasSuffix(info.Key, "/") {
			children = append(children, port.Object{
				ID:       strings.TrimSuffix(info.Key, "/"),
				Name:     name,
				MimeType: "inode/directory",
			})
			continue
		}
		if name == folderMarker {
			continue
		}

		children = append(children, port.Object{
			ID:       info.Key,
			Name:     name,
			MimeType: objectMimeType(info),
		})
	}
	return children, nil
}

// objectMimeType prefers the stored content type and falls back to the
// file extension; listings often omit content types.
func objectMimeType(info miniogo.ObjectInfo) string {
	if info.ContentType != "" {
		return info.ContentType
	}
	return mime.TypeByExtension(path.Ext(info.Key))
}

func (s *Storage) wrapErr(op, key string, err error) error {
	resp := miniogo.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%s %s: %w", op, key, entity.ErrSourceNotFound)
	case "AccessDenied":
		return fmt.Errorf("%s %s: access denied: %w", op, key, err)
	}
	if resp.Code == "" && !errors.Is(err, context.Canceled) {
		// No status-coded rejection means the request never got a
		// response: a transport-level failure.
		return fmt.Errorf("%s %s: %v: %w", op, key, err, entity.ErrTransport)
	}
	return fmt.Errorf("%s %s: %w", op, key, err)
}
