package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/erik893/video-frame-extractor/internal/domain/entity"
	"github.com/erik893/video-frame-extractor/internal/domain/port"
)

type fakeStorage struct {
	mu sync.Mutex

	downloadErr map[string]error
	uploadErr   error
	children    map[string][]port.Object

	uploads []string // remote ids in upload order
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		downloadErr: make(map[string]error),
		children:    make(map[string][]port.Object),
	}
}

func (s *fakeStorage) Download(_ context.Context, fileID string, destPath string) error {
	s.mu.Lock()
	err := s.downloadErr[fileID]
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return os.WriteFile(destPath, []byte("video-bytes"), 0o644)
}

func (s *fakeStorage) Upload(_ context.Context, folderID, filename string, reader io.Reader, _ int64, _ string) (string, error) {
	if _, err := io.ReadAll(reader); err != nil {
		return "", err
	}
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	id := path.Join(folderID, filename)
	s.mu.Lock()
	s.uploads = append(s.uploads, id)
	s.mu.Unlock()
	return id, nil
}

func (s *fakeStorage) CreateFolder(_ context.Context, parentID, name string) (string, error) {
	return path.Join(parentID, name), nil
}

func (s *fakeStorage) ParentFolder(_ context.Context, fileID string) (string, error) {
	parent := path.Dir(fileID)
	if parent == "." || parent == "/" {
		return "", fmt.Errorf("object %s has no parent folder: %w", fileID, entity.ErrDestinationUnresolvable)
	}
	return parent, nil
}

func (s *fakeStorage) ListChildren(_ context.Context, folderID string) ([]port.Object, error) {
	return s.children[folderID], nil
}

type fakeProber struct {
	duration float64
	err      error
}

func (p *fakeProber) ProbeDuration(context.Context, string) (float64, error) {
	return p.duration, p.err
}

// fakeRenderer writes one real file per instant so upload can read
// them back; indexes listed in skip are dropped, mimicking per-instant
// render failures.
type fakeRenderer struct {
	skip map[int]bool
}

func (r *fakeRenderer) RenderFrames(_ context.Context, _ string, timestamps []float64, _ int, outputDir string) []entity.FrameArtifact {
	artifacts := make([]entity.FrameArtifact, 0, len(timestamps))
	for i, ts := range timestamps {
		if r.skip[i] {
			continue
		}
		p := filepath.Join(outputDir, fmt.Sprintf("frame_%04d.jpg", i))
		if err := os.WriteFile(p, []byte("jpeg"), 0o644); err != nil {
			continue
		}
		artifacts = append(artifacts, entity.FrameArtifact{
			Index:     len(artifacts),
			Timestamp: ts,
			LocalPath: p,
		})
	}
	return artifacts
}

type fakeResolver struct {
	folder string
	err    error
}

func (r *fakeResolver) Resolve(context.Context, string, string) (string, error) {
	return r.folder, r.err
}
