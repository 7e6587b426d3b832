package usecase

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/erik893/video-frame-extractor/internal/domain/entity"
	"github.com/erik893/video-frame-extractor/internal/domain/port"
	"github.com/google/uuid"
)

// Destination-resolution policies. One pipeline serves all deployment
// modes; the policy is the only thing that varies.
const (
	DestinationFixed        = "fixed"
	DestinationSubfolder    = "subfolder"
	DestinationSourceParent = "source-parent"
)

// NewDestinationResolver selects the policy for a deployment.
func NewDestinationResolver(mode, baseFolder string, storage port.MediaStorage) (port.DestinationResolver, error) {
	switch mode {
	case DestinationFixed:
		return &FixedDestination{Folder: baseFolder}, nil
	case DestinationSubfolder:
		return &SubfolderDestination{Storage: storage, Base: baseFolder}, nil
	case DestinationSourceParent:
		return &SourceParentDestination{Storage: storage}, nil
	default:
		return nil, fmt.Errorf("unknown destination mode %q", mode)
	}
}

// FixedDestination stores every video's frames in one shared folder.
type FixedDestination struct {
	Folder string
}

func (d *FixedDestination) Resolve(_ context.Context, _ string, parentOverride string) (string, error) {
	if parentOverride != "" {
		return parentOverride, nil
	}
	if d.Folder == "" {
		return "", fmt.Errorf("no frames folder configured: %w", entity.ErrDestinationUnresolvable)
	}
	return d.Folder, nil
}

// SubfolderDestination creates a fresh per-video folder under a base.
type SubfolderDestination struct {
	Storage port.MediaStorage
	Base    string
}

func (d *SubfolderDestination) Resolve(ctx context.Context, fileID string, parentOverride string) (string, error) {
	base := d.Base
	if parentOverride != "" {
		base = parentOverride
	}
	if base == "" {
		return "", fmt.Errorf("no base folder configured: %w", entity.ErrDestinationUnresolvable)
	}

	stem := strings.TrimSuffix(path.Base(fileID), path.Ext(fileID))
	name := fmt.Sprintf("%s_%s", stem, uuid.NewString()[:8])

	folder, err := d.Storage.CreateFolder(ctx, base, name)
	if err != nil {
		return "", fmt.Errorf("create destination folder: %v: %w", err, entity.ErrDestinationUnresolvable)
	}
	return folder, nil
}

// SourceParentDestination stores frames next to the source video.
type SourceParentDestination struct {
	Storage port.MediaStorage
}

func (d *SourceParentDestination) Resolve(ctx context.Context, fileID string, _ string) (string, error) {
	parent, err := d.Storage.ParentFolder(ctx, fileID)
	if err != nil {
		return "", err
	}
	return parent, nil
}
