package port

import "context"

type FailureNotifier interface {
	NotifyFailure(ctx context.Context, recipient string, runID string, fileID string, errorMsg string) error
}
