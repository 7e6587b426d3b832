package port

import "context"

type EventPublisher interface {
	PublishCompleted(ctx context.Context, msg []byte) error
	PublishFailed(ctx context.Context, msg []byte) error
}
