package port

import "context"

// DestinationResolver decides which remote folder receives extracted
// frames. parentOverride, when non-empty, replaces the configured base
// folder for policies that honor it.
type DestinationResolver interface {
	Resolve(ctx context.Context, fileID, parentOverride string) (string, error)
}
