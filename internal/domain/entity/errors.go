package entity

import "errors"

var (
	// ErrSourceNotFound means the source video does not exist in
	// remote storage or is not accessible.
	ErrSourceNotFound = errors.New("source video not found")

	// ErrDestinationUnresolvable means no destination folder could be
	// determined or created for the extracted frames.
	ErrDestinationUnresolvable = errors.New("destination folder unresolvable")

	// ErrTransport covers network-level failures talking to remote
	// storage.
	ErrTransport = errors.New("storage transport error")
)
