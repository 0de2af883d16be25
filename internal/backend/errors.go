package backend

import "errors"

var (
	// ErrUnavailable indicates the generation backend is unreachable.
	ErrUnavailable = errors.New("generation backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("backend request timed out")

	// ErrRejected indicates the backend refused the operation.
	ErrRejected = errors.New("backend rejected request")
)
