package remote

import "errors"

var (
	ErrStart            = errors.New("failed to start queue server")
	ErrShutdown         = errors.New("failed to shutdown queue server gracefully")
	ErrInvalidURL       = errors.New("invalid queue server URL")
	ErrUnavailable      = errors.New("queue server unavailable")
	ErrUnexpectedStatus = errors.New("unexpected response status from queue server")
	ErrMalformed        = errors.New("malformed response from queue server")
	ErrStoreNil         = errors.New("store cannot be nil")
)
