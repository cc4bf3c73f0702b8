package queue

import "errors"

// Common errors
var (
	// ErrFull is returned when no slot became available: immediately for a
	// non-blocking put, or once the deadline passed for a timed put.
	ErrFull = errors.New("queue is full")

	// ErrEmpty is returned when no item became available: immediately for a
	// non-blocking get, or once the deadline passed for a timed get.
	ErrEmpty = errors.New("queue is empty")

	// ErrInvalidTimeout is returned when a negative timeout is supplied.
	// It is detected before the store is contacted.
	ErrInvalidTimeout = errors.New("timeout must be a non-negative duration")

	// ErrTransport is returned when a store primitive fails to complete.
	// Such failures are never retried by the queue.
	ErrTransport = errors.New("queue store call failed")

	// ErrStoreClosed is returned by an Actor that has been stopped
	ErrStoreClosed = errors.New("queue store is closed")

	// ErrStoreNil is returned when a nil store is provided
	ErrStoreNil = errors.New("store cannot be nil")

	// ErrInvalidCapacity is returned for a negative capacity
	ErrInvalidCapacity = errors.New("capacity must be zero (unbounded) or positive")

	// ErrInvalidPollConfig is returned when poll intervals or the growth factor are out of range
	ErrInvalidPollConfig = errors.New("invalid poll configuration")

	// ErrCodec is returned when an item cannot be encoded or decoded for transport
	ErrCodec = errors.New("failed to encode or decode queue item")
)
