package queue

import "context"

// Store is the single owner of a FIFO buffer.
//
// Every method is one atomic, non-blocking step applied by the owner in
// arrival order. A store never sleeps or retries. The error return is
// reserved for failures to reach or run the owner (stopped actor, network,
// codec); "full" and "empty" are reported through the bool result.
type Store[T any] interface {
	// TryPut appends item at the tail. It returns false, leaving the buffer
	// unchanged, when the store is bounded and already at capacity.
	TryPut(ctx context.Context, item T) (bool, error)

	// TryGet removes and returns the head item, or (zero, false) when empty.
	TryGet(ctx context.Context) (T, bool, error)

	// Size returns the buffer length as of the moment the request was
	// serialized. It may be stale by the time the caller observes it.
	Size(ctx context.Context) (int, error)

	// Capacity returns the bound fixed at construction; 0 means unbounded.
	Capacity() int
}

// IsEmpty reports whether s held no items when the size request was served.
func IsEmpty[T any](ctx context.Context, s Store[T]) (bool, error) {
	n, err := s.Size(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// IsFull reports whether s was at capacity when the size request was served.
// An unbounded store is never full.
func IsFull[T any](ctx context.Context, s Store[T]) (bool, error) {
	capacity := s.Capacity()
	if capacity <= 0 {
		return false, nil
	}
	n, err := s.Size(ctx)
	if err != nil {
		return false, err
	}
	return n >= capacity, nil
}
