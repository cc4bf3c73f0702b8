package queue

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/williamma12/ray/pkg/async"
	"github.com/williamma12/ray/pkg/logger"
)

// Queue is the caller-facing handle of a FIFO queue.
//
// It holds no buffer state: every operation is a sequence of atomic calls to
// the Store, with sleeps in between while the call is allowed to wait. A
// Queue is safe for concurrent use and may be shared by any number of
// callers; each call keeps its own deadline and poll schedule.
type Queue[T any] struct {
	id      uuid.UUID
	name    string
	store   Store[T]
	poll    pollConfig
	logger  *slog.Logger
	metrics *Metrics

	// owned is set when the Queue created its own store
	owned *Actor[T]
}

// New creates a Queue on top of an existing store.
func New[T any](store Store[T], opts ...Option) (*Queue[T], error) {
	if store == nil {
		return nil, ErrStoreNil
	}
	if store.Capacity() < 0 {
		return nil, ErrInvalidCapacity
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	if err := options.poll.validate(); err != nil {
		return nil, err
	}

	return &Queue[T]{
		id:      uuid.New(),
		name:    options.name,
		store:   store,
		poll:    options.poll,
		logger:  options.logger,
		metrics: options.metrics,
	}, nil
}

// NewLocal creates a Queue backed by a new in-process Actor with the given
// capacity (0 means unbounded). Close releases the actor.
func NewLocal[T any](capacity int, opts ...Option) (*Queue[T], error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	store, err := NewActor[T](capacity, WithActorLogger(options.logger))
	if err != nil {
		return nil, err
	}

	q, err := New[T](store, opts...)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	q.owned = store
	return q, nil
}

func defaultOptions() *options {
	return &options{
		name: DefaultName,
		poll: pollConfig{
			initial: DefaultInitialPollInterval,
			max:     DefaultMaxPollInterval,
			factor:  DefaultGrowthFactor,
		},
		logger: logger.Discard(),
	}
}

// ID identifies this handle in logs
func (q *Queue[T]) ID() uuid.UUID { return q.id }

// Name returns the queue name used in logs and metrics
func (q *Queue[T]) Name() string { return q.name }

// Store returns the underlying store, e.g. to create more handles with New
func (q *Queue[T]) Store() Store[T] { return q.store }

// Capacity returns the store capacity; 0 means unbounded
func (q *Queue[T]) Capacity() int { return q.store.Capacity() }

// Close stops the store if the Queue created it with NewLocal.
// Queues built with New leave the store to its owner.
func (q *Queue[T]) Close() error {
	if q.owned == nil {
		return nil
	}
	return q.owned.Close()
}

// Put appends item to the queue.
//
// By default it blocks until a slot is free. WithTimeout bounds the wait and
// yields ErrFull once the deadline passes; NonBlocking tries once. Cancelling
// ctx stops a waiting call with the context error.
func (q *Queue[T]) Put(ctx context.Context, item T, opts ...CallOption) error {
	o := newCallOptions(opts)
	if o.hasTimeout && o.timeout < 0 {
		q.metrics.observe(q.name, OperationPut, outcomeInvalid, 0, 0)
		return ErrInvalidTimeout
	}
	if err := sleep(ctx, o.delay); err != nil {
		return err
	}

	return q.wait(ctx, OperationPut, o, ErrFull, func(ctx context.Context) (bool, error) {
		return q.store.TryPut(ctx, item)
	})
}

// PutNowait is Put with NonBlocking.
func (q *Queue[T]) PutNowait(ctx context.Context, item T) error {
	return q.Put(ctx, item, NonBlocking())
}

// Get removes and returns the head item.
//
// By default it blocks until an item is available. WithTimeout bounds the
// wait and yields ErrEmpty once the deadline passes; NonBlocking tries once.
func (q *Queue[T]) Get(ctx context.Context, opts ...CallOption) (T, error) {
	var item T

	o := newCallOptions(opts)
	if o.hasTimeout && o.timeout < 0 {
		q.metrics.observe(q.name, OperationGet, outcomeInvalid, 0, 0)
		return item, ErrInvalidTimeout
	}
	if err := sleep(ctx, o.delay); err != nil {
		return item, err
	}

	err := q.wait(ctx, OperationGet, o, ErrEmpty, func(ctx context.Context) (bool, error) {
		v, ok, err := q.store.TryGet(ctx)
		if ok {
			item = v
		}
		return ok, err
	})
	return item, err
}

// GetNowait is Get with NonBlocking.
func (q *Queue[T]) GetNowait(ctx context.Context) (T, error) {
	return q.Get(ctx, NonBlocking())
}

// PutAsync runs Put in its own goroutine and returns a future for its result.
func (q *Queue[T]) PutAsync(ctx context.Context, item T, opts ...CallOption) *async.Future[struct{}] {
	return async.Async(ctx, item, func(ctx context.Context, item T) (struct{}, error) {
		return struct{}{}, q.Put(ctx, item, opts...)
	})
}

// GetAsync runs Get in its own goroutine and returns a future for the item.
func (q *Queue[T]) GetAsync(ctx context.Context, opts ...CallOption) *async.Future[T] {
	return async.Async(ctx, opts, func(ctx context.Context, opts []CallOption) (T, error) {
		return q.Get(ctx, opts...)
	})
}

// Qsize returns the number of items as seen by the store at the moment the
// request was served. Concurrent callers may change it right after.
func (q *Queue[T]) Qsize(ctx context.Context) (int, error) {
	n, err := q.store.Size(ctx)
	if err != nil {
		return 0, q.transportError(ctx, OperationSize, err)
	}
	return n, nil
}

// Empty reports whether Qsize is zero, with the same staleness caveat.
func (q *Queue[T]) Empty(ctx context.Context) (bool, error) {
	ok, err := IsEmpty(ctx, q.store)
	if err != nil {
		return false, q.transportError(ctx, OperationSize, err)
	}
	return ok, nil
}

// Full reports whether Qsize has reached the capacity, with the same
// staleness caveat. An unbounded queue is never full.
func (q *Queue[T]) Full(ctx context.Context) (bool, error) {
	ok, err := IsFull(ctx, q.store)
	if err != nil {
		return false, q.transportError(ctx, OperationSize, err)
	}
	return ok, nil
}

// wait drives one Put or Get: attempt, and while the call may still wait,
// sleep for the next poll interval and attempt again.
func (q *Queue[T]) wait(ctx context.Context, op string, o callOptions, exhausted error, attempt func(context.Context) (bool, error)) error {
	start := time.Now()
	bounded := o.block && o.hasTimeout
	deadline := start.Add(o.timeout)
	schedule := newPollSchedule(q.poll)

	for attempts := 1; ; attempts++ {
		ok, err := attempt(ctx)
		if err != nil {
			q.metrics.observe(q.name, op, outcomeTransport, attempts, time.Since(start))
			return q.transportError(ctx, op, err)
		}
		if ok {
			q.metrics.observe(q.name, op, outcomeSuccess, attempts, time.Since(start))
			if attempts > 1 {
				q.logger.DebugContext(ctx, "queue call succeeded after waiting",
					logger.Queue(q.name),
					logger.Operation(op),
					logger.Attempts(attempts),
					logger.Wait(time.Since(start)))
			}
			return nil
		}
		if !o.block {
			q.metrics.observe(q.name, op, outcomeFor(exhausted), attempts, time.Since(start))
			return exhausted
		}

		var remaining time.Duration
		if bounded {
			remaining = time.Until(deadline)
			if remaining <= 0 {
				q.metrics.observe(q.name, op, outcomeFor(exhausted), attempts, time.Since(start))
				q.logger.DebugContext(ctx, "queue call timed out",
					logger.Queue(q.name),
					logger.Operation(op),
					logger.Attempts(attempts),
					logger.Wait(time.Since(start)))
				return exhausted
			}
		}

		if err := sleep(ctx, schedule.next(remaining, bounded)); err != nil {
			q.metrics.observe(q.name, op, outcomeCanceled, attempts, time.Since(start))
			return err
		}
	}
}

// transportError reports a failed store call. A cancelled or expired ctx is
// returned as is so callers can match it directly.
func (q *Queue[T]) transportError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return ctxErr
	}

	q.logger.WarnContext(ctx, "queue store call failed",
		logger.Queue(q.name),
		logger.Operation(op),
		logger.HandleID(q.id),
		logger.Error(err))

	return errors.Join(ErrTransport, err)
}
