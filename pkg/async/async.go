package async

import (
	"context"
	"errors"
	"time"
)

// Future is the eventual result of a call running in its own goroutine.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await blocks until the call has returned.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext blocks until the call has returned or ctx is done, in which
// case it returns the context error. The call itself keeps running.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout is AwaitContext with a relative timeout; it returns
// ErrTimeout when the call has not returned in time.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-f.done:
		return f.result, f.err
	case <-t.C:
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the call has returned, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done is closed once the call has returned.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// Async runs fn(ctx, param) in a new goroutine and returns its Future.
// If ctx is already done, fn is not called and the Future holds ctx.Err().
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// WaitAll waits for every future and returns their results in order.
// The returned error joins the errors of all failed futures.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	errs := make([]error, 0)

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil {
			errs = append(errs, err)
		}
	}

	return results, errors.Join(errs...)
}
