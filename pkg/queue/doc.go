// Package queue provides a FIFO queue that many independent callers can use
// at once, with blocking, non-blocking and timed put and get.
//
// The package is organised around two components:
//
//   - Store: the single owner of the buffer. It offers only atomic,
//     non-blocking primitives (TryPut, TryGet, Size) and applies them one at
//     a time in arrival order. It never waits.
//   - Queue: the caller-facing handle. It turns a blocking or timed request
//     into a series of store calls separated by growing sleeps, bounded by a
//     deadline computed once per call.
//
// Because all waiting happens on the caller side, the store can live
// anywhere a round trip can reach: in the same process (Actor, a goroutine
// behind a go-actor mailbox), in Redis (package redis), or behind HTTP in
// another process (package remote).
//
// # Usage
//
//	q, err := queue.NewLocal[string](1)
//	if err != nil {
//	    return err
//	}
//	defer q.Close()
//
//	// Blocks while the queue is full
//	_ = q.Put(ctx, "a")
//
//	// Fails with ErrFull right away
//	err = q.PutNowait(ctx, "b")
//
//	// Waits up to 200ms, then fails with ErrEmpty
//	v, err := q.Get(ctx, queue.WithTimeout(200*time.Millisecond))
//
// # Polling
//
// After every unsuccessful attempt a call sleeps for the current poll
// interval, then multiplies it by the growth factor up to the maximum
// interval (defaults: 10ms, 200ms, x2). A timed call never sleeps past its
// deadline, so it fails at most one store round trip after the timeout. The
// maximum interval also bounds how long a waiter may take to notice a freed
// slot or a new item.
//
// There is no ordering among waiters: whichever attempt reaches the store
// first wins. Item order is always the order in which the store accepted
// TryPut calls.
//
// # Error Handling
//
// ErrFull and ErrEmpty report exhaustion, ErrInvalidTimeout rejects negative
// timeouts before the store is contacted, and ErrTransport wraps store
// failures, which are never retried. All can be checked with errors.Is.
package queue
