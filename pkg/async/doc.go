// Package async runs a call in its own goroutine and hands back a Future for
// its result.
//
// It models independently scheduled callers: a test or a process can start a
// blocking queue call with Async, keep working (or put the item the call is
// waiting for), and collect the outcome later with Await, AwaitContext or
// AwaitWithTimeout.
//
// # Usage
//
//	f := async.Async(ctx, 42, func(ctx context.Context, v int) (string, error) {
//	    return strconv.Itoa(v), nil
//	})
//	s, err := f.Await()
//
// WaitAll collects several futures and joins their errors.
//
// If ctx is already cancelled when Async is called, the function is not run
// and the Future completes with the context error.
package async
