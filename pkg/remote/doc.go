// Package remote lets a queue buffer owned by one process be used from
// others over HTTP.
//
// The serving side wraps any queue.Store[json.RawMessage] (typically a
// queue.Actor or a redis.ListStore) with NewHandler, a chi router that maps
// each route to exactly one store primitive:
//
//	POST /put     {"item": <json>}  ->  {"ok": bool}
//	POST /get                       ->  {"ok": bool, "item": <json>|null}
//	GET  /size                      ->  {"size": n, "capacity": c}
//	GET  /healthz                   ->  ALIVE | READY | NOT_READY
//
// and Server runs it with graceful shutdown. The calling side uses Client as
// the store of a queue.Queue, which does all the waiting:
//
//	store, err := remote.Dial[Job](ctx, "http://queued:8080")
//	if err != nil {
//	    return err
//	}
//	q, err := queue.New[Job](store)
//	job, err := q.Get(ctx, queue.WithTimeout(time.Second))
//
// Requests carry the caller id in the X-Queue-Caller header (see package
// callid); the handler logs it with every request.
//
// # Errors
//
// Failed round trips, non-200 responses (ErrUnexpectedStatus) and
// undecodable bodies (ErrMalformed) are returned as errors, which
// queue.Queue reports as queue.ErrTransport. A get whose response is lost
// in transit loses its item.
package remote
