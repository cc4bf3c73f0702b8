// Package redis keeps queue buffers in Redis lists so that processes on
// different hosts can share one FIFO queue.
//
// ListStore implements queue.Store: TryPut runs a Lua script that checks the
// list length against the capacity and pushes at the tail in one step, TryGet
// pops the head with LPOP, and Size is LLEN. Redis serializes these, so the
// server plays the part of the single buffer owner and queue.Queue handles in
// any number of processes do the waiting.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store, err := redis.NewListStoreFromConfig[Job](client, cfg, "jobs", 100)
//	if err != nil {
//	    return err
//	}
//	q, err := queue.New[Job](store, queue.WithName("jobs"))
//
// Items are encoded with queue.JSONCodec unless WithCodec says otherwise.
//
// Connect retries the initial ping (REDIS_RETRY_ATTEMPTS, REDIS_RETRY_INTERVAL)
// within REDIS_CONNECT_TIMEOUT, and Healthcheck adapts a client into a probe
// for the queued health endpoint.
//
// # Errors
//
// Connection helpers return sentinel errors (ErrRedisNotReady,
// ErrFailedToParseRedisConnString, ...) joined with the go-redis cause.
// ListStore returns go-redis errors unchanged; queue.Queue reports them as
// queue.ErrTransport.
package redis
