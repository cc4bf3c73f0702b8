// Package callid tags remote queue requests with the id of the caller that
// issued them.
//
// The remote client sends the id in the X-Queue-Caller header (taken from the
// context, or the handle id of the queue), and the server side Middleware
// puts it back into the request context, so the log lines of one logical
// caller can be followed across processes. LoggerExtractor plugs the id into
// logger.New:
//
//	log := logger.New(logger.WithContextExtractors(callid.LoggerExtractor()))
//
// Ids supplied by clients must match [a-zA-Z0-9_.:-] and be at most 128
// bytes; anything else is replaced by a fresh UUID.
package callid
