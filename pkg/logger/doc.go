// Package logger builds *slog.Logger instances for queue processes and
// stores, with functional options, attribute helpers for queue calls, and
// injection of values carried in context.Context.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler from the configured
// Format. When ContextExtractor callbacks are registered (for example
// callid.LoggerExtractor) the handler is wrapped with LogHandlerDecorator,
// which runs them on every record.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "queued"),
//	    logger.WithContextExtractors(callid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "queue call timed out",
//	    logger.Queue("jobs"),
//	    logger.Operation("get"),
//	    logger.Attempts(6),
//	)
//
// Libraries in this module default to Discard so they stay silent unless a
// logger is supplied.
//
// # Configuration
//
// Config carries LOG_LEVEL, LOG_FORMAT and APP_ENV; NewFromConfig turns it
// into a logger and rejects unknown levels and formats.
//
// Error and Errors return an empty attribute for nil errors, so
//
//	log.Info("store closed", logger.Error(err))
//
// needs no nil check.
package logger
