package callid

import (
	"context"
	"log/slog"

	"github.com/williamma12/ray/pkg/logger"
)

// LoggerExtractor adds the caller id to every log record written with a
// context that carries one.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return logger.CallerID(id), true
		}
		return slog.Attr{}, false
	}
}
