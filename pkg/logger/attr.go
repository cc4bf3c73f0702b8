package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Queue records the queue name under the key "queue".
func Queue(name string) slog.Attr {
	return slog.String("queue", name)
}

// Operation records the queue operation (put, get, size) under the key "operation".
func Operation(op string) slog.Attr {
	return slog.String("operation", op)
}

// Attempts records how many store calls a queue call made.
func Attempts(n int) slog.Attr {
	return slog.Int("attempts", n)
}

// Wait records the time a call spent waiting under the key "wait".
func Wait(d time.Duration) slog.Attr {
	return slog.Duration("wait", d)
}

// Capacity records a queue capacity; 0 means unbounded.
func Capacity(n int) slog.Attr {
	return slog.Int("capacity", n)
}

// HandleID records the queue handle identifier under the key "handle_id".
// If id is nil, it returns an empty Attr.
func HandleID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("handle_id", id)
}

// CallerID records the caller identifier under the key "caller_id".
// If id is empty, it returns an empty Attr.
func CallerID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("caller_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
