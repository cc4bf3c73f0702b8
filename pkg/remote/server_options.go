package remote

import (
	"log/slog"
	"time"
)

// ServerOption configures a Server
type ServerOption func(*serverConfig)

func WithAddr(addr string) ServerOption {
	if addr == "" {
		panic("WithAddr: addr cannot be empty")
	}
	return func(c *serverConfig) { c.addr = addr }
}

func WithReadTimeout(d time.Duration) ServerOption {
	if d <= 0 {
		panic("WithReadTimeout: duration must be > 0")
	}
	return func(c *serverConfig) { c.readTimeout = d }
}

func WithWriteTimeout(d time.Duration) ServerOption {
	if d <= 0 {
		panic("WithWriteTimeout: duration must be > 0")
	}
	return func(c *serverConfig) { c.writeTimeout = d }
}

func WithIdleTimeout(d time.Duration) ServerOption {
	if d <= 0 {
		panic("WithIdleTimeout: duration must be > 0")
	}
	return func(c *serverConfig) { c.idleTimeout = d }
}

func WithShutdownTimeout(d time.Duration) ServerOption {
	if d <= 0 {
		panic("WithShutdownTimeout: duration must be > 0")
	}
	return func(c *serverConfig) { c.shutdownTimeout = d }
}

func WithServerLogger(l *slog.Logger) ServerOption {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
