package remote

import "time"

// Config holds the listener settings of a queue server.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// ClientConfig holds the settings of a client talking to a queue server.
type ClientConfig struct {
	URL     string        `env:"QUEUE_REMOTE_URL" envDefault:"http://localhost:8080"`
	Timeout time.Duration `env:"QUEUE_REMOTE_TIMEOUT" envDefault:"5s"` // per round trip
}

// NewServerFromConfig creates a Server from cfg; explicit options win.
func NewServerFromConfig(cfg Config, opts ...ServerOption) *Server {
	configOpts := make([]ServerOption, 0, 5)

	if cfg.Addr != "" {
		configOpts = append(configOpts, WithAddr(cfg.Addr))
	}
	if cfg.ReadTimeout > 0 {
		configOpts = append(configOpts, WithReadTimeout(cfg.ReadTimeout))
	}
	if cfg.WriteTimeout > 0 {
		configOpts = append(configOpts, WithWriteTimeout(cfg.WriteTimeout))
	}
	if cfg.IdleTimeout > 0 {
		configOpts = append(configOpts, WithIdleTimeout(cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout > 0 {
		configOpts = append(configOpts, WithShutdownTimeout(cfg.ShutdownTimeout))
	}

	return NewServer(append(configOpts, opts...)...)
}
