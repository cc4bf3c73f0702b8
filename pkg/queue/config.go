package queue

import "time"

// Backend names accepted by Config.Backend
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds the configuration for a queue
type Config struct {
	Name                string        `env:"QUEUE_NAME" envDefault:"default"`
	Capacity            int           `env:"QUEUE_CAPACITY" envDefault:"0"`
	Backend             string        `env:"QUEUE_BACKEND" envDefault:"memory"`
	InitialPollInterval time.Duration `env:"QUEUE_INITIAL_POLL_INTERVAL" envDefault:"10ms"`
	MaxPollInterval     time.Duration `env:"QUEUE_MAX_POLL_INTERVAL" envDefault:"200ms"`
	GrowthFactor        float64       `env:"QUEUE_POLL_GROWTH_FACTOR" envDefault:"2"`
}

// Options converts the poll settings of cfg into queue options.
// Zero values keep the package defaults.
func (cfg Config) Options() []Option {
	return []Option{
		WithName(cfg.Name),
		WithInitialPollInterval(cfg.InitialPollInterval),
		WithMaxPollInterval(cfg.MaxPollInterval),
		WithGrowthFactor(cfg.GrowthFactor),
	}
}

// NewFromConfig creates a Queue on top of store using cfg.
// Additional options are applied after the config values.
func NewFromConfig[T any](store Store[T], cfg Config, opts ...Option) (*Queue[T], error) {
	return New[T](store, append(cfg.Options(), opts...)...)
}
