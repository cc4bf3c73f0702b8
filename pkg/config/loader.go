package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// LoadOption adjusts a single Load call
type LoadOption func(*loadOptions)

type loadOptions struct {
	prefix      string
	files       []string
	environment map[string]string
}

// WithPrefix prepends prefix to every env key of the struct, so the same
// config type can be loaded several times, e.g. once per queue:
//
//	config.Load(&jobs, config.WithPrefix("JOBS_"))   // JOBS_QUEUE_CAPACITY
//	config.Load(&mails, config.WithPrefix("MAILS_")) // MAILS_QUEUE_CAPACITY
func WithPrefix(prefix string) LoadOption {
	return func(o *loadOptions) {
		o.prefix = prefix
	}
}

// WithEnvFiles loads the given .env files before parsing. Unlike the default
// .env in the working directory, a missing file is an error.
func WithEnvFiles(paths ...string) LoadOption {
	return func(o *loadOptions) {
		o.files = append(o.files, paths...)
	}
}

// WithEnvironment parses from vars instead of the process environment.
func WithEnvironment(vars map[string]string) LoadOption {
	return func(o *loadOptions) {
		if vars != nil {
			o.environment = vars
		}
	}
}

// Load parses environment variables into the struct pointed to by v using
// its `env` and `envDefault` tags.
//
// The .env file in the working directory is loaded once per process if it
// exists. Variables already set in the environment take precedence over
// values from .env files.
//
// Example:
//
//	type StoreConfig struct {
//		Capacity int    `env:"QUEUE_CAPACITY" envDefault:"0"`
//		Backend  string `env:"QUEUE_BACKEND" envDefault:"memory"`
//	}
//
//	var cfg StoreConfig
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T, opts ...LoadOption) error {
	defaultEnvLoaded.Do(func() {
		// the default .env file is optional
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if len(o.files) > 0 {
		if err := godotenv.Load(o.files...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}

	parsed := *v
	if err := env.ParseWithOptions(&parsed, env.Options{
		Prefix:      o.prefix,
		Environment: o.environment,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	*v = parsed
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// Use it in main for settings the process cannot start without.
func MustLoad[T any](v *T, opts ...LoadOption) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
