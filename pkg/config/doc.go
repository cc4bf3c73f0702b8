// Package config loads process configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// optional .env file in the working directory is read once, then the
// environment is parsed into a struct using `env` and `envDefault` tags.
//
// Every package in this module that needs settings exposes a Config struct
// (queue.Config, redis.Config, remote.ServerConfig, logger.Config), and the
// queued command loads them all through this package.
//
// # Usage
//
//	var cfg queue.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// WithPrefix loads the same struct under a key prefix, which is how several
// queues are configured side by side:
//
//	config.MustLoad(&jobs, config.WithPrefix("JOBS_"))
//
// WithEnvFiles reads extra .env files first and WithEnvironment replaces the
// process environment with a map, which keeps tests free of os.Setenv.
//
// # Error Handling
//
// ErrParsingConfig, ErrLoadingEnvFile and ErrNilPointer can be checked with
// errors.Is. MustLoad panics instead of returning an error.
package config
