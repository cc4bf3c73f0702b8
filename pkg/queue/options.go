package queue

import (
	"fmt"
	"log/slog"
	"time"
)

const (
	// DefaultName is the queue name used in logs and metric labels when none is given
	DefaultName = "default"

	DefaultInitialPollInterval = 10 * time.Millisecond
	DefaultMaxPollInterval     = 200 * time.Millisecond
	DefaultGrowthFactor        = 2.0
)

type pollConfig struct {
	initial time.Duration
	max     time.Duration
	factor  float64
}

func (c pollConfig) validate() error {
	if c.initial <= 0 || c.max <= 0 {
		return fmt.Errorf("%w: poll intervals must be positive", ErrInvalidPollConfig)
	}
	if c.max < c.initial {
		return fmt.Errorf("%w: max poll interval %s is below initial %s", ErrInvalidPollConfig, c.max, c.initial)
	}
	if c.factor < 1 {
		return fmt.Errorf("%w: growth factor %v must be at least 1", ErrInvalidPollConfig, c.factor)
	}
	return nil
}

// Option is a functional option for configuring a Queue
type Option func(*options)

type options struct {
	name    string
	poll    pollConfig
	logger  *slog.Logger
	metrics *Metrics
}

// WithName sets the queue name reported in logs and metrics
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithInitialPollInterval sets the first sleep after an unsuccessful attempt
func WithInitialPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.poll.initial = d
		}
	}
}

// WithMaxPollInterval caps the sleep between attempts. It also bounds how
// late a waiter may notice a freed slot or a new item.
func WithMaxPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.poll.max = d
		}
	}
}

// WithGrowthFactor sets the multiplier applied to the interval after each
// unsuccessful attempt. A factor of 1 polls at a fixed rate.
func WithGrowthFactor(f float64) Option {
	return func(o *options) {
		if f > 0 {
			o.poll.factor = f
		}
	}
}

// WithLogger sets the logger for the queue
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records attempts, outcomes and wait times into m
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// CallOption adjusts a single Put or Get call
type CallOption func(*callOptions)

type callOptions struct {
	block      bool
	timeout    time.Duration
	hasTimeout bool
	delay      time.Duration
}

// NonBlocking makes the call try exactly once and fail with ErrFull or
// ErrEmpty instead of waiting. Any timeout is ignored.
func NonBlocking() CallOption {
	return func(o *callOptions) {
		o.block = false
	}
}

// WithTimeout bounds how long a blocking call waits. A zero timeout tries
// once; a negative one makes the call fail with ErrInvalidTimeout.
func WithTimeout(d time.Duration) CallOption {
	return func(o *callOptions) {
		o.timeout = d
		o.hasTimeout = true
	}
}

// WithDelay postpones the first attempt by d. The delay is not counted
// against the timeout.
func WithDelay(d time.Duration) CallOption {
	return func(o *callOptions) {
		if d > 0 {
			o.delay = d
		}
	}
}

func newCallOptions(opts []CallOption) callOptions {
	o := callOptions{block: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ActorOption is a functional option for configuring an Actor
type ActorOption func(*actorOptions)

type actorOptions struct {
	mailboxCapacity int
	logger          *slog.Logger
}

// WithMailboxCapacity sets the initial capacity of the actor's request mailbox
func WithMailboxCapacity(n int) ActorOption {
	return func(o *actorOptions) {
		if n > 0 {
			o.mailboxCapacity = n
		}
	}
}

// WithActorLogger sets the logger for the actor
func WithActorLogger(logger *slog.Logger) ActorOption {
	return func(o *actorOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
