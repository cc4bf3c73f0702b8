package queue

import (
	"context"
	"time"
)

// pollSchedule produces the sleep intervals between unsuccessful attempts:
// initial, initial*factor, initial*factor^2, ... capped at max.
type pollSchedule struct {
	current time.Duration
	max     time.Duration
	factor  float64
}

func newPollSchedule(cfg pollConfig) *pollSchedule {
	return &pollSchedule{
		current: cfg.initial,
		max:     cfg.max,
		factor:  cfg.factor,
	}
}

// next returns the interval to sleep now and grows the following one.
// A positive remaining bounds the returned interval so the caller wakes up
// no later than its deadline.
func (p *pollSchedule) next(remaining time.Duration, bounded bool) time.Duration {
	d := p.current

	grown := time.Duration(float64(p.current) * p.factor)
	if grown > p.max || grown <= 0 {
		grown = p.max
	}
	p.current = grown

	if bounded && remaining < d {
		d = remaining
	}
	return d
}

// sleep pauses for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
