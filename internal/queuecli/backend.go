package queuecli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/williamma12/ray/pkg/config"
	"github.com/williamma12/ray/pkg/queue"
	"github.com/williamma12/ray/pkg/redis"
)

// backend is the buffer owner served by queued
type backend struct {
	store  queue.Store[json.RawMessage]
	checks []func(context.Context) error
	close  func() error
}

func openBackend(ctx context.Context, log *slog.Logger, cfg queue.Config) (*backend, error) {
	switch cfg.Backend {
	case queue.BackendMemory, "":
		a, err := queue.NewActor[json.RawMessage](cfg.Capacity, queue.WithActorLogger(log))
		if err != nil {
			return nil, err
		}
		return &backend{store: a, close: a.Close}, nil

	case queue.BackendRedis:
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, err
		}

		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, err
		}

		store, err := redis.NewListStoreFromConfig[json.RawMessage](client, redisCfg, cfg.Name, cfg.Capacity)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return &backend{
			store:  store,
			checks: []func(context.Context) error{redis.Healthcheck(client)},
			close:  client.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown queue backend %q: must be %q or %q", cfg.Backend, queue.BackendMemory, queue.BackendRedis)
	}
}
