package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/williamma12/ray/pkg/queue"
)

// DefaultKeyPrefix is prepended to the queue name to form the list key.
const DefaultKeyPrefix = "queue:"

// putScript appends ARGV[1] unless the list already holds ARGV[2] items.
// A capacity of 0 never rejects.
var putScript = redis.NewScript(`
local capacity = tonumber(ARGV[2])
if capacity > 0 and redis.call('LLEN', KEYS[1]) >= capacity then
	return 0
end
redis.call('RPUSH', KEYS[1], ARGV[1])
return 1
`)

var _ queue.Store[string] = (*ListStore[string])(nil)

// ListStore is a queue.Store kept in a Redis list. Redis runs each command
// and script atomically, which makes the server the single owner of the
// buffer: any number of processes may share one list by name.
type ListStore[T any] struct {
	client   redis.UniversalClient
	key      string
	capacity int
	codec    queue.Codec[T]
}

// StoreOption configures a ListStore
type StoreOption[T any] func(*storeOptions[T])

type storeOptions[T any] struct {
	prefix string
	codec  queue.Codec[T]
}

// WithCodec sets the item encoding; JSON by default.
func WithCodec[T any](c queue.Codec[T]) StoreOption[T] {
	return func(o *storeOptions[T]) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithKeyPrefix replaces DefaultKeyPrefix. An empty prefix uses the bare
// queue name as key.
func WithKeyPrefix[T any](prefix string) StoreOption[T] {
	return func(o *storeOptions[T]) {
		o.prefix = prefix
	}
}

// NewListStore returns a store for the list named name. The list is created
// by the first TryPut; capacity 0 means unbounded.
//
// All stores opened on the same name must agree on capacity, since it is
// checked by each TryPut rather than stored in Redis.
func NewListStore[T any](client redis.UniversalClient, name string, capacity int, opts ...StoreOption[T]) (*ListStore[T], error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if name == "" {
		return nil, ErrEmptyQueueName
	}
	if capacity < 0 {
		return nil, queue.ErrInvalidCapacity
	}

	o := &storeOptions[T]{
		prefix: DefaultKeyPrefix,
		codec:  queue.JSONCodec[T]{},
	}
	for _, opt := range opts {
		opt(o)
	}

	return &ListStore[T]{
		client:   client,
		key:      o.prefix + name,
		capacity: capacity,
		codec:    o.codec,
	}, nil
}

// NewListStoreFromConfig is NewListStore with cfg.KeyPrefix.
func NewListStoreFromConfig[T any](client redis.UniversalClient, cfg Config, name string, capacity int, opts ...StoreOption[T]) (*ListStore[T], error) {
	return NewListStore(client, name, capacity, append([]StoreOption[T]{WithKeyPrefix[T](cfg.KeyPrefix)}, opts...)...)
}

// Key returns the Redis key of the list
func (s *ListStore[T]) Key() string { return s.key }

// TryPut implements queue.Store
func (s *ListStore[T]) TryPut(ctx context.Context, item T) (bool, error) {
	data, err := s.codec.Encode(item)
	if err != nil {
		return false, err
	}

	n, err := putScript.Run(ctx, s.client, []string{s.key}, data, s.capacity).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// TryGet implements queue.Store. An item that fails to decode has already
// been removed from the list; the codec error is returned.
func (s *ListStore[T]) TryGet(ctx context.Context) (T, bool, error) {
	var zero T

	data, err := s.client.LPop(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}

	item, err := s.codec.Decode(data)
	if err != nil {
		return zero, false, err
	}
	return item, true, nil
}

// Size implements queue.Store
func (s *ListStore[T]) Size(ctx context.Context) (int, error) {
	n, err := s.client.LLen(ctx, s.key).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Capacity implements queue.Store
func (s *ListStore[T]) Capacity() int { return s.capacity }

// Clear deletes the list and every item in it.
func (s *ListStore[T]) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
