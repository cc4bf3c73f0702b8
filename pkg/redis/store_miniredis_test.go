package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamma12/ray/pkg/queue"
	"github.com/williamma12/ray/pkg/redis"
)

// inMemoryClient returns a client connected to a fresh in-process Redis
func inMemoryClient(t *testing.T) (*goredis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestListStore_Capacity(t *testing.T) {
	t.Parallel()

	t.Run("bounded list rejects puts when full", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		client, mr := inMemoryClient(t)

		s, err := redis.NewListStore[int](client, "bounded", 2)
		require.NoError(t, err)

		for _, v := range []int{1, 2} {
			ok, err := s.TryPut(ctx, v)
			require.NoError(t, err)
			assert.True(t, ok)
		}

		ok, err := s.TryPut(ctx, 3)
		require.NoError(t, err)
		assert.False(t, ok)

		list, err := mr.List(s.Key())
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, list)

		v, ok, err := s.TryGet(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 1, v)

		ok, err = s.TryPut(ctx, 3)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unbounded list never rejects", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		client, _ := inMemoryClient(t)

		s, err := redis.NewListStore[int](client, "unbounded", 0)
		require.NoError(t, err)

		for i := range 50 {
			ok, err := s.TryPut(ctx, i)
			require.NoError(t, err)
			require.True(t, ok)
		}

		n, err := s.Size(ctx)
		require.NoError(t, err)
		assert.Equal(t, 50, n)

		for i := range 50 {
			v, ok, err := s.TryGet(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, i, v)
		}

		_, ok, err := s.TryGet(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("corrupt item is reported as codec error", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		client, mr := inMemoryClient(t)

		s, err := redis.NewListStore[int](client, "corrupt", 0)
		require.NoError(t, err)

		_, err = mr.Push(s.Key(), "not-a-number")
		require.NoError(t, err)

		_, ok, err := s.TryGet(ctx)
		assert.False(t, ok)
		assert.ErrorIs(t, err, queue.ErrCodec)
	})
}

func TestListStore_QueueTimeouts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, _ := inMemoryClient(t)

	s, err := redis.NewListStore[string](client, "timed", 1)
	require.NoError(t, err)

	q, err := queue.New[string](s)
	require.NoError(t, err)

	require.NoError(t, q.PutNowait(ctx, "a"))
	assert.ErrorIs(t, q.PutNowait(ctx, "b"), queue.ErrFull)

	full, err := q.Full(ctx)
	require.NoError(t, err)
	assert.True(t, full)

	start := time.Now()
	err = q.Put(ctx, "b", queue.WithTimeout(200*time.Millisecond))
	elapsed := time.Since(start)
	assert.ErrorIs(t, err, queue.ErrFull)
	assert.GreaterOrEqual(t, elapsed, 200*time.Millisecond)
	assert.Less(t, elapsed, 200*time.Millisecond+queue.DefaultMaxPollInterval)

	v, err := q.GetNowait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	_, err = q.GetNowait(ctx)
	assert.ErrorIs(t, err, queue.ErrEmpty)
}
