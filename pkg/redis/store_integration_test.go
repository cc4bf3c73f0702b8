package redis_test

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/williamma12/ray/pkg/async"
	"github.com/williamma12/ray/pkg/queue"
	"github.com/williamma12/ray/pkg/redis"
)

const (
	redisImage = "redis:7-alpine"
	redisPort  = "6379/tcp"
)

type job struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestListStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	if !isDockerRunning(ctx) {
		t.Skip("Docker is not running, skipping integration test")
	}

	url, terminate, err := setupRedisBox(ctx)
	require.NoError(t, err)
	defer terminate()

	cfg := redis.Config{
		ConnectionURL:  url,
		RetryAttempts:  5,
		RetryInterval:  200 * time.Millisecond,
		ConnectTimeout: 10 * time.Second,
		KeyPrefix:      "test:",
	}

	client, err := redis.Connect(ctx, cfg)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, redis.Healthcheck(client)(ctx))

	t.Run("primitives", func(t *testing.T) {
		s, err := redis.NewListStoreFromConfig[job](client, cfg, "primitives", 2)
		require.NoError(t, err)
		defer s.Clear(ctx)

		ok, err := s.TryPut(ctx, job{ID: 1, Name: "a"})
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = s.TryPut(ctx, job{ID: 2, Name: "b"})
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.TryPut(ctx, job{ID: 3, Name: "c"})
		require.NoError(t, err)
		assert.False(t, ok)

		n, err := s.Size(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		got, ok, err := s.TryGet(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, job{ID: 1, Name: "a"}, got)

		got, ok, err = s.TryGet(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 2, got.ID)

		_, ok, err = s.TryGet(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("queue across handles", func(t *testing.T) {
		producerStore, err := redis.NewListStoreFromConfig[int](client, cfg, "shared", 3)
		require.NoError(t, err)
		defer producerStore.Clear(ctx)
		consumerStore, err := redis.NewListStoreFromConfig[int](client, cfg, "shared", 3)
		require.NoError(t, err)

		producer, err := queue.New[int](producerStore, queue.WithName("shared"))
		require.NoError(t, err)
		consumer, err := queue.New[int](consumerStore, queue.WithName("shared"))
		require.NoError(t, err)

		puts := make([]*async.Future[struct{}], 0, 10)
		for i := 0; i < 10; i++ {
			puts = append(puts, producer.PutAsync(ctx, i))
		}

		got := make([]int, 0, 10)
		for i := 0; i < 10; i++ {
			v, err := consumer.Get(ctx, queue.WithTimeout(10*time.Second))
			require.NoError(t, err)
			got = append(got, v)
		}
		_, err = async.WaitAll(puts...)
		require.NoError(t, err)

		sort.Ints(got)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)

		_, err = consumer.GetNowait(ctx)
		assert.ErrorIs(t, err, queue.ErrEmpty)
	})
}

func setupRedisBox(ctx context.Context) (string, func(), error) {
	req := testcontainers.ContainerRequest{
		Image:        redisImage,
		ExposedPorts: []string{redisPort},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return "", nil, fmt.Errorf("failed to get host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, redisPort)
	if err != nil {
		_ = container.Terminate(ctx)
		return "", nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	terminate := func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Printf("failed to terminate container: %v\n", err)
		}
	}

	return fmt.Sprintf("redis://%s:%d/0", host, mappedPort.Int()), terminate, nil
}

func isDockerRunning(ctx context.Context) bool {
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}
