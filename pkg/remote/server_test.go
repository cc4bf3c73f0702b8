package remote_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamma12/ray/pkg/remote"
)

func TestServer_RunAndShutdown(t *testing.T) {
	t.Parallel()

	h, err := remote.NewHandler(newActor(t, 0))
	require.NoError(t, err)

	srv := remote.NewServer(remote.WithAddr("127.0.0.1:0"), remote.WithShutdownTimeout(time.Second))
	assert.Empty(t, srv.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, h) }()

	require.Eventually(t, func() bool { return srv.Addr() != "" }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + srv.Addr() + remote.PathHealth)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ALIVE", string(body))

	// a second Run on the same server is rejected
	assert.ErrorIs(t, srv.Run(ctx, h), remote.ErrStart)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "run did not finish")
	}
	require.NoError(t, srv.Shutdown(context.Background()))
}

func TestServer_ListenError(t *testing.T) {
	t.Parallel()

	srv := remote.NewServer(remote.WithAddr("127.0.0.1:-1"))
	err := srv.Run(context.Background(), nil)
	assert.ErrorIs(t, err, remote.ErrStart)
}

func TestNewServerFromConfig(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { remote.WithAddr("") })
	assert.Panics(t, func() { remote.WithShutdownTimeout(0) })

	srv := remote.NewServerFromConfig(remote.Config{
		Addr:            "127.0.0.1:0",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutdownTimeout: time.Second,
	})
	assert.NotNil(t, srv)
	assert.NoError(t, srv.Shutdown(context.Background()))
}
