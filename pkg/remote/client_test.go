package remote_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamma12/ray/pkg/async"
	"github.com/williamma12/ray/pkg/callid"
	"github.com/williamma12/ray/pkg/queue"
	"github.com/williamma12/ray/pkg/remote"
)

type task struct {
	ID   int    `json:"id"`
	Kind string `json:"kind"`
}

func newServer(t *testing.T, capacity int, opts ...remote.HandlerOption) *httptest.Server {
	t.Helper()

	h, err := remote.NewHandler(newActor(t, capacity), opts...)
	require.NoError(t, err)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestDial(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("learns capacity", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, 5)
		c, err := remote.Dial[task](ctx, srv.URL+"/")
		require.NoError(t, err)
		assert.Equal(t, 5, c.Capacity())
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()

		for _, u := range []string{"", "queued:8080", "ftp://queued", "http://"} {
			_, err := remote.Dial[task](ctx, u)
			assert.ErrorIs(t, err, remote.ErrInvalidURL, u)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := remote.Dial[task](ctx, url)
		assert.ErrorIs(t, err, remote.ErrUnavailable)
	})

	t.Run("from config", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, 0)
		c, err := remote.DialFromConfig[task](ctx, remote.ClientConfig{URL: srv.URL, Timeout: time.Second})
		require.NoError(t, err)
		assert.Equal(t, 0, c.Capacity())
	})
}

func TestClient_Primitives(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv := newServer(t, 2)
	c, err := remote.Dial[task](ctx, srv.URL)
	require.NoError(t, err)

	_, ok, err := c.TryGet(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	for i := 1; i <= 2; i++ {
		ok, err := c.TryPut(ctx, task{ID: i, Kind: "email"})
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err = c.TryPut(ctx, task{ID: 3})
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := c.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, ok, err := c.TryGet(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, task{ID: 1, Kind: "email"}, got)
}

func TestClient_Queue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv := newServer(t, 1)

	producerStore, err := remote.Dial[int](ctx, srv.URL)
	require.NoError(t, err)
	consumerStore, err := remote.Dial[int](ctx, srv.URL)
	require.NoError(t, err)

	producer, err := queue.New[int](producerStore)
	require.NoError(t, err)
	consumer, err := queue.New[int](consumerStore)
	require.NoError(t, err)

	assert.Equal(t, 1, producer.Capacity())

	require.NoError(t, producer.PutNowait(ctx, 0))
	assert.ErrorIs(t, producer.PutNowait(ctx, 1), queue.ErrFull)

	full, err := consumer.Full(ctx)
	require.NoError(t, err)
	assert.True(t, full)

	puts := make([]*async.Future[struct{}], 0, 9)
	for i := 1; i < 10; i++ {
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

	assert.Equal(t, 0, got[0])
	sort.Ints(got)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)

	_, err = consumer.Get(ctx, queue.WithTimeout(50*time.Millisecond))
	assert.ErrorIs(t, err, queue.ErrEmpty)
}

func TestClient_TransportErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var broken atomic.Bool
	malformed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if broken.Load() {
			_, _ = w.Write([]byte("{not json"))
			return
		}
		_, _ = w.Write([]byte(`{"size":0,"capacity":0}`))
	}))
	t.Cleanup(malformed.Close)

	c, err := remote.Dial[int](ctx, malformed.URL)
	require.NoError(t, err)
	q, err := queue.New[int](c)
	require.NoError(t, err)

	broken.Store(true)

	_, err = q.Qsize(ctx)
	assert.ErrorIs(t, err, queue.ErrTransport)
	assert.ErrorIs(t, err, remote.ErrMalformed)

	// the server rejects the request; the queue does not retry it
	var puts atomic.Int64
	rejecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == remote.PathSize {
			_, _ = w.Write([]byte(`{"size":0,"capacity":0}`))
			return
		}
		puts.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	t.Cleanup(rejecting.Close)

	c2, err := remote.Dial[int](ctx, rejecting.URL)
	require.NoError(t, err)
	q2, err := queue.New[int](c2)
	require.NoError(t, err)

	err = q2.Put(ctx, 1)
	assert.ErrorIs(t, err, queue.ErrTransport)
	assert.ErrorIs(t, err, remote.ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, int64(1), puts.Load())
}

func TestClient_CallerHeader(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	seen := make(chan string, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get(callid.Header)
		_, _ = w.Write([]byte(`{"size":0,"capacity":0}`))
	}))
	t.Cleanup(srv.Close)

	c, err := remote.Dial(ctx, srv.URL, remote.WithCallerID[int]("producer-1"))
	require.NoError(t, err)
	assert.Equal(t, "producer-1", <-seen)

	_, err = c.Size(callid.WithContext(ctx, "request-9"))
	require.NoError(t, err)
	assert.Equal(t, "request-9", <-seen)
}
