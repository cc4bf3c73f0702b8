package queue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamma12/ray/pkg/queue"
)

func TestJSONCodec(t *testing.T) {
	t.Parallel()

	type job struct {
		ID   int      `json:"id"`
		Tags []string `json:"tags"`
	}

	codec := queue.JSONCodec[job]{}

	data, err := codec.Encode(job{ID: 7, Tags: []string{"a"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"tags":["a"]}`, string(data))

	got, err := codec.Decode([]byte(`{"id":9}`))
	require.NoError(t, err)
	assert.Equal(t, job{ID: 9}, got)

	_, err = codec.Decode([]byte(`{"id":"nine"}`))
	assert.ErrorIs(t, err, queue.ErrCodec)

	_, err = queue.JSONCodec[chan int]{}.Encode(make(chan int))
	assert.ErrorIs(t, err, queue.ErrCodec)
}
