package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/williamma12/ray/pkg/callid"
	"github.com/williamma12/ray/pkg/queue"
)

var _ queue.Store[int] = (*Client[int])(nil)

// Client is a queue.Store whose buffer is owned by a queue server in another
// process. Every primitive is a single HTTP round trip; nothing is cached
// locally except the capacity reported when the client was created.
type Client[T any] struct {
	baseURL  string
	http     *http.Client
	codec    queue.Codec[T]
	callerID string
	capacity int
}

// ClientOption configures a Client
type ClientOption[T any] func(*Client[T])

// WithHTTPClient replaces http.DefaultClient
func WithHTTPClient[T any](hc *http.Client) ClientOption[T] {
	return func(c *Client[T]) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithClientCodec sets the item encoding. The codec must produce JSON, since
// items are embedded into JSON request bodies.
func WithClientCodec[T any](codec queue.Codec[T]) ClientOption[T] {
	return func(c *Client[T]) {
		if codec != nil {
			c.codec = codec
		}
	}
}

// WithCallerID sets the id sent with requests whose context carries none.
// A random id is used by default.
func WithCallerID[T any](id string) ClientOption[T] {
	return func(c *Client[T]) {
		if callid.IsValid(id) {
			c.callerID = id
		}
	}
}

// Dial creates a client for the queue server at baseURL and fetches its
// capacity.
func Dial[T any](ctx context.Context, baseURL string, opts ...ClientOption[T]) (*Client[T], error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, baseURL)
	}

	c := &Client[T]{
		baseURL:  strings.TrimRight(u.String(), "/"),
		http:     http.DefaultClient,
		codec:    queue.JSONCodec[T]{},
		callerID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}

	var resp sizeResponse
	if err := c.do(ctx, http.MethodGet, PathSize, nil, &resp); err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	c.capacity = resp.Capacity

	return c, nil
}

// DialFromConfig is Dial with the URL and round trip timeout from cfg.
func DialFromConfig[T any](ctx context.Context, cfg ClientConfig, opts ...ClientOption[T]) (*Client[T], error) {
	hc := &http.Client{Timeout: cfg.Timeout}
	return Dial(ctx, cfg.URL, append([]ClientOption[T]{WithHTTPClient[T](hc)}, opts...)...)
}

// TryPut implements queue.Store
func (c *Client[T]) TryPut(ctx context.Context, item T) (bool, error) {
	data, err := c.codec.Encode(item)
	if err != nil {
		return false, err
	}
	if !json.Valid(data) {
		return false, fmt.Errorf("%w: encoded item is not JSON", queue.ErrCodec)
	}

	var resp putResponse
	if err := c.do(ctx, http.MethodPost, PathPut, putRequest{Item: data}, &resp); err != nil {
		return false, err
	}
	return resp.OK, nil
}

// TryGet implements queue.Store
func (c *Client[T]) TryGet(ctx context.Context) (T, bool, error) {
	var zero T

	var resp getResponse
	if err := c.do(ctx, http.MethodPost, PathGet, nil, &resp); err != nil {
		return zero, false, err
	}
	if !resp.OK {
		return zero, false, nil
	}

	item, err := c.codec.Decode(resp.Item)
	if err != nil {
		return zero, false, err
	}
	return item, true, nil
}

// Size implements queue.Store
func (c *Client[T]) Size(ctx context.Context) (int, error) {
	var resp sizeResponse
	if err := c.do(ctx, http.MethodGet, PathSize, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Size, nil
}

// Capacity implements queue.Store
func (c *Client[T]) Capacity() int { return c.capacity }

func (c *Client[T]) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Join(queue.ErrCodec, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	callid.SetHeader(ctx, req, c.callerID)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&e)
		return fmt.Errorf("%w: %s %s: %d %s", ErrUnexpectedStatus, method, path, resp.StatusCode, e.Error)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrMalformed, err)
	}
	return nil
}
