package queue

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vladopajic/go-actor/actor"

	"github.com/williamma12/ray/pkg/logger"
)

type opKind uint8

const (
	opPut opKind = iota
	opGet
	opSize
)

type request[T any] struct {
	op    opKind
	item  T
	reply chan response[T]
}

type response[T any] struct {
	item T
	ok   bool
	size int
}

var (
	_ Store[int]   = (*Actor[int])(nil)
	_ actor.Worker = (*owner[int])(nil)
)

// owner holds the buffer. Only the actor goroutine touches it.
type owner[T any] struct {
	capacity int
	buf      []T
	mbx      actor.Mailbox[request[T]]
}

func (o *owner[T]) DoWork(ctx actor.Context) actor.WorkerStatus {
	select {
	case <-ctx.Done():
		return actor.WorkerEnd
	case req, ok := <-o.mbx.ReceiveC():
		if !ok {
			return actor.WorkerEnd
		}
		// reply is buffered so the owner never blocks on a caller
		req.reply <- o.apply(req)
		return actor.WorkerContinue
	}
}

func (o *owner[T]) apply(req request[T]) response[T] {
	switch req.op {
	case opPut:
		if o.capacity > 0 && len(o.buf) >= o.capacity {
			return response[T]{size: len(o.buf)}
		}
		o.buf = append(o.buf, req.item)
		return response[T]{ok: true, size: len(o.buf)}
	case opGet:
		if len(o.buf) == 0 {
			return response[T]{}
		}
		var zero T
		item := o.buf[0]
		o.buf[0] = zero
		o.buf = o.buf[1:]
		if len(o.buf) == 0 {
			o.buf = nil
		}
		return response[T]{item: item, ok: true, size: len(o.buf)}
	default:
		return response[T]{ok: true, size: len(o.buf)}
	}
}

// Actor is an in-process Store. The buffer is owned by a single goroutine
// that receives requests through a mailbox and applies them one at a time,
// so callers never share memory with the buffer and never block inside it.
type Actor[T any] struct {
	owner  *owner[T]
	self   actor.Actor
	done   chan struct{}
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewActor creates a store with the given capacity (0 means unbounded) and
// starts its owner goroutine. Call Close to stop it.
func NewActor[T any](capacity int, opts ...ActorOption) (*Actor[T], error) {
	if capacity < 0 {
		return nil, ErrInvalidCapacity
	}

	options := &actorOptions{
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(options)
	}

	mbxOpts := make([]actor.MailboxOption, 0, 1)
	if options.mailboxCapacity > 0 {
		mbxOpts = append(mbxOpts, actor.OptCapacity(options.mailboxCapacity))
	}

	o := &owner[T]{
		capacity: capacity,
		mbx:      actor.NewMailbox[request[T]](mbxOpts...),
	}

	a := &Actor[T]{
		owner:  o,
		self:   actor.Combine(actor.New(o), o.mbx).Build(),
		done:   make(chan struct{}),
		logger: options.logger,
	}
	a.self.Start()

	a.logger.Debug("store actor started", logger.Capacity(capacity))

	return a, nil
}

// TryPut implements Store
func (a *Actor[T]) TryPut(ctx context.Context, item T) (bool, error) {
	resp, err := a.call(ctx, request[T]{op: opPut, item: item})
	if err != nil {
		return false, err
	}
	return resp.ok, nil
}

// TryGet implements Store
func (a *Actor[T]) TryGet(ctx context.Context) (T, bool, error) {
	resp, err := a.call(ctx, request[T]{op: opGet})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return resp.item, resp.ok, nil
}

// Size implements Store
func (a *Actor[T]) Size(ctx context.Context) (int, error) {
	resp, err := a.call(ctx, request[T]{op: opSize})
	if err != nil {
		return 0, err
	}
	return resp.size, nil
}

// Capacity implements Store
func (a *Actor[T]) Capacity() int {
	return a.owner.capacity
}

// Close stops the owner goroutine. Calls still waiting for an answer and
// all later calls fail with ErrStoreClosed. It is safe to call more than once.
func (a *Actor[T]) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	a.self.Stop()
	close(a.done)

	a.logger.Debug("store actor stopped")
	return nil
}

// call hands req to the owner and waits for its answer. Once the mailbox has
// accepted a request it is always answered, even if ctx is cancelled in the
// meantime, so an item removed by TryGet is never dropped on the floor.
func (a *Actor[T]) call(ctx context.Context, req request[T]) (response[T], error) {
	req.reply = make(chan response[T], 1)

	a.mu.RLock()
	if a.closed {
		a.mu.RUnlock()
		return response[T]{}, ErrStoreClosed
	}
	err := a.owner.mbx.Send(ctx, req)
	a.mu.RUnlock()
	if err != nil {
		return response[T]{}, err
	}

	select {
	case resp := <-req.reply:
		return resp, nil
	case <-a.done:
		select {
		case resp := <-req.reply:
			return resp, nil
		default:
			return response[T]{}, ErrStoreClosed
		}
	}
}
