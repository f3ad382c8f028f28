// Package actor bridges the synchronous, single-owner native git
// library with any number of concurrent callers. One worker goroutine
// owns the repository and its handle store; callers talk to it through
// a correlated request/response protocol and never see native state.
package actor

import (
	"context"
	"fmt"
	"sync"

	opentracing "github.com/opentracing/opentracing-go"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/dnbln/upsilon/pkg/vcs"
	"github.com/dnbln/upsilon/pkg/vcs/actor/status"
)

// Client is the caller-facing handle of a session. It allocates
// request ids, tracks the callers awaiting a response and feeds the
// worker's inbound queue. Safe for concurrent use.
type Client struct {
	l        *zap.Logger
	inbound  chan<- Request
	outbound *responseQueue

	nextID atomic.Uint64
	closed atomic.Bool

	mu      sync.Mutex
	pending map[RequestID]chan Response

	// done is closed when the demultiplexer terminates, either by
	// CloseRelay or by worker disconnection
	done chan struct{}
}

// Spawn builds the worker/client pair for an open repository, starts
// the worker loop and the demultiplexer, and hands back the client.
// The worker is returned too so lifecycle tests can observe it; normal
// callers only keep the client.
func Spawn(repo *vcs.Repository, opts ...Option) (*Client, *Worker) {
	s := defaultSettings()
	for _, apply := range opts {
		apply(&s)
	}

	inbound := make(chan Request, s.queueCapacity)
	outbound := newResponseQueue()

	w := newWorker(repo, inbound, outbound, WithWorkerLogger(s.logger))
	c := &Client{
		l:        s.logger,
		inbound:  inbound,
		outbound: outbound,
		pending:  make(map[RequestID]chan Response),
		done:     make(chan struct{}),
	}

	go w.Run()
	go c.demux()

	return c, w
}

// Send ships an already-built message, awaits the correlated response
// and returns its payload. Callers compose their
// own timeouts through ctx; cancellation after the request has been
// enqueued abandons the response rather than cancelling the work.
func (c *Client) Send(ctx context.Context, msg Message) (ResponsePayload, error) {
	if c.closed.Load() {
		return nil, status.ErrSessionClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	span, ctx := opentracing.StartSpanFromContext(ctx, "vcs.actor.send")
	span.SetTag("vcs.operation", operationName(msg))
	defer span.Finish()

	id := RequestID(c.nextID.Inc())
	resolver := make(chan Response, 1)

	c.mu.Lock()
	c.pending[id] = resolver
	c.mu.Unlock()

	select {
	case c.inbound <- Request{ID: id, Payload: msg}:
	case <-ctx.Done():
		// the worker never saw this id: withdraw the resolver
		c.withdraw(id)
		return nil, ctx.Err()
	case <-c.done:
		c.withdraw(id)
		return nil, status.ErrSessionClosed
	}

	select {
	case resp := <-resolver:
		return resp.Payload, nil
	case <-ctx.Done():
		// the response is still computed; the demultiplexer later
		// fulfills the abandoned resolver and the value is dropped
		return nil, ctx.Err()
	case <-c.done:
		// the demultiplexer answers every id it saw before quitting;
		// prefer a response that raced the shutdown
		select {
		case resp := <-resolver:
			return resp.Payload, nil
		default:
		}
		return nil, status.ErrSessionClosed
	}
}

func (c *Client) withdraw(id RequestID) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// Close sends the shutdown request, best effort: when the worker is
// already gone there is nobody left to notify and the failure is
// ignored. Close is idempotent and returns without waiting for the
// worker; use Done to await full teardown.
func (c *Client) Close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	select {
	case c.inbound <- Request{ID: CloseRequestID, Payload: MsgClose{}}:
	case <-c.done:
	}
}

// Done is closed once the demultiplexer has terminated
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// demux routes every response to the caller awaiting its id. It stops
// on CloseRelay, or when the outbound queue closes because the worker
// is gone.
func (c *Client) demux() {
	defer close(c.done)
	for {
		resp, ok := c.outbound.pop()
		if !ok {
			c.l.Debug("vcs demultiplexer: outbound queue closed")
			return
		}
		if _, relay := resp.Payload.(RespCloseRelay); relay {
			return
		}

		c.mu.Lock()
		resolver, found := c.pending[resp.ID]
		delete(c.pending, resp.ID)
		c.mu.Unlock()

		if !found {
			// every id sent is guaranteed exactly one response; a
			// response without a pending entry means the correlation
			// mechanism itself is broken
			panic(fmt.Sprintf("vcs actor: no pending resolver for response id %d", resp.ID))
		}
		resolver <- resp
	}
}
