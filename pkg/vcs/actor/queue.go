package actor

import (
	"sync"
)

// responseQueue is the unbounded outbound queue between the worker and
// the demultiplexer. The worker must never block on a response send, so
// the queue grows as needed; the demultiplexer drains it promptly.
type responseQueue struct {
	mu     sync.Mutex
	more   *sync.Cond
	items  []Response
	closed bool
}

func newResponseQueue() *responseQueue {
	q := &responseQueue{}
	q.more = sync.NewCond(&q.mu)
	return q
}

// push appends a response. Pushing on a closed queue is a no-op: the
// worker may race its final responses against an external teardown.
func (q *responseQueue) push(r Response) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, r)
	q.more.Signal()
}

// pop blocks until a response is available or the queue is closed and
// drained. The second return is false only when nothing more will come.
func (q *responseQueue) pop() (Response, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.more.Wait()
	}
	if len(q.items) == 0 {
		return Response{}, false
	}
	r := q.items[0]
	q.items = q.items[1:]
	return r, true
}

// close marks the end of the response stream. Responses already queued
// remain poppable.
func (q *responseQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.more.Broadcast()
}

func (q *responseQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
