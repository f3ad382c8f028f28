package actor

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseQueueOrdering(t *testing.T) {
	q := newResponseQueue()
	for i := 1; i <= 5; i++ {
		q.push(Response{ID: RequestID(i)})
	}
	for i := 1; i <= 5; i++ {
		r, ok := q.pop()
		require.True(t, ok)
		assert.Equal(t, RequestID(i), r.ID)
	}
	assert.Equal(t, 0, q.len())
}

func TestResponseQueueDrainsAfterClose(t *testing.T) {
	q := newResponseQueue()
	q.push(Response{ID: 1})
	q.push(Response{ID: 2})
	q.close()

	// queued responses stay poppable after close
	r, ok := q.pop()
	require.True(t, ok)
	assert.Equal(t, RequestID(1), r.ID)
	r, ok = q.pop()
	require.True(t, ok)
	assert.Equal(t, RequestID(2), r.ID)

	_, ok = q.pop()
	assert.False(t, ok)

	// push after close is dropped
	q.push(Response{ID: 3})
	_, ok = q.pop()
	assert.False(t, ok)
}

func TestResponseQueueBlockingPop(t *testing.T) {
	q := newResponseQueue()

	var wg sync.WaitGroup
	wg.Add(1)
	got := make([]RequestID, 0, 10)
	go func() {
		defer wg.Done()
		for {
			r, ok := q.pop()
			if !ok {
				return
			}
			got = append(got, r.ID)
		}
	}()

	for i := 1; i <= 10; i++ {
		q.push(Response{ID: RequestID(i)})
	}
	q.close()
	wg.Wait()

	require.Len(t, got, 10)
	for i, id := range got {
		assert.Equal(t, RequestID(i+1), id)
	}
}
