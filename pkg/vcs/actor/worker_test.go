package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnbln/upsilon/pkg/vcs/vcstest"
)

func workerFixture(t *testing.T) (*vcstest.Fixture, string) {
	t.Helper()
	f := vcstest.NewFixture(t)
	f.WriteFile("a.txt", "hello\n")
	tip := f.Commit("root", "Ann", "a@x")
	f.Branch("main", tip)
	return f, tip.String()
}

func TestWorkerEchoesRequestIDs(t *testing.T) {
	f, sha := workerFixture(t)

	inbound := make(chan Request, 4)
	outbound := newResponseQueue()
	w := newWorker(f.Repository(), inbound, outbound)

	// the worker never allocates ids, it echoes whatever it received
	inbound <- Request{ID: 7, Payload: MsgOpenCommit{SHA: sha}}
	inbound <- Request{ID: 42, Payload: MsgOpenBranch{Name: "main"}}
	inbound <- Request{ID: CloseRequestID, Payload: MsgClose{}}
	go w.Run()

	r, ok := outbound.pop()
	require.True(t, ok)
	assert.Equal(t, RequestID(7), r.ID)
	assert.IsType(t, RespOpenCommit{}, r.Payload)

	r, ok = outbound.pop()
	require.True(t, ok)
	assert.Equal(t, RequestID(42), r.ID)
	assert.IsType(t, RespOpenBranch{}, r.Payload)

	r, ok = outbound.pop()
	require.True(t, ok)
	assert.Equal(t, CloseRequestID, r.ID)
	assert.IsType(t, RespCloseRelay{}, r.Payload)
}

func TestWorkerDrainsBeforeCloseRelay(t *testing.T) {
	f, sha := workerFixture(t)

	const backlog = 16
	inbound := make(chan Request, backlog+1)
	outbound := newResponseQueue()
	w := newWorker(f.Repository(), inbound, outbound)

	// everything enqueued strictly before Close must be answered
	// before the relay is emitted
	for i := 1; i <= backlog; i++ {
		inbound <- Request{ID: RequestID(i), Payload: MsgOpenCommit{SHA: sha}}
	}
	inbound <- Request{ID: CloseRequestID, Payload: MsgClose{}}
	go w.Run()

	for i := 1; i <= backlog; i++ {
		r, ok := outbound.pop()
		require.True(t, ok)
		assert.Equal(t, RequestID(i), r.ID)
		assert.IsType(t, RespOpenCommit{}, r.Payload)
	}
	r, ok := outbound.pop()
	require.True(t, ok)
	assert.IsType(t, RespCloseRelay{}, r.Payload)

	// nothing after the relay, and the queue is closed
	_, ok = outbound.pop()
	assert.False(t, ok)
}

func TestWorkerEndsSilentlyOnDisconnect(t *testing.T) {
	f, sha := workerFixture(t)

	inbound := make(chan Request, 2)
	outbound := newResponseQueue()
	w := newWorker(f.Repository(), inbound, outbound)

	inbound <- Request{ID: 1, Payload: MsgOpenCommit{SHA: sha}}
	close(inbound)
	go w.Run()

	r, ok := outbound.pop()
	require.True(t, ok)
	assert.Equal(t, RequestID(1), r.ID)

	// no relay: the loop just ends and closes its outbound side
	_, ok = outbound.pop()
	assert.False(t, ok)
}

func TestWorkerErrorsDoNotStopTheLoop(t *testing.T) {
	f, sha := workerFixture(t)

	inbound := make(chan Request, 4)
	outbound := newResponseQueue()
	w := newWorker(f.Repository(), inbound, outbound)

	inbound <- Request{ID: 1, Payload: MsgOpenCommit{SHA: "not-a-sha"}}
	inbound <- Request{ID: 2, Payload: MsgOpenBranch{Name: "no-such-branch"}}
	inbound <- Request{ID: 3, Payload: MsgOpenCommit{SHA: sha}}
	inbound <- Request{ID: CloseRequestID, Payload: MsgClose{}}
	go w.Run()

	r, _ := outbound.pop()
	require.IsType(t, RespError{}, r.Payload)
	r, _ = outbound.pop()
	require.IsType(t, RespError{}, r.Payload)

	// the worker survived both failures
	r, _ = outbound.pop()
	assert.Equal(t, RequestID(3), r.ID)
	assert.IsType(t, RespOpenCommit{}, r.Payload)
	r, _ = outbound.pop()
	assert.IsType(t, RespCloseRelay{}, r.Payload)
}
