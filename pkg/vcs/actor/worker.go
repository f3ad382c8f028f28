package actor

import (
	"fmt"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/dnbln/upsilon/pkg/errors"
	"github.com/dnbln/upsilon/pkg/vcs"
	"github.com/dnbln/upsilon/pkg/vcs/status"
)

// Worker is the single goroutine owning a native repository and its
// Store. It services requests one at a time: no native call ever runs
// concurrently with another for the same session.
type Worker struct {
	repo     *vcs.Repository
	store    *Store
	inbound  <-chan Request
	outbound *responseQueue
	l        *zap.Logger

	// inflight tracks native-call re-entrancy; its high-water mark
	// must never exceed 1
	inflight    atomic.Int32
	maxInflight atomic.Int32
}

// WorkerOption is a functor to build a worker with some options
type WorkerOption func(*Worker)

// WithWorkerLogger sets the worker logger
func WithWorkerLogger(l *zap.Logger) WorkerOption {
	return func(w *Worker) {
		if l != nil {
			w.l = l
		}
	}
}

func newWorker(repo *vcs.Repository, inbound <-chan Request, outbound *responseQueue, opts ...WorkerOption) *Worker {
	w := &Worker{
		repo:     repo,
		store:    NewStore(),
		inbound:  inbound,
		outbound: outbound,
		l:        zap.NewNop(),
	}
	for _, apply := range opts {
		apply(w)
	}
	return w
}

// MaxInflight reports the high-water mark of concurrently executing
// native calls observed so far.
func (w *Worker) MaxInflight() int32 {
	return w.maxInflight.Load()
}

// Run is the actor loop. It ends when a MsgClose is serviced (after
// answering everything enqueued before it, then emitting CloseRelay)
// or when the inbound channel is closed without one, in which case it
// ends silently. Either way the outbound queue is closed so the
// demultiplexer terminates too.
func (w *Worker) Run() {
	defer w.outbound.close()
	for req := range w.inbound {
		if _, shutdown := req.Payload.(MsgClose); shutdown {
			w.l.Debug("vcs worker shutting down")
			w.outbound.push(Response{ID: req.ID, Payload: RespCloseRelay{}})
			return
		}
		w.outbound.push(Response{ID: req.ID, Payload: w.serve(req.Payload)})
	}
	w.l.Debug("vcs worker inbound disconnected")
}

func (w *Worker) serve(msg Message) ResponsePayload {
	cur := w.inflight.Inc()
	if cur > w.maxInflight.Load() {
		w.maxInflight.Store(cur)
	}
	defer w.inflight.Dec()

	op := operationName(msg)
	start := time.Now()
	payload := w.dispatch(msg)
	failed := false
	if e, isErr := payload.(RespError); isErr {
		failed = true
		w.l.Debug("vcs operation failed", zap.String("operation", op), zap.Error(e.Err))
	}
	recordRequest(op, start, failed)
	return payload
}

// dispatch performs the native call(s) for one request. Every native
// failure is caught here and turned into RespError: a bad request
// never stops the loop.
func (w *Worker) dispatch(msg Message) ResponsePayload {
	switch m := msg.(type) {
	case MsgOpenCommit:
		c, err := w.repo.FindCommit(m.SHA)
		if err != nil {
			return RespError{Err: err}
		}
		return RespOpenCommit{Commit: w.store.PushCommit(c)}

	case MsgOpenBranch:
		b, err := w.repo.FindBranch(m.Name)
		if err != nil {
			return RespError{Err: err}
		}
		return RespOpenBranch{Branch: w.store.PushBranch(b)}

	case MsgOpenRevspec:
		r, err := w.repo.ParseRevspec(m.Spec)
		if err != nil {
			return RespError{Err: err}
		}
		return RespOpenRevspec{Revspec: w.store.PushRevspec(r)}

	case MsgCommitSHA:
		return RespCommitSHA{SHA: w.store.Commit(m.Commit).SHA()}

	case MsgCommitMessage:
		return RespCommitMessage{Message: w.store.Commit(m.Commit).Message()}

	case MsgCommitAuthor:
		return RespCommitAuthor{Author: w.store.Commit(m.Commit).Author()}

	case MsgCommitCommitter:
		return RespCommitCommitter{Committer: w.store.Commit(m.Commit).Committer()}

	case MsgCommitParent:
		p, err := w.store.Commit(m.Commit).Parent(m.Index)
		if err != nil {
			return RespError{Err: err}
		}
		return RespCommitParent{Parent: w.store.PushCommit(p)}

	case MsgCommitParents:
		parents, err := w.store.Commit(m.Commit).Parents()
		if err != nil {
			return RespError{Err: err}
		}
		handles := make([]CommitHandle, 0, len(parents))
		for _, p := range parents {
			handles = append(handles, w.store.PushCommit(p))
		}
		return RespCommitParents{Parents: handles}

	case MsgCommitTree:
		t, err := w.store.Commit(m.Commit).Tree()
		if err != nil {
			return RespError{Err: err}
		}
		return RespCommitTree{Tree: w.store.PushTree(t)}

	case MsgCommitBlobAtPath:
		blob, err := w.repo.BlobAtPath(w.store.Commit(m.Commit), m.Path)
		if err != nil {
			return RespError{Err: err}
		}
		return RespCommitBlob{Blob: blob}

	case MsgCommitReadme:
		blob, err := w.repo.ReadmeBlob(w.store.Commit(m.Commit))
		if err != nil {
			if errorIsNoReadme(err) {
				return RespNone{}
			}
			return RespError{Err: err}
		}
		return RespCommitReadme{Blob: blob}

	case MsgBranchName:
		return RespBranchName{Name: w.store.Branch(m.Branch).Name()}

	case MsgBranchCommit:
		c, err := w.store.Branch(m.Branch).Commit()
		if err != nil {
			return RespError{Err: err}
		}
		return RespBranchCommit{Commit: w.store.PushCommit(c)}

	case MsgBranchContributors:
		tip, err := w.store.Branch(m.Branch).Commit()
		if err != nil {
			return RespError{Err: err}
		}
		contributors, err := w.branchContributors(tip)
		if err != nil {
			return RespError{Err: err}
		}
		return RespBranchContributors{Contributors: contributors}

	case MsgTreeEntries:
		entries, err := w.repo.TreeEntries(w.store.Tree(m.Tree))
		if err != nil {
			return RespError{Err: err}
		}
		return RespTreeEntries{Entries: entries}

	case MsgWholeTreeEntries:
		entries, err := w.repo.WholeTreeEntries(w.store.Tree(m.Tree))
		if err != nil {
			return RespError{Err: err}
		}
		return RespWholeTreeEntries{Entries: entries}

	case MsgRevspecFrom:
		return RespRevspecFrom{Commit: w.store.PushCommit(w.store.Revspec(m.Revspec).From())}

	case MsgRevspecTo:
		to, ok := w.store.Revspec(m.Revspec).To()
		if !ok {
			return RespNone{}
		}
		return RespRevspecTo{Commit: w.store.PushCommit(to)}

	case MsgRevspecDiff:
		spec := w.store.Revspec(m.Revspec)
		to, ok := spec.To()
		if !ok {
			return RespNone{}
		}
		diff, err := w.repo.Diff(spec.From(), to)
		if err != nil {
			return RespError{Err: err}
		}
		return RespRevspecDiff{Diff: diff}

	default:
		// MsgClose is intercepted by Run; anything else here means the
		// closed union grew without a handler
		panic(fmt.Sprintf("vcs actor: no handler for message %T", msg))
	}
}

func errorIsNoReadme(err error) bool {
	return errors.Is(err, status.ErrNoReadme)
}
