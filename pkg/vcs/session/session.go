// Package session ties a repository, its actor worker and its client
// into one unit of lifecycle. Sessions are fully independent of each
// other: two repositories open at the same time share no state.
package session

import (
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/dnbln/upsilon/pkg/vcs"
	"github.com/dnbln/upsilon/pkg/vcs/actor"
)

// Session is one open repository and the actor pair serving it
type Session struct {
	id     ksuid.KSUID
	repo   *vcs.Repository
	client *actor.Client
	worker *actor.Worker
	l      *zap.Logger
}

// Open opens the repository at path and starts its worker and
// demultiplexer.
func Open(path string, opts ...Option) (*Session, error) {
	s := defaultSettings()
	for _, apply := range opts {
		apply(&s)
	}
	repo, err := vcs.OpenRepository(path, vcs.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	return start(repo, s), nil
}

// FromRepository starts a session over an already-open repository.
// Used by front ends that open repositories through other means, and
// by tests over in-memory repositories.
func FromRepository(repo *vcs.Repository, opts ...Option) *Session {
	s := defaultSettings()
	for _, apply := range opts {
		apply(&s)
	}
	return start(repo, s)
}

func start(repo *vcs.Repository, s settings) *Session {
	id := ksuid.New()
	logger := s.logger.With(zap.String("session", id.String()))

	client, worker := actor.Spawn(repo,
		actor.WithLogger(logger),
		actor.WithQueueCapacity(s.queueCapacity),
	)

	logger.Debug("vcs session started", zap.String("path", repo.Path()))
	return &Session{
		id:     id,
		repo:   repo,
		client: client,
		worker: worker,
		l:      logger,
	}
}

// ID of the session
func (s *Session) ID() ksuid.KSUID {
	return s.id
}

// Client returns the typed operation surface of the session
func (s *Session) Client() *actor.Client {
	return s.client
}

// Close shuts the session down and waits for the worker and the
// demultiplexer to terminate. Requests already enqueued are still
// answered before the shutdown completes.
func (s *Session) Close() {
	s.client.Close()
	<-s.client.Done()
	s.l.Debug("vcs session closed")
}
