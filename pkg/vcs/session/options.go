package session

import (
	"go.uber.org/zap"
)

type settings struct {
	logger        *zap.Logger
	queueCapacity int
}

func defaultSettings() settings {
	return settings{
		logger:        zap.NewNop(),
		queueCapacity: 64,
	}
}

// Option is a functor to open a session with some options
type Option func(*settings)

// WithLogger sets the session logger. The session id is appended as a
// field on every line.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithQueueCapacity sets the capacity of the worker's inbound queue
func WithQueueCapacity(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.queueCapacity = n
		}
	}
}
