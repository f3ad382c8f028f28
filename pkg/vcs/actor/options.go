package actor

import (
	"go.uber.org/zap"
)

// defaultQueueCapacity bounds the inbound queue when no option is given
const defaultQueueCapacity = 64

type settings struct {
	queueCapacity int
	logger        *zap.Logger
}

func defaultSettings() settings {
	return settings{
		queueCapacity: defaultQueueCapacity,
		logger:        zap.NewNop(),
	}
}

// Option is a functor to spawn a session with some options
type Option func(*settings)

// WithQueueCapacity sets the capacity of the bounded inbound queue.
// Sends block once this many requests are waiting for the worker.
func WithQueueCapacity(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.queueCapacity = n
		}
	}
}

// WithLogger sets the logger shared by the worker and the client
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
