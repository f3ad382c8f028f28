package vcs

import (
	"go.uber.org/zap"

	"github.com/dnbln/upsilon/pkg/errors"
	"github.com/dnbln/upsilon/pkg/vcs/status"
)

// Option is a functor to open a repository with some options
type Option func(*Repository)

// WithLogger sets the logger used by the repository
func WithLogger(l *zap.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.l = l
		}
	}
}

func errorIsNotFound(err error) bool {
	return errors.Is(err, status.ErrNotFound)
}
