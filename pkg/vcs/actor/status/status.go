// Package status exports errors produced by the actor package.
package status

import (
	"github.com/dnbln/upsilon/pkg/errors"
)

var (
	// ErrSessionClosed indicates a send on a client whose session has
	// been shut down
	ErrSessionClosed = errors.New("vcs session closed")
)
