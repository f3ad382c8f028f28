// Package status exports errors produced by the vcs package.
package status

import (
	"github.com/dnbln/upsilon/pkg/errors"
)

var (
	// ErrNotFound indicates the requested object does not exist in the repository
	ErrNotFound = errors.New("object not found")

	// ErrBadSHA indicates a commit lookup with a malformed SHA
	ErrBadSHA = errors.New("malformed commit sha")

	// ErrBadRevspec indicates a revision specification that could not be parsed or resolved
	ErrBadRevspec = errors.New("invalid revision specification")

	// ErrNoMergeBase indicates that no common ancestor exists for the given commits
	ErrNoMergeBase = errors.New("no merge base")

	// ErrNoReadme indicates a tree without any recognized readme file
	ErrNoReadme = errors.New("no readme in tree")
)
