// Package vcstest builds small in-memory repositories with controlled
// topologies, for tests that need exact histories (merges, explicit
// parents, known authors) without touching the filesystem.
package vcstest

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"

	"github.com/dnbln/upsilon/pkg/vcs"
)

// Fixture is an in-memory repository under construction
type Fixture struct {
	t    *testing.T
	repo *git.Repository
	fs   billy.Filesystem
	wt   *git.Worktree
	// commit timestamps advance by a minute per commit so ordering
	// stays deterministic
	clock time.Time
}

// NewFixture initializes an empty in-memory repository
func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	fs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), fs)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &Fixture{
		t:     t,
		repo:  repo,
		fs:    fs,
		wt:    wt,
		clock: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// WriteFile stages a file with the given content
func (f *Fixture) WriteFile(path, content string) {
	f.t.Helper()
	require.NoError(f.t, util.WriteFile(f.fs, path, []byte(content), 0o644))
	_, err := f.wt.Add(path)
	require.NoError(f.t, err)
}

// Commit creates a commit authored by the given name/email. Explicit
// parents override the current HEAD; pass none for a linear history.
func (f *Fixture) Commit(msg, name, email string, parents ...plumbing.Hash) plumbing.Hash {
	f.t.Helper()
	f.clock = f.clock.Add(time.Minute)
	sig := &object.Signature{Name: name, Email: email, When: f.clock}
	h, err := f.wt.Commit(msg, &git.CommitOptions{
		Author:            sig,
		Committer:         sig,
		Parents:           parents,
		AllowEmptyCommits: true,
	})
	require.NoError(f.t, err)
	return h
}

// Branch points a local branch at the given commit
func (f *Fixture) Branch(name string, h plumbing.Hash) {
	f.t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), h)
	require.NoError(f.t, f.repo.Storer.SetReference(ref))
}

// Repository wraps the fixture for use by the actor
func (f *Fixture) Repository() *vcs.Repository {
	return vcs.WrapRepository(f.repo)
}
