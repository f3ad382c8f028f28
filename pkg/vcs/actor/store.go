package actor

import (
	"github.com/dnbln/upsilon/pkg/vcs"
)

// CommitHandle identifies a commit previously opened by the worker
type CommitHandle uint32

// BranchHandle identifies a branch previously opened by the worker
type BranchHandle uint32

// TreeHandle identifies a tree previously opened by the worker
type TreeHandle uint32

// RevspecHandle identifies a revspec previously opened by the worker
type RevspecHandle uint32

// Store holds the native objects a session has opened so far. Native
// objects never cross the worker boundary: callers only ever see the
// handles minted here, and the worker re-resolves them on every use.
//
// The sequences are append-only for the lifetime of the session, so a
// handle once minted stays valid until the session ends. Indexing with
// a handle this Store did not produce is a programmer error and panics:
// handles never leave the process, so there is no untrusted input to
// validate against.
type Store struct {
	branches []vcs.Branch
	commits  []vcs.Commit
	trees    []vcs.Tree
	revspecs []vcs.Revspec
}

// NewStore creates an empty per-session store
func NewStore() *Store {
	return &Store{}
}

// PushBranch appends a branch and returns its handle
func (s *Store) PushBranch(b vcs.Branch) BranchHandle {
	s.branches = append(s.branches, b)
	return BranchHandle(len(s.branches) - 1)
}

// PushCommit appends a commit and returns its handle. Insertion
// deduplicates on SHA: pushing a commit already held returns the
// existing handle. Sessions hold few objects, a linear scan is fine.
func (s *Store) PushCommit(c vcs.Commit) CommitHandle {
	sha := c.SHA()
	for i := range s.commits {
		if s.commits[i].SHA() == sha {
			return CommitHandle(i)
		}
	}
	s.commits = append(s.commits, c)
	return CommitHandle(len(s.commits) - 1)
}

// PushTree appends a tree and returns its handle
func (s *Store) PushTree(t vcs.Tree) TreeHandle {
	s.trees = append(s.trees, t)
	return TreeHandle(len(s.trees) - 1)
}

// PushRevspec appends a revspec and returns its handle
func (s *Store) PushRevspec(r vcs.Revspec) RevspecHandle {
	s.revspecs = append(s.revspecs, r)
	return RevspecHandle(len(s.revspecs) - 1)
}

// Branch resolves a branch handle
func (s *Store) Branch(h BranchHandle) vcs.Branch {
	return s.branches[h]
}

// Commit resolves a commit handle
func (s *Store) Commit(h CommitHandle) vcs.Commit {
	return s.commits[h]
}

// Tree resolves a tree handle
func (s *Store) Tree(h TreeHandle) vcs.Tree {
	return s.trees[h]
}

// Revspec resolves a revspec handle
func (s *Store) Revspec(h RevspecHandle) vcs.Revspec {
	return s.revspecs[h]
}

// NumCommits reports how many distinct commits the session holds
func (s *Store) NumCommits() int {
	return len(s.commits)
}
