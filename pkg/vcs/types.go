package vcs

import (
	"io"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/dnbln/upsilon/pkg/model"
	"github.com/dnbln/upsilon/pkg/vcs/status"
)

// Commit wraps a native commit object. It must only be used from the
// goroutine owning the enclosing Repository.
type Commit struct {
	c *object.Commit
}

// SHA of the commit, in hex form
func (c Commit) SHA() string {
	return c.c.Hash.String()
}

// Hash of the commit
func (c Commit) Hash() plumbing.Hash {
	return c.c.Hash
}

// Message of the commit
func (c Commit) Message() string {
	return c.c.Message
}

// Author signature of the commit
func (c Commit) Author() model.Signature {
	return toSignature(c.c.Author)
}

// Committer signature of the commit
func (c Commit) Committer() model.Signature {
	return toSignature(c.c.Committer)
}

// AuthorEmail returns the author email, or the attribution sentinel
// when the commit carries none.
func (c Commit) AuthorEmail() string {
	if c.c.Author.Email == "" {
		return model.UnknownEmail
	}
	return c.c.Author.Email
}

// NumParents of the commit
func (c Commit) NumParents() int {
	return c.c.NumParents()
}

// Parent returns the i-th parent of the commit
func (c Commit) Parent(i int) (Commit, error) {
	p, err := c.c.Parent(i)
	if err != nil {
		return Commit{}, status.ErrNotFound.Wrap(err)
	}
	return Commit{c: p}, nil
}

// Parents returns all parents of the commit, in parent order
func (c Commit) Parents() ([]Commit, error) {
	out := make([]Commit, 0, c.c.NumParents())
	iter := c.c.Parents()
	defer iter.Close()
	for {
		p, err := iter.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, Commit{c: p})
	}
	return out, nil
}

// Tree of the commit
func (c Commit) Tree() (Tree, error) {
	t, err := c.c.Tree()
	if err != nil {
		return Tree{}, err
	}
	return Tree{t: t}, nil
}

func toSignature(s object.Signature) model.Signature {
	return model.Signature{
		Name:  s.Name,
		Email: s.Email,
		When:  s.When,
	}
}

// Branch wraps a resolved branch reference
type Branch struct {
	name string
	hash plumbing.Hash
	repo *Repository
}

// Name of the branch, without the refs/heads prefix
func (b Branch) Name() string {
	return b.name
}

// Commit returns the commit at the branch tip
func (b Branch) Commit() (Commit, error) {
	return b.repo.commitByHash(b.hash)
}

// Tree wraps a native tree object
type Tree struct {
	t *object.Tree
}

// Revspec is a parsed revision specification. From is always resolved;
// To is only present for range forms such as "a..b".
type Revspec struct {
	spec string
	from Commit
	to   *Commit
}

// String returns the original specification text
func (r Revspec) String() string {
	return r.spec
}

// From returns the lower bound commit
func (r Revspec) From() Commit {
	return r.from
}

// To returns the upper bound commit when the specification has one
func (r Revspec) To() (Commit, bool) {
	if r.to == nil {
		return Commit{}, false
	}
	return *r.to, true
}

func entryKind(mode filemode.FileMode) model.EntryKind {
	switch mode {
	case filemode.Dir:
		return model.EntryTree
	case filemode.Submodule:
		return model.EntrySubmodule
	default:
		return model.EntryBlob
	}
}
