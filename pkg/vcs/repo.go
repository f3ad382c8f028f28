// Package vcs wraps the native git library behind a small synchronous
// surface. Nothing in this package is safe for concurrent use: a
// Repository and every object derived from it belong to a single
// goroutine, the actor worker.
package vcs

import (
	"io"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.uber.org/zap"

	"github.com/dnbln/upsilon/pkg/model"
	"github.com/dnbln/upsilon/pkg/vcs/status"
)

// readmeCandidates are probed in order by ReadmeBlob
var readmeCandidates = []string{"README", "README.md", "README.txt"}

// Repository is the native repository plus the options it was opened with
type Repository struct {
	path string
	r    *git.Repository
	l    *zap.Logger
}

// OpenRepository opens the git repository at path
func OpenRepository(path string, opts ...Option) (*Repository, error) {
	r, err := git.PlainOpen(path)
	if err != nil {
		return nil, status.ErrNotFound.Wrap(err)
	}
	repo := &Repository{path: path, r: r, l: zap.NewNop()}
	for _, apply := range opts {
		apply(repo)
	}
	return repo, nil
}

// WrapRepository wraps an already-open native repository
func WrapRepository(r *git.Repository, opts ...Option) *Repository {
	repo := &Repository{r: r, l: zap.NewNop()}
	for _, apply := range opts {
		apply(repo)
	}
	return repo
}

// Path the repository was opened from
func (r *Repository) Path() string {
	return r.path
}

// FindCommit resolves a commit by its hex SHA
func (r *Repository) FindCommit(sha string) (Commit, error) {
	if !plumbing.IsHash(sha) {
		return Commit{}, status.ErrBadSHA.WrapMessage("%q", sha)
	}
	return r.commitByHash(plumbing.NewHash(sha))
}

func (r *Repository) commitByHash(h plumbing.Hash) (Commit, error) {
	c, err := r.r.CommitObject(h)
	if err != nil {
		return Commit{}, status.ErrNotFound.Wrap(err)
	}
	return Commit{c: c}, nil
}

// FindBranch resolves a local branch by its short name
func (r *Repository) FindBranch(name string) (Branch, error) {
	ref, err := r.r.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		return Branch{}, status.ErrNotFound.Wrap(err)
	}
	return Branch{name: name, hash: ref.Hash(), repo: r}, nil
}

// ParseRevspec parses and resolves a revision specification. The
// two-dot range form "a..b" yields both bounds; any other form yields
// only the lower bound.
func (r *Repository) ParseRevspec(spec string) (Revspec, error) {
	if from, to, ok := strings.Cut(spec, ".."); ok {
		lower, err := r.resolveRevision(from)
		if err != nil {
			return Revspec{}, err
		}
		upper, err := r.resolveRevision(to)
		if err != nil {
			return Revspec{}, err
		}
		return Revspec{spec: spec, from: lower, to: &upper}, nil
	}
	from, err := r.resolveRevision(spec)
	if err != nil {
		return Revspec{}, err
	}
	return Revspec{spec: spec, from: from}, nil
}

func (r *Repository) resolveRevision(rev string) (Commit, error) {
	h, err := r.r.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return Commit{}, status.ErrBadRevspec.Wrap(err)
	}
	return r.commitByHash(*h)
}

// MergeBase computes the most recent common ancestor of the given
// commits, folding pairwise for more than two.
func (r *Repository) MergeBase(commits ...Commit) (Commit, error) {
	if len(commits) == 0 {
		return Commit{}, status.ErrNoMergeBase
	}
	base := commits[0]
	for _, next := range commits[1:] {
		bases, err := base.c.MergeBase(next.c)
		if err != nil {
			return Commit{}, err
		}
		if len(bases) == 0 {
			return Commit{}, status.ErrNoMergeBase
		}
		base = Commit{c: bases[0]}
	}
	return base, nil
}

// TreeEntries lists the immediate entries of a tree, in tree order
func (r *Repository) TreeEntries(t Tree) ([]model.TreeEntry, error) {
	entries := make([]model.TreeEntry, 0, len(t.t.Entries))
	for _, e := range t.t.Entries {
		me := model.TreeEntry{Name: e.Name, Kind: entryKind(e.Mode)}
		if me.Kind == model.EntryBlob {
			if size, err := r.blobSize(e.Hash); err == nil {
				me.Size = size
			}
		}
		entries = append(entries, me)
	}
	return entries, nil
}

// WholeTreeEntries lists every entry reachable from a tree, pre-order,
// with names carrying the full path from the tree root.
func (r *Repository) WholeTreeEntries(t Tree) ([]model.TreeEntry, error) {
	walker := object.NewTreeWalker(t.t, true, nil)
	defer walker.Close()

	var entries []model.TreeEntry
	for {
		name, entry, err := walker.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		me := model.TreeEntry{Name: name, Kind: entryKind(entry.Mode)}
		if me.Kind == model.EntryBlob {
			if size, err := r.blobSize(entry.Hash); err == nil {
				me.Size = size
			}
		}
		entries = append(entries, me)
	}
	return entries, nil
}

func (r *Repository) blobSize(h plumbing.Hash) (int64, error) {
	b, err := r.r.BlobObject(h)
	if err != nil {
		return 0, err
	}
	return b.Size, nil
}

// BlobAtPath returns the content of the file at path in the commit tree
func (r *Repository) BlobAtPath(c Commit, path string) (model.Blob, error) {
	t, err := c.Tree()
	if err != nil {
		return model.Blob{}, err
	}
	f, err := t.t.File(path)
	if err != nil {
		return model.Blob{}, status.ErrNotFound.Wrap(err)
	}
	content, err := f.Contents()
	if err != nil {
		return model.Blob{}, err
	}
	return model.Blob{Path: path, Content: content}, nil
}

// ReadmeBlob returns the first readme found at the root of the commit
// tree, or status.ErrNoReadme.
func (r *Repository) ReadmeBlob(c Commit) (model.Blob, error) {
	for _, candidate := range readmeCandidates {
		blob, err := r.BlobAtPath(c, candidate)
		if err == nil {
			return blob, nil
		}
		if !errorIsNotFound(err) {
			return model.Blob{}, err
		}
	}
	return model.Blob{}, status.ErrNoReadme
}

// Diff renders the patch between two commits, oldest first
func (r *Repository) Diff(from, to Commit) (model.Diff, error) {
	fromTree, err := from.Tree()
	if err != nil {
		return model.Diff{}, err
	}
	toTree, err := to.Tree()
	if err != nil {
		return model.Diff{}, err
	}
	changes, err := fromTree.t.Diff(toTree.t)
	if err != nil {
		return model.Diff{}, err
	}
	patch, err := changes.Patch()
	if err != nil {
		return model.Diff{}, err
	}
	stats := patch.Stats()
	out := model.Diff{
		Patch: patch.String(),
		Stats: make([]model.DiffStat, 0, len(stats)),
	}
	for _, s := range stats {
		out.Stats = append(out.Stats, model.DiffStat{
			Path:      s.Name,
			Additions: s.Addition,
			Deletions: s.Deletion,
		})
	}
	return out, nil
}
