// Package model holds the typed values exchanged between the VCS actor
// and its callers. Everything in this package is plain data: no native
// repository state ever crosses the actor boundary.
package model

import (
	"sort"
	"time"
)

// UnknownEmail is the attribution sentinel used when a commit author
// carries no readable email.
const UnknownEmail = "<unknown>"

// Signature identifies the author or committer of a commit
type Signature struct {
	Name  string    `json:"name" yaml:"name"`
	Email string    `json:"email" yaml:"email"`
	When  time.Time `json:"when" yaml:"when"`
	_     struct{}
}

// EntryKind discriminates tree entries
type EntryKind string

const (
	// EntryBlob is a file entry
	EntryBlob EntryKind = "blob"

	// EntryTree is a directory entry
	EntryTree EntryKind = "tree"

	// EntrySubmodule is a commit entry pointing into another repository
	EntrySubmodule EntryKind = "submodule"
)

// TreeEntry is one entry of a tree listing. For whole-tree listings the
// Name carries the full path from the listing root.
type TreeEntry struct {
	Name string    `json:"name" yaml:"name"`
	Kind EntryKind `json:"kind" yaml:"kind"`
	Size int64     `json:"size,omitempty" yaml:"size,omitempty"`
	_    struct{}
}

// Blob is the content of a file object, with the path it was found under
type Blob struct {
	Path    string `json:"path" yaml:"path"`
	Content string `json:"content" yaml:"content"`
	_       struct{}
}

// Contributors maps author emails to the number of distinct commits
// attributed to them on a branch.
type Contributors map[string]int

// Sorted returns the contributor entries ordered by descending commit
// count, ties broken by email.
func (c Contributors) Sorted() []ContributorEntry {
	out := make([]ContributorEntry, 0, len(c))
	for email, commits := range c {
		out = append(out, ContributorEntry{Email: email, Commits: commits})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Commits != out[j].Commits {
			return out[i].Commits > out[j].Commits
		}
		return out[i].Email < out[j].Email
	})
	return out
}

// ContributorEntry is one row of a sorted contributor listing
type ContributorEntry struct {
	Email   string `json:"email" yaml:"email"`
	Commits int    `json:"commits" yaml:"commits"`
	_       struct{}
}

// DiffStat summarizes the changes of one file in a diff
type DiffStat struct {
	Path      string `json:"path" yaml:"path"`
	Additions int    `json:"additions" yaml:"additions"`
	Deletions int    `json:"deletions" yaml:"deletions"`
	_         struct{}
}

// Diff is a rendered patch plus its per-file summary
type Diff struct {
	Patch string     `json:"patch" yaml:"patch"`
	Stats []DiffStat `json:"stats,omitempty" yaml:"stats,omitempty"`
	_     struct{}
}
