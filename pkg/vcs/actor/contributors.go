package actor

import (
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/dnbln/upsilon/pkg/errors"
	"github.com/dnbln/upsilon/pkg/model"
	"github.com/dnbln/upsilon/pkg/vcs"
	"github.com/dnbln/upsilon/pkg/vcs/status"
)

// branchContributors walks the history from tip, breadth-first, and
// counts distinct commits per author email. Merge commits expand into
// all their parents; the merge base across the parents is then visited
// exactly once, after the current frontier drains, so shared ancestry
// is not counted once per incoming branch.
//
// The visited set is cleared whenever the frontier drains. This bounds
// memory on long histories, at the price of possibly recounting a
// commit reached again from a later, not-yet-merged frontier. Known
// behavior, kept as is pending product clarification.
func (w *Worker) branchContributors(tip vcs.Commit) (model.Contributors, error) {
	var (
		queue   = []vcs.Commit{tip}
		visited = make(map[plumbing.Hash]struct{})
		counts  = make(model.Contributors)
		pending *vcs.Commit
	)

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		if _, seen := visited[c.Hash()]; !seen {
			visited[c.Hash()] = struct{}{}
			counts[c.AuthorEmail()]++

			stop, err := w.stopsAtPendingBase(c, pending)
			if err != nil {
				return nil, err
			}
			switch {
			case stop:
				// the base itself joins the walk once the frontier drains

			case c.NumParents() > 1:
				parents, err := c.Parents()
				if err != nil {
					return nil, err
				}
				queue = append(queue, parents...)
				base, err := w.repo.MergeBase(parents...)
				if err != nil {
					if !errors.Is(err, status.ErrNoMergeBase) {
						return nil, err
					}
					pending = nil
				} else {
					pending = &base
				}

			case c.NumParents() == 1:
				p, err := c.Parent(0)
				if err != nil {
					return nil, err
				}
				queue = append(queue, p)
			}
		}

		if len(queue) == 0 {
			visited = make(map[plumbing.Hash]struct{})
			if pending != nil {
				queue = append(queue, *pending)
				pending = nil
			}
		}
	}

	return counts, nil
}

// stopsAtPendingBase reports whether the unique parent chain of c leads
// only to the pending merge base, in which case c is not expanded: the
// base will be enqueued once the frontier drains.
func (w *Worker) stopsAtPendingBase(c vcs.Commit, pending *vcs.Commit) (bool, error) {
	if pending == nil {
		return false, nil
	}
	cur := c
	for {
		if cur.NumParents() != 1 {
			return false, nil
		}
		p, err := cur.Parent(0)
		if err != nil {
			return false, err
		}
		if p.Hash() == pending.Hash() {
			return true, nil
		}
		cur = p
	}
}
