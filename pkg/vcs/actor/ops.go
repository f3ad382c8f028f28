package actor

import (
	"context"
	"fmt"

	"github.com/dnbln/upsilon/pkg/model"
)

// Typed façade over Send. Each method pairs one Message variant with
// the one ResponsePayload variant that answers it; the pairing is
// fixed at compile time. A response of any other variant (other than
// RespError, and RespNone where the result is optional) means the
// envelope mechanism is broken and panics.

func protocolFault(op string, payload ResponsePayload) string {
	return fmt.Sprintf("vcs actor: response %T does not answer %s", payload, op)
}

// OpenCommit opens a commit by hex SHA
func (c *Client) OpenCommit(ctx context.Context, sha string) (CommitHandle, error) {
	payload, err := c.Send(ctx, MsgOpenCommit{SHA: sha})
	if err != nil {
		return 0, err
	}
	switch p := payload.(type) {
	case RespOpenCommit:
		return p.Commit, nil
	case RespError:
		return 0, p.Err
	}
	panic(protocolFault("open-commit", payload))
}

// OpenBranch opens a local branch by short name
func (c *Client) OpenBranch(ctx context.Context, name string) (BranchHandle, error) {
	payload, err := c.Send(ctx, MsgOpenBranch{Name: name})
	if err != nil {
		return 0, err
	}
	switch p := payload.(type) {
	case RespOpenBranch:
		return p.Branch, nil
	case RespError:
		return 0, p.Err
	}
	panic(protocolFault("open-branch", payload))
}

// OpenRevspec parses and resolves a revision specification
func (c *Client) OpenRevspec(ctx context.Context, spec string) (RevspecHandle, error) {
	payload, err := c.Send(ctx, MsgOpenRevspec{Spec: spec})
	if err != nil {
		return 0, err
	}
	switch p := payload.(type) {
	case RespOpenRevspec:
		return p.Revspec, nil
	case RespError:
		return 0, p.Err
	}
	panic(protocolFault("open-revspec", payload))
}

// CommitSHA returns the hex SHA of an opened commit
func (c *Client) CommitSHA(ctx context.Context, h CommitHandle) (string, error) {
	payload, err := c.Send(ctx, MsgCommitSHA{Commit: h})
	if err != nil {
		return "", err
	}
	switch p := payload.(type) {
	case RespCommitSHA:
		return p.SHA, nil
	case RespError:
		return "", p.Err
	}
	panic(protocolFault("commit-sha", payload))
}

// CommitMessage returns the message of an opened commit
func (c *Client) CommitMessage(ctx context.Context, h CommitHandle) (string, error) {
	payload, err := c.Send(ctx, MsgCommitMessage{Commit: h})
	if err != nil {
		return "", err
	}
	switch p := payload.(type) {
	case RespCommitMessage:
		return p.Message, nil
	case RespError:
		return "", p.Err
	}
	panic(protocolFault("commit-message", payload))
}

// CommitAuthor returns the author signature of an opened commit
func (c *Client) CommitAuthor(ctx context.Context, h CommitHandle) (model.Signature, error) {
	payload, err := c.Send(ctx, MsgCommitAuthor{Commit: h})
	if err != nil {
		return model.Signature{}, err
	}
	switch p := payload.(type) {
	case RespCommitAuthor:
		return p.Author, nil
	case RespError:
		return model.Signature{}, p.Err
	}
	panic(protocolFault("commit-author", payload))
}

// CommitCommitter returns the committer signature of an opened commit
func (c *Client) CommitCommitter(ctx context.Context, h CommitHandle) (model.Signature, error) {
	payload, err := c.Send(ctx, MsgCommitCommitter{Commit: h})
	if err != nil {
		return model.Signature{}, err
	}
	switch p := payload.(type) {
	case RespCommitCommitter:
		return p.Committer, nil
	case RespError:
		return model.Signature{}, p.Err
	}
	panic(protocolFault("commit-committer", payload))
}

// CommitParent opens the i-th parent of an opened commit
func (c *Client) CommitParent(ctx context.Context, h CommitHandle, i int) (CommitHandle, error) {
	payload, err := c.Send(ctx, MsgCommitParent{Commit: h, Index: i})
	if err != nil {
		return 0, err
	}
	switch p := payload.(type) {
	case RespCommitParent:
		return p.Parent, nil
	case RespError:
		return 0, p.Err
	}
	panic(protocolFault("commit-parent", payload))
}

// CommitParents opens all parents of an opened commit
func (c *Client) CommitParents(ctx context.Context, h CommitHandle) ([]CommitHandle, error) {
	payload, err := c.Send(ctx, MsgCommitParents{Commit: h})
	if err != nil {
		return nil, err
	}
	switch p := payload.(type) {
	case RespCommitParents:
		return p.Parents, nil
	case RespError:
		return nil, p.Err
	}
	panic(protocolFault("commit-parents", payload))
}

// CommitTree opens the tree of an opened commit
func (c *Client) CommitTree(ctx context.Context, h CommitHandle) (TreeHandle, error) {
	payload, err := c.Send(ctx, MsgCommitTree{Commit: h})
	if err != nil {
		return 0, err
	}
	switch p := payload.(type) {
	case RespCommitTree:
		return p.Tree, nil
	case RespError:
		return 0, p.Err
	}
	panic(protocolFault("commit-tree", payload))
}

// CommitBlobAtPath reads the blob at path in the commit tree
func (c *Client) CommitBlobAtPath(ctx context.Context, h CommitHandle, path string) (model.Blob, error) {
	payload, err := c.Send(ctx, MsgCommitBlobAtPath{Commit: h, Path: path})
	if err != nil {
		return model.Blob{}, err
	}
	switch p := payload.(type) {
	case RespCommitBlob:
		return p.Blob, nil
	case RespError:
		return model.Blob{}, p.Err
	}
	panic(protocolFault("commit-blob-at-path", payload))
}

// CommitReadme reads the readme blob at the root of the commit tree.
// A nil result without error means the tree has no readme.
func (c *Client) CommitReadme(ctx context.Context, h CommitHandle) (*model.Blob, error) {
	payload, err := c.Send(ctx, MsgCommitReadme{Commit: h})
	if err != nil {
		return nil, err
	}
	switch p := payload.(type) {
	case RespCommitReadme:
		return &p.Blob, nil
	case RespNone:
		return nil, nil
	case RespError:
		return nil, p.Err
	}
	panic(protocolFault("commit-readme", payload))
}

// BranchName returns the short name of an opened branch
func (c *Client) BranchName(ctx context.Context, h BranchHandle) (string, error) {
	payload, err := c.Send(ctx, MsgBranchName{Branch: h})
	if err != nil {
		return "", err
	}
	switch p := payload.(type) {
	case RespBranchName:
		return p.Name, nil
	case RespError:
		return "", p.Err
	}
	panic(protocolFault("branch-name", payload))
}

// BranchCommit opens the commit at the branch tip
func (c *Client) BranchCommit(ctx context.Context, h BranchHandle) (CommitHandle, error) {
	payload, err := c.Send(ctx, MsgBranchCommit{Branch: h})
	if err != nil {
		return 0, err
	}
	switch p := payload.(type) {
	case RespBranchCommit:
		return p.Commit, nil
	case RespError:
		return 0, p.Err
	}
	panic(protocolFault("branch-commit", payload))
}

// BranchContributors walks the branch history and attributes distinct
// commits to author emails
func (c *Client) BranchContributors(ctx context.Context, h BranchHandle) (model.Contributors, error) {
	payload, err := c.Send(ctx, MsgBranchContributors{Branch: h})
	if err != nil {
		return nil, err
	}
	switch p := payload.(type) {
	case RespBranchContributors:
		return p.Contributors, nil
	case RespError:
		return nil, p.Err
	}
	panic(protocolFault("branch-contributors", payload))
}

// TreeEntries lists the immediate entries of an opened tree
func (c *Client) TreeEntries(ctx context.Context, h TreeHandle) ([]model.TreeEntry, error) {
	payload, err := c.Send(ctx, MsgTreeEntries{Tree: h})
	if err != nil {
		return nil, err
	}
	switch p := payload.(type) {
	case RespTreeEntries:
		return p.Entries, nil
	case RespError:
		return nil, p.Err
	}
	panic(protocolFault("tree-entries", payload))
}

// WholeTreeEntries lists every entry reachable from an opened tree,
// pre-order, with path-concatenated names
func (c *Client) WholeTreeEntries(ctx context.Context, h TreeHandle) ([]model.TreeEntry, error) {
	payload, err := c.Send(ctx, MsgWholeTreeEntries{Tree: h})
	if err != nil {
		return nil, err
	}
	switch p := payload.(type) {
	case RespWholeTreeEntries:
		return p.Entries, nil
	case RespError:
		return nil, p.Err
	}
	panic(protocolFault("whole-tree-entries", payload))
}

// RevspecFrom opens the lower bound commit of an opened revspec
func (c *Client) RevspecFrom(ctx context.Context, h RevspecHandle) (CommitHandle, error) {
	payload, err := c.Send(ctx, MsgRevspecFrom{Revspec: h})
	if err != nil {
		return 0, err
	}
	switch p := payload.(type) {
	case RespRevspecFrom:
		return p.Commit, nil
	case RespError:
		return 0, p.Err
	}
	panic(protocolFault("revspec-from", payload))
}

// RevspecTo opens the upper bound commit of an opened revspec. A nil
// result without error means the specification has no upper bound.
func (c *Client) RevspecTo(ctx context.Context, h RevspecHandle) (*CommitHandle, error) {
	payload, err := c.Send(ctx, MsgRevspecTo{Revspec: h})
	if err != nil {
		return nil, err
	}
	switch p := payload.(type) {
	case RespRevspecTo:
		return &p.Commit, nil
	case RespNone:
		return nil, nil
	case RespError:
		return nil, p.Err
	}
	panic(protocolFault("revspec-to", payload))
}

// RevspecDiff renders the diff between the bounds of an opened
// revspec. A nil result without error means there is no upper bound
// to diff against.
func (c *Client) RevspecDiff(ctx context.Context, h RevspecHandle) (*model.Diff, error) {
	payload, err := c.Send(ctx, MsgRevspecDiff{Revspec: h})
	if err != nil {
		return nil, err
	}
	switch p := payload.(type) {
	case RespRevspecDiff:
		return &p.Diff, nil
	case RespNone:
		return nil, nil
	case RespError:
		return nil, p.Err
	}
	panic(protocolFault("revspec-diff", payload))
}
