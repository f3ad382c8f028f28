package actor

import (
	"github.com/dnbln/upsilon/pkg/model"
)

// RequestID correlates a request with its eventual response. IDs are
// allocated by the client only, strictly increasing above the reserved
// shutdown id, and never reused; the worker echoes whatever id it
// received.
type RequestID uint64

// CloseRequestID is the reserved id carried by the shutdown request
const CloseRequestID RequestID = 0

// Request is one message sent to the worker
type Request struct {
	ID      RequestID
	Payload Message
}

// Response is the worker's answer to exactly one Request
type Response struct {
	ID      RequestID
	Payload ResponsePayload
}

// Message is the closed union of requests the worker understands.
// One variant per operation, plus MsgClose.
type Message interface {
	isMessage()
}

// ResponsePayload is the closed union of worker answers. One variant
// per operation, plus the Error, None and CloseRelay sentinels.
type ResponsePayload interface {
	isResponsePayload()
}

// MsgOpenCommit opens a commit by hex SHA
type MsgOpenCommit struct{ SHA string }

// MsgOpenBranch opens a local branch by short name
type MsgOpenBranch struct{ Name string }

// MsgOpenRevspec parses and resolves a revision specification
type MsgOpenRevspec struct{ Spec string }

// MsgCommitSHA asks for the hex SHA of an opened commit
type MsgCommitSHA struct{ Commit CommitHandle }

// MsgCommitMessage asks for the commit message
type MsgCommitMessage struct{ Commit CommitHandle }

// MsgCommitAuthor asks for the author signature
type MsgCommitAuthor struct{ Commit CommitHandle }

// MsgCommitCommitter asks for the committer signature
type MsgCommitCommitter struct{ Commit CommitHandle }

// MsgCommitParent opens the i-th parent of a commit
type MsgCommitParent struct {
	Commit CommitHandle
	Index  int
}

// MsgCommitParents opens all parents of a commit
type MsgCommitParents struct{ Commit CommitHandle }

// MsgCommitTree opens the tree of a commit
type MsgCommitTree struct{ Commit CommitHandle }

// MsgCommitBlobAtPath reads the blob at path in the commit tree
type MsgCommitBlobAtPath struct {
	Commit CommitHandle
	Path   string
}

// MsgCommitReadme reads the readme blob at the root of the commit tree
type MsgCommitReadme struct{ Commit CommitHandle }

// MsgBranchName asks for the short name of an opened branch
type MsgBranchName struct{ Branch BranchHandle }

// MsgBranchCommit opens the commit at the branch tip
type MsgBranchCommit struct{ Branch BranchHandle }

// MsgBranchContributors walks the branch history and attributes
// commits to author emails
type MsgBranchContributors struct{ Branch BranchHandle }

// MsgTreeEntries lists the immediate entries of a tree
type MsgTreeEntries struct{ Tree TreeHandle }

// MsgWholeTreeEntries lists every entry reachable from a tree,
// pre-order, path-concatenated names
type MsgWholeTreeEntries struct{ Tree TreeHandle }

// MsgRevspecFrom opens the lower bound commit of a revspec
type MsgRevspecFrom struct{ Revspec RevspecHandle }

// MsgRevspecTo opens the upper bound commit of a revspec, when present
type MsgRevspecTo struct{ Revspec RevspecHandle }

// MsgRevspecDiff renders the diff between the two bounds of a revspec
type MsgRevspecDiff struct{ Revspec RevspecHandle }

// MsgClose asks the worker to answer everything already enqueued, emit
// CloseRelay and stop
type MsgClose struct{}

func (MsgOpenCommit) isMessage()         {}
func (MsgOpenBranch) isMessage()         {}
func (MsgOpenRevspec) isMessage()        {}
func (MsgCommitSHA) isMessage()          {}
func (MsgCommitMessage) isMessage()      {}
func (MsgCommitAuthor) isMessage()       {}
func (MsgCommitCommitter) isMessage()    {}
func (MsgCommitParent) isMessage()       {}
func (MsgCommitParents) isMessage()      {}
func (MsgCommitTree) isMessage()         {}
func (MsgCommitBlobAtPath) isMessage()   {}
func (MsgCommitReadme) isMessage()       {}
func (MsgBranchName) isMessage()         {}
func (MsgBranchCommit) isMessage()       {}
func (MsgBranchContributors) isMessage() {}
func (MsgTreeEntries) isMessage()        {}
func (MsgWholeTreeEntries) isMessage()   {}
func (MsgRevspecFrom) isMessage()        {}
func (MsgRevspecTo) isMessage()          {}
func (MsgRevspecDiff) isMessage()        {}
func (MsgClose) isMessage()              {}

// RespOpenCommit answers MsgOpenCommit
type RespOpenCommit struct{ Commit CommitHandle }

// RespOpenBranch answers MsgOpenBranch
type RespOpenBranch struct{ Branch BranchHandle }

// RespOpenRevspec answers MsgOpenRevspec
type RespOpenRevspec struct{ Revspec RevspecHandle }

// RespCommitSHA answers MsgCommitSHA
type RespCommitSHA struct{ SHA string }

// RespCommitMessage answers MsgCommitMessage
type RespCommitMessage struct{ Message string }

// RespCommitAuthor answers MsgCommitAuthor
type RespCommitAuthor struct{ Author model.Signature }

// RespCommitCommitter answers MsgCommitCommitter
type RespCommitCommitter struct{ Committer model.Signature }

// RespCommitParent answers MsgCommitParent
type RespCommitParent struct{ Parent CommitHandle }

// RespCommitParents answers MsgCommitParents
type RespCommitParents struct{ Parents []CommitHandle }

// RespCommitTree answers MsgCommitTree
type RespCommitTree struct{ Tree TreeHandle }

// RespCommitBlob answers MsgCommitBlobAtPath
type RespCommitBlob struct{ Blob model.Blob }

// RespCommitReadme answers MsgCommitReadme
type RespCommitReadme struct{ Blob model.Blob }

// RespBranchName answers MsgBranchName
type RespBranchName struct{ Name string }

// RespBranchCommit answers MsgBranchCommit
type RespBranchCommit struct{ Commit CommitHandle }

// RespBranchContributors answers MsgBranchContributors
type RespBranchContributors struct{ Contributors model.Contributors }

// RespTreeEntries answers MsgTreeEntries
type RespTreeEntries struct{ Entries []model.TreeEntry }

// RespWholeTreeEntries answers MsgWholeTreeEntries
type RespWholeTreeEntries struct{ Entries []model.TreeEntry }

// RespRevspecFrom answers MsgRevspecFrom
type RespRevspecFrom struct{ Commit CommitHandle }

// RespRevspecTo answers MsgRevspecTo when an upper bound exists
type RespRevspecTo struct{ Commit CommitHandle }

// RespRevspecDiff answers MsgRevspecDiff when an upper bound exists
type RespRevspecDiff struct{ Diff model.Diff }

// RespError carries a native failure back to the caller. Per-request
// failures never stop the worker.
type RespError struct{ Err error }

// RespNone is the well-defined "absent optional result", e.g. a
// revspec without an upper bound. Not an error.
type RespNone struct{}

// RespCloseRelay is emitted once, after everything enqueued before
// MsgClose has been answered, so the demultiplexer can terminate.
type RespCloseRelay struct{}

func (RespOpenCommit) isResponsePayload()         {}
func (RespOpenBranch) isResponsePayload()         {}
func (RespOpenRevspec) isResponsePayload()        {}
func (RespCommitSHA) isResponsePayload()          {}
func (RespCommitMessage) isResponsePayload()      {}
func (RespCommitAuthor) isResponsePayload()       {}
func (RespCommitCommitter) isResponsePayload()    {}
func (RespCommitParent) isResponsePayload()       {}
func (RespCommitParents) isResponsePayload()      {}
func (RespCommitTree) isResponsePayload()         {}
func (RespCommitBlob) isResponsePayload()         {}
func (RespCommitReadme) isResponsePayload()       {}
func (RespBranchName) isResponsePayload()         {}
func (RespBranchCommit) isResponsePayload()       {}
func (RespBranchContributors) isResponsePayload() {}
func (RespTreeEntries) isResponsePayload()        {}
func (RespWholeTreeEntries) isResponsePayload()   {}
func (RespRevspecFrom) isResponsePayload()        {}
func (RespRevspecTo) isResponsePayload()          {}
func (RespRevspecDiff) isResponsePayload()        {}
func (RespError) isResponsePayload()              {}
func (RespNone) isResponsePayload()               {}
func (RespCloseRelay) isResponsePayload()         {}

// operationName tags log lines, traces and metrics with the operation
// a message carries.
func operationName(m Message) string {
	switch m.(type) {
	case MsgOpenCommit:
		return "open-commit"
	case MsgOpenBranch:
		return "open-branch"
	case MsgOpenRevspec:
		return "open-revspec"
	case MsgCommitSHA:
		return "commit-sha"
	case MsgCommitMessage:
		return "commit-message"
	case MsgCommitAuthor:
		return "commit-author"
	case MsgCommitCommitter:
		return "commit-committer"
	case MsgCommitParent:
		return "commit-parent"
	case MsgCommitParents:
		return "commit-parents"
	case MsgCommitTree:
		return "commit-tree"
	case MsgCommitBlobAtPath:
		return "commit-blob-at-path"
	case MsgCommitReadme:
		return "commit-readme"
	case MsgBranchName:
		return "branch-name"
	case MsgBranchCommit:
		return "branch-commit"
	case MsgBranchContributors:
		return "branch-contributors"
	case MsgTreeEntries:
		return "tree-entries"
	case MsgWholeTreeEntries:
		return "whole-tree-entries"
	case MsgRevspecFrom:
		return "revspec-from"
	case MsgRevspecTo:
		return "revspec-to"
	case MsgRevspecDiff:
		return "revspec-diff"
	case MsgClose:
		return "close"
	default:
		return "unknown"
	}
}
