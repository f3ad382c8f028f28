package actor

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dnbln/upsilon/pkg/errors"
	"github.com/dnbln/upsilon/pkg/model"
	"github.com/dnbln/upsilon/pkg/vcs/actor/status"
	vcsstatus "github.com/dnbln/upsilon/pkg/vcs/status"
	"github.com/dnbln/upsilon/pkg/vcs/vcstest"
)

func TestClientCorrelationUnderConcurrency(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))

	f := vcstest.NewFixture(t)
	var hashes []plumbing.Hash
	prev := f.Commit("commit 0", "Ann", "a@x")
	hashes = append(hashes, prev)
	for i := 1; i < 20; i++ {
		prev = f.Commit(fmt.Sprintf("commit %d", i), "Ann", "a@x", prev)
		hashes = append(hashes, prev)
	}

	client, worker := Spawn(f.Repository(), WithQueueCapacity(4))
	defer func() {
		client.Close()
		<-client.Done()
	}()

	ctx := context.Background()
	var wg sync.WaitGroup
	for _, h := range hashes {
		for round := 0; round < 5; round++ {
			wg.Add(1)
			go func(want string) {
				defer wg.Done()
				handle, err := client.OpenCommit(ctx, want)
				if !assert.NoError(t, err) {
					return
				}
				got, err := client.CommitSHA(ctx, handle)
				if !assert.NoError(t, err) {
					return
				}
				// each caller gets the answer to its own request,
				// never a response meant for another id
				assert.Equal(t, want, got)
			}(h.String())
		}
	}
	wg.Wait()

	// the worker serialized everything: native calls never overlapped
	assert.Equal(t, int32(1), worker.MaxInflight())
}

func TestClientRevspecWithoutUpperBoundIsNone(t *testing.T) {
	f := vcstest.NewFixture(t)
	a := f.Commit("first", "Ann", "a@x")
	b := f.Commit("second", "Ben", "b@x", a)
	f.Branch("main", b)

	client, _ := Spawn(f.Repository())
	defer func() {
		client.Close()
		<-client.Done()
	}()
	ctx := context.Background()

	single, err := client.OpenRevspec(ctx, a.String())
	require.NoError(t, err)
	to, err := client.RevspecTo(ctx, single)
	require.NoError(t, err)
	assert.Nil(t, to, "a revspec without upper bound resolves to None, not an error")
	diff, err := client.RevspecDiff(ctx, single)
	require.NoError(t, err)
	assert.Nil(t, diff)

	ranged, err := client.OpenRevspec(ctx, a.String()+".."+b.String())
	require.NoError(t, err)
	to, err = client.RevspecTo(ctx, ranged)
	require.NoError(t, err)
	require.NotNil(t, to)
	sha, err := client.CommitSHA(ctx, *to)
	require.NoError(t, err)
	assert.Equal(t, b.String(), sha)
}

func TestClientTreeListings(t *testing.T) {
	f := vcstest.NewFixture(t)
	f.WriteFile("a.txt", "alpha\n")
	f.WriteFile("sub/b.txt", "beta\n")
	tip := f.Commit("tree", "Ann", "a@x")

	client, _ := Spawn(f.Repository())
	defer func() {
		client.Close()
		<-client.Done()
	}()
	ctx := context.Background()

	commit, err := client.OpenCommit(ctx, tip.String())
	require.NoError(t, err)
	tree, err := client.CommitTree(ctx, commit)
	require.NoError(t, err)

	entries, err := client.TreeEntries(ctx, tree)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Name)
	assert.Equal(t, model.EntryBlob, entries[0].Kind)
	assert.Equal(t, "sub", entries[1].Name)
	assert.Equal(t, model.EntryTree, entries[1].Kind)

	whole, err := client.WholeTreeEntries(ctx, tree)
	require.NoError(t, err)
	names := make([]string, 0, len(whole))
	for _, e := range whole {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"a.txt", "sub", "sub/b.txt"}, names)
}

func TestClientBlobAndReadme(t *testing.T) {
	f := vcstest.NewFixture(t)
	f.WriteFile("README.md", "# hello\n")
	f.WriteFile("docs/guide.txt", "read me not\n")
	tip := f.Commit("docs", "Ann", "a@x")

	bare := vcstest.NewFixture(t)
	bareTip := bare.Commit("empty", "Ben", "b@x")

	client, _ := Spawn(f.Repository())
	defer func() {
		client.Close()
		<-client.Done()
	}()
	ctx := context.Background()

	commit, err := client.OpenCommit(ctx, tip.String())
	require.NoError(t, err)

	blob, err := client.CommitBlobAtPath(ctx, commit, "docs/guide.txt")
	require.NoError(t, err)
	assert.Equal(t, "read me not\n", blob.Content)

	_, err = client.CommitBlobAtPath(ctx, commit, "missing.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, vcsstatus.ErrNotFound))

	readme, err := client.CommitReadme(ctx, commit)
	require.NoError(t, err)
	require.NotNil(t, readme)
	assert.Equal(t, "README.md", readme.Path)
	assert.Equal(t, "# hello\n", readme.Content)

	bareClient, _ := Spawn(bare.Repository())
	defer func() {
		bareClient.Close()
		<-bareClient.Done()
	}()
	bareCommit, err := bareClient.OpenCommit(ctx, bareTip.String())
	require.NoError(t, err)
	missing, err := bareClient.CommitReadme(ctx, bareCommit)
	require.NoError(t, err)
	assert.Nil(t, missing, "no readme resolves to None, not an error")
}

func TestClientSendAfterClose(t *testing.T) {
	f := vcstest.NewFixture(t)
	tip := f.Commit("root", "Ann", "a@x")

	client, _ := Spawn(f.Repository())
	client.Close()
	<-client.Done()

	_, err := client.OpenCommit(context.Background(), tip.String())
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrSessionClosed))

	// Close is idempotent
	client.Close()
}

func TestClientCancelledContext(t *testing.T) {
	f := vcstest.NewFixture(t)
	tip := f.Commit("root", "Ann", "a@x")

	client, _ := Spawn(f.Repository(), WithQueueCapacity(1))
	defer func() {
		client.Close()
		<-client.Done()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.OpenCommit(ctx, tip.String())
	require.ErrorIs(t, err, context.Canceled)

	// the session is still usable after an abandoned call
	handle, err := client.OpenCommit(context.Background(), tip.String())
	require.NoError(t, err)
	sha, err := client.CommitSHA(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, tip.String(), sha)
}

func TestClientParentsAndSignatures(t *testing.T) {
	f := vcstest.NewFixture(t)
	a := f.Commit("first", "Ann", "a@x")
	b := f.Commit("second", "Ben", "b@x", a)
	m := f.Commit("merge", "Ben", "b@x", b, a)
	f.Branch("main", m)

	client, _ := Spawn(f.Repository())
	defer func() {
		client.Close()
		<-client.Done()
	}()
	ctx := context.Background()

	branch, err := client.OpenBranch(ctx, "main")
	require.NoError(t, err)
	name, err := client.BranchName(ctx, branch)
	require.NoError(t, err)
	assert.Equal(t, "main", name)

	tipHandle, err := client.BranchCommit(ctx, branch)
	require.NoError(t, err)
	msg, err := client.CommitMessage(ctx, tipHandle)
	require.NoError(t, err)
	assert.Equal(t, "merge", msg)

	author, err := client.CommitAuthor(ctx, tipHandle)
	require.NoError(t, err)
	assert.Equal(t, "b@x", author.Email)
	committer, err := client.CommitCommitter(ctx, tipHandle)
	require.NoError(t, err)
	assert.Equal(t, "Ben", committer.Name)

	parents, err := client.CommitParents(ctx, tipHandle)
	require.NoError(t, err)
	require.Len(t, parents, 2)

	first, err := client.CommitParent(ctx, tipHandle, 0)
	require.NoError(t, err)
	// parent handles are deduplicated on SHA with the ones opened
	// through CommitParents
	assert.Equal(t, parents[0], first)

	_, err = client.CommitParent(ctx, tipHandle, 5)
	require.Error(t, err)
}
