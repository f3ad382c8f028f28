package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnbln/upsilon/pkg/vcs/vcstest"
)

func TestStorePushCommitDeduplicates(t *testing.T) {
	f := vcstest.NewFixture(t)
	hashA := f.Commit("first", "Ann", "a@x")
	hashB := f.Commit("second", "Ben", "b@x", hashA)
	repo := f.Repository()

	commitA, err := repo.FindCommit(hashA.String())
	require.NoError(t, err)
	commitB, err := repo.FindCommit(hashB.String())
	require.NoError(t, err)

	store := NewStore()
	hA := store.PushCommit(commitA)
	hB := store.PushCommit(commitB)
	assert.NotEqual(t, hA, hB)
	require.Equal(t, 2, store.NumCommits())

	// pushing the same SHA again must return the existing handle
	// without growing the store
	commitA2, err := repo.FindCommit(hashA.String())
	require.NoError(t, err)
	assert.Equal(t, hA, store.PushCommit(commitA2))
	assert.Equal(t, 2, store.NumCommits())

	assert.Equal(t, hashA.String(), store.Commit(hA).SHA())
	assert.Equal(t, hashB.String(), store.Commit(hB).SHA())
}

func TestStoreHandleKinds(t *testing.T) {
	f := vcstest.NewFixture(t)
	f.WriteFile("a.txt", "a\n")
	tip := f.Commit("first", "Ann", "a@x")
	f.Branch("main", tip)
	repo := f.Repository()

	store := NewStore()

	branch, err := repo.FindBranch("main")
	require.NoError(t, err)
	hBranch := store.PushBranch(branch)
	assert.Equal(t, "main", store.Branch(hBranch).Name())

	commit, err := repo.FindCommit(tip.String())
	require.NoError(t, err)
	tree, err := commit.Tree()
	require.NoError(t, err)
	hTree := store.PushTree(tree)
	entries, err := repo.TreeEntries(store.Tree(hTree))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	spec, err := repo.ParseRevspec(tip.String())
	require.NoError(t, err)
	hSpec := store.PushRevspec(spec)
	assert.Equal(t, tip.String(), store.Revspec(hSpec).From().SHA())
}

func TestStoreUnknownHandlePanics(t *testing.T) {
	store := NewStore()
	assert.Panics(t, func() {
		_ = store.Commit(CommitHandle(12))
	})
}
