package actor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dnbln/upsilon/pkg/model"
	"github.com/dnbln/upsilon/pkg/vcs/vcstest"
)

func walkFixture(t *testing.T, f *vcstest.Fixture, branch string) model.Contributors {
	t.Helper()
	repo := f.Repository()
	w := newWorker(repo, nil, newResponseQueue())

	b, err := repo.FindBranch(branch)
	require.NoError(t, err)
	tip, err := b.Commit()
	require.NoError(t, err)

	contributors, err := w.branchContributors(tip)
	require.NoError(t, err)
	return contributors
}

func TestContributorsLinearHistory(t *testing.T) {
	f := vcstest.NewFixture(t)
	a := f.Commit("root", "Ann", "a@x")
	b := f.Commit("second", "Ben", "b@x", a)
	c := f.Commit("third", "Cyd", "c@x", b)
	f.Branch("main", c)

	contributors := walkFixture(t, f, "main")
	require.Equal(t, model.Contributors{
		"a@x": 1,
		"b@x": 1,
		"c@x": 1,
	}, contributors)
}

func TestContributorsMergeCountsBaseOnce(t *testing.T) {
	f := vcstest.NewFixture(t)
	base := f.Commit("base", "Base", "base@x")
	p1 := f.Commit("left", "PartyOne", "p1@x", base)
	p2 := f.Commit("right", "PartyTwo", "p2@x", base)
	m := f.Commit("merge", "PartyOne", "p1@x", p1, p2)
	f.Branch("main", m)

	contributors := walkFixture(t, f, "main")
	// base is attributed once, not once per incoming branch; the merge
	// commit itself counts for its own author
	require.Equal(t, model.Contributors{
		"p1@x":   2,
		"p2@x":   1,
		"base@x": 1,
	}, contributors)
	require.Len(t, contributors, 3)
}

func TestContributorsSingleCommit(t *testing.T) {
	f := vcstest.NewFixture(t)
	only := f.Commit("root", "Ann", "a@x")
	f.Branch("main", only)

	contributors := walkFixture(t, f, "main")
	require.Equal(t, model.Contributors{"a@x": 1}, contributors)
}

func TestContributorsUnknownEmailSentinel(t *testing.T) {
	f := vcstest.NewFixture(t)
	tip := f.Commit("root", "Anonymous", "")
	f.Branch("main", tip)

	contributors := walkFixture(t, f, "main")
	require.Equal(t, model.Contributors{model.UnknownEmail: 1}, contributors)
}

func TestContributorsMergeWithIntermediate(t *testing.T) {
	// one side of the merge has a commit between tip and base: the
	// walk stops expanding a side as soon as its unique parent chain
	// reaches the pending base
	f := vcstest.NewFixture(t)
	base := f.Commit("base", "Base", "base@x")
	mid := f.Commit("mid", "Mid", "mid@x", base)
	p1 := f.Commit("left", "PartyOne", "p1@x", mid)
	p2 := f.Commit("right", "PartyTwo", "p2@x", base)
	m := f.Commit("merge", "PartyTwo", "p2@x", p1, p2)
	f.Branch("main", m)

	contributors := walkFixture(t, f, "main")
	require.Equal(t, 1, contributors["base@x"])
	require.Equal(t, 1, contributors["p1@x"])
	require.Equal(t, 2, contributors["p2@x"])
	// the intermediate commit is skipped along with the rest of the
	// chain once it is known to lead to the base
	require.NotContains(t, contributors, "mid@x")
}
