package extract

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T, path string) *git.Repository {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
	repo, err := git.PlainInit(path, false)
	require.NoError(t, err)
	return repo
}

func repoNames(repos []schema.DiscoveredRepo) []string {
	names := make([]string, len(repos))
	for i, r := range repos {
		names[i] = r.Name
	}
	return names
}

func TestDiscoverRepositories(t *testing.T) {
	root := t.TempDir()
	initRepo(t, filepath.Join(root, "alpha"))
	initRepo(t, filepath.Join(root, "alpha", "nested"))
	initRepo(t, filepath.Join(root, "group", "beta"))
	initRepo(t, filepath.Join(root, ".hidden", "gamma"))
	initRepo(t, filepath.Join(root, "node_modules", "delta"))
	initRepo(t, filepath.Join(root, "a", "b", "edge"))
	initRepo(t, filepath.Join(root, "a", "b", "c", "d", "deep"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "broken", ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hi"), 0o644))

	repos, err := DiscoverRepositories(root, 3)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"alpha", "beta", "edge"}, repoNames(repos))
	for _, r := range repos {
		assert.Equal(t, filepath.Base(r.Path), r.Name)
	}
}

func TestDiscoverRepositories_RootIsRepository(t *testing.T) {
	root := filepath.Join(t.TempDir(), "solo")
	initRepo(t, root)
	initRepo(t, filepath.Join(root, "vendor", "inner"))

	repos, err := DiscoverRepositories(root, 3)
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "solo", repos[0].Name)
	assert.Equal(t, root, repos[0].Path)
}

func TestDiscoverRepositories_DepthZero(t *testing.T) {
	root := t.TempDir()
	initRepo(t, filepath.Join(root, "child"))

	repos, err := DiscoverRepositories(root, 0)
	require.NoError(t, err)
	assert.Empty(t, repos)
	assert.NotNil(t, repos)
}

func TestDiscoverRepositories_Errors(t *testing.T) {
	_, err := DiscoverRepositories(filepath.Join(t.TempDir(), "missing"), 3)
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = DiscoverRepositories(file, 3)
	assert.ErrorContains(t, err, "not a directory")
}

func TestDiscoverRepositories_HeadAndBranch(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "work")
	repo := initRepo(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(path, "main.go"), []byte("package main\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("main.go")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Dev", Email: "dev@example.com", When: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	})
	require.NoError(t, err)

	repos, err := DiscoverRepositories(root, 3)
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, hash.String(), repos[0].HeadHash)
	assert.Equal(t, "master", repos[0].DefaultBranch)
}

func TestResolveTargets(t *testing.T) {
	root := t.TempDir()
	initRepo(t, filepath.Join(root, "one"))
	initRepo(t, filepath.Join(root, "two"))

	repos, err := ResolveTargets([]string{filepath.Join(root, "two"), root}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "one"}, repoNames(repos), "duplicates keep their first position")

	_, err = ResolveTargets([]string{filepath.Join(root, "nope")}, 3)
	assert.Error(t, err)
}

func TestDepthBelow(t *testing.T) {
	root := filepath.FromSlash("/tmp/root")
	assert.Equal(t, 0, depthBelow(root, root))
	assert.Equal(t, 1, depthBelow(root, filepath.Join(root, "a")))
	assert.Equal(t, 3, depthBelow(root, filepath.Join(root, "a", "b", "c")))
}
