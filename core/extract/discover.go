// Package extract turns local git repositories into scan data.
package extract

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
)

// skippedDirs are never descended into during discovery.
var skippedDirs = map[string]struct{}{
	"node_modules": {},
}

// DiscoverRepositories walks root looking for repository roots, at most maxDepth
// levels below it. A directory holding a .git directory is a repository and
// is not descended into. Hidden directories and node_modules are skipped, and
// directories that cannot be read are ignored.
func DiscoverRepositories(root string, maxDepth int) ([]schema.DiscoveredRepo, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot read scan root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	found := []schema.DiscoveredRepo{}
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			contract.Logger().WithError(err).WithField("path", path).Debug("Skipping unreadable directory")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root {
			name := d.Name()
			if _, skip := skippedDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
		}
		if depthBelow(root, path) > maxDepth {
			return filepath.SkipDir
		}
		if !hasGitDir(path) {
			return nil
		}

		repo, err := git.PlainOpen(path)
		if err != nil {
			contract.Logger().WithError(err).WithField("path", path).Warn("Ignoring invalid repository")
			return filepath.SkipDir
		}
		found = append(found, describeRepository(path, repo))
		return filepath.SkipDir
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, walkErr)
	}
	return found, nil
}

// ResolveTargets discovers the repositories under every target. A target that
// is itself a repository resolves to just that repository. Duplicates are
// removed while keeping the first occurrence.
func ResolveTargets(targets []string, maxDepth int) ([]schema.DiscoveredRepo, error) {
	seen := make(map[string]struct{})
	repos := []schema.DiscoveredRepo{}
	for _, target := range targets {
		found, err := DiscoverRepositories(target, maxDepth)
		if err != nil {
			return nil, err
		}
		for _, r := range found {
			if _, dup := seen[r.Path]; dup {
				continue
			}
			seen[r.Path] = struct{}{}
			repos = append(repos, r)
		}
	}
	return repos, nil
}

func depthBelow(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

func hasGitDir(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil && info.IsDir()
}

func describeRepository(path string, repo *git.Repository) schema.DiscoveredRepo {
	discovered := schema.DiscoveredRepo{
		Name:          filepath.Base(path),
		Path:          path,
		DefaultBranch: defaultBranch(repo),
	}
	if head, err := repo.Head(); err == nil {
		discovered.HeadHash = head.Hash().String()
	}
	return discovered
}

// defaultBranch prefers main, then master, then whatever HEAD points at.
func defaultBranch(repo *git.Repository) string {
	for _, name := range []string{"main", "master"} {
		if _, err := repo.Reference(plumbing.NewBranchReferenceName(name), false); err == nil {
			return name
		}
	}
	if head, err := repo.Head(); err == nil && head.Name().IsBranch() {
		return head.Name().Short()
	}
	return ""
}
