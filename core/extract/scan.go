package extract

import (
	"context"
	"io"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Options tune a scan.
type Options struct {
	// Workers bounds how many repositories are read at once.
	Workers int

	// Progress receives the progress bar. Nil hides it.
	Progress io.Writer

	// Now stamps the scan. Defaults to time.Now.
	Now func() time.Time

	// ScanID identifies the scan. Empty means a new UUID.
	ScanID string
}

type repoResult struct {
	repo schema.Repository
	log  RepoLog
}

// ScanRepositories extracts every repository concurrently and merges the
// results in input order. Repositories that fail or have no commits in the
// range are left out; failures are logged. Only cancellation aborts the scan.
func ScanRepositories(ctx context.Context, client contract.GitClient, repos []schema.DiscoveredRepo, dateRange schema.DateRange, opts Options) (*schema.ScanData, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	results, err := extractAll(ctx, client, repos, dateRange, opts)
	if err != nil {
		return nil, err
	}

	scan := mergeResults(results)
	scan.ScanID = opts.ScanID
	if scan.ScanID == "" {
		scan.ScanID = uuid.NewString()
	}
	scan.ScannedAt = now()
	scan.DateRange = dateRange
	return scan, nil
}

func extractAll(ctx context.Context, client contract.GitClient, repos []schema.DiscoveredRepo, dateRange schema.DateRange, opts Options) ([]*repoResult, error) {
	results := make([]*repoResult, len(repos))
	if len(repos) == 0 {
		return results, ctx.Err()
	}
	bar := newProgressBar(len(repos), opts.Progress)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.Workers))
	for i, repo := range repos {
		g.Go(func() error {
			defer func() { _ = bar.Add(1) }()
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := extractRepository(gctx, client, repo, dateRange)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				contract.Logger().WithError(err).WithField("repo", repo.Path).Warn("Skipping repository")
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	_ = bar.Finish()
	return results, nil
}

func extractRepository(ctx context.Context, client contract.GitClient, repo schema.DiscoveredRepo, dateRange schema.DateRange) (*repoResult, error) {
	out, err := client.GetCommitLog(ctx, repo.Path, dateRange)
	if err != nil {
		return nil, err
	}
	name := repo.Name
	if name == "" {
		name = filepath.Base(repo.Path)
	}
	parsed := ParseCommitLog(out, name)

	branch := repo.DefaultBranch
	if branch == "" {
		if b, err := client.GetDefaultBranch(ctx, repo.Path); err == nil {
			branch = b
		}
	}

	contract.Logger().WithFields(logrus.Fields{"repo": name, "commits": len(parsed.Commits)}).Debug("Parsed repository")
	return &repoResult{
		repo: schema.Repository{
			Name:          name,
			Path:          repo.Path,
			DefaultBranch: branch,
			CommitCount:   len(parsed.Commits),
			Authors:       parsed.Authors,
			Languages:     parsed.Languages,
		},
		log: parsed,
	}, nil
}

// mergeResults folds per-repository results into one scan. Authors are merged
// by lower-cased email and sorted by commit count, ties keeping first appearance.
func mergeResults(results []*repoResult) *schema.ScanData {
	scan := &schema.ScanData{
		Repositories: []schema.Repository{},
		Commits:      []schema.Commit{},
		Authors:      []schema.Author{},
		Languages:    schema.LanguageTallies{},
	}
	authorIndex := make(map[string]int)

	for _, res := range results {
		if res == nil {
			continue
		}
		if len(res.log.Commits) == 0 {
			contract.Logger().WithField("repo", res.repo.Name).Info("No commits in date range")
			continue
		}
		scan.Repositories = append(scan.Repositories, res.repo)
		scan.Commits = append(scan.Commits, res.log.Commits...)

		for _, a := range res.log.Authors {
			key := strings.ToLower(a.Email)
			i, ok := authorIndex[key]
			if !ok {
				authorIndex[key] = len(scan.Authors)
				scan.Authors = append(scan.Authors, schema.Author{
					Name:         a.Name,
					Email:        a.Email,
					CommitCount:  a.CommitCount,
					Repositories: []string{res.repo.Name},
				})
				continue
			}
			merged := &scan.Authors[i]
			merged.CommitCount += a.CommitCount
			if !slices.Contains(merged.Repositories, res.repo.Name) {
				merged.Repositories = append(merged.Repositories, res.repo.Name)
			}
		}

		for _, l := range res.log.Languages {
			scan.Languages.Add(l.Name, l.Lines)
		}
	}

	sort.SliceStable(scan.Authors, func(i, j int) bool {
		return scan.Authors[i].CommitCount > scan.Authors[j].CommitCount
	})
	scan.TotalCommits = len(scan.Commits)
	return scan
}

func newProgressBar(total int, w io.Writer) *progressbar.ProgressBar {
	if w == nil {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Scanning repositories[reset]"),
		progressbar.OptionClearOnFinish(),
	)
}
