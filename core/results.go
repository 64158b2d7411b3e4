package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/gitwrapped/core/authors"
	"github.com/huangsam/gitwrapped/core/extract"
	"github.com/huangsam/gitwrapped/core/stats"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
)

// GetScanResults scans the configured targets and returns the scan summary.
func GetScanResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.ScanSummary, time.Duration, error) {
	return getScanResults(ctx, cfg, contract.NewLocalGitClient(), mgr)
}

func getScanResults(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (schema.ScanSummary, time.Duration, error) {
	start := time.Now()
	scan, fromCache, err := runScan(ctx, cfg, client, mgr)
	if err != nil {
		return schema.ScanSummary{}, 0, err
	}
	summary := scan.Summarize()
	summary.FromCache = fromCache
	return summary, time.Since(start), nil
}

// GetDiscoverResults lists the repositories under the configured targets without reading history.
func GetDiscoverResults(_ context.Context, cfg *contract.Config) ([]schema.DiscoveredRepo, time.Duration, error) {
	start := time.Now()
	repos, err := extract.ResolveTargets(cfg.ScanPaths, cfg.MaxDepth)
	if err != nil {
		return nil, 0, err
	}
	return repos, time.Since(start), nil
}

// GetDeveloperStatsResults computes the year in review for one author email.
// The returned commits are the ones attributed to that author.
func GetDeveloperStatsResults(_ context.Context, cfg *contract.Config, mgr contract.CacheManager, email string) (*schema.DeveloperStats, []schema.Commit, time.Duration, error) {
	start := time.Now()
	scan, err := loadScan(cfg, mgr)
	if err != nil {
		return nil, nil, 0, err
	}
	engine := newEngine(cfg)
	result, err := engine.DeveloperStats(email, scan)
	if err != nil {
		return nil, nil, 0, err
	}
	return result, engine.AuthorCommits(email, scan.Commits), time.Since(start), nil
}

// GetTeamStatsResults computes the team dashboard over the whole scan.
func GetTeamStatsResults(_ context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.TeamStats, time.Duration, error) {
	start := time.Now()
	scan, err := loadScan(cfg, mgr)
	if err != nil {
		return nil, 0, err
	}
	team, err := newEngine(cfg).TeamStats(scan)
	if err != nil {
		return nil, 0, err
	}
	return team, time.Since(start), nil
}

// GetAuthorsResults lists the scan's authors enriched with their mapped identity.
func GetAuthorsResults(_ context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.AuthorListing, error) {
	scan, err := loadScan(cfg, mgr)
	if err != nil {
		return nil, err
	}
	return buildAuthorListings(scan, authors.NewStore(cfg.MappingFile).Resolver()), nil
}

// GetReposResults lists the scan's repositories.
func GetReposResults(_ context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.Repository, error) {
	scan, err := loadScan(cfg, mgr)
	if err != nil {
		return nil, err
	}
	return scan.Repositories, nil
}

// GetRepoResult returns one repository of the scan by name.
func GetRepoResult(_ context.Context, cfg *contract.Config, mgr contract.CacheManager, name string) (schema.Repository, error) {
	scan, err := loadScan(cfg, mgr)
	if err != nil {
		return schema.Repository{}, err
	}
	repo, ok := scan.FindRepository(name)
	if !ok {
		return schema.Repository{}, fmt.Errorf("repository %q not found in scan data", name)
	}
	return repo, nil
}

// newEngine builds a stats engine over the current author mapping snapshot.
func newEngine(cfg *contract.Config) *stats.Engine {
	return stats.NewEngine(authors.NewStore(cfg.MappingFile).Resolver())
}

// buildAuthorListings resolves every scan author. Unmapped authors keep their
// git name and get the palette color at their position.
func buildAuthorListings(scan *schema.ScanData, resolver *authors.Resolver) []schema.AuthorListing {
	listings := make([]schema.AuthorListing, len(scan.Authors))
	for i, a := range scan.Authors {
		listing := schema.AuthorListing{
			Author:      a,
			DisplayName: a.Name,
			Color:       authors.PaletteColor(i),
		}
		if id, ok := resolver.Resolve(a.Email); ok {
			listing.DisplayName = id.Name
			listing.IsMapped = true
			if id.Color != "" {
				listing.Color = id.Color
			}
		}
		listings[i] = listing
	}
	return listings
}
