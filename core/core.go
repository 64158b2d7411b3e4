// Package core has the orchestration logic behind every command: scanning with
// caching and history, loading scan data and running the stats engine.
package core

import (
	"context"
	"time"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/internal/outwriter"
	"github.com/huangsam/gitwrapped/schema"
)

// ExecutorFunc defines the function signature for commands that work on scan data.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteScan scans the configured targets, caches the result as the last scan
// and prints a summary.
func ExecuteScan(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	summary, duration, err := GetScanResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteScanSummary(summary, cfg, duration)
}

// ExecuteDiscover lists the repositories under the configured targets.
func ExecuteDiscover(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	repos, duration, err := GetDiscoverResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteDiscovered(repos, cfg, duration)
}

// ExecuteDeveloperStats prints the year in review for one author email.
func ExecuteDeveloperStats(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, email string) error {
	result, commits, duration, err := GetDeveloperStatsResults(ctx, cfg, mgr, email)
	if err != nil {
		return err
	}
	return outwriter.WriteDeveloperStats(result, commits, cfg, duration)
}

// ExecuteTeamStats prints the team dashboard.
func ExecuteTeamStats(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	team, duration, err := GetTeamStatsResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteTeamStats(team, cfg, duration)
}

// ExecuteAuthors prints the scan's authors with their mapped identity.
func ExecuteAuthors(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	listings, err := GetAuthorsResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteAuthors(listings, cfg)
}

// ExecuteRepos prints every scanned repository, or one repository in detail when name is set.
func ExecuteRepos(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, name string) error {
	if name != "" {
		repo, err := GetRepoResult(ctx, cfg, mgr, name)
		if err != nil {
			return err
		}
		return outwriter.WriteRepository(repo, cfg)
	}
	repos, err := GetReposResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteRepositories(repos, cfg)
}

// ExecuteExport scans the configured targets and writes the export file that
// --input and other tools read.
func ExecuteExport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	scan, _, err := runScan(ctx, cfg, contract.NewLocalGitClient(), mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteExport(buildExport(scan, time.Now()), cfg)
}

// buildExport stamps a copy of scan with the export metadata.
func buildExport(scan *schema.ScanData, now time.Time) *schema.ScanData {
	export := *scan
	export.ExportVersion = schema.ExportVersion
	export.SourceApp = schema.SourceApp
	export.ExportDate = now.UTC().Format(time.RFC3339)
	if export.DateRange.IsAllTime() {
		export.DateRange = schema.AllTimeRange()
	}
	return &export
}
