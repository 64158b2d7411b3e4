package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/gitwrapped/core/extract"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/sirupsen/logrus"
)

// scanStore returns the scan cache, or nil when caching is off.
func scanStore(mgr contract.CacheManager) contract.CacheStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetScanStore()
}

// historyStore returns the history store, or nil when history is off.
func historyStore(mgr contract.CacheManager) contract.HistoryStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetHistoryStore()
}

// runScan discovers the repositories under the configured targets and extracts
// their history. A fresh cached scan for the same targets, range and HEADs is
// reused. Either way the result becomes the last scan.
func runScan(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (*schema.ScanData, bool, error) {
	repos, err := extract.ResolveTargets(cfg.ScanPaths, cfg.MaxDepth)
	if err != nil {
		return nil, false, err
	}
	if len(repos) == 0 {
		return nil, false, fmt.Errorf("no git repositories found under %s", strings.Join(cfg.ScanPaths, ", "))
	}
	fillHeadHashes(ctx, client, repos)

	store := scanStore(mgr)
	key := generateCacheKey(cfg.ScanPaths, cfg.DateRange, repos)
	if store != nil && !shouldRefresh(ctx) {
		if cached := checkCacheHit(store, key); cached != nil {
			contract.Logger().WithField("scan", cached.ScanID).Debug("Reusing cached scan")
			storeScan(store, cached, lastScanKey)
			return cached, true, nil
		}
	}

	scan, err := extractAndRecord(ctx, cfg, client, historyStore(mgr), repos)
	if err != nil {
		return nil, false, err
	}
	if store != nil {
		storeScan(store, scan, key, lastScanKey)
	}
	return scan, false, nil
}

// fillHeadHashes asks git for the HEAD of repositories go-git could not resolve.
func fillHeadHashes(ctx context.Context, client contract.GitClient, repos []schema.DiscoveredRepo) {
	for i := range repos {
		if repos[i].HeadHash != "" {
			continue
		}
		hash, err := client.GetRepoHash(ctx, repos[i].Path)
		if err != nil {
			continue
		}
		repos[i].HeadHash = hash
	}
}

// extractAndRecord runs the extractor and records the run in the scan history.
// History failures are logged and never fail the scan.
func extractAndRecord(ctx context.Context, cfg *contract.Config, client contract.GitClient, history contract.HistoryStore, repos []schema.DiscoveredRepo) (*schema.ScanData, error) {
	scanID := uuid.NewString()
	startTime := time.Now()

	if history != nil {
		configParams := map[string]any{
			"targets":    cfg.ScanPaths,
			"date_range": cfg.DateRange.String(),
			"workers":    cfg.Workers,
			"max_depth":  cfg.MaxDepth,
		}
		if err := history.BeginScan(scanID, startTime, configParams); err != nil {
			contract.LogWarn("Scan history initialization failed", err)
			history = nil
		}
	}

	var progress io.Writer
	if !cfg.Quiet && !shouldSuppressProgress(ctx) {
		progress = os.Stderr
	}
	scan, err := extract.ScanRepositories(ctx, client, repos, cfg.DateRange, extract.Options{
		Workers:  cfg.Workers,
		Progress: progress,
		Now:      func() time.Time { return startTime },
		ScanID:   scanID,
	})
	if err != nil {
		return nil, err
	}
	scan.Targets = append([]string(nil), cfg.ScanPaths...)

	contract.Logger().WithFields(logrus.Fields{
		"scan":         scan.ScanID,
		"repositories": len(scan.Repositories),
		"commits":      scan.TotalCommits,
	}).Debug("Scan finished")

	if history != nil {
		if err := history.EndScan(scanID, time.Now(), scan.Summarize()); err != nil {
			contract.LogWarn("Failed to finalize scan history", err)
		}
		if err := history.RecordAuthorTotals(scanID, authorTotals(scan)); err != nil {
			contract.LogWarn("Failed to record author totals", err)
		}
	}
	return scan, nil
}

// authorTotals builds one history row per scan-wide author.
func authorTotals(scan *schema.ScanData) []schema.AuthorTotalRecord {
	insertions := make(map[string]int64)
	deletions := make(map[string]int64)
	for _, c := range scan.Commits {
		key := strings.ToLower(c.Email)
		insertions[key] += int64(c.Insertions)
		deletions[key] += int64(c.Deletions)
	}

	totals := make([]schema.AuthorTotalRecord, 0, len(scan.Authors))
	for _, a := range scan.Authors {
		key := strings.ToLower(a.Email)
		totals = append(totals, schema.AuthorTotalRecord{
			ScanID:       scan.ScanID,
			Email:        key,
			Name:         a.Name,
			CommitCount:  int32(a.CommitCount),
			Insertions:   insertions[key],
			Deletions:    deletions[key],
			Repositories: int32(len(a.Repositories)),
		})
	}
	return totals
}

// loadScan returns the scan data that stats are computed over: the export file
// given with --input, else the last cached scan.
func loadScan(cfg *contract.Config, mgr contract.CacheManager) (*schema.ScanData, error) {
	if cfg.InputFile != "" {
		return readExportFile(cfg.InputFile)
	}
	store := scanStore(mgr)
	if store == nil {
		return nil, contract.ErrNoScanData
	}
	return loadLastScan(store)
}

// loadLastScan reads the last scan regardless of its age.
func loadLastScan(store contract.CacheStore) (*schema.ScanData, error) {
	data, version, _, err := store.Get(lastScanKey)
	if err != nil {
		return nil, contract.ErrNoScanData
	}
	if version != currentCacheVersion {
		contract.Logger().WithField("version", version).Info("Cached scan was written by another version, rescan needed")
		return nil, contract.ErrNoScanData
	}
	var scan schema.ScanData
	if err := json.Unmarshal(data, &scan); err != nil {
		contract.LogWarn("Cached scan is unreadable, rescan needed", err)
		return nil, contract.ErrNoScanData
	}
	return &scan, nil
}

// errInvalidExport marks input files that are not scan exports.
var errInvalidExport = errors.New("invalid export file format: commits and authors are required")

// readExportFile loads an export file written by the export command or another tool.
func readExportFile(path string) (*schema.ScanData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	var scan schema.ScanData
	if err := json.Unmarshal(data, &scan); err != nil {
		return nil, fmt.Errorf("failed to parse input file %s: %w", path, err)
	}
	if scan.Commits == nil || scan.Authors == nil {
		return nil, fmt.Errorf("%s: %w", path, errInvalidExport)
	}
	if scan.TotalCommits == 0 {
		scan.TotalCommits = len(scan.Commits)
	}
	if scan.Repositories == nil {
		scan.Repositories = []schema.Repository{}
	}
	return &scan, nil
}
