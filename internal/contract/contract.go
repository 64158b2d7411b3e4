// Package contract provides interfaces and shared utilities for gitwrapped's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/gitwrapped/schema"
)

// Markers used in the git log format so commit headers can be told apart from numstat lines.
const (
	LogRecordStart = "__GITWRAPPED__"
	LogFieldSep    = "\x1f"
)

// GitClient defines the git operations the extractor needs.
// This allows the extraction logic to be tested without needing a real git executable.
type GitClient interface {
	// Run executes a git command and returns its output.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// IsRepository reports whether repoPath is inside a git work tree.
	IsRepository(ctx context.Context, repoPath string) bool

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// GetDefaultBranch returns main or master when present, else the checked out branch.
	GetDefaultBranch(ctx context.Context, repoPath string) (string, error)

	// GetCommitLog returns the raw log with numstat output for every ref in the date range.
	GetCommitLog(ctx context.Context, repoPath string, dateRange schema.DateRange) ([]byte, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetScanStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore records scan runs and the per-author totals they produced.
type HistoryStore interface {
	// BeginScan records the start of a scan run.
	BeginScan(scanID string, startTime time.Time, configParams map[string]any) error

	// EndScan stores the completion data of a scan run.
	EndScan(scanID string, endTime time.Time, summary schema.ScanSummary) error

	// RecordAuthorTotals stores one row per author for a scan run.
	RecordAuthorTotals(scanID string, totals []schema.AuthorTotalRecord) error

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// GetAllScanRuns returns every recorded scan run, newest first.
	GetAllScanRuns() ([]schema.ScanRunRecord, error)

	// GetAllAuthorTotals returns every recorded author total.
	GetAllAuthorTotals() ([]schema.AuthorTotalRecord, error)

	// Close closes the underlying connection.
	Close() error
}
