package core

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/internal/iocache"
	"github.com/huangsam/gitwrapped/schema"
)

// ExecuteCacheStatus prints the cache store status followed by the last scan, if any.
func ExecuteCacheStatus(w io.Writer, mgr contract.CacheManager) error {
	store := scanStore(mgr)
	if store == nil {
		return errors.New("scan caching is not enabled")
	}
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get cache status: %w", err)
	}
	iocache.PrintCacheStatus(w, status)

	scan, err := loadLastScan(store)
	if err != nil {
		_, _ = fmt.Fprintln(w, "Last Scan: none")
		return nil
	}
	printLastScan(w, scan.Summarize())
	return nil
}

// ExecuteHistoryStatus prints the scan history store status.
func ExecuteHistoryStatus(w io.Writer, mgr contract.CacheManager) error {
	store := historyStore(mgr)
	if store == nil {
		return errors.New("scan history is not enabled. Set --history-backend to sqlite, mysql or postgresql")
	}
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	iocache.PrintHistoryStatus(w, status)
	return nil
}

func printLastScan(w io.Writer, summary schema.ScanSummary) {
	_, _ = fmt.Fprintf(w, "Last Scan: %s\n", summary.ScanID)
	_, _ = fmt.Fprintf(w, "  Scanned At: %s\n", summary.ScannedAt.Local().Format("2006-01-02 15:04:05"))
	if len(summary.Targets) > 0 {
		_, _ = fmt.Fprintf(w, "  Targets: %s\n", strings.Join(summary.Targets, ", "))
	}
	_, _ = fmt.Fprintf(w, "  Date Range: %s\n", summary.DateRange)
	_, _ = fmt.Fprintf(w, "  Repositories: %d, Commits: %d, Authors: %d\n", summary.Repositories, summary.Commits, summary.Authors)
}
