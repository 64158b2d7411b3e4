package schema

import "time"

// CacheStatus represents the status of the cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the scan history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastScanID    string           `json:"last_scan_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalCommits  int64            `json:"total_commits"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// ScanSummary is the short description of a scan shown after scanning
// and by the status commands.
type ScanSummary struct {
	ScanID       string    `json:"scanId"`
	ScannedAt    time.Time `json:"scannedAt"`
	Targets      []string  `json:"targets"`
	Repositories int       `json:"repositories"`
	Commits      int       `json:"commits"`
	Authors      int       `json:"authors"`
	Languages    int       `json:"languages"`
	DateRange    DateRange `json:"dateRange"`
	FromCache    bool      `json:"fromCache"`
}

// Summarize builds the short description of a scan.
func (s *ScanData) Summarize() ScanSummary {
	return ScanSummary{
		ScanID:       s.ScanID,
		ScannedAt:    s.ScannedAt,
		Targets:      s.Targets,
		Repositories: len(s.Repositories),
		Commits:      len(s.Commits),
		Authors:      len(s.Authors),
		Languages:    len(s.Languages),
		DateRange:    s.DateRange,
	}
}

// ScanRunRecord represents a row from the gitwrapped_scan_runs table.
type ScanRunRecord struct {
	ScanID         string
	StartTime      time.Time
	EndTime        *time.Time
	RunDurationMs  *int64
	TotalRepos     int32
	TotalCommits   int32
	TotalAuthors   int32
	DateRangeStart *string
	DateRangeEnd   *string
	ConfigParams   *string
}

// AuthorTotalRecord represents a row from the gitwrapped_author_totals table.
type AuthorTotalRecord struct {
	ScanID       string
	Email        string
	Name         string
	CommitCount  int32
	Insertions   int64
	Deletions    int64
	Repositories int32
}
