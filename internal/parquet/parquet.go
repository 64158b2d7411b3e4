// Package parquet provides data structures and functions for exporting gitwrapped
// scan history and stats to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/huangsam/gitwrapped/schema"
	"github.com/parquet-go/parquet-go"
)

// ScanRun represents a single recorded scan with its totals.
// This struct maps to the gitwrapped_scan_runs database table.
type ScanRun struct {
	// ScanID is the unique identifier for this scan
	ScanID string `parquet:"scan_id,snappy"`

	// StartTime is when the scan began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the scan completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the scan in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	TotalRepos   int32 `parquet:"total_repos,snappy"`
	TotalCommits int32 `parquet:"total_commits,snappy"`
	TotalAuthors int32 `parquet:"total_authors,snappy"`

	// DateRangeStart and DateRangeEnd are YYYY-MM-DD bounds; both nil means all-time
	DateRangeStart *string `parquet:"date_range_start,optional,snappy"`
	DateRangeEnd   *string `parquet:"date_range_end,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// AuthorTotal represents one author's totals within a scan.
// This struct maps to the gitwrapped_author_totals database table.
type AuthorTotal struct {
	ScanID       string `parquet:"scan_id,snappy"`
	Email        string `parquet:"email,snappy"`
	Name         string `parquet:"name,snappy"`
	CommitCount  int32  `parquet:"commit_count,snappy"`
	Insertions   int64  `parquet:"insertions,snappy"`
	Deletions    int64  `parquet:"deletions,snappy"`
	Repositories int32  `parquet:"repositories,snappy"`
}

// LeaderboardRow is one row of the team leaderboard.
type LeaderboardRow struct {
	Rank         int32  `parquet:"rank,snappy"`
	Name         string `parquet:"name,snappy"`
	Email        string `parquet:"email,snappy"`
	Commits      int32  `parquet:"commits,snappy"`
	Insertions   int64  `parquet:"insertions,snappy"`
	Repositories int32  `parquet:"repositories,snappy"`
	Color        string `parquet:"color,snappy"`
}

// CommitRow is one commit of a developer's history.
type CommitRow struct {
	Hash       string `parquet:"hash,snappy"`
	Repository string `parquet:"repository,snappy"`
	Author     string `parquet:"author,snappy"`
	Email      string `parquet:"email,snappy"`
	Date       string `parquet:"date,snappy"`
	Message    string `parquet:"message,snappy"`
	Insertions int32  `parquet:"insertions,snappy"`
	Deletions  int32  `parquet:"deletions,snappy"`

	// FilesChanged is the newline-joined list of touched paths
	FilesChanged string `parquet:"files_changed,snappy"`
}

// WriteRows writes rows to w using the schema inferred from T's struct tags.
func WriteRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeFile creates outputPath and writes rows into it.
func writeFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteRows(file, rows); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteScanRunsParquet writes scan runs to a Parquet file.
func WriteScanRunsParquet(data []ScanRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteAuthorTotalsParquet writes author totals to a Parquet file.
func WriteAuthorTotalsParquet(data []AuthorTotal, outputPath string) error {
	return writeFile(data, outputPath)
}

// ConvertScanRunRecords converts schema.ScanRunRecord to ScanRun for Parquet export.
func ConvertScanRunRecords(records []schema.ScanRunRecord) []ScanRun {
	result := make([]ScanRun, len(records))
	for i, record := range records {
		result[i] = ScanRun{
			ScanID:         record.ScanID,
			StartTime:      record.StartTime,
			EndTime:        record.EndTime,
			RunDurationMs:  record.RunDurationMs,
			TotalRepos:     record.TotalRepos,
			TotalCommits:   record.TotalCommits,
			TotalAuthors:   record.TotalAuthors,
			DateRangeStart: record.DateRangeStart,
			DateRangeEnd:   record.DateRangeEnd,
			ConfigParams:   record.ConfigParams,
		}
	}
	return result
}

// ConvertAuthorTotalRecords converts schema.AuthorTotalRecord to AuthorTotal for Parquet export.
func ConvertAuthorTotalRecords(records []schema.AuthorTotalRecord) []AuthorTotal {
	result := make([]AuthorTotal, len(records))
	for i, record := range records {
		result[i] = AuthorTotal(record)
	}
	return result
}

// ConvertLeaderboard converts leaderboard entries to Parquet rows.
func ConvertLeaderboard(entries []schema.LeaderboardEntry) []LeaderboardRow {
	result := make([]LeaderboardRow, len(entries))
	for i, e := range entries {
		result[i] = LeaderboardRow{
			Rank:         int32(e.Rank),
			Name:         e.Name,
			Email:        e.Email,
			Commits:      int32(e.Commits),
			Insertions:   int64(e.Insertions),
			Repositories: int32(e.Repositories),
			Color:        e.Color,
		}
	}
	return result
}

// ConvertCommits converts commits to Parquet rows.
func ConvertCommits(commits []schema.Commit) []CommitRow {
	result := make([]CommitRow, len(commits))
	for i, c := range commits {
		result[i] = CommitRow{
			Hash:         c.Hash,
			Repository:   c.Repository,
			Author:       c.Author,
			Email:        c.Email,
			Date:         c.Date,
			Message:      c.Message,
			Insertions:   int32(c.Insertions),
			Deletions:    int32(c.Deletions),
			FilesChanged: strings.Join(c.FilesChanged, "\n"),
		}
	}
	return result
}
