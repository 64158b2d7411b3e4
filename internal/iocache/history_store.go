package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
)

// Table names for scan history.
const (
	scanRunsTable     = "gitwrapped_scan_runs"
	authorTotalsTable = "gitwrapped_author_totals"
	migrationsTable   = "schema_migrations"
)

// sqliteTimeLayout keeps a fixed width so stored times sort lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDatabase(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the scan history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{scanRunsTable, getCreateScanRunsQuery(backend)},
		{authorTotalsTable, getCreateAuthorTotalsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateScanRunsQuery returns the CREATE TABLE query for gitwrapped_scan_runs.
func getCreateScanRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(scanRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				scan_id VARCHAR(36) PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms BIGINT,
				total_repos INT NOT NULL DEFAULT 0,
				total_commits INT NOT NULL DEFAULT 0,
				total_authors INT NOT NULL DEFAULT 0,
				date_range_start VARCHAR(10),
				date_range_end VARCHAR(10),
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				scan_id VARCHAR(36) PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms BIGINT,
				total_repos INT NOT NULL DEFAULT 0,
				total_commits INT NOT NULL DEFAULT 0,
				total_authors INT NOT NULL DEFAULT 0,
				date_range_start TEXT,
				date_range_end TEXT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				scan_id TEXT PRIMARY KEY,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_repos INTEGER NOT NULL DEFAULT 0,
				total_commits INTEGER NOT NULL DEFAULT 0,
				total_authors INTEGER NOT NULL DEFAULT 0,
				date_range_start TEXT,
				date_range_end TEXT,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateAuthorTotalsQuery returns the CREATE TABLE query for gitwrapped_author_totals.
func getCreateAuthorTotalsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(authorTotalsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				scan_id VARCHAR(36) NOT NULL,
				email VARCHAR(255) NOT NULL,
				name VARCHAR(255) NOT NULL,
				commit_count INT NOT NULL,
				insertions BIGINT NOT NULL,
				deletions BIGINT NOT NULL,
				repositories INT NOT NULL,
				PRIMARY KEY (scan_id, email)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				scan_id VARCHAR(36) NOT NULL,
				email TEXT NOT NULL,
				name TEXT NOT NULL,
				commit_count INT NOT NULL,
				insertions BIGINT NOT NULL,
				deletions BIGINT NOT NULL,
				repositories INT NOT NULL,
				PRIMARY KEY (scan_id, email)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				scan_id TEXT NOT NULL,
				email TEXT NOT NULL,
				name TEXT NOT NULL,
				commit_count INTEGER NOT NULL,
				insertions INTEGER NOT NULL,
				deletions INTEGER NOT NULL,
				repositories INTEGER NOT NULL,
				PRIMARY KEY (scan_id, email)
			);
		`, quotedTableName)
	}
}

// formatTime converts a time to the representation the backend stores.
// SQLite keeps text, so times are normalized to UTC.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	if backend == schema.SQLiteBackend {
		return t.UTC().Format(sqliteTimeLayout)
	}
	return t
}

// parseStoredTime reads back a time written by formatTime on SQLite.
func parseStoredTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

// scanTime scans a single time column from a row, handling the SQLite text form.
func (hs *HistoryStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	if hs.backend == schema.SQLiteBackend {
		var raw string
		if err := row.Scan(&raw); err != nil {
			return time.Time{}, err
		}
		return parseStoredTime(raw)
	}
	var t time.Time
	err := row.Scan(&t)
	return t, err
}

// BeginScan records the start of a scan run.
func (hs *HistoryStoreImpl) BeginScan(scanID string, startTime time.Time, configParams map[string]any) error {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return fmt.Errorf("failed to marshal config params: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (scan_id, start_time, config_params) VALUES (%s)`,
		quoteTableName(scanRunsTable, hs.backend), placeholders(hs.backend, 3))
	if _, err := hs.db.Exec(query, scanID, formatTime(startTime, hs.backend), string(configJSON)); err != nil {
		return fmt.Errorf("failed to insert scan run: %w", err)
	}
	return nil
}

// EndScan updates the scan run with completion data.
func (hs *HistoryStoreImpl) EndScan(scanID string, endTime time.Time, summary schema.ScanSummary) error {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(scanRunsTable, hs.backend)
	selectQuery := fmt.Sprintf(`SELECT start_time FROM %s WHERE scan_id = %s`, quotedTableName, placeholder(hs.backend, 1))
	startTime, err := hs.scanTime(hs.db.QueryRow(selectQuery, scanID))
	if err != nil {
		return fmt.Errorf("failed to get start_time for scan %s: %w", scanID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()
	p := func(n int) string { return placeholder(hs.backend, n) }
	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_repos = %s, total_commits = %s,
		total_authors = %s, date_range_start = %s, date_range_end = %s WHERE scan_id = %s`,
		quotedTableName, p(1), p(2), p(3), p(4), p(5), p(6), p(7), p(8))
	args := []any{
		formatTime(endTime, hs.backend), durationMs,
		summary.Repositories, summary.Commits, summary.Authors,
		nullableString(summary.DateRange.Start), nullableString(summary.DateRange.End),
		scanID,
	}
	if _, err := hs.db.Exec(updateQuery, args...); err != nil {
		return fmt.Errorf("failed to update scan run: %w", err)
	}
	return nil
}

// RecordAuthorTotals stores one row per author for a scan run in a single transaction.
func (hs *HistoryStoreImpl) RecordAuthorTotals(scanID string, totals []schema.AuthorTotalRecord) error {
	if hs.backend == schema.NoneBackend || hs.db == nil || len(totals) == 0 {
		return nil
	}

	tx, err := hs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf(`INSERT INTO %s (scan_id, email, name, commit_count, insertions, deletions, repositories) VALUES (%s)`,
		quoteTableName(authorTotalsTable, hs.backend), placeholders(hs.backend, 7))
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare author totals insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range totals {
		if _, err := stmt.Exec(scanID, rec.Email, rec.Name, rec.CommitCount, rec.Insertions, rec.Deletions, rec.Repositories); err != nil {
			return fmt.Errorf("failed to insert author totals for %s: %w", rec.Email, err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	quotedRuns := quoteTableName(scanRunsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		lastQuery := fmt.Sprintf("SELECT scan_id FROM %s ORDER BY start_time DESC, scan_id DESC LIMIT 1", quotedRuns)
		if err := hs.db.QueryRow(lastQuery).Scan(&status.LastScanID); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}

		var err error
		status.LastRunTime, err = hs.scanTime(hs.db.QueryRow(fmt.Sprintf("SELECT MAX(start_time) FROM %s", quotedRuns)))
		if err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		status.OldestRunTime, err = hs.scanTime(hs.db.QueryRow(fmt.Sprintf("SELECT MIN(start_time) FROM %s", quotedRuns)))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}

		commitsQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_commits), 0) FROM %s", quotedRuns)
		if err := hs.db.QueryRow(commitsQuery).Scan(&status.TotalCommits); err != nil {
			return status, fmt.Errorf("failed to get total commits: %w", err)
		}
	}

	for _, table := range []string{scanRunsTable, authorTotalsTable} {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		if err := hs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// GetAllScanRuns retrieves every scan run, newest first.
func (hs *HistoryStoreImpl) GetAllScanRuns() ([]schema.ScanRunRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT scan_id, start_time, end_time, run_duration_ms, total_repos, total_commits, total_authors,
		date_range_start, date_range_end, config_params FROM %s ORDER BY start_time DESC, scan_id DESC`,
		quoteTableName(scanRunsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ScanRunRecord
	for rows.Next() {
		var rec schema.ScanRunRecord
		switch hs.backend {
		case schema.SQLiteBackend:
			var startStr string
			var endStr *string
			if err := rows.Scan(&rec.ScanID, &startStr, &endStr, &rec.RunDurationMs, &rec.TotalRepos, &rec.TotalCommits,
				&rec.TotalAuthors, &rec.DateRangeStart, &rec.DateRangeEnd, &rec.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan scan run: %w", err)
			}
			if rec.StartTime, err = parseStoredTime(startStr); err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endStr != nil {
				end, err := parseStoredTime(*endStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				rec.EndTime = &end
			}
		default: // MySQL and PostgreSQL store as native datetime
			if err := rows.Scan(&rec.ScanID, &rec.StartTime, &rec.EndTime, &rec.RunDurationMs, &rec.TotalRepos, &rec.TotalCommits,
				&rec.TotalAuthors, &rec.DateRangeStart, &rec.DateRangeEnd, &rec.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan scan run: %w", err)
			}
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scan runs: %w", err)
	}
	return results, nil
}

// GetAllAuthorTotals retrieves every recorded author total.
func (hs *HistoryStoreImpl) GetAllAuthorTotals() ([]schema.AuthorTotalRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT scan_id, email, name, commit_count, insertions, deletions, repositories FROM %s ORDER BY scan_id, commit_count DESC, email`,
		quoteTableName(authorTotalsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query author totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AuthorTotalRecord
	for rows.Next() {
		var rec schema.AuthorTotalRecord
		if err := rows.Scan(&rec.ScanID, &rec.Email, &rec.Name, &rec.CommitCount, &rec.Insertions, &rec.Deletions, &rec.Repositories); err != nil {
			return nil, fmt.Errorf("failed to scan author totals: %w", err)
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author totals: %w", err)
	}
	return results, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
