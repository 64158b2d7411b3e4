package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/internal/parquet"
)

// ExecuteHistoryExport exports the scan history to Parquet files next to outputFile.
func ExecuteHistoryExport(w io.Writer, store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for history export")
	}
	if store == nil {
		return errors.New("scan history is not enabled. Set --history-backend to sqlite, mysql or postgresql")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no scan history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total scan runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total author records: %d\n", status.TableSizes[authorTotalsTable])

	runs, err := store.GetAllScanRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve scan runs: %w", err)
	}
	totals, err := store.GetAllAuthorTotals()
	if err != nil {
		return fmt.Errorf("failed to retrieve author totals: %w", err)
	}

	parquetRuns := parquet.ConvertScanRunRecords(runs)
	runsFile := outputFile + ".scan_runs.parquet"
	if err := parquet.WriteScanRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write scan runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d scan runs to: %s\n", len(parquetRuns), runsFile)

	parquetTotals := parquet.ConvertAuthorTotalRecords(totals)
	totalsFile := outputFile + ".author_totals.parquet"
	if err := parquet.WriteAuthorTotalsParquet(parquetTotals, totalsFile); err != nil {
		return fmt.Errorf("failed to write author totals: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d author records to: %s\n", len(parquetTotals), totalsFile)
	return nil
}
