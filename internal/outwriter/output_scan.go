package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteScanSummary outputs the summary of a scan, dispatching based on the output format configured.
func WriteScanSummary(summary schema.ScanSummary, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScanSummaryCSV(w, summary)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return unsupportedParquet("scan summaries")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScanSummaryText(w, summary, cfg, duration)
		}, "Wrote summary")
	}
	return nil
}

func writeScanSummaryCSV(w io.Writer, summary schema.ScanSummary) error {
	header := []string{"scan_id", "scanned_at", "targets", "repositories", "commits", "authors", "languages", "date_range", "from_cache"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		return cw.Write([]string{
			summary.ScanID,
			summary.ScannedAt.UTC().Format(time.RFC3339),
			strings.Join(summary.Targets, "|"),
			strconv.Itoa(summary.Repositories),
			strconv.Itoa(summary.Commits),
			strconv.Itoa(summary.Authors),
			strconv.Itoa(summary.Languages),
			summary.DateRange.String(),
			strconv.FormatBool(summary.FromCache),
		})
	})
}

func writeScanSummaryText(w io.Writer, summary schema.ScanSummary, cfg *contract.Config, duration time.Duration) error {
	style := newTextStyle(cfg)
	source := "fresh scan"
	if summary.FromCache {
		source = "from cache"
	}
	lines := []string{
		fmt.Sprintf("%s %s (%s)", style.title("🎁 Scan"), summary.ScanID, style.muted(source)),
		fmt.Sprintf("Targets: %s", strings.Join(summary.Targets, ", ")),
		fmt.Sprintf("Date Range: %s", summary.DateRange),
		fmt.Sprintf("Repositories: %s, Commits: %s, Authors: %s, Languages: %s",
			style.accent(formatCount(summary.Repositories)),
			style.accent(formatCount(summary.Commits)),
			style.accent(formatCount(summary.Authors)),
			style.accent(formatCount(summary.Languages))),
		fmt.Sprintf("Scan completed in %v with %d workers. Cache backend: %s", duration, cfg.Workers, cfg.CacheBackend),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteDiscovered outputs the repositories found under the scan targets.
func WriteDiscovered(repos []schema.DiscoveredRepo, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, repos)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"name", "path", "default_branch", "head"}, func(cw *csv.Writer) error {
				for _, r := range repos {
					if err := cw.Write([]string{r.Name, r.Path, r.DefaultBranch, r.HeadHash}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return unsupportedParquet("discovered repositories")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDiscoveredTable(w, repos, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

func writeDiscoveredTable(w io.Writer, repos []schema.DiscoveredRepo, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Repository", "Path", "Branch", "HEAD"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	pathWidth := GetMaxTableNameWidth(cfg, 50)
	var data [][]string
	for i, r := range repos {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.Name,
			contract.TruncatePath(r.Path, pathWidth),
			r.DefaultBranch,
			shortHash(r.HeadHash),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Found %d repositories in %v (max depth %d)\n", len(repos), duration, cfg.MaxDepth)
	return err
}

// WriteExport writes scan data in the export file format. The export is always JSON.
func WriteExport(scan *schema.ScanData, cfg *contract.Config) error {
	if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, scan)
	}, "Wrote export"); err != nil {
		return fmt.Errorf("error writing export: %w", err)
	}
	return nil
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
