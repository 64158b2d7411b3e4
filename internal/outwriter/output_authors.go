package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAuthors outputs the scan's authors with their resolved display identity.
func WriteAuthors(listings []schema.AuthorListing, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, listings)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuthorsCSV(w, listings)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return unsupportedParquet("author listings")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuthorsTable(w, listings, cfg)
		}, "Wrote table")
	}
	return nil
}

func writeAuthorsCSV(w io.Writer, listings []schema.AuthorListing) error {
	header := []string{"name", "email", "display_name", "commits", "repositories", "color", "mapped"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, a := range listings {
			rec := []string{
				a.Name,
				a.Email,
				a.DisplayName,
				strconv.Itoa(a.CommitCount),
				strings.Join(a.Repositories, "|"),
				a.Color,
				strconv.FormatBool(a.IsMapped),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeAuthorsTable(w io.Writer, listings []schema.AuthorListing, cfg *contract.Config) error {
	style := newTextStyle(cfg)
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Author", "Email", "Commits", "Repos", "Color", "Mapped"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	nameWidth := GetMaxTableNameWidth(cfg, 60)
	mapped := 0
	var data [][]string
	for i, a := range listings {
		mark := ""
		if a.IsMapped {
			mark = style.good("✓")
			mapped++
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(a.DisplayName, nameWidth),
			contract.TruncateText(a.Email, nameWidth),
			formatCount(a.CommitCount),
			strconv.Itoa(len(a.Repositories)),
			swatch(a.Color, cfg.UseColors),
			mark,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d authors, %d mapped\n", len(listings), mapped)
	return err
}

// WriteRepositories outputs the per-repository summaries of a scan.
func WriteRepositories(repos []schema.Repository, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, repos)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRepositoriesCSV(w, repos)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return unsupportedParquet("repository listings")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRepositoriesTable(w, repos, cfg)
		}, "Wrote table")
	}
	return nil
}

func writeRepositoriesCSV(w io.Writer, repos []schema.Repository) error {
	header := []string{"name", "path", "default_branch", "commits", "authors", "top_language"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range repos {
			rec := []string{
				r.Name,
				r.Path,
				r.DefaultBranch,
				strconv.Itoa(r.CommitCount),
				strconv.Itoa(len(r.Authors)),
				topLanguage(r.Languages),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeRepositoriesTable(w io.Writer, repos []schema.Repository, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Repository", "Branch", "Commits", "Authors", "Top Language"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	nameWidth := GetMaxTableNameWidth(cfg, 55)
	total := 0
	var data [][]string
	for i, r := range repos {
		total += r.CommitCount
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(r.Name, nameWidth),
			r.DefaultBranch,
			formatCount(r.CommitCount),
			strconv.Itoa(len(r.Authors)),
			topLanguage(r.Languages),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d repositories, %s commits\n", len(repos), formatCount(total))
	return err
}

// WriteRepository outputs one repository with its authors and languages.
func WriteRepository(repo schema.Repository, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, repo)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"repository", "name", "email", "commits"}, func(cw *csv.Writer) error {
				for _, a := range repo.Authors {
					if err := cw.Write([]string{repo.Name, a.Name, a.Email, strconv.Itoa(a.CommitCount)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return unsupportedParquet("repository details")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRepositoryText(w, repo, cfg)
		}, "Wrote repository")
	}
	return nil
}

func writeRepositoryText(w io.Writer, repo schema.Repository, cfg *contract.Config) error {
	style := newTextStyle(cfg)
	p := &printer{w: w}
	p.linef("%s %s", style.title("📦 Repository:"), repo.Name)
	if repo.Path != "" {
		p.linef("Path: %s", repo.Path)
	}
	if repo.DefaultBranch != "" {
		p.linef("Default branch: %s", repo.DefaultBranch)
	}
	p.linef("Commits: %s, Authors: %d", style.accent(formatCount(repo.CommitCount)), len(repo.Authors))

	if len(repo.Authors) > 0 {
		p.section(style, "👥 Authors")
		if p.err == nil {
			table := tablewriter.NewWriter(w)
			table.Header([]string{"Author", "Email", "Commits"})
			table.Configure(func(cfg *tablewriter.Config) {
				cfg.Row.Alignment.Global = tw.AlignRight
			})
			var data [][]string
			for _, a := range repo.Authors[:limitRows(len(repo.Authors), cfg)] {
				data = append(data, []string{a.Name, a.Email, formatCount(a.CommitCount)})
			}
			if p.err = table.Bulk(data); p.err == nil {
				p.err = table.Render()
			}
		}
	}

	if len(repo.Languages) > 0 {
		p.section(style, "💻 Languages (inserted lines)")
		total := repo.Languages.Total()
		for _, l := range repo.Languages[:limitRows(len(repo.Languages), cfg)] {
			share := 0
			if total > 0 {
				share = l.Lines * 100 / total
			}
			p.linef("%-14s %10s %3d%% %s", l.Name, formatCount(l.Lines), share, bar(share, 100, barWidth))
		}
	}
	return p.err
}

// WriteMapping outputs the author mapping table read from path.
func WriteMapping(rows []schema.MappingEntry, path string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"name", "emails", "color"}, func(cw *csv.Writer) error {
				for _, r := range rows {
					if err := cw.Write([]string{r.Name, strings.Join(r.Emails, "|"), r.Color}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return unsupportedParquet("the author mapping")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMappingTable(w, rows, path, cfg)
		}, "Wrote table")
	}
	return nil
}

func writeMappingTable(w io.Writer, rows []schema.MappingEntry, path string, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Author", "Emails", "Color"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	var data [][]string
	for _, r := range rows {
		data = append(data, []string{r.Name, strings.Join(r.Emails, ", "), swatch(r.Color, cfg.UseColors)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d mapped authors in %s\n", len(rows), path)
	return err
}

// topLanguage returns the language with the most inserted lines.
func topLanguage(tallies schema.LanguageTallies) string {
	top, best := "", 0
	for _, l := range tallies {
		if l.Lines > best {
			top, best = l.Name, l.Lines
		}
	}
	return top
}
