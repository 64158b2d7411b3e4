package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/internal/parquet"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteDeveloperStats outputs one developer's year in review. Parquet output
// holds the developer's commits rather than the derived stats.
func WriteDeveloperStats(stats *schema.DeveloperStats, commits []schema.Commit, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, stats)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDeveloperCSV(w, stats)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetRows(cfg.OutputFile, parquet.ConvertCommits(commits)); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDeveloperText(w, stats, cfg, duration)
		}, "Wrote wrapped")
	}
	return nil
}

// writeDeveloperCSV flattens the stats into section, name, value rows.
func writeDeveloperCSV(w io.Writer, s *schema.DeveloperStats) error {
	return writeCSVWithHeader(w, []string{"section", "name", "value"}, func(cw *csv.Writer) error {
		var rows [][]string
		add := func(section, name string, value int) {
			rows = append(rows, []string{section, name, strconv.Itoa(value)})
		}
		add("summary", "total_commits", s.Summary.TotalCommits)
		add("summary", "total_insertions", s.Summary.TotalInsertions)
		add("summary", "total_deletions", s.Summary.TotalDeletions)
		add("summary", "total_lines_changed", s.Summary.TotalLinesChanged)
		add("summary", "repositories_contributed", s.Summary.RepositoriesContributed)
		add("summary", "languages_used", s.Summary.LanguagesUsed)
		for _, m := range s.MonthlyStats.ByMonth {
			add("month", m.Name, m.Commits)
		}
		for _, h := range s.HourlyStats.ByHour {
			add("hour", fmt.Sprintf("%02d", h.Hour), h.Commits)
		}
		for _, d := range s.DailyStats.ByDay {
			add("day", d.Name, d.Commits)
		}
		for _, l := range s.Languages.Languages {
			add("language", l.Name, l.Count)
		}
		for _, r := range s.Repositories {
			add("repository", r.Name, r.Commits)
		}
		add("streak", "current", s.StreakStats.CurrentStreak)
		add("streak", "longest", s.StreakStats.LongestStreak)
		add("streak", "active_days", s.StreakStats.TotalActiveDays)
		for _, b := range s.Badges {
			rows = append(rows, []string{"badge", b.ID, b.Name})
		}
		return cw.WriteAll(rows)
	})
}

func writeDeveloperText(w io.Writer, s *schema.DeveloperStats, cfg *contract.Config, duration time.Duration) error {
	style := newTextStyle(cfg)
	p := &printer{w: w}

	p.linef("%s %s <%s> %s", style.title("🎁 Wrapped:"), s.Author.Name, s.Author.Email, swatch(s.Author.Color, cfg.UseColors))
	p.linef("Date Range: %s", s.DateRange)
	if s.Summary.TotalCommits == 0 {
		p.linef("No commits found for %s in this date range.", s.Author.Email)
		return p.err
	}
	p.linef("Commits: %s, Lines: %s (%s / %s), Repositories: %d, Languages: %d",
		style.accent(formatCount(s.Summary.TotalCommits)),
		style.accent(formatCount(s.Summary.TotalLinesChanged)),
		style.good("+"+formatCount(s.Summary.TotalInsertions)),
		"-"+formatCount(s.Summary.TotalDeletions),
		s.Summary.RepositoriesContributed,
		s.Summary.LanguagesUsed)

	p.section(style, "📅 Monthly Activity")
	if p.err == nil {
		p.err = writeMonthTable(w, s.MonthlyStats.ByMonth)
	}
	if s.MonthlyStats.MostProductiveMonth != "" {
		p.linef("Most productive month: %s (%d commits)", s.MonthlyStats.MostProductiveMonth, s.MonthlyStats.MostProductiveMonthCommits)
	}

	p.section(style, "🕐 Hours and Days")
	hours := make([]int, len(s.HourlyStats.ByHour))
	for i, h := range s.HourlyStats.ByHour {
		hours[i] = h.Commits
	}
	p.linef("00h %s 23h", sparkline(hours))
	p.linef("Peak hour: %02d:00 (%d commits)", s.HourlyStats.PeakHour, s.HourlyStats.PeakHourCommits)
	days := make([]string, len(s.DailyStats.ByDay))
	for i, d := range s.DailyStats.ByDay {
		days[i] = fmt.Sprintf("%s %d", d.Short, d.Commits)
	}
	p.linef("%s", strings.Join(days, " · "))
	p.linef("Most active day: %s (%d commits). Weekend share: %d%%", s.DailyStats.MostActiveDay, s.DailyStats.MostActiveDayCommits, s.DailyStats.WeekendPercentage)
	p.linef("Coding style: %s, mostly in the %s", s.TimePatterns.CoderType, strings.ToLower(s.TimePatterns.PreferredTime))

	if len(s.Languages.Languages) > 0 {
		p.section(style, "💻 Languages")
		if p.err == nil {
			p.err = writeLanguageShareTable(w, s.Languages.Languages, cfg)
		}
	}

	if len(s.Repositories) > 0 {
		p.section(style, "📦 Repositories")
		if p.err == nil {
			p.err = writeRepoBreakdownTable(w, s.Repositories, cfg)
		}
	}

	p.section(style, "🔥 Streaks")
	p.linef("Current: %d days, Longest: %d days, Active days: %d", s.StreakStats.CurrentStreak, s.StreakStats.LongestStreak, s.StreakStats.TotalActiveDays)
	if bc := s.BiggestCommit; bc != nil {
		p.linef("Biggest commit: %s in %s (+%d / -%d) %s",
			shortHash(bc.Hash), bc.Repository, bc.Insertions, bc.Deletions,
			contract.TruncateText(bc.Message, GetMaxTableNameWidth(cfg, 40)))
	}

	if len(s.Badges) > 0 {
		p.section(style, "🏆 Badges")
		for _, b := range s.Badges {
			p.linef("%s %s: %s", b.Icon, style.accent(b.Name), b.Description)
		}
	}

	if len(s.Insights) > 0 {
		p.section(style, "💡 Insights")
		for _, insight := range s.Insights {
			p.linef("• %s", insight)
		}
	}

	p.linef("")
	p.linef("Stats computed in %v. Cache backend: %s", duration, cfg.CacheBackend)
	return p.err
}

func writeMonthTable(w io.Writer, months []schema.MonthBucket) error {
	peak := 0
	for _, m := range months {
		peak = max(peak, m.Commits)
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Month", "Commits", "Insertions", "Deletions", ""})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, m := range months {
		data = append(data, []string{
			m.Name,
			formatCount(m.Commits),
			formatCount(m.Insertions),
			formatCount(m.Deletions),
			bar(m.Commits, peak, barWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeLanguageShareTable(w io.Writer, languages []schema.LanguageShare, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Language", "Files", "Share", ""})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, l := range languages[:limitRows(len(languages), cfg)] {
		data = append(data, []string{
			l.Name,
			formatCount(l.Count),
			fmt.Sprintf("%d%%", l.Percentage),
			bar(l.Percentage, 100, barWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeRepoBreakdownTable(w io.Writer, repos []schema.RepositoryBreakdown, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Repository", "Commits", "Insertions", "Deletions"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	nameWidth := GetMaxTableNameWidth(cfg, 40)
	var data [][]string
	for _, r := range repos[:limitRows(len(repos), cfg)] {
		data = append(data, []string{
			contract.TruncateText(r.Name, nameWidth),
			formatCount(r.Commits),
			formatCount(r.Insertions),
			formatCount(r.Deletions),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// printer writes lines until the first error, which it keeps.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) linef(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) section(style textStyle, title string) {
	p.linef("")
	p.linef("%s", style.title(title))
}
