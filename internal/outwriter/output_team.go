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

// WriteTeamStats outputs the team dashboard. CSV and Parquet output hold the leaderboard.
func WriteTeamStats(team *schema.TeamStats, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, team)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLeaderboardCSV(w, team.Leaderboard)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetRows(cfg.OutputFile, parquet.ConvertLeaderboard(team.Leaderboard)); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTeamText(w, team, cfg, duration)
		}, "Wrote team")
	}
	return nil
}

func writeLeaderboardCSV(w io.Writer, entries []schema.LeaderboardEntry) error {
	header := []string{"rank", "name", "email", "commits", "insertions", "repositories", "color"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range entries {
			rec := []string{
				strconv.Itoa(e.Rank),
				e.Name,
				e.Email,
				strconv.Itoa(e.Commits),
				strconv.Itoa(e.Insertions),
				strconv.Itoa(e.Repositories),
				e.Color,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeTeamText(w io.Writer, team *schema.TeamStats, cfg *contract.Config, duration time.Duration) error {
	style := newTextStyle(cfg)
	p := &printer{w: w}
	sum := team.Summary

	p.linef("%s %s", style.title("🎁 Team Wrapped:"), sum.DateRange)
	p.linef("Commits: %s, Lines: %s / %s, Authors: %d, Repositories: %d",
		style.accent(formatCount(sum.TotalCommits)),
		style.good("+"+formatCount(sum.TotalInsertions)),
		"-"+formatCount(sum.TotalDeletions),
		sum.TotalAuthors,
		sum.TotalRepositories)

	if len(team.Leaderboard) > 0 {
		p.section(style, "🏅 Leaderboard")
		if p.err == nil {
			p.err = writeLeaderboardTable(w, team.Leaderboard, cfg)
		}
		p.linef("Showing top %d of %d authors", limitRows(len(team.Leaderboard), cfg), len(team.Leaderboard))
	}

	if len(team.TopRepositories) > 0 {
		p.section(style, "📦 Top Repositories")
		if p.err == nil {
			p.err = writeTeamRepoTable(w, team.TopRepositories, cfg)
		}
		if team.MostActiveRepo != nil {
			p.linef("Most active: %s (%d commits)", team.MostActiveRepo.Name, team.MostActiveRepo.Commits)
		}
	}

	if len(team.MonthlyActivity) > 0 {
		p.section(style, "📅 Monthly Activity")
		if p.err == nil {
			p.err = writeMonthTable(w, team.MonthlyActivity)
		}
	}

	if len(team.Languages) > 0 {
		p.section(style, "💻 Languages")
		parts := make([]string, 0, len(team.Languages))
		for _, l := range team.Languages[:limitRows(len(team.Languages), cfg)] {
			parts = append(parts, fmt.Sprintf("%s %s", l.Name, formatCount(l.Lines)))
		}
		p.linef("%s (%s)", strings.Join(parts, " · "), team.LanguageUnit)
		p.linef("Top language: %s", style.accent(team.TopLanguage))
	}

	if len(team.Collaborations) > 0 {
		p.section(style, "🤝 Collaborations")
		for _, c := range team.Collaborations[:limitRows(len(team.Collaborations), cfg)] {
			p.linef("%s: %d shared repositories", c.Pair, c.SharedRepos)
		}
	}

	p.linef("")
	p.linef("Stats computed in %v. Cache backend: %s", duration, cfg.CacheBackend)
	return p.err
}

func writeLeaderboardTable(w io.Writer, entries []schema.LeaderboardEntry, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Author", "Email", "Commits", "Insertions", "Repos", "Color"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	nameWidth := GetMaxTableNameWidth(cfg, 70)
	var data [][]string
	for _, e := range entries[:limitRows(len(entries), cfg)] {
		data = append(data, []string{
			strconv.Itoa(e.Rank),
			contract.TruncateText(e.Name, nameWidth),
			contract.TruncateText(e.Email, nameWidth),
			formatCount(e.Commits),
			formatCount(e.Insertions),
			strconv.Itoa(e.Repositories),
			swatch(e.Color, cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeTeamRepoTable(w io.Writer, repos []schema.TeamRepository, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Repository", "Commits", "Authors"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	nameWidth := GetMaxTableNameWidth(cfg, 30)
	var data [][]string
	for _, r := range repos[:limitRows(len(repos), cfg)] {
		data = append(data, []string{
			contract.TruncateText(r.Name, nameWidth),
			formatCount(r.Commits),
			strconv.Itoa(r.Authors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
