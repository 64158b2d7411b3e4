package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/huangsam/gitwrapped/core/authors"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.January, 7, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestEngine(t *testing.T, mappingJSON string) *Engine {
	t.Helper()
	m := authors.DefaultMapping()
	if mappingJSON != "" {
		var err error
		m, err = authors.ParseMapping([]byte(mappingJSON))
		require.NoError(t, err)
	}
	return NewEngine(authors.NewResolver(m), WithClock(fixedClock))
}

func commit(email, date string, ins, del int, repo string, files ...string) schema.Commit {
	return schema.Commit{
		Hash:         fmt.Sprintf("%040d", len(date)+ins*7+del),
		Author:       "Author " + email,
		Email:        email,
		Date:         date,
		Message:      "change",
		Insertions:   ins,
		Deletions:    del,
		FilesChanged: files,
		Repository:   repo,
	}
}

func TestDeveloperStats_Scenario(t *testing.T) {
	e := newTestEngine(t, "")
	scan := &schema.ScanData{
		Commits: []schema.Commit{
			commit("dev@x.com", "2024-01-05T10:00:00-05:00", 10, 2, "api", "a.py"),
			commit("dev@x.com", "2024-01-06T09:00:00-05:00", 5, 0, "api", "b.py"),
		},
		Authors:   []schema.Author{{Name: "Dev", Email: "dev@x.com", CommitCount: 2}},
		DateRange: schema.YearRange(2024),
	}

	stats, err := e.DeveloperStats("dev@x.com", scan)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Summary.TotalCommits)
	assert.Equal(t, 15, stats.Summary.TotalInsertions)
	assert.Equal(t, 2, stats.Summary.TotalDeletions)
	assert.Equal(t, 17, stats.Summary.TotalLinesChanged)
	assert.Equal(t, 1, stats.Summary.RepositoriesContributed)
	assert.Equal(t, 1, stats.Summary.LanguagesUsed)
	assert.Equal(t, 2, stats.StreakStats.LongestStreak)
	assert.Equal(t, "Python", stats.Languages.TopLanguage)
	assert.Equal(t, 100, stats.Languages.TopLanguagePercentage)
	assert.Equal(t, schema.FilesUnit, stats.Languages.Unit)
	assert.Equal(t, "Jan", stats.MonthlyStats.MostProductiveMonth)
	assert.Equal(t, 1, stats.HourlyStats.ByHour[10].Commits, "hours use the commit's own offset")
	assert.Equal(t, 1, stats.HourlyStats.ByHour[9].Commits)
	assert.Equal(t, 9, stats.HourlyStats.PeakHour, "first hour wins a tie")
	assert.Equal(t, 2, stats.StreakStats.CurrentStreak)
	assert.Equal(t, "Friday", stats.DailyStats.MostActiveDay)
	assert.Equal(t, 50, stats.DailyStats.WeekendPercentage)
	assert.Equal(t, "Author dev@x.com", stats.Author.Name)
	assert.Equal(t, authors.Palette[0], stats.Author.Color)
	assert.Equal(t, schema.YearRange(2024), stats.DateRange)
	require.NotNil(t, stats.BiggestCommit)
	assert.Equal(t, 12, stats.BiggestCommit.TotalChanges)
}

func TestDeveloperStats_NoData(t *testing.T) {
	e := newTestEngine(t, "")
	scan := &schema.ScanData{Commits: []schema.Commit{commit("a@x.com", "2024-01-05T10:00:00Z", 1, 0, "r")}}

	stats, err := e.DeveloperStats("missing@x.com", scan)
	assert.Nil(t, stats)
	assert.True(t, errors.Is(err, contract.ErrNoData))

	stats, err = e.DeveloperStats("a@x.com", nil)
	assert.Nil(t, stats)
	assert.True(t, errors.Is(err, contract.ErrNoScanData))

	stats, err = e.DeveloperStats("a@x.com", &schema.ScanData{})
	assert.Nil(t, stats)
	assert.True(t, errors.Is(err, contract.ErrNoData))
}

func TestDeveloperStats_TransitiveResolution(t *testing.T) {
	e := newTestEngine(t, `{"Jane": {"emails": ["a@x.com", "B@x.com"], "color": "#111111"}}`)
	scan := &schema.ScanData{Commits: []schema.Commit{
		commit("a@x.com", "2024-02-01T10:00:00Z", 1, 0, "r1"),
		commit("b@x.com", "2024-02-02T10:00:00Z", 2, 0, "r2"),
		commit("c@x.com", "2024-02-03T10:00:00Z", 3, 0, "r1"),
		commit("A@X.COM", "2024-02-04T10:00:00Z", 4, 0, "r1"),
	}}

	viaA, err := e.DeveloperStats("a@x.com", scan)
	require.NoError(t, err)
	viaB, err := e.DeveloperStats("b@x.com", scan)
	require.NoError(t, err)

	assert.Equal(t, 3, viaA.Summary.TotalCommits)
	assert.Equal(t, viaA.Summary, viaB.Summary)
	assert.Equal(t, "Jane", viaA.Author.Name)
	assert.Equal(t, "#111111", viaA.Author.Color)

	other, err := e.DeveloperStats("c@x.com", scan)
	require.NoError(t, err)
	assert.Equal(t, 1, other.Summary.TotalCommits)
}

func TestDeveloperStats_ColorUsesAuthorPosition(t *testing.T) {
	e := newTestEngine(t, "")
	scan := &schema.ScanData{
		Commits: []schema.Commit{commit("b@x.com", "2024-02-01T10:00:00Z", 1, 0, "r")},
		Authors: []schema.Author{{Email: "a@x.com"}, {Email: "b@x.com"}},
	}
	stats, err := e.DeveloperStats("b@x.com", scan)
	require.NoError(t, err)
	assert.Equal(t, authors.Palette[1], stats.Author.Color)
}

func TestDeveloperStats_Idempotent(t *testing.T) {
	e := newTestEngine(t, `{"Jane": {"emails": ["a@x.com"], "color": "#111111"}}`)
	scan := &schema.ScanData{Commits: []schema.Commit{
		commit("a@x.com", "2024-02-01T23:00:00+02:00", 100, 1, "r1", "x.go", "y.ts", "z.md"),
		commit("a@x.com", "2024-02-02T07:00:00+02:00", 3, 40, "r2", "x.go"),
		commit("a@x.com", "not a date", 9, 9, "r3", "a.rb"),
	}}
	original := make([]schema.Commit, len(scan.Commits))
	copy(original, scan.Commits)

	first, err := e.DeveloperStats("a@x.com", scan)
	require.NoError(t, err)
	second, err := e.DeveloperStats("a@x.com", scan)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, original, scan.Commits, "input commits are never modified")
}

func TestDeveloperStats_BucketSumsMatchTotals(t *testing.T) {
	e := newTestEngine(t, "")
	var commits []schema.Commit
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.FixedZone("", 3*3600))
	for i := range 97 {
		ts := base.Add(time.Duration(i*37) * time.Hour)
		commits = append(commits, commit("a@x.com", ts.Format(time.RFC3339), i, i%3, "r", "f.go"))
	}
	stats, err := e.DeveloperStats("a@x.com", &schema.ScanData{Commits: commits})
	require.NoError(t, err)

	sumMonths, sumHours, sumDays := 0, 0, 0
	for _, m := range stats.MonthlyStats.ByMonth {
		sumMonths += m.Commits
	}
	for _, h := range stats.HourlyStats.ByHour {
		sumHours += h.Commits
	}
	for _, d := range stats.DailyStats.ByDay {
		sumDays += d.Commits
	}
	assert.Equal(t, stats.Summary.TotalCommits, sumMonths)
	assert.Equal(t, stats.Summary.TotalCommits, sumHours)
	assert.Equal(t, stats.Summary.TotalCommits, sumDays)
	assert.GreaterOrEqual(t, stats.StreakStats.LongestStreak, 1)
	assert.LessOrEqual(t, stats.StreakStats.LongestStreak, stats.StreakStats.TotalActiveDays)
}

func TestDeveloperStats_UnparseableDateCountsTowardTotalsOnly(t *testing.T) {
	e := newTestEngine(t, "")
	scan := &schema.ScanData{Commits: []schema.Commit{
		commit("a@x.com", "2024-03-01T10:00:00Z", 1, 0, "r"),
		commit("a@x.com", "garbage", 5, 0, "r"),
	}}
	stats, err := e.DeveloperStats("a@x.com", scan)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Summary.TotalCommits)
	assert.Equal(t, 6, stats.Summary.TotalInsertions)
	assert.Equal(t, 1, stats.MonthlyStats.ByMonth[2].Commits)
	assert.Equal(t, 1, stats.StreakStats.TotalActiveDays)
}

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, 0, roundPercent(0, 0))
	assert.Equal(t, 33, roundPercent(1, 3))
	assert.Equal(t, 67, roundPercent(2, 3))
	assert.Equal(t, 50, roundPercent(1, 2))
	assert.Equal(t, 13, roundPercent(1, 8), "12.5 rounds half up")
	assert.Equal(t, 100, roundPercent(5, 5))
}
