package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Output:       schema.TextOut,
		Width:        120,
		ResultLimit:  10,
		Workers:      4,
		MaxDepth:     3,
		CacheBackend: schema.SQLiteBackend,
	}
}

func readCSV(t *testing.T, raw string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	return records
}

func sampleDeveloperStats() *schema.DeveloperStats {
	months := make([]schema.MonthBucket, 12)
	for i, name := range []string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"} {
		months[i] = schema.MonthBucket{Name: name}
	}
	months[2] = schema.MonthBucket{Name: "March", Commits: 3, Insertions: 120, Deletions: 10}
	hours := make([]schema.HourBucket, 24)
	for i := range hours {
		hours[i] = schema.HourBucket{Hour: i}
	}
	hours[22].Commits = 3
	return &schema.DeveloperStats{
		Author: schema.AuthorIdentity{Name: "Alice", Email: "alice@example.com", Color: "#3b82f6"},
		Summary: schema.DeveloperSummary{
			TotalCommits: 3, TotalInsertions: 120, TotalDeletions: 10, TotalLinesChanged: 130,
			RepositoriesContributed: 1, LanguagesUsed: 1,
		},
		MonthlyStats: schema.MonthlyStats{ByMonth: months, MostProductiveMonth: "March", MostProductiveMonthCommits: 3},
		HourlyStats:  schema.HourlyStats{ByHour: hours, PeakHour: 22, PeakHourCommits: 3},
		DailyStats: schema.DailyStats{
			ByDay:         []schema.DayBucket{{Name: "Sunday", Short: "Sun", Commits: 1}, {Name: "Monday", Short: "Mon", Commits: 2}},
			MostActiveDay: "Monday", MostActiveDayCommits: 2, WeekendCommits: 1, WeekdayCommits: 2, WeekendPercentage: 33,
		},
		Languages: schema.LanguageBreakdown{
			Unit:      schema.FilesUnit,
			Languages: []schema.LanguageShare{{Name: "Go", Count: 4, Percentage: 100}},
		},
		Repositories:  []schema.RepositoryBreakdown{{Name: "api", Commits: 3, Insertions: 120, Deletions: 10}},
		StreakStats:   schema.StreakStats{CurrentStreak: 0, LongestStreak: 2, TotalActiveDays: 2},
		BiggestCommit: &schema.BiggestCommit{Hash: "abcdef1234", Message: "Add handlers", Repository: "api", Insertions: 100, Deletions: 5, TotalChanges: 105},
		TimePatterns:  schema.TimePatterns{PreferredTime: "Night", CoderType: "Night Owl", IsNightOwl: true},
		Badges:        []schema.Badge{{ID: "night-owl", Name: "Night Owl", Icon: "🦉", Description: "Most commits after dark"}},
		Insights:      []string{"You committed most in March"},
		DateRange:     schema.YearRange(2024),
	}
}

func sampleTeamStats() *schema.TeamStats {
	repo := schema.TeamRepository{Name: "api", Commits: 3, Authors: 2}
	return &schema.TeamStats{
		Summary: schema.TeamSummary{TotalCommits: 4, TotalInsertions: 150, TotalDeletions: 12, TotalAuthors: 2, TotalRepositories: 2, DateRange: schema.YearRange(2024)},
		Leaderboard: []schema.LeaderboardEntry{
			{Rank: 1, Name: "Alice", Email: "alice@example.com", Commits: 3, Insertions: 120, Repositories: 1, Color: "#3b82f6"},
			{Rank: 2, Name: "Bob", Email: "bob@example.com", Commits: 1, Insertions: 30, Repositories: 1, Color: "#ef4444"},
		},
		TopRepositories: []schema.TeamRepository{repo, {Name: "web", Commits: 1, Authors: 1}},
		MostActiveRepo:  &repo,
		MonthlyActivity: []schema.MonthBucket{{Name: "January", Commits: 4}},
		LanguageUnit:    schema.LinesUnit,
		Languages:       []schema.LanguageTally{{Name: "Go", Lines: 120}, {Name: "TypeScript", Lines: 30}},
		TopLanguage:     "Go",
		Collaborations:  []schema.Collaboration{{Pair: "Alice & Bob", Authors: []string{"Alice", "Bob"}, SharedRepos: 1}},
	}
}

func TestParseHexColor(t *testing.T) {
	r, g, b, ok := parseHexColor("#3b82f6")
	require.True(t, ok)
	assert.Equal(t, []int{0x3b, 0x82, 0xf6}, []int{r, g, b})

	_, _, _, ok = parseHexColor("blue")
	assert.False(t, ok)
	_, _, _, ok = parseHexColor("#zzzzzz")
	assert.False(t, ok)
}

func TestSwatch_NoColors(t *testing.T) {
	assert.Equal(t, "#3b82f6", swatch("#3b82f6", false))
	assert.Equal(t, "oops", swatch("oops", true), "invalid colors fall back to the raw value")
}

func TestBarAndSparkline(t *testing.T) {
	assert.Equal(t, strings.Repeat("█", 15), bar(5, 10, 30))
	assert.Equal(t, "█", bar(1, 1000, 30), "non-zero values always get a block")
	assert.Empty(t, bar(0, 10, 30))
	assert.Empty(t, bar(5, 0, 30))

	assert.Equal(t, " ▂▄█", sparkline([]int{0, 1, 2, 4}))
	assert.Equal(t, "   ", sparkline([]int{0, 0, 0}))
}

func TestFormatCount(t *testing.T) {
	tests := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-45210:   "-45,210",
		10000000: "10,000,000",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatCount(in), "formatCount(%d)", in)
	}
}

func TestLimitRows(t *testing.T) {
	cfg := &contract.Config{ResultLimit: 2}
	assert.Equal(t, 2, limitRows(5, cfg))
	assert.Equal(t, 1, limitRows(1, cfg))
	cfg.ResultLimit = 0
	assert.Equal(t, 5, limitRows(5, cfg))
}

func TestGetMaxTableNameWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		reserved int
		expected int
	}{
		{name: "wide terminal is capped", width: 200, reserved: 50, expected: maxColumnWidth},
		{name: "narrow terminal gets minimum", width: 80, reserved: 70, expected: minColumnWidth},
		{name: "in between", width: 100, reserved: 40, expected: 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetMaxTableNameWidth(&contract.Config{Width: tt.width}, tt.reserved))
		})
	}
}

func TestWriteScanSummaryText(t *testing.T) {
	summary := schema.ScanSummary{
		ScanID: "run-1", Targets: []string{"/src"}, Repositories: 2, Commits: 1500, Authors: 3, Languages: 4,
		DateRange: schema.YearRange(2024), FromCache: true,
	}
	var buf bytes.Buffer
	require.NoError(t, writeScanSummaryText(&buf, summary, testConfig(), time.Second))

	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "from cache")
	assert.Contains(t, out, "2024-01-01 → 2024-12-31")
	assert.Contains(t, out, "Commits: 1,500")
	assert.Contains(t, out, "with 4 workers. Cache backend: sqlite")
}

func TestWriteScanSummaryCSV(t *testing.T) {
	summary := schema.ScanSummary{
		ScanID: "run-1", ScannedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Targets: []string{"/a", "/b"}, Repositories: 2, Commits: 10, DateRange: schema.AllTimeRange(),
	}
	var buf bytes.Buffer
	require.NoError(t, writeScanSummaryCSV(&buf, summary))

	records := readCSV(t, buf.String())
	require.Len(t, records, 2)
	assert.Equal(t, "scan_id", records[0][0])
	assert.Equal(t, []string{"run-1", "2024-06-01T12:00:00Z", "/a|/b", "2", "10", "0", "0", "all time", "false"}, records[1])
}

func TestWriteScanSummary_ParquetUnsupported(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.ParquetOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "scan.parquet")
	err := WriteScanSummary(schema.ScanSummary{}, cfg, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestWriteDiscoveredTable(t *testing.T) {
	repos := []schema.DiscoveredRepo{
		{Name: "api", Path: "/src/api", DefaultBranch: "main", HeadHash: "0123456789abcdef"},
		{Name: "web", Path: "/src/web", DefaultBranch: "master"},
	}
	var buf bytes.Buffer
	require.NoError(t, writeDiscoveredTable(&buf, repos, testConfig(), time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "api")
	assert.Contains(t, out, "/src/web")
	assert.Contains(t, out, "0123456")
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "Found 2 repositories")
}

func TestWriteDeveloperText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeDeveloperText(&buf, sampleDeveloperStats(), testConfig(), time.Second))

	out := buf.String()
	for _, want := range []string{
		"Alice <alice@example.com>",
		"#3b82f6",
		"Monthly Activity",
		"Most productive month: March (3 commits)",
		"Peak hour: 22:00 (3 commits)",
		"Sun 1 · Mon 2",
		"Night Owl",
		"Languages",
		"Repositories",
		"Longest: 2 days",
		"Biggest commit: abcdef1 in api (+100 / -5) Add handlers",
		"🦉 Night Owl: Most commits after dark",
		"• You committed most in March",
		"Stats computed in",
	} {
		assert.Contains(t, out, want)
	}
}

func TestWriteDeveloperText_NoCommits(t *testing.T) {
	stats := &schema.DeveloperStats{
		Author:    schema.AuthorIdentity{Name: "Ghost", Email: "ghost@example.com"},
		DateRange: schema.YearRange(2024),
	}
	var buf bytes.Buffer
	require.NoError(t, writeDeveloperText(&buf, stats, testConfig(), 0))
	assert.Contains(t, buf.String(), "No commits found for ghost@example.com")
	assert.NotContains(t, buf.String(), "Monthly Activity")
}

func TestWriteDeveloperCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeDeveloperCSV(&buf, sampleDeveloperStats()))

	records := readCSV(t, buf.String())
	assert.Equal(t, []string{"section", "name", "value"}, records[0])
	assert.Contains(t, records, []string{"summary", "total_commits", "3"})
	assert.Contains(t, records, []string{"month", "March", "3"})
	assert.Contains(t, records, []string{"hour", "22", "3"})
	assert.Contains(t, records, []string{"language", "Go", "4"})
	assert.Contains(t, records, []string{"streak", "longest", "2"})
	assert.Contains(t, records, []string{"badge", "night-owl", "Night Owl"})
}

func TestWriteDeveloperStats_Parquet(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.ParquetOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "commits.parquet")
	commits := []schema.Commit{{Hash: "abc", Email: "alice@example.com", Insertions: 3, FilesChanged: []string{"a.go"}}}

	require.NoError(t, WriteDeveloperStats(sampleDeveloperStats(), commits, cfg, 0))
	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteDeveloperStats_JSONFile(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "wrapped.json")

	require.NoError(t, WriteDeveloperStats(sampleDeveloperStats(), nil, cfg, 0))
	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	var decoded schema.DeveloperStats
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "alice@example.com", decoded.Author.Email)
	assert.Equal(t, 3, decoded.Summary.TotalCommits)
}

func TestWriteTeamText(t *testing.T) {
	cfg := testConfig()
	cfg.ResultLimit = 1
	var buf bytes.Buffer
	require.NoError(t, writeTeamText(&buf, sampleTeamStats(), cfg, time.Second))

	out := buf.String()
	assert.Contains(t, out, "Team Wrapped")
	assert.Contains(t, out, "Alice")
	assert.NotContains(t, out, "bob@example.com", "leaderboard is cut to the result limit")
	assert.Contains(t, out, "Showing top 1 of 2 authors")
	assert.Contains(t, out, "Most active: api (3 commits)")
	assert.Contains(t, out, "Go 120 (lines)")
	assert.Contains(t, out, "Top language: Go")
	assert.Contains(t, out, "Alice & Bob: 1 shared repositories")
}

func TestWriteLeaderboardCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeLeaderboardCSV(&buf, sampleTeamStats().Leaderboard))

	records := readCSV(t, buf.String())
	require.Len(t, records, 3, "CSV keeps the full leaderboard")
	assert.Equal(t, []string{"1", "Alice", "alice@example.com", "3", "120", "1", "#3b82f6"}, records[1])
}

func TestWriteTeamStats_Parquet(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.ParquetOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "team.parquet")

	require.NoError(t, WriteTeamStats(sampleTeamStats(), cfg, 0))
	_, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
}

func TestWriteAuthors(t *testing.T) {
	listings := []schema.AuthorListing{
		{Author: schema.Author{Name: "alice", Email: "alice@example.com", CommitCount: 3, Repositories: []string{"api"}}, DisplayName: "Alice", Color: "#3b82f6", IsMapped: true},
		{Author: schema.Author{Name: "Bob", Email: "bob@example.com", CommitCount: 1, Repositories: []string{"api", "web"}}, DisplayName: "Bob", Color: "#ef4444"},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeAuthorsTable(&buf, listings, testConfig()))
		out := buf.String()
		assert.Contains(t, out, "Alice")
		assert.Contains(t, out, "✓")
		assert.Contains(t, out, "2 authors, 1 mapped")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeAuthorsCSV(&buf, listings))
		records := readCSV(t, buf.String())
		require.Len(t, records, 3)
		assert.Equal(t, []string{"Bob", "bob@example.com", "Bob", "1", "api|web", "#ef4444", "false"}, records[2])
	})
}

func TestWriteRepositories(t *testing.T) {
	repos := []schema.Repository{
		{
			Name: "api", Path: "/src/api", DefaultBranch: "main", CommitCount: 3,
			Authors:   []schema.Author{{Name: "Alice", Email: "alice@example.com", CommitCount: 3}},
			Languages: schema.LanguageTallies{{Name: "Markdown", Lines: 5}, {Name: "Go", Lines: 100}},
		},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeRepositoriesTable(&buf, repos, testConfig()))
		assert.Contains(t, buf.String(), "Go")
		assert.Contains(t, buf.String(), "1 repositories, 3 commits")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeRepositoriesCSV(&buf, repos))
		records := readCSV(t, buf.String())
		assert.Equal(t, []string{"api", "/src/api", "main", "3", "1", "Go"}, records[1])
	})

	t.Run("detail", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeRepositoryText(&buf, repos[0], testConfig()))
		out := buf.String()
		assert.Contains(t, out, "Repository: api")
		assert.Contains(t, out, "Default branch: main")
		assert.Contains(t, out, "alice@example.com")
		assert.Contains(t, out, "95%")
	})
}

func TestTopLanguage(t *testing.T) {
	assert.Empty(t, topLanguage(nil))
	assert.Equal(t, "Go", topLanguage(schema.LanguageTallies{{Name: "CSS", Lines: 2}, {Name: "Go", Lines: 9}}))
}

func TestWriteMappingTable(t *testing.T) {
	rows := []schema.MappingEntry{{Name: "Alice", Emails: []string{"alice@example.com", "alice@work.com"}, Color: "#3b82f6"}}
	var buf bytes.Buffer
	require.NoError(t, writeMappingTable(&buf, rows, "/tmp/authors.json", testConfig()))

	out := buf.String()
	assert.Contains(t, out, "alice@example.com, alice@work.com")
	assert.Contains(t, out, "1 mapped authors in /tmp/authors.json")
}

func TestWriteExport(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.CSVOut // export ignores the output format
	cfg.OutputFile = filepath.Join(t.TempDir(), "export.json")
	scan := &schema.ScanData{
		ExportVersion: schema.ExportVersion,
		SourceApp:     schema.SourceApp,
		Repositories:  []schema.Repository{},
		Commits:       []schema.Commit{{Hash: "abc", Email: "alice@example.com"}},
		TotalCommits:  1,
		Authors:       []schema.Author{{Name: "Alice", Email: "alice@example.com", CommitCount: 1}},
		DateRange:     schema.AllTimeRange(),
	}

	require.NoError(t, WriteExport(scan, cfg))
	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	var decoded schema.ScanData
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, schema.SourceApp, decoded.SourceApp)
	assert.Len(t, decoded.Commits, 1)
	assert.True(t, decoded.DateRange.IsAllTime())
}
