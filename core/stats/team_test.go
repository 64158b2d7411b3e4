package stats

import (
	"fmt"
	"testing"

	"github.com/huangsam/gitwrapped/core/authors"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamScan() *schema.ScanData {
	return &schema.ScanData{
		Commits: []schema.Commit{
			commit("jane@x.com", "2024-01-10T10:00:00Z", 10, 1, "api"),
			commit("JANE@x.com", "2024-02-10T10:00:00Z", 5, 0, "web"),
			commit("john@x.com", "2024-02-11T10:00:00Z", 7, 3, "api"),
			commit("amy@x.com", "2024-02-12T10:00:00Z", 0, 2, "cli"),
		},
		Authors: []schema.Author{
			{Name: "John", Email: "john@x.com", CommitCount: 1, Repositories: []string{"api"}},
			{Name: "Jane", Email: "jane@x.com", CommitCount: 2, Repositories: []string{"api", "web"}},
			{Name: "Amy", Email: "amy@x.com", CommitCount: 1, Repositories: []string{"cli"}},
		},
		Repositories: []schema.Repository{
			{Name: "cli", CommitCount: 1, Authors: []schema.Author{{Name: "Amy"}}},
			{Name: "api", CommitCount: 2, Authors: []schema.Author{{Name: "Jane"}, {Name: "John"}}},
			{Name: "web", CommitCount: 1, Authors: []schema.Author{{Name: "John"}, {Name: "Jane"}, {Name: "Amy"}}},
		},
		Languages: schema.LanguageTallies{{Name: "Python", Lines: 5}, {Name: "Go", Lines: 17}, {Name: "SQL", Lines: 5}},
		DateRange: schema.YearRange(2024),
	}
}

func TestTeamStats(t *testing.T) {
	e := newTestEngine(t, `{"Amy": {"emails": ["amy@x.com"], "color": "#ABCDEF"}}`)
	team, err := e.TeamStats(teamScan())
	require.NoError(t, err)

	assert.Equal(t, schema.TeamSummary{
		TotalCommits:      4,
		TotalInsertions:   22,
		TotalDeletions:    6,
		TotalAuthors:      3,
		TotalRepositories: 3,
		DateRange:         schema.YearRange(2024),
	}, team.Summary)

	require.Len(t, team.Leaderboard, 3)
	assert.Equal(t, schema.LeaderboardEntry{
		Rank: 1, Name: "John", Email: "john@x.com", Commits: 1, Insertions: 7, Repositories: 1, Color: authors.Palette[0],
	}, team.Leaderboard[0], "rank follows input order")
	assert.Equal(t, 15, team.Leaderboard[1].Insertions, "emails match case-insensitively")
	assert.Equal(t, authors.Palette[1], team.Leaderboard[1].Color)
	assert.Equal(t, "#ABCDEF", team.Leaderboard[2].Color)

	require.NotNil(t, team.MostActiveRepo)
	assert.Equal(t, schema.TeamRepository{Name: "api", Commits: 2, Authors: 2}, *team.MostActiveRepo)
	assert.Equal(t, []string{"api", "cli", "web"}, []string{team.TopRepositories[0].Name, team.TopRepositories[1].Name, team.TopRepositories[2].Name})

	require.Len(t, team.MonthlyActivity, 12)
	assert.Equal(t, 1, team.MonthlyActivity[0].Commits)
	assert.Equal(t, 3, team.MonthlyActivity[1].Commits)

	assert.Equal(t, schema.LinesUnit, team.LanguageUnit)
	assert.Equal(t, []schema.LanguageTally{{Name: "Go", Lines: 17}, {Name: "Python", Lines: 5}, {Name: "SQL", Lines: 5}}, team.Languages)
	assert.Equal(t, "Go", team.TopLanguage)

	require.Len(t, team.Collaborations, 3)
	assert.Equal(t, schema.Collaboration{Pair: "Jane & John", Authors: []string{"Jane", "John"}, SharedRepos: 2}, team.Collaborations[0])
	assert.Equal(t, "Amy & John", team.Collaborations[1].Pair)
	assert.Equal(t, "Amy & Jane", team.Collaborations[2].Pair)
}

func TestTeamStats_Empty(t *testing.T) {
	e := newTestEngine(t, "")
	team, err := e.TeamStats(&schema.ScanData{})
	require.NoError(t, err)
	assert.Nil(t, team.MostActiveRepo)
	assert.Equal(t, UnknownLanguage, team.TopLanguage)
	assert.Empty(t, team.Leaderboard)
	assert.Empty(t, team.Collaborations)
	assert.Len(t, team.MonthlyActivity, 12)
}

func TestTeamStats_NilScan(t *testing.T) {
	e := newTestEngine(t, "")
	team, err := e.TeamStats(nil)
	assert.ErrorIs(t, err, contract.ErrNoScanData)
	assert.Nil(t, team)
}

func TestTeamStats_DoesNotMutateScan(t *testing.T) {
	e := newTestEngine(t, "")
	scan := teamScan()
	before := fmt.Sprintf("%+v", *scan)
	_, err := e.TeamStats(scan)
	require.NoError(t, err)
	assert.Equal(t, before, fmt.Sprintf("%+v", *scan))
}

func TestTeamStats_Limits(t *testing.T) {
	e := newTestEngine(t, "")
	scan := &schema.ScanData{}
	for i := range 15 {
		scan.Repositories = append(scan.Repositories, schema.Repository{Name: fmt.Sprintf("repo-%02d", i), CommitCount: i})
		scan.Languages.Add(fmt.Sprintf("Lang%02d", i), i)
	}
	team, err := e.TeamStats(scan)
	require.NoError(t, err)
	assert.Len(t, team.TopRepositories, TopRepositoriesLimit)
	assert.Equal(t, "repo-14", team.TopRepositories[0].Name)
	assert.Len(t, team.Languages, TopLanguagesLimit)
	assert.Equal(t, "Lang14", team.TopLanguage)
}

func TestCollaborations(t *testing.T) {
	t.Run("pairs sorted by shared repos and capped", func(t *testing.T) {
		var names []schema.Author
		for i := range 6 {
			names = append(names, schema.Author{Name: fmt.Sprintf("dev%d", i)})
		}
		repos := []schema.Repository{{Name: "mono", Authors: names}}
		got := Collaborations(repos)
		assert.Len(t, got, CollaborationsLimit)
		assert.Equal(t, "dev0 & dev1", got[0].Pair)
	})

	t.Run("pair key is order independent", func(t *testing.T) {
		got := Collaborations([]schema.Repository{
			{Authors: []schema.Author{{Name: "Zed"}, {Name: "Ann"}}},
			{Authors: []schema.Author{{Name: "Ann"}, {Name: "Zed"}}},
		})
		require.Len(t, got, 1)
		assert.Equal(t, "Ann & Zed", got[0].Pair)
		assert.Equal(t, []string{"Zed", "Ann"}, got[0].Authors)
		assert.Equal(t, 2, got[0].SharedRepos)
	})

	t.Run("aliases of one mapped author still pair", func(t *testing.T) {
		got := Collaborations([]schema.Repository{{Authors: []schema.Author{
			{Name: "Ann Lee", Email: "ann@work"},
			{Name: "annlee", Email: "ann@home"},
		}}})
		require.Len(t, got, 1)
		assert.Equal(t, "Ann Lee & annlee", got[0].Pair)
	})

	t.Run("same name twice is not a pair", func(t *testing.T) {
		got := Collaborations([]schema.Repository{{Authors: []schema.Author{{Name: "Ann", Email: "a@1"}, {Name: "Ann", Email: "a@2"}}}})
		assert.Empty(t, got)
	})
}
