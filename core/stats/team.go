package stats

import (
	"sort"
	"strings"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
)

// Team list limits.
const (
	TopRepositoriesLimit = 10
	TopLanguagesLimit    = 10
	CollaborationsLimit  = 10
)

// TeamStats aggregates the whole scan. Leaderboard rows keep the scan's author
// order; ranking them differently is up to the caller.
func (e *Engine) TeamStats(scan *schema.ScanData) (*schema.TeamStats, error) {
	if scan == nil {
		return nil, contract.ErrNoScanData
	}
	totalInsertions, totalDeletions := 0, 0
	insertionsByEmail := make(map[string]int)
	for _, c := range scan.Commits {
		totalInsertions += c.Insertions
		totalDeletions += c.Deletions
		insertionsByEmail[strings.ToLower(c.Email)] += c.Insertions
	}

	leaderboard := make([]schema.LeaderboardEntry, len(scan.Authors))
	for i, a := range scan.Authors {
		color := e.resolver.ColorFor(a.Name, i)
		if id, ok := e.resolver.Resolve(a.Email); ok && id.Color != "" {
			color = id.Color
		}
		leaderboard[i] = schema.LeaderboardEntry{
			Rank:         i + 1,
			Name:         a.Name,
			Email:        a.Email,
			Commits:      a.CommitCount,
			Insertions:   insertionsByEmail[strings.ToLower(a.Email)],
			Repositories: len(a.Repositories),
			Color:        color,
		}
	}

	repoStats := make([]schema.TeamRepository, len(scan.Repositories))
	for i, r := range scan.Repositories {
		repoStats[i] = schema.TeamRepository{Name: r.Name, Commits: r.CommitCount, Authors: len(r.Authors)}
	}
	sort.SliceStable(repoStats, func(i, j int) bool { return repoStats[i].Commits > repoStats[j].Commits })

	var mostActive *schema.TeamRepository
	if len(repoStats) > 0 {
		top := repoStats[0]
		mostActive = &top
	}

	languages := make([]schema.LanguageTally, len(scan.Languages))
	copy(languages, scan.Languages)
	sort.SliceStable(languages, func(i, j int) bool { return languages[i].Lines > languages[j].Lines })
	topLanguage := UnknownLanguage
	if len(languages) > 0 {
		topLanguage = languages[0].Name
	}

	return &schema.TeamStats{
		Summary: schema.TeamSummary{
			TotalCommits:      len(scan.Commits),
			TotalInsertions:   totalInsertions,
			TotalDeletions:    totalDeletions,
			TotalAuthors:      len(scan.Authors),
			TotalRepositories: len(scan.Repositories),
			DateRange:         scan.DateRange,
		},
		Leaderboard:     leaderboard,
		TopRepositories: repoStats[:min(len(repoStats), TopRepositoriesLimit)],
		MostActiveRepo:  mostActive,
		MonthlyActivity: MonthlyBreakdown(scan.Commits).ByMonth,
		LanguageUnit:    schema.LinesUnit,
		Languages:       languages[:min(len(languages), TopLanguagesLimit)],
		TopLanguage:     topLanguage,
		Collaborations:  Collaborations(scan.Repositories),
	}, nil
}

// Collaborations counts, for every pair of authors, the repositories both
// contributed to. Pairs are keyed by their sorted names. Results are sorted by
// shared repositories (ties keep discovery order) and capped.
func Collaborations(repos []schema.Repository) []schema.Collaboration {
	collabs := []schema.Collaboration{}
	index := make(map[string]int)
	for _, repo := range repos {
		for i := 0; i < len(repo.Authors); i++ {
			for j := i + 1; j < len(repo.Authors); j++ {
				a, b := repo.Authors[i].Name, repo.Authors[j].Name
				if a == b {
					continue
				}
				names := []string{a, b}
				sort.Strings(names)
				pair := strings.Join(names, " & ")
				if k, ok := index[pair]; ok {
					collabs[k].SharedRepos++
					continue
				}
				index[pair] = len(collabs)
				collabs = append(collabs, schema.Collaboration{Pair: pair, Authors: []string{a, b}, SharedRepos: 1})
			}
		}
	}
	sort.SliceStable(collabs, func(i, j int) bool { return collabs[i].SharedRepos > collabs[j].SharedRepos })
	return collabs[:min(len(collabs), CollaborationsLimit)]
}
