package stats

import (
	"sort"

	"github.com/huangsam/gitwrapped/schema"
)

// UnknownLanguage is reported when no file had a recognized extension.
const UnknownLanguage = "Unknown"

// LanguageBreakdown counts file touches per recognized language. Each file
// in a commit adds one, regardless of how many lines changed.
func LanguageBreakdown(commits []schema.Commit) schema.LanguageBreakdown {
	var shares []schema.LanguageShare
	index := make(map[string]int)
	total := 0
	for _, c := range commits {
		for _, file := range c.FilesChanged {
			lang, ok := schema.LanguageForPath(file)
			if !ok {
				continue
			}
			i, seen := index[lang]
			if !seen {
				i = len(shares)
				index[lang] = i
				shares = append(shares, schema.LanguageShare{Name: lang})
			}
			shares[i].Count++
			total++
		}
	}

	for i := range shares {
		shares[i].Percentage = roundPercent(shares[i].Count, total)
	}
	sort.SliceStable(shares, func(i, j int) bool { return shares[i].Count > shares[j].Count })

	out := schema.LanguageBreakdown{
		Unit:           schema.FilesUnit,
		Languages:      shares,
		TopLanguage:    UnknownLanguage,
		TotalLanguages: len(shares),
	}
	if out.Languages == nil {
		out.Languages = []schema.LanguageShare{}
	}
	if len(shares) > 0 {
		out.TopLanguage = shares[0].Name
		out.TopLanguagePercentage = shares[0].Percentage
	}
	return out
}

// RepositoryBreakdown groups commits by repository name, most commits first.
func RepositoryBreakdown(commits []schema.Commit) []schema.RepositoryBreakdown {
	repos := []schema.RepositoryBreakdown{}
	index := make(map[string]int)
	for _, c := range commits {
		i, seen := index[c.Repository]
		if !seen {
			i = len(repos)
			index[c.Repository] = i
			repos = append(repos, schema.RepositoryBreakdown{Name: c.Repository})
		}
		repos[i].Commits++
		repos[i].Insertions += c.Insertions
		repos[i].Deletions += c.Deletions
	}
	sort.SliceStable(repos, func(i, j int) bool { return repos[i].Commits > repos[j].Commits })
	return repos
}

// BiggestCommit returns the commit with the most insertions plus deletions.
// Ties go to the earliest commit in input order. Commits with no changes never qualify.
func BiggestCommit(commits []schema.Commit) *schema.BiggestCommit {
	var best *schema.Commit
	bestTotal := 0
	for i := range commits {
		total := commits[i].Insertions + commits[i].Deletions
		if total > bestTotal {
			best = &commits[i]
			bestTotal = total
		}
	}
	if best == nil {
		return nil
	}
	return &schema.BiggestCommit{
		Hash:         best.ShortHash(),
		Message:      best.Message,
		Date:         best.Date,
		Insertions:   best.Insertions,
		Deletions:    best.Deletions,
		TotalChanges: bestTotal,
		Repository:   best.Repository,
	}
}
