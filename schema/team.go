package schema

// TeamSummary holds the headline totals for the whole dataset.
type TeamSummary struct {
	TotalCommits      int       `json:"totalCommits"`
	TotalInsertions   int       `json:"totalInsertions"`
	TotalDeletions    int       `json:"totalDeletions"`
	TotalAuthors      int       `json:"totalAuthors"`
	TotalRepositories int       `json:"totalRepositories"`
	DateRange         DateRange `json:"dateRange"`
}

// LeaderboardEntry is one author row. Rank follows the input author order.
type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Commits      int    `json:"commits"`
	Insertions   int    `json:"insertions"`
	Repositories int    `json:"repositories"`
	Color        string `json:"color"`
}

// TeamRepository is one repository row in the team view.
type TeamRepository struct {
	Name    string `json:"name"`
	Commits int    `json:"commits"`
	Authors int    `json:"authors"`
}

// Collaboration counts repositories shared by a pair of authors.
type Collaboration struct {
	Pair        string   `json:"pair"`
	Authors     []string `json:"authors"`
	SharedRepos int      `json:"sharedRepos"`
}

// TeamStats is the team-wide dashboard.
type TeamStats struct {
	Summary         TeamSummary        `json:"summary"`
	Leaderboard     []LeaderboardEntry `json:"leaderboard"`
	TopRepositories []TeamRepository   `json:"topRepositories"`
	MostActiveRepo  *TeamRepository    `json:"mostActiveRepo"`
	MonthlyActivity []MonthBucket      `json:"monthlyActivity"`
	LanguageUnit    LanguageUnit       `json:"languageUnit"`
	Languages       []LanguageTally    `json:"languages"`
	TopLanguage     string             `json:"topLanguage"`
	Collaborations  []Collaboration    `json:"collaborations"`
}

// AuthorListing is an author as shown by the authors listing.
type AuthorListing struct {
	Author
	DisplayName string `json:"displayName"`
	Color       string `json:"color"`
	IsMapped    bool   `json:"isMapped"`
}

// MappingEntry is one canonical author of the mapping table as displayed.
type MappingEntry struct {
	Name   string   `json:"name"`
	Emails []string `json:"emails"`
	Color  string   `json:"color"`
}
