package schema

// AuthorIdentity is the resolved identity shown for a developer.
type AuthorIdentity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Color string `json:"color"`
}

// DeveloperSummary holds the headline totals for one developer.
type DeveloperSummary struct {
	TotalCommits            int `json:"totalCommits"`
	TotalInsertions         int `json:"totalInsertions"`
	TotalDeletions          int `json:"totalDeletions"`
	TotalLinesChanged       int `json:"totalLinesChanged"`
	RepositoriesContributed int `json:"repositoriesContributed"`
	LanguagesUsed           int `json:"languagesUsed"`
}

// MonthBucket is one calendar month of activity.
type MonthBucket struct {
	Name       string `json:"name"`
	Commits    int    `json:"commits"`
	Insertions int    `json:"insertions"`
	Deletions  int    `json:"deletions"`
}

// MonthlyStats is the Jan-Dec breakdown plus the busiest month.
type MonthlyStats struct {
	ByMonth                    []MonthBucket `json:"byMonth"`
	MostProductiveMonth        string        `json:"mostProductiveMonth,omitempty"`
	MostProductiveMonthCommits int           `json:"mostProductiveMonthCommits"`
}

// HourBucket is one hour of the day.
type HourBucket struct {
	Hour    int `json:"hour"`
	Commits int `json:"commits"`
}

// HourlyStats is the 0-23 breakdown plus the peak hour.
type HourlyStats struct {
	ByHour          []HourBucket `json:"byHour"`
	PeakHour        int          `json:"peakHour"`
	PeakHourCommits int          `json:"peakHourCommits"`
}

// DayBucket is one day of the week.
type DayBucket struct {
	Name    string `json:"name"`
	Short   string `json:"short"`
	Commits int    `json:"commits"`
}

// DailyStats is the Sunday-Saturday breakdown plus the weekend split.
type DailyStats struct {
	ByDay                []DayBucket `json:"byDay"`
	MostActiveDay        string      `json:"mostActiveDay"`
	MostActiveDayCommits int         `json:"mostActiveDayCommits"`
	WeekendCommits       int         `json:"weekendCommits"`
	WeekdayCommits       int         `json:"weekdayCommits"`
	WeekendPercentage    int         `json:"weekendPercentage"`
}

// LanguageShare is one language in a file-touch breakdown.
type LanguageShare struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// LanguageBreakdown lists languages sorted by how many files were touched.
type LanguageBreakdown struct {
	Unit                  LanguageUnit    `json:"unit"`
	Languages             []LanguageShare `json:"languages"`
	TopLanguage           string          `json:"topLanguage"`
	TopLanguagePercentage int             `json:"topLanguagePercentage"`
	TotalLanguages        int             `json:"totalLanguages"`
}

// RepositoryBreakdown is one repository's share of a developer's work.
type RepositoryBreakdown struct {
	Name       string `json:"name"`
	Commits    int    `json:"commits"`
	Insertions int    `json:"insertions"`
	Deletions  int    `json:"deletions"`
}

// StreakStats describes runs of consecutive active days.
type StreakStats struct {
	CurrentStreak   int      `json:"currentStreak"`
	LongestStreak   int      `json:"longestStreak"`
	TotalActiveDays int      `json:"totalActiveDays"`
	ActiveDays      []string `json:"activeDays"`
}

// BiggestCommit is the single largest change by insertions plus deletions.
type BiggestCommit struct {
	Hash         string `json:"hash"`
	Message      string `json:"message"`
	Date         string `json:"date"`
	Insertions   int    `json:"insertions"`
	Deletions    int    `json:"deletions"`
	TotalChanges int    `json:"totalChanges"`
	Repository   string `json:"repository"`
}

// TimeSlot is one partition of the day.
type TimeSlot struct {
	Name       string `json:"name"`
	Commits    int    `json:"commits"`
	Percentage int    `json:"percentage"`
}

// TimePatterns classifies when a developer tends to commit.
type TimePatterns struct {
	TimeOfDay        []TimeSlot `json:"timeOfDay"`
	PreferredTime    string     `json:"preferredTime"`
	CoderType        string     `json:"coderType"`
	IsNightOwl       bool       `json:"isNightOwl"`
	IsEarlyBird      bool       `json:"isEarlyBird"`
	IsWeekendWarrior bool       `json:"isWeekendWarrior"`
}

// Badge is an unlocked achievement.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// DeveloperStats is the full year-in-review for one developer.
type DeveloperStats struct {
	Author        AuthorIdentity        `json:"author"`
	Summary       DeveloperSummary      `json:"summary"`
	MonthlyStats  MonthlyStats          `json:"monthlyStats"`
	HourlyStats   HourlyStats           `json:"hourlyStats"`
	DailyStats    DailyStats            `json:"dailyStats"`
	Languages     LanguageBreakdown     `json:"languages"`
	Repositories  []RepositoryBreakdown `json:"repositories"`
	StreakStats   StreakStats           `json:"streakStats"`
	BiggestCommit *BiggestCommit        `json:"biggestCommit"`
	TimePatterns  TimePatterns          `json:"timePatterns"`
	Badges        []Badge               `json:"badges"`
	Insights      []string              `json:"insights"`
	DateRange     DateRange             `json:"dateRange"`
}
