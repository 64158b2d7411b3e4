// Package stats turns a flat commit list into developer and team statistics.
// Every function here is pure: inputs are never modified and no I/O happens.
package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/huangsam/gitwrapped/core/authors"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
)

// Engine computes statistics against one author mapping snapshot.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	resolver *authors.Resolver
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for the current streak.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine. A nil resolver behaves like an empty mapping.
func NewEngine(resolver *authors.Resolver, opts ...Option) *Engine {
	if resolver == nil {
		resolver = authors.NewResolver(authors.DefaultMapping())
	}
	e := &Engine{resolver: resolver, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolver returns the resolver the engine was built with.
func (e *Engine) Resolver() *authors.Resolver {
	return e.resolver
}

// AuthorCommits returns the commits that belong to email: the raw email matches
// ignoring case, or both emails resolve to the same canonical name.
func (e *Engine) AuthorCommits(email string, commits []schema.Commit) []schema.Commit {
	var out []schema.Commit
	for _, c := range commits {
		if e.resolver.SameAuthor(email, c.Email) {
			out = append(out, c)
		}
	}
	return out
}

// DeveloperStats computes the year in review for one developer.
// It returns contract.ErrNoData when the author has no commits.
func (e *Engine) DeveloperStats(email string, scan *schema.ScanData) (*schema.DeveloperStats, error) {
	if scan == nil {
		return nil, contract.ErrNoScanData
	}
	commits := e.AuthorCommits(email, scan.Commits)
	if len(commits) == 0 {
		return nil, fmt.Errorf("%w: %s", contract.ErrNoData, email)
	}

	author := e.identityFor(email, commits[0].Author, scan)

	totalInsertions, totalDeletions := 0, 0
	for _, c := range commits {
		totalInsertions += c.Insertions
		totalDeletions += c.Deletions
	}

	monthly := MonthlyBreakdown(commits)
	hourly := HourlyBreakdown(commits)
	daily := DailyBreakdown(commits)
	languages := LanguageBreakdown(commits)
	repositories := RepositoryBreakdown(commits)
	streaks := Streaks(commits, e.now())
	patterns := ClassifyTimePatterns(hourly, daily)

	snap := Snapshot{
		TotalCommits:    len(commits),
		TotalInsertions: totalInsertions,
		Languages:       languages,
		TimePatterns:    patterns,
		Streaks:         streaks,
		Repositories:    repositories,
	}

	return &schema.DeveloperStats{
		Author: author,
		Summary: schema.DeveloperSummary{
			TotalCommits:            len(commits),
			TotalInsertions:         totalInsertions,
			TotalDeletions:          totalDeletions,
			TotalLinesChanged:       totalInsertions + totalDeletions,
			RepositoriesContributed: len(repositories),
			LanguagesUsed:           languages.TotalLanguages,
		},
		MonthlyStats:  monthly,
		HourlyStats:   hourly,
		DailyStats:    daily,
		Languages:     languages,
		Repositories:  repositories,
		StreakStats:   streaks,
		BiggestCommit: BiggestCommit(commits),
		TimePatterns:  patterns,
		Badges:        EvaluateBadges(snap, DefaultBadgeRules),
		Insights:      GenerateInsights(snap, DefaultInsightRules),
		DateRange:     scan.DateRange,
	}, nil
}

// identityFor resolves the displayed name and color of a developer.
func (e *Engine) identityFor(email, fallbackName string, scan *schema.ScanData) schema.AuthorIdentity {
	id, ok := e.resolver.Resolve(email)
	name := fallbackName
	if ok {
		name = id.Name
	}
	color := id.Color
	if color == "" {
		index := scan.AuthorIndex(email)
		if index < 0 {
			index = 0
		}
		color = e.resolver.ColorFor(name, index)
	}
	return schema.AuthorIdentity{Name: name, Email: email, Color: color}
}

// roundPercent returns part/total as a whole percentage, rounding halves up.
// A zero total yields 0.
func roundPercent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(part)/float64(total)*100 + 0.5))
}
