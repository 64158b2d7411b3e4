package cmd

import (
	"github.com/huangsam/gitwrapped/core"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/spf13/cobra"
)

// wrappedCmd shows one developer's year in review.
var wrappedCmd = &cobra.Command{
	Use:   "wrapped <email>",
	Short: "Show the year in review for one developer.",
	Long: `Compute a developer's year in review from the last scan (or --input).

Commits are matched by email ignoring case. When the email belongs to a mapped
author, commits from every alias of that author are included.

Shows:
- Totals, monthly activity, peak hour and busiest weekday
- Languages and repositories
- Streaks and the biggest commit
- Badges and insights

Examples:
  gitwrapped wrapped me@example.com
  gitwrapped wrapped me@example.com --output json
  gitwrapped wrapped me@example.com --output parquet --output-file my-commits.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: noTargetSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteDeveloperStats(rootCtx, cfg, cacheManager, args[0]); err != nil {
			contract.LogFatal("Cannot compute developer stats", err)
		}
	},
}

// teamCmd shows the team dashboard.
var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Show the team dashboard for the last scan.",
	Long: `Summarize the last scan (or --input) for the whole team: leaderboard,
top repositories, monthly activity, languages and collaborations.

Examples:
  gitwrapped team
  gitwrapped team --limit 25
  gitwrapped team --output csv --output-file leaderboard.csv`,
	Args:    cobra.NoArgs,
	PreRunE: noTargetSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTeamStats(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot compute team stats", err)
		}
	},
}

// authorsCmd lists the authors of the last scan.
var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "List the authors of the last scan.",
	Long: `List every author identity found in the last scan (or --input) with the
display name and color from the author mapping.

Examples:
  gitwrapped authors
  gitwrapped authors --output json`,
	Args:    cobra.NoArgs,
	PreRunE: noTargetSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAuthors(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot list authors", err)
		}
	},
}

// reposCmd lists the repositories of the last scan.
var reposCmd = &cobra.Command{
	Use:   "repos [name]",
	Short: "List the repositories of the last scan, or show one.",
	Long: `List the repositories in the last scan (or --input). With a name, show
that repository's authors and languages.

Examples:
  gitwrapped repos
  gitwrapped repos api`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: noTargetSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		if err := core.ExecuteRepos(rootCtx, cfg, cacheManager, name); err != nil {
			contract.LogFatal("Cannot list repositories", err)
		}
	},
}
