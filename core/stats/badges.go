package stats

import (
	"fmt"
	"slices"

	"github.com/huangsam/gitwrapped/schema"
)

// Snapshot is the set of aggregated values badge and insight rules read.
type Snapshot struct {
	TotalCommits    int
	TotalInsertions int
	Languages       schema.LanguageBreakdown
	TimePatterns    schema.TimePatterns
	Streaks         schema.StreakStats
	Repositories    []schema.RepositoryBreakdown
}

// BadgeRule yields at most one badge from a snapshot.
type BadgeRule struct {
	Family string
	Eval   func(Snapshot) (schema.Badge, bool)
}

// badgeTier is one level of a tiered family. Tiers are listed best first.
type badgeTier struct {
	min   int
	badge func(value int) schema.Badge
}

// tieredRule emits only the best tier whose minimum the metric reaches.
func tieredRule(family string, metric func(Snapshot) int, tiers ...badgeTier) BadgeRule {
	return BadgeRule{
		Family: family,
		Eval: func(s Snapshot) (schema.Badge, bool) {
			v := metric(s)
			for _, tier := range tiers {
				if v >= tier.min {
					return tier.badge(v), true
				}
			}
			return schema.Badge{}, false
		},
	}
}

func flagRule(badge schema.Badge, flag func(Snapshot) bool) BadgeRule {
	return BadgeRule{
		Family: badge.ID,
		Eval: func(s Snapshot) (schema.Badge, bool) {
			return badge, flag(s)
		},
	}
}

// dominanceRule fires when the top language is one of langs with at least half the share.
func dominanceRule(badge schema.Badge, langs ...string) BadgeRule {
	return flagRule(badge, func(s Snapshot) bool {
		return slices.Contains(langs, s.Languages.TopLanguage) && s.Languages.TopLanguagePercentage >= 50
	})
}

func fixed(id, name, icon, description string) func(int) schema.Badge {
	return func(int) schema.Badge {
		return schema.Badge{ID: id, Name: name, Icon: icon, Description: description}
	}
}

// DefaultBadgeRules is the ordered badge rule list.
var DefaultBadgeRules = []BadgeRule{
	tieredRule("streak", func(s Snapshot) int { return s.Streaks.LongestStreak },
		badgeTier{30, func(n int) schema.Badge {
			return schema.Badge{ID: "streak-master", Name: "Streak Master", Icon: "🔥", Description: fmt.Sprintf("%d day streak!", n)}
		}},
		badgeTier{14, func(n int) schema.Badge {
			return schema.Badge{ID: "streak-builder", Name: "Streak Builder", Icon: "⚡", Description: fmt.Sprintf("%d day streak", n)}
		}},
	),
	flagRule(schema.Badge{ID: "night-owl", Name: "Night Owl", Icon: "🌙", Description: "Codes best after dark"},
		func(s Snapshot) bool { return s.TimePatterns.IsNightOwl }),
	flagRule(schema.Badge{ID: "early-bird", Name: "Early Bird", Icon: "🌅", Description: "Catches the morning bugs"},
		func(s Snapshot) bool { return s.TimePatterns.IsEarlyBird }),
	flagRule(schema.Badge{ID: "weekend-warrior", Name: "Weekend Warrior", Icon: "⚔️", Description: "Codes on weekends too"},
		func(s Snapshot) bool { return s.TimePatterns.IsWeekendWarrior }),
	tieredRule("commits", func(s Snapshot) int { return s.TotalCommits },
		badgeTier{500, fixed("code-machine", "Code Machine", "🤖", "500+ commits this year!")},
		badgeTier{200, fixed("commit-hero", "Commit Hero", "🦸", "200+ commits")},
	),
	tieredRule("lines", func(s Snapshot) int { return s.TotalInsertions },
		badgeTier{50000, fixed("line-slayer", "Line Slayer", "⚔️", "50K+ lines written!")},
		badgeTier{10000, fixed("prolific-coder", "Prolific Coder", "📝", "10K+ lines written")},
	),
	tieredRule("polyglot", func(s Snapshot) int { return s.Languages.TotalLanguages },
		badgeTier{5, func(n int) schema.Badge {
			return schema.Badge{ID: "polyglot", Name: "Polyglot", Icon: "🌍", Description: fmt.Sprintf("%d languages used", n)}
		}},
	),
	dominanceRule(schema.Badge{ID: "dotnet-wizard", Name: ".NET Wizard", Icon: "🧙", Description: "C# master"}, "C#"),
	dominanceRule(schema.Badge{ID: "java-expert", Name: "Java Expert", Icon: "☕", Description: "Java aficionado"}, "Java"),
	dominanceRule(schema.Badge{ID: "js-ninja", Name: "JS Ninja", Icon: "🥷", Description: "JavaScript master"}, "JavaScript", "TypeScript"),
	dominanceRule(schema.Badge{ID: "pythonista", Name: "Pythonista", Icon: "🐍", Description: "Python expert"}, "Python"),
	tieredRule("multi-repo", func(s Snapshot) int { return len(s.Repositories) },
		badgeTier{5, func(n int) schema.Badge {
			return schema.Badge{ID: "multi-repo", Name: "Multi-Repo Master", Icon: "📚", Description: fmt.Sprintf("Contributed to %d repos", n)}
		}},
	),
}

// EvaluateBadges runs every rule in order against the same snapshot.
func EvaluateBadges(s Snapshot, rules []BadgeRule) []schema.Badge {
	badges := []schema.Badge{}
	for _, rule := range rules {
		if b, ok := rule.Eval(s); ok {
			badges = append(badges, b)
		}
	}
	return badges
}
