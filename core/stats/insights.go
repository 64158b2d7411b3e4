package stats

import "fmt"

// InsightRule yields at most one sentence from a snapshot.
type InsightRule struct {
	Name string
	Eval func(Snapshot) (string, bool)
}

// DefaultInsightRules is the ordered insight rule list.
var DefaultInsightRules = []InsightRule{
	{Name: "language", Eval: languageInsight},
	{Name: "time-of-day", Eval: timeOfDayInsight},
	{Name: "commits", Eval: commitsInsight},
	{Name: "streak", Eval: streakInsight},
	{Name: "repositories", Eval: repositoriesInsight},
}

func languageInsight(s Snapshot) (string, bool) {
	lang := s.Languages.TopLanguage
	pct := s.Languages.TopLanguagePercentage
	if s.Languages.TotalLanguages == 0 || lang == "" || lang == UnknownLanguage {
		return "", false
	}
	switch lang {
	case "C#", "XAML":
		return fmt.Sprintf("You're a .NET MAUI wizard! %d%% of your commits were in %s", pct, lang), true
	case "Java":
		return fmt.Sprintf("☕ Java flows through your veins - %d%% of your code", pct), true
	case "JavaScript", "TypeScript":
		return fmt.Sprintf("Full-stack energy! %d%% JavaScript/TypeScript commits", pct), true
	default:
		return fmt.Sprintf("%s is your superpower - %d%% of your commits", lang, pct), true
	}
}

func timeOfDayInsight(s Snapshot) (string, bool) {
	switch s.TimePatterns.CoderType {
	case NightOwl:
		return "🌙 Night owl alert! You code best when the stars are out", true
	case MorningPerson:
		return "🌅 Early bird catches the bugs! Peak coding before noon", true
	case AfternoonCoder:
		return "☀️ Post-lunch productivity king! Afternoon is your zone", true
	}
	return "", false
}

func commitsInsight(s Snapshot) (string, bool) {
	n := s.TotalCommits
	switch {
	case n >= 500:
		return fmt.Sprintf("🚀 %d commits?! You're absolutely unstoppable!", n), true
	case n >= 200:
		return fmt.Sprintf("💪 %d commits - you've been crushing it!", n), true
	case n >= 50:
		return fmt.Sprintf("👏 %d commits - solid contribution this year!", n), true
	}
	return "", false
}

func streakInsight(s Snapshot) (string, bool) {
	n := s.Streaks.LongestStreak
	switch {
	case n >= 30:
		return fmt.Sprintf("🔥 %d-day streak! That's dedication!", n), true
	case n >= 14:
		return fmt.Sprintf("⚡ %d days in a row - nice consistency!", n), true
	}
	return "", false
}

func repositoriesInsight(s Snapshot) (string, bool) {
	if n := len(s.Repositories); n >= 3 {
		return fmt.Sprintf("📚 You touched %d different repositories - true team player!", n), true
	}
	return "", false
}

// GenerateInsights runs every rule in order and keeps the sentences produced.
func GenerateInsights(s Snapshot, rules []InsightRule) []string {
	insights := []string{}
	for _, rule := range rules {
		if text, ok := rule.Eval(s); ok {
			insights = append(insights, text)
		}
	}
	return insights
}

