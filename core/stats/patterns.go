package stats

import (
	"sort"

	"github.com/huangsam/gitwrapped/schema"
)

// Time slot labels.
const (
	MorningSlot   = "Morning (6AM-12PM)"
	AfternoonSlot = "Afternoon (12PM-6PM)"
	EveningSlot   = "Evening (6PM-12AM)"
	NightSlot     = "Night (12AM-6AM)"
)

// Coder types.
const (
	MorningPerson  = "Morning Person"
	AfternoonCoder = "Afternoon Coder"
	NightOwl       = "Night Owl"
	Balanced       = "Balanced"
)

// Fixed classification thresholds.
const (
	nightOwlShare       = 0.4
	nightToMorningRatio = 0.3
	earlyBirdShare      = 0.4
	weekendWarriorShare = 20
)

func sumHours(hours []schema.HourBucket, from, to int) int {
	total := 0
	for _, h := range hours[from:to] {
		total += h.Commits
	}
	return total
}

// ClassifyTimePatterns splits the day into four slots and derives the coder type
// and the night owl, early bird and weekend warrior flags.
func ClassifyTimePatterns(hourly schema.HourlyStats, daily schema.DailyStats) schema.TimePatterns {
	hours := hourly.ByHour
	if len(hours) != 24 {
		hours = HourlyBreakdown(nil).ByHour
	}
	morning := sumHours(hours, 6, 12)
	afternoon := sumHours(hours, 12, 18)
	evening := sumHours(hours, 18, 24)
	night := sumHours(hours, 0, 6)
	total := morning + afternoon + evening + night

	slots := []schema.TimeSlot{
		{Name: MorningSlot, Commits: morning, Percentage: roundPercent(morning, total)},
		{Name: AfternoonSlot, Commits: afternoon, Percentage: roundPercent(afternoon, total)},
		{Name: EveningSlot, Commits: evening, Percentage: roundPercent(evening, total)},
		{Name: NightSlot, Commits: night, Percentage: roundPercent(night, total)},
	}
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Commits > slots[j].Commits })

	coderType := Balanced
	switch {
	case morning > afternoon && morning > evening:
		coderType = MorningPerson
	case afternoon > morning && afternoon > evening:
		coderType = AfternoonCoder
	case evening > morning && evening > afternoon:
		coderType = NightOwl
	case night > 0 && float64(night) >= float64(morning)*nightToMorningRatio:
		coderType = NightOwl
	}

	out := schema.TimePatterns{
		TimeOfDay:     slots,
		PreferredTime: slots[0].Name,
		CoderType:     coderType,
	}
	if total > 0 {
		out.IsNightOwl = float64(evening+night)/float64(total) > nightOwlShare
		out.IsEarlyBird = float64(morning)/float64(total) > earlyBirdShare
	}
	out.IsWeekendWarrior = daily.WeekendPercentage > weekendWarriorShare
	return out
}
