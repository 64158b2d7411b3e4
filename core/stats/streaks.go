package stats

import (
	"math"
	"sort"
	"time"

	"github.com/huangsam/gitwrapped/schema"
)

const dayLayout = "2006-01-02"

// Streaks computes runs of consecutive active calendar days. Dates use each
// commit's own offset. The current streak is the final run when the last
// active day is today or yesterday relative to now, else 0.
func Streaks(commits []schema.Commit, now time.Time) schema.StreakStats {
	seen := make(map[string]bool)
	days := []string{}
	for _, c := range commits {
		t, ok := c.Time()
		if !ok {
			continue
		}
		key := t.Format(dayLayout)
		if !seen[key] {
			seen[key] = true
			days = append(days, key)
		}
	}
	if len(days) == 0 {
		return schema.StreakStats{ActiveDays: days}
	}
	sort.Strings(days)

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if dayDiff(days[i-1], days[i]) == 1 {
			run++
			longest = max(longest, run)
		} else {
			run = 1
		}
	}

	current := 0
	if dayDiff(days[len(days)-1], now.Format(dayLayout)) <= 1 {
		current = run
	}

	return schema.StreakStats{
		CurrentStreak:   current,
		LongestStreak:   longest,
		TotalActiveDays: len(days),
		ActiveDays:      days,
	}
}

// dayDiff returns the number of whole days from a to b, both YYYY-MM-DD.
func dayDiff(a, b string) int {
	ta, errA := time.Parse(dayLayout, a)
	tb, errB := time.Parse(dayLayout, b)
	if errA != nil || errB != nil {
		return math.MaxInt
	}
	return int(math.Round(tb.Sub(ta).Hours() / 24))
}
