package stats

import (
	"sort"

	"github.com/huangsam/gitwrapped/schema"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var dayNames = [7]struct{ name, short string }{
	{"Sunday", "Sun"},
	{"Monday", "Mon"},
	{"Tuesday", "Tue"},
	{"Wednesday", "Wed"},
	{"Thursday", "Thu"},
	{"Friday", "Fri"},
	{"Saturday", "Sat"},
}

// MonthlyBreakdown buckets commits into Jan-Dec using each commit's own offset.
// Commits with an unparseable date are left out of the buckets.
func MonthlyBreakdown(commits []schema.Commit) schema.MonthlyStats {
	byMonth := make([]schema.MonthBucket, 12)
	for i, name := range monthNames {
		byMonth[i].Name = name
	}
	for _, c := range commits {
		t, ok := c.Time()
		if !ok {
			continue
		}
		b := &byMonth[int(t.Month())-1]
		b.Commits++
		b.Insertions += c.Insertions
		b.Deletions += c.Deletions
	}

	sorted := make([]schema.MonthBucket, len(byMonth))
	copy(sorted, byMonth)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Commits > sorted[j].Commits })

	out := schema.MonthlyStats{
		ByMonth:                    byMonth,
		MostProductiveMonthCommits: sorted[0].Commits,
	}
	if sorted[0].Commits > 0 {
		out.MostProductiveMonth = sorted[0].Name
	}
	return out
}

// HourlyBreakdown buckets commits into hours 0-23.
func HourlyBreakdown(commits []schema.Commit) schema.HourlyStats {
	byHour := make([]schema.HourBucket, 24)
	for i := range byHour {
		byHour[i].Hour = i
	}
	for _, c := range commits {
		t, ok := c.Time()
		if !ok {
			continue
		}
		byHour[t.Hour()].Commits++
	}

	peak := byHour[0]
	for _, h := range byHour[1:] {
		if h.Commits > peak.Commits {
			peak = h
		}
	}
	return schema.HourlyStats{
		ByHour:          byHour,
		PeakHour:        peak.Hour,
		PeakHourCommits: peak.Commits,
	}
}

// DailyBreakdown buckets commits into Sunday-Saturday plus the weekend split.
func DailyBreakdown(commits []schema.Commit) schema.DailyStats {
	byDay := make([]schema.DayBucket, 7)
	for i, d := range dayNames {
		byDay[i].Name = d.name
		byDay[i].Short = d.short
	}
	for _, c := range commits {
		t, ok := c.Time()
		if !ok {
			continue
		}
		byDay[int(t.Weekday())].Commits++
	}

	most := byDay[0]
	for _, d := range byDay[1:] {
		if d.Commits > most.Commits {
			most = d
		}
	}

	weekend := byDay[0].Commits + byDay[6].Commits
	weekday := 0
	for _, d := range byDay[1:6] {
		weekday += d.Commits
	}

	return schema.DailyStats{
		ByDay:                byDay,
		MostActiveDay:        most.Name,
		MostActiveDayCommits: most.Commits,
		WeekendCommits:       weekend,
		WeekdayCommits:       weekday,
		WeekendPercentage:    roundPercent(weekend, weekend+weekday),
	}
}
