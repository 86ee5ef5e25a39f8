package service

import (
	"sort"

	"gitfolio/internal/adapters/github"
)

// dayLayout is the calendar date format; dates compare lexicographically
const dayLayout = "2006-01-02"

// currentStreak counts consecutive non-zero days backward from today.
// Days after today are skipped as a clock-skew guard, and today itself is
// skipped when it has zero contributions, since it may simply not have been
// recorded yet. The walk stops at the first earlier zero-contribution day
func currentStreak(days []github.ContributionDay, today string) int {
	sorted := make([]github.ContributionDay, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })

	streak := 0
	for _, d := range sorted {
		if d.Date > today {
			continue
		}
		if d.Date == today && d.Count == 0 {
			continue
		}
		if d.Count == 0 {
			break
		}
		streak++
	}
	return streak
}

// longestStreak scans the calendar in chronological order and tracks the
// maximum run of consecutive non-zero days, independent of today
func longestStreak(days []github.ContributionDay) int {
	sorted := make([]github.ContributionDay, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	longest, run := 0, 0
	for _, d := range sorted {
		if d.Count == 0 {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return longest
}
