package stats

import (
	"sort"

	"github.com/adibhanna/startracker/internal/models"
)

// AttentionLimit caps the number of habits returned by NeedsAttention.
const AttentionLimit = 3

// NeedsAttention returns the habits in an early slump, lowest average first,
// at most AttentionLimit of them.
//
// RecentEntries is ordered newest first, so its tail holds the oldest of the
// recent entries: with seven entries, indexes 5 and 6 are the last two and
// indexes 4 to 6 the last three. A habit qualifies when its last two entries
// both have zero stars and its last three do not.
func NeedsAttention(all []models.MonthlyStats) []models.MonthlyStats {
	var flagged []models.MonthlyStats
	for _, s := range all {
		if inEarlySlump(s.RecentEntries) {
			flagged = append(flagged, s)
		}
	}

	sort.SliceStable(flagged, func(i, j int) bool {
		return flagged[i].AverageStars < flagged[j].AverageStars
	})
	if len(flagged) > AttentionLimit {
		flagged = flagged[:AttentionLimit]
	}
	return flagged
}

func inEarlySlump(recent []models.Entry) bool {
	lastTwo := tail(recent, 2)
	lastThree := tail(recent, 3)

	twoMisses := len(lastTwo) == 2 && allMissed(lastTwo)
	threeMisses := len(lastThree) == 3 && allMissed(lastThree)

	return twoMisses && !threeMisses
}

// tail returns the last n elements, or all of them when there are fewer.
func tail(entries []models.Entry, n int) []models.Entry {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

func allMissed(entries []models.Entry) bool {
	for _, e := range entries {
		if e.Stars != 0 {
			return false
		}
	}
	return true
}
