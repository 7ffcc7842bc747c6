package services

import "github.com/terraincognita07/tally/internal/models"

// LongestStreak returns the longest run of consecutive completed entries.
// Logs must already be sorted by ascending date; callers sort once, the scan
// does not re-validate the order.
func LongestStreak(logs []models.HabitLog) int {
	longest := 0
	run := 0
	for _, entry := range logs {
		if !entry.IsComplete {
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

// CurrentStreak counts completed entries backward from the most recent log,
// stopping at the first incomplete one. Same ascending-order precondition as
// LongestStreak.
func CurrentStreak(logs []models.HabitLog) int {
	streak := 0
	for index := len(logs) - 1; index >= 0; index-- {
		if !logs[index].IsComplete {
			break
		}
		streak++
	}
	return streak
}
