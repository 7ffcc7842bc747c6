package services

import (
	"time"

	"github.com/terraincognita07/tally/internal/models"
)

const dayKeyFormat = "2006-01-02"

// DateAtLocation normalizes value to local midnight in location.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayRange returns the half-open [midnight, next midnight) interval for value.
func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

func DayKey(value time.Time) string {
	return value.Format(dayKeyFormat)
}

func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// ResolveDueDates returns the ordered calendar days in [habit.StartDate, asOf)
// on which the habit's repeat rule matches, normalized to local midnight. The
// asOf day itself is excluded: the in-progress day is handled by callers, never
// counted against history. An unknown repeat type matches no days.
func ResolveDueDates(habit models.Habit, asOf time.Time, location *time.Location) []time.Time {
	start := DateAtLocation(habit.StartDate, location)
	end := DateAtLocation(asOf, location)

	dueDates := make([]time.Time, 0)
	if !start.Before(end) {
		return dueDates
	}

	switch habit.RepeatType {
	case models.RepeatDaily:
		wanted := make(map[string]struct{}, len(habit.DailyRepeat))
		for _, weekday := range habit.DailyRepeat {
			wanted[weekday] = struct{}{}
		}
		for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
			if _, due := wanted[day.Weekday().String()]; due {
				dueDates = append(dueDates, day)
			}
		}
	case models.RepeatMonthly:
		wanted := make(map[int]struct{}, len(habit.MonthlyRepeat))
		for _, dayOfMonth := range habit.MonthlyRepeat {
			wanted[dayOfMonth] = struct{}{}
		}
		for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
			if _, due := wanted[day.Day()]; due {
				dueDates = append(dueDates, day)
			}
		}
	case models.RepeatInterval:
		if habit.IntervalRepeat <= 0 {
			return dueDates
		}
		for day := start; day.Before(end); day = day.AddDate(0, 0, habit.IntervalRepeat) {
			dueDates = append(dueDates, day)
		}
	}

	return dueDates
}
