package services

import (
	"time"

	"github.com/terraincognita07/tally/internal/models"
)

// ChartBucket is one point of a trailing averages series.
type ChartBucket struct {
	Label   string  `json:"label"`
	Average float64 `json:"average"`
}

const trailingBucketCount = 4

// TotalUnits sums recorded progress across every log, due or ad hoc.
func TotalUnits(logs []models.HabitLog) float64 {
	var total float64
	for _, entry := range logs {
		total += entry.UnitsCompleted
	}
	return total
}

// trackedDayTotals groups logs by calendar day and sums their units. Days
// where nothing was recorded (units == 0) are not tracked days.
func trackedDayTotals(logs []models.HabitLog, location *time.Location) map[string]float64 {
	totals := make(map[string]float64)
	for _, entry := range logs {
		if entry.UnitsCompleted <= 0 {
			continue
		}
		totals[DayKey(DateAtLocation(entry.Date, location))] += entry.UnitsCompleted
	}
	return totals
}

// DailyAverage averages per-day unit sums across tracked days. No tracked
// days yields 0, never a division error.
func DailyAverage(logs []models.HabitLog, location *time.Location) float64 {
	totals := trackedDayTotals(logs, location)
	if len(totals) == 0 {
		return 0
	}

	var sum float64
	for _, dayTotal := range totals {
		sum += dayTotal
	}
	return sum / float64(len(totals))
}

// WeekStart returns the Sunday that opens the week containing day.
func WeekStart(day time.Time) time.Time {
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// MonthStart returns the first day of the month containing day.
func MonthStart(day time.Time, location *time.Location) time.Time {
	normalized := DateAtLocation(day, location)
	return time.Date(normalized.Year(), normalized.Month(), 1, 0, 0, 0, 0, normalized.Location())
}

// WeeklyAverage averages per-week unit sums across weeks that have at least
// one tracked day. Weeks run Sunday through Saturday.
func WeeklyAverage(logs []models.HabitLog, location *time.Location) float64 {
	weekTotals := make(map[string]float64)
	for _, entry := range logs {
		if entry.UnitsCompleted <= 0 {
			continue
		}
		week := WeekStart(DateAtLocation(entry.Date, location))
		weekTotals[DayKey(week)] += entry.UnitsCompleted
	}
	if len(weekTotals) == 0 {
		return 0
	}

	var sum float64
	for _, weekTotal := range weekTotals {
		sum += weekTotal
	}
	return sum / float64(len(weekTotals))
}

// MonthlyAverage averages per-month unit sums across months that have at
// least one tracked day.
func MonthlyAverage(logs []models.HabitLog, location *time.Location) float64 {
	monthTotals := make(map[string]float64)
	for _, entry := range logs {
		if entry.UnitsCompleted <= 0 {
			continue
		}
		day := DateAtLocation(entry.Date, location)
		monthTotals[day.Format("2006-01")] += entry.UnitsCompleted
	}
	if len(monthTotals) == 0 {
		return 0
	}

	var sum float64
	for _, monthTotal := range monthTotals {
		sum += monthTotal
	}
	return sum / float64(len(monthTotals))
}

// bucketDailyAverage averages per-day sums for tracked days inside
// [rangeStart, rangeEnd).
func bucketDailyAverage(logs []models.HabitLog, rangeStart time.Time, rangeEnd time.Time, location *time.Location) float64 {
	totals := make(map[string]float64)
	for _, entry := range logs {
		if entry.UnitsCompleted <= 0 {
			continue
		}
		day := DateAtLocation(entry.Date, location)
		if day.Before(rangeStart) || !day.Before(rangeEnd) {
			continue
		}
		totals[DayKey(day)] += entry.UnitsCompleted
	}
	if len(totals) == 0 {
		return 0
	}

	var sum float64
	for _, dayTotal := range totals {
		sum += dayTotal
	}
	return sum / float64(len(totals))
}

// WeeklyAverageSeries emits the trailing four weeks ending with the current
// one. Empty weeks stay in the series as zero points; the chart draws the
// gap. Labels are the MM-DD of each week's Sunday.
func WeeklyAverageSeries(logs []models.HabitLog, now time.Time, location *time.Location) []ChartBucket {
	currentWeek := WeekStart(DateAtLocation(now, location))

	series := make([]ChartBucket, 0, trailingBucketCount)
	for offset := trailingBucketCount - 1; offset >= 0; offset-- {
		weekStart := currentWeek.AddDate(0, 0, -7*offset)
		weekEnd := weekStart.AddDate(0, 0, 7)
		series = append(series, ChartBucket{
			Label:   weekStart.Format("01-02"),
			Average: bucketDailyAverage(logs, weekStart, weekEnd, location),
		})
	}
	return series
}

// MonthlyAverageSeries emits up to the trailing four months ending with the
// current one. Months without data are omitted entirely, unlike the weekly
// series. Labels are MM-YYYY.
func MonthlyAverageSeries(logs []models.HabitLog, now time.Time, location *time.Location) []ChartBucket {
	currentMonth := MonthStart(now, location)

	series := make([]ChartBucket, 0, trailingBucketCount)
	for offset := trailingBucketCount - 1; offset >= 0; offset-- {
		monthStart := currentMonth.AddDate(0, -offset, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)
		average := bucketDailyAverage(logs, monthStart, monthEnd, location)
		if average == 0 {
			continue
		}
		series = append(series, ChartBucket{
			Label:   monthStart.Format("01-2006"),
			Average: average,
		})
	}
	return series
}

// DailyCompletionRates reports one entry per day of the current month. Days
// with at least one log get sum/(unitValue*count)*100; days with no log stay
// nil so the chart can distinguish "no data" from 0%. A non-positive
// unitValue also yields nil rather than a division error.
func DailyCompletionRates(logs []models.HabitLog, unitValue float64, now time.Time, location *time.Location) []*float64 {
	monthStart := MonthStart(now, location)
	daysInMonth := monthStart.AddDate(0, 1, -1).Day()

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, entry := range logs {
		day := DateAtLocation(entry.Date, location)
		if day.Year() != monthStart.Year() || day.Month() != monthStart.Month() {
			continue
		}
		sums[day.Day()] += entry.UnitsCompleted
		counts[day.Day()]++
	}

	rates := make([]*float64, daysInMonth)
	if unitValue <= 0 {
		return rates
	}
	for dayOfMonth := 1; dayOfMonth <= daysInMonth; dayOfMonth++ {
		count := counts[dayOfMonth]
		if count == 0 {
			continue
		}
		rate := sums[dayOfMonth] / (unitValue * float64(count)) * 100
		rates[dayOfMonth-1] = &rate
	}
	return rates
}
