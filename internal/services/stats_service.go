package services

import (
	"errors"
	"sort"
	"time"

	"github.com/terraincognita07/tally/internal/models"
)

var ErrHabitNotFound = errors.New("habit not found")

// StatsReport is composed fresh on every request and never persisted.
type StatsReport struct {
	HabitID              uint          `json:"habit_id"`
	HabitName            string        `json:"habit_name"`
	Unit                 string        `json:"unit"`
	UnitValue            float64       `json:"unit_value"`
	LongestStreak        int           `json:"longest_streak"`
	CurrentStreak        int           `json:"current_streak"`
	Total                float64       `json:"total"`
	DailyAverage         float64       `json:"daily_average"`
	WeeklyAverage        float64       `json:"weekly_average"`
	MonthlyAverage       float64       `json:"monthly_average"`
	SkippedCount         int           `json:"skipped_count"`
	FailedCount          int           `json:"failed_count"`
	SuccessfulDays       int           `json:"successful_days"`
	DailyCompletionRates []*float64    `json:"daily_completion_rates"`
	WeeklyAverageSeries  []ChartBucket `json:"weekly_average_series"`
	MonthlyAverageSeries []ChartBucket `json:"monthly_average_series"`
}

type StatsHabitReader interface {
	ListByUser(userID uint) ([]models.Habit, error)
	FindByUserAndID(userID uint, habitID uint) (models.Habit, bool, error)
}

type StatsLogReader interface {
	ListByHabit(habitID uint) ([]models.HabitLog, error)
}

type StatsService struct {
	habits   StatsHabitReader
	logs     StatsLogReader
	location *time.Location
}

func NewStatsService(habits StatsHabitReader, logs StatsLogReader, location *time.Location) *StatsService {
	return &StatsService{
		habits:   habits,
		logs:     logs,
		location: location,
	}
}

// FetchSingleHabitStats composes the report for one habit. A habit the user
// does not own looks identical to one that does not exist.
func (service *StatsService) FetchSingleHabitStats(userID uint, habitID uint, now time.Time) (StatsReport, error) {
	habit, found, err := service.habits.FindByUserAndID(userID, habitID)
	if err != nil {
		return StatsReport{}, err
	}
	if !found {
		return StatsReport{}, ErrHabitNotFound
	}

	logs, err := service.logs.ListByHabit(habit.ID)
	if err != nil {
		return StatsReport{}, err
	}
	return BuildHabitStats(habit, logs, now, service.location), nil
}

// FetchHabitStats composes one report per habit the user owns.
func (service *StatsService) FetchHabitStats(userID uint, now time.Time) ([]StatsReport, error) {
	habits, err := service.habits.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	reports := make([]StatsReport, 0, len(habits))
	for _, habit := range habits {
		logs, err := service.logs.ListByHabit(habit.ID)
		if err != nil {
			return nil, err
		}
		reports = append(reports, BuildHabitStats(habit, logs, now, service.location))
	}
	return reports, nil
}

// BuildHabitStats derives the full report from a habit's schedule and raw
// logs. Pure computation; the single sort here satisfies the ascending-order
// precondition of the streak scans.
func BuildHabitStats(habit models.Habit, logs []models.HabitLog, now time.Time, location *time.Location) StatsReport {
	sorted := make([]models.HabitLog, 0, len(logs))
	sorted = append(sorted, logs...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})

	dueDates := ResolveDueDates(habit, now, location)
	classification := ClassifyDueDates(dueDates, sorted, now, location)

	return StatsReport{
		HabitID:              habit.ID,
		HabitName:            habit.Name,
		Unit:                 habit.Unit,
		UnitValue:            habit.UnitValue,
		LongestStreak:        LongestStreak(sorted),
		CurrentStreak:        CurrentStreak(sorted),
		Total:                TotalUnits(sorted),
		DailyAverage:         DailyAverage(sorted, location),
		WeeklyAverage:        WeeklyAverage(sorted, location),
		MonthlyAverage:       MonthlyAverage(sorted, location),
		SkippedCount:         len(classification.Skipped),
		FailedCount:          len(classification.Failed),
		SuccessfulDays:       len(classification.Completed),
		DailyCompletionRates: DailyCompletionRates(sorted, habit.UnitValue, now, location),
		WeeklyAverageSeries:  WeeklyAverageSeries(sorted, now, location),
		MonthlyAverageSeries: MonthlyAverageSeries(sorted, now, location),
	}
}
