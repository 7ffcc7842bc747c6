package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/tally/internal/models"
)

type stubStatsHabitReader struct {
	habits []models.Habit
	err    error
}

func (stub *stubStatsHabitReader) ListByUser(userID uint) ([]models.Habit, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	return stub.habits, nil
}

func (stub *stubStatsHabitReader) FindByUserAndID(userID uint, habitID uint) (models.Habit, bool, error) {
	if stub.err != nil {
		return models.Habit{}, false, stub.err
	}
	for _, habit := range stub.habits {
		if habit.ID == habitID && habit.UserID == userID {
			return habit, true, nil
		}
	}
	return models.Habit{}, false, nil
}

type stubStatsLogReader struct {
	logsByHabit map[uint][]models.HabitLog
	err         error
}

func (stub *stubStatsLogReader) ListByHabit(habitID uint) ([]models.HabitLog, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	return stub.logsByHabit[habitID], nil
}

func weekdayHabit() models.Habit {
	return models.Habit{
		ID:          7,
		UserID:      1,
		Name:        "Deep work",
		Unit:        "minutes",
		UnitValue:   30,
		RepeatType:  models.RepeatDaily,
		DailyRepeat: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		StartDate:   mustParseDay("2026-03-07"),
	}
}

func TestFetchSingleHabitStats(t *testing.T) {
	habit := weekdayHabit()
	service := NewStatsService(
		&stubStatsHabitReader{habits: []models.Habit{habit}},
		&stubStatsLogReader{logsByHabit: map[uint][]models.HabitLog{
			habit.ID: marchScenarioLogs(),
		}},
		time.UTC,
	)

	report, err := service.FetchSingleHabitStats(1, habit.ID, mustParseDay("2026-03-17"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.HabitID != habit.ID || report.HabitName != "Deep work" {
		t.Fatalf("unexpected habit identity: %+v", report)
	}
	if report.Unit != "minutes" || report.UnitValue != 30 {
		t.Fatalf("unexpected unit data: %+v", report)
	}
	if report.Total != 75 {
		t.Fatalf("expected total 75, got %v", report.Total)
	}
	if report.DailyAverage != 25 {
		t.Fatalf("expected daily average 25, got %v", report.DailyAverage)
	}
	if report.SuccessfulDays != 2 {
		t.Fatalf("expected 2 successful days, got %d", report.SuccessfulDays)
	}
	if report.FailedCount != 1 {
		t.Fatalf("expected 1 failed day, got %d", report.FailedCount)
	}
	if report.SkippedCount != 3 {
		t.Fatalf("expected 3 skipped days, got %d", report.SkippedCount)
	}
	if report.LongestStreak != 2 {
		t.Fatalf("expected longest streak 2, got %d", report.LongestStreak)
	}
	if report.CurrentStreak != 0 {
		t.Fatalf("expected current streak 0, got %d", report.CurrentStreak)
	}
	if len(report.DailyCompletionRates) != 31 {
		t.Fatalf("expected 31 completion rate slots, got %d", len(report.DailyCompletionRates))
	}
	if len(report.WeeklyAverageSeries) != 4 {
		t.Fatalf("expected 4 weekly buckets, got %d", len(report.WeeklyAverageSeries))
	}
	if len(report.MonthlyAverageSeries) != 1 {
		t.Fatalf("expected 1 monthly bucket, got %d", len(report.MonthlyAverageSeries))
	}
}

func TestFetchSingleHabitStatsNotFound(t *testing.T) {
	service := NewStatsService(
		&stubStatsHabitReader{habits: []models.Habit{weekdayHabit()}},
		&stubStatsLogReader{},
		time.UTC,
	)

	if _, err := service.FetchSingleHabitStats(1, 99, mustParseDay("2026-03-17")); !errors.Is(err, ErrHabitNotFound) {
		t.Fatalf("expected ErrHabitNotFound for unknown habit, got %v", err)
	}
	// Another user's habit must look like a missing one.
	if _, err := service.FetchSingleHabitStats(2, 7, mustParseDay("2026-03-17")); !errors.Is(err, ErrHabitNotFound) {
		t.Fatalf("expected ErrHabitNotFound for foreign habit, got %v", err)
	}
}

func TestFetchHabitStats(t *testing.T) {
	first := weekdayHabit()
	second := models.Habit{
		ID:         8,
		UserID:     1,
		Name:       "Read",
		Unit:       "pages",
		UnitValue:  10,
		RepeatType: models.RepeatDaily,
		DailyRepeat: []string{
			"Saturday", "Sunday",
		},
		StartDate: mustParseDay("2026-03-01"),
	}

	service := NewStatsService(
		&stubStatsHabitReader{habits: []models.Habit{first, second}},
		&stubStatsLogReader{logsByHabit: map[uint][]models.HabitLog{
			first.ID: marchScenarioLogs(),
		}},
		time.UTC,
	)

	reports, err := service.FetchHabitStats(1, mustParseDay("2026-03-17"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].HabitID != first.ID || reports[1].HabitID != second.ID {
		t.Fatalf("reports out of listing order: %+v", reports)
	}
	if reports[1].Total != 0 || reports[1].LongestStreak != 0 {
		t.Fatalf("expected zeroed report for unlogged habit, got %+v", reports[1])
	}
	// Weekends Mar 1, 7, 8, 14, 15 are all unlogged and in the past.
	if reports[1].SkippedCount != 5 {
		t.Fatalf("expected 5 skipped days for unlogged habit, got %d", reports[1].SkippedCount)
	}
}

func TestFetchHabitStatsRepositoryError(t *testing.T) {
	readErr := errors.New("read failed")
	service := NewStatsService(&stubStatsHabitReader{err: readErr}, &stubStatsLogReader{}, time.UTC)

	if _, err := service.FetchHabitStats(1, mustParseDay("2026-03-17")); !errors.Is(err, readErr) {
		t.Fatalf("expected repository error passed through, got %v", err)
	}
}

func TestBuildHabitStatsSortsLogsBeforeStreaks(t *testing.T) {
	habit := weekdayHabit()
	// Deliberately out of order; the builder must sort before scanning.
	logs := []models.HabitLog{
		{ID: 3, Date: mustParseDay("2026-03-13"), UnitsCompleted: 15, IsComplete: false},
		{ID: 1, Date: mustParseDay("2026-03-09"), UnitsCompleted: 30, IsComplete: true},
		{ID: 2, Date: mustParseDay("2026-03-11"), UnitsCompleted: 30, IsComplete: true},
	}

	report := BuildHabitStats(habit, logs, mustParseDay("2026-03-17"), time.UTC)
	if report.LongestStreak != 2 {
		t.Fatalf("expected longest streak 2, got %d", report.LongestStreak)
	}
	if report.CurrentStreak != 0 {
		t.Fatalf("expected current streak 0, got %d", report.CurrentStreak)
	}
	if logs[0].ID != 3 {
		t.Fatalf("input slice must not be reordered, got %+v", logs)
	}
}
